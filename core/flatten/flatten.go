// Package flatten normalizes nested default-config structures into
// flat key-path entries plus a deduplicated pool of opaque values.
//
// Values fall into four variants, each with one dispatch arm: mappings
// recurse per entry, sequences recurse per element, scalars emit one
// entry, and anything else is registered in the pool and referenced by
// content hash.
package flatten

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"

	"github.com/modelcat/modelcat/core/text"
)

// Value kinds recorded on config entries.
const (
	KindScalar = "scalar"
	KindObject = "object"
)

// Entry is one flattened configuration value.
type Entry struct {
	AutoName    string
	KeyPath     string
	ValueKind   string
	ValueScalar string
	ValueObjID  string
}

// PoolEntry is one deduplicated opaque value.
type PoolEntry struct {
	ObjID    string
	TypeName string
	Repr     string
}

// Pool deduplicates opaque values by content hash. Structurally
// identical values of the same declared type collapse to one entry;
// insertion is first-write-wins.
type Pool struct {
	entries map[string]PoolEntry
}

// NewPool creates an empty pool.
func NewPool() *Pool {
	return &Pool{entries: make(map[string]PoolEntry)}
}

// Add returns the object id for v, inserting a pool entry the first
// time the id is seen.
func (p *Pool) Add(v any) string {
	id := text.ObjectID(v)
	if _, ok := p.entries[id]; !ok {
		p.entries[id] = PoolEntry{
			ObjID:    id,
			TypeName: text.TypeName(v),
			Repr:     text.StableRepr(v),
		}
	}
	return id
}

// Len reports the number of distinct pooled values.
func (p *Pool) Len() int {
	return len(p.entries)
}

// Entries returns the pool contents sorted by object id.
func (p *Pool) Entries() []PoolEntry {
	out := make([]PoolEntry, 0, len(p.entries))
	for _, e := range p.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ObjID < out[j].ObjID })
	return out
}

// Flatten walks v depth-first from keyPath and appends one entry per
// leaf to out, registering opaque values in pool. Mapping keys are
// string-coerced and joined with ".", sequence elements join their
// index the same way.
//
// There is no depth limit and no cycle detection: flattening a
// self-referential structure will not terminate. Known limitation.
func Flatten(autoName string, v any, keyPath string, out *[]Entry, pool *Pool) {
	if text.IsScalar(v) {
		*out = append(*out, Entry{
			AutoName:    autoName,
			KeyPath:     keyPath,
			ValueKind:   KindScalar,
			ValueScalar: text.ShortScalar(v),
		})
		return
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		type pair struct {
			key string
			val any
		}
		pairs := make([]pair, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			pairs = append(pairs, pair{
				key: fmt.Sprintf("%v", iter.Key().Interface()),
				val: iter.Value().Interface(),
			})
		}
		sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].key < pairs[j].key })
		for _, kv := range pairs {
			Flatten(autoName, kv.val, joinPath(keyPath, kv.key), out, pool)
		}
		return

	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			Flatten(autoName, rv.Index(i).Interface(), joinPath(keyPath, strconv.Itoa(i)), out, pool)
		}
		return
	}

	id := pool.Add(v)
	*out = append(*out, Entry{
		AutoName:   autoName,
		KeyPath:    keyPath,
		ValueKind:  KindObject,
		ValueObjID: id,
	})
}

func joinPath(base, segment string) string {
	if base == "" {
		return segment
	}
	return base + "." + segment
}
