// Package text provides the string-shaping helpers shared by the
// collectors and writers: filesystem-safe slugs, stable value
// representations, content-hash object ids, scalar truncation, and
// module-path splitting.
package text

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
)

const (
	maxSlugLen   = 120
	maxScalarLen = 80
)

var (
	slugRe = regexp.MustCompile(`[^\w\-.]+`)
	addrRe = regexp.MustCompile(`0x[0-9a-fA-F]+`)
)

// Slugify renders v as a directory-safe name: any run of characters
// outside [\w\-.] becomes a single underscore, and the result is
// truncated to 120 characters. Empty or nil input yields "_unknown".
func Slugify(v any) string {
	s := ""
	if v != nil {
		s = strings.TrimSpace(fmt.Sprintf("%v", v))
	}
	if s == "" {
		return "_unknown"
	}
	s = slugRe.ReplaceAllString(s, "_")
	if len(s) > maxSlugLen {
		s = s[:maxSlugLen]
	}
	return s
}

// StableRepr renders v with memory-address text masked out, so two
// values equal in essence but printed at different addresses compare
// and hash identically.
func StableRepr(v any) string {
	return addrRe.ReplaceAllString(fmt.Sprintf("%v", v), "0xADDR")
}

// Typed is implemented by values that carry a declared type name of
// their own, such as descriptor objects decoded from manifests.
type Typed interface {
	TypeName() string
}

// TypeName returns the declared type name for v: the value's own name
// when it implements Typed, otherwise the Go type.
func TypeName(v any) string {
	if t, ok := v.(Typed); ok {
		return t.TypeName()
	}
	return fmt.Sprintf("%T", v)
}

// ObjectID returns a short deterministic content hash for v: the first
// 12 hex characters of SHA-1 over the declared type name and the stable
// representation. Identical inputs always produce the same id; hash
// collisions are accepted as negligible risk.
func ObjectID(v any) string {
	sum := sha1.Sum([]byte(TypeName(v) + "|" + StableRepr(v)))
	return hex.EncodeToString(sum[:])[:12]
}

// IsScalar reports whether v is a scalar leaf value: nil, bool, string,
// or any integer or float width. Everything else (maps, slices, opaque
// objects) is non-scalar.
func IsScalar(v any) bool {
	switch v.(type) {
	case nil, bool, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	}
	return false
}

// ShortScalar renders a scalar value for a CSV cell. Strings longer
// than 80 characters are truncated with an ellipsis suffix; nil renders
// as the empty string.
func ShortScalar(v any) string {
	if v == nil {
		return ""
	}
	s := fmt.Sprintf("%v", v)
	if _, ok := v.(string); ok && len(s) > maxScalarLen {
		return s[:maxScalarLen-3] + "..."
	}
	return s
}

// SplitModule splits a dotted module path into its library (first
// segment), namespace (second), submodule head (third), and the full
// submodule tail joined from the third segment on.
func SplitModule(module string) (library, namespace, submoduleHead, submodule string) {
	if module == "" {
		return "", "", "", ""
	}
	parts := strings.Split(module, ".")
	library = parts[0]
	if len(parts) > 1 {
		namespace = parts[1]
	}
	if len(parts) > 2 {
		submoduleHead = parts[2]
		submodule = strings.Join(parts[2:], ".")
	}
	return library, namespace, submoduleHead, submodule
}
