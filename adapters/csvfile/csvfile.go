// Package csvfile writes catalog tables as CSV files: one flat file
// per table plus a grouped directory tree for the catalog. Files are
// UTF-8 with BOM, header row first, comma-separated, no index column.
package csvfile

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/modelcat/modelcat/core/catalog"
	"github.com/modelcat/modelcat/core/text"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Column names backfilled from a module column before tree grouping.
var splitColumns = []string{"library", "namespace", "submodule_head", "submodule"}

// Writer writes tables to disk.
type Writer struct {
	log zerolog.Logger
}

// New creates a table writer.
func New(log zerolog.Logger) *Writer {
	return &Writer{log: log}
}

// WriteTable writes one table to path, creating parent directories.
func (w *Writer) WriteTable(path string, t catalog.Table) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.Write(utf8BOM); err != nil {
		return fmt.Errorf("write bom: %w", err)
	}

	cw := csv.NewWriter(f)
	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}

	w.log.Debug().Str("path", path).Int("rows", len(t.Rows)).Msg("table written")
	return nil
}

// WriteAll writes each table to <dir>/<name>.csv and returns the paths
// keyed by table name.
func (w *Writer) WriteAll(dir string, tables []catalog.Table) (map[string]string, error) {
	paths := make(map[string]string, len(tables))
	for _, t := range tables {
		path := filepath.Join(dir, t.Name+".csv")
		if err := w.WriteTable(path, t); err != nil {
			return nil, err
		}
		paths[t.Name] = path
	}
	return paths, nil
}

// WriteTree writes the whole table to <base>/<name>/all.csv and one
// catalog.csv per group under slug-named subdirectories, one level per
// grouping column. Grouping columns absent from the table are silently
// skipped; module split columns are derived first when missing.
func (w *Writer) WriteTree(baseDir, catalogName string, t catalog.Table, groupCols []string) (string, string, error) {
	root := filepath.Join(baseDir, catalogName)
	t = ensureModuleSplits(t)

	allPath := filepath.Join(root, "all.csv")
	if err := w.WriteTable(allPath, t); err != nil {
		return "", "", err
	}

	var idxs []int
	for _, col := range groupCols {
		if i := t.ColumnIndex(col); i >= 0 {
			idxs = append(idxs, i)
		}
	}
	if len(idxs) == 0 {
		return allPath, root, nil
	}

	groups := make(map[string][]int)
	for rowIdx, row := range t.Rows {
		parts := make([]string, len(idxs))
		for i, col := range idxs {
			parts[i] = text.Slugify(row[col])
		}
		key := strings.Join(parts, string(filepath.Separator))
		groups[key] = append(groups[key], rowIdx)
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		sub := catalog.Table{Name: t.Name, Columns: t.Columns}
		for _, rowIdx := range groups[key] {
			sub.Rows = append(sub.Rows, t.Rows[rowIdx])
		}
		path := filepath.Join(root, key, "catalog.csv")
		if err := w.WriteTable(path, sub); err != nil {
			return "", "", err
		}
	}

	w.log.Info().Str("root", root).Int("groups", len(groups)).Msg("catalog tree written")
	return allPath, root, nil
}

// ensureModuleSplits appends library/namespace/submodule columns
// derived from the module column when the table carries a module
// column but not the splits.
func ensureModuleSplits(t catalog.Table) catalog.Table {
	moduleIdx := t.ColumnIndex("module")
	if moduleIdx < 0 {
		return t
	}
	for _, col := range splitColumns {
		if t.ColumnIndex(col) < 0 {
			return appendModuleSplits(t, moduleIdx)
		}
	}
	return t
}

func appendModuleSplits(t catalog.Table, moduleIdx int) catalog.Table {
	out := catalog.Table{
		Name:    t.Name,
		Columns: append(append([]string{}, t.Columns...), splitColumns...),
	}
	for _, row := range t.Rows {
		library, namespace, head, sub := text.SplitModule(row[moduleIdx])
		out.Rows = append(out.Rows, append(append([]string{}, row...), library, namespace, head, sub))
	}
	return out
}
