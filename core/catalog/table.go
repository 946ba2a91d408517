package catalog

import "strconv"

// Table names used for CSV file naming.
const (
	TableCatalog       = "catalog"
	TableImportErrors  = "import_errors"
	TableAFModels      = "af_models"
	TableAFParams      = "af_params"
	TableAFModelParams = "af_model_params"
	TableAFConfig      = "af_config_entries"
	TableAFObjects     = "af_objects"
)

// Table is a rendered tabular result with a fixed column order, ready
// for the CSV writers.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// ColumnIndex returns the position of a column, or -1 when the table
// does not carry it.
func (t Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// CatalogTable renders the unified catalog.
func CatalogTable(recs []CatalogRecord) Table {
	t := Table{
		Name:    TableCatalog,
		Columns: []string{"kind", "name", "module", "qualname", "doc", "family"},
	}
	for _, r := range recs {
		t.Rows = append(t.Rows, []string{r.Kind, r.Name, r.Module, r.Qualname, r.Doc, r.Family})
	}
	return t
}

// ImportErrorsTable renders the import-errors table.
func ImportErrorsTable(errs []ImportErrorRecord) Table {
	t := Table{
		Name:    TableImportErrors,
		Columns: []string{"module", "error"},
	}
	for _, r := range errs {
		t.Rows = append(t.Rows, []string{r.Module, r.Error})
	}
	return t
}

// Tables renders every normalized auto-model table in output order.
func (a AFTables) Tables() []Table {
	return []Table{
		a.ModelsTable(),
		a.ParamsTable(),
		a.ModelParamsTable(),
		a.ConfigEntriesTable(),
		a.ObjectsTable(),
	}
}

// ModelsTable renders af_models.
func (a AFTables) ModelsTable() Table {
	t := Table{
		Name: TableAFModels,
		Columns: []string{
			"auto_name", "module", "library", "namespace", "submodule",
			"doc", "has_default_config_attr", "has_get_default_config", "family",
		},
	}
	for _, r := range a.Models {
		t.Rows = append(t.Rows, []string{
			r.AutoName, r.Module, r.Library, r.Namespace, r.Submodule,
			r.Doc,
			strconv.FormatBool(r.HasDefaultConfigAttr),
			strconv.FormatBool(r.HasGetDefaultConfig),
			r.Family,
		})
	}
	return t
}

// ParamsTable renders the af_params master table.
func (a AFTables) ParamsTable() Table {
	t := Table{
		Name:    TableAFParams,
		Columns: []string{"param", "param_group", "annotation"},
	}
	for _, r := range a.Params {
		t.Rows = append(t.Rows, []string{r.Param, r.Group, r.Annotation})
	}
	return t
}

// ModelParamsTable renders af_model_params.
func (a AFTables) ModelParamsTable() Table {
	t := Table{
		Name: TableAFModelParams,
		Columns: []string{
			"auto_name", "param", "required", "default_kind",
			"default_scalar", "default_obj_id", "kind",
		},
	}
	for _, r := range a.ModelParams {
		t.Rows = append(t.Rows, []string{
			r.AutoName, r.Param, strconv.FormatBool(r.Required),
			r.DefaultKind, r.DefaultScalar, r.DefaultObjID, r.Kind,
		})
	}
	return t
}

// ConfigEntriesTable renders af_config_entries.
func (a AFTables) ConfigEntriesTable() Table {
	t := Table{
		Name:    TableAFConfig,
		Columns: []string{"auto_name", "key_path", "value_kind", "value_scalar", "value_obj_id"},
	}
	for _, e := range a.ConfigEntries {
		t.Rows = append(t.Rows, []string{e.AutoName, e.KeyPath, e.ValueKind, e.ValueScalar, e.ValueObjID})
	}
	return t
}

// ObjectsTable renders the deduplicated object pool.
func (a AFTables) ObjectsTable() Table {
	t := Table{
		Name:    TableAFObjects,
		Columns: []string{"obj_id", "type", "repr"},
	}
	for _, o := range a.Objects {
		t.Rows = append(t.Rows, []string{o.ObjID, o.TypeName, o.Repr})
	}
	return t
}
