package catalog

import (
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

// Catalog row kinds.
const (
	KindModel     = "model"
	KindAutoModel = "auto_model"
)

// CatalogRecord is one row of the unified catalog table.
type CatalogRecord struct {
	Kind     string
	Name     string
	Module   string
	Qualname string
	Doc      string
	Family   string
}

// ImportErrorRecord records a library module that failed to load.
type ImportErrorRecord struct {
	Module string
	Error  string
}

// BuildResult is the unified catalog plus the import-errors table.
type BuildResult struct {
	Catalog      []CatalogRecord
	ImportErrors []ImportErrorRecord
}

// familyOverrides corrects wrapper names whose wrapped model does not
// follow the plain strip-the-Auto-prefix transformation.
var familyOverrides = map[string]string{
	"AutoAutoformer":   "Autoformer",
	"AutoFEDformer":    "FEDformer",
	"AutoiTransformer": "iTransformer",
	"AutoxLSTM":        "xLSTM",
	"AutoTimeXer":      "TimeXer",
}

// BuildCatalog composes the plain-model and auto-model collectors into
// one catalog table. Families come from the scraped taxonomy for auto
// classes and are propagated to the wrapped model names; modules that
// fail to load end up in the import-errors table instead of aborting
// the pass.
func BuildCatalog(models, autos []ModuleClasses, familyMap map[string]string, log zerolog.Logger) BuildResult {
	modelFamily := wrappedFamilies(familyMap)

	byQualname := make(map[string]CatalogRecord)
	var importErrors []ImportErrorRecord

	for _, m := range models {
		if m.Err != nil {
			log.Warn().Str("module", m.Module).Err(m.Err).Msg("module failed to load")
			importErrors = append(importErrors, ImportErrorRecord{Module: m.Module, Error: m.Err.Error()})
			continue
		}
		for _, cls := range m.Classes {
			if !includeClass(cls) {
				continue
			}
			byQualname[cls.Qualname()] = CatalogRecord{
				Kind:     KindModel,
				Name:     cls.Name,
				Module:   cls.Module,
				Qualname: cls.Qualname(),
				Doc:      firstLine(cls.Doc),
				Family:   modelFamily[cls.Name],
			}
		}
	}

	for _, m := range autos {
		if m.Err != nil {
			log.Warn().Str("module", m.Module).Err(m.Err).Msg("auto module failed to load")
			importErrors = append(importErrors, ImportErrorRecord{Module: m.Module, Error: m.Err.Error()})
			continue
		}
		for _, cls := range m.Classes {
			if !includeClass(cls) || !strings.HasPrefix(cls.Name, "Auto") {
				continue
			}
			byQualname[cls.Qualname()] = CatalogRecord{
				Kind:     KindAutoModel,
				Name:     cls.Name,
				Module:   cls.Module,
				Qualname: cls.Qualname(),
				Doc:      firstLine(cls.Doc),
				Family:   familyMap[cls.Name],
			}
		}
	}

	catalog := make([]CatalogRecord, 0, len(byQualname))
	for _, rec := range byQualname {
		catalog = append(catalog, rec)
	}
	sort.Slice(catalog, func(i, j int) bool {
		a, b := catalog[i], catalog[j]
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		if a.Family != b.Family {
			return a.Family < b.Family
		}
		return a.Name < b.Name
	})

	sort.Slice(importErrors, func(i, j int) bool {
		return importErrors[i].Module < importErrors[j].Module
	})

	return BuildResult{Catalog: catalog, ImportErrors: importErrors}
}

// wrappedFamilies maps each wrapped model name to the family of its
// wrapper by stripping the first Auto prefix, with explicit overrides
// for the irregular names.
func wrappedFamilies(familyMap map[string]string) map[string]string {
	out := make(map[string]string, len(familyMap))
	for autoName, fam := range familyMap {
		wrapped, ok := familyOverrides[autoName]
		if !ok {
			wrapped = strings.Replace(autoName, "Auto", "", 1)
		}
		out[wrapped] = fam
	}
	return out
}
