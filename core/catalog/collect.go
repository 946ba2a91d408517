package catalog

import (
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/modelcat/modelcat/core/flatten"
	"github.com/modelcat/modelcat/core/text"
)

// Default kinds recorded on model-parameter rows.
const (
	DefaultEmpty  = "empty"
	DefaultScalar = "scalar"
	DefaultObject = "object"
)

// Parameter names excluded from the parameter tables.
var excludedParams = map[string]bool{
	"self":   true,
	"args":   true,
	"kwargs": true,
}

// AutoModelRecord is one row of the af_models table.
type AutoModelRecord struct {
	AutoName             string
	Module               string
	Library              string
	Namespace            string
	Submodule            string
	Doc                  string
	HasDefaultConfigAttr bool
	HasGetDefaultConfig  bool
	Family               string
}

// ParamRecord is one row of the af_params master table. Identity is
// the parameter name; the first-seen annotation and group win.
type ParamRecord struct {
	Param      string
	Group      string
	Annotation string
}

// ModelParamRecord is one row of the af_model_params table: one
// (model, parameter) pair.
type ModelParamRecord struct {
	AutoName      string
	Param         string
	Required      bool
	DefaultKind   string
	DefaultScalar string
	DefaultObjID  string
	Kind          string
}

// AFTables holds the normalized auto-model tables produced by
// CollectAuto.
type AFTables struct {
	Models        []AutoModelRecord
	Params        []ParamRecord
	ModelParams   []ModelParamRecord
	ConfigEntries []flatten.Entry
	Objects       []flatten.PoolEntry
}

// CollectAuto reflects over the auto/wrapper classes of a descriptor
// source and builds the normalized parameter and default-config
// tables. Classes with underscore-prefixed names, without the Auto
// prefix, or re-exported from another module are skipped. A failing
// default-config accessor is treated as "no config"; a module-level
// load error skips the module. Neither is fatal.
func CollectAuto(mods []ModuleClasses, log zerolog.Logger) AFTables {
	pool := flatten.NewPool()
	var entries []flatten.Entry
	var modelParams []ModelParamRecord
	paramsMaster := make(map[string]ParamRecord)
	models := make(map[string]AutoModelRecord)

	for _, cls := range autoClasses(mods, log) {
		library, namespace, _, submodule := text.SplitModule(cls.Module)

		models[cls.Qualname()] = AutoModelRecord{
			AutoName:             cls.Name,
			Module:               cls.Module,
			Library:              library,
			Namespace:            namespace,
			Submodule:            submodule,
			Doc:                  firstLine(cls.Doc),
			HasDefaultConfigAttr: cls.HasDefaultConfigAttr,
			HasGetDefaultConfig:  cls.HasGetDefaultConfig,
		}

		for _, p := range cls.Params {
			if excludedParams[p.Name] {
				continue
			}

			rec := ModelParamRecord{
				AutoName:    cls.Name,
				Param:       p.Name,
				Required:    p.Required,
				DefaultKind: DefaultEmpty,
				Kind:        p.Kind,
			}
			if !p.Required {
				if text.IsScalar(p.Default) {
					rec.DefaultKind = DefaultScalar
					rec.DefaultScalar = text.ShortScalar(p.Default)
				} else {
					rec.DefaultKind = DefaultObject
					rec.DefaultObjID = pool.Add(p.Default)
				}
			}
			modelParams = append(modelParams, rec)

			if _, seen := paramsMaster[p.Name]; !seen {
				paramsMaster[p.Name] = ParamRecord{
					Param:      p.Name,
					Group:      ClassifyParam(p.Name),
					Annotation: p.Annotation,
				}
			}
		}

		if cls.DefaultConfig == nil {
			continue
		}
		cfg, err := cls.DefaultConfig()
		if err != nil {
			log.Warn().Str("class", cls.Name).Err(err).Msg("default config accessor failed, treating as absent")
			continue
		}
		if cfg != nil {
			flatten.Flatten(cls.Name, cfg, "default_config", &entries, pool)
		}
	}

	return AFTables{
		Models:        sortedAutoModels(models),
		Params:        sortedParams(paramsMaster),
		ModelParams:   sortedModelParams(modelParams),
		ConfigEntries: sortedEntries(entries),
		Objects:       pool.Entries(),
	}
}

// autoClasses filters and orders the Auto-prefixed classes of all
// loadable modules.
func autoClasses(mods []ModuleClasses, log zerolog.Logger) []Class {
	var out []Class
	for _, m := range mods {
		if m.Err != nil {
			log.Warn().Str("module", m.Module).Err(m.Err).Msg("auto module failed to load, skipping")
			continue
		}
		for _, cls := range m.Classes {
			if !includeClass(cls) || !strings.HasPrefix(cls.Name, "Auto") {
				continue
			}
			out = append(out, cls)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// includeClass applies the shared enumeration rules: public names only,
// and no classes merely re-exported from another module.
func includeClass(cls Class) bool {
	if strings.HasPrefix(cls.Name, "_") {
		return false
	}
	if cls.DefinedIn != "" && cls.DefinedIn != cls.Module {
		return false
	}
	return true
}

func firstLine(doc string) string {
	if doc == "" {
		return ""
	}
	line, _, _ := strings.Cut(doc, "\n")
	return strings.TrimSpace(line)
}

func sortedAutoModels(m map[string]AutoModelRecord) []AutoModelRecord {
	out := make([]AutoModelRecord, 0, len(m))
	for _, rec := range m {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AutoName < out[j].AutoName })
	return out
}

func sortedParams(m map[string]ParamRecord) []ParamRecord {
	out := make([]ParamRecord, 0, len(m))
	for _, rec := range m {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Group != out[j].Group {
			return out[i].Group < out[j].Group
		}
		return out[i].Param < out[j].Param
	})
	return out
}

func sortedModelParams(recs []ModelParamRecord) []ModelParamRecord {
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].AutoName != recs[j].AutoName {
			return recs[i].AutoName < recs[j].AutoName
		}
		return recs[i].Param < recs[j].Param
	})
	return recs
}

func sortedEntries(entries []flatten.Entry) []flatten.Entry {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].AutoName != entries[j].AutoName {
			return entries[i].AutoName < entries[j].AutoName
		}
		return entries[i].KeyPath < entries[j].KeyPath
	})
	return entries
}
