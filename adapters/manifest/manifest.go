// Package manifest loads model descriptors from YAML manifest files,
// one file per library module. Manifests are the primary descriptor
// source: they carry the class, parameter, and default-config metadata
// that the reflected library exposes.
//
// Opaque values (defaults that are neither scalars nor containers)
// are written as mappings with reserved $type and $repr keys:
//
//	params:
//	  - name: loss
//	    annotation: MAE
//	    default: { $type: MAE, $repr: "MAE()" }
//
// and decode to catalog.Object anywhere inside defaults or configs,
// nested values included.
package manifest

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/modelcat/modelcat/core/catalog"
)

// Module kinds accepted in manifests.
const (
	KindModels = "models"
	KindAuto   = "auto"
)

// Config access patterns accepted in manifests.
const (
	AccessAttr   = "attr"
	AccessMethod = "method"
)

// File is one parsed manifest: the classes of one library module.
type File struct {
	Module  string     `yaml:"module"`
	Kind    string     `yaml:"kind"`
	Classes []ClassDef `yaml:"classes"`
}

// ClassDef describes one class in a manifest.
type ClassDef struct {
	Name      string     `yaml:"name"`
	Doc       string     `yaml:"doc"`
	DefinedIn string     `yaml:"defined_in"`
	Params    []ParamDef `yaml:"params"`
	// DefaultConfig is the class's nested default configuration.
	// ConfigAccess records which accessor pattern the class exposes:
	// "attr" (default) or "method".
	DefaultConfig map[string]any `yaml:"default_config"`
	ConfigAccess  string         `yaml:"config_access"`
}

// ParamDef describes one constructor parameter in a manifest.
type ParamDef struct {
	Name       string `yaml:"name"`
	Annotation string `yaml:"annotation"`
	Kind       string `yaml:"kind"`
	Required   bool   `yaml:"required"`
	Default    any    `yaml:"default"`
}

// ParseFile parses a manifest from a YAML file.
func ParseFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses a manifest from YAML bytes.
func Parse(data []byte) (File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("parse yaml: %w", err)
	}

	if err := Validate(f); err != nil {
		return File{}, fmt.Errorf("validate manifest %q: %w", f.Module, err)
	}

	return f, nil
}

// Validate validates a parsed manifest.
func Validate(f File) error {
	var errs []string

	if f.Module == "" {
		errs = append(errs, "module is required")
	}

	switch f.Kind {
	case "", KindModels, KindAuto:
	default:
		errs = append(errs, fmt.Sprintf("kind %q must be %q or %q", f.Kind, KindModels, KindAuto))
	}

	for i, cls := range f.Classes {
		if cls.Name == "" {
			errs = append(errs, fmt.Sprintf("classes[%d]: name is required", i))
		}
		switch cls.ConfigAccess {
		case "", AccessAttr, AccessMethod:
		default:
			errs = append(errs, fmt.Sprintf("classes[%d]: config_access %q must be %q or %q",
				i, cls.ConfigAccess, AccessAttr, AccessMethod))
		}
		for j, p := range cls.Params {
			if p.Name == "" {
				errs = append(errs, fmt.Sprintf("classes[%d].params[%d]: name is required", i, j))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// ModuleClasses converts the manifest into descriptor form.
func (f File) ModuleClasses() catalog.ModuleClasses {
	mc := catalog.ModuleClasses{Module: f.Module}

	for _, cd := range f.Classes {
		cls := catalog.Class{
			Name:      cd.Name,
			Module:    f.Module,
			DefinedIn: cd.DefinedIn,
			Doc:       cd.Doc,
		}

		for _, pd := range cd.Params {
			kind := pd.Kind
			if kind == "" {
				kind = "positional_or_keyword"
			}
			cls.Params = append(cls.Params, catalog.Param{
				Name:       pd.Name,
				Annotation: pd.Annotation,
				Kind:       kind,
				Required:   pd.Required,
				Default:    decodeValue(pd.Default),
			})
		}

		if cd.DefaultConfig != nil {
			cfg := make(map[string]any, len(cd.DefaultConfig))
			for k, v := range cd.DefaultConfig {
				cfg[k] = decodeValue(v)
			}
			if cd.ConfigAccess == AccessMethod {
				cls.HasGetDefaultConfig = true
			} else {
				cls.HasDefaultConfigAttr = true
			}
			cls.DefaultConfig = func() (map[string]any, error) {
				return cfg, nil
			}
		}

		mc.Classes = append(mc.Classes, cls)
	}

	return mc
}

// decodeValue rewrites $type/$repr mappings into catalog.Object,
// recursing through nested maps and sequences.
func decodeValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		if obj, ok := asObject(val); ok {
			return obj
		}
		out := make(map[string]any, len(val))
		for k, inner := range val {
			out[k] = decodeValue(inner)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, inner := range val {
			out[i] = decodeValue(inner)
		}
		return out
	}
	return v
}

func asObject(m map[string]any) (catalog.Object, bool) {
	typ, hasType := m["$type"].(string)
	repr, hasRepr := m["$repr"].(string)
	if !hasType || !hasRepr {
		return catalog.Object{}, false
	}
	return catalog.Object{Type: typ, Repr: repr}, true
}
