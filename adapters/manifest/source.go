package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/modelcat/modelcat/core/catalog"
	"github.com/modelcat/modelcat/ports"
)

// Source is a descriptor source backed by a directory of manifest
// files. A file that fails to parse becomes a module-load error entry
// rather than aborting the load.
type Source struct {
	modules []catalog.ModuleClasses
	autos   []catalog.ModuleClasses
}

// Load reads every .yaml/.yml manifest under dir, subdirectories
// included. The returned error covers unreadable directories only;
// per-file parse failures surface as import-error modules.
func Load(dir string, log zerolog.Logger) (*Source, error) {
	s := &Source{}
	if err := s.loadDir(dir, log); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Source) loadDir(dir string, log zerolog.Logger) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read dir %s: %w", dir, err)
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		if entry.IsDir() {
			if err := s.loadDir(path, log); err != nil {
				return err
			}
			continue
		}

		name := entry.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}

		f, err := ParseFile(path)
		if err != nil {
			log.Warn().Str("path", path).Err(err).Msg("manifest failed to parse")
			s.modules = append(s.modules, catalog.ModuleClasses{
				Module: moduleNameFromPath(path),
				Err:    err,
			})
			continue
		}

		mc := f.ModuleClasses()
		if f.Kind == KindAuto {
			s.autos = append(s.autos, mc)
		} else {
			s.modules = append(s.modules, mc)
		}
	}

	return nil
}

// Modules returns the plain model modules, load failures included.
func (s *Source) Modules() []catalog.ModuleClasses {
	return s.modules
}

// AutoModules returns the auto/wrapper modules.
func (s *Source) AutoModules() []catalog.ModuleClasses {
	return s.autos
}

func moduleNameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(strings.TrimSuffix(base, ".yaml"), ".yml")
}

// Ensure interface compliance.
var _ ports.Source = (*Source)(nil)
