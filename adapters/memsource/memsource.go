// Package memsource provides an in-memory descriptor source for tests
// and embedding programs that already hold their library's metadata.
package memsource

import (
	"github.com/modelcat/modelcat/core/catalog"
	"github.com/modelcat/modelcat/ports"
)

// Source collects registered descriptor modules.
type Source struct {
	modules []catalog.ModuleClasses
	autos   []catalog.ModuleClasses
}

// New creates an empty source.
func New() *Source {
	return &Source{}
}

// AddModule registers a plain model module.
func (s *Source) AddModule(m catalog.ModuleClasses) {
	s.modules = append(s.modules, m)
}

// AddAutoModule registers an auto/wrapper module.
func (s *Source) AddAutoModule(m catalog.ModuleClasses) {
	s.autos = append(s.autos, m)
}

// AddError records a plain model module that failed to load.
func (s *Source) AddError(module string, err error) {
	s.modules = append(s.modules, catalog.ModuleClasses{Module: module, Err: err})
}

// Modules returns the registered plain model modules.
func (s *Source) Modules() []catalog.ModuleClasses {
	return s.modules
}

// AutoModules returns the registered auto/wrapper modules.
func (s *Source) AutoModules() []catalog.ModuleClasses {
	return s.autos
}

// Ensure interface compliance.
var _ ports.Source = (*Source)(nil)
