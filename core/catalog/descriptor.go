// Package catalog builds normalized model-catalog tables from
// descriptor sources and scraped documentation.
//
// A descriptor source reports the target library's model classes as
// plain data: class name, declaring module, docstring, constructor
// parameters, and an optional default-configuration accessor. The
// collectors here never touch the library itself, so any adapter that
// can answer those capability queries can feed the catalog.
package catalog

// Object is an opaque non-scalar value reported by a descriptor
// source: a default value or config entry that is neither a scalar nor
// a container. It carries its declared type name and a textual
// representation so the object pool hashes it the same way on every
// run.
type Object struct {
	Type string
	Repr string
}

// TypeName returns the declared type name.
func (o Object) TypeName() string { return o.Type }

func (o Object) String() string { return o.Repr }

// Param describes one constructor parameter of a model class.
type Param struct {
	Name       string
	Annotation string
	// Kind is the parameter passing kind, e.g. "positional_or_keyword".
	Kind string
	// Required is true when the parameter has no default.
	Required bool
	// Default holds the default value when Required is false. A nil
	// default is a scalar none, not an absent one.
	Default any
}

// Class describes one model class enumerated from a library module.
type Class struct {
	Name string
	// Module the class is enumerated under.
	Module string
	// DefinedIn is the declaring module when it differs from Module;
	// such re-exported classes are excluded from collection.
	DefinedIn string
	// Doc is the class docstring; collectors keep its first line.
	Doc string
	// Params is the constructor parameter list. Nil means the
	// signature could not be introspected; no parameter rows are
	// emitted for the class.
	Params []Param
	// Capability flags for the two recognized default-config access
	// patterns.
	HasDefaultConfigAttr bool
	HasGetDefaultConfig  bool
	// DefaultConfig returns the class's nested default configuration.
	// A nil accessor or an accessor error is treated as "no config".
	DefaultConfig func() (map[string]any, error)
}

// Qualname is the class identity: declaring module plus name.
func (c Class) Qualname() string {
	return c.Module + "." + c.Name
}

// ModuleClasses groups the classes enumerated from one library module,
// or records why the module failed to load. A non-nil Err produces an
// import-error row and never aborts collection.
type ModuleClasses struct {
	Module  string
	Err     error
	Classes []Class
}
