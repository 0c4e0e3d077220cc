package statedef

import "fmt"

// #region registry

// Registry is the immutable StateId -> (Category, Priority) table supplied to
// the arbitrator at construction. Every ID is registered in exactly one
// category; a duplicate registration is a configuration error.
type Registry struct {
	defs map[ID]Def
}

// NewRegistry builds a registry from defs, rejecting duplicates and unknown
// categories. Configuration errors are fatal and surface here, never later.
func NewRegistry(defs []Def) (*Registry, error) {
	if len(defs) == 0 {
		return nil, fmt.Errorf("registry: no state definitions")
	}
	m := make(map[ID]Def, len(defs))
	for _, d := range defs {
		if d.ID == "" {
			return nil, fmt.Errorf("registry: empty state id")
		}
		if !d.Category.Valid() {
			return nil, fmt.Errorf("registry: state %s: unknown category %q", d.ID, d.Category)
		}
		if prev, ok := m[d.ID]; ok {
			return nil, fmt.Errorf("registry: state %s registered in both %s and %s",
				d.ID, prev.Category, d.Category)
		}
		m[d.ID] = d
	}
	return &Registry{defs: m}, nil
}

// NewDefaultRegistry builds a registry from the built-in vocabulary.
func NewDefaultRegistry() (*Registry, error) {
	return NewRegistry(DefaultDefs())
}

// #endregion registry

// #region lookup

// Lookup returns the definition for id, if registered.
func (r *Registry) Lookup(id ID) (Def, bool) {
	d, ok := r.defs[id]
	return d, ok
}

// Priority returns the within-category priority for id, or 0 if unregistered.
func (r *Registry) Priority(id ID) int {
	return r.defs[id].Priority
}

// CategoryOf returns the category id belongs to.
func (r *Registry) CategoryOf(id ID) (Category, bool) {
	d, ok := r.defs[id]
	return d.Category, ok
}

// Len returns the number of registered states.
func (r *Registry) Len() int {
	return len(r.defs)
}

// #endregion lookup
