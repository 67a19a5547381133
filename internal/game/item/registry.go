package item

import (
	"fmt"
	"sort"
)

// Registry holds item definitions by ID.
type Registry struct {
	defs map[string]*Def
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*Def)}
}

// Register adds a validated definition.
//
// Precondition: d is non-nil and its ID is not already registered.
func (r *Registry) Register(d *Def) error {
	if d == nil {
		return fmt.Errorf("item.Registry.Register: nil def")
	}
	if err := d.Validate(); err != nil {
		return err
	}
	if _, ok := r.defs[d.ID]; ok {
		return fmt.Errorf("item.Registry.Register: duplicate id %q", d.ID)
	}
	r.defs[d.ID] = d
	return nil
}

// Def returns the definition for id.
func (r *Registry) Def(id string) (*Def, bool) {
	d, ok := r.defs[id]
	return d, ok
}

// All returns every definition sorted by ID.
func (r *Registry) All() []*Def {
	out := make([]*Def, 0, len(r.defs))
	for _, d := range r.defs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of registered definitions.
func (r *Registry) Len() int { return len(r.defs) }
