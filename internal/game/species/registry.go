package species

import (
	"fmt"
	"sort"

	"github.com/cory-johannsen/delve/internal/game/actor"
	"github.com/cory-johannsen/delve/internal/game/inventory"
)

// Registry indexes species templates. Its catalog order is by ID, which makes
// random selection over it reproducible.
type Registry struct {
	byID    map[string]*Template
	catalog []*Template
}

// NewRegistry builds a Registry from templates.
//
// Postcondition: returns an error if any template fails Validate or two
// templates share an ID.
func NewRegistry(templates ...*Template) (*Registry, error) {
	r := &Registry{byID: make(map[string]*Template, len(templates))}
	for _, t := range templates {
		if err := t.Validate(); err != nil {
			return nil, err
		}
		if _, dup := r.byID[t.ID]; dup {
			return nil, fmt.Errorf("species: duplicate template id %q", t.ID)
		}
		r.byID[t.ID] = t
		r.catalog = append(r.catalog, t)
	}
	sort.Slice(r.catalog, func(i, j int) bool { return r.catalog[i].ID < r.catalog[j].ID })
	return r, nil
}

// Get returns the template for id.
func (r *Registry) Get(id string) (*Template, bool) {
	t, ok := r.byID[id]
	return t, ok
}

// Len returns the catalog size.
func (r *Registry) Len() int { return len(r.catalog) }

// At returns the i-th template of the catalog.
//
// Precondition: 0 <= i < Len().
func (r *Registry) At(i int) *Template { return r.catalog[i] }

// Catalog returns a copy of the catalog in ID order.
func (r *Registry) Catalog() []*Template {
	out := make([]*Template, len(r.catalog))
	copy(out, r.catalog)
	return out
}

// Spawn builds a monster of species speciesID with its starting inventory
// created through f. Weapons marked wield are wielded; armor marked wear is
// worn.
//
// Postcondition: on success the monster is alive with HP == MaxHP.
func (r *Registry) Spawn(id, speciesID string, f *inventory.Factory) (*actor.Monster, error) {
	tmpl, ok := r.Get(speciesID)
	if !ok {
		return nil, fmt.Errorf("species: unknown species %q", speciesID)
	}
	m := actor.NewMonster(id, tmpl.Form())
	wc, err := parseWeaponCheck(tmpl.WeaponCheck)
	if err != nil {
		return nil, fmt.Errorf("species %q: %w", speciesID, err)
	}
	m.WeaponCheck = wc
	for _, c := range tmpl.Inventory {
		inst, err := f.Create(c.Item, c.Quantity)
		if err != nil {
			return nil, fmt.Errorf("species %q: %w", speciesID, err)
		}
		inst.Enchantment = c.Enchantment
		if _, err := m.Inventory().Add(inst); err != nil {
			return nil, fmt.Errorf("species %q: %w", speciesID, err)
		}
		switch {
		case c.Wield:
			if err := m.Wield(inst); err != nil {
				return nil, fmt.Errorf("species %q: %w", speciesID, err)
			}
		case c.Wear:
			if err := m.Inventory().Wear(inst.ID); err != nil {
				return nil, fmt.Errorf("species %q: %w", speciesID, err)
			}
		}
	}
	return m, nil
}

// FormAt returns the actor form of the i-th catalog entry.
//
// Precondition: 0 <= i < Len().
func (r *Registry) FormAt(i int) *actor.Form { return r.catalog[i].Form() }
