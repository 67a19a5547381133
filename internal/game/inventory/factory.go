package inventory

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/cory-johannsen/delve/internal/game/grid"
	"github.com/cory-johannsen/delve/internal/game/item"
)

// ItemHandle identifies an instance created by the Factory.
type ItemHandle string

// CorpseRecord describes the remains of a dead actor to be materialized on
// the floor.
type CorpseRecord struct {
	SpeciesID string
	Name      string
	Pos       grid.Pos
	RotTimer  int
	Weight    int
	Statue    bool
}

// Built-in definitions used when the registry carries none.
var (
	CorpseDef = &item.Def{ID: "corpse", Name: "corpse", Class: item.ClassCorpse, Material: item.MaterialFlesh}
	StatueDef = &item.Def{ID: "statue", Name: "statue", Class: item.ClassStatue, Material: item.MaterialMineral}
)

// Factory creates item instances and moves them between holders and the floor.
type Factory struct {
	reg   *item.Registry
	floor *FloorManager
}

// NewFactory creates a Factory over reg and floor.
//
// Precondition: reg and floor are non-nil.
func NewFactory(reg *item.Registry, floor *FloorManager) *Factory {
	return &Factory{reg: reg, floor: floor}
}

// Floor returns the FloorManager the factory drops items onto.
func (f *Factory) Floor() *FloorManager { return f.floor }

// Create instantiates quantity units of the definition defID.
func (f *Factory) Create(defID string, quantity int) (*item.Instance, error) {
	def, ok := f.reg.Def(defID)
	if !ok {
		return nil, fmt.Errorf("inventory.Factory: unknown item %q", defID)
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("inventory.Factory: quantity must be > 0")
	}
	return &item.Instance{ID: uuid.New().String(), Def: def, Quantity: quantity}, nil
}

// SpawnCorpse materializes rec as a corpse or statue on the floor.
//
// Postcondition: on success exactly one instance was dropped at rec.Pos.
func (f *Factory) SpawnCorpse(rec CorpseRecord) (ItemHandle, error) {
	if rec.SpeciesID == "" {
		return "", fmt.Errorf("inventory.Factory.SpawnCorpse: empty species")
	}
	def := CorpseDef
	id := "corpse"
	if rec.Statue {
		def, id = StatueDef, "statue"
	}
	if d, ok := f.reg.Def(id); ok {
		def = d
	}
	name := rec.Name
	if name == "" {
		name = rec.SpeciesID
	}
	inst := &item.Instance{
		ID:       uuid.New().String(),
		Def:      def,
		Quantity: 1,
		CorpseOf: name,
	}
	if !rec.Statue {
		inst.RotTimer = rec.RotTimer
	}
	f.floor.Drop(rec.Pos, inst)
	return ItemHandle(inst.ID), nil
}

// TakeItem removes the first instance in holder's inventory matching pred
// and returns it, or nil when nothing matches.
func (f *Factory) TakeItem(holder Holder, pred Predicate) *item.Instance {
	inv := holder.Inventory()
	if inv == nil {
		return nil
	}
	for _, inst := range inv.items {
		if pred(inst) {
			taken, _ := inv.Remove(inst.ID)
			return taken
		}
	}
	return nil
}

// DropInventory moves everything holder carries onto the floor at pos and
// returns the number of entries dropped.
func (f *Factory) DropInventory(holder Holder, pos grid.Pos) int {
	inv := holder.Inventory()
	if inv == nil {
		return 0
	}
	items := inv.items
	inv.items = nil
	for _, inst := range items {
		f.floor.Drop(pos, inst)
	}
	return len(items)
}
