// Package inventory holds the containers built on top of package item: the
// per-actor Inventory, the FloorManager for items lying on the map, and the
// Factory that creates corpses and moves items between holders.
package inventory

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/cory-johannsen/delve/internal/game/item"
)

// Predicate selects item instances.
type Predicate func(*item.Instance) bool

// Holder is anything that carries an Inventory.
type Holder interface {
	Inventory() *Inventory
}

// Inventory is an ordered list of item instances carried by one actor.
// Order is insertion order and is significant for random selection.
type Inventory struct {
	items []*item.Instance
}

// New creates an empty Inventory.
func New() *Inventory {
	return &Inventory{}
}

// Add places inst into the inventory. Stackable instances merge into an
// existing stack of the same definition.
//
// Precondition: inst is non-nil with a non-nil Def and Quantity > 0.
// Postcondition: the returned instance is the stack now holding the units.
func (inv *Inventory) Add(inst *item.Instance) (*item.Instance, error) {
	if inst == nil || inst.Def == nil {
		return nil, fmt.Errorf("inventory: cannot add item without definition")
	}
	if inst.Quantity <= 0 {
		return nil, fmt.Errorf("inventory: quantity must be > 0")
	}
	if inst.Def.Stackable {
		for _, have := range inv.items {
			if have.Def.ID == inst.Def.ID && have.Enchantment == inst.Enchantment {
				have.Quantity += inst.Quantity
				return have, nil
			}
		}
	}
	if inst.ID == "" {
		inst.ID = uuid.New().String()
	}
	inv.items = append(inv.items, inst)
	return inst, nil
}

// Remove takes the instance with the given ID out of the inventory, clearing
// its worn and wielded flags.
func (inv *Inventory) Remove(id string) (*item.Instance, bool) {
	for i, inst := range inv.items {
		if inst.ID == id {
			inv.items = append(inv.items[:i], inv.items[i+1:]...)
			inst.Worn = false
			inst.Wielded = false
			return inst, true
		}
	}
	return nil, false
}

// Split removes quantity units from the stack identified by id and returns
// them as a separate instance. Splitting the whole stack removes it.
//
// Precondition: 0 < quantity <= stack quantity.
func (inv *Inventory) Split(id string, quantity int) (*item.Instance, error) {
	inst := inv.Get(id)
	if inst == nil {
		return nil, fmt.Errorf("inventory: instance %q not found", id)
	}
	if quantity <= 0 || quantity > inst.Quantity {
		return nil, fmt.Errorf("inventory: cannot split %d from stack of %d", quantity, inst.Quantity)
	}
	if quantity == inst.Quantity {
		inv.Remove(id)
		return inst, nil
	}
	inst.Quantity -= quantity
	part := *inst
	part.ID = uuid.New().String()
	part.Quantity = quantity
	part.Worn = false
	part.Wielded = false
	return &part, nil
}

// Get returns the instance with the given ID, or nil.
func (inv *Inventory) Get(id string) *item.Instance {
	for _, inst := range inv.items {
		if inst.ID == id {
			return inst
		}
	}
	return nil
}

// Items returns a snapshot of the carried instances in inventory order.
//
// Postcondition: the slice is a copy; the instances are shared.
func (inv *Inventory) Items() []*item.Instance {
	out := make([]*item.Instance, len(inv.items))
	copy(out, inv.items)
	return out
}

// Len returns the number of distinct entries.
func (inv *Inventory) Len() int { return len(inv.items) }

// Find returns every instance matching pred, in inventory order.
func (inv *Inventory) Find(pred Predicate) []*item.Instance {
	var out []*item.Instance
	for _, inst := range inv.items {
		if pred(inst) {
			out = append(out, inst)
		}
	}
	return out
}

// Gold returns the first gold stack, or nil.
func (inv *Inventory) Gold() *item.Instance {
	for _, inst := range inv.items {
		if inst.Class() == item.ClassGold {
			return inst
		}
	}
	return nil
}

// Wielded returns the wielded weapon, or nil.
func (inv *Inventory) Wielded() *item.Instance {
	for _, inst := range inv.items {
		if inst.Wielded {
			return inst
		}
	}
	return nil
}

// Worn returns the armor worn in slot, or nil.
func (inv *Inventory) Worn(slot item.Slot) *item.Instance {
	for _, inst := range inv.items {
		if inst.Worn && inst.Def.Slot == slot {
			return inst
		}
	}
	return nil
}

// OuterArmor returns the outermost worn armor following item.SlotOrder.
func (inv *Inventory) OuterArmor() *item.Instance {
	for _, slot := range item.SlotOrder {
		if a := inv.Worn(slot); a != nil {
			return a
		}
	}
	return nil
}

// WearsArmor reports whether any armor is worn.
func (inv *Inventory) WearsArmor() bool {
	return inv.OuterArmor() != nil
}

// ArmorClass sums the AC contributed by all worn armor.
func (inv *Inventory) ArmorClass() int {
	total := 0
	for _, inst := range inv.items {
		if inst.Worn {
			total += inst.ArmorClass()
		}
	}
	return total
}

// Wield marks the weapon with the given ID as wielded, unwielding any other.
//
// Precondition: id names a weapon in the inventory.
func (inv *Inventory) Wield(id string) error {
	inst := inv.Get(id)
	if inst == nil {
		return fmt.Errorf("inventory: instance %q not found", id)
	}
	if inst.Class() != item.ClassWeapon {
		return fmt.Errorf("inventory: %q is not a weapon", inst.Name())
	}
	for _, other := range inv.items {
		other.Wielded = false
	}
	inst.Wielded = true
	return nil
}

// Wear puts on the armor with the given ID.
//
// Precondition: id names armor in the inventory and its slot is free.
func (inv *Inventory) Wear(id string) error {
	inst := inv.Get(id)
	if inst == nil {
		return fmt.Errorf("inventory: instance %q not found", id)
	}
	if inst.Class() != item.ClassArmor {
		return fmt.Errorf("inventory: %q is not armor", inst.Name())
	}
	if cur := inv.Worn(inst.Def.Slot); cur != nil && cur != inst {
		return fmt.Errorf("inventory: slot %s already holds %s", inst.Def.Slot, cur.Name())
	}
	inst.Worn = true
	return nil
}

// BestWeapon returns the weapon with the largest maximum damage, earliest
// first on ties, or nil.
func (inv *Inventory) BestWeapon() *item.Instance {
	var best *item.Instance
	bestMax := -1
	for _, inst := range inv.items {
		if inst.Class() != item.ClassWeapon {
			continue
		}
		expr := inst.Def.DamageDice()
		top := expr.Count*expr.Sides + expr.Modifier + inst.Enchantment
		if top > bestMax {
			best, bestMax = inst, top
		}
	}
	return best
}

// Stealable reports whether a thief can lift inst: it is neither worn nor
// wielded and is not gold.
func Stealable(inst *item.Instance) bool {
	return !inst.Worn && !inst.Wielded && inst.Class() != item.ClassGold
}

// ByID matches the instance with the given ID.
func ByID(id string) Predicate {
	return func(inst *item.Instance) bool { return inst.ID == id }
}
