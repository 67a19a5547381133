package inventory

import (
	"sync"

	"github.com/cory-johannsen/delve/internal/game/grid"
	"github.com/cory-johannsen/delve/internal/game/item"
)

// FloorManager tracks item instances lying on map squares.
// It is thread-safe via sync.RWMutex.
type FloorManager struct {
	mu      sync.RWMutex
	squares map[grid.Pos][]*item.Instance
}

// NewFloorManager creates a FloorManager with no items on any square.
func NewFloorManager() *FloorManager {
	return &FloorManager{squares: make(map[grid.Pos][]*item.Instance)}
}

// Drop places inst on the square at pos.
//
// Precondition: inst is non-nil.
// Postcondition: inst is appended to the square's items with worn and wielded cleared.
func (fm *FloorManager) Drop(pos grid.Pos, inst *item.Instance) {
	fm.mu.Lock()
	defer fm.mu.Unlock()
	inst.Worn = false
	inst.Wielded = false
	fm.squares[pos] = append(fm.squares[pos], inst)
}

// Pickup removes and returns the item with the given ID from pos.
func (fm *FloorManager) Pickup(pos grid.Pos, id string) (*item.Instance, bool) {
	fm.mu.Lock()
	defer fm.mu.Unlock()
	items := fm.squares[pos]
	for i, inst := range items {
		if inst.ID == id {
			fm.squares[pos] = append(items[:i], items[i+1:]...)
			return inst, true
		}
	}
	return nil, false
}

// ItemsAt returns a snapshot of the items at pos.
//
// Postcondition: returned slice is a copy.
func (fm *FloorManager) ItemsAt(pos grid.Pos) []*item.Instance {
	fm.mu.RLock()
	defer fm.mu.RUnlock()
	items := fm.squares[pos]
	out := make([]*item.Instance, len(items))
	copy(out, items)
	return out
}

// Count returns the total number of item entries on the floor.
func (fm *FloorManager) Count() int {
	fm.mu.RLock()
	defer fm.mu.RUnlock()
	n := 0
	for _, items := range fm.squares {
		n += len(items)
	}
	return n
}
