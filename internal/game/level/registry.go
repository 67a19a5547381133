// Package level tracks which actors are on the current level and where they
// stand.
package level

import (
	"fmt"
	"sort"
	"sync"

	"github.com/cory-johannsen/delve/internal/game/actor"
	"github.com/cory-johannsen/delve/internal/game/grid"
)

// Registry tracks live actors by ID and by position.
// All methods are safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	byID   map[string]actor.Actor
	byPos  map[grid.Pos]actor.Actor
	width  int
	height int
}

// NewRegistry creates an empty Registry for a width x height map. A
// non-positive dimension leaves that axis unbounded.
func NewRegistry(width, height int) *Registry {
	return &Registry{
		byID:   make(map[string]actor.Actor),
		byPos:  make(map[grid.Pos]actor.Actor),
		width:  width,
		height: height,
	}
}

// InBounds reports whether p lies on the map.
func (r *Registry) InBounds(p grid.Pos) bool {
	if p.X < 0 || p.Y < 0 {
		return false
	}
	return (r.width <= 0 || p.X < r.width) && (r.height <= 0 || p.Y < r.height)
}

// Place registers a at its current position.
//
// Precondition: a is non-nil, its ID is unused and its square is free and in bounds.
// Postcondition: ActorAt(a.Core().Pos) == a.
func (r *Registry) Place(a actor.Actor) error {
	if a == nil {
		return fmt.Errorf("level.Registry.Place: actor must not be nil")
	}
	pos := a.Core().Pos
	if !r.InBounds(pos) {
		return fmt.Errorf("level.Registry.Place: %s at %s is out of bounds", a.ID(), pos)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[a.ID()]; ok {
		return fmt.Errorf("level.Registry.Place: actor %q already placed", a.ID())
	}
	if other, ok := r.byPos[pos]; ok {
		return fmt.Errorf("level.Registry.Place: %s is occupied by %q", pos, other.ID())
	}
	r.byID[a.ID()] = a
	r.byPos[pos] = a
	return nil
}

// ActorAt returns the actor standing at p, or nil.
func (r *Registry) ActorAt(p grid.Pos) actor.Actor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byPos[p]
}

// IsOccupied reports whether an actor stands at p.
func (r *Registry) IsOccupied(p grid.Pos) bool {
	return r.ActorAt(p) != nil
}

// Get returns the actor with the given ID.
func (r *Registry) Get(id string) (actor.Actor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byID[id]
	return a, ok
}

// RemoveActor takes a off the level and reports whether it was present.
//
// Postcondition: Get(a.ID()) reports false.
func (r *Registry) RemoveActor(a actor.Actor) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.byID[a.ID()]
	if !ok {
		return false
	}
	delete(r.byID, a.ID())
	pos := cur.Core().Pos
	if r.byPos[pos] == cur {
		delete(r.byPos, pos)
	}
	return true
}

// Move relocates a to `to`.
//
// Precondition: a is placed; `to` is free and in bounds.
func (r *Registry) Move(a actor.Actor, to grid.Pos) error {
	if !r.InBounds(to) {
		return fmt.Errorf("level.Registry.Move: %s is out of bounds", to)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[a.ID()]; !ok {
		return fmt.Errorf("level.Registry.Move: actor %q not placed", a.ID())
	}
	if other, ok := r.byPos[to]; ok && other != a {
		return fmt.Errorf("level.Registry.Move: %s is occupied by %q", to, other.ID())
	}
	body := a.Core()
	if r.byPos[body.Pos] == a {
		delete(r.byPos, body.Pos)
	}
	body.Pos = to
	r.byPos[to] = a
	return nil
}

// All returns every placed actor sorted by ID.
func (r *Registry) All() []actor.Actor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]actor.Actor, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// Len returns the number of placed actors.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}
