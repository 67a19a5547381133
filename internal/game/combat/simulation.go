package combat

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/delve/internal/game/actor"
	"github.com/cory-johannsen/delve/internal/game/dice"
	"github.com/cory-johannsen/delve/internal/game/grid"
	"github.com/cory-johannsen/delve/internal/game/inventory"
	"github.com/cory-johannsen/delve/internal/game/item"
	"github.com/cory-johannsen/delve/internal/game/message"
)

// Registry is the actor index of the current level.
type Registry interface {
	ActorAt(p grid.Pos) actor.Actor
	RemoveActor(a actor.Actor) bool
	IsOccupied(p grid.Pos) bool
}

// ItemFactory materializes remains and moves items between holders.
type ItemFactory interface {
	SpawnCorpse(rec inventory.CorpseRecord) (inventory.ItemHandle, error)
	TakeItem(holder inventory.Holder, pred inventory.Predicate) *item.Instance
	DropInventory(holder inventory.Holder, pos grid.Pos) int
}

// AreaEffects receives area damage produced by exploding attackers.
type AreaEffects interface {
	Explode(pos grid.Pos, dmg int, dt actor.DamageType)
}

// FormCatalog lists the forms a polymorph can pick from, in a stable order.
type FormCatalog interface {
	Len() int
	FormAt(i int) *actor.Form
}

// Rules holds tunable combat constants.
type Rules struct {
	// EngulfEscapeOdds is n in the 1-in-n chance an engulfed victim is
	// expelled each engulfer turn.
	EngulfEscapeOdds int
	// DrainFloorHP is the hit point floor for a level 1 victim of level drain.
	DrainFloorHP int
}

// DefaultRules returns the standard combat constants.
func DefaultRules() Rules {
	return Rules{EngulfEscapeOdds: 8, DrainFloorHP: 1}
}

// Simulation carries everything a combat round needs. It is owned by the
// turn loop and threaded through every call; there is no package state.
type Simulation struct {
	Dice     *dice.Roller
	Level    Registry
	Items    ItemFactory
	Messages message.Sink
	Area     AreaEffects
	Events   EventSink
	Species  FormCatalog
	Logger   *zap.Logger
	Rules    Rules
	// InLevelGen is set while the level generator populates the map.
	InLevelGen bool
	Turn       int
	// Hero, when set, scales the long-tail timers.
	Hero *actor.Hero
}

// NewSimulation creates a Simulation over roller with default rules and no-op
// collaborators. Callers replace the fields they provide.
//
// Precondition: roller is non-nil.
func NewSimulation(roller *dice.Roller, logger *zap.Logger) *Simulation {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Simulation{
		Dice:     roller,
		Messages: message.Discard,
		Area:     noArea{},
		Events:   EventFunc(func(Event) {}),
		Logger:   logger.Named("combat"),
		Rules:    DefaultRules(),
	}
}

// RneCap returns the cap for Rne draws: 5 below hero level 15, then a third
// of the hero's level.
func (s *Simulation) RneCap() int {
	if s.Hero == nil || s.Hero.Level < 15 {
		return 5
	}
	return s.Hero.Level / 3
}

func (s *Simulation) notify(format string, args ...any) {
	if s.Messages != nil {
		s.Messages.Notify(fmt.Sprintf(format, args...))
	}
}

func (s *Simulation) emit(e Event) {
	if s.Events == nil {
		return
	}
	e.Turn = s.Turn
	s.Events.Emit(e)
}

type noArea struct{}

func (noArea) Explode(grid.Pos, int, actor.DamageType) {}
