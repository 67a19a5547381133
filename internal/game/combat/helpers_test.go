package combat_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cory-johannsen/delve/internal/game/actor"
	"github.com/cory-johannsen/delve/internal/game/combat"
	"github.com/cory-johannsen/delve/internal/game/dice"
	"github.com/cory-johannsen/delve/internal/game/grid"
	"github.com/cory-johannsen/delve/internal/game/inventory"
	"github.com/cory-johannsen/delve/internal/game/item"
	"github.com/cory-johannsen/delve/internal/game/level"
	"github.com/cory-johannsen/delve/internal/game/message"
)

type fixture struct {
	t       testing.TB
	sim     *combat.Simulation
	src     *dice.ScriptedSource
	rec     *dice.Recorder
	msgs    *message.Buffer
	events  *combat.EventLog
	level   *level.Registry
	floor   *inventory.FloorManager
	factory *inventory.Factory
	area    *areaLog
}

type blast struct {
	pos grid.Pos
	dmg int
	dt  actor.DamageType
}

type areaLog struct{ blasts []blast }

func (a *areaLog) Explode(pos grid.Pos, dmg int, dt actor.DamageType) {
	a.blasts = append(a.blasts, blast{pos: pos, dmg: dmg, dt: dt})
}

func itemDefs(t testing.TB) *item.Registry {
	t.Helper()
	reg := item.NewRegistry()
	for _, d := range []*item.Def{
		{ID: "gold", Name: "gold piece", Class: item.ClassGold, Material: item.MaterialGold, Stackable: true},
		{ID: "long_sword", Name: "long sword", Class: item.ClassWeapon, Material: item.MaterialIron, Damage: "1d8"},
		{ID: "club", Name: "club", Class: item.ClassWeapon, Material: item.MaterialWood, Damage: "1d6"},
		{ID: "plate_mail", Name: "plate mail", Class: item.ClassArmor, Material: item.MaterialIron, Slot: item.SlotBody, ACBonus: 7},
		{ID: "leather_cloak", Name: "leather cloak", Class: item.ClassArmor, Material: item.MaterialLeather, Slot: item.SlotCloak, ACBonus: 1},
		{ID: "leather_gloves", Name: "leather gloves", Class: item.ClassArmor, Material: item.MaterialLeather, Slot: item.SlotGloves, ACBonus: 1},
		{ID: "apple", Name: "apple", Class: item.ClassFood},
	} {
		require.NoError(t, reg.Register(d))
	}
	return reg
}

// newFixture builds a Simulation whose draws come from the scripted values,
// given as raw Intn results.
func newFixture(t testing.TB, draws ...int) *fixture {
	t.Helper()
	src := dice.NewScriptedSource(draws...)
	return newFixtureWithSource(t, src, src)
}

func newFixtureWithSource(t testing.TB, src dice.Source, scripted *dice.ScriptedSource) *fixture {
	t.Helper()
	roller := dice.NewLoggedRoller(src, zap.NewNop())
	rec := dice.NewRecorder()
	roller.Attach(rec)

	f := &fixture{
		t:      t,
		src:    scripted,
		rec:    rec,
		msgs:   &message.Buffer{},
		events: &combat.EventLog{},
		level:  level.NewRegistry(0, 0),
		floor:  inventory.NewFloorManager(),
		area:   &areaLog{},
	}
	f.factory = inventory.NewFactory(itemDefs(t), f.floor)
	f.sim = combat.NewSimulation(roller, zap.NewNop())
	f.sim.Level = f.level
	f.sim.Items = f.factory
	f.sim.Messages = f.msgs
	f.sim.Events = f.events
	f.sim.Area = f.area
	return f
}

// calls renders the recorded draws as "fn(arg)".
func (f *fixture) calls() []string {
	var out []string
	for _, d := range f.rec.Draws() {
		out = append(out, fmt.Sprintf("%s(%d)", d.Func, d.Arg))
	}
	return out
}

func (f *fixture) place(t testing.TB, a actor.Actor, x, y int) {
	t.Helper()
	a.Core().Pos = grid.Pos{X: x, Y: y}
	require.NoError(t, f.level.Place(a))
}

func (f *fixture) give(t testing.TB, a actor.Actor, defID string, qty int) *item.Instance {
	t.Helper()
	inst, err := f.factory.Create(defID, qty)
	require.NoError(t, err)
	got, err := a.Core().Inventory().Add(inst)
	require.NoError(t, err)
	return got
}

func attack(kind actor.AttackKind, dt actor.DamageType, count, sides int) actor.Attack {
	return actor.Attack{Kind: kind, Damage: dt, Dice: actor.Dice{Count: count, Sides: sides}}
}

func form(id string, lvl int, attacks ...actor.Attack) *actor.Form {
	return &actor.Form{
		SpeciesID: id, Name: id, Level: lvl, AC: 10, MaxHP: 20,
		Size: actor.SizeMedium, Frequency: 2, Attacks: attacks,
	}
}

func monster(id string, f *actor.Form) *actor.Monster {
	return actor.NewMonster(id, f)
}

func hero(maxHP int) *actor.Hero {
	h := actor.NewHero("hero", "hero", &actor.Form{SpeciesID: "human", Name: "human", Level: 1, AC: 10, MaxHP: maxHP, Size: actor.SizeMedium, Frequency: 2})
	return h
}
