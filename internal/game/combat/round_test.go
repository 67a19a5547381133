package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/delve/internal/game/actor"
	"github.com/cory-johannsen/delve/internal/game/combat"
	"github.com/cory-johannsen/delve/internal/game/condition"
	"github.com/cory-johannsen/delve/internal/game/dice"
)

func TestAttackRound_HitAndDamage(t *testing.T) {
	// rnd(20)=15, d(8)=5
	f := newFixture(t, 14, 4)
	m := monster("orc", form("orc", 2, attack(actor.AttackClaw, actor.DamagePhys, 1, 8)))
	h := hero(20)
	f.place(t, m, 1, 1)
	f.place(t, h, 2, 1)
	require.Equal(t, 2, m.ToHitBonus())
	require.Equal(t, 10, h.EffectiveAC())

	out := combat.AttackRound(f.sim, m, h)

	assert.True(t, out.Has(combat.Hit))
	assert.True(t, out.Has(combat.TurnConsumed))
	assert.False(t, out.Has(combat.Missed))
	assert.Equal(t, 15, h.HP)
	assert.Equal(t, []string{"rnd(20)", "d(8)"}, f.calls())
	assert.Zero(t, f.src.Remaining())
	assert.Equal(t, 1, f.events.Count(combat.EventTurnCompleted))
}

func TestAttackRound_Miss(t *testing.T) {
	f := newFixture(t, 0)
	m := monster("orc", form("orc", 1, attack(actor.AttackClaw, actor.DamagePhys, 1, 8)))
	h := hero(20)

	out := combat.AttackRound(f.sim, m, h)
	assert.Equal(t, combat.Missed|combat.TurnConsumed, out)
	assert.Equal(t, 20, h.HP)
	assert.Equal(t, []string{"rnd(20)"}, f.calls())
}

func TestAttackRound_FireResistedStillRollsDice(t *testing.T) {
	// rnd(20)=20, 6d6 = 6+5+4+3+2+1 = 21, rn2(30) burn chance fails
	f := newFixture(t, 19, 5, 4, 3, 2, 1, 0, 7)
	m := monster("hound", form("hound", 3, attack(actor.AttackBite, actor.DamageFire, 6, 6)))
	h := hero(30)
	h.Resists |= actor.ResistFire

	out := combat.AttackRound(f.sim, m, h)
	assert.True(t, out.Has(combat.Hit))
	assert.Equal(t, 30, h.HP)
	assert.Equal(t, []string{"rnd(20)", "d(6)", "d(6)", "d(6)", "d(6)", "d(6)", "d(6)", "rn2(30)"}, f.calls())
}

func TestAttackRound_ResistanceDoesNotChangeDrawCount(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Int64().Draw(rt, "seed")
		dt := rapid.SampledFrom([]actor.DamageType{actor.DamageFire, actor.DamageCold, actor.DamageShock, actor.DamageAcid}).Draw(rt, "type")
		count := rapid.IntRange(1, 8).Draw(rt, "count")

		run := func(resist bool) ([]dice.Draw, combat.Outcome) {
			f := newFixtureWithSource(t, dice.NewSeededSource(seed), nil)
			m := monster("m", form("m", 5, attack(actor.AttackBite, dt, count, 6)))
			h := hero(1000)
			if resist {
				h.Resists |= dt.Resistance()
			}
			out := combat.AttackRound(f.sim, m, h)
			if resist {
				assert.Equal(rt, 1000, h.HP)
			}
			return f.rec.Draws(), out
		}
		plain, outPlain := run(false)
		resisted, outResisted := run(true)
		assert.Equal(rt, plain, resisted)
		assert.Equal(rt, outPlain, outResisted)
	})
}

func TestAttackRound_EngulfEscapeSequence(t *testing.T) {
	f := newFixture(t,
		19, 1, // round 1: rnd(20)=20 hit, d(4)=2
		3, 0, // round 2: escape rn2(8) fails, d(4)=1
		0, // round 3: escape succeeds
	)
	e := monster("vortex", form("vortex", 5, attack(actor.AttackEngulf, actor.DamagePhys, 1, 4)))
	h := hero(30)
	f.place(t, e, 1, 1)
	f.place(t, h, 2, 1)

	out := combat.AttackRound(f.sim, e, h)
	assert.True(t, out.Has(combat.Hit))
	assert.True(t, h.Has(condition.Engulfed))
	assert.True(t, e.Swallowing())
	assert.Equal(t, 28, h.HP)
	assert.Equal(t, 1, f.events.Count(combat.EventEngulfed))

	out = combat.AttackRound(f.sim, e, h)
	assert.True(t, out.Has(combat.Hit))
	assert.False(t, out.Has(combat.DefenderExpelled))
	assert.True(t, h.Has(condition.Engulfed))
	assert.Equal(t, 27, h.HP)

	out = combat.AttackRound(f.sim, e, h)
	assert.True(t, out.Has(combat.DefenderExpelled))
	assert.False(t, out.Has(combat.Hit))
	assert.False(t, h.Has(condition.Engulfed))
	assert.False(t, e.Swallowing())
	assert.Equal(t, 27, h.HP)

	assert.Equal(t, []string{"rnd(20)", "d(4)", "rn2(8)", "d(4)", "rn2(8)"}, f.calls())
	assert.Zero(t, f.src.Remaining())
}

func TestAttackRound_EngulferSkipsOtherAttacksWhileHolding(t *testing.T) {
	// held round: escape rn2(8)=2 fails, d(4)=1; the bite is skipped
	f := newFixture(t, 2, 0)
	e := monster("worm", form("worm", 5,
		attack(actor.AttackBite, actor.DamagePhys, 1, 8),
		attack(actor.AttackEngulf, actor.DamagePhys, 1, 4),
	))
	h := hero(30)
	actor.Engulf(e, h, actor.DamagePhys, combat.DigestTimer(5))

	out := combat.AttackRound(f.sim, e, h)
	assert.True(t, out.Has(combat.Hit))
	assert.Equal(t, 29, h.HP)
	assert.Equal(t, []string{"rn2(8)", "d(4)"}, f.calls())
	assert.Zero(t, f.src.Remaining())
}

func TestAttackRound_Digestion(t *testing.T) {
	f := newFixture(t,
		19, 0, // swallow: rnd(20), d(2)
		1, 0, // held: rn2(8), d(2); timer 2 -> 1
		1, 0, // held: rn2(8), d(2); timer 1 -> 0
		3, // death: rn2(6)
	)
	w := monster("worm", form("worm", 21, attack(actor.AttackEngulf, actor.DamageDigest, 1, 2)))
	h := hero(30)
	f.place(t, w, 1, 1)
	f.place(t, h, 2, 1)
	require.Equal(t, 2, combat.DigestTimer(21))

	combat.AttackRound(f.sim, w, h)
	assert.Equal(t, 30, h.HP)
	combat.AttackRound(f.sim, w, h)
	assert.True(t, h.Alive())
	out := combat.AttackRound(f.sim, w, h)

	assert.True(t, out.Has(combat.DefenderDied))
	assert.True(t, h.Dead)
	assert.Equal(t, combat.CauseDigested, h.Cause)
	assert.False(t, w.Swallowing())
	assert.Zero(t, f.floor.Count())
	assert.Zero(t, f.src.Remaining())
	assert.False(t, f.level.IsOccupied(h.Pos))
}

func TestAttackRound_ShortCircuitsOnDeath(t *testing.T) {
	// first claw: rnd(20)=20, d(4)=4 kills; death: rn2(6), corpse rn2(2)=1 none
	f := newFixture(t, 19, 3, 0, 1)
	m := monster("cat", form("cat", 3,
		attack(actor.AttackClaw, actor.DamagePhys, 1, 4),
		attack(actor.AttackClaw, actor.DamagePhys, 1, 4),
		attack(actor.AttackBite, actor.DamagePhys, 1, 4),
	))
	v := monster("newt", form("newt", 1))
	v.HP = 2
	f.place(t, m, 0, 0)
	f.place(t, v, 1, 0)

	out := combat.AttackRound(f.sim, m, v)

	assert.True(t, out.Has(combat.DefenderDied))
	assert.Equal(t, []string{"rnd(20)", "d(4)", "rn2(6)", "rn2(2)"}, f.calls())
	assert.Equal(t, 1, f.events.Count(combat.EventDeath))
	assert.Zero(t, f.src.Remaining())
	assert.Equal(t, combat.Experience(v), m.Experience)
}

func TestAttackRound_DeadParticipantsDrawNothing(t *testing.T) {
	f := newFixture(t)
	m := monster("orc", form("orc", 1, attack(actor.AttackClaw, actor.DamagePhys, 1, 8)))
	h := hero(10)
	h.Dead = true
	assert.Zero(t, combat.AttackRound(f.sim, m, h))
	assert.Zero(t, combat.AttackRound(f.sim, h, m))
	assert.Zero(t, combat.AttackRound(f.sim, nil, m))
	assert.Empty(t, f.calls())
	assert.Zero(t, f.events.Count(combat.EventTurnCompleted))
}

func TestAttackRound_WieldConsumesTurn(t *testing.T) {
	f := newFixture(t)
	m := monster("orc", form("orc", 1, attack(actor.AttackWeapon, actor.DamagePhys, 1, 4)))
	m.WeaponCheck = actor.NeedWeapon
	f.give(t, m, "club", 1)
	sword := f.give(t, m, "long_sword", 1)
	h := hero(10)

	out := combat.AttackRound(f.sim, m, h)

	assert.Equal(t, combat.TurnConsumed, out)
	assert.Empty(t, f.calls())
	assert.Same(t, sword, m.Inventory().Wielded())
	assert.Equal(t, actor.Dice{Count: 1, Sides: 8}, m.Attacks[0].Dice)
	assert.Equal(t, 1, f.events.Count(combat.EventTurnCompleted))
}

func TestAttackRound_WieldWaitsForWeaponDescriptor(t *testing.T) {
	// claw: rnd(20)=1 misses; the weapon descriptor then wields
	f := newFixture(t, 0)
	m := monster("orc", form("orc", 1,
		attack(actor.AttackClaw, actor.DamagePhys, 1, 4),
		attack(actor.AttackWeapon, actor.DamagePhys, 1, 4)))
	m.WeaponCheck = actor.NeedWeapon
	club := f.give(t, m, "club", 1)
	h := hero(10)

	out := combat.AttackRound(f.sim, m, h)

	assert.Equal(t, combat.Missed|combat.TurnConsumed, out)
	assert.Equal(t, []string{"rnd(20)"}, f.calls())
	assert.Same(t, club, m.Inventory().Wielded())
	assert.Zero(t, f.src.Remaining())
	assert.Equal(t, 1, f.events.Count(combat.EventTurnCompleted))
}

func TestAttackRound_WeaponCheckWithoutWeaponDescriptor(t *testing.T) {
	f := newFixture(t, 0)
	m := monster("orc", form("orc", 1, attack(actor.AttackClaw, actor.DamagePhys, 1, 4)))
	m.WeaponCheck = actor.NeedWeapon
	f.give(t, m, "club", 1)
	h := hero(10)

	out := combat.AttackRound(f.sim, m, h)

	assert.Equal(t, combat.Missed|combat.TurnConsumed, out)
	assert.Equal(t, []string{"rnd(20)"}, f.calls())
	assert.Nil(t, m.Inventory().Wielded())
}

func TestAttackRound_PassiveRunsAfterLethalHit(t *testing.T) {
	// claw: rnd(20)=20, d(4)=4 kills the blob
	// death: rn2(6), corpse rn2(2)=1 none
	// passive: d(8)=4, splash rn2(2)=1, armor rn2(30)=3
	f := newFixture(t, 19, 3, 0, 1, 3, 1, 3)
	m := monster("cat", form("cat", 3, attack(actor.AttackClaw, actor.DamagePhys, 1, 4)))
	blob := monster("blob", form("blob", 1, attack(actor.AttackNone, actor.DamageAcid, 1, 8)))
	blob.HP = 3

	out := combat.AttackRound(f.sim, m, blob)

	assert.True(t, out.Has(combat.DefenderDied))
	assert.Equal(t, 16, m.HP)
	assert.Equal(t, []string{"rnd(20)", "d(4)", "rn2(6)", "rn2(2)", "d(8)", "rn2(2)", "rn2(30)"}, f.calls())
}

func TestAttackRound_Explode(t *testing.T) {
	// rnd(20)=20, 4d6=4, death rn2(6)
	f := newFixture(t, 19, 0, 0, 0, 0, 2)
	sphere := monster("sphere", form("sphere", 6, attack(actor.AttackExplode, actor.DamageCold, 4, 6)))
	h := hero(30)
	f.place(t, sphere, 3, 3)

	out := combat.AttackRound(f.sim, sphere, h)

	assert.True(t, out.Has(combat.Hit))
	assert.True(t, out.Has(combat.AttackerDied))
	assert.Equal(t, 26, h.HP)
	assert.True(t, sphere.Dead)
	require.Len(t, f.area.blasts, 1)
	assert.Equal(t, actor.DamageCold, f.area.blasts[0].dt)
	assert.Equal(t, 4, f.area.blasts[0].dmg)
	assert.Zero(t, f.floor.Count())
	assert.Zero(t, f.src.Remaining())
}

func TestAttackRound_ExplodeMissStillDestroysAttacker(t *testing.T) {
	f := newFixture(t, 0, 5, 5, 0)
	sphere := monster("sphere", form("sphere", 1, attack(actor.AttackExplode, actor.DamageShock, 2, 6)))
	h := hero(30)

	out := combat.AttackRound(f.sim, sphere, h)

	assert.True(t, out.Has(combat.Missed))
	assert.True(t, out.Has(combat.AttackerDied))
	assert.Equal(t, 30, h.HP)
	assert.Equal(t, []string{"rnd(20)", "d(6)", "d(6)", "rn2(6)"}, f.calls())
}

func TestAttackRound_Deterministic(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Int64().Draw(rt, "seed")
		rounds := rapid.IntRange(1, 6).Draw(rt, "rounds")

		run := func() ([]dice.Draw, []combat.Outcome, int, int) {
			f := newFixtureWithSource(t, dice.NewSeededSource(seed), nil)
			m := monster("soldier_ant", form("soldier_ant", 3,
				attack(actor.AttackBite, actor.DamagePhys, 2, 4),
				attack(actor.AttackSting, actor.DamagePoison, 3, 4),
			))
			h := hero(40)
			h.Attacks = []actor.Attack{attack(actor.AttackWeapon, actor.DamagePhys, 1, 6)}
			f.place(t, m, 0, 0)
			f.place(t, h, 1, 0)
			var outs []combat.Outcome
			for i := 0; i < rounds; i++ {
				outs = append(outs, combat.AttackRound(f.sim, m, h))
				outs = append(outs, combat.AttackRound(f.sim, h, m))
			}
			return f.rec.Draws(), outs, h.HP, m.HP
		}
		d1, o1, hp1, mhp1 := run()
		d2, o2, hp2, mhp2 := run()
		assert.Equal(rt, d1, d2)
		assert.Equal(rt, o1, o2)
		assert.Equal(rt, hp1, hp2)
		assert.Equal(rt, mhp1, mhp2)
	})
}

func TestAttackRound_SingleDeathPerActor(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Int64().Draw(rt, "seed")
		f := newFixtureWithSource(t, dice.NewSeededSource(seed), nil)
		m := monster("hydra", form("hydra", 10,
			attack(actor.AttackBite, actor.DamagePhys, 4, 10),
			attack(actor.AttackBite, actor.DamagePhys, 4, 10),
			attack(actor.AttackBite, actor.DamagePhys, 4, 10),
		))
		v := monster("newt", form("newt", 1))
		v.HP = 1
		for i := 0; i < 5 && !v.Dead; i++ {
			combat.AttackRound(f.sim, m, v)
		}
		assert.LessOrEqual(rt, f.events.Count(combat.EventDeath), 1)
		assert.GreaterOrEqual(rt, v.HP, 0)
	})
}

func TestOutcome_String(t *testing.T) {
	o := combat.Hit | combat.DefenderDied
	assert.Equal(t, "hit|defender_died", o.String())
	assert.Equal(t, o, combat.ParseOutcome(o.String()))
	assert.Equal(t, "none", combat.Outcome(0).String())
}

func TestNewSimulation_Defaults(t *testing.T) {
	sim := combat.NewSimulation(dice.NewLoggedRoller(dice.NewSeededSource(1), zap.NewNop()), nil)
	assert.Equal(t, 8, sim.Rules.EngulfEscapeOdds)
	assert.Equal(t, 1, sim.Rules.DrainFloorHP)
	assert.Equal(t, 5, sim.RneCap())
	sim.Hero = hero(10)
	sim.Hero.Level = 21
	assert.Equal(t, 7, sim.RneCap())
}
