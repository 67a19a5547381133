package combat

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/delve/internal/game/actor"
	"github.com/cory-johannsen/delve/internal/game/condition"
	"github.com/cory-johannsen/delve/internal/game/inventory"
)

// Causes of death that change what remains.
const (
	CausePetrified = "petrified"
	CauseDigested  = "digested"
	CauseExploded  = "exploded"
)

// RotAge is the base number of turns before a fresh corpse rots away.
const RotAge = 250

// Rot adjustments: corpses made while generating a level use the wider
// range.
const (
	RotAdjustLevelGen = 25
	RotAdjustPlay     = 10
)

// OnActorDeath finalizes victim's death exactly once: it awards killer the
// experience, draws the traditional rn2(6), decides the remains, spawns them,
// drops the victim's inventory, removes it from the level and emits a death
// event. A second call for the same victim is logged and ignored.
//
// Postcondition: victim.Core().Dead is true.
func OnActorDeath(sim *Simulation, victim, killer actor.Actor) *inventory.CorpseRecord {
	b := victim.Core()
	if b.Dead {
		sim.Logger.Error("impossible: death of an actor already dead",
			zap.String("actor", victim.ID()), zap.String("cause", b.Cause))
		return nil
	}
	b.Dead = true
	b.HP = 0
	if b.Engulf != nil {
		b.Engulf.Release()
	}

	if killer != nil && killer.Core() != b {
		xp := Experience(victim)
		killer.Core().Experience += xp
		sim.Logger.Debug("experience awarded",
			zap.String("killer", killer.ID()), zap.String("victim", victim.ID()), zap.Int("xp", xp))
	}

	sim.Dice.Rn2(6)

	rec := remains(sim, victim)
	if rec != nil && sim.Items != nil {
		if _, err := sim.Items.SpawnCorpse(*rec); err != nil {
			sim.Logger.Error("spawning remains", zap.String("actor", victim.ID()), zap.Error(err))
		}
	}
	if sim.Items != nil {
		sim.Items.DropInventory(b, b.Pos)
	}
	if sim.Level != nil {
		sim.Level.RemoveActor(victim)
	}
	if b.Cause != CausePetrified {
		sim.notify("%s dies!", victim.Name())
	}
	e := Event{Kind: EventDeath, ActorID: victim.ID(), Pos: b.Pos}
	if killer != nil {
		e.TargetID = killer.ID()
	}
	sim.emit(e)
	return rec
}

// remains decides whether victim leaves a statue, a corpse or nothing.
// Only the corpse chance of small rare-or-tiny-capable species draws, and
// every corpse draws its rot timer.
func remains(sim *Simulation, victim actor.Actor) *inventory.CorpseRecord {
	b := victim.Core()
	form := b.Form
	rec := &inventory.CorpseRecord{Name: victim.Name(), Pos: b.Pos}
	if form != nil {
		rec.SpeciesID = form.SpeciesID
		rec.Name = form.Name
		rec.Weight = form.Weight
	}
	if rec.SpeciesID == "" {
		rec.SpeciesID = victim.Name()
	}

	switch {
	case b.Cause == CausePetrified || b.Has(condition.Petrified):
		rec.Statue = true
		return rec
	case b.Cause == CauseDigested || b.Cause == CauseExploded:
		return nil
	case form != nil && form.NoCorpse:
		return nil
	}

	if b.Size() < actor.SizeLarge {
		odds := 2
		if form != nil && form.Rare() {
			odds++
		}
		if b.Size() == actor.SizeTiny {
			odds++
		}
		if sim.Dice.Rn2(odds) != 0 {
			return nil
		}
	}
	rec.RotTimer = RotTimer(sim)
	return rec
}

// RotTimer draws a fresh corpse's rot timer:
// RotAge + rnz(adjust) - adjust, with the adjustment depending on whether a
// level is being generated.
func RotTimer(sim *Simulation) int {
	adjust := RotAdjustPlay
	if sim.InLevelGen {
		adjust = RotAdjustLevelGen
	}
	return RotAge + sim.Dice.Rnz(adjust, sim.RneCap()) - adjust
}

// selfDestruct kills an exploding attacker and hands the blast to the area
// effects collaborator.
func selfDestruct(sim *Simulation, atk actor.Attack, attacker actor.Actor, dmg int) Outcome {
	ab := attacker.Core()
	if ab.Dead {
		return 0
	}
	sim.notify("%s explodes!", attacker.Name())
	if sim.Area != nil {
		sim.Area.Explode(ab.Pos, dmg, atk.Damage)
	}
	ab.Cause = CauseExploded
	ab.HP = 0
	if settle(sim, attacker, nil) {
		return AttackerDied
	}
	return 0
}
