package combat

import (
	"github.com/cory-johannsen/delve/internal/game/actor"
)

// DigestTimer returns the rounds an engulfer of the given level needs to
// digest its victim.
func DigestTimer(level int) int {
	t := (25 - level) / 2
	if t < 2 {
		t = 2
	}
	return t
}

// startEngulf links attacker and defender. Non-digesting engulfers apply
// their inner effect on the swallowing round as well.
func startEngulf(sim *Simulation, e Engulf, atk actor.Attack, attacker, defender actor.Actor, dmg int) Outcome {
	ab, db := attacker.Core(), defender.Core()
	if ab.Engulf != nil || db.Engulf != nil {
		if e.Inner != nil {
			return dispatch(sim, e.Inner, atk, attacker, defender, dmg)
		}
		return 0
	}
	actor.Engulf(attacker, defender, e.Damage, DigestTimer(ab.Level))
	if atk.Kind == actor.AttackEngulf {
		sim.notify("%s engulfs %s!", attacker.Name(), defender.Name())
	} else {
		sim.notify("%s swings itself around %s!", attacker.Name(), defender.Name())
	}
	sim.emit(Event{Kind: EventEngulfed, ActorID: attacker.ID(), TargetID: defender.ID(), Pos: ab.Pos})
	if e.Inner != nil {
		return dispatch(sim, e.Inner, atk, attacker, defender, dmg)
	}
	return 0
}

// isEngulfAttack reports whether atk classifies as an engulf.
func isEngulfAttack(atk actor.Attack) bool {
	_, ok := Classify(atk).(Engulf)
	return ok
}

// continueEngulf runs one held round without a to-hit roll: first the
// escape draw, then the damage dice, then the inner effect or digestion.
func continueEngulf(sim *Simulation, atk actor.Attack, attacker, defender actor.Actor) Outcome {
	link := attacker.Core().Engulf
	if sim.Dice.Rn2(sim.Rules.EngulfEscapeOdds) == 0 {
		link.Release()
		sim.notify("%s expels %s!", attacker.Name(), defender.Name())
		sim.emit(Event{Kind: EventExpelled, ActorID: attacker.ID(), TargetID: defender.ID(), Pos: attacker.Core().Pos})
		return DefenderExpelled
	}

	dr := RollDamage(sim, atk, attacker, defender)
	inner := engulfInner(link.Damage)
	if inner != nil {
		return Hit | dispatch(sim, inner, atk, attacker, defender, dr.Total)
	}

	link.Timer--
	if link.Timer > 0 {
		sim.notify("%s is being digested.", defender.Name())
		return Hit
	}
	db := defender.Core()
	db.Cause = CauseDigested
	db.HP = 0
	sim.notify("%s is totally digested!", defender.Name())
	out := Hit
	if settle(sim, defender, attacker) {
		out |= DefenderDied
	}
	return out
}
