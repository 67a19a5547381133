package combat

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/delve/internal/game/actor"
)

// Phase names the orchestrator states, used in debug logs.
type Phase int

const (
	PhaseSelecting Phase = iota
	PhaseToHit
	PhaseEffect
	PhasePassive
	PhaseContinue
)

func (p Phase) String() string {
	switch p {
	case PhaseSelecting:
		return "selecting"
	case PhaseToHit:
		return "to_hit"
	case PhaseEffect:
		return "effect"
	case PhasePassive:
		return "passive"
	default:
		return "continue"
	}
}

// AttackRound runs attacker's full attack list against defender and returns
// the aggregated outcome.
//
// Descriptors are evaluated in declared order. Passive descriptors are
// skipped. When a weapon descriptor is selected by a monster whose weapon
// check demands a weapon, it wields one instead; that consumes the turn and
// ends the round, keeping the results of earlier descriptors. While the attacker holds the
// defender engulfed only its engulf descriptor runs, without a to-hit roll.
// The round stops as soon as either combatant dies or the defender is
// expelled.
//
// Precondition: sim is non-nil.
// Postcondition: no draws are taken when either combatant is absent or
// dead; otherwise a TurnCompleted event is emitted after resolution.
func AttackRound(sim *Simulation, attacker, defender actor.Actor) Outcome {
	if attacker == nil || defender == nil {
		sim.Logger.Warn("attack round without both combatants")
		return 0
	}
	ab, db := attacker.Core(), defender.Core()
	if !ab.Alive() || !db.Alive() {
		sim.Logger.Debug("attack round skipped",
			zap.String("attacker", attacker.ID()), zap.Bool("attacker_alive", ab.Alive()),
			zap.String("defender", defender.ID()), zap.Bool("defender_alive", db.Alive()))
		return 0
	}

	var out Outcome
	attacks := append([]actor.Attack(nil), ab.Attacks...)
	for i, atk := range attacks {
		sim.Logger.Debug("attack descriptor",
			zap.String("attacker", attacker.ID()), zap.Int("index", i),
			zap.Stringer("attack", atk), zap.Stringer("phase", PhaseSelecting))
		if atk.Passive() {
			continue
		}
		if ab.Swallowing() {
			if ab.Engulf.Victim != defender || !isEngulfAttack(atk) {
				continue
			}
			out |= continueEngulf(sim, atk, attacker, defender)
		} else if atk.Kind == actor.AttackWeapon && wieldFirst(sim, attacker) {
			break
		} else {
			out |= resolveAttack(sim, atk, attacker, defender)
		}
		if ab.Dead || db.Dead || out.Has(DefenderExpelled) {
			break
		}
	}

	out |= TurnConsumed
	finishRound(sim, attacker, defender, out)
	return out
}

// wieldFirst wields the attacker's best weapon when its weapon check asks for
// one, and reports whether it did.
func wieldFirst(sim *Simulation, attacker actor.Actor) bool {
	m, ok := attacker.(*actor.Monster)
	if !ok || !m.WantsWeapon() {
		return false
	}
	w := m.Inventory().BestWeapon()
	if w == nil {
		return false
	}
	if err := m.Wield(w); err != nil {
		sim.Logger.Error("impossible: wield failed", zap.String("actor", m.ID()), zap.Error(err))
		return false
	}
	sim.notify("%s wields %s!", m.Name(), w.Name())
	return true
}

// resolveAttack runs one descriptor through to-hit, damage, effect and
// passive.
func resolveAttack(sim *Simulation, atk actor.Attack, attacker, defender actor.Actor) Outcome {
	hr := ResolveHit(sim, attacker, defender, atk)

	if atk.Kind == actor.AttackExplode {
		dr := RollDamage(sim, atk, attacker, defender)
		if hr.Hit {
			return ApplyEffect(sim, atk, attacker, defender, dr.Total)
		}
		return Missed | selfDestruct(sim, atk, attacker, dr.Total)
	}

	if !hr.Hit {
		sim.notify("%s misses %s.", attacker.Name(), defender.Name())
		return Missed
	}
	dr := RollDamage(sim, atk, attacker, defender)
	sim.Logger.Debug("damage",
		zap.String("attacker", attacker.ID()), zap.Ints("dice", dr.Dice),
		zap.Int("total", dr.Total), zap.Stringer("phase", PhaseEffect))
	sim.notify("%s hits %s.", attacker.Name(), defender.Name())
	out := ApplyEffect(sim, atk, attacker, defender, dr.Total)

	if atk.Kind.Contact() && !attacker.Core().Dead {
		sim.Logger.Debug("passive", zap.String("defender", defender.ID()), zap.Stringer("phase", PhasePassive))
		out |= ApplyPassive(sim, attacker, defender, atk)
	}
	return out
}

func finishRound(sim *Simulation, attacker, defender actor.Actor, out Outcome) {
	sim.Logger.Debug("attack round",
		zap.String("attacker", attacker.ID()),
		zap.String("defender", defender.ID()),
		zap.Stringer("outcome", out),
		zap.Stringer("phase", PhaseContinue))
	sim.emit(Event{
		Kind:     EventTurnCompleted,
		ActorID:  attacker.ID(),
		TargetID: defender.ID(),
		Outcome:  out,
		Pos:      attacker.Core().Pos,
	})
}
