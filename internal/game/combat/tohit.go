package combat

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/delve/internal/game/actor"
	"github.com/cory-johannsen/delve/internal/game/condition"
)

// HitRoll records one to-hit resolution.
type HitRoll struct {
	Roll   int
	Total  int
	Target int
	Hit    bool
	// Auto is set when the hit ignored the comparison.
	Auto bool
}

// ResolveHit decides whether atk lands. It draws exactly one rnd(20) on every
// path, including automatic hits and misses.
//
// Hit iff roll + attacker bonus - attacker condition penalty + defender
// exposure >= target, where target is the defender's effective AC, or its
// natural AC for gaze attacks. Helpless defenders and the attacker's own
// engulfer are hit automatically. A blinded gazer always misses.
func ResolveHit(sim *Simulation, attacker, defender actor.Actor, atk actor.Attack) HitRoll {
	roll := sim.Dice.Rnd(20)

	ab, db := attacker.Core(), defender.Core()
	target := db.EffectiveAC()
	if atk.Kind == actor.AttackGaze {
		target = db.NaturalAC()
	}
	total := roll + attacker.ToHitBonus() - condition.AttackPenalty(ab.Status) + condition.Exposure(db.Status)
	hr := HitRoll{Roll: roll, Total: total, Target: target}

	switch {
	case atk.Kind == actor.AttackGaze && ab.Has(condition.Blinded):
		hr.Hit = false
	case db.Helpless():
		hr.Hit, hr.Auto = true, true
	case ab.SwallowedBy() == defender:
		hr.Hit, hr.Auto = true, true
	default:
		hr.Hit = total >= target
	}

	sim.Logger.Debug("to-hit",
		zap.String("attacker", attacker.ID()),
		zap.String("defender", defender.ID()),
		zap.Stringer("attack", atk.Kind),
		zap.Int("roll", roll),
		zap.Int("total", total),
		zap.Int("target", target),
		zap.Bool("hit", hr.Hit),
	)
	return hr
}
