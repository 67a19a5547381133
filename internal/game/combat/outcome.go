// Package combat resolves melee between actors: to-hit, damage, the damage
// type effect dispatcher, passive retaliation, engulfing and death.
//
// Every random value is drawn from Simulation.Dice in a fixed order so that
// a recorded draw trace replays call-for-call. Resistances and other
// outcome-dependent rules are applied after draws, never instead of them.
package combat

import "strings"

// Outcome is a set of flags describing what one attack, or a whole round,
// did.
type Outcome uint8

const (
	Missed Outcome = 1 << iota
	Hit
	DefenderDied
	AttackerDied
	DefenderExpelled
	TurnConsumed
)

var outcomeNames = []struct {
	flag Outcome
	name string
}{
	{Missed, "missed"},
	{Hit, "hit"},
	{DefenderDied, "defender_died"},
	{AttackerDied, "attacker_died"},
	{DefenderExpelled, "defender_expelled"},
	{TurnConsumed, "turn_consumed"},
}

// Has reports whether every flag of f is set.
func (o Outcome) Has(f Outcome) bool { return f != 0 && o&f == f }

// String renders the set flags joined by "|", or "none".
func (o Outcome) String() string {
	var parts []string
	for _, n := range outcomeNames {
		if o&n.flag != 0 {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// ParseOutcome is the inverse of Outcome.String.
func ParseOutcome(s string) Outcome {
	var o Outcome
	for _, part := range strings.Split(s, "|") {
		for _, n := range outcomeNames {
			if n.name == part {
				o |= n.flag
			}
		}
	}
	return o
}
