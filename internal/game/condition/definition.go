// Package condition tracks timed status flags on combatants and the
// to-hit modifiers they impose.
package condition

import (
	"fmt"
	"strings"
)

// Flag identifies one status condition.
type Flag int

const (
	Confused Flag = iota
	Stunned
	Paralyzed
	Sleeping
	Blinded
	Poisoned
	Engulfed
	Slowed
	Hallucinating
	Sick
	Slimed
	Stuck
	WoundedLegs
	Petrified

	flagCount
)

// Permanent is the duration of a condition that never expires by ticking.
const Permanent = -1

// Def is the static description of a Flag.
type Def struct {
	Flag Flag
	Name string
	// AttackPenalty is subtracted from the afflicted actor's to-hit rolls.
	AttackPenalty int
	// Exposure is added to to-hit rolls made against the afflicted actor.
	Exposure int
	// Helpless conditions make the afflicted actor automatically hit.
	Helpless bool
}

var defs = [flagCount]Def{
	Confused:      {Flag: Confused, Name: "confused", AttackPenalty: 2},
	Stunned:       {Flag: Stunned, Name: "stunned", AttackPenalty: 2, Exposure: 2},
	Paralyzed:     {Flag: Paralyzed, Name: "paralyzed", Helpless: true},
	Sleeping:      {Flag: Sleeping, Name: "sleeping", Helpless: true},
	Blinded:       {Flag: Blinded, Name: "blinded", AttackPenalty: 2, Exposure: 2},
	Poisoned:      {Flag: Poisoned, Name: "poisoned"},
	Engulfed:      {Flag: Engulfed, Name: "engulfed"},
	Slowed:        {Flag: Slowed, Name: "slowed"},
	Hallucinating: {Flag: Hallucinating, Name: "hallucinating"},
	Sick:          {Flag: Sick, Name: "sick"},
	Slimed:        {Flag: Slimed, Name: "slimed"},
	Stuck:         {Flag: Stuck, Name: "stuck"},
	WoundedLegs:   {Flag: WoundedLegs, Name: "wounded legs"},
	Petrified:     {Flag: Petrified, Name: "petrified", Helpless: true},
}

// Lookup returns the static definition of f.
//
// Precondition: f is a declared Flag.
func Lookup(f Flag) Def {
	if f < 0 || f >= flagCount {
		panic(fmt.Sprintf("condition.Lookup: unknown flag %d", int(f)))
	}
	return defs[f]
}

// String returns the flag's display name.
func (f Flag) String() string {
	if f < 0 || f >= flagCount {
		return fmt.Sprintf("flag(%d)", int(f))
	}
	return defs[f].Name
}

// ParseFlag resolves a display name, case-insensitively.
func ParseFlag(name string) (Flag, error) {
	for _, d := range defs {
		if strings.EqualFold(d.Name, name) {
			return d.Flag, nil
		}
	}
	return 0, fmt.Errorf("condition: unknown flag %q", name)
}

// Flags returns every declared Flag in declaration order.
func Flags() []Flag {
	out := make([]Flag, flagCount)
	for i := range out {
		out[i] = Flag(i)
	}
	return out
}
