// Package dice provides the random draw source for the combat engine.
//
// Every random value consumed by the simulation flows through a Roller, which
// numbers each primitive draw, logs it, and hands it to attached tracers. A
// recorded trace can later be replayed with Playback to prove that a run
// consumed randomness in exactly the same order and quantity.
package dice

import "fmt"

// Source is the randomness provider behind a Roller.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// NamedSource is a Source that wants to see which roller function requested
// each draw. Playback implements it to assert call-for-call parity.
type NamedSource interface {
	Source
	// Draw returns a value in [0, n) for the roller function fn.
	Draw(fn string, n int) int
}

// Roller function names recorded with every draw.
const (
	FuncRn2 = "rn2"
	FuncRnd = "rnd"
	FuncD   = "d"
	FuncRne = "rne"
	FuncRnz = "rnz"
)

// RollResult holds the full audit trail for a single dice roll evaluation.
//
// Postcondition: Total() == sum(Dice) + Modifier.
type RollResult struct {
	Expression string // original expression string, e.g. "2d6+3"
	Dice       []int  // individual die results before modifier
	Modifier   int    // flat modifier (may be negative)
}

// Total returns the sum of all die results plus the modifier.
//
// Postcondition: return value == sum(r.Dice) + r.Modifier.
func (r RollResult) Total() int {
	total := r.Modifier
	for _, d := range r.Dice {
		total += d
	}
	return total
}

// String returns a human-readable audit string in the format:
//
//	"2d6+3 → [4 5] +3 = 12"
//
// Precondition: r.Expression is non-empty.
func (r RollResult) String() string {
	if r.Expression == "" {
		panic("dice: RollResult.String() precondition violated: Expression must be non-empty")
	}
	return fmt.Sprintf("%s → %v %+d = %d", r.Expression, r.Dice, r.Modifier, r.Total())
}
