package combat

import (
	"github.com/cory-johannsen/delve/internal/game/actor"
	"github.com/cory-johannsen/delve/internal/game/dice"
)

// ArmorReductionThreshold is the AC above which armor absorbs damage.
const ArmorReductionThreshold = 20

// Multiplier is the resistance factor applied to rolled damage.
type Multiplier int

const (
	Full Multiplier = iota
	Half
	Nullified
)

func (m Multiplier) apply(n int) int {
	switch m {
	case Half:
		return (n + 1) / 2
	case Nullified:
		return 0
	default:
		return n
	}
}

// DamageRoll is the result of RollDamage.
type DamageRoll struct {
	Dice       []int
	Rolled     int
	Bonus      int
	Reduction  int
	Multiplier Multiplier
	// Total is the damage to apply.
	Total int
}

// RollDamage rolls atk's dice and adjusts the sum.
//
// The dice are always drawn, one per die. Then the attacker's damage bonus
// and, for weapon attacks, the wielded weapon's enchantment are added, armor
// above ArmorReductionThreshold is subtracted with a floor of 1 for any
// positive roll, and finally the defender's resistance multiplies the result
// by 0 or 1/2 rounded up.
//
// Postcondition: Total >= 0; len(Dice) == atk.Dice.Count when Sides > 0.
func RollDamage(sim *Simulation, atk actor.Attack, attacker, defender actor.Actor) DamageRoll {
	res := sim.Dice.Roll(dice.Expression{Count: atk.Dice.Count, Sides: atk.Dice.Sides})
	dr := DamageRoll{Dice: res.Dice, Rolled: res.Total()}

	dr.Bonus = attacker.DamageBonus()
	if atk.Kind == actor.AttackWeapon {
		if w := attacker.Core().Inventory().Wielded(); w != nil {
			dr.Bonus += w.Enchantment
		}
	}
	n := dr.Rolled + dr.Bonus
	if ac := defender.Core().EffectiveAC(); ac > ArmorReductionThreshold {
		dr.Reduction = ac - ArmorReductionThreshold
		n -= dr.Reduction
	}
	if dr.Rolled > 0 && n < 1 {
		n = 1
	}
	if n < 0 {
		n = 0
	}
	dr.Multiplier = ResistanceMultiplier(atk.Damage, defender)
	dr.Total = dr.Multiplier.apply(n)
	return dr
}

// ResistanceMultiplier returns how defender's resistances scale damage of
// type dt.
func ResistanceMultiplier(dt actor.DamageType, defender actor.Actor) Multiplier {
	b := defender.Core()
	if r := dt.Resistance(); r != 0 && b.Resistant(r) {
		return Nullified
	}
	if dt.Physical() && b.Resistant(actor.HalfPhysical) {
		return Half
	}
	return Full
}
