package combat

import (
	"github.com/cory-johannsen/delve/internal/game/actor"
	"github.com/cory-johannsen/delve/internal/game/condition"
	"github.com/cory-johannsen/delve/internal/game/item"
)

// ApplyPassive runs the defender's passive defense against an attacker that
// just landed a contact attack. It runs even when the hit killed the
// defender; the retaliations in the second stage need both combatants alive,
// an uncancelled defender and a passed rn2(3) gate.
//
// Postcondition: the result contains AttackerDied iff the attacker died
// during this call.
func ApplyPassive(sim *Simulation, attacker, defender actor.Actor, atk actor.Attack) Outcome {
	ab, db := attacker.Core(), defender.Core()
	if ab.Dead {
		return 0
	}
	passive, ok := db.Form.Passive()
	if !ok {
		return 0
	}

	var tmp int
	switch {
	case passive.Dice.Count > 0:
		tmp = sim.Dice.D(passive.Dice.Count, passive.Dice.Sides)
	case passive.Dice.Sides > 0:
		tmp = sim.Dice.D(db.Level+1, passive.Dice.Sides)
	}

	var weapon *item.Instance
	if atk.Kind == actor.AttackWeapon {
		weapon = ab.Inventory().Wielded()
	}
	cancelled := isCancelled(defender)

	switch passive.Damage {
	case actor.DamageAcid:
		if sim.Dice.Rn2(2) != 0 {
			sim.notify("%s is splashed by %s's acid!", attacker.Name(), defender.Name())
			if !ab.Resistant(actor.ResistAcid) {
				hurt(attacker, tmp)
			}
			if sim.Dice.Rn2(ErosionOdds) == 0 {
				erodeArmor(sim, attacker, item.ErodeCorrode)
			}
		}
		if weapon != nil && sim.Dice.Rn2(6) == 0 {
			erodeItem(sim, attacker, weapon, item.ErodeCorrode)
		}
	case actor.DamagePetrify:
		if bareContact(ab, atk, weapon) && !ab.Resistant(actor.ResistPetrify) {
			petrify(sim, attacker)
		}
	case actor.DamageRust:
		if weapon != nil && !cancelled {
			erodeItem(sim, attacker, weapon, item.ErodeRust)
		}
	case actor.DamageCorrode:
		if weapon != nil && !cancelled {
			erodeItem(sim, attacker, weapon, item.ErodeCorrode)
		}
	case actor.DamageFire:
		if !cancelled {
			if atk.Kind == actor.AttackKick {
				if boots := ab.Inventory().Worn(item.SlotBoots); boots != nil && sim.Dice.Rn2(6) == 0 {
					erodeItem(sim, attacker, boots, item.ErodeBurn)
				}
			} else if weapon != nil {
				erodeItem(sim, attacker, weapon, item.ErodeBurn)
			}
		}
	}

	if ab.Alive() && db.Alive() && !cancelled && sim.Dice.Rn2(3) != 0 {
		retaliate(sim, passive.Damage, attacker, defender, tmp)
	}

	if settle(sim, attacker, defender) {
		return AttackerDied
	}
	return 0
}

func retaliate(sim *Simulation, dt actor.DamageType, attacker, defender actor.Actor, tmp int) {
	ab, db := attacker.Core(), defender.Core()
	switch dt {
	case actor.DamageParalyze:
		if ab.Has(condition.Blinded) {
			return
		}
		if ab.Status.Apply(condition.Paralyzed, tmp) {
			sim.notify("%s is frozen by %s!", attacker.Name(), defender.Name())
		}
	case actor.DamageCold:
		if ab.Resistant(actor.ResistCold) {
			sim.notify("%s feels mildly chilly.", attacker.Name())
		} else {
			sim.notify("%s is suddenly very cold!", attacker.Name())
			hurt(attacker, tmp)
		}
		db.Heal(tmp / 2)
	case actor.DamageStun:
		if ab.Status.Apply(condition.Stunned, tmp) {
			sim.notify("%s staggers.", attacker.Name())
		}
	case actor.DamageFire:
		if ab.Resistant(actor.ResistFire) {
			sim.notify("%s feels mildly warm.", attacker.Name())
		} else {
			sim.notify("%s is suddenly very hot!", attacker.Name())
			hurt(attacker, tmp)
		}
	case actor.DamageShock:
		if ab.Resistant(actor.ResistShock) {
			sim.notify("%s feels a mild tingle.", attacker.Name())
		} else {
			sim.notify("%s is jolted with electricity!", attacker.Name())
			hurt(attacker, tmp)
		}
	case actor.DamageWrap:
		if ab.Status.Apply(condition.Stuck, condition.Permanent) {
			sim.notify("%s is enveloped by %s.", attacker.Name(), defender.Name())
		}
	}
}

// bareContact reports whether the attacker's skin touched the defender:
// bites always do, hand attacks unless gloved or using a weapon, kicks
// unless booted.
func bareContact(ab *actor.Body, atk actor.Attack, weapon *item.Instance) bool {
	inv := ab.Inventory()
	switch {
	case atk.Kind == actor.AttackKick:
		return inv.Worn(item.SlotBoots) == nil
	case atk.Kind == actor.AttackWeapon:
		return weapon == nil && inv.Worn(item.SlotGloves) == nil
	case atk.Kind.UsesHands():
		return inv.Worn(item.SlotGloves) == nil
	default:
		return atk.Kind.Contact()
	}
}

func isCancelled(a actor.Actor) bool {
	m, ok := a.(*actor.Monster)
	return ok && m.Cancelled
}
