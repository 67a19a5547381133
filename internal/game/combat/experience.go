package combat

import "github.com/cory-johannsen/delve/internal/game/actor"

// Experience returns the experience awarded for killing victim:
//
//	(L+1)^2
//	+ (AC-13), doubled above AC 20, for natural AC >= 18
//	+ 5 for speed >= 24, else 3 for speed >= 18
//	+ per attack: 5 for weapons, 3 for other kinds beyond butt
//	+ per damage type: 2L for fire, cold, shock, sleep, poison and acid;
//	  50 for drain life, petrify and slime; L for any other non-physical
//	+ L per attack whose dice product exceeds 23
//	+ 7L for nasty species, + 50 above level 8
func Experience(victim actor.Actor) int {
	b := victim.Core()
	lvl := b.Level
	xp := (lvl + 1) * (lvl + 1)

	if ac := b.NaturalAC(); ac >= 18 {
		bonus := ac - 13
		if ac > 20 {
			bonus *= 2
		}
		xp += bonus
	}

	speed := 0
	nasty := false
	if b.Form != nil {
		speed = b.Form.Speed
		nasty = b.Form.Nasty
	}
	switch {
	case speed >= 24:
		xp += 5
	case speed >= 18:
		xp += 3
	}

	for _, atk := range b.Attacks {
		switch {
		case atk.Kind == actor.AttackWeapon:
			xp += 5
		case atk.Kind > actor.AttackButt:
			xp += 3
		}
		switch atk.Damage {
		case actor.DamagePhys:
		case actor.DamageFire, actor.DamageCold, actor.DamageShock, actor.DamageSleep,
			actor.DamagePoison, actor.DamagePoisonStr, actor.DamageAcid:
			xp += 2 * lvl
		case actor.DamageDrainLife, actor.DamagePetrify, actor.DamageSlime:
			xp += 50
		default:
			xp += lvl
		}
		if atk.Dice.Max() > 23 {
			xp += lvl
		}
	}

	if nasty {
		xp += 7 * lvl
	}
	if lvl > 8 {
		xp += 50
	}
	return xp
}
