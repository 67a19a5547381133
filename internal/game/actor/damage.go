package actor

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// DamageType is the secondary effect family of an attack.
type DamageType int

const (
	DamagePhys DamageType = iota
	DamageFire
	DamageCold
	DamageShock
	DamageSleep
	DamagePoison
	DamagePoisonStr
	DamagePoisonDex
	DamagePoisonCon
	DamageAcid
	DamageBlind
	DamageStun
	DamageConfuse
	DamageSlow
	DamageParalyze
	DamageDrainLife
	DamageDrainEnergy
	DamageLegs
	DamagePetrify
	DamageStick
	DamageStealGold
	DamageStealItem
	DamageRust
	DamageCorrode
	DamageDecay
	DamageDigest
	DamageWrap
	DamageHeal
	DamageHallucinate
	DamageDisease
	DamagePolymorph
	DamageLycanthropy
	DamageSlime

	damageTypeCount
)

var damageTypeNames = [damageTypeCount]string{
	DamagePhys:        "phys",
	DamageFire:        "fire",
	DamageCold:        "cold",
	DamageShock:       "shock",
	DamageSleep:       "sleep",
	DamagePoison:      "poison",
	DamagePoisonStr:   "poison_str",
	DamagePoisonDex:   "poison_dex",
	DamagePoisonCon:   "poison_con",
	DamageAcid:        "acid",
	DamageBlind:       "blind",
	DamageStun:        "stun",
	DamageConfuse:     "confuse",
	DamageSlow:        "slow",
	DamageParalyze:    "paralyze",
	DamageDrainLife:   "drain_life",
	DamageDrainEnergy: "drain_energy",
	DamageLegs:        "legs",
	DamagePetrify:     "petrify",
	DamageStick:       "stick",
	DamageStealGold:   "steal_gold",
	DamageStealItem:   "steal_item",
	DamageRust:        "rust",
	DamageCorrode:     "corrode",
	DamageDecay:       "decay",
	DamageDigest:      "digest",
	DamageWrap:        "wrap",
	DamageHeal:        "heal",
	DamageHallucinate: "hallucinate",
	DamageDisease:     "disease",
	DamagePolymorph:   "polymorph",
	DamageLycanthropy: "lycanthropy",
	DamageSlime:       "slime",
}

func (t DamageType) String() string {
	if t < 0 || t >= damageTypeCount {
		return fmt.Sprintf("damage(%d)", int(t))
	}
	return damageTypeNames[t]
}

// ParseDamageType resolves a damage type name.
func ParseDamageType(name string) (DamageType, error) {
	for i, n := range damageTypeNames {
		if n == name {
			return DamageType(i), nil
		}
	}
	return DamagePhys, fmt.Errorf("actor: unknown damage type %q", name)
}

// DamageTypes returns every damage type in declaration order.
func DamageTypes() []DamageType {
	out := make([]DamageType, damageTypeCount)
	for i := range out {
		out[i] = DamageType(i)
	}
	return out
}

// UnmarshalYAML decodes a damage type name.
func (t *DamageType) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := ParseDamageType(node.Value)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalYAML encodes the damage type name.
func (t DamageType) MarshalYAML() (any, error) { return t.String(), nil }

// Physical reports whether the damage is ordinary bodily harm, subject to
// half-physical-damage resistance.
func (t DamageType) Physical() bool {
	return t == DamagePhys
}

// Resistance returns the resistance that nullifies this damage type, or 0.
func (t DamageType) Resistance() Resistance {
	switch t {
	case DamageFire:
		return ResistFire
	case DamageCold:
		return ResistCold
	case DamageShock:
		return ResistShock
	case DamageAcid:
		return ResistAcid
	default:
		return 0
	}
}
