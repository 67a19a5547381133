package actor

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/delve/internal/game/dice"
)

// AttackKind is how an attack is delivered.
type AttackKind int

const (
	// AttackNone marks a passive descriptor; it is never used offensively.
	AttackNone AttackKind = iota
	AttackClaw
	AttackBite
	AttackKick
	AttackButt
	AttackTouch
	AttackSting
	AttackHug
	AttackSpit
	AttackEngulf
	AttackBreath
	AttackExplode
	AttackGaze
	AttackTentacle
	AttackWeapon
)

var attackKindNames = map[AttackKind]string{
	AttackNone:     "none",
	AttackClaw:     "claw",
	AttackBite:     "bite",
	AttackKick:     "kick",
	AttackButt:     "butt",
	AttackTouch:    "touch",
	AttackSting:    "sting",
	AttackHug:      "hug",
	AttackSpit:     "spit",
	AttackEngulf:   "engulf",
	AttackBreath:   "breath",
	AttackExplode:  "explode",
	AttackGaze:     "gaze",
	AttackTentacle: "tentacle",
	AttackWeapon:   "weapon",
}

func (k AttackKind) String() string {
	if n, ok := attackKindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("attack(%d)", int(k))
}

// ParseAttackKind resolves an attack kind name.
func ParseAttackKind(name string) (AttackKind, error) {
	for k, n := range attackKindNames {
		if n == name {
			return k, nil
		}
	}
	return AttackNone, fmt.Errorf("actor: unknown attack kind %q", name)
}

// UnmarshalYAML decodes a kind name.
func (k *AttackKind) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := ParseAttackKind(node.Value)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// MarshalYAML encodes the kind name.
func (k AttackKind) MarshalYAML() (any, error) { return k.String(), nil }

// Contact reports whether the attack touches the defender's body.
func (k AttackKind) Contact() bool {
	switch k {
	case AttackNone, AttackGaze, AttackBreath, AttackSpit, AttackExplode:
		return false
	default:
		return true
	}
}

// UsesHands reports whether the attack is delivered with bare hands unless a
// weapon or gloves intervene.
func (k AttackKind) UsesHands() bool {
	switch k {
	case AttackClaw, AttackTouch, AttackHug, AttackWeapon:
		return true
	default:
		return false
	}
}

// Dice is an attack's damage dice.
type Dice struct {
	Count int
	Sides int
}

func (d Dice) String() string { return fmt.Sprintf("%dd%d", d.Count, d.Sides) }

// Max returns the largest possible roll.
func (d Dice) Max() int { return d.Count * d.Sides }

// UnmarshalYAML decodes an "NdS" expression.
func (d *Dice) UnmarshalYAML(node *yaml.Node) error {
	expr, err := dice.Parse(node.Value)
	if err != nil {
		return err
	}
	if expr.Modifier != 0 {
		return fmt.Errorf("actor: attack dice %q must not carry a modifier", node.Value)
	}
	*d = Dice{Count: expr.Count, Sides: expr.Sides}
	return nil
}

// MarshalYAML encodes the dice as "NdS".
func (d Dice) MarshalYAML() (any, error) { return d.String(), nil }

// Attack is one entry of an actor's ordered attack list.
type Attack struct {
	Kind   AttackKind `yaml:"kind"`
	Damage DamageType `yaml:"damage"`
	Dice   Dice       `yaml:"dice"`
	// Weight is the success-frequency weight among attacks of the same kind.
	Weight int `yaml:"weight"`
}

func (a Attack) String() string {
	return fmt.Sprintf("%s %s %s", a.Kind, a.Damage, a.Dice)
}

// Passive reports whether the descriptor is a passive defense.
func (a Attack) Passive() bool { return a.Kind == AttackNone }
