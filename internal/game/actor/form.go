package actor

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Size is a body size category.
type Size int

const (
	SizeTiny Size = iota
	SizeSmall
	SizeMedium
	SizeLarge
	SizeHuge
	SizeGigantic
)

var sizeNames = []string{"tiny", "small", "medium", "large", "huge", "gigantic"}

func (s Size) String() string {
	if s < 0 || int(s) >= len(sizeNames) {
		return fmt.Sprintf("size(%d)", int(s))
	}
	return sizeNames[s]
}

// UnmarshalYAML decodes a size name.
func (s *Size) UnmarshalYAML(node *yaml.Node) error {
	for i, n := range sizeNames {
		if n == node.Value {
			*s = Size(i)
			return nil
		}
	}
	return fmt.Errorf("actor: unknown size %q", node.Value)
}

// MarshalYAML encodes the size name.
func (s Size) MarshalYAML() (any, error) { return s.String(), nil }

// DefaultMaxHP is used when neither the actor nor its form specify hit points.
const DefaultMaxHP = 12

// DefaultAC is the natural armor class of an actor with no AC data.
const DefaultAC = 10

// Form is the static, species-derived data an actor is built from. Forms
// are shared and read-only.
type Form struct {
	SpeciesID string
	Name      string
	Level     int
	Speed     int
	AC        int
	MaxHP     int
	Size      Size
	// Frequency is the generation frequency; 0 and 1 are rare.
	Frequency int
	Weight    int
	Attacks   []Attack
	Resists   Resistance
	NoCorpse  bool
	Nasty     bool
}

// Rare reports whether the form is generated infrequently.
func (f *Form) Rare() bool { return f.Frequency < 2 }

// HitPoints returns the form's maximum hit points, defaulted.
func (f *Form) HitPoints() int {
	if f == nil || f.MaxHP <= 0 {
		return DefaultMaxHP
	}
	return f.MaxHP
}

// Passive returns the form's passive defense descriptor, if any.
func (f *Form) Passive() (Attack, bool) {
	if f == nil {
		return Attack{}, false
	}
	for _, a := range f.Attacks {
		if a.Passive() {
			return a, true
		}
	}
	return Attack{}, false
}

// HasAttack reports whether the form carries an attack of kind k.
func (f *Form) HasAttack(k AttackKind) bool {
	if f == nil {
		return false
	}
	for _, a := range f.Attacks {
		if a.Kind == k {
			return true
		}
	}
	return false
}
