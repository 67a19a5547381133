package actor

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Resistance is a bit set of intrinsic resistances.
type Resistance uint16

const (
	ResistFire Resistance = 1 << iota
	ResistCold
	ResistShock
	ResistPoison
	ResistAcid
	ResistPetrify
	ResistSleep
	ResistDrain
	ResistSickness
	// HalfPhysical halves physical damage, rounding up.
	HalfPhysical
	// Unchanging blocks polymorph.
	Unchanging
)

var resistanceNames = []struct {
	bit  Resistance
	name string
}{
	{ResistFire, "fire"},
	{ResistCold, "cold"},
	{ResistShock, "shock"},
	{ResistPoison, "poison"},
	{ResistAcid, "acid"},
	{ResistPetrify, "petrify"},
	{ResistSleep, "sleep"},
	{ResistDrain, "drain"},
	{ResistSickness, "sickness"},
	{HalfPhysical, "half_physical"},
	{Unchanging, "unchanging"},
}

// Has reports whether every bit of x is set in r.
func (r Resistance) Has(x Resistance) bool { return x != 0 && r&x == x }

// Names returns the names of the set bits.
func (r Resistance) Names() []string {
	var out []string
	for _, rn := range resistanceNames {
		if r&rn.bit != 0 {
			out = append(out, rn.name)
		}
	}
	return out
}

func (r Resistance) String() string { return strings.Join(r.Names(), ",") }

// ParseResistance resolves a single resistance name.
func ParseResistance(name string) (Resistance, error) {
	for _, rn := range resistanceNames {
		if rn.name == name {
			return rn.bit, nil
		}
	}
	return 0, fmt.Errorf("actor: unknown resistance %q", name)
}

// UnmarshalYAML decodes a list of resistance names.
func (r *Resistance) UnmarshalYAML(node *yaml.Node) error {
	var names []string
	if err := node.Decode(&names); err != nil {
		return err
	}
	var out Resistance
	for _, n := range names {
		bit, err := ParseResistance(n)
		if err != nil {
			return err
		}
		out |= bit
	}
	*r = out
	return nil
}

// MarshalYAML encodes the set as a list of names.
func (r Resistance) MarshalYAML() (any, error) { return r.Names(), nil }
