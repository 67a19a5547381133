package item

import (
	"fmt"
	"strings"
)

// Instance is a concrete item in the world.
type Instance struct {
	ID          string
	Def         *Def
	Quantity    int
	Enchantment int
	// Eroded counts rust or burn damage; Eroded2 counts corrosion or rot.
	Eroded     int
	Eroded2    int
	Erodeproof bool
	Worn       bool
	Wielded    bool
	// CorpseOf names the species a corpse or statue was made from.
	CorpseOf string
	// RotTimer is the number of turns before a corpse rots away.
	RotTimer int
}

// Class returns the definition's class, or "" for an instance without a Def.
func (i *Instance) Class() Class {
	if i.Def == nil {
		return ""
	}
	return i.Def.Class
}

// ArmorClass returns the AC contributed by a piece of armor: its base bonus
// plus enchantment, reduced by erosion down to the enchantment alone.
func (i *Instance) ArmorClass() int {
	if i.Def == nil || i.Def.Class != ClassArmor {
		return 0
	}
	loss := i.GreatestErosion()
	if loss > i.Def.ACBonus {
		loss = i.Def.ACBonus
	}
	return i.Def.ACBonus + i.Enchantment - loss
}

// Name renders the instance for messages, e.g. "very rusty +1 long sword".
func (i *Instance) Name() string {
	if i.Def == nil {
		return "strange object"
	}
	var b strings.Builder
	if i.Quantity > 1 {
		fmt.Fprintf(&b, "%d ", i.Quantity)
	}
	writeErosion(&b, i.Eroded, i.firstErosion())
	writeErosion(&b, i.Eroded2, i.secondErosion())
	if i.Enchantment != 0 && (i.Def.Class == ClassWeapon || i.Def.Class == ClassArmor) {
		fmt.Fprintf(&b, "%+d ", i.Enchantment)
	}
	if i.CorpseOf != "" {
		b.WriteString(i.CorpseOf)
		b.WriteByte(' ')
	}
	b.WriteString(i.Def.Name)
	return b.String()
}

func (i *Instance) firstErosion() Erosion {
	if i.Def.Material.Vulnerable(ErodeRust) {
		return ErodeRust
	}
	return ErodeBurn
}

func (i *Instance) secondErosion() Erosion {
	if i.Def.Material.Vulnerable(ErodeCorrode) {
		return ErodeCorrode
	}
	return ErodeRot
}

func writeErosion(b *strings.Builder, level int, e Erosion) {
	switch {
	case level <= 0:
		return
	case level == 2:
		b.WriteString("very ")
	case level >= MaxErosion:
		b.WriteString("thoroughly ")
	}
	b.WriteString(e.String())
	b.WriteByte(' ')
}
