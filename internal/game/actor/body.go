// Package actor models the participants of combat. Heroes and monsters are
// distinct variants of the Actor interface sharing a common Body.
package actor

import (
	"github.com/cory-johannsen/delve/internal/game/condition"
	"github.com/cory-johannsen/delve/internal/game/grid"
	"github.com/cory-johannsen/delve/internal/game/inventory"
	"github.com/cory-johannsen/delve/internal/game/item"
)

// Kind distinguishes actor variants.
type Kind int

const (
	KindHero Kind = iota
	KindMonster
)

func (k Kind) String() string {
	if k == KindHero {
		return "hero"
	}
	return "monster"
}

// Actor is the view of a combatant the combat engine works with.
type Actor interface {
	ID() string
	Name() string
	Kind() Kind
	Core() *Body
	// ToHitBonus is added to the attacker's d20 roll.
	ToHitBonus() int
	// DamageBonus is added to every damage roll.
	DamageBonus() int
}

// Attribute indexes Attributes.
type Attribute int

const (
	AttrStr Attribute = iota
	AttrDex
	AttrCon
	AttrInt
	AttrWis
	AttrCha

	// AttributeCount is the number of attributes.
	AttributeCount
)

var attributeNames = [AttributeCount]string{"strength", "dexterity", "constitution", "intelligence", "wisdom", "charisma"}

func (a Attribute) String() string { return attributeNames[a] }

// MinAttribute is the floor for attribute loss.
const MinAttribute = 3

// Attributes holds the six base attributes.
type Attributes struct {
	Str int `yaml:"str"`
	Dex int `yaml:"dex"`
	Con int `yaml:"con"`
	Int int `yaml:"int"`
	Wis int `yaml:"wis"`
	Cha int `yaml:"cha"`
}

// DefaultAttributes is an average set of attributes.
var DefaultAttributes = Attributes{Str: 10, Dex: 10, Con: 10, Int: 10, Wis: 10, Cha: 10}

func (a *Attributes) ref(attr Attribute) *int {
	switch attr {
	case AttrStr:
		return &a.Str
	case AttrDex:
		return &a.Dex
	case AttrCon:
		return &a.Con
	case AttrInt:
		return &a.Int
	case AttrWis:
		return &a.Wis
	default:
		return &a.Cha
	}
}

// Get returns the value of attr.
func (a *Attributes) Get(attr Attribute) int { return *a.ref(attr) }

// Drain lowers attr by n, not below MinAttribute, and reports whether the
// value changed.
func (a *Attributes) Drain(attr Attribute, n int) bool {
	p := a.ref(attr)
	before := *p
	*p -= n
	if *p < MinAttribute {
		*p = MinAttribute
	}
	return *p != before
}

// Body holds the state shared by every actor variant.
type Body struct {
	id   string
	name string

	HP, MaxHP         int
	Energy, MaxEnergy int
	Level             int
	Experience        int
	// AC is the natural, ascending armor class.
	AC      int
	Attrs   Attributes
	Status  *condition.Set
	Resists Resistance
	Pos     grid.Pos
	Form    *Form
	// Attacks is this actor's own copy of its form's attack list.
	Attacks []Attack

	pack *inventory.Inventory

	// Engulf links an engulfer and its victim; both bodies share it.
	Engulf *EngulfLink
	// Lycanthropy names the species the actor is infected with.
	Lycanthropy string

	Dead  bool
	Cause string
}

// NewBody builds a Body from form with defaults for every missing value.
//
// Precondition: id is non-empty.
// Postcondition: HP == MaxHP > 0, Level >= 1, Status and inventory are empty.
func NewBody(id, name string, form *Form) Body {
	if form == nil {
		form = &Form{SpeciesID: "human", Name: "human", AC: DefaultAC, Level: 1, Frequency: 2}
	}
	if name == "" {
		name = form.Name
	}
	b := Body{
		id:     id,
		name:   name,
		Level:  form.Level,
		AC:     form.AC,
		Attrs:  DefaultAttributes,
		Status: condition.NewSet(),
		pack:   inventory.New(),
	}
	b.SetForm(form)
	if b.AC == 0 {
		b.AC = DefaultAC
	}
	if b.Level < 1 {
		b.Level = 1
	}
	return b
}

// ID returns the actor's unique identifier.
func (b *Body) ID() string { return b.id }

// Name returns the display name.
func (b *Body) Name() string { return b.name }

// Core returns b.
func (b *Body) Core() *Body { return b }

// Inventory returns the carried items.
func (b *Body) Inventory() *inventory.Inventory {
	if b.pack == nil {
		b.pack = inventory.New()
	}
	return b.pack
}

// SetForm switches the body to form, copying its attacks and resetting hit
// points to the form's maximum.
func (b *Body) SetForm(form *Form) {
	b.Form = form
	b.Attacks = append([]Attack(nil), form.Attacks...)
	b.MaxHP = form.HitPoints()
	b.HP = b.MaxHP
	if w := b.Inventory().Wielded(); w != nil {
		b.SetWeaponDice(w)
	}
}

// Alive reports whether the actor can still act and be attacked.
func (b *Body) Alive() bool { return !b.Dead && b.HP > 0 }

// Hurt subtracts n hit points, clamping at 0, and reports whether the actor
// is now at 0.
//
// Postcondition: HP >= 0.
func (b *Body) Hurt(n int) bool {
	if n > 0 {
		b.HP -= n
	}
	if b.HP < 0 {
		b.HP = 0
	}
	return b.HP == 0
}

// Heal restores n hit points up to MaxHP.
func (b *Body) Heal(n int) {
	if n <= 0 {
		return
	}
	b.HP += n
	if b.HP > b.MaxHP {
		b.HP = b.MaxHP
	}
}

// Resistant reports whether the actor has r intrinsically or from its form.
func (b *Body) Resistant(r Resistance) bool {
	own := b.Resists
	if b.Form != nil {
		own |= b.Form.Resists
	}
	return own.Has(r)
}

// NaturalAC returns the armor class without worn armor.
func (b *Body) NaturalAC() int { return b.AC }

// EffectiveAC returns the natural AC plus all worn armor.
func (b *Body) EffectiveAC() int {
	return b.AC + b.Inventory().ArmorClass()
}

// Has reports whether status flag f is active.
func (b *Body) Has(f condition.Flag) bool { return b.Status.Has(f) }

// Helpless reports whether the actor cannot defend itself.
func (b *Body) Helpless() bool { return condition.Helpless(b.Status) }

// SetWeaponDice replaces the dice of every weapon descriptor with the damage
// dice of w.
func (b *Body) SetWeaponDice(w *item.Instance) {
	expr := w.Def.DamageDice()
	for i := range b.Attacks {
		if b.Attacks[i].Kind == AttackWeapon {
			b.Attacks[i].Dice = Dice{Count: expr.Count, Sides: expr.Sides}
		}
	}
}

// Swallowing reports whether this actor currently holds a victim engulfed.
func (b *Body) Swallowing() bool {
	return b.Engulf != nil && b.Engulf.Engulfer.Core() == b
}

// SwallowedBy returns the engulfer holding this actor, or nil.
func (b *Body) SwallowedBy() Actor {
	if b.Engulf != nil && b.Engulf.Victim.Core() == b {
		return b.Engulf.Engulfer
	}
	return nil
}

// Size returns the body's size, medium when unknown.
func (b *Body) Size() Size {
	if b.Form == nil {
		return SizeMedium
	}
	return b.Form.Size
}
