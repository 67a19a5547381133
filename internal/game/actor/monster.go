package actor

import (
	"fmt"

	"github.com/cory-johannsen/delve/internal/game/item"
)

// WeaponCheck is a monster's intent regarding weapons.
type WeaponCheck int

const (
	NoWeaponWanted WeaponCheck = iota
	// NeedWeapon asks for any weapon before attacking.
	NeedWeapon
	// NeedHTHWeapon asks for a hand-to-hand weapon before attacking.
	NeedHTHWeapon
)

func (w WeaponCheck) String() string {
	switch w {
	case NeedWeapon:
		return "need_weapon"
	case NeedHTHWeapon:
		return "need_hth_weapon"
	default:
		return "no_weapon_wanted"
	}
}

// Monster is a computer-controlled actor.
type Monster struct {
	Body
	WeaponCheck WeaponCheck
	Cancelled   bool
}

// NewMonster creates a monster of the given form.
func NewMonster(id string, form *Form) *Monster {
	return &Monster{Body: NewBody(id, "", form)}
}

// Kind returns KindMonster.
func (m *Monster) Kind() Kind { return KindMonster }

// ToHitBonus is the monster's level plus its wielded weapon bonus.
func (m *Monster) ToHitBonus() int {
	bonus := m.Level
	if w := m.Inventory().Wielded(); w != nil {
		bonus += w.Def.ToHit + w.Enchantment
	}
	return bonus
}

// DamageBonus is always 0 for monsters.
func (m *Monster) DamageBonus() int { return 0 }

// WantsWeapon reports whether the weapon check demands a wield action.
func (m *Monster) WantsWeapon() bool {
	return m.WeaponCheck != NoWeaponWanted && m.Inventory().Wielded() == nil
}

// Wield wields w, retunes the weapon descriptors to its dice and clears the
// weapon check.
//
// Precondition: w is a weapon carried by m.
func (m *Monster) Wield(w *item.Instance) error {
	if w == nil {
		return fmt.Errorf("actor: %s has nothing to wield", m.Name())
	}
	if err := m.Inventory().Wield(w.ID); err != nil {
		return err
	}
	m.SetWeaponDice(w)
	m.WeaponCheck = NoWeaponWanted
	return nil
}
