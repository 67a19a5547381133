package actor

// Hero is the player-controlled actor.
type Hero struct {
	Body
	Luck int
}

// NewHero creates a hero of the given form.
func NewHero(id, name string, form *Form) *Hero {
	return &Hero{Body: NewBody(id, name, form)}
}

// Kind returns KindHero.
func (h *Hero) Kind() Kind { return KindHero }

// ToHitBonus is 1 + luck + attribute bonus + level + wielded weapon bonus.
func (h *Hero) ToHitBonus() int {
	bonus := 1 + h.Luck + attributeHitBonus(h.Attrs) + h.Level
	if w := h.Inventory().Wielded(); w != nil {
		bonus += w.Def.ToHit + w.Enchantment
	}
	return bonus
}

// DamageBonus returns the strength damage bonus.
func (h *Hero) DamageBonus() int {
	return strengthDamageBonus(h.Attrs.Str)
}

func attributeHitBonus(a Attributes) int {
	var bonus int
	switch {
	case a.Str < 6:
		bonus = -2
	case a.Str < 8:
		bonus = -1
	case a.Str < 17:
		bonus = 0
	case a.Str <= 18:
		bonus = 1
	default:
		bonus = 2
	}
	switch {
	case a.Dex < 4:
		bonus -= 3
	case a.Dex < 6:
		bonus -= 2
	case a.Dex < 8:
		bonus--
	case a.Dex >= 14:
		bonus += a.Dex - 14
	}
	return bonus
}

func strengthDamageBonus(str int) int {
	switch {
	case str < 6:
		return -1
	case str < 16:
		return 0
	case str < 18:
		return 1
	case str == 18:
		return 2
	default:
		return 3
	}
}
