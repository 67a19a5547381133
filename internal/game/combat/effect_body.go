package combat

import (
	"github.com/cory-johannsen/delve/internal/game/actor"
	"github.com/cory-johannsen/delve/internal/game/condition"
	"github.com/cory-johannsen/delve/internal/game/item"
)

// ErosionOdds is n in the 1-in-n chance fire and acid hits erode armor.
const ErosionOdds = 30

func applyElemental(sim *Simulation, e ElementalHit, defender actor.Actor, dmg int) {
	if dmg == 0 && e.Element.Resistance() != 0 && defender.Core().Resistant(e.Element.Resistance()) {
		sim.notify("%s is not affected by the %s.", defender.Name(), e.Element)
	}
	hurt(defender, dmg)
	if e.Erosion != item.ErodeNone && sim.Dice.Rn2(ErosionOdds) == 0 {
		erodeArmor(sim, defender, e.Erosion)
	}
}

// applyDrainLife subtracts dmg and costs a level. A level 1 victim cannot be
// killed by the drain: its hit points floor at Rules.DrainFloorHP.
func applyDrainLife(sim *Simulation, defender actor.Actor, dmg int) {
	b := defender.Core()
	if b.Resistant(actor.ResistDrain) {
		hurt(defender, dmg)
		return
	}
	if b.Level <= 1 {
		b.Level = 1
		floor := sim.Rules.DrainFloorHP
		if b.HP > floor {
			b.HP -= dmg
			if b.HP < floor {
				b.HP = floor
			}
		}
		return
	}
	hurt(defender, dmg)
	if b.Alive() {
		loseLevel(b)
		sim.notify("%s seems weaker.", defender.Name())
	}
}

// loseLevel drops one level and the hit points gained with it.
func loseLevel(b *actor.Body) {
	loss := b.MaxHP / b.Level
	if loss < 1 {
		loss = 1
	}
	b.Level--
	b.MaxHP -= loss
	if b.MaxHP < 1 {
		b.MaxHP = 1
	}
	if b.HP > b.MaxHP {
		b.HP = b.MaxHP
	}
}

func applyDrainEnergy(sim *Simulation, defender actor.Actor, dmg int) {
	if sim.Dice.Rn2(4) != 0 {
		return
	}
	b := defender.Core()
	b.Energy -= dmg
	if b.Energy < 0 {
		b.Energy = 0
	}
	sim.notify("%s feels drained of energy.", defender.Name())
}

func applyPetrify(sim *Simulation, e Petrify, defender actor.Actor, dmg int) {
	if e.Contact && !defender.Core().Resistant(actor.ResistPetrify) {
		petrify(sim, defender)
		return
	}
	hurt(defender, dmg)
}

// petrify turns a to stone. The death is settled by the caller.
func petrify(sim *Simulation, a actor.Actor) {
	b := a.Core()
	b.Status.Apply(condition.Petrified, condition.Permanent)
	b.Cause = CausePetrified
	b.HP = 0
	sim.notify("%s turns to stone!", a.Name())
}

// PoisonSaveOdds is n in the 1-in-n chance poison drains an attribute.
const PoisonSaveOdds = 8

func applyPoison(sim *Simulation, e Poison, defender actor.Actor, dmg int) {
	hurt(defender, dmg)
	b := defender.Core()
	if sim.Dice.Rn2(PoisonSaveOdds) != 0 {
		return
	}
	if b.Resistant(actor.ResistPoison) {
		sim.notify("The poison doesn't seem to affect %s.", defender.Name())
		return
	}
	attr := e.Attribute
	if e.Random {
		attr = actor.Attribute(sim.Dice.Rn2(int(actor.AttributeCount)))
	}
	if b.Attrs.Drain(attr, 1) {
		sim.notify("%s's %s drops!", defender.Name(), attr)
	}
	b.Status.Apply(condition.Poisoned, condition.Permanent)
}

func applyStatus(sim *Simulation, e StatusHit, defender actor.Actor, dmg int) {
	b := defender.Core()
	switch e.Loss {
	case LossFull:
		hurt(defender, dmg)
	case LossHalf:
		hurt(defender, dmg/2)
	}
	if e.Gate > 0 && sim.Dice.Rn2(e.Gate) != 0 {
		return
	}
	duration := dmg
	switch e.Duration {
	case DurationRolled:
		if e.SkipActive && b.Has(e.Flag) {
			return
		}
		duration = sim.Dice.Rnd(StatusRollSides)
	case DurationPermanent:
		duration = condition.Permanent
	}
	if e.Resist != 0 && b.Resistant(e.Resist) {
		return
	}
	if b.Status.Apply(e.Flag, duration) {
		sim.notify("%s is %s.", defender.Name(), e.Flag)
	}
}

func applyHeal(sim *Simulation, defender actor.Actor, dmg int) {
	inv := defender.Core().Inventory()
	if inv.Wielded() == nil && !inv.WearsArmor() {
		defender.Core().Heal(dmg)
		sim.notify("%s feels better.", defender.Name())
		return
	}
	hurt(defender, dmg)
}

func applyPolymorph(sim *Simulation, defender actor.Actor, dmg int) {
	if sim.Dice.Rn2(4) != 0 {
		hurt(defender, dmg)
		return
	}
	b := defender.Core()
	if b.Resistant(actor.Unchanging) || sim.Species == nil || sim.Species.Len() == 0 {
		hurt(defender, dmg)
		return
	}
	form := sim.Species.FormAt(sim.Dice.Rn2(sim.Species.Len()))
	b.SetForm(form)
	sim.notify("%s turns into a %s!", defender.Name(), form.Name)
}

func applyLycanthropy(sim *Simulation, attacker, defender actor.Actor, dmg int) {
	hurt(defender, dmg)
	b := defender.Core()
	if sim.Dice.Rn2(4) != 0 || b.Lycanthropy != "" || attacker.Core().Form == nil {
		return
	}
	b.Lycanthropy = attacker.Core().Form.SpeciesID
	sim.notify("%s feels feverish.", defender.Name())
}
