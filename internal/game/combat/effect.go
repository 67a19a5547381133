package combat

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/delve/internal/game/actor"
	"github.com/cory-johannsen/delve/internal/game/condition"
	"github.com/cory-johannsen/delve/internal/game/item"
)

// Effect is the closed set of things a landed attack can do. Classify maps
// every attack descriptor onto exactly one variant.
type Effect interface {
	effect()
}

// PhysicalHit subtracts the damage.
type PhysicalHit struct{}

// ElementalHit subtracts the (possibly nullified) damage and may erode the
// defender's outer armor.
type ElementalHit struct {
	Element actor.DamageType
	Erosion item.Erosion
}

// DrainLife subtracts the damage and costs the defender a level.
type DrainLife struct{}

// DrainEnergy may sap the defender's energy.
type DrainEnergy struct{}

// Petrify turns the defender to stone on skin contact.
type Petrify struct{ Contact bool }

// Poison subtracts the damage and may drain an attribute.
type Poison struct {
	Attribute actor.Attribute
	Random    bool
}

// Steal lifts gold or an item from the defender.
type Steal struct{ Gold bool }

// Engulf swallows or wraps the defender. Inner is applied on every held
// round; a nil Inner means the engulfer digests instead.
type Engulf struct {
	Damage actor.DamageType
	Inner  Effect
}

// Erode subtracts the damage and may erode the defender's outer armor.
type Erode struct{ Kind item.Erosion }

// SelfDestruct applies Inner and then kills the attacker.
type SelfDestruct struct{ Inner Effect }

// DurationRule says how long a StatusHit lasts.
type DurationRule int

const (
	// DurationDamage lasts as many turns as the damage rolled.
	DurationDamage DurationRule = iota
	// DurationRolled lasts rnd(StatusRollSides) turns.
	DurationRolled
	DurationPermanent
)

// StatusRollSides is the die used by DurationRolled.
const StatusRollSides = 10

// HPLoss says how much of the damage a StatusHit subtracts.
type HPLoss int

const (
	LossNone HPLoss = iota
	LossFull
	LossHalf
)

// StatusHit applies a timed condition.
type StatusHit struct {
	Flag condition.Flag
	// Gate, when > 0, requires rn2(Gate) == 0 for the condition to apply.
	Gate     int
	Duration DurationRule
	// SkipActive skips the duration draw when the flag is already active.
	SkipActive bool
	Resist     actor.Resistance
	Loss       HPLoss
}

// Stick glues the defender to the attacker.
type Stick struct{}

// Heal restores hit points to an unarmed, unarmored defender.
type Heal struct{}

// Disease makes the defender sick.
type Disease struct{}

// Polymorph may turn the defender into another form.
type Polymorph struct{}

// Lycanthropy may infect the defender with the attacker's species.
type Lycanthropy struct{}

// Slime starts turning the defender into slime.
type Slime struct{}

func (PhysicalHit) effect()  {}
func (ElementalHit) effect() {}
func (DrainLife) effect()    {}
func (DrainEnergy) effect()  {}
func (Petrify) effect()      {}
func (Poison) effect()       {}
func (Steal) effect()        {}
func (Engulf) effect()       {}
func (Erode) effect()        {}
func (SelfDestruct) effect() {}
func (StatusHit) effect()    {}
func (Stick) effect()        {}
func (Heal) effect()         {}
func (Disease) effect()      {}
func (Polymorph) effect()    {}
func (Lycanthropy) effect()  {}
func (Slime) effect()        {}

// Classify maps an attack descriptor to its effect.
func Classify(atk actor.Attack) Effect {
	switch {
	case atk.Kind == actor.AttackExplode:
		return SelfDestruct{Inner: classifyDamage(atk.Damage, atk.Kind)}
	case atk.Kind == actor.AttackEngulf:
		return Engulf{Damage: atk.Damage, Inner: engulfInner(atk.Damage)}
	case atk.Damage == actor.DamageWrap || atk.Damage == actor.DamageDigest:
		return Engulf{Damage: atk.Damage, Inner: engulfInner(atk.Damage)}
	default:
		return classifyDamage(atk.Damage, atk.Kind)
	}
}

func engulfInner(dt actor.DamageType) Effect {
	switch dt {
	case actor.DamageDigest:
		return nil
	case actor.DamageWrap:
		return PhysicalHit{}
	default:
		return classifyDamage(dt, actor.AttackEngulf)
	}
}

func classifyDamage(dt actor.DamageType, kind actor.AttackKind) Effect {
	switch dt {
	case actor.DamagePhys:
		return PhysicalHit{}
	case actor.DamageFire:
		return ElementalHit{Element: dt, Erosion: item.ErodeBurn}
	case actor.DamageAcid:
		return ElementalHit{Element: dt, Erosion: item.ErodeCorrode}
	case actor.DamageCold, actor.DamageShock:
		return ElementalHit{Element: dt}
	case actor.DamageDrainLife:
		return DrainLife{}
	case actor.DamageDrainEnergy:
		return DrainEnergy{}
	case actor.DamagePetrify:
		return Petrify{Contact: kind.Contact()}
	case actor.DamagePoison:
		return Poison{Random: true}
	case actor.DamagePoisonStr:
		return Poison{Attribute: actor.AttrStr}
	case actor.DamagePoisonDex:
		return Poison{Attribute: actor.AttrDex}
	case actor.DamagePoisonCon:
		return Poison{Attribute: actor.AttrCon}
	case actor.DamageStealGold:
		return Steal{Gold: true}
	case actor.DamageStealItem:
		return Steal{}
	case actor.DamageRust:
		return Erode{Kind: item.ErodeRust}
	case actor.DamageCorrode:
		return Erode{Kind: item.ErodeCorrode}
	case actor.DamageDecay:
		return Erode{Kind: item.ErodeRot}
	case actor.DamageSleep:
		return StatusHit{Flag: condition.Sleeping, Duration: DurationRolled, Resist: actor.ResistSleep}
	case actor.DamageParalyze:
		return StatusHit{Flag: condition.Paralyzed, Gate: 3, Duration: DurationRolled, SkipActive: true}
	case actor.DamageConfuse:
		return StatusHit{Flag: condition.Confused, Gate: 4}
	case actor.DamageSlow:
		return StatusHit{Flag: condition.Slowed, Gate: 4, Duration: DurationPermanent, Loss: LossFull}
	case actor.DamageBlind:
		return StatusHit{Flag: condition.Blinded}
	case actor.DamageStun:
		return StatusHit{Flag: condition.Stunned, Loss: LossHalf}
	case actor.DamageHallucinate:
		return StatusHit{Flag: condition.Hallucinating}
	case actor.DamageLegs:
		return StatusHit{Flag: condition.WoundedLegs, Loss: LossFull}
	case actor.DamageStick:
		return Stick{}
	case actor.DamageHeal:
		return Heal{}
	case actor.DamageDisease:
		return Disease{}
	case actor.DamagePolymorph:
		return Polymorph{}
	case actor.DamageLycanthropy:
		return Lycanthropy{}
	case actor.DamageSlime:
		return Slime{}
	case actor.DamageWrap:
		return PhysicalHit{}
	case actor.DamageDigest:
		return Engulf{Damage: dt}
	default:
		return PhysicalHit{}
	}
}

// ApplyEffect applies a landed attack with dmg already rolled and adjusted.
// A defender brought to 0 hit points is handed to OnActorDeath before
// returning.
//
// Postcondition: the result contains Hit; it contains DefenderDied iff the
// defender died during this call.
func ApplyEffect(sim *Simulation, atk actor.Attack, attacker, defender actor.Actor, dmg int) Outcome {
	return Hit | dispatch(sim, Classify(atk), atk, attacker, defender, dmg)
}

func dispatch(sim *Simulation, eff Effect, atk actor.Attack, attacker, defender actor.Actor, dmg int) Outcome {
	var out Outcome
	switch e := eff.(type) {
	case PhysicalHit:
		hurt(defender, dmg)
	case ElementalHit:
		applyElemental(sim, e, defender, dmg)
	case DrainLife:
		applyDrainLife(sim, defender, dmg)
	case DrainEnergy:
		applyDrainEnergy(sim, defender, dmg)
	case Petrify:
		applyPetrify(sim, e, defender, dmg)
	case Poison:
		applyPoison(sim, e, defender, dmg)
	case Steal:
		applySteal(sim, e, attacker, defender, dmg)
	case Engulf:
		out |= startEngulf(sim, e, atk, attacker, defender, dmg)
	case Erode:
		hurt(defender, dmg)
		if sim.Dice.Rn2(3) == 0 {
			erodeArmor(sim, defender, e.Kind)
		}
	case SelfDestruct:
		if e.Inner != nil {
			out |= dispatch(sim, e.Inner, atk, attacker, defender, dmg)
		}
		out |= selfDestruct(sim, atk, attacker, dmg)
	case StatusHit:
		applyStatus(sim, e, defender, dmg)
	case Stick:
		hurt(defender, dmg)
		defender.Core().Status.Apply(condition.Stuck, condition.Permanent)
	case Heal:
		applyHeal(sim, defender, dmg)
	case Disease:
		if !defender.Core().Resistant(actor.ResistSickness) {
			defender.Core().Status.Apply(condition.Sick, condition.Permanent)
			sim.notify("%s looks very sick.", defender.Name())
		}
		hurt(defender, dmg)
	case Polymorph:
		applyPolymorph(sim, defender, dmg)
	case Lycanthropy:
		applyLycanthropy(sim, attacker, defender, dmg)
	case Slime:
		if !defender.Core().Resistant(actor.ResistFire) {
			defender.Core().Status.Apply(condition.Slimed, SlimeTurns)
		}
		hurt(defender, dmg)
	default:
		sim.Logger.Error("impossible: unclassified effect",
			zap.Stringer("damage", atk.Damage), zap.Stringer("attack", atk.Kind))
		hurt(defender, dmg)
	}
	if settle(sim, defender, attacker) {
		out |= DefenderDied
	}
	return out
}

// SlimeTurns is how long a slimed actor has before turning to slime.
const SlimeTurns = 10

func hurt(a actor.Actor, n int) {
	a.Core().Hurt(n)
}

// settle hands victim to OnActorDeath if it reached 0 hit points and has not
// been handled yet.
func settle(sim *Simulation, victim, killer actor.Actor) bool {
	b := victim.Core()
	if b.Dead || b.HP > 0 {
		return false
	}
	OnActorDeath(sim, victim, killer)
	return true
}
