package actor

import "github.com/cory-johannsen/delve/internal/game/condition"

// EngulfLink ties an engulfer to its victim across rounds.
type EngulfLink struct {
	Engulfer Actor
	Victim   Actor
	// Damage is the damage type applied each round while held.
	Damage DamageType
	// Timer counts rounds until a digesting engulfer finishes its victim.
	Timer int
}

// Engulf links engulfer and victim and marks the victim engulfed.
//
// Precondition: neither party is already linked.
// Postcondition: both bodies share the returned link.
func Engulf(engulfer, victim Actor, dt DamageType, timer int) *EngulfLink {
	link := &EngulfLink{Engulfer: engulfer, Victim: victim, Damage: dt, Timer: timer}
	engulfer.Core().Engulf = link
	vb := victim.Core()
	vb.Engulf = link
	vb.Status.Apply(condition.Engulfed, condition.Permanent)
	return link
}

// Release breaks the link and clears the victim's engulfed status.
func (l *EngulfLink) Release() {
	if l == nil {
		return
	}
	if eb := l.Engulfer.Core(); eb.Engulf == l {
		eb.Engulf = nil
	}
	if vb := l.Victim.Core(); vb.Engulf == l {
		vb.Engulf = nil
		vb.Status.Remove(condition.Engulfed)
	}
}
