package combat

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/delve/internal/game/actor"
	"github.com/cory-johannsen/delve/internal/game/inventory"
	"github.com/cory-johannsen/delve/internal/game/item"
)

// applySteal draws rn2 over the eligible entries, with a size of 1 when there
// are none, before deciding anything.
func applySteal(sim *Simulation, e Steal, attacker, defender actor.Actor, dmg int) {
	hurt(defender, dmg)
	inv := defender.Core().Inventory()
	pred := inventory.Stealable
	if e.Gold {
		pred = func(inst *item.Instance) bool { return inst.Class() == item.ClassGold }
	}
	eligible := inv.Find(pred)
	n := len(eligible)
	if n < 1 {
		n = 1
	}
	idx := sim.Dice.Rn2(n)
	if len(eligible) == 0 {
		sim.notify("%s finds nothing to steal.", attacker.Name())
		return
	}
	pick := eligible[idx]

	var loot *item.Instance
	if e.Gold {
		part, err := inv.Split(pick.ID, (pick.Quantity+1)/2)
		if err != nil {
			sim.Logger.Error("impossible: gold split failed", zap.Error(err))
			return
		}
		loot = part
	} else if sim.Items != nil {
		loot = sim.Items.TakeItem(defender.Core(), inventory.ByID(pick.ID))
	}
	if loot == nil {
		return
	}
	if _, err := attacker.Core().Inventory().Add(loot); err != nil {
		sim.Logger.Error("impossible: stolen item rejected", zap.Error(err))
		return
	}
	sim.notify("%s stole %s.", attacker.Name(), loot.Name())
}

// erodeArmor erodes the defender's outermost worn armor.
func erodeArmor(sim *Simulation, defender actor.Actor, kind item.Erosion) {
	armor := defender.Core().Inventory().OuterArmor()
	if armor == nil {
		return
	}
	erodeItem(sim, defender, armor, kind)
}

func erodeItem(sim *Simulation, owner actor.Actor, inst *item.Instance, kind item.Erosion) {
	switch inst.Erode(kind) {
	case item.Eroded:
		sim.notify("%s's %s looks %s!", owner.Name(), inst.Def.Name, kind)
	case item.ErodeMaxed:
		sim.notify("%s's %s looks completely %s.", owner.Name(), inst.Def.Name, kind)
	case item.ErodeProtected:
		sim.notify("Somehow, %s's %s is not affected.", owner.Name(), inst.Def.Name)
	}
}
