// Package item defines static item definitions and concrete item instances:
// weapons, armor, gold, corpses and statues. It is the bottom layer of the
// item stack and knows nothing about containers, floors or actors.
package item

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/delve/internal/game/dice"
)

// Class groups item definitions by how the game treats them.
type Class string

const (
	ClassWeapon Class = "weapon"
	ClassArmor  Class = "armor"
	ClassGold   Class = "gold"
	ClassCorpse Class = "corpse"
	ClassStatue Class = "statue"
	ClassFood   Class = "food"
	ClassTool   Class = "tool"
)

var validClasses = map[Class]bool{
	ClassWeapon: true, ClassArmor: true, ClassGold: true, ClassCorpse: true,
	ClassStatue: true, ClassFood: true, ClassTool: true,
}

// Slot identifies where a piece of armor is worn.
type Slot string

const (
	SlotCloak  Slot = "cloak"
	SlotBody   Slot = "body"
	SlotShirt  Slot = "shirt"
	SlotHelmet Slot = "helmet"
	SlotGloves Slot = "gloves"
	SlotBoots  Slot = "boots"
	SlotShield Slot = "shield"
)

// SlotOrder lists armor slots outermost first. Erosion attacks hit the first
// occupied slot in this order.
var SlotOrder = []Slot{SlotCloak, SlotBody, SlotShirt, SlotHelmet, SlotGloves, SlotBoots, SlotShield}

var validSlots = map[Slot]bool{
	SlotCloak: true, SlotBody: true, SlotShirt: true, SlotHelmet: true,
	SlotGloves: true, SlotBoots: true, SlotShield: true,
}

// Def is the static definition of an item loaded from YAML.
type Def struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Class       Class    `yaml:"class"`
	Material    Material `yaml:"material"`
	Weight      int      `yaml:"weight"`
	Stackable   bool     `yaml:"stackable"`
	// Damage is the weapon damage expression, e.g. "1d8". Weapons only.
	Damage string `yaml:"damage"`
	// ToHit is the weapon's intrinsic to-hit bonus.
	ToHit int `yaml:"to_hit"`
	// Slot and ACBonus describe armor.
	Slot    Slot `yaml:"slot"`
	ACBonus int  `yaml:"ac_bonus"`

	damage dice.Expression
}

// Validate checks that the Def satisfies its invariants and caches the parsed
// damage expression.
//
// Precondition: d is non-nil.
// Postcondition: returns nil iff all fields are valid.
func (d *Def) Validate() error {
	var errs []error
	if d.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if d.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if !validClasses[d.Class] {
		errs = append(errs, fmt.Errorf("class %q is not a valid item class", d.Class))
	}
	if d.Weight < 0 {
		errs = append(errs, errors.New("weight must be >= 0"))
	}
	if d.Material != "" && !validMaterials[d.Material] {
		errs = append(errs, fmt.Errorf("material %q is not a valid material", d.Material))
	}
	switch d.Class {
	case ClassWeapon:
		expr, err := dice.Parse(d.Damage)
		if err != nil {
			errs = append(errs, fmt.Errorf("damage: %w", err))
		} else {
			d.damage = expr
		}
	case ClassArmor:
		if !validSlots[d.Slot] {
			errs = append(errs, fmt.Errorf("slot %q is not a valid armor slot", d.Slot))
		}
		if d.ACBonus < 0 {
			errs = append(errs, errors.New("ac_bonus must be >= 0"))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("item %q validation failed: %v", d.ID, errs)
	}
	return nil
}

// DamageDice returns the parsed weapon damage expression; the zero
// Expression for non-weapons or unvalidated defs.
func (d *Def) DamageDice() dice.Expression { return d.damage }

// LoadDefs reads all *.yaml and *.yml files from dir, parses each as a
// Def, validates it, and returns the collected slice sorted by ID.
//
// Precondition: dir is a readable directory path.
// Postcondition: returns all valid Defs or the first encountered error.
func LoadDefs(dir string) ([]*Def, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("item.LoadDefs: cannot read directory %q: %w", dir, err)
	}

	defs := []*Def{}
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("item.LoadDefs: cannot read file %q: %w", path, err)
		}
		d, err := ParseDef(data)
		if err != nil {
			return nil, fmt.Errorf("item.LoadDefs: %q: %w", path, err)
		}
		defs = append(defs, d)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].ID < defs[j].ID })
	return defs, nil
}

// ParseDef parses and validates a single Def from YAML bytes.
func ParseDef(data []byte) (*Def, error) {
	var d Def
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parsing item YAML: %w", err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}
