// Package species loads monster species templates and builds actors from them.
package species

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/delve/internal/game/actor"
)

// MaxAttacks is the longest attack list a species may declare.
const MaxAttacks = 6

// Carried is an item a species spawns with.
type Carried struct {
	Item        string `yaml:"item"`
	Quantity    int    `yaml:"quantity"`
	Enchantment int    `yaml:"enchantment"`
	Wield       bool   `yaml:"wield"`
	Wear        bool   `yaml:"wear"`
}

// Template defines a monster species loaded from YAML.
type Template struct {
	ID          string           `yaml:"id"`
	Name        string           `yaml:"name"`
	Description string           `yaml:"description"`
	Level       int              `yaml:"level"`
	MaxHP       int              `yaml:"max_hp"`
	AC          int              `yaml:"ac"`
	Speed       int              `yaml:"speed"`
	Size        actor.Size       `yaml:"size"`
	Frequency   int              `yaml:"frequency"`
	Weight      int              `yaml:"weight"`
	Attacks     []actor.Attack   `yaml:"attacks"`
	Resists     actor.Resistance `yaml:"resists"`
	NoCorpse    bool             `yaml:"no_corpse"`
	Nasty       bool             `yaml:"nasty"`
	// WeaponCheck is "", "need_weapon" or "need_hth_weapon".
	WeaponCheck string    `yaml:"weapon_check"`
	Inventory   []Carried `yaml:"inventory"`

	form *actor.Form
}

// Validate checks that the template satisfies basic invariants.
//
// Precondition: t must not be nil.
// Postcondition: Returns nil iff ID and Name are non-empty, Level, MaxHP and
// AC are non-negative, at most MaxAttacks attacks are declared, the weapon
// check is known and every carried entry names an item with quantity >= 1.
func (t *Template) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("species template: id must not be empty")
	}
	if t.Name == "" {
		return fmt.Errorf("species template %q: name must not be empty", t.ID)
	}
	if t.Level < 0 {
		return fmt.Errorf("species template %q: level must be >= 0", t.ID)
	}
	if t.MaxHP < 0 {
		return fmt.Errorf("species template %q: max_hp must be >= 0", t.ID)
	}
	if t.AC < 0 {
		return fmt.Errorf("species template %q: ac must be >= 0", t.ID)
	}
	if len(t.Attacks) > MaxAttacks {
		return fmt.Errorf("species template %q: at most %d attacks, got %d", t.ID, MaxAttacks, len(t.Attacks))
	}
	if _, err := parseWeaponCheck(t.WeaponCheck); err != nil {
		return fmt.Errorf("species template %q: %w", t.ID, err)
	}
	for i, c := range t.Inventory {
		if c.Item == "" || c.Quantity < 1 {
			return fmt.Errorf("species template %q: inventory[%d] needs an item and quantity >= 1", t.ID, i)
		}
	}
	return nil
}

// Form returns the shared, read-only actor form of this species.
func (t *Template) Form() *actor.Form {
	if t.form == nil {
		t.form = &actor.Form{
			SpeciesID: t.ID,
			Name:      t.Name,
			Level:     t.Level,
			Speed:     t.Speed,
			AC:        t.AC,
			MaxHP:     t.MaxHP,
			Size:      t.Size,
			Frequency: t.Frequency,
			Weight:    t.Weight,
			Attacks:   t.Attacks,
			Resists:   t.Resists,
			NoCorpse:  t.NoCorpse,
			Nasty:     t.Nasty,
		}
	}
	return t.form
}

func parseWeaponCheck(s string) (actor.WeaponCheck, error) {
	switch s {
	case "", "no_weapon_wanted":
		return actor.NoWeaponWanted, nil
	case "need_weapon":
		return actor.NeedWeapon, nil
	case "need_hth_weapon":
		return actor.NeedHTHWeapon, nil
	default:
		return 0, fmt.Errorf("unknown weapon_check %q", s)
	}
}

// LoadTemplateFromBytes parses a single species template from raw YAML bytes.
//
// Postcondition: Returns a validated *Template, or an error.
func LoadTemplateFromBytes(data []byte) (*Template, error) {
	var tmpl Template
	if err := yaml.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("parsing species YAML: %w", err)
	}
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// LoadTemplates reads all *.yaml files in dir and returns the parsed templates.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns all templates or an error on the first parse or validate
// failure; on error, the partial result is discarded.
func LoadTemplates(dir string) ([]*Template, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading species dir %q: %w", dir, err)
	}

	var templates []*Template
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		tmpl, err := LoadTemplateFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		templates = append(templates, tmpl)
	}
	return templates, nil
}
