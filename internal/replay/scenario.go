// Package replay runs scripted combat scenarios, records their draw traces
// and outcomes, and checks recorded runs for regressions.
package replay

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/delve/internal/game/actor"
	"github.com/cory-johannsen/delve/internal/game/species"
)

// Actor kinds accepted in scenario files.
const (
	KindHero    = "hero"
	KindMonster = "monster"
)

// StatusSpec is a condition an actor starts the scenario with.
type StatusSpec struct {
	Flag string `yaml:"flag"`
	// Turns is the duration; -1 is permanent.
	Turns int `yaml:"turns"`
}

// ActorSpec describes one combatant. Optional numeric fields left out of the
// file take their species value, or the actor defaults when there is none.
type ActorSpec struct {
	ID      string `yaml:"id"`
	Kind    string `yaml:"kind"`
	Species string `yaml:"species"`
	Name    string `yaml:"name"`

	X *int `yaml:"x"`
	Y *int `yaml:"y"`

	Level *int `yaml:"level"`
	HP    *int `yaml:"hp"`
	MaxHP *int `yaml:"max_hp"`
	AC    *int `yaml:"ac"`
	Luck  int  `yaml:"luck"`

	Attributes *actor.Attributes `yaml:"attributes"`
	Resists    actor.Resistance  `yaml:"resists"`
	// Attacks replaces the species attack list when set.
	Attacks   []actor.Attack    `yaml:"attacks"`
	Status    []StatusSpec      `yaml:"status"`
	Inventory []species.Carried `yaml:"inventory"`
	Cancelled bool              `yaml:"cancelled"`
}

// Round is one attacker turn against one defender.
type Round struct {
	Attacker string `yaml:"attacker"`
	Defender string `yaml:"defender"`
	// Repeat runs the same pairing this many times; 0 means once.
	Repeat int `yaml:"repeat"`
}

// Scenario is a reproducible fight loaded from YAML.
type Scenario struct {
	ID          string `yaml:"id"`
	Description string `yaml:"description"`
	// Seed seeds the default source; 0 lets the caller choose.
	Seed       int64 `yaml:"seed"`
	InLevelGen bool  `yaml:"in_level_gen"`
	// Width and Height bound the map; 0 is unbounded.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	// EngulfEscapeOdds overrides the runner's rule when > 0.
	EngulfEscapeOdds int `yaml:"engulf_escape_odds"`

	Actors []ActorSpec `yaml:"actors"`
	Rounds []Round     `yaml:"rounds"`
}

// Validate checks the scenario's internal references.
//
// Postcondition: Returns nil iff the scenario has an ID, every actor has a
// unique ID and a known kind, monsters name a species, at most one hero is
// declared and every round names declared actors.
func (s *Scenario) Validate() error {
	var errs []string
	if s.ID == "" {
		errs = append(errs, "id must not be empty")
	}
	if len(s.Actors) == 0 {
		errs = append(errs, "at least one actor is required")
	}
	seen := make(map[string]bool, len(s.Actors))
	heroes := 0
	for i, a := range s.Actors {
		switch {
		case a.ID == "":
			errs = append(errs, fmt.Sprintf("actors[%d]: id must not be empty", i))
		case seen[a.ID]:
			errs = append(errs, fmt.Sprintf("actors[%d]: duplicate id %q", i, a.ID))
		}
		seen[a.ID] = true
		switch a.Kind {
		case KindHero:
			heroes++
		case KindMonster:
			if a.Species == "" {
				errs = append(errs, fmt.Sprintf("actor %q: monsters need a species", a.ID))
			}
		default:
			errs = append(errs, fmt.Sprintf("actor %q: kind must be one of [hero, monster], got %q", a.ID, a.Kind))
		}
	}
	if heroes > 1 {
		errs = append(errs, fmt.Sprintf("at most one hero, got %d", heroes))
	}
	for i, r := range s.Rounds {
		if !seen[r.Attacker] {
			errs = append(errs, fmt.Sprintf("rounds[%d]: unknown attacker %q", i, r.Attacker))
		}
		if !seen[r.Defender] {
			errs = append(errs, fmt.Sprintf("rounds[%d]: unknown defender %q", i, r.Defender))
		}
		if r.Attacker == r.Defender {
			errs = append(errs, fmt.Sprintf("rounds[%d]: %q cannot attack itself", i, r.Attacker))
		}
		if r.Repeat < 0 {
			errs = append(errs, fmt.Sprintf("rounds[%d]: repeat must be >= 0", i))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("scenario %q: %s", s.ID, strings.Join(errs, "; "))
	}
	return nil
}

// ParseScenario decodes and validates a scenario.
func ParseScenario(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadScenario reads a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario %q: %w", path, err)
	}
	s, err := ParseScenario(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// LoadScenarios reads every *.yaml scenario in dir, sorted by ID.
func LoadScenarios(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("listing scenarios in %q: %w", dir, err)
	}
	out := make([]*Scenario, 0, len(paths))
	for _, p := range paths {
		s, err := LoadScenario(p)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
