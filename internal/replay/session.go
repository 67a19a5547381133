package replay

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/delve/internal/game/dice"
)

// RoundResult is what one attacker turn did.
type RoundResult struct {
	Index      int    `yaml:"index" json:"index"`
	Attacker   string `yaml:"attacker" json:"attacker"`
	Defender   string `yaml:"defender" json:"defender"`
	Outcome    string `yaml:"outcome" json:"outcome"`
	Draws      int    `yaml:"draws" json:"draws"`
	AttackerHP int    `yaml:"attacker_hp" json:"attacker_hp"`
	DefenderHP int    `yaml:"defender_hp" json:"defender_hp"`
}

// ActorState is an actor's condition at the end of a run.
type ActorState struct {
	ID         string   `yaml:"id" json:"id"`
	Form       string   `yaml:"form,omitempty" json:"form,omitempty"`
	HP         int      `yaml:"hp" json:"hp"`
	MaxHP      int      `yaml:"max_hp" json:"max_hp"`
	Level      int      `yaml:"level" json:"level"`
	Experience int      `yaml:"experience" json:"experience"`
	Dead       bool     `yaml:"dead" json:"dead"`
	Cause      string   `yaml:"cause,omitempty" json:"cause,omitempty"`
	Status     []string `yaml:"status,omitempty" json:"status,omitempty"`
}

// Session is the full record of one scenario run.
type Session struct {
	ID         string        `yaml:"id"`
	ScenarioID string        `yaml:"scenario_id"`
	Seed       int64         `yaml:"seed"`
	RecordedAt time.Time     `yaml:"recorded_at"`
	Rounds     []RoundResult `yaml:"rounds"`
	Final      []ActorState  `yaml:"final"`
	Deaths     int           `yaml:"deaths"`
	Messages   []string      `yaml:"messages"`
	Draws      []dice.Draw   `yaml:"draws"`
}

// Trace returns the session's draws as a replayable trace.
func (s *Session) Trace() dice.Trace {
	return dice.Trace{Seed: s.Seed, Draws: append([]dice.Draw(nil), s.Draws...)}
}

// WriteSession stores s as YAML at path.
func WriteSession(path string, s *Session) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("replay: marshalling session: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("replay: writing session %q: %w", path, err)
	}
	return nil
}

// ReadSession loads a session written by WriteSession.
func ReadSession(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("replay: reading session %q: %w", path, err)
	}
	var s Session
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("replay: parsing session %q: %w", path, err)
	}
	return &s, nil
}

// Mismatch locates the first difference between two sessions.
type Mismatch struct {
	// Round is the round index, or -1 for a difference outside the rounds.
	Round int
	Field string
	Want  string
	Got   string
}

func (m *Mismatch) String() string {
	if m.Round < 0 {
		return fmt.Sprintf("%s: want %s, got %s", m.Field, m.Want, m.Got)
	}
	return fmt.Sprintf("round %d %s: want %s, got %s", m.Round, m.Field, m.Want, m.Got)
}

// Diff compares got against the reference want and returns the first
// mismatch in round order, then final actor state, then death count, or nil
// when the outcomes agree. Draw sequences are compared by Runner.Verify, not
// here.
func Diff(want, got *Session) *Mismatch {
	n := min(len(want.Rounds), len(got.Rounds))
	for i := 0; i < n; i++ {
		w, g := want.Rounds[i], got.Rounds[i]
		switch {
		case w.Attacker != g.Attacker || w.Defender != g.Defender:
			return &Mismatch{Round: i, Field: "pairing",
				Want: w.Attacker + ">" + w.Defender, Got: g.Attacker + ">" + g.Defender}
		case w.Outcome != g.Outcome:
			return &Mismatch{Round: i, Field: "outcome", Want: w.Outcome, Got: g.Outcome}
		case w.Draws != g.Draws:
			return &Mismatch{Round: i, Field: "draws", Want: fmt.Sprint(w.Draws), Got: fmt.Sprint(g.Draws)}
		case w.AttackerHP != g.AttackerHP:
			return &Mismatch{Round: i, Field: "attacker_hp", Want: fmt.Sprint(w.AttackerHP), Got: fmt.Sprint(g.AttackerHP)}
		case w.DefenderHP != g.DefenderHP:
			return &Mismatch{Round: i, Field: "defender_hp", Want: fmt.Sprint(w.DefenderHP), Got: fmt.Sprint(g.DefenderHP)}
		}
	}
	if len(want.Rounds) != len(got.Rounds) {
		return &Mismatch{Round: n, Field: "rounds", Want: fmt.Sprint(len(want.Rounds)), Got: fmt.Sprint(len(got.Rounds))}
	}

	finals := make(map[string]ActorState, len(got.Final))
	for _, st := range got.Final {
		finals[st.ID] = st
	}
	for _, w := range want.Final {
		g, ok := finals[w.ID]
		if !ok {
			return &Mismatch{Round: -1, Field: "actor " + w.ID, Want: "present", Got: "missing"}
		}
		if w.HP != g.HP || w.Dead != g.Dead || w.Level != g.Level || w.Form != g.Form {
			return &Mismatch{Round: -1, Field: "actor " + w.ID,
				Want: fmt.Sprintf("hp=%d dead=%t level=%d form=%s", w.HP, w.Dead, w.Level, w.Form),
				Got:  fmt.Sprintf("hp=%d dead=%t level=%d form=%s", g.HP, g.Dead, g.Level, g.Form)}
		}
	}
	if want.Deaths != got.Deaths {
		return &Mismatch{Round: -1, Field: "deaths", Want: fmt.Sprint(want.Deaths), Got: fmt.Sprint(got.Deaths)}
	}
	return nil
}

// NewSource returns the draw source for kind ("seeded" or "crypto"). A seeded
// source with seed 0 gets a fresh seed, which is returned.
func NewSource(kind string, seed int64) (dice.Source, int64, error) {
	switch kind {
	case "crypto":
		return dice.NewCryptoSource(), 0, nil
	case "seeded", "":
		if seed == 0 {
			s, err := dice.NewSeed()
			if err != nil {
				return nil, 0, fmt.Errorf("replay: %w", err)
			}
			seed = s
		}
		return dice.NewSeededSource(seed), seed, nil
	default:
		return nil, 0, fmt.Errorf("replay: unknown source %q", kind)
	}
}
