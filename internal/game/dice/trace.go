package dice

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Draw is one primitive draw as seen by a Tracer.
type Draw struct {
	Seq    int    `yaml:"seq" json:"seq"`
	Func   string `yaml:"func" json:"func"`
	Arg    int    `yaml:"arg" json:"arg"`
	Result int    `yaml:"result" json:"result"`
}

// String renders the draw as "rn2(20)=4".
func (d Draw) String() string {
	return fmt.Sprintf("%s(%d)=%d", d.Func, d.Arg, d.Result)
}

// Trace is an ordered, serializable draw log for one simulation run.
type Trace struct {
	Seed  int64  `yaml:"seed"`
	Draws []Draw `yaml:"draws"`
}

// Recorder is a Tracer that keeps every observed draw.
type Recorder struct {
	draws []Draw
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder { return &Recorder{} }

// Observe appends d to the recording.
func (r *Recorder) Observe(d Draw) { r.draws = append(r.draws, d) }

// Draws returns a copy of the recorded draws.
func (r *Recorder) Draws() []Draw {
	out := make([]Draw, len(r.draws))
	copy(out, r.draws)
	return out
}

// Trace returns the recording as a Trace tagged with seed.
func (r *Recorder) Trace(seed int64) Trace {
	return Trace{Seed: seed, Draws: r.Draws()}
}

// WriteTrace serializes t as YAML to path.
//
// Postcondition: ReadTrace(path) returns a Trace equal to t.
func WriteTrace(path string, t Trace) error {
	data, err := yaml.Marshal(t)
	if err != nil {
		return fmt.Errorf("dice: marshalling trace: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("dice: writing trace %q: %w", path, err)
	}
	return nil
}

// ReadTrace loads a YAML trace written by WriteTrace.
func ReadTrace(path string) (Trace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Trace{}, fmt.Errorf("dice: reading trace %q: %w", path, err)
	}
	var t Trace
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Trace{}, fmt.Errorf("dice: parsing trace %q: %w", path, err)
	}
	return t, nil
}
