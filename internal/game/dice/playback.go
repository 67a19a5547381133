package dice

import (
	"errors"
	"fmt"
	"sync"
)

// ErrTraceExhausted marks a divergence where the run asked for more draws than
// the reference trace holds.
var ErrTraceExhausted = errors.New("reference trace exhausted")

// ErrTraceUnconsumed marks a divergence where the run finished before
// consuming every reference draw.
var ErrTraceUnconsumed = errors.New("reference trace not fully consumed")

// DivergenceError reports the first call at which a run stopped matching its
// reference trace.
type DivergenceError struct {
	// Index is the zero-based call number K at which the sequences diverged.
	Index int
	// Want is the reference draw at Index; nil when the trace was exhausted.
	Want *Draw
	// Got is the draw the run attempted at Index; nil when the run ended early.
	Got *Draw
	// Cause is ErrTraceExhausted, ErrTraceUnconsumed, or nil for a mismatch.
	Cause error
}

func (e *DivergenceError) Error() string {
	switch {
	case e.Want == nil:
		return fmt.Sprintf("draw sequence diverged at call %d: got %s(%d) after %v", e.Index, e.Got.Func, e.Got.Arg, e.Cause)
	case e.Got == nil:
		return fmt.Sprintf("draw sequence diverged at call %d: want %s, %v", e.Index, e.Want, e.Cause)
	default:
		return fmt.Sprintf("draw sequence diverged at call %d: want %s, got %s(%d)", e.Index, e.Want, e.Got.Func, e.Got.Arg)
	}
}

func (e *DivergenceError) Unwrap() error { return e.Cause }

// Playback is a NamedSource that replays a recorded Trace and asserts that the
// run requests the same function and argument at every call.
//
// After the first divergence Playback keeps answering (with recorded results
// when they fit, else 0) so the run can finish; Err reports the divergence.
type Playback struct {
	mu   sync.Mutex
	want []Draw
	pos  int
	err  *DivergenceError
}

// NewPlayback returns a Playback over t.
func NewPlayback(t Trace) *Playback {
	return &Playback{want: append([]Draw(nil), t.Draws...)}
}

// Intn satisfies Source for callers that do not name their draws; only the
// argument is compared.
func (p *Playback) Intn(n int) int { return p.Draw("", n) }

// Draw returns the next recorded result and checks fn and n against it.
//
// Precondition: n > 0.
func (p *Playback) Draw(fn string, n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	idx := p.pos
	p.pos++
	got := Draw{Seq: idx, Func: fn, Arg: n}

	if idx >= len(p.want) {
		p.fail(&DivergenceError{Index: idx, Got: &got, Cause: ErrTraceExhausted})
		return 0
	}
	w := p.want[idx]
	if (fn != "" && w.Func != fn) || w.Arg != n || w.Result < 0 || w.Result >= n {
		want := w
		p.fail(&DivergenceError{Index: idx, Want: &want, Got: &got})
		if w.Result < 0 || w.Result >= n {
			return 0
		}
	}
	return w.Result
}

func (p *Playback) fail(err *DivergenceError) {
	if p.err == nil {
		p.err = err
	}
}

// Err returns the first divergence observed so far, or nil.
func (p *Playback) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err == nil {
		return nil
	}
	return p.err
}

// Finish returns the first divergence, or a divergence for unconsumed
// reference draws, or nil when the run matched the trace call-for-call.
func (p *Playback) Finish() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	if p.pos < len(p.want) {
		want := p.want[p.pos]
		return &DivergenceError{Index: p.pos, Want: &want, Cause: ErrTraceUnconsumed}
	}
	return nil
}

// Consumed reports how many draws have been requested.
func (p *Playback) Consumed() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pos
}
