package dice

import "go.uber.org/zap"

// Tracer observes every primitive draw taken by a Roller, in order.
type Tracer interface {
	Observe(d Draw)
}

// Roller wraps a Source and logger to provide logged, traced draws.
// All draws are logged at debug level with function, argument, result and
// sequence number.
//
// A Roller is owned by one simulation and is not safe for concurrent use.
type Roller struct {
	src     Source
	named   NamedSource
	logger  *zap.Logger
	tracers []Tracer
	seq     int
}

// NewLoggedRoller creates a Roller that draws from src and logs each draw to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	r := &Roller{src: src, logger: logger}
	if ns, ok := src.(NamedSource); ok {
		r.named = ns
	}
	return r
}

// Attach registers t to observe all subsequent draws.
//
// Precondition: t must be non-nil.
func (r *Roller) Attach(t Tracer) {
	r.tracers = append(r.tracers, t)
}

// Count returns the number of primitive draws taken so far.
func (r *Roller) Count() int { return r.seq }

func (r *Roller) draw(fn string, n int) int {
	if n <= 0 {
		panic("dice: draw called with n <= 0 from " + fn)
	}
	var v int
	if r.named != nil {
		v = r.named.Draw(fn, n)
	} else {
		v = r.src.Intn(n)
	}
	d := Draw{Seq: r.seq, Func: fn, Arg: n, Result: v}
	r.seq++
	r.logger.Debug("dice draw",
		zap.Int("seq", d.Seq),
		zap.String("func", d.Func),
		zap.Int("arg", d.Arg),
		zap.Int("result", d.Result),
	)
	for _, t := range r.tracers {
		t.Observe(d)
	}
	return v
}

// Rn2 returns a value in [0, n).
//
// Precondition: n > 0.
func (r *Roller) Rn2(n int) int { return r.draw(FuncRn2, n) }

// Rnd returns a value in [1, n].
//
// Precondition: n > 0.
func (r *Roller) Rnd(n int) int { return r.draw(FuncRnd, n) + 1 }

// D rolls count dice of the given sides and returns their sum.
// Zero count or zero sides rolls nothing and returns 0.
//
// Postcondition: exactly count draws are taken when sides > 0.
func (r *Roller) D(count, sides int) int {
	return r.Roll(Expression{Count: count, Sides: sides}).Total()
}

// Roll evaluates expr, one draw per die, and logs the result at debug level.
//
// Postcondition: len(result.Dice) == expr.Count when expr.Sides > 0, else 0.
func (r *Roller) Roll(expr Expression) RollResult {
	result := RollResult{Expression: expr.String(), Modifier: expr.Modifier}
	if expr.Count <= 0 || expr.Sides <= 0 {
		return result
	}
	result.Dice = make([]int, expr.Count)
	for i := range result.Dice {
		result.Dice[i] = r.draw(FuncD, expr.Sides) + 1
	}
	r.logger.Debug("dice roll",
		zap.String("expression", result.Expression),
		zap.Ints("dice", result.Dice),
		zap.Int("modifier", result.Modifier),
		zap.Int("total", result.Total()),
	)
	return result
}

// RollExpr parses expr and rolls it.
//
// Precondition: expr must be a valid dice expression string.
// Postcondition: Returns a RollResult or a parse error; no draws on error.
func (r *Roller) RollExpr(expr string) (RollResult, error) {
	e, err := Parse(expr)
	if err != nil {
		return RollResult{}, err
	}
	return r.Roll(e), nil
}

// Rne returns a small value with a geometric distribution: it starts at 1 and
// keeps incrementing while a 1-in-x draw succeeds, up to limit.
//
// Precondition: x > 0.
// Postcondition: 1 <= result <= max(1, limit).
func (r *Roller) Rne(x, limit int) int {
	n := 1
	for n < limit && r.draw(FuncRne, x) == 0 {
		n++
	}
	return n
}

// Rnz returns a value around i with a long-tailed distribution, scaled up or
// down by a random factor. It is used for timers such as corpse rot.
//
// Precondition: limit is the Rne cap for the current hero level.
func (r *Roller) Rnz(i, limit int) int {
	x := int64(i)
	tmp := int64(1000)
	tmp += int64(r.draw(FuncRnz, 1000))
	tmp *= int64(r.Rne(4, limit))
	if r.draw(FuncRnz, 2) != 0 {
		x *= tmp
		x /= 1000
	} else {
		x *= 1000
		x /= tmp
	}
	return int(x)
}
