package replay

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/delve/internal/game/actor"
	"github.com/cory-johannsen/delve/internal/game/combat"
	"github.com/cory-johannsen/delve/internal/game/condition"
	"github.com/cory-johannsen/delve/internal/game/dice"
	"github.com/cory-johannsen/delve/internal/game/grid"
	"github.com/cory-johannsen/delve/internal/game/inventory"
	"github.com/cory-johannsen/delve/internal/game/item"
	"github.com/cory-johannsen/delve/internal/game/level"
	"github.com/cory-johannsen/delve/internal/game/message"
	"github.com/cory-johannsen/delve/internal/game/species"
)

// Runner builds a fresh simulation per scenario and drives its rounds.
// A Runner holds only read-only content and may be shared.
type Runner struct {
	species *species.Registry
	items   *item.Registry
	logger  *zap.Logger
	// DrawLogger receives the per-draw debug log; defaults to the runner
	// logger named "dice".
	DrawLogger *zap.Logger
	// Rules are the combat constants used unless a scenario overrides them.
	Rules combat.Rules
}

// NewRunner creates a Runner over the given content.
//
// Precondition: items must be non-nil; sp may be nil for hero-only scenarios.
func NewRunner(sp *species.Registry, items *item.Registry, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		species: sp,
		items:   items,
		logger:  logger.Named("replay"),
		Rules:   combat.DefaultRules(),
	}
}

// world is the per-run state behind one Simulation.
type world struct {
	sim     *combat.Simulation
	rec     *dice.Recorder
	msgs    *message.Buffer
	events  *combat.EventLog
	factory *inventory.Factory
	actors  map[string]actor.Actor
	order   []string
}

// Run plays every round of sc with draws from src and returns the recorded
// session. Context cancellation is checked between rounds.
//
// Precondition: sc has passed Validate.
// Postcondition: on success the session holds every draw taken, in order.
func (r *Runner) Run(ctx context.Context, sc *Scenario, src dice.Source) (*Session, error) {
	start := time.Now()
	w, err := r.build(sc, src)
	if err != nil {
		return nil, err
	}

	sess := &Session{
		ID:         uuid.New().String(),
		ScenarioID: sc.ID,
		Seed:       sc.Seed,
		RecordedAt: start.UTC(),
	}
	for i, rd := range sc.Rounds {
		times := rd.Repeat
		if times == 0 {
			times = 1
		}
		for n := 0; n < times; n++ {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("scenario %q round %d: %w", sc.ID, i, err)
			}
			sess.Rounds = append(sess.Rounds, w.round(len(sess.Rounds), rd))
		}
	}

	sess.Draws = w.rec.Draws()
	sess.Messages = w.msgs.Messages()
	sess.Deaths = w.events.Count(combat.EventDeath)
	for _, id := range w.order {
		sess.Final = append(sess.Final, snapshot(w.actors[id]))
	}
	r.logger.Info("scenario complete",
		zap.String("scenario", sc.ID),
		zap.Int("rounds", len(sess.Rounds)),
		zap.Int("draws", len(sess.Draws)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return sess, nil
}

// Verify replays sc against trace and reports the first divergence, or
// unconsumed reference draws, as a *dice.DivergenceError. The session of the
// replayed run is returned either way.
func (r *Runner) Verify(ctx context.Context, sc *Scenario, trace dice.Trace) (*Session, error) {
	pb := dice.NewPlayback(trace)
	sess, err := r.Run(ctx, sc, pb)
	if err != nil {
		return nil, err
	}
	sess.Seed = trace.Seed
	if err := pb.Finish(); err != nil {
		r.logger.Warn("trace diverged", zap.String("scenario", sc.ID), zap.Error(err))
		return sess, err
	}
	return sess, nil
}

func (r *Runner) build(sc *Scenario, src dice.Source) (*world, error) {
	drawLogger := r.DrawLogger
	if drawLogger == nil {
		drawLogger = r.logger.Named("dice")
	}
	roller := dice.NewLoggedRoller(src, drawLogger)
	rec := dice.NewRecorder()
	roller.Attach(rec)

	reg := level.NewRegistry(sc.Width, sc.Height)
	factory := inventory.NewFactory(r.items, inventory.NewFloorManager())
	w := &world{
		rec:     rec,
		msgs:    &message.Buffer{},
		events:  &combat.EventLog{},
		factory: factory,
		actors:  make(map[string]actor.Actor, len(sc.Actors)),
	}

	sim := combat.NewSimulation(roller, r.logger)
	sim.Level = reg
	sim.Items = factory
	sim.Messages = message.Tee{w.msgs, message.NewLogSink(r.logger)}
	sim.Events = w.events
	sim.InLevelGen = sc.InLevelGen
	sim.Rules = r.Rules
	if sc.EngulfEscapeOdds > 0 {
		sim.Rules.EngulfEscapeOdds = sc.EngulfEscapeOdds
	}
	if r.species != nil && r.species.Len() > 0 {
		sim.Species = r.species
	}
	w.sim = sim

	for i, spec := range sc.Actors {
		a, err := r.spawn(spec, factory)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", sc.ID, err)
		}
		pos := grid.Pos{X: i}
		if spec.X != nil {
			pos.X = *spec.X
		}
		if spec.Y != nil {
			pos.Y = *spec.Y
		}
		a.Core().Pos = pos
		if err := reg.Place(a); err != nil {
			return nil, fmt.Errorf("scenario %q: %w", sc.ID, err)
		}
		if h, ok := a.(*actor.Hero); ok {
			sim.Hero = h
		}
		w.actors[spec.ID] = a
		w.order = append(w.order, spec.ID)
	}
	return w, nil
}

func (r *Runner) spawn(spec ActorSpec, factory *inventory.Factory) (actor.Actor, error) {
	var form *actor.Form
	if spec.Species != "" {
		if r.species == nil {
			return nil, fmt.Errorf("actor %q: no species loaded for %q", spec.ID, spec.Species)
		}
		tmpl, ok := r.species.Get(spec.Species)
		if !ok {
			return nil, fmt.Errorf("actor %q: unknown species %q", spec.ID, spec.Species)
		}
		form = tmpl.Form()
	}

	var a actor.Actor
	switch spec.Kind {
	case KindHero:
		h := actor.NewHero(spec.ID, spec.Name, form)
		h.Luck = spec.Luck
		a = h
	default:
		m, err := r.species.Spawn(spec.ID, spec.Species, factory)
		if err != nil {
			return nil, fmt.Errorf("actor %q: %w", spec.ID, err)
		}
		m.Cancelled = spec.Cancelled
		a = m
	}

	if err := equip(a, spec.Inventory, factory); err != nil {
		return nil, fmt.Errorf("actor %q: %w", spec.ID, err)
	}
	if err := applyOverrides(a.Core(), spec); err != nil {
		return nil, fmt.Errorf("actor %q: %w", spec.ID, err)
	}
	return a, nil
}

func equip(a actor.Actor, carried []species.Carried, factory *inventory.Factory) error {
	b := a.Core()
	for _, c := range carried {
		inst, err := factory.Create(c.Item, c.Quantity)
		if err != nil {
			return err
		}
		inst.Enchantment = c.Enchantment
		inst, err = b.Inventory().Add(inst)
		if err != nil {
			return err
		}
		switch {
		case c.Wield:
			if err := b.Inventory().Wield(inst.ID); err != nil {
				return err
			}
			b.SetWeaponDice(inst)
			if m, ok := a.(*actor.Monster); ok {
				m.WeaponCheck = actor.NoWeaponWanted
			}
		case c.Wear:
			if err := b.Inventory().Wear(inst.ID); err != nil {
				return err
			}
		}
	}
	return nil
}

func applyOverrides(b *actor.Body, spec ActorSpec) error {
	if spec.Level != nil {
		b.Level = max(*spec.Level, 1)
	}
	if spec.AC != nil {
		b.AC = *spec.AC
	}
	if spec.Attributes != nil {
		b.Attrs = *spec.Attributes
	}
	b.Resists |= spec.Resists
	if spec.Attacks != nil {
		b.Attacks = append([]actor.Attack(nil), spec.Attacks...)
		if w := b.Inventory().Wielded(); w != nil {
			b.SetWeaponDice(w)
		}
	}
	if spec.MaxHP != nil && *spec.MaxHP > 0 {
		b.MaxHP = *spec.MaxHP
		b.HP = b.MaxHP
	}
	if spec.HP != nil {
		b.HP = min(max(*spec.HP, 0), b.MaxHP)
	}
	for _, st := range spec.Status {
		f, err := condition.ParseFlag(st.Flag)
		if err != nil {
			return err
		}
		b.Status.Apply(f, st.Turns)
	}
	return nil
}

func (w *world) round(index int, rd Round) RoundResult {
	attacker, defender := w.actors[rd.Attacker], w.actors[rd.Defender]
	before := w.sim.Dice.Count()
	w.sim.Turn = index + 1
	out := combat.AttackRound(w.sim, attacker, defender)
	return RoundResult{
		Index:      index,
		Attacker:   rd.Attacker,
		Defender:   rd.Defender,
		Outcome:    out.String(),
		Draws:      w.sim.Dice.Count() - before,
		AttackerHP: attacker.Core().HP,
		DefenderHP: defender.Core().HP,
	}
}

func snapshot(a actor.Actor) ActorState {
	b := a.Core()
	st := ActorState{
		ID:         a.ID(),
		HP:         b.HP,
		MaxHP:      b.MaxHP,
		Level:      b.Level,
		Experience: b.Experience,
		Dead:       b.Dead,
		Cause:      b.Cause,
	}
	if b.Form != nil {
		st.Form = b.Form.SpeciesID
	}
	for _, act := range b.Status.All() {
		st.Status = append(st.Status, act.Flag.String())
	}
	return st
}
