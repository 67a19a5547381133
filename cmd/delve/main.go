// Package main provides the delve binary: it runs combat scenarios, records
// their draw traces, and replays recorded sessions to detect regressions.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/delve/internal/config"
	"github.com/cory-johannsen/delve/internal/game/dice"
	"github.com/cory-johannsen/delve/internal/game/item"
	"github.com/cory-johannsen/delve/internal/game/species"
	"github.com/cory-johannsen/delve/internal/observability"
	"github.com/cory-johannsen/delve/internal/replay"
	"github.com/cory-johannsen/delve/internal/storage/postgres"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	scenarioPath := flag.String("scenario", "", "scenario YAML file; empty runs every scenario in content.scenarios_dir")
	seed := flag.Int64("seed", 0, "seed for the seeded source (0 = scenario seed, then config seed)")
	recordPath := flag.String("record", "", "write the recorded session to this file (\"auto\" = simulation.trace_dir)")
	replayPath := flag.String("replay", "", "replay a recorded session file and report divergences")
	store := flag.Bool("store", false, "store each recorded session in PostgreSQL")
	quiet := flag.Bool("quiet", false, "suppress per-round output")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	runner, err := newRunner(cfg, logger)
	if err != nil {
		logger.Fatal("loading content", zap.Error(err))
	}

	var repo *postgres.SessionRepository
	if *store {
		if !cfg.Database.Enabled {
			logger.Fatal("-store requires database.enabled")
		}
		pool, err := postgres.Connect(ctx, cfg.Database, logger.Named("postgres"))
		if err != nil {
			logger.Fatal("connecting to database", zap.Error(err))
		}
		defer pool.Close()
		if err := pool.Health(ctx, 5*time.Second); err != nil {
			logger.Fatal("checking database", zap.Error(err))
		}
		repo = postgres.NewSessionRepository(pool.DB())
	}

	out := io.Writer(os.Stdout)
	if *quiet {
		out = io.Discard
	}

	if *replayPath != "" {
		if *scenarioPath == "" {
			logger.Fatal("-replay requires -scenario")
		}
		sc, err := replay.LoadScenario(*scenarioPath)
		if err != nil {
			logger.Fatal("loading scenario", zap.Error(err))
		}
		if err := verify(ctx, runner, sc, *replayPath, out); err != nil {
			logger.Error("replay failed", zap.String("scenario", sc.ID), zap.Error(err))
			os.Exit(1)
		}
		logger.Info("replay matched", zap.String("scenario", sc.ID), zap.Duration("elapsed", time.Since(start)))
		return
	}

	var scenarios []*replay.Scenario
	if *scenarioPath != "" {
		sc, err := replay.LoadScenario(*scenarioPath)
		if err != nil {
			logger.Fatal("loading scenario", zap.Error(err))
		}
		scenarios = append(scenarios, sc)
	} else {
		scenarios, err = replay.LoadScenarios(cfg.Content.ScenariosDir)
		if err != nil {
			logger.Fatal("loading scenarios", zap.Error(err))
		}
	}
	if len(scenarios) == 0 {
		logger.Fatal("no scenarios to run", zap.String("dir", cfg.Content.ScenariosDir))
	}
	if *recordPath != "" && *recordPath != "auto" && len(scenarios) > 1 {
		logger.Fatal("-record with a file path needs a single -scenario; use -record auto")
	}

	for _, sc := range scenarios {
		sess, err := run(ctx, runner, sc, cfg.Simulation, *seed, out)
		if err != nil {
			logger.Fatal("running scenario", zap.String("scenario", sc.ID), zap.Error(err))
		}
		if *recordPath != "" {
			path := *recordPath
			if path == "auto" {
				path = filepath.Join(cfg.Simulation.TraceDir, fmt.Sprintf("%s-%d.yaml", sess.ScenarioID, sess.Seed))
				if err := os.MkdirAll(cfg.Simulation.TraceDir, 0o755); err != nil {
					logger.Fatal("creating trace dir", zap.Error(err))
				}
			}
			if err := replay.WriteSession(path, sess); err != nil {
				logger.Fatal("recording session", zap.Error(err))
			}
			logger.Info("session recorded", zap.String("path", path), zap.Int("draws", len(sess.Draws)))
		}
		if repo != nil {
			if err := repo.Save(ctx, sess); err != nil {
				logger.Fatal("storing session", zap.Error(err))
			}
			logger.Info("session stored", zap.String("id", sess.ID))
		}
	}

	logger.Info("done", zap.Int("scenarios", len(scenarios)), zap.Duration("elapsed", time.Since(start)))
}

// newRunner loads item and species content and builds the scenario runner.
func newRunner(cfg config.Config, logger *zap.Logger) (*replay.Runner, error) {
	defs, err := item.LoadDefs(cfg.Content.ItemsDir)
	if err != nil {
		return nil, err
	}
	items := item.NewRegistry()
	for _, d := range defs {
		if err := items.Register(d); err != nil {
			return nil, err
		}
	}

	tmpls, err := species.LoadTemplates(cfg.Content.SpeciesDir)
	if err != nil {
		return nil, err
	}
	sp, err := species.NewRegistry(tmpls...)
	if err != nil {
		return nil, err
	}
	logger.Info("content loaded", zap.Int("items", items.Len()), zap.Int("species", sp.Len()))

	runner := replay.NewRunner(sp, items, logger)
	runner.DrawLogger = observability.DrawLogger(logger, cfg.Logging)
	runner.Rules.EngulfEscapeOdds = cfg.Simulation.EngulfEscapeOdds
	return runner, nil
}

// run picks the seed (flag, then scenario, then config) and plays sc.
func run(ctx context.Context, runner *replay.Runner, sc *replay.Scenario, simCfg config.SimulationConfig, seedFlag int64, out io.Writer) (*replay.Session, error) {
	seed := simCfg.Seed
	if sc.Seed != 0 {
		seed = sc.Seed
	}
	if seedFlag != 0 {
		seed = seedFlag
	}
	src, seed, err := replay.NewSource(simCfg.Source, seed)
	if err != nil {
		return nil, err
	}
	played := *sc
	played.Seed = seed

	sess, err := runner.Run(ctx, &played, src)
	if err != nil {
		return nil, err
	}
	printSession(out, sess)
	return sess, nil
}

// verify replays the session recorded at path and checks both the draw
// sequence and the outcomes against it.
func verify(ctx context.Context, runner *replay.Runner, sc *replay.Scenario, path string, out io.Writer) error {
	want, err := replay.ReadSession(path)
	if err != nil {
		return err
	}
	if want.ScenarioID != sc.ID {
		return fmt.Errorf("session %s was recorded for scenario %q, not %q", path, want.ScenarioID, sc.ID)
	}

	got, verr := runner.Verify(ctx, sc, want.Trace())
	var div *dice.DivergenceError
	switch {
	case verr == nil:
	case errors.As(verr, &div) && got != nil:
		fmt.Fprintf(out, "draw divergence at call %d: %v\n", div.Index, verr)
	default:
		return verr
	}
	printSession(out, got)
	if m := replay.Diff(want, got); m != nil {
		fmt.Fprintf(out, "outcome mismatch: %s\n", m)
		return errors.Join(verr, fmt.Errorf("outcome mismatch: %s", m))
	}
	return verr
}

func printSession(out io.Writer, s *replay.Session) {
	fmt.Fprintf(out, "== %s (seed %d, %d draws)\n", s.ScenarioID, s.Seed, len(s.Draws))
	for _, r := range s.Rounds {
		fmt.Fprintf(out, "round %3d  %-12s -> %-12s %-40s draws=%d hp=%d/%d\n",
			r.Index, r.Attacker, r.Defender, r.Outcome, r.Draws, r.AttackerHP, r.DefenderHP)
	}
	for _, m := range s.Messages {
		fmt.Fprintf(out, "  %s\n", m)
	}
	for _, a := range s.Final {
		state := "alive"
		if a.Dead {
			state = "dead (" + a.Cause + ")"
		}
		fmt.Fprintf(out, "%-12s %-16s hp=%d/%d level=%d %s\n", a.ID, a.Form, a.HP, a.MaxHP, a.Level, state)
	}
}
