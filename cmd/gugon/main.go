package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/gugon/internal/ai"
	"github.com/udisondev/gugon/internal/combatlog"
	"github.com/udisondev/gugon/internal/config"
	"github.com/udisondev/gugon/internal/data"
	"github.com/udisondev/gugon/internal/db"
	"github.com/udisondev/gugon/internal/dice"
	"github.com/udisondev/gugon/internal/game/combat"
	"github.com/udisondev/gugon/internal/game/encounter"
	"github.com/udisondev/gugon/internal/game/progression"
	"github.com/udisondev/gugon/internal/model"
)

const DefaultConfigPath = "config/gugon.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

// simulator holds everything shared by the encounters of one batch.
type simulator struct {
	cfg      config.Simulator
	batch    string
	classes  *progression.Catalog
	hero     data.Hero
	monsters []encounter.MonsterSpec
	archive  db.Archive
	in       io.Reader
	out      io.Writer
}

func run(ctx context.Context) error {
	cfgPath := DefaultConfigPath
	if p := os.Getenv("GUGON_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadSimulator(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))
	ai.EnableDebugLogging(cfg.AIDebug || logLevel == slog.LevelDebug)

	slog.Info("gugon starting",
		"log_level", cfg.LogLevel,
		"seed", cfg.Seed,
		"runs", cfg.Runs,
		"workers", cfg.Workers,
		"archive", cfg.Archive.Driver)

	sim, err := newSimulator(cfg)
	if err != nil {
		return err
	}

	archive, err := openArchive(ctx, cfg)
	if err != nil {
		return err
	}
	if archive != nil {
		defer archive.Close()
		sim.archive = archive
	}

	slog.Info("batch started", "batch", sim.batch)
	results, err := sim.runBatch(ctx)
	if err != nil {
		return err
	}

	summarize(results)
	if archive != nil {
		outcomes, err := archive.Outcomes(ctx)
		if err != nil {
			return err
		}
		slog.Info("archive totals", "outcomes", outcomes)
	}
	return nil
}

func newSimulator(cfg config.Simulator) (*simulator, error) {
	classes, err := data.LoadClasses()
	if err != nil {
		return nil, fmt.Errorf("loading classes: %w", err)
	}
	bestiary, err := data.LoadBestiary(classes)
	if err != nil {
		return nil, fmt.Errorf("loading bestiary: %w", err)
	}
	hero, err := bestiary.Hero(cfg.Hero)
	if err != nil {
		return nil, err
	}
	monsters := make([]encounter.MonsterSpec, 0, len(cfg.Encounter))
	for _, name := range cfg.Encounter {
		spec, err := bestiary.Monster(name)
		if err != nil {
			return nil, err
		}
		monsters = append(monsters, spec)
	}

	batch, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("creating batch id: %w", err)
	}

	return &simulator{
		cfg:      cfg,
		batch:    batch.String(),
		classes:  classes,
		hero:     hero,
		monsters: monsters,
		in:       os.Stdin,
		out:      os.Stdout,
	}, nil
}

func openArchive(ctx context.Context, cfg config.Simulator) (db.Archive, error) {
	switch cfg.Archive.Driver {
	case config.ArchivePostgres:
		a, err := db.OpenPostgres(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, fmt.Errorf("opening postgres archive: %w", err)
		}
		slog.Info("database connected", "host", cfg.Database.Host, "dbname", cfg.Database.DBName)
		return a, nil
	case config.ArchiveSQLite:
		a, err := db.OpenSQLite(ctx, cfg.Archive.Path)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite archive: %w", err)
		}
		slog.Info("sqlite archive opened", "path", cfg.Archive.Path)
		return a, nil
	default:
		return nil, nil
	}
}

// runBatch plays cfg.Runs encounters on at most cfg.Workers goroutines.
func (s *simulator) runBatch(ctx context.Context) ([]db.Result, error) {
	results := make([]db.Result, s.cfg.Runs)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)
	for i := range s.cfg.Runs {
		g.Go(func() error {
			r, err := s.simulate(gctx, i)
			if err != nil {
				return fmt.Errorf("run %d: %w", i, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// encounterID names run index of batch. Archived events are keyed by it,
// so it stays unique across batches sharing one archive.
func encounterID(batch string, index int) string {
	return fmt.Sprintf("%s/run-%04d", batch, index)
}

// simulate plays encounter index with its own dice stream.
func (s *simulator) simulate(ctx context.Context, index int) (db.Result, error) {
	id := encounterID(s.batch, index)
	src := dice.NewSource(dice.DeriveSeed(s.cfg.Seed, index))

	var presenter combat.ChoicePresenter = encounter.RandomChoice{Src: src}
	if s.cfg.Interactive {
		presenter = encounter.NewPrompt(s.in, s.out)
	}

	log := combatlog.NewLog(s.cfg.LogLines)
	sinks := combatlog.Fanout{log, combatlog.NewSlogSink(slog.Default(), slog.LevelDebug)}
	if s.archive != nil {
		sinks = append(sinks, s.archive)
	}

	e := encounter.New(src,
		encounter.WithID(id),
		encounter.WithSink(sinks),
		encounter.WithPresenter(presenter))

	player, err := s.hero.Player(s.hero.Name, s.classes, src)
	if err != nil {
		return db.Result{}, err
	}
	if _, err := e.AddPlayer(player); err != nil {
		return db.Result{}, err
	}
	levels := s.hero.Level
	if s.cfg.Level > 0 {
		levels = s.cfg.Level
	}
	if player.Class() != nil {
		for range levels {
			if _, err := player.LevelUp(presenter); err != nil {
				return db.Result{}, err
			}
		}
	}

	for _, spec := range s.monsters {
		if _, err := e.Spawn(spec, s.classes); err != nil {
			return db.Result{}, err
		}
	}

	pilot, err := encounter.NewAutopilot(e)
	if err != nil {
		return db.Result{}, err
	}
	outcome, err := e.Run(ctx, pilot, s.cfg.MaxRounds)
	if err != nil {
		return db.Result{}, err
	}

	for _, line := range log.Lines() {
		slog.Debug("combat log", "encounter", id, "line", line)
	}

	r := db.Result{
		Encounter:    id,
		Seed:         s.cfg.Seed,
		Outcome:      outcome.String(),
		Rounds:       e.Round(),
		Player:       player.Name(),
		PlayerLevel:  player.Level(),
		PlayerHealth: player.Attributes().Get(model.StatHealth),
		Experience:   player.Experience(),
	}
	if s.archive != nil {
		if err := s.archive.SaveResult(ctx, r); err != nil {
			return r, err
		}
	}

	slog.Info("encounter finished",
		"encounter", id,
		"outcome", r.Outcome,
		"rounds", r.Rounds,
		"level", r.PlayerLevel,
		"health", r.PlayerHealth)
	return r, nil
}

func summarize(results []db.Result) {
	outcomes := make(map[string]int)
	rounds := 0
	for _, r := range results {
		outcomes[r.Outcome]++
		rounds += r.Rounds
	}
	avg := 0.0
	if len(results) > 0 {
		avg = float64(rounds) / float64(len(results))
	}
	slog.Info("batch finished",
		"runs", len(results),
		"victory", outcomes[encounter.Victory.String()],
		"defeat", outcomes[encounter.Defeat.String()],
		"stalemate", outcomes[encounter.Stalemate.String()],
		"avg_rounds", avg)
}
