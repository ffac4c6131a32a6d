package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/gugon/internal/combatlog"
)

// PostgresArchive stores reports in PostgreSQL.
type PostgresArchive struct {
	pool *pgxpool.Pool
}

// OpenPostgres migrates the database at dsn and connects to it.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresArchive, error) {
	if err := RunMigrations(ctx, dsn); err != nil {
		return nil, err
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &PostgresArchive{pool: pool}, nil
}

// NewPostgresArchive wraps a pool whose schema is already migrated.
func NewPostgresArchive(pool *pgxpool.Pool) *PostgresArchive {
	return &PostgresArchive{pool: pool}
}

// Close closes the connection pool.
func (a *PostgresArchive) Close() error {
	a.pool.Close()
	return nil
}

// Record implements combatlog.Sink.
func (a *PostgresArchive) Record(ctx context.Context, ev combatlog.Event) error {
	kind, payload, err := encode(ev)
	if err != nil {
		return err
	}
	_, err = a.pool.Exec(ctx,
		`INSERT INTO combat_events (encounter, round, kind, actor, target, report)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		ev.Encounter, ev.Round, kind, ev.Actor, ev.Target, string(payload),
	)
	if err != nil {
		return fmt.Errorf("archiving %s event of %s: %w", kind, ev.Encounter, err)
	}
	return nil
}

// SaveResult stores or replaces the result of an encounter.
func (a *PostgresArchive) SaveResult(ctx context.Context, r Result) error {
	_, err := a.pool.Exec(ctx,
		`INSERT INTO encounter_results
		   (encounter, seed, outcome, rounds, player, player_level, player_health, experience)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (encounter) DO UPDATE SET
		   seed = EXCLUDED.seed,
		   outcome = EXCLUDED.outcome,
		   rounds = EXCLUDED.rounds,
		   player = EXCLUDED.player,
		   player_level = EXCLUDED.player_level,
		   player_health = EXCLUDED.player_health,
		   experience = EXCLUDED.experience,
		   finished_at = now()`,
		r.Encounter, int64(r.Seed), r.Outcome, r.Rounds, r.Player, r.PlayerLevel, r.PlayerHealth, r.Experience,
	)
	if err != nil {
		return fmt.Errorf("saving result of %s: %w", r.Encounter, err)
	}
	return nil
}

// Events returns the archived reports of an encounter in recording order.
func (a *PostgresArchive) Events(ctx context.Context, encounter string) ([]StoredEvent, error) {
	rows, err := a.pool.Query(ctx,
		`SELECT encounter, round, kind, actor, target, report
		 FROM combat_events WHERE encounter = $1 ORDER BY id`, encounter,
	)
	if err != nil {
		return nil, fmt.Errorf("querying events of %s: %w", encounter, err)
	}
	events, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (StoredEvent, error) {
		var ev StoredEvent
		var report []byte
		err := row.Scan(&ev.Encounter, &ev.Round, &ev.Kind, &ev.Actor, &ev.Target, &report)
		ev.Report = report
		return ev, err
	})
	if err != nil {
		return nil, fmt.Errorf("scanning events of %s: %w", encounter, err)
	}
	return events, nil
}

// Outcomes counts stored results by outcome.
func (a *PostgresArchive) Outcomes(ctx context.Context) (map[string]int, error) {
	rows, err := a.pool.Query(ctx,
		`SELECT outcome, count(*) FROM encounter_results GROUP BY outcome`)
	if err != nil {
		return nil, fmt.Errorf("querying outcomes: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var outcome string
		var n int
		if err := rows.Scan(&outcome, &n); err != nil {
			return nil, fmt.Errorf("scanning outcomes: %w", err)
		}
		out[outcome] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating outcomes: %w", err)
	}
	return out, nil
}
