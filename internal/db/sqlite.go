package db

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/udisondev/gugon/internal/combatlog"
	"github.com/udisondev/gugon/internal/db/migrations"
)

// SQLiteArchive stores reports in a local SQLite file.
type SQLiteArchive struct {
	db *sql.DB
}

// OpenSQLite opens the archive at path and applies the migrations.
func OpenSQLite(ctx context.Context, path string) (*SQLiteArchive, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite archive path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}
	// one writer at a time
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}
	if err := migrate(ctx, sqlDB, goose.DialectSQLite3, migrations.SQLite); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return &SQLiteArchive{db: sqlDB}, nil
}

// Close closes the database handle.
func (a *SQLiteArchive) Close() error {
	return a.db.Close()
}

// Record implements combatlog.Sink.
func (a *SQLiteArchive) Record(ctx context.Context, ev combatlog.Event) error {
	kind, payload, err := encode(ev)
	if err != nil {
		return err
	}
	_, err = a.db.ExecContext(ctx,
		`INSERT INTO combat_events (encounter, round, kind, actor, target, report, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		ev.Encounter, ev.Round, kind, ev.Actor, ev.Target, string(payload), time.Now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("archiving %s event of %s: %w", kind, ev.Encounter, err)
	}
	return nil
}

// SaveResult stores or replaces the result of an encounter.
func (a *SQLiteArchive) SaveResult(ctx context.Context, r Result) error {
	_, err := a.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO encounter_results
		   (encounter, seed, outcome, rounds, player, player_level, player_health, experience, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Encounter, int64(r.Seed), r.Outcome, r.Rounds, r.Player, r.PlayerLevel, r.PlayerHealth, r.Experience,
		time.Now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("saving result of %s: %w", r.Encounter, err)
	}
	return nil
}

// Events returns the archived reports of an encounter in recording order.
func (a *SQLiteArchive) Events(ctx context.Context, encounter string) ([]StoredEvent, error) {
	rows, err := a.db.QueryContext(ctx,
		`SELECT encounter, round, kind, actor, target, report
		 FROM combat_events WHERE encounter = ? ORDER BY id`, encounter,
	)
	if err != nil {
		return nil, fmt.Errorf("querying events of %s: %w", encounter, err)
	}
	defer rows.Close()

	var events []StoredEvent
	for rows.Next() {
		var ev StoredEvent
		var report string
		if err := rows.Scan(&ev.Encounter, &ev.Round, &ev.Kind, &ev.Actor, &ev.Target, &report); err != nil {
			return nil, fmt.Errorf("scanning events of %s: %w", encounter, err)
		}
		ev.Report = []byte(report)
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events of %s: %w", encounter, err)
	}
	return events, nil
}

// Outcomes counts stored results by outcome.
func (a *SQLiteArchive) Outcomes(ctx context.Context) (map[string]int, error) {
	rows, err := a.db.QueryContext(ctx,
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

var (
	_ Archive = (*SQLiteArchive)(nil)
	_ Archive = (*PostgresArchive)(nil)
)
