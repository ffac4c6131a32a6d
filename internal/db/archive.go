// Package db archives combat reports and encounter results.
package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/udisondev/gugon/internal/combatlog"
)

// Archive stores every report of a run and one result row per encounter.
type Archive interface {
	combatlog.Sink
	SaveResult(ctx context.Context, r Result) error
	Events(ctx context.Context, encounter string) ([]StoredEvent, error)
	Outcomes(ctx context.Context) (map[string]int, error)
	Close() error
}

// Result summarizes a finished encounter.
type Result struct {
	Encounter    string
	Seed         uint64
	Outcome      string
	Rounds       int
	Player       string
	PlayerLevel  int
	PlayerHealth int
	Experience   int
}

// StoredEvent is an archived report.
type StoredEvent struct {
	Encounter string
	Round     int
	Kind      string
	Actor     string
	Target    string
	Report    json.RawMessage
}

// encode returns the kind and JSON payload of ev.
func encode(ev combatlog.Event) (string, []byte, error) {
	kind, err := ev.Kind()
	if err != nil {
		return "", nil, err
	}
	payload, err := json.Marshal(ev.Report)
	if err != nil {
		return "", nil, fmt.Errorf("encoding %s report: %w", kind, err)
	}
	return kind, payload, nil
}
