package combatlog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/udisondev/gugon/internal/game/combat"
	"github.com/udisondev/gugon/internal/game/effect"
)

// Event is one report together with where it happened.
type Event struct {
	Encounter string
	Round     int
	Actor     string
	Target    string
	Report    any
}

// Kind returns the stable name of the event's report shape.
func (e Event) Kind() (string, error) {
	return KindOf(e.Report)
}

// KindOf names a report shape. Unknown shapes return ErrUnknownReport.
func KindOf(report any) (string, error) {
	switch report.(type) {
	case combat.AttackReport:
		return "attack", nil
	case []combat.AttackReport:
		return "attacks", nil
	case combat.SkillReport:
		return "skill", nil
	case effect.StatusEffectReport:
		return "status_effect", nil
	case combat.DefendReport:
		return "defend", nil
	case combat.EscapeReport:
		return "escape", nil
	case combat.PassiveDamageReport:
		return "passive_damage", nil
	case combat.LevelUpReport:
		return "level_up", nil
	default:
		return "", fmt.Errorf("%w: %T", ErrUnknownReport, report)
	}
}

// Sink consumes events. An error stops the encounter.
type Sink interface {
	Record(ctx context.Context, ev Event) error
}

// Record makes a Log usable as a Sink.
func (l *Log) Record(_ context.Context, ev Event) error {
	return l.Add(ev.Report, ev.Actor, ev.Target)
}

// SlogSink writes every event as a structured log line.
type SlogSink struct {
	logger *slog.Logger
	level  slog.Level
}

// NewSlogSink logs events through logger at level. A nil logger means
// slog.Default().
func NewSlogSink(logger *slog.Logger, level slog.Level) *SlogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogSink{logger: logger, level: level}
}

// Record implements Sink.
func (s *SlogSink) Record(ctx context.Context, ev Event) error {
	kind, err := ev.Kind()
	if err != nil {
		return err
	}
	if !s.logger.Enabled(ctx, s.level) {
		return nil
	}
	payload, err := json.Marshal(ev.Report)
	if err != nil {
		return fmt.Errorf("encoding %s report: %w", kind, err)
	}
	s.logger.Log(ctx, s.level, "combat event",
		"encounter", ev.Encounter,
		"round", ev.Round,
		"kind", kind,
		"actor", ev.Actor,
		"target", ev.Target,
		"report", json.RawMessage(payload))
	return nil
}

// Fanout forwards each event to every sink in order and stops at the
// first error.
type Fanout []Sink

// Record implements Sink.
func (f Fanout) Record(ctx context.Context, ev Event) error {
	for _, s := range f {
		if err := s.Record(ctx, ev); err != nil {
			return err
		}
	}
	return nil
}

// Collector keeps every event in memory. It is safe for concurrent use so
// parallel encounters can share one.
type Collector struct {
	mu     sync.Mutex
	events []Event
}

// Record implements Sink.
func (c *Collector) Record(_ context.Context, ev Event) error {
	if _, err := ev.Kind(); err != nil {
		return err
	}
	c.mu.Lock()
	c.events = append(c.events, ev)
	c.mu.Unlock()
	return nil
}

// Events returns a copy of the collected events.
func (c *Collector) Events() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Event, len(c.events))
	copy(out, c.events)
	return out
}
