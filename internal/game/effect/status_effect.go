package effect

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/udisondev/gugon/internal/dice"
	"github.com/udisondev/gugon/internal/model"
)

// ErrNotApplied is returned when removing an effect that was never applied.
var ErrNotApplied = errors.New("status effect not applied")

// Duration is either a round count or the permanent category.
type Duration struct {
	rounds    int
	permanent bool
}

// Rounds returns a duration that expires after n round updates.
func Rounds(n int) Duration { return Duration{rounds: n} }

// Permanent is the duration of passives granted for a combatant's lifetime.
// Permanent effects are never ticked; they live in the passive list.
var Permanent = Duration{permanent: true}

// StatusEffect is a reversible bundle of attribute deltas, or an aggregate
// mutation, bound to a duration.
//
// A StatusEffect records the exact values it applied, so Remove reverses
// the apply-time rolls rather than rolling again.
type StatusEffect struct {
	name     string
	duration Duration
	ticker   model.Ticker
	deltas   []Delta
	mutation Mutation

	applied bool
	changes []Change
	undo    func() error
}

// New creates a delta-based status effect.
func New(name string, duration Duration, deltas ...Delta) *StatusEffect {
	return &StatusEffect{
		name:     name,
		duration: duration,
		ticker:   model.NewTicker(duration.rounds),
		deltas:   deltas,
	}
}

// NewAggregate creates a status effect driven by a custom mutation.
func NewAggregate(name string, duration Duration, m Mutation) *StatusEffect {
	return &StatusEffect{
		name:     name,
		duration: duration,
		ticker:   model.NewTicker(duration.rounds),
		mutation: m,
	}
}

// Name returns the effect name.
func (e *StatusEffect) Name() string { return e.name }

// IsPermanent reports whether the effect belongs to the permanent category.
func (e *StatusEffect) IsPermanent() bool { return e.duration.permanent }

// IsTicking reports whether a timed effect still has rounds left.
// Permanent effects report false: they have no timer.
func (e *StatusEffect) IsTicking() bool { return e.ticker.IsTicking() }

// Update advances a timed effect by one round.
func (e *StatusEffect) Update() {
	if e.duration.permanent {
		return
	}
	e.ticker.Update()
}

// RoundsLeft returns the remaining rounds of a timed effect.
func (e *StatusEffect) RoundsLeft() int { return e.ticker.Remaining() }

// Applied reports whether the effect is currently applied to a host.
func (e *StatusEffect) Applied() bool { return e.applied }

// Changes returns the resolved changes of the current application.
func (e *StatusEffect) Changes() []Change {
	out := make([]Change, len(e.changes))
	copy(out, e.changes)
	return out
}

// Apply attaches the effect to target and applies every delta.
// Literal deltas are added, dice expressions are rolled once and damage
// dice are inserted into the pool by identity.
func (e *StatusEffect) Apply(target Host, src dice.Source) (StatusEffectReport, error) {
	if e.applied {
		return StatusEffectReport{}, fmt.Errorf("applying %s to %s: already applied", e.name, target.Name())
	}

	if e.duration.permanent {
		target.AttachPassive(e)
	} else {
		target.AttachEffect(e)
	}

	if e.mutation != nil {
		changes, undo, err := e.mutation(target)
		if err != nil {
			return StatusEffectReport{}, fmt.Errorf("applying %s to %s: %w", e.name, target.Name(), err)
		}
		e.changes = changes
		e.undo = undo
	} else {
		attrs := target.Attributes()
		e.changes = make([]Change, 0, len(e.deltas))
		for _, d := range e.deltas {
			e.changes = append(e.changes, d.resolve(attrs, src))
		}
	}
	e.applied = true

	slog.Debug("status effect applied",
		"effect", e.name,
		"target", target.ID(),
		"changes", len(e.changes))

	return e.report(target), nil
}

// Remove reverses the recorded changes in reverse order. The effect is not
// detached from the host's lists; that is the host's job.
func (e *StatusEffect) Remove(target Host) error {
	if !e.applied {
		return fmt.Errorf("removing %s from %s: %w", e.name, target.Name(), ErrNotApplied)
	}

	if e.undo != nil {
		if err := e.undo(); err != nil {
			return fmt.Errorf("removing %s from %s: %w", e.name, target.Name(), err)
		}
	} else {
		attrs := target.Attributes()
		for i := len(e.changes) - 1; i >= 0; i-- {
			if err := e.changes[i].revert(attrs); err != nil {
				return fmt.Errorf("removing %s from %s: %w", e.name, target.Name(), err)
			}
		}
	}

	e.applied = false
	e.changes = nil
	e.undo = nil

	slog.Debug("status effect removed", "effect", e.name, "target", target.ID())
	return nil
}

// Boost raises every literal delta of an applied effect by amount and
// applies the difference immediately. Random and dice deltas are untouched.
// Boost(-amount) exactly undoes Boost(amount).
func (e *StatusEffect) Boost(target Host, amount int) {
	attrs := target.Attributes()
	for i := range e.deltas {
		if e.deltas[i].kind != deltaFlat {
			continue
		}
		e.deltas[i].value += amount
		if !e.applied {
			continue
		}
		e.changes[i].moved += shift(attrs, e.deltas[i].stat, amount)
		e.changes[i].Amount += amount
	}
}

// Deltas returns the declared deltas.
func (e *StatusEffect) Deltas() []Delta {
	out := make([]Delta, len(e.deltas))
	copy(out, e.deltas)
	return out
}

func (e *StatusEffect) report(target Host) StatusEffectReport {
	r := StatusEffectReport{
		Name:    e.name,
		Effects: make([]EffectChange, 0, len(e.changes)),
		Target:  target.Name(),
	}
	for _, c := range e.changes {
		r.Effects = append(r.Effects, c.report())
	}
	return r
}

func (e *StatusEffect) String() string {
	if e.duration.permanent {
		return fmt.Sprintf("StatusEffect(name=%s, permanent)", e.name)
	}
	return fmt.Sprintf("StatusEffect(name=%s, turns_left=%d)", e.name, e.ticker.Remaining())
}
