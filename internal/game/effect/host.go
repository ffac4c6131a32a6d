// Package effect implements status effects: timed, reversible bundles of
// attribute deltas applied to a combatant.
package effect

import "github.com/udisondev/gugon/internal/model"

// Host is the combatant surface a status effect mutates.
// Effects never hold their host; it is passed to every call.
type Host interface {
	ID() uint32
	Name() string
	Attributes() *model.Attributes

	// AttachEffect adds a timed effect to the active list.
	AttachEffect(e *StatusEffect)
	// AttachPassive adds a permanent effect to the passive list.
	AttachPassive(e *StatusEffect)
	// Passives returns the permanent effects in grant order.
	Passives() []*StatusEffect
}
