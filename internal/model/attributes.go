package model

import (
	"github.com/udisondev/gugon/internal/dice"
)

// Default values for stats a fresh ledger starts with.
const (
	DefaultCritRange    = 20
	DefaultAttackNumber = 1
	DefaultHitDieSize   = 8
)

// BaseStats are the constructor inputs of an attribute ledger.
type BaseStats struct {
	MaxHealth  int
	Damage     int
	Attack     int
	Defence    int
	Armour     int
	DamageDice *dice.Group
	HitDie     *dice.Die
}

// Attributes is the per-combatant numeric ledger.
//
// Invariants after every call: 0 <= health <= max_health and
// temporary_health >= 0. Writes that would break them are clamped.
type Attributes struct {
	values     map[Stat]int
	damageDice *dice.Group
	hitDie     *dice.Die
}

// NewAttributes creates a ledger at full health.
func NewAttributes(base BaseStats) *Attributes {
	a := &Attributes{
		values:     make(map[Stat]int, len(ScalarStats)),
		damageDice: base.DamageDice,
		hitDie:     base.HitDie,
	}
	if a.damageDice == nil {
		a.damageDice = dice.NewGroup()
	}
	if a.hitDie == nil {
		a.hitDie = dice.New(DefaultHitDieSize)
	}

	maxHP := base.MaxHealth
	if maxHP < 1 {
		maxHP = 1
	}
	a.values[StatMaxHealth] = maxHP
	a.values[StatHealth] = maxHP
	a.values[StatDamage] = base.Damage
	a.values[StatAttack] = base.Attack
	a.values[StatDefence] = base.Defence
	a.values[StatArmour] = base.Armour
	a.values[StatCritRange] = DefaultCritRange
	a.values[StatAttackNumber] = DefaultAttackNumber
	return a
}

// Get returns a scalar stat. Unknown and pool stats read as 0.
func (a *Attributes) Get(s Stat) int {
	return a.values[s]
}

// Set overwrites a scalar stat, clamping health and temporary health.
func (a *Attributes) Set(s Stat, v int) {
	switch s {
	case StatHealth:
		a.values[StatHealth] = clamp(v, 0, a.values[StatMaxHealth])
	case StatMaxHealth:
		if v < 0 {
			v = 0
		}
		a.values[StatMaxHealth] = v
		if a.values[StatHealth] > v {
			a.values[StatHealth] = v
		}
	case StatTemporaryHealth:
		if v < 0 {
			v = 0
		}
		a.values[StatTemporaryHealth] = v
	case StatDamageDice:
		// pool stats are mutated structurally, see DamageDice
	default:
		a.values[s] = v
	}
}

// Add adds delta to a scalar stat and returns the new value.
func (a *Attributes) Add(s Stat, delta int) int {
	a.Set(s, a.values[s]+delta)
	return a.values[s]
}

// DamageDice returns the live damage dice pool.
func (a *Attributes) DamageDice() *dice.Group { return a.damageDice }

// HitDie returns the die rolled for health growth on level-up.
func (a *Attributes) HitDie() *dice.Die { return a.hitDie }

// Resistant reports whether incoming damage is halved.
func (a *Attributes) Resistant() bool { return a.values[StatResistance] > 0 }

// Snapshot copies every scalar stat.
func (a *Attributes) Snapshot() map[Stat]int {
	out := make(map[Stat]int, len(ScalarStats))
	for _, s := range ScalarStats {
		out[s] = a.values[s]
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
