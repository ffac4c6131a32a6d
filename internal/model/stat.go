package model

import "fmt"

// Stat names an entry in a combatant's attribute ledger.
// Values double as data-file keys and report field values.
type Stat string

const (
	StatMaxHealth       Stat = "max_health"
	StatHealth          Stat = "health"
	StatTemporaryHealth Stat = "temporary_health"
	StatDamage          Stat = "damage"
	StatDamageDice      Stat = "damage_dice" // composite dice pool, not a scalar
	StatAttack          Stat = "attack"
	StatCritRange       Stat = "crit_range"
	StatAttackNumber    Stat = "attack_number"
	StatDefence         Stat = "defence"
	StatArmour          Stat = "armour"
	StatPassiveDamage   Stat = "passive_damage"
	StatBiteback        Stat = "biteback"
	StatRegeneration    Stat = "regeneration"
	StatResistance      Stat = "resistance"
)

// ScalarStats lists every integer stat in ledger order.
// StatDamageDice is excluded: it is a dice pool.
var ScalarStats = []Stat{
	StatMaxHealth,
	StatHealth,
	StatTemporaryHealth,
	StatDamage,
	StatAttack,
	StatCritRange,
	StatAttackNumber,
	StatDefence,
	StatArmour,
	StatPassiveDamage,
	StatBiteback,
	StatRegeneration,
	StatResistance,
}

// IsScalar reports whether s is an integer stat.
func (s Stat) IsScalar() bool {
	for _, known := range ScalarStats {
		if s == known {
			return true
		}
	}
	return false
}

// Valid reports whether s is a known stat (scalar or dice pool).
func (s Stat) Valid() bool {
	return s == StatDamageDice || s.IsScalar()
}

// ParseStat converts a data-file key into a Stat.
func ParseStat(name string) (Stat, error) {
	s := Stat(name)
	if !s.Valid() {
		return "", fmt.Errorf("unknown stat %q", name)
	}
	return s, nil
}
