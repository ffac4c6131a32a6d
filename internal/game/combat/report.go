package combat

import "github.com/udisondev/gugon/internal/game/effect"

// AttackReport describes one d20 attack. JSON field names are read by the
// combat log and archived reports and must not change.
type AttackReport struct {
	IsHit       bool         `json:"is_hit"`
	IsCrit      bool         `json:"is_crit"`
	Roll        int          `json:"roll"`
	AttackBonus int          `json:"attack_bonus"`
	Damage      DamageReport `json:"damage"`
}

// DamageReport is the damage breakdown of a hit. It is zero on a miss.
type DamageReport struct {
	Dealt    DealtDamage `json:"dealt"`
	Received int         `json:"received"` // biteback taken by the attacker
}

// DealtDamage is the attacker's side of a hit.
type DealtDamage struct {
	DamageRoll    int `json:"damage_roll"`
	DamageBonus   int `json:"damage_bonus"`
	TotalReceived int `json:"total_received"` // health the target lost
}

// SkillReport describes one skill activation.
type SkillReport struct {
	Name          string                      `json:"name"`
	StatusEffects []effect.StatusEffectReport `json:"Status Effects"`
	Attacks       []AttackReport              `json:"Attacks"`
}

func newSkillReport(name string) SkillReport {
	return SkillReport{
		Name:          name,
		StatusEffects: []effect.StatusEffectReport{},
		Attacks:       []AttackReport{},
	}
}

// DefendReport is produced by DefendAction.
type DefendReport struct {
	Effect effect.StatusEffectReport `json:"effect"`
}

// EscapeReport is produced when the player leaves the fight.
type EscapeReport struct {
	Actor string `json:"actor"`
}

// LevelUpReport summarizes one level gained.
type LevelUpReport struct {
	Level        int      `json:"level"`
	HealthGained int      `json:"health_gained"`
	Granted      []string `json:"granted"`
	MaxedOut     bool     `json:"maxed_out"`
}

// PassiveDamageReport is aura damage dealt before a monster acts.
type PassiveDamageReport struct {
	Source   string `json:"source"`
	Target   string `json:"target"`
	Raw      int    `json:"raw"`
	Received int    `json:"received"`
}
