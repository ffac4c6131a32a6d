package combat

import (
	"fmt"
	"log/slog"

	"github.com/udisondev/gugon/internal/model"
)

// SkillEffect is the body of a skill. target and actor are supplied at
// activation time.
type SkillEffect func(target, actor *Combatant) (SkillReport, error)

// Skill is an activatable ability with a cooldown. It lives as long as the
// combatant that learned it.
type Skill struct {
	name       string
	selfTarget bool
	cooldown   int
	ticker     model.Ticker
	effect     SkillEffect
}

// NewSkill creates a ready skill.
func NewSkill(name string, selfTarget bool, cooldown int, fn SkillEffect) *Skill {
	return &Skill{
		name:       name,
		selfTarget: selfTarget,
		cooldown:   cooldown,
		effect:     fn,
	}
}

// Name returns the skill name.
func (s *Skill) Name() string { return s.name }

// SelfTarget reports whether the skill targets its user.
func (s *Skill) SelfTarget() bool { return s.selfTarget }

// Cooldown returns the configured cooldown in rounds.
func (s *Skill) Cooldown() int { return s.cooldown }

// IsTicking reports whether the skill is cooling down.
func (s *Skill) IsTicking() bool { return s.ticker.IsTicking() }

// RoundsLeft returns the remaining cooldown.
func (s *Skill) RoundsLeft() int { return s.ticker.Remaining() }

// Update advances the cooldown by one round.
func (s *Skill) Update() { s.ticker.Update() }

// Activate restarts the cooldown and runs the effect. It does not check
// the cooldown; callers gate on IsTicking.
func (s *Skill) Activate(target, actor *Combatant) (SkillReport, error) {
	s.ticker.Reset(s.cooldown)

	slog.Debug("skill activated",
		"skill", s.name,
		"actor", actor.ID(),
		"target", target.ID())

	r, err := s.effect(target, actor)
	if err != nil {
		return SkillReport{}, fmt.Errorf("activating %s: %w", s.name, err)
	}
	return r, nil
}

func (s *Skill) String() string {
	return fmt.Sprintf("Skill(name=%s, cooldown=%d/%d)", s.name, s.ticker.Remaining(), s.cooldown)
}
