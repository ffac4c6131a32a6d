package combat

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/udisondev/gugon/internal/game/progression"
	"github.com/udisondev/gugon/internal/model"
)

var (
	// ErrNoProgression is returned when leveling a combatant without a class.
	ErrNoProgression = errors.New("combatant has no class")
	// ErrNoPresenter is returned when a choice grant has nobody to choose.
	ErrNoPresenter = errors.New("no choice presenter")
)

// Progression is the class-table collaborator that hands out grants.
type Progression interface {
	Level() int
	LevelUp() []progression.Grant
	NextExperienceThreshold() int
	EnterSubclass(name string) ([]progression.Grant, error)
	SubclassLevelUp() []progression.Grant
	MaxedOut() bool
}

// ChoicePresenter picks one grant out of a choice list. It may block on
// user input.
type ChoicePresenter interface {
	Present(candidates []progression.Grant) (progression.Grant, error)
}

// LevelUp gains one class level: the hit die raises max health and health,
// then every grant of the new level is applied in order.
//
// The class is asked first. A class past its table gains nothing, hit die
// included, and the report comes back with MaxedOut set.
func (c *Combatant) LevelUp(presenter ChoicePresenter) (LevelUpReport, error) {
	if c.class == nil {
		return LevelUpReport{}, fmt.Errorf("leveling %s: %w", c.name, ErrNoProgression)
	}

	grants := c.class.LevelUp()
	if c.class.MaxedOut() {
		return LevelUpReport{Level: c.class.Level(), MaxedOut: true}, nil
	}

	hp := c.attrs.HitDie().Roll(c.src, false)
	c.attrs.Add(model.StatMaxHealth, hp)
	c.attrs.Add(model.StatHealth, hp)

	r := LevelUpReport{Level: c.class.Level(), HealthGained: hp}
	for _, g := range grants {
		if err := c.grant(g, presenter, &r); err != nil {
			return r, fmt.Errorf("leveling %s to %d: %w", c.name, r.Level, err)
		}
	}

	slog.Info("level up",
		"combatant", c.id,
		"name", c.name,
		"level", r.Level,
		"health_gained", hp,
		"granted", r.Granted)
	return r, nil
}

func (c *Combatant) grant(g progression.Grant, presenter ChoicePresenter, r *LevelUpReport) error {
	switch g.Kind {
	case progression.GrantSkill:
		s, err := LookupSkill(g.Skill)
		if err != nil {
			return err
		}
		if !c.LearnSkill(s) {
			slog.Debug("skill already known", "combatant", c.id, "skill", g.Skill)
		}

	case progression.GrantStatusEffect:
		e, err := g.Effect.Build()
		if err != nil {
			return err
		}
		if _, err := e.Apply(c, c.src); err != nil {
			return err
		}

	case progression.GrantAttribute:
		c.attrs.Add(g.Stat, g.Delta)

	case progression.GrantChoice:
		if presenter == nil {
			return fmt.Errorf("%w for %s", ErrNoPresenter, g.Label())
		}
		chosen, err := presenter.Present(g.Choices)
		if err != nil {
			return fmt.Errorf("presenting %s: %w", g.Label(), err)
		}
		return c.grant(chosen, presenter, r)

	case progression.GrantSubclass:
		first, err := c.class.EnterSubclass(g.Subclass)
		if err != nil {
			return err
		}
		r.Granted = append(r.Granted, g.Subclass)
		for _, sg := range first {
			if err := c.grant(sg, presenter, r); err != nil {
				return err
			}
		}
		return nil

	case progression.GrantSubclassLevel:
		for _, sg := range c.class.SubclassLevelUp() {
			if err := c.grant(sg, presenter, r); err != nil {
				return err
			}
		}
		return nil

	default:
		return fmt.Errorf("unknown grant kind %s", g.Kind)
	}

	r.Granted = append(r.Granted, g.Label())
	return nil
}

// AddExperience adds xp and levels up while the next threshold is met.
func (c *Combatant) AddExperience(xp int, presenter ChoicePresenter) ([]LevelUpReport, error) {
	if xp <= 0 {
		return nil, nil
	}
	c.experience += xp
	slog.Debug("experience gained", "combatant", c.id, "xp", xp, "total", c.experience)

	if c.class == nil {
		return nil, nil
	}

	var reports []LevelUpReport
	for !c.class.MaxedOut() && c.experience >= c.class.NextExperienceThreshold() {
		r, err := c.LevelUp(presenter)
		if err != nil {
			return reports, err
		}
		if r.MaxedOut {
			break
		}
		reports = append(reports, r)
	}
	return reports, nil
}
