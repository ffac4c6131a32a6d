package combat

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/udisondev/gugon/internal/game/effect"
	"github.com/udisondev/gugon/internal/model"
)

// DefendBonus is the defence granted by DefendAction until the round ends.
const DefendBonus = 10

// DefendAction raises the combatant's own defence for one round.
func (c *Combatant) DefendAction() (DefendReport, error) {
	e := effect.New("Defence", effect.Rounds(1), effect.Flat(model.StatDefence, DefendBonus))
	r, err := e.Apply(c, c.src)
	if err != nil {
		return DefendReport{}, fmt.Errorf("defending %s: %w", c.name, err)
	}
	return DefendReport{Effect: r}, nil
}

// SkillAction activates s. Self-targeting skills ignore target.
func (c *Combatant) SkillAction(s *Skill, target *Combatant) (SkillReport, error) {
	if s.selfTarget || target == nil {
		target = c
	}
	return s.Activate(target, c)
}

// Tick advances one round: timed effects count down and expired ones are
// reversed and dropped, skills cool down, regeneration heals.
func (c *Combatant) Tick() error {
	var errs []error
	active := make([]*effect.StatusEffect, 0, len(c.effects))
	for _, e := range c.effects {
		e.Update()
		if e.IsTicking() {
			active = append(active, e)
			continue
		}
		if err := e.Remove(c); err != nil {
			errs = append(errs, err)
			continue
		}
		slog.Debug("status effect expired", "combatant", c.id, "effect", e.Name())
	}
	c.effects = active

	for _, s := range c.skills {
		s.Update()
	}

	c.Heal(c.attrs.Get(model.StatRegeneration))

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("ticking %s: %w", c.name, err)
	}
	return nil
}
