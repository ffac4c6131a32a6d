// Package combat resolves attacks, skills and level-ups between combatants.
package combat

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/udisondev/gugon/internal/ai"
	"github.com/udisondev/gugon/internal/dice"
	"github.com/udisondev/gugon/internal/game/effect"
	"github.com/udisondev/gugon/internal/model"
)

// Kind tells players from monsters.
type Kind uint8

const (
	KindPlayer Kind = iota
	KindMonster
)

func (k Kind) String() string {
	if k == KindPlayer {
		return "player"
	}
	return "monster"
}

// Action is a behavior tree leaf. It is bound when the tree is built and
// invoked with the target and the acting combatant.
type Action func(target, actor *Combatant) (any, error)

// Config holds the constructor inputs of a combatant.
type Config struct {
	Name  string
	Kind  Kind
	Stats model.BaseStats
	// Reward is the experience granted to whoever defeats the combatant.
	Reward int
	Class  Progression
}

// Combatant is a participant of an encounter.
type Combatant struct {
	id       uint32
	name     string
	kind     Kind
	attrs    *model.Attributes
	effects  []*effect.StatusEffect
	passives []*effect.StatusEffect
	skills   []*Skill
	alive    bool
	target   uint32

	experience int
	reward     int
	class      Progression
	brain      *ai.Controller[Action]

	src dice.Source
}

// New creates a living combatant at full health. The id is assigned when the
// combatant is inserted into a registry.
func New(cfg Config, src dice.Source) *Combatant {
	return &Combatant{
		name:   cfg.Name,
		kind:   cfg.Kind,
		attrs:  model.NewAttributes(cfg.Stats),
		alive:  true,
		reward: cfg.Reward,
		class:  cfg.Class,
		src:    src,
	}
}

// AssignID sets the registry-issued id.
func (c *Combatant) AssignID(id uint32) { c.id = id }

// ID returns the registry-issued id.
func (c *Combatant) ID() uint32 { return c.id }

// Name returns the display name.
func (c *Combatant) Name() string { return c.name }

// SetName renames the combatant, e.g. to number monsters of one kind.
func (c *Combatant) SetName(name string) { c.name = name }

// Kind returns whether this is a player or a monster.
func (c *Combatant) Kind() Kind { return c.kind }

// Attributes returns the live stat ledger.
func (c *Combatant) Attributes() *model.Attributes { return c.attrs }

// IsAlive reports whether health is above zero.
func (c *Combatant) IsAlive() bool { return c.alive }

// Target returns the id of the current target, 0 when none.
func (c *Combatant) Target() uint32 { return c.target }

// SetTarget sets the current target by id.
func (c *Combatant) SetTarget(id uint32) { c.target = id }

// Experience returns the accumulated experience.
func (c *Combatant) Experience() int { return c.experience }

// Reward returns the experience granted for defeating this combatant.
func (c *Combatant) Reward() int { return c.reward }

// Class returns the level progression, or nil.
func (c *Combatant) Class() Progression { return c.class }

// Level returns the class level, 0 without a class.
func (c *Combatant) Level() int {
	if c.class == nil {
		return 0
	}
	return c.class.Level()
}

// AttachEffect appends e to the active effect list.
func (c *Combatant) AttachEffect(e *effect.StatusEffect) { c.effects = append(c.effects, e) }

// AttachPassive appends e to the permanent passive list.
func (c *Combatant) AttachPassive(e *effect.StatusEffect) { c.passives = append(c.passives, e) }

// Effects returns the active timed effects.
func (c *Combatant) Effects() []*effect.StatusEffect { return slices.Clone(c.effects) }

// Passives returns the permanent passives.
func (c *Combatant) Passives() []*effect.StatusEffect { return slices.Clone(c.passives) }

// HasEffect reports whether an active or passive effect is called name.
func (c *Combatant) HasEffect(name string) bool {
	has := func(e *effect.StatusEffect) bool { return e.Name() == name }
	return slices.ContainsFunc(c.effects, has) || slices.ContainsFunc(c.passives, has)
}

// Skills returns the learned skills in learning order.
func (c *Combatant) Skills() []*Skill { return slices.Clone(c.skills) }

// Skill returns the learned skill called name.
func (c *Combatant) Skill(name string) (*Skill, bool) {
	for _, s := range c.skills {
		if s.name == name {
			return s, true
		}
	}
	return nil, false
}

// LearnSkill appends s to the skill list. It reports false when a skill of
// the same name is already known.
func (c *Combatant) LearnSkill(s *Skill) bool {
	if _, ok := c.Skill(s.name); ok {
		return false
	}
	c.skills = append(c.skills, s)
	return true
}

// SetBrain installs the behavior tree that picks this combatant's actions.
func (c *Combatant) SetBrain(tree *ai.Tree[Action]) {
	c.brain = ai.NewController(c.id, c.name, tree)
}

// Decide asks the behavior tree for the next action.
func (c *Combatant) Decide() (Action, bool) {
	if c.brain == nil {
		return nil, false
	}
	return c.brain.Decide(), true
}

// Heal restores up to amount health, never past max_health.
func (c *Combatant) Heal(amount int) {
	if amount <= 0 || !c.alive {
		return
	}
	c.attrs.Add(model.StatHealth, amount)
	slog.Debug("healed", "combatant", c.id, "amount", amount, "health", c.attrs.Get(model.StatHealth))
}

func (c *Combatant) die() {
	c.alive = false
	slog.Info("combatant died", "combatant", c.id, "name", c.name)
}

func (c *Combatant) String() string {
	return fmt.Sprintf("%s(%d/%d)", c.name,
		c.attrs.Get(model.StatHealth), c.attrs.Get(model.StatMaxHealth))
}
