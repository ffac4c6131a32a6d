package encounter

import (
	"fmt"
	"log/slog"

	"github.com/udisondev/gugon/internal/dice"
	"github.com/udisondev/gugon/internal/game/combat"
	"github.com/udisondev/gugon/internal/game/progression"
	"github.com/udisondev/gugon/internal/model"
)

// MonsterSpec describes a kind of monster. Every spawn gets its own dice.
type MonsterSpec struct {
	Name       string
	MaxHealth  int
	Damage     int
	Attack     int
	Defence    int
	Armour     int
	DamageDice dice.Expr
	HitDie     int
	Reward     int
	Class      string // class table, empty for none
	Level      int    // levels gained on spawn
	Skills     []string
	Behavior   string
}

// Spawn creates a monster from spec, installs its behavior and adds it to
// the initiative order. A failed spawn leaves the encounter untouched.
// Monsters of one kind are numbered: "Skeleton 1".
func (e *Encounter) Spawn(spec MonsterSpec, classes *progression.Catalog) (*combat.Combatant, error) {
	if e.player == nil {
		return nil, ErrNoPlayer
	}

	cfg := combat.Config{
		Name: spec.Name,
		Kind: combat.KindMonster,
		Stats: model.BaseStats{
			MaxHealth:  spec.MaxHealth,
			Damage:     spec.Damage,
			Attack:     spec.Attack,
			Defence:    spec.Defence,
			Armour:     spec.Armour,
			DamageDice: spec.DamageDice.Group(),
		},
		Reward: spec.Reward,
	}
	if spec.HitDie > 0 {
		cfg.Stats.HitDie = dice.New(spec.HitDie)
	}
	if spec.Class != "" {
		if classes == nil {
			return nil, fmt.Errorf("spawning %s: class %s without catalog", spec.Name, spec.Class)
		}
		class, err := classes.NewClass(spec.Class)
		if err != nil {
			return nil, fmt.Errorf("spawning %s: %w", spec.Name, err)
		}
		cfg.Class = class
	}

	c := combat.New(cfg, e.src)
	c.SetName(fmt.Sprintf("%s %d", spec.Name, e.spawned[spec.Name]+1))

	for range spec.Level {
		if _, err := c.LevelUp(FirstChoice{}); err != nil {
			return nil, fmt.Errorf("spawning %s: %w", c.Name(), err)
		}
	}
	for _, name := range spec.Skills {
		s, err := combat.LookupSkill(name)
		if err != nil {
			return nil, fmt.Errorf("spawning %s: %w", c.Name(), err)
		}
		c.LearnSkill(s)
	}

	behavior := spec.Behavior
	if behavior == "" {
		behavior = "brute"
	}
	build, err := LookupBehavior(behavior)
	if err != nil {
		return nil, fmt.Errorf("spawning %s: %w", c.Name(), err)
	}
	tree, err := build(e, c)
	if err != nil {
		return nil, fmt.Errorf("spawning %s: %w", c.Name(), err)
	}

	// nothing joins the initiative order until the monster is complete
	if _, err := e.AddEnemy(c); err != nil {
		return nil, err
	}
	e.spawned[spec.Name]++
	c.SetBrain(tree)

	slog.Debug("monster spawned",
		"encounter", e.id,
		"combatant", c.ID(),
		"name", c.Name(),
		"level", c.Level(),
		"behavior", behavior)
	return c, nil
}
