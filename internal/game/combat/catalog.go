package combat

import (
	"errors"
	"fmt"
	"slices"

	"github.com/udisondev/gugon/internal/dice"
	"github.com/udisondev/gugon/internal/game/effect"
	"github.com/udisondev/gugon/internal/model"
)

// ErrUnknownSkill is returned for skill names missing from the catalog.
var ErrUnknownSkill = errors.New("unknown skill")

// skillRegistry maps skill name to factory. Every lookup creates a fresh
// skill with its own cooldown.
var skillRegistry = map[string]func() *Skill{}

// RegisterSkill registers a skill factory by name.
func RegisterSkill(name string, factory func() *Skill) {
	skillRegistry[name] = factory
}

// LookupSkill creates the skill called name.
func LookupSkill(name string) (*Skill, error) {
	factory, ok := skillRegistry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSkill, name)
	}
	return factory(), nil
}

// SkillNames returns every registered skill in sorted order.
func SkillNames() []string {
	names := make([]string, 0, len(skillRegistry))
	for n := range skillRegistry {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

func init() {
	RegisterSkill("Bless", func() *Skill {
		return buffSkill("Bless", true, 5, effect.Definition{
			Name: "Bless", Rounds: 3,
			Deltas: []effect.DeltaDefinition{{Stat: "attack", Value: "1d4"}},
		})
	})
	RegisterSkill("Triple Slash", func() *Skill {
		return attackSkill("Triple Slash", 4, 3, nil)
	})
	RegisterSkill("Smite", func() *Skill {
		return attackSkill("Smite", 3, 1, &effect.Definition{
			Name: "Smite", Rounds: 1,
			Deltas: []effect.DeltaDefinition{{Stat: "damage_dice", Value: "1d8"}},
		})
	})
	RegisterSkill("Distract", func() *Skill {
		return buffSkill("Distract", false, 3, effect.Definition{
			Name: "Distracted", Rounds: 2,
			Deltas: []effect.DeltaDefinition{{Stat: "defence", Value: "-2"}},
		})
	})
	RegisterSkill("Rampage", func() *Skill {
		return attackSkill("Rampage", 4, 2, &effect.Definition{
			Name: "Rampage", Rounds: 1,
			Deltas: []effect.DeltaDefinition{{Stat: "damage", Value: "2"}},
		})
	})
	RegisterSkill("Heal", func() *Skill {
		return healSkill("Heal", 5, dice.MustParse("2d8"))
	})
	RegisterSkill("Shield of Faith", func() *Skill {
		return buffSkill("Shield of Faith", true, 5, effect.Definition{
			Name: "Shield of Faith", Rounds: 3,
			Deltas: []effect.DeltaDefinition{{Stat: "defence", Value: "2"}},
		})
	})
	RegisterSkill("Sacred Weapon", func() *Skill {
		return buffSkill("Sacred Weapon", true, 5, effect.Definition{
			Name: "Sacred Weapon", Rounds: 3,
			Deltas: []effect.DeltaDefinition{{Stat: "attack", Value: "2"}},
		})
	})
	RegisterSkill("Agathys", func() *Skill {
		return buffSkill("Agathys", true, 5, effect.Definition{
			Name: "Agathys", Rounds: 3,
			Deltas: []effect.DeltaDefinition{
				{Stat: "temporary_health", Value: "5"},
				{Stat: "biteback", Value: "5"},
			},
		})
	})
	RegisterSkill("Invincible Conqueror", func() *Skill {
		return buffSkill("Invincible Conqueror", true, 6, effect.Definition{
			Name: "Invincible Conqueror", Rounds: 3,
			Deltas: []effect.DeltaDefinition{
				{Stat: "attack_number", Value: "1"},
				{Stat: "crit_range", Value: "-1"},
			},
		})
	})
	RegisterSkill("Holy Nimbus", func() *Skill {
		return buffSkill("Holy Nimbus", true, 6, effect.Definition{
			Name: "Holy Nimbus", Rounds: 3,
			Deltas: []effect.DeltaDefinition{{Stat: "passive_damage", Value: "3"}},
		})
	})
}

// buffSkill applies one status effect built from def.
func buffSkill(name string, self bool, cooldown int, def effect.Definition) *Skill {
	return NewSkill(name, self, cooldown, func(target, actor *Combatant) (SkillReport, error) {
		r := newSkillReport(name)
		e, err := def.Build()
		if err != nil {
			return r, err
		}
		se, err := e.Apply(target, actor.src)
		if err != nil {
			return r, err
		}
		r.StatusEffects = append(r.StatusEffects, se)
		return r, nil
	})
}

// attackSkill optionally buffs the actor, then makes swings attacks.
func attackSkill(name string, cooldown, swings int, buff *effect.Definition) *Skill {
	return NewSkill(name, false, cooldown, func(target, actor *Combatant) (SkillReport, error) {
		r := newSkillReport(name)
		if buff != nil {
			e, err := buff.Build()
			if err != nil {
				return r, err
			}
			se, err := e.Apply(actor, actor.src)
			if err != nil {
				return r, err
			}
			r.StatusEffects = append(r.StatusEffects, se)
		}
		for range swings {
			if !target.IsAlive() {
				break
			}
			r.Attacks = append(r.Attacks, actor.MakeAttack(target))
		}
		return r, nil
	})
}

// healSkill restores a rolled amount of the actor's health.
func healSkill(name string, cooldown int, amount dice.Expr) *Skill {
	return NewSkill(name, true, cooldown, func(target, actor *Combatant) (SkillReport, error) {
		r := newSkillReport(name)
		before := target.attrs.Get(model.StatHealth)
		target.Heal(amount.Roll(actor.src))
		r.StatusEffects = append(r.StatusEffects, effect.StatusEffectReport{
			Name: name,
			Effects: []effect.EffectChange{{
				Stat:  model.StatHealth,
				Value: effect.ChangeValue{Amount: target.attrs.Get(model.StatHealth) - before},
			}},
			Target: target.name,
		})
		return r, nil
	})
}
