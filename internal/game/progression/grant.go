// Package progression implements class tables: what a combatant gains on
// each level and how much experience each level costs.
package progression

import (
	"fmt"
	"strings"

	"github.com/udisondev/gugon/internal/game/effect"
	"github.com/udisondev/gugon/internal/model"
)

// GrantKind tags the variant held by a Grant.
type GrantKind uint8

const (
	GrantSkill         GrantKind = iota + 1 // learn a skill from the catalog
	GrantStatusEffect                       // permanent passive, applied at once
	GrantAttribute                          // flat stat increase
	GrantChoice                             // pick one of several grants
	GrantSubclass                           // enter a subclass table
	GrantSubclassLevel                      // advance the current subclass
)

func (k GrantKind) String() string {
	switch k {
	case GrantSkill:
		return "skill"
	case GrantStatusEffect:
		return "status_effect"
	case GrantAttribute:
		return "attribute"
	case GrantChoice:
		return "choice"
	case GrantSubclass:
		return "subclass"
	case GrantSubclassLevel:
		return "subclass_level"
	default:
		return fmt.Sprintf("GrantKind(%d)", uint8(k))
	}
}

// Grant is one item handed out on level-up. Only the fields of its Kind
// are meaningful.
type Grant struct {
	Kind     GrantKind
	Skill    string
	Effect   effect.Definition
	Stat     model.Stat
	Delta    int
	Choices  []Grant
	Subclass string
}

// Skill grants the catalog skill name.
func Skill(name string) Grant {
	return Grant{Kind: GrantSkill, Skill: name}
}

// StatusEffect grants a permanent passive built from def.
func StatusEffect(def effect.Definition) Grant {
	def.Permanent = true
	return Grant{Kind: GrantStatusEffect, Effect: def}
}

// Attribute grants a flat stat increase.
func Attribute(stat model.Stat, delta int) Grant {
	return Grant{Kind: GrantAttribute, Stat: stat, Delta: delta}
}

// Choice lets the player pick one of options.
func Choice(options ...Grant) Grant {
	return Grant{Kind: GrantChoice, Choices: options}
}

// Subclass moves the combatant into the named subclass table.
func Subclass(name string) Grant {
	return Grant{Kind: GrantSubclass, Subclass: name}
}

// SubclassLevel advances the combatant's current subclass by one level.
func SubclassLevel() Grant {
	return Grant{Kind: GrantSubclassLevel}
}

// Label is a short human-readable name, used by choice presenters.
func (g Grant) Label() string {
	switch g.Kind {
	case GrantSkill:
		return g.Skill
	case GrantStatusEffect:
		return g.Effect.Name
	case GrantAttribute:
		return fmt.Sprintf("%s %+d", g.Stat, g.Delta)
	case GrantChoice:
		labels := make([]string, 0, len(g.Choices))
		for _, c := range g.Choices {
			labels = append(labels, c.Label())
		}
		return "one of: " + strings.Join(labels, ", ")
	case GrantSubclass:
		return g.Subclass
	case GrantSubclassLevel:
		return "subclass level"
	default:
		return g.Kind.String()
	}
}

func (g Grant) String() string {
	return g.Kind.String() + "(" + g.Label() + ")"
}
