package progression

import (
	"errors"
	"fmt"

	"github.com/udisondev/gugon/internal/game/effect"
	"github.com/udisondev/gugon/internal/model"
)

var errGrantShape = errors.New("grant must set exactly one of skill, effect, attribute, choice, subclass, subclass_level")

// GrantDefinition is the data-file form of a Grant.
type GrantDefinition struct {
	Skill         string               `yaml:"skill"`
	Effect        *effect.Definition   `yaml:"effect"`
	Attribute     *AttributeDefinition `yaml:"attribute"`
	Choice        []GrantDefinition    `yaml:"choice"`
	Subclass      string               `yaml:"subclass"`
	SubclassLevel bool                 `yaml:"subclass_level"`
}

// AttributeDefinition is a flat stat increase.
type AttributeDefinition struct {
	Stat  string `yaml:"stat"`
	Delta int    `yaml:"delta"`
}

// TableDefinition is the data-file form of a class table.
type TableDefinition struct {
	Name       string                    `yaml:"name"`
	Subclasses []string                  `yaml:"subclasses"`
	Levels     map[int][]GrantDefinition `yaml:"levels"`
}

// Grant converts the definition, validating that exactly one variant is set.
func (d GrantDefinition) Grant() (Grant, error) {
	set := 0
	for _, ok := range []bool{
		d.Skill != "",
		d.Effect != nil,
		d.Attribute != nil,
		len(d.Choice) > 0,
		d.Subclass != "",
		d.SubclassLevel,
	} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return Grant{}, errGrantShape
	}

	switch {
	case d.Skill != "":
		return Skill(d.Skill), nil
	case d.Effect != nil:
		if _, err := d.Effect.Build(); err != nil {
			return Grant{}, err
		}
		return StatusEffect(*d.Effect), nil
	case d.Attribute != nil:
		s, err := model.ParseStat(d.Attribute.Stat)
		if err != nil {
			return Grant{}, err
		}
		if !s.IsScalar() {
			return Grant{}, fmt.Errorf("attribute grant on pool stat %s", s)
		}
		return Attribute(s, d.Attribute.Delta), nil
	case len(d.Choice) > 0:
		options := make([]Grant, 0, len(d.Choice))
		for i, c := range d.Choice {
			g, err := c.Grant()
			if err != nil {
				return Grant{}, fmt.Errorf("choice %d: %w", i, err)
			}
			options = append(options, g)
		}
		return Choice(options...), nil
	case d.Subclass != "":
		return Subclass(d.Subclass), nil
	default:
		return SubclassLevel(), nil
	}
}

// Table converts the definition into a class table.
func (d TableDefinition) Table() (*Table, error) {
	if d.Name == "" {
		return nil, errors.New("class table without name")
	}
	t := NewTable(d.Name, d.Subclasses...)
	for level, defs := range d.Levels {
		grants := make([]Grant, 0, len(defs))
		for i, gd := range defs {
			g, err := gd.Grant()
			if err != nil {
				return nil, fmt.Errorf("class %s level %d grant %d: %w", d.Name, level, i, err)
			}
			grants = append(grants, g)
		}
		if err := t.Set(level, grants...); err != nil {
			return nil, err
		}
	}
	return t, nil
}
