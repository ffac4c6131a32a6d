package progression

import (
	"fmt"
	"log/slog"
)

// Class is one combatant's progression through a class table.
type Class struct {
	catalog  *Catalog
	table    *Table
	level    int
	maxedOut bool
	subclass *Class
}

// Name returns the class name.
func (c *Class) Name() string { return c.table.name }

// Level returns the current level.
func (c *Class) Level() int { return c.level }

// MaxedOut reports whether a level-up was requested past the table.
func (c *Class) MaxedOut() bool { return c.maxedOut }

// Subclass returns the entered subclass progression, or nil.
func (c *Class) Subclass() *Class { return c.subclass }

// LevelUp advances one level and returns its grants. Past the highest
// defined level it returns no grants and marks the class maxed out.
func (c *Class) LevelUp() []Grant {
	if c.level >= c.table.maxLevel {
		c.maxedOut = true
		slog.Info("maxed out level", "class", c.table.name, "level", c.level)
		return nil
	}
	c.level++
	return c.table.Grants(c.level)
}

// NextExperienceThreshold returns the total experience needed for the next
// level, or math.MaxInt when there is none.
func (c *Class) NextExperienceThreshold() int {
	if c.level >= c.table.maxLevel {
		return maxThreshold
	}
	return c.catalog.xp.Threshold(c.level + 1)
}

// EnterSubclass switches into the named subclass and returns its first
// level of grants.
func (c *Class) EnterSubclass(name string) ([]Grant, error) {
	if c.subclass != nil {
		return nil, fmt.Errorf("class %s entering %s: %w (%s)", c.table.name, name, ErrSubclassChosen, c.subclass.Name())
	}
	if !c.table.AllowsSubclass(name) {
		return nil, fmt.Errorf("class %s entering %s: %w", c.table.name, name, ErrUnknownClass)
	}
	sub, err := c.catalog.NewClass(name)
	if err != nil {
		return nil, fmt.Errorf("class %s entering %s: %w", c.table.name, name, err)
	}
	c.subclass = sub

	slog.Info("subclass entered", "class", c.table.name, "subclass", name)
	return sub.LevelUp(), nil
}

// SubclassLevelUp advances the subclass. Without one there is nothing to grant.
func (c *Class) SubclassLevelUp() []Grant {
	if c.subclass == nil {
		slog.Warn("subclass level-up without subclass", "class", c.table.name, "level", c.level)
		return nil
	}
	return c.subclass.LevelUp()
}
