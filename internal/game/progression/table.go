package progression

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrUnknownClass is returned when a class or subclass name is not in the catalog.
	ErrUnknownClass = errors.New("unknown class")
	// ErrSubclassChosen is returned when entering a second subclass.
	ErrSubclassChosen = errors.New("subclass already chosen")
)

// Table maps levels to the grants handed out on reaching them.
type Table struct {
	name       string
	levels     map[int][]Grant
	maxLevel   int
	subclasses []string
}

// NewTable creates an empty table. subclasses lists the subclass tables a
// combatant of this class may enter.
func NewTable(name string, subclasses ...string) *Table {
	return &Table{
		name:       name,
		levels:     make(map[int][]Grant),
		subclasses: subclasses,
	}
}

// Set defines the grants for level. Levels start at 1.
func (t *Table) Set(level int, grants ...Grant) error {
	if level < 1 {
		return fmt.Errorf("class %s: invalid level %d", t.name, level)
	}
	t.levels[level] = grants
	t.maxLevel = max(t.maxLevel, level)
	return nil
}

// Name returns the class name.
func (t *Table) Name() string { return t.name }

// MaxLevel returns the highest defined level.
func (t *Table) MaxLevel() int { return t.maxLevel }

// Grants returns the grants for level; nil beyond the table.
func (t *Table) Grants(level int) []Grant { return t.levels[level] }

// AllowsSubclass reports whether name is one of the table's subclasses.
func (t *Table) AllowsSubclass(name string) bool {
	return slices.Contains(t.subclasses, name)
}

// Catalog holds class tables by name.
type Catalog struct {
	tables map[string]*Table
	xp     XPTable
}

// NewCatalog creates a catalog sharing one experience table.
func NewCatalog(xp XPTable, tables ...*Table) *Catalog {
	c := &Catalog{tables: make(map[string]*Table, len(tables)), xp: xp}
	for _, t := range tables {
		c.tables[t.name] = t
	}
	return c
}

// Table returns the class table called name.
func (c *Catalog) Table(name string) (*Table, error) {
	t, ok := c.tables[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownClass, name)
	}
	return t, nil
}

// Names returns all class names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.tables))
	for n := range c.tables {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// NewClass starts a level-0 progression through the class called name.
func (c *Catalog) NewClass(name string) (*Class, error) {
	t, err := c.Table(name)
	if err != nil {
		return nil, err
	}
	return &Class{catalog: c, table: t}, nil
}
