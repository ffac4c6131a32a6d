// Package data holds the embedded game tables: class progressions, the
// bestiary and hero templates.
package data

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/gugon/internal/dice"
	"github.com/udisondev/gugon/internal/game/combat"
	"github.com/udisondev/gugon/internal/game/encounter"
	"github.com/udisondev/gugon/internal/game/progression"
	"github.com/udisondev/gugon/internal/model"
)

//go:embed files/*.yaml
var files embed.FS

// ErrUnknownMonster is returned for bestiary names that are not defined.
var ErrUnknownMonster = errors.New("unknown monster")

// CreatureDefinition is the data-file form of a monster or hero.
type CreatureDefinition struct {
	MaxHealth  int      `yaml:"max_health"`
	Damage     int      `yaml:"damage"`
	Attack     int      `yaml:"attack"`
	Defence    int      `yaml:"defence"`
	Armour     int      `yaml:"armour"`
	DamageDice string   `yaml:"damage_dice"`
	HitDie     int      `yaml:"hit_die"`
	Reward     int      `yaml:"reward"`
	Class      string   `yaml:"class"`
	Level      int      `yaml:"level"`
	Skills     []string `yaml:"skills"`
	Behavior   string   `yaml:"behavior"`
}

type classesFile struct {
	Classes []progression.TableDefinition `yaml:"classes"`
}

type bestiaryFile struct {
	Monsters map[string]CreatureDefinition `yaml:"monsters"`
	Heroes   map[string]CreatureDefinition `yaml:"heroes"`
}

// Bestiary holds monster and hero templates by name.
type Bestiary struct {
	monsters map[string]encounter.MonsterSpec
	heroes   map[string]Hero
}

// Hero is a player template.
type Hero struct {
	Name   string
	Stats  model.BaseStats
	Class  string
	Level  int
	Skills []string

	damageDice dice.Expr
	hitDie     int
}

func decode(name string, v any) error {
	raw, err := files.ReadFile("files/" + name)
	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	return nil
}

// LoadClasses builds the class catalog from the embedded class tables.
func LoadClasses() (*progression.Catalog, error) {
	var f classesFile
	if err := decode("classes.yaml", &f); err != nil {
		return nil, err
	}

	tables := make([]*progression.Table, 0, len(f.Classes))
	for _, def := range f.Classes {
		t, err := def.Table()
		if err != nil {
			return nil, err
		}
		if err := checkSkills(t); err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}

	catalog := progression.NewCatalog(ExperienceTable, tables...)
	for _, def := range f.Classes {
		for _, sub := range def.Subclasses {
			if _, err := catalog.Table(sub); err != nil {
				return nil, fmt.Errorf("class %s: %w", def.Name, err)
			}
		}
	}

	slog.Info("loaded class tables", "count", len(tables))
	return catalog, nil
}

func checkSkills(t *progression.Table) error {
	var walk func(g progression.Grant) error
	walk = func(g progression.Grant) error {
		switch g.Kind {
		case progression.GrantSkill:
			if _, err := combat.LookupSkill(g.Skill); err != nil {
				return err
			}
		case progression.GrantChoice:
			for _, c := range g.Choices {
				if err := walk(c); err != nil {
					return err
				}
			}
		}
		return nil
	}
	for level := 1; level <= t.MaxLevel(); level++ {
		for _, g := range t.Grants(level) {
			if err := walk(g); err != nil {
				return fmt.Errorf("class %s level %d: %w", t.Name(), level, err)
			}
		}
	}
	return nil
}

// LoadBestiary reads the embedded bestiary and checks it against classes.
func LoadBestiary(classes *progression.Catalog) (*Bestiary, error) {
	var f bestiaryFile
	if err := decode("bestiary.yaml", &f); err != nil {
		return nil, err
	}

	b := &Bestiary{
		monsters: make(map[string]encounter.MonsterSpec, len(f.Monsters)),
		heroes:   make(map[string]Hero, len(f.Heroes)),
	}
	for name, def := range f.Monsters {
		spec, err := def.monster(name, classes)
		if err != nil {
			return nil, err
		}
		b.monsters[name] = spec
	}
	for name, def := range f.Heroes {
		h, err := def.hero(name, classes)
		if err != nil {
			return nil, err
		}
		b.heroes[name] = h
	}

	slog.Info("loaded bestiary", "monsters", len(b.monsters), "heroes", len(b.heroes))
	return b, nil
}

func (d CreatureDefinition) check(name string, classes *progression.Catalog) (dice.Expr, error) {
	if d.MaxHealth < 1 {
		return dice.Expr{}, fmt.Errorf("creature %s: max_health must be positive", name)
	}
	expr, err := dice.Parse(d.DamageDice)
	if err != nil {
		return dice.Expr{}, fmt.Errorf("creature %s: %w", name, err)
	}
	if d.Class != "" {
		if _, err := classes.Table(d.Class); err != nil {
			return dice.Expr{}, fmt.Errorf("creature %s: %w", name, err)
		}
	} else if d.Level > 0 {
		return dice.Expr{}, fmt.Errorf("creature %s: level without class", name)
	}
	for _, s := range d.Skills {
		if _, err := combat.LookupSkill(s); err != nil {
			return dice.Expr{}, fmt.Errorf("creature %s: %w", name, err)
		}
	}
	return expr, nil
}

func (d CreatureDefinition) monster(name string, classes *progression.Catalog) (encounter.MonsterSpec, error) {
	expr, err := d.check(name, classes)
	if err != nil {
		return encounter.MonsterSpec{}, err
	}
	if d.Behavior != "" {
		if _, err := encounter.LookupBehavior(d.Behavior); err != nil {
			return encounter.MonsterSpec{}, fmt.Errorf("monster %s: %w", name, err)
		}
	}
	return encounter.MonsterSpec{
		Name:       name,
		MaxHealth:  d.MaxHealth,
		Damage:     d.Damage,
		Attack:     d.Attack,
		Defence:    d.Defence,
		Armour:     d.Armour,
		DamageDice: expr,
		HitDie:     d.HitDie,
		Reward:     d.Reward,
		Class:      d.Class,
		Level:      d.Level,
		Skills:     d.Skills,
		Behavior:   d.Behavior,
	}, nil
}

func (d CreatureDefinition) hero(name string, classes *progression.Catalog) (Hero, error) {
	expr, err := d.check(name, classes)
	if err != nil {
		return Hero{}, err
	}
	return Hero{
		Name: name,
		Stats: model.BaseStats{
			MaxHealth: d.MaxHealth,
			Damage:    d.Damage,
			Attack:    d.Attack,
			Defence:   d.Defence,
			Armour:    d.Armour,
		},
		Class:      d.Class,
		Level:      d.Level,
		Skills:     d.Skills,
		damageDice: expr,
		hitDie:     d.HitDie,
	}, nil
}

// Monster returns the monster template called name.
func (b *Bestiary) Monster(name string) (encounter.MonsterSpec, error) {
	spec, ok := b.monsters[name]
	if !ok {
		return encounter.MonsterSpec{}, fmt.Errorf("%w: %s", ErrUnknownMonster, name)
	}
	return spec, nil
}

// Monsters returns the monster names in sorted order.
func (b *Bestiary) Monsters() []string {
	return slices.Sorted(maps.Keys(b.monsters))
}

// Hero returns the hero template called name.
func (b *Bestiary) Hero(name string) (Hero, error) {
	h, ok := b.heroes[name]
	if !ok {
		return Hero{}, fmt.Errorf("%w: hero %s", ErrUnknownMonster, name)
	}
	return h, nil
}

// Heroes returns the hero names in sorted order.
func (b *Bestiary) Heroes() []string {
	return slices.Sorted(maps.Keys(b.heroes))
}

// Player creates a combatant from the template with fresh dice and a
// level-0 class. Levels are gained once the player joined an encounter.
func (h Hero) Player(name string, classes *progression.Catalog, src dice.Source) (*combat.Combatant, error) {
	stats := h.Stats
	stats.DamageDice = h.damageDice.Group()
	if h.hitDie > 0 {
		stats.HitDie = dice.New(h.hitDie)
	}
	cfg := combat.Config{Name: name, Kind: combat.KindPlayer, Stats: stats}
	if h.Class != "" {
		class, err := classes.NewClass(h.Class)
		if err != nil {
			return nil, fmt.Errorf("creating %s: %w", name, err)
		}
		cfg.Class = class
	}

	c := combat.New(cfg, src)
	for _, s := range h.Skills {
		skill, err := combat.LookupSkill(s)
		if err != nil {
			return nil, fmt.Errorf("creating %s: %w", name, err)
		}
		c.LearnSkill(skill)
	}
	return c, nil
}
