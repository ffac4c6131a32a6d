package progression

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/udisondev/gugon/internal/game/effect"
	"github.com/udisondev/gugon/internal/model"
)

func testCatalog(t *testing.T) *Catalog {
	t.Helper()

	paladin := NewTable("Paladin", "Paladin of Devotion")
	require.NoError(t, paladin.Set(1, Skill("Bless")))
	require.NoError(t, paladin.Set(2, Choice(Attribute(model.StatDefence, 1), Attribute(model.StatDamage, 2))))
	require.NoError(t, paladin.Set(3, Subclass("Paladin of Devotion")))
	require.NoError(t, paladin.Set(4, SubclassLevel()))

	devotion := NewTable("Paladin of Devotion")
	require.NoError(t, devotion.Set(1, Skill("Shield of Faith")))
	require.NoError(t, devotion.Set(2, StatusEffect(effect.Definition{
		Name:   "Aura of Devotion",
		Deltas: []effect.DeltaDefinition{{Stat: "armour", Value: "1"}},
	})))

	return NewCatalog(XPTable{0, 300, 900, 2700}, paladin, devotion)
}

func TestClass_LevelUp(t *testing.T) {
	c, err := testCatalog(t).NewClass("Paladin")
	require.NoError(t, err)

	assert.Equal(t, 0, c.Level())
	assert.Equal(t, 0, c.NextExperienceThreshold())

	assert.Equal(t, []Grant{Skill("Bless")}, c.LevelUp())
	assert.Equal(t, 300, c.NextExperienceThreshold())

	g := c.LevelUp()
	require.Len(t, g, 1)
	assert.Equal(t, GrantChoice, g[0].Kind)
	assert.Len(t, g[0].Choices, 2)

	c.LevelUp()
	c.LevelUp()
	assert.Equal(t, 4, c.Level())
	assert.False(t, c.MaxedOut())
	assert.Equal(t, math.MaxInt, c.NextExperienceThreshold())

	assert.Empty(t, c.LevelUp())
	assert.True(t, c.MaxedOut())
	assert.Equal(t, 4, c.Level())
}

func TestClass_Subclass(t *testing.T) {
	c, err := testCatalog(t).NewClass("Paladin")
	require.NoError(t, err)

	assert.Empty(t, c.SubclassLevelUp())

	first, err := c.EnterSubclass("Paladin of Devotion")
	require.NoError(t, err)
	assert.Equal(t, []Grant{Skill("Shield of Faith")}, first)
	require.NotNil(t, c.Subclass())
	assert.Equal(t, 1, c.Subclass().Level())

	next := c.SubclassLevelUp()
	require.Len(t, next, 1)
	assert.Equal(t, GrantStatusEffect, next[0].Kind)
	assert.True(t, next[0].Effect.Permanent)

	_, err = c.EnterSubclass("Paladin of Devotion")
	assert.ErrorIs(t, err, ErrSubclassChosen)
}

func TestClass_UnknownSubclass(t *testing.T) {
	cat := testCatalog(t)
	c, err := cat.NewClass("Paladin")
	require.NoError(t, err)

	_, err = c.EnterSubclass("Paladin of Conquest")
	assert.ErrorIs(t, err, ErrUnknownClass)

	_, err = cat.NewClass("Bard")
	assert.ErrorIs(t, err, ErrUnknownClass)
	assert.Equal(t, []string{"Paladin", "Paladin of Devotion"}, cat.Names())
}

func TestXPTable(t *testing.T) {
	xp := XPTable{0, 300, 900}

	tests := []struct {
		level int
		want  int
	}{
		{0, 0},
		{1, 0},
		{2, 300},
		{3, 900},
		{4, math.MaxInt},
		{100, math.MaxInt},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, xp.Threshold(tt.level), "level %d", tt.level)
	}

	assert.Equal(t, 1, xp.LevelFor(0))
	assert.Equal(t, 1, xp.LevelFor(299))
	assert.Equal(t, 2, xp.LevelFor(300))
	assert.Equal(t, 3, xp.LevelFor(5000))
}

func TestTableDefinition(t *testing.T) {
	const doc = `
name: Paladin
subclasses: [Paladin of Conquest]
levels:
  1:
    - skill: Bless
  2:
    - choice:
        - effect:
            name: Duelist
            deltas: [{stat: damage, value: 2}]
        - effect:
            name: Great Weapon Fighter
            deltas: [{stat: attack, value: 2}]
  4:
    - subclass: Paladin of Conquest
  5:
    - attribute: {stat: attack_number, delta: 1}
    - attribute: {stat: attack, delta: 1}
  7:
    - subclass_level: true
`
	var def TableDefinition
	require.NoError(t, yaml.Unmarshal([]byte(doc), &def))

	table, err := def.Table()
	require.NoError(t, err)
	assert.Equal(t, 7, table.MaxLevel())
	assert.True(t, table.AllowsSubclass("Paladin of Conquest"))
	assert.Empty(t, table.Grants(3))

	choice := table.Grants(2)[0]
	require.Equal(t, GrantChoice, choice.Kind)
	assert.Equal(t, "one of: Duelist, Great Weapon Fighter", choice.Label())
	assert.True(t, choice.Choices[0].Effect.Permanent)

	assert.Equal(t, []Grant{Attribute(model.StatAttackNumber, 1), Attribute(model.StatAttack, 1)}, table.Grants(5))
	assert.Equal(t, GrantSubclassLevel, table.Grants(7)[0].Kind)
}

func TestGrantDefinition_Invalid(t *testing.T) {
	tests := []struct {
		name string
		def  GrantDefinition
	}{
		{"empty", GrantDefinition{}},
		{"two variants", GrantDefinition{Skill: "Bless", Subclass: "Paladin of Conquest"}},
		{"unknown stat", GrantDefinition{Attribute: &AttributeDefinition{Stat: "luck", Delta: 1}}},
		{"pool stat", GrantDefinition{Attribute: &AttributeDefinition{Stat: "damage_dice", Delta: 1}}},
		{"bad effect", GrantDefinition{Effect: &effect.Definition{Name: "x", Deltas: []effect.DeltaDefinition{{Stat: "attack", Value: "d"}}}}},
		{"bad choice", GrantDefinition{Choice: []GrantDefinition{{}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.def.Grant()
			assert.Error(t, err)
		})
	}
}
