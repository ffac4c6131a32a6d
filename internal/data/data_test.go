package data

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/gugon/internal/dice"
	"github.com/udisondev/gugon/internal/game/combat"
	"github.com/udisondev/gugon/internal/game/encounter"
	"github.com/udisondev/gugon/internal/game/progression"
	"github.com/udisondev/gugon/internal/model"
	"github.com/udisondev/gugon/internal/testutil"
)

func load(t *testing.T) (*progression.Catalog, *Bestiary) {
	t.Helper()
	classes, err := LoadClasses()
	require.NoError(t, err)
	bestiary, err := LoadBestiary(classes)
	require.NoError(t, err)
	return classes, bestiary
}

func TestLoadClasses(t *testing.T) {
	classes, _ := load(t)
	assert.Equal(t,
		[]string{"Paladin", "Paladin of Conquest", "Paladin of Devotion", "Skeleton"},
		classes.Names())

	paladin, err := classes.Table("Paladin")
	require.NoError(t, err)
	assert.Equal(t, MaxLevel, paladin.MaxLevel())
	assert.True(t, paladin.AllowsSubclass("Paladin of Devotion"))

	level4 := paladin.Grants(4)
	require.Len(t, level4, 1)
	assert.Equal(t, progression.GrantChoice, level4[0].Kind)
	assert.Len(t, level4[0].Choices, 2)

	for _, level := range []int{7, 16, 20} {
		grants := paladin.Grants(level)
		require.Len(t, grants, 1, "level %d", level)
		assert.Equal(t, progression.GrantSubclassLevel, grants[0].Kind)
	}

	aura := paladin.Grants(18)
	require.Len(t, aura, 1)
	assert.Equal(t, "aura_master", aura[0].Effect.Mutation)
	assert.True(t, aura[0].Effect.Permanent)
}

func TestLoadBestiary(t *testing.T) {
	_, b := load(t)
	assert.Equal(t, []string{"Goblin", "Skeleton", "Zombie"}, b.Monsters())
	assert.Equal(t, []string{"Paladin"}, b.Heroes())

	skeleton, err := b.Monster("Skeleton")
	require.NoError(t, err)
	assert.Equal(t, "Skeleton", skeleton.Class)
	assert.Equal(t, "skeleton", skeleton.Behavior)
	assert.Equal(t, "1d6", skeleton.DamageDice.String())

	_, err = b.Monster("Dragon")
	assert.ErrorIs(t, err, ErrUnknownMonster)
	_, err = b.Hero("Wizard")
	assert.ErrorIs(t, err, ErrUnknownMonster)
}

func TestCreatureDefinition_Invalid(t *testing.T) {
	classes, err := LoadClasses()
	require.NoError(t, err)

	tests := []struct {
		name string
		def  CreatureDefinition
	}{
		{"no health", CreatureDefinition{DamageDice: "1d4"}},
		{"bad dice", CreatureDefinition{MaxHealth: 5, DamageDice: "d"}},
		{"unknown class", CreatureDefinition{MaxHealth: 5, DamageDice: "1d4", Class: "Bard"}},
		{"level without class", CreatureDefinition{MaxHealth: 5, DamageDice: "1d4", Level: 2}},
		{"unknown skill", CreatureDefinition{MaxHealth: 5, DamageDice: "1d4", Skills: []string{"Fireball"}}},
		{"unknown behavior", CreatureDefinition{MaxHealth: 5, DamageDice: "1d4", Behavior: "dragon"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.def.monster("Thing", classes)
			assert.Error(t, err)
		})
	}
}

// A paladin can level from 1 to 20 through every grant in the table.
func TestPaladinLevelsToTwenty(t *testing.T) {
	classes, b := load(t)
	hero, err := b.Hero("Paladin")
	require.NoError(t, err)

	for _, presenter := range []combat.ChoicePresenter{
		encounter.FirstChoice{},
		encounter.RandomChoice{Src: dice.NewSeededSource(7)},
	} {
		src := testutil.MaxSource{}
		e := encounter.New(src, encounter.WithPresenter(presenter))
		p, err := hero.Player("Hero", classes, src)
		require.NoError(t, err)
		_, err = e.AddPlayer(p)
		require.NoError(t, err)

		for range MaxLevel {
			_, err := p.LevelUp(presenter)
			require.NoError(t, err)
		}
		assert.Equal(t, MaxLevel, p.Level())
		assert.Equal(t, 30+MaxLevel*10, p.Attributes().Get(model.StatMaxHealth)-boonHealth(p))
		assert.Equal(t, 2, p.Attributes().Get(model.StatAttackNumber))
		require.NotNil(t, p.Class())

		r, err := p.LevelUp(presenter)
		require.NoError(t, err)
		assert.True(t, r.MaxedOut)
		assert.Equal(t, MaxLevel, p.Level())
	}
}

func boonHealth(p interface{ HasEffect(string) bool }) int {
	if p.HasEffect("Boon of Fortitude") {
		return 20
	}
	return 0
}

func TestSkeletonSpawn(t *testing.T) {
	classes, b := load(t)
	hero, err := b.Hero("Paladin")
	require.NoError(t, err)
	spec, err := b.Monster("Skeleton")
	require.NoError(t, err)

	src := dice.NewSeededSource(3)
	e := encounter.New(src)
	p, err := hero.Player("Hero", classes, src)
	require.NoError(t, err)
	_, err = e.AddPlayer(p)
	require.NoError(t, err)

	s, err := e.Spawn(spec, classes)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Level())
	_, ok := s.Skill("Distract")
	assert.True(t, ok)
	_, ok = s.Skill("Rampage")
	assert.True(t, ok)

	outcome, err := e.PlayRound(context.Background(), encounter.Defend())
	require.NoError(t, err)
	assert.Equal(t, encounter.Ongoing, outcome)
}
