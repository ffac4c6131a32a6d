package combat

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/gugon/internal/dice"
	"github.com/udisondev/gugon/internal/game/effect"
	"github.com/udisondev/gugon/internal/game/progression"
	"github.com/udisondev/gugon/internal/model"
	"github.com/udisondev/gugon/internal/testutil"
)

// pickIndex always chooses the candidate at a fixed position.
type pickIndex int

func (p pickIndex) Present(candidates []progression.Grant) (progression.Grant, error) {
	if int(p) >= len(candidates) {
		return progression.Grant{}, errors.New("no such candidate")
	}
	return candidates[p], nil
}

func paladinCatalog(t *testing.T) *progression.Catalog {
	t.Helper()

	paladin := progression.NewTable("Paladin", "Paladin of Devotion", "Paladin of Conquest")
	require.NoError(t, paladin.Set(1, progression.Skill("Bless")))
	require.NoError(t, paladin.Set(2, progression.Choice(
		progression.StatusEffect(effect.Definition{
			Name:   "Defensive Fighter",
			Deltas: []effect.DeltaDefinition{{Stat: "defence", Value: "1"}},
		}),
		progression.StatusEffect(effect.Definition{
			Name:   "Duelist",
			Deltas: []effect.DeltaDefinition{{Stat: "damage", Value: "2"}},
		}),
	)))
	require.NoError(t, paladin.Set(3,
		progression.Attribute(model.StatAttackNumber, 1),
		progression.Attribute(model.StatAttack, 1),
	))
	require.NoError(t, paladin.Set(4, progression.Choice(
		progression.Subclass("Paladin of Conquest"),
		progression.Subclass("Paladin of Devotion"),
	)))
	require.NoError(t, paladin.Set(5, progression.SubclassLevel()))

	devotion := progression.NewTable("Paladin of Devotion")
	require.NoError(t, devotion.Set(1, progression.Skill("Shield of Faith"), progression.Skill("Sacred Weapon")))
	require.NoError(t, devotion.Set(2, progression.StatusEffect(effect.Definition{
		Name:   "Aura of Devotion",
		Deltas: []effect.DeltaDefinition{{Stat: "armour", Value: "1"}, {Stat: "defence", Value: "1"}},
	})))

	conquest := progression.NewTable("Paladin of Conquest")
	require.NoError(t, conquest.Set(1, progression.Skill("Agathys")))

	return progression.NewCatalog(progression.XPTable{0, 300, 900, 2700, 6500}, paladin, devotion, conquest)
}

func newPaladin(t *testing.T) *Combatant {
	t.Helper()
	class, err := paladinCatalog(t).NewClass("Paladin")
	require.NoError(t, err)

	c := New(Config{
		Name:  "Paladin",
		Kind:  KindPlayer,
		Stats: model.BaseStats{MaxHealth: 20, Defence: 12},
		Class: class,
	}, testutil.FixedSource(5))
	c.AssignID(1)
	return c
}

func TestLevelUp_Grants(t *testing.T) {
	c := newPaladin(t)
	presenter := pickIndex(1)

	r, err := c.LevelUp(presenter)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Level)
	assert.Equal(t, 5, r.HealthGained)
	assert.Equal(t, []string{"Bless"}, r.Granted)
	assert.Equal(t, 25, c.attrs.Get(model.StatMaxHealth))
	assert.Equal(t, 25, c.attrs.Get(model.StatHealth))
	_, ok := c.Skill("Bless")
	assert.True(t, ok)

	// choice resolves to Duelist, a permanent passive applied at once
	r, err = c.LevelUp(presenter)
	require.NoError(t, err)
	assert.Equal(t, []string{"Duelist"}, r.Granted)
	require.Len(t, c.Passives(), 1)
	assert.True(t, c.Passives()[0].IsPermanent())
	assert.Equal(t, 2, c.attrs.Get(model.StatDamage))
	assert.Empty(t, c.Effects())

	_, err = c.LevelUp(presenter)
	require.NoError(t, err)
	assert.Equal(t, 2, c.attrs.Get(model.StatAttackNumber))
	assert.Equal(t, 1, c.attrs.Get(model.StatAttack))

	// subclass: first level grants are processed right away
	r, err = c.LevelUp(presenter)
	require.NoError(t, err)
	assert.Equal(t, []string{"Paladin of Devotion", "Shield of Faith", "Sacred Weapon"}, r.Granted)
	assert.Len(t, c.Skills(), 3)

	r, err = c.LevelUp(presenter)
	require.NoError(t, err)
	assert.Equal(t, []string{"Aura of Devotion"}, r.Granted)
	assert.Equal(t, 1, c.attrs.Get(model.StatArmour))
	assert.Equal(t, 13, c.attrs.Get(model.StatDefence))

	// past the table: nothing granted, no health
	r, err = c.LevelUp(presenter)
	require.NoError(t, err)
	assert.True(t, r.MaxedOut)
	assert.Zero(t, r.HealthGained)
	assert.Equal(t, 45, c.attrs.Get(model.StatMaxHealth))
}

func TestLevelUp_MaxedOutRollsNothing(t *testing.T) {
	table := progression.NewTable("Squire")
	require.NoError(t, table.Set(1, progression.Skill("Bless")))
	class, err := progression.NewCatalog(progression.XPTable{0, 300}, table).NewClass("Squire")
	require.NoError(t, err)

	src := testutil.Faces(t, 7)
	c := New(Config{
		Name:  "Squire",
		Kind:  KindPlayer,
		Stats: model.BaseStats{MaxHealth: 10, HitDie: dice.New(10)},
		Class: class,
	}, src)

	r, err := c.LevelUp(pickIndex(0))
	require.NoError(t, err)
	assert.Equal(t, 7, r.HealthGained)

	for range 3 {
		r, err = c.LevelUp(pickIndex(0))
		require.NoError(t, err)
		assert.True(t, r.MaxedOut)
		assert.Zero(t, r.HealthGained)
	}
	assert.Equal(t, 17, c.attrs.Get(model.StatMaxHealth))
	assert.Zero(t, src.Remaining(), "the hit die is rolled once")
}

func TestLevelUp_NoClass(t *testing.T) {
	c := newFighter(1, "Skeleton", model.BaseStats{}, testutil.MaxSource{})
	_, err := c.LevelUp(nil)
	assert.ErrorIs(t, err, ErrNoProgression)
}

func TestLevelUp_ChoiceWithoutPresenter(t *testing.T) {
	c := newPaladin(t)
	_, err := c.LevelUp(nil)
	require.NoError(t, err)

	_, err = c.LevelUp(nil)
	assert.ErrorIs(t, err, ErrNoPresenter)
}

func TestLevelUp_PresenterError(t *testing.T) {
	c := newPaladin(t)
	_, err := c.LevelUp(pickIndex(9))
	require.NoError(t, err)

	_, err = c.LevelUp(pickIndex(9))
	assert.Error(t, err)
}

func TestAddExperience(t *testing.T) {
	c := newPaladin(t)
	presenter := pickIndex(0)

	reports, err := c.AddExperience(0, presenter)
	require.NoError(t, err)
	assert.Empty(t, reports)
	assert.Zero(t, c.Level())

	// 0 xp reaches level 1, 300 reaches level 2
	reports, err = c.AddExperience(350, presenter)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, 2, c.Level())
	assert.Equal(t, 350, c.Experience())
	assert.True(t, c.HasEffect("Defensive Fighter"))

	reports, err = c.AddExperience(1_000_000, presenter)
	require.NoError(t, err)
	assert.Len(t, reports, 3)
	assert.Equal(t, 5, c.Level())
	_, ok := c.Skill("Agathys")
	assert.True(t, ok, "conquest subclass chosen at level 4")

	reports, err = c.AddExperience(1_000_000, presenter)
	require.NoError(t, err)
	assert.Empty(t, reports)
}
