package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type thing struct {
	id   uint32
	name string
}

func (t *thing) AssignID(id uint32) { t.id = id }

func TestIDGenerator(t *testing.T) {
	gen := NewIDGenerator()

	p1 := gen.Next(RangePlayer)
	p2 := gen.Next(RangePlayer)
	m1 := gen.Next(RangeMonster)

	assert.Equal(t, uint32(0x10000001), p1)
	assert.Equal(t, uint32(0x10000002), p2)
	assert.Equal(t, uint32(0x20000001), m1)

	r, ok := RangeOf(p1)
	assert.True(t, ok)
	assert.Equal(t, RangePlayer, r)
	r, ok = RangeOf(m1)
	assert.True(t, ok)
	assert.Equal(t, RangeMonster, r)
	_, ok = RangeOf(0)
	assert.False(t, ok)
}

func TestIDGenerator_Independent(t *testing.T) {
	a := NewIDGenerator()
	b := NewIDGenerator()
	assert.Equal(t, a.Next(RangeMonster), b.Next(RangeMonster))
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry[*thing]()

	hero := &thing{name: "Paladin"}
	s1 := &thing{name: "Skeleton 1"}
	s2 := &thing{name: "Skeleton 2"}

	heroID := reg.Insert(hero, RangePlayer)
	reg.Insert(s1, RangeMonster)
	reg.Insert(s2, RangeMonster)

	assert.Equal(t, heroID, hero.id)
	assert.NotEqual(t, s1.id, s2.id)
	assert.Equal(t, []*thing{s1, s2}, reg.InRange(RangeMonster))

	got, ok := reg.Get(s2.id)
	require.True(t, ok)
	assert.Same(t, s2, got)

	assert.Equal(t, []*thing{hero}, reg.InRange(RangePlayer))

	got, err := reg.Lookup(s1.id)
	require.NoError(t, err)
	assert.Same(t, s1, got)

	_, err = reg.Lookup(0x2000ffff)
	assert.ErrorIs(t, err, ErrNotFound)
}
