// Package world owns the identities of everything taking part in an
// encounter.
package world

import "sync/atomic"

// Range selects the id block an object is issued from.
//
// ID ranges (convention):
//
//	0x00000000 - 0x0FFFFFFF: Reserved (0 = unregistered)
//	0x10000000 - 0x1FFFFFFF: Players
//	0x20000000 - 0x2FFFFFFF: Monsters
type Range uint8

const (
	RangePlayer Range = iota
	RangeMonster
)

const (
	playerBase  = 0x10000000
	monsterBase = 0x20000000
)

// IDGenerator issues object ids. Each encounter owns one, so parallel
// encounters never share counters.
type IDGenerator struct {
	nextPlayerID  atomic.Uint32
	nextMonsterID atomic.Uint32
}

// NewIDGenerator creates a generator at the start of every range.
func NewIDGenerator() *IDGenerator {
	gen := &IDGenerator{}
	gen.nextPlayerID.Store(playerBase)
	gen.nextMonsterID.Store(monsterBase)
	return gen
}

// Next returns the next id in r.
func (g *IDGenerator) Next(r Range) uint32 {
	if r == RangePlayer {
		return g.nextPlayerID.Add(1)
	}
	return g.nextMonsterID.Add(1)
}

// RangeOf returns the range id was issued from.
func RangeOf(id uint32) (Range, bool) {
	switch {
	case id > playerBase && id < monsterBase:
		return RangePlayer, true
	case id > monsterBase && id < monsterBase+0x10000000:
		return RangeMonster, true
	default:
		return 0, false
	}
}
