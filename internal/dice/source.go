// Package dice implements the randomized integer generators used by the
// combat engine: single dice, composite pools and parsed dice expressions.
package dice

import (
	"encoding/binary"
	"math/rand/v2"

	"golang.org/x/crypto/blake2b"
)

// Source is the subset of *rand.Rand used to roll dice.
// Tests substitute scripted sources to pin individual rolls.
type Source interface {
	IntN(n int) int
}

// NewSource returns a deterministic source seeded from a 32-byte key.
func NewSource(seed [32]byte) *rand.Rand {
	return rand.New(rand.NewChaCha8(seed))
}

// NewSeededSource returns a PCG-backed source for a plain integer seed.
// A zero seed is replaced by 1, so "unset" never means "same as seed 0".
func NewSeededSource(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = 1
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// DeriveSeed derives the ChaCha8 key of stream index from a master seed.
// Streams of one master seed are independent of each other and of the
// order they are created in.
func DeriveSeed(master uint64, index int) [32]byte {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], master)
	binary.LittleEndian.PutUint64(buf[8:], uint64(index))
	return blake2b.Sum256(buf[:])
}
