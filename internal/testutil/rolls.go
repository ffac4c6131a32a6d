package testutil

import "testing"

// ScriptedSource is a dice.Source that replays fixed die faces.
// Each value is the face to return (1-based); IntN converts it to the
// 0-based draw rand would produce. Exhausting the script fails the test.
type ScriptedSource struct {
	tb    testing.TB
	faces []int
	pos   int
}

// Faces returns a source that yields the given faces in order.
func Faces(tb testing.TB, faces ...int) *ScriptedSource {
	tb.Helper()
	return &ScriptedSource{tb: tb, faces: faces}
}

// IntN returns the next scripted face minus one.
func (s *ScriptedSource) IntN(n int) int {
	if s.pos >= len(s.faces) {
		s.tb.Fatalf("scripted source exhausted after %d rolls (IntN(%d))", s.pos, n)
		return 0
	}
	face := s.faces[s.pos]
	s.pos++
	if face < 1 || face > n {
		s.tb.Fatalf("scripted face %d out of range for d%d", face, n)
	}
	return face - 1
}

// Remaining returns how many scripted faces are left.
func (s *ScriptedSource) Remaining() int {
	return len(s.faces) - s.pos
}

// FixedSource always rolls the same face, clamped to the die size.
type FixedSource int

// IntN implements dice.Source.
func (f FixedSource) IntN(n int) int {
	face := int(f)
	if face > n {
		face = n
	}
	if face < 1 {
		face = 1
	}
	return face - 1
}

// MaxSource always rolls the highest face.
type MaxSource struct{}

// IntN implements dice.Source.
func (MaxSource) IntN(n int) int { return n - 1 }
