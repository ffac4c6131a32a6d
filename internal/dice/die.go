package dice

import "fmt"

// D20 is the face count of the attack die.
const D20 = 20

// Die is a single die with a fixed number of faces.
// Dice are compared by identity (pointer) when removed from a Group.
type Die struct {
	size int
}

// New creates a die with the given number of faces.
// Sizes below 1 are treated as 1.
func New(size int) *Die {
	if size < 1 {
		size = 1
	}
	return &Die{size: size}
}

// Size returns the face count.
func (d *Die) Size() int { return d.size }

// Roll draws one uniform value in [1, size]. A critical roll draws twice and
// sums the draws, so it doubles the number of draws, not the result.
func (d *Die) Roll(src Source, critical bool) int {
	rolls := 1
	if critical {
		rolls = 2
	}
	total := 0
	for range rolls {
		total += src.IntN(d.size) + 1
	}
	return total
}

func (d *Die) String() string {
	return fmt.Sprintf("1d%d", d.size)
}
