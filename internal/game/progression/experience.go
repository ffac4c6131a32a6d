package progression

import "math"

const maxThreshold = math.MaxInt

// XPTable holds the cumulative experience required to reach each level.
// Index 0 is level 1.
type XPTable []int

// Threshold returns the experience needed to reach level. Levels outside
// the table are unreachable.
func (t XPTable) Threshold(level int) int {
	if level < 1 {
		return 0
	}
	if level > len(t) {
		return maxThreshold
	}
	return t[level-1]
}

// LevelFor returns the level a total of xp reaches.
func (t XPTable) LevelFor(xp int) int {
	level := 0
	for i, need := range t {
		if xp < need {
			break
		}
		level = i + 1
	}
	return level
}
