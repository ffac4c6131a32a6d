package data

import "github.com/udisondev/gugon/internal/game/progression"

// MaxLevel is the highest class level.
const MaxLevel = 20

// ExperienceTable holds cumulative XP required to reach each level.
// Index 0 is level 1, which needs no experience.
var ExperienceTable = progression.XPTable{
	0,      // 1
	300,    // 2
	900,    // 3
	2700,   // 4
	6500,   // 5
	14000,  // 6
	23000,  // 7
	34000,  // 8
	48000,  // 9
	64000,  // 10
	85000,  // 11
	100000, // 12
	120000, // 13
	140000, // 14
	165000, // 15
	195000, // 16
	225000, // 17
	265000, // 18
	305000, // 19
	355000, // 20
}
