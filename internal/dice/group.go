package dice

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDieNotFound is returned when removing a die that is not in the pool.
var ErrDieNotFound = errors.New("die not found in pool")

// Group is a composite dice pool. Membership is by die identity: the same
// *Die inserted twice is two members, and Remove deletes exactly one of them.
type Group struct {
	dice []*Die
}

// NewGroup creates a pool holding the given dice.
func NewGroup(dice ...*Die) *Group {
	g := &Group{dice: make([]*Die, 0, len(dice))}
	g.dice = append(g.dice, dice...)
	return g
}

// Of builds a pool of n fresh dice with the given size.
func Of(n, size int) *Group {
	g := &Group{dice: make([]*Die, 0, n)}
	for range n {
		g.dice = append(g.dice, New(size))
	}
	return g
}

// Roll sums the critical-aware roll of every member die.
func (g *Group) Roll(src Source, critical bool) int {
	total := 0
	for _, d := range g.dice {
		total += d.Roll(src, critical)
	}
	return total
}

// AddDie inserts a single die.
func (g *Group) AddDie(d *Die) {
	g.dice = append(g.dice, d)
}

// AddDice inserts every die of other. The dice are shared, not copied, so
// RemoveDice(other) later removes exactly these instances.
func (g *Group) AddDice(other *Group) {
	g.dice = append(g.dice, other.dice...)
}

// Remove deletes one occurrence of the exact die instance d.
func (g *Group) Remove(d *Die) error {
	for i, member := range g.dice {
		if member == d {
			g.dice = append(g.dice[:i], g.dice[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("removing %s: %w", d, ErrDieNotFound)
}

// RemoveDice removes every die of other. The pool is left untouched when
// any member is missing.
func (g *Group) RemoveDice(other *Group) error {
	kept := make([]*Die, len(g.dice))
	copy(kept, g.dice)
	for _, d := range other.dice {
		idx := -1
		for i, member := range kept {
			if member == d {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("removing %s: %w", d, ErrDieNotFound)
		}
		kept = append(kept[:idx], kept[idx+1:]...)
	}
	g.dice = kept
	return nil
}

// Dice returns a copy of the member dice.
func (g *Group) Dice() []*Die {
	out := make([]*Die, len(g.dice))
	copy(out, g.dice)
	return out
}

// Len returns the number of member dice.
func (g *Group) Len() int { return len(g.dice) }

// Contains reports whether the exact instance d is a member.
func (g *Group) Contains(d *Die) bool {
	for _, member := range g.dice {
		if member == d {
			return true
		}
	}
	return false
}

// String renders the pool bucketed by size in insertion order, e.g. "2d6 and 1d8".
func (g *Group) String() string {
	if len(g.dice) == 0 {
		return "0"
	}
	order := make([]int, 0, 4)
	counts := make(map[int]int, 4)
	for _, d := range g.dice {
		if _, seen := counts[d.size]; !seen {
			order = append(order, d.size)
		}
		counts[d.size]++
	}
	parts := make([]string, 0, len(order))
	for _, size := range order {
		parts = append(parts, fmt.Sprintf("%dd%d", counts[size], size))
	}
	return strings.Join(parts, " and ")
}
