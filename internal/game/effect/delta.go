package effect

import (
	"fmt"

	"github.com/udisondev/gugon/internal/dice"
	"github.com/udisondev/gugon/internal/model"
)

type deltaKind int8

const (
	deltaFlat deltaKind = iota // literal number
	deltaRoll                  // dice expression, resolved once at apply time
	deltaDie                   // one die inserted into the damage dice pool
	deltaDice                  // a dice group inserted into the damage dice pool
)

// Delta is one declared (stat, change) pair of a status effect.
type Delta struct {
	stat  model.Stat
	kind  deltaKind
	value int
	expr  dice.Expr
	die   *dice.Die
	group *dice.Group
}

// Flat adds a literal amount to a scalar stat.
func Flat(stat model.Stat, amount int) Delta {
	return Delta{stat: stat, kind: deltaFlat, value: amount}
}

// Roll adds a random amount to a scalar stat. The expression is rolled once
// when the effect is applied and that exact value is subtracted on removal.
func Roll(stat model.Stat, expr dice.Expr) Delta {
	return Delta{stat: stat, kind: deltaRoll, expr: expr}
}

// AddDie inserts d into the damage dice pool.
func AddDie(d *dice.Die) Delta {
	return Delta{stat: model.StatDamageDice, kind: deltaDie, die: d}
}

// AddDice inserts every die of g into the damage dice pool.
func AddDice(g *dice.Group) Delta {
	return Delta{stat: model.StatDamageDice, kind: deltaDice, group: g}
}

// ParseDelta builds a delta from data-file text. Damage dice values become
// structural insertions, other dice expressions become apply-time rolls and
// plain integers become literal amounts. Every call creates fresh dice.
func ParseDelta(stat, value string) (Delta, error) {
	s, err := model.ParseStat(stat)
	if err != nil {
		return Delta{}, err
	}
	expr, err := dice.Parse(value)
	if err != nil {
		return Delta{}, fmt.Errorf("stat %s: %w", stat, err)
	}

	if s == model.StatDamageDice {
		if expr.IsConstant() || expr.Modifier != 0 {
			return Delta{}, fmt.Errorf("stat %s: expected plain dice, got %q", stat, value)
		}
		if expr.Count == 1 {
			return AddDie(dice.New(expr.Size)), nil
		}
		return AddDice(expr.Group()), nil
	}

	if expr.IsConstant() {
		return Flat(s, expr.Modifier), nil
	}
	return Roll(s, expr), nil
}

// Stat returns the touched stat.
func (d Delta) Stat() model.Stat { return d.stat }

// String renders the declared (unresolved) change.
func (d Delta) String() string {
	switch d.kind {
	case deltaRoll:
		return fmt.Sprintf("%s %s", d.stat, d.expr)
	case deltaDie:
		return fmt.Sprintf("%s +%s", d.stat, d.die)
	case deltaDice:
		return fmt.Sprintf("%s +%s", d.stat, d.group)
	default:
		return fmt.Sprintf("%s %+d", d.stat, d.value)
	}
}

// Change is a resolved delta: the exact value that was applied and must be
// reversed. Pool changes carry the inserted object instead of an amount.
//
// A revert gives back only what its own change moved. Health lost to the
// ceiling while other effects were up stays lost: at 20/20, applying
// max_health +5 then health +5 and removing the max_health effect first
// leaves 15/20. Health never ends above where it started.
type Change struct {
	Stat   model.Stat
	Amount int
	Die    *dice.Die
	Dice   *dice.Group

	// moved is how far the ledger actually moved after clamping.
	moved int
}

// resolve applies d to attrs and returns what was actually applied.
func (d Delta) resolve(attrs *model.Attributes, src dice.Source) Change {
	switch d.kind {
	case deltaDie:
		attrs.DamageDice().AddDie(d.die)
		return Change{Stat: d.stat, Die: d.die}
	case deltaDice:
		attrs.DamageDice().AddDice(d.group)
		return Change{Stat: d.stat, Dice: d.group}
	case deltaRoll:
		amount := d.expr.Roll(src)
		return Change{Stat: d.stat, Amount: amount, moved: shift(attrs, d.stat, amount)}
	default:
		return Change{Stat: d.stat, Amount: d.value, moved: shift(attrs, d.stat, d.value)}
	}
}

// revert undoes a change recorded by resolve.
func (c Change) revert(attrs *model.Attributes) error {
	switch {
	case c.Die != nil:
		return attrs.DamageDice().Remove(c.Die)
	case c.Dice != nil:
		return attrs.DamageDice().RemoveDice(c.Dice)
	case c.Stat == model.StatTemporaryHealth:
		// Absorbed damage already ate into it; subtracting would go negative.
		attrs.Set(model.StatTemporaryHealth, 0)
		return nil
	default:
		attrs.Add(c.Stat, -c.moved)
		return nil
	}
}

// shift adds amount to stat and returns the distance actually moved.
func shift(attrs *model.Attributes, stat model.Stat, amount int) int {
	before := attrs.Get(stat)
	return attrs.Add(stat, amount) - before
}
