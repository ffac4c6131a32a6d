package effect

import (
	"encoding/json"
	"strconv"

	"github.com/udisondev/gugon/internal/model"
)

// StatusEffectReport describes one application of a status effect.
// The JSON field names are consumed by log/UI collaborators and must not change.
type StatusEffectReport struct {
	Name    string         `json:"name"`
	Effects []EffectChange `json:"effects"`
	Target  string         `json:"target"`
}

// EffectChange is one resolved (stat, value) pair.
type EffectChange struct {
	Stat  model.Stat  `json:"stat"`
	Value ChangeValue `json:"value"`
}

// ChangeValue is a resolved amount, or the dice inserted into a pool.
type ChangeValue struct {
	Amount int
	Dice   string
}

// IsDice reports whether the value is a pool insertion.
func (v ChangeValue) IsDice() bool { return v.Dice != "" }

// MarshalJSON renders amounts as numbers and pool insertions as "1d4" strings.
func (v ChangeValue) MarshalJSON() ([]byte, error) {
	if v.IsDice() {
		return json.Marshal(v.Dice)
	}
	return []byte(strconv.Itoa(v.Amount)), nil
}

// UnmarshalJSON accepts either form.
func (v *ChangeValue) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*v = ChangeValue{Dice: s}
		return nil
	}
	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*v = ChangeValue{Amount: n}
	return nil
}

func (v ChangeValue) String() string {
	if v.IsDice() {
		return v.Dice
	}
	return strconv.Itoa(v.Amount)
}

func (c Change) report() EffectChange {
	switch {
	case c.Die != nil:
		return EffectChange{Stat: c.Stat, Value: ChangeValue{Dice: c.Die.String()}}
	case c.Dice != nil:
		return EffectChange{Stat: c.Stat, Value: ChangeValue{Dice: c.Dice.String()}}
	default:
		return EffectChange{Stat: c.Stat, Value: ChangeValue{Amount: c.Amount}}
	}
}
