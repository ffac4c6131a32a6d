package effect

import "fmt"

// Definition is the data-file form of a status effect.
type Definition struct {
	Name      string            `yaml:"name"`
	Rounds    int               `yaml:"rounds"`
	Permanent bool              `yaml:"permanent"`
	Deltas    []DeltaDefinition `yaml:"deltas"`
	Mutation  string            `yaml:"mutation"`
	Params    map[string]string `yaml:"params"`
}

// DeltaDefinition is one (stat, value) pair. Value is an integer or a dice
// expression like "1d4".
type DeltaDefinition struct {
	Stat  string `yaml:"stat"`
	Value string `yaml:"value"`
}

// Build creates a fresh status effect. Each call creates new dice, so two
// effects built from one definition never share pool entries.
func (d Definition) Build() (*StatusEffect, error) {
	duration := Rounds(d.Rounds)
	if d.Permanent {
		duration = Permanent
	}

	if d.Mutation != "" {
		if len(d.Deltas) > 0 {
			return nil, fmt.Errorf("status effect %s: mutation and deltas are exclusive", d.Name)
		}
		m, err := CreateMutation(d.Mutation, d.Params)
		if err != nil {
			return nil, fmt.Errorf("status effect %s: %w", d.Name, err)
		}
		return NewAggregate(d.Name, duration, m), nil
	}

	deltas := make([]Delta, 0, len(d.Deltas))
	for _, dd := range d.Deltas {
		delta, err := ParseDelta(dd.Stat, dd.Value)
		if err != nil {
			return nil, fmt.Errorf("status effect %s: %w", d.Name, err)
		}
		deltas = append(deltas, delta)
	}
	return New(d.Name, duration, deltas...), nil
}
