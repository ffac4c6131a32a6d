package effect

import (
	"fmt"
	"strconv"
	"strings"
)

// Mutation is an aggregate effect over the host's state. It returns the
// changes to report and the exact undo for them.
type Mutation func(target Host) (changes []Change, undo func() error, err error)

// mutationRegistry maps mutation name to its factory.
var mutationRegistry = map[string]func(params map[string]string) (Mutation, error){}

// RegisterMutation registers a mutation factory by name.
func RegisterMutation(name string, factory func(params map[string]string) (Mutation, error)) {
	mutationRegistry[name] = factory
}

// CreateMutation creates a mutation by name using the registered factory.
func CreateMutation(name string, params map[string]string) (Mutation, error) {
	factory, ok := mutationRegistry[name]
	if !ok {
		return nil, fmt.Errorf("unknown mutation type: %s", name)
	}
	return factory(params)
}

func init() {
	RegisterMutation("aura_master", newAuraMaster)
}

// AuraMaster raises every literal delta of the host's "Aura" passives by
// amount. Removing it lowers them back.
func AuraMaster(amount int) Mutation {
	return func(target Host) ([]Change, func() error, error) {
		var boosted []*StatusEffect
		var changes []Change
		for _, p := range target.Passives() {
			if !strings.Contains(p.Name(), "Aura") {
				continue
			}
			before := len(changes)
			for _, d := range p.deltas {
				if d.kind == deltaFlat {
					changes = append(changes, Change{Stat: d.stat, Amount: amount})
				}
			}
			if len(changes) == before {
				continue
			}
			p.Boost(target, amount)
			boosted = append(boosted, p)
		}

		undo := func() error {
			for _, p := range boosted {
				p.Boost(target, -amount)
			}
			return nil
		}
		return changes, undo, nil
	}
}

func newAuraMaster(params map[string]string) (Mutation, error) {
	amount := 2
	if v, ok := params["by"]; ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("aura_master: parse by=%q: %w", v, err)
		}
		amount = n
	}
	return AuraMaster(amount), nil
}
