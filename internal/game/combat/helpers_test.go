package combat

import (
	"github.com/udisondev/gugon/internal/dice"
	"github.com/udisondev/gugon/internal/model"
)

// newFighter creates a registered-looking combatant with a 1d8 weapon.
func newFighter(id uint32, name string, stats model.BaseStats, src dice.Source) *Combatant {
	if stats.MaxHealth == 0 {
		stats.MaxHealth = 20
	}
	if stats.DamageDice == nil {
		stats.DamageDice = dice.NewGroup(dice.New(8))
	}
	c := New(Config{Name: name, Kind: KindMonster, Stats: stats}, src)
	c.AssignID(id)
	return c
}
