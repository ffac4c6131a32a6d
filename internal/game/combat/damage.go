package combat

import (
	"log/slog"

	"github.com/udisondev/gugon/internal/dice"
	"github.com/udisondev/gugon/internal/model"
)

var d20 = dice.New(dice.D20)

// ReceiveDamage runs raw damage through armour, resistance and temporary
// health, and returns how much health was actually lost.
func (c *Combatant) ReceiveDamage(raw int) int {
	dmg := max(0, raw-c.attrs.Get(model.StatArmour))
	if dmg == 0 {
		return 0
	}
	if c.attrs.Resistant() {
		dmg /= 2
	}

	temp := c.attrs.Get(model.StatTemporaryHealth) - dmg
	if temp >= 0 {
		c.attrs.Set(model.StatTemporaryHealth, temp)
		return 0
	}
	c.attrs.Set(model.StatTemporaryHealth, 0)

	overflow := -temp
	before := c.attrs.Get(model.StatHealth)
	after := c.attrs.Add(model.StatHealth, -overflow)

	slog.Debug("damage received",
		"combatant", c.id,
		"raw", raw,
		"health_lost", before-after,
		"health", after)

	if after <= 0 && c.alive {
		c.die()
	}
	return before - after
}

// DealDamage rolls damage against target and takes the target's biteback
// exactly once.
func (c *Combatant) DealDamage(target *Combatant, critical bool) DamageReport {
	roll := c.attrs.DamageDice().Roll(c.src, critical)
	bonus := c.attrs.Get(model.StatDamage)

	dealt := target.ReceiveDamage(roll + bonus)
	received := c.ReceiveDamage(target.attrs.Get(model.StatBiteback))

	return DamageReport{
		Dealt: DealtDamage{
			DamageRoll:    roll,
			DamageBonus:   bonus,
			TotalReceived: dealt,
		},
		Received: received,
	}
}

// MakeAttack rolls a d20 against the target's defence and deals damage on
// a hit. A roll at or above crit_range is critical.
func (c *Combatant) MakeAttack(target *Combatant) AttackReport {
	roll := d20.Roll(c.src, false)
	bonus := c.attrs.Get(model.StatAttack)

	r := AttackReport{
		IsCrit:      roll >= c.attrs.Get(model.StatCritRange),
		IsHit:       roll+bonus >= target.attrs.Get(model.StatDefence),
		Roll:        roll,
		AttackBonus: bonus,
	}
	if r.IsHit {
		r.Damage = c.DealDamage(target, r.IsCrit)
	}
	return r
}

// AttackAction attacks attack_number times and returns every attack in order.
func (c *Combatant) AttackAction(target *Combatant) []AttackReport {
	n := c.attrs.Get(model.StatAttackNumber)
	reports := make([]AttackReport, 0, max(n, 0))
	for range n {
		reports = append(reports, c.MakeAttack(target))
	}
	return reports
}

// PassiveDamage hits target with the combatant's passive_damage. It reports
// false when there is no aura to apply.
func (c *Combatant) PassiveDamage(target *Combatant) (PassiveDamageReport, bool) {
	raw := c.attrs.Get(model.StatPassiveDamage)
	if raw <= 0 || !c.alive || !target.alive {
		return PassiveDamageReport{}, false
	}
	return PassiveDamageReport{
		Source:   c.name,
		Target:   target.name,
		Raw:      raw,
		Received: target.ReceiveDamage(raw),
	}, true
}
