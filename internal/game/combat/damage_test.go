package combat

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/gugon/internal/model"
	"github.com/udisondev/gugon/internal/testutil"
)

func TestReceiveDamage(t *testing.T) {
	tests := []struct {
		name       string
		armour     int
		resistance int
		temp       int
		raw        int
		wantLost   int
		wantHealth int
		wantTemp   int
	}{
		{"temp health then health", 2, 0, 5, 10, 3, 17, 0},
		{"fully absorbed by temp", 2, 0, 5, 7, 0, 20, 0},
		{"partially absorbed by temp", 0, 0, 5, 3, 0, 20, 2},
		{"armour blocks all", 5, 0, 0, 4, 0, 20, 0},
		{"resistance halves", 0, 1, 0, 9, 4, 16, 0},
		{"resistance after armour", 1, 1, 0, 9, 4, 16, 0},
		{"negative raw", 0, 0, 0, -5, 0, 20, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newFighter(1, "Paladin", model.BaseStats{Armour: tt.armour}, testutil.MaxSource{})
			c.attrs.Set(model.StatResistance, tt.resistance)
			c.attrs.Set(model.StatTemporaryHealth, tt.temp)

			assert.Equal(t, tt.wantLost, c.ReceiveDamage(tt.raw))
			assert.Equal(t, tt.wantHealth, c.attrs.Get(model.StatHealth))
			assert.Equal(t, tt.wantTemp, c.attrs.Get(model.StatTemporaryHealth))
			assert.True(t, c.IsAlive())
		})
	}
}

func TestReceiveDamage_Death(t *testing.T) {
	c := newFighter(1, "Skeleton", model.BaseStats{MaxHealth: 3}, testutil.MaxSource{})

	assert.Equal(t, 3, c.ReceiveDamage(10))
	assert.Zero(t, c.attrs.Get(model.StatHealth))
	assert.False(t, c.IsAlive())

	// further damage on a corpse changes nothing
	assert.Zero(t, c.ReceiveDamage(10))
	assert.False(t, c.IsAlive())
}

func TestMakeAttack(t *testing.T) {
	tests := []struct {
		name     string
		faces    []int
		wantHit  bool
		wantCrit bool
		wantRoll int
		wantDmg  int
	}{
		{"hit", []int{15, 4}, true, false, 15, 4},
		{"critical hit", []int{20, 3, 5}, true, true, 20, 8},
		{"miss", []int{4}, false, false, 4, 0},
		{"exact defence hits", []int{5, 1}, true, false, 5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := testutil.Faces(t, tt.faces...)
			attacker := newFighter(1, "Paladin", model.BaseStats{Attack: 5}, src)
			target := newFighter(2, "Skeleton", model.BaseStats{MaxHealth: 30, Defence: 10}, src)

			r := attacker.MakeAttack(target)
			assert.Equal(t, tt.wantHit, r.IsHit)
			assert.Equal(t, tt.wantCrit, r.IsCrit)
			assert.Equal(t, tt.wantRoll, r.Roll)
			assert.Equal(t, 5, r.AttackBonus)
			assert.Equal(t, tt.wantDmg, r.Damage.Dealt.DamageRoll)
			assert.Equal(t, tt.wantDmg, r.Damage.Dealt.TotalReceived)
			assert.Equal(t, 30-tt.wantDmg, target.attrs.Get(model.StatHealth))
			assert.Zero(t, src.Remaining())
		})
	}
}

func TestMakeAttack_CritRange(t *testing.T) {
	src := testutil.Faces(t, 19, 1, 1)
	attacker := newFighter(1, "Paladin", model.BaseStats{}, src)
	attacker.attrs.Set(model.StatCritRange, 19)
	target := newFighter(2, "Skeleton", model.BaseStats{Defence: 1}, src)

	r := attacker.MakeAttack(target)
	assert.True(t, r.IsCrit)
	assert.Equal(t, 2, r.Damage.Dealt.DamageRoll)
}

func TestDealDamage_Biteback(t *testing.T) {
	src := testutil.Faces(t, 6)
	attacker := newFighter(1, "Paladin", model.BaseStats{Damage: 2}, src)
	target := newFighter(2, "Skeleton", model.BaseStats{MaxHealth: 30, Armour: 1}, src)
	target.attrs.Set(model.StatBiteback, 4)

	r := attacker.DealDamage(target, false)
	assert.Equal(t, DealtDamage{DamageRoll: 6, DamageBonus: 2, TotalReceived: 7}, r.Dealt)
	assert.Equal(t, 4, r.Received)
	assert.Equal(t, 16, attacker.attrs.Get(model.StatHealth))
	assert.Equal(t, 23, target.attrs.Get(model.StatHealth))
}

func TestDealDamage_NoBiteback(t *testing.T) {
	src := testutil.Faces(t, 1)
	attacker := newFighter(1, "Paladin", model.BaseStats{}, src)
	target := newFighter(2, "Skeleton", model.BaseStats{}, src)

	r := attacker.DealDamage(target, false)
	assert.Zero(t, r.Received)
	assert.Equal(t, 20, attacker.attrs.Get(model.StatHealth))
}

func TestAttackAction_FullSequence(t *testing.T) {
	src := testutil.Faces(t, 15, 2, 3, 18, 5)
	attacker := newFighter(1, "Paladin", model.BaseStats{Attack: 5}, src)
	attacker.attrs.Set(model.StatAttackNumber, 3)
	target := newFighter(2, "Skeleton", model.BaseStats{MaxHealth: 30, Defence: 10}, src)

	reports := attacker.AttackAction(target)
	require.Len(t, reports, 3)
	assert.True(t, reports[0].IsHit)
	assert.False(t, reports[1].IsHit)
	assert.True(t, reports[2].IsHit)
	assert.Equal(t, 30-2-5, target.attrs.Get(model.StatHealth))
}

func TestHeal(t *testing.T) {
	c := newFighter(1, "Paladin", model.BaseStats{}, testutil.MaxSource{})
	c.attrs.Set(model.StatHealth, 10)

	c.Heal(0)
	c.Heal(-4)
	assert.Equal(t, 10, c.attrs.Get(model.StatHealth))

	c.Heal(4)
	assert.Equal(t, 14, c.attrs.Get(model.StatHealth))

	c.Heal(100)
	assert.Equal(t, 20, c.attrs.Get(model.StatHealth))
}

func TestAttackReport_JSON(t *testing.T) {
	r := AttackReport{
		IsHit: true, Roll: 15, AttackBonus: 5,
		Damage: DamageReport{
			Dealt:    DealtDamage{DamageRoll: 4, DamageBonus: 2, TotalReceived: 6},
			Received: 1,
		},
	}
	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"is_hit":true,"is_crit":false,"roll":15,"attack_bonus":5,
		"damage":{"dealt":{"damage_roll":4,"damage_bonus":2,"total_received":6},"received":1}}`, string(b))

	b, err = json.Marshal(newSkillReport("Smite"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Smite","Status Effects":[],"Attacks":[]}`, string(b))
}

func TestPassiveDamage(t *testing.T) {
	src := testutil.MaxSource{}
	aura := newFighter(1, "Paladin", model.BaseStats{}, src)
	enemy := newFighter(2, "Skeleton", model.BaseStats{Armour: 1}, src)

	_, ok := aura.PassiveDamage(enemy)
	assert.False(t, ok)

	aura.attrs.Set(model.StatPassiveDamage, 3)
	r, ok := aura.PassiveDamage(enemy)
	require.True(t, ok)
	assert.Equal(t, PassiveDamageReport{Source: "Paladin", Target: "Skeleton", Raw: 3, Received: 2}, r)
	assert.Equal(t, 18, enemy.attrs.Get(model.StatHealth))
}
