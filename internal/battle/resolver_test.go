package battle

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srw-lite/engine/internal/data"
	"github.com/srw-lite/engine/internal/model"
)

func combatants() (attacker, defender *model.UnitInstance) {
	attacker = &model.UnitInstance{
		ID: "a", Name: "Gundam", IsPlayer: true,
		Effective: model.Stats{HP: 10000, Attack: 2000, Defense: 1500},
		HP:        10000,
	}
	defender = &model.UnitInstance{
		ID: "d", Name: "Zaku II",
		Effective: model.Stats{HP: 8000, Attack: 1700, Defense: 1100},
		HP:        8000,
	}
	return attacker, defender
}

func TestResolver_GuaranteedEvade(t *testing.T) {
	r := NewResolver(rand.New(rand.NewSource(1)))

	for i := 0; i < 200; i++ {
		attacker, defender := combatants()
		attacker.ActiveEffect = model.EffectGuaranteedHit
		defender.ActiveEffect = model.EffectGuaranteedEvade

		out := r.Resolve(attacker, defender, 0)
		require.True(t, out.Missed)
		require.Zero(t, out.Damage)
		require.Zero(t, out.XPGained)
		// Evade preempts the attack before the attacker's effect matters.
		require.False(t, out.AttackerEffectConsumed)
		require.True(t, out.DefenderEffectConsumed)
		require.Equal(t, defender.HP, out.DefenderHP)
	}
}

func TestResolver_GuaranteedHit(t *testing.T) {
	r := NewResolver(rand.New(rand.NewSource(2)))

	for i := 0; i < 200; i++ {
		attacker, defender := combatants()
		attacker.ActiveEffect = model.EffectGuaranteedHit

		out := r.Resolve(attacker, defender, 0)
		require.False(t, out.Missed)
		require.True(t, out.AttackerEffectConsumed)
		require.Positive(t, out.Damage)
	}
}

func TestResolver_DamageBounds(t *testing.T) {
	r := NewResolver(rand.New(rand.NewSource(3)))

	for i := 0; i < 500; i++ {
		attacker, defender := combatants()
		attacker.ActiveEffect = model.EffectGuaranteedHit

		out := r.Resolve(attacker, defender, 0)
		// Base damage 2000-1100=900, variance [0.8,1.2], crit x1.5.
		require.GreaterOrEqual(t, out.Damage, 720)
		require.LessOrEqual(t, out.Damage, 1620)
		if !out.Critical {
			require.LessOrEqual(t, out.Damage, 1080)
		}
		require.Equal(t, defender.HP-out.Damage, out.DefenderHP)
		require.Equal(t, data.XPForAttack, out.XPGained)
	}
}

func TestResolver_TerrainBonus(t *testing.T) {
	r := NewResolver(rand.New(rand.NewSource(4)))

	for i := 0; i < 500; i++ {
		attacker, defender := combatants()
		attacker.ActiveEffect = model.EffectGuaranteedHit

		// +20% defense: 2000 - 1100*1.2 = 680 base damage.
		out := r.Resolve(attacker, defender, 0.20)
		require.LessOrEqual(t, out.Damage, 1224)
		if !out.Critical {
			require.GreaterOrEqual(t, out.Damage, 544)
		}
	}
}

func TestResolver_ChipDamageFloor(t *testing.T) {
	r := NewResolver(rand.New(rand.NewSource(5)))

	for i := 0; i < 200; i++ {
		attacker, defender := combatants()
		attacker.ActiveEffect = model.EffectGuaranteedHit
		defender.Effective.Defense = 99999

		// Damage never drops below 10% of effective attack.
		out := r.Resolve(attacker, defender, 0)
		require.GreaterOrEqual(t, out.Damage, 160)
	}
}

func TestResolver_DoubleDamage(t *testing.T) {
	r := NewResolver(rand.New(rand.NewSource(6)))

	consumed := false
	for i := 0; i < 200; i++ {
		attacker, defender := combatants()
		attacker.ActiveEffect = model.EffectDoubleDamage

		out := r.Resolve(attacker, defender, 0)
		if out.Missed {
			// A miss leaves the effect armed for the next attack.
			require.False(t, out.AttackerEffectConsumed)
			continue
		}
		consumed = true
		require.True(t, out.AttackerEffectConsumed)
		require.GreaterOrEqual(t, out.Damage, 1440)
	}
	require.True(t, consumed)
}

func TestResolver_Defeat(t *testing.T) {
	r := NewResolver(rand.New(rand.NewSource(7)))

	attacker, defender := combatants()
	attacker.ActiveEffect = model.EffectGuaranteedHit
	defender.HP = 1

	out := r.Resolve(attacker, defender, 0)
	require.True(t, out.DefenderDefeated)
	assert.Zero(t, out.DefenderHP)
	assert.Equal(t, data.XPForAttack+data.XPForDefeat, out.XPGained)
	// The resolver never mutates the units themselves.
	assert.Equal(t, 1, defender.HP)
}

func TestResolver_NoXPForEnemies(t *testing.T) {
	r := NewResolver(rand.New(rand.NewSource(8)))

	attacker, defender := combatants()
	attacker.IsPlayer = false
	attacker.ActiveEffect = model.EffectGuaranteedHit
	defender.HP = 1

	out := r.Resolve(attacker, defender, 0)
	require.True(t, out.DefenderDefeated)
	assert.Zero(t, out.XPGained)
}
