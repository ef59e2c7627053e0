// Package battle resolves single attacks. The resolver is pure with respect
// to game state: it reads both combatants, rolls its dice, and reports the
// outcome without mutating either unit. Applying the outcome is the
// session's job.
package battle

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/srw-lite/engine/internal/data"
	"github.com/srw-lite/engine/internal/model"
)

// Outcome is the full result of one resolved attack.
type Outcome struct {
	Missed   bool
	Critical bool
	Damage   int

	AttackerHP int // attacker HP after the exchange (always unchanged)
	DefenderHP int // defender HP after damage is applied

	// One-shot effect consumption. The caller clears the flagged effects.
	AttackerEffectConsumed bool
	DefenderEffectConsumed bool

	XPGained         int // XP owed to the attacker (player units only)
	DefenderDefeated bool

	Log []string
}

// Resolver rolls attack outcomes. Not safe for concurrent use; the session
// serializes all combat behind its own lock.
type Resolver struct {
	rng *rand.Rand
}

// NewResolver returns a Resolver driven by the given generator.
func NewResolver(rng *rand.Rand) *Resolver {
	return &Resolver{rng: rng}
}

// Resolve works out one attack. Resolution order is fixed: the defender's
// guaranteed evade preempts everything, then the miss roll, then damage with
// terrain, variance, double damage and the critical roll, in that order.
// Both units must be non-nil and alive; the session guarantees this.
func (r *Resolver) Resolve(attacker, defender *model.UnitInstance, terrainBonus float64) Outcome {
	if attacker == nil || defender == nil {
		panic("battle: resolve with nil combatant")
	}

	out := Outcome{
		AttackerHP: attacker.HP,
		DefenderHP: defender.HP,
	}

	if defender.ActiveEffect == model.EffectGuaranteedEvade {
		out.Missed = true
		out.DefenderEffectConsumed = true
		out.Log = append(out.Log, fmt.Sprintf("%s evades the attack completely!", defender.Name))
		return out
	}

	hit := r.rng.Float64() >= data.BaseMissRate
	if attacker.ActiveEffect == model.EffectGuaranteedHit {
		hit = true
		out.AttackerEffectConsumed = true
	}
	if !hit {
		out.Missed = true
		out.Log = append(out.Log, fmt.Sprintf("%s's attack misses %s!", attacker.Name, defender.Name))
		return out
	}

	if attacker.IsPlayer {
		out.XPGained = data.XPForAttack
	}

	defense := float64(defender.Effective.Defense) * (1 + terrainBonus)
	atk := float64(attacker.Effective.Attack)
	dmg := atk - defense
	if chip := atk * data.ChipRate; dmg < chip {
		dmg = chip
	}

	dmg = math.Round(dmg * (0.8 + r.rng.Float64()*0.4))

	if attacker.ActiveEffect == model.EffectDoubleDamage {
		dmg *= 2
		out.AttackerEffectConsumed = true
		out.Log = append(out.Log, fmt.Sprintf("%s unleashes a devastating blow!", attacker.Name))
	}

	if r.rng.Float64() < data.CritRate {
		dmg = math.Round(dmg * data.CritScale)
		out.Critical = true
		out.Log = append(out.Log, "Critical hit!")
	}

	if dmg < 0 {
		dmg = 0
	}
	out.Damage = int(dmg)
	out.DefenderHP = defender.HP - out.Damage
	if out.DefenderHP < 0 {
		out.DefenderHP = 0
	}
	out.Log = append(out.Log, fmt.Sprintf("%s hits %s for %d damage!", attacker.Name, defender.Name, out.Damage))

	if out.DefenderHP == 0 {
		out.DefenderDefeated = true
		if attacker.IsPlayer {
			out.XPGained += data.XPForDefeat
		}
		out.Log = append(out.Log, fmt.Sprintf("%s has been destroyed!", defender.Name))
	}
	return out
}
