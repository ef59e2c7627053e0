// Package stats implements the progression engine: effective stat
// derivation from base stats and equipped gear, pool reconciliation, XP and
// level-ups, and the NG+ enemy scaling curve.
package stats

import (
	"math"

	"github.com/srw-lite/engine/internal/data"
	"github.com/srw-lite/engine/internal/model"
)

// Engine derives runtime stats from catalog definitions. Stateless; safe to
// share.
type Engine struct {
	cat *data.Catalog
}

// NewEngine returns an Engine over the given catalog.
func NewEngine(cat *data.Catalog) *Engine {
	return &Engine{cat: cat}
}

// EffectiveStats returns base plus the boost of every equipped item, each at
// its instance level. Equipped references that resolve to no owned instance
// or no known definition contribute nothing.
func (e *Engine) EffectiveStats(base model.Stats, equipped map[model.SlotType]string, inv []model.EquipmentInstance) model.Stats {
	eff := base
	for _, instID := range equipped {
		inst, ok := findInstance(inv, instID)
		if !ok {
			continue
		}
		def, ok := e.cat.Item(inst.DefinitionID)
		if !ok {
			continue
		}
		eff = eff.Add(def.BoostAtLevel(inst.Level))
	}
	return eff
}

// Recalculate refreshes u.Effective from its base stats and equipment, then
// reconciles the HP/EN/SP pools. A raised maximum grants the difference to
// the current pool; pools are always clamped to [0, max].
func (e *Engine) Recalculate(u *model.UnitInstance, inv []model.EquipmentInstance) {
	prev := u.Effective
	u.Effective = e.EffectiveStats(u.Base, u.Equipped, inv)

	u.HP = reconcilePool(u.HP, prev.HP, u.Effective.HP)
	u.EN = reconcilePool(u.EN, prev.EN, u.Effective.EN)
	u.SP = reconcilePool(u.SP, prev.SP, u.Effective.SP)
}

// GrantXP adds XP to a unit and applies every level-up it affords, raising
// base stats by the fixed gains and refilling all pools to the new maxima.
// Returns the number of levels gained.
func (e *Engine) GrantXP(u *model.UnitInstance, amount int, inv []model.EquipmentInstance) int {
	if amount <= 0 {
		return 0
	}
	u.XP += amount

	levels := 0
	for u.XP >= u.XPToNext {
		u.XP -= u.XPToNext
		u.Level++
		u.XPToNext = data.XPBase * u.Level
		u.Base = u.Base.Add(data.LevelUpGains)
		levels++
	}
	if levels == 0 {
		return 0
	}

	u.Effective = e.EffectiveStats(u.Base, u.Equipped, inv)
	u.HP = u.Effective.HP
	u.EN = u.Effective.EN
	u.SP = u.Effective.SP
	return levels
}

// ScaleForCycle applies the NG+ difficulty curve to enemy base stats:
// HP, attack and defense grow by a fixed step per completed cycle. EN, SP
// and mobility are left untouched.
func ScaleForCycle(base model.Stats, cycle int) model.Stats {
	if cycle <= 0 {
		return base
	}
	f := 1 + data.NGStatStep*float64(cycle)
	base.HP = int(math.Round(float64(base.HP) * f))
	base.Attack = int(math.Round(float64(base.Attack) * f))
	base.Defense = int(math.Round(float64(base.Defense) * f))
	return base
}

// KillReward returns the credits paid for one defeated enemy in the given
// NG+ cycle.
func KillReward(cycle int) int {
	return int(math.Round(data.CreditsPerKill * (1 + data.NGCreditStep*float64(cycle))))
}

func reconcilePool(cur, prevMax, newMax int) int {
	if newMax > prevMax {
		cur += newMax - prevMax
	}
	if cur > newMax {
		cur = newMax
	}
	if cur < 0 {
		cur = 0
	}
	return cur
}

func findInstance(inv []model.EquipmentInstance, id string) (model.EquipmentInstance, bool) {
	for _, it := range inv {
		if it.InstanceID == id {
			return it, true
		}
	}
	return model.EquipmentInstance{}, false
}
