// Package unit builds runtime unit instances from catalog definitions:
// fresh roster members with their default gear claimed from the inventory,
// battle-ready deployments of existing roster members, and enemy waves
// scaled for the current NG+ cycle.
package unit

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/srw-lite/engine/internal/data"
	"github.com/srw-lite/engine/internal/model"
	"github.com/srw-lite/engine/internal/position"
	"github.com/srw-lite/engine/internal/stats"
)

// Factory assembles unit instances. Stateless apart from its position
// source.
type Factory struct {
	cat   *data.Catalog
	stats *stats.Engine
	pos   position.Source
}

// NewFactory returns a Factory over the given catalog, stat engine and
// position source.
func NewFactory(cat *data.Catalog, eng *stats.Engine, pos position.Source) *Factory {
	return &Factory{cat: cat, stats: eng, pos: pos}
}

// NewPlayerUnit creates a fresh level-1 roster member from its definition
// and auto-equips its default gear from the inventory. For each default
// slot the first owned, unclaimed instance of the wanted item is taken;
// claimed tracks instance ids already bound by earlier units of the same
// roster build.
func (f *Factory) NewPlayerUnit(defID string, inv []model.EquipmentInstance, claimed map[string]bool) (model.UnitInstance, error) {
	def, ok := f.cat.Unit(defID)
	if !ok {
		return model.UnitInstance{}, fmt.Errorf("unknown unit definition %q", defID)
	}

	u := model.UnitInstance{
		ID:           "player-" + uuid.NewString(),
		DefinitionID: def.ID,
		Name:         def.Name,
		PilotName:    def.PilotName,
		Level:        1,
		XPToNext:     data.XPBase,
		Base:         def.Base,
		IsPlayer:     true,
		Equipped:     make(map[model.SlotType]string),
	}

	for slot, itemDefID := range def.InitialGear {
		if inst, ok := claimInstance(inv, itemDefID, claimed); ok {
			u.Equipped[slot] = inst.InstanceID
			claimed[inst.InstanceID] = true
		}
	}

	u.Effective = f.stats.EffectiveStats(u.Base, u.Equipped, inv)
	u.HP = u.Effective.HP
	u.EN = u.Effective.EN
	u.SP = u.Effective.SP
	return u, nil
}

// DeployPlayer projects a roster member into a battle unit: pools refilled,
// transient combat state cleared, a fresh map position assigned.
func (f *Factory) DeployPlayer(roster model.UnitInstance, inv []model.EquipmentInstance) model.UnitInstance {
	u := roster.Clone()
	u.Effective = f.stats.EffectiveStats(u.Base, u.Equipped, inv)
	u.HP = u.Effective.HP
	u.EN = u.Effective.EN
	u.SP = u.Effective.SP
	u.ActiveEffect = model.EffectNone
	u.HasActed = false
	u.Pos = f.pos.Place(true)
	u.Terrain = position.TerrainAt(u.Pos)
	return u
}

// NewEnemy creates a battle-ready enemy from its definition, with base
// stats scaled for the NG+ cycle. Default gear is folded straight into the
// effective stats; enemies own no inventory.
func (f *Factory) NewEnemy(defID string, cycle int) (model.UnitInstance, error) {
	def, ok := f.cat.Unit(defID)
	if !ok {
		return model.UnitInstance{}, fmt.Errorf("unknown unit definition %q", defID)
	}

	base := stats.ScaleForCycle(def.Base, cycle)
	eff := base
	for _, itemDefID := range def.InitialGear {
		if item, ok := f.cat.Item(itemDefID); ok {
			eff = eff.Add(item.BoostAtLevel(1))
		}
	}

	u := model.UnitInstance{
		ID:           "enemy-" + uuid.NewString(),
		DefinitionID: def.ID,
		Name:         def.Name,
		PilotName:    def.PilotName,
		Level:        1,
		XPToNext:     data.XPBase,
		Base:         base,
		Effective:    eff,
		HP:           eff.HP,
		EN:           eff.EN,
		SP:           eff.SP,
	}
	u.Pos = f.pos.Place(false)
	u.Terrain = position.TerrainAt(u.Pos)
	return u, nil
}

// Reposition assigns a unit a fresh map position in its faction's zone and
// refreshes its terrain. Called at the start of each new turn.
func (f *Factory) Reposition(u *model.UnitInstance) {
	u.Pos = f.pos.Place(u.IsPlayer)
	u.Terrain = position.TerrainAt(u.Pos)
}

func claimInstance(inv []model.EquipmentInstance, defID string, claimed map[string]bool) (model.EquipmentInstance, bool) {
	for _, it := range inv {
		if it.DefinitionID == defID && !claimed[it.InstanceID] {
			return it, true
		}
	}
	return model.EquipmentInstance{}, false
}
