// Package data ships the built-in reference tables: spirit commands,
// terrain, equipment, mobile suits, the campaign scenario list and the
// balance constants. All of it is read-only; the engine consumes it through
// a Catalog and never mutates a definition.
package data

import "github.com/srw-lite/engine/internal/model"

// Balance constants. Tuning values shared by the stat engine, resolver and
// session.
const (
	XPForAttack  = 10  // flat XP for landing a hit (player units only)
	XPForDefeat  = 30  // bonus XP for the defeating hit
	XPBase       = 100 // xpToNextLevel = XPBase * level
	SPRegenTurn  = 5   // SP restored to living player units each new turn
	BaseMissRate = 0.10
	CritRate     = 0.15
	CritScale    = 1.5
	ChipRate     = 0.1 // damage floor as a fraction of effective attack

	InitialCredits = 10000
	CreditsPerKill = 750

	// NG+ scaling per completed cycle.
	NGStatStep   = 0.10 // enemy hp/attack/defense
	NGCreditStep = 0.05 // kill rewards
)

// LevelUpGains are the fixed base-stat increases granted per level.
var LevelUpGains = model.Stats{
	HP: 500, EN: 10, SP: 5, Attack: 50, Defense: 30, Mobility: 5,
}

// Catalog bundles every definition table with id-keyed lookup maps.
type Catalog struct {
	Units     map[string]model.UnitDefinition
	Equipment map[string]model.EquipmentDefinition
	Terrain   map[model.Terrain]model.TerrainDefinition
	Scenarios []model.ScenarioDefinition

	// PlayerUnitIDs are the suits deployed into a fresh roster, in order.
	PlayerUnitIDs []string
	// StartingGearIDs are equipment definition ids granted to a fresh
	// inventory before the per-suit default equipment is added.
	StartingGearIDs []string
}

// Default returns the catalog of built-in definitions.
func Default() *Catalog {
	c := &Catalog{
		Units:     make(map[string]model.UnitDefinition, len(unitDefs)),
		Equipment: make(map[string]model.EquipmentDefinition, len(equipmentDefs)),
		Terrain:   make(map[model.Terrain]model.TerrainDefinition, len(terrainDefs)),
		Scenarios: scenarioDefs,
		PlayerUnitIDs: []string{
			"rx-78-2-gundam", "fa-010s-fazz", "msn-00100-hyakushiki",
		},
		StartingGearIDs: []string{
			"eq_standard_booster", "eq_beam_rifle_std", "eq_standard_armor",
		},
	}
	for _, d := range unitDefs {
		c.Units[d.ID] = d
	}
	for _, d := range equipmentDefs {
		c.Equipment[d.ID] = d
	}
	for _, d := range terrainDefs {
		c.Terrain[d.ID] = d
	}
	return c
}

// Unit returns the suit definition for the given id.
func (c *Catalog) Unit(id string) (model.UnitDefinition, bool) {
	d, ok := c.Units[id]
	return d, ok
}

// Item returns the equipment definition for the given id.
func (c *Catalog) Item(id string) (model.EquipmentDefinition, bool) {
	d, ok := c.Equipment[id]
	return d, ok
}

// DefenseBonus returns the defensive modifier of the given terrain, zero for
// unknown terrain.
func (c *Catalog) DefenseBonus(t model.Terrain) float64 {
	if d, ok := c.Terrain[t]; ok {
		return d.DefenseBonus
	}
	return 0
}

// Scenario returns the scenario at the given cursor position.
func (c *Catalog) Scenario(index int) (model.ScenarioDefinition, bool) {
	if index < 0 || index >= len(c.Scenarios) {
		return model.ScenarioDefinition{}, false
	}
	return c.Scenarios[index], true
}
