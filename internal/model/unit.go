package model

// SpiritCommand is a costed ability a pilot can activate for a one-shot
// combat effect.
type SpiritCommand struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Cost        int          `json:"cost"`
	Effect      SpiritEffect `json:"effect"`
	Description string       `json:"description"`
}

// UnitDefinition is the immutable template for a mobile suit. Never mutated
// at runtime; instances derive from it.
type UnitDefinition struct {
	ID             string              `json:"id"`
	Name           string              `json:"name"`
	PilotName      string              `json:"pilotName"`
	Base           Stats               `json:"base"`
	SpiritCommands []SpiritCommand     `json:"spiritCommands"`
	InitialGear    map[SlotType]string `json:"initialGear,omitempty"` // slot -> EquipmentDefinition ID
}

// SpiritCommandByID returns the named spirit command, if the suit has it.
func (d UnitDefinition) SpiritCommandByID(id string) (SpiritCommand, bool) {
	for _, sc := range d.SpiritCommands {
		if sc.ID == id {
			return sc, true
		}
	}
	return SpiritCommand{}, false
}

// EquipmentDefinition is the immutable template for an equippable item.
type EquipmentDefinition struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Slot            SlotType `json:"slot"`
	BaseBoost       Stats    `json:"baseBoost"`    // boost at level 1
	PerLevelBoost   Stats    `json:"perLevel"`     // additive per level beyond 1
	MaxLevel        int      `json:"maxLevel"`
	BaseUpgradeCost int      `json:"baseUpgradeCost"`
	UpgradeCostStep int      `json:"upgradeCostStep"` // added per level already gained
	Description     string   `json:"description"`
}

// BoostAtLevel returns the total stat boost the item grants at the given
// upgrade level.
func (d EquipmentDefinition) BoostAtLevel(level int) Stats {
	boost := d.BaseBoost
	if level > 1 {
		boost = boost.Add(d.PerLevelBoost.Scale(level - 1))
	}
	return boost
}

// UpgradeCost returns the credit cost of the next upgrade from the given
// level. Cost grows linearly with levels already gained.
func (d EquipmentDefinition) UpgradeCost(level int) int {
	return d.BaseUpgradeCost + d.UpgradeCostStep*(level-1)
}

// EquipmentInstance is one owned item. Created once per game (or NG+ reset)
// and only its level ever changes.
type EquipmentInstance struct {
	InstanceID   string `json:"instanceId"`
	DefinitionID string `json:"definitionId"`
	Level        int    `json:"level"`
}

// PlayerMeta is the persistent out-of-battle player state.
type PlayerMeta struct {
	Credits   int                 `json:"credits"`
	Inventory []EquipmentInstance `json:"inventory"`
}

// InventoryItem returns the owned instance with the given id.
func (m PlayerMeta) InventoryItem(instanceID string) (EquipmentInstance, bool) {
	for _, it := range m.Inventory {
		if it.InstanceID == instanceID {
			return it, true
		}
	}
	return EquipmentInstance{}, false
}

// Position is a percentage map coordinate used for flavor and terrain
// lookup only.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// UnitInstance is a mutable combatant. The same shape exists in two
// contexts: the roster copy (source of truth for progression and equipment)
// and the in-battle copy (a disposable projection carrying transient fields
// such as HasActed).
type UnitInstance struct {
	ID           string `json:"id"`
	DefinitionID string `json:"definitionId"`
	Name         string `json:"name"`
	PilotName    string `json:"pilotName"`

	Level    int `json:"level"`
	XP       int `json:"currentXp"`
	XPToNext int `json:"xpToNextLevel"`

	Base      Stats `json:"base"`      // definition stats + level gains (+ NG+ scaling for enemies)
	Effective Stats `json:"effective"` // base + equipped boosts, never cached stale

	HP int `json:"currentHp"`
	EN int `json:"currentEn"`
	SP int `json:"currentSp"`

	ActiveEffect SpiritEffect `json:"activeEffect,omitempty"`
	HasActed     bool         `json:"hasActed"`
	IsPlayer     bool         `json:"isPlayer"`

	Pos     Position `json:"pos"`
	Terrain Terrain  `json:"terrain"`

	Equipped map[SlotType]string `json:"equipped,omitempty"` // slot -> EquipmentInstance ID
}

// Alive reports whether the unit can still act and be targeted. Defeated
// units stay in their list with zero HP.
func (u *UnitInstance) Alive() bool {
	return u.HP > 0
}

// Clone returns a deep copy, including the equipped-slot map.
func (u UnitInstance) Clone() UnitInstance {
	c := u
	if u.Equipped != nil {
		c.Equipped = make(map[SlotType]string, len(u.Equipped))
		for k, v := range u.Equipped {
			c.Equipped[k] = v
		}
	}
	return c
}

// HasEquipped reports whether any slot of the unit references the given
// equipment instance.
func (u *UnitInstance) HasEquipped(instanceID string) bool {
	for _, id := range u.Equipped {
		if id == instanceID {
			return true
		}
	}
	return false
}

// FindUnit returns a pointer into units for the given id, or nil.
func FindUnit(units []UnitInstance, id string) *UnitInstance {
	for i := range units {
		if units[i].ID == id {
			return &units[i]
		}
	}
	return nil
}

// CountAlive returns the number of living units in the list.
func CountAlive(units []UnitInstance) int {
	n := 0
	for i := range units {
		if units[i].Alive() {
			n++
		}
	}
	return n
}

// TerrainDefinition describes one terrain zone and its defensive modifier.
type TerrainDefinition struct {
	ID           Terrain `json:"id"`
	Name         string  `json:"name"`
	DefenseBonus float64 `json:"defenseBonus"` // 0.2 means +20% effective defense
	Description  string  `json:"description"`
}

// ScenarioDefinition is one campaign stage. Enemy units are referenced by
// definition id and instantiated fresh at deployment.
type ScenarioDefinition struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	EnemyDefIDs []string `json:"enemyDefIds"`
	Intro       string   `json:"intro,omitempty"`
}
