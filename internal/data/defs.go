package data

import "github.com/srw-lite/engine/internal/model"

// Spirit commands shared across pilots.
var (
	spiritStrike = model.SpiritCommand{
		ID: "strike", Name: "Strike", Cost: 20,
		Effect:      model.EffectGuaranteedHit,
		Description: "The next attack is guaranteed to hit.",
	}
	spiritAlert = model.SpiritCommand{
		ID: "alert", Name: "Alert", Cost: 15,
		Effect:      model.EffectGuaranteedEvade,
		Description: "The next enemy attack is evaded without fail.",
	}
	spiritValor = model.SpiritCommand{
		ID: "valor", Name: "Valor", Cost: 40,
		Effect:      model.EffectDoubleDamage,
		Description: "The next attack deals double final damage.",
	}
	spiritPressure = model.SpiritCommand{
		ID: "pressure", Name: "Pressure", Cost: 25,
		Effect:      model.EffectGuaranteedHit,
		Description: "Newtype pressure overwhelms the target. (Effect: guaranteed hit.)",
	}
)

var terrainDefs = []model.TerrainDefinition{
	{
		ID: model.TerrainSpace, Name: "Open Space", DefenseBonus: 0,
		Description: "Standard open space. No terrain modifier.",
	},
	{
		ID: model.TerrainAsteroidField, Name: "Asteroid Field", DefenseBonus: 0.20,
		Description: "Dense asteroid cover. Grants +20% defense.",
	},
	{
		ID: model.TerrainColonyInside, Name: "Colony Interior", DefenseBonus: 0.10,
		Description: "Colony superstructure. Grants +10% defense.",
	},
}

var equipmentDefs = []model.EquipmentDefinition{
	// Weapons.
	{
		ID: "eq_beam_rifle_std", Name: "Beam Rifle", Slot: model.SlotWeapon,
		BaseBoost: model.Stats{Attack: 150}, PerLevelBoost: model.Stats{Attack: 30},
		MaxLevel: 5, BaseUpgradeCost: 500, UpgradeCostStep: 250,
		Description: "Standard-issue beam rifle. Dependable output.",
	},
	{
		ID: "eq_hyper_bazooka", Name: "Hyper Bazooka", Slot: model.SlotWeapon,
		BaseBoost: model.Stats{Attack: 250}, PerLevelBoost: model.Stats{Attack: 50},
		MaxLevel: 5, BaseUpgradeCost: 800, UpgradeCostStep: 400,
		Description: "Heavy shell launcher with high single-hit damage.",
	},
	{
		ID: "eq_beam_rifle_custom", Name: "Custom Beam Rifle", Slot: model.SlotWeapon,
		BaseBoost: model.Stats{Attack: 200}, PerLevelBoost: model.Stats{Attack: 40},
		MaxLevel: 5, BaseUpgradeCost: 650, UpgradeCostStep: 300,
		Description: "Ace-tuned beam rifle.",
	},
	{
		ID: "eq_hyper_mega_cannon", Name: "Hyper Mega Cannon", Slot: model.SlotWeapon,
		BaseBoost: model.Stats{Attack: 500}, PerLevelBoost: model.Stats{Attack: 100},
		MaxLevel: 5, BaseUpgradeCost: 1500, UpgradeCostStep: 700,
		Description: "The ZZ's main armament. Overwhelming firepower.",
	},
	{
		ID: "eq_funnels", Name: "Funnels", Slot: model.SlotWeapon,
		BaseBoost: model.Stats{Attack: 400}, PerLevelBoost: model.Stats{Attack: 80},
		MaxLevel: 3, BaseUpgradeCost: 1200, UpgradeCostStep: 600,
		Description: "Remote psycommu weapons for Newtype pilots.",
	},

	// Armor.
	{
		ID: "eq_standard_armor", Name: "Standard Armor", Slot: model.SlotArmor,
		BaseBoost: model.Stats{Defense: 100, HP: 500}, PerLevelBoost: model.Stats{Defense: 20, HP: 100},
		MaxLevel: 5, BaseUpgradeCost: 400, UpgradeCostStep: 200,
		Description: "General-purpose add-on armor.",
	},
	{
		ID: "eq_gundarium_alloy", Name: "Gundarium Alloy Armor", Slot: model.SlotArmor,
		BaseBoost: model.Stats{Defense: 200, HP: 800}, PerLevelBoost: model.Stats{Defense: 40, HP: 150},
		MaxLevel: 5, BaseUpgradeCost: 700, UpgradeCostStep: 350,
		Description: "High-grade gundarium plating.",
	},
	{
		ID: "eq_heavy_armor", Name: "Heavy Armor", Slot: model.SlotArmor,
		BaseBoost: model.Stats{Defense: 300, HP: 1500}, PerLevelBoost: model.Stats{Defense: 60, HP: 300},
		MaxLevel: 5, BaseUpgradeCost: 1000, UpgradeCostStep: 500,
		Description: "Maximum ballistic protection at some cost to agility.",
	},

	// Boosters.
	{
		ID: "eq_standard_booster", Name: "Standard Booster", Slot: model.SlotBooster,
		BaseBoost: model.Stats{Mobility: 10}, PerLevelBoost: model.Stats{Mobility: 3},
		MaxLevel: 5, BaseUpgradeCost: 300, UpgradeCostStep: 150,
		Description: "Basic booster unit. Modest mobility gain.",
	},
	{
		ID: "eq_high_mobility_booster", Name: "High-Mobility Booster", Slot: model.SlotBooster,
		BaseBoost: model.Stats{Mobility: 20}, PerLevelBoost: model.Stats{Mobility: 5},
		MaxLevel: 5, BaseUpgradeCost: 600, UpgradeCostStep: 300,
		Description: "High-output booster. Large mobility gain.",
	},
}

var unitDefs = []model.UnitDefinition{
	// Player suits.
	{
		ID: "rx-78-2-gundam", Name: "RX-78-2 Gundam", PilotName: "Amuro Ray",
		Base:           model.Stats{HP: 12000, EN: 150, SP: 100, Attack: 2200, Defense: 1500, Mobility: 120},
		SpiritCommands: []model.SpiritCommand{spiritStrike, spiritAlert, spiritValor},
		InitialGear: map[model.SlotType]string{
			model.SlotWeapon: "eq_beam_rifle_std",
			model.SlotArmor:  "eq_standard_armor",
		},
	},
	{
		ID: "fa-010s-fazz", Name: "FA-010S Full Armor ZZ Gundam", PilotName: "Judau Ashta",
		Base:           model.Stats{HP: 18000, EN: 200, SP: 140, Attack: 2800, Defense: 1800, Mobility: 100},
		SpiritCommands: []model.SpiritCommand{spiritValor, spiritStrike, spiritAlert},
		InitialGear: map[model.SlotType]string{
			model.SlotWeapon:  "eq_hyper_mega_cannon",
			model.SlotArmor:   "eq_heavy_armor",
			model.SlotBooster: "eq_standard_booster",
		},
	},
	{
		ID: "msn-00100-hyakushiki", Name: "MSN-00100 Hyaku Shiki", PilotName: "Quattro Bajeena",
		Base:           model.Stats{HP: 13000, EN: 160, SP: 130, Attack: 2400, Defense: 1600, Mobility: 140},
		SpiritCommands: []model.SpiritCommand{spiritStrike, spiritAlert, spiritPressure},
		InitialGear: map[model.SlotType]string{
			model.SlotWeapon:  "eq_beam_rifle_custom",
			model.SlotArmor:   "eq_gundarium_alloy",
			model.SlotBooster: "eq_high_mobility_booster",
		},
	},

	// Enemy suits.
	{
		ID: "ms-06-zaku-ii", Name: "MS-06 Zaku II", PilotName: "Zeon Soldier",
		Base:           model.Stats{HP: 8000, EN: 100, SP: 60, Attack: 1800, Defense: 1200, Mobility: 90},
		SpiritCommands: []model.SpiritCommand{spiritStrike},
	},
	{
		ID: "ms-09r-rickdom", Name: "MS-09R Rick Dom", PilotName: "Zeon Veteran",
		Base:           model.Stats{HP: 9000, EN: 90, SP: 50, Attack: 1900, Defense: 1300, Mobility: 95},
		SpiritCommands: []model.SpiritCommand{spiritStrike},
		InitialGear:    map[model.SlotType]string{model.SlotWeapon: "eq_hyper_bazooka"},
	},
	{
		ID: "ms-14-gelgoog", Name: "MS-14 Gelgoog", PilotName: "Char Aznable",
		Base:           model.Stats{HP: 10000, EN: 130, SP: 120, Attack: 2100, Defense: 1400, Mobility: 110},
		SpiritCommands: []model.SpiritCommand{spiritStrike, spiritAlert, spiritPressure},
		InitialGear: map[model.SlotType]string{
			model.SlotWeapon:  "eq_beam_rifle_std",
			model.SlotArmor:   "eq_standard_armor",
			model.SlotBooster: "eq_standard_booster",
		},
	},
	{
		ID: "amx-014-dovenwolf", Name: "AMX-014 Doven Wolf", PilotName: "Zeon Remnant",
		Base:           model.Stats{HP: 11000, EN: 120, SP: 70, Attack: 2200, Defense: 1500, Mobility: 100},
		SpiritCommands: []model.SpiritCommand{spiritStrike, spiritValor},
		InitialGear: map[model.SlotType]string{
			model.SlotWeapon: "eq_hyper_bazooka",
			model.SlotArmor:  "eq_standard_armor",
		},
	},
	{
		ID: "amx-004-qubeley", Name: "AMX-004 Qubeley", PilotName: "Haman Karn",
		Base:           model.Stats{HP: 16000, EN: 180, SP: 150, Attack: 2700, Defense: 1700, Mobility: 150},
		SpiritCommands: []model.SpiritCommand{spiritAlert, spiritPressure, spiritValor},
		InitialGear: map[model.SlotType]string{
			model.SlotWeapon:  "eq_funnels",
			model.SlotArmor:   "eq_gundarium_alloy",
			model.SlotBooster: "eq_high_mobility_booster",
		},
	},
	{
		ID: "rgm-79-gm", Name: "RGM-79 GM", PilotName: "Federation Soldier",
		Base:           model.Stats{HP: 7500, EN: 90, SP: 50, Attack: 1700, Defense: 1100, Mobility: 100},
		SpiritCommands: []model.SpiritCommand{spiritStrike},
	},
	{
		ID: "rms-108-marasai", Name: "RMS-108 Marasai", PilotName: "Titans Soldier",
		Base:           model.Stats{HP: 10000, EN: 120, SP: 80, Attack: 2000, Defense: 1400, Mobility: 115},
		SpiritCommands: []model.SpiritCommand{spiritStrike, spiritValor},
	},
	{
		ID: "ma-08-bigzam", Name: "MA-08 Big Zam", PilotName: "Dozle Zabi",
		Base:           model.Stats{HP: 35000, EN: 250, SP: 100, Attack: 3200, Defense: 2500, Mobility: 70},
		SpiritCommands: []model.SpiritCommand{spiritValor, spiritStrike},
	},
	{
		ID: "man-08-elmeth", Name: "MAN-08 Elmeth", PilotName: "Lalah Sune",
		Base:           model.Stats{HP: 14000, EN: 170, SP: 160, Attack: 2600, Defense: 1600, Mobility: 140},
		SpiritCommands: []model.SpiritCommand{spiritAlert, spiritPressure, spiritStrike},
		InitialGear:    map[model.SlotType]string{model.SlotWeapon: "eq_funnels"},
	},
	{
		ID: "msn-02-zeong", Name: "MSN-02 Zeong", PilotName: "Char Aznable",
		Base:           model.Stats{HP: 20000, EN: 220, SP: 180, Attack: 3000, Defense: 1900, Mobility: 130},
		SpiritCommands: []model.SpiritCommand{spiritPressure, spiritValor, spiritStrike},
	},
	{
		ID: "orx-005-gaplant", Name: "ORX-005 Gaplant", PilotName: "Yazan Gable",
		Base:           model.Stats{HP: 12000, EN: 150, SP: 110, Attack: 2300, Defense: 1500, Mobility: 160},
		SpiritCommands: []model.SpiritCommand{spiritStrike, spiritValor},
	},
	{
		ID: "pmx-001-palace-athene", Name: "PMX-001 Palace Athene", PilotName: "Reccoa Londe",
		Base:           model.Stats{HP: 15000, EN: 160, SP: 130, Attack: 2500, Defense: 1700, Mobility: 120},
		SpiritCommands: []model.SpiritCommand{spiritAlert, spiritStrike},
	},
	{
		ID: "pmx-003-the-o", Name: "PMX-003 The O", PilotName: "Paptimus Scirocco",
		Base:           model.Stats{HP: 22000, EN: 200, SP: 170, Attack: 3100, Defense: 2200, Mobility: 135},
		SpiritCommands: []model.SpiritCommand{spiritPressure, spiritValor, spiritAlert},
	},
}

var scenarioDefs = []model.ScenarioDefinition{
	{
		ID: "scenario_01", Title: "First Contact",
		Description: "A Zeon scouting party has been sighted near Side 7. Learn the basics of combat.",
		EnemyDefIDs: []string{"ms-06-zaku-ii", "ms-06-zaku-ii", "rgm-79-gm"},
		Intro:       "Emergency! Unidentified units closing in. Looks like a Zeon recon team. Prepare to intercept!",
	},
	{
		ID: "scenario_02", Title: "Breakthrough at Luna II",
		Description: "Zeon forces are pressing the Luna II defensive line. Hold the base.",
		EnemyDefIDs: []string{"ms-06-zaku-ii", "ms-09r-rickdom", "ms-09r-rickdom", "rgm-79-gm"},
		Intro:       "Luna II is under attack! Break the enemy offensive and defend the base!",
	},
	{
		ID: "scenario_03", Title: "Pursuit of the Red Comet",
		Description: "The legendary ace Char Aznable leads the pursuit himself. Bring down his Gelgoog.",
		EnemyDefIDs: []string{"ms-14-gelgoog", "ms-06-zaku-ii", "ms-09r-rickdom"},
		Intro:       "A powerful presence closes from the rear... that machine... Char Aznable! All units, battle stations!",
	},
	{
		ID: "scenario_04", Title: "Ambush in the Asteroid Field",
		Description: "Zeon remnants lie in wait among the asteroids. Watch the terrain.",
		EnemyDefIDs: []string{"ms-09r-rickdom", "amx-014-dovenwolf", "rms-108-marasai", "ms-06-zaku-ii"},
		Intro:       "Enemy ambush in the asteroid field! Advance with caution and destroy them!",
	},
	{
		ID: "scenario_05", Title: "Newtype Threat: Elmeth",
		Description: "The Newtype pilot Lalah Sune appears in the Elmeth. Beware her funnels.",
		EnemyDefIDs: []string{"man-08-elmeth", "ms-14-gelgoog", "ms-09r-rickdom"},
		Intro:       "An overwhelming presence on the battlefield... a Newtype! Lalah Sune and the Elmeth. Hold nothing back.",
	},
	{
		ID: "scenario_06", Title: "Terror of the Mobile Armor: Big Zam",
		Description: "Zeon's giant mobile armor dominates the field. Punch through its firepower and armor.",
		EnemyDefIDs: []string{"ma-08-bigzam", "ms-09r-rickdom", "ms-09r-rickdom", "ms-14-gelgoog"},
		Intro:       "Large mobile armor approaching! That's... the Big Zam! All units, concentrate fire!",
	},
	{
		ID: "scenario_07", Title: "Ghosts of the Titans",
		Description: "Machines once flown by Titans aces return under Neo Zeon colors.",
		EnemyDefIDs: []string{"rms-108-marasai", "rms-108-marasai", "orx-005-gaplant", "pmx-001-palace-athene"},
		Intro:       "Titans machines on sensors! Neo Zeon has raised the old ghosts... stay sharp!",
	},
	{
		ID: "scenario_08", Title: "Spearhead of Axis: Qubeley",
		Description: "Haman Karn herself takes the front line in the Qubeley.",
		EnemyDefIDs: []string{"amx-004-qubeley", "amx-014-dovenwolf", "amx-014-dovenwolf", "rms-108-marasai"},
		Intro:       "Haman Karn has taken the field! The Qubeley's power is beyond imagination. Focus, everyone!",
	},
	{
		ID: "scenario_09", Title: "The Man from Jupiter",
		Description: "Paptimus Scirocco fields his hand-built PMX series. Stop his ambition.",
		EnemyDefIDs: []string{"pmx-003-the-o", "pmx-001-palace-athene", "orx-005-gaplant", "rms-108-marasai"},
		Intro:       "This pressure... the man from Jupiter! Scirocco's machines defy reason. Meet them with everything we have!",
	},
	{
		ID: "scenario_10", Title: "Final Battle: Zeong Descends",
		Description: "Char Aznable commits his final weapon, the Zeong. Win, whatever it takes.",
		EnemyDefIDs: []string{"msn-02-zeong", "ms-14-gelgoog", "ms-14-gelgoog", "ms-09r-rickdom", "ms-09r-rickdom"},
		Intro:       "The decisive battle! Char has sortied in the Zeong! No retreat from here. For humanity's future, fight to the last!",
	},
}
