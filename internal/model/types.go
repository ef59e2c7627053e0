// Package model defines the core data types of the battle engine: stat
// blocks, definitions, runtime instances and the closed enumerations used
// throughout (phases, spirit effects, equipment slots, terrain, message
// kinds). It holds no behavior beyond small accessors.
package model

// Stats is a full stat block. The same shape is used for base stats,
// effective stats and equipment boosts (where unused categories are zero).
type Stats struct {
	HP       int `json:"hp"`
	EN       int `json:"en"`
	SP       int `json:"sp"`
	Attack   int `json:"attack"`
	Defense  int `json:"defense"`
	Mobility int `json:"mobility"`
}

// Add returns s with every category of o added.
func (s Stats) Add(o Stats) Stats {
	return Stats{
		HP:       s.HP + o.HP,
		EN:       s.EN + o.EN,
		SP:       s.SP + o.SP,
		Attack:   s.Attack + o.Attack,
		Defense:  s.Defense + o.Defense,
		Mobility: s.Mobility + o.Mobility,
	}
}

// Scale returns s with every category multiplied by n.
func (s Stats) Scale(n int) Stats {
	return Stats{
		HP:       s.HP * n,
		EN:       s.EN * n,
		SP:       s.SP * n,
		Attack:   s.Attack * n,
		Defense:  s.Defense * n,
		Mobility: s.Mobility * n,
	}
}

// SpiritEffect is a one-shot combat effect granted by a spirit command.
type SpiritEffect string

const (
	EffectNone            SpiritEffect = ""
	EffectGuaranteedHit   SpiritEffect = "GUARANTEED_HIT"
	EffectGuaranteedEvade SpiritEffect = "GUARANTEED_EVADE"
	EffectDoubleDamage    SpiritEffect = "DOUBLE_DAMAGE"
)

// SlotType is an equipment slot category.
type SlotType string

const (
	SlotWeapon  SlotType = "WEAPON"
	SlotArmor   SlotType = "ARMOR"
	SlotBooster SlotType = "BOOSTER"
)

// AllSlots lists every slot category in hangar display order.
var AllSlots = []SlotType{SlotWeapon, SlotArmor, SlotBooster}

// Terrain identifies a map terrain zone.
type Terrain string

const (
	TerrainSpace         Terrain = "SPACE"
	TerrainAsteroidField Terrain = "ASTEROID_FIELD"
	TerrainColonyInside  Terrain = "COLONY_INTERIOR"
)

// Phase is a state of the game phase machine.
type Phase string

const (
	PhaseSelectUnit    Phase = "PLAYER_TURN_SELECT_UNIT"
	PhaseAction        Phase = "PLAYER_TURN_ACTION"
	PhaseSelectTarget  Phase = "PLAYER_TURN_SELECT_TARGET"
	PhaseEnemyTurn     Phase = "ENEMY_TURN"
	PhaseVictory       Phase = "GAME_OVER_VICTORY"
	PhaseDefeat        Phase = "GAME_OVER_DEFEAT"
	PhaseScenarioIntro Phase = "SCENARIO_INTRO"
	PhaseHangar        Phase = "HANGAR"
)

// Valid reports whether p is one of the known phases.
func (p Phase) Valid() bool {
	switch p {
	case PhaseSelectUnit, PhaseAction, PhaseSelectTarget, PhaseEnemyTurn,
		PhaseVictory, PhaseDefeat, PhaseScenarioIntro, PhaseHangar:
		return true
	}
	return false
}

// Terminal reports whether p ends the battle session.
func (p Phase) Terminal() bool {
	return p == PhaseVictory || p == PhaseDefeat
}

// PlayerTurn reports whether p is a phase driven by player commands.
func (p Phase) PlayerTurn() bool {
	return p == PhaseSelectUnit || p == PhaseAction || p == PhaseSelectTarget
}

// InBattle reports whether p has live battle unit lists attached.
func (p Phase) InBattle() bool {
	return p.PlayerTurn() || p == PhaseEnemyTurn
}

// MessageKind categorizes a battle log message.
type MessageKind string

const (
	MsgInfo        MessageKind = "info"
	MsgPlayerAtk   MessageKind = "player_attack"
	MsgEnemyAtk    MessageKind = "enemy_attack"
	MsgNarration   MessageKind = "narration"
	MsgSystem      MessageKind = "system"
	MsgSpirit      MessageKind = "spirit"
	MsgLevelUp     MessageKind = "level_up"
	MsgHangar      MessageKind = "hangar"
	MsgAutoPilot   MessageKind = "cpu_action"
)

// Message is one entry of the append-only battle log.
type Message struct {
	ID   int         `json:"id"`
	Kind MessageKind `json:"kind"`
	Text string      `json:"text"`
}
