// Package session owns the live game: the phase machine, the roster and
// battle unit lists, the battle log and the checkpoint hooks. All public
// methods are safe for concurrent use; a single mutex serializes every
// state transition, and background sequences (the enemy turn) re-check the
// phase under that lock at each step.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/srw-lite/engine/internal/battle"
	"github.com/srw-lite/engine/internal/data"
	"github.com/srw-lite/engine/internal/model"
	"github.com/srw-lite/engine/internal/narration"
	"github.com/srw-lite/engine/internal/persist"
	"github.com/srw-lite/engine/internal/scenario"
	"github.com/srw-lite/engine/internal/stats"
	"github.com/srw-lite/engine/internal/unit"
)

// ErrWrongPhase is returned when a command arrives in a phase that does not
// accept it.
var ErrWrongPhase = errors.New("session: command not valid in current phase")

// Deps wires the session's collaborators. Gateway may be nil to disable
// checkpoints.
type Deps struct {
	Catalog  *data.Catalog
	Stats    *stats.Engine
	Factory  *unit.Factory
	Resolver *battle.Resolver
	Director *scenario.Director
	Narrator narration.Narrator
	Gateway  *persist.Gateway
	Log      zerolog.Logger

	// StepDelay paces automated sequences (enemy actions). Zero runs them
	// back to back; tests rely on that.
	StepDelay time.Duration
}

// Session is the live game state.
type Session struct {
	mu sync.Mutex

	cat      *data.Catalog
	stats    *stats.Engine
	factory  *unit.Factory
	resolver *battle.Resolver
	director *scenario.Director
	narrator narration.Narrator
	gateway  *persist.Gateway
	log      zerolog.Logger
	delay    time.Duration

	phase         model.Phase
	scenarioIndex int
	cycle         int
	turnCount     int

	player model.PlayerMeta
	roster []model.UnitInstance

	battlePlayers []model.UnitInstance
	battleEnemies []model.UnitInstance

	selectedUnitID string

	delegationEnabled bool
	cpuBusy           bool
	hangarAutoDone    bool

	messages  []model.Message
	nextMsgID int
}

// New starts a fresh campaign: full starting roster, starting inventory and
// credits, first scenario queued for briefing.
func New(deps Deps) (*Session, error) {
	s := newShell(deps)

	inv := make([]model.EquipmentInstance, 0, len(deps.Catalog.StartingGearIDs))
	addInstance := func(defID string) {
		if _, ok := deps.Catalog.Item(defID); !ok {
			return
		}
		inv = append(inv, model.EquipmentInstance{
			InstanceID:   "inst-" + uuid.NewString(),
			DefinitionID: defID,
			Level:        1,
		})
	}
	for _, id := range deps.Catalog.StartingGearIDs {
		addInstance(id)
	}
	for _, unitID := range deps.Catalog.PlayerUnitIDs {
		if def, ok := deps.Catalog.Unit(unitID); ok {
			for _, gearID := range def.InitialGear {
				addInstance(gearID)
			}
		}
	}
	s.player = model.PlayerMeta{Credits: data.InitialCredits, Inventory: inv}

	claimed := make(map[string]bool)
	for _, unitID := range deps.Catalog.PlayerUnitIDs {
		u, err := deps.Factory.NewPlayerUnit(unitID, inv, claimed)
		if err != nil {
			return nil, fmt.Errorf("building starting roster: %w", err)
		}
		s.roster = append(s.roster, u)
	}
	if len(s.roster) == 0 {
		return nil, errors.New("session: empty starting roster")
	}

	s.enterScenarioIntroLocked()
	return s, nil
}

// Restore rebuilds a session from a checkpoint. Roster units are re-derived
// from their definitions so catalog changes apply; units whose definition
// no longer exists are dropped. An unusable checkpoint returns an error and
// the caller should cold-start instead.
func Restore(deps Deps, g *persist.SavedGame) (*Session, error) {
	s := newShell(deps)

	s.scenarioIndex = deps.Director.Clamp(g.ScenarioIndex)
	s.cycle = g.Cycle
	s.turnCount = g.TurnCount
	s.player = g.Player
	s.delegationEnabled = g.DelegationEnabled

	for i := range g.Roster {
		saved := &g.Roster[i]
		def, ok := deps.Catalog.Unit(saved.DefinitionID)
		if !ok {
			deps.Log.Warn().Str("unit", saved.DefinitionID).Msg("dropping roster unit with unknown definition")
			continue
		}
		u := model.UnitInstance{
			ID:           saved.ID,
			DefinitionID: def.ID,
			Name:         def.Name,
			PilotName:    def.PilotName,
			Level:        saved.Level,
			XP:           saved.XP,
			XPToNext:     saved.XPToNext,
			Base:         def.Base.Add(data.LevelUpGains.Scale(saved.Level - 1)),
			IsPlayer:     true,
			Equipped:     saved.Equipped,
		}
		if u.Equipped == nil {
			u.Equipped = make(map[model.SlotType]string)
		}
		u.Effective = deps.Stats.EffectiveStats(u.Base, u.Equipped, s.player.Inventory)
		u.HP, u.EN, u.SP = u.Effective.HP, u.Effective.EN, u.Effective.SP
		s.roster = append(s.roster, u)
	}
	if len(s.roster) == 0 {
		return nil, errors.New("session: checkpoint has no usable roster units")
	}

	switch {
	case g.Phase == model.PhaseSelectUnit && len(g.BattlePlayers) > 0 && len(g.BattleEnemies) > 0:
		// Battle units are never taken verbatim from the blob: each one is
		// rebuilt through the factory so effective stats are recomputed and
		// the saved pools land clamped inside them.
		players := make([]model.UnitInstance, 0, len(g.BattlePlayers))
		for i := range g.BattlePlayers {
			saved := &g.BattlePlayers[i]
			r := model.FindUnit(s.roster, saved.ID)
			if r == nil {
				deps.Log.Warn().Str("unit", saved.ID).Msg("dropping battle unit absent from roster")
				continue
			}
			u := deps.Factory.DeployPlayer(*r, s.player.Inventory)
			u.HP = clampPool(saved.HP, u.Effective.HP)
			u.EN = clampPool(saved.EN, u.Effective.EN)
			u.SP = clampPool(saved.SP, u.Effective.SP)
			players = append(players, u)
		}
		enemies := make([]model.UnitInstance, 0, len(g.BattleEnemies))
		for i := range g.BattleEnemies {
			saved := &g.BattleEnemies[i]
			e, err := deps.Factory.NewEnemy(saved.DefinitionID, g.Cycle)
			if err != nil {
				deps.Log.Warn().Str("unit", saved.DefinitionID).Msg("dropping enemy with unknown definition")
				continue
			}
			e.ID = saved.ID
			e.HP = clampPool(saved.HP, e.Effective.HP)
			e.EN = clampPool(saved.EN, e.Effective.EN)
			e.SP = clampPool(saved.SP, e.Effective.SP)
			enemies = append(enemies, e)
		}
		if len(players) == 0 || len(enemies) == 0 {
			s.phase = model.PhaseHangar
			break
		}
		s.battlePlayers = players
		s.battleEnemies = enemies
		s.phase = model.PhaseSelectUnit
	case g.Phase == model.PhaseScenarioIntro:
		s.enterScenarioIntroLocked()
	default:
		// Terminal and hangar saves, plus anything mid-battle we cannot
		// faithfully resume, land in the hangar.
		s.phase = model.PhaseHangar
	}

	s.appendMessageLocked(model.MsgSystem, "Game loaded.")
	s.log.Info().
		Int("scenario", s.scenarioIndex).
		Int("cycle", s.cycle).
		Str("phase", string(s.phase)).
		Msg("session restored from checkpoint")
	return s, nil
}

func newShell(deps Deps) *Session {
	return &Session{
		cat:      deps.Catalog,
		stats:    deps.Stats,
		factory:  deps.Factory,
		resolver: deps.Resolver,
		director: deps.Director,
		narrator: deps.Narrator,
		gateway:  deps.Gateway,
		log:      deps.Log,
		delay:    deps.StepDelay,
		phase:    model.PhaseHangar,
	}
}

// SetDelegation toggles the auto-play agent's mandate.
func (s *Session) SetDelegation(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.delegationEnabled == enabled {
		return
	}
	s.delegationEnabled = enabled
	if enabled {
		s.appendMessageLocked(model.MsgSystem, "Delegation engaged. The computer takes command.")
	} else {
		s.appendMessageLocked(model.MsgSystem, "Delegation disengaged. Manual control restored.")
	}
}

// --- shared internals -------------------------------------------------

func (s *Session) enterScenarioIntroLocked() {
	sc, ok := s.director.Current(s.scenarioIndex)
	if !ok {
		s.phase = model.PhaseHangar
		return
	}
	s.phase = model.PhaseScenarioIntro
	s.appendMessageLocked(model.MsgSystem, fmt.Sprintf("Next operation: %s", sc.Title))
	if intro, err := s.narrator.ScenarioIntro(context.Background(), sc, s.cycle); err == nil && intro != "" {
		s.appendMessageLocked(model.MsgNarration, intro)
	}
}

func (s *Session) appendMessageLocked(kind model.MessageKind, text string) {
	s.nextMsgID++
	s.messages = append(s.messages, model.Message{ID: s.nextMsgID, Kind: kind, Text: text})
}

// tryBeginAutomation claims the background-sequence lock. Caller must hold
// s.mu.
func (s *Session) tryBeginAutomationLocked() bool {
	if s.cpuBusy {
		return false
	}
	s.cpuBusy = true
	return true
}

func (s *Session) endAutomation() {
	s.mu.Lock()
	s.cpuBusy = false
	s.mu.Unlock()
}

func clampPool(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

func cloneUnits(units []model.UnitInstance) []model.UnitInstance {
	out := make([]model.UnitInstance, len(units))
	for i := range units {
		out[i] = units[i].Clone()
	}
	return out
}
