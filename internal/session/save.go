package session

import (
	"errors"

	"github.com/srw-lite/engine/internal/model"
	"github.com/srw-lite/engine/internal/persist"
)

// SaveNow writes a checkpoint synchronously. Used by the save console
// command and on shutdown; gameplay checkpoints go through
// saveCheckpointLocked instead.
func (s *Session) SaveNow() error {
	s.mu.Lock()
	if s.gateway == nil {
		s.mu.Unlock()
		return errors.New("session: no storage configured")
	}
	sv := s.buildSaveLocked()
	gw := s.gateway
	s.mu.Unlock()

	return gw.Save(sv)
}

// saveCheckpointLocked snapshots the session and writes it in the
// background. Checkpoint failures are logged, never surfaced to gameplay.
func (s *Session) saveCheckpointLocked() {
	if s.gateway == nil {
		return
	}
	sv := s.buildSaveLocked()
	gw, log := s.gateway, s.log
	go func() {
		if err := gw.Save(sv); err != nil {
			log.Error().Err(err).Msg("checkpoint write failed")
		}
	}()
}

func (s *Session) buildSaveLocked() *persist.SavedGame {
	sv := &persist.SavedGame{
		ScenarioIndex:     s.scenarioIndex,
		Cycle:             s.cycle,
		TurnCount:         s.turnCount,
		Phase:             s.phase,
		Player:            s.player,
		Roster:            cloneUnits(s.roster),
		DelegationEnabled: s.delegationEnabled,
	}
	sv.Player.Inventory = append([]model.EquipmentInstance(nil), s.player.Inventory...)
	if sc, ok := s.director.Current(s.scenarioIndex); ok {
		sv.ScenarioTitle = sc.Title
	}
	if len(s.battlePlayers) > 0 || len(s.battleEnemies) > 0 {
		sv.BattlePlayers = cloneUnits(s.battlePlayers)
		sv.BattleEnemies = cloneUnits(s.battleEnemies)
	}
	return sv
}
