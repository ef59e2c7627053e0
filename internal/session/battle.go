package session

import (
	"context"
	"fmt"
	"time"

	"github.com/srw-lite/engine/internal/data"
	"github.com/srw-lite/engine/internal/model"
	"github.com/srw-lite/engine/internal/position"
	"github.com/srw-lite/engine/internal/stats"
)

// StartScenario deploys the current scenario's forces and opens turn one.
// Valid only during the scenario briefing.
func (s *Session) StartScenario() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != model.PhaseScenarioIntro {
		return fmt.Errorf("%w: start in %s", ErrWrongPhase, s.phase)
	}
	sc, ok := s.director.Current(s.scenarioIndex)
	if !ok {
		return fmt.Errorf("no scenario at index %d", s.scenarioIndex)
	}

	s.battlePlayers = s.battlePlayers[:0]
	for _, r := range s.roster {
		s.battlePlayers = append(s.battlePlayers, s.factory.DeployPlayer(r, s.player.Inventory))
	}

	s.battleEnemies = s.battleEnemies[:0]
	for _, defID := range sc.EnemyDefIDs {
		e, err := s.factory.NewEnemy(defID, s.cycle)
		if err != nil {
			return fmt.Errorf("deploying enemy wave: %w", err)
		}
		s.battleEnemies = append(s.battleEnemies, e)
	}

	s.turnCount = 1
	s.selectedUnitID = ""
	s.phase = model.PhaseSelectUnit
	s.appendMessageLocked(model.MsgSystem, fmt.Sprintf("Operation start: %s", sc.Title))
	s.appendMessageLocked(model.MsgInfo, "Turn 1. Awaiting orders.")
	s.log.Info().Str("scenario", sc.ID).Int("cycle", s.cycle).Int("enemies", len(s.battleEnemies)).Msg("scenario started")

	s.saveCheckpointLocked()
	return nil
}

// SelectUnit picks the player unit that will act next.
func (s *Session) SelectUnit(unitID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != model.PhaseSelectUnit {
		return fmt.Errorf("%w: select in %s", ErrWrongPhase, s.phase)
	}
	u := model.FindUnit(s.battlePlayers, unitID)
	if u == nil || !u.IsPlayer {
		return fmt.Errorf("no player unit %q on the field", unitID)
	}
	if !u.Alive() {
		return fmt.Errorf("%s is destroyed", u.Name)
	}
	if u.HasActed {
		return fmt.Errorf("%s has already acted this turn", u.Name)
	}

	s.selectedUnitID = unitID
	s.phase = model.PhaseAction
	return nil
}

// UseSpirit activates one of the selected pilot's spirit commands. Rejected
// while another effect is armed.
func (s *Session) UseSpirit(spiritID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != model.PhaseAction {
		return fmt.Errorf("%w: spirit in %s", ErrWrongPhase, s.phase)
	}
	u := model.FindUnit(s.battlePlayers, s.selectedUnitID)
	if u == nil {
		return fmt.Errorf("no unit selected")
	}
	def, ok := s.cat.Unit(u.DefinitionID)
	if !ok {
		return fmt.Errorf("unknown definition %q", u.DefinitionID)
	}
	sc, ok := def.SpiritCommandByID(spiritID)
	if !ok {
		return fmt.Errorf("%s does not know spirit %q", u.PilotName, spiritID)
	}
	if u.ActiveEffect != model.EffectNone {
		return fmt.Errorf("%s already has an active spirit effect", u.PilotName)
	}
	if u.SP < sc.Cost {
		return fmt.Errorf("not enough SP for %s (%d/%d)", sc.Name, u.SP, sc.Cost)
	}

	u.SP -= sc.Cost
	u.ActiveEffect = sc.Effect
	s.appendMessageLocked(model.MsgSpirit, fmt.Sprintf("%s uses %s!", u.PilotName, sc.Name))
	return nil
}

// ChooseAttack moves the selected unit into target selection.
func (s *Session) ChooseAttack() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != model.PhaseAction {
		return fmt.Errorf("%w: attack in %s", ErrWrongPhase, s.phase)
	}
	if model.FindUnit(s.battlePlayers, s.selectedUnitID) == nil {
		return fmt.Errorf("no unit selected")
	}
	s.phase = model.PhaseSelectTarget
	return nil
}

// Attack resolves the selected unit's attack on the given enemy and ends
// that unit's activation.
func (s *Session) Attack(targetID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != model.PhaseSelectTarget {
		return fmt.Errorf("%w: attack in %s", ErrWrongPhase, s.phase)
	}
	attacker := model.FindUnit(s.battlePlayers, s.selectedUnitID)
	if attacker == nil || !attacker.Alive() {
		return fmt.Errorf("no live unit selected")
	}
	defender := model.FindUnit(s.battleEnemies, targetID)
	if defender == nil {
		return fmt.Errorf("no enemy %q on the field", targetID)
	}
	if !defender.Alive() {
		return fmt.Errorf("%s is already destroyed", defender.Name)
	}

	s.processAttackLocked(attacker, defender, model.MsgPlayerAtk)
	attacker.HasActed = true
	s.selectedUnitID = ""

	if s.checkBattleEndLocked() {
		return nil
	}
	s.advanceAfterActivationLocked()
	return nil
}

// Wait ends the selected unit's activation without attacking. An armed
// one-shot effect is wasted; GUARANTEED_EVADE stays up into the enemy turn.
func (s *Session) Wait() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != model.PhaseAction && s.phase != model.PhaseSelectTarget {
		return fmt.Errorf("%w: wait in %s", ErrWrongPhase, s.phase)
	}
	u := model.FindUnit(s.battlePlayers, s.selectedUnitID)
	if u == nil {
		return fmt.Errorf("no unit selected")
	}

	u.HasActed = true
	if u.ActiveEffect != model.EffectGuaranteedEvade {
		u.ActiveEffect = model.EffectNone
	}
	s.selectedUnitID = ""
	s.appendMessageLocked(model.MsgInfo, fmt.Sprintf("%s holds position.", u.Name))
	s.advanceAfterActivationLocked()
	return nil
}

// Cancel steps back one selection stage.
func (s *Session) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.phase {
	case model.PhaseSelectTarget:
		s.phase = model.PhaseAction
	case model.PhaseAction:
		s.selectedUnitID = ""
		s.phase = model.PhaseSelectUnit
	default:
		return fmt.Errorf("%w: cancel in %s", ErrWrongPhase, s.phase)
	}
	return nil
}

// EndPlayerTurn forfeits every remaining activation and hands the turn to
// the enemy.
func (s *Session) EndPlayerTurn() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != model.PhaseSelectUnit {
		return fmt.Errorf("%w: end turn in %s", ErrWrongPhase, s.phase)
	}
	for i := range s.battlePlayers {
		if s.battlePlayers[i].Alive() {
			s.battlePlayers[i].HasActed = true
		}
	}
	s.startEnemyTurnLocked()
	return nil
}

// advanceAfterActivationLocked decides what follows a finished activation:
// back to unit selection, or the enemy turn once nobody is left to act.
func (s *Session) advanceAfterActivationLocked() {
	if s.nextActionableLocked() == nil {
		s.startEnemyTurnLocked()
		return
	}
	s.phase = model.PhaseSelectUnit
}

func (s *Session) nextActionableLocked() *model.UnitInstance {
	for i := range s.battlePlayers {
		u := &s.battlePlayers[i]
		if u.Alive() && !u.HasActed {
			return u
		}
	}
	return nil
}

func (s *Session) startEnemyTurnLocked() {
	s.phase = model.PhaseEnemyTurn
	s.appendMessageLocked(model.MsgInfo, "Enemy phase.")
	if s.tryBeginAutomationLocked() {
		go s.runEnemyTurn()
	}
}

// runEnemyTurn walks every living enemy through one attack, pacing steps by
// the configured delay. The phase is re-checked under the lock before each
// action so a concurrent game-over cancels the rest of the sequence.
func (s *Session) runEnemyTurn() {
	defer s.endAutomation()
	defer func() {
		if r := recover(); r != nil {
			s.mu.Lock()
			s.log.Error().Interface("panic", r).Msg("enemy turn aborted")
			s.phase = model.PhaseHangar
			s.battlePlayers = nil
			s.battleEnemies = nil
			s.mu.Unlock()
		}
	}()

	s.mu.Lock()
	ids := make([]string, 0, len(s.battleEnemies))
	for i := range s.battleEnemies {
		if s.battleEnemies[i].Alive() {
			ids = append(ids, s.battleEnemies[i].ID)
		}
	}
	s.mu.Unlock()

	for _, id := range ids {
		if s.delay > 0 {
			time.Sleep(s.delay)
		}

		s.mu.Lock()
		if s.phase != model.PhaseEnemyTurn {
			s.mu.Unlock()
			return
		}
		enemy := model.FindUnit(s.battleEnemies, id)
		if enemy == nil || !enemy.Alive() {
			s.mu.Unlock()
			continue
		}
		target := s.weakestLivingPlayerLocked()
		if target == nil {
			s.mu.Unlock()
			return
		}
		s.processAttackLocked(enemy, target, model.MsgEnemyAtk)
		if s.checkBattleEndLocked() {
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()
	}

	s.mu.Lock()
	if s.phase == model.PhaseEnemyTurn {
		s.beginNewPlayerTurnLocked()
	}
	s.mu.Unlock()
}

// weakestLivingPlayerLocked returns the living player unit with the lowest
// current HP, or nil. Enemy fire concentrates on the most damaged target.
func (s *Session) weakestLivingPlayerLocked() *model.UnitInstance {
	var weakest *model.UnitInstance
	for i := range s.battlePlayers {
		u := &s.battlePlayers[i]
		if !u.Alive() {
			continue
		}
		if weakest == nil || u.HP < weakest.HP {
			weakest = u
		}
	}
	return weakest
}

// beginNewPlayerTurnLocked opens the next player turn: SP regeneration,
// activation and effect reset, fresh map positions, checkpoint.
func (s *Session) beginNewPlayerTurnLocked() {
	s.turnCount++
	for i := range s.battlePlayers {
		u := &s.battlePlayers[i]
		if !u.Alive() {
			continue
		}
		u.HasActed = false
		if u.ActiveEffect != model.EffectGuaranteedEvade {
			u.ActiveEffect = model.EffectNone
		}
		u.SP += data.SPRegenTurn
		if u.SP > u.Effective.SP {
			u.SP = u.Effective.SP
		}
		s.factory.Reposition(u)
	}
	for i := range s.battleEnemies {
		if s.battleEnemies[i].Alive() {
			s.factory.Reposition(&s.battleEnemies[i])
		}
	}
	s.selectedUnitID = ""
	s.phase = model.PhaseSelectUnit
	s.appendMessageLocked(model.MsgInfo, fmt.Sprintf("Turn %d. Awaiting orders.", s.turnCount))
	s.saveCheckpointLocked()
}

// processAttackLocked applies one resolved attack to live state: damage,
// effect consumption, XP and level-ups, kill rewards.
func (s *Session) processAttackLocked(attacker, defender *model.UnitInstance, kind model.MessageKind) {
	bonus := s.cat.DefenseBonus(position.TerrainAt(defender.Pos))
	out := s.resolver.Resolve(attacker, defender, bonus)

	defender.HP = out.DefenderHP
	if out.AttackerEffectConsumed {
		attacker.ActiveEffect = model.EffectNone
	}
	if out.DefenderEffectConsumed {
		defender.ActiveEffect = model.EffectNone
	}
	for _, line := range out.Log {
		s.appendMessageLocked(kind, line)
	}

	if out.XPGained > 0 {
		before := attacker.Level
		if levels := s.stats.GrantXP(attacker, out.XPGained, s.player.Inventory); levels > 0 {
			s.appendMessageLocked(model.MsgLevelUp,
				fmt.Sprintf("%s reached level %d!", attacker.Name, before+levels))
		}
		if attacker.IsPlayer {
			s.mirrorProgressionLocked(attacker)
		}
	}

	if out.DefenderDefeated && attacker.IsPlayer {
		reward := stats.KillReward(s.cycle)
		s.player.Credits += reward
		s.appendMessageLocked(model.MsgSystem, fmt.Sprintf("Salvage recovered: %d credits.", reward))
	}
	if out.DefenderDefeated {
		line, err := s.narrator.AttackReport(context.Background(),
			*attacker, *defender, out.Damage, out.Critical, out.Missed, true)
		if err == nil && line != "" {
			s.appendMessageLocked(model.MsgNarration, line)
		}
	}
}

// checkBattleEndLocked settles the battle if either side is wiped out.
// Idempotent; returns true once the session is in a terminal phase.
func (s *Session) checkBattleEndLocked() bool {
	if s.phase.Terminal() {
		return true
	}
	switch {
	case len(s.battleEnemies) > 0 && model.CountAlive(s.battleEnemies) == 0:
		s.reconcileToRosterLocked()
		s.phase = model.PhaseVictory
		s.appendMessageLocked(model.MsgSystem, "Victory! All enemy units destroyed.")
		if sc, ok := s.director.Current(s.scenarioIndex); ok {
			if line, err := s.narrator.Victory(context.Background(), sc); err == nil {
				s.appendMessageLocked(model.MsgNarration, line)
			}
		}
		s.log.Info().Int("turns", s.turnCount).Msg("battle won")
		s.saveCheckpointLocked()
		return true
	case len(s.battlePlayers) > 0 && model.CountAlive(s.battlePlayers) == 0:
		s.reconcileToRosterLocked()
		s.phase = model.PhaseDefeat
		s.appendMessageLocked(model.MsgSystem, "Defeat. The squad has been wiped out.")
		if sc, ok := s.director.Current(s.scenarioIndex); ok {
			if line, err := s.narrator.Defeat(context.Background(), sc); err == nil {
				s.appendMessageLocked(model.MsgNarration, line)
			}
		}
		s.log.Info().Int("turns", s.turnCount).Msg("battle lost")
		s.saveCheckpointLocked()
		return true
	}
	return false
}

// mirrorProgressionLocked copies a battle unit's earned progression onto its
// roster counterpart so a save taken mid-battle keeps the XP. Pools are
// reconciled, not refilled.
func (s *Session) mirrorProgressionLocked(b *model.UnitInstance) *model.UnitInstance {
	r := model.FindUnit(s.roster, b.ID)
	if r == nil {
		return nil
	}
	r.Level = b.Level
	r.XP = b.XP
	r.XPToNext = b.XPToNext
	r.Base = b.Base
	s.stats.Recalculate(r, s.player.Inventory)
	return r
}

// reconcileToRosterLocked copies progression earned in battle back onto the
// roster units. Pools are refilled; battle damage never persists.
func (s *Session) reconcileToRosterLocked() {
	for i := range s.battlePlayers {
		r := s.mirrorProgressionLocked(&s.battlePlayers[i])
		if r == nil {
			continue
		}
		r.HP, r.EN, r.SP = r.Effective.HP, r.Effective.EN, r.Effective.SP
	}
}
