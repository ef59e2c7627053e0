package session

import "github.com/srw-lite/engine/internal/model"

// Snapshot is a consistent, copied view of the session for display and for
// the auto-play agent. Mutating it has no effect on the live game.
type Snapshot struct {
	Phase         model.Phase
	ScenarioIndex int
	ScenarioTitle string
	Cycle         int
	TurnCount     int
	Credits       int

	SelectedUnitID    string
	DelegationEnabled bool
	HangarAutoDone    bool

	Roster        []model.UnitInstance
	BattlePlayers []model.UnitInstance
	BattleEnemies []model.UnitInstance
	Inventory     []model.EquipmentInstance
}

// Snapshot returns a copy of the full session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Phase:             s.phase,
		ScenarioIndex:     s.scenarioIndex,
		Cycle:             s.cycle,
		TurnCount:         s.turnCount,
		Credits:           s.player.Credits,
		SelectedUnitID:    s.selectedUnitID,
		DelegationEnabled: s.delegationEnabled,
		HangarAutoDone:    s.hangarAutoDone,
		Roster:            cloneUnits(s.roster),
		BattlePlayers:     cloneUnits(s.battlePlayers),
		BattleEnemies:     cloneUnits(s.battleEnemies),
		Inventory:         append([]model.EquipmentInstance(nil), s.player.Inventory...),
	}
	if sc, ok := s.director.Current(s.scenarioIndex); ok {
		snap.ScenarioTitle = sc.Title
	}
	return snap
}

// Phase returns the current phase.
func (s *Session) Phase() model.Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// DelegationEnabled reports whether the auto-play agent has the conn.
func (s *Session) DelegationEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.delegationEnabled
}

// MessagesSince returns log entries with an ID greater than afterID.
func (s *Session) MessagesSince(afterID int) []model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.messages {
		if s.messages[i].ID > afterID {
			out := make([]model.Message, len(s.messages)-i)
			copy(out, s.messages[i:])
			return out
		}
	}
	return nil
}

// NextActionableUnitID returns the first living player unit still to act
// this turn, or "".
func (s *Session) NextActionableUnitID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u := s.nextActionableLocked(); u != nil {
		return u.ID
	}
	return ""
}

// WeakestEnemyID returns the living enemy with the least HP, or "".
func (s *Session) WeakestEnemyID() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, best := "", 0
	for i := range s.battleEnemies {
		e := &s.battleEnemies[i]
		if !e.Alive() {
			continue
		}
		if id == "" || e.HP < best {
			id, best = e.ID, e.HP
		}
	}
	return id
}

// AffordableSpirits lists the spirit commands the selected unit could
// activate right now. Empty while another effect is armed.
func (s *Session) AffordableSpirits() []model.SpiritCommand {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := model.FindUnit(s.battlePlayers, s.selectedUnitID)
	if u == nil || u.ActiveEffect != model.EffectNone {
		return nil
	}
	def, ok := s.cat.Unit(u.DefinitionID)
	if !ok {
		return nil
	}
	var out []model.SpiritCommand
	for _, sc := range def.SpiritCommands {
		if u.SP >= sc.Cost {
			out = append(out, sc)
		}
	}
	return out
}
