package session

import (
	"fmt"

	"github.com/srw-lite/engine/internal/model"
)

// ReturnToHangar leaves a finished battle. A victory advances the campaign
// cursor, rolling into the next cycle after the final stage; a defeat
// leaves it in place for a retry.
func (s *Session) ReturnToHangar() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.phase.Terminal() {
		return fmt.Errorf("%w: return in %s", ErrWrongPhase, s.phase)
	}
	if s.phase == model.PhaseVictory {
		prevCycle := s.cycle
		s.scenarioIndex, s.cycle = s.director.Advance(s.scenarioIndex, s.cycle)
		if s.cycle > prevCycle {
			s.appendMessageLocked(model.MsgSystem,
				fmt.Sprintf("Campaign complete! Cycle %d begins. Enemy forces have grown stronger.", s.cycle+1))
		}
	}

	s.battlePlayers = nil
	s.battleEnemies = nil
	s.selectedUnitID = ""
	s.hangarAutoDone = false
	s.phase = model.PhaseHangar
	s.appendMessageLocked(model.MsgHangar, "Returned to the hangar.")
	s.saveCheckpointLocked()
	return nil
}

// Sortie leaves the hangar for the next scenario's briefing.
func (s *Session) Sortie() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != model.PhaseHangar {
		return fmt.Errorf("%w: sortie in %s", ErrWrongPhase, s.phase)
	}
	s.enterScenarioIntroLocked()
	s.saveCheckpointLocked()
	return nil
}

// EquipItem mounts an owned item on a roster unit. The item's slot comes
// from its definition; whatever occupied that slot is displaced, and the
// item is pulled off any other unit holding it.
func (s *Session) EquipItem(unitID, instanceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != model.PhaseHangar {
		return fmt.Errorf("%w: equip in %s", ErrWrongPhase, s.phase)
	}
	u := model.FindUnit(s.roster, unitID)
	if u == nil {
		return fmt.Errorf("no roster unit %q", unitID)
	}
	inst, ok := s.player.InventoryItem(instanceID)
	if !ok {
		return fmt.Errorf("no owned item %q", instanceID)
	}
	def, ok := s.cat.Item(inst.DefinitionID)
	if !ok {
		return fmt.Errorf("unknown equipment definition %q", inst.DefinitionID)
	}

	for i := range s.roster {
		holder := &s.roster[i]
		if holder.ID == u.ID || !holder.HasEquipped(instanceID) {
			continue
		}
		for slot, id := range holder.Equipped {
			if id == instanceID {
				delete(holder.Equipped, slot)
			}
		}
		s.stats.Recalculate(holder, s.player.Inventory)
	}

	u.Equipped[def.Slot] = instanceID
	s.stats.Recalculate(u, s.player.Inventory)
	s.appendMessageLocked(model.MsgHangar, fmt.Sprintf("%s equipped on %s.", def.Name, u.Name))
	return nil
}

// UnequipItem clears a roster unit's slot.
func (s *Session) UnequipItem(unitID string, slot model.SlotType) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != model.PhaseHangar {
		return fmt.Errorf("%w: unequip in %s", ErrWrongPhase, s.phase)
	}
	u := model.FindUnit(s.roster, unitID)
	if u == nil {
		return fmt.Errorf("no roster unit %q", unitID)
	}
	if _, ok := u.Equipped[slot]; !ok {
		return fmt.Errorf("%s has nothing in the %s slot", u.Name, slot)
	}

	delete(u.Equipped, slot)
	s.stats.Recalculate(u, s.player.Inventory)
	return nil
}

// UpgradeItem raises an owned item one level, spending credits. Every unit
// wearing the item picks up the new boost immediately.
func (s *Session) UpgradeItem(instanceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != model.PhaseHangar {
		return fmt.Errorf("%w: upgrade in %s", ErrWrongPhase, s.phase)
	}
	return s.upgradeItemLocked(instanceID)
}

func (s *Session) upgradeItemLocked(instanceID string) error {
	var inst *model.EquipmentInstance
	for i := range s.player.Inventory {
		if s.player.Inventory[i].InstanceID == instanceID {
			inst = &s.player.Inventory[i]
			break
		}
	}
	if inst == nil {
		return fmt.Errorf("no owned item %q", instanceID)
	}
	def, ok := s.cat.Item(inst.DefinitionID)
	if !ok {
		return fmt.Errorf("unknown equipment definition %q", inst.DefinitionID)
	}
	if inst.Level >= def.MaxLevel {
		return fmt.Errorf("%s is already at maximum level", def.Name)
	}
	cost := def.UpgradeCost(inst.Level)
	if s.player.Credits < cost {
		return fmt.Errorf("not enough credits for %s (%d needed, %d held)", def.Name, cost, s.player.Credits)
	}

	s.player.Credits -= cost
	inst.Level++
	for i := range s.roster {
		if s.roster[i].HasEquipped(instanceID) {
			s.stats.Recalculate(&s.roster[i], s.player.Inventory)
		}
	}
	s.appendMessageLocked(model.MsgHangar,
		fmt.Sprintf("%s upgraded to level %d (-%d credits).", def.Name, inst.Level, cost))
	return nil
}

// AutoOutfit runs the hangar automation once per hangar visit: fill every
// empty slot with the best unequipped item for it, then sink spare credits
// into upgrades, favoring the most developed items.
func (s *Session) AutoOutfit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != model.PhaseHangar {
		return fmt.Errorf("%w: auto-outfit in %s", ErrWrongPhase, s.phase)
	}
	if s.hangarAutoDone {
		return nil
	}
	s.hangarAutoDone = true

	for i := range s.roster {
		u := &s.roster[i]
		for _, slot := range model.AllSlots {
			if _, filled := u.Equipped[slot]; filled {
				continue
			}
			best := s.bestUnequippedLocked(slot)
			if best == "" {
				continue
			}
			inst, _ := s.player.InventoryItem(best)
			def, _ := s.cat.Item(inst.DefinitionID)
			u.Equipped[slot] = best
			s.stats.Recalculate(u, s.player.Inventory)
			s.appendMessageLocked(model.MsgAutoPilot,
				fmt.Sprintf("Auto-equip: %s mounted on %s.", def.Name, u.Name))
		}
	}

	for {
		target := s.bestUpgradeTargetLocked()
		if target == "" {
			break
		}
		if err := s.upgradeItemLocked(target); err != nil {
			break
		}
	}
	return nil
}

// bestUnequippedLocked returns the unequipped inventory instance with the
// highest value in the slot's primary stat, or "".
func (s *Session) bestUnequippedLocked(slot model.SlotType) string {
	bestID, bestVal := "", -1
	for _, inst := range s.player.Inventory {
		if s.isEquippedByAnyoneLocked(inst.InstanceID) {
			continue
		}
		def, ok := s.cat.Item(inst.DefinitionID)
		if !ok || def.Slot != slot {
			continue
		}
		if v := slotStatValue(def, inst.Level); v > bestVal {
			bestID, bestVal = inst.InstanceID, v
		}
	}
	return bestID
}

// bestUpgradeTargetLocked returns the equipped, affordable, upgradable
// instance with the highest current level, or "".
func (s *Session) bestUpgradeTargetLocked() string {
	bestID, bestLevel := "", -1
	for _, inst := range s.player.Inventory {
		if !s.isEquippedByAnyoneLocked(inst.InstanceID) {
			continue
		}
		def, ok := s.cat.Item(inst.DefinitionID)
		if !ok || inst.Level >= def.MaxLevel {
			continue
		}
		if s.player.Credits < def.UpgradeCost(inst.Level) {
			continue
		}
		if inst.Level > bestLevel {
			bestID, bestLevel = inst.InstanceID, inst.Level
		}
	}
	return bestID
}

func (s *Session) isEquippedByAnyoneLocked(instanceID string) bool {
	for i := range s.roster {
		if s.roster[i].HasEquipped(instanceID) {
			return true
		}
	}
	return false
}

// slotStatValue ranks an item by its slot's primary stat.
func slotStatValue(def model.EquipmentDefinition, level int) int {
	boost := def.BoostAtLevel(level)
	switch def.Slot {
	case model.SlotWeapon:
		return boost.Attack
	case model.SlotArmor:
		return boost.Defense
	case model.SlotBooster:
		return boost.Mobility
	}
	return 0
}
