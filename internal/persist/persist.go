// Package persist serializes the session checkpoint to a storage slot and
// restores it on startup. A corrupt or structurally invalid save is
// discarded rather than propagated; the engine then cold-starts.
package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/srw-lite/engine/internal/model"
	"github.com/srw-lite/engine/internal/storage"
)

// FormatVersion is bumped on incompatible changes to SavedGame. Older saves
// are discarded on load.
const FormatVersion = 1

// SavedGame is the full checkpoint payload. Battle lists are present only
// when the save was taken mid-battle.
type SavedGame struct {
	Version int `json:"version"`

	ScenarioIndex int         `json:"scenarioIndex"`
	Cycle         int         `json:"newGamePlusCycle"`
	TurnCount     int         `json:"turnCount"`
	Phase         model.Phase `json:"phase"`
	ScenarioTitle string      `json:"scenarioTitle,omitempty"`

	Player model.PlayerMeta     `json:"playerState"`
	Roster []model.UnitInstance `json:"rosterUnits"`

	DelegationEnabled bool `json:"delegationEnabled"`

	BattlePlayers []model.UnitInstance `json:"battlePlayers,omitempty"`
	BattleEnemies []model.UnitInstance `json:"battleEnemies,omitempty"`

	SavedAt time.Time `json:"savedAt"`
}

// Validate checks structural soundness. It does not resolve catalog
// references; the session re-derives units through the factory anyway.
func (g *SavedGame) Validate() error {
	if g.Version != FormatVersion {
		return fmt.Errorf("unsupported save version %d", g.Version)
	}
	if !g.Phase.Valid() {
		return fmt.Errorf("unknown phase %q", g.Phase)
	}
	if g.ScenarioIndex < 0 || g.Cycle < 0 || g.TurnCount < 0 {
		return errors.New("negative progression counter")
	}
	if len(g.Roster) == 0 {
		return errors.New("empty roster")
	}
	holders := make(map[string]string)
	for i := range g.Roster {
		u := &g.Roster[i]
		if u.ID == "" || u.DefinitionID == "" {
			return fmt.Errorf("roster unit %d missing identity", i)
		}
		if u.Level < 1 || u.XPToNext <= 0 {
			return fmt.Errorf("roster unit %q has invalid progression", u.ID)
		}
		for _, instID := range u.Equipped {
			if other, dup := holders[instID]; dup {
				return fmt.Errorf("equipment instance %q equipped by both %q and %q", instID, other, u.ID)
			}
			holders[instID] = u.ID
		}
	}
	for _, list := range [][]model.UnitInstance{g.BattlePlayers, g.BattleEnemies} {
		for i := range list {
			u := &list[i]
			if u.ID == "" || u.DefinitionID == "" {
				return fmt.Errorf("battle unit %d missing identity", i)
			}
			if u.HP < 0 || u.EN < 0 || u.SP < 0 {
				return fmt.Errorf("battle unit %q has a negative pool", u.ID)
			}
		}
	}
	if g.Player.Credits < 0 {
		return errors.New("negative credits")
	}
	return nil
}

// Gateway reads and writes the checkpoint slot.
type Gateway struct {
	store storage.Backend
	slot  string
	log   zerolog.Logger
}

// NewGateway returns a Gateway over the given backend and slot name.
func NewGateway(store storage.Backend, slot string, log zerolog.Logger) *Gateway {
	return &Gateway{store: store, slot: slot, log: log}
}

// Save writes the checkpoint. The payload's version and timestamp are set
// here.
func (gw *Gateway) Save(g *SavedGame) error {
	g.Version = FormatVersion
	g.SavedAt = time.Now().UTC()

	data, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("encoding save: %w", err)
	}
	if err := gw.store.Put(gw.slot, data); err != nil {
		return fmt.Errorf("writing save slot %q: %w", gw.slot, err)
	}
	gw.log.Debug().Str("slot", gw.slot).Int("bytes", len(data)).Msg("checkpoint saved")
	return nil
}

// Load returns the stored checkpoint, or nil when the slot is empty.
// A payload that fails to decode or validate is deleted and nil is
// returned, forcing a cold start.
func (gw *Gateway) Load() (*SavedGame, error) {
	data, err := gw.store.Get(gw.slot)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading save slot %q: %w", gw.slot, err)
	}

	var g SavedGame
	if err := json.Unmarshal(data, &g); err != nil {
		gw.discard("undecodable save", err)
		return nil, nil
	}
	if err := g.Validate(); err != nil {
		gw.discard("invalid save", err)
		return nil, nil
	}
	return &g, nil
}

// Clear removes the checkpoint slot.
func (gw *Gateway) Clear() error {
	return gw.store.Delete(gw.slot)
}

func (gw *Gateway) discard(reason string, err error) {
	gw.log.Warn().Err(err).Str("slot", gw.slot).Msg(reason + ", discarding")
	if derr := gw.store.Delete(gw.slot); derr != nil {
		gw.log.Error().Err(derr).Str("slot", gw.slot).Msg("failed to discard save")
	}
}
