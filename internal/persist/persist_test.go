package persist

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srw-lite/engine/internal/model"
	"github.com/srw-lite/engine/internal/storage/memory"
)

func validSave() *SavedGame {
	return &SavedGame{
		Version:       FormatVersion,
		ScenarioIndex: 2,
		Cycle:         1,
		TurnCount:     4,
		Phase:         model.PhaseHangar,
		Player:        model.PlayerMeta{Credits: 12500},
		Roster: []model.UnitInstance{
			{
				ID: "player-1", DefinitionID: "rx-78-2-gundam",
				Level: 3, XPToNext: 300, IsPlayer: true,
			},
		},
	}
}

func newGateway(t *testing.T) (*Gateway, *memory.Backend) {
	t.Helper()
	store := memory.New()
	return NewGateway(store, "default", zerolog.Nop()), store
}

func TestGateway_RoundTrip(t *testing.T) {
	gw, _ := newGateway(t)

	require.NoError(t, gw.Save(validSave()))

	loaded, err := gw.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, 2, loaded.ScenarioIndex)
	assert.Equal(t, 1, loaded.Cycle)
	assert.Equal(t, model.PhaseHangar, loaded.Phase)
	assert.Equal(t, 12500, loaded.Player.Credits)
	require.Len(t, loaded.Roster, 1)
	assert.Equal(t, "player-1", loaded.Roster[0].ID)
	assert.False(t, loaded.SavedAt.IsZero())
}

func TestGateway_LoadEmptySlot(t *testing.T) {
	gw, _ := newGateway(t)

	loaded, err := gw.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestGateway_DiscardsCorruptSave(t *testing.T) {
	gw, store := newGateway(t)

	require.NoError(t, store.Put("default", []byte("{not json")))

	loaded, err := gw.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)

	// The bad payload is gone; next load is a clean empty slot.
	_, err = store.Get("default")
	assert.Error(t, err)
}

func TestGateway_DiscardsInvalidSave(t *testing.T) {
	gw, _ := newGateway(t)

	bad := validSave()
	bad.Roster = nil
	require.NoError(t, gw.Save(bad))

	loaded, err := gw.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestSavedGame_Validate(t *testing.T) {
	assert.NoError(t, validSave().Validate())

	g := validSave()
	g.Version = 99
	assert.Error(t, g.Validate())

	g = validSave()
	g.Phase = "LIMBO"
	assert.Error(t, g.Validate())

	g = validSave()
	g.Cycle = -1
	assert.Error(t, g.Validate())

	g = validSave()
	g.Roster[0].XPToNext = 0
	assert.Error(t, g.Validate())

	g = validSave()
	g.Player.Credits = -5
	assert.Error(t, g.Validate())
}

func TestSavedGame_ValidateRejectsDoubleEquip(t *testing.T) {
	g := validSave()
	g.Roster[0].Equipped = map[model.SlotType]string{model.SlotWeapon: "inst-1"}
	g.Roster = append(g.Roster, model.UnitInstance{
		ID: "player-2", DefinitionID: "rgm-79-gm",
		Level: 1, XPToNext: 100, IsPlayer: true,
		Equipped: map[model.SlotType]string{model.SlotArmor: "inst-1"},
	})
	assert.Error(t, g.Validate())

	// The same instance in two slots of one unit is just as bad.
	g = validSave()
	g.Roster[0].Equipped = map[model.SlotType]string{
		model.SlotWeapon: "inst-1",
		model.SlotArmor:  "inst-1",
	}
	assert.Error(t, g.Validate())
}

func TestSavedGame_ValidateBattleUnits(t *testing.T) {
	g := validSave()
	g.Phase = model.PhaseSelectUnit
	g.BattlePlayers = []model.UnitInstance{
		{ID: "player-1", DefinitionID: "rx-78-2-gundam", HP: 12000, EN: 150, SP: 100},
	}
	g.BattleEnemies = []model.UnitInstance{
		{ID: "enemy-1", DefinitionID: "ms-06-zaku-ii", HP: 4200, EN: 90, SP: 50},
	}
	require.NoError(t, g.Validate())

	g.BattleEnemies[0].HP = -1
	assert.Error(t, g.Validate())

	g.BattleEnemies[0].HP = 4200
	g.BattlePlayers[0].ID = ""
	assert.Error(t, g.Validate())
}

func TestGateway_Clear(t *testing.T) {
	gw, _ := newGateway(t)

	require.NoError(t, gw.Save(validSave()))
	require.NoError(t, gw.Clear())

	loaded, err := gw.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)
}
