package session

import (
	"math/rand"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srw-lite/engine/internal/battle"
	"github.com/srw-lite/engine/internal/data"
	"github.com/srw-lite/engine/internal/model"
	"github.com/srw-lite/engine/internal/narration"
	"github.com/srw-lite/engine/internal/persist"
	"github.com/srw-lite/engine/internal/position"
	"github.com/srw-lite/engine/internal/scenario"
	"github.com/srw-lite/engine/internal/stats"
	"github.com/srw-lite/engine/internal/storage/memory"
	"github.com/srw-lite/engine/internal/unit"
)

func testDeps(gw *persist.Gateway) Deps {
	cat := data.Default()
	eng := stats.NewEngine(cat)
	rng := rand.New(rand.NewSource(42))
	return Deps{
		Catalog:  cat,
		Stats:    eng,
		Factory:  unit.NewFactory(cat, eng, position.NewRandomSource(rng)),
		Resolver: battle.NewResolver(rng),
		Director: scenario.NewDirector(cat),
		Narrator: narration.NewCanned(rng),
		Gateway:  gw,
		Log:      zerolog.Nop(),
	}
}

func newTestSession(t *testing.T) *Session {
	t.Helper()
	s, err := New(testDeps(nil))
	require.NoError(t, err)
	return s
}

// inBattle returns a session deployed into the first scenario.
func inBattle(t *testing.T) *Session {
	t.Helper()
	s := newTestSession(t)
	require.NoError(t, s.StartScenario())
	return s
}

func TestNew_FreshCampaign(t *testing.T) {
	s := newTestSession(t)
	snap := s.Snapshot()

	assert.Equal(t, model.PhaseScenarioIntro, snap.Phase)
	assert.Equal(t, 0, snap.ScenarioIndex)
	assert.Equal(t, 0, snap.Cycle)
	assert.Equal(t, data.InitialCredits, snap.Credits)
	require.Len(t, snap.Roster, 3)
	assert.NotEmpty(t, snap.Inventory)

	// Default gear was claimed out of the shared inventory.
	gundam := snap.Roster[0]
	assert.Equal(t, "rx-78-2-gundam", gundam.DefinitionID)
	assert.NotEmpty(t, gundam.Equipped[model.SlotWeapon])
	assert.Equal(t, gundam.Effective.HP, gundam.HP)

	// The briefing is already in the log.
	msgs := s.MessagesSince(0)
	require.NotEmpty(t, msgs)
}

func TestStartScenario(t *testing.T) {
	s := inBattle(t)
	snap := s.Snapshot()

	assert.Equal(t, model.PhaseSelectUnit, snap.Phase)
	assert.Equal(t, 1, snap.TurnCount)
	assert.Len(t, snap.BattlePlayers, 3)
	assert.Len(t, snap.BattleEnemies, 3)
	for _, e := range snap.BattleEnemies {
		assert.False(t, e.IsPlayer)
		assert.True(t, e.Alive())
	}

	// Starting again without a briefing is rejected.
	assert.ErrorIs(t, s.StartScenario(), ErrWrongPhase)
}

func TestSelectUnit(t *testing.T) {
	s := inBattle(t)
	snap := s.Snapshot()
	id := snap.BattlePlayers[0].ID

	require.NoError(t, s.SelectUnit(id))
	assert.Equal(t, model.PhaseAction, s.Phase())
	assert.Equal(t, id, s.Snapshot().SelectedUnitID)

	// Selecting while in the action phase is rejected.
	assert.ErrorIs(t, s.SelectUnit(id), ErrWrongPhase)

	require.NoError(t, s.Cancel())
	assert.Error(t, s.SelectUnit("nobody"))
}

func TestUseSpirit(t *testing.T) {
	s := inBattle(t)
	id := s.Snapshot().BattlePlayers[0].ID
	require.NoError(t, s.SelectUnit(id))

	require.NoError(t, s.UseSpirit("strike"))
	snap := s.Snapshot()
	u := model.FindUnit(snap.BattlePlayers, id)
	assert.Equal(t, model.EffectGuaranteedHit, u.ActiveEffect)
	assert.Equal(t, u.Effective.SP-20, u.SP)

	// One effect at a time.
	assert.Error(t, s.UseSpirit("valor"))
	assert.Empty(t, s.AffordableSpirits())

	// Unknown spirit.
	assert.Error(t, s.UseSpirit("zeal"))

	// SP exhaustion.
	s.mu.Lock()
	armed := model.FindUnit(s.battlePlayers, id)
	armed.ActiveEffect = model.EffectNone
	armed.SP = 5
	s.mu.Unlock()
	assert.Error(t, s.UseSpirit("alert"))
}

func TestAttack_DefeatAwardsXPAndCredits(t *testing.T) {
	s := inBattle(t)
	snap := s.Snapshot()
	attackerID := snap.BattlePlayers[0].ID
	targetID := snap.BattleEnemies[0].ID

	s.mu.Lock()
	model.FindUnit(s.battleEnemies, targetID).HP = 1
	s.mu.Unlock()

	require.NoError(t, s.SelectUnit(attackerID))
	require.NoError(t, s.UseSpirit("strike"))
	require.NoError(t, s.ChooseAttack())
	require.NoError(t, s.Attack(targetID))

	snap = s.Snapshot()
	target := model.FindUnit(snap.BattleEnemies, targetID)
	assert.False(t, target.Alive())

	attacker := model.FindUnit(snap.BattlePlayers, attackerID)
	assert.True(t, attacker.HasActed)
	assert.Equal(t, data.XPForAttack+data.XPForDefeat, attacker.XP)
	assert.Equal(t, data.InitialCredits+stats.KillReward(0), snap.Credits)
	assert.Equal(t, model.PhaseSelectUnit, snap.Phase)
	assert.Empty(t, snap.SelectedUnitID)
}

func TestAttack_RejectsDeadTarget(t *testing.T) {
	s := inBattle(t)
	snap := s.Snapshot()
	targetID := snap.BattleEnemies[0].ID

	s.mu.Lock()
	model.FindUnit(s.battleEnemies, targetID).HP = 0
	s.mu.Unlock()

	require.NoError(t, s.SelectUnit(snap.BattlePlayers[0].ID))
	require.NoError(t, s.ChooseAttack())
	assert.Error(t, s.Attack(targetID))
}

func TestAttack_MirrorsProgressionToRoster(t *testing.T) {
	s := inBattle(t)
	snap := s.Snapshot()
	attackerID := snap.BattlePlayers[0].ID
	targetID := snap.BattleEnemies[0].ID

	require.NoError(t, s.SelectUnit(attackerID))
	require.NoError(t, s.UseSpirit("strike"))
	require.NoError(t, s.ChooseAttack())
	require.NoError(t, s.Attack(targetID))

	// The roster copy carries the XP right away, not only at battle end, so
	// a save taken mid-battle keeps it.
	snap = s.Snapshot()
	b := model.FindUnit(snap.BattlePlayers, attackerID)
	r := model.FindUnit(snap.Roster, attackerID)
	require.NotNil(t, r)
	assert.GreaterOrEqual(t, b.XP, data.XPForAttack)
	assert.Equal(t, b.XP, r.XP)
	assert.Equal(t, b.Level, r.Level)
	assert.Equal(t, b.XPToNext, r.XPToNext)
}

func TestEnemyTargeting_PicksLowestHP(t *testing.T) {
	s := inBattle(t)

	s.mu.Lock()
	s.battlePlayers[0].HP = 4000
	s.battlePlayers[1].HP = 250
	s.battlePlayers[2].HP = 0
	wantID := s.battlePlayers[1].ID
	for i := 0; i < 10; i++ {
		got := s.weakestLivingPlayerLocked()
		require.NotNil(t, got)
		assert.Equal(t, wantID, got.ID)
	}
	for i := range s.battlePlayers {
		s.battlePlayers[i].HP = 0
	}
	none := s.weakestLivingPlayerLocked()
	s.mu.Unlock()

	assert.Nil(t, none)
}

func TestWait_KeepsArmedEffect(t *testing.T) {
	s := inBattle(t)
	id := s.Snapshot().BattlePlayers[0].ID

	require.NoError(t, s.SelectUnit(id))
	require.NoError(t, s.UseSpirit("alert"))
	require.NoError(t, s.Wait())

	u := model.FindUnit(s.Snapshot().BattlePlayers, id)
	assert.True(t, u.HasActed)
	assert.Equal(t, model.EffectGuaranteedEvade, u.ActiveEffect)
	assert.Equal(t, model.PhaseSelectUnit, s.Phase())
}

func TestWait_WastesOneShotEffect(t *testing.T) {
	s := inBattle(t)
	id := s.Snapshot().BattlePlayers[0].ID

	require.NoError(t, s.SelectUnit(id))
	require.NoError(t, s.UseSpirit("valor"))
	require.NoError(t, s.Wait())

	u := model.FindUnit(s.Snapshot().BattlePlayers, id)
	assert.Equal(t, model.EffectNone, u.ActiveEffect)
}

func TestNewTurn_ClearsLeftoverEffectsAndRepositions(t *testing.T) {
	s := inBattle(t)
	id := s.Snapshot().BattlePlayers[0].ID

	// Arm a one-shot effect that will survive into the turn boundary.
	s.mu.Lock()
	s.battlePlayers[0].ActiveEffect = model.EffectDoubleDamage
	pos := s.battlePlayers[0].Pos
	s.mu.Unlock()

	require.NoError(t, s.EndPlayerTurn())
	require.Eventually(t, func() bool {
		p := s.Phase()
		return p == model.PhaseSelectUnit || p.Terminal()
	}, 2*time.Second, 5*time.Millisecond)

	snap := s.Snapshot()
	require.Equal(t, model.PhaseSelectUnit, snap.Phase)
	moved := model.FindUnit(snap.BattlePlayers, id)
	assert.Equal(t, model.EffectNone, moved.ActiveEffect)
	assert.NotEqual(t, pos, moved.Pos)
	assert.Equal(t, position.TerrainAt(moved.Pos), moved.Terrain)
}

func TestEndPlayerTurn_RunsEnemyTurnAndRegen(t *testing.T) {
	s := inBattle(t)
	id := s.Snapshot().BattlePlayers[0].ID

	s.mu.Lock()
	model.FindUnit(s.battlePlayers, id).SP = 0
	s.mu.Unlock()

	require.NoError(t, s.EndPlayerTurn())

	require.Eventually(t, func() bool {
		p := s.Phase()
		return p == model.PhaseSelectUnit || p.Terminal()
	}, 2*time.Second, 5*time.Millisecond)

	snap := s.Snapshot()
	require.Equal(t, model.PhaseSelectUnit, snap.Phase)
	assert.Equal(t, 2, snap.TurnCount)

	u := model.FindUnit(snap.BattlePlayers, id)
	assert.Equal(t, data.SPRegenTurn, u.SP)
	assert.False(t, u.HasActed)
}

func TestVictory_ReconcilesAndAdvances(t *testing.T) {
	s := inBattle(t)
	snap := s.Snapshot()
	attackerID := snap.BattlePlayers[0].ID

	// Leave one enemy at 1 HP so a single forced hit wins the battle.
	s.mu.Lock()
	for i := range s.battleEnemies {
		s.battleEnemies[i].HP = 0
	}
	lastID := s.battleEnemies[2].ID
	s.battleEnemies[2].HP = 1
	s.mu.Unlock()

	require.NoError(t, s.SelectUnit(attackerID))
	require.NoError(t, s.UseSpirit("strike"))
	require.NoError(t, s.ChooseAttack())
	require.NoError(t, s.Attack(lastID))

	require.Equal(t, model.PhaseVictory, s.Phase())

	// Progression landed on the roster.
	snap = s.Snapshot()
	r := model.FindUnit(snap.Roster, attackerID)
	require.NotNil(t, r)
	assert.Equal(t, data.XPForAttack+data.XPForDefeat, r.XP)
	assert.Equal(t, r.Effective.HP, r.HP)

	require.NoError(t, s.ReturnToHangar())
	snap = s.Snapshot()
	assert.Equal(t, model.PhaseHangar, snap.Phase)
	assert.Equal(t, 1, snap.ScenarioIndex)
	assert.Equal(t, 0, snap.Cycle)
	assert.Empty(t, snap.BattlePlayers)
}

func TestDefeat_KeepsScenarioCursor(t *testing.T) {
	s := inBattle(t)

	s.mu.Lock()
	for i := range s.battlePlayers {
		s.battlePlayers[i].HP = 0
	}
	done := s.checkBattleEndLocked()
	s.mu.Unlock()

	require.True(t, done)
	require.Equal(t, model.PhaseDefeat, s.Phase())

	require.NoError(t, s.ReturnToHangar())
	snap := s.Snapshot()
	assert.Equal(t, model.PhaseHangar, snap.Phase)
	assert.Equal(t, 0, snap.ScenarioIndex)
}

func TestNGPlusRollover(t *testing.T) {
	s := newTestSession(t)

	s.mu.Lock()
	s.scenarioIndex = len(s.cat.Scenarios) - 1
	s.phase = model.PhaseVictory
	s.mu.Unlock()

	require.NoError(t, s.ReturnToHangar())
	snap := s.Snapshot()
	assert.Equal(t, 0, snap.ScenarioIndex)
	assert.Equal(t, 1, snap.Cycle)

	// NG+ enemies come out scaled.
	require.NoError(t, s.Sortie())
	require.NoError(t, s.StartScenario())
	base := data.Default().Units["ms-06-zaku-ii"].Base
	for _, e := range s.Snapshot().BattleEnemies {
		if e.DefinitionID == "ms-06-zaku-ii" {
			assert.Equal(t, int(float64(base.HP)*1.1+0.5), e.Base.HP)
		}
	}
}

func TestCheckBattleEnd_Idempotent(t *testing.T) {
	s := inBattle(t)

	s.mu.Lock()
	for i := range s.battleEnemies {
		s.battleEnemies[i].HP = 0
	}
	first := s.checkBattleEndLocked()
	msgCount := len(s.messages)
	second := s.checkBattleEndLocked()
	s.mu.Unlock()

	assert.True(t, first)
	assert.True(t, second)
	assert.Len(t, s.MessagesSince(0), msgCount)
}

func TestSetDelegation(t *testing.T) {
	s := newTestSession(t)

	assert.False(t, s.DelegationEnabled())
	s.SetDelegation(true)
	assert.True(t, s.DelegationEnabled())

	// Re-enabling is a no-op and logs nothing new.
	before := len(s.MessagesSince(0))
	s.SetDelegation(true)
	assert.Len(t, s.MessagesSince(0), before)
}

func TestCheckpointRoundTrip(t *testing.T) {
	store := memory.New()
	gw := persist.NewGateway(store, "default", zerolog.Nop())

	deps := testDeps(gw)
	s, err := New(deps)
	require.NoError(t, err)

	s.mu.Lock()
	sv := s.buildSaveLocked()
	s.mu.Unlock()
	require.NoError(t, gw.Save(sv))

	loaded, err := gw.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)

	restored, err := Restore(deps, loaded)
	require.NoError(t, err)

	snap := restored.Snapshot()
	assert.Equal(t, model.PhaseScenarioIntro, snap.Phase)
	assert.Len(t, snap.Roster, 3)
	assert.Equal(t, data.InitialCredits, snap.Credits)
}

func TestRestore_MidBattleCheckpoint(t *testing.T) {
	deps := testDeps(nil)
	s, err := New(deps)
	require.NoError(t, err)
	require.NoError(t, s.StartScenario())

	s.mu.Lock()
	sv := s.buildSaveLocked()
	s.mu.Unlock()

	restored, err := Restore(deps, sv)
	require.NoError(t, err)

	snap := restored.Snapshot()
	assert.Equal(t, model.PhaseSelectUnit, snap.Phase)
	assert.Len(t, snap.BattlePlayers, 3)
	assert.Len(t, snap.BattleEnemies, 3)
	assert.Equal(t, 1, snap.TurnCount)
}

func TestRestore_RederivesRosterFromDefinitions(t *testing.T) {
	deps := testDeps(nil)
	s, err := New(deps)
	require.NoError(t, err)

	s.mu.Lock()
	s.roster[0].Level = 3
	s.roster[0].XPToNext = 300
	sv := s.buildSaveLocked()
	s.mu.Unlock()
	sv.Phase = model.PhaseHangar

	restored, err := Restore(deps, sv)
	require.NoError(t, err)

	r := restored.Snapshot().Roster[0]
	def, _ := deps.Catalog.Unit(r.DefinitionID)
	assert.Equal(t, def.Base.Add(data.LevelUpGains.Scale(2)), r.Base)
	assert.Equal(t, r.Effective.HP, r.HP)
}

func TestRestore_RederivesBattleUnits(t *testing.T) {
	deps := testDeps(nil)
	s, err := New(deps)
	require.NoError(t, err)
	require.NoError(t, s.StartScenario())

	s.mu.Lock()
	sv := s.buildSaveLocked()
	s.mu.Unlock()

	// A hand-edited blob cannot smuggle out-of-range pools or stale
	// transient state past the factory rebuild.
	sv.BattlePlayers[0].HP = 999999
	sv.BattlePlayers[0].HasActed = true
	sv.BattlePlayers[1].EN = -50
	sv.BattlePlayers[2].HP = 500
	sv.BattleEnemies[0].HP = 999999

	restored, err := Restore(deps, sv)
	require.NoError(t, err)

	snap := restored.Snapshot()
	require.Equal(t, model.PhaseSelectUnit, snap.Phase)

	p0 := model.FindUnit(snap.BattlePlayers, sv.BattlePlayers[0].ID)
	require.NotNil(t, p0)
	assert.Equal(t, p0.Effective.HP, p0.HP)
	assert.False(t, p0.HasActed)

	p1 := model.FindUnit(snap.BattlePlayers, sv.BattlePlayers[1].ID)
	require.NotNil(t, p1)
	assert.Equal(t, 0, p1.EN)

	// Legitimate battle damage survives the rebuild.
	p2 := model.FindUnit(snap.BattlePlayers, sv.BattlePlayers[2].ID)
	require.NotNil(t, p2)
	assert.Equal(t, 500, p2.HP)

	e0 := model.FindUnit(snap.BattleEnemies, sv.BattleEnemies[0].ID)
	require.NotNil(t, e0)
	assert.Equal(t, e0.Effective.HP, e0.HP)
}

func TestCheckBattleEnd_NoForcesNoBattle(t *testing.T) {
	s := newTestSession(t)

	s.mu.Lock()
	done := s.checkBattleEndLocked()
	phase := s.phase
	s.mu.Unlock()

	assert.False(t, done)
	assert.Equal(t, model.PhaseScenarioIntro, phase)
}

func TestRestore_UnknownDefinitionDropped(t *testing.T) {
	deps := testDeps(nil)
	sv := &persist.SavedGame{
		Phase: model.PhaseHangar,
		Roster: []model.UnitInstance{
			{ID: "p1", DefinitionID: "retired-suit", Level: 1, XPToNext: 100},
		},
	}

	_, err := Restore(deps, sv)
	assert.Error(t, err)
}
