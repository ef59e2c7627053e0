package delegation

import (
	"context"
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
	"github.com/srw-lite/engine/internal/position"
	"github.com/srw-lite/engine/internal/scenario"
	"github.com/srw-lite/engine/internal/session"
	"github.com/srw-lite/engine/internal/stats"
	"github.com/srw-lite/engine/internal/unit"
)

func newSession(t *testing.T, seed int64) *session.Session {
	t.Helper()
	cat := data.Default()
	eng := stats.NewEngine(cat)
	rng := rand.New(rand.NewSource(seed))
	s, err := session.New(session.Deps{
		Catalog:  cat,
		Stats:    eng,
		Factory:  unit.NewFactory(cat, eng, position.NewRandomSource(rng)),
		Resolver: battle.NewResolver(rng),
		Director: scenario.NewDirector(cat),
		Narrator: narration.NewCanned(rng),
		Log:      zerolog.Nop(),
	})
	require.NoError(t, err)
	return s
}

func TestAgent_PlaysThroughFirstScenario(t *testing.T) {
	s := newSession(t, 7)
	s.SetDelegation(true)

	agent := New(s, zerolog.Nop(), time.Millisecond, 0.33, rand.New(rand.NewSource(7)))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go agent.Run(ctx)

	// The squad heavily outguns the opening wave; the agent should brief,
	// fight, win and move the campaign forward on its own.
	require.Eventually(t, func() bool {
		snap := s.Snapshot()
		return snap.ScenarioIndex >= 1
	}, 30*time.Second, 10*time.Millisecond)
}

func TestAgent_IdleWhenDisabled(t *testing.T) {
	s := newSession(t, 11)

	agent := New(s, zerolog.Nop(), time.Millisecond, 0.33, rand.New(rand.NewSource(11)))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go agent.Run(ctx)

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, model.PhaseScenarioIntro, s.Phase())
}

func TestAgent_StopsOnCancel(t *testing.T) {
	s := newSession(t, 13)
	s.SetDelegation(true)

	agent := New(s, zerolog.Nop(), time.Millisecond, 0, rand.New(rand.NewSource(13)))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		agent.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return s.Phase() != model.PhaseScenarioIntro
	}, 5*time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("agent did not stop after cancel")
	}
}

func TestAgent_ManualOverride(t *testing.T) {
	s := newSession(t, 17)
	s.SetDelegation(true)

	agent := New(s, zerolog.Nop(), time.Millisecond, 0, rand.New(rand.NewSource(17)))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go agent.Run(ctx)

	require.Eventually(t, func() bool {
		return s.Phase().InBattle()
	}, 5*time.Second, 5*time.Millisecond)

	// Taking back control stops further agent commands.
	s.SetDelegation(false)
	assert.False(t, s.DelegationEnabled())
}
