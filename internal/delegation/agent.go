// Package delegation is the auto-play agent. It drives the session through
// the same public commands a player would issue, one small step per tick,
// so manual control can be taken back between any two steps.
package delegation

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/srw-lite/engine/internal/model"
	"github.com/srw-lite/engine/internal/session"
)

// Agent plays the game while delegation is enabled on the session.
type Agent struct {
	s            *session.Session
	log          zerolog.Logger
	interval     time.Duration
	spiritChance float64
	rng          *rand.Rand
}

// New returns an Agent stepping every interval. spiritChance is the
// per-activation probability of firing a random affordable spirit command
// before attacking.
func New(s *session.Session, log zerolog.Logger, interval time.Duration, spiritChance float64, rng *rand.Rand) *Agent {
	if interval <= 0 {
		interval = 50 * time.Millisecond
	}
	return &Agent{s: s, log: log, interval: interval, spiritChance: spiritChance, rng: rng}
}

// Run ticks until the context is canceled.
func (a *Agent) Run(ctx context.Context) {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.step()
		}
	}
}

// step performs at most one command. Delegation state and phase are
// re-checked on every tick; a phase change between the check and the
// command only yields a wrong-phase error, which is dropped.
func (a *Agent) step() {
	if !a.s.DelegationEnabled() {
		return
	}

	switch a.s.Phase() {
	case model.PhaseSelectUnit:
		id := a.s.NextActionableUnitID()
		if id == "" {
			return
		}
		a.try("select", a.s.SelectUnit(id))

	case model.PhaseAction:
		if a.rng.Float64() < a.spiritChance {
			if spirits := a.s.AffordableSpirits(); len(spirits) > 0 {
				sc := spirits[a.rng.Intn(len(spirits))]
				a.try("spirit", a.s.UseSpirit(sc.ID))
				return
			}
		}
		a.try("choose-attack", a.s.ChooseAttack())

	case model.PhaseSelectTarget:
		id := a.s.WeakestEnemyID()
		if id == "" {
			return
		}
		a.try("attack", a.s.Attack(id))

	case model.PhaseVictory, model.PhaseDefeat:
		a.try("return", a.s.ReturnToHangar())

	case model.PhaseHangar:
		if !a.s.Snapshot().HangarAutoDone {
			a.try("auto-outfit", a.s.AutoOutfit())
			return
		}
		a.try("sortie", a.s.Sortie())

	case model.PhaseScenarioIntro:
		a.try("start", a.s.StartScenario())
	}
}

func (a *Agent) try(action string, err error) {
	if err == nil || errors.Is(err, session.ErrWrongPhase) {
		return
	}
	a.log.Debug().Err(err).Str("action", action).Msg("delegation step failed")
}
