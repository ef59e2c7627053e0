// Package narration produces the flavor text shown at scenario boundaries.
// The engine only depends on the Narrator interface, so a generative backend
// can be swapped in without touching the session.
package narration

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/srw-lite/engine/internal/model"
)

// Narrator supplies flavor text. Implementations may block (remote
// services), so every call takes a context.
type Narrator interface {
	ScenarioIntro(ctx context.Context, sc model.ScenarioDefinition, cycle int) (string, error)
	AttackReport(ctx context.Context, attacker, defender model.UnitInstance, damage int, critical, missed, defeated bool) (string, error)
	Victory(ctx context.Context, sc model.ScenarioDefinition) (string, error)
	Defeat(ctx context.Context, sc model.ScenarioDefinition) (string, error)
}

// Canned is the built-in narrator. It decorates the scenario's own intro
// line and picks endings from fixed pools.
type Canned struct {
	rng *rand.Rand
}

// NewCanned returns the built-in narrator.
func NewCanned(rng *rand.Rand) *Canned {
	return &Canned{rng: rng}
}

var victoryLines = []string{
	"The enemy force is in full retreat. The sector is ours!",
	"All hostile signals lost. A hard-won victory.",
	"Enemy units silenced. The squad returns to the hangar.",
}

var defeatLines = []string{
	"All units down... the squad withdraws under covering fire.",
	"We've lost too many. Fall back and regroup.",
	"The line is broken. Retreat and live to fight again.",
}

func (c *Canned) ScenarioIntro(_ context.Context, sc model.ScenarioDefinition, cycle int) (string, error) {
	if cycle > 0 {
		return fmt.Sprintf("[Cycle %d] %s", cycle+1, sc.Intro), nil
	}
	return sc.Intro, nil
}

func (c *Canned) AttackReport(_ context.Context, attacker, defender model.UnitInstance, damage int, critical, missed, defeated bool) (string, error) {
	report := fmt.Sprintf("%s's %s engages %s's %s! ",
		attacker.PilotName, attacker.Name, defender.PilotName, defender.Name)
	switch {
	case missed:
		report += "The shot goes wide!"
	default:
		report += fmt.Sprintf("%d damage dealt.", damage)
		if critical {
			report += " A devastating blow!"
		}
		if defeated {
			report += fmt.Sprintf(" %s goes down in flames!", defender.Name)
		}
	}
	return report, nil
}

func (c *Canned) Victory(_ context.Context, _ model.ScenarioDefinition) (string, error) {
	return victoryLines[c.rng.Intn(len(victoryLines))], nil
}

func (c *Canned) Defeat(_ context.Context, _ model.ScenarioDefinition) (string, error) {
	return defeatLines[c.rng.Intn(len(defeatLines))], nil
}
