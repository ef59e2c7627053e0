package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/srw-lite/engine/internal/dispatcher"
	"github.com/srw-lite/engine/internal/model"
	"github.com/srw-lite/engine/internal/session"
)

type repl struct {
	s   *session.Session
	d   *dispatcher.Dispatcher
	log zerolog.Logger
}

func newREPL(s *session.Session, d *dispatcher.Dispatcher, log zerolog.Logger) *repl {
	return &repl{s: s, d: d, log: log}
}

func (r *repl) registerHandlers() {
	r.d.Register("help", r.cmdHelp)
	r.d.Register("status", r.cmdStatus)
	r.d.Register("units", r.cmdUnits)
	r.d.Register("enemies", r.cmdEnemies)
	r.d.Register("items", r.cmdItems)

	r.d.Register("select", r.cmdSelect, dispatcher.Logged())
	r.d.Register("spirit", r.cmdSpirit, dispatcher.Logged())
	r.d.Register("attack", r.cmdAttack, dispatcher.Logged())
	r.d.Register("wait", r.cmdWait, dispatcher.Logged())
	r.d.Register("cancel", r.cmdCancel)
	r.d.Register("end", r.cmdEnd, dispatcher.Logged())

	r.d.Register("start", r.cmdStart, dispatcher.Logged())
	r.d.Register("sortie", r.cmdSortie, dispatcher.Logged())
	r.d.Register("return", r.cmdReturn, dispatcher.Logged())

	r.d.Register("equip", r.cmdEquip, dispatcher.Logged())
	r.d.Register("unequip", r.cmdUnequip, dispatcher.Logged())
	r.d.Register("upgrade", r.cmdUpgrade, dispatcher.Logged())
	r.d.Register("outfit", r.cmdOutfit, dispatcher.Logged())

	r.d.Register("auto", r.cmdAuto, dispatcher.Logged())

	// Saves are fire-and-forget; a second save request while one is
	// writing is simply dropped.
	r.d.Register("save", r.cmdSave, dispatcher.Buffered(1))
}

// loop reads commands until EOF, "quit", or context cancellation, while a
// background ticker prints new battle log entries.
func (r *repl) loop(ctx context.Context) {
	fmt.Println(`srw-engine console. Type "help" for commands, "quit" to exit.`)

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	printer := time.NewTicker(200 * time.Millisecond)
	defer printer.Stop()
	lastMsgID := 0

	flush := func() {
		for _, m := range r.s.MessagesSince(lastMsgID) {
			fmt.Printf("  [%s] %s\n", m.Kind, m.Text)
			lastMsgID = m.ID
		}
	}

	for {
		select {
		case <-ctx.Done():
			flush()
			return
		case <-printer.C:
			flush()
		case line, ok := <-lines:
			if !ok {
				flush()
				return
			}
			fields := strings.Fields(line)
			if len(fields) == 0 {
				continue
			}
			if fields[0] == "quit" || fields[0] == "exit" {
				flush()
				return
			}
			result, err := r.d.Dispatch(dispatcher.Event{
				Command:   fields[0],
				Args:      fields[1:],
				Timestamp: time.Now(),
			})
			flush()
			if err != nil {
				fmt.Println("error:", err)
				continue
			}
			if str, ok := result.(string); ok && str != "" {
				fmt.Println(str)
			}
		}
	}
}

// --- handlers ---------------------------------------------------------

func (r *repl) cmdHelp(dispatcher.Event) (any, error) {
	return strings.TrimSpace(`
status | units | enemies | items     inspect the field and the inventory
select <unit>                        pick the unit that acts next
spirit <id>                          use a spirit command (strike/alert/valor/pressure)
attack [enemy]                       open targeting, or attack the given enemy
wait | cancel | end                  hold position, step back, end the turn
start | sortie | return              briefing -> battle, hangar -> briefing, battle -> hangar
equip <unit> <item>                  mount an owned item
unequip <unit> <WEAPON|ARMOR|BOOSTER>
upgrade <item>                       spend credits on an item level
outfit                               run hangar automation once
auto on|off                          hand control to the computer
save | quit`), nil
}

func (r *repl) cmdStatus(dispatcher.Event) (any, error) {
	snap := r.s.Snapshot()
	var b strings.Builder
	fmt.Fprintf(&b, "phase: %s  scenario %d (%s)  cycle %d  turn %d\n",
		snap.Phase, snap.ScenarioIndex+1, snap.ScenarioTitle, snap.Cycle+1, snap.TurnCount)
	fmt.Fprintf(&b, "credits: %d  delegation: %v", snap.Credits, snap.DelegationEnabled)
	if snap.SelectedUnitID != "" {
		if u := model.FindUnit(snap.BattlePlayers, snap.SelectedUnitID); u != nil {
			fmt.Fprintf(&b, "\nselected: %s (%s)", u.Name, u.PilotName)
		}
	}
	return b.String(), nil
}

func (r *repl) cmdUnits(dispatcher.Event) (any, error) {
	snap := r.s.Snapshot()
	units := snap.BattlePlayers
	if len(units) == 0 {
		units = snap.Roster
	}
	return formatUnits(units), nil
}

func (r *repl) cmdEnemies(dispatcher.Event) (any, error) {
	snap := r.s.Snapshot()
	if len(snap.BattleEnemies) == 0 {
		return "no enemies on the field", nil
	}
	return formatUnits(snap.BattleEnemies), nil
}

func (r *repl) cmdItems(dispatcher.Event) (any, error) {
	snap := r.s.Snapshot()
	if len(snap.Inventory) == 0 {
		return "inventory is empty", nil
	}
	var b strings.Builder
	for i, inst := range snap.Inventory {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%2d. %s  Lv%d  (%s)", i+1, inst.DefinitionID, inst.Level, shortID(inst.InstanceID))
	}
	return b.String(), nil
}

func (r *repl) cmdSelect(e dispatcher.Event) (any, error) {
	if len(e.Args) != 1 {
		return nil, fmt.Errorf("usage: select <unit>")
	}
	snap := r.s.Snapshot()
	id, err := resolveUnit(e.Args[0], snap.BattlePlayers)
	if err != nil {
		return nil, err
	}
	return nil, r.s.SelectUnit(id)
}

func (r *repl) cmdSpirit(e dispatcher.Event) (any, error) {
	if len(e.Args) != 1 {
		return nil, fmt.Errorf("usage: spirit <id>")
	}
	return nil, r.s.UseSpirit(e.Args[0])
}

func (r *repl) cmdAttack(e dispatcher.Event) (any, error) {
	if len(e.Args) == 0 {
		return nil, r.s.ChooseAttack()
	}
	if r.s.Phase() == model.PhaseAction {
		if err := r.s.ChooseAttack(); err != nil {
			return nil, err
		}
	}
	snap := r.s.Snapshot()
	id, err := resolveUnit(e.Args[0], snap.BattleEnemies)
	if err != nil {
		return nil, err
	}
	return nil, r.s.Attack(id)
}

func (r *repl) cmdWait(dispatcher.Event) (any, error)   { return nil, r.s.Wait() }
func (r *repl) cmdCancel(dispatcher.Event) (any, error) { return nil, r.s.Cancel() }
func (r *repl) cmdEnd(dispatcher.Event) (any, error)    { return nil, r.s.EndPlayerTurn() }
func (r *repl) cmdStart(dispatcher.Event) (any, error)  { return nil, r.s.StartScenario() }
func (r *repl) cmdSortie(dispatcher.Event) (any, error) { return nil, r.s.Sortie() }
func (r *repl) cmdReturn(dispatcher.Event) (any, error) { return nil, r.s.ReturnToHangar() }
func (r *repl) cmdOutfit(dispatcher.Event) (any, error) { return nil, r.s.AutoOutfit() }

func (r *repl) cmdEquip(e dispatcher.Event) (any, error) {
	if len(e.Args) != 2 {
		return nil, fmt.Errorf("usage: equip <unit> <item>")
	}
	snap := r.s.Snapshot()
	unitID, err := resolveUnit(e.Args[0], snap.Roster)
	if err != nil {
		return nil, err
	}
	instID, err := resolveItem(e.Args[1], snap.Inventory)
	if err != nil {
		return nil, err
	}
	return nil, r.s.EquipItem(unitID, instID)
}

func (r *repl) cmdUnequip(e dispatcher.Event) (any, error) {
	if len(e.Args) != 2 {
		return nil, fmt.Errorf("usage: unequip <unit> <WEAPON|ARMOR|BOOSTER>")
	}
	snap := r.s.Snapshot()
	unitID, err := resolveUnit(e.Args[0], snap.Roster)
	if err != nil {
		return nil, err
	}
	return nil, r.s.UnequipItem(unitID, model.SlotType(strings.ToUpper(e.Args[1])))
}

func (r *repl) cmdUpgrade(e dispatcher.Event) (any, error) {
	if len(e.Args) != 1 {
		return nil, fmt.Errorf("usage: upgrade <item>")
	}
	snap := r.s.Snapshot()
	instID, err := resolveItem(e.Args[0], snap.Inventory)
	if err != nil {
		return nil, err
	}
	return nil, r.s.UpgradeItem(instID)
}

func (r *repl) cmdAuto(e dispatcher.Event) (any, error) {
	if len(e.Args) != 1 || (e.Args[0] != "on" && e.Args[0] != "off") {
		return nil, fmt.Errorf("usage: auto on|off")
	}
	r.s.SetDelegation(e.Args[0] == "on")
	return nil, nil
}

func (r *repl) cmdSave(dispatcher.Event) (any, error) {
	return nil, r.s.SaveNow()
}

// --- formatting and lookup --------------------------------------------

func formatUnits(units []model.UnitInstance) string {
	var b strings.Builder
	for i, u := range units {
		if i > 0 {
			b.WriteByte('\n')
		}
		status := ""
		if !u.Alive() {
			status = "  DESTROYED"
		} else if u.HasActed {
			status = "  done"
		}
		if u.ActiveEffect != model.EffectNone {
			status += "  [" + string(u.ActiveEffect) + "]"
		}
		fmt.Fprintf(&b, "%2d. %-32s Lv%-2d HP %d/%d  SP %d/%d  %s%s",
			i+1, fmt.Sprintf("%s (%s)", u.Name, u.PilotName), u.Level,
			u.HP, u.Effective.HP, u.SP, u.Effective.SP, u.Terrain, status)
	}
	return b.String()
}

// resolveUnit accepts a 1-based list index, a full unit ID, or a unique ID
// prefix.
func resolveUnit(arg string, units []model.UnitInstance) (string, error) {
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(units) {
			return "", fmt.Errorf("no unit #%d", n)
		}
		return units[n-1].ID, nil
	}
	match := ""
	for i := range units {
		if units[i].ID == arg {
			return arg, nil
		}
		if strings.HasPrefix(units[i].ID, arg) {
			if match != "" {
				return "", fmt.Errorf("ambiguous unit %q", arg)
			}
			match = units[i].ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("no unit %q", arg)
	}
	return match, nil
}

func resolveItem(arg string, inv []model.EquipmentInstance) (string, error) {
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(inv) {
			return "", fmt.Errorf("no item #%d", n)
		}
		return inv[n-1].InstanceID, nil
	}
	match := ""
	for i := range inv {
		if inv[i].InstanceID == arg {
			return arg, nil
		}
		if strings.HasPrefix(inv[i].InstanceID, arg) || inv[i].DefinitionID == arg {
			if match != "" {
				return "", fmt.Errorf("ambiguous item %q", arg)
			}
			match = inv[i].InstanceID
		}
	}
	if match == "" {
		return "", fmt.Errorf("no item %q", arg)
	}
	return match, nil
}

func shortID(id string) string {
	if len(id) > 13 {
		return id[:13]
	}
	return id
}
