// Package scenario tracks campaign progression: which stage is next, and
// how the cursor rolls over into the following NG+ cycle when the list is
// exhausted.
package scenario

import (
	"github.com/srw-lite/engine/internal/data"
	"github.com/srw-lite/engine/internal/model"
)

// Director resolves the campaign cursor against the scenario list.
type Director struct {
	cat *data.Catalog
}

// NewDirector returns a Director over the given catalog.
func NewDirector(cat *data.Catalog) *Director {
	return &Director{cat: cat}
}

// Current returns the scenario at the cursor.
func (d *Director) Current(index int) (model.ScenarioDefinition, bool) {
	return d.cat.Scenario(index)
}

// Advance moves the cursor past a completed scenario. Finishing the last
// stage starts the next cycle from the first stage.
func (d *Director) Advance(index, cycle int) (int, int) {
	index++
	if index >= len(d.cat.Scenarios) {
		return 0, cycle + 1
	}
	return index, cycle
}

// Clamp pins a loaded cursor into the valid range. Out-of-range saves land
// on the first stage.
func (d *Director) Clamp(index int) int {
	if index < 0 || index >= len(d.cat.Scenarios) {
		return 0
	}
	return index
}
