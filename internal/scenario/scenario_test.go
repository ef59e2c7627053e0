package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srw-lite/engine/internal/data"
)

func TestDirector_Advance(t *testing.T) {
	d := NewDirector(data.Default())

	idx, cycle := d.Advance(0, 0)
	assert.Equal(t, 1, idx)
	assert.Equal(t, 0, cycle)

	// Completing the final stage rolls into the next cycle.
	last := len(data.Default().Scenarios) - 1
	idx, cycle = d.Advance(last, 0)
	assert.Equal(t, 0, idx)
	assert.Equal(t, 1, cycle)

	idx, cycle = d.Advance(last, 3)
	assert.Equal(t, 0, idx)
	assert.Equal(t, 4, cycle)
}

func TestDirector_Current(t *testing.T) {
	d := NewDirector(data.Default())

	sc, ok := d.Current(0)
	require.True(t, ok)
	assert.NotEmpty(t, sc.Title)
	assert.NotEmpty(t, sc.EnemyDefIDs)

	_, ok = d.Current(99)
	assert.False(t, ok)
}

func TestDirector_Clamp(t *testing.T) {
	d := NewDirector(data.Default())

	assert.Equal(t, 0, d.Clamp(-1))
	assert.Equal(t, 3, d.Clamp(3))
	assert.Equal(t, 0, d.Clamp(500))
}
