package position

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srw-lite/engine/internal/model"
)

func TestTerrainAt(t *testing.T) {
	assert.Equal(t, model.TerrainAsteroidField, TerrainAt(model.Position{Y: 0}))
	assert.Equal(t, model.TerrainAsteroidField, TerrainAt(model.Position{Y: 33.3}))
	assert.Equal(t, model.TerrainColonyInside, TerrainAt(model.Position{Y: 33.4}))
	assert.Equal(t, model.TerrainColonyInside, TerrainAt(model.Position{Y: 66.6}))
	assert.Equal(t, model.TerrainSpace, TerrainAt(model.Position{Y: 66.7}))
	assert.Equal(t, model.TerrainSpace, TerrainAt(model.Position{Y: 100}))
}

func TestRandomSource_Place(t *testing.T) {
	src := NewRandomSource(rand.New(rand.NewSource(7)))

	for i := 0; i < 200; i++ {
		p := src.Place(true)
		require.GreaterOrEqual(t, p.X, spawnMinX)
		require.Less(t, p.X, spawnMaxX)
		require.GreaterOrEqual(t, p.Y, playerMinY)
		require.Less(t, p.Y, playerMaxY)
		require.Equal(t, model.TerrainSpace, TerrainAt(p))
	}

	for i := 0; i < 200; i++ {
		p := src.Place(false)
		require.GreaterOrEqual(t, p.Y, enemyMinY)
		require.Less(t, p.Y, enemyMaxY)
		require.Equal(t, model.TerrainAsteroidField, TerrainAt(p))
	}
}
