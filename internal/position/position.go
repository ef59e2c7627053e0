// Package position places units on the percentage battle map and maps
// coordinates to terrain zones. The map is flavor only; distance never
// affects combat, terrain does.
package position

import (
	"math/rand"

	"github.com/srw-lite/engine/internal/model"
)

// Zone boundaries on the Y axis, in map percent. Units above the colony
// boundary sit in open space.
const (
	AsteroidMaxY = 100.0 / 3  // y < 33.33: asteroid field
	ColonyMaxY   = 200.0 / 3  // y < 66.66: colony interior
)

// Deployment bands. Players spawn near the bottom of the map, enemies near
// the top, both spread across the middle 80% of the X axis.
const (
	spawnMinX = 10.0
	spawnMaxX = 90.0

	playerMinY = ColonyMaxY
	playerMaxY = 95.0

	enemyMinY = 5.0
	enemyMaxY = AsteroidMaxY - 10
)

// TerrainAt returns the terrain zone containing the given position.
func TerrainAt(p model.Position) model.Terrain {
	switch {
	case p.Y < AsteroidMaxY:
		return model.TerrainAsteroidField
	case p.Y < ColonyMaxY:
		return model.TerrainColonyInside
	default:
		return model.TerrainSpace
	}
}

// Source produces deployment positions for new battle units.
type Source interface {
	Place(isPlayer bool) model.Position
}

// RandomSource scatters units inside their side's deployment band.
type RandomSource struct {
	rng *rand.Rand
}

// NewRandomSource returns a Source backed by the given generator.
func NewRandomSource(rng *rand.Rand) *RandomSource {
	return &RandomSource{rng: rng}
}

// Place returns a fresh deployment position for the given side.
func (s *RandomSource) Place(isPlayer bool) model.Position {
	minY, maxY := enemyMinY, enemyMaxY
	if isPlayer {
		minY, maxY = playerMinY, playerMaxY
	}
	return model.Position{
		X: spawnMinX + s.rng.Float64()*(spawnMaxX-spawnMinX),
		Y: minY + s.rng.Float64()*(maxY-minY),
	}
}
