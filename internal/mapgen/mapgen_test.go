package mapgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	plains = Terrain{ID: "plains", Name: "Plains", MoveCost: 1, Theme: ThemeFantasy}
	forest = Terrain{ID: "forest", Name: "Forest", MoveCost: 2, ResourceYield: 1, Theme: ThemeFantasy}
	crater = Terrain{ID: "crater", Name: "Crater", MoveCost: 3, Theme: ThemeSciFi}
)

func TestGenerate_CoversEveryCoordinateRowMajor(t *testing.T) {
	tiles, err := Generate(Params{
		Width:  4,
		Height: 3,
		Seed:   7,
		Terrains: []Weighted{
			{Terrain: plains, Weight: 1},
			{Terrain: forest, Weight: 1},
		},
	})
	require.NoError(t, err)
	require.Len(t, tiles, 12)

	for i, tile := range tiles {
		assert.Equal(t, i%4, tile.Q)
		assert.Equal(t, i/4, tile.R)
		assert.Contains(t, []string{"plains", "forest"}, tile.Terrain.ID)
	}
}

func TestGenerate_SameSeedBitIdentical(t *testing.T) {
	p := Params{
		Width:  20,
		Height: 20,
		Seed:   1234,
		Terrains: []Weighted{
			{Terrain: plains, Weight: 3},
			{Terrain: forest, Weight: 2},
			{Terrain: crater, Weight: 1},
		},
	}
	first, err := Generate(p)
	require.NoError(t, err)
	second, err := Generate(p)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	p.Seed = 1235
	third, err := Generate(p)
	require.NoError(t, err)
	assert.NotEqual(t, first, third)
}

func TestGenerate_FrequencyTracksWeightShare(t *testing.T) {
	tiles, err := Generate(Params{
		Width:  100,
		Height: 100,
		Seed:   42,
		Terrains: []Weighted{
			{Terrain: plains, Weight: 0.6},
			{Terrain: forest, Weight: 0.4},
		},
	})
	require.NoError(t, err)
	require.Len(t, tiles, 10000)

	counts := map[string]int{}
	for _, tile := range tiles {
		counts[tile.Terrain.ID]++
	}

	// each share must land within 5% relative error of its weight
	assert.InEpsilon(t, 6000, counts["plains"], 0.05)
	assert.InEpsilon(t, 4000, counts["forest"], 0.05)
}

func TestGenerate_ThemeFilterExcludesOtherThemes(t *testing.T) {
	tiles, err := Generate(Params{
		Width:  10,
		Height: 10,
		Seed:   9,
		Terrains: []Weighted{
			{Terrain: plains, Weight: 1},
			{Terrain: crater, Weight: 100},
		},
		Theme: ThemeFantasy,
	})
	require.NoError(t, err)
	for _, tile := range tiles {
		assert.Equal(t, ThemeFantasy, tile.Terrain.Theme)
	}
}

func TestGenerate_EmptyDimensionsYieldEmptyMap(t *testing.T) {
	terrains := []Weighted{{Terrain: plains, Weight: 1}}

	tiles, err := Generate(Params{Width: 0, Height: 5, Seed: 1, Terrains: terrains})
	require.NoError(t, err)
	assert.Empty(t, tiles)

	tiles, err = Generate(Params{Width: 5, Height: -1, Seed: 1, Terrains: terrains})
	require.NoError(t, err)
	assert.Empty(t, tiles)
}

func TestGenerate_NoEligibleTerrainFails(t *testing.T) {
	_, err := Generate(Params{Width: 5, Height: 5, Seed: 1})
	assert.ErrorIs(t, err, ErrNoEligibleTerrain)

	_, err = Generate(Params{
		Width:    5,
		Height:   5,
		Seed:     1,
		Terrains: []Weighted{{Terrain: plains, Weight: 0}, {Terrain: forest, Weight: -2}},
	})
	assert.ErrorIs(t, err, ErrNoEligibleTerrain)

	// theme filter can empty the pool on its own
	_, err = Generate(Params{
		Width:    5,
		Height:   5,
		Seed:     1,
		Terrains: []Weighted{{Terrain: plains, Weight: 1}},
		Theme:    ThemeSciFi,
	})
	assert.ErrorIs(t, err, ErrNoEligibleTerrain)

	// a bad catalog is an error even when no tiles were requested
	_, err = Generate(Params{Width: 0, Height: 0, Seed: 1})
	assert.ErrorIs(t, err, ErrNoEligibleTerrain)
}

func TestGenerateGrid_MatchesFlatTraversal(t *testing.T) {
	p := Params{
		Width:  6,
		Height: 4,
		Seed:   77,
		Terrains: []Weighted{
			{Terrain: plains, Weight: 1},
			{Terrain: forest, Weight: 1},
		},
	}
	flat, err := Generate(p)
	require.NoError(t, err)
	grid, err := GenerateGrid(p)
	require.NoError(t, err)

	require.Len(t, grid, 4)
	for r, row := range grid {
		require.Len(t, row, 6)
		for q, tile := range row {
			assert.Equal(t, flat[r*6+q], tile)
		}
	}

	grid, err = GenerateGrid(Params{Width: 0, Height: 4, Seed: 1, Terrains: p.Terrains})
	require.NoError(t, err)
	assert.Empty(t, grid)
}
