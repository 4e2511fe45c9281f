package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hexforge/internal/card"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "forge.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_FillsDefaultsForPartialFile(t *testing.T) {
	path := writeConfig(t, "map:\n  default_width: 32\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 32, cfg.Map.DefaultWidth)
	assert.Equal(t, 12, cfg.Map.DefaultHeight)
	assert.Equal(t, "fantasy", cfg.Map.DefaultTheme)
	assert.Equal(t, 6, cfg.Booster.DefaultSize)
	assert.NotEmpty(t, cfg.TerrainSets)
	assert.NotEmpty(t, cfg.StarterDeck.Cards)
}

func TestLoad_ParsesTerrainSetsInOrder(t *testing.T) {
	path := writeConfig(t, `
terrain_sets:
  - id: midnight
    theme: fantasy
    terrains:
      - {id: bog, label: Bog, move_cost: 3, weight: 2}
      - {id: barrow, label: Barrow, move_cost: 2, resource_yield: 1, weight: 5}
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	set, ok := cfg.TerrainSetFor("fantasy")
	require.True(t, ok)
	assert.Equal(t, "midnight", set.ID)

	weighted := set.Weighted()
	require.Len(t, weighted, 2)
	assert.Equal(t, "bog", weighted[0].Terrain.ID)
	assert.Equal(t, 2.0, weighted[0].Weight)
	assert.Equal(t, "barrow", weighted[1].Terrain.ID)
	assert.Equal(t, 1.0, weighted[1].Terrain.ResourceYield)
}

func TestLoad_MissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
}

func TestLoadOrDefault_FallsBackWithoutFile(t *testing.T) {
	cfg, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = LoadOrDefault(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestDefault_StarterDeckBuildsCleanly(t *testing.T) {
	deck, err := Default().StarterDeck.Deck("p1")
	require.NoError(t, err)

	assert.Equal(t, "starter", deck.ID)
	assert.Equal(t, "p1", deck.PlayerID)
	assert.Len(t, deck.Cards, 12)

	titan, ok := deck.Card("forge_titan")
	require.True(t, ok)
	assert.Equal(t, card.RarityRare, titan.Rarity)
	assert.Equal(t, "fire", titan.Element)
}

func TestBoosterConfig_DistributionSkipsUnknownRarities(t *testing.T) {
	b := BoosterConfig{RarityDistribution: map[string]int{
		"common": 4,
		"rare":   1,
		"mythic": 9,
	}}

	dist := b.Distribution()
	assert.Equal(t, map[card.Rarity]int{card.RarityCommon: 4, card.RarityRare: 1}, dist)
}

func TestCardEntry_RejectsWrongEdgeCount(t *testing.T) {
	entry := CardEntry{ID: "bad", Name: "Bad", Kind: "unit", Rarity: "common",
		Edges: []string{"a", "b", "c"}}

	_, err := entry.Card()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "edges")
}

func TestParseEnv_DefaultsAndOverrides(t *testing.T) {
	t.Setenv("FORGE_DATA_DIR", "/tmp/forge-data")
	t.Setenv("FORGE_STORE", "sqlite")

	e, err := ParseEnv()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/forge-data", e.DataDir)
	assert.Equal(t, StoreSQLite, e.Store)
	assert.Equal(t, "info", e.LogLevel)

	t.Setenv("FORGE_STORE", "postgres")
	_, err = ParseEnv()
	require.Error(t, err)
}
