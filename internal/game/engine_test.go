package game

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hexforge/internal/card"
	"hexforge/internal/collection"
	"hexforge/internal/config"
	"hexforge/internal/fusion"
	"hexforge/internal/mapgen"
	"hexforge/internal/player"
	"hexforge/internal/telemetry"
)

func newEngineForTest(t *testing.T) (Engine, *collection.MemoryRepo, *FakeClock) {
	t.Helper()

	players, err := player.NewFileRepo(t.TempDir())
	require.NoError(t, err)

	repo := collection.NewMemoryRepo()
	fake := NewFakeClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))

	e := Engine{
		Collection: repo,
		Players:    players,
		Events:     telemetry.NewMemoryRepository(),
		Cfg:        config.Default(),
		Clock:      fake,
		Log:        zerolog.Nop(),
	}
	return e, repo, fake
}

func seedPtr(v uint32) *uint32 { return &v }

func shipParts() []fusion.Part {
	return []fusion.Part{
		{ID: "hull_a", Name: "Keel Hull", Type: fusion.PartHull, Stats: fusion.Stats{Defense: 3}},
		{ID: "engine_a", Name: "Ion Drive", Type: fusion.PartEngine, Stats: fusion.Stats{Speed: 4}},
		{ID: "weapon_a", Name: "Rail Lance", Type: fusion.PartWeapon, Stats: fusion.Stats{Attack: 5}},
		{ID: "cargo_a", Name: "Vault Bay", Type: fusion.PartCargo, Stats: fusion.Stats{Cargo: 6}},
		{ID: "util_a", Name: "Shield Node", Type: fusion.PartUtility, Stats: fusion.Stats{Defense: 2, Speed: 1}},
		{ID: "util_b", Name: "Scan Array", Type: fusion.PartUtility, Stats: fusion.Stats{}},
	}
}

func TestGenerateMap_SameSeedSameMap(t *testing.T) {
	ctx := context.Background()
	e, _, _ := newEngineForTest(t)

	first, err := e.GenerateMap(ctx, GenerateMapRequest{Seed: seedPtr(7)})
	require.NoError(t, err)
	second, err := e.GenerateMap(ctx, GenerateMapRequest{Seed: seedPtr(7)})
	require.NoError(t, err)

	assert.Equal(t, 16, first.Width)
	assert.Equal(t, 12, first.Height)
	assert.Equal(t, "fantasy", first.Theme)
	assert.Equal(t, uint32(7), first.Seed)
	assert.Len(t, first.Tiles, 192)
	assert.Equal(t, first.Tiles, second.Tiles)

	total := 0
	for _, n := range first.TerrainCounts {
		total += n
	}
	assert.Equal(t, 192, total)
}

func TestGenerateMap_DrawsAndReportsSeedWhenAbsent(t *testing.T) {
	ctx := context.Background()
	e, _, _ := newEngineForTest(t)

	res, err := e.GenerateMap(ctx, GenerateMapRequest{Width: 4, Height: 4})
	require.NoError(t, err)

	replay, err := e.GenerateMap(ctx, GenerateMapRequest{Width: 4, Height: 4, Seed: seedPtr(res.Seed)})
	require.NoError(t, err)
	assert.Equal(t, res.Tiles, replay.Tiles)
}

func TestGenerateMap_UnknownThemeHasNoTerrain(t *testing.T) {
	ctx := context.Background()
	e, _, _ := newEngineForTest(t)

	_, err := e.GenerateMap(ctx, GenerateMapRequest{Theme: "underdark", Seed: seedPtr(1)})
	require.ErrorIs(t, err, mapgen.ErrNoEligibleTerrain)
}

func TestOpenBooster_PersistsPackAndBumpsCounters(t *testing.T) {
	ctx := context.Background()
	e, repo, fake := newEngineForTest(t)

	deck, err := e.InitDeck(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, fake.Now(), deck.CreatedAt)

	res, err := e.OpenBooster(ctx, OpenBoosterRequest{
		PlayerID: "p1",
		DeckID:   deck.ID,
		Seed:     seedPtr(11),
	})
	require.NoError(t, err)

	require.Len(t, res.Pack.Cards, 6)
	assert.NotEmpty(t, res.Pack.ID)
	assert.Equal(t, "p1", res.Pack.PlayerID)
	assert.Equal(t, fake.Now(), res.Pack.CreatedAt)
	assert.Equal(t, uint32(11), res.Seed)
	assert.Equal(t, 1, res.DeckOpens)

	// Starter deck has every tier stocked, so the default split holds.
	assert.Equal(t, map[string]int{"common": 3, "uncommon": 2, "rare": 1}, res.RarityCounts)

	stored, ok, err := repo.GetPack(ctx, res.Pack.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, res.Pack.Cards, stored.Cards)

	profile := e.Players.ForPlayer("p1").Profile()
	assert.Equal(t, 1, profile.Metrics[player.MetricPacksOpened])
	assert.Equal(t, 1, profile.DeckOpens[deck.ID])

	again, err := e.OpenBooster(ctx, OpenBoosterRequest{PlayerID: "p1", DeckID: deck.ID, Seed: seedPtr(12)})
	require.NoError(t, err)
	assert.Equal(t, 2, again.DeckOpens)
}

func TestOpenBooster_UnknownDeck(t *testing.T) {
	ctx := context.Background()
	e, _, _ := newEngineForTest(t)

	_, err := e.OpenBooster(ctx, OpenBoosterRequest{PlayerID: "p1", DeckID: "ghost", Seed: seedPtr(1)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deck not found")
}

func TestFuseCharacter_SumsPowerInInputOrder(t *testing.T) {
	ctx := context.Background()
	e, _, _ := newEngineForTest(t)

	deck, err := e.InitDeck(ctx, "p1")
	require.NoError(t, err)

	ids := []card.ID{"ember_sprite", "river_scout", "stone_sentry", "gust_charm", "torch_bearer", "moss_golem"}
	res, err := e.FuseCharacter(ctx, FuseCharacterRequest{
		PlayerID: "p1",
		DeckID:   deck.ID,
		Name:     "Ashwalker",
		CardIDs:  ids,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, res.Character.ID)
	assert.Equal(t, "Ashwalker", res.Character.Name)
	// 2+2+3+1+2+3 from the starter cards.
	assert.Equal(t, 13, res.Character.TotalPower)
	assert.Equal(t, ids, res.Character.CardIDs)

	profile := e.Players.ForPlayer("p1").Profile()
	assert.Equal(t, 1, profile.Metrics[player.MetricCharactersFused])
}

func TestFuseCharacter_RejectsWrongSourceCount(t *testing.T) {
	ctx := context.Background()
	e, _, _ := newEngineForTest(t)

	deck, err := e.InitDeck(ctx, "p1")
	require.NoError(t, err)

	_, err = e.FuseCharacter(ctx, FuseCharacterRequest{
		PlayerID: "p1",
		DeckID:   deck.ID,
		CardIDs:  []card.ID{"ember_sprite", "river_scout", "stone_sentry", "gust_charm", "torch_bearer"},
	})
	require.ErrorIs(t, err, fusion.ErrSourceCount)
}

func TestFuseCharacter_RejectsCardOutsideDeck(t *testing.T) {
	ctx := context.Background()
	e, _, _ := newEngineForTest(t)

	deck, err := e.InitDeck(ctx, "p1")
	require.NoError(t, err)

	_, err = e.FuseCharacter(ctx, FuseCharacterRequest{
		PlayerID: "p1",
		DeckID:   deck.ID,
		CardIDs:  []card.ID{"ember_sprite", "river_scout", "stone_sentry", "gust_charm", "torch_bearer", "phantom"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not in deck")
}

func TestFuseShip_AggregatesAllFourStats(t *testing.T) {
	ctx := context.Background()
	e, _, _ := newEngineForTest(t)

	res, err := e.FuseShip(ctx, FuseShipRequest{PlayerID: "p1", Name: "Dawn Hammer", Parts: shipParts()})
	require.NoError(t, err)

	assert.NotEmpty(t, res.Ship.ID)
	assert.Equal(t, []string{"hull_a", "engine_a", "weapon_a", "cargo_a", "util_a", "util_b"}, res.Ship.PartIDs)
	assert.Equal(t, fusion.Stats{Speed: 5, Defense: 5, Cargo: 6, Attack: 5}, res.Stats)

	profile := e.Players.ForPlayer("p1").Profile()
	assert.Equal(t, 1, profile.Metrics[player.MetricShipsFused])
}

func TestFuseShip_RejectsWrongPartCount(t *testing.T) {
	ctx := context.Background()
	e, _, _ := newEngineForTest(t)

	_, err := e.FuseShip(ctx, FuseShipRequest{PlayerID: "p1", Parts: shipParts()[:4]})
	require.ErrorIs(t, err, fusion.ErrSourceCount)
}

func TestForgeProfile_DerivesSheetFromDeckSlots(t *testing.T) {
	ctx := context.Background()
	e, _, _ := newEngineForTest(t)

	deck, err := e.InitDeck(ctx, "p1")
	require.NoError(t, err)

	// Four fire cards across six slots, two left open.
	profile, err := e.ForgeProfile(ctx, ForgeProfileRequest{
		DeckID:  deck.ID,
		CardIDs: []string{"ember_sprite", "torch_bearer", "cinder_lance", "forge_titan", "", ""},
	})
	require.NoError(t, err)

	assert.Equal(t, 9, profile.Strength)
	assert.Equal(t, 6, profile.Agility)
	assert.Equal(t, 9, profile.Intellect)
	assert.Equal(t, "Fire Mage", profile.Class)
}

func TestForgeProfile_RejectsOverfullLoadout(t *testing.T) {
	ctx := context.Background()
	e, _, _ := newEngineForTest(t)

	deck, err := e.InitDeck(ctx, "p1")
	require.NoError(t, err)

	_, err = e.ForgeProfile(ctx, ForgeProfileRequest{
		DeckID:  deck.ID,
		CardIDs: []string{"a", "b", "c", "d", "e", "f", "g"},
	})
	require.ErrorIs(t, err, fusion.ErrSourceCount)
}

func TestExportDeck_RoundTripsThroughImport(t *testing.T) {
	ctx := context.Background()
	e, _, _ := newEngineForTest(t)

	seeded, err := e.InitDeck(ctx, "p1")
	require.NoError(t, err)

	exported, err := e.ExportDeck(ctx, seeded.ID)
	require.NoError(t, err)

	exported.ID = "copy"
	exported.Name = "Copied Deck"
	imported, err := e.ImportDeck(ctx, exported)
	require.NoError(t, err)
	assert.Equal(t, "copy", imported.ID)

	back, err := e.ExportDeck(ctx, "copy")
	require.NoError(t, err)
	assert.Equal(t, seeded.Cards, back.Cards)
}

func TestStats_ReducesRecordedEvents(t *testing.T) {
	ctx := context.Background()
	e, _, fake := newEngineForTest(t)

	deck, err := e.InitDeck(ctx, "p1")
	require.NoError(t, err)

	_, err = e.GenerateMap(ctx, GenerateMapRequest{Width: 5, Height: 4, Seed: seedPtr(3)})
	require.NoError(t, err)
	_, err = e.OpenBooster(ctx, OpenBoosterRequest{PlayerID: "p1", DeckID: deck.ID, Seed: seedPtr(4)})
	require.NoError(t, err)
	_, err = e.FuseShip(ctx, FuseShipRequest{PlayerID: "p1", Name: "Sloop", Parts: shipParts()})
	require.NoError(t, err)

	stats, err := e.Stats(ctx, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.MapsGenerated)
	assert.Equal(t, 20, stats.TilesGenerated)
	assert.Equal(t, 1, stats.PacksOpened)
	assert.Equal(t, 6, stats.CardsByRarity["common"]+stats.CardsByRarity["uncommon"]+stats.CardsByRarity["rare"])
	assert.Equal(t, 1, stats.ShipsFused)
	assert.Equal(t, 0, stats.CharactersFused)

	// Nothing recorded after the clock moved on.
	later := fake.Now().Add(time.Hour)
	stats, err = e.Stats(ctx, later)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.MapsGenerated)
	assert.Equal(t, 0, stats.PacksOpened)
}
