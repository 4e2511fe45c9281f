// Package game wires the forge subsystems together. The Engine owns
// identity (entity ids, timestamps) and side effects (persistence, player
// metrics, telemetry); the packages underneath it stay pure so the same
// seed always produces the same content.
package game

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"hexforge/internal/booster"
	"hexforge/internal/card"
	"hexforge/internal/collection"
	"hexforge/internal/config"
	"hexforge/internal/fusion"
	"hexforge/internal/mapgen"
	"hexforge/internal/player"
	"hexforge/internal/rng"
	"hexforge/internal/telemetry"
)

type Engine struct {
	Collection collection.Repository
	Players    *player.FileRepo
	Events     telemetry.Repository
	Cfg        *config.Config
	Clock      Clock
	Log        zerolog.Logger
}

func (e Engine) now() time.Time {
	if e.Clock == nil {
		return time.Now()
	}
	return e.Clock.Now()
}

func (e Engine) cfg() *config.Config {
	if e.Cfg == nil {
		return config.Default()
	}
	return e.Cfg
}

// resolveSeed returns the requested seed, or draws a fresh one so the
// caller can replay the operation later.
func (e Engine) resolveSeed(seed *uint32) (uint32, error) {
	if seed != nil {
		return *seed, nil
	}
	return rng.NewSeed()
}

func (e Engine) record(t telemetry.EventType, meta telemetry.EventMetadata) {
	if e.Events == nil {
		return
	}
	_ = e.Events.RecordEvent(t, e.now(), meta)
}

type GenerateMapRequest struct {
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Theme  string  `json:"theme"`
	Seed   *uint32 `json:"seed,omitempty"`
}

type MapResult struct {
	Width         int            `json:"width"`
	Height        int            `json:"height"`
	Theme         string         `json:"theme"`
	Seed          uint32         `json:"seed"`
	Tiles         []mapgen.Tile  `json:"tiles"`
	TerrainCounts map[string]int `json:"terrain_counts"`
	GeneratedAt   time.Time      `json:"generated_at"`
}

// GenerateMap rolls a tile map from the configured terrain set for the
// requested theme. Zero width/height/theme fall back to the configured
// defaults; a nil seed draws a fresh one, reported in the result so the
// map can be regenerated later.
func (e Engine) GenerateMap(ctx context.Context, req GenerateMapRequest) (MapResult, error) {
	cfg := e.cfg()
	if req.Width == 0 {
		req.Width = cfg.Map.DefaultWidth
	}
	if req.Height == 0 {
		req.Height = cfg.Map.DefaultHeight
	}
	if req.Theme == "" {
		req.Theme = cfg.Map.DefaultTheme
	}

	seed, err := e.resolveSeed(req.Seed)
	if err != nil {
		return MapResult{}, err
	}

	set, ok := cfg.TerrainSetFor(req.Theme)
	if !ok {
		return MapResult{}, fmt.Errorf("theme %s: %w", req.Theme, mapgen.ErrNoEligibleTerrain)
	}

	tiles, err := mapgen.Generate(mapgen.Params{
		Width:    req.Width,
		Height:   req.Height,
		Seed:     seed,
		Terrains: set.Weighted(),
		Theme:    mapgen.Theme(req.Theme),
	})
	if err != nil {
		return MapResult{}, err
	}

	counts := map[string]int{}
	for _, t := range tiles {
		counts[t.Terrain.ID]++
	}

	e.record(telemetry.EventMapGenerated, telemetry.EventMetadata{
		"width":          req.Width,
		"height":         req.Height,
		"theme":          req.Theme,
		"seed":           seed,
		"tiles":          len(tiles),
		"terrain_counts": counts,
	})
	e.Log.Info().
		Int("width", req.Width).
		Int("height", req.Height).
		Str("theme", req.Theme).
		Uint32("seed", seed).
		Msg("map generated")

	return MapResult{
		Width:         req.Width,
		Height:        req.Height,
		Theme:         req.Theme,
		Seed:          seed,
		Tiles:         tiles,
		TerrainCounts: counts,
		GeneratedAt:   e.now(),
	}, nil
}

type OpenBoosterRequest struct {
	PlayerID     string              `json:"player_id"`
	DeckID       string              `json:"deck_id"`
	Size         int                 `json:"size"`
	Distribution map[card.Rarity]int `json:"distribution,omitempty"`
	AllowedKinds []card.Kind         `json:"allowed_kinds,omitempty"`
	RequiredTags []string            `json:"required_tags,omitempty"`
	Seed         *uint32             `json:"seed,omitempty"`
}

type OpenBoosterResult struct {
	Pack         booster.Pack   `json:"pack"`
	Seed         uint32         `json:"seed"`
	RarityCounts map[string]int `json:"rarity_counts"`
	DeckOpens    int            `json:"deck_opens"`
}

// OpenBooster draws a pack from the named deck's cards, persists it, and
// bumps the opening player's counters. A short pool degrades the pack
// rather than failing it.
func (e Engine) OpenBooster(ctx context.Context, req OpenBoosterRequest) (OpenBoosterResult, error) {
	d, ok, err := e.Collection.GetDeck(ctx, req.DeckID)
	if err != nil {
		return OpenBoosterResult{}, err
	}
	if !ok {
		return OpenBoosterResult{}, fmt.Errorf("deck not found: %s", req.DeckID)
	}

	cfg := e.cfg()
	size := req.Size
	if size <= 0 {
		size = cfg.Booster.DefaultSize
	}
	dist := req.Distribution
	if len(dist) == 0 {
		dist = cfg.Booster.Distribution()
	}

	seed, err := e.resolveSeed(req.Seed)
	if err != nil {
		return OpenBoosterResult{}, err
	}

	pack := booster.Generate(d.Cards, booster.Request{
		PlayerID:     req.PlayerID,
		Size:         size,
		Distribution: dist,
		AllowedKinds: req.AllowedKinds,
		RequiredTags: req.RequiredTags,
		Seed:         seed,
	})
	pack.ID = uuid.NewString()
	pack.CreatedAt = e.now()

	if err := e.Collection.SavePack(ctx, pack); err != nil {
		return OpenBoosterResult{}, err
	}

	opens := 0
	if e.Players != nil {
		opens, _, err = e.Players.ForPlayer(req.PlayerID).IncrementDeckOpen(req.DeckID)
		if err != nil {
			return OpenBoosterResult{}, err
		}
	}

	rarities := map[string]int{}
	for _, c := range pack.Cards {
		rarities[string(c.Rarity)]++
	}

	e.record(telemetry.EventBoosterOpened, telemetry.EventMetadata{
		"player_id":     req.PlayerID,
		"deck_id":       req.DeckID,
		"pack_id":       pack.ID,
		"size":          len(pack.Cards),
		"rarity_counts": rarities,
	})
	e.Log.Info().
		Str("player", req.PlayerID).
		Str("deck", req.DeckID).
		Str("pack", pack.ID).
		Int("cards", len(pack.Cards)).
		Msg("booster opened")

	return OpenBoosterResult{
		Pack:         pack,
		Seed:         seed,
		RarityCounts: rarities,
		DeckOpens:    opens,
	}, nil
}

type FuseCharacterRequest struct {
	PlayerID string    `json:"player_id"`
	DeckID   string    `json:"deck_id"`
	Name     string    `json:"name"`
	CardIDs  []card.ID `json:"card_ids"`
}

type FuseCharacterResult struct {
	Character fusion.Character `json:"character"`
	FusedAt   time.Time        `json:"fused_at"`
}

// FuseCharacter melts six cards from the named deck into a character.
func (e Engine) FuseCharacter(ctx context.Context, req FuseCharacterRequest) (FuseCharacterResult, error) {
	d, ok, err := e.Collection.GetDeck(ctx, req.DeckID)
	if err != nil {
		return FuseCharacterResult{}, err
	}
	if !ok {
		return FuseCharacterResult{}, fmt.Errorf("deck not found: %s", req.DeckID)
	}

	sources, err := d.Pick(req.CardIDs)
	if err != nil {
		return FuseCharacterResult{}, err
	}

	ch, err := fusion.FuseCharacter(req.Name, sources)
	if err != nil {
		return FuseCharacterResult{}, err
	}
	ch.ID = uuid.NewString()

	if e.Players != nil {
		if _, err := e.Players.ForPlayer(req.PlayerID).IncrementMetric(player.MetricCharactersFused, 1); err != nil {
			return FuseCharacterResult{}, err
		}
	}

	e.record(telemetry.EventCharacterFused, telemetry.EventMetadata{
		"player_id":    req.PlayerID,
		"character_id": ch.ID,
		"total_power":  ch.TotalPower,
	})
	e.Log.Info().
		Str("player", req.PlayerID).
		Str("character", ch.ID).
		Int("total_power", ch.TotalPower).
		Msg("character fused")

	return FuseCharacterResult{Character: ch, FusedAt: e.now()}, nil
}

type FuseShipRequest struct {
	PlayerID string        `json:"player_id"`
	Name     string        `json:"name"`
	Parts    []fusion.Part `json:"parts"`
}

type FuseShipResult struct {
	Ship    fusion.Ship  `json:"ship"`
	Stats   fusion.Stats `json:"stats"`
	FusedAt time.Time    `json:"fused_at"`
}

// FuseShip welds six parts into a ship and reports the aggregated stat
// block alongside it.
func (e Engine) FuseShip(ctx context.Context, req FuseShipRequest) (FuseShipResult, error) {
	ship, err := fusion.FuseShip(req.Name, req.Parts)
	if err != nil {
		return FuseShipResult{}, err
	}
	ship.ID = uuid.NewString()
	stats := fusion.AggregateStats(req.Parts)

	if e.Players != nil {
		if _, err := e.Players.ForPlayer(req.PlayerID).IncrementMetric(player.MetricShipsFused, 1); err != nil {
			return FuseShipResult{}, err
		}
	}

	e.record(telemetry.EventShipFused, telemetry.EventMetadata{
		"player_id": req.PlayerID,
		"ship_id":   ship.ID,
		"speed":     stats.Speed,
		"defense":   stats.Defense,
		"cargo":     stats.Cargo,
		"attack":    stats.Attack,
	})
	e.Log.Info().
		Str("player", req.PlayerID).
		Str("ship", ship.ID).
		Msg("ship fused")

	return FuseShipResult{Ship: ship, Stats: stats, FusedAt: e.now()}, nil
}

type ForgeProfileRequest struct {
	DeckID  string   `json:"deck_id"`
	CardIDs []string `json:"card_ids"`
}

// ForgeProfile derives the attribute sheet for a forge loadout drawn from
// the named deck. CardIDs fills the six slots in order; an empty id leaves
// its slot open. Fewer than six ids leave the trailing slots open.
func (e Engine) ForgeProfile(ctx context.Context, req ForgeProfileRequest) (fusion.Profile, error) {
	if len(req.CardIDs) > fusion.SourceCount {
		return fusion.Profile{}, fmt.Errorf("%w: got %d cards", fusion.ErrSourceCount, len(req.CardIDs))
	}

	d, ok, err := e.Collection.GetDeck(ctx, req.DeckID)
	if err != nil {
		return fusion.Profile{}, err
	}
	if !ok {
		return fusion.Profile{}, fmt.Errorf("deck not found: %s", req.DeckID)
	}

	var loadout fusion.Loadout
	for i, id := range req.CardIDs {
		if id == "" {
			continue
		}
		c, ok := d.Card(card.ID(id))
		if !ok {
			return fusion.Profile{}, fmt.Errorf("card not in deck %s: %s", d.ID, id)
		}
		loadout[i] = &c
	}

	return fusion.DeriveProfile(loadout), nil
}

// InitDeck persists the configured starter deck for a player.
func (e Engine) InitDeck(ctx context.Context, playerID string) (card.Deck, error) {
	d, err := e.cfg().StarterDeck.Deck(playerID)
	if err != nil {
		return card.Deck{}, err
	}
	now := e.now()
	d.CreatedAt = now
	d.UpdatedAt = now

	if err := e.Collection.SaveDeck(ctx, d); err != nil {
		return card.Deck{}, err
	}
	e.Log.Info().Str("deck", d.ID).Str("player", playerID).Int("cards", d.Size()).Msg("starter deck created")
	return d, nil
}

// ImportDeck validates and persists a deck brought in from outside.
func (e Engine) ImportDeck(ctx context.Context, d card.Deck) (card.Deck, error) {
	if err := d.Validate(); err != nil {
		return card.Deck{}, err
	}
	now := e.now()
	if d.CreatedAt.IsZero() {
		d.CreatedAt = now
	}
	d.UpdatedAt = now

	if err := e.Collection.SaveDeck(ctx, d); err != nil {
		return card.Deck{}, err
	}

	e.record(telemetry.EventDeckImported, telemetry.EventMetadata{
		"deck_id": d.ID,
		"cards":   d.Size(),
	})
	e.Log.Info().Str("deck", d.ID).Int("cards", d.Size()).Msg("deck imported")
	return d, nil
}

// ExportDeck fetches a deck for writing out.
func (e Engine) ExportDeck(ctx context.Context, id string) (card.Deck, error) {
	d, ok, err := e.Collection.GetDeck(ctx, id)
	if err != nil {
		return card.Deck{}, err
	}
	if !ok {
		return card.Deck{}, fmt.Errorf("deck not found: %s", id)
	}

	e.record(telemetry.EventDeckExported, telemetry.EventMetadata{
		"deck_id": d.ID,
		"cards":   d.Size(),
	})
	return d, nil
}

// Stats reduces the recorded events since the given time into balance
// counters.
func (e Engine) Stats(ctx context.Context, since time.Time) (telemetry.Stats, error) {
	if e.Events == nil {
		return telemetry.CalculateStats(nil, since)
	}
	events, err := e.Events.GetEvents(since, nil)
	if err != nil {
		return telemetry.Stats{}, err
	}
	return telemetry.CalculateStats(events, since)
}
