package telemetry

import (
	"encoding/json"
	"time"
)

type Stats struct {
	Period          string            `json:"period"`
	EventCounts     map[EventType]int `json:"event_counts"`
	MapsGenerated   int               `json:"maps_generated"`
	TilesGenerated  int               `json:"tiles_generated"`
	TilesByTerrain  map[string]int    `json:"tiles_by_terrain"`
	PacksOpened     int               `json:"packs_opened"`
	CardsByRarity   map[string]int    `json:"cards_by_rarity"`
	CharactersFused int               `json:"characters_fused"`
	ShipsFused      int               `json:"ships_fused"`
}

// CalculateStats reduces events recorded at or after since into balance
// counters.
func CalculateStats(events []Event, since time.Time) (Stats, error) {
	stats := Stats{
		Period:         since.Format("2006-01-02"),
		EventCounts:    make(map[EventType]int),
		TilesByTerrain: make(map[string]int),
		CardsByRarity:  make(map[string]int),
	}

	for _, event := range events {
		if event.Timestamp.Before(since) {
			continue
		}
		stats.EventCounts[event.Type]++

		var metadata EventMetadata
		if err := json.Unmarshal([]byte(event.Metadata), &metadata); err != nil {
			continue
		}

		switch event.Type {
		case EventMapGenerated:
			stats.MapsGenerated++
			if tiles, ok := metadata["tiles"].(float64); ok {
				stats.TilesGenerated += int(tiles)
			}
			if terrains, ok := metadata["terrain_counts"].(map[string]interface{}); ok {
				for id, n := range terrains {
					if count, ok := n.(float64); ok {
						stats.TilesByTerrain[id] += int(count)
					}
				}
			}
		case EventBoosterOpened:
			stats.PacksOpened++
			if rarities, ok := metadata["rarity_counts"].(map[string]interface{}); ok {
				for tier, n := range rarities {
					if count, ok := n.(float64); ok {
						stats.CardsByRarity[tier] += int(count)
					}
				}
			}
		case EventCharacterFused:
			stats.CharactersFused++
		case EventShipFused:
			stats.ShipsFused++
		}
	}

	return stats, nil
}
