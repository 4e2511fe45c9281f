package telemetry

import "time"

type EventType string

const (
	EventMapGenerated   EventType = "map_generated"
	EventBoosterOpened  EventType = "booster_opened"
	EventCharacterFused EventType = "character_fused"
	EventShipFused      EventType = "ship_fused"
	EventDeckImported   EventType = "deck_imported"
	EventDeckExported   EventType = "deck_exported"
)

type Event struct {
	ID        int       `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Metadata  string    `json:"metadata"`
}

type EventMetadata map[string]interface{}
