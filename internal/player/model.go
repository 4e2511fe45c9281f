package player

const (
	MetricPacksOpened     = "packs_opened"
	MetricCharactersFused = "characters_fused"
	MetricShipsFused      = "ships_fused"
)

// Profile is one player's persistent record: a display name plus the
// counters the engine bumps as the player generates content.
type Profile struct {
	Name      string         `json:"name,omitempty"`
	Metrics   map[string]int `json:"metrics,omitempty"`
	DeckOpens map[string]int `json:"deckOpens,omitempty"`
}

type fileState struct {
	Players map[string]Profile `json:"players"`
}
