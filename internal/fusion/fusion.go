// Package fusion combines exactly six source cards or parts into a derived
// entity, and computes the derived numbers for the results: summed power for
// characters, aggregated stat blocks for ships, and attribute/class sheets
// for forge loadouts.
package fusion

import (
	"errors"
	"fmt"

	"hexforge/internal/card"
)

// SourceCount is the number of sources every fusion consumes. There is no
// partial fusion and no padding; any other count is rejected.
const SourceCount = 6

// ErrSourceCount is returned when a fusion is attempted with a source list
// whose length is not exactly SourceCount.
var ErrSourceCount = errors.New("fusion: source count must be exactly six")

// Kind names the entity a fusion produces.
type Kind string

const (
	KindCharacter Kind = "character"
	KindShip      Kind = "ship"
)

// Character is a fused hero. CardIDs holds the six source cards in the order
// they were supplied.
type Character struct {
	ID         string    `json:"id"`
	Kind       Kind      `json:"kind"`
	Name       string    `json:"name"`
	TotalPower int       `json:"totalPower"`
	CardIDs    []card.ID `json:"cardIds"`
}

// Ship is a fused vessel. PartIDs holds the six source parts in the order
// they were supplied; stats are derived from the parts on demand, never
// stored here.
type Ship struct {
	ID      string   `json:"id"`
	Kind    Kind     `json:"kind"`
	Name    string   `json:"name"`
	PartIDs []string `json:"partIds"`
}

// FuseCharacter melts six cards into a character. Total power is the sum of
// the source cards' power values; a card without power contributes 0. The
// entity id is assigned by the caller that owns identity.
func FuseCharacter(name string, sources []card.Card) (Character, error) {
	if len(sources) != SourceCount {
		return Character{}, fmt.Errorf("%w: got %d cards", ErrSourceCount, len(sources))
	}
	ids := make([]card.ID, 0, SourceCount)
	power := 0
	for _, c := range sources {
		ids = append(ids, c.ID)
		power += c.Power
	}
	return Character{Kind: KindCharacter, Name: name, TotalPower: power, CardIDs: ids}, nil
}

// FuseShip welds six parts into a ship. No stats are aggregated here; use
// AggregateStats on the part list when the numbers are needed.
func FuseShip(name string, parts []Part) (Ship, error) {
	if len(parts) != SourceCount {
		return Ship{}, fmt.Errorf("%w: got %d parts", ErrSourceCount, len(parts))
	}
	ids := make([]string, 0, SourceCount)
	for _, p := range parts {
		ids = append(ids, p.ID)
	}
	return Ship{Kind: KindShip, Name: name, PartIDs: ids}, nil
}
