package card

import (
	"fmt"
	"time"
)

// Deck is a named, player-owned, ordered collection of cards. It is the unit
// the stores persist and the pool booster sampling draws from.
type Deck struct {
	ID        string    `json:"id"`
	PlayerID  string    `json:"playerId"`
	Name      string    `json:"name"`
	Cards     []Card    `json:"cards"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewDeck creates a deck with the given identity and an empty card list when
// cards is nil.
func NewDeck(id, playerID, name string, cards []Card) *Deck {
	if cards == nil {
		cards = []Card{}
	}
	return &Deck{
		ID:       id,
		PlayerID: playerID,
		Name:     name,
		Cards:    cards,
	}
}

// Size returns the number of cards in the deck.
func (d *Deck) Size() int {
	return len(d.Cards)
}

// Card returns the first card with the given id, or false if absent.
func (d *Deck) Card(id ID) (Card, bool) {
	for _, c := range d.Cards {
		if c.ID == id {
			return c, true
		}
	}
	return Card{}, false
}

// Pick resolves the given ids in order. It fails on the first id the deck
// does not hold.
func (d *Deck) Pick(ids []ID) ([]Card, error) {
	out := make([]Card, 0, len(ids))
	for _, id := range ids {
		c, ok := d.Card(id)
		if !ok {
			return nil, fmt.Errorf("card not in deck %s: %s", d.ID, id)
		}
		out = append(out, c)
	}
	return out, nil
}

// Validate checks that the deck and every card in it are well formed:
// non-empty ids, known rarity tiers, no duplicate card ids.
func (d *Deck) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("deck id is empty")
	}
	seen := make(map[ID]bool, len(d.Cards))
	for i, c := range d.Cards {
		if c.ID == "" {
			return fmt.Errorf("deck %s: card %d has empty id", d.ID, i)
		}
		if seen[c.ID] {
			return fmt.Errorf("deck %s: duplicate card id %s", d.ID, c.ID)
		}
		seen[c.ID] = true
		if c.Rarity.Rank() < 0 {
			return fmt.Errorf("deck %s: card %s has unknown rarity %q", d.ID, c.ID, c.Rarity)
		}
	}
	return nil
}
