// Package collection persists decks and opened booster packs. Three backends
// implement the same repository interface: an in-memory store for tests and
// ephemeral runs, a JSON file store, and a SQLite store.
package collection

import (
	"context"
	"errors"

	"hexforge/internal/booster"
	"hexforge/internal/card"
)

// ErrNotFound is returned by deletes that name an id the store does not
// hold. Lookups report absence through their bool instead.
var ErrNotFound = errors.New("collection: not found")

// Repository handles persistence of decks and opened packs.
type Repository interface {
	SaveDeck(ctx context.Context, d card.Deck) error
	GetDeck(ctx context.Context, id string) (card.Deck, bool, error)
	ListDecks(ctx context.Context) ([]card.Deck, error)
	DeleteDeck(ctx context.Context, id string) error

	SavePack(ctx context.Context, p booster.Pack) error
	GetPack(ctx context.Context, id string) (booster.Pack, bool, error)
	ListPlayerPacks(ctx context.Context, playerID string) ([]booster.Pack, error)
}
