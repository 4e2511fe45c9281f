package collection

import (
	"context"
	"sort"
	"sync"

	"hexforge/internal/booster"
	"hexforge/internal/card"
)

// MemoryRepo keeps decks and packs in process memory.
type MemoryRepo struct {
	mu    sync.RWMutex
	decks map[string]card.Deck
	packs map[string]booster.Pack
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		decks: make(map[string]card.Deck),
		packs: make(map[string]booster.Pack),
	}
}

// Seed loads decks without going through SaveDeck, for tests.
func (r *MemoryRepo) Seed(ctx context.Context, decks []card.Deck) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, d := range decks {
		r.decks[d.ID] = d
	}
	return nil
}

func (r *MemoryRepo) SaveDeck(ctx context.Context, d card.Deck) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.decks[d.ID] = d
	return nil
}

func (r *MemoryRepo) GetDeck(ctx context.Context, id string) (card.Deck, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.decks[id]
	return d, ok, nil
}

func (r *MemoryRepo) ListDecks(ctx context.Context) ([]card.Deck, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]card.Deck, 0, len(r.decks))
	for _, d := range r.decks {
		result = append(result, d)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *MemoryRepo) DeleteDeck(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.decks[id]; !ok {
		return ErrNotFound
	}
	delete(r.decks, id)
	return nil
}

func (r *MemoryRepo) SavePack(ctx context.Context, p booster.Pack) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.packs[p.ID] = p
	return nil
}

func (r *MemoryRepo) GetPack(ctx context.Context, id string) (booster.Pack, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.packs[id]
	return p, ok, nil
}

func (r *MemoryRepo) ListPlayerPacks(ctx context.Context, playerID string) ([]booster.Pack, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]booster.Pack, 0)
	for _, p := range r.packs {
		if p.PlayerID == playerID {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

var _ Repository = (*MemoryRepo)(nil)
