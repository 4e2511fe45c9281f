package collection

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"hexforge/internal/booster"
	"hexforge/internal/card"
)

// FileRepo persists decks and packs as JSON files under a data directory:
// decks/<id>.json and packs/<id>.json. Loaded entries are cached; the cache
// is filled on first read and kept current by writes.
type FileRepo struct {
	mu      sync.RWMutex
	dataDir string
	decks   map[string]card.Deck
	packs   map[string]booster.Pack
}

// NewFileRepo creates the data directory layout if it is missing.
func NewFileRepo(dataDir string) (*FileRepo, error) {
	for _, sub := range []string{"decks", "packs"} {
		if err := os.MkdirAll(filepath.Join(dataDir, sub), 0o755); err != nil {
			return nil, err
		}
	}
	return &FileRepo{
		dataDir: dataDir,
		decks:   make(map[string]card.Deck),
		packs:   make(map[string]booster.Pack),
	}, nil
}

func (r *FileRepo) deckPath(id string) string {
	return filepath.Join(r.dataDir, "decks", id+".json")
}

func (r *FileRepo) packPath(id string) string {
	return filepath.Join(r.dataDir, "packs", id+".json")
}

func (r *FileRepo) SaveDeck(ctx context.Context, d card.Deck) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(r.deckPath(d.ID), data, 0o644); err != nil {
		return err
	}
	r.decks[d.ID] = d
	return nil
}

func (r *FileRepo) GetDeck(ctx context.Context, id string) (card.Deck, bool, error) {
	r.mu.RLock()
	if d, ok := r.decks[id]; ok {
		r.mu.RUnlock()
		return d, true, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	// double-check after acquiring the write lock
	if d, ok := r.decks[id]; ok {
		return d, true, nil
	}

	data, err := os.ReadFile(r.deckPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return card.Deck{}, false, nil
		}
		return card.Deck{}, false, err
	}
	var d card.Deck
	if err := json.Unmarshal(data, &d); err != nil {
		return card.Deck{}, false, err
	}
	if d.Cards == nil {
		d.Cards = []card.Card{}
	}
	r.decks[id] = d
	return d, true, nil
}

func (r *FileRepo) ListDecks(ctx context.Context) ([]card.Deck, error) {
	ids, err := listIDs(filepath.Join(r.dataDir, "decks"))
	if err != nil {
		return nil, err
	}
	result := make([]card.Deck, 0, len(ids))
	for _, id := range ids {
		d, ok, err := r.GetDeck(ctx, id)
		if err != nil {
			return nil, err
		}
		if ok {
			result = append(result, d)
		}
	}
	return result, nil
}

func (r *FileRepo) DeleteDeck(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	err := os.Remove(r.deckPath(id))
	if os.IsNotExist(err) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	delete(r.decks, id)
	return nil
}

func (r *FileRepo) SavePack(ctx context.Context, p booster.Pack) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(r.packPath(p.ID), data, 0o644); err != nil {
		return err
	}
	r.packs[p.ID] = p
	return nil
}

func (r *FileRepo) GetPack(ctx context.Context, id string) (booster.Pack, bool, error) {
	r.mu.RLock()
	if p, ok := r.packs[id]; ok {
		r.mu.RUnlock()
		return p, true, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok := r.packs[id]; ok {
		return p, true, nil
	}

	data, err := os.ReadFile(r.packPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return booster.Pack{}, false, nil
		}
		return booster.Pack{}, false, err
	}
	var p booster.Pack
	if err := json.Unmarshal(data, &p); err != nil {
		return booster.Pack{}, false, err
	}
	r.packs[id] = p
	return p, true, nil
}

func (r *FileRepo) ListPlayerPacks(ctx context.Context, playerID string) ([]booster.Pack, error) {
	ids, err := listIDs(filepath.Join(r.dataDir, "packs"))
	if err != nil {
		return nil, err
	}
	result := make([]booster.Pack, 0)
	for _, id := range ids {
		p, ok, err := r.GetPack(ctx, id)
		if err != nil {
			return nil, err
		}
		if ok && p.PlayerID == playerID {
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

// listIDs returns the ids of every .json entry in dir, sorted.
func listIDs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(ids)
	return ids, nil
}

var _ Repository = (*FileRepo)(nil)
