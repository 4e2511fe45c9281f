package player

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

type store struct {
	mu   sync.Mutex
	path string
	s    fileState
}

// FileRepo is a view of the shared player state file scoped to one player.
type FileRepo struct {
	store    *store
	playerID string
}

// NewFileRepo opens (creating if missing) players.json under dataDir. The
// returned repo is scoped to the "default" player; use ForPlayer to scope it
// to someone else.
func NewFileRepo(dataDir string) (*FileRepo, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	st := &store{
		path: filepath.Join(dataDir, "players.json"),
		s:    fileState{Players: map[string]Profile{}},
	}
	if err := st.load(); err != nil {
		return nil, err
	}
	return &FileRepo{store: st, playerID: "default"}, nil
}

func (s *store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.s = fileState{Players: map[string]Profile{}}
			return nil
		}
		return err
	}

	var loaded fileState
	if err := json.Unmarshal(b, &loaded); err != nil {
		return err
	}
	if loaded.Players == nil {
		loaded.Players = map[string]Profile{}
	}
	for id, p := range loaded.Players {
		loaded.Players[id] = normalizeProfile(p)
	}
	s.s = loaded
	return nil
}

func (s *store) saveLocked() error {
	b, err := json.MarshalIndent(s.s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, b, 0o644)
}

// ForPlayer returns a view of the same store scoped to playerID.
func (r *FileRepo) ForPlayer(playerID string) *FileRepo {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		playerID = "default"
	}
	return &FileRepo{store: r.store, playerID: playerID}
}

// PlayerID returns the id this view is scoped to.
func (r *FileRepo) PlayerID() string {
	return r.playerID
}

func normalizeProfile(p Profile) Profile {
	if p.Metrics == nil {
		p.Metrics = map[string]int{}
	}
	if p.DeckOpens == nil {
		p.DeckOpens = map[string]int{}
	}
	return p
}

func cloneProfile(p Profile) Profile {
	out := Profile{Name: p.Name, Metrics: make(map[string]int, len(p.Metrics)), DeckOpens: make(map[string]int, len(p.DeckOpens))}
	for k, v := range p.Metrics {
		out.Metrics[k] = v
	}
	for k, v := range p.DeckOpens {
		out.DeckOpens[k] = v
	}
	return out
}

func (r *FileRepo) profileLocked() Profile {
	p, ok := r.store.s.Players[r.playerID]
	if !ok {
		p = normalizeProfile(Profile{})
		r.store.s.Players[r.playerID] = p
		return p
	}
	p = normalizeProfile(p)
	r.store.s.Players[r.playerID] = p
	return p
}

// Profile returns a copy of the player's current record.
func (r *FileRepo) Profile() Profile {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return cloneProfile(r.profileLocked())
}

// SetName updates the player's display name.
func (r *FileRepo) SetName(name string) (Profile, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	p := r.profileLocked()
	p.Name = strings.TrimSpace(name)
	r.store.s.Players[r.playerID] = p
	if err := r.store.saveLocked(); err != nil {
		return Profile{}, err
	}
	return cloneProfile(p), nil
}

// IncrementDeckOpen bumps the open counter for one source deck and the
// overall packs-opened metric, returning the new per-deck count.
func (r *FileRepo) IncrementDeckOpen(deckID string) (int, Profile, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	p := r.profileLocked()
	p.DeckOpens[deckID]++
	p.Metrics[MetricPacksOpened]++
	r.store.s.Players[r.playerID] = p
	if err := r.store.saveLocked(); err != nil {
		return 0, Profile{}, err
	}
	return p.DeckOpens[deckID], cloneProfile(p), nil
}

// IncrementMetric bumps a named counter by delta. Non-positive deltas are
// ignored.
func (r *FileRepo) IncrementMetric(metric string, delta int) (Profile, error) {
	if delta <= 0 {
		return r.Profile(), nil
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	p := r.profileLocked()
	p.Metrics[metric] += delta
	r.store.s.Players[r.playerID] = p
	if err := r.store.saveLocked(); err != nil {
		return Profile{}, err
	}
	return cloneProfile(p), nil
}
