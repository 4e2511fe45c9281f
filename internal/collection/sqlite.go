package collection

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"hexforge/internal/booster"
	"hexforge/internal/card"

	_ "modernc.org/sqlite"
)

// SQLiteRepo persists decks and packs in a SQLite database. Card lists are
// stored as JSON columns; the store has no need to query inside them.
type SQLiteRepo struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS decks (
	id         TEXT PRIMARY KEY,
	player_id  TEXT NOT NULL,
	name       TEXT NOT NULL,
	cards      TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS packs (
	id         TEXT PRIMARY KEY,
	player_id  TEXT NOT NULL,
	cards      TEXT NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_packs_player ON packs(player_id);
`

// OpenSQLite opens (creating if missing) the database at path and ensures
// the schema exists.
func OpenSQLite(path string) (*SQLiteRepo, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLiteRepo{db: db}, nil
}

// Close closes the database handle.
func (r *SQLiteRepo) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func toMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UTC().UnixMilli()
}

func fromMillis(v int64) time.Time {
	if v == 0 {
		return time.Time{}
	}
	return time.UnixMilli(v).UTC()
}

func (r *SQLiteRepo) SaveDeck(ctx context.Context, d card.Deck) error {
	cards, err := json.Marshal(d.Cards)
	if err != nil {
		return fmt.Errorf("encode cards: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO decks (id, player_id, name, cards, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   player_id = excluded.player_id,
		   name = excluded.name,
		   cards = excluded.cards,
		   updated_at = excluded.updated_at`,
		d.ID, d.PlayerID, d.Name, string(cards), toMillis(d.CreatedAt), toMillis(d.UpdatedAt))
	if err != nil {
		return fmt.Errorf("save deck %s: %w", d.ID, err)
	}
	return nil
}

func (r *SQLiteRepo) GetDeck(ctx context.Context, id string) (card.Deck, bool, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, player_id, name, cards, created_at, updated_at FROM decks WHERE id = ?`, id)

	var d card.Deck
	var cards string
	var created, updated int64
	err := row.Scan(&d.ID, &d.PlayerID, &d.Name, &cards, &created, &updated)
	if err == sql.ErrNoRows {
		return card.Deck{}, false, nil
	}
	if err != nil {
		return card.Deck{}, false, fmt.Errorf("get deck %s: %w", id, err)
	}
	if err := json.Unmarshal([]byte(cards), &d.Cards); err != nil {
		return card.Deck{}, false, fmt.Errorf("decode cards for deck %s: %w", id, err)
	}
	if d.Cards == nil {
		d.Cards = []card.Card{}
	}
	d.CreatedAt = fromMillis(created)
	d.UpdatedAt = fromMillis(updated)
	return d, true, nil
}

func (r *SQLiteRepo) ListDecks(ctx context.Context) ([]card.Deck, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, player_id, name, cards, created_at, updated_at FROM decks ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list decks: %w", err)
	}
	defer rows.Close()

	result := make([]card.Deck, 0)
	for rows.Next() {
		var d card.Deck
		var cards string
		var created, updated int64
		if err := rows.Scan(&d.ID, &d.PlayerID, &d.Name, &cards, &created, &updated); err != nil {
			return nil, fmt.Errorf("scan deck: %w", err)
		}
		if err := json.Unmarshal([]byte(cards), &d.Cards); err != nil {
			return nil, fmt.Errorf("decode cards for deck %s: %w", d.ID, err)
		}
		if d.Cards == nil {
			d.Cards = []card.Card{}
		}
		d.CreatedAt = fromMillis(created)
		d.UpdatedAt = fromMillis(updated)
		result = append(result, d)
	}
	return result, rows.Err()
}

func (r *SQLiteRepo) DeleteDeck(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM decks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete deck %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLiteRepo) SavePack(ctx context.Context, p booster.Pack) error {
	cards, err := json.Marshal(p.Cards)
	if err != nil {
		return fmt.Errorf("encode cards: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO packs (id, player_id, cards, created_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   player_id = excluded.player_id,
		   cards = excluded.cards`,
		p.ID, p.PlayerID, string(cards), toMillis(p.CreatedAt))
	if err != nil {
		return fmt.Errorf("save pack %s: %w", p.ID, err)
	}
	return nil
}

func (r *SQLiteRepo) GetPack(ctx context.Context, id string) (booster.Pack, bool, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, player_id, cards, created_at FROM packs WHERE id = ?`, id)

	var p booster.Pack
	var cards string
	var created int64
	err := row.Scan(&p.ID, &p.PlayerID, &cards, &created)
	if err == sql.ErrNoRows {
		return booster.Pack{}, false, nil
	}
	if err != nil {
		return booster.Pack{}, false, fmt.Errorf("get pack %s: %w", id, err)
	}
	if err := json.Unmarshal([]byte(cards), &p.Cards); err != nil {
		return booster.Pack{}, false, fmt.Errorf("decode cards for pack %s: %w", id, err)
	}
	if p.Cards == nil {
		p.Cards = []card.Card{}
	}
	p.CreatedAt = fromMillis(created)
	return p, true, nil
}

func (r *SQLiteRepo) ListPlayerPacks(ctx context.Context, playerID string) ([]booster.Pack, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, player_id, cards, created_at FROM packs WHERE player_id = ? ORDER BY created_at, id`, playerID)
	if err != nil {
		return nil, fmt.Errorf("list packs for %s: %w", playerID, err)
	}
	defer rows.Close()

	result := make([]booster.Pack, 0)
	for rows.Next() {
		var p booster.Pack
		var cards string
		var created int64
		if err := rows.Scan(&p.ID, &p.PlayerID, &cards, &created); err != nil {
			return nil, fmt.Errorf("scan pack: %w", err)
		}
		if err := json.Unmarshal([]byte(cards), &p.Cards); err != nil {
			return nil, fmt.Errorf("decode cards for pack %s: %w", p.ID, err)
		}
		if p.Cards == nil {
			p.Cards = []card.Card{}
		}
		p.CreatedAt = fromMillis(created)
		result = append(result, p)
	}
	return result, rows.Err()
}

var _ Repository = (*SQLiteRepo)(nil)
