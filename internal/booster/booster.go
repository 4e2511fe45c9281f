// Package booster draws fixed-size, duplicate-free card selections from a
// pool, honoring a rarity distribution and optional kind/tag filters.
//
// Sampling degrades instead of failing: a pool too thin for the requested
// size yields a short pack, never an error. A live game cannot halt on a
// thin deck.
package booster

import (
	"time"

	"hexforge/internal/card"
	"hexforge/internal/rng"
)

// DefaultSize is the pack size used when a request does not ask for one.
const DefaultSize = 6

// Request describes one booster draw.
type Request struct {
	PlayerID     string
	Size         int // <= 0 selects DefaultSize
	Distribution map[card.Rarity]int
	AllowedKinds []card.Kind
	RequiredTags []string
	Seed         uint32
}

// Pack is an opened booster: an ordered selection with no duplicate card
// ids. ID and CreatedAt are assigned by the caller that owns identity (the
// engine); Generate leaves them zero.
type Pack struct {
	ID        string      `json:"id"`
	PlayerID  string      `json:"playerId"`
	Cards     []card.Card `json:"cards"`
	CreatedAt time.Time   `json:"createdAt,omitempty"`
}

// Generate opens one pack from the pool. The pool itself is never mutated;
// sampling works on local copies. The same request against the same pool
// yields the same pack.
//
// Tier draws walk card.Rarities in ascending order, so common slots are
// dealt first. When a tier runs dry its remaining slots are abandoned
// without error, and the pack tops up from whatever filtered cards are still
// unchosen, regardless of rarity.
func Generate(pool []card.Card, req Request) Pack {
	size := req.Size
	if size <= 0 {
		size = DefaultSize
	}

	filtered := filterPool(pool, req.AllowedKinds, req.RequiredTags)

	dist := req.Distribution
	if countTotal(dist) <= 0 {
		dist = defaultDistribution(size)
	}

	byTier := make(map[card.Rarity][]card.Card, len(card.Rarities))
	for _, c := range filtered {
		byTier[c.Rarity] = append(byTier[c.Rarity], c)
	}

	seq := rng.New(req.Seed)
	chosen := make([]card.Card, 0, size)
	taken := make(map[card.ID]bool, size)

	for _, tier := range card.Rarities {
		want := dist[tier]
		sub := byTier[tier]
		for want > 0 && len(sub) > 0 && len(chosen) < size {
			var c card.Card
			c, sub = takeAt(sub, seq.IntN(len(sub)))
			if taken[c.ID] {
				continue
			}
			taken[c.ID] = true
			chosen = append(chosen, c)
			want--
		}
	}

	if len(chosen) < size {
		remaining := make([]card.Card, 0, len(filtered))
		for _, c := range filtered {
			if !taken[c.ID] {
				remaining = append(remaining, c)
			}
		}
		for len(chosen) < size && len(remaining) > 0 {
			var c card.Card
			c, remaining = takeAt(remaining, seq.IntN(len(remaining)))
			if taken[c.ID] {
				continue
			}
			taken[c.ID] = true
			chosen = append(chosen, c)
		}
	}

	if len(chosen) > size {
		chosen = chosen[:size]
	}

	return Pack{PlayerID: req.PlayerID, Cards: chosen}
}

// defaultDistribution is the stock pack shape: one rare, two uncommons, the
// rest commons. Packs too small to hold the premium slots are dealt entirely
// from commons.
func defaultDistribution(size int) map[card.Rarity]int {
	if size < 3 {
		return map[card.Rarity]int{card.RarityCommon: size}
	}
	return map[card.Rarity]int{
		card.RarityCommon:   size - 3,
		card.RarityUncommon: 2,
		card.RarityRare:     1,
	}
}

func countTotal(dist map[card.Rarity]int) int {
	total := 0
	for _, n := range dist {
		if n > 0 {
			total += n
		}
	}
	return total
}

func filterPool(pool []card.Card, kinds []card.Kind, tags []string) []card.Card {
	out := make([]card.Card, 0, len(pool))
	for _, c := range pool {
		if len(kinds) > 0 && !kindAllowed(c.Kind, kinds) {
			continue
		}
		if !c.HasEveryTag(tags) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func kindAllowed(k card.Kind, allowed []card.Kind) bool {
	for _, a := range allowed {
		if a == k {
			return true
		}
	}
	return false
}

// takeAt removes index i in O(1) by swapping the last element into its slot.
func takeAt(cards []card.Card, i int) (card.Card, []card.Card) {
	c := cards[i]
	last := len(cards) - 1
	cards[i] = cards[last]
	return c, cards[:last]
}
