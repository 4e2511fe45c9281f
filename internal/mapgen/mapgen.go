// Package mapgen produces terrain tile maps from weighted terrain
// distributions and a 32-bit seed.
//
// # Determinism
//
// The same parameters always produce the same tiles, in the same order, on
// every platform. Tiles are emitted row-major (r is the outer loop, q the
// inner) and every draw comes from one rng.Sequence initialized with the
// seed, so a recorded seed replays a map exactly.
package mapgen

import (
	"errors"

	"hexforge/internal/rng"
)

// ErrNoEligibleTerrain is returned when, after theme filtering, no terrain
// entry carries a positive weight.
var ErrNoEligibleTerrain = errors.New("mapgen: no eligible terrain weights")

// Params describes one generation run.
type Params struct {
	Width    int
	Height   int
	Seed     uint32
	Terrains []Weighted
	Theme    Theme // empty accepts every theme
}

// Generate produces Width times Height tiles covering every coordinate
// 0 <= q < Width, 0 <= r < Height.
//
// A run with no positively weighted terrain for the requested theme fails
// with ErrNoEligibleTerrain regardless of the requested dimensions. A width
// or height of zero or less yields an empty map, not an error.
func Generate(p Params) ([]Tile, error) {
	eligible := make([]Weighted, 0, len(p.Terrains))
	for _, w := range p.Terrains {
		if p.Theme != "" && w.Terrain.Theme != p.Theme {
			continue
		}
		if w.Weight <= 0 {
			continue
		}
		eligible = append(eligible, w)
	}
	if len(eligible) == 0 {
		return nil, ErrNoEligibleTerrain
	}
	if p.Width <= 0 || p.Height <= 0 {
		return []Tile{}, nil
	}

	cumulative := make([]float64, len(eligible))
	total := 0.0
	for i, w := range eligible {
		total += w.Weight
		cumulative[i] = total
	}

	seq := rng.New(p.Seed)
	tiles := make([]Tile, 0, p.Width*p.Height)
	for r := 0; r < p.Height; r++ {
		for q := 0; q < p.Width; q++ {
			draw := seq.Float64() * total
			// last entry catches draws that float rounding pushes past
			// every cumulative sum; no cell is ever left unassigned
			terrain := eligible[len(eligible)-1].Terrain
			for i, c := range cumulative {
				if draw <= c {
					terrain = eligible[i].Terrain
					break
				}
			}
			tiles = append(tiles, Tile{Q: q, R: r, Terrain: terrain})
		}
	}
	return tiles, nil
}

// GenerateGrid runs Generate and arranges the tiles as rows indexed
// [row][col].
func GenerateGrid(p Params) ([][]Tile, error) {
	tiles, err := Generate(p)
	if err != nil {
		return nil, err
	}
	if len(tiles) == 0 {
		return [][]Tile{}, nil
	}
	rows := make([][]Tile, 0, p.Height)
	for r := 0; r < p.Height; r++ {
		rows = append(rows, tiles[r*p.Width:(r+1)*p.Width])
	}
	return rows, nil
}
