package mapgen

// Theme partitions terrains into the settings a map can be generated for.
type Theme string

const (
	ThemeFantasy Theme = "fantasy"
	ThemeSciFi   Theme = "scifi"
)

// Terrain describes one terrain type the generator can place.
type Terrain struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	MoveCost      float64 `json:"moveCost"`
	ResourceYield float64 `json:"resourceYield,omitempty"`
	Theme         Theme   `json:"theme,omitempty"`
}

// Weighted pairs a terrain with its relative likelihood at each cell.
// Entries stay in slice order so the cumulative table built from them is
// identical run to run.
type Weighted struct {
	Terrain Terrain `json:"terrain"`
	Weight  float64 `json:"weight"`
}

// Tile is one generated map cell in axial coordinates.
type Tile struct {
	Q         int      `json:"q"`
	R         int      `json:"r"`
	Terrain   Terrain  `json:"terrain"`
	Elevation float64  `json:"elevation,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}
