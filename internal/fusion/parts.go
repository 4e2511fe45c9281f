package fusion

// PartType categorizes ship parts.
type PartType string

const (
	PartHull    PartType = "hull"
	PartEngine  PartType = "engine"
	PartWeapon  PartType = "weapon"
	PartCargo   PartType = "cargo"
	PartUtility PartType = "utility"
)

// Stats is the stat block shared by parts and assembled ships. A part keeps
// zeroes for the stats it does not contribute; an aggregated block always
// reports all four fields.
type Stats struct {
	Speed   int `json:"speed"`
	Defense int `json:"defense"`
	Cargo   int `json:"cargo"`
	Attack  int `json:"attack"`
}

// Part is an immutable ship component.
type Part struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Type  PartType `json:"type"`
	Stats Stats    `json:"stats"`
}

// AggregateStats sums stat contributions across parts. The reduction is
// commutative and idempotent: part order does not matter and re-running it
// over the same list gives the same block.
func AggregateStats(parts []Part) Stats {
	var total Stats
	for _, p := range parts {
		total.Speed += p.Stats.Speed
		total.Defense += p.Stats.Defense
		total.Cargo += p.Stats.Cargo
		total.Attack += p.Stats.Attack
	}
	return total
}
