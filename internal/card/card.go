package card

// ID is a unique identifier for a card.
type ID string

// Kind is the category of a card (e.g. "unit", "spell", "structure").
type Kind string

const (
	KindUnit      Kind = "unit"
	KindSpell     Kind = "spell"
	KindStructure Kind = "structure"
)

// Rarity is an ordered scarcity tier.
type Rarity string

const (
	RarityCommon   Rarity = "common"
	RarityUncommon Rarity = "uncommon"
	RarityRare     Rarity = "rare"
)

// Rarities lists the tiers from most to least frequent. Booster tier draws
// and default distributions walk this slice, never a map, so draw order is
// stable.
var Rarities = []Rarity{RarityCommon, RarityUncommon, RarityRare}

// Rank returns the position of the tier in ascending scarcity order,
// or -1 for an unknown tier.
func (r Rarity) Rank() int {
	for i, known := range Rarities {
		if known == r {
			return i
		}
	}
	return -1
}

// Edge is the affinity symbol assigned to one side of a hexagonal card.
type Edge string

// EdgeCount is the number of sides on a card.
const EdgeCount = 6

// Card is an immutable hex card. Copies are passed by value; nothing mutates
// a card after creation. The attribute block (strength, agility, intellect,
// element) is only populated for cards that take part in the forge flow.
type Card struct {
	ID        ID              `json:"id"`
	Name      string          `json:"name"`
	Kind      Kind            `json:"kind"`
	Rarity    Rarity          `json:"rarity"`
	Edges     [EdgeCount]Edge `json:"edges"`
	Tags      []string        `json:"tags,omitempty"`
	Power     int             `json:"power,omitempty"`
	Strength  int             `json:"strength,omitempty"`
	Agility   int             `json:"agility,omitempty"`
	Intellect int             `json:"intellect,omitempty"`
	Element   string          `json:"element,omitempty"`
}

// New creates a card with the given identity and an empty tag set when tags
// is nil.
func New(id ID, name string, kind Kind, rarity Rarity, edges [EdgeCount]Edge, tags []string) Card {
	if tags == nil {
		tags = []string{}
	}
	return Card{
		ID:     id,
		Name:   name,
		Kind:   kind,
		Rarity: rarity,
		Edges:  edges,
		Tags:   tags,
	}
}

// HasTag reports whether the card carries the given tag.
func (c Card) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// HasEveryTag reports whether the card carries all of the given tags.
// An empty requirement always matches.
func (c Card) HasEveryTag(tags []string) bool {
	for _, t := range tags {
		if !c.HasTag(t) {
			return false
		}
	}
	return true
}
