package fusion

import (
	"unicode"

	"hexforge/internal/card"
)

// Loadout is the six equip slots of a character under assembly in the forge
// flow. A nil slot is simply empty; derivation skips it.
type Loadout [SourceCount]*card.Card

// Profile is the sheet derived from a loadout: summed attributes and the
// class label.
type Profile struct {
	Strength  int    `json:"strength"`
	Agility   int    `json:"agility"`
	Intellect int    `json:"intellect"`
	Class     string `json:"class"`
}

// DefaultClass is the label for a loadout with no dominant element.
const DefaultClass = "Adventurer"

// classThreshold is how many cards must share an element before it names
// the class.
const classThreshold = 3

// DeriveProfile sums strength, agility and intellect across the filled
// slots and derives the class label. Element occurrences are tallied into
// an ordered list built in slot order, so when two elements both reach the
// threshold the one whose cards appear first wins. The tally is never a
// map; map iteration order would make the tie-break irreproducible.
func DeriveProfile(slots Loadout) Profile {
	p := Profile{Class: DefaultClass}

	type elementCount struct {
		element string
		count   int
	}
	tally := make([]elementCount, 0, SourceCount)

	for _, c := range slots {
		if c == nil {
			continue
		}
		p.Strength += c.Strength
		p.Agility += c.Agility
		p.Intellect += c.Intellect
		if c.Element == "" {
			continue
		}
		found := false
		for i := range tally {
			if tally[i].element == c.Element {
				tally[i].count++
				found = true
				break
			}
		}
		if !found {
			tally = append(tally, elementCount{element: c.Element, count: 1})
		}
	}

	for _, e := range tally {
		if e.count >= classThreshold {
			p.Class = capitalize(e.element) + " Mage"
			break
		}
	}
	return p
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
