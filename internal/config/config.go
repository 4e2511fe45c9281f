// Package config loads the content configuration for the forge: map
// generation defaults, booster distributions, terrain catalogs per
// theme, and the starter deck. Configuration is read from a YAML file
// and anything left unset falls back to built-in defaults, so an empty
// file (or no file at all) yields a fully playable setup.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"hexforge/internal/card"
	"hexforge/internal/mapgen"
)

type Config struct {
	Version     string        `yaml:"version" json:"version"`
	Map         MapConfig     `yaml:"map" json:"map"`
	Booster     BoosterConfig `yaml:"booster" json:"booster"`
	TerrainSets []TerrainSet  `yaml:"terrain_sets" json:"terrain_sets"`
	StarterDeck DeckConfig    `yaml:"starter_deck" json:"starter_deck"`
}

type MapConfig struct {
	DefaultWidth  int    `yaml:"default_width" json:"default_width"`
	DefaultHeight int    `yaml:"default_height" json:"default_height"`
	DefaultTheme  string `yaml:"default_theme" json:"default_theme"`
}

type BoosterConfig struct {
	DefaultSize        int            `yaml:"default_size" json:"default_size"`
	RarityDistribution map[string]int `yaml:"rarity_distribution" json:"rarity_distribution"`
}

// TerrainSet is an ordered terrain catalog for one theme. Order matters:
// map generation walks the entries in the order they appear here.
type TerrainSet struct {
	ID       string         `yaml:"id" json:"id"`
	Theme    string         `yaml:"theme" json:"theme"`
	Terrains []TerrainEntry `yaml:"terrains" json:"terrains"`
}

type TerrainEntry struct {
	ID            string  `yaml:"id" json:"id"`
	Label         string  `yaml:"label" json:"label"`
	MoveCost      float64 `yaml:"move_cost" json:"move_cost"`
	ResourceYield float64 `yaml:"resource_yield,omitempty" json:"resource_yield,omitempty"`
	Weight        float64 `yaml:"weight" json:"weight"`
}

type DeckConfig struct {
	ID    string      `yaml:"id" json:"id"`
	Name  string      `yaml:"name" json:"name"`
	Cards []CardEntry `yaml:"cards" json:"cards"`
}

type CardEntry struct {
	ID        string   `yaml:"id" json:"id"`
	Name      string   `yaml:"name" json:"name"`
	Kind      string   `yaml:"kind" json:"kind"`
	Rarity    string   `yaml:"rarity" json:"rarity"`
	Edges     []string `yaml:"edges" json:"edges"`
	Tags      []string `yaml:"tags,omitempty" json:"tags,omitempty"`
	Power     int      `yaml:"power,omitempty" json:"power,omitempty"`
	Strength  int      `yaml:"strength,omitempty" json:"strength,omitempty"`
	Agility   int      `yaml:"agility,omitempty" json:"agility,omitempty"`
	Intellect int      `yaml:"intellect,omitempty" json:"intellect,omitempty"`
	Element   string   `yaml:"element,omitempty" json:"element,omitempty"`
}

// Load reads a YAML config from path and fills in defaults for anything
// the file leaves out.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	c.ApplyDefaults()
	return &c, nil
}

// LoadOrDefault behaves like Load but returns the built-in defaults when
// path is empty or the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

func (c *Config) ApplyDefaults() {
	d := Default()
	if c.Version == "" {
		c.Version = d.Version
	}
	if c.Map.DefaultWidth == 0 {
		c.Map.DefaultWidth = d.Map.DefaultWidth
	}
	if c.Map.DefaultHeight == 0 {
		c.Map.DefaultHeight = d.Map.DefaultHeight
	}
	if c.Map.DefaultTheme == "" {
		c.Map.DefaultTheme = d.Map.DefaultTheme
	}
	if c.Booster.DefaultSize == 0 {
		c.Booster.DefaultSize = d.Booster.DefaultSize
	}
	if len(c.Booster.RarityDistribution) == 0 {
		c.Booster.RarityDistribution = d.Booster.RarityDistribution
	}
	if len(c.TerrainSets) == 0 {
		c.TerrainSets = d.TerrainSets
	}
	if len(c.StarterDeck.Cards) == 0 {
		c.StarterDeck = d.StarterDeck
	}
}

// TerrainSetFor returns the first terrain set declared for theme.
func (c *Config) TerrainSetFor(theme string) (TerrainSet, bool) {
	for _, s := range c.TerrainSets {
		if s.Theme == theme {
			return s, true
		}
	}
	return TerrainSet{}, false
}

// Weighted converts the set into the weighted entries map generation
// consumes, preserving declaration order.
func (s TerrainSet) Weighted() []mapgen.Weighted {
	out := make([]mapgen.Weighted, 0, len(s.Terrains))
	for _, t := range s.Terrains {
		out = append(out, mapgen.Weighted{
			Terrain: mapgen.Terrain{
				ID:            t.ID,
				Name:          t.Label,
				MoveCost:      t.MoveCost,
				ResourceYield: t.ResourceYield,
				Theme:         mapgen.Theme(s.Theme),
			},
			Weight: t.Weight,
		})
	}
	return out
}

// Distribution converts the configured rarity counts to typed rarities.
// Unknown rarity names are skipped.
func (b BoosterConfig) Distribution() map[card.Rarity]int {
	out := make(map[card.Rarity]int, len(b.RarityDistribution))
	for name, n := range b.RarityDistribution {
		r := card.Rarity(name)
		if r.Rank() < 0 {
			continue
		}
		out[r] = n
	}
	return out
}

// Card converts a config entry into a domain card. The entry must carry
// exactly one edge per hex side.
func (e CardEntry) Card() (card.Card, error) {
	if len(e.Edges) != card.EdgeCount {
		return card.Card{}, fmt.Errorf("card %s: want %d edges, got %d", e.ID, card.EdgeCount, len(e.Edges))
	}
	var edges [card.EdgeCount]card.Edge
	for i, s := range e.Edges {
		edges[i] = card.Edge(s)
	}
	c := card.New(card.ID(e.ID), e.Name, card.Kind(e.Kind), card.Rarity(e.Rarity), edges, e.Tags)
	c.Power = e.Power
	c.Strength = e.Strength
	c.Agility = e.Agility
	c.Intellect = e.Intellect
	c.Element = e.Element
	return c, nil
}

// Deck materializes the configured deck for a player.
func (d DeckConfig) Deck(playerID string) (card.Deck, error) {
	cards := make([]card.Card, 0, len(d.Cards))
	for _, e := range d.Cards {
		c, err := e.Card()
		if err != nil {
			return card.Deck{}, err
		}
		cards = append(cards, c)
	}
	deck := card.NewDeck(d.ID, playerID, d.Name, cards)
	if err := deck.Validate(); err != nil {
		return card.Deck{}, err
	}
	return *deck, nil
}
