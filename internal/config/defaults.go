package config

// Default returns the built-in content configuration. It is complete on
// its own: the CLI runs against it when no config file is present, and
// ApplyDefaults pulls individual sections from it to patch partial files.
func Default() *Config {
	return &Config{
		Version: "1",
		Map: MapConfig{
			DefaultWidth:  16,
			DefaultHeight: 12,
			DefaultTheme:  "fantasy",
		},
		Booster: BoosterConfig{
			DefaultSize: 6,
			RarityDistribution: map[string]int{
				"common":   3,
				"uncommon": 2,
				"rare":     1,
			},
		},
		TerrainSets: []TerrainSet{
			{
				ID:    "fantasy_base",
				Theme: "fantasy",
				Terrains: []TerrainEntry{
					{ID: "plains", Label: "Plains", MoveCost: 1, ResourceYield: 1, Weight: 6},
					{ID: "forest", Label: "Forest", MoveCost: 2, ResourceYield: 2, Weight: 4},
					{ID: "hills", Label: "Hills", MoveCost: 2, ResourceYield: 1, Weight: 3},
					{ID: "water", Label: "Water", MoveCost: 3, Weight: 2},
					{ID: "mountain", Label: "Mountain", MoveCost: 4, ResourceYield: 3, Weight: 1},
				},
			},
			{
				ID:    "scifi_base",
				Theme: "scifi",
				Terrains: []TerrainEntry{
					{ID: "wasteland", Label: "Wasteland", MoveCost: 1, Weight: 5},
					{ID: "crater", Label: "Crater Field", MoveCost: 2, ResourceYield: 1, Weight: 3},
					{ID: "ferrocrete", Label: "Ferrocrete Ruins", MoveCost: 1, ResourceYield: 2, Weight: 3},
					{ID: "chem_marsh", Label: "Chem Marsh", MoveCost: 3, Weight: 2},
					{ID: "reactor", Label: "Reactor Core", MoveCost: 4, ResourceYield: 4, Weight: 1},
				},
			},
		},
		StarterDeck: DeckConfig{
			ID:   "starter",
			Name: "Starter Deck",
			Cards: []CardEntry{
				{
					ID: "ember_sprite", Name: "Ember Sprite", Kind: "unit", Rarity: "common",
					Edges: []string{"flame", "flame", "claw", "link", "link", "claw"},
					Tags:  []string{"beast"},
					Power: 2, Strength: 1, Agility: 3, Intellect: 1, Element: "fire",
				},
				{
					ID: "river_scout", Name: "River Scout", Kind: "unit", Rarity: "common",
					Edges: []string{"wave", "link", "boot", "boot", "link", "wave"},
					Tags:  []string{"scout"},
					Power: 2, Strength: 2, Agility: 2, Intellect: 1, Element: "water",
				},
				{
					ID: "stone_sentry", Name: "Stone Sentry", Kind: "structure", Rarity: "common",
					Edges: []string{"shield", "shield", "shield", "gate", "gate", "shield"},
					Tags:  []string{"defense"},
					Power: 3, Strength: 4, Element: "earth",
				},
				{
					ID: "gust_charm", Name: "Gust Charm", Kind: "spell", Rarity: "common",
					Edges: []string{"gale", "gale", "rune", "rune", "gale", "rune"},
					Tags:  []string{"arcane"},
					Power: 1, Agility: 2, Intellect: 2, Element: "air",
				},
				{
					ID: "torch_bearer", Name: "Torch Bearer", Kind: "unit", Rarity: "common",
					Edges: []string{"flame", "link", "boot", "link", "flame", "boot"},
					Tags:  []string{"scout"},
					Power: 2, Strength: 2, Agility: 1, Intellect: 2, Element: "fire",
				},
				{
					ID: "moss_golem", Name: "Moss Golem", Kind: "unit", Rarity: "common",
					Edges: []string{"root", "shield", "root", "shield", "claw", "claw"},
					Tags:  []string{"beast", "defense"},
					Power: 3, Strength: 3, Agility: 1, Intellect: 1, Element: "earth",
				},
				{
					ID: "tide_caller", Name: "Tide Caller", Kind: "unit", Rarity: "uncommon",
					Edges: []string{"wave", "wave", "rune", "link", "rune", "wave"},
					Tags:  []string{"arcane"},
					Power: 4, Strength: 1, Agility: 2, Intellect: 4, Element: "water",
				},
				{
					ID: "cinder_lance", Name: "Cinder Lance", Kind: "spell", Rarity: "uncommon",
					Edges: []string{"flame", "rune", "flame", "rune", "flame", "rune"},
					Tags:  []string{"arcane"},
					Power: 4, Intellect: 3, Element: "fire",
				},
				{
					ID: "bulwark_gate", Name: "Bulwark Gate", Kind: "structure", Rarity: "uncommon",
					Edges: []string{"gate", "shield", "gate", "shield", "gate", "shield"},
					Tags:  []string{"defense"},
					Power: 5, Strength: 5, Element: "earth",
				},
				{
					ID: "sky_herald", Name: "Sky Herald", Kind: "unit", Rarity: "uncommon",
					Edges: []string{"gale", "wing", "gale", "wing", "link", "link"},
					Tags:  []string{"scout", "flying"},
					Power: 4, Strength: 2, Agility: 5, Intellect: 2, Element: "air",
				},
				{
					ID: "forge_titan", Name: "Forge Titan", Kind: "unit", Rarity: "rare",
					Edges: []string{"flame", "anvil", "shield", "anvil", "flame", "shield"},
					Tags:  []string{"beast", "defense"},
					Power: 7, Strength: 6, Agility: 2, Intellect: 3, Element: "fire",
				},
				{
					ID: "abyss_oracle", Name: "Abyss Oracle", Kind: "unit", Rarity: "rare",
					Edges: []string{"wave", "rune", "eye", "rune", "wave", "eye"},
					Tags:  []string{"arcane"},
					Power: 6, Strength: 1, Agility: 3, Intellect: 7, Element: "water",
				},
			},
		},
	}
}
