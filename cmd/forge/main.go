// Command forge is the hexforge CLI: seeded map generation, booster packs,
// fusion, and the collection that backs them. Storage and logging are
// configured through FORGE_* environment variables (a .env file is honored).
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"hexforge/internal/card"
	"hexforge/internal/collection"
	"hexforge/internal/config"
	"hexforge/internal/fusion"
	"hexforge/internal/game"
	"hexforge/internal/mapgen"
	"hexforge/internal/player"
	"hexforge/internal/telemetry"
)

func main() {
	_ = godotenv.Load()

	env, err := config.ParseEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("bad environment")
	}
	if lvl, err := zerolog.ParseLevel(env.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	ctx := context.Background()
	cmd, args := os.Args[1], os.Args[2:]

	var cmdErr error
	switch cmd {
	case "map":
		cmdErr = cmdMap(ctx, env, args)
	case "booster":
		cmdErr = cmdBooster(ctx, env, args)
	case "fuse":
		cmdErr = cmdFuse(ctx, env, args)
	case "ship":
		cmdErr = cmdShip(ctx, env, args)
	case "profile":
		cmdErr = cmdProfile(ctx, env, args)
	case "deck":
		cmdErr = cmdDeck(ctx, env, args)
	case "stats":
		cmdErr = cmdStats(ctx, env, args)
	default:
		printUsage()
		os.Exit(2)
	}
	if cmdErr != nil {
		log.Fatal().Err(cmdErr).Str("command", cmd).Msg("command failed")
	}
}

// newEngine assembles the engine against the store selected by FORGE_STORE.
// The returned closer releases the store and must run before exit.
func newEngine(env config.Env) (game.Engine, func(), error) {
	cfg, err := config.LoadOrDefault(env.ConfigPath)
	if err != nil {
		return game.Engine{}, nil, err
	}

	var repo collection.Repository
	closer := func() {}
	switch env.Store {
	case config.StoreMemory:
		repo = collection.NewMemoryRepo()
	case config.StoreSQLite:
		db, err := collection.OpenSQLite(env.SQLitePath)
		if err != nil {
			return game.Engine{}, nil, err
		}
		repo = db
		closer = func() { _ = db.Close() }
	default:
		fr, err := collection.NewFileRepo(env.DataDir)
		if err != nil {
			return game.Engine{}, nil, err
		}
		repo = fr
	}

	players, err := player.NewFileRepo(env.DataDir)
	if err != nil {
		closer()
		return game.Engine{}, nil, err
	}
	events, err := telemetry.NewFileRepository(env.DataDir)
	if err != nil {
		closer()
		return game.Engine{}, nil, err
	}

	e := game.Engine{
		Collection: repo,
		Players:    players,
		Events:     events,
		Cfg:        cfg,
		Clock:      game.SystemClock{},
		Log:        log.Logger,
	}
	return e, closer, nil
}

func cmdMap(ctx context.Context, env config.Env, args []string) error {
	fs := flag.NewFlagSet("map", flag.ContinueOnError)
	width := fs.Int("width", 0, "map width in tiles (0 uses the configured default)")
	height := fs.Int("height", 0, "map height in tiles (0 uses the configured default)")
	theme := fs.String("theme", "", "terrain theme (empty uses the configured default)")
	seed := fs.Int64("seed", -1, "map seed (negative draws a fresh one)")
	grid := fs.Bool("grid", false, "arrange tiles as rows instead of one flat list")
	out := fs.String("out", "", "write the map JSON to this file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	e, closer, err := newEngine(env)
	if err != nil {
		return err
	}
	defer closer()

	res, err := e.GenerateMap(ctx, game.GenerateMapRequest{
		Width:  *width,
		Height: *height,
		Theme:  *theme,
		Seed:   seedArg(*seed),
	})
	if err != nil {
		return err
	}
	if *grid {
		return emitJSON(*out, gridView(res))
	}
	return emitJSON(*out, res)
}

type mapGridResult struct {
	Width         int             `json:"width"`
	Height        int             `json:"height"`
	Theme         string          `json:"theme"`
	Seed          uint32          `json:"seed"`
	Rows          [][]mapgen.Tile `json:"rows"`
	TerrainCounts map[string]int  `json:"terrain_counts"`
	GeneratedAt   time.Time       `json:"generated_at"`
}

func gridView(res game.MapResult) mapGridResult {
	rows := [][]mapgen.Tile{}
	for r := 0; res.Width > 0 && r < res.Height; r++ {
		rows = append(rows, res.Tiles[r*res.Width:(r+1)*res.Width])
	}
	return mapGridResult{
		Width:         res.Width,
		Height:        res.Height,
		Theme:         res.Theme,
		Seed:          res.Seed,
		Rows:          rows,
		TerrainCounts: res.TerrainCounts,
		GeneratedAt:   res.GeneratedAt,
	}
}

func cmdBooster(ctx context.Context, env config.Env, args []string) error {
	fs := flag.NewFlagSet("booster", flag.ContinueOnError)
	playerID := fs.String("player", "default", "player opening the pack")
	deckID := fs.String("deck", "starter", "deck to draw from")
	size := fs.Int("size", 0, "pack size (0 uses the configured default)")
	kinds := fs.String("kinds", "", "comma-separated card kinds to allow")
	tags := fs.String("tags", "", "comma-separated tags every card must carry")
	seed := fs.Int64("seed", -1, "pack seed (negative draws a fresh one)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	e, closer, err := newEngine(env)
	if err != nil {
		return err
	}
	defer closer()

	var allowed []card.Kind
	for _, k := range splitList(*kinds) {
		allowed = append(allowed, card.Kind(k))
	}

	res, err := e.OpenBooster(ctx, game.OpenBoosterRequest{
		PlayerID:     *playerID,
		DeckID:       *deckID,
		Size:         *size,
		AllowedKinds: allowed,
		RequiredTags: splitList(*tags),
		Seed:         seedArg(*seed),
	})
	if err != nil {
		return err
	}
	return emitJSON("", res)
}

func cmdFuse(ctx context.Context, env config.Env, args []string) error {
	fs := flag.NewFlagSet("fuse", flag.ContinueOnError)
	playerID := fs.String("player", "default", "player doing the fusion")
	deckID := fs.String("deck", "starter", "deck holding the source cards")
	name := fs.String("name", "Unnamed Hero", "name for the fused character")
	cards := fs.String("cards", "", "comma-separated ids of the six source cards")
	if err := fs.Parse(args); err != nil {
		return err
	}

	e, closer, err := newEngine(env)
	if err != nil {
		return err
	}
	defer closer()

	var ids []card.ID
	for _, id := range splitList(*cards) {
		ids = append(ids, card.ID(id))
	}

	res, err := e.FuseCharacter(ctx, game.FuseCharacterRequest{
		PlayerID: *playerID,
		DeckID:   *deckID,
		Name:     *name,
		CardIDs:  ids,
	})
	if err != nil {
		return err
	}
	return emitJSON("", res)
}

func cmdShip(ctx context.Context, env config.Env, args []string) error {
	fs := flag.NewFlagSet("ship", flag.ContinueOnError)
	playerID := fs.String("player", "default", "player doing the fusion")
	name := fs.String("name", "Unnamed Ship", "name for the fused ship")
	partsPath := fs.String("parts", "", "JSON file holding the six source parts")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *partsPath == "" {
		return fmt.Errorf("parts file is required")
	}

	b, err := os.ReadFile(*partsPath)
	if err != nil {
		return err
	}
	var parts []fusion.Part
	if err := json.Unmarshal(b, &parts); err != nil {
		return fmt.Errorf("parse parts file: %w", err)
	}

	e, closer, err := newEngine(env)
	if err != nil {
		return err
	}
	defer closer()

	res, err := e.FuseShip(ctx, game.FuseShipRequest{
		PlayerID: *playerID,
		Name:     *name,
		Parts:    parts,
	})
	if err != nil {
		return err
	}
	return emitJSON("", res)
}

func cmdProfile(ctx context.Context, env config.Env, args []string) error {
	fs := flag.NewFlagSet("profile", flag.ContinueOnError)
	deckID := fs.String("deck", "starter", "deck holding the loadout cards")
	cards := fs.String("cards", "", "comma-separated ids for the six slots; leave an entry blank for an open slot")
	if err := fs.Parse(args); err != nil {
		return err
	}

	e, closer, err := newEngine(env)
	if err != nil {
		return err
	}
	defer closer()

	res, err := e.ForgeProfile(ctx, game.ForgeProfileRequest{
		DeckID:  *deckID,
		CardIDs: splitList(*cards),
	})
	if err != nil {
		return err
	}
	return emitJSON("", res)
}

func cmdDeck(ctx context.Context, env config.Env, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("deck subcommand required: init, list, import or export")
	}

	e, closer, err := newEngine(env)
	if err != nil {
		return err
	}
	defer closer()

	switch args[0] {
	case "init":
		fs := flag.NewFlagSet("deck init", flag.ContinueOnError)
		playerID := fs.String("player", "default", "player owning the deck")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		d, err := e.InitDeck(ctx, *playerID)
		if err != nil {
			return err
		}
		return emitJSON("", d)

	case "list":
		decks, err := e.Collection.ListDecks(ctx)
		if err != nil {
			return err
		}
		for _, d := range decks {
			fmt.Printf("%s\t%s\t%d cards\n", d.ID, d.Name, d.Size())
		}
		return nil

	case "import":
		fs := flag.NewFlagSet("deck import", flag.ContinueOnError)
		file := fs.String("file", "", "deck JSON file to import")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *file == "" {
			return fmt.Errorf("file is required")
		}
		b, err := os.ReadFile(*file)
		if err != nil {
			return err
		}
		var d card.Deck
		if err := json.Unmarshal(b, &d); err != nil {
			return fmt.Errorf("parse deck file: %w", err)
		}
		imported, err := e.ImportDeck(ctx, d)
		if err != nil {
			return err
		}
		return emitJSON("", imported)

	case "export":
		fs := flag.NewFlagSet("deck export", flag.ContinueOnError)
		id := fs.String("id", "starter", "deck id to export")
		out := fs.String("out", "", "write the deck JSON to this file instead of stdout")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		d, err := e.ExportDeck(ctx, *id)
		if err != nil {
			return err
		}
		return emitJSON(*out, d)

	default:
		return fmt.Errorf("unknown deck subcommand: %s", args[0])
	}
}

func cmdStats(ctx context.Context, env config.Env, args []string) error {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	window := fs.Duration("since", 24*time.Hour, "how far back to reduce events")
	if err := fs.Parse(args); err != nil {
		return err
	}

	e, closer, err := newEngine(env)
	if err != nil {
		return err
	}
	defer closer()

	stats, err := e.Stats(ctx, time.Now().Add(-*window))
	if err != nil {
		return err
	}
	return emitJSON("", stats)
}

// splitList splits a comma-separated flag value, trimming entries but
// keeping blank ones so positional lists (loadout slots) stay aligned.
func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func seedArg(v int64) *uint32 {
	if v < 0 {
		return nil
	}
	s := uint32(v)
	return &s
}

func emitJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if path == "" {
		fmt.Println(string(b))
		return nil
	}
	return os.WriteFile(path, append(b, '\n'), 0o644)
}

func printUsage() {
	fmt.Println("usage:")
	fmt.Println("  forge map     --width 16 --height 12 --theme fantasy --seed 42 [--grid]")
	fmt.Println("  forge booster --player p1 --deck starter --seed 7 [--kinds unit,spell] [--tags arcane]")
	fmt.Println("  forge fuse    --player p1 --deck starter --name Hero --cards id1,id2,id3,id4,id5,id6")
	fmt.Println("  forge ship    --player p1 --name Sloop --parts parts.json")
	fmt.Println("  forge profile --deck starter --cards id1,id2,,id4")
	fmt.Println("  forge deck    init|list|import|export [flags]")
	fmt.Println("  forge stats   --since 24h")
}
