package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Store backends selectable via FORGE_STORE.
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

// Env is process-level configuration read from FORGE_* environment
// variables. It controls where data lives and how the process behaves;
// game content lives in Config instead.
type Env struct {
	DataDir    string `env:"FORGE_DATA_DIR" envDefault:"data"`
	ConfigPath string `env:"FORGE_CONFIG"`
	LogLevel   string `env:"FORGE_LOG_LEVEL" envDefault:"info"`
	Store      string `env:"FORGE_STORE" envDefault:"file"`
	SQLitePath string `env:"FORGE_SQLITE_PATH" envDefault:"data/forge.db"`
}

// ParseEnv reads the process environment into an Env.
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	switch e.Store {
	case StoreFile, StoreSQLite, StoreMemory:
	default:
		return Env{}, fmt.Errorf("unknown FORGE_STORE %q", e.Store)
	}
	return e, nil
}
