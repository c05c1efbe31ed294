// Package config loads server and world configuration from the
// environment. The world constants (origin, cell size, radius, spawn
// probability, coin limit) are never hardcoded in the core logic.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds every externally supplied parameter for the server.
type Config struct {
	// Server
	ListenAddr       string        `env:"GEO_LISTEN_ADDR" envDefault:":8080"`
	DBPath           string        `env:"GEO_DB_PATH" envDefault:"data/geomonedas.db"`
	SaveSlot         string        `env:"GEO_SAVE_SLOT" envDefault:"default"`
	AutosaveInterval time.Duration `env:"GEO_AUTOSAVE_INTERVAL" envDefault:"30s"`

	// World grid
	OriginLat       float64 `env:"GEO_ORIGIN_LAT" envDefault:"0"`
	OriginLng       float64 `env:"GEO_ORIGIN_LNG" envDefault:"0"`
	CellSizeDegrees float64 `env:"GEO_CELL_SIZE_DEGREES" envDefault:"0.0001"`

	// Cache generation
	VisibilityRadius int     `env:"GEO_VISIBILITY_RADIUS" envDefault:"8"`
	SpawnProbability float64 `env:"GEO_SPAWN_PROBABILITY" envDefault:"0.1"`
	MaxCoinsPerCache int     `env:"GEO_MAX_COINS_PER_CACHE" envDefault:"10"`

	// Player start location (Oakes Classroom by default)
	StartLat float64 `env:"GEO_START_LAT" envDefault:"36.98949379578401"`
	StartLng float64 `env:"GEO_START_LNG" envDefault:"-122.06277128548504"`
}

// Load parses the configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}
