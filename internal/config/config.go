package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds everything read from the environment at startup.
type Config struct {
	// HTTPAddr is the listen address for the HTTP and websocket server.
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8000"`
	// ScoreDBPath is the SQLite file backing the top-score leaderboard.
	ScoreDBPath string `env:"SCORE_DB_PATH" envDefault:"top-scores.db"`
	// AllowedOrigin restricts websocket upgrades; "*" allows all.
	AllowedOrigin string `env:"WS_ALLOWED_ORIGIN" envDefault:"*"`
	// DiceCount is how many dice the server rolls for solo play.
	DiceCount int `env:"DICE_COUNT" envDefault:"5"`
}

// Load parses the configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
