// Package config loads server configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/robalobadob/vocabdrill/internal/game"
)

// Score write strategies.
const (
	ScoreWritesDelta = "delta"
	ScoreWritesCAS   = "cas"
)

// Config is the full server configuration.
type Config struct {
	Port         string `env:"PORT"          envDefault:"5175"`
	LogLevel     string `env:"LOG_LEVEL"     envDefault:"info"`
	LogFormat    string `env:"LOG_FORMAT"    envDefault:"json"`
	ClientOrigin string `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`

	DBDriver    string `env:"DB_DRIVER"    envDefault:"sqlite3"`
	DBDSN       string `env:"DB_DSN"       envDefault:"./data/vocab.db"`
	ScoreWrites string `env:"SCORE_WRITES" envDefault:"delta"`

	PlayerSecret string `env:"PLAYER_SECRET"  envDefault:"dev_secret_change_me"`
	AdminKeyHash string `env:"ADMIN_KEY_HASH"`
	Production   bool   `env:"PRODUCTION"`

	DailyTypeLimit     int `env:"DAILY_TYPE_LIMIT"     envDefault:"50"`
	DailyMatchLimit    int `env:"DAILY_MATCH_LIMIT"    envDefault:"1"`
	DailyRetentionDays int `env:"DAILY_RETENTION_DAYS" envDefault:"7"`

	OTelEndpoint string `env:"OTEL_ENDPOINT"`

	Game Game `envPrefix:"GAME_"`
}

// Game mirrors game.Params.
type Game struct {
	TierFraction    float64 `env:"TIER_FRACTION"     envDefault:"0.4"`
	PriorityBias    float64 `env:"PRIORITY_BIAS"     envDefault:"0.7"`
	PriorityCap     int     `env:"PRIORITY_CAP"      envDefault:"7"`
	SetSize         int     `env:"SET_SIZE"          envDefault:"10"`
	DailySetSize    int     `env:"DAILY_SET_SIZE"    envDefault:"10"`
	MinStandardPool int     `env:"MIN_STANDARD_POOL" envDefault:"2"`
	Seed            uint64  `env:"SEED"`
}

// Params converts to engine parameters.
func (g Game) Params() game.Params {
	return game.Params{
		TierFraction:    g.TierFraction,
		PriorityBias:    g.PriorityBias,
		PriorityCap:     g.PriorityCap,
		SetSize:         g.SetSize,
		DailySetSize:    g.DailySetSize,
		MinStandardPool: g.MinStandardPool,
	}
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c Config) Validate() error {
	switch c.DBDriver {
	case "sqlite3", "postgres", "memory":
	default:
		return fmt.Errorf("DB_DRIVER %q: want sqlite3, postgres or memory", c.DBDriver)
	}
	switch c.ScoreWrites {
	case ScoreWritesDelta, ScoreWritesCAS:
	default:
		return fmt.Errorf("SCORE_WRITES %q: want delta or cas", c.ScoreWrites)
	}
	if c.DailyTypeLimit < 1 || c.DailyMatchLimit < 1 {
		return fmt.Errorf("daily limits must be positive")
	}
	if c.DailyRetentionDays < 1 {
		return fmt.Errorf("DAILY_RETENTION_DAYS must be positive")
	}
	if err := c.Game.Params().Validate(); err != nil {
		return fmt.Errorf("game: %w", err)
	}
	return nil
}
