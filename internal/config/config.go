package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/jwebster45206/pokedex-engine/pkg/pokemon"
)

type Config struct {
	Port              string `env:"PORT" envDefault:"8080"`
	Environment       string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevelName      string `env:"LOG_LEVEL" envDefault:"info"`
	RedisURL          string `env:"REDIS_URL"`
	SeedFile          string `env:"SEED_FILE"`
	EvolutionStatRule string `env:"EVOLUTION_STAT_RULE" envDefault:"legacy"`
	JournalLimit      int    `env:"JOURNAL_LIMIT" envDefault:"200"`

	LogLevel      slog.Level            `env:"-"`
	EvolutionRule pokemon.EvolutionRule `env:"-"`
}

// Load reads an optional .env file, then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv parses the process environment without touching .env.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	rule, err := pokemon.ParseEvolutionRule(cfg.EvolutionStatRule)
	if err != nil {
		return nil, fmt.Errorf("EVOLUTION_STAT_RULE: %w", err)
	}
	if cfg.JournalLimit <= 0 {
		return nil, fmt.Errorf("JOURNAL_LIMIT must be positive, got %d", cfg.JournalLimit)
	}
	cfg.EvolutionRule = rule
	cfg.LogLevel = parseLogLevel(cfg.LogLevelName)
	return &cfg, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
