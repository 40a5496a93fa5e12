// Package config loads runtime settings from KIDQUEST_* environment
// variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds every environment-tunable setting. Command-line flags take
// precedence where both exist.
type Config struct {
	DBPath         string        `env:"KIDQUEST_DB"`
	Subject        string        `env:"KIDQUEST_SUBJECT" envDefault:"math"`
	Year           int           `env:"KIDQUEST_YEAR" envDefault:"2"`
	CurriculumFile string        `env:"KIDQUEST_CURRICULUM_FILE"`
	GeodataFile    string        `env:"KIDQUEST_GEODATA_FILE"`
	RedisURL       string        `env:"KIDQUEST_REDIS_URL"`
	LogFile        string        `env:"KIDQUEST_LOG_FILE"`
	LogLevel       string        `env:"KIDQUEST_LOG_LEVEL" envDefault:"info"`
	CorrectDelay   time.Duration `env:"KIDQUEST_CORRECT_DELAY" envDefault:"700ms"`
	IncorrectDelay time.Duration `env:"KIDQUEST_INCORRECT_DELAY" envDefault:"900ms"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses the environment into a Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the engines cannot run with.
func (c Config) Validate() error {
	if c.Subject == "" {
		return fmt.Errorf("config: subject is empty")
	}
	if c.Year <= 0 {
		return fmt.Errorf("config: year must be > 0, got %d", c.Year)
	}
	if c.CorrectDelay < 0 || c.IncorrectDelay < 0 {
		return fmt.Errorf("config: transition delays must not be negative")
	}
	return nil
}
