// Package config reads process configuration from the environment.
//
// main loads an optional .env file with godotenv before calling Load, so
// values can come from either place. Gameplay timings and the vocabulary
// are fixed in code and deliberately absent here.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Config holds all application configuration.
type Config struct {
	// HTTP host
	Port         string
	ClientOrigin string // CORS origin allowed with credentials
	PublicURL    string // web client base URL encoded in session QR codes

	// Sessions
	SessionIdleTTL time.Duration

	// Gameplay
	Seed  uint64 // 0 = seed from crypto/rand
	Sound bool   // terminal client audio cues

	// Logging
	LogLevel zerolog.Level
	LogFile  string // terminal client log destination; empty = discard

	Environment string // "development" or "production"
}

// LoadDotEnv loads .env files if present; a missing file is not an error.
func LoadDotEnv(files ...string) {
	_ = godotenv.Load(files...)
}

// Load builds a Config from environment variables, applying defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Port:           getEnv("PORT", "5175"),
		ClientOrigin:   getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		SessionIdleTTL: 30 * time.Minute,
		Sound:          true,
		LogLevel:       zerolog.InfoLevel,
		LogFile:        os.Getenv("LOG_FILE"),
		Environment:    getEnv("ENVIRONMENT", "development"),
	}

	cfg.PublicURL = strings.TrimRight(getEnv("PUBLIC_URL", cfg.ClientOrigin), "/")

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		lvl, err := zerolog.ParseLevel(v)
		if err != nil {
			return nil, fmt.Errorf("LOG_LEVEL: %w", err)
		}
		cfg.LogLevel = lvl
	}
	if v := os.Getenv("SESSION_IDLE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("SESSION_IDLE_TTL: %w", err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("SESSION_IDLE_TTL must be positive, got %s", d)
		}
		cfg.SessionIdleTTL = d
	}
	if v := os.Getenv("SCRAMBLE_SEED"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("SCRAMBLE_SEED: %w", err)
		}
		cfg.Seed = n
	}
	if v := os.Getenv("SCRAMBLE_SOUND"); v != "" {
		switch strings.ToLower(v) {
		case "on", "true", "1", "yes":
			cfg.Sound = true
		case "off", "false", "0", "no":
			cfg.Sound = false
		default:
			return nil, fmt.Errorf("SCRAMBLE_SOUND: unknown value %q", v)
		}
	}
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return nil, fmt.Errorf("PORT: %w", err)
	}

	return cfg, nil
}

// Production reports whether the process runs in production mode.
func (c *Config) Production() bool { return c.Environment == "production" }

// Addr is the listen address for the HTTP host.
func (c *Config) Addr() string { return ":" + c.Port }

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
