// internal/config/config.go
//
// Configuration for the gridle hosts.
//
// Precedence, lowest to highest:
//  1. built-in defaults
//  2. YAML config file (GRIDLE_CONFIG, or ./gridle.yaml if present)
//  3. environment variables
//
// A missing config file is fine; a file that exists but fails to parse is
// an error. `.env` loading (godotenv) happens in main before Load runs, so
// development overrides land through the environment path.

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Config aggregates all host configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Words   WordsConfig   `yaml:"words"`
	Session SessionConfig `yaml:"session"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig configures the HTTP host.
type ServerConfig struct {
	Port   string `yaml:"port"`
	Origin string `yaml:"origin"` // single allowed CORS origin
}

// WordsConfig configures the dictionary source.
type WordsConfig struct {
	File string `yaml:"file"` // empty → embedded default list
}

// SessionConfig configures session storage and tokens.
type SessionConfig struct {
	Secret string `yaml:"secret"` // HMAC secret for session tokens
	DB     string `yaml:"db"`     // SQLite path; empty → in-memory store
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

const defaultFile = "gridle.yaml"

// Load builds the configuration. path overrides file discovery when
// non-empty (used by the --config flag).
func Load(path string) (*Config, error) {
	cfg := &Config{
		Server:  ServerConfig{Port: "5175", Origin: "http://localhost:5173"},
		Session: SessionConfig{Secret: "dev_secret_change_me"},
		Log:     LogConfig{Level: "info"},
	}

	if path == "" {
		path = os.Getenv("GRIDLE_CONFIG")
	}
	if path == "" {
		if _, err := os.Stat(defaultFile); err == nil {
			path = defaultFile
		}
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	// Environment overrides.
	override(&cfg.Server.Port, "PORT")
	override(&cfg.Server.Origin, "CLIENT_ORIGIN")
	override(&cfg.Words.File, "WORDS_FILE")
	override(&cfg.Session.Secret, "SESSION_SECRET")
	override(&cfg.Session.DB, "SESSION_DB")
	override(&cfg.Log.Level, "LOG_LEVEL")

	return cfg, nil
}

// override replaces *dst with the env var value when set and non-empty.
func override(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
