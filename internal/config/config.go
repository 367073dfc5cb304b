// Package config handles application configuration and environment loading.
package config

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Config holds the compiler's runtime configuration.
type Config struct {
	MetaDBPath       string // path to the SQLite metastore file
	OutDir           string // directory generated artifacts are written to
	StaticTablesPath string // optional YAML file overriding the static tables
	LogLevel         string // log level: debug, info, warn, error (default "info")
	LogFormat        string // "text" (default) or "json"

	// Static holds the static configuration tables (in-scope report
	// templates, product slice map, sentinel codes).
	Static StaticTables

	// Warnings collects non-fatal warnings generated during config loading.
	// These are logged by the caller after the logger is initialised.
	Warnings []string
}

// SlogLevel maps the LogLevel string to an slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger builds the run logger from the configured level and format.
func (c *Config) NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.SlogLevel()}
	if strings.EqualFold(c.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// LoadFromEnv loads configuration from environment variables, then merges
// the static tables file when one is configured.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		MetaDBPath:       os.Getenv("META_DB_PATH"),
		OutDir:           os.Getenv("OUT_DIR"),
		StaticTablesPath: os.Getenv("STATIC_TABLES_PATH"),
		LogLevel:         os.Getenv("LOG_LEVEL"),
		LogFormat:        os.Getenv("LOG_FORMAT"),
	}

	// Defaults
	if cfg.MetaDBPath == "" {
		cfg.MetaDBPath = "regmap_meta.sqlite"
	}
	if cfg.OutDir == "" {
		cfg.OutDir = "generated"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	cfg.Static = DefaultStaticTables()
	if cfg.StaticTablesPath != "" {
		loaded, err := LoadStaticTables(cfg.StaticTablesPath)
		if err != nil {
			return nil, fmt.Errorf("load static tables: %w", err)
		}
		cfg.Static = cfg.Static.Merge(loaded)
	} else {
		cfg.Warnings = append(cfg.Warnings, "STATIC_TABLES_PATH not set, using built-in static tables")
	}

	if err := cfg.Static.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDotEnv reads a .env file and sets any variables not already in the
// environment. Lines must be in KEY=VALUE format. Comments (#) and blank
// lines are skipped.
func LoadDotEnv(path string) error {
	f, err := os.Open(path) //nolint:gosec // path is caller-controlled
	if err != nil {
		if os.IsNotExist(err) {
			return nil // .env not found is not an error
		}
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = stripQuotes(strings.TrimSpace(value))
		// Only set if not already in the environment (env vars take precedence)
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("setenv %s: %w", key, err)
			}
		}
	}
	return scanner.Err()
}

// stripQuotes removes surrounding double or single quotes from a value.
// Only strips if both the first and last characters are matching quotes.
func stripQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
