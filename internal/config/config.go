// Package config loads and validates application configuration from an
// optional YAML file and environment variables.
package config

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"time"
	_ "time/tzdata" // zone database for hosts and containers without one

	"gopkg.in/yaml.v3"

	"github.com/pkordes/departure-board/internal/format"
	"github.com/pkordes/departure-board/internal/upstream"
)

// Config holds all configuration values for the board server.
// Values are populated by Load: defaults first, then the YAML file named by
// BOARD_CONFIG (if any), then environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8000".
	Port string `yaml:"port"`

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string `yaml:"cors_origins"`

	// UpstreamURL is the departures CSV feed served through POST /poll.
	UpstreamURL string `yaml:"upstream_url"`

	// PollURL is the endpoint the board polls. Defaults to this server's
	// own /poll on the loopback interface.
	PollURL string `yaml:"poll_url"`

	// Timezone is the IANA zone the board displays times in.
	// "Local" uses the host zone. Defaults to "America/New_York".
	Timezone string `yaml:"timezone"`

	// DateStyle is "legacy" (weekday index in the DD field) or "calendar".
	DateStyle string `yaml:"date_style"`

	// FetchTimeout bounds each poll request. Must be positive and shorter
	// than the one-minute poll interval. Defaults to 30s.
	FetchTimeout time.Duration `yaml:"fetch_timeout"`
}

// Location resolves Timezone. It is valid to call only on a Config returned
// by Load, which has already checked the zone exists.
func (c Config) Location() *time.Location {
	loc, err := loadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// Load reads configuration and returns a Config.
// Returns an error naming every variable whose value is invalid.
func Load() (Config, error) {
	cfg := Config{
		Port:         "8000",
		LogLevel:     "info",
		CORSOrigins:  []string{"http://localhost:8000"},
		UpstreamURL:  upstream.DefaultURL,
		Timezone:     "America/New_York",
		DateStyle:    string(format.DateStyleLegacy),
		FetchTimeout: 30 * time.Second,
	}

	if path := os.Getenv("BOARD_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config.Load: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config.Load: parse %s: %w", path, err)
		}
	}

	var invalid []string

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = splitCSV(v)
	}
	cfg.UpstreamURL = getEnv("UPSTREAM_URL", cfg.UpstreamURL)
	cfg.PollURL = getEnv("POLL_URL", cfg.PollURL)
	cfg.Timezone = getEnv("BOARD_TIMEZONE", cfg.Timezone)
	cfg.DateStyle = getEnv("BOARD_DATE_STYLE", cfg.DateStyle)
	if v := os.Getenv("FETCH_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			invalid = append(invalid, "FETCH_TIMEOUT")
		} else {
			cfg.FetchTimeout = d
		}
	}

	if cfg.PollURL == "" {
		cfg.PollURL = "http://127.0.0.1:" + cfg.Port + "/poll"
	}

	if _, err := loadLocation(cfg.Timezone); err != nil {
		invalid = append(invalid, "BOARD_TIMEZONE")
	}
	if style, ok := format.ParseDateStyle(cfg.DateStyle); ok {
		cfg.DateStyle = string(style)
	} else {
		invalid = append(invalid, "BOARD_DATE_STYLE")
	}
	if cfg.FetchTimeout <= 0 || cfg.FetchTimeout >= time.Minute {
		if !slices.Contains(invalid, "FETCH_TIMEOUT") {
			invalid = append(invalid, "FETCH_TIMEOUT")
		}
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid configuration values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

func loadLocation(name string) (*time.Location, error) {
	if strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
