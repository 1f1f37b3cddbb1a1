// Package config provides application configuration with multi-source priority.
//
// Configuration sources (highest to lowest priority):
//  1. Environment variables (FURIABOT_* prefix, runtime override)
//  2. Config file (~/.furiabot/config.yaml or ./config.yaml)
//  3. Default values
//
// Error Handling:
//   - Sentinel errors allow Go-idiomatic checking with errors.Is()
//   - Wrapped with context using fmt.Errorf("%w: details", ErrXxx)
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var (
	// ErrConfigNil indicates the configuration is nil.
	ErrConfigNil = errors.New("configuration is nil")

	// ErrMissingAPIKey indicates a required API key is missing.
	ErrMissingAPIKey = errors.New("missing API key")

	// ErrInvalidModelName indicates the model name is invalid.
	ErrInvalidModelName = errors.New("invalid model name")

	// ErrInvalidTemperature indicates the temperature value is out of range.
	ErrInvalidTemperature = errors.New("invalid temperature")

	// ErrInvalidMaxTurns indicates the max turns value is out of range.
	ErrInvalidMaxTurns = errors.New("invalid max turns")

	// ErrInvalidTurnTimeout indicates the turn timeout is out of range.
	ErrInvalidTurnTimeout = errors.New("invalid turn timeout")

	// ErrInvalidTeamSlug indicates the team slug is missing or malformed.
	ErrInvalidTeamSlug = errors.New("invalid team slug")

	// ErrInvalidStatsURL indicates the statistics API base URL is invalid.
	ErrInvalidStatsURL = errors.New("invalid stats base URL")

	// ErrInvalidWikiLanguage indicates the encyclopedia language code is invalid.
	ErrInvalidWikiLanguage = errors.New("invalid wiki language")

	// ErrInvalidCORSOrigin indicates a CORS origin entry is empty or malformed.
	ErrInvalidCORSOrigin = errors.New("invalid CORS origin")
)

// TracingConfig holds the OTLP trace export configuration.
// Spans produced by Genkit are shipped to a local agent/collector.
type TracingConfig struct {
	Enabled     bool   `mapstructure:"enabled" json:"enabled"`
	AgentHost   string `mapstructure:"agent_host" json:"agent_host"`
	Environment string `mapstructure:"environment" json:"environment"`
	ServiceName string `mapstructure:"service_name" json:"service_name"`
}

// Config stores application configuration.
// SECURITY: Sensitive fields are explicitly masked in MarshalJSON().
// When adding new sensitive fields (API keys, tokens), update MarshalJSON.
type Config struct {
	// AI provider and model configuration
	ModelName   string        `mapstructure:"model_name" json:"model_name"` // Provider-qualified (e.g. "googleai/gemini-2.5-flash")
	Temperature float32       `mapstructure:"temperature" json:"temperature"`
	MaxTurns    int           `mapstructure:"max_turns" json:"max_turns"`       // Maximum agentic loop turns per chat turn
	TurnTimeout time.Duration `mapstructure:"turn_timeout" json:"turn_timeout"` // Upper bound on one full chat turn

	// Team identity
	TeamSlug string `mapstructure:"team_slug" json:"team_slug"` // Identifier used by the statistics API
	TeamName string `mapstructure:"team_name" json:"team_name"` // Display name used in the system prompt

	// Statistics source (roster, matches, results)
	StatsBaseURL string `mapstructure:"stats_base_url" json:"stats_base_url"`
	StatsToken   string `mapstructure:"stats_token" json:"stats_token"` // SENSITIVE: masked in MarshalJSON

	// Encyclopedia source
	WikiLanguage string `mapstructure:"wiki_language" json:"wiki_language"`

	// HTTP server (serve mode only)
	HTTPAddr    string   `mapstructure:"http_addr" json:"http_addr"`
	CORSOrigins []string `mapstructure:"cors_origins" json:"cors_origins"`
	RateBurst   int      `mapstructure:"rate_burst" json:"rate_burst"`
	TrustProxy  bool     `mapstructure:"trust_proxy" json:"trust_proxy"` // Trust X-Real-IP/X-Forwarded-For (set true behind reverse proxy)

	// Logging
	LogLevel string `mapstructure:"log_level" json:"log_level"`
	LogJSON  bool   `mapstructure:"log_json" json:"log_json"`

	// Observability
	Tracing TracingConfig `mapstructure:"tracing" json:"tracing"`
}

// MarshalJSON masks sensitive fields so the config can be logged safely.
func (c Config) MarshalJSON() ([]byte, error) {
	type alias Config // avoid recursion
	masked := alias(c)
	if masked.StatsToken != "" {
		masked.StatsToken = "***"
	}
	return json.Marshal(masked)
}

// Load loads configuration.
// Priority: Environment variables > Configuration file > Default values
func Load() (*Config, error) {
	v := viper.New()

	// Configuration directory: ~/.furiabot/ (optional)
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".furiabot"))
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".") // Also support current directory

	setDefaults(v)

	// Environment overrides: FURIABOT_TEAM_SLUG, FURIABOT_TRACING_AGENT_HOST, ...
	v.SetEnvPrefix("FURIABOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read configuration file (if exists)
	if err := v.ReadInConfig(); err != nil {
		// Config file not found is not an error; defaults apply
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		slog.Debug("configuration file not found, using defaults")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	// Fail fast on invalid values
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets all default configuration values.
func setDefaults(v *viper.Viper) {
	// AI defaults
	v.SetDefault("model_name", "googleai/gemini-2.5-flash")
	v.SetDefault("temperature", 0.7)
	v.SetDefault("max_turns", 5)
	v.SetDefault("turn_timeout", "90s")

	// Team defaults
	v.SetDefault("team_slug", "furia")
	v.SetDefault("team_name", "FURIA Esports")

	// External sources
	v.SetDefault("stats_base_url", "https://api.pandascore.co")
	v.SetDefault("wiki_language", "pt")

	// HTTP defaults
	v.SetDefault("http_addr", "127.0.0.1:3400")
	v.SetDefault("cors_origins", []string{"http://localhost:5173"})
	v.SetDefault("rate_burst", 60)
	v.SetDefault("trust_proxy", false)

	// Logging defaults
	v.SetDefault("log_level", "info")
	v.SetDefault("log_json", false)

	// Tracing defaults
	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.agent_host", "localhost:4318")
	v.SetDefault("tracing.environment", "dev")
	v.SetDefault("tracing.service_name", "furiabot")
}
