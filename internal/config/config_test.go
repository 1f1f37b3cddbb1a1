package config

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

// validConfig returns a Config that passes Validate().
func validConfig() *Config {
	return &Config{
		ModelName:    "googleai/gemini-2.5-flash",
		Temperature:  0.7,
		MaxTurns:     5,
		TurnTimeout:  90 * time.Second,
		TeamSlug:     "furia",
		TeamName:     "FURIA Esports",
		StatsBaseURL: "https://api.pandascore.co",
		WikiLanguage: "pt",
		HTTPAddr:     "127.0.0.1:3400",
		CORSOrigins:  []string{"http://localhost:5173"},
	}
}

func TestValidate_OK(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"nil model", func(c *Config) { c.ModelName = "" }, ErrInvalidModelName},
		{"temperature too high", func(c *Config) { c.Temperature = 2.5 }, ErrInvalidTemperature},
		{"temperature negative", func(c *Config) { c.Temperature = -0.1 }, ErrInvalidTemperature},
		{"zero max turns", func(c *Config) { c.MaxTurns = 0 }, ErrInvalidMaxTurns},
		{"tiny turn timeout", func(c *Config) { c.TurnTimeout = time.Millisecond }, ErrInvalidTurnTimeout},
		{"blank team slug", func(c *Config) { c.TeamSlug = "   " }, ErrInvalidTeamSlug},
		{"bad stats url", func(c *Config) { c.StatsBaseURL = "ftp://example.com" }, ErrInvalidStatsURL},
		{"empty wiki language", func(c *Config) { c.WikiLanguage = "" }, ErrInvalidWikiLanguage},
		{"wiki language with dot", func(c *Config) { c.WikiLanguage = "pt.wikipedia.org" }, ErrInvalidWikiLanguage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestValidateServe_CORSOrigins(t *testing.T) {
	cfg := validConfig()
	cfg.CORSOrigins = nil
	if err := cfg.ValidateServe(); !errors.Is(err, ErrInvalidCORSOrigin) {
		t.Errorf("ValidateServe(no origins) error = %v, want %v", err, ErrInvalidCORSOrigin)
	}

	cfg = validConfig()
	cfg.CORSOrigins = []string{"http://localhost:5173", "  "}
	if err := cfg.ValidateServe(); !errors.Is(err, ErrInvalidCORSOrigin) {
		t.Errorf("ValidateServe(blank origin) error = %v, want %v", err, ErrInvalidCORSOrigin)
	}

	cfg = validConfig()
	cfg.CORSOrigins = []string{"not a url"}
	if err := cfg.ValidateServe(); !errors.Is(err, ErrInvalidCORSOrigin) {
		t.Errorf("ValidateServe(malformed origin) error = %v, want %v", err, ErrInvalidCORSOrigin)
	}
}

func TestMarshalJSON_MasksToken(t *testing.T) {
	cfg := validConfig()
	cfg.StatsToken = "super-secret-token"

	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if strings.Contains(string(data), "super-secret-token") {
		t.Error("Marshal() leaked stats token")
	}
	if !strings.Contains(string(data), `"stats_token":"***"`) {
		t.Errorf("Marshal() = %s, want masked stats_token", data)
	}
}
