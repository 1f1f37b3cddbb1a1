package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Validate validates configuration values.
// Returns sentinel errors that can be checked with errors.Is().
func (c *Config) Validate() error {
	if c == nil {
		return ErrConfigNil
	}

	if c.ModelName == "" {
		return fmt.Errorf("%w: model_name cannot be empty", ErrInvalidModelName)
	}

	// Temperature range: 0.0 (deterministic) to 2.0 (maximum creativity)
	if c.Temperature < 0.0 || c.Temperature > 2.0 {
		return fmt.Errorf("%w: must be between 0.0 and 2.0, got %.2f", ErrInvalidTemperature, c.Temperature)
	}

	if c.MaxTurns < 1 || c.MaxTurns > 25 {
		return fmt.Errorf("%w: must be between 1 and 25, got %d", ErrInvalidMaxTurns, c.MaxTurns)
	}

	if c.TurnTimeout < time.Second || c.TurnTimeout > 10*time.Minute {
		return fmt.Errorf("%w: must be between 1s and 10m, got %s", ErrInvalidTurnTimeout, c.TurnTimeout)
	}

	if strings.TrimSpace(c.TeamSlug) == "" {
		return fmt.Errorf("%w: team_slug cannot be empty", ErrInvalidTeamSlug)
	}

	if err := validateURL(c.StatsBaseURL); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidStatsURL, err)
	}

	// Language codes are short lowercase subdomain labels ("en", "pt", "pt-br")
	if c.WikiLanguage == "" || len(c.WikiLanguage) > 12 || strings.ContainsAny(c.WikiLanguage, "./ ") {
		return fmt.Errorf("%w: got %q", ErrInvalidWikiLanguage, c.WikiLanguage)
	}

	return nil
}

// ValidateServe performs the additional checks required for serve mode.
func (c *Config) ValidateServe() error {
	if err := c.Validate(); err != nil {
		return err
	}

	if len(c.CORSOrigins) == 0 {
		return fmt.Errorf("%w: at least one allowed origin is required", ErrInvalidCORSOrigin)
	}
	for _, origin := range c.CORSOrigins {
		if strings.TrimSpace(origin) == "" {
			return fmt.Errorf("%w: empty origin entry", ErrInvalidCORSOrigin)
		}
		if err := validateURL(origin); err != nil {
			return fmt.Errorf("%w: %q: %v", ErrInvalidCORSOrigin, origin, err)
		}
	}

	return nil
}

// validateURL checks that s is an absolute http(s) URL.
func validateURL(s string) error {
	u, err := url.Parse(s)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}
