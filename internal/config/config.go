// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Port           string
	FrontendURL    string
	DBPath         string
	SessionTimeout time.Duration
	SweepInterval  time.Duration
	Twilio         TwilioConfig
}

// TwilioConfig controls inbound webhook verification.
type TwilioConfig struct {
	AuthToken         string
	ValidateSignature bool
	// PublicURL is the externally visible webhook URL, needed to recompute
	// the request signature behind a proxy. Empty means reconstruct from
	// the request.
	PublicURL string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:           getEnv("PORT", "4000"),
		FrontendURL:    getEnv("FRONTEND_URL", ""),
		DBPath:         getEnv("DB_PATH", "./data/reviews.db"),
		SessionTimeout: getEnvDuration("SESSION_TIMEOUT", 30*time.Minute),
		SweepInterval:  getEnvDuration("SESSION_SWEEP_INTERVAL", 5*time.Minute),
		Twilio: TwilioConfig{
			AuthToken:         getEnv("TWILIO_AUTH_TOKEN", ""),
			ValidateSignature: getEnvBool("TWILIO_VALIDATE_SIGNATURE", false),
			PublicURL:         getEnv("TWILIO_WEBHOOK_URL", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	if c.SessionTimeout <= 0 {
		return fmt.Errorf("SESSION_TIMEOUT must be positive")
	}
	if c.SweepInterval <= 0 {
		return fmt.Errorf("SESSION_SWEEP_INTERVAL must be positive")
	}
	if c.Twilio.ValidateSignature && c.Twilio.AuthToken == "" {
		return fmt.Errorf("TWILIO_AUTH_TOKEN is required when TWILIO_VALIDATE_SIGNATURE is enabled")
	}
	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.FrontendURL == "" ||
		strings.Contains(c.FrontendURL, "localhost") ||
		strings.Contains(c.FrontendURL, "127.0.0.1")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	value = strings.TrimSpace(value)
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	// Bare numbers are taken as minutes.
	if n, err := strconv.Atoi(value); err == nil {
		return time.Duration(n) * time.Minute
	}
	return fallback
}
