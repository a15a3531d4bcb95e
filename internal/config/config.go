// Package config builds the process-wide configuration object once at
// startup. Credentials and endpoints come from the environment (optionally
// seeded from a .env file by main) with an optional JSON file for
// non-secret defaults; nothing else in the program reads the environment.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DefaultWaitTimeout bounds element waits when no override is configured.
const DefaultWaitTimeout = 30 * time.Second

// Pension holds settings for the defined-contribution pension portal.
type Pension struct {
	StartURL  string `json:"start_url,omitempty"`
	AccountID string `json:"-"`
	Password  string `json:"-"`
}

// Nomura holds settings for the brokerage portal.
type Nomura struct {
	LoginURL string `json:"login_url,omitempty"`
	LoginID  string `json:"-"`
	Password string `json:"-"`
}

// Zaim holds settings for the account-aggregator site.
type Zaim struct {
	MoneyURL string `json:"money_url,omitempty"`
	Email    string `json:"-"`
	Password string `json:"-"`
}

// Config is the process configuration, constructed once and passed explicitly
// into adapters and the persistence gateway.
type Config struct {
	DatabaseURL string `json:"database_url,omitempty"`

	Pension Pension `json:"pension,omitempty"`
	Nomura  Nomura  `json:"nomura,omitempty"`
	Zaim    Zaim    `json:"zaim,omitempty"`

	// Headless controls whether the browser renders offscreen. On by
	// default; turned off for local selector debugging.
	Headless bool `json:"headless,omitempty"`
	// WaitTimeout bounds every element/network wait.
	WaitTimeout time.Duration `json:"-"`
	// WaitTimeoutSeconds is the JSON-file form of WaitTimeout.
	WaitTimeoutSeconds int `json:"wait_timeout_seconds,omitempty"`
}

// Load builds the configuration from an optional JSON file plus the
// environment. Environment values win over file values; secrets only ever
// come from the environment.
func Load(path string) (*Config, error) {
	cfg := &Config{Headless: true}

	if path != "" {
		if !filepath.IsAbs(path) {
			cwd, err := os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("failed to get current directory: %w", err)
			}
			path = filepath.Join(cwd, path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	cfg.applyEnv()

	if cfg.WaitTimeoutSeconds > 0 {
		cfg.WaitTimeout = time.Duration(cfg.WaitTimeoutSeconds) * time.Second
	}
	if cfg.WaitTimeout <= 0 {
		cfg.WaitTimeout = DefaultWaitTimeout
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	setIfPresent(&c.DatabaseURL, "DATABASE_URL")

	setIfPresent(&c.Pension.StartURL, "PENSION_START_URL")
	setIfPresent(&c.Pension.AccountID, "PENSION_ACCOUNT_ID")
	setIfPresent(&c.Pension.Password, "PENSION_PASSWORD")

	setIfPresent(&c.Nomura.LoginURL, "NOMURA_LOGIN_URL")
	setIfPresent(&c.Nomura.LoginID, "NOMURA_LOGIN_ID")
	setIfPresent(&c.Nomura.Password, "NOMURA_PASSWORD")

	setIfPresent(&c.Zaim.MoneyURL, "ZAIM_MONEY_URL")
	setIfPresent(&c.Zaim.Email, "ZAIM_EMAIL")
	setIfPresent(&c.Zaim.Password, "ZAIM_PASSWORD")
}

func setIfPresent(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// RequireDatabase validates that persistence is configured.
func (c *Config) RequireDatabase() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("config error: DATABASE_URL is not set")
	}
	return nil
}

// RequireSource validates the settings needed by the named source adapter.
func (c *Config) RequireSource(name string) error {
	missing := func(fields ...string) error {
		return fmt.Errorf("config error: source %s requires %v", name, fields)
	}
	switch name {
	case "pension":
		if c.Pension.StartURL == "" || c.Pension.AccountID == "" || c.Pension.Password == "" {
			return missing("PENSION_START_URL", "PENSION_ACCOUNT_ID", "PENSION_PASSWORD")
		}
	case "nomura":
		if c.Nomura.LoginID == "" || c.Nomura.Password == "" {
			return missing("NOMURA_LOGIN_ID", "NOMURA_PASSWORD")
		}
	case "zaim":
		if c.Zaim.Email == "" || c.Zaim.Password == "" {
			return missing("ZAIM_EMAIL", "ZAIM_PASSWORD")
		}
	default:
		return fmt.Errorf("config error: unknown source %q", name)
	}
	return nil
}
