// Package config loads settled.yaml plus .env/environment overrides.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the top-level settled.yaml configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Payment  PaymentConfig  `yaml:"payment"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// DatabaseConfig locates the ledger database.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// PaymentConfig seeds the payment_account parameter on init.
type PaymentConfig struct {
	Account string `yaml:"account,omitempty"` // "name_owner" of the funding account
}

// LoggingConfig controls log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads a settled.yaml file and applies environment overrides. A .env
// file in the working directory is honored when present.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyEnv()
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new ledger.
func Default(dbPath string) *Config {
	return &Config{
		Database: DatabaseConfig{Path: dbPath},
		Logging:  LoggingConfig{Level: "info"},
	}
}

func (c *Config) applyEnv() {
	_ = godotenv.Load()
	if v := os.Getenv("SETTLED_DB"); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv("SETTLED_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("SETTLED_PAYMENT_ACCOUNT"); v != "" {
		c.Payment.Account = v
	}
}
