package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the complete tracker configuration
type Config struct {
	Account  AccountConfig  `json:"account" yaml:"account"`
	Store    StoreConfig    `json:"store" yaml:"store"`
	Metadata MetadataConfig `json:"metadata" yaml:"metadata"`
	Display  DisplayConfig  `json:"display" yaml:"display"`
}

// AccountConfig identifies the trading account whose session is tracked.
// Snapshot paths are kept per account so switching accounts swaps ledgers.
type AccountConfig struct {
	Name string `json:"name" yaml:"name"`
}

// StoreConfig selects and locates the snapshot store
type StoreConfig struct {
	Type   string `json:"type" yaml:"type"` // "json" or "sqlite"
	Path   string `json:"path,omitempty" yaml:"path,omitempty"`
	DBPath string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// MetadataConfig locates the item-metadata file (name and buy limit per id)
type MetadataConfig struct {
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// DisplayConfig carries presentation-layer preferences that ride along in
// the same config file
type DisplayConfig struct {
	StoreTradeHistory bool    `json:"store_trade_history" yaml:"store_trade_history"`
	ROIGradientMax    float64 `json:"roi_gradient_max" yaml:"roi_gradient_max"`
}

// LoadFromFile loads configuration from a file (JSON or YAML based on extension)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Account.Name == "" {
		return fmt.Errorf("account.name is required")
	}
	if c.Store.Type != "json" && c.Store.Type != "sqlite" {
		return fmt.Errorf("store.type must be 'json' or 'sqlite'")
	}
	if c.Store.Type == "json" && c.Store.Path == "" {
		return fmt.Errorf("store.path required for JSON type")
	}
	if c.Store.Type == "sqlite" && c.Store.DBPath == "" {
		return fmt.Errorf("store.db_path required for SQLite type")
	}
	if c.Display.ROIGradientMax < 0 {
		return fmt.Errorf("display.roi_gradient_max must not be negative")
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			Name: "default",
		},
		Store: StoreConfig{
			Type: "json",
			Path: "./flipper.json",
		},
		Display: DisplayConfig{
			StoreTradeHistory: true,
			ROIGradientMax:    4,
		},
	}
}
