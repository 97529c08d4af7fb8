// Package config provides configuration loading for the dictionary server.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cours-de-latin/draconic"
	"gopkg.in/yaml.v3"
)

// Config represents the complete configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Store   StoreConfig   `yaml:"store"`
	Lexicon LexiconConfig `yaml:"lexicon"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `yaml:"addr"`
	// AllowedOrigins lists CORS origins; empty allows all.
	AllowedOrigins []string `yaml:"allowed_origins,omitempty"`
	// WriteRate limits mutating requests per second; 0 disables the limit.
	WriteRate float64 `yaml:"write_rate,omitempty"`
	// WriteBurst is the number of writes allowed at once when WriteRate is set.
	WriteBurst int `yaml:"write_burst,omitempty"`
}

// StoreConfig configures persistence.
type StoreConfig struct {
	// Path is the SQLite database file.
	Path string `yaml:"path"`
}

// LexiconConfig fixes the language at deployment time.
type LexiconConfig struct {
	// Boundary separates syllables in a word (default "-").
	Boundary string `yaml:"boundary"`
	// AffixOrder is the ranked category list; it must contain Root.
	AffixOrder []string `yaml:"affix_order"`
	Consonants []string `yaml:"consonants"`
	Vowels     []string `yaml:"vowels"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8080",
		},
		Store: StoreConfig{
			Path: "draconic.db",
		},
		Lexicon: LexiconConfig{
			Boundary:   draconic.DefaultBoundary,
			AffixOrder: append([]string(nil), draconic.DefaultAffixOrder...),
			Consonants: append([]string(nil), draconic.DefaultConsonants...),
			Vowels:     append([]string(nil), draconic.DefaultVowels...),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Server.WriteRate < 0 || c.Server.WriteBurst < 0 {
		return fmt.Errorf("server.write_rate and server.write_burst must not be negative")
	}
	if c.Store.Path == "" {
		return fmt.Errorf("store.path is required")
	}
	if err := draconic.ValidateBoundary(c.Lexicon.Boundary); err != nil {
		return fmt.Errorf("lexicon.boundary: %w", err)
	}
	if _, err := draconic.NewAffixOrder(c.Lexicon.AffixOrder); err != nil {
		return fmt.Errorf("lexicon.affix_order: %w", err)
	}
	if len(c.Lexicon.Vowels) == 0 {
		return fmt.Errorf("lexicon.vowels is required")
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// LexiconOptions builds the draconic.Options described by the lexicon section.
func (c *Config) LexiconOptions() (draconic.Options, error) {
	order, err := draconic.NewAffixOrder(c.Lexicon.AffixOrder)
	if err != nil {
		return draconic.Options{}, fmt.Errorf("lexicon.affix_order: %w", err)
	}
	inv, err := draconic.NewInventory(c.Lexicon.Consonants, c.Lexicon.Vowels)
	if err != nil {
		return draconic.Options{}, fmt.Errorf("lexicon inventory: %w", err)
	}
	return draconic.Options{
		Order:     order,
		Boundary:  c.Lexicon.Boundary,
		Inventory: inv,
	}, nil
}

// LoadFromFile loads configuration from a YAML file. Keys absent from the
// file keep their default values.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file.
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
