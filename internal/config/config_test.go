package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cours-de-latin/draconic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, draconic.DefaultAffixOrder, cfg.Lexicon.AffixOrder)

	opts, err := cfg.LexiconOptions()
	require.NoError(t, err)
	assert.Equal(t, 7, opts.Order.RootRank())
	assert.Equal(t, 392, opts.Inventory.Len())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draconic.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: "127.0.0.1:9000"
  allowed_origins: ["http://localhost:5173"]
lexicon:
  affix_order: ["Flag", "Affix", "Root", "Suffix Affix"]
  vowels: ["a", "o"]
`), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "draconic.db", cfg.Store.Path, "unset keys keep defaults")
	assert.Equal(t, draconic.DefaultConsonants, cfg.Lexicon.Consonants)

	opts, err := cfg.LexiconOptions()
	require.NoError(t, err)
	assert.Equal(t, 2, opts.Order.RootRank())
	assert.True(t, opts.Inventory.Contains("tho"))
	assert.False(t, opts.Inventory.Contains("thi"))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no addr", func(c *Config) { c.Server.Addr = "" }},
		{"no store", func(c *Config) { c.Store.Path = "" }},
		{"long boundary", func(c *Config) { c.Lexicon.Boundary = "--" }},
		{"no root", func(c *Config) { c.Lexicon.AffixOrder = []string{"Time Affix"} }},
		{"no vowels", func(c *Config) { c.Lexicon.Vowels = nil }},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }},
		{"negative rate", func(c *Config) { c.Server.WriteRate = -1 }},
		{"unmarked category", func(c *Config) { c.Lexicon.AffixOrder = []string{"Root", "Suffix"} }},
		{"slash boundary", func(c *Config) { c.Lexicon.Boundary = "/" }},
		{"space boundary", func(c *Config) { c.Lexicon.Boundary = " " }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "draconic.yaml")
	cfg := DefaultConfig()
	cfg.Log.Level = "debug"
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
