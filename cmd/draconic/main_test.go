package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/cours-de-latin/draconic"
	"github.com/cours-de-latin/draconic/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintChecks(t *testing.T) {
	lex := draconic.New(draconic.Options{})
	require.NoError(t, lex.CreateTag("Time Affix"))
	require.NoError(t, lex.AssignTag("Time Affix", "sha"))

	var buf bytes.Buffer
	err := printChecks(&buf, lex, []string{"kai-sha", "kai--sha"})
	require.Error(t, err)
	assert.ErrorIs(t, err, draconic.ErrInvalidWord)

	out := buf.String()
	assert.Contains(t, out, "/kai-sha/\tvariant\troot: /kai/\n")
	assert.Contains(t, out, "/kai--sha/\terror: ")
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draconic.yaml")
	cfg := config.DefaultConfig()
	cfg.Server.Addr = ":9000"
	cfg.Lexicon.Boundary = "."
	require.NoError(t, cfg.SaveToFile(path))

	got, err := loadConfig(&flags{configPath: path, dbPath: "other.db", logLevel: "debug"})
	require.NoError(t, err)
	assert.Equal(t, ":9000", got.Server.Addr)
	assert.Equal(t, ".", got.Lexicon.Boundary)
	assert.Equal(t, "other.db", got.Store.Path)
	assert.Equal(t, "debug", got.Log.Level)

	got, err = loadConfig(&flags{addr: ":7000"})
	require.NoError(t, err)
	assert.Equal(t, ":7000", got.Server.Addr)
	assert.Equal(t, config.DefaultConfig().Store.Path, got.Store.Path)

	_, err = loadConfig(&flags{configPath: filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)
}

func TestLoadConfigEnvironment(t *testing.T) {
	t.Setenv("DRACONIC_DB", "env.db")
	t.Setenv("DRACONIC_ADDR", ":7100")

	got, err := loadConfig(&flags{addr: ":7200"})
	require.NoError(t, err)
	assert.Equal(t, "env.db", got.Store.Path)
	assert.Equal(t, ":7200", got.Server.Addr, "flags win over the environment")
}

func TestSetupEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("DRACONIC_LOG_LEVEL=warn\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("DRACONIC_LOG_LEVEL") })

	cfg, _, err := setup(&flags{envFile: envFile}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)

	_, _, err = setup(&flags{envFile: filepath.Join(dir, "missing.env")}, io.Discard)
	assert.NoError(t, err, "a missing env file is ignored")
}

func TestCategoriesCommand(t *testing.T) {
	var buf bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"categories"})
	require.NoError(t, cmd.Execute())

	out := buf.String()
	assert.Contains(t, out, " 1\tPrepositional Flag\t(flag, requires Prepositional Affix)\n")
	assert.Contains(t, out, " 7\tRoot\t(root)\n")
	assert.Contains(t, out, "11\tGender Affix\n")
}

func TestCheckCommand(t *testing.T) {
	db := filepath.Join(t.TempDir(), "d.db")
	var buf bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--db", db, "check", "kai-sha"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "/kai-sha/\tnew word\troot: /kai-sha/\n", buf.String())
	assert.NoFileExists(t, db, "check must not create the database")
}

func TestCheckCommandUsesStoredTags(t *testing.T) {
	db := filepath.Join(t.TempDir(), "d.db")
	cfg := config.DefaultConfig()
	cfg.Store.Path = db
	a, err := newApp(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	require.NoError(t, a.lex.CreateTag("Time Affix"))
	require.NoError(t, a.lex.AssignTag("Time Affix", "sha"))
	require.NoError(t, a.persist(context.Background()))
	require.NoError(t, a.Close())

	var buf bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--db", db, "check", "kai-sha"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "/kai-sha/\tvariant\troot: /kai/\n", buf.String())
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), Version)
}
