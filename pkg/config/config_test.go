package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("FITGUIDE_DATA_DIR", dir)
	t.Setenv("FITGUIDE_API_URL", "")
	t.Setenv("FITGUIDE_DB_PATH", "")
	t.Setenv("FITGUIDE_ASSET_DIR", "")
	t.Setenv("FITGUIDE_LISTEN_ADDR", "")
	t.Setenv("FITGUIDE_LOG_LEVEL", "")

	cfg := Load(filepath.Join(dir, "missing.env"))

	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, filepath.Join(dir, "fitguide.db"), cfg.DBPath)
	assert.Equal(t, filepath.Join(dir, "public"), cfg.AssetDir)
	assert.Equal(t, DefaultAPIBaseURL, cfg.APIBaseURL)
	assert.Equal(t, DefaultListenAddr, cfg.ListenAddr)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoadFromEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("FITGUIDE_API_URL=https://api.example.com\nFITGUIDE_LOG_LEVEL=debug\n"), 0644))

	t.Setenv("FITGUIDE_DATA_DIR", dir)
	// t.Setenv registers cleanup so godotenv's writes are restored afterwards.
	t.Setenv("FITGUIDE_API_URL", "")
	t.Setenv("FITGUIDE_LOG_LEVEL", "")
	os.Unsetenv("FITGUIDE_API_URL")
	os.Unsetenv("FITGUIDE_LOG_LEVEL")

	cfg := Load(envFile)

	assert.Equal(t, "https://api.example.com", cfg.APIBaseURL)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
