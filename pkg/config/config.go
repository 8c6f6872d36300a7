package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds settings shared by the CLI, the TUI and the catalog server.
type Config struct {
	DataDir     string
	DBPath      string
	APIBaseURL  string
	AssetDir    string
	AssetRemote string
	CatalogDir  string // empty means the embedded catalog
	ListenAddr  string
	LogLevel    slog.Level
	LogFile     string
	Device      string // booklet device profile
}

const (
	DefaultAPIBaseURL = "http://localhost:8000"
	DefaultListenAddr = ":8080"
)

// Load reads an optional .env file and then the FITGUIDE_* environment.
// A missing .env is not an error.
func Load(envFiles ...string) *Config {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if _, err := os.Stat(f); err == nil {
			_ = godotenv.Load(f)
		}
	}

	dataDir := os.Getenv("FITGUIDE_DATA_DIR")
	if dataDir == "" {
		dataDir = defaultDataDir()
	}

	cfg := &Config{
		DataDir:     dataDir,
		DBPath:      getenv("FITGUIDE_DB_PATH", filepath.Join(dataDir, "fitguide.db")),
		APIBaseURL:  getenv("FITGUIDE_API_URL", DefaultAPIBaseURL),
		AssetDir:    getenv("FITGUIDE_ASSET_DIR", filepath.Join(dataDir, "public")),
		AssetRemote: os.Getenv("FITGUIDE_ASSET_REMOTE"),
		CatalogDir:  os.Getenv("FITGUIDE_CATALOG_DIR"),
		ListenAddr:  getenv("FITGUIDE_LISTEN_ADDR", DefaultListenAddr),
		LogLevel:    ParseLevel(os.Getenv("FITGUIDE_LOG_LEVEL")),
		LogFile:     getenv("FITGUIDE_LOG_FILE", filepath.Join(dataDir, "fitguide.log")),
		Device:      os.Getenv("FITGUIDE_DEVICE"),
	}
	return cfg
}

// ParseLevel maps a level name to slog.Level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func defaultDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".fitguide"
	}
	return filepath.Join(homeDir, ".fitguide")
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
