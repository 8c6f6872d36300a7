package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/fitguide/pkg/app"
	"github.com/kerbaras/fitguide/pkg/catalog"
	"github.com/kerbaras/fitguide/pkg/config"
	"github.com/kerbaras/fitguide/pkg/logging"
	"github.com/kerbaras/fitguide/pkg/services"
	"github.com/spf13/cobra"
)

// Persistent flags; a non-empty value overrides the environment.
var (
	envFile     string
	dataDir     string
	dbPath      string
	apiURL      string
	assetDir    string
	assetRemote string
	catalogDir  string
	logLevel    string
)

var rootCmd = &cobra.Command{
	Use:   "fitguide",
	Short: "An interactive exercise guide",
	Long:  "Pick a muscle on the body diagram, browse exercises by equipment and build workouts, from the TUI or the CLI",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		// the TUI owns the terminal, so logs go to a file
		logger, closer, err := logging.NewFile(cfg.LogFile, cfg.LogLevel)
		if err != nil {
			cobra.CheckErr(fmt.Errorf("failed to open log file: %w", err))
		}
		defer closer.Close()

		controller, err := services.NewFitGuideControllerFromConfig(cfg, logger)
		if err != nil {
			cobra.CheckErr(err)
		}
		defer controller.Close()

		// Launch TUI by default
		a := app.NewApp(controller)
		if err := a.Run(); err != nil {
			cobra.CheckErr(err)
		}
	},
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&envFile, "env-file", ".env", "Optional dotenv file")
	f.StringVar(&dataDir, "data-dir", "", "Data directory (default ~/.fitguide)")
	f.StringVar(&dbPath, "db", "", "DuckDB database path")
	f.StringVar(&apiURL, "api-url", "", "Backend base URL")
	f.StringVar(&assetDir, "asset-dir", "", "Local exercise media directory")
	f.StringVar(&assetRemote, "asset-remote", "", "Remote asset host to sync media from")
	f.StringVar(&catalogDir, "catalog-dir", "", "Directory overriding the built-in catalog files")
	f.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the environment and applies the persistent flags.
func loadConfig() *config.Config {
	if dataDir != "" {
		os.Setenv("FITGUIDE_DATA_DIR", dataDir)
	}
	cfg := config.Load(envFile)

	override := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	override(&cfg.DBPath, dbPath)
	override(&cfg.APIBaseURL, apiURL)
	override(&cfg.AssetDir, assetDir)
	override(&cfg.AssetRemote, assetRemote)
	override(&cfg.CatalogDir, catalogDir)
	if logLevel != "" {
		cfg.LogLevel = config.ParseLevel(logLevel)
	}
	return cfg
}

func cliLogger(cfg *config.Config) *slog.Logger {
	return logging.NewStderr(cfg.LogLevel)
}

// openCatalog loads only the catalog, for commands that need no database.
func openCatalog() (*catalog.Catalog, *config.Config, *slog.Logger) {
	cfg := loadConfig()
	logger := cliLogger(cfg)
	c, err := catalog.Open(cfg.CatalogDir, logger)
	if err != nil {
		cobra.CheckErr(fmt.Errorf("failed to load catalog: %w", err))
	}
	return c, cfg, logger
}

func openController(cfg *config.Config) *services.FitGuideController {
	controller, err := services.NewFitGuideControllerFromConfig(cfg, cliLogger(cfg))
	if err != nil {
		cobra.CheckErr(err)
	}
	return controller
}

// signalContext is cancelled on Ctrl+C.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func parseGender(cmd *cobra.Command) catalog.Gender {
	s, _ := cmd.Flags().GetString("gender")
	g, err := catalog.ParseGender(s)
	if err != nil {
		cobra.CheckErr(err)
	}
	return g
}

func parseEquipment(cmd *cobra.Command) catalog.Equipment {
	s, _ := cmd.Flags().GetString("equipment")
	if s == "" {
		return catalog.AllEquipment
	}
	e, err := catalog.ParseEquipment(s)
	if err != nil {
		cobra.CheckErr(err)
	}
	return e
}

func printTable(columns []table.Column, rows []table.Row) {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(len(rows)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Cell
	t.SetStyles(s)

	fmt.Println(t.View())
}

// truncateString shortens s to at most n runes, ending in "..." when there
// is room for it.
func truncateString(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:max(n, 0)])
	}
	return string(r[:n-3]) + "..."
}
