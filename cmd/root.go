package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	cfgpkg "github.com/vayuview/vayuview/internal/config"
)

var (
	// Global flags
	cfgFile string
	debug   bool

	// Loaded configuration and logger, shared by subcommands.
	cfg    *cfgpkg.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "vayuview",
	Short: "VayuView: render an air-quality dashboard for Indian cities",
	Long: `VayuView ingests historical air-quality CSVs (daily, hourly, and
station-level), cleans and aggregates them, and renders a self-contained
HTML dashboard with trend, distribution, seasonal, comparison, station,
and correlation views.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	// Local .env overrides are optional.
	_ = godotenv.Load()
	cobra.OnInitialize(initLogger, loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.vayuview/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
}

func initLogger() {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		logger.Warn("failed to load config, using defaults", "error", err)
		c = cfgpkg.Default()
	}
	cfg = c
}
