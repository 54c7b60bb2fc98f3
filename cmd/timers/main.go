package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/idilsaglam/timers/internal/cli"
	"github.com/idilsaglam/timers/internal/config"
)

func main() {
	// Root flags (apply to every subcommand)
	configPath := flag.String("config", config.DefaultPath(), "path to config.yaml")
	storeName := flag.String("store", "", "storage backend: json or sqlite (overrides config)")
	dataDir := flag.String("data", "", "data directory (overrides config)")
	flag.Parse()

	// Logging comes up before config.Load so config warnings land in the
	// log file instead of the default stderr handler.
	logDir := *dataDir
	if logDir == "" {
		logDir = config.DefaultDataDir()
	}
	setupLogging(logDir)

	settings := config.Load(*configPath)
	if *storeName != "" {
		settings.Store = *storeName
	}
	if *dataDir != "" {
		settings.DataDir = *dataDir
	}
	if settings.DataDir != logDir {
		// The config moved the data dir; re-point the log file there.
		setupLogging(settings.DataDir)
	}

	// Hand the remaining args to the CLI runner.
	os.Exit(cli.Run(flag.Args(), cli.Options{Settings: settings}))
}

// setupLogging sends slog to a file in the data dir. The TUI owns the
// terminal, so logs never go to stdout/stderr; if the file cannot be
// opened, logging is discarded.
func setupLogging(dataDir string) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		slog.SetDefault(slog.New(slog.DiscardHandler))
		return
	}
	f, err := os.OpenFile(filepath.Join(dataDir, "timers.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		slog.SetDefault(slog.New(slog.DiscardHandler))
		return
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(f, nil)))
}
