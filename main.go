package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/soocke/bbox-annotator-go/app"
	"github.com/soocke/bbox-annotator-go/config"
)

func main() {
	// Config file first, then command-line overrides
	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	cfg, cfgPath, err := config.ApplyFlags(fs, os.Args[1:])

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := NewLogger(level)
	if err != nil {
		logger.Warn("config not loaded, using defaults", "path", cfgPath, "error", err)
	}
	logger.Info("annotator starting", "config", cfgPath, "src", cfg.SourceDir, "dst", cfg.DestDir, "classes", cfg.ClassesFile)

	application := app.NewApp("Bounding Box Annotator", cfg, cfgPath, logger)
	application.Start()
}
