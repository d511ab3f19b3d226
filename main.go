package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"

	app "github.com/rocketscienceinc/tictactotal/internal"
	"github.com/rocketscienceinc/tictactotal/internal/config"
)

// main - is the entry point of the application. It initializes the configuration, logger, and runs the application.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	conf := initConfig()

	logger, closer := initLogger(conf)
	defer closer.Close()

	if err := app.RunApp(logger, conf); err != nil {
		panic(fmt.Errorf("app run failed: %w", err))
	}
}

// initialize config.
func initConfig() *config.Config {
	baseDir, err := os.Getwd()
	if err != nil {
		panic(fmt.Errorf("failed to get current directory: %w", err))
	}

	return config.MustLoad(filepath.Join(baseDir, "./config.yml"))
}

// initialize logger. With a log file the records are written there as JSON so they
// do not interleave with the board; otherwise they go through the pterm logger.
func initLogger(conf *config.Config) (*slog.Logger, io.Closer) {
	var level slog.Level

	ptermLevel := pterm.LogLevelInfo

	switch conf.LogLevel {
	case "debug":
		level = slog.LevelDebug
		ptermLevel = pterm.LogLevelDebug
	case "info":
		level = slog.LevelInfo
	}

	if conf.LogFile == "" {
		handler := pterm.NewSlogHandler(pterm.DefaultLogger.WithLevel(ptermLevel))
		return slog.New(handler), io.NopCloser(nil)
	}

	file, err := os.OpenFile(conf.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		panic(fmt.Errorf("failed to open log file: %w", err))
	}

	return slog.New(slog.NewJSONHandler(file, &slog.HandlerOptions{Level: level})), file
}
