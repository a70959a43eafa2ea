package app

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/aviaryworks/fieldguide/internal/config"
	"github.com/aviaryworks/fieldguide/pkg/logging"
)

// NewLogger creates a configured logger based on the application configuration.
// Log level precedence (highest to lowest):
//  1. -v/--verbose flag (shortcut for debug)
//  2. -q/--quiet flag (shortcut for warn)
//  3. LOG_LEVEL environment variable
//  4. Default (info)
func NewLogger(cfg *config.Config) zerolog.Logger {
	level := determineLogLevel(cfg)
	zerolog.SetGlobalLevel(level)

	var writer io.Writer = os.Stderr
	if isTerminal() && os.Getenv("LOG_FORMAT") != "json" {
		writer = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
			NoColor:    cfg.NoColor || os.Getenv("NO_COLOR") != "",
		}
	}

	logger := logging.New(writer).Level(level)
	if level <= zerolog.DebugLevel {
		logger = logger.With().Caller().Logger()
	}

	logging.SetDefault(logger)
	return logger
}

// determineLogLevel determines the log level using clear precedence rules.
func determineLogLevel(cfg *config.Config) zerolog.Level {
	if cfg.Verbose && cfg.Quiet {
		// Both specified, use quiet (more restrictive)
		return zerolog.WarnLevel
	}
	if cfg.Verbose {
		return zerolog.DebugLevel
	}
	if cfg.Quiet {
		return zerolog.WarnLevel
	}

	if parsed, err := zerolog.ParseLevel(cfg.LogLevel); err == nil && cfg.LogLevel != "" {
		return parsed
	}
	return zerolog.InfoLevel
}

// isTerminal checks if stderr is a terminal.
func isTerminal() bool {
	fileInfo, _ := os.Stderr.Stat()
	return fileInfo != nil && (fileInfo.Mode()&os.ModeCharDevice) != 0
}
