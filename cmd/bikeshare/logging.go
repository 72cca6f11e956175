package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
)

// setupLogging points the global logger at stderr so report output on
// stdout stays clean.
func setupLogging(level string) error {
	parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if parsed == zerolog.NoLevel {
		parsed = zerolog.WarnLevel
	}

	if os.Getenv("BIKESHARE_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
			NoColor:    !term.IsTerminal(int(os.Stderr.Fd())),
		})
	} else {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	zerolog.SetGlobalLevel(parsed)
	if os.Getenv("BIKESHARE_DEBUG") == "YES" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	return nil
}
