// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging configures the zerolog logger shared by all commands.
// Every logger carries a run_id so the lines of one invocation can be
// picked out of a shared log file.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds logger settings.
type Config struct {
	// Level is one of debug, info, warn, error. Empty means info.
	Level string

	// JSON switches from the console writer to JSON lines.
	JSON bool

	// Output defaults to os.Stderr.
	Output io.Writer
}

// New builds a logger from cfg with a fresh run_id.
func New(cfg Config) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		l, err := zerolog.ParseLevel(cfg.Level)
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
		}
		level = l
	}

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if !cfg.JSON {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly}
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("run_id", uuid.NewString()).
		Logger(), nil
}

// Setup builds a logger on stderr and installs it as the global zerolog
// logger.
func Setup(level string, json bool) (zerolog.Logger, error) {
	logger, err := New(Config{Level: level, JSON: json})
	if err != nil {
		return logger, err
	}
	log.Logger = logger
	return logger, nil
}
