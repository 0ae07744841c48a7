// Package logger configures slog for the nfa2dfa command.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// ErrInvalidLogLevel is returned when a log level name cannot be parsed.
var ErrInvalidLogLevel = errors.New("invalid log level")

// Options is used to configure logging.
type Options struct {
	Subsystem string
	JSON      bool
	MinLevel  slog.Level
	Output    io.Writer
}

// Configure builds a logger from opts and installs it as the slog default.
func Configure(opts Options) *slog.Logger {
	if opts.Output == nil {
		opts.Output = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{Level: opts.MinLevel}

	var handler slog.Handler
	if opts.JSON {
		handler = slog.NewJSONHandler(opts.Output, handlerOpts)
	} else {
		handler = slog.NewTextHandler(opts.Output, handlerOpts)
	}

	logger := slog.New(handler)
	if opts.Subsystem != "" {
		logger = logger.With("subsystem", opts.Subsystem)
	}

	slog.SetDefault(logger)

	return logger
}

// FromEnv fills Options from NFA2DFA_LOG_LEVEL and NFA2DFA_LOG_JSON. Unset
// variables keep the values already in base.
func FromEnv(base Options) (Options, error) {
	if v, ok := os.LookupEnv("NFA2DFA_LOG_LEVEL"); ok {
		level, err := ParseLevel(v)
		if err != nil {
			return base, err
		}
		base.MinLevel = level
	}

	if v, ok := os.LookupEnv("NFA2DFA_LOG_JSON"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return base, fmt.Errorf("NFA2DFA_LOG_JSON: %w", err)
		}
		base.JSON = b
	}

	return base, nil
}

// ParseLevel accepts debug, info, warn or error in any case.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLogLevel, name)
	}
	return level, nil
}
