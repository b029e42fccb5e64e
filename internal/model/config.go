package model

import "log/slog"

// Config controls graph assembly and memory planning.
type Config struct {
	// Alignment of every sub-buffer handed to a layer, in bytes.
	// Must be a power of two that is at least the largest element size.
	Alignment int

	// Logger receives memory plan details at debug level and validation
	// failures at warn level. Nil discards.
	Logger *slog.Logger

	// SkipValidation disables the checks run by New. Meant for graphs that
	// were validated before, e.g. in a build step.
	SkipValidation bool
}

// DefaultConfig returns 8 byte alignment, a discarding logger and validation enabled.
func DefaultConfig() Config {
	return Config{
		Alignment: 8,
		Logger:    slog.New(slog.DiscardHandler),
	}
}

func (c Config) withDefaults() Config {
	if c.Alignment <= 0 {
		c.Alignment = 8
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
	return c
}

func (c Config) align(n int) int {
	return (n + c.Alignment - 1) &^ (c.Alignment - 1)
}
