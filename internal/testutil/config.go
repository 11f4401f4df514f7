package testutil

import (
	"io"

	"todo/internal/config"
)

// NewConfig returns a Config rooted at dir with logging discarded.
func NewConfig(dir string, quiet bool) *config.Config {
	return &config.Config{
		Dir:           dir,
		Driver:        config.DefaultDriver,
		DefaultStatus: config.DefaultStatus,
		Quiet:         quiet,
		Logger:        config.NewLogger(io.Discard, false),
	}
}
