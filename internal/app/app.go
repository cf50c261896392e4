// Package app wires the document loader, the scheduling core, and the
// console output into one runnable application object.
package app

import (
	"io"
	"log/slog"
	"os"

	"github.com/vk/reflowgo/internal/config"
)

// App encapsulates the application's dependencies and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	loader config.Loader
}

// New constructs an App with its own isolated logger. Log output goes to
// stderr so result output on outW stays machine-friendly.
func New(outW io.Writer, cfg *Config, loader config.Loader) *App {
	return &App{
		outW:   outW,
		logger: newLogger(cfg.LogLevel, cfg.LogFormat, os.Stderr),
		loader: loader,
	}
}
