// Package config defines the format-agnostic contract between the input
// document loaders and the scheduling core. Each concrete format (HCL,
// YAML) implements Loader and produces the same Input shape; the core
// never sees a file.
package config

import (
	"context"

	"github.com/vk/reflowgo/internal/model"
)

// Input is the loaded, in-memory form of one scheduling problem.
type Input struct {
	Centers []model.WorkCenter
	Orders  []model.WorkOrder
}

// Loader reads scheduling documents from one or more paths (files or
// directories) and translates them into the format-agnostic Input.
type Loader interface {
	Load(ctx context.Context, paths ...string) (*Input, error)
}
