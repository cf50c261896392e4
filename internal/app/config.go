package app

import (
	"errors"
	"fmt"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	PlanPath string // .hcl or .yaml documents: work centers + work orders
	Format   string // "auto", "hcl" or "yaml"

	CheckOnly bool // validate only, never reschedule

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.PlanPath == "" {
		return nil, errors.New("PlanPath is a required configuration field and cannot be empty")
	}
	switch cfg.Format {
	case "", "auto", "hcl", "yaml":
	default:
		return nil, fmt.Errorf("unknown input format %q", cfg.Format)
	}
	if cfg.Format == "" {
		cfg.Format = "auto"
	}
	return &cfg, nil
}
