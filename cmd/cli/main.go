package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/vk/reflowgo/internal/app"
	"github.com/vk/reflowgo/internal/cli"
	"github.com/vk/reflowgo/internal/config"
	"github.com/vk/reflowgo/internal/hcl"
	"github.com/vk/reflowgo/internal/yaml"
)

// main is the entrypoint for the reflowgo application.
func main() {
	// Minimal logger until the app configures its own.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error
// handling.
func run(outW io.Writer, args []string) error {
	cfg, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	reflowApp := app.New(outW, cfg, newLoader(cfg))
	return reflowApp.Run(context.Background(), cfg)
}

// newLoader picks the document loader for the configured format. "auto"
// goes by file extension and falls back to HCL, the primary format.
func newLoader(cfg *app.Config) config.Loader {
	switch cfg.Format {
	case "yaml":
		return yaml.NewLoader()
	case "hcl":
		return hcl.NewLoader()
	default:
		if strings.HasSuffix(cfg.PlanPath, ".yaml") || strings.HasSuffix(cfg.PlanPath, ".yml") {
			return yaml.NewLoader()
		}
		return hcl.NewLoader()
	}
}
