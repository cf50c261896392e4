package app

import (
	"context"
	"fmt"

	"github.com/vk/reflowgo/internal/ctxlog"
	"github.com/vk/reflowgo/internal/model"
	"github.com/vk/reflowgo/internal/reflow"
)

// Run executes one invocation: load the documents, then either audit the
// schedule (CheckOnly) or reflow it and print the change log.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run started", "plan", cfg.PlanPath, "check_only", cfg.CheckOnly)

	input, err := a.loader.Load(ctx, cfg.PlanPath)
	if err != nil {
		return fmt.Errorf("failed to load scheduling documents: %w", err)
	}
	a.logger.Info("documents loaded",
		"centers", len(input.Centers), "orders", len(input.Orders))

	if cfg.CheckOnly {
		report := reflow.Validate(ctx, input.Orders, input.Centers)
		a.printReport(report)
		if !report.Valid() {
			return fmt.Errorf("schedule is invalid: %d violation(s)", len(report.Violations))
		}
		return nil
	}

	result, err := reflow.Run(ctx, input.Orders, input.Centers, reflow.Options{})
	if err != nil {
		return err
	}
	a.printResult(result)
	return nil
}

// printReport writes a standalone validation report to the output writer.
func (a *App) printReport(report model.Report) {
	if report.Valid() {
		fmt.Fprintln(a.outW, "Schedule is valid.")
		return
	}
	fmt.Fprintf(a.outW, "Schedule is invalid (%d violations):\n", len(report.Violations))
	for _, v := range report.Violations {
		fmt.Fprintf(a.outW, "  [%s] %s\n", v.Kind, v.Message)
	}
}

// printResult writes the reflow change log and explanation.
func (a *App) printResult(result *model.Result) {
	fmt.Fprintln(a.outW, result.Explanation)
	for _, c := range result.Changes {
		fmt.Fprintf(a.outW, "  %s %s: %s -> %s (%s)\n",
			c.OrderID, c.Field,
			c.From.UTC().Format("2006-01-02 15:04"),
			c.To.UTC().Format("2006-01-02 15:04"),
			c.Reason)
		if c.Detail != "" {
			fmt.Fprintf(a.outW, "      %s\n", c.Detail)
		}
	}
}
