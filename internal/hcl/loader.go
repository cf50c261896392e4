// Package hcl is the HCL-specific implementation of the config.Loader
// interface. It parses work_center and work_order blocks from .hcl
// documents and translates them into the format-agnostic input model.
package hcl

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/reflowgo/internal/config"
	"github.com/vk/reflowgo/internal/ctxlog"
	"github.com/vk/reflowgo/internal/fsutil"
	"github.com/vk/reflowgo/internal/model"
)

// Loader implements config.Loader for HCL documents.
type Loader struct{}

// NewLoader creates a new HCL document loader.
func NewLoader() *Loader {
	return &Loader{}
}

// fileRoot decodes all recognized top-level blocks from one file. Any file
// may carry any mix of centers and orders.
type fileRoot struct {
	Centers []*workCenterBlock `hcl:"work_center,block"`
	Orders  []*workOrderBlock  `hcl:"work_order,block"`
}

type workCenterBlock struct {
	Name        string              `hcl:"name,label"`
	Shifts      []*shiftBlock       `hcl:"shift,block"`
	Maintenance []*maintenanceBlock `hcl:"maintenance,block"`
}

// shiftBlock keeps days as a raw expression so translation can evaluate it
// to a cty list and report precise errors per element.
type shiftBlock struct {
	Days      hcl.Expression `hcl:"days"`
	StartHour int            `hcl:"start_hour"`
	EndHour   int            `hcl:"end_hour"`
}

type maintenanceBlock struct {
	Starts string  `hcl:"starts"`
	Ends   string  `hcl:"ends"`
	Reason *string `hcl:"reason"`
}

type workOrderBlock struct {
	ID              string    `hcl:"id,label"`
	WorkCenter      string    `hcl:"work_center"`
	Starts          string    `hcl:"starts"`
	Ends            string    `hcl:"ends"`
	DurationMinutes int       `hcl:"duration_minutes"`
	Maintenance     *bool     `hcl:"maintenance"`
	DependsOn       *[]string `hcl:"depends_on"`
}

// Load discovers and parses every .hcl file under the given paths and
// merges their blocks into one input.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Input, error) {
	logger := ctxlog.FromContext(ctx)

	var files []string
	for _, path := range paths {
		found, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	logger.Debug("discovered HCL documents", "count", len(files))

	input := &config.Input{}
	parser := hclparse.NewParser()

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse %s: %w", file, diags)
		}

		var root fileRoot
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode %s: %w", file, diags)
		}

		for _, block := range root.Centers {
			center, err := translateCenter(block)
			if err != nil {
				return nil, fmt.Errorf("%s: work_center %q: %w", file, block.Name, err)
			}
			input.Centers = append(input.Centers, center)
		}
		for _, block := range root.Orders {
			order, err := translateOrder(block)
			if err != nil {
				return nil, fmt.Errorf("%s: work_order %q: %w", file, block.ID, err)
			}
			input.Orders = append(input.Orders, order)
		}
	}

	logger.Debug("HCL loading complete", "centers", len(input.Centers), "orders", len(input.Orders))
	return input, nil
}

func translateCenter(block *workCenterBlock) (model.WorkCenter, error) {
	center := model.WorkCenter{Name: block.Name}

	for _, sb := range block.Shifts {
		days, err := evalDays(sb.Days)
		if err != nil {
			return model.WorkCenter{}, err
		}
		if err := config.ValidateHour("start_hour", sb.StartHour); err != nil {
			return model.WorkCenter{}, err
		}
		if err := config.ValidateHour("end_hour", sb.EndHour); err != nil {
			return model.WorkCenter{}, err
		}
		for _, day := range days {
			center.Shifts = append(center.Shifts, model.Shift{
				Day:       day,
				StartHour: sb.StartHour,
				EndHour:   sb.EndHour,
			})
		}
	}

	for _, mb := range block.Maintenance {
		start, err := config.ParseInstant(mb.Starts)
		if err != nil {
			return model.WorkCenter{}, err
		}
		end, err := config.ParseInstant(mb.Ends)
		if err != nil {
			return model.WorkCenter{}, err
		}
		window := model.MaintenanceWindow{Start: start, End: end}
		if mb.Reason != nil {
			window.Reason = *mb.Reason
		}
		center.Maintenance = append(center.Maintenance, window)
	}

	return center, nil
}

func translateOrder(block *workOrderBlock) (model.WorkOrder, error) {
	start, err := config.ParseInstant(block.Starts)
	if err != nil {
		return model.WorkOrder{}, err
	}
	end, err := config.ParseInstant(block.Ends)
	if err != nil {
		return model.WorkOrder{}, err
	}
	if block.DurationMinutes < 0 {
		return model.WorkOrder{}, fmt.Errorf("duration_minutes must not be negative, got %d", block.DurationMinutes)
	}

	order := model.WorkOrder{
		ID:              block.ID,
		WorkCenter:      block.WorkCenter,
		Start:           start,
		End:             end,
		DurationMinutes: block.DurationMinutes,
	}
	if block.Maintenance != nil {
		order.Maintenance = *block.Maintenance
	}
	if block.DependsOn != nil {
		order.DependsOn = *block.DependsOn
	}
	return order, nil
}

// evalDays evaluates the days attribute to a cty list of day names.
func evalDays(expr hcl.Expression) ([]time.Weekday, error) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid days expression: %w", diags)
	}
	if !val.CanIterateElements() {
		return nil, fmt.Errorf("days must be a list of day names, got %s", val.Type().FriendlyName())
	}

	var days []time.Weekday
	for it := val.ElementIterator(); it.Next(); {
		_, element := it.Element()
		if element.Type() != cty.String {
			return nil, fmt.Errorf("days elements must be strings, got %s", element.Type().FriendlyName())
		}
		day, err := config.ParseDay(element.AsString())
		if err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	return days, nil
}
