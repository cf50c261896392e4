// Package yaml is the YAML-specific implementation of the config.Loader
// interface. It accepts the same attribute vocabulary as the HCL format
// under top-level work_centers and work_orders lists.
package yaml

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vk/reflowgo/internal/config"
	"github.com/vk/reflowgo/internal/ctxlog"
	"github.com/vk/reflowgo/internal/fsutil"
	"github.com/vk/reflowgo/internal/model"
)

// Loader implements config.Loader for YAML documents.
type Loader struct{}

// NewLoader creates a new YAML document loader.
func NewLoader() *Loader {
	return &Loader{}
}

type document struct {
	WorkCenters []centerDoc `yaml:"work_centers"`
	WorkOrders  []orderDoc  `yaml:"work_orders"`
}

type centerDoc struct {
	Name        string     `yaml:"name"`
	Shifts      []shiftDoc `yaml:"shifts"`
	Maintenance []maintDoc `yaml:"maintenance"`
}

type shiftDoc struct {
	Days      []string `yaml:"days"`
	StartHour int      `yaml:"start_hour"`
	EndHour   int      `yaml:"end_hour"`
}

type maintDoc struct {
	Starts string `yaml:"starts"`
	Ends   string `yaml:"ends"`
	Reason string `yaml:"reason"`
}

type orderDoc struct {
	ID              string   `yaml:"id"`
	WorkCenter      string   `yaml:"work_center"`
	Starts          string   `yaml:"starts"`
	Ends            string   `yaml:"ends"`
	DurationMinutes int      `yaml:"duration_minutes"`
	Maintenance     bool     `yaml:"maintenance"`
	DependsOn       []string `yaml:"depends_on"`
}

// Load discovers every .yaml and .yml file under the given paths and
// merges their contents into one input.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Input, error) {
	logger := ctxlog.FromContext(ctx)

	var files []string
	for _, path := range paths {
		for _, ext := range []string{".yaml", ".yml"} {
			found, err := fsutil.FindFilesByExtension(path, ext)
			if err != nil {
				return nil, err
			}
			files = append(files, found...)
		}
	}
	logger.Debug("discovered YAML documents", "count", len(files))

	input := &config.Input{}
	for _, file := range files {
		raw, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}

		var doc document
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", file, err)
		}

		for _, cd := range doc.WorkCenters {
			center, err := translateCenter(cd)
			if err != nil {
				return nil, fmt.Errorf("%s: work center %q: %w", file, cd.Name, err)
			}
			input.Centers = append(input.Centers, center)
		}
		for _, od := range doc.WorkOrders {
			order, err := translateOrder(od)
			if err != nil {
				return nil, fmt.Errorf("%s: work order %q: %w", file, od.ID, err)
			}
			input.Orders = append(input.Orders, order)
		}
	}

	logger.Debug("YAML loading complete", "centers", len(input.Centers), "orders", len(input.Orders))
	return input, nil
}

func translateCenter(doc centerDoc) (model.WorkCenter, error) {
	center := model.WorkCenter{Name: doc.Name}

	for _, sd := range doc.Shifts {
		if err := config.ValidateHour("start_hour", sd.StartHour); err != nil {
			return model.WorkCenter{}, err
		}
		if err := config.ValidateHour("end_hour", sd.EndHour); err != nil {
			return model.WorkCenter{}, err
		}
		for _, name := range sd.Days {
			day, err := config.ParseDay(name)
			if err != nil {
				return model.WorkCenter{}, err
			}
			center.Shifts = append(center.Shifts, model.Shift{
				Day:       day,
				StartHour: sd.StartHour,
				EndHour:   sd.EndHour,
			})
		}
	}

	for _, md := range doc.Maintenance {
		start, err := config.ParseInstant(md.Starts)
		if err != nil {
			return model.WorkCenter{}, err
		}
		end, err := config.ParseInstant(md.Ends)
		if err != nil {
			return model.WorkCenter{}, err
		}
		center.Maintenance = append(center.Maintenance, model.MaintenanceWindow{
			Start:  start,
			End:    end,
			Reason: md.Reason,
		})
	}

	return center, nil
}

func translateOrder(doc orderDoc) (model.WorkOrder, error) {
	start, err := config.ParseInstant(doc.Starts)
	if err != nil {
		return model.WorkOrder{}, err
	}
	end, err := config.ParseInstant(doc.Ends)
	if err != nil {
		return model.WorkOrder{}, err
	}
	if doc.DurationMinutes < 0 {
		return model.WorkOrder{}, fmt.Errorf("duration_minutes must not be negative, got %d", doc.DurationMinutes)
	}

	return model.WorkOrder{
		ID:              doc.ID,
		WorkCenter:      doc.WorkCenter,
		Start:           start,
		End:             end,
		DurationMinutes: doc.DurationMinutes,
		Maintenance:     doc.Maintenance,
		DependsOn:       doc.DependsOn,
	}, nil
}
