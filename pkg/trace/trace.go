// Package trace describes recorded pointer sessions against a list and
// replays them through the reorder engine without a terminal.
package trace

import (
	"fmt"
	"os"

	"github.com/grovetools/reorder/config"
	"github.com/grovetools/reorder/errors"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Action is what a step does to its item.
type Action string

const (
	ActionStart   Action = "start"
	ActionDrag    Action = "drag"
	ActionEnd     Action = "end"
	ActionUnmount Action = "unmount"
	// ActionFire fires every pending dragging timer. It takes no item.
	ActionFire Action = "fire"
)

// Trace is a list layout plus the pointer steps applied to it.
type Trace struct {
	Name    string  `yaml:"name,omitempty" toml:"name,omitempty"`
	Spacing float64 `yaml:"spacing" toml:"spacing"`
	Items   []Item  `yaml:"items" toml:"items"`
	Steps   []Step  `yaml:"steps" toml:"steps"`
}

// Item is one list entry at mount time. Rank defaults to the item's index.
type Item struct {
	ID        string  `yaml:"id" toml:"id"`
	Rank      *int    `yaml:"rank,omitempty" toml:"rank,omitempty"`
	Height    float64 `yaml:"height" toml:"height"`
	Removable bool    `yaml:"removable,omitempty" toml:"removable,omitempty"`
}

// Step is one pointer event delivered to an item.
type Step struct {
	Item    string  `yaml:"item,omitempty" toml:"item,omitempty"`
	Action  Action  `yaml:"action" toml:"action"`
	PageY   float64 `yaml:"page_y,omitempty" toml:"page_y,omitempty"`
	ClientY float64 `yaml:"client_y,omitempty" toml:"client_y,omitempty"`
}

// Load reads a trace file. The format follows the extension: .toml is TOML,
// anything else YAML.
func Load(path string) (*Trace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeTraceInvalid, "failed to read trace file").
			WithDetail("path", path)
	}
	t, err := Parse(data, config.FormatFromPath(path))
	if err != nil {
		if reorderErr, ok := err.(*errors.ReorderError); ok {
			return nil, reorderErr.WithDetail("path", path)
		}
		return nil, err
	}
	return t, nil
}

// Parse decodes and validates a trace.
func Parse(data []byte, format config.Format) (*Trace, error) {
	var t Trace
	var err error
	switch format {
	case config.FormatTOML:
		err = toml.Unmarshal(data, &t)
	default:
		err = yaml.Unmarshal(data, &t)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeTraceInvalid, fmt.Sprintf("failed to parse %s trace", format))
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Validate checks that ids are unique, initial ranks are dense and every
// step names a known item and action.
func (t *Trace) Validate() error {
	if len(t.Items) == 0 {
		return errors.TraceInvalid("no items")
	}
	if t.Spacing < 0 {
		return errors.TraceInvalid("spacing must not be negative")
	}

	ids := make(map[string]bool, len(t.Items))
	ranks := make(map[int]string, len(t.Items))
	for i, it := range t.Items {
		if it.ID == "" {
			return errors.TraceInvalid(fmt.Sprintf("item %d has no id", i))
		}
		if ids[it.ID] {
			return errors.TraceInvalid(fmt.Sprintf("duplicate item id '%s'", it.ID)).
				WithDetail("item", it.ID)
		}
		ids[it.ID] = true

		if it.Height < 0 {
			return errors.TraceInvalid(fmt.Sprintf("item '%s' has a negative height", it.ID)).
				WithDetail("item", it.ID)
		}

		rank := t.rankOf(i)
		if rank < 0 || rank >= len(t.Items) {
			return errors.TraceInvalid(fmt.Sprintf("item '%s' has rank %d outside 0..%d", it.ID, rank, len(t.Items)-1)).
				WithDetail("item", it.ID)
		}
		if other, taken := ranks[rank]; taken {
			return errors.TraceInvalid(fmt.Sprintf("items '%s' and '%s' share rank %d", other, it.ID, rank))
		}
		ranks[rank] = it.ID
	}

	for i, step := range t.Steps {
		switch step.Action {
		case ActionFire:
			continue
		case ActionStart, ActionDrag, ActionEnd, ActionUnmount:
		default:
			return errors.TraceInvalid(fmt.Sprintf("step %d has unknown action '%s'", i, step.Action)).
				WithDetail("step", i)
		}
		if !ids[step.Item] {
			return errors.TraceInvalid(fmt.Sprintf("step %d names unknown item '%s'", i, step.Item)).
				WithDetail("step", i)
		}
	}

	return nil
}

func (t *Trace) rankOf(index int) int {
	if r := t.Items[index].Rank; r != nil {
		return *r
	}
	return index
}
