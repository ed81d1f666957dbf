package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/grovetools/tend/pkg/assert"
	"github.com/grovetools/tend/pkg/fs"
	"github.com/grovetools/tend/pkg/harness"
)

const scenarioTrace = `name: drag item-1 down and back
spacing: 10
items:
  - {id: item-1, rank: 1, height: 50}
  - {id: item-2, rank: 0, height: 50}
  - {id: item-3, rank: 2, height: 50}
steps:
  - {item: item-1, action: start, page_y: 100}
  - {item: item-1, action: drag, page_y: 0}
  - {item: item-1, action: drag, page_y: 200}
  - {item: item-1, action: drag, page_y: 50}
  - {item: item-1, action: end}
`

// SimulateScenario replays a trace and checks the swaps and final order.
func SimulateScenario() *harness.Scenario {
	return &harness.Scenario{
		Name:        "reorder-simulate",
		Description: "Replays a recorded drag and reports swaps as JSON.",
		Tags:        []string{"reorder", "simulate"},
		Steps: []harness.Step{
			harness.NewStep("Write trace", func(ctx *harness.Context) error {
				path := filepath.Join(ctx.RootDir, "drag.yml")
				if err := fs.WriteString(path, scenarioTrace); err != nil {
					return fmt.Errorf("failed to write trace: %w", err)
				}
				ctx.Set("trace", path)
				return nil
			}),
			harness.NewStep("Run 'reorder simulate --json'", func(ctx *harness.Context) error {
				bin, err := findReorderBinary()
				if err != nil {
					return err
				}

				cmd := ctx.Command(bin, "simulate", ctx.GetString("trace"), "--json")
				result := cmd.Run()
				ctx.ShowCommandOutput(cmd.String(), result.Stdout, result.Stderr)
				if result.Error != nil {
					return fmt.Errorf("`reorder simulate` failed: %w", result.Error)
				}

				var res struct {
					Swaps int      `json:"swaps"`
					Order []string `json:"order"`
				}
				if err := json.Unmarshal([]byte(result.Stdout), &res); err != nil {
					return fmt.Errorf("failed to parse simulate output: %w", err)
				}
				if err := assert.Equal(2, res.Swaps, "two swaps expected"); err != nil {
					return err
				}
				return assert.Equal("item-2,item-1,item-3", strings.Join(res.Order, ","), "final order")
			}),
		},
	}
}

// SimulateRejectsInvalidTraceScenario checks the exit code and message for a
// trace with a duplicate id.
func SimulateRejectsInvalidTraceScenario() *harness.Scenario {
	return &harness.Scenario{
		Name:        "reorder-simulate-invalid",
		Description: "A malformed trace fails with a readable error.",
		Tags:        []string{"reorder", "simulate"},
		Steps: []harness.Step{
			harness.NewStep("Run 'reorder simulate' on a bad trace", func(ctx *harness.Context) error {
				path := filepath.Join(ctx.RootDir, "bad.yml")
				bad := "items:\n  - {id: a, height: 1}\n  - {id: a, height: 1}\n"
				if err := fs.WriteString(path, bad); err != nil {
					return err
				}

				bin, err := findReorderBinary()
				if err != nil {
					return err
				}
				cmd := ctx.Command(bin, "simulate", path)
				result := cmd.Run()
				ctx.ShowCommandOutput(cmd.String(), result.Stdout, result.Stderr)

				if err := assert.Equal(1, result.ExitCode, "invalid trace should exit 1"); err != nil {
					return err
				}
				return assert.Contains(result.Stderr, "Invalid trace", "error should name the trace")
			}),
		},
	}
}
