package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/grovetools/tend/pkg/assert"
	"github.com/grovetools/tend/pkg/fs"
	"github.com/grovetools/tend/pkg/harness"
)

// ConfigSchemaScenario checks that the emitted schema is valid JSON and
// describes the list section.
func ConfigSchemaScenario() *harness.Scenario {
	return &harness.Scenario{
		Name:        "reorder-config-schema",
		Description: "Prints the reorder.yml JSON schema.",
		Tags:        []string{"reorder", "config"},
		Steps: []harness.Step{
			harness.NewStep("Run 'reorder config schema'", func(ctx *harness.Context) error {
				bin, err := findReorderBinary()
				if err != nil {
					return err
				}

				cmd := ctx.Command(bin, "config", "schema")
				result := cmd.Run()
				ctx.ShowCommandOutput(cmd.String(), result.Stdout, result.Stderr)
				if result.Error != nil {
					return fmt.Errorf("`reorder config schema` failed: %w", result.Error)
				}

				var schema map[string]interface{}
				if err := json.Unmarshal([]byte(result.Stdout), &schema); err != nil {
					return fmt.Errorf("schema is not valid JSON: %w", err)
				}
				return assert.Contains(result.Stdout, `"spacing"`, "schema should describe list.spacing")
			}),
		},
	}
}

// ConfigShowScenario verifies that a project reorder.yml is discovered from a
// subdirectory and merged with defaults.
func ConfigShowScenario() *harness.Scenario {
	return &harness.Scenario{
		Name:        "reorder-config-show",
		Description: "Discovers reorder.yml by walking up from a nested directory.",
		Tags:        []string{"reorder", "config"},
		Steps: []harness.Step{
			harness.NewStep("Write project config", func(ctx *harness.Context) error {
				projectDir := filepath.Join(ctx.RootDir, "project")
				nested := filepath.Join(projectDir, "docs", "notes")
				if err := fs.CreateDir(nested); err != nil {
					return err
				}

				configYAML := `version: "1.0"
list:
  spacing: 2
tui:
  theme: gruvbox
`
				if err := fs.WriteString(filepath.Join(projectDir, "reorder.yml"), configYAML); err != nil {
					return err
				}
				ctx.Set("nested", nested)
				return nil
			}),
			harness.NewStep("Run 'reorder config show' in the nested directory", func(ctx *harness.Context) error {
				bin, err := findReorderBinary()
				if err != nil {
					return err
				}

				cmd := ctx.Command(bin, "config", "show").Dir(ctx.GetString("nested"))
				result := cmd.Run()
				ctx.ShowCommandOutput(cmd.String(), result.Stdout, result.Stderr)
				if result.Error != nil {
					return fmt.Errorf("`reorder config show` failed: %w", result.Error)
				}

				if err := assert.Contains(result.Stdout, "spacing: 2", "project spacing should be used"); err != nil {
					return err
				}
				if err := assert.Contains(result.Stdout, "theme: gruvbox", "project theme should be used"); err != nil {
					return err
				}
				return assert.Contains(result.Stdout, "drag_delay:", "defaults should fill drag_delay")
			}),
		},
	}
}
