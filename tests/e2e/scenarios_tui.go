package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/grovetools/tend/pkg/fs"
	"github.com/grovetools/tend/pkg/harness"
	"github.com/grovetools/tend/pkg/tui"
)

// ListKeyboardReorderScenario moves the first entry down with the keyboard
// and checks the order printed on exit.
func ListKeyboardReorderScenario() *harness.Scenario {
	return &harness.Scenario{
		Name:        "reorder-tui-keyboard",
		Description: "Moves an entry with J and prints the new order.",
		Tags:        []string{"reorder", "tui"},
		LocalOnly:   true, // TUI tests require tmux
		Steps: []harness.Step{
			harness.NewStep("Write list file", func(ctx *harness.Context) error {
				return fs.WriteString(filepath.Join(ctx.RootDir, "list.txt"), "Alpha\nBravo\nCharlie\n")
			}),
			harness.NewStep("Launch list", func(ctx *harness.Context) error {
				bin, err := findReorderBinary()
				if err != nil {
					return err
				}
				session, err := ctx.StartTUI(bin, []string{"tui", "list.txt"})
				if err != nil {
					return fmt.Errorf("failed to start TUI: %w", err)
				}
				ctx.Set("tui_session", session)
				return nil
			}),
			harness.NewStep("Move Alpha below Bravo", func(ctx *harness.Context) error {
				session := ctx.Get("tui_session").(*tui.Session)

				if err := session.WaitForText("Charlie", 10*time.Second); err != nil {
					content, _ := session.Capture()
					return fmt.Errorf("list did not render: %w\nContent: %s", err, content)
				}
				if err := session.SendKeys("J"); err != nil {
					return err
				}
				if err := session.WaitStable(); err != nil {
					return err
				}
				if err := session.SendKeys("q"); err != nil {
					return err
				}
				if err := session.WaitForText("1. Bravo", 5*time.Second); err != nil {
					content, _ := session.Capture()
					return fmt.Errorf("final order not printed: %w\nContent: %s", err, content)
				}
				return session.AssertContains("2. Alpha")
			}),
		},
	}
}

// ListPinnedEntryScenario tries to remove an entry that is not removable.
func ListPinnedEntryScenario() *harness.Scenario {
	return &harness.Scenario{
		Name:        "reorder-tui-pinned",
		Description: "Pinned entries survive a remove key press.",
		Tags:        []string{"reorder", "tui"},
		LocalOnly:   true, // TUI tests require tmux
		Steps: []harness.Step{
			harness.NewStep("Write list file", func(ctx *harness.Context) error {
				listYAML := `title: Release
items:
  - {id: freeze, title: Code freeze}
  - {id: notes, title: Release notes, removable: true}
`
				return fs.WriteString(filepath.Join(ctx.RootDir, "release.yml"), listYAML)
			}),
			harness.NewStep("Press d on the pinned entry", func(ctx *harness.Context) error {
				bin, err := findReorderBinary()
				if err != nil {
					return err
				}
				session, err := ctx.StartTUI(bin, []string{"tui", "release.yml"})
				if err != nil {
					return fmt.Errorf("failed to start TUI: %w", err)
				}

				if err := session.WaitForText("Code freeze", 10*time.Second); err != nil {
					content, _ := session.Capture()
					return fmt.Errorf("list did not render: %w\nContent: %s", err, content)
				}
				if err := session.SendKeys("d"); err != nil {
					return err
				}
				if err := session.WaitForText("pinned", 2*time.Second); err != nil {
					content, _ := session.Capture()
					return fmt.Errorf("pinned status not shown: %w\nContent: %s", err, content)
				}
				return session.AssertContains("Code freeze")
			}),
		},
	}
}
