// Package cmd holds the reorder subcommands.
package cmd

import (
	"github.com/grovetools/reorder/cli"
	"github.com/grovetools/reorder/logging"
	"github.com/grovetools/reorder/pkg/profiling"
	"github.com/grovetools/reorder/version"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the reorder command tree.
func NewRootCmd() *cobra.Command {
	root := cli.NewStandardCommand(
		"reorder",
		"Reorder lists by dragging entries in the terminal",
	)
	root.Long = `reorder runs an interactive list whose entries can be dragged into a new
order with the mouse, and replays recorded drag traces headlessly.`
	cli.SetVersionTemplate(root, version.GetInfo())
	profiling.Attach(root, logging.NewLogger("profiling"))

	root.AddCommand(NewTUICmd())
	root.AddCommand(NewSimulateCmd())
	root.AddCommand(NewConfigCmd())
	root.AddCommand(NewLogsCmd())
	root.AddCommand(cli.NewVersionCommand("reorder"))

	return root
}
