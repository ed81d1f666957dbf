package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/grovetools/reorder/cli"
	"github.com/grovetools/reorder/config"
	"github.com/grovetools/reorder/tui"
	"github.com/grovetools/reorder/tui/components/reorderlist"
	"github.com/grovetools/reorder/tui/theme"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type tuiOptions struct {
	spacing   int
	dragDelay time.Duration
	title     string
	items     []string
}

func bindTUIFlags(fs *pflag.FlagSet, o *tuiOptions) {
	fs.IntVar(&o.spacing, "spacing", 0, "Blank rows between entries (overrides list.spacing)")
	fs.DurationVar(&o.dragDelay, "drag-delay", 0, "Delay before a pressed entry is styled as dragging (overrides list.drag_delay)")
	fs.StringVar(&o.title, "title", "", "List title")
	fs.StringArrayVar(&o.items, "item", nil, "Add an entry with this title (repeatable)")
}

// NewTUICmd creates the interactive list command.
func NewTUICmd() *cobra.Command {
	opts := &tuiOptions{}
	cmd := &cobra.Command{
		Use:   "tui [list-file]",
		Short: "Reorder a list interactively",
		Long: `Opens the list in the terminal. Press an entry with the mouse and drag it
past its neighbor to swap them, or select with j/k and move with K/J. The
final order is printed on exit.

List files are YAML or TOML with a title and items; any other file is read
as one entry per line.`,
		Example: `# Reorder the demo list
reorder tui

# Reorder a checklist, print the result as JSON
reorder tui chores.yml --json

# Build a list from flags
reorder tui --item "write" --item "review" --item "ship"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cli.LoadConfig(cmd)
			if err != nil {
				return err
			}
			logger := cli.GetLogger(cmd, "tui")

			listCfg, err := buildListConfig(cmd.Flags(), opts, cfg, args)
			if err != nil {
				return err
			}
			listCfg.Logger = logger

			model, err := reorderlist.New(listCfg)
			if err != nil {
				return err
			}

			tui.InitializeTUI()
			program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
			final, err := program.Run()
			if err != nil {
				return fmt.Errorf("error running list: %w", err)
			}

			result, ok := final.(reorderlist.Model)
			if !ok {
				return fmt.Errorf("unexpected model type %T", final)
			}
			logger.WithField("entries", len(result.Entries())).Debug("List closed")
			return printOrder(cmd.OutOrStdout(), result.Entries(), cli.GetOptions(cmd).JSONOutput)
		},
	}
	bindTUIFlags(cmd.Flags(), opts)
	return cmd
}

// buildListConfig resolves entries and layout. Flags win over the list
// file, which wins over reorder.yml.
func buildListConfig(fs *pflag.FlagSet, opts *tuiOptions, cfg *config.Config, args []string) (reorderlist.Config, error) {
	listCfg := reorderlist.Config{
		Title:     opts.title,
		Spacing:   int(math.Round(cfg.Spacing())),
		DragDelay: cfg.DragDelay(),
		ShowHelp:  cfg.TUI.ShowHelp,
	}

	switch {
	case len(args) == 1:
		lf, err := reorderlist.LoadEntries(args[0])
		if err != nil {
			return listCfg, err
		}
		listCfg.Entries = lf.Items
		if listCfg.Title == "" {
			listCfg.Title = lf.Title
		}
		if lf.Spacing != nil {
			listCfg.Spacing = *lf.Spacing
		}
	case len(opts.items) > 0:
		for i, title := range opts.items {
			listCfg.Entries = append(listCfg.Entries, reorderlist.Entry{
				ID:        fmt.Sprintf("item-%d", i+1),
				Title:     title,
				Removable: true,
			})
		}
	default:
		listCfg.Entries = reorderlist.DemoEntries()
	}

	if fs.Changed("spacing") {
		listCfg.Spacing = opts.spacing
	}
	if fs.Changed("drag-delay") {
		listCfg.DragDelay = opts.dragDelay
	}
	return listCfg, nil
}

func printOrder(w io.Writer, entries []reorderlist.Entry, asJSON bool) error {
	if asJSON {
		order := make([]string, 0, len(entries))
		for _, e := range entries {
			order = append(order, e.ID)
		}
		data, err := json.MarshalIndent(struct {
			Order   []string            `json:"order"`
			Entries []reorderlist.Entry `json:"entries"`
		}{order, entries}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))
		return nil
	}

	t := theme.DefaultTheme
	for i, e := range entries {
		fmt.Fprintf(w, "%s %s %s\n",
			t.Position.Render(fmt.Sprintf("%d.", i+1)),
			e.Title,
			t.Muted.Render("("+e.ID+")"))
	}
	return nil
}
