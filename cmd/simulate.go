package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	"github.com/grovetools/reorder/cli"
	"github.com/grovetools/reorder/pkg/profiling"
	"github.com/grovetools/reorder/pkg/trace"
	"github.com/grovetools/reorder/pkg/watch"
	"github.com/grovetools/reorder/tui/components"
	"github.com/grovetools/reorder/tui/theme"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type simulateOptions struct {
	watch    bool
	debounce time.Duration
}

func bindSimulateFlags(fs *pflag.FlagSet, o *simulateOptions) {
	fs.BoolVarP(&o.watch, "watch", "w", false, "Replay again whenever the trace file changes")
	fs.DurationVar(&o.debounce, "debounce", watch.DefaultDebounce, "Quiet period after a write before replaying")
}

// NewSimulateCmd creates the trace replay command.
func NewSimulateCmd() *cobra.Command {
	opts := &simulateOptions{}
	cmd := &cobra.Command{
		Use:   "simulate <trace-file>",
		Short: "Replay a recorded drag trace",
		Long: `Mounts the trace's items on a fresh list, applies its pointer steps in
order and prints every swap, removal and dragging change with the final order.`,
		Example: `# Replay a trace
reorder simulate testdata/scenario.yml

# Replay on every save, as JSON
reorder simulate scenario.yml --watch --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := cli.GetLogger(cmd, "simulate")
			asJSON := cli.GetOptions(cmd).JSONOutput
			out := cmd.OutOrStdout()
			path := args[0]

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			if !opts.watch {
				return simulateOnce(ctx, out, path, asJSON, logger)
			}

			if err := simulateOnce(ctx, out, path, asJSON, logger); err != nil {
				cli.NewErrorHandler(false, cmd.ErrOrStderr()).Handle(err)
			}

			w, err := watch.NewFileWatcher(path, opts.debounce, func(string) {
				fmt.Fprintln(out, theme.DefaultTheme.Muted.Render(fmt.Sprintf("--- %s changed, replaying", path)))
				if err := simulateOnce(ctx, out, path, asJSON, logger); err != nil {
					cli.NewErrorHandler(false, cmd.ErrOrStderr()).Handle(err)
				}
			})
			if err != nil {
				return err
			}
			defer w.Close()

			logger.Infof("Watching %s", path)
			w.Start(ctx)
			return nil
		},
	}
	bindSimulateFlags(cmd.Flags(), opts)
	return cmd
}

func simulateOnce(ctx context.Context, out io.Writer, path string, asJSON bool, logger *logrus.Entry) error {
	defer profiling.Start("simulate " + path).Stop()

	load := profiling.Start("load")
	t, err := trace.Load(path)
	load.Stop()
	if err != nil {
		return err
	}

	replay := profiling.Start("replay")
	res, err := trace.Replay(ctx, t, trace.Options{Logger: logger})
	replay.Stop()
	if err != nil {
		return err
	}

	if asJSON {
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	printResult(out, res)
	return nil
}

func printResult(out io.Writer, res *trace.Result) {
	th := theme.DefaultTheme

	if res.Name != "" {
		fmt.Fprintln(out, th.Header.Render(res.Name))
	}

	if len(res.Events) == 0 {
		fmt.Fprintln(out, th.Muted.Render("No swaps or removals."))
	} else {
		rows := make([][]string, 0, len(res.Events))
		for _, ev := range res.Events {
			detail := ev.B
			if ev.Error != "" {
				detail = ev.Error
			}
			rows = append(rows, []string{
				fmt.Sprintf("%d", ev.Step),
				string(ev.Kind),
				ev.A,
				detail,
				formatRanks(ev.Ranks),
			})
		}

		tbl := ltable.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(th.Colors.Border)).
			Headers("STEP", "EVENT", "ITEM", "WITH", "RANKS").
			Rows(rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == ltable.HeaderRow {
					return th.Bold.Padding(0, 1)
				}
				return lipgloss.NewStyle().Padding(0, 1)
			})
		fmt.Fprintln(out, tbl.Render())
	}

	fmt.Fprintf(out, "%s %s\n", th.Accent.Render("Order:"), strings.Join(res.Order, ", "))
	fmt.Fprintln(out, components.RenderKeyValues("Swaps", res.Swaps, "Total height", res.TotalHeight))
}

// formatRanks renders ranks in rank order, e.g. "b:0 a:1".
func formatRanks(ranks map[string]int) string {
	if len(ranks) == 0 {
		return ""
	}
	ids := make([]string, 0, len(ranks))
	for id := range ranks {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if ranks[ids[i]] != ranks[ids[j]] {
			return ranks[ids[i]] < ranks[ids[j]]
		}
		return ids[i] < ids[j]
	})
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%s:%d", id, ranks[id])
	}
	return strings.Join(parts, " ")
}
