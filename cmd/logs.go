package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/grovetools/reorder/cli"
	"github.com/grovetools/reorder/errors"
	"github.com/grovetools/reorder/logging"
	"github.com/grovetools/reorder/tui/theme"
	"github.com/hpcloud/tail"
	"github.com/spf13/cobra"
)

type logsOptions struct {
	follow bool
	lines  int
	file   string
}

// NewLogsCmd creates the `logs` command.
func NewLogsCmd() *cobra.Command {
	opts := &logsOptions{}
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the reorder log file",
		Long: `Prints the log file configured under logging.file in reorder.yml. The
interactive list owns the terminal, so this is where its drag logs go.`,
		Example: `  # Last 20 lines
  reorder logs -n 20

  # Follow while a list is open in another terminal
  reorder logs -f`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.file
			if path == "" {
				p, ok := logging.FilePath()
				if !ok {
					return errors.ConfigInvalid("logging.file is not enabled")
				}
				path = p
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cli.GetLogger(cmd, "logs").WithField("path", path).Debug("Reading log file")
			return streamLogs(ctx, cmd.OutOrStdout(), path, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.follow, "follow", "f", false, "Follow log output")
	cmd.Flags().IntVarP(&opts.lines, "lines", "n", 50, "Number of lines to show from the end (0 for all)")
	cmd.Flags().StringVar(&opts.file, "file", "", "Log file to read instead of the configured one")

	return cmd
}

// streamLogs prints the last opts.lines lines of path and, when following,
// every line appended after that until ctx is done.
func streamLogs(ctx context.Context, w io.Writer, path string, opts *logsOptions) error {
	if _, err := os.Stat(path); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigNotFound, "log file not readable").
			WithDetail("path", path)
	}

	history, err := tail.TailFile(path, tail.Config{
		MustExist: true,
		Logger:    tail.DiscardingLogger,
	})
	if err != nil {
		return err
	}
	var last []string
	for line := range history.Lines {
		if line.Err != nil {
			continue
		}
		last = append(last, line.Text)
		if opts.lines > 0 && len(last) > opts.lines {
			last = last[1:]
		}
	}
	history.Cleanup()
	for _, text := range last {
		fmt.Fprintln(w, colorizeLogLine(text))
	}

	if !opts.follow {
		return nil
	}

	follower, err := tail.TailFile(path, tail.Config{
		Follow:   true,
		ReOpen:   true,
		Location: &tail.SeekInfo{Offset: 0, Whence: io.SeekEnd},
		Logger:   tail.DiscardingLogger,
	})
	if err != nil {
		return err
	}
	defer follower.Cleanup()

	for {
		select {
		case <-ctx.Done():
			return follower.Stop()
		case line, ok := <-follower.Lines:
			if !ok {
				return follower.Err()
			}
			if line.Err != nil {
				continue
			}
			fmt.Fprintln(w, colorizeLogLine(line.Text))
		}
	}
}

// colorizeLogLine styles a text-formatted line by its level tag. JSON lines
// and lines without a tag pass through.
func colorizeLogLine(line string) string {
	t := theme.DefaultTheme
	switch {
	case strings.Contains(line, "[ERROR]"), strings.Contains(line, "[FATAL]"), strings.Contains(line, "[PANIC]"):
		return t.Error.Render(line)
	case strings.Contains(line, "[WARN]"):
		return t.Warning.Render(line)
	case strings.Contains(line, "[DEBUG]"), strings.Contains(line, "[TRACE]"):
		return t.Muted.Render(line)
	}
	return line
}
