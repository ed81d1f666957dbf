package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/grovetools/reorder/config"
	"github.com/grovetools/reorder/errors"
	"github.com/grovetools/reorder/pkg/trace"
	"github.com/grovetools/reorder/tui/components/reorderlist"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

const scenarioTrace = `
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

func TestSimulateJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yml")
	require.NoError(t, os.WriteFile(path, []byte(scenarioTrace), 0644))

	out, err := run(t, "simulate", path, "--json")
	require.NoError(t, err)

	var res trace.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 2, res.Swaps)
	assert.Equal(t, []string{"item-2", "item-1", "item-3"}, res.Order)
}

func TestSimulateText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yml")
	require.NoError(t, os.WriteFile(path, []byte(scenarioTrace), 0644))

	out, err := run(t, "simulate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "swap")
	assert.Contains(t, out, "item-2, item-1, item-3")
	assert.Contains(t, out, "item-2:0 item-3:1 item-1:2")
}

func TestSimulateRequiresFile(t *testing.T) {
	_, err := run(t, "simulate")
	assert.Error(t, err)
}

func TestConfigSchema(t *testing.T) {
	out, err := run(t, "config", "schema")
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Contains(t, doc, "properties")
}

func TestConfigShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reorder.yml")
	require.NoError(t, os.WriteFile(path, []byte("list:\n  spacing: 2\n"), 0644))

	out, err := run(t, "config", "show", "--config", path, "--json")
	require.NoError(t, err)

	var cfg config.Config
	require.NoError(t, json.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, 2.0, cfg.Spacing())
	assert.Equal(t, config.DefaultDragDelay, cfg.List.DragDelay)
}

func TestBuildListConfig(t *testing.T) {
	newFlags := func(args ...string) (*pflag.FlagSet, *tuiOptions) {
		opts := &tuiOptions{}
		fs := pflag.NewFlagSet("tui", pflag.ContinueOnError)
		bindTUIFlags(fs, opts)
		require.NoError(t, fs.Parse(args))
		return fs, opts
	}

	t.Run("demo list with config defaults", func(t *testing.T) {
		fs, opts := newFlags()
		lc, err := buildListConfig(fs, opts, config.Default(), nil)
		require.NoError(t, err)
		assert.Equal(t, reorderlist.DemoEntries(), lc.Entries)
		assert.Equal(t, 1, lc.Spacing)
		assert.Equal(t, 100*time.Millisecond, lc.DragDelay)
	})

	t.Run("item flags and overrides", func(t *testing.T) {
		fs, opts := newFlags("--item", "a", "--item", "b", "--spacing", "0", "--drag-delay", "1s")
		lc, err := buildListConfig(fs, opts, config.Default(), nil)
		require.NoError(t, err)
		require.Len(t, lc.Entries, 2)
		assert.Equal(t, "item-2", lc.Entries[1].ID)
		assert.Equal(t, 0, lc.Spacing)
		assert.Equal(t, time.Second, lc.DragDelay)
	})

	t.Run("list file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "chores.yml")
		require.NoError(t, os.WriteFile(path, []byte("title: Chores\nspacing: 3\nitems:\n  - title: dishes\n"), 0644))

		fs, opts := newFlags()
		lc, err := buildListConfig(fs, opts, config.Default(), []string{path})
		require.NoError(t, err)
		assert.Equal(t, "Chores", lc.Title)
		assert.Equal(t, 3, lc.Spacing)
		assert.Equal(t, "item-1", lc.Entries[0].ID)
	})
}

func TestPrintOrder(t *testing.T) {
	entries := []reorderlist.Entry{{ID: "b", Title: "Bee"}, {ID: "a", Title: "Ant"}}

	var buf bytes.Buffer
	require.NoError(t, printOrder(&buf, entries, true))
	var got struct {
		Order []string `json:"order"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, []string{"b", "a"}, got.Order)

	buf.Reset()
	require.NoError(t, printOrder(&buf, entries, false))
	assert.Contains(t, buf.String(), "Bee")
	assert.Contains(t, buf.String(), "(a)")
}

func TestFormatRanks(t *testing.T) {
	assert.Equal(t, "b:0 a:1", formatRanks(map[string]int{"a": 1, "b": 0}))
	assert.Equal(t, "", formatRanks(nil))
}

func TestLogsPrintsLastLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reorder.log")
	content := "[INFO] [list] one\n[DEBUG] [list] two\n[WARN] [list] three\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	out, err := run(t, "logs", "--file", path, "-n", "2")
	require.NoError(t, err)
	assert.NotContains(t, out, "one")
	assert.Contains(t, out, "two")
	assert.Contains(t, out, "three")

	out, err = run(t, "logs", "--file", path, "-n", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "one")
}

func TestLogsMissingFile(t *testing.T) {
	_, err := run(t, "logs", "--file", filepath.Join(t.TempDir(), "none.log"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeConfigNotFound))
}

func TestColorizeLogLine(t *testing.T) {
	assert.Equal(t, `{"level":"info"}`, colorizeLogLine(`{"level":"info"}`))
	assert.Contains(t, colorizeLogLine("[ERROR] boom"), "boom")
}

func TestSimulateTiming(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yml")
	require.NoError(t, os.WriteFile(path, []byte(scenarioTrace), 0o644))

	out, err := run(t, "simulate", path, "--timing")
	require.NoError(t, err)
	assert.Contains(t, out, "Timing Profile")
	assert.Contains(t, out, "- replay (")
}
