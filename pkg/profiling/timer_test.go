package profiling

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock advances by step on every reading.
func fakeClock(step time.Duration) func() time.Time {
	now := time.Unix(0, 0)
	return func() time.Time {
		now = now.Add(step)
		return now
	}
}

func TestTimerDisabled(t *testing.T) {
	var timer Timer
	timer.Start("load").Stop()

	var buf bytes.Buffer
	timer.Summarize(&buf)
	assert.Empty(t, buf.String())
}

func TestTimerNestsSpans(t *testing.T) {
	timer := &Timer{now: fakeClock(time.Millisecond)}
	timer.Enable()

	outer := timer.Start("simulate")
	timer.Start("load").Stop()
	timer.Start("replay").Stop()
	outer.Stop()
	outer.Stop()

	var buf bytes.Buffer
	timer.Summarize(&buf)
	out := buf.String()

	assert.Contains(t, out, "- simulate (5ms")
	assert.Contains(t, out, "  - load (1ms")
	assert.Contains(t, out, "  - replay (1ms")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("load")), bytes.Index(buf.Bytes(), []byte("replay")))
}

func TestAttachWritesProfiles(t *testing.T) {
	dir := t.TempDir()
	l := logrus.New()
	l.SetOutput(&bytes.Buffer{})

	root := &cobra.Command{Use: "root", RunE: func(*cobra.Command, []string) error { return nil }}
	Attach(root, logrus.NewEntry(l))

	var stderr bytes.Buffer
	root.SetErr(&stderr)
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{
		"--cpu-profile", filepath.Join(dir, "cpu.out"),
		"--mem-profile", filepath.Join(dir, "mem.out"),
	})
	require.NoError(t, root.Execute())

	assert.FileExists(t, filepath.Join(dir, "cpu.out"))
	assert.FileExists(t, filepath.Join(dir, "mem.out"))
}
