package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileWatcherDebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trace.yml")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0644))

	var calls int32
	changed := make(chan string, 4)
	w, err := NewFileWatcher(path, 50*time.Millisecond, func(p string) {
		atomic.AddInt32(&calls, 1)
		changed <- p
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte{byte('b' + i)}, 0644))
	}

	select {
	case p := <-changed:
		want, _ := filepath.Abs(path)
		assert.Equal(t, want, p)
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported")
	}

	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestFileWatcherIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trace.yml")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0644))

	changed := make(chan string, 1)
	w, err := NewFileWatcher(path, 10*time.Millisecond, func(p string) { changed <- p })
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yml"), []byte("x"), 0644))

	select {
	case p := <-changed:
		t.Fatalf("unexpected change for %s", p)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestNewFileWatcherMissingDir(t *testing.T) {
	_, err := NewFileWatcher(filepath.Join(t.TempDir(), "nope", "trace.yml"), 0, nil)
	assert.Error(t, err)
}
