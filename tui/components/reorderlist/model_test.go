package reorderlist

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/grovetools/reorder/errors"
	"github.com/grovetools/reorder/pkg/reorder"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func threeEntries() []Entry {
	return []Entry{
		{ID: "item-1", Title: "first", Removable: true},
		{ID: "item-2", Title: "second", Removable: true},
		{ID: "item-3", Title: "third"},
	}
}

func newTestModel(t *testing.T, cfg Config) (Model, *reorder.ManualScheduler) {
	t.Helper()
	s := &reorder.ManualScheduler{}
	cfg.Scheduler = s
	cfg.Logger = quietLogger()
	if cfg.Width == 0 {
		cfg.Width = 40
	}
	m, err := New(cfg)
	require.NoError(t, err)
	return m, s
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func mouse(m Model, action tea.MouseAction, row int) tea.MouseMsg {
	return tea.MouseMsg{
		X:      5,
		Y:      m.listOrigin() + row,
		Action: action,
		Button: tea.MouseButtonLeft,
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func nextEvent(t *testing.T, m Model) tea.Msg {
	t.Helper()
	select {
	case msg := <-m.events:
		return msg
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
		return nil
	}
}

func TestNewMountsEntries(t *testing.T) {
	m, _ := newTestModel(t, Config{Entries: threeEntries(), Spacing: 1})

	reg := m.Registry()
	assert.Equal(t, []string{"item-1", "item-2", "item-3"}, m.Order())
	assert.Equal(t, "item-1", m.Selected())

	h, ok := reg.Height("item-1")
	require.True(t, ok)
	assert.Equal(t, 3.0, h, "border, one title line, border")

	top, err := reg.Top("item-3")
	require.NoError(t, err)
	assert.Equal(t, 8.0, top)
	assert.Equal(t, 11.0, reg.TotalHeight())
}

func TestNewRejectsDuplicateIDs(t *testing.T) {
	_, err := New(Config{
		Entries: []Entry{{ID: "a"}, {ID: "a"}},
		Logger:  quietLogger(),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func TestMouseDragSwapsPastThreshold(t *testing.T) {
	var notified []map[string]int
	m, s := newTestModel(t, Config{
		Entries:   threeEntries(),
		Spacing:   1,
		OnReorder: func(ranks map[string]int) { notified = append(notified, ranks) },
	})

	m, cmd := update(t, m, mouse(m, tea.MouseActionPress, 1))
	assert.Nil(t, cmd)
	assert.Equal(t, reorder.PhaseSampling, m.items["item-1"].Phase(), "press row calibrates")
	assert.Equal(t, 1, s.Pending())

	// Threshold is 3/2 + 3/2 + 1 = 4; a delta of exactly 4 does not swap.
	m, cmd = update(t, m, mouse(m, tea.MouseActionMotion, 5))
	assert.Nil(t, cmd)
	assert.Equal(t, []string{"item-1", "item-2", "item-3"}, m.Order())

	m, cmd = update(t, m, mouse(m, tea.MouseActionMotion, 6))
	require.NotNil(t, cmd)
	msg, ok := cmd().(OrderChangedMsg)
	require.True(t, ok)
	assert.Equal(t, []string{"item-2", "item-1", "item-3"}, msg.Order)
	assert.Equal(t, map[string]int{"item-1": 1, "item-2": 0, "item-3": 2}, msg.Ranks)
	require.Len(t, notified, 1)

	m, _ = update(t, m, mouse(m, tea.MouseActionRelease, 6))
	assert.Equal(t, "", m.dragID)
	assert.Equal(t, reorder.PhaseIdle, m.items["item-1"].Phase())
	assert.Equal(t, 0, s.Pending(), "release clears the dragging timer")
	_, owned := m.Registry().DragOwner()
	assert.False(t, owned)
}

func TestMousePressOnGapIsIgnored(t *testing.T) {
	m, s := newTestModel(t, Config{Entries: threeEntries(), Spacing: 1})

	m, _ = update(t, m, mouse(m, tea.MouseActionPress, 3))
	assert.Equal(t, "", m.dragID)
	assert.Equal(t, 0, s.Pending())

	m, _ = update(t, m, mouse(m, tea.MouseActionMotion, 20))
	assert.Equal(t, []string{"item-1", "item-2", "item-3"}, m.Order())
}

func TestDraggingStyleAfterDelay(t *testing.T) {
	m, s := newTestModel(t, Config{Entries: threeEntries(), Spacing: 1})

	m, _ = update(t, m, mouse(m, tea.MouseActionPress, 5))
	assert.Equal(t, "item-2", m.dragID)
	assert.NotContains(t, m.View(), "┏")

	assert.Equal(t, 1, s.Fire())
	assert.Equal(t, DraggingMsg{ID: "item-2", Dragging: true}, nextEvent(t, m))
	assert.True(t, m.items["item-2"].Dragging())
	assert.Contains(t, m.View(), "┏", "dragging card uses the thick border")

	m, cmd := update(t, m, DraggingMsg{ID: "item-2", Dragging: true})
	assert.NotNil(t, cmd, "keeps listening for timer events")

	m, _ = update(t, m, mouse(m, tea.MouseActionRelease, 5))
	assert.Equal(t, DraggingMsg{ID: "item-2", Dragging: false}, nextEvent(t, m))
	assert.NotContains(t, m.View(), "┏")
}

func TestKeyboardMove(t *testing.T) {
	m, _ := newTestModel(t, Config{Entries: threeEntries()})

	m, cmd := update(t, m, runes("J"))
	require.NotNil(t, cmd)
	assert.Equal(t, []string{"item-2", "item-1", "item-3"}, cmd().(OrderChangedMsg).Order)
	assert.Equal(t, "item-1", m.Selected(), "selection follows the moved entry")

	m, _ = update(t, m, runes("K"))
	m, cmd = update(t, m, runes("K"))
	assert.Nil(t, cmd, "moving past the top is a no-op")
	assert.Equal(t, []string{"item-1", "item-2", "item-3"}, m.Order())
}

func TestKeyboardSelection(t *testing.T) {
	m, _ := newTestModel(t, Config{Entries: threeEntries()})

	m, _ = update(t, m, runes("k"))
	assert.Equal(t, "item-1", m.Selected())
	m, _ = update(t, m, runes("j"))
	m, _ = update(t, m, runes("j"))
	m, _ = update(t, m, runes("j"))
	assert.Equal(t, "item-3", m.Selected())
}

func TestRemoveEntry(t *testing.T) {
	t.Run("removable entry closes the gap", func(t *testing.T) {
		m, _ := newTestModel(t, Config{Entries: threeEntries(), Spacing: 1})

		m, _ = update(t, m, runes("j"))
		m, cmd := update(t, m, runes("d"))
		require.NotNil(t, cmd)
		msg := cmd().(OrderChangedMsg)
		assert.Equal(t, []string{"item-1", "item-3"}, msg.Order)
		assert.Equal(t, map[string]int{"item-1": 0, "item-3": 1}, msg.Ranks)
		assert.Equal(t, "item-3", m.Selected())
		assert.Len(t, m.Entries(), 2)
	})

	t.Run("pinned entry stays", func(t *testing.T) {
		m, _ := newTestModel(t, Config{Entries: threeEntries()})

		m, _ = update(t, m, runes("j"))
		m, _ = update(t, m, runes("j"))
		m, cmd := update(t, m, runes("x"))
		assert.Nil(t, cmd)
		assert.Contains(t, m.status, "pinned")
		assert.Equal(t, 3, m.Registry().Len())
	})
}

func TestQuitEndsDrag(t *testing.T) {
	m, s := newTestModel(t, Config{Entries: threeEntries()})

	m, _ = update(t, m, mouse(m, tea.MouseActionPress, 1))
	m, cmd := update(t, m, runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, m.Quitting())
	assert.Equal(t, 0, s.Pending())
	_, owned := m.Registry().DragOwner()
	assert.False(t, owned)
	assert.Equal(t, "", m.View())
}

func TestViewShowsPositions(t *testing.T) {
	m, _ := newTestModel(t, Config{Title: "Chores", Entries: threeEntries()})

	view := m.View()
	assert.Contains(t, view, "Chores")
	assert.Contains(t, view, "1.")
	assert.Contains(t, view, "3.")
	assert.Contains(t, view, "third")
}

func TestLoadEntries(t *testing.T) {
	dir := t.TempDir()

	t.Run("yaml", func(t *testing.T) {
		path := filepath.Join(dir, "list.yml")
		require.NoError(t, os.WriteFile(path, []byte(`
title: Groceries
items:
  - id: milk
    title: Milk
    removable: true
  - title: Bread
`), 0644))

		lf, err := LoadEntries(path)
		require.NoError(t, err)
		assert.Equal(t, "Groceries", lf.Title)
		assert.Equal(t, []Entry{
			{ID: "milk", Title: "Milk", Removable: true},
			{ID: "item-2", Title: "Bread"},
		}, lf.Items)
	})

	t.Run("toml", func(t *testing.T) {
		path := filepath.Join(dir, "list.toml")
		require.NoError(t, os.WriteFile(path, []byte(`
title = "Chores"
spacing = 0

[[items]]
id = "dishes"
title = "Dishes"
`), 0644))

		lf, err := LoadEntries(path)
		require.NoError(t, err)
		require.NotNil(t, lf.Spacing)
		assert.Equal(t, 0, *lf.Spacing)
		assert.Equal(t, "dishes", lf.Items[0].ID)
	})

	t.Run("plain text", func(t *testing.T) {
		path := filepath.Join(dir, "todo.txt")
		require.NoError(t, os.WriteFile(path, []byte("one\n\n  two  \n"), 0644))

		lf, err := LoadEntries(path)
		require.NoError(t, err)
		assert.Equal(t, []Entry{
			{ID: "item-1", Title: "one", Removable: true},
			{ID: "item-2", Title: "two", Removable: true},
		}, lf.Items)
	})

	t.Run("duplicate ids", func(t *testing.T) {
		path := filepath.Join(dir, "dup.yml")
		require.NoError(t, os.WriteFile(path, []byte("items:\n  - id: a\n  - id: a\n"), 0644))

		_, err := LoadEntries(path)
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
	})
}
