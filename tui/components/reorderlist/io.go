package reorderlist

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/grovetools/reorder/errors"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// OrderChangedMsg is emitted after every registry change with the new ranks
// and the ids in display order.
type OrderChangedMsg struct {
	Ranks map[string]int
	Order []string
}

// DraggingMsg is sent when an item enters or leaves the dragging style.
type DraggingMsg struct {
	ID       string
	Dragging bool
}

// listen waits for the next message produced outside the bubbletea loop,
// such as dragging timers firing.
func listen(events <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-events
	}
}

// orderChangedCmd wraps a rank snapshot as a command.
func orderChangedCmd(ranks map[string]int, order []string) tea.Cmd {
	return func() tea.Msg {
		return OrderChangedMsg{Ranks: ranks, Order: order}
	}
}

// ListFile is the on-disk form of a list: YAML or TOML with a title and entries.
type ListFile struct {
	Title   string  `yaml:"title" toml:"title"`
	Spacing *int    `yaml:"spacing,omitempty" toml:"spacing,omitempty"`
	Items   []Entry `yaml:"items" toml:"items"`
}

// LoadEntries reads a list file. .yml, .yaml and .toml files are decoded as
// a ListFile; any other file is read as one entry per non-blank line.
// Entries without an id get "item-N" from their position.
func LoadEntries(path string) (*ListFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, "failed to read list file").
			WithDetail("path", path)
	}

	var lf ListFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		if err := yaml.Unmarshal(data, &lf); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, "failed to parse list file").
				WithDetail("path", path)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &lf); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, "failed to parse list file").
				WithDetail("path", path)
		}
	default:
		lf.Title = filepath.Base(path)
		scanner := bufio.NewScanner(bytes.NewReader(data))
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			lf.Items = append(lf.Items, Entry{Title: line, Removable: true})
		}
		if err := scanner.Err(); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, "failed to read list file")
		}
	}

	for i := range lf.Items {
		if lf.Items[i].ID == "" {
			lf.Items[i].ID = fmt.Sprintf("item-%d", i+1)
		}
	}
	if err := validateEntries(lf.Items); err != nil {
		return nil, err
	}
	return &lf, nil
}

// DemoEntries is the list shown when no list file is given.
func DemoEntries() []Entry {
	return []Entry{
		{ID: "item-1", Title: "Write the proposal", Body: "Two pages, due Friday", Removable: true},
		{ID: "item-2", Title: "Review pull requests", Removable: true},
		{ID: "item-3", Title: "Plan the sprint", Body: "Carry over the flaky test fixes\nGroom the backlog", Removable: true},
		{ID: "item-4", Title: "Reply to support", Removable: true},
		{ID: "item-5", Title: "Pinned: standup notes", Body: "Cannot be removed"},
	}
}

func validateEntries(entries []Entry) error {
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.ID == "" {
			return errors.New(errors.ErrCodeInvalidInput, "entry id must not be empty")
		}
		if seen[e.ID] {
			return errors.New(errors.ErrCodeInvalidInput, fmt.Sprintf("duplicate entry id '%s'", e.ID)).
				WithDetail("item", e.ID)
		}
		seen[e.ID] = true
	}
	return nil
}
