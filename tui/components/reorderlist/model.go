// Package reorderlist is a bubbletea list whose entries can be reordered by
// dragging them with the mouse or moving them with the keyboard.
package reorderlist

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/grovetools/reorder/logging"
	"github.com/grovetools/reorder/pkg/reorder"
	"github.com/sirupsen/logrus"
)

const defaultWidth = 60

// Entry is one list entry.
type Entry struct {
	ID        string `yaml:"id" toml:"id" json:"id"`
	Title     string `yaml:"title" toml:"title" json:"title"`
	Body      string `yaml:"body,omitempty" toml:"body,omitempty" json:"body,omitempty"`
	Removable bool   `yaml:"removable,omitempty" toml:"removable,omitempty" json:"removable,omitempty"`
}

// Config defines the configuration for the list.
type Config struct {
	Title   string
	Entries []Entry
	// Spacing is the number of blank rows between entries.
	Spacing int
	// DragDelay is how long a press lasts before the entry is styled as dragging.
	DragDelay time.Duration
	// Width of the entry cards. Heights are measured at this width once.
	Width    int
	ShowHelp bool

	// OnReorder is called with the new ranks after every swap or removal.
	OnReorder func(ranks map[string]int)

	// Scheduler runs the dragging timers. Defaults to wall-clock timers.
	Scheduler reorder.Scheduler
	Logger    *logrus.Entry
}

// Model is the reorderable list component model
type Model struct {
	title     string
	cardWidth int
	registry  *reorder.Registry
	items     map[string]*reorder.Item
	entries   map[string]Entry
	selected  string

	// Mouse drag in progress. grab is the row within the card that was
	// pressed; pointerY is the latest pointer row relative to the list.
	dragID   string
	grab     int
	pointerY int

	changes *changeLog
	events  chan tea.Msg

	keys     KeyMap
	help     help.Model
	width    int
	height   int
	status   string
	quitting bool
	logger   *logrus.Entry
}

// changeLog keeps the latest rank snapshot reported by the registry until
// the next update turns it into an OrderChangedMsg.
type changeLog struct {
	mu     sync.Mutex
	latest map[string]int
}

func (c *changeLog) record(ranks map[string]int) {
	c.mu.Lock()
	c.latest = ranks
	c.mu.Unlock()
}

func (c *changeLog) take() (map[string]int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ranks := c.latest
	c.latest = nil
	return ranks, ranks != nil
}

// New creates a list model and mounts every entry in the given order.
func New(cfg Config) (Model, error) {
	if err := validateEntries(cfg.Entries); err != nil {
		return Model{}, err
	}

	width := cfg.Width
	if width <= 0 {
		width = defaultWidth
	}
	spacing := cfg.Spacing
	if spacing < 0 {
		spacing = 0
	}
	delay := cfg.DragDelay
	if delay <= 0 {
		delay = reorder.DefaultDragDelay
	}
	scheduler := cfg.Scheduler
	if scheduler == nil {
		scheduler = reorder.SystemScheduler{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewLogger("reorderlist")
	}

	changes := &changeLog{}
	registry := reorder.NewRegistry(
		reorder.WithSpacing(float64(spacing)),
		reorder.WithLogger(logger),
		reorder.WithOnReorder(func(ranks map[string]int) {
			changes.record(ranks)
			if cfg.OnReorder != nil {
				cfg.OnReorder(ranks)
			}
		}),
	)

	events := make(chan tea.Msg, 16)
	hook := func(itemID string, dragging bool) {
		select {
		case events <- DraggingMsg{ID: itemID, Dragging: dragging}:
		default:
			// View reads Dragging() directly; a dropped message only delays a repaint.
		}
	}

	helpModel := help.New()
	helpModel.ShowAll = cfg.ShowHelp

	m := Model{
		title:     cfg.Title,
		cardWidth: width,
		registry:  registry,
		items:     make(map[string]*reorder.Item, len(cfg.Entries)),
		entries:   make(map[string]Entry, len(cfg.Entries)),
		changes:   changes,
		events:    events,
		keys:      DefaultKeyMap,
		help:      helpModel,
		width:     width,
		logger:    logger,
	}
	if m.title == "" {
		m.title = "Reorder"
	}

	for i, e := range cfg.Entries {
		item := reorder.NewItem(registry, e.ID, i,
			reorder.WithRemovable(e.Removable),
			reorder.WithScheduler(scheduler),
			reorder.WithDragDelay(delay),
			reorder.WithItemLogger(logger),
			reorder.WithDraggingHook(hook),
		)
		m.items[e.ID] = item
		m.entries[e.ID] = e
		item.Mount(float64(lipgloss.Height(m.renderCard(e, i+1, cardIdle))))
	}
	if len(cfg.Entries) > 0 {
		m.selected = cfg.Entries[0].ID
	}

	return m, nil
}

// Init starts listening for dragging timer events.
func (m Model) Init() tea.Cmd {
	return listen(m.events)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case DraggingMsg:
		// Repaint happens on return; keep listening.
		return m, listen(m.events)

	case OrderChangedMsg:
		return m, nil

	case tea.MouseMsg:
		m = m.handleMouse(msg)
		return m, m.flushChanges()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) Model {
	y := msg.Y - m.listOrigin()

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || m.dragID != "" {
			return m
		}
		id, top, ok := m.hitTest(y)
		if !ok {
			return m
		}
		m.status = ""
		item := m.items[id]
		if err := item.DragStart(pointerAt(y)); err != nil {
			m.status = err.Error()
			return m
		}
		m.dragID = id
		m.grab = y - top
		m.pointerY = y
		m.selected = id
		// The press row is the first sample and calibrates the baseline.
		if _, err := item.Drag(pointerAt(y)); err != nil {
			m.status = err.Error()
		}

	case tea.MouseActionMotion:
		if m.dragID == "" {
			return m
		}
		m.pointerY = y
		if _, err := m.items[m.dragID].Drag(pointerAt(y)); err != nil {
			m.status = err.Error()
		}

	case tea.MouseActionRelease:
		if m.dragID == "" {
			return m
		}
		m.items[m.dragID].DragEnd(pointerAt(y))
		m.logger.WithField("item", m.dragID).Debug("Mouse drag finished")
		m.dragID = ""
	}

	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.dragID != "" {
			m.items[m.dragID].DragEnd(pointerAt(m.pointerY))
			m.dragID = ""
		}
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-1)

	case key.Matches(msg, m.keys.Down):
		m.moveSelection(1)

	case key.Matches(msg, m.keys.MoveUp):
		m.moveSelected(-1)

	case key.Matches(msg, m.keys.MoveDown):
		m.moveSelected(1)

	case key.Matches(msg, m.keys.Remove):
		m.removeSelected()
	}

	return m, m.flushChanges()
}

func (m *Model) moveSelection(offset int) {
	rank, ok := m.registry.Rank(m.selected)
	if !ok {
		return
	}
	if id, ok := m.registry.IDAt(rank + offset); ok {
		m.selected = id
	}
}

// moveSelected swaps the selected entry with its neighbor. Ignored while a
// mouse drag is in progress.
func (m *Model) moveSelected(offset int) {
	if m.dragID != "" {
		return
	}
	rank, ok := m.registry.Rank(m.selected)
	if !ok {
		return
	}
	neighbor, ok := m.registry.IDAt(rank + offset)
	if !ok {
		return
	}
	if err := m.registry.SwapItems(m.selected, neighbor); err != nil {
		m.status = err.Error()
	}
}

func (m *Model) removeSelected() {
	if m.dragID != "" {
		return
	}
	entry, ok := m.entries[m.selected]
	if !ok {
		return
	}
	if !entry.Removable {
		m.status = fmt.Sprintf("%q is pinned and cannot be removed", entry.Title)
		return
	}
	rank, _ := m.registry.Rank(entry.ID)
	if err := m.items[entry.ID].Unmount(); err != nil {
		m.status = err.Error()
		return
	}
	delete(m.items, entry.ID)
	delete(m.entries, entry.ID)

	m.selected = ""
	if id, ok := m.registry.IDAt(rank); ok {
		m.selected = id
	} else if id, ok := m.registry.IDAt(rank - 1); ok {
		m.selected = id
	}
	m.logger.WithField("item", entry.ID).Info("Removed entry")
}

func (m Model) flushChanges() tea.Cmd {
	ranks, ok := m.changes.take()
	if !ok {
		return nil
	}
	return orderChangedCmd(ranks, m.registry.Order())
}

// hitTest returns the entry whose card covers list row y.
func (m Model) hitTest(y int) (string, int, bool) {
	row := float64(y)
	for _, id := range m.registry.Order() {
		if _, ok := m.items[id]; !ok {
			continue
		}
		top, err := m.registry.Top(id)
		if err != nil {
			continue
		}
		height, _ := m.registry.Height(id)
		if row >= top && row < top+height {
			return id, int(top), true
		}
	}
	return "", 0, false
}

func pointerAt(y int) reorder.PointerEvent {
	return reorder.PointerEvent{PageY: float64(y), ClientY: float64(y)}
}

// Order returns the entry ids in display order.
func (m Model) Order() []string {
	return m.registry.Order()
}

// Entries returns the remaining entries in display order.
func (m Model) Entries() []Entry {
	order := m.registry.Order()
	entries := make([]Entry, 0, len(order))
	for _, id := range order {
		if e, ok := m.entries[id]; ok {
			entries = append(entries, e)
		}
	}
	return entries
}

// Registry exposes the rank registry backing the list.
func (m Model) Registry() *reorder.Registry {
	return m.registry
}

// Selected returns the id of the selected entry.
func (m Model) Selected() string {
	return m.selected
}

// Quitting reports whether the user asked to quit.
func (m Model) Quitting() bool {
	return m.quitting
}
