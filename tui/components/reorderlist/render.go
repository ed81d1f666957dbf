package reorderlist

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/grovetools/reorder/tui/components"
	"github.com/grovetools/reorder/tui/theme"
)

type cardState int

const (
	cardIdle cardState = iota
	cardSelected
	cardDragging
)

// View renders the list.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	footer := components.RenderFooter(
		components.RenderStatusBar(m.help.ShortHelpView(m.keys.ShortHelp()), m.statusView(), m.width),
		m.width,
	)
	if m.help.ShowAll {
		footer = lipgloss.JoinVertical(lipgloss.Left, footer, m.help.FullHelpView(m.keys.FullHelp()))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.headerView(),
		"",
		m.canvasView(),
		footer,
	)
}

func (m Model) headerView() string {
	return components.RenderHeader(m.title,
		fmt.Sprintf("%d entries, drag with the mouse or press K/J", m.registry.Len()))
}

// listOrigin is the terminal row of the first list row.
func (m Model) listOrigin() int {
	return lipgloss.Height(m.headerView()) + 1
}

// canvasView paints every card at its Top offset. The card being dragged
// follows the pointer and is painted last.
func (m Model) canvasView() string {
	rows := int(math.Ceil(m.registry.TotalHeight()))
	if rows < 0 {
		rows = 0
	}
	lines := make([]string, rows)

	for _, id := range m.registry.Order() {
		entry, ok := m.entries[id]
		if !ok || id == m.dragID {
			continue
		}
		top, err := m.registry.Top(id)
		if err != nil {
			continue
		}
		state := cardIdle
		if id == m.selected {
			state = cardSelected
		}
		paint(lines, int(top), m.renderCard(entry, m.position(id), state))
	}

	if m.dragID != "" {
		entry := m.entries[m.dragID]
		state := cardSelected
		if m.items[m.dragID].Dragging() {
			state = cardDragging
		}
		card := m.renderCard(entry, m.position(m.dragID), state)
		row := m.pointerY - m.grab
		if maxRow := rows - lipgloss.Height(card); row > maxRow {
			row = maxRow
		}
		if row < 0 {
			row = 0
		}
		paint(lines, row, card)
	}

	return strings.Join(lines, "\n")
}

func (m Model) position(id string) int {
	pos, err := m.items[id].Position()
	if err != nil {
		return 0
	}
	return pos
}

func (m Model) renderCard(e Entry, pos int, state cardState) string {
	t := theme.DefaultTheme

	style := t.Item
	switch state {
	case cardSelected:
		style = t.ItemSelected
	case cardDragging:
		style = t.ItemDragging
	}

	title := fmt.Sprintf("%s %s %s",
		t.Position.Render(fmt.Sprintf("%d.", pos)),
		t.Muted.Render(theme.IconGrip),
		t.ItemTitle.Render(e.Title))

	content := title
	if e.Body != "" {
		content = lipgloss.JoinVertical(lipgloss.Left, title, t.ItemBody.Render(e.Body))
	}

	return style.Width(m.cardWidth - 2).Render(content)
}

func (m Model) statusView() string {
	t := theme.DefaultTheme
	if m.status != "" {
		return t.Error.Render(fmt.Sprintf("%s %s", theme.IconError, m.status))
	}
	if m.dragID != "" {
		return t.Accent.Render(fmt.Sprintf("%s %s %d",
			m.entries[m.dragID].Title, theme.IconArrow, m.position(m.dragID)))
	}
	return ""
}

// paint overwrites lines starting at row with the lines of block.
func paint(lines []string, row int, block string) {
	for i, line := range strings.Split(block, "\n") {
		if r := row + i; r >= 0 && r < len(lines) {
			lines[r] = line
		}
	}
}
