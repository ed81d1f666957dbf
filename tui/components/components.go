// Package components holds the small layout pieces shared by reorder's
// terminal views.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/grovetools/reorder/tui/theme"
)

// RenderHeader renders the list icon and title, with an optional muted
// subtitle on the line below.
func RenderHeader(title string, subtitle ...string) string {
	t := theme.DefaultTheme
	header := t.Header.Render(theme.IconList + " " + title)
	if len(subtitle) == 0 || subtitle[0] == "" {
		return header
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, t.Muted.Render(subtitle[0]))
}

// RenderFooter draws content below a top rule spanning width.
func RenderFooter(content string, width int) string {
	return theme.DefaultTheme.Footer.
		Width(width).
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(theme.DefaultTheme.Colors.Border).
		Render(content)
}

// RenderStatusBar lays out left and right sections on one line of the
// given width. The right section is dropped when both do not fit.
func RenderStatusBar(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

// RenderKeyValues renders alternating keys and values as "key: value"
// pairs separated by two spaces. A trailing key without a value is dropped.
func RenderKeyValues(kv ...interface{}) string {
	t := theme.DefaultTheme
	parts := make([]string, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		parts = append(parts, fmt.Sprintf("%s %v", t.Muted.Render(fmt.Sprintf("%v:", kv[i])), kv[i+1]))
	}
	return strings.Join(parts, "  ")
}
