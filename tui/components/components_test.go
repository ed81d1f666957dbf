package components

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestRenderStatusBar(t *testing.T) {
	bar := RenderStatusBar("left", "right", 20)
	assert.Equal(t, 20, lipgloss.Width(bar))
	assert.Equal(t, "left", RenderStatusBar("left", "right", 8))
}

func TestRenderHeaderSubtitle(t *testing.T) {
	out := RenderHeader("Reorder", "3 items")
	assert.Contains(t, out, "Reorder")
	assert.Contains(t, out, "3 items")
}

func TestRenderKeyValues(t *testing.T) {
	out := RenderKeyValues("Swaps", 2, "Total height", 170.0, "dangling")
	assert.Contains(t, out, "Swaps:")
	assert.Contains(t, out, " 2  ")
	assert.Contains(t, out, "Total height:")
	assert.Contains(t, out, "170")
	assert.NotContains(t, out, "dangling")
}
