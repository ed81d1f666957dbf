package reorderlist

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the keybindings for the reorderable list
type KeyMap struct {
	// Selection
	Up   key.Binding
	Down key.Binding
	// Reordering
	MoveUp   key.Binding
	MoveDown key.Binding
	Remove   key.Binding
	// Help and quit
	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap is the default keymap for the list
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	MoveUp: key.NewBinding(
		key.WithKeys("shift+up", "K"),
		key.WithHelp("K", "move up"),
	),
	MoveDown: key.NewBinding(
		key.WithKeys("shift+down", "J"),
		key.WithHelp("J", "move down"),
	),
	Remove: key.NewBinding(
		key.WithKeys("d", "x", "delete"),
		key.WithHelp("d/x", "remove"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q/esc", "quit"),
	),
}

// ShortHelp returns the short help text for the keymap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.MoveUp, k.MoveDown, k.Help, k.Quit}
}

// FullHelp returns the full help text for the keymap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.MoveUp, k.MoveDown, k.Remove},
		{k.Help, k.Quit},
	}
}
