package theme

import (
	"os"

	"github.com/grovetools/reorder/config"
)

// Nerd Font icons
const (
	nerdIconList    = "󰕲" // md-view_list (U+F0572)
	nerdIconGrip    = "󰇙" // md-drag_vertical (U+F01D9)
	nerdIconSuccess = "󰄬" // md-check (U+F012C)
	nerdIconError   = "" // cod-error (U+EA87)
	nerdIconArrow   = "󰁔" // md-arrow_right (U+F0054)
	nerdIconSelect  = "󰱒" // md-checkbox_outline (U+F0C52)
)

// ASCII fallbacks
const (
	asciiIconList    = "≡"
	asciiIconGrip    = "⋮"
	asciiIconSuccess = "✓"
	asciiIconError   = "✗"
	asciiIconArrow   = "→"
	asciiIconSelect  = "▶"
)

var (
	IconList    string
	IconGrip    string
	IconSuccess string
	IconError   string
	IconArrow   string
	IconSelect  string
)

func init() {
	useASCII := os.Getenv("REORDER_ICONS") == "ascii"
	if !useASCII && os.Getenv("REORDER_ICONS") == "" {
		cfg, err := config.LoadDefault()
		useASCII = err == nil && cfg.TUI.Icons == "ascii"
	}

	if useASCII {
		IconList = asciiIconList
		IconGrip = asciiIconGrip
		IconSuccess = asciiIconSuccess
		IconError = asciiIconError
		IconArrow = asciiIconArrow
		IconSelect = asciiIconSelect
		return
	}

	IconList = nerdIconList
	IconGrip = nerdIconGrip
	IconSuccess = nerdIconSuccess
	IconError = nerdIconError
	IconArrow = nerdIconArrow
	IconSelect = nerdIconSelect
}
