package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// InitializeTUI prepares the terminal before a program starts. When
// `CLICOLOR_FORCE=1` or `COLORTERM=truecolor` is set, the lipgloss color
// profile is forced to true color so recorded sessions and CI runs keep
// their styling. `NO_COLOR` forces plain ASCII output.
func InitializeTUI() {
	switch {
	case os.Getenv("NO_COLOR") != "":
		lipgloss.SetColorProfile(termenv.Ascii)
	case os.Getenv("CLICOLOR_FORCE") == "1" || os.Getenv("COLORTERM") == "truecolor":
		lipgloss.SetColorProfile(termenv.TrueColor)
	}
}
