package cli

import (
	"fmt"
	"io"

	"github.com/grovetools/reorder/errors"
	"github.com/grovetools/reorder/tui/theme"
)

// ErrorHandler provides user-friendly error messages
type ErrorHandler struct {
	Verbose bool
	Out     io.Writer
}

// NewErrorHandler creates a new error handler writing to out
func NewErrorHandler(verbose bool, out io.Writer) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
		Out:     out,
	}
}

// Handle prints a message for err based on its code and returns err.
func (h *ErrorHandler) Handle(err error) error {
	t := theme.DefaultTheme
	prefix := t.Error.Render(theme.IconError)

	switch errors.GetCode(err) {
	case errors.ErrCodeConfigNotFound:
		fmt.Fprintf(h.Out, "%s Configuration not found: %v\n", prefix, detail(err, "path"))
		fmt.Fprintf(h.Out, "%s\n", t.Muted.Render("Run 'reorder config show' to see the defaults in effect."))

	case errors.ErrCodeConfigInvalid:
		fmt.Fprintf(h.Out, "%s Invalid configuration\n", prefix)
		fmt.Fprintf(h.Out, "%v\n", err)
		fmt.Fprintf(h.Out, "%s\n", t.Muted.Render("Run 'reorder config schema' to see the accepted keys."))

	case errors.ErrCodeTraceInvalid:
		fmt.Fprintf(h.Out, "%s Invalid trace: %v\n", prefix, err)

	case errors.ErrCodeDragInProgress:
		fmt.Fprintf(h.Out, "%s '%v' is already being dragged\n", prefix, detail(err, "active"))

	default:
		fmt.Fprintf(h.Out, "%s Error: %v\n", prefix, err)
	}

	if h.Verbose {
		if reorderErr, ok := err.(*errors.ReorderError); ok {
			fmt.Fprintf(h.Out, "\nError details:\n%s\n", reorderErr.ToJSON())
		}
	}
	return err
}

func detail(err error, key string) interface{} {
	if reorderErr, ok := err.(*errors.ReorderError); ok {
		if v, ok := reorderErr.Details[key]; ok {
			return v
		}
	}
	return "?"
}
