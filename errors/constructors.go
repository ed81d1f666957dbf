package errors

import (
	"fmt"
)

// ItemNotFound reports an operation on an id the registry does not know.
func ItemNotFound(itemID string) *ReorderError {
	return New(ErrCodeItemNotFound, fmt.Sprintf("item '%s' is not registered", itemID)).
		WithDetail("item", itemID)
}

// DragInProgress reports a drag start while another item owns the session.
func DragInProgress(itemID, activeID string) *ReorderError {
	return New(ErrCodeDragInProgress,
		fmt.Sprintf("cannot start dragging '%s': '%s' is being dragged", itemID, activeID)).
		WithDetail("item", itemID).
		WithDetail("active", activeID)
}

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *ReorderError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *ReorderError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// TraceInvalid creates an error for a malformed trace or list file.
func TraceInvalid(reason string) *ReorderError {
	return New(ErrCodeTraceInvalid, fmt.Sprintf("invalid trace: %s", reason))
}
