// Package errors defines the coded errors reorder returns to its callers.
package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
)

// ErrorCode identifies a failure class. Codes are stable and appear in JSON
// output.
type ErrorCode string

const (
	ErrCodeItemNotFound   ErrorCode = "ITEM_NOT_FOUND"
	ErrCodeDragInProgress ErrorCode = "DRAG_IN_PROGRESS"

	ErrCodeConfigNotFound ErrorCode = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  ErrorCode = "CONFIG_INVALID"

	// Covers list files as well as traces.
	ErrCodeTraceInvalid ErrorCode = "TRACE_INVALID"

	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// ReorderError is a coded error with optional details and cause.
type ReorderError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

func (e *ReorderError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
}

func (e *ReorderError) Unwrap() error {
	return e.Cause
}

// Is matches any *ReorderError with the same code, so the standard
// errors.Is works with New(code, "") as the target.
func (e *ReorderError) Is(target error) bool {
	t, ok := target.(*ReorderError)
	return ok && t.Code == e.Code
}

// WithDetail sets a detail and returns e for chaining.
func (e *ReorderError) WithDetail(key string, value interface{}) *ReorderError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON renders the code, message and details.
func (e *ReorderError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

func New(code ErrorCode, message string) *ReorderError {
	return &ReorderError{Code: code, Message: message}
}

func Wrap(err error, code ErrorCode, message string) *ReorderError {
	return &ReorderError{Code: code, Message: message, Cause: err}
}

// Is reports whether err, or anything it wraps, is a ReorderError with the given code.
func Is(err error, code ErrorCode) bool {
	return code != "" && GetCode(err) == code
}

// GetCode returns the code of the outermost ReorderError in err's chain, or
// "" if there is none.
func GetCode(err error) ErrorCode {
	var reorderErr *ReorderError
	if stderrors.As(err, &reorderErr) {
		return reorderErr.Code
	}
	return ""
}
