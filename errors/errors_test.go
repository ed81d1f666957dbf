package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestReorderError(t *testing.T) {
	// Test basic error creation
	err := New(ErrCodeItemNotFound, "item not found")
	if err.Code != ErrCodeItemNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeItemNotFound, err.Code)
	}

	// Test error wrapping
	cause := fmt.Errorf("underlying error")
	wrapped := Wrap(cause, ErrCodeConfigInvalid, "bad config")

	if wrapped.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}

	if !Is(wrapped, ErrCodeConfigInvalid) {
		t.Error("Is should return true for matching code")
	}

	if Is(wrapped, ErrCodeItemNotFound) {
		t.Error("Is should return false for non-matching code")
	}

	// Wrapped by fmt.Errorf still resolves
	outer := fmt.Errorf("loading: %w", wrapped)
	if GetCode(outer) != ErrCodeConfigInvalid {
		t.Errorf("GetCode through %%w = %q", GetCode(outer))
	}

	if Is(nil, "") {
		t.Error("Is(nil, \"\") should be false")
	}

	detailed := err.WithDetail("item", "a").WithDetail("rank", 3)
	if detailed.Details["item"] != "a" {
		t.Error("WithDetail should add details")
	}
}

func TestErrorConstructors(t *testing.T) {
	err := ItemNotFound("item-9")
	if err.Code != ErrCodeItemNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeItemNotFound, err.Code)
	}
	if err.Details["item"] != "item-9" {
		t.Error("ItemNotFound should include item detail")
	}

	err = DragInProgress("b", "a")
	if err.Code != ErrCodeDragInProgress {
		t.Errorf("expected code %s, got %s", ErrCodeDragInProgress, err.Code)
	}
	if err.Details["active"] != "a" {
		t.Error("DragInProgress should include active detail")
	}

	err = TraceInvalid("duplicate id")
	if err.Error() != "TRACE_INVALID: invalid trace: duplicate id" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestStandardErrorsIs(t *testing.T) {
	err := fmt.Errorf("replay: %w", DragInProgress("b", "a"))
	if !stderrors.Is(err, New(ErrCodeDragInProgress, "")) {
		t.Error("errors.Is should match on code")
	}
	if stderrors.Is(err, New(ErrCodeItemNotFound, "")) {
		t.Error("errors.Is should not match a different code")
	}
}
