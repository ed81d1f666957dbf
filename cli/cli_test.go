package cli

import (
	"bytes"
	stderrors "errors"
	"testing"

	"github.com/grovetools/reorder/errors"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapText(t *testing.T) {
	assert.Equal(t, "short", wrapText("short", 10))
	assert.Equal(t, "one two\nthree", wrapText("one two three", 8))
	assert.Equal(t, "a\n\nb", wrapText("a\n\nb", 8))
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "config invalid",
			err:  errors.ConfigInvalid("list.spacing must not be negative"),
			want: "reorder config schema",
		},
		{
			name: "drag in progress",
			err:  errors.DragInProgress("b", "a"),
			want: "'a' is already being dragged",
		},
		{
			name: "trace invalid",
			err:  errors.TraceInvalid("no items"),
			want: "no items",
		},
		{
			name: "plain error",
			err:  stderrors.New("boom"),
			want: "Error: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			got := NewErrorHandler(false, &buf).Handle(tt.err)
			assert.Equal(t, tt.err, got)
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestErrorHandlerVerboseDetails(t *testing.T) {
	var buf bytes.Buffer
	_ = NewErrorHandler(true, &buf).Handle(errors.ItemNotFound("ghost"))
	assert.Contains(t, buf.String(), `"code": "ITEM_NOT_FOUND"`)
}

func TestExecute(t *testing.T) {
	newRoot := func(runErr error) (*cobra.Command, *bytes.Buffer) {
		root := NewStandardCommand("reorder", "test root")
		var out bytes.Buffer
		root.SetOut(&out)
		root.SetErr(&out)
		root.AddCommand(&cobra.Command{
			Use:  "fail",
			RunE: func(cmd *cobra.Command, args []string) error { return runErr },
		})
		return root, &out
	}

	t.Run("usage error gets a hint", func(t *testing.T) {
		root, out := newRoot(nil)
		root.SetArgs([]string{"nope"})
		require.Error(t, Execute(root))
		assert.Contains(t, out.String(), "--help")
	})

	t.Run("command error goes through the handler", func(t *testing.T) {
		root, out := newRoot(errors.TraceInvalid("bad step"))
		root.SetArgs([]string{"fail"})
		err := Execute(root)
		assert.True(t, errors.Is(err, errors.ErrCodeTraceInvalid))
		assert.Contains(t, out.String(), "Invalid trace")
	})

	t.Run("help is styled", func(t *testing.T) {
		root, out := newRoot(nil)
		root.SetArgs([]string{"--help"})
		require.NoError(t, Execute(root))
		assert.Contains(t, out.String(), "COMMANDS")
		assert.Contains(t, out.String(), "--verbose")
	})
}
