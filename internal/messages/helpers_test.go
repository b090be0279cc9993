package messages

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/renato0307/nodedash/internal/errdef"
	"github.com/renato0307/nodedash/internal/types"
)

func TestStatusCmds(t *testing.T) {
	tests := []struct {
		name     string
		cmd      func() any
		wantText string
		wantType types.MessageType
	}{
		{"error", func() any { return ErrorCmd("delete %s failed", "worker-1")() }, "delete worker-1 failed", types.MessageTypeError},
		{"success", func() any { return SuccessCmd("removed %d", 1)() }, "removed 1", types.MessageTypeSuccess},
		{"info", func() any { return InfoCmd("refreshing")() }, "refreshing", types.MessageTypeInfo},
		{"notifier", func() any { return NewStatusNotifier().Success("done")() }, "done", types.MessageTypeSuccess},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, ok := tt.cmd().(types.StatusMsg)
			assert.True(t, ok)
			assert.Equal(t, tt.wantText, msg.Message)
			assert.Equal(t, tt.wantType, msg.Type)
		})
	}
}

func TestWrapError(t *testing.T) {
	cause := errdef.NewForbidden("user %s cannot delete nodes", "bob")
	err := WrapError(cause, "delete node %s", "worker-1")

	assert.Equal(t, "delete node worker-1: user bob cannot delete nodes", err.Error())
	assert.True(t, errdef.IsForbidden(err))
	assert.True(t, errors.Is(err, cause))
}
