package errdef_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/renato0307/nodedash/internal/errdef"
	"github.com/stretchr/testify/assert"
)

func TestIsForbidden(t *testing.T) {
	assert.False(t, errdef.IsForbidden(errors.New("some error")))
	assert.True(t, errdef.IsForbidden(errdef.NewForbidden("some error")))
}

func TestIsNotFound(t *testing.T) {
	assert.False(t, errdef.IsNotFound(errors.New("some error")))
	assert.True(t, errdef.IsNotFound(errdef.NewNotFound("node %q not found", "worker-1")))
}

func TestIsUnauthorized(t *testing.T) {
	assert.False(t, errdef.IsUnauthorized(errors.New("some error")))
	assert.True(t, errdef.IsUnauthorized(errdef.NewUnauthorized("some error")))
}

func TestIsBadRequest(t *testing.T) {
	assert.False(t, errdef.IsBadRequest(errors.New("some error")))
	assert.True(t, errdef.IsBadRequest(errdef.NewBadRequest("some error")))
}

func TestWrappedCategories(t *testing.T) {
	cause := errors.New("connection refused")
	err := errdef.NewNotFound("cluster %s: %w", "c1", cause)
	wrapped := fmt.Errorf("delete node: %w", err)

	assert.True(t, errdef.IsNotFound(wrapped))
	assert.False(t, errdef.IsForbidden(wrapped))
	assert.ErrorIs(t, wrapped, cause)
	assert.Equal(t, "delete node: cluster c1: connection refused", wrapped.Error())
}
