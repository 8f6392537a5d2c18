package result

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineError_CapturesStack(t *testing.T) {
	err := NewEngineError("boom")
	assert.Equal(t, "boom", err.Error())
	assert.NotEmpty(t, err.StackTrace())
	assert.NoError(t, err.Unwrap())
}

func TestWrapEngineError(t *testing.T) {
	cause := errors.New("disk full")
	err := WrapEngineError("call failed", cause)

	assert.Equal(t, "call failed", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.NotEmpty(t, err.StackTrace())
}

func TestEngineError_ErrorsAs(t *testing.T) {
	var target *EngineError
	wrapped := WrapEngineError("outer", NewEngineError("inner"))
	require.ErrorAs(t, wrapped, &target)
	assert.Equal(t, "outer", target.Message)
}
