package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap_PreservesCauseChain(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := DatabaseError(cause, "failed to store run")

	require.Error(t, err)
	assert.Equal(t, CodeDatabaseError, err.Code)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestWrap_NilCause(t *testing.T) {
	assert.Nil(t, Wrap(nil, CodeDatabaseError, "nothing happened"))
	assert.Nil(t, Wrapf(nil, CodeDatabaseError, "nothing %s", "happened"))
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, CodeConfigInvalid, GetCode(ConfigInvalid("missing DSN")))
	assert.Equal(t, CodeInvalidInput, GetCode(InvalidInput("bad body")))

	// Code survives further %w wrapping.
	wrapped := fmt.Errorf("loading config: %w", ConfigInvalid("missing DSN"))
	assert.Equal(t, CodeConfigInvalid, GetCode(wrapped))

	assert.Equal(t, "", GetCode(stderrors.New("plain")))
	assert.Equal(t, "", GetCode(nil))
}
