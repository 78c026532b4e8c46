package flatfs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrno_NilIsZero(t *testing.T) {
	assert.Equal(t, 0, Errno(nil))
}

func TestErrno_RecoversSentinelCodes(t *testing.T) {
	assert.Equal(t, -1, Errno(ErrExists))
	assert.Equal(t, -1, Errno(ErrNotFound))
	assert.Equal(t, -2, Errno(ErrNoInode))
	assert.Equal(t, -2, Errno(ErrNoSpace))
	assert.Equal(t, -3, Errno(ErrInvalidArgument))
	assert.Equal(t, -3, Errno(ErrDeviceFailure))
	assert.Equal(t, -3, Errno(ErrNotMounted))
}

func TestErrno_UnrecognizedErrorIsInvalidArgumentClass(t *testing.T) {
	assert.Equal(t, -3, Errno(errors.New("boom")))
}

func TestFSError_WithMessagePreservesCodeAndIs(t *testing.T) {
	wrapped := ErrExists.WithMessage("file \"a\" already exists")
	assert.True(t, errors.Is(wrapped, ErrExists))
	assert.Equal(t, -1, Errno(wrapped))
	assert.Contains(t, wrapped.Error(), "already exists")
}

func TestFSError_WrapPreservesUnderlyingError(t *testing.T) {
	underlying := errors.New("disk exploded")
	wrapped := ErrDeviceFailure.Wrap(underlying)

	assert.True(t, errors.Is(wrapped, ErrDeviceFailure))
	assert.True(t, errors.Is(wrapped, underlying))
	assert.Equal(t, -3, Errno(wrapped))
}
