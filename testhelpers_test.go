package flatfs

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/bytesextra"
)

// newInMemoryDevice returns a full-size in-memory image device, following
// disko's testing.LoadDiskImage pattern of handing drivers an
// io.ReadWriteSeeker backed by a plain byte slice instead of a real file.
// bytesextra's ReadWriteSeeker has a fixed capacity, so the buffer is
// pre-sized to the whole address space up front.
func newInMemoryDevice() *imageDevice {
	buf := make([]byte, MaxBlocks*BlockSize)
	return newImageDeviceOn(bytesextra.NewReadWriteSeeker(buf))
}

// mountFreshVolume formats and mounts a brand new in-memory volume as the
// package-level current volume, and registers a cleanup that clears it so
// later tests in the same run don't see a stale mount.
func mountFreshVolume(t *testing.T) *Volume {
	t.Helper()
	require.Nil(t, current, "a volume was left mounted by a previous test")

	dev := newInMemoryDevice()
	require.NoError(t, formatDevice(dev))

	v, err := mountDevice(dev)
	require.NoError(t, err)

	current = v
	t.Cleanup(func() { current = nil })
	return v
}
