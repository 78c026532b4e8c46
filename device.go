package flatfs

import (
	"io"
	"os"
)

// device is the minimal interface this package needs from the host byte
// device: seek to an offset, then read or write there. *os.File satisfies
// it, and so does github.com/xaionaro-go/bytesextra's in-memory
// ReadWriteSeeker, which is what tests use instead of a real file.
type device interface {
	io.ReadWriteSeeker
	io.Closer
}

// imageDevice is a thin positioned-read/write wrapper around the host image
// file, grounded on disko's drivers/common/blockstream.go BlockStream:
// seek to a byte offset, then read or write a region there. Generalized
// from BlockStream's block-multiple I/O to arbitrary-length regions at
// arbitrary offsets, since this volume's superblock and inode-table
// regions aren't whole multiples of BlockSize.
type imageDevice struct {
	backing device
}

// openImageDevice opens an existing image file for reading and writing.
func openImageDevice(path string) (*imageDevice, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0o644)
	if err != nil {
		return nil, err
	}
	return &imageDevice{backing: f}, nil
}

// newImageDeviceOn wraps an already-open device, letting tests plug in an
// in-memory backing store (github.com/xaionaro-go/bytesextra) instead of a
// real file.
func newImageDeviceOn(dev device) *imageDevice {
	return &imageDevice{backing: dev}
}

// createImageDevice creates (or truncates) an image file for writing and
// sizes it to the whole MaxBlocks*BlockSize address space.
func createImageDevice(path string) (*imageDevice, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}
	if err := f.Truncate(MaxBlocks * BlockSize); err != nil {
		f.Close()
		return nil, err
	}
	return &imageDevice{backing: f}, nil
}

// readRegion seeks to offset and reads exactly len(buf) bytes. A short read
// is an unrecoverable device error.
func (d *imageDevice) readRegion(offset int64, buf []byte) error {
	if _, err := d.backing.Seek(offset, io.SeekStart); err != nil {
		return ErrDeviceFailure.Wrap(err)
	}

	total := 0
	for total < len(buf) {
		n, err := d.backing.Read(buf[total:])
		total += n
		if err != nil {
			if err == io.EOF {
				return ErrDeviceFailure.WithMessage("short read")
			}
			return ErrDeviceFailure.Wrap(err)
		}
		if n == 0 {
			return ErrDeviceFailure.WithMessage("short read")
		}
	}
	return nil
}

// writeRegion seeks to offset and writes exactly len(data) bytes, retrying
// on partial writes the way the original implementation's fs_write retry
// loop does. A write that makes no progress at all (0 bytes, no error) is
// treated the way the original treats write() returning 0: the device is
// full. Any other write error is an unrecoverable device failure.
func (d *imageDevice) writeRegion(offset int64, data []byte) error {
	if _, err := d.backing.Seek(offset, io.SeekStart); err != nil {
		return ErrDeviceFailure.Wrap(err)
	}

	total := 0
	for total < len(data) {
		n, err := d.backing.Write(data[total:])
		total += n
		if err != nil {
			return ErrDeviceFailure.Wrap(err)
		}
		if n == 0 {
			return errDeviceFull
		}
	}
	return nil
}

func (d *imageDevice) close() error {
	return d.backing.Close()
}
