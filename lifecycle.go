package flatfs

import (
	"github.com/hashicorp/go-multierror"
)

// Format creates or truncates the image file at path and initializes a
// fresh, empty volume on it: a clean superblock, the reserved blocks 0-9
// marked used in the bitmap, and an empty inode table. It flushes those
// regions and closes the image; the volume is NOT left mounted afterward.
//
// Format fails with ErrInvalidArgument if path is empty or a volume is
// currently mounted in this process.
func Format(path string) error {
	if path == "" {
		return ErrInvalidArgument.WithMessage("empty path")
	}
	if mounted() {
		return ErrInvalidArgument.WithMessage("a volume is already mounted")
	}

	dev, err := createImageDevice(path)
	if err != nil {
		return ErrInvalidArgument.Wrap(err)
	}
	defer dev.close()

	return formatDevice(dev)
}

// formatDevice holds the device-agnostic half of Format, factored out so
// tests can format an in-memory device directly instead of going through
// the filesystem.
func formatDevice(dev *imageDevice) error {
	v := &Volume{
		device:     dev,
		superblock: freshSuperblock(),
		allocator:  newBlockAllocator(),
		inodes:     freshInodeTable(),
	}
	for i := 0; i < ReservedBlocks; i++ {
		v.allocator.markUsed(i)
	}

	return v.syncMetadata()
}

// Mount opens the image file at path and loads its superblock, bitmap, and
// inode table into memory, becoming the process's current volume.
//
// Mount fails with ErrInvalidArgument if path is empty, a volume is already
// mounted, the image can't be opened, or the superblock fails validation;
// the volume remains unmounted in every failure case.
func Mount(path string) error {
	if path == "" {
		return ErrInvalidArgument.WithMessage("empty path")
	}
	if mounted() {
		return ErrAlreadyMounted
	}

	dev, err := openImageDevice(path)
	if err != nil {
		return ErrInvalidArgument.Wrap(err)
	}

	v, err := mountDevice(dev)
	if err != nil {
		dev.close()
		return err
	}

	current = v
	return nil
}

// mountDevice holds the device-agnostic half of Mount.
func mountDevice(dev *imageDevice) (*Volume, error) {
	sbRegion := make([]byte, BlockSize)
	if err := dev.readRegion(superblockOffset, sbRegion); err != nil {
		return nil, ErrInvalidArgument.Wrap(err)
	}
	sb, err := decodeSuperblock(sbRegion)
	if err != nil {
		return nil, ErrInvalidArgument.Wrap(err)
	}

	if err := validateSuperblock(sb); err != nil {
		return nil, ErrInvalidArgument.Wrap(err)
	}

	bitmapRegion := make([]byte, BlockSize)
	if err := dev.readRegion(bitmapOffset, bitmapRegion); err != nil {
		return nil, ErrInvalidArgument.Wrap(err)
	}

	inodeRegion := make([]byte, dataRegionOffset-inodeTableOffset)
	if err := dev.readRegion(inodeTableOffset, inodeRegion); err != nil {
		return nil, ErrInvalidArgument.Wrap(err)
	}
	inodes, err := decodeInodeTable(inodeRegion)
	if err != nil {
		return nil, ErrInvalidArgument.Wrap(err)
	}

	return &Volume{
		device:     dev,
		superblock: sb,
		allocator:  decodeBitmap(bitmapRegion),
		inodes:     inodes,
	}, nil
}

// validateSuperblock checks the superblock's geometry and counters against
// this package's fixed constants, accumulating every violation found
// (rather than stopping at the first) via go-multierror so a single failed
// Mount reports the complete picture. It deliberately does not re-derive
// FreeBlocks/FreeInodes from the bitmap and inode table -- see the design
// notes on bitmap-superblock consistency not being re-derived at Mount.
func validateSuperblock(sb Superblock) error {
	var result *multierror.Error
	if sb.TotalBlocks != MaxBlocks {
		result = multierror.Append(result, ErrInvalidArgument.WithMessage("wrong total_blocks"))
	}
	if sb.BlockSize != BlockSize {
		result = multierror.Append(result, ErrInvalidArgument.WithMessage("wrong block_size"))
	}
	if sb.TotalInodes != MaxFiles {
		result = multierror.Append(result, ErrInvalidArgument.WithMessage("wrong total_inodes"))
	}
	if sb.FreeBlocks > MaxBlocks {
		result = multierror.Append(result, ErrInvalidArgument.WithMessage("free_blocks out of range"))
	}
	if sb.FreeInodes > MaxFiles {
		result = multierror.Append(result, ErrInvalidArgument.WithMessage("free_inodes out of range"))
	}
	return result.ErrorOrNil()
}

// Unmount flushes the superblock, bitmap, and inode table, closes the
// image, and clears the mounted volume. It's idempotent: calling it when
// nothing is mounted, or calling it twice in a row, is a silent no-op.
// Unmount never fails -- it's best-effort, per the error handling design.
func Unmount() {
	if !mounted() {
		return
	}
	_ = current.syncMetadata()
	_ = current.device.close()
	current = nil
}
