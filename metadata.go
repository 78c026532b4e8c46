package flatfs

import (
	"bytes"
	"encoding/binary"

	"github.com/noxer/bytewriter"
)

// encodeSuperblock serializes sb into a BlockSize-sized region, little-endian,
// with the unused tail left zero. Mirrors file_systems/unixv1/format.go's use
// of bytewriter to stage a fixed-size region before a single positioned
// write.
func encodeSuperblock(sb Superblock) []byte {
	region := make([]byte, BlockSize)
	writer := bytewriter.New(region)
	// binary.Write never fails against a fixed-size struct of fixed-width
	// fields targeting a big-enough buffer.
	_ = binary.Write(writer, binary.LittleEndian, sb)
	return region
}

func decodeSuperblock(region []byte) (Superblock, error) {
	var sb Superblock
	if err := binary.Read(bytes.NewReader(region), binary.LittleEndian, &sb); err != nil {
		return Superblock{}, ErrDeviceFailure.Wrap(err)
	}
	return sb, nil
}

// encodeBitmap serializes the free-block bitmap into a BlockSize-sized
// region. The go-bitmap representation is already a flat []byte with the
// bit order this volume's on-disk format requires, so this is a direct copy
// into a zero-padded region.
func encodeBitmap(a blockAllocator) []byte {
	region := make([]byte, BlockSize)
	copy(region, a.bits)
	return region
}

func decodeBitmap(region []byte) blockAllocator {
	a := newBlockAllocator()
	copy(a.bits, region)
	return a
}

// encodeInodeTable serializes the inode table into a region sized to hold
// MaxFiles fixed-width inode records, zero-padded to the reserved region.
func encodeInodeTable(t inodeTable) []byte {
	region := make([]byte, dataRegionOffset-inodeTableOffset)
	writer := bytewriter.New(region)
	_ = binary.Write(writer, binary.LittleEndian, t.entries)
	return region
}

func decodeInodeTable(region []byte) (inodeTable, error) {
	var t inodeTable
	if err := binary.Read(bytes.NewReader(region), binary.LittleEndian, &t.entries); err != nil {
		return inodeTable{}, ErrDeviceFailure.Wrap(err)
	}
	return t, nil
}

// syncMetadata writes the superblock, bitmap, and inode table back to their
// fixed offsets. It's invoked at the tail of every successful mutating
// operation and from Unmount, so a clean process exit after a successful
// call leaves the image consistent even without an explicit Unmount.
func (v *Volume) syncMetadata() error {
	if err := v.device.writeRegion(superblockOffset, encodeSuperblock(v.superblock)); err != nil {
		return err
	}
	if err := v.device.writeRegion(bitmapOffset, encodeBitmap(v.allocator)); err != nil {
		return err
	}
	if err := v.device.writeRegion(inodeTableOffset, encodeInodeTable(v.inodes)); err != nil {
		return err
	}
	return nil
}
