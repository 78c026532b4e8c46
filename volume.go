package flatfs

// Volume is the process-wide, in-memory mirror of a mounted image: its
// superblock, free-block bitmap, and inode table, plus the open device
// handle. Mirrors disko's BaseDriver in spirit (the VFS glue it otherwise
// supplies — directories, symlinks, permissions — doesn't apply to a flat,
// single-volume file system), but collapsed to the single mutable struct
// the design notes call for: "Package them as one state value owned by the
// entry-point layer; the 'is mounted?' predicate is the presence of that
// value."
//
// There is no internal locking: per the concurrency model, operations are
// invoked one at a time by a single thread of control.
type Volume struct {
	device     *imageDevice
	superblock Superblock
	allocator  blockAllocator
	inodes     inodeTable
}

// current is the single process-wide mounted volume, or nil if nothing is
// mounted. A second Mount while this is non-nil is rejected at the Mount
// stage.
var current *Volume

func mounted() bool {
	return current != nil
}

// writeInode replaces the record at slot, adjusting v.superblock.FreeInodes
// if the used flag transitions. Any other transition leaves the counter
// unchanged. This is the single path by which the inode table and the
// superblock's FreeInodes counter are kept mutually consistent (invariant
// I2).
func (v *Volume) writeInode(slot int, next Inode) {
	wasUsed := v.inodes.entries[slot].isUsed()
	v.inodes.entries[slot] = next
	switch {
	case !wasUsed && next.isUsed():
		v.superblock.FreeInodes--
	case wasUsed && !next.isUsed():
		v.superblock.FreeInodes++
	}
}

// markBlockUsed marks a block used in the allocator and keeps
// v.superblock.FreeBlocks consistent with it (invariant I1). Idempotent.
func (v *Volume) markBlockUsed(block int) {
	if v.allocator.isUsed(block) {
		return
	}
	v.allocator.markUsed(block)
	v.superblock.FreeBlocks--
}

// markBlockFree is the inverse of markBlockUsed.
func (v *Volume) markBlockFree(block int) {
	if !v.allocator.isUsed(block) {
		return
	}
	v.allocator.markFree(block)
	v.superblock.FreeBlocks++
}
