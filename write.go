package flatfs

// Write fully replaces name's content with data. The algorithm is the
// contractually observable ordering from the design: allocate fresh blocks
// before touching anything else, write the payload into them, swap the
// inode's block set, and only then free the blocks the file used to own.
// A failure at any stage leaves the bitmap and the file's content exactly
// as they were before the call.
//
// Write fails with ErrInvalidArgument if name is invalid, no volume is
// mounted, or len(data) exceeds MaxFileSize; with ErrNotFound if name
// doesn't exist; and with ErrNoSpace if there aren't enough free blocks to
// hold data.
func Write(name string, data []byte) error {
	if !mounted() || !validateName(name) {
		return ErrInvalidArgument.WithMessage("invalid name or not mounted")
	}
	if len(data) > MaxFileSize {
		return ErrInvalidArgument.WithMessage("size exceeds MaxFileSize")
	}

	slot, ok := current.inodes.findByName(name)
	if !ok {
		return ErrNotFound
	}

	blocksNeeded := blocksForSize(len(data))
	if blocksNeeded > int(current.superblock.FreeBlocks) {
		return ErrNoSpace
	}

	originalInode := current.inodes.entries[slot]

	newBlocks, err := allocateBlocks(blocksNeeded)
	if err != nil {
		return err
	}

	if err := writePayload(newBlocks, data); err != nil {
		rollbackBlocks(newBlocks)
		return err
	}

	next := freshInode()
	next.Used = 1
	next.Size = uint32(len(data))
	next.Name = originalInode.Name
	for i, block := range newBlocks {
		next.Blocks[i] = int32(block)
	}
	current.writeInode(slot, next)

	for _, block := range originalInode.Blocks {
		if block != nullBlock {
			current.markBlockFree(int(block))
		}
	}

	return current.syncMetadata()
}

// blocksForSize returns ceil(size / BlockSize).
func blocksForSize(size int) int {
	if size <= 0 {
		return 0
	}
	return (size + BlockSize - 1) / BlockSize
}

// allocateBlocks allocates `count` fresh blocks in ascending-index order.
// If any allocation step fails, every block it already marked used is
// rolled back before returning ErrNoSpace; the pre-existing bitmap state is
// otherwise untouched since these blocks are, by construction, disjoint
// from any in-use block.
func allocateBlocks(count int) ([]int, error) {
	blocks := make([]int, 0, count)
	for i := 0; i < count; i++ {
		block, ok := current.allocator.findFree()
		if !ok {
			rollbackBlocks(blocks)
			return nil, ErrNoSpace
		}
		current.markBlockUsed(block)
		blocks = append(blocks, block)
	}
	return blocks, nil
}

func rollbackBlocks(blocks []int) {
	for _, block := range blocks {
		current.markBlockFree(block)
	}
}

// writePayload writes data sequentially into blocks, BlockSize bytes each
// except possibly the last.
func writePayload(blocks []int, data []byte) error {
	remaining := data
	for _, block := range blocks {
		chunkSize := BlockSize
		if chunkSize > len(remaining) {
			chunkSize = len(remaining)
		}
		chunk := remaining[:chunkSize]
		remaining = remaining[chunkSize:]

		offset := int64(block) * BlockSize
		if err := current.device.writeRegion(offset, chunk); err != nil {
			return err
		}
	}
	return nil
}
