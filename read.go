package flatfs

// Read copies up to min(len(buf), the file's size) bytes from name's
// content into buf, in block order, and returns the number of bytes
// actually delivered.
//
// If a block slot is nullBlock before the requested byte count is
// satisfied, reading stops there and returns the running count -- this
// supports a historically sparse inode even though Write never produces
// one (see the supplemented read-stops-at-sentinel behavior in
// SPEC_FULL.md).
//
// Read fails with ErrInvalidArgument if name is invalid or no volume is
// mounted, and with ErrNotFound if name doesn't exist. A request for 0
// bytes returns 0 without touching buf.
func Read(name string, buf []byte) (int, error) {
	if len(buf) == 0 {
		return 0, nil
	}
	if !mounted() || !validateName(name) {
		return 0, ErrInvalidArgument.WithMessage("invalid name or not mounted")
	}

	slot, ok := current.inodes.findByName(name)
	if !ok {
		return 0, ErrNotFound
	}
	inode := &current.inodes.entries[slot]

	toRead := len(buf)
	if toRead > int(inode.Size) {
		toRead = int(inode.Size)
	}
	if toRead == 0 {
		return 0, nil
	}

	total := 0
	for _, block := range inode.Blocks {
		if total >= toRead {
			break
		}
		if block == nullBlock {
			break
		}

		remaining := toRead - total
		chunkSize := BlockSize
		if chunkSize > remaining {
			chunkSize = remaining
		}

		offset := int64(block) * BlockSize
		chunk := buf[total : total+chunkSize]
		if err := current.device.readRegion(offset, chunk); err != nil {
			return total, err
		}
		total += chunkSize
	}

	return total, nil
}
