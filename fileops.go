package flatfs

// Create allocates a new, empty inode for name. It fails with
// ErrInvalidArgument if name is empty or longer than MaxFilename bytes, or
// if no volume is mounted; with ErrExists if a used inode already holds
// name; and with ErrNoInode if the inode table is full.
func Create(name string) error {
	if !mounted() {
		return ErrNotMounted
	}
	if name == "" || !validateName(name) {
		return ErrInvalidArgument.WithMessage("invalid name")
	}
	if _, ok := current.inodes.findByName(name); ok {
		return ErrExists
	}
	slot, ok := current.inodes.findFree()
	if !ok {
		return ErrNoInode
	}

	next := freshInode()
	next.Used = 1
	next.setName(name)
	current.writeInode(slot, next)

	return current.syncMetadata()
}

// Delete frees every block owned by name's inode and clears its slot. It
// fails with ErrNotFound (code -1) if name is invalid, no volume is
// mounted, or no such file exists.
func Delete(name string) error {
	if !mounted() || !validateName(name) {
		return ErrNotFound
	}
	slot, ok := current.inodes.findByName(name)
	if !ok {
		return ErrNotFound
	}

	inode := current.inodes.entries[slot]
	for _, block := range inode.Blocks {
		if block != nullBlock {
			current.markBlockFree(int(block))
		}
	}
	current.writeInode(slot, freshInode())

	return current.syncMetadata()
}

// List writes the names of used inodes, in table order, into buf, stopping
// at the end of the table or when buf is full, whichever comes first. It
// returns the number of names written. Listing is stable: repeated calls
// with no intervening mutation return inodes in the same order, since it's
// a plain low-to-high walk of the table.
//
// List returns 0 without touching buf if len(buf) == 0. It fails with a
// -1-coded error (the same overloaded code Create uses for "exists" and
// Delete uses for "not found" -- see the error taxonomy) if buf is longer
// than MaxFiles entries or if no volume is mounted.
func List(buf []string) (int, error) {
	if len(buf) == 0 {
		return 0, nil
	}
	if len(buf) > MaxFiles {
		return 0, newCodedError(-1, "max exceeds MaxFiles")
	}
	if !mounted() {
		return 0, newCodedError(-1, "not mounted")
	}

	count := 0
	for i := range current.inodes.entries {
		if count >= len(buf) {
			break
		}
		inode := &current.inodes.entries[i]
		if inode.isUsed() {
			buf[count] = inode.name()
			count++
		}
	}
	return count, nil
}
