package flatfs

// Inode describes one file: usage flag, byte length, a fixed 28-byte name
// field (zero-padded; NOT null-terminated when the name fills all 28
// bytes), and 12 direct block pointers. A pointer is either a valid block
// index in [ReservedBlocks, MaxBlocks) or nullBlock ("-1") meaning the
// slot is unallocated.
type Inode struct {
	Used   uint32
	Size   uint32
	Name   [MaxFilename]byte
	Blocks [MaxDirectBlocks]int32
}

func freshInode() Inode {
	inode := Inode{}
	for i := range inode.Blocks {
		inode.Blocks[i] = nullBlock
	}
	return inode
}

func (inode *Inode) isUsed() bool {
	return inode.Used != 0
}

// nameBytes returns the name field with trailing zero padding stripped.
func (inode *Inode) nameBytes() []byte {
	n := 0
	for n < MaxFilename && inode.Name[n] != 0 {
		n++
	}
	return inode.Name[:n]
}

func (inode *Inode) name() string {
	return string(inode.nameBytes())
}

func (inode *Inode) setName(name string) {
	inode.Name = [MaxFilename]byte{}
	copy(inode.Name[:], name)
}

// nameMatches does a full-width, byte-exact comparison of the name field
// against `name`, treating bytes past len(name) as required padding -- the
// same rule find_inode in the original C implementation applies.
func (inode *Inode) nameMatches(name string) bool {
	if len(name) > MaxFilename {
		return false
	}
	for i := 0; i < len(name); i++ {
		if inode.Name[i] != name[i] {
			return false
		}
	}
	for i := len(name); i < MaxFilename; i++ {
		if inode.Name[i] != 0 {
			return false
		}
	}
	return true
}

// inodeTable is the fixed array of MaxFiles inode records.
type inodeTable struct {
	entries [MaxFiles]Inode
}

func freshInodeTable() inodeTable {
	table := inodeTable{}
	for i := range table.entries {
		table.entries[i] = freshInode()
	}
	return table
}

// findByName does a linear scan over used inodes and returns the slot
// index of the one matching name, or ok=false if there's no match.
func (t *inodeTable) findByName(name string) (slot int, ok bool) {
	for i := range t.entries {
		if t.entries[i].isUsed() && t.entries[i].nameMatches(name) {
			return i, true
		}
	}
	return 0, false
}

// findFree returns the first slot with Used==0, or ok=false if there is
// none.
func (t *inodeTable) findFree() (slot int, ok bool) {
	for i := range t.entries {
		if !t.entries[i].isUsed() {
			return i, true
		}
	}
	return 0, false
}

// countUsed returns the number of inodes currently marked used.
func (t *inodeTable) countUsed() int {
	count := 0
	for i := range t.entries {
		if t.entries[i].isUsed() {
			count++
		}
	}
	return count
}
