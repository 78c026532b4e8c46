package flatfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// assertInvariants checks I1-I5 from the design: bitmap popcount agrees
// with FreeBlocks, used-inode count agrees with FreeInodes, every
// non-sentinel block belongs to exactly one inode and is marked used,
// filenames of used inodes are pairwise distinct, and a non-empty file's
// size fits its non-sentinel block count.
func assertInvariants(t *testing.T, v *Volume) {
	t.Helper()

	assert.Equal(t, MaxBlocks, v.allocator.popcount()+int(v.superblock.FreeBlocks), "I1: popcount + FreeBlocks == MaxBlocks")
	assert.Equal(t, MaxFiles, v.inodes.countUsed()+int(v.superblock.FreeInodes), "I2: used inodes + FreeInodes == MaxFiles")

	owner := map[int]int{}
	names := map[string]bool{}
	for slot := range v.inodes.entries {
		inode := &v.inodes.entries[slot]
		if !inode.isUsed() {
			continue
		}

		name := inode.name()
		assert.False(t, names[name], "I4: duplicate name %q", name)
		names[name] = true

		nonSentinel := 0
		for _, block := range inode.Blocks {
			if block == nullBlock {
				continue
			}
			nonSentinel++
			assert.GreaterOrEqual(t, int(block), ReservedBlocks, "I3: block in reserved range")
			assert.Less(t, int(block), MaxBlocks, "I3: block out of range")
			assert.True(t, v.allocator.isUsed(int(block)), "I3: block %d not marked used", block)
			if prior, exists := owner[int(block)]; exists {
				t.Fatalf("I3: block %d owned by both inode %d and %d", block, prior, slot)
			}
			owner[int(block)] = slot
		}

		if inode.Size > 0 {
			assert.LessOrEqual(t, int(inode.Size), nonSentinel*BlockSize, "I5 upper bound")
			assert.Greater(t, int(inode.Size), (nonSentinel-1)*BlockSize, "I5 lower bound")
		}
	}
}
