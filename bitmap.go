package flatfs

import (
	bitmap "github.com/boljen/go-bitmap"
)

// blockAllocator is the free-block bitmap: one bit per block in the whole
// address space, bit i in byte i/8 at mask 1<<(i%8). It's grounded on
// disko's drivers/common/allocatormap.go, generalized with idempotent
// mark operations and silent bounds checking per this volume's contract
// (disko's Allocator instead errors on out-of-range or double free/alloc).
type blockAllocator struct {
	bits bitmap.Bitmap
}

func newBlockAllocator() blockAllocator {
	return blockAllocator{bits: bitmap.New(MaxBlocks)}
}

// findFree scans from block 0 upward and returns the first clear bit.
// Deterministic low-to-high order is part of the contract. ok is false if
// every block is in use.
func (a *blockAllocator) findFree() (index int, ok bool) {
	for i := 0; i < MaxBlocks; i++ {
		if !a.bits.Get(i) {
			return i, true
		}
	}
	return 0, false
}

// markUsed sets bit i if it isn't already set. Idempotent; out-of-range
// indices are silently ignored.
func (a *blockAllocator) markUsed(i int) {
	if i < 0 || i >= MaxBlocks {
		return
	}
	a.bits.Set(i, true)
}

// markFree clears bit i if it's currently set. Idempotent; out-of-range
// indices are silently ignored.
func (a *blockAllocator) markFree(i int) {
	if i < 0 || i >= MaxBlocks {
		return
	}
	a.bits.Set(i, false)
}

func (a *blockAllocator) isUsed(i int) bool {
	if i < 0 || i >= MaxBlocks {
		return false
	}
	return a.bits.Get(i)
}

// popcount returns the number of set bits, used to cross-check the
// superblock's FreeBlocks counter against the bitmap's actual population.
func (a *blockAllocator) popcount() int {
	count := 0
	for i := 0; i < MaxBlocks; i++ {
		if a.bits.Get(i) {
			count++
		}
	}
	return count
}
