package arena

import (
	"sort"

	"github.com/abc-lang/abcrt/pkg/word"
)

// Address is a byte offset into a Group's memory, always a multiple
// of cellBytes. Address zero is reserved (the special-constants cell)
// and is never handed out by the allocator.
type Address = word.Word

const (
	wordBytes = 4
	cellWords = 2
	cellBytes = cellWords * wordBytes
)

// quickFitClasses mirrors WIKRT_FLCT_QF: one exact-size list per cell
// count from 1 to quickFitClasses.
const quickFitClasses = 16

// firstFitClasses mirrors WIKRT_FLCT_FF: exponentially growing upper
// bounds starting just past the quick-fit range.
const firstFitClasses = 10

const flClassCount = quickFitClasses + firstFitClasses

// classOf returns the size-class index for a block of the given cell
// count (cells, not bytes): an exact quick-fit class for 1..16 cells,
// else the smallest first-fit class whose upper bound covers it.
func classOf(cells word.Word) int {
	if cells >= 1 && cells <= quickFitClasses {
		return int(cells) - 1
	}
	bound := word.Word(quickFitClasses * 2)
	for j := 0; j < firstFitClasses-1; j++ {
		if cells <= bound {
			return quickFitClasses + j
		}
		bound *= 2
	}
	return flClassCount - 1
}

// freeList is a size-segregated set of free blocks: exact-size
// quick-fit stacks plus first-fit stacks searched linearly within a
// class. It is the Go analogue of wikrt_fl: same class layout, same
// "push on free, no implicit coalescing" behavior, coalescing only on
// explicit request.
type freeList struct {
	classes   [flClassCount][]Address
	sizeOf    map[Address]word.Word // address -> block size in cells
	freeCells word.Word
}

func newFreeList() freeList {
	return freeList{sizeOf: make(map[Address]word.Word)}
}

// add pushes a free block of the given cell count onto its class.
func (fl *freeList) add(addr Address, cells word.Word) {
	if cells == 0 {
		return
	}
	c := classOf(cells)
	fl.classes[c] = append(fl.classes[c], addr)
	fl.sizeOf[addr] = cells
	fl.freeCells += cells
}

// alloc removes and returns a block of at least `cells` cells, splitting
// off and re-adding any remainder. Quick-fit classes only satisfy exact
// matches (by construction they hold nothing else); first-fit classes
// are searched from the target class upward for the first block big
// enough.
func (fl *freeList) alloc(cells word.Word) (Address, bool) {
	if cells >= 1 && cells <= quickFitClasses {
		c := classOf(cells)
		if list := fl.classes[c]; len(list) > 0 {
			addr := list[len(list)-1]
			fl.classes[c] = list[:len(list)-1]
			delete(fl.sizeOf, addr)
			fl.freeCells -= cells
			return addr, true
		}
	}
	start := classOf(cells)
	if start < quickFitClasses {
		start = quickFitClasses
	}
	for c := start; c < flClassCount; c++ {
		list := fl.classes[c]
		for i, addr := range list {
			sz := fl.sizeOf[addr]
			if sz < cells {
				continue
			}
			fl.classes[c] = append(list[:i:i], list[i+1:]...)
			delete(fl.sizeOf, addr)
			fl.freeCells -= sz
			if rem := sz - cells; rem > 0 {
				fl.add(addr+Address(cells)*cellBytes, rem)
			}
			return addr, true
		}
	}
	return 0, false
}

// coalesce sorts every free block by address and merges address-adjacent
// runs into single larger blocks, then rebuilds the class lists. This
// is the "merge+coalesce on demand, not continuously" policy: cheap
// small-computation allocs never pay for it.
func (fl *freeList) coalesce() {
	type block struct {
		addr  Address
		cells word.Word
	}
	blocks := make([]block, 0, len(fl.sizeOf))
	for addr, cells := range fl.sizeOf {
		blocks = append(blocks, block{addr, cells})
	}
	sort.Slice(blocks, func(i, j int) bool { return blocks[i].addr < blocks[j].addr })

	merged := blocks[:0]
	for _, b := range blocks {
		if n := len(merged); n > 0 {
			last := &merged[n-1]
			if last.addr+Address(last.cells)*cellBytes == b.addr {
				last.cells += b.cells
				continue
			}
		}
		merged = append(merged, b)
	}

	for i := range fl.classes {
		fl.classes[i] = nil
	}
	fl.sizeOf = make(map[Address]word.Word, len(merged))
	fl.freeCells = 0
	for _, b := range merged {
		fl.add(b.addr, b.cells)
	}
}

// mergeFrom absorbs every block of src into fl, emptying src.
func (fl *freeList) mergeFrom(src *freeList) {
	for addr, cells := range src.sizeOf {
		fl.add(addr, cells)
	}
	*src = newFreeList()
}

func (fl *freeList) empty() bool { return fl.freeCells == 0 }
