package arena

import (
	"sync"

	"github.com/abc-lang/abcrt/pkg/word"
)

// pageBytes is the unit a Context acquires from the shared pool in one
// lock acquisition, amortizing mutex overhead across many small local
// allocations (mirrors WIKRT_PAGESIZE).
const pageBytes = 1 << 14

// Group is the memory a set of Contexts share: one contiguous word
// array plus one free list protected by one mutex (wikrt_cxm). Every
// Context created against a Group draws pages from it and returns
// freed pages to it; Group itself never allocates or frees a single
// value, only whole pages.
type Group struct {
	mu     sync.Mutex
	mem    []word.Word
	shared freeList
}

// NewGroup allocates a fixed-size arena of sizeBytes (rounded up to a
// whole number of cells) and marks it free, minus the reserved
// address-zero cell.
func NewGroup(sizeBytes int) *Group {
	cells := word.Word((sizeBytes + cellBytes - 1) / cellBytes)
	if cells < 2 {
		cells = 2
	}
	g := &Group{
		mem:    make([]word.Word, cells*cellWords),
		shared: newFreeList(),
	}
	// Address zero is the permanent void/unit sentinel cell: reserve it,
	// don't hand it to the allocator.
	g.shared.add(cellBytes, cells-1)
	return g
}

// SizeBytes reports the total arena capacity in bytes, including the
// reserved sentinel cell.
func (g *Group) SizeBytes() int { return len(g.mem) * wordBytes }

// acquirePage attempts to pull a page-sized-or-larger block out of the
// shared free list for the caller's local pool. Must be called with g.mu held.
func (g *Group) acquirePage(minCells word.Word) (Address, word.Word, bool) {
	want := minCells
	if pageCells := word.Word(pageBytes / cellBytes); want < pageCells {
		want = pageCells
	}
	addr, ok := g.shared.alloc(want)
	if !ok {
		return 0, 0, false
	}
	return addr, want, true
}
