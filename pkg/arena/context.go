package arena

import "github.com/abc-lang/abcrt/pkg/word"

// Context is one thread's view into a shared Group: its own free list
// for lock-free fast allocation, refilled from (and flushed back to)
// the Group's shared pool only when the local list runs dry. A
// Context is not safe for concurrent use — each goroutine evaluating a
// computation owns exactly one (mirrors wikrt_cx: "assumed this is
// used from only one thread").
type Context struct {
	group *Group
	local freeList

	BytesAllocated word.Word
	BytesFreed     word.Word
}

// NewContext creates a context drawing from the given shared Group.
func NewContext(group *Group) *Context {
	return &Context{group: group, local: newFreeList()}
}

func bytesToCells(sz int) word.Word {
	if sz <= 0 {
		return 1
	}
	return word.Word((sz + cellBytes - 1) / cellBytes)
}

// Alloc reserves at least sizeBytes (rounded up to a whole cell) and
// returns its address. On local exhaustion it acquires one page from
// the shared pool (merging and coalescing under pressure, as a last
// resort taking the whole shared pool) before retrying, exactly the
// "simple, predictable heuristic... optimized for short computations"
// policy described for the reference allocator. ok is false (CXFULL to
// the caller) only once the whole group is exhausted.
func (c *Context) Alloc(sizeBytes int) (Address, bool) {
	cells := bytesToCells(sizeBytes)
	if addr, ok := c.local.alloc(cells); ok {
		c.BytesAllocated += cells * cellBytes
		return addr, true
	}
	c.acquireShared(cells)
	if addr, ok := c.local.alloc(cells); ok {
		c.BytesAllocated += cells * cellBytes
		return addr, true
	}
	return 0, false
}

// acquireShared implements the shared-pool fallback sequence: try a
// direct page acquisition; on failure, merge this context's local free
// list into the shared pool and coalesce it, then retry; on further
// failure, take the entire shared pool into this context.
func (c *Context) acquireShared(minCells word.Word) {
	g := c.group
	g.mu.Lock()
	defer g.mu.Unlock()

	if addr, got, ok := g.acquirePage(minCells); ok {
		c.local.add(addr, got)
		return
	}

	g.shared.mergeFrom(&c.local)
	g.shared.coalesce()
	if addr, got, ok := g.acquirePage(minCells); ok {
		c.local.add(addr, got)
		return
	}

	c.local.mergeFrom(&g.shared)
}

// Free releases a previously allocated block back to the local free
// list. No coalescing happens here; it is deferred to the next
// shared-pool pressure point.
func (c *Context) Free(addr Address, sizeBytes int) {
	cells := bytesToCells(sizeBytes)
	c.local.add(addr, cells)
	c.BytesFreed += cells * cellBytes
}

// Realloc adjusts a block's buffered size in place where possible:
// same cell count is a no-op, shrinking frees the tail, growing always
// allocates fresh, copies, and frees the original (no in-place growth
// is attempted, for predictability, matching the reference design).
func (c *Context) Realloc(addr Address, oldBytes, newBytes int) (Address, bool) {
	oldCells := bytesToCells(oldBytes)
	newCells := bytesToCells(newBytes)
	if oldCells == newCells {
		return addr, true
	}
	if newCells < oldCells {
		tail := addr + Address(newCells)*cellBytes
		c.Free(tail, int(oldCells-newCells)*cellBytes)
		return addr, true
	}
	dst, ok := c.Alloc(int(newCells) * cellBytes)
	if !ok {
		return 0, false
	}
	copy(c.Words(dst, int(oldCells)*cellWords), c.Words(addr, int(oldCells)*cellWords))
	c.Free(addr, int(oldCells)*cellBytes)
	return dst, true
}

func wordIndex(addr Address) int { return int(addr) / wordBytes }

// GetWord/SetWord read and write a single word at a byte address.
func (c *Context) GetWord(addr Address) word.Word { return c.group.mem[wordIndex(addr)] }
func (c *Context) SetWord(addr Address, v word.Word) {
	c.group.mem[wordIndex(addr)] = v
}

// GetCell/SetCell read and write the two words of a cell.
func (c *Context) GetCell(addr Address) (a, b word.Word) {
	i := wordIndex(addr)
	return c.group.mem[i], c.group.mem[i+1]
}

func (c *Context) SetCell(addr Address, a, b word.Word) {
	i := wordIndex(addr)
	c.group.mem[i] = a
	c.group.mem[i+1] = b
}

// Words returns a direct slice view of n words starting at addr. The
// caller must not retain it across an operation that could move or
// free that memory.
func (c *Context) Words(addr Address, n int) []word.Word {
	i := wordIndex(addr)
	return c.group.mem[i : i+n]
}

// AllocCell allocates one cell and stores (a, b), returning a TagObj
// reference to it — the common "alloc one cell, write both words"
// pattern used by every tagged-object constructor.
func (c *Context) AllocCell(tag word.Tag, a, b word.Word) (word.Word, bool) {
	addr, ok := c.Alloc(cellBytes)
	if !ok {
		return 0, false
	}
	c.SetCell(addr, a, b)
	return word.TagAddr(tag, addr), true
}
