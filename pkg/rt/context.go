package rt

import (
	"github.com/abc-lang/abcrt/pkg/arena"
	"github.com/abc-lang/abcrt/pkg/bignum"
	"github.com/abc-lang/abcrt/pkg/word"
)

// Context wraps an arena context with the implicit value stack the
// external interface operates on: every operation here consumes from
// and/or pushes to the top of this stack, mirroring the C API's
// "top two stack positions" contract in spec.md §4.3/§6.
type Context struct {
	*arena.Context
	stack []word.Word
}

// NewContext creates a value-stack context over the given arena group.
func NewContext(g *arena.Group) *Context {
	return &Context{Context: arena.NewContext(g)}
}

// Push places a value on top of the stack.
func (c *Context) Push(v word.Word) { c.stack = append(c.stack, v) }

// Pop removes and returns the top value. Panics on an empty stack: an
// evaluator driving this API correctly never underflows it, and a
// stack underflow here is a caller bug, not a user-facing error —
// mirrors the reference's abort() on internal invariant violations.
func (c *Context) Pop() word.Word {
	n := len(c.stack)
	v := c.stack[n-1]
	c.stack = c.stack[:n-1]
	return v
}

// Top returns the top value without removing it.
func (c *Context) Top() word.Word { return c.stack[len(c.stack)-1] }

// Depth reports the current stack depth.
func (c *Context) Depth() int { return len(c.stack) }

// IntroUnit pushes the unit value.
func (c *Context) IntroUnit() Status {
	c.Push(word.Unit)
	return OK
}

// ElimUnit pops the top value, which must be unit.
func (c *Context) ElimUnit() Status {
	if c.Top() != word.Unit {
		return TypeError
	}
	c.Pop()
	return OK
}

// IntroI32 pushes a 32-bit integer, as a shallow small-int word when it
// fits, else as an allocated bignum.
func (c *Context) IntroI32(n int32) Status {
	return c.introBignum(bignum.FromInt32(n))
}

// IntroI64 pushes a 64-bit integer.
func (c *Context) IntroI64(n int64) Status {
	return c.introBignum(bignum.FromInt64(n))
}

// IntroIStr parses a decimal integer literal and pushes it.
func (c *Context) IntroIStr(s string) Status {
	v, err := bignum.Parse(s)
	if err != nil {
		return INVAL
	}
	return c.introBignum(v)
}

func (c *Context) introBignum(v bignum.Int) Status {
	if n, ok := v.Int32(); ok && word.InSmallIntRange(int64(n)) {
		c.Push(word.FromInt32(n))
		return OK
	}
	w, ok := c.allocBignum(v)
	if !ok {
		return CXFull
	}
	c.Push(w)
	return OK
}

// PeekI32 reads the top integer without consuming it. Returns BUFFSZ
// if the value doesn't fit in 32 bits.
func (c *Context) PeekI32() (int32, Status) {
	v, st := c.peekBignum()
	if st != OK {
		return 0, st
	}
	n, ok := v.Int32()
	if !ok {
		return 0, BuffSz
	}
	return n, OK
}

// PeekI64 reads the top integer as a 64-bit value.
func (c *Context) PeekI64() (int64, Status) {
	v, st := c.peekBignum()
	if st != OK {
		return 0, st
	}
	n, ok := v.Int64()
	if !ok {
		return 0, BuffSz
	}
	return n, OK
}

// PeekIStr reads the top integer as its canonical decimal string.
func (c *Context) PeekIStr() (string, Status) {
	v, st := c.peekBignum()
	if st != OK {
		return "", st
	}
	return v.String(), OK
}

func (c *Context) peekBignum() (bignum.Int, Status) {
	top := c.Top()
	if top.IsSmallInt() {
		return bignum.FromInt32(top.Int32()), OK
	}
	if top.Tag() != word.TagObj {
		return bignum.Int{}, TypeError
	}
	v, ok := c.readBignum(top)
	if !ok {
		return bignum.Int{}, TypeError
	}
	return v, OK
}

// Assocl rewrites ((a,b),c) to (a,(b,c)) by pointer manipulation only —
// no allocation, reusing the two existing cells in place.
func (c *Context) Assocl() Status {
	outer := c.Top()
	if outer.Tag() != word.TagPair {
		return TypeError
	}
	ab, cv := c.GetCell(outer.Addr())
	if ab.Tag() != word.TagPair {
		return TypeError
	}
	a, b := c.GetCell(ab.Addr())
	c.SetCell(ab.Addr(), b, cv) // ab's cell becomes (b,c)
	bc := word.TagAddr(word.TagPair, ab.Addr())
	c.SetCell(outer.Addr(), a, bc) // outer's cell becomes (a,(b,c))
	return OK
}

// Assocr rewrites (a,(b,c)) to ((a,b),c), symmetric to Assocl.
func (c *Context) Assocr() Status {
	outer := c.Top()
	if outer.Tag() != word.TagPair {
		return TypeError
	}
	a, bc := c.GetCell(outer.Addr())
	if bc.Tag() != word.TagPair {
		return TypeError
	}
	b, cv := c.GetCell(bc.Addr())
	c.SetCell(bc.Addr(), a, b) // bc's cell becomes (a,b)
	ab := word.TagAddr(word.TagPair, bc.Addr())
	c.SetCell(outer.Addr(), ab, cv) // outer's cell becomes ((a,b),c)
	return OK
}

// Wswap swaps the top two stack values.
func (c *Context) Wswap() Status {
	n := len(c.stack)
	if n < 2 {
		return TypeError
	}
	c.stack[n-1], c.stack[n-2] = c.stack[n-2], c.stack[n-1]
	return OK
}
