package rt

import (
	"unicode/utf8"

	"github.com/abc-lang/abcrt/pkg/word"
)

// buildList constructs a right-unit-terminated cons list from elements
// (already validated, each small-int-representable), cheapest element
// first built from the tail: each cons cell costs exactly one
// allocation, the sum layer is a zero-cost retag (§4.4's optimization).
func (c *Context) buildList(elems []int32) (word.Word, Status) {
	list := word.UnitInR
	for i := len(elems) - 1; i >= 0; i-- {
		pair, ok := c.AllocCell(word.TagPair, word.FromInt32(elems[i]), list)
		if !ok {
			return 0, CXFull
		}
		list = pair.Retag(word.TagPairL)
	}
	return list, OK
}

// IntroBinary builds `μL.((byte*L)+unit)` from data and pushes it.
func (c *Context) IntroBinary(data []byte) Status {
	elems := make([]int32, len(data))
	for i, b := range data {
		elems[i] = int32(b)
	}
	list, st := c.buildList(elems)
	if st != OK {
		return st
	}
	c.Push(list)
	return OK
}

// IntroText validates s as UTF-8 text (§4.8: no forbidden codepoint, no
// partial multi-byte sequence at the sizeLimit byte boundary) and
// pushes its codepoint list. A zero-length result is the empty list.
func (c *Context) IntroText(s string, sizeLimit int) Status {
	if sizeLimit < len(s) {
		s = s[:sizeLimit]
	}
	if len(s) > 0 && !validUTF8Prefix(s) {
		return INVAL
	}
	var cps []int32
	for _, r := range s {
		if !validTextRune(r) {
			return INVAL
		}
		cps = append(cps, int32(r))
	}
	list, st := c.buildList(cps)
	if st != OK {
		return st
	}
	c.Push(list)
	return OK
}

// ReadBinary walks list, taking up to max bytes, and returns the bytes
// read, the remaining (unread) list tail, and a status; fewer than max
// bytes with an OK status means the list ended. Does not free the walked
// cells; the caller drops the original list once done. The returned
// rest at end-of-list is the terminator node itself (still R-wrapped),
// not its unwrapped payload, so reading an already-exhausted list again
// is a stable no-op instead of a TYPE_ERROR.
func (c *Context) ReadBinary(list word.Word, max int) (data []byte, rest word.Word, st Status) {
	cur := list
	for len(data) < max {
		dir, inner, s := c.unwrapSumValue(cur)
		if s != OK {
			return data, cur, s
		}
		if dir == R {
			return data, cur, OK
		}
		if inner.Tag() != word.TagPair {
			return data, cur, TypeError
		}
		b, tail := c.GetCell(inner.Addr())
		if !b.IsSmallInt() {
			return data, cur, TypeError
		}
		data = append(data, byte(b.Int32()))
		cur = tail
	}
	return data, cur, OK
}

// ReadText is ReadBinary's codepoint-sequence analogue.
func (c *Context) ReadText(list word.Word, max int) (text []rune, rest word.Word, st Status) {
	cur := list
	for len(text) < max {
		dir, inner, s := c.unwrapSumValue(cur)
		if s != OK {
			return text, cur, s
		}
		if dir == R {
			return text, cur, OK
		}
		if inner.Tag() != word.TagPair {
			return text, cur, TypeError
		}
		cp, tail := c.GetCell(inner.Addr())
		if !cp.IsSmallInt() {
			return text, cur, TypeError
		}
		text = append(text, rune(cp.Int32()))
		cur = tail
	}
	return text, cur, OK
}

// validUTF8Prefix reports whether s is valid UTF-8 with no truncated
// trailing multi-byte sequence.
func validUTF8Prefix(s string) bool {
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			return false
		}
		i += size
	}
	return true
}
