package rt

import "github.com/abc-lang/abcrt/pkg/word"

// Dir is a sum direction, L or R.
type Dir int

const (
	L Dir = iota
	R
)

func (d Dir) deepSumBits() word.Word {
	if d == L {
		return word.DeepSumL
	}
	return word.DeepSumR
}

func (d Dir) pairTag() word.Tag {
	if d == L {
		return word.TagPairL
	}
	return word.TagPairR
}

// WrapSum turns the top value into L v or R v per spec.md §4.4: retag a
// product pointer at zero cost, pack into an existing deep-sum tag's
// spare slot at zero cost, or allocate a fresh one-slot deep-sum cell.
func (c *Context) WrapSum(dir Dir) Status {
	v := c.Pop()
	w, st := c.wrapSumValue(dir, v)
	if st != OK {
		c.Push(v)
		return st
	}
	c.Push(w)
	return OK
}

func (c *Context) wrapSumValue(dir Dir, v word.Word) (word.Word, Status) {
	if v.Tag() == word.TagPair {
		return v.Retag(dir.pairTag()), OK
	}

	if v.Tag() == word.TagObj && v.Addr() != 0 {
		tagWord := c.GetWord(v.Addr())
		if word.LoByte(tagWord) == word.OTagDeepSum && word.DeepSumHasSpace(tagWord) {
			c.SetWord(v.Addr(), word.PushDeepSumDir(tagWord, dir.deepSumBits()))
			return v, OK
		}
	}

	cellAddr, ok := c.Alloc(8)
	if !ok {
		return 0, CXFull
	}
	c.SetCell(cellAddr, word.MkDeepSumTag(dir.deepSumBits()), v)
	return word.TagAddr(word.TagObj, cellAddr), OK
}

// UnwrapSum returns the direction and inner value of the top sum value,
// inverse to WrapSum; fails TYPE_ERROR on a non-sum value.
func (c *Context) UnwrapSum() (Dir, Status) {
	v := c.Pop()
	dir, inner, st := c.unwrapSumValue(v)
	if st != OK {
		c.Push(v)
		return L, st
	}
	c.Push(inner)
	return dir, OK
}

func (c *Context) unwrapSumValue(v word.Word) (Dir, word.Word, Status) {
	switch v.Tag() {
	case word.TagPairL:
		return L, v.Retag(word.TagPair), OK
	case word.TagPairR:
		return R, v.Retag(word.TagPair), OK
	}

	if v.Tag() == word.TagObj && v.Addr() != 0 {
		tagWord := c.GetWord(v.Addr())
		if word.LoByte(tagWord) == word.OTagDeepSum {
			dirBits, rest, hasMore := word.PopDeepSumDir(tagWord)
			dir := L
			if dirBits == word.DeepSumR {
				dir = R
			}
			if hasMore {
				c.SetWord(v.Addr(), rest)
				return dir, v, OK
			}
			inner := c.GetWord(v.Addr() + wordBytes)
			c.Free(v.Addr(), 8)
			return dir, inner, OK
		}
	}

	return L, v, TypeError
}

// SumDistrib rewrites the single product value (a, L b | R b) to
// L (a,b) | R (a,b). The sum payload b may be either a shallow
// pair-retag or a deep-sum object — unwrapSumValue handles both, so
// this just unwraps, rebuilds the product in the same cell, and
// re-wraps it with the direction that came off the sum.
func (c *Context) SumDistrib() Status {
	v := c.Pop()
	if v.Tag() != word.TagPair {
		c.Push(v)
		return TypeError
	}
	a, sum := c.GetCell(v.Addr())
	dir, b, st := c.unwrapSumValue(sum)
	if st != OK {
		c.Push(v)
		return st
	}
	c.SetCell(v.Addr(), a, b)
	c.Push(word.TagAddr(dir.pairTag(), v.Addr()))
	return OK
}

// SumFactor is the inverse of SumDistrib: L (a,b) | R (a,b) -> (a, L b | R b),
// also a single product value in and out.
func (c *Context) SumFactor() Status {
	v := c.Pop()
	if v.Tag() != word.TagPairL && v.Tag() != word.TagPairR {
		c.Push(v)
		return TypeError
	}
	dir := L
	if v.Tag() == word.TagPairR {
		dir = R
	}
	a, b := c.GetCell(v.Addr())
	w, st := c.wrapSumValue(dir, b)
	if st != OK {
		c.Push(v)
		return st
	}
	// Address zero is the reserved unit/void sentinel cell, not a real
	// allocation — WrapSum's zero-cost product retag can legitimately
	// hand us a PairL/PairR pointing there (e.g. L applied to unit), and
	// it must never be overwritten in place.
	if v.Addr() == 0 {
		pair, ok := c.AllocCell(word.TagPair, a, w)
		if !ok {
			c.Push(v)
			return CXFull
		}
		c.Push(pair)
		return OK
	}
	c.SetCell(v.Addr(), a, w)
	c.Push(word.TagAddr(word.TagPair, v.Addr()))
	return OK
}
