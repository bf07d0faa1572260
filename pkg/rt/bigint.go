package rt

import (
	"github.com/abc-lang/abcrt/pkg/bignum"
	"github.com/abc-lang/abcrt/pkg/word"
)

// wordBytes is the byte width of one Word; used for bignum digit-array
// sizing since that layout isn't built from whole cells.
const wordBytes = 4

// allocBignum stores a canonical bignum.Int as a tag word followed by
// its little-endian base-1e9 digits, matching the "sign bit, digit
// count, digit array follows" layout spec.md §3 describes.
func (c *Context) allocBignum(v bignum.Int) (word.Word, bool) {
	n := len(v.Digits)
	addr, ok := c.Alloc((1 + n) * wordBytes)
	if !ok {
		return 0, false
	}
	c.SetWord(addr, word.MkBigIntTag(v.Positive, word.Word(n)))
	for i, d := range v.Digits {
		c.SetWord(addr+word.Word(i+1)*wordBytes, word.Word(d))
	}
	return word.TagAddr(word.TagObj, addr), true
}

// readBignum reads a bigint object back into a bignum.Int. ok is false
// if w is not a bignum object reference.
func (c *Context) readBignum(w word.Word) (bignum.Int, bool) {
	if w.Tag() != word.TagObj {
		return bignum.Int{}, false
	}
	tagWord := c.GetWord(w.Addr())
	if word.LoByte(tagWord) != word.OTagBigInt {
		return bignum.Int{}, false
	}
	positive, nDigits := word.BigIntTagInfo(tagWord)
	digits := make([]uint32, nDigits)
	for i := range digits {
		digits[i] = uint32(c.GetWord(w.Addr() + word.Word(i+1)*wordBytes))
	}
	return bignum.Int{Positive: positive, Digits: digits}, true
}

// freeBignum releases a bigint object's storage. Bignums are leaves
// (no reachable children), so this is a direct free rather than a walk
// through the general drop engine.
func (c *Context) freeBignum(w word.Word) {
	if w.IsSmallInt() || w.Addr() == 0 {
		return
	}
	tagWord := c.GetWord(w.Addr())
	_, nDigits := word.BigIntTagInfo(tagWord)
	c.Free(w.Addr(), int(1+nDigits)*wordBytes)
}

// readInt reads either a small int or a bigint object into a bignum.Int.
func (c *Context) readInt(w word.Word) (bignum.Int, Status) {
	if w.IsSmallInt() {
		return bignum.FromInt32(w.Int32()), OK
	}
	v, ok := c.readBignum(w)
	if !ok {
		return bignum.Int{}, TypeError
	}
	return v, OK
}

// freeInt releases a value's storage if it was an allocated bignum
// (a small int is shallow and needs no free).
func (c *Context) freeInt(w word.Word) {
	if !w.IsSmallInt() {
		c.freeBignum(w)
	}
}
