package rt

import "github.com/abc-lang/abcrt/pkg/word"

// sealSmMaxExtra is the number of token bytes (beyond the leading ':')
// that fit in a small-seal tag word's 24 data bits, one byte per
// 8-bit slot (§3: "token of 1..4 bytes beginning with ':'").
const sealSmMaxExtra = 3

func isSmallSealable(tok string) bool {
	return len(tok) >= 1 && len(tok) <= 1+sealSmMaxExtra && tok[0] == ':'
}

// mkSealSmTag packs a small-sealer token (":"+0..3 more bytes) into a
// tag word's data bits. Unused slots are zero; NUL is never a valid
// token byte (forbidden as a control character), so it's an
// unambiguous "no data here" marker.
func mkSealSmTag(tok string) word.Word {
	rest := tok[1:]
	var data word.Word
	for i := 0; i < sealSmMaxExtra; i++ {
		var b byte
		if i < len(rest) {
			b = rest[i]
		}
		data |= word.Word(b) << uint(8*i)
	}
	return (data << 8) | word.Word(word.OTagSealSm)
}

func sealSmToken(tagWord word.Word) string {
	data := tagWord >> 8
	out := []byte{':'}
	for i := 0; i < sealSmMaxExtra; i++ {
		b := byte(data >> uint(8*i))
		if b == 0 {
			break
		}
		out = append(out, b)
	}
	return string(out)
}

// WrapSeal wraps the top value with a token, per spec.md §4.5: a
// ":"-prefixed token of at most 4 bytes packs directly into the tag
// word (zero extra allocation beyond one cell); any other valid
// 1..63-byte token allocates a cell plus its bytes.
func (c *Context) WrapSeal(tok string) Status {
	if !ValidToken(tok) {
		return INVAL
	}
	v := c.Pop()

	if isSmallSealable(tok) {
		cellAddr, ok := c.Alloc(8)
		if !ok {
			c.Push(v)
			return CXFull
		}
		c.SetCell(cellAddr, mkSealSmTag(tok), v)
		c.Push(word.TagAddr(word.TagObj, cellAddr))
		return OK
	}

	n := len(tok)
	extraWords := (n + wordBytes - 1) / wordBytes
	addr, ok := c.Alloc((2+extraWords)*wordBytes)
	if !ok {
		c.Push(v)
		return CXFull
	}
	c.SetCell(addr, word.MkSealTag(word.Word(n)), v)
	base := addr + 2*wordBytes
	for i := 0; i < extraWords; i++ {
		var w word.Word
		for j := 0; j < wordBytes; j++ {
			idx := i*wordBytes + j
			if idx < n {
				w |= word.Word(tok[idx]) << uint(8*j)
			}
		}
		c.SetWord(base+word.Word(i)*wordBytes, w)
	}
	c.Push(word.TagAddr(word.TagObj, addr))
	return OK
}

// UnwrapSeal returns the token and inner value, freeing the wrapper.
func (c *Context) UnwrapSeal() (string, Status) {
	v := c.Pop()
	if v.Tag() != word.TagObj || v.Addr() == 0 {
		c.Push(v)
		return "", TypeError
	}
	tagWord := c.GetWord(v.Addr())
	switch word.LoByte(tagWord) {
	case word.OTagSealSm:
		tok := sealSmToken(tagWord)
		inner := c.GetWord(v.Addr() + wordBytes)
		c.Free(v.Addr(), 8)
		c.Push(inner)
		return tok, OK
	case word.OTagSeal:
		n := int(word.SealTagLen(tagWord))
		inner := c.GetWord(v.Addr() + wordBytes)
		extraWords := (n + wordBytes - 1) / wordBytes
		base := v.Addr() + 2*wordBytes
		buf := make([]byte, 0, n)
		for i := 0; i < extraWords; i++ {
			w := c.GetWord(base + word.Word(i)*wordBytes)
			for j := 0; j < wordBytes && len(buf) < n; j++ {
				buf = append(buf, byte(w>>uint(8*j)))
			}
		}
		c.Free(v.Addr(), (2+extraWords)*wordBytes)
		c.Push(inner)
		return string(buf), OK
	}
	c.Push(v)
	return "", TypeError
}
