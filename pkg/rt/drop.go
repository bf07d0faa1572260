package rt

import "github.com/abc-lang/abcrt/pkg/word"

type dropTask struct {
	src   word.Word
	allow bool // relevant check suppressed for this one sub-drop
}

// Drop discards the top stack value, honoring relevant blocks (fails
// TYPE_ERROR on a relevant block unless dropping was already checked
// by an enclosing opval — symmetric to Copy's affine handling).
func (c *Context) Drop() Status {
	v := c.Pop()
	if st := c.dropValue(v, false); st != OK {
		c.Push(v)
		return st
	}
	return OK
}

func (c *Context) dropValue(v word.Word, allowRelevant bool) Status {
	queue := []dropTask{{src: v, allow: allowRelevant}}
	for len(queue) > 0 {
		t := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		if t.src.Shallow() {
			continue
		}
		more, st := c.dropOne(t.src, t.allow)
		if st != OK {
			return st
		}
		queue = append(queue, more...)
	}
	return OK
}

func (c *Context) dropOne(src word.Word, allowRelevant bool) ([]dropTask, Status) {
	switch src.Tag() {
	case word.TagPair, word.TagPairL, word.TagPairR:
		a, b := c.GetCell(src.Addr())
		c.Free(src.Addr(), 8)
		return []dropTask{{src: a, allow: allowRelevant}, {src: b, allow: allowRelevant}}, OK

	case word.TagObj:
		return c.dropObject(src, allowRelevant)
	}

	panic("rt: drop: unrecognized value tag")
}

func (c *Context) dropObject(src word.Word, allowRelevant bool) ([]dropTask, Status) {
	tagWord := c.GetWord(src.Addr())
	switch word.LoByte(tagWord) {

	case word.OTagDeepSum, word.OTagSealSm:
		inner := c.GetWord(src.Addr() + wordBytes)
		c.Free(src.Addr(), 8)
		return []dropTask{{src: inner, allow: allowRelevant}}, OK

	case word.OTagBlock:
		if word.BlockRel(tagWord) && !allowRelevant {
			return nil, TypeError
		}
		opcodes := c.GetWord(src.Addr() + wordBytes)
		c.Free(src.Addr(), 8)
		return []dropTask{{src: opcodes, allow: allowRelevant}}, OK

	case word.OTagOpval:
		lazy := tagWord&word.OpvalLazyKF != 0
		childAllow := allowRelevant
		if !lazy {
			childAllow = true
		}
		inner := c.GetWord(src.Addr() + wordBytes)
		c.Free(src.Addr(), 8)
		return []dropTask{{src: inner, allow: childAllow}}, OK

	case word.OTagBigInt:
		c.freeBignum(src)
		return nil, OK

	case word.OTagSeal:
		n := int(word.SealTagLen(tagWord))
		inner := c.GetWord(src.Addr() + wordBytes)
		extraWords := (n + wordBytes - 1) / wordBytes
		c.Free(src.Addr(), (2+extraWords)*wordBytes)
		return []dropTask{{src: inner, allow: allowRelevant}}, OK

	case word.OTagArray, word.OTagStowage:
		return nil, Impl
	}

	panic("rt: drop: unrecognized object tag")
}
