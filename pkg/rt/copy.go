package rt

import "github.com/abc-lang/abcrt/pkg/word"

// copySink receives the address of the newly copied word once it is
// ready. Using a closure here (rather than recursing into children)
// keeps stack depth O(1) regardless of how deep or long the source
// structure is — the explicit work list spec.md §9 calls for, just
// with a sink function standing in for "destination D".
type copySink func(word.Word)

type copyTask struct {
	src   word.Word
	allow bool // affine check suppressed for this one sub-copy
	sink  copySink
}

// Copy duplicates the top stack value, honoring affine blocks (fails
// TYPE_ERROR on an affine block unless copying was explicitly permitted
// by an enclosing, already-checked opval — see the opval case below).
func (c *Context) Copy() Status {
	v := c.Top()
	w, st := c.copyValue(v, false)
	if st != OK {
		return st
	}
	c.Push(w)
	return OK
}

// copyValue fails on the first CXFull or affine TypeError hit while
// walking src. Whatever cells were already allocated for sibling
// branches stay unreachable from the stack (the result is never
// pushed), so they are not drop-reachable as ordinary live values —
// they are only reclaimed wholesale when the arena's Group is
// released. Acceptable since copy failure is already a whole-context
// abort signal per §7, not a recoverable mid-structure state.
func (c *Context) copyValue(v word.Word, allowAffine bool) (word.Word, Status) {
	if v.Shallow() {
		return v, OK
	}

	var result word.Word
	queue := []copyTask{{src: v, allow: allowAffine, sink: func(w word.Word) { result = w }}}
	for len(queue) > 0 {
		t := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		w, more, st := c.copyOne(t.src, t.allow)
		if st != OK {
			return 0, st
		}
		t.sink(w)
		queue = append(queue, more...)
	}
	return result, OK
}

func (c *Context) copyOne(src word.Word, allowAffine bool) (word.Word, []copyTask, Status) {
	if src.Shallow() {
		return src, nil, OK
	}

	switch src.Tag() {
	case word.TagPair, word.TagPairL, word.TagPairR:
		a, b := c.GetCell(src.Addr())
		cellAddr, ok := c.Alloc(8)
		if !ok {
			return 0, nil, CXFull
		}
		tasks := []copyTask{
			{src: a, allow: allowAffine, sink: func(w word.Word) { c.SetWord(cellAddr, w) }},
			{src: b, allow: allowAffine, sink: func(w word.Word) { c.SetWord(cellAddr+wordBytes, w) }},
		}
		return word.TagAddr(src.Tag(), cellAddr), tasks, OK

	case word.TagObj:
		return c.copyObject(src, allowAffine)
	}

	panic("rt: copy: unrecognized value tag")
}

func (c *Context) copyObject(src word.Word, allowAffine bool) (word.Word, []copyTask, Status) {
	tagWord := c.GetWord(src.Addr())
	switch word.LoByte(tagWord) {

	case word.OTagDeepSum, word.OTagSealSm:
		inner := c.GetWord(src.Addr() + wordBytes)
		cellAddr, ok := c.Alloc(8)
		if !ok {
			return 0, nil, CXFull
		}
		c.SetWord(cellAddr, tagWord)
		tasks := []copyTask{{src: inner, allow: allowAffine, sink: func(w word.Word) { c.SetWord(cellAddr+wordBytes, w) }}}
		return word.TagAddr(word.TagObj, cellAddr), tasks, OK

	case word.OTagBlock:
		if word.BlockAff(tagWord) && !allowAffine {
			return 0, nil, TypeError
		}
		opcodes := c.GetWord(src.Addr() + wordBytes)
		cellAddr, ok := c.Alloc(8)
		if !ok {
			return 0, nil, CXFull
		}
		c.SetWord(cellAddr, tagWord)
		tasks := []copyTask{{src: opcodes, allow: allowAffine, sink: func(w word.Word) { c.SetWord(cellAddr+wordBytes, w) }}}
		return word.TagAddr(word.TagObj, cellAddr), tasks, OK

	case word.OTagOpval:
		lazy := tagWord&word.OpvalLazyKF != 0
		childAllow := allowAffine
		if !lazy {
			// already checked once: further copies of this embedding
			// bypass the affine check entirely.
			childAllow = true
		}
		newTagWord := tagWord &^ word.OpvalLazyKF // checked now, if it wasn't already
		inner := c.GetWord(src.Addr() + wordBytes)
		cellAddr, ok := c.Alloc(8)
		if !ok {
			return 0, nil, CXFull
		}
		c.SetWord(cellAddr, newTagWord)
		tasks := []copyTask{{src: inner, allow: childAllow, sink: func(w word.Word) { c.SetWord(cellAddr+wordBytes, w) }}}
		return word.TagAddr(word.TagObj, cellAddr), tasks, OK

	case word.OTagBigInt:
		v, ok := c.readBignum(src)
		if !ok {
			panic("rt: copy: malformed bignum object")
		}
		w, ok := c.allocBignum(v)
		if !ok {
			return 0, nil, CXFull
		}
		return w, nil, OK

	case word.OTagSeal:
		n := int(word.SealTagLen(tagWord))
		inner := c.GetWord(src.Addr() + wordBytes)
		extraWords := (n + wordBytes - 1) / wordBytes
		base := src.Addr() + 2*wordBytes
		dstAddr, ok := c.Alloc((2 + extraWords) * wordBytes)
		if !ok {
			return 0, nil, CXFull
		}
		c.SetWord(dstAddr, tagWord)
		for i := 0; i < extraWords; i++ {
			c.SetWord(dstAddr+word.Word(2+i)*wordBytes, c.GetWord(base+word.Word(i)*wordBytes))
		}
		dstInnerAddr := dstAddr + wordBytes
		tasks := []copyTask{{src: inner, allow: allowAffine, sink: func(w word.Word) { c.SetWord(dstInnerAddr, w) }}}
		return word.TagAddr(word.TagObj, dstAddr), tasks, OK

	case word.OTagArray, word.OTagStowage:
		return 0, nil, Impl
	}

	panic("rt: copy: unrecognized object tag")
}
