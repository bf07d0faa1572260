package rt

import "github.com/abc-lang/abcrt/pkg/word"

// MakeBlock wraps an opcode-list value as a block with the given
// substructural flags. Block construction itself belongs to the
// (out-of-scope) parser/evaluator; this constructor exists so Copy and
// Drop's affine/relevant handling has something to operate on, both
// here and from a future evaluator package.
func (c *Context) MakeBlock(opcodes word.Word, affine, relevant bool) (word.Word, Status) {
	header := word.Word(word.OTagBlock)
	if affine {
		header |= word.BlockAffine
	}
	if relevant {
		header |= word.BlockRelevant
	}
	cellAddr, ok := c.AllocCell(word.TagObj, header, opcodes)
	if !ok {
		return 0, CXFull
	}
	return cellAddr, OK
}

// MakeOpval wraps a value as an opval for embedding in a block's
// opcode list, with the lazy substructural-check bit set or clear.
func (c *Context) MakeOpval(inner word.Word, lazy bool) (word.Word, Status) {
	header := word.Word(word.OTagOpval)
	if lazy {
		header |= word.OpvalLazyKF
	}
	cellAddr, ok := c.AllocCell(word.TagObj, header, inner)
	if !ok {
		return 0, CXFull
	}
	return cellAddr, OK
}
