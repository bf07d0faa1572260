package rt

import "github.com/abc-lang/abcrt/pkg/word"

// Arithmetic operations pop their operand(s) off the top of the value
// stack and push the result, per spec.md §6's "consume top values, push
// results" contract. Once every operand has been read as an integer, the
// inputs are freed (their storage reclaimed), whether they were shallow
// small ints or allocated bignums. If an operand is not an integer, the
// call returns TypeError and the popped operands are neither freed nor
// pushed back.

// IntAdd pops b then a, pushes a+b.
func (c *Context) IntAdd() Status {
	b := c.Pop()
	a := c.Pop()
	av, st := c.readInt(a)
	if st != OK {
		return st
	}
	bv, st := c.readInt(b)
	if st != OK {
		return st
	}
	c.freeInt(a)
	c.freeInt(b)
	return c.introBignum(av.Add(bv))
}

// IntMul pops b then a, pushes a*b.
func (c *Context) IntMul() Status {
	b := c.Pop()
	a := c.Pop()
	av, st := c.readInt(a)
	if st != OK {
		return st
	}
	bv, st := c.readInt(b)
	if st != OK {
		return st
	}
	c.freeInt(a)
	c.freeInt(b)
	return c.introBignum(av.Mul(bv))
}

// IntNeg negates the top value in place.
func (c *Context) IntNeg() Status {
	a := c.Pop()
	av, st := c.readInt(a)
	if st != OK {
		return st
	}
	c.freeInt(a)
	return c.introBignum(av.Neg())
}

// IntDiv pops divisor then dividend, pushes (quotient, remainder) as a
// product with quotient first — floor division per spec.md §4.3.
func (c *Context) IntDiv() Status {
	divisor := c.Pop()
	dividend := c.Pop()
	dv, st := c.readInt(dividend)
	if st != OK {
		return st
	}
	sv, st := c.readInt(divisor)
	if st != OK {
		return st
	}
	q, r, err := dv.DivMod(sv)
	if err != nil {
		// inputs were validly read; the failure is the zero divisor itself
		c.freeInt(dividend)
		c.freeInt(divisor)
		return TypeError
	}
	c.freeInt(dividend)
	c.freeInt(divisor)
	if st := c.introBignum(q); st != OK {
		return st
	}
	qWord := c.Pop()
	if st := c.introBignum(r); st != OK {
		return st
	}
	rWord := c.Pop()
	pair, ok := c.AllocCell(word.TagPair, qWord, rWord)
	if !ok {
		return CXFull
	}
	c.Push(pair)
	return OK
}
