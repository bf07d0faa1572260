package main

import (
	"fmt"

	"github.com/abc-lang/abcrt/pkg/arena"
	"github.com/abc-lang/abcrt/pkg/rt"
	"github.com/abc-lang/abcrt/pkg/word"
)

// check is one named boolean assertion against a fresh context.
type check struct {
	name string
	run  func(c *rt.Context) error
}

var selfChecks = []check{
	{"small-int/bignum boundary", func(c *rt.Context) error {
		if st := c.IntroI32(1073741823); st != rt.OK || !c.Top().IsSmallInt() {
			return fmt.Errorf("1073741823 should stay a shallow small int, got status %v", st)
		}
		c.Pop()
		if st := c.IntroI32(1073741824); st != rt.OK || c.Top().IsSmallInt() {
			return fmt.Errorf("1073741824 should allocate a bignum, got status %v", st)
		}
		c.Pop()
		return nil
	}},
	{"wrap_sum/unwrap_sum round trip", func(c *rt.Context) error {
		c.Push(word.FromInt32(42))
		if st := c.WrapSum(rt.L); st != rt.OK {
			return fmt.Errorf("wrap_sum: %v", st)
		}
		dir, st := c.UnwrapSum()
		if st != rt.OK || dir != rt.L {
			return fmt.Errorf("unwrap_sum: dir=%v st=%v", dir, st)
		}
		if c.Pop().Int32() != 42 {
			return fmt.Errorf("value corrupted across wrap/unwrap")
		}
		return nil
	}},
	{"int_div floor-division law", func(c *rt.Context) error {
		c.Push(word.FromInt32(-11))
		c.Push(word.FromInt32(3))
		if st := c.IntDiv(); st != rt.OK {
			return fmt.Errorf("int_div: %v", st)
		}
		pair := c.Pop()
		q, r := c.GetCell(pair.Addr())
		if q.Int32() != -4 || r.Int32() != 1 {
			return fmt.Errorf("-11/3 = (%d,%d), want (-4,1)", q.Int32(), r.Int32())
		}
		return nil
	}},
	{"copy+2*drop is a no-op on byte count", func(c *rt.Context) error {
		c.Push(word.FromInt32(1))
		c.Push(word.FromInt32(2))
		b, a := c.Pop(), c.Pop()
		before := c.BytesAllocated - c.BytesFreed
		pair, ok := c.AllocCell(word.TagPair, a, b)
		if !ok {
			return fmt.Errorf("alloc failed")
		}
		c.Push(pair)
		if st := c.Copy(); st != rt.OK {
			return fmt.Errorf("copy: %v", st)
		}
		if st := c.Drop(); st != rt.OK {
			return fmt.Errorf("drop copy: %v", st)
		}
		if st := c.Drop(); st != rt.OK {
			return fmt.Errorf("drop original: %v", st)
		}
		after := c.BytesAllocated - c.BytesFreed
		if after != before {
			return fmt.Errorf("live bytes before=%d after=%d", before, after)
		}
		return nil
	}},
	{"affine block rejects copy", func(c *rt.Context) error {
		c.IntroUnit()
		body := c.Pop()
		blk, st := c.MakeBlock(body, true, false)
		if st != rt.OK {
			return fmt.Errorf("make_block: %v", st)
		}
		c.Push(blk)
		if st := c.Copy(); st != rt.TypeError {
			return fmt.Errorf("copy of affine block = %v, want TYPE_ERROR", st)
		}
		c.Drop()
		return nil
	}},
	{"token validation rejects braces and control bytes", func(c *rt.Context) error {
		if rt.ValidToken("foo{bar") {
			return fmt.Errorf("token with '{' should be invalid")
		}
		if rt.ValidToken("foo\x01bar") {
			return fmt.Errorf("token with a control byte should be invalid")
		}
		if !rt.ValidToken("resource.read") {
			return fmt.Errorf("a plain identifier token should be valid")
		}
		return nil
	}},
}

// runSelftest runs every check against its own fresh context (so one
// check's leftover stack or arena state can't corrupt the next) and
// prints a pass/fail line for each. It returns the number of checks
// that failed. groupSize sizes each check's private arena.
func runSelftest(groupSize int) int {
	failed := 0
	for _, chk := range selfChecks {
		c := rt.NewContext(arena.NewGroup(groupSize))
		if err := chk.run(c); err != nil {
			fmt.Printf("FAIL  %-45s %v\n", chk.name, err)
			failed++
			continue
		}
		fmt.Printf("PASS  %s\n", chk.name)
	}
	return failed
}
