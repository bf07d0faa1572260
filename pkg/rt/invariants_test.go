package rt

import (
	"testing"

	"github.com/abc-lang/abcrt/pkg/arena"
	"github.com/abc-lang/abcrt/pkg/word"
)

func newTestContext(t *testing.T) *Context {
	t.Helper()
	g := arena.NewGroup(1 << 20)
	return NewContext(g)
}

// Boundary scenario 1 (spec.md §8): small-int/bignum boundary.
func TestSmallIntBignumBoundary(t *testing.T) {
	c := newTestContext(t)

	if st := c.IntroI32(1073741823); st != OK {
		t.Fatalf("IntroI32(max small): %v", st)
	}
	n, st := c.PeekI32()
	if st != OK || n != 1073741823 {
		t.Fatalf("PeekI32 = %d, %v", n, st)
	}
	if !c.Top().IsSmallInt() {
		t.Fatal("1073741823 should be a shallow small int")
	}
	c.Pop()

	if st := c.IntroI32(1073741824); st != OK {
		t.Fatalf("IntroI32(first bignum): %v", st)
	}
	if c.Top().IsSmallInt() {
		t.Fatal("1073741824 should allocate a bignum")
	}
	n, st = c.PeekI32()
	if st != OK || n != 1073741824 {
		t.Fatalf("PeekI32 = %d, %v", n, st)
	}
}

// Boundary scenario 2: 64-bit extremes round-trip through peek_istr.
func TestInt64ExtremesRoundTripIStr(t *testing.T) {
	c := newTestContext(t)
	for _, n := range []int64{-9223372036854775807, -9223372036854775808} {
		if st := c.IntroI64(n); st != OK {
			t.Fatalf("IntroI64(%d): %v", n, st)
		}
		s, st := c.PeekIStr()
		if st != OK {
			t.Fatalf("PeekIStr: %v", st)
		}
		c.Pop()
		if st := c.IntroIStr(s); st != OK {
			t.Fatalf("IntroIStr(%q): %v", s, st)
		}
		got, st := c.PeekI64()
		if st != OK || got != n {
			t.Fatalf("round trip via %q = %d, want %d", s, got, n)
		}
		c.Pop()
	}
}

// Boundary scenario 3: a deep sum of 14 Ls packs into exactly two cells
// (12 directions fill the first cell's tag, the other 2 start a second).
// The base value must already be an object reference (not a bare
// product) so the zero-allocation product-retag path never triggers —
// every one of the 14 wraps is a genuine deep-sum push.
func TestDeepSumFourteenLsTwoCells(t *testing.T) {
	c := newTestContext(t)
	if st := c.IntroI32(2000000000); st != OK { // forces a bignum object
		t.Fatalf("IntroI32: %v", st)
	}
	base := c.Top()
	before := c.BytesAllocated

	for i := 0; i < 14; i++ {
		if st := c.WrapSum(L); st != OK {
			t.Fatalf("WrapSum #%d: %v", i, st)
		}
	}
	allocated := c.BytesAllocated - before
	if allocated != 2*8 {
		t.Fatalf("14 Ls allocated %d bytes, want 16 (two cells)", allocated)
	}

	for i := 13; i >= 0; i-- {
		dir, st := c.UnwrapSum()
		if st != OK || dir != L {
			t.Fatalf("unwrap #%d: dir=%v st=%v", i, dir, st)
		}
	}
	if c.Top() != base {
		t.Fatal("unwrapping 14 Ls should return to the base value")
	}
}

// Boundary scenario 4: small vs large sealer allocation cost.
func TestSealerAllocationCost(t *testing.T) {
	c := newTestContext(t)

	c.Push(word.FromInt32(42))
	before := c.BytesAllocated
	if st := c.WrapSeal(":m"); st != OK {
		t.Fatalf("WrapSeal: %v", st)
	}
	if got := c.BytesAllocated - before; got != 8 {
		t.Fatalf("small sealer cost %d bytes, want 8", got)
	}
	tok, st := c.UnwrapSeal()
	if st != OK || tok != ":m" {
		t.Fatalf("UnwrapSeal = %q, %v", tok, st)
	}
	v := c.Pop()
	if v.Int32() != 42 {
		t.Fatal("sealed value corrupted")
	}

	c.Push(word.FromInt32(7))
	before = c.BytesAllocated
	if st := c.WrapSeal("abracadabra"); st != OK {
		t.Fatalf("WrapSeal large: %v", st)
	}
	// one cell (8 bytes) + 11 token bytes, rounded up to whole cells (24 bytes)
	if got := c.BytesAllocated - before; got != 24 {
		t.Fatalf("large sealer cost %d bytes, want 24", got)
	}
	tok, st = c.UnwrapSeal()
	if st != OK || tok != "abracadabra" {
		t.Fatalf("UnwrapSeal = %q, %v", tok, st)
	}
}

// Boundary scenario 5: division rounding.
func TestDivisionRounding(t *testing.T) {
	c := newTestContext(t)
	c.Push(word.FromInt32(-11))
	c.Push(word.FromInt32(3))
	if st := c.IntDiv(); st != OK {
		t.Fatalf("IntDiv: %v", st)
	}
	pair := c.Pop()
	q, r := c.GetCell(pair.Addr())
	if q.Int32() != -4 || r.Int32() != 1 {
		t.Fatalf("-11 / 3 = (%d, %d), want (-4, 1)", q.Int32(), r.Int32())
	}
}

// Boundary scenario 6: text introduction, including a partial UTF-8 failure.
func TestTextIntroduction(t *testing.T) {
	c := newTestContext(t)
	if st := c.IntroText("←↑→↓", 1<<20); st != OK {
		t.Fatalf("IntroText: %v", st)
	}
	list := c.Pop()
	cps, rest, st := c.ReadText(list, 10)
	if st != OK {
		t.Fatalf("ReadText: %v", st)
	}
	want := []rune{0x2190, 0x2191, 0x2192, 0x2193}
	if len(cps) != len(want) {
		t.Fatalf("ReadText got %v, want %v", cps, want)
	}
	for i := range want {
		if cps[i] != want[i] {
			t.Fatalf("ReadText[%d] = %U, want %U", i, cps[i], want[i])
		}
	}
	if rest != word.UnitInR {
		t.Fatal("list should terminate in right-unit")
	}

	if st := c.IntroText("→", 1); st != INVAL {
		t.Fatalf("IntroText partial UTF-8: %v, want INVAL", st)
	}
}

// Invariant 1 (alloc/free symmetry): a product built then dropped
// leaves the free-cell count unchanged.
func TestNoLeakOnBuildAndDrop(t *testing.T) {
	c := newTestContext(t)
	c.Push(word.FromInt32(1))
	c.Push(word.FromInt32(2))
	pair, ok := c.AllocCell(word.TagPair, c.Pop(), c.Pop())
	if !ok {
		t.Fatal("alloc failed")
	}
	before := c.BytesAllocated - c.BytesFreed
	c.Push(pair)
	if st := c.Drop(); st != OK {
		t.Fatalf("Drop: %v", st)
	}
	after := c.BytesAllocated - c.BytesFreed
	if after != before-8 {
		t.Fatalf("live bytes before=%d after=%d, want a drop of exactly one cell", before, after)
	}
}

// Invariant 2: copy then two drops returns to the initial byte count,
// for a non-affine/relevant value.
func TestCopyTwoDropsRoundTrip(t *testing.T) {
	c := newTestContext(t)
	c.Push(word.FromInt32(1))
	c.Push(word.FromInt32(2))
	b, a := c.Pop(), c.Pop()
	before := c.BytesAllocated - c.BytesFreed
	pair, ok := c.AllocCell(word.TagPair, a, b)
	if !ok {
		t.Fatal("alloc failed")
	}

	c.Push(pair)
	if st := c.Copy(); st != OK {
		t.Fatalf("Copy: %v", st)
	}
	if st := c.Drop(); st != OK {
		t.Fatalf("Drop copy: %v", st)
	}
	if st := c.Drop(); st != OK {
		t.Fatalf("Drop original: %v", st)
	}
	after := c.BytesAllocated - c.BytesFreed
	if after != before {
		t.Fatalf("live bytes before=%d after=%d, copy+2*drop should be a no-op", before, after)
	}
}

// Invariant: copying an affine block fails; dropping a relevant block fails.
func TestAffineRelevantBlocks(t *testing.T) {
	c := newTestContext(t)

	c.IntroUnit()
	body := c.Pop()
	blk, st := c.MakeBlock(body, true, false)
	if st != OK {
		t.Fatalf("MakeBlock: %v", st)
	}
	c.Push(blk)
	if st := c.Copy(); st != TypeError {
		t.Fatalf("Copy of affine block = %v, want TypeError", st)
	}
	// drop the affine block itself (not relevant, so this must succeed)
	if st := c.Drop(); st != OK {
		t.Fatalf("Drop of non-relevant block: %v", st)
	}

	c.IntroUnit()
	body = c.Pop()
	blk, st = c.MakeBlock(body, false, true)
	if st != OK {
		t.Fatalf("MakeBlock: %v", st)
	}
	c.Push(blk)
	if st := c.Drop(); st != TypeError {
		t.Fatalf("Drop of relevant block = %v, want TypeError", st)
	}
	c.Pop()
}

// Invariant 7: int_div satisfies a = b*q + r with 0 <= r < |b| for b > 0.
func TestIntDivLaw(t *testing.T) {
	cases := []struct{ a, b int32 }{{11, 3}, {-11, 3}, {11, -3}, {-11, -3}, {100, 7}}
	for _, tc := range cases {
		c := newTestContext(t)
		c.Push(word.FromInt32(tc.a))
		c.Push(word.FromInt32(tc.b))
		if st := c.IntDiv(); st != OK {
			t.Fatalf("IntDiv(%d,%d): %v", tc.a, tc.b, st)
		}
		pair := c.Pop()
		q, r := c.GetCell(pair.Addr())
		check := int64(tc.b)*int64(q.Int32()) + int64(r.Int32())
		if check != int64(tc.a) {
			t.Fatalf("%d = %d*%d + %d failed (got %d)", tc.a, tc.b, q.Int32(), r.Int32(), check)
		}
		if tc.b > 0 && (r.Int32() < 0 || r.Int32() >= tc.b) {
			t.Fatalf("remainder %d out of [0,%d)", r.Int32(), tc.b)
		}
	}
}

// Invariant 4: wrap_sum/unwrap_sum round trip for both directions.
func TestWrapUnwrapRoundTrips(t *testing.T) {
	c := newTestContext(t)
	for _, dir := range []Dir{L, R} {
		c.Push(word.FromInt32(99))
		if st := c.WrapSum(dir); st != OK {
			t.Fatalf("WrapSum: %v", st)
		}
		got, st := c.UnwrapSum()
		if st != OK || got != dir {
			t.Fatalf("UnwrapSum = %v, %v; want %v", got, st, dir)
		}
		if c.Pop().Int32() != 99 {
			t.Fatal("value corrupted across wrap/unwrap")
		}
	}
}

// Invariant 6: sum_distrib and sum_factor are mutual inverses, both
// operating on a single product value (a, sum) rather than two
// separate stack slots.
func TestSumDistribFactorInverse(t *testing.T) {
	c := newTestContext(t)
	c.Push(word.FromInt32(1))
	c.Push(word.FromInt32(2))
	if st := c.WrapSum(L); st != OK {
		t.Fatalf("WrapSum: %v", st)
	}
	sum := c.Pop()
	a := c.Pop()
	pair, ok := c.AllocCell(word.TagPair, a, sum)
	if !ok {
		t.Fatal("alloc failed")
	}

	c.Push(pair)
	if st := c.SumDistrib(); st != OK {
		t.Fatalf("SumDistrib: %v", st)
	}
	if st := c.SumFactor(); st != OK {
		t.Fatalf("SumFactor: %v", st)
	}

	result := c.Pop()
	if result.Tag() != word.TagPair {
		t.Fatalf("round trip should yield a product, got tag %v", result.Tag())
	}
	ra, rsum := c.GetCell(result.Addr())
	if ra.Int32() != 1 {
		t.Fatal("a corrupted")
	}
	dir, b, st := c.unwrapSumValue(rsum)
	if st != OK || dir != L {
		t.Fatalf("unwrap after round trip: dir=%v st=%v", dir, st)
	}
	if b.Int32() != 2 {
		t.Fatal("b corrupted")
	}
}
