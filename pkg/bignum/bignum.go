// Package bignum implements the compact binary-coded-decimal bignum
// used once an integer value exceeds the small-integer fast path: a
// sign flag plus a little-endian array of base-1e9 "digits", each in
// 0..999999999 (30 bits), mirroring the object tag's on-arena layout
// exactly so pkg/rt can serialize an Int's Digits slice straight into
// a bignum cell.
//
// Deliberately not built on math/big: the whole point of this package
// is the fixed base-1e9 digit layout the arena's bignum object tag
// requires (see spec §3/§4.3); reaching for math/big would replace the
// component being specified rather than implement it.
package bignum

import (
	"errors"
	"strings"
)

// Base is the value of one digit's place: each digit holds 0..Base-1.
const Base = 1_000_000_000

// Int is an arbitrary-precision signed integer in base-1e9 digits,
// little-endian (Digits[0] is least significant). Zero is always
// Positive with Digits = {0}. A canonical Int (as stored once wrapped
// in a bignum object) never has a leading (most significant) zero
// digit beyond the minimum length of one.
type Int struct {
	Positive bool
	Digits   []uint32
}

// Zero is the additive identity.
func Zero() Int { return Int{Positive: true, Digits: []uint32{0}} }

// FromInt64 converts a native 64-bit integer.
func FromInt64(n int64) Int {
	positive := n >= 0
	var mag uint64
	if n == -9223372036854775808 { // INT64_MIN: negating overflows int64
		mag = 9223372036854775808
	} else if positive {
		mag = uint64(n)
	} else {
		mag = uint64(-n)
	}
	digits := []uint32{uint32(mag % Base)}
	mag /= Base
	for mag > 0 {
		digits = append(digits, uint32(mag%Base))
		mag /= Base
	}
	return Int{Positive: positive, Digits: digits}.trim()
}

// FromInt32 converts a native 32-bit integer.
func FromInt32(n int32) Int { return FromInt64(int64(n)) }

// trim strips most-significant zero digits, keeping at least one digit,
// and normalizes the sign of zero to positive.
func (a Int) trim() Int {
	d := a.Digits
	for len(d) > 1 && d[len(d)-1] == 0 {
		d = d[:len(d)-1]
	}
	positive := a.Positive
	if len(d) == 1 && d[0] == 0 {
		positive = true
	}
	return Int{Positive: positive, Digits: d}
}

// IsZero reports whether a is the additive identity.
func (a Int) IsZero() bool {
	a = a.trim()
	return len(a.Digits) == 1 && a.Digits[0] == 0
}

// cmpMag compares two little-endian base-1e9 magnitude digit slices:
// -1 if x<y, 0 if equal, 1 if x>y. Both must already be trimmed.
func cmpMag(x, y []uint32) int {
	if len(x) != len(y) {
		if len(x) < len(y) {
			return -1
		}
		return 1
	}
	for i := len(x) - 1; i >= 0; i-- {
		if x[i] != y[i] {
			if x[i] < y[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// CmpAbs compares |a| to |b|.
func (a Int) CmpAbs(b Int) int { return cmpMag(a.trim().Digits, b.trim().Digits) }

// Cmp compares a to b, honoring sign.
func (a Int) Cmp(b Int) int {
	a, b = a.trim(), b.trim()
	switch {
	case a.Positive && !b.Positive:
		if a.IsZero() && b.IsZero() {
			return 0
		}
		return 1
	case !a.Positive && b.Positive:
		if a.IsZero() && b.IsZero() {
			return 0
		}
		return -1
	case a.Positive:
		return cmpMag(a.Digits, b.Digits)
	default:
		return -cmpMag(a.Digits, b.Digits)
	}
}

func addMag(x, y []uint32) []uint32 {
	n := len(x)
	if len(y) > n {
		n = len(y)
	}
	out := make([]uint32, 0, n+1)
	var carry uint64
	for i := 0; i < n; i++ {
		var xi, yi uint64
		if i < len(x) {
			xi = uint64(x[i])
		}
		if i < len(y) {
			yi = uint64(y[i])
		}
		s := xi + yi + carry
		out = append(out, uint32(s%Base))
		carry = s / Base
	}
	if carry > 0 {
		out = append(out, uint32(carry))
	}
	return out
}

// subMag computes x-y assuming x>=y (both trimmed magnitudes).
func subMag(x, y []uint32) []uint32 {
	out := make([]uint32, len(x))
	var borrow int64
	for i := range x {
		var yi int64
		if i < len(y) {
			yi = int64(y[i])
		}
		d := int64(x[i]) - yi - borrow
		if d < 0 {
			d += Base
			borrow = 1
		} else {
			borrow = 0
		}
		out[i] = uint32(d)
	}
	return out
}

// Add returns a+b.
func (a Int) Add(b Int) Int {
	a, b = a.trim(), b.trim()
	if a.Positive == b.Positive {
		return Int{Positive: a.Positive, Digits: addMag(a.Digits, b.Digits)}.trim()
	}
	// differing signs: subtract the smaller magnitude from the larger
	switch cmpMag(a.Digits, b.Digits) {
	case 0:
		return Zero()
	case 1:
		return Int{Positive: a.Positive, Digits: subMag(a.Digits, b.Digits)}.trim()
	default:
		return Int{Positive: b.Positive, Digits: subMag(b.Digits, a.Digits)}.trim()
	}
}

// Neg flips the sign, preserving zero.
func (a Int) Neg() Int {
	a = a.trim()
	if a.IsZero() {
		return a
	}
	return Int{Positive: !a.Positive, Digits: a.Digits}
}

// Sub returns a-b.
func (a Int) Sub(b Int) Int { return a.Add(b.Neg()) }

func mulMag(x, y []uint32) []uint32 {
	out := make([]uint64, len(x)+len(y))
	for i, xi := range x {
		if xi == 0 {
			continue
		}
		var carry uint64
		for j, yj := range y {
			p := uint64(xi)*uint64(yj) + out[i+j] + carry
			out[i+j] = p % Base
			carry = p / Base
		}
		k := i + len(y)
		for carry > 0 {
			p := out[k] + carry
			out[k] = p % Base
			carry = p / Base
			k++
		}
	}
	result := make([]uint32, len(out))
	for i, v := range out {
		result[i] = uint32(v)
	}
	return result
}

// Mul returns a*b.
func (a Int) Mul(b Int) Int {
	a, b = a.trim(), b.trim()
	if a.IsZero() || b.IsZero() {
		return Zero()
	}
	return Int{Positive: a.Positive == b.Positive, Digits: mulMag(a.Digits, b.Digits)}.trim()
}

// ErrDivByZero is returned by DivMod when the divisor is zero.
var ErrDivByZero = errors.New("bignum: division by zero")

// DivMod computes floor division: q = floor(a/b), with remainder r
// satisfying a = b*q + r and r having the same sign as b, 0 <= |r| <
// |b| (for b != 0). This matches the floor-division law spec.md §4.3
// requires, not truncating (toward-zero) division.
func (a Int) DivMod(b Int) (q, r Int, err error) {
	a, b = a.trim(), b.trim()
	if b.IsZero() {
		return Int{}, Int{}, ErrDivByZero
	}
	if a.IsZero() {
		return Zero(), Zero(), nil
	}

	// Truncating division on magnitudes, via decimal long division
	// (simpler to get right than a base-1e9 multi-digit quotient
	// estimate; digits round-trip exactly through decimalDigits).
	aDec := toDecimalDigits(a.Digits)
	bDec := toDecimalDigits(b.Digits)
	qDec, rDec := divModDecimal(aDec, bDec)

	qTrunc := Int{Positive: a.Positive == b.Positive, Digits: fromDecimalDigits(qDec)}.trim()
	rTrunc := Int{Positive: a.Positive, Digits: fromDecimalDigits(rDec)}.trim()

	if rTrunc.IsZero() || a.Positive == b.Positive {
		// exact division, or same-sign operands: truncating == floor
		return qTrunc, rTrunc, nil
	}
	// differing signs and a nonzero truncated remainder: floor rounds
	// the quotient one further negative and flips the remainder to
	// take the divisor's sign, per spec.md's documented examples.
	q = qTrunc.Sub(FromInt64(1))
	r = rTrunc.Add(b)
	return q, r, nil
}

func toDecimalDigits(digits []uint32) []byte {
	s := joinBase1e9(digits)
	out := make([]byte, len(s))
	for i := range s {
		out[i] = s[i] - '0'
	}
	return out
}

func fromDecimalDigits(dec []byte) []uint32 {
	var sb strings.Builder
	for _, d := range dec {
		sb.WriteByte('0' + d)
	}
	return decimalStringToBase1e9(sb.String())
}
