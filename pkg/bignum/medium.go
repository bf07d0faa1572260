package bignum

// Medium holds the up-to-three-digit fast path the reference runtime
// calls a "medium integer": small enough to cover the full int32/int64
// range (int64 needs at most ceil(19/9)=3 base-1e9 digits) but still
// represented as ordinary bignum digits, so alloc/peek of i32 and i64
// values share one code path with general bignum construction instead
// of a separate representation.
type Medium struct {
	Positive   bool
	D0, D1, D2 uint32 // little-endian; D1, D2 may be 0
}

// ToInt expands a Medium into a general Int.
func (m Medium) ToInt() Int {
	digits := []uint32{m.D0, m.D1, m.D2}
	return Int{Positive: m.Positive, Digits: digits}.trim()
}

// AsMedium reports whether a fits in three base-1e9 digits (magnitude
// below 10^27) and, if so, returns its digits. That range is wider than
// int64's; Int64 checks the int64 bound separately.
func (a Int) AsMedium() (Medium, bool) {
	a = a.trim()
	if len(a.Digits) > 3 {
		return Medium{}, false
	}
	m := Medium{Positive: a.Positive}
	for i, d := range a.Digits {
		switch i {
		case 0:
			m.D0 = d
		case 1:
			m.D1 = d
		case 2:
			m.D2 = d
		}
	}
	return m, true
}

// Int64 returns a's value as an int64 along with whether it fit
// (mirrors _wikrt_peek_i64's WIKRT_BUFFSZ-on-overflow contract: the
// caller maps a false result to that status).
func (a Int) Int64() (int64, bool) {
	m, ok := a.AsMedium()
	if !ok || m.D2 > 9 { // a top digit above 9 exceeds int64 (and would overflow mag)
		return 0, false
	}
	mag := uint64(m.D0) + uint64(m.D1)*Base + uint64(m.D2)*Base*Base
	if m.Positive {
		if mag > 9223372036854775807 {
			return 0, false
		}
		return int64(mag), true
	}
	if mag > 9223372036854775808 { // INT64_MIN magnitude
		return 0, false
	}
	if mag == 9223372036854775808 {
		return -9223372036854775808, true
	}
	return -int64(mag), true
}

// Int32 returns a's value as an int32, or false if it does not fit.
func (a Int) Int32() (int32, bool) {
	n, ok := a.Int64()
	if !ok {
		return 0, false
	}
	if n < -2147483648 || n > 2147483647 {
		return 0, false
	}
	return int32(n), true
}
