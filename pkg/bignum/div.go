package bignum

// divModDecimal performs unsigned schoolbook long division on
// most-significant-first decimal digit slices (each byte 0..9, not
// ASCII). b must be non-zero. Returns truncating quotient and
// remainder, both most-significant-first and trimmed of leading zeros
// (but never empty).
//
// This operates on base-10 digits rather than the type's native
// base-1e9 digits: estimating a base-1e9 quotient digit needs a
// multi-word trial-and-correct step, whereas a base-10 trial digit is
// just "try 0..9", which is simple enough to get right without a
// bignum division algorithm of its own.
func divModDecimal(a, b []byte) (q, r []byte) {
	q = make([]byte, 0, len(a))
	rem := []byte{0}
	for _, d := range a {
		rem = trimDecimal(append(rem, d))
		digit := byte(0)
		for cand := byte(9); ; cand-- {
			prod := mulSmallDecimal(b, cand)
			if cmpDecimal(prod, rem) <= 0 {
				digit = cand
				rem = subDecimal(rem, prod)
				break
			}
			if cand == 0 {
				break
			}
		}
		q = append(q, digit)
	}
	return trimDecimal(q), trimDecimal(rem)
}

func trimDecimal(d []byte) []byte {
	i := 0
	for i < len(d)-1 && d[i] == 0 {
		i++
	}
	return d[i:]
}

// cmpDecimal compares two most-significant-first, already-trimmed
// decimal digit slices: -1, 0, or 1.
func cmpDecimal(x, y []byte) int {
	if len(x) != len(y) {
		if len(x) < len(y) {
			return -1
		}
		return 1
	}
	for i := range x {
		if x[i] != y[i] {
			if x[i] < y[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// mulSmallDecimal multiplies a decimal digit slice by a single digit
// 0..9, most-significant-first.
func mulSmallDecimal(d []byte, x byte) []byte {
	out := make([]byte, len(d)+1)
	var carry byte
	for i := len(d) - 1; i >= 0; i-- {
		p := d[i]*x + carry
		out[i+1] = p % 10
		carry = p / 10
	}
	out[0] = carry
	return trimDecimal(out)
}

// subDecimal computes x-y assuming x>=y, both most-significant-first.
func subDecimal(x, y []byte) []byte {
	out := make([]byte, len(x))
	var borrow int8
	yi := len(y) - 1
	for i := len(x) - 1; i >= 0; i-- {
		var ydig int8
		if yi >= 0 {
			ydig = int8(y[yi])
			yi--
		}
		v := int8(x[i]) - ydig - borrow
		if v < 0 {
			v += 10
			borrow = 1
		} else {
			borrow = 0
		}
		out[i] = byte(v)
	}
	return trimDecimal(out)
}
