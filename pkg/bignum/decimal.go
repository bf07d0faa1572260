package bignum

import (
	"fmt"
	"strings"
)

// joinBase1e9 renders little-endian base-1e9 digits as an unsigned
// decimal string: the most significant digit unpadded, every inner
// digit zero-padded to 9 places. This is the same grouping
// _wikrt_peek_istr uses to print a bignum's digit array.
func joinBase1e9(digits []uint32) string {
	var sb strings.Builder
	for i := len(digits) - 1; i >= 0; i-- {
		if i == len(digits)-1 {
			fmt.Fprintf(&sb, "%d", digits[i])
		} else {
			fmt.Fprintf(&sb, "%09d", digits[i])
		}
	}
	return sb.String()
}

// decimalStringToBase1e9 parses an unsigned decimal string (no sign, no
// leading zeros except "0" itself) into little-endian base-1e9 digits.
func decimalStringToBase1e9(s string) []uint32 {
	if s == "" {
		return []uint32{0}
	}
	n := len(s)
	groups := (n + 8) / 9
	digits := make([]uint32, groups)
	end := n
	for g := 0; g < groups; g++ {
		start := end - 9
		if start < 0 {
			start = 0
		}
		var v uint32
		fmt.Sscanf(s[start:end], "%d", &v)
		digits[g] = v
		end = start
	}
	return digits
}

// String renders a signed decimal representation: an optional "-"
// prefix followed by the unsigned digit string, matching the decimal
// integer literal grammar used by intro_istr/peek_istr.
func (a Int) String() string {
	a = a.trim()
	s := joinBase1e9(a.Digits)
	if !a.Positive && s != "0" {
		return "-" + s
	}
	return s
}

// Parse reads a decimal integer literal: an optional leading '-', then
// one or more decimal digits, with no leading zero unless the value is
// exactly "0" and no other characters (no '+', no whitespace, no
// separators). This is the grammar intro_istr accepts.
func Parse(s string) (Int, error) {
	if s == "" {
		return Int{}, fmt.Errorf("bignum: empty literal")
	}
	positive := true
	body := s
	if s[0] == '-' {
		positive = false
		body = s[1:]
	}
	if body == "" {
		return Int{}, fmt.Errorf("bignum: %q has no digits", s)
	}
	for i := 0; i < len(body); i++ {
		if body[i] < '0' || body[i] > '9' {
			return Int{}, fmt.Errorf("bignum: %q has a non-digit character", s)
		}
	}
	if len(body) > 1 && body[0] == '0' {
		return Int{}, fmt.Errorf("bignum: %q has a leading zero", s)
	}
	if body == "0" {
		positive = true
	}
	return Int{Positive: positive, Digits: decimalStringToBase1e9(body)}.trim(), nil
}
