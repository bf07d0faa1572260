package bignum

import "testing"

func mustParse(t *testing.T, s string) Int {
	t.Helper()
	v, err := Parse(s)
	if err != nil {
		t.Fatalf("Parse(%q): %v", s, err)
	}
	return v
}

func TestParseStringRoundTrip(t *testing.T) {
	for _, s := range []string{"0", "1", "-1", "999999999", "1000000000",
		"123456789", "-123456789", "9876543210", "-9223372036854775808"} {
		v := mustParse(t, s)
		if got := v.String(); got != s {
			t.Fatalf("Parse(%q).String() = %q", s, got)
		}
	}
}

func TestParseRejectsLeadingZero(t *testing.T) {
	if _, err := Parse("007"); err == nil {
		t.Fatal("expected error for leading zero")
	}
}

func TestAdd(t *testing.T) {
	cases := []struct{ a, b, want string }{
		{"60", "-12", "48"},
		{"123456789", "9876543210", "9999999999"},
		{"-5", "-7", "-12"},
		{"5", "-5", "0"},
	}
	for _, c := range cases {
		got := mustParse(t, c.a).Add(mustParse(t, c.b)).String()
		if got != c.want {
			t.Fatalf("%s + %s = %s, want %s", c.a, c.b, got, c.want)
		}
	}
}

func TestMul(t *testing.T) {
	cases := []struct{ a, b, want string }{
		{"19", "-27", "-513"},
		{"123456789", "42", "5185185138"},
		{"0", "123456789", "0"},
	}
	for _, c := range cases {
		got := mustParse(t, c.a).Mul(mustParse(t, c.b)).String()
		if got != c.want {
			t.Fatalf("%s * %s = %s, want %s", c.a, c.b, got, c.want)
		}
	}
}

func TestDivFloorSemantics(t *testing.T) {
	cases := []struct{ a, b, q, r string }{
		{"11", "3", "3", "2"},
		{"-11", "3", "-4", "1"},
		{"11", "-3", "-4", "-1"},
		{"-11", "-3", "3", "-2"},
	}
	for _, c := range cases {
		q, r, err := mustParse(t, c.a).DivMod(mustParse(t, c.b))
		if err != nil {
			t.Fatalf("DivMod(%s,%s): %v", c.a, c.b, err)
		}
		if q.String() != c.q || r.String() != c.r {
			t.Fatalf("DivMod(%s,%s) = (%s,%s), want (%s,%s)", c.a, c.b, q.String(), r.String(), c.q, c.r)
		}
	}
}

func TestDivByZero(t *testing.T) {
	_, _, err := mustParse(t, "5").DivMod(Zero())
	if err == nil {
		t.Fatal("expected division-by-zero error")
	}
}

func TestSmallIntBignumBoundary(t *testing.T) {
	boundary := FromInt64(1073741823)
	if _, ok := boundary.Int32(); !ok {
		t.Fatal("1073741823 should fit int32")
	}
	over := FromInt64(1073741824)
	if over.IsZero() {
		t.Fatal("unexpected zero")
	}
	if len(over.trim().Digits) < 1 {
		t.Fatal("digits missing")
	}
}

func TestInt64Extremes(t *testing.T) {
	for _, n := range []int64{9223372036854775807, -9223372036854775808, 0, 1, -1} {
		v := FromInt64(n)
		got, ok := v.Int64()
		if !ok {
			t.Fatalf("Int64() round trip failed for %d", n)
		}
		if got != n {
			t.Fatalf("FromInt64(%d).Int64() = %d", n, got)
		}
	}
}

func TestMediumRoundTrip(t *testing.T) {
	v := mustParse(t, "123456789012345")
	m, ok := v.AsMedium()
	if !ok {
		t.Fatal("expected medium fit")
	}
	if m.ToInt().String() != "123456789012345" {
		t.Fatalf("medium round trip = %s", m.ToInt().String())
	}
}

func TestCmp(t *testing.T) {
	if mustParse(t, "-5").Cmp(mustParse(t, "3")) >= 0 {
		t.Fatal("-5 should be < 3")
	}
	if mustParse(t, "100").Cmp(mustParse(t, "100")) != 0 {
		t.Fatal("100 should equal 100")
	}
}
