package vline

import "testing"

func TestBigNumRoundTrip(t *testing.T) {
	cases := []struct{ in, want string }{
		{"0", "0"},
		{"-0", "0"},
		{"007", "7"},
		{"3.140", "3.14"},
		{"-3.140", "-3.14"},
		{"1e3", "1000"},
		{"1.5e2", "150"},
		{"0.00100", "0.001"},
	}
	for _, c := range cases {
		got := NewBigNumString(c.in).String()
		if got != c.want {
			t.Errorf("NewBigNumString(%q).String() = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestBigNumAddSub(t *testing.T) {
	a := NewBigNumString("123.45")
	b := NewBigNumString("67.891")
	if got := a.Add(b).String(); got != "191.341" {
		t.Errorf("add = %s, want 191.341", got)
	}
	if got := a.Sub(b).String(); got != "55.559" {
		t.Errorf("sub = %s, want 55.559", got)
	}
	if got := b.Sub(a).String(); got != "-55.559" {
		t.Errorf("sub reversed = %s, want -55.559", got)
	}
}

func TestBigNumMulBelowAndAboveFFTThreshold(t *testing.T) {
	a := NewBigNumInt(123456789)
	b := NewBigNumInt(987654321)
	small := a.Mul(b)

	bigA := NewBigNumString("1" + repeatDigit("0", 40))
	bigB := NewBigNumString("2" + repeatDigit("0", 40))
	big := bigA.Mul(bigB)

	if small.IsZero() || big.IsZero() {
		t.Fatalf("unexpected zero product")
	}
	if big.String()[0] != '2' {
		t.Errorf("big product leading digit = %q, want 2...", big.String())
	}
}

func repeatDigit(d string, n int) string {
	s := ""
	for i := 0; i < n; i++ {
		s += d
	}
	return s
}

func TestBigNumDivMod(t *testing.T) {
	a := NewBigNumInt(17)
	b := NewBigNumInt(5)
	q, err := a.Div(b)
	if err != nil {
		t.Fatal(err)
	}
	if got := q.String(); got[0:1] != "3" {
		t.Errorf("17/5 = %s, want to start with 3", got)
	}
	m, err := a.Mod(b)
	if err != nil {
		t.Fatal(err)
	}
	if got := m.String(); got != "2" {
		t.Errorf("17%%5 = %s, want 2", got)
	}
}

func TestBigNumDivByZero(t *testing.T) {
	a := NewBigNumInt(1)
	zero := NewBigNumInt(0)
	if _, err := a.Div(zero); err == nil {
		t.Fatal("expected ZeroDivisionError, got nil")
	}
	if _, err := a.Mod(zero); err == nil {
		t.Fatal("expected ZeroDivisionError, got nil")
	}
}

func TestBigNumPow(t *testing.T) {
	base := NewBigNumInt(2)
	exp := NewBigNumInt(10)
	if got := base.Pow(exp).String(); got != "1024" {
		t.Errorf("2^10 = %s, want 1024", got)
	}
}

func TestBigNumCmp(t *testing.T) {
	a := NewBigNumString("-5.5")
	b := NewBigNumString("5.5")
	if a.Cmp(b) >= 0 {
		t.Errorf("-5.5 should compare less than 5.5")
	}
	if b.Cmp(a) <= 0 {
		t.Errorf("5.5 should compare greater than -5.5")
	}
	if a.Cmp(a) != 0 {
		t.Errorf("a should equal itself")
	}
}

func TestBigNumInt64Saturates(t *testing.T) {
	huge := NewBigNumString("99999999999999999999999999999999999999")
	if got := huge.Int64(); got <= 0 {
		t.Errorf("Int64() of a huge positive should saturate positive, got %d", got)
	}
}
