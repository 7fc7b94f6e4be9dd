package units

import (
	"math"
	"strings"
	"testing"
)

func TestFormatSI_Basics(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0 "},
		{1234, "1.23 k"},
		{-1234, "-1.23 k"},
		{1.234e-9, "1.23 n"},
		{12.34e-6, "12.3 μ"},
		{0.25, "250 m"},
		{42, "42 "},
		{1.234e13, "12.3 T"},
	}
	for _, c := range cases {
		got := FormatSI(c.in, 3, "")
		if got != c.want {
			t.Fatalf("FormatSI(%v)=%q want %q", c.in, got, c.want)
		}
	}
}

func TestFormatSI_TierPromotionAtBoundary(t *testing.T) {
	// 999.96 rounds to 1000 before classification and must land in the k
	// tier with mantissa 1, never print "1000 ".
	if got := FormatSI(999.96, 3, ""); got != "1 k" {
		t.Fatalf("FormatSI(999.96)=%q", got)
	}
	if got := FormatSI(-999.96, 3, ""); got != "-1 k" {
		t.Fatalf("FormatSI(-999.96)=%q", got)
	}
}

func TestFormatSI_EveryTier(t *testing.T) {
	wantPrefix := []string{"p", "n", "μ", "m", "", "k", "M", "G", "T"}
	for i, p := range wantPrefix {
		e := i - 4
		in := 1.234 * math.Pow(10, float64(3*e))
		got := FormatSI(in, 3, "")
		want := "1.23 " + p
		if got != want {
			t.Fatalf("tier %d: FormatSI(%v)=%q want %q", e, in, got, want)
		}
	}
}

func TestFormatSI_OutOfRange(t *testing.T) {
	got := FormatSI(1e20, 3, "")
	if !strings.HasSuffix(got, " ") {
		t.Fatalf("FormatSI(1e20)=%q lacks trailing space", got)
	}
	if got != "1e+20 " {
		t.Fatalf("FormatSI(1e20)=%q", got)
	}
	if got := FormatSI(5.67e-16, 3, ""); got != "5.67e-16 " {
		t.Fatalf("FormatSI(5.67e-16)=%q", got)
	}
}

func TestFormatSI_SpecAndPrecision(t *testing.T) {
	if got := FormatSI(1234, 3, "8"); got != "    1.23 k" {
		t.Fatalf("width spec: %q", got)
	}
	if got := FormatSI(1234, 3, "-8"); got != "1.23     k" {
		t.Fatalf("left-align spec: %q", got)
	}
	if got := FormatSI(1234.5, 5, ""); got != "1.2345 k" {
		t.Fatalf("precision 5: %q", got)
	}
	// Non-positive precision falls back to the default.
	if got := FormatSI(1234, 0, ""); got != "1.23 k" {
		t.Fatalf("default precision: %q", got)
	}
}

func TestFormatSI_NonFinite(t *testing.T) {
	if got := FormatSI(math.Inf(1), 3, ""); got != "+Inf " {
		t.Fatalf("inf: %q", got)
	}
	if got := FormatSI(math.Inf(-1), 3, ""); got != "-Inf " {
		t.Fatalf("-inf: %q", got)
	}
	if got := FormatSI(math.NaN(), 3, ""); got != "NaN " {
		t.Fatalf("nan: %q", got)
	}
}

func TestSplit(t *testing.T) {
	m, p := Split(1234, 3)
	if p != "k" || math.Abs(m-1.234) > 1e-9 {
		t.Fatalf("Split(1234)=%v,%q", m, p)
	}
	m, p = Split(0, 3)
	if p != "" || m != 0 {
		t.Fatalf("Split(0)=%v,%q", m, p)
	}
	m, p = Split(999.96, 3)
	if p != "k" || math.Abs(m-1) > 1e-9 {
		t.Fatalf("Split(999.96)=%v,%q", m, p)
	}
	m, p = Split(1e20, 3)
	if p != "" || m != 1e20 {
		t.Fatalf("Split(1e20)=%v,%q", m, p)
	}
	m, p = Split(-2.5e-3, 3)
	if p != "m" || math.Abs(m+2.5) > 1e-9 {
		t.Fatalf("Split(-2.5e-3)=%v,%q", m, p)
	}
}

func TestSplit_MantissaInRange(t *testing.T) {
	// Scaled mantissas stay in [1, 1000) across the representable span.
	for e := -12; e <= 12; e++ {
		in := 1.234 * math.Pow(10, float64(e))
		m, _ := Split(in, 3)
		am := math.Abs(m)
		if am < 1 || am >= 1000 {
			t.Fatalf("Split(%v) mantissa %v out of range", in, m)
		}
	}
}
