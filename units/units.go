// Package units renders numbers with SI metric prefixes so axis ticks and
// annotations across a set of figures share one formatting convention.
package units

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DefaultPrecision is the number of significant digits used when a caller
// passes a non-positive precision.
const DefaultPrecision = 3

// Prefix symbols for base-1000 exponents -4..+4. The micro prefix is the
// Greek mu rune, not ASCII "u".
var prefixes = [...]string{"p", "n", "μ", "m", "", "k", "M", "G", "T"}

const (
	minExp = -4
	maxExp = 4
)

// FormatSI renders number with an SI metric prefix chosen so the mantissa
// falls in [1, 1000), using precision significant digits. spec is an optional
// printf flag/width fragment applied to the numeric part (e.g. "8" or "-10").
//
// The result always carries a trailing space or prefix symbol, so prefixed
// and unprefixed outputs align in columns. Magnitudes outside the p..T range
// degrade to the rounded number with no prefix; the function never fails.
func FormatSI(number float64, precision int, spec string) string {
	if precision <= 0 {
		precision = DefaultPrecision
	}
	verb := "%" + spec + "." + strconv.Itoa(precision) + "g"

	if number == 0 {
		return fmt.Sprintf(verb, 0.0) + " "
	}
	if math.IsNaN(number) || math.IsInf(number, 0) {
		// Policy for non-finite input: pass it through the verb unprefixed.
		return fmt.Sprintf(verb, number) + " "
	}

	rounded, e := roundAndClassify(number, precision)
	if e < minExp || e > maxExp {
		return fmt.Sprintf(verb, rounded) + " "
	}
	mantissa := rounded / math.Pow(1000, float64(e))
	return fmt.Sprintf(verb, mantissa) + " " + prefixes[e-minExp]
}

// Format renders number at the default precision with no format spec.
func Format(number float64) string {
	return FormatSI(number, DefaultPrecision, "")
}

// Split returns the scaled mantissa and prefix symbol for number without
// rendering text. Zero maps to (0, ""); out-of-range magnitudes and
// non-finite values map to the (rounded) input with an empty prefix.
func Split(number float64, precision int) (mantissa float64, prefix string) {
	if precision <= 0 {
		precision = DefaultPrecision
	}
	if number == 0 {
		return 0, ""
	}
	if math.IsNaN(number) || math.IsInf(number, 0) {
		return number, ""
	}
	rounded, e := roundAndClassify(number, precision)
	if e < minExp || e > maxExp {
		return rounded, ""
	}
	return rounded / math.Pow(1000, float64(e)), prefixes[e-minExp]
}

// roundAndClassify rounds v in scientific notation with precision digits
// after the decimal point and returns the rounded value together with its
// base-1000 exponent. Rounding before classifying is what promotes values
// like 999.96 into the next tier instead of printing a 1000 mantissa.
//
// The exponent is read back from the scientific string, so tier boundaries
// are exact and never depend on floating-point log precision.
func roundAndClassify(v float64, precision int) (float64, int) {
	s := strconv.FormatFloat(v, 'e', precision, 64)
	rounded, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return v, maxExp + 1
	}
	i := strings.IndexByte(s, 'e')
	exp10, err := strconv.Atoi(s[i+1:])
	if err != nil {
		return rounded, maxExp + 1
	}
	return rounded, floorDiv(exp10, 3)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
