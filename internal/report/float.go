package report

import (
	"math"
	"strconv"
	"strings"
)

// FormatFloat renders v the way coordinates files have always been
// written: shortest round-trip digits, always with a decimal point in
// fixed notation ("45.0"), exponent notation when the decimal exponent is
// below -4 or at least 16 ("1e-05", "1.5e+16"), and "nan", "inf", "-inf"
// for non-finite values.
func FormatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	case v == 0:
		if math.Signbit(v) {
			return "-0.0"
		}
		return "0.0"
	}

	if exp := decimalExponent(v); exp < -4 || exp >= 16 {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// decimalExponent returns x such that v = d.ddd × 10^x for the shortest
// round-trip digits of v.
func decimalExponent(v float64) int {
	s := strconv.FormatFloat(v, 'e', -1, 64)
	i := strings.LastIndexByte(s, 'e')
	exp, err := strconv.Atoi(s[i+1:])
	if err != nil {
		return 0
	}
	return exp
}
