package numio

import (
	"math"
	"strconv"
	"strings"
)

// FormatCanonical renders v as the shortest decimal string that parses back
// to v, in the notation used by the result files:
//
//	0       -> "0.0"        1e-4    -> "1.0E-4"
//	1       -> "1.0"        1.5e16  -> "1.5E16"
//	√3      -> "1.7320508075688772"
//
// Magnitudes in [1e-3, 1e7) use plain notation and everything else uses
// scientific notation. Integral mantissas always carry ".0".
func FormatCanonical(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		if math.Signbit(v) {
			return "-0.0"
		}
		return "0.0"
	}

	abs := math.Abs(v)
	if abs >= 1e-3 && abs < 1e7 {
		s := strconv.FormatFloat(v, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	}

	s := strconv.FormatFloat(v, 'E', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "E")
	if !strings.Contains(mantissa, ".") {
		mantissa += ".0"
	}
	exp = strings.TrimPrefix(exp, "+")
	sign := ""
	if strings.HasPrefix(exp, "-") {
		sign, exp = "-", exp[1:]
	}
	exp = strings.TrimLeft(exp, "0")
	return mantissa + "E" + sign + exp
}
