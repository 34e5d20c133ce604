package qmood

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxPrecision is the largest supported number of decimal places
const MaxPrecision = 15

// FormatValue renders a metric value for output. NaN is a null cell and
// infinities are "inf"/"-inf". With precision 0 the value is the shortest
// decimal that round-trips: positional with ".0" appended to integral values,
// or exponent form ("1e+21", "1e-07") when the decimal exponent is below -4
// or at least 16. Otherwise it is rounded half away from zero to precision
// places.
func FormatValue(v float64, precision int) string {
	switch {
	case math.IsNaN(v):
		return ""
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}

	if precision > 0 {
		return decimal.NewFromFloat(v).StringFixed(int32(precision)) //nolint:gosec // bounded by MaxPrecision
	}

	sci := strconv.FormatFloat(v, 'e', -1, 64)
	if exp, err := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:]); err == nil && (exp < -4 || exp >= 16) {
		return sci
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}

	return s
}
