package dataset

import (
	"math"
	"strconv"
	"strings"
)

// NotAvailable is shown wherever a value is undefined.
const NotAvailable = "N/A"

// FormatNumber renders a number for tables and labels: integers without a
// fraction, everything else with at most four decimals.
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return NotAvailable
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	s := strconv.FormatFloat(v, 'f', 4, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}
