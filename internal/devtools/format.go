package devtools

import "strconv"

// trimTrailingZeros formats a float the way the source patcher wants
// numeric literals written: no trailing ".000000" for whole numbers, but
// no precision lost for fractional ones.
func trimTrailingZeros(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
