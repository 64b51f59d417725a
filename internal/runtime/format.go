package runtime

import "strconv"

// formatNumber renders a float64 the way QBasic's number-to-text
// conversions do: integral values print without a decimal point,
// everything else uses the shortest round-tripping decimal form. Byte-exact
// fidelity with QBasic's own formatting is explicitly out of scope
// (spec.md §1 Non-goals); this covers the sign/trailing-space contract
// PRINT and STR$ both rely on.
func formatNumber(n float64) string {
	if n == float64(int64(n)) {
		return strconv.FormatInt(int64(n), 10)
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}
