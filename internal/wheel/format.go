package wheel

import "strconv"

// formatValue prints v with the shortest representation that round-trips.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
