package geo

import "strings"

// ApplyHemisphere returns the signed coordinate for a hemisphere reference.
// "S" and "W" negate the magnitude; any other reference leaves it unchanged.
func ApplyHemisphere(value float64, ref any) float64 {
	s, ok := ref.(string)
	if !ok {
		return value
	}
	switch strings.ToUpper(strings.TrimSpace(strings.TrimRight(s, "\x00"))) {
	case "S", "W":
		return -value
	default:
		return value
	}
}
