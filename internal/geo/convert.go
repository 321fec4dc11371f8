package geo

import (
	"errors"
	"fmt"
	"math"

	exifcommon "github.com/dsoprea/go-exif/v3/common"
)

// ErrNotNumeric is returned when a coordinate value is not a sequence of numbers.
var ErrNotNumeric = errors.New("coordinate value is not a numeric sequence")

// ToDecimal converts a degrees/minutes/seconds sequence to decimal degrees.
//
// Accepted inputs are the slice types the EXIF decoder produces
// ([]exifcommon.Rational, []exifcommon.SignedRational) as well as plain
// numeric slices and []any holding any of those element types. The length
// is not validated: every element n contributes value[n] / 60^n.
// A rational with a zero denominator contributes NaN.
func ToDecimal(value any) (float64, error) {
	var parts []float64

	switch v := value.(type) {
	case []exifcommon.Rational:
		parts = make([]float64, len(v))
		for i, r := range v {
			parts[i] = ratio(float64(r.Numerator), float64(r.Denominator))
		}
	case []exifcommon.SignedRational:
		parts = make([]float64, len(v))
		for i, r := range v {
			parts[i] = ratio(float64(r.Numerator), float64(r.Denominator))
		}
	case []float64:
		parts = v
	case []any:
		parts = make([]float64, len(v))
		for i, elem := range v {
			f, err := toFloat(elem)
			if err != nil {
				return 0, fmt.Errorf("element %d: %w", i, err)
			}
			parts[i] = f
		}
	default:
		return 0, fmt.Errorf("%w: got %T", ErrNotNumeric, value)
	}

	return sum(parts), nil
}

// sum folds the components into decimal degrees.
func sum(parts []float64) float64 {
	var total float64
	for n, p := range parts {
		total += p / math.Pow(60, float64(n))
	}
	return total
}

// toFloat converts a single numeric element.
func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case exifcommon.Rational:
		return ratio(float64(n.Numerator), float64(n.Denominator)), nil
	case exifcommon.SignedRational:
		return ratio(float64(n.Numerator), float64(n.Denominator)), nil
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint16:
		return float64(n), nil
	case uint32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("%w: got %T", ErrNotNumeric, v)
	}
}

// ratio divides, yielding NaN for a zero denominator.
func ratio(num, den float64) float64 {
	if den == 0 {
		return math.NaN()
	}
	return num / den
}
