package common

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Statistical and log-frequency helpers shared across the pitch pipeline,
// built on gonum for robustness

// Mean calculates the arithmetic mean of a slice using gonum
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.Mean(data, nil)
}

// Median returns the middle element of the sorted data, or the average of
// the two middle elements for an even count. The input is not modified.
func Median(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}

	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2.0
	}
	return sorted[n/2]
}

// RMS calculates root mean square
func RMS(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}

	sumSquares := 0.0
	for _, val := range data {
		sumSquares += val * val
	}

	return math.Sqrt(sumSquares / float64(len(data)))
}

// CentsBetween returns the signed pitch distance from f1 to f2 in cents
// (100 cents = one equal-tempered semitone). Returns 0 unless both
// frequencies are positive.
func CentsBetween(f1, f2 float64) float64 {
	if f1 <= 0 || f2 <= 0 {
		return 0.0
	}
	return 1200.0 * math.Log2(f2/f1)
}

// SpreadCents returns the total pitch spread of a set of frequencies in
// cents, measured between the smallest and largest value using gonum.
func SpreadCents(freqs []float64) float64 {
	if len(freqs) < 2 {
		return 0.0
	}

	min := floats.Min(freqs)
	max := floats.Max(freqs)
	if min <= 0 {
		return 0.0
	}

	return 1200.0 * math.Log2(max/min)
}
