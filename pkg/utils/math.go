package utils

import (
	"gonum.org/v1/gonum/floats"
)

// Linspace returns n evenly spaced values over [start, end] inclusive.
// n must be at least 2.
func Linspace(start, end float64, n int) []float64 {
	dst := make([]float64, n)
	floats.Span(dst, start, end)
	return dst
}

// ArgMin returns the index of the smallest value. Ties resolve to the
// first occurrence. Returns -1 for an empty slice.
func ArgMin(values []float64) int {
	if len(values) == 0 {
		return -1
	}
	best := 0
	for i, v := range values {
		if v < values[best] {
			best = i
		}
	}
	return best
}
