// Package stats computes the cross-hospital benchmark aggregates over the
// scoped price table. All aggregators are pure, return empty slices on empty
// input, and resolve numeric edge cases (division by zero, empty groups) to
// NaN instead of failing, so reporting can render "insufficient data".
package stats

import (
	"math"
	"sort"
)

// Quantile returns the linearly-interpolated q-quantile of values
// (the same interpolation pandas and numpy default to). NaN on empty input.
func Quantile(values []float64, q float64) float64 {
	n := len(values)
	if n == 0 {
		return math.NaN()
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	pos := q * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo < 0 {
		lo = 0
	}
	if hi > n-1 {
		hi = n - 1
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// Median is the 0.5 quantile.
func Median(values []float64) float64 {
	return Quantile(values, 0.5)
}

// Mean returns the arithmetic mean, NaN on empty input.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// PopStd returns the population standard deviation (denominator N, not N−1).
func PopStd(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return math.NaN()
	}
	mean := Mean(values)
	sumSq := 0.0
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(n))
}

// CV is the coefficient of variation: population std over mean.
// NaN when the mean is zero or undefined.
func CV(values []float64) float64 {
	mean := Mean(values)
	if mean == 0 || math.IsNaN(mean) {
		return math.NaN()
	}
	return PopStd(values) / mean
}

// Ratio divides num by den, yielding NaN instead of raising on a zero or
// undefined denominator.
func Ratio(num, den float64) float64 {
	if den == 0 || math.IsNaN(den) || math.IsNaN(num) {
		return math.NaN()
	}
	return num / den
}

func minOf(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxOf(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
