package internal

import "sort"

// Median returns the middle value of vs (average of the two middle values
// for even lengths). Returns 0 for an empty slice.
func Median(vs []float64) float64 {
	n := len(vs)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, vs)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// Mean returns the arithmetic mean of vs, or 0 for an empty slice.
func Mean(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs))
}

// Max returns the largest value in vs, or 0 for an empty slice.
func Max(vs []float64) float64 {
	var max float64
	for i, v := range vs {
		if i == 0 || v > max {
			max = v
		}
	}
	return max
}

// Percentile returns the p-th percentile (0..1) of vs using linear
// interpolation between closest ranks, matching PERCENTILE_CONT semantics.
func Percentile(vs []float64, p float64) float64 {
	n := len(vs)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, vs)
	sort.Float64s(sorted)
	if n == 1 {
		return sorted[0]
	}
	rank := p * float64(n-1)
	lo := int(rank)
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}
