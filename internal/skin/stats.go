package skin

import (
	"math"
	"sort"
)

// percentile returns the p-th percentile (0..100) of vals using linear
// interpolation between order statistics. The mask thresholds were tuned
// against this convention, so it is implemented directly rather than
// through a quantile helper with different interpolation. vals must be
// non-empty and is left unmodified.
func percentile(vals []float64, p float64) float64 {
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)

	h := p / 100 * float64(len(sorted)-1)
	i := int(math.Floor(h))
	if i >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	return sorted[i] + (h-float64(i))*(sorted[i+1]-sorted[i])
}

// median returns the middle value, averaging the central pair for even
// counts.
func median(vals []float64) float64 {
	return percentile(vals, 50)
}

// gather copies the elements of vals selected by idx.
func gather(vals []float64, idx []int) []float64 {
	out := make([]float64, len(idx))
	for i, j := range idx {
		out[i] = vals[j]
	}
	return out
}
