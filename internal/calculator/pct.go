package calculator

import "math"

// PctChange computes the period-over-period fractional change. The first
// entry is NaN, as is any entry whose previous value is NaN, zero, or
// itself NaN; a zero denominator must not leak an Inf into the series.
func PctChange(values []float64) []float64 {
	out := nanSlice(len(values))
	for i := 1; i < len(values); i++ {
		prev, cur := values[i-1], values[i]
		if math.IsNaN(prev) || math.IsNaN(cur) || prev == 0 {
			continue
		}
		out[i] = (cur - prev) / prev
	}
	return out
}
