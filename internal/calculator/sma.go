// Package calculator computes the rolling technical indicators over an
// assembled close-price series. All functions return one value per input
// row, with NaN marking the warm-up rows where the window is not yet full.
package calculator

import "math"

// RollingSMA computes the trailing simple moving average over window
// observations, inclusive of the current one. The first window-1 entries
// are NaN. A NaN anywhere inside a window makes that window's mean NaN.
func RollingSMA(values []float64, window int) []float64 {
	out := nanSlice(len(values))
	if window <= 0 || len(values) < window {
		return out
	}
	for i := window - 1; i < len(values); i++ {
		sum := 0.0
		ok := true
		for j := i - window + 1; j <= i; j++ {
			if math.IsNaN(values[j]) {
				ok = false
				break
			}
			sum += values[j]
		}
		if ok {
			out[i] = sum / float64(window)
		}
	}
	return out
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
