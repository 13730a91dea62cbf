package calculator

import "math"

// RollingRSI computes the relative strength index over a trailing window of
// daily deltas, using plain rolling means of gains and losses (not Wilder
// smoothing). For each row t >= window:
//
//	gain = mean of positive deltas over the window (0 where delta <= 0)
//	loss = mean of |negative deltas| over the window (0 where delta >= 0)
//	RSI  = 100 - 100/(1 + gain/loss)
//
// When loss is 0 and gain is positive the ratio diverges and RSI is pinned
// at 100; when both are 0 RSI is undefined (NaN). The first `window` rows
// are NaN because the first delta itself needs a prior close.
func RollingRSI(closes []float64, window int) []float64 {
	out := nanSlice(len(closes))
	if window <= 0 || len(closes) < window+1 {
		return out
	}

	gains := nanSlice(len(closes))
	losses := nanSlice(len(closes))
	for i := 1; i < len(closes); i++ {
		if math.IsNaN(closes[i]) || math.IsNaN(closes[i-1]) {
			continue
		}
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gains[i], losses[i] = delta, 0
		} else {
			gains[i], losses[i] = 0, -delta
		}
	}

	avgGain := RollingSMA(gains, window)
	avgLoss := RollingSMA(losses, window)

	for i := range out {
		g, l := avgGain[i], avgLoss[i]
		switch {
		case math.IsNaN(g) || math.IsNaN(l):
			// window not warm, or a coercion failure inside it
		case l == 0 && g == 0:
			// flat window: relative strength is 0/0, undefined
		case l == 0:
			out[i] = 100
		default:
			rs := g / l
			out[i] = 100 - 100/(1+rs)
		}
	}
	return out
}
