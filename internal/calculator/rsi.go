package calculator

const rsiPeriod = 14

// RSI14 computes the Relative Strength Index from the last 14
// day-over-day deltas of the close series. Both the average gain and
// the average loss divide by 14 regardless of how the deltas split.
// Returns 100 when the average loss is exactly 0, and the neutral 50
// when fewer than 14 deltas exist.
func RSI14(closes []float64) float64 {
	if len(closes) < rsiPeriod+1 {
		return 50.0
	}

	var avgGain, avgLoss float64
	for i := len(closes) - rsiPeriod; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change // make positive
		}
	}
	avgGain /= rsiPeriod
	avgLoss /= rsiPeriod

	if avgLoss == 0 {
		return 100.0
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs)
}
