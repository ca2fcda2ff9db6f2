package calculator

// SMA computes the simple moving average of the period closes in the
// trailing window ending at end (exclusive): closes[end-period:end].
// The bar at end itself is not part of the window. The caller is
// responsible for only calling it where end-period >= 0; no bounds
// validation happens here.
func SMA(closes []float64, end, period int) float64 {
	sum := 0.0
	for i := end - period; i < end; i++ {
		sum += closes[i]
	}
	return sum / float64(period)
}

// LatestSMA computes the moving average over the most recent period
// closes. When fewer than period closes exist it falls back to the
// latest close, and to 0 on an empty series.
func LatestSMA(closes []float64, period int) float64 {
	if len(closes) == 0 {
		return 0
	}
	if len(closes) < period {
		return closes[len(closes)-1]
	}
	return SMA(closes, len(closes), period)
}
