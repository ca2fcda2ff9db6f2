package calculator

import "MoneyGrowth/internal/model"

// Latest bundles the quote-path indicator readings at the end of the
// valid-close series.
func Latest(closes []float64) model.Indicators {
	return model.Indicators{
		SMA5:  LatestSMA(closes, 5),
		SMA20: LatestSMA(closes, 20),
		RSI:   RSI14(closes),
	}
}
