package calculator

import (
	"errors"
	"math"

	"MoneyGrowth/internal/model"
)

// RangeStats scans a fetched series and returns the period high, period
// low and average daily volume. Null bars are skipped.
func RangeStats(result *model.ChartResult) (*model.RangeStats, error) {
	high := math.Inf(-1)
	low := math.Inf(1)
	seen := 0
	for _, h := range result.Quote.High {
		if h != nil && *h > high {
			high = *h
		}
	}
	for _, l := range result.Quote.Low {
		if l != nil && *l < low {
			low = *l
		}
		if l != nil {
			seen++
		}
	}
	if seen == 0 {
		return nil, errors.New("no valid bars in range")
	}

	var volSum float64
	for _, v := range result.Quote.Volume {
		if v != nil {
			volSum += *v
		}
	}

	return &model.RangeStats{
		High:      high,
		Low:       low,
		AvgVolume: volSum / float64(len(result.Quote.Volume)),
	}, nil
}
