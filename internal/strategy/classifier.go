package strategy

import (
	"fmt"

	"MoneyGrowth/internal/model"
)

// LiveConfidence is the fixed confidence attached to every live-path
// recommendation, regardless of which rule fired.
const LiveConfidence = 0.65

// rule pairs a predicate with its outcome. Rules are evaluated in
// order; the first match wins, which keeps the priority contract
// explicit and each rule unit-testable on its own.
type rule struct {
	match  func(price float64, ind model.Indicators) bool
	action model.Action
	reason func(ind model.Indicators) string
}

var rules = []rule{
	{
		// bullish alignment + oversold
		match: func(price float64, ind model.Indicators) bool {
			return price > ind.SMA5 && ind.SMA5 > ind.SMA20 && ind.RSI < 30
		},
		action: model.ActionBuy,
		reason: func(ind model.Indicators) string {
			return fmt.Sprintf("均線呈現多頭排列，RSI %.1f 超賣，建議逢低買進", ind.RSI)
		},
	},
	{
		// bearish alignment + overbought
		match: func(price float64, ind model.Indicators) bool {
			return price < ind.SMA5 && ind.SMA5 < ind.SMA20 && ind.RSI > 70
		},
		action: model.ActionSell,
		reason: func(ind model.Indicators) string {
			return fmt.Sprintf("均線呈現空頭排列，RSI %.1f 超買，建議減碼", ind.RSI)
		},
	},
	{
		// holding above the 20-day average with room to run
		match: func(price float64, ind model.Indicators) bool {
			return price > ind.SMA20 && ind.RSI < 50
		},
		action: model.ActionBuy,
		reason: func(ind model.Indicators) string {
			return fmt.Sprintf("價格站穩於20日均線之上，RSI %.1f 偏低，可考慮進場", ind.RSI)
		},
	},
	{
		// below the 20-day average with elevated RSI
		match: func(price float64, ind model.Indicators) bool {
			return price < ind.SMA20 && ind.RSI > 50
		},
		action: model.ActionSell,
		reason: func(ind model.Indicators) string {
			return fmt.Sprintf("價格跌破20日均線，RSI %.1f 偏高，建議觀望或減碼", ind.RSI)
		},
	},
}

// Recommend classifies the latest price against its indicators. Pure
// and stateless: no smoothing, no hysteresis between calls.
func Recommend(price float64, ind model.Indicators) model.Recommendation {
	for _, r := range rules {
		if r.match(price, ind) {
			return model.Recommendation{
				Action:     r.action,
				Reason:     r.reason(ind),
				Confidence: LiveConfidence,
			}
		}
	}
	return model.Recommendation{
		Action:     model.ActionHold,
		Reason:     "價格持穩，建議觀察",
		Confidence: LiveConfidence,
	}
}
