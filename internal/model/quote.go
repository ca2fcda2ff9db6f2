package model

import "time"

// Action is a trade recommendation verb.
type Action string

const (
	ActionBuy  Action = "buy"
	ActionHold Action = "hold"
	ActionSell Action = "sell"
)

// Indicators holds the technical readings computed from a close series.
type Indicators struct {
	SMA5  float64
	SMA20 float64
	RSI   float64
}

// Recommendation is a pure function of (price, indicators): no history,
// no memory between evaluations.
type Recommendation struct {
	Action     Action  `json:"action"`
	Reason     string  `json:"reason"`
	Confidence float64 `json:"confidence"` // 0.0 ~ 1.0
}

// Quote is a normalized per-symbol snapshot. Symbol always carries an
// explicit market suffix after normalization.
type Quote struct {
	Symbol         string         `json:"symbol"`
	Name           string         `json:"name"`
	Price          float64        `json:"price"`
	Change         float64        `json:"change"`
	ChangePercent  float64        `json:"changePercent"`
	Volume         float64        `json:"volume"`
	Recommendation Recommendation `json:"recommendation"`
	IsLive         bool           `json:"isLive"`
	FetchedAt      time.Time      `json:"-"`
}
