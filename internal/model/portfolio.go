package model

import "time"

// Holding records a position the user reported owning.
type Holding struct {
	Shares float64 `json:"shares"`
	Cost   float64 `json:"cost"` // average cost per share
}

// PortfolioState is the persisted watchlist/holdings snapshot.
type PortfolioState struct {
	Watchlist []string           `json:"watchlist"`
	Holdings  map[string]Holding `json:"holdings"`
	UpdatedAt time.Time          `json:"updated_at"`
}
