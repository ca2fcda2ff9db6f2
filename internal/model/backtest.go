package model

// Trade is one ledger entry from the crossover simulation. Index is the
// bar position within the valid-close sequence. Immutable once appended.
type Trade struct {
	Index  int     `json:"index"`
	Action Action  `json:"action"`
	Price  float64 `json:"price"`
	Shares int     `json:"shares"`
	Value  float64 `json:"value"`
}

// BacktestResult summarizes one simulation run. RecentTrades keeps only
// the last 10 ledger entries for display; TradeCount reflects the full
// ledger length.
type BacktestResult struct {
	InitialCapital float64 `json:"initialCapital"`
	FinalValue     float64 `json:"finalValue"`
	Profit         float64 `json:"profit"`
	ProfitPercent  float64 `json:"profitPercent"`
	TradeCount     int     `json:"trades"`
	WinRate        float64 `json:"winRate"`
	RecentTrades   []Trade `json:"tradeDetails"`
}
