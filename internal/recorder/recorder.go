package recorder

import "MoneyGrowth/internal/model"

// Recorder persists quote snapshots and backtest runs for later
// analysis.
type Recorder interface {
	RecordQuote(quote *model.Quote) error
	RecordBacktest(symbol string, result *model.BacktestResult) error
	Close() error
}
