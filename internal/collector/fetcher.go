package collector

import (
	"errors"

	"MoneyGrowth/internal/model"
)

// Error classes surfaced by fetchers and the collector. Callers match
// with errors.Is.
var (
	// ErrFetchFailed: the transport returned non-success or failed
	// outright. The collector retries these once on the alternate
	// market suffix.
	ErrFetchFailed = errors.New("quote fetch failed")
	// ErrNoData: the response parsed but contains no usable series.
	ErrNoData = errors.New("no quote data")
)

// Fetcher fetches raw chart data for one symbol. Implementations must
// keep the result arrays index-aligned with the timestamp array.
type Fetcher interface {
	// FetchChart fetches by named lookback range ("1mo", "3mo", ...).
	FetchChart(symbol, rng, interval string) (*model.ChartResult, error)
	// FetchChartWindow fetches by epoch-second window, for lookbacks
	// longer than the named ranges cover.
	FetchChartWindow(symbol string, period1, period2 int64, interval string) (*model.ChartResult, error)
	Name() string
}
