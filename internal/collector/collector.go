package collector

import (
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"MoneyGrowth/internal/calculator"
	"MoneyGrowth/internal/model"
	"MoneyGrowth/internal/names"
	"MoneyGrowth/internal/strategy"
)

const (
	// DefaultSuffix is appended to bare tickers; AlternateSuffix is
	// the over-the-counter board tried once when the default fails.
	DefaultSuffix   = ".TW"
	AlternateSuffix = ".TWO"
)

// MockFetcher returns canned chart data for development and testing.
// Calls records every symbol requested, in order.
type MockFetcher struct {
	Results map[string]*model.ChartResult
	Errs    map[string]error
	Calls   []string
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchChart(symbol, _, _ string) (*model.ChartResult, error) {
	return m.lookup(symbol)
}

func (m *MockFetcher) FetchChartWindow(symbol string, _, _ int64, _ string) (*model.ChartResult, error) {
	return m.lookup(symbol)
}

func (m *MockFetcher) lookup(symbol string) (*model.ChartResult, error) {
	m.Calls = append(m.Calls, symbol)
	if err, ok := m.Errs[symbol]; ok {
		return nil, err
	}
	if res, ok := m.Results[symbol]; ok {
		return res, nil
	}
	return nil, fmt.Errorf("%w: no mock data for %s", ErrFetchFailed, symbol)
}

// NormalizeSymbol uppercases a raw ticker and appends the default
// market suffix when none is present.
func NormalizeSymbol(raw string) string {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if !strings.Contains(s, ".") {
		s += DefaultSuffix
	}
	return s
}

// Collector normalizes raw provider series into quotes: it resolves
// symbols, fetches chart data, computes indicators, attaches a
// recommendation and a display name.
type Collector struct {
	Fetcher  Fetcher
	Names    *names.Loader
	Range    string // lookback for quote fetches
	Interval string
}

// NewCollector creates a Collector with the quote-path defaults.
func NewCollector(fetcher Fetcher, nameLoader *names.Loader) *Collector {
	return &Collector{
		Fetcher:  fetcher,
		Names:    nameLoader,
		Range:    "1mo",
		Interval: "1d",
	}
}

// fetchResolved normalizes the symbol and runs one fetch, retrying
// exactly once on the alternate suffix when a default-suffix fetch
// fails at the transport. No-data responses are not retried.
func (c *Collector) fetchResolved(raw string, fetch func(symbol string) (*model.ChartResult, error)) (*model.ChartResult, string, error) {
	symbol := NormalizeSymbol(raw)
	result, err := fetch(symbol)
	if err == nil {
		return result, symbol, nil
	}
	if errors.Is(err, ErrFetchFailed) && strings.HasSuffix(symbol, DefaultSuffix) {
		alt := strings.TrimSuffix(symbol, DefaultSuffix) + AlternateSuffix
		log.Printf("[WARN] fetch %s failed (%v), retrying as %s", symbol, err, alt)
		if result, altErr := fetch(alt); altErr == nil {
			return result, alt, nil
		}
	}
	return nil, symbol, err
}

// FetchQuote fetches and normalizes one symbol into a Quote.
func (c *Collector) FetchQuote(raw string) (*model.Quote, error) {
	result, symbol, err := c.fetchResolved(raw, func(symbol string) (*model.ChartResult, error) {
		return c.Fetcher.FetchChart(symbol, c.Range, c.Interval)
	})
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", symbol, err)
	}
	return c.normalize(symbol, result)
}

// FetchDetail fetches a longer lookback and returns the quote together
// with period range statistics for display.
func (c *Collector) FetchDetail(raw string) (*model.Quote, *model.RangeStats, error) {
	result, symbol, err := c.fetchResolved(raw, func(symbol string) (*model.ChartResult, error) {
		return c.Fetcher.FetchChart(symbol, "3mo", c.Interval)
	})
	if err != nil {
		return nil, nil, fmt.Errorf("fetch %s: %w", symbol, err)
	}
	quote, err := c.normalize(symbol, result)
	if err != nil {
		return nil, nil, err
	}
	stats, err := calculator.RangeStats(result)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", ErrNoData, symbol, err)
	}
	return quote, stats, nil
}

// FetchHistory fetches the valid close series over the given number of
// calendar days. Lookbacks beyond a year switch from named ranges to an
// explicit epoch window.
func (c *Collector) FetchHistory(raw string, days int) ([]float64, error) {
	fetch := func(symbol string) (*model.ChartResult, error) {
		if days > 365 {
			now := time.Now()
			return c.Fetcher.FetchChartWindow(symbol,
				now.AddDate(0, 0, -days).Unix(), now.Unix(), c.Interval)
		}
		return c.Fetcher.FetchChart(symbol, rangeForDays(days), c.Interval)
	}
	result, symbol, err := c.fetchResolved(raw, fetch)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", symbol, err)
	}
	closes := result.ValidCloses()
	if len(closes) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, symbol)
	}
	return closes, nil
}

// RefreshAll fetches every symbol sequentially with a fixed delay
// between requests, respecting upstream rate limits. A failing symbol
// never aborts the batch: its error is collected and the batch moves
// on.
func (c *Collector) RefreshAll(symbols []string, delay time.Duration) ([]model.Quote, map[string]error) {
	quotes := make([]model.Quote, 0, len(symbols))
	failures := make(map[string]error)
	for i, sym := range symbols {
		if i > 0 && delay > 0 {
			time.Sleep(delay)
		}
		quote, err := c.FetchQuote(sym)
		if err != nil {
			log.Printf("[WARN] refresh %s: %v", sym, err)
			failures[sym] = err
			continue
		}
		quotes = append(quotes, *quote)
	}
	return quotes, failures
}

func (c *Collector) normalize(symbol string, result *model.ChartResult) (*model.Quote, error) {
	if len(result.Timestamps) == 0 || len(result.Quote.Close) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, symbol)
	}
	closes := result.ValidCloses()
	if len(closes) == 0 {
		return nil, fmt.Errorf("%w: %s: all closes null", ErrNoData, symbol)
	}

	price := closes[len(closes)-1]
	prevClose := result.Meta.ChartPreviousClose
	if prevClose == 0 {
		prevClose = result.Meta.PreviousClose
	}
	if prevClose == 0 {
		prevClose = price
	}
	change := price - prevClose
	changePercent := 0.0
	if prevClose != 0 {
		changePercent = change / prevClose * 100
	}

	ind := calculator.Latest(closes)

	return &model.Quote{
		Symbol:         symbol,
		Name:           c.resolveName(symbol, result.Meta),
		Price:          round2(price),
		Change:         round2(change),
		ChangePercent:  round2(changePercent),
		Volume:         result.LastVolume(),
		Recommendation: strategy.Recommend(price, ind),
		IsLive:         true,
		FetchedAt:      time.Now(),
	}, nil
}

// resolveName prefers the cached mapping over provider metadata, then
// falls through to the long name, the short name, and the symbol.
func (c *Collector) resolveName(symbol string, meta model.ChartMeta) string {
	if c.Names != nil {
		if name, ok := c.Names.Resolve(symbol); ok {
			return name
		}
	}
	if meta.LongName != "" {
		return meta.LongName
	}
	if meta.ShortName != "" {
		return meta.ShortName
	}
	return symbol
}

func rangeForDays(days int) string {
	switch {
	case days <= 30:
		return "1mo"
	case days <= 90:
		return "3mo"
	case days <= 180:
		return "6mo"
	default:
		return "1y"
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
