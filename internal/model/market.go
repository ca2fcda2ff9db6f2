package model

// ChartMeta carries the provider metadata attached to a chart response.
type ChartMeta struct {
	Symbol             string  `json:"symbol"`
	Currency           string  `json:"currency"`
	LongName           string  `json:"longName"`
	ShortName          string  `json:"shortName"`
	ChartPreviousClose float64 `json:"chartPreviousClose"`
	PreviousClose      float64 `json:"previousClose"`
	RegularMarketPrice float64 `json:"regularMarketPrice"`
}

// ChartQuote holds the per-bar value arrays. Entries are nil on
// non-trading days inside the requested range, so all four arrays stay
// index-aligned with the timestamp array.
type ChartQuote struct {
	Close  []*float64 `json:"close"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Volume []*float64 `json:"volume"`
}

// ChartResult is one symbol's raw daily series as returned by the
// provider, ascending by time.
type ChartResult struct {
	Meta       ChartMeta
	Timestamps []int64
	Quote      ChartQuote
}

// ValidCloses returns the close series with nil entries dropped.
// Indices into the returned slice are positions in the filtered
// sequence, not original bar indices.
func (r *ChartResult) ValidCloses() []float64 {
	closes := make([]float64, 0, len(r.Quote.Close))
	for _, c := range r.Quote.Close {
		if c != nil {
			closes = append(closes, *c)
		}
	}
	return closes
}

// LastVolume returns the final entry of the volume array, or 0 when it
// is absent or null.
func (r *ChartResult) LastVolume() float64 {
	if n := len(r.Quote.Volume); n > 0 && r.Quote.Volume[n-1] != nil {
		return *r.Quote.Volume[n-1]
	}
	return 0
}

// RangeStats summarizes a fetched series for display: period extremes
// and average daily volume.
type RangeStats struct {
	High      float64
	Low       float64
	AvgVolume float64
}
