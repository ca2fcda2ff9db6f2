package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"MoneyGrowth/internal/model"
)

// DefaultYahooBaseURL is the public chart API host.
const DefaultYahooBaseURL = "https://query1.finance.yahoo.com"

// YahooFetcher implements Fetcher against the Yahoo Finance chart API.
type YahooFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewYahooFetcher creates a Yahoo Finance fetcher with optional proxy
// support. An empty baseURL uses the public host.
func NewYahooFetcher(baseURL, proxyURL string) *YahooFetcher {
	if baseURL == "" {
		baseURL = DefaultYahooBaseURL
	}
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooFetcher{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

func (f *YahooFetcher) FetchChart(symbol, rng, interval string) (*model.ChartResult, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=%s&range=%s",
		f.BaseURL, url.PathEscape(symbol), interval, rng)
	return fetchChartURL(f.Client, u)
}

func (f *YahooFetcher) FetchChartWindow(symbol string, period1, period2 int64, interval string) (*model.ChartResult, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=%s&period1=%d&period2=%d",
		f.BaseURL, url.PathEscape(symbol), interval, period1, period2)
	return fetchChartURL(f.Client, u)
}

// chartEnvelope is the wire shape shared by the Yahoo API and proxies
// that forward it.
type chartEnvelope struct {
	Chart struct {
		Result []struct {
			Meta       model.ChartMeta `json:"meta"`
			Timestamp  []int64         `json:"timestamp"`
			Indicators struct {
				Quote []model.ChartQuote `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func fetchChartURL(client *http.Client, u string) (*model.ChartResult, error) {
	req, err := http.NewRequest("GET", u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrFetchFailed, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrFetchFailed, resp.StatusCode)
	}

	var envelope chartEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrFetchFailed, err)
	}
	if envelope.Chart.Error != nil {
		return nil, fmt.Errorf("%w: api error: %s", ErrFetchFailed, envelope.Chart.Error.Description)
	}
	if len(envelope.Chart.Result) == 0 {
		return nil, fmt.Errorf("%w: empty result", ErrNoData)
	}

	raw := envelope.Chart.Result[0]
	result := &model.ChartResult{
		Meta:       raw.Meta,
		Timestamps: raw.Timestamp,
	}
	if len(raw.Indicators.Quote) > 0 {
		result.Quote = raw.Indicators.Quote[0]
	}
	return result, nil
}
