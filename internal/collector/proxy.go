package collector

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"MoneyGrowth/internal/model"
)

// ProxyFetcher implements Fetcher against a self-hosted forwarding
// proxy exposing GET /api/stock. The proxy relays the upstream chart
// payload unchanged, so the same envelope decoding applies.
type ProxyFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewProxyFetcher creates a fetcher against the given proxy base URL.
func NewProxyFetcher(baseURL, proxyURL string) *ProxyFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &ProxyFetcher{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *ProxyFetcher) Name() string { return "proxy" }

func (f *ProxyFetcher) FetchChart(symbol, rng, interval string) (*model.ChartResult, error) {
	u := fmt.Sprintf("%s/api/stock?symbol=%s&range=%s&interval=%s",
		f.BaseURL, url.QueryEscape(symbol), rng, interval)
	return fetchChartURL(f.Client, u)
}

func (f *ProxyFetcher) FetchChartWindow(symbol string, period1, period2 int64, interval string) (*model.ChartResult, error) {
	u := fmt.Sprintf("%s/api/stock?symbol=%s&period1=%d&period2=%d&interval=%s",
		f.BaseURL, url.QueryEscape(symbol), period1, period2, interval)
	return fetchChartURL(f.Client, u)
}
