package collector

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

const chartPayload = `{
  "chart": {
    "result": [
      {
        "meta": {
          "symbol": "2330.TW",
          "currency": "TWD",
          "longName": "Taiwan Semiconductor Manufacturing Company Limited",
          "chartPreviousClose": 580.0
        },
        "timestamp": [1704153600, 1704240000, 1704326400],
        "indicators": {
          "quote": [
            {
              "close": [585.0, null, 590.0],
              "high": [588.0, null, 592.0],
              "low": [580.0, null, 586.0],
              "volume": [23456789, null, 19876543]
            }
          ]
        }
      }
    ],
    "error": null
  }
}`

func TestYahooFetcher_ParsesChart(t *testing.T) {
	var gotPath, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, chartPayload)
	}))
	defer server.Close()

	f := NewYahooFetcher(server.URL, "")
	result, err := f.FetchChart("2330.TW", "1mo", "1d")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/v8/finance/chart/2330.TW" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if gotQuery != "interval=1d&range=1mo" {
		t.Errorf("unexpected query %q", gotQuery)
	}
	if result.Meta.Symbol != "2330.TW" || result.Meta.ChartPreviousClose != 580 {
		t.Errorf("meta not parsed: %+v", result.Meta)
	}
	if len(result.Timestamps) != 3 {
		t.Errorf("timestamps: got %d, want 3", len(result.Timestamps))
	}
	if len(result.Quote.Close) != 3 || result.Quote.Close[1] != nil {
		t.Errorf("null closes must stay null for index alignment: %v", result.Quote.Close)
	}
	closes := result.ValidCloses()
	if len(closes) != 2 || closes[0] != 585 || closes[1] != 590 {
		t.Errorf("valid closes: got %v", closes)
	}
	if result.LastVolume() != 19876543 {
		t.Errorf("last volume: got %f", result.LastVolume())
	}
}

func TestYahooFetcher_WindowQuery(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, chartPayload)
	}))
	defer server.Close()

	f := NewYahooFetcher(server.URL, "")
	if _, err := f.FetchChartWindow("2330.TW", 1672531200, 1704067200, "1d"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "interval=1d&period1=1672531200&period2=1704067200"
	if gotQuery != want {
		t.Errorf("window query: got %q, want %q", gotQuery, want)
	}
}

func TestYahooFetcher_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	f := NewYahooFetcher(server.URL, "")
	_, err := f.FetchChart("9999.TW", "1mo", "1d")
	if !errors.Is(err, ErrFetchFailed) {
		t.Errorf("expected ErrFetchFailed for 404, got %v", err)
	}
}

func TestYahooFetcher_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`)
	}))
	defer server.Close()

	f := NewYahooFetcher(server.URL, "")
	_, err := f.FetchChart("XXXX.TW", "1mo", "1d")
	if !errors.Is(err, ErrFetchFailed) {
		t.Errorf("expected ErrFetchFailed for api error, got %v", err)
	}
}

func TestYahooFetcher_EmptyResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"chart":{"result":[],"error":null}}`)
	}))
	defer server.Close()

	f := NewYahooFetcher(server.URL, "")
	_, err := f.FetchChart("2330.TW", "1mo", "1d")
	if !errors.Is(err, ErrNoData) {
		t.Errorf("expected ErrNoData for empty result, got %v", err)
	}
}

func TestProxyFetcher_RequestShape(t *testing.T) {
	var gotPath string
	var gotSymbol, gotRange string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotSymbol = r.URL.Query().Get("symbol")
		gotRange = r.URL.Query().Get("range")
		fmt.Fprint(w, chartPayload)
	}))
	defer server.Close()

	f := NewProxyFetcher(server.URL, "")
	if _, err := f.FetchChart("2330.TW", "3mo", "1d"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/api/stock" {
		t.Errorf("proxy path: got %q", gotPath)
	}
	if gotSymbol != "2330.TW" || gotRange != "3mo" {
		t.Errorf("proxy query: symbol=%q range=%q", gotSymbol, gotRange)
	}
}
