package names

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// FallbackURL is the mirrored copy of the name mapping, reachable when
// the primary host is not.
const FallbackURL = "https://raw.githubusercontent.com/houangrpg/MyMoneyGrouth/main/public/names.json"

// Loader resolves a ticker symbol to its display name from a mapping
// fetched at most once per process. The first caller triggers the load;
// concurrent callers wait on the same in-flight attempt. After the load
// resolves the map is never written again, so reads need no lock. A
// failed load degrades to an empty mapping and is never fatal.
type Loader struct {
	PrimaryURL  string
	FallbackURL string
	Client      *http.Client

	once  sync.Once
	table map[string]string
}

// NewLoader creates a Loader with optional proxy support.
func NewLoader(primaryURL, proxyURL string) *Loader {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &Loader{
		PrimaryURL:  primaryURL,
		FallbackURL: FallbackURL,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

// Resolve returns the mapped display name for symbol, if any.
func (l *Loader) Resolve(symbol string) (string, bool) {
	l.once.Do(l.load)
	name, ok := l.table[symbol]
	return name, ok
}

func (l *Loader) load() {
	table, err := l.fetch(l.PrimaryURL)
	if err != nil && l.FallbackURL != "" {
		log.Printf("[WARN] primary names fetch failed: %v, trying mirror", err)
		table, err = l.fetch(l.FallbackURL)
	}
	if err != nil {
		log.Printf("[WARN] names mapping unavailable, falling back to provider names: %v", err)
		table = map[string]string{}
	}
	l.table = table
}

func (l *Loader) fetch(rawURL string) (map[string]string, error) {
	if rawURL == "" {
		return nil, fmt.Errorf("no names URL configured")
	}
	req, err := http.NewRequest("GET", rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := l.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("names fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("names read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("names: status %d", resp.StatusCode)
	}

	var table map[string]string
	if err := json.Unmarshal(body, &table); err != nil {
		return nil, fmt.Errorf("names decode: %w", err)
	}
	if table == nil {
		table = map[string]string{}
	}
	return table, nil
}
