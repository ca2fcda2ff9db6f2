package store

import (
	"log"
	"sync"

	"MoneyGrowth/internal/model"
)

// Manager owns the persisted watchlist and holdings with concurrency
// safety. Every mutation is written back to the state file.
type Manager struct {
	mu       sync.Mutex
	state    *model.PortfolioState
	filePath string
}

// NewManager creates a Manager, loading state from disk and seeding the
// watchlist with defaults when the state is fresh.
func NewManager(filePath string, defaultWatchlist []string) (*Manager, error) {
	state, err := LoadState(filePath)
	if err != nil {
		return nil, err
	}
	if len(state.Watchlist) == 0 && len(defaultWatchlist) > 0 {
		state.Watchlist = append([]string(nil), defaultWatchlist...)
	}

	m := &Manager{state: state, filePath: filePath}
	if err := m.save(); err != nil {
		return nil, err
	}
	return m, nil
}

// Watchlist returns a copy of the watched symbols, in insertion order.
func (m *Manager) Watchlist() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.state.Watchlist...)
}

// SetWatchlist replaces the watched symbols.
func (m *Manager) SetWatchlist(symbols []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Watchlist = append([]string(nil), symbols...)
	m.persist()
}

// Toggle adds the symbol when absent and removes it when present.
// Returns whether the symbol is watched afterwards.
func (m *Manager) Toggle(symbol string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, s := range m.state.Watchlist {
		if s == symbol {
			m.state.Watchlist = append(m.state.Watchlist[:i], m.state.Watchlist[i+1:]...)
			m.persist()
			return false
		}
	}
	m.state.Watchlist = append(m.state.Watchlist, symbol)
	m.persist()
	return true
}

// IsWatched reports whether the symbol is on the watchlist.
func (m *Manager) IsWatched(symbol string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.state.Watchlist {
		if s == symbol {
			return true
		}
	}
	return false
}

// Holdings returns a copy of all holdings.
func (m *Manager) Holdings() map[string]model.Holding {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]model.Holding, len(m.state.Holdings))
	for sym, h := range m.state.Holdings {
		out[sym] = h
	}
	return out
}

// Holding returns the position for one symbol, if any.
func (m *Manager) Holding(symbol string) (model.Holding, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.state.Holdings[symbol]
	return h, ok
}

// UpdateHolding records shares held at an average cost. Non-positive
// shares or cost removes the holding.
func (m *Manager) UpdateHolding(symbol string, shares, cost float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if shares > 0 && cost > 0 {
		m.state.Holdings[symbol] = model.Holding{Shares: shares, Cost: cost}
	} else {
		delete(m.state.Holdings, symbol)
	}
	m.persist()
}

func (m *Manager) persist() {
	if err := m.save(); err != nil {
		log.Printf("[ERROR] failed to save portfolio state: %v", err)
	}
}

func (m *Manager) save() error {
	return SaveState(m.filePath, m.state)
}
