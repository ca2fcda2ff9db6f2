package store

import (
	"path/filepath"
	"testing"

	"MoneyGrowth/internal/model"
)

func TestNewManager_SeedsDefaultWatchlist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.json")
	m, err := NewManager(path, []string{"2330.TW", "2317.TW"})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	got := m.Watchlist()
	if len(got) != 2 || got[0] != "2330.TW" || got[1] != "2317.TW" {
		t.Errorf("watchlist = %v, want seeded defaults", got)
	}
}

func TestManager_ToggleAddsAndRemoves(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.json")
	m, err := NewManager(path, nil)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	if watched := m.Toggle("2454.TW"); !watched {
		t.Error("first toggle should add")
	}
	if !m.IsWatched("2454.TW") {
		t.Error("symbol should be watched after add")
	}
	if watched := m.Toggle("2454.TW"); watched {
		t.Error("second toggle should remove")
	}
	if m.IsWatched("2454.TW") {
		t.Error("symbol should not be watched after remove")
	}
}

func TestManager_StatePersistsAcrossReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.json")
	m, err := NewManager(path, []string{"2330.TW"})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	m.Toggle("2603.TW")
	m.UpdateHolding("2330.TW", 1000, 585.5)

	reloaded, err := NewManager(path, nil)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	got := reloaded.Watchlist()
	if len(got) != 2 || got[0] != "2330.TW" || got[1] != "2603.TW" {
		t.Errorf("reloaded watchlist = %v", got)
	}
	h, ok := reloaded.Holding("2330.TW")
	if !ok || h.Shares != 1000 || h.Cost != 585.5 {
		t.Errorf("reloaded holding = %+v (%v)", h, ok)
	}
}

func TestManager_UpdateHoldingRemovesOnNonPositive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.json")
	m, err := NewManager(path, nil)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	m.UpdateHolding("2330.TW", 1000, 585)
	if _, ok := m.Holding("2330.TW"); !ok {
		t.Fatal("holding should exist")
	}

	m.UpdateHolding("2330.TW", 0, 585)
	if _, ok := m.Holding("2330.TW"); ok {
		t.Error("zero shares should remove the holding")
	}

	m.UpdateHolding("2330.TW", 1000, -1)
	if _, ok := m.Holding("2330.TW"); ok {
		t.Error("negative cost should remove the holding")
	}
}

func TestManager_AccessorsReturnCopies(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.json")
	m, err := NewManager(path, []string{"2330.TW"})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	m.UpdateHolding("2330.TW", 100, 500)

	list := m.Watchlist()
	list[0] = "mutated"
	if m.Watchlist()[0] != "2330.TW" {
		t.Error("Watchlist must return a copy")
	}

	holdings := m.Holdings()
	holdings["2330.TW"] = model.Holding{}
	if h, _ := m.Holding("2330.TW"); h.Shares != 100 {
		t.Error("Holdings must return a copy")
	}
}
