package scheduler

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"MoneyGrowth/internal/collector"
	"MoneyGrowth/internal/model"
	"MoneyGrowth/internal/recorder"
	"MoneyGrowth/internal/store"
)

type fakeSender struct {
	messages []string
}

func (f *fakeSender) Send(text string) error { f.messages = append(f.messages, text); return nil }

func (f *fakeSender) SendWithRetry(_ context.Context, text string, _ int) error {
	return f.Send(text)
}

func chartOf(symbol string, closes []float64) *model.ChartResult {
	quote := model.ChartQuote{}
	var timestamps []int64
	for i, c := range closes {
		v := c
		quote.Close = append(quote.Close, &v)
		vol := 1000.0
		quote.Volume = append(quote.Volume, &vol)
		timestamps = append(timestamps, int64(1700000000+i*86400))
	}
	return &model.ChartResult{
		Meta:       model.ChartMeta{Symbol: symbol, ChartPreviousClose: closes[0]},
		Timestamps: timestamps,
		Quote:      quote,
	}
}

func newTestScheduler(t *testing.T, fetcher *collector.MockFetcher) (*Scheduler, *fakeSender, *store.Manager) {
	t.Helper()
	st, err := store.NewManager(filepath.Join(t.TempDir(), "portfolio.json"), nil)
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	col := collector.NewCollector(fetcher, nil)
	sender := &fakeSender{}
	s := NewScheduler(context.Background(), col, st, sender, recorder.NewNoopRecorder(), 0, 90)
	return s, sender, st
}

func TestHandleCommand_WatchNormalizesAndToggles(t *testing.T) {
	s, _, st := newTestScheduler(t, &collector.MockFetcher{})

	reply := s.HandleCommand("/watch 2330")
	if !strings.Contains(reply, "2330.TW") || !strings.Contains(reply, "已加入") {
		t.Errorf("add reply = %q", reply)
	}
	if !st.IsWatched("2330.TW") {
		t.Error("2330.TW should be watched")
	}

	reply = s.HandleCommand("/watch 2330.tw")
	if !strings.Contains(reply, "已移除") {
		t.Errorf("toggle-off reply = %q", reply)
	}
	if st.IsWatched("2330.TW") {
		t.Error("second /watch should remove")
	}
}

func TestHandleCommand_List(t *testing.T) {
	s, _, _ := newTestScheduler(t, &collector.MockFetcher{})

	reply := s.HandleCommand("/list")
	if !strings.Contains(reply, "觀察清單是空的") {
		t.Errorf("empty list reply = %q", reply)
	}

	s.HandleCommand("/watch 2330")
	s.HandleCommand("/watch 2317")
	reply = s.HandleCommand("/list")
	if !strings.Contains(reply, "2330.TW") || !strings.Contains(reply, "2317.TW") {
		t.Errorf("list reply = %q", reply)
	}
}

func TestHandleCommand_BacktestInsufficientHistory(t *testing.T) {
	closes := make([]float64, 24)
	for i := range closes {
		closes[i] = 100
	}
	fetcher := &collector.MockFetcher{
		Results: map[string]*model.ChartResult{"2330.TW": chartOf("2330.TW", closes)},
	}
	s, _, _ := newTestScheduler(t, fetcher)

	reply := s.HandleCommand("/backtest 2330")
	if !strings.Contains(reply, "資料不足") {
		t.Errorf("reply = %q, want insufficient-history notice", reply)
	}
}

func TestHandleCommand_HoldAndPortfolio(t *testing.T) {
	closes := []float64{580, 590, 600}
	fetcher := &collector.MockFetcher{
		Results: map[string]*model.ChartResult{"2330.TW": chartOf("2330.TW", closes)},
	}
	s, _, st := newTestScheduler(t, fetcher)

	reply := s.HandleCommand("/hold 2330 1000 500")
	if !strings.Contains(reply, "已記錄持股") {
		t.Errorf("hold reply = %q", reply)
	}
	h, ok := st.Holding("2330.TW")
	if !ok || h.Shares != 1000 || h.Cost != 500 {
		t.Fatalf("holding = %+v (%v)", h, ok)
	}

	reply = s.HandleCommand("/portfolio")
	if !strings.Contains(reply, "2330.TW") || !strings.Contains(reply, "600.00") {
		t.Errorf("portfolio reply = %q", reply)
	}

	reply = s.HandleCommand("/hold 2330 0 0")
	if !strings.Contains(reply, "已刪除持股") {
		t.Errorf("delete reply = %q", reply)
	}
	if _, ok := st.Holding("2330.TW"); ok {
		t.Error("holding should be deleted")
	}
}

func TestHandleCommand_HoldRejectsNonNumeric(t *testing.T) {
	s, _, _ := newTestScheduler(t, &collector.MockFetcher{})
	reply := s.HandleCommand("/hold 2330 abc 500")
	if !strings.Contains(reply, "必須是數字") {
		t.Errorf("reply = %q", reply)
	}
}

func TestHandleCommand_UnknownShowsHelp(t *testing.T) {
	s, _, _ := newTestScheduler(t, &collector.MockFetcher{})
	reply := s.HandleCommand("/bogus")
	if !strings.Contains(reply, "可用命令") {
		t.Errorf("reply = %q, want help text", reply)
	}
	if s.HandleCommand("") != reply {
		t.Error("empty command should show the same help text")
	}
}

func TestRunDailyNow_SendsWatchReport(t *testing.T) {
	closes := []float64{580, 585, 590, 600}
	fetcher := &collector.MockFetcher{
		Results: map[string]*model.ChartResult{
			"2330.TW": chartOf("2330.TW", closes),
		},
	}
	s, sender, st := newTestScheduler(t, fetcher)
	st.SetWatchlist([]string{"2330.TW", "2317.TW"})

	s.RunDailyNow()

	if len(sender.messages) != 1 {
		t.Fatalf("got %d messages, want 1", len(sender.messages))
	}
	report := sender.messages[0]
	if !strings.Contains(report, "2330.TW") {
		t.Errorf("report missing quoted symbol:\n%s", report)
	}
	// 2317.TW has no mock data and must surface in the failure section.
	if !strings.Contains(report, "取得失敗") || !strings.Contains(report, "2317.TW") {
		t.Errorf("report missing failure section:\n%s", report)
	}
}

func TestMarketOpen(t *testing.T) {
	taipei, err := time.LoadLocation("Asia/Taipei")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	cases := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"weekday mid session", time.Date(2025, 6, 11, 10, 0, 0, 0, taipei), true},
		{"session open", time.Date(2025, 6, 11, 8, 45, 0, 0, taipei), true},
		{"session close buffer", time.Date(2025, 6, 11, 13, 35, 0, 0, taipei), true},
		{"before open", time.Date(2025, 6, 11, 8, 44, 0, 0, taipei), false},
		{"after close", time.Date(2025, 6, 11, 13, 36, 0, 0, taipei), false},
		{"saturday", time.Date(2025, 6, 14, 10, 0, 0, 0, taipei), false},
		{"sunday", time.Date(2025, 6, 15, 10, 0, 0, 0, taipei), false},
	}
	for _, tc := range cases {
		if got := marketOpen(tc.at); got != tc.want {
			t.Errorf("%s: marketOpen = %v, want %v", tc.name, got, tc.want)
		}
	}
}
