package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"MoneyGrowth/internal/backtest"
	"MoneyGrowth/internal/collector"
	"MoneyGrowth/internal/model"
	"MoneyGrowth/internal/notifier"
	"MoneyGrowth/internal/recorder"
	"MoneyGrowth/internal/store"

	"github.com/robfig/cron/v3"
)

// Sender delivers report messages. *notifier.TelegramNotifier satisfies
// it; tests substitute a recording fake.
type Sender interface {
	Send(text string) error
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler manages all cron tasks and the command surface.
type Scheduler struct {
	Cron         *cron.Cron
	Collector    *collector.Collector
	Store        *store.Manager
	Notifier     Sender
	Recorder     recorder.Recorder
	Ctx          context.Context
	BatchDelay   time.Duration
	BacktestDays int
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, st *store.Manager, sender Sender, rec recorder.Recorder, batchDelay time.Duration, backtestDays int) *Scheduler {
	return &Scheduler{
		Cron:         cron.New(cron.WithSeconds()),
		Collector:    col,
		Store:        st,
		Notifier:     sender,
		Recorder:     rec,
		Ctx:          ctx,
		BatchDelay:   batchDelay,
		BacktestDays: backtestDays,
	}
}

// RegisterAll registers the daily report, intraday check, and weekly
// backtest sweep.
func (s *Scheduler) RegisterAll(dailyCron, intradayCron, backtestCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyTask); err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	if _, err := s.Cron.AddFunc(intradayCron, s.intradayCheck); err != nil {
		return fmt.Errorf("register intraday task: %w", err)
	}
	if _, err := s.Cron.AddFunc(backtestCron, s.backtestTask); err != nil {
		return fmt.Errorf("register backtest task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunDailyNow executes the daily task immediately (manual trigger /
// RUN_ON_START).
func (s *Scheduler) RunDailyNow() {
	s.dailyTask()
}

// marketOpen reports whether the Taipei session (with buffer) is in
// progress: Mon-Fri 08:45 ~ 13:35.
func marketOpen(now time.Time) bool {
	loc, err := time.LoadLocation("Asia/Taipei")
	if err != nil {
		return false
	}
	t := now.In(loc)
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	minutes := t.Hour()*60 + t.Minute()
	return minutes >= 8*60+45 && minutes <= 13*60+35
}

func (s *Scheduler) dailyTask() {
	log.Println("[INFO] running daily watchlist report")
	symbols := s.Store.Watchlist()
	if len(symbols) == 0 {
		log.Println("[INFO] watchlist empty, nothing to report")
		return
	}

	quotes, failures := s.Collector.RefreshAll(symbols, s.BatchDelay)
	for i := range quotes {
		if err := s.Recorder.RecordQuote(&quotes[i]); err != nil {
			log.Printf("[ERROR] record quote %s: %v", quotes[i].Symbol, err)
		}
	}
	s.trySend(notifier.FormatWatchReport(quotes, failures))
}

// intradayCheck silently refreshes the watchlist during market hours
// and alerts only on actionable (non-hold) recommendations.
func (s *Scheduler) intradayCheck() {
	if !marketOpen(time.Now()) {
		return
	}
	log.Println("[INFO] running intraday check")

	symbols := s.Store.Watchlist()
	quotes, _ := s.Collector.RefreshAll(symbols, s.BatchDelay)

	var actionable []model.Quote
	for i := range quotes {
		if err := s.Recorder.RecordQuote(&quotes[i]); err != nil {
			log.Printf("[ERROR] record quote %s: %v", quotes[i].Symbol, err)
		}
		if quotes[i].Recommendation.Action != model.ActionHold {
			actionable = append(actionable, quotes[i])
		}
	}
	if len(actionable) == 0 {
		return
	}

	var b strings.Builder
	b.WriteString("⏰ <b>盤中訊號</b>\n\n")
	for _, q := range actionable {
		b.WriteString(fmt.Sprintf("%s %s  %.2f (%+.2f%%)\n   %s\n",
			q.Symbol, q.Name, q.Price, q.ChangePercent, q.Recommendation.Reason))
	}
	s.trySend(b.String())
}

func (s *Scheduler) backtestTask() {
	log.Println("[INFO] running backtest sweep")
	for i, sym := range s.Store.Watchlist() {
		if i > 0 && s.BatchDelay > 0 {
			time.Sleep(s.BatchDelay)
		}
		s.trySend(s.runBacktest(sym))
	}
}

// runBacktest fetches history and simulates one symbol, returning the
// report text.
func (s *Scheduler) runBacktest(sym string) string {
	symbol := collector.NormalizeSymbol(sym)
	closes, err := s.Collector.FetchHistory(symbol, s.BacktestDays)
	if err != nil {
		log.Printf("[ERROR] backtest fetch %s: %v", symbol, err)
		return fmt.Sprintf("❌ %s 回測資料取得失敗", symbol)
	}
	result, err := backtest.Run(closes)
	if err != nil {
		if errors.Is(err, backtest.ErrInsufficientHistory) {
			return fmt.Sprintf("⚠️ %s 資料不足，無法進行回測", symbol)
		}
		log.Printf("[ERROR] backtest %s: %v", symbol, err)
		return fmt.Sprintf("❌ %s 回測失敗", symbol)
	}
	if err := s.Recorder.RecordBacktest(symbol, result); err != nil {
		log.Printf("[ERROR] record backtest %s: %v", symbol, err)
	}
	return notifier.FormatBacktestReport(symbol, result)
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return helpText
	}

	switch fields[0] {
	case "/daily", "查看清單報告":
		s.dailyTask()
		return ""

	case "/list", "查看清單":
		symbols := s.Store.Watchlist()
		if len(symbols) == 0 {
			return "觀察清單是空的。使用 /watch 代號 加入。"
		}
		return "👀 觀察清單:\n" + strings.Join(symbols, "\n")

	case "/quote":
		if len(fields) < 2 {
			return "用法: /quote 代號"
		}
		quote, stats, err := s.Collector.FetchDetail(fields[1])
		if err != nil {
			return fmt.Sprintf("❌ 無法取得 %s: 股票不存在或無交易資料", fields[1])
		}
		if err := s.Recorder.RecordQuote(quote); err != nil {
			log.Printf("[ERROR] record quote %s: %v", quote.Symbol, err)
		}
		return notifier.FormatQuoteDetail(quote, stats)

	case "/watch":
		if len(fields) < 2 {
			return "用法: /watch 代號"
		}
		symbol := collector.NormalizeSymbol(fields[1])
		if s.Store.Toggle(symbol) {
			return fmt.Sprintf("✅ 已加入觀察清單: %s", symbol)
		}
		return fmt.Sprintf("🗑 已移除觀察清單: %s", symbol)

	case "/unwatch":
		if len(fields) < 2 {
			return "用法: /unwatch 代號"
		}
		symbol := collector.NormalizeSymbol(fields[1])
		if !s.Store.IsWatched(symbol) {
			return fmt.Sprintf("%s 不在觀察清單中", symbol)
		}
		s.Store.Toggle(symbol)
		return fmt.Sprintf("🗑 已移除觀察清單: %s", symbol)

	case "/backtest", "查看回測":
		if len(fields) < 2 {
			return "用法: /backtest 代號"
		}
		return s.runBacktest(fields[1])

	case "/hold":
		if len(fields) < 4 {
			return "用法: /hold 代號 股數 成本 (股數 0 代表刪除)"
		}
		shares, err1 := strconv.ParseFloat(fields[2], 64)
		cost, err2 := strconv.ParseFloat(fields[3], 64)
		if err1 != nil || err2 != nil {
			return "股數與成本必須是數字"
		}
		symbol := collector.NormalizeSymbol(fields[1])
		s.Store.UpdateHolding(symbol, shares, cost)
		if shares > 0 && cost > 0 {
			return fmt.Sprintf("✅ 已記錄持股: %s %.0f股 @ %.2f", symbol, shares, cost)
		}
		return fmt.Sprintf("🗑 已刪除持股: %s", symbol)

	case "/portfolio", "查看持股":
		holdings := s.Store.Holdings()
		quotes := make(map[string]*model.Quote, len(holdings))
		first := true
		for sym := range holdings {
			if !first && s.BatchDelay > 0 {
				time.Sleep(s.BatchDelay)
			}
			first = false
			quote, err := s.Collector.FetchQuote(sym)
			if err != nil {
				log.Printf("[WARN] portfolio quote %s: %v", sym, err)
				continue
			}
			quotes[sym] = quote
		}
		return notifier.FormatPortfolio(holdings, quotes)

	default:
		return helpText
	}
}

const helpText = "可用命令:\n" +
	"• /quote 代號 — 即時報價與建議\n" +
	"• /watch 代號 — 加入/移除觀察清單\n" +
	"• /unwatch 代號 — 移除觀察清單\n" +
	"• /list — 查看觀察清單\n" +
	"• /backtest 代號 — SMA 交叉回測\n" +
	"• /hold 代號 股數 成本 — 記錄持股\n" +
	"• /portfolio — 持股損益\n" +
	"• /daily — 立即產生清單報告"

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
