package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"MoneyGrowth/internal/collector"
	"MoneyGrowth/internal/config"
	"MoneyGrowth/internal/names"
	"MoneyGrowth/internal/notifier"
	"MoneyGrowth/internal/recorder"
	"MoneyGrowth/internal/scheduler"
	"MoneyGrowth/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] MoneyGrowth starting...")

	_ = godotenv.Load()

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetcher
	var fetcher collector.Fetcher
	if cfg.DataSource.ProxyBaseURL != "" {
		fetcher = collector.NewProxyFetcher(cfg.DataSource.ProxyBaseURL, cfg.Proxy)
	} else {
		fetcher = collector.NewYahooFetcher(cfg.DataSource.YahooBaseURL, cfg.Proxy)
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	// Init name mapping loader (lazy, non-fatal on failure)
	nameLoader := names.NewLoader(cfg.DataSource.NamesURL, cfg.Proxy)

	// Init collector
	col := collector.NewCollector(fetcher, nameLoader)

	// Init portfolio store
	st, err := store.NewManager(cfg.Watch.StateFile, cfg.Watch.Symbols)
	if err != nil {
		log.Fatalf("[FATAL] init portfolio store: %v", err)
	}

	// Init Telegram notifier
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, col, st, tn, rec,
		time.Duration(cfg.Batch.DelayMS)*time.Millisecond, cfg.Backtest.LookbackDays)
	if err := sched.RegisterAll(cfg.Schedule.DailyCron, cfg.Schedule.IntradayCron, cfg.Schedule.BacktestCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram polling
	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Println("[INFO] Telegram polling started")

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, generating watchlist report now")
		go sched.RunDailyNow()
	}

	log.Println("[INFO] MoneyGrowth is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] MoneyGrowth stopped")
}
