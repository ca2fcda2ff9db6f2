package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	DataSource struct {
		// ProxyBaseURL switches quote fetching to a self-hosted
		// /api/stock forwarding proxy; empty goes to Yahoo directly.
		ProxyBaseURL string `yaml:"proxy_base_url"`
		YahooBaseURL string `yaml:"yahoo_base_url"`
		NamesURL     string `yaml:"names_url"`
	} `yaml:"data_source"`
	Watch struct {
		Symbols   []string `yaml:"symbols"`
		StateFile string   `yaml:"state_file"`
	} `yaml:"watch"`
	Schedule struct {
		DailyCron    string `yaml:"daily_cron"`
		IntradayCron string `yaml:"intraday_cron"`
		BacktestCron string `yaml:"backtest_cron"`
	} `yaml:"schedule"`
	Backtest struct {
		LookbackDays int `yaml:"lookback_days"`
	} `yaml:"backtest"`
	Batch struct {
		DelayMS int `yaml:"delay_ms"`
	} `yaml:"batch"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("PROXY_BASE_URL"); v != "" {
		cfg.DataSource.ProxyBaseURL = v
	}
	if v := os.Getenv("NAMES_URL"); v != "" {
		cfg.DataSource.NamesURL = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("STATE_FILE"); v != "" {
		cfg.Watch.StateFile = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}
	if v := os.Getenv("BATCH_DELAY_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			cfg.Batch.DelayMS = ms
		}
	}

	// Defaults
	if len(cfg.Watch.Symbols) == 0 {
		cfg.Watch.Symbols = []string{"2330.TW", "2317.TW", "2454.TW"}
	}
	if cfg.Watch.StateFile == "" {
		cfg.Watch.StateFile = "data/portfolio.json"
	}
	if cfg.Schedule.DailyCron == "" {
		cfg.Schedule.DailyCron = "0 45 13 * * 1-5" // after Taipei close
	}
	if cfg.Schedule.IntradayCron == "" {
		cfg.Schedule.IntradayCron = "0 */10 9-13 * * 1-5"
	}
	if cfg.Schedule.BacktestCron == "" {
		cfg.Schedule.BacktestCron = "0 30 14 * * 5" // Friday afternoon
	}
	if cfg.Backtest.LookbackDays == 0 {
		cfg.Backtest.LookbackDays = 90
	}
	if cfg.Batch.DelayMS == 0 {
		cfg.Batch.DelayMS = 500
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/money_growth.db"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	if c.Backtest.LookbackDays < 0 {
		return fmt.Errorf("backtest.lookback_days must be positive")
	}
	if c.Batch.DelayMS < 0 {
		return fmt.Errorf("batch.delay_ms must not be negative")
	}
	return nil
}
