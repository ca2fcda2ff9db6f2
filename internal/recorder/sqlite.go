package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"MoneyGrowth/internal/model"
)

// SQLiteRecorder persists snapshots to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs
// migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboards can read while the bot writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS quote_snapshots (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp      INTEGER NOT NULL,
			symbol         TEXT NOT NULL,
			name           TEXT,
			price          REAL,
			change         REAL,
			change_percent REAL,
			volume         REAL,
			action         TEXT,
			reason         TEXT,
			confidence     REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_quote_ts ON quote_snapshots(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_quote_symbol ON quote_snapshots(symbol)`,

		`CREATE TABLE IF NOT EXISTS backtest_runs (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp       INTEGER NOT NULL,
			symbol          TEXT NOT NULL,
			initial_capital REAL,
			final_value     REAL,
			profit          REAL,
			profit_percent  REAL,
			trade_count     INTEGER,
			win_rate        REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_backtest_ts ON backtest_runs(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_backtest_symbol ON backtest_runs(symbol)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordQuote(quote *model.Quote) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO quote_snapshots
		(timestamp, symbol, name, price, change, change_percent, volume, action, reason, confidence)
		VALUES (?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), quote.Symbol, quote.Name,
		quote.Price, quote.Change, quote.ChangePercent, quote.Volume,
		string(quote.Recommendation.Action), quote.Recommendation.Reason,
		quote.Recommendation.Confidence,
	)
	return err
}

func (r *SQLiteRecorder) RecordBacktest(symbol string, result *model.BacktestResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO backtest_runs
		(timestamp, symbol, initial_capital, final_value, profit, profit_percent, trade_count, win_rate)
		VALUES (?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), symbol,
		result.InitialCapital, result.FinalValue,
		result.Profit, result.ProfitPercent,
		result.TradeCount, result.WinRate,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
