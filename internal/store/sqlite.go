package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"smacross/internal/domain"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.
)

func parseUTC(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04:05", s, time.UTC)
}

// Compile-time interface checks.
var _ TradeLogStore = (*SQLiteStore)(nil)
var _ SignalStore = (*SQLiteStore)(nil)

// SQLiteStore implements TradeLogStore and SignalStore backed by a SQLite
// database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath, creates the
// schema if needed, and returns a ready-to-use SQLiteStore.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS trades (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	symbol   TEXT NOT NULL,
	time_utc TEXT NOT NULL,
	side     TEXT NOT NULL,
	price    REAL NOT NULL,
	qty      REAL NOT NULL
);
CREATE TABLE IF NOT EXISTS signals (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	strategy   TEXT NOT NULL,
	symbol     TEXT NOT NULL,
	type       TEXT NOT NULL,
	price      REAL NOT NULL,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_trades_symbol ON trades(symbol);
CREATE INDEX IF NOT EXISTS idx_signals_strategy ON signals(strategy);
`)
	return err
}

// ---------------------------------------------------------------------------
// TradeLogStore implementation
// ---------------------------------------------------------------------------

// SaveTrade appends one executed trade to the journal table.
func (s *SQLiteStore) SaveTrade(ctx context.Context, symbol string, timeUTC string, side domain.OrderSide, price, qty float64) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO trades (symbol, time_utc, side, price, qty) VALUES (?, ?, ?, ?, ?)`,
		symbol, timeUTC, string(side), price, qty,
	)
	return err
}

// ListTrades returns all trades for the symbol in insertion order.
func (s *SQLiteStore) ListTrades(ctx context.Context, symbol string) ([]TradeRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, symbol, time_utc, side, price, qty FROM trades WHERE symbol = ? ORDER BY id`,
		symbol,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trades []TradeRow
	for rows.Next() {
		var t TradeRow
		if err := rows.Scan(&t.ID, &t.Symbol, &t.TimeUTC, &t.Side, &t.Price, &t.Qty); err != nil {
			return nil, err
		}
		trades = append(trades, t)
	}
	return trades, rows.Err()
}

// ---------------------------------------------------------------------------
// SignalStore implementation
// ---------------------------------------------------------------------------

// SaveSignal inserts a new signal.
func (s *SQLiteStore) SaveSignal(ctx context.Context, signal *domain.Signal) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO signals (strategy, symbol, type, price, created_at) VALUES (?, ?, ?, ?, ?)`,
		signal.StrategyID, signal.Symbol, string(signal.Type), signal.Price,
		signal.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
	)
	return err
}

// ListSignals returns the most recent signals for a strategy, up to limit.
func (s *SQLiteStore) ListSignals(ctx context.Context, strategyID string, limit int) ([]domain.Signal, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT strategy, symbol, type, price, created_at FROM signals
		 WHERE strategy = ? ORDER BY id DESC LIMIT ?`,
		strategyID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var signals []domain.Signal
	for rows.Next() {
		var sig domain.Signal
		var sigType, createdAt string
		if err := rows.Scan(&sig.StrategyID, &sig.Symbol, &sigType, &sig.Price, &createdAt); err != nil {
			return nil, err
		}
		sig.Type = domain.SignalType(sigType)
		sig.CreatedAt, _ = parseUTC(createdAt)
		signals = append(signals, sig)
	}
	return signals, rows.Err()
}
