// Package store defines storage interfaces for persisting and retrieving
// bars, trade records, and signals, with Parquet and SQLite backends.
package store

import (
	"context"
	"time"

	"smacross/internal/domain"
)

// BarStore persists and retrieves OHLCV bar data.
type BarStore interface {
	// WriteBars persists a batch of bars to storage.
	WriteBars(ctx context.Context, bars []domain.Bar) error

	// ReadBars returns bars for the given symbol within [start, end],
	// sorted by timestamp.
	ReadBars(ctx context.Context, symbol string, start, end time.Time) ([]domain.Bar, error)

	// ListSymbols returns all distinct symbols available in the store.
	ListSymbols(ctx context.Context) ([]string, error)
}

// TradeLogStore persists executed trades for later inspection.
type TradeLogStore interface {
	// SaveTrade appends one executed trade to the log.
	SaveTrade(ctx context.Context, symbol string, timeUTC string, side domain.OrderSide, price, qty float64) error

	// ListTrades returns all trades for the symbol in insertion order.
	ListTrades(ctx context.Context, symbol string) ([]TradeRow, error)
}

// SignalStore persists trading signals.
type SignalStore interface {
	// SaveSignal inserts a new signal.
	SaveSignal(ctx context.Context, signal *domain.Signal) error

	// ListSignals returns the most recent signals for a strategy, up to limit.
	ListSignals(ctx context.Context, strategyID string, limit int) ([]domain.Signal, error)
}

// TradeRow is one persisted trade as stored in the journal table.
type TradeRow struct {
	ID      int64
	Symbol  string
	TimeUTC string
	Side    string
	Price   float64
	Qty     float64
}
