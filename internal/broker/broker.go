// Package broker defines the Broker interface and provides implementations
// for executing orders: an in-memory simulator for backtests and an Alpaca
// client for paper trading.
package broker

import (
	"context"

	"smacross/internal/domain"
)

// Broker abstracts order execution and account state. Implementations report
// fills on the returned order: a filled order carries FilledQty and
// FilledAvgPrice, and only filled orders represent executions.
type Broker interface {
	// Name returns the broker identifier (e.g. "alpaca", "simulator").
	Name() string

	// SubmitOrder sends an order for execution and returns its updated state.
	SubmitOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)

	// GetPosition returns the current position for a symbol, or a zero
	// position if the symbol is not held.
	GetPosition(ctx context.Context, symbol string) (*domain.Position, error)

	// GetAccount returns a snapshot of the account's financial metrics.
	GetAccount(ctx context.Context) (*domain.AccountInfo, error)
}
