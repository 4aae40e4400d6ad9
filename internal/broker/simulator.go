package broker

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"smacross/internal/domain"
)

// Compile-time interface check.
var _ Broker = (*SimulatorBroker)(nil)

// SimulatorBroker implements the Broker interface for backtesting. It tracks
// cash and positions in memory with decimal arithmetic and fills market
// orders immediately and fully at the current mark price. It makes no
// external calls.
type SimulatorBroker struct {
	cash      decimal.Decimal
	positions map[string]decimal.Decimal // symbol → signed share qty
	avgEntry  map[string]decimal.Decimal
	marks     map[string]decimal.Decimal
	nextID    int
}

// NewSimulatorBroker creates a SimulatorBroker with the given starting cash.
func NewSimulatorBroker(initialCash float64) *SimulatorBroker {
	return &SimulatorBroker{
		cash:      decimal.NewFromFloat(initialCash),
		positions: make(map[string]decimal.Decimal),
		avgEntry:  make(map[string]decimal.Decimal),
		marks:     make(map[string]decimal.Decimal),
	}
}

// Name returns "simulator".
func (b *SimulatorBroker) Name() string {
	return "simulator"
}

// SetMarkPrice updates the price at which market orders for the symbol fill.
// The driving loop calls this once per bar before submitting orders.
func (b *SimulatorBroker) SetMarkPrice(symbol string, price float64) {
	b.marks[symbol] = decimal.NewFromFloat(price)
}

// SubmitOrder fills a market order at the current mark price. Orders that
// would overdraw cash or oversell the position are rejected with an error;
// the returned order then carries OrderStatusRejected.
func (b *SimulatorBroker) SubmitOrder(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order.Type != domain.OrderTypeMarket {
		order.Status = domain.OrderStatusRejected
		return order, fmt.Errorf("simulator supports market orders only, got %q", order.Type)
	}

	mark, ok := b.marks[order.Symbol]
	if !ok || mark.IsZero() {
		order.Status = domain.OrderStatusRejected
		return order, fmt.Errorf("no mark price for %s", order.Symbol)
	}

	qty := decimal.NewFromFloat(order.Qty)
	if qty.IsZero() || qty.IsNegative() {
		order.Status = domain.OrderStatusRejected
		return order, fmt.Errorf("invalid order quantity %v", order.Qty)
	}

	cost := mark.Mul(qty)
	held := b.positions[order.Symbol]

	switch order.Side {
	case domain.OrderSideBuy:
		if cost.GreaterThan(b.cash) {
			order.Status = domain.OrderStatusRejected
			return order, fmt.Errorf("insufficient cash: need %s, have %s", cost, b.cash)
		}
		b.cash = b.cash.Sub(cost)
		// Weighted average entry across adds.
		newQty := held.Add(qty)
		prevCost := b.avgEntry[order.Symbol].Mul(held)
		b.avgEntry[order.Symbol] = prevCost.Add(cost).Div(newQty)
		b.positions[order.Symbol] = newQty

	case domain.OrderSideSell:
		if qty.GreaterThan(held) {
			order.Status = domain.OrderStatusRejected
			return order, fmt.Errorf("insufficient shares: selling %s, holding %s", qty, held)
		}
		b.cash = b.cash.Add(cost)
		remaining := held.Sub(qty)
		if remaining.IsZero() {
			delete(b.positions, order.Symbol)
			delete(b.avgEntry, order.Symbol)
		} else {
			b.positions[order.Symbol] = remaining
		}

	default:
		order.Status = domain.OrderStatusRejected
		return order, fmt.Errorf("unknown order side %q", order.Side)
	}

	b.nextID++
	order.ID = fmt.Sprintf("sim-%d", b.nextID)
	order.Status = domain.OrderStatusFilled
	order.FilledQty = order.Qty
	order.FilledAvgPrice, _ = mark.Float64()
	order.UpdatedAt = time.Now()
	return order, nil
}

// GetPosition returns the simulated position for a symbol. Unheld symbols
// yield a zero position, not an error.
func (b *SimulatorBroker) GetPosition(_ context.Context, symbol string) (*domain.Position, error) {
	qty, _ := b.positions[symbol].Float64()
	avg, _ := b.avgEntry[symbol].Float64()
	return &domain.Position{
		Symbol:        symbol,
		Qty:           qty,
		AvgEntryPrice: avg,
	}, nil
}

// GetAccount returns simulated cash plus position value at current marks.
func (b *SimulatorBroker) GetAccount(_ context.Context) (*domain.AccountInfo, error) {
	equity := b.cash
	for symbol, qty := range b.positions {
		equity = equity.Add(qty.Mul(b.marks[symbol]))
	}
	cash, _ := b.cash.Float64()
	eq, _ := equity.Float64()
	return &domain.AccountInfo{Cash: cash, Equity: eq}, nil
}
