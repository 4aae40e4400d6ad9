package broker

import (
	"context"
	"fmt"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	"github.com/shopspring/decimal"

	"smacross/internal/domain"
)

// Compile-time interface check.
var _ Broker = (*AlpacaBroker)(nil)

// AlpacaBroker implements the Broker interface against the Alpaca trading
// API. It is intended for paper-trading endpoints.
type AlpacaBroker struct {
	client *alpaca.Client
}

// NewAlpacaBroker creates a new AlpacaBroker configured with the given
// credentials and API endpoint.
func NewAlpacaBroker(apiKey, apiSecret, baseURL string) *AlpacaBroker {
	return &AlpacaBroker{
		client: alpaca.NewClient(alpaca.ClientOpts{
			APIKey:    apiKey,
			APISecret: apiSecret,
			BaseURL:   baseURL,
		}),
	}
}

// Name returns "alpaca".
func (b *AlpacaBroker) Name() string {
	return "alpaca"
}

// SubmitOrder places a day market order with Alpaca and maps the response
// back onto the order.
func (b *AlpacaBroker) SubmitOrder(_ context.Context, order *domain.Order) (*domain.Order, error) {
	qty := decimal.NewFromFloat(order.Qty)
	placed, err := b.client.PlaceOrder(alpaca.PlaceOrderRequest{
		Symbol:      order.Symbol,
		Qty:         &qty,
		Side:        alpaca.Side(order.Side),
		Type:        alpaca.Market,
		TimeInForce: alpaca.Day,
	})
	if err != nil {
		return nil, fmt.Errorf("placing %s order for %s: %w", order.Side, order.Symbol, err)
	}

	order.ID = placed.ID
	order.Status = domain.OrderStatus(placed.Status)
	order.FilledQty, _ = placed.FilledQty.Float64()
	if placed.FilledAvgPrice != nil {
		order.FilledAvgPrice, _ = placed.FilledAvgPrice.Float64()
	}
	order.UpdatedAt = time.Now()
	return order, nil
}

// GetPosition returns the current Alpaca position for a symbol. A symbol
// with no open position yields a zero position.
func (b *AlpacaBroker) GetPosition(_ context.Context, symbol string) (*domain.Position, error) {
	pos, err := b.client.GetPosition(symbol)
	if err != nil {
		// Alpaca reports "no position" as an API error; callers treat a
		// zero position as flat.
		return &domain.Position{Symbol: symbol}, nil
	}

	qty, _ := pos.Qty.Float64()
	avg, _ := pos.AvgEntryPrice.Float64()
	return &domain.Position{
		Symbol:        symbol,
		Qty:           qty,
		AvgEntryPrice: avg,
	}, nil
}

// GetAccount returns the current account information from the Alpaca API.
func (b *AlpacaBroker) GetAccount(_ context.Context) (*domain.AccountInfo, error) {
	acct, err := b.client.GetAccount()
	if err != nil {
		return nil, fmt.Errorf("fetching account: %w", err)
	}

	cash, _ := acct.Cash.Float64()
	equity, _ := acct.Equity.Float64()
	return &domain.AccountInfo{Cash: cash, Equity: equity}, nil
}
