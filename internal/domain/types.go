// Package domain defines the core types shared across the smacross system:
// bars, orders, positions, fills, and trading signals.
package domain

import "time"

// Bar is a single OHLCV bar for one symbol at one timestamp. Bars are
// immutable once delivered.
type Bar struct {
	Symbol     string
	Timestamp  time.Time
	Open       float64
	High       float64
	Low        float64
	Close      float64
	Volume     int64
	TradeCount int64
	VWAP       float64
}

// OrderSide is the direction of an order.
type OrderSide string

const (
	OrderSideBuy  OrderSide = "buy"
	OrderSideSell OrderSide = "sell"
)

// OrderType is the execution type of an order. Only market orders are used
// by the built-in strategies.
type OrderType string

const (
	OrderTypeMarket OrderType = "market"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusNew       OrderStatus = "new"
	OrderStatusFilled    OrderStatus = "filled"
	OrderStatusRejected  OrderStatus = "rejected"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order is a request to buy or sell, plus its fill state after submission.
type Order struct {
	ID             string
	Symbol         string
	Side           OrderSide
	Type           OrderType
	Qty            float64
	Status         OrderStatus
	FilledQty      float64
	FilledAvgPrice float64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Fill is a confirmed execution. Qty is signed: positive for buys, negative
// for sells. A zero Qty denotes a non-fill status event and is not a trade.
type Fill struct {
	Timestamp time.Time
	Symbol    string
	Price     float64
	Qty       float64
}

// Position is a current holding in one symbol.
type Position struct {
	Symbol        string
	Qty           float64
	AvgEntryPrice float64
}

// AccountInfo is a snapshot of account-level financials.
type AccountInfo struct {
	Cash   float64
	Equity float64
}

// SignalType classifies a strategy signal.
type SignalType string

const (
	SignalTypeBuy  SignalType = "buy"
	SignalTypeSell SignalType = "sell"
)

// Signal is a directional trade intent emitted by a strategy. Buy means "go
// to full long exposure"; sell means "flatten".
type Signal struct {
	StrategyID string
	Symbol     string
	Type       SignalType
	Price      float64
	CreatedAt  time.Time
}
