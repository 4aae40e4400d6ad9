package domain

import (
	"testing"
	"time"
)

func TestZeroValues(t *testing.T) {
	bar := Bar{}
	if bar.Symbol != "" {
		t.Error("expected empty Symbol for zero-value Bar")
	}
	if !bar.Timestamp.IsZero() {
		t.Error("expected zero Timestamp for zero-value Bar")
	}
	if bar.Open != 0 || bar.High != 0 || bar.Low != 0 || bar.Close != 0 {
		t.Error("expected zero OHLC values for zero-value Bar")
	}

	order := Order{}
	if order.ID != "" || order.Side != "" || order.Status != "" {
		t.Error("expected empty ID/Side/Status for zero-value Order")
	}
	if order.Qty != 0 || order.FilledQty != 0 || order.FilledAvgPrice != 0 {
		t.Error("expected zero Qty/FilledQty/FilledAvgPrice for zero-value Order")
	}

	fill := Fill{}
	if fill.Qty != 0 || fill.Price != 0 {
		t.Error("expected zero Qty/Price for zero-value Fill")
	}
}

func TestEnumValues(t *testing.T) {
	if OrderSideBuy != "buy" || OrderSideSell != "sell" {
		t.Error("OrderSide constants have unexpected values")
	}
	if OrderStatusFilled != "filled" {
		t.Errorf("OrderStatusFilled = %q, want %q", OrderStatusFilled, "filled")
	}
	if SignalTypeBuy != "buy" || SignalTypeSell != "sell" {
		t.Error("SignalType constants have unexpected values")
	}
}

func TestSignalConstruction(t *testing.T) {
	now := time.Now()
	sig := Signal{
		StrategyID: "sma-cross",
		Symbol:     "SPY",
		Type:       SignalTypeBuy,
		Price:      412.5,
		CreatedAt:  now,
	}
	if sig.StrategyID != "sma-cross" {
		t.Errorf("sig.StrategyID = %q, want %q", sig.StrategyID, "sma-cross")
	}
	if sig.Type != SignalTypeBuy {
		t.Errorf("sig.Type = %q, want %q", sig.Type, SignalTypeBuy)
	}
}
