// Package engine drives a strategy over a bar sequence, turning its signals
// into broker orders and recording the resulting fills.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"smacross/internal/broker"
	"smacross/internal/chartlog"
	"smacross/internal/domain"
	"smacross/internal/journal"
	"smacross/internal/metrics"
	"smacross/internal/store"
	"smacross/internal/strategy"
)

const timeLayout = "2006-01-02 15:04:05"

// markSetter is implemented by brokers that fill at a caller-supplied price
// (the simulator). Live brokers price orders themselves.
type markSetter interface {
	SetMarkPrice(symbol string, price float64)
}

// Engine orchestrates one run: bars in, fills out. A buy signal targets full
// long exposure (all available cash); a sell signal flattens the position.
// The loop is strictly sequential: one OnBar call per bar, in time order.
type Engine struct {
	log     *slog.Logger
	broker  broker.Broker
	strat   strategy.Strategy
	journal *journal.Journal
	chart   *chartlog.ChartLog
	trades  store.TradeLogStore // optional
	signals store.SignalStore   // optional
}

// New creates an Engine. The trade and signal stores may be nil, in which
// case fills and signals are kept only in memory.
func New(
	log *slog.Logger,
	b broker.Broker,
	strat strategy.Strategy,
	j *journal.Journal,
	chart *chartlog.ChartLog,
	trades store.TradeLogStore,
	signals store.SignalStore,
) *Engine {
	return &Engine{
		log:     log,
		broker:  b,
		strat:   strat,
		journal: j,
		chart:   chart,
		trades:  trades,
		signals: signals,
	}
}

// Run replays bars through the strategy in order. It returns on the first
// storage error or context cancellation; order rejections are logged and
// skipped so one bad sizing step cannot abort a whole run.
func (e *Engine) Run(ctx context.Context, bars []domain.Bar) error {
	if err := e.strat.Init(ctx); err != nil {
		return fmt.Errorf("initializing strategy %s: %w", e.strat.Name(), err)
	}

	for _, bar := range bars {
		if err := ctx.Err(); err != nil {
			return err
		}

		if ms, ok := e.broker.(markSetter); ok {
			ms.SetMarkPrice(bar.Symbol, bar.Close)
		}
		metrics.BarsTotal.WithLabelValues(bar.Symbol).Inc()

		signals, err := e.strat.OnBar(ctx, bar)
		if err != nil {
			return fmt.Errorf("strategy %s on bar %s: %w", e.strat.Name(), bar.Timestamp, err)
		}

		for _, sig := range signals {
			if err := e.handleSignal(ctx, bar, sig); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *Engine) handleSignal(ctx context.Context, bar domain.Bar, sig domain.Signal) error {
	metrics.SignalsTotal.WithLabelValues(sig.Symbol, string(sig.Type)).Inc()

	if e.signals != nil {
		if err := e.signals.SaveSignal(ctx, &sig); err != nil {
			return fmt.Errorf("saving signal: %w", err)
		}
	}

	order, err := e.sizeOrder(ctx, bar, sig)
	if err != nil {
		return err
	}
	if order == nil {
		return nil
	}

	metrics.OrdersTotal.WithLabelValues(order.Symbol, string(order.Side)).Inc()
	filled, err := e.broker.SubmitOrder(ctx, order)
	if err != nil {
		e.log.Error("order rejected",
			"symbol", order.Symbol, "side", order.Side, "qty", order.Qty, "err", err)
		return nil
	}

	// Only FILLED orders are executions; everything else is ignored.
	if filled.Status != domain.OrderStatusFilled {
		return nil
	}

	signedQty := filled.FilledQty
	if filled.Side == domain.OrderSideSell {
		signedQty = -signedQty
	}

	rec := e.journal.Record(domain.Fill{
		Timestamp: bar.Timestamp,
		Symbol:    bar.Symbol,
		Price:     filled.FilledAvgPrice,
		Qty:       signedQty,
	})
	if rec == nil {
		return nil
	}

	marker := chartlog.SeriesBuy
	if rec.Side == domain.OrderSideSell {
		marker = chartlog.SeriesSell
	}
	// Markers use the fill price so they align with actual executions.
	e.chart.Plot(bar.Symbol, marker, bar.Timestamp, filled.FilledAvgPrice)
	metrics.FillsTotal.WithLabelValues(bar.Symbol, string(rec.Side)).Inc()

	if e.trades != nil {
		timeUTC := bar.Timestamp.UTC().Format(timeLayout)
		if err := e.trades.SaveTrade(ctx, bar.Symbol, timeUTC, rec.Side, rec.Price, rec.Qty); err != nil {
			return fmt.Errorf("saving trade: %w", err)
		}
	}

	e.log.Info("fill",
		"symbol", bar.Symbol, "side", rec.Side,
		"qty", rec.Qty, "price", rec.Price, "time", bar.Timestamp)
	return nil
}

// sizeOrder converts a signal into a concrete market order: buys spend all
// available cash at the bar close, sells flatten the entire position. A nil
// order means there is nothing to do (already flat, or cash too small for a
// single share).
func (e *Engine) sizeOrder(ctx context.Context, bar domain.Bar, sig domain.Signal) (*domain.Order, error) {
	switch sig.Type {
	case domain.SignalTypeBuy:
		acct, err := e.broker.GetAccount(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetching account: %w", err)
		}
		qty := math.Floor(acct.Cash / bar.Close)
		if qty < 1 {
			e.log.Warn("buy signal skipped: insufficient cash",
				"symbol", sig.Symbol, "cash", acct.Cash, "price", bar.Close)
			return nil, nil
		}
		return &domain.Order{
			Symbol:    sig.Symbol,
			Side:      domain.OrderSideBuy,
			Type:      domain.OrderTypeMarket,
			Qty:       qty,
			CreatedAt: bar.Timestamp,
		}, nil

	case domain.SignalTypeSell:
		pos, err := e.broker.GetPosition(ctx, sig.Symbol)
		if err != nil {
			return nil, fmt.Errorf("fetching position: %w", err)
		}
		if pos.Qty <= 0 {
			return nil, nil
		}
		return &domain.Order{
			Symbol:    sig.Symbol,
			Side:      domain.OrderSideSell,
			Type:      domain.OrderTypeMarket,
			Qty:       pos.Qty,
			CreatedAt: bar.Timestamp,
		}, nil

	default:
		return nil, nil
	}
}
