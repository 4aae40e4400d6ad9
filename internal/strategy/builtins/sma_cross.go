// Package builtins provides built-in strategy implementations that ship with
// the smacross system.
package builtins

import (
	"context"

	"smacross/internal/chartlog"
	"smacross/internal/domain"
	"smacross/internal/indicator"
	"smacross/internal/strategy"
)

// Compile-time interface check.
var _ strategy.Strategy = (*SMACross)(nil)

// SMACross implements a simple moving average crossover strategy. It signals
// a buy (full long exposure) when the fast SMA crosses above the slow SMA,
// and a sell (flatten) when it crosses below. The first bar where both
// averages become ready only initializes the detector and never signals.
//
// Each ready bar, the close price and both averages are plotted into the
// chart log under the fixed series names consumed by the visualizer.
type SMACross struct {
	symbol string
	fast   *indicator.SMA
	slow   *indicator.SMA
	cross  strategy.CrossDetector
	chart  *chartlog.ChartLog
}

// NewSMACross creates a new SMACross strategy for one symbol with the given
// fast and slow periods, plotting into the provided chart log. The chart
// name is the symbol itself.
func NewSMACross(symbol string, fastPeriod, slowPeriod int, chart *chartlog.ChartLog) *SMACross {
	return &SMACross{
		symbol: symbol,
		fast:   indicator.NewSMA(fastPeriod),
		slow:   indicator.NewSMA(slowPeriod),
		chart:  chart,
	}
}

// Name returns "sma-cross".
func (s *SMACross) Name() string {
	return "sma-cross"
}

// Init performs any setup required by the SMA crossover strategy.
func (s *SMACross) Init(_ context.Context) error {
	return nil
}

// OnBar feeds the bar close to both averages, plots the current readings
// once warm-up is over, and returns at most one signal per bar.
func (s *SMACross) OnBar(_ context.Context, bar domain.Bar) ([]domain.Signal, error) {
	if bar.Symbol != s.symbol {
		return nil, nil
	}

	s.fast.Update(bar.Close)
	s.slow.Update(bar.Close)

	fastReady, slowReady := s.fast.Ready(), s.slow.Ready()
	if fastReady && slowReady {
		s.chart.Plot(s.symbol, chartlog.SeriesPrice, bar.Timestamp, bar.Close)
		s.chart.Plot(s.symbol, chartlog.SeriesFastSMA, bar.Timestamp, s.fast.Value())
		s.chart.Plot(s.symbol, chartlog.SeriesSlowSMA, bar.Timestamp, s.slow.Value())
	}

	var sigType domain.SignalType
	switch s.cross.Update(s.fast.Value(), s.slow.Value(), fastReady, slowReady) {
	case strategy.EventEnter:
		sigType = domain.SignalTypeBuy
	case strategy.EventExit:
		sigType = domain.SignalTypeSell
	default:
		return nil, nil
	}

	return []domain.Signal{{
		StrategyID: s.Name(),
		Symbol:     s.symbol,
		Type:       sigType,
		Price:      bar.Close,
		CreatedAt:  bar.Timestamp,
	}}, nil
}
