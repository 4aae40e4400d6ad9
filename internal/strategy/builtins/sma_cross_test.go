package builtins

import (
	"context"
	"testing"
	"time"

	"smacross/internal/chartlog"
	"smacross/internal/domain"
)

func bar(day int, close float64) domain.Bar {
	return domain.Bar{
		Symbol:    "SPY",
		Timestamp: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, day),
		Close:     close,
	}
}

func run(t *testing.T, s *SMACross, closes []float64) []domain.Signal {
	t.Helper()
	var all []domain.Signal
	for i, c := range closes {
		sigs, err := s.OnBar(context.Background(), bar(i, c))
		if err != nil {
			t.Fatalf("OnBar(%d): %v", i, err)
		}
		all = append(all, sigs...)
	}
	return all
}

func TestSMACrossNoSignalDuringWarmup(t *testing.T) {
	cl := chartlog.New()
	s := NewSMACross("SPY", 2, 4, cl)

	// Fewer bars than the slow period: nothing may be signalled or plotted.
	sigs := run(t, s, []float64{10, 11, 12})
	if len(sigs) != 0 {
		t.Errorf("got %d signals during warm-up, want 0", len(sigs))
	}
	if got := cl.Len("SPY", chartlog.SeriesPrice); got != 0 {
		t.Errorf("plotted %d price points during warm-up, want 0", got)
	}
}

func TestSMACrossFirstReadyBarOnlyInitializes(t *testing.T) {
	cl := chartlog.New()
	s := NewSMACross("SPY", 2, 4, cl)

	// Rising closes: fast > slow as soon as both are ready, but the first
	// ready bar must not trade.
	sigs := run(t, s, []float64{10, 11, 12, 13})
	if len(sigs) != 0 {
		t.Errorf("got %d signals on first ready bar, want 0", len(sigs))
	}
	if got := cl.Len("SPY", chartlog.SeriesPrice); got != 1 {
		t.Errorf("plotted %d price points, want 1", got)
	}
}

func TestSMACrossSignalsOnCross(t *testing.T) {
	cl := chartlog.New()
	s := NewSMACross("SPY", 2, 3, cl)

	// Closes chosen so the fast average starts above the slow one and then
	// falls through it.
	closes := []float64{10, 12, 14, 15, 8, 2, 1}
	sigs := run(t, s, closes)

	if len(sigs) == 0 {
		t.Fatal("expected at least one signal")
	}
	if sigs[0].Type != domain.SignalTypeSell {
		t.Errorf("first signal = %v, want sell (downward cross)", sigs[0].Type)
	}
	if sigs[0].Symbol != "SPY" || sigs[0].StrategyID != "sma-cross" {
		t.Errorf("signal = %+v, want SPY/sma-cross", sigs[0])
	}
}

func TestSMACrossRoundTrip(t *testing.T) {
	cl := chartlog.New()
	s := NewSMACross("SPY", 2, 3, cl)

	// Down through the slow average and back up: one sell, one buy.
	closes := []float64{10, 12, 14, 6, 2, 1, 20, 30, 40}
	sigs := run(t, s, closes)

	var buys, sells int
	for _, sig := range sigs {
		switch sig.Type {
		case domain.SignalTypeBuy:
			buys++
		case domain.SignalTypeSell:
			sells++
		}
	}
	if sells != 1 || buys != 1 {
		t.Errorf("got %d sells and %d buys, want 1 and 1 (signals: %v)", sells, buys, sigs)
	}
}

func TestSMACrossIgnoresOtherSymbols(t *testing.T) {
	cl := chartlog.New()
	s := NewSMACross("SPY", 1, 1, cl)

	b := bar(0, 100)
	b.Symbol = "QQQ"
	sigs, err := s.OnBar(context.Background(), b)
	if err != nil {
		t.Fatalf("OnBar: %v", err)
	}
	if len(sigs) != 0 {
		t.Errorf("got %d signals for foreign symbol, want 0", len(sigs))
	}
	if got := cl.Len("SPY", chartlog.SeriesPrice); got != 0 {
		t.Errorf("plotted %d points for foreign symbol, want 0", got)
	}
}
