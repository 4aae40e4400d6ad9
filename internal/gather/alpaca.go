package gather

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"

	"smacross/internal/domain"
	"smacross/internal/store"
	"smacross/internal/util"
)

// Compile-time interface check.
var _ Gatherer = (*DailyBarGatherer)(nil)

// barFetcher covers the one marketdata call the gatherer makes, so tests can
// substitute a stub for the Alpaca client.
type barFetcher interface {
	GetMultiBars(symbols []string, req marketdata.GetBarsRequest) (map[string][]marketdata.Bar, error)
}

// DailyBarGatherer fetches daily OHLCV bars for a fixed symbol list from the
// Alpaca market-data API and writes them to a bar store. One pass covers
// [startDate, now); the store merge makes repeated passes idempotent.
type DailyBarGatherer struct {
	client    barFetcher
	store     store.BarStore
	symbols   []string
	startDate string
	limiter   *util.RateLimiter
	attempts  int
	log       *slog.Logger
}

// NewDailyBarGatherer creates a DailyBarGatherer configured with the given
// Alpaca credentials, target store, and symbol list.
func NewDailyBarGatherer(apiKey, apiSecret, dataURL string, s store.BarStore, symbols []string, startDate string, ratePerMin, maxAttempts int) *DailyBarGatherer {
	opts := marketdata.ClientOpts{
		APIKey:    apiKey,
		APISecret: apiSecret,
	}
	if dataURL != "" {
		opts.BaseURL = dataURL
	}

	return &DailyBarGatherer{
		client:    marketdata.NewClient(opts),
		store:     s,
		symbols:   symbols,
		startDate: startDate,
		limiter:   util.NewRateLimiter(ratePerMin),
		attempts:  maxAttempts,
		log:       slog.Default().With("gatherer", "daily-bars"),
	}
}

// Name returns the gatherer identifier.
func (g *DailyBarGatherer) Name() string { return "daily-bars" }

// Run fetches daily bars for the configured symbols and writes them to the
// store. Fetches are rate limited and retried with backoff.
func (g *DailyBarGatherer) Run(ctx context.Context) error {
	if len(g.symbols) == 0 {
		return fmt.Errorf("no symbols configured")
	}
	start, err := time.Parse("2006-01-02", g.startDate)
	if err != nil {
		return fmt.Errorf("parsing start date %q: %w", g.startDate, err)
	}
	end := time.Now().UTC()

	runStart := time.Now()
	g.log.Info("starting daily bar fetch",
		"symbols", len(g.symbols), "start", g.startDate)

	if err := g.limiter.Wait(ctx); err != nil {
		return err
	}

	var multiBars map[string][]marketdata.Bar
	err = util.Retry(ctx, g.attempts, time.Second, func() error {
		var err error
		multiBars, err = g.client.GetMultiBars(g.symbols, marketdata.GetBarsRequest{
			TimeFrame: marketdata.OneDay,
			Start:     start,
			End:       end,
		})
		return err
	})
	if err != nil {
		return fmt.Errorf("fetching bars: %w", err)
	}

	var bars []domain.Bar
	for symbol, alpacaBars := range multiBars {
		for _, ab := range alpacaBars {
			bars = append(bars, domain.Bar{
				Symbol:     strings.ToUpper(symbol),
				Timestamp:  ab.Timestamp,
				Open:       ab.Open,
				High:       ab.High,
				Low:        ab.Low,
				Close:      ab.Close,
				Volume:     int64(ab.Volume),
				TradeCount: int64(ab.TradeCount),
				VWAP:       ab.VWAP,
			})
		}
	}

	if len(bars) == 0 {
		g.log.Warn("no bars returned", "symbols", g.symbols)
		return nil
	}
	if err := g.store.WriteBars(ctx, bars); err != nil {
		return fmt.Errorf("writing bars: %w", err)
	}

	g.log.Info("daily bar fetch done",
		"symbols", len(multiBars),
		"bars", len(bars),
		"elapsed", time.Since(runStart).Round(time.Millisecond),
	)
	return nil
}
