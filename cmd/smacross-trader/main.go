// Command smacross-trader replays stored daily bars through the SMA
// crossover strategy, executing signals against a broker (simulated by
// default) and persisting fills, signals, and chart series for the
// visualization tool.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"smacross/internal/broker"
	"smacross/internal/chartlog"
	"smacross/internal/config"
	"smacross/internal/engine"
	"smacross/internal/journal"
	"smacross/internal/metrics"
	"smacross/internal/store"
	"smacross/internal/strategy"
	"smacross/internal/strategy/builtins"
	"smacross/internal/util"
)

func main() {
	_ = godotenv.Load()

	cfgPath := "config/smacross.yaml"
	if p := os.Getenv("SMACROSS_CONFIG"); p != "" {
		cfgPath = p
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := util.NewLogger(cfg.Logging.Level, cfg.Logging.Format)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cfg.Metrics.Addr != "" {
		srv := metrics.Serve(cfg.Metrics.Addr)
		defer srv.Close()
		logger.Info("metrics listening", "addr", cfg.Metrics.Addr)
	}

	start, err := time.Parse("2006-01-02", cfg.Trading.StartDate)
	if err != nil {
		log.Fatalf("invalid trading.start_date %q: %v", cfg.Trading.StartDate, err)
	}
	end := time.Now().UTC()
	if cfg.Trading.EndDate != "" {
		if end, err = time.Parse("2006-01-02", cfg.Trading.EndDate); err != nil {
			log.Fatalf("invalid trading.end_date %q: %v", cfg.Trading.EndDate, err)
		}
	}

	bars, err := store.NewParquetStore(cfg.Storage.DataDir).ReadBars(ctx, cfg.Trading.Symbol, start, end)
	if err != nil {
		log.Fatalf("reading bars: %v", err)
	}
	if len(bars) == 0 {
		log.Fatalf("no bars for %s in [%s, %s]; run smacross-data first",
			cfg.Trading.Symbol, start.Format("2006-01-02"), end.Format("2006-01-02"))
	}

	db, err := store.NewSQLiteStore(cfg.Storage.SQLitePath)
	if err != nil {
		log.Fatalf("opening sqlite store: %v", err)
	}
	defer db.Close()

	var b broker.Broker
	if cfg.Trading.PaperMode {
		b = broker.NewSimulatorBroker(cfg.Trading.InitialCash)
	} else {
		b = broker.NewAlpacaBroker(cfg.Alpaca.APIKey, cfg.Alpaca.APISecret, cfg.Alpaca.BaseURL)
	}

	chart := chartlog.New()
	j := journal.New()

	registry := strategy.NewRegistry()
	registry.Register(builtins.NewSMACross(cfg.Trading.Symbol, cfg.Trading.FastPeriod, cfg.Trading.SlowPeriod, chart))
	strat, ok := registry.Get("sma-cross")
	if !ok {
		log.Fatalf("strategy %q not registered (have %v)", "sma-cross", registry.List())
	}

	logger.Info("starting run",
		"symbol", cfg.Trading.Symbol,
		"bars", len(bars),
		"fast", cfg.Trading.FastPeriod,
		"slow", cfg.Trading.SlowPeriod,
		"broker", b.Name(),
	)

	e := engine.New(logger, b, strat, j, chart, db, db)
	if err := e.Run(ctx, bars); err != nil {
		log.Fatalf("run failed: %v", err)
	}

	if cfg.Storage.ChartPath != "" {
		if err := chart.WriteFile(cfg.Storage.ChartPath); err != nil {
			log.Fatalf("writing chart output: %v", err)
		}
		logger.Info("chart output written", "path", cfg.Storage.ChartPath)
	}

	acct, err := b.GetAccount(ctx)
	if err != nil {
		log.Fatalf("fetching final account: %v", err)
	}
	logger.Info("run complete",
		"trades", j.Len(),
		"cash", fmt.Sprintf("%.2f", acct.Cash),
		"equity", fmt.Sprintf("%.2f", acct.Equity),
	)
}
