// Command smacross-data backfills daily bars for the configured symbols
// from the Alpaca market-data API into the local Parquet store.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"smacross/internal/config"
	"smacross/internal/gather"
	"smacross/internal/store"
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
	util.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pstore := store.NewParquetStore(cfg.Storage.DataDir)
	gatherers := []gather.Gatherer{
		gather.NewDailyBarGatherer(
			cfg.Alpaca.APIKey,
			cfg.Alpaca.APISecret,
			cfg.Alpaca.DataURL,
			pstore,
			cfg.Gather.Symbols,
			cfg.Gather.StartDate,
			cfg.Gather.RateLimitPerMin,
			cfg.Gather.MaxAttempts,
		),
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, gr := range gatherers {
		gr := gr
		g.Go(func() error {
			logger.Info("starting gatherer", "name", gr.Name())
			return gr.Run(gctx)
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("gather failed: %v", err)
	}
	logger.Info("gather complete")
}
