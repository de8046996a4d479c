package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/dvloznov/seller-sync/internal/config"
	"github.com/dvloznov/seller-sync/internal/logger"
	"github.com/dvloznov/seller-sync/internal/ozonsync"
	"github.com/dvloznov/seller-sync/internal/stocksource"
)

func main() {
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Configuration error")
	}

	// Tag every log line of this run with a correlation id.
	log = log.With().Str("run_id", uuid.NewString()).Logger()

	// The whole run is bounded so a stuck endpoint cannot hang the job.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	client := ozonsync.NewClient(cfg.APIBaseURL, ozonsync.Credentials{
		ClientID:    cfg.ClientID,
		SellerToken: cfg.SellerToken,
	}, httpClient)
	fetcher := stocksource.NewFetcher(cfg.InventoryURL, httpClient)

	log.Info().Str("inventory_url", cfg.InventoryURL).Msg("Starting seller sync")

	report, err := ozonsync.NewSyncer(client, fetcher).Run(ctx)
	if err != nil {
		log.Error().Err(err).
			Int("stock_batches_pushed", report.StockBatches).
			Int("price_batches_pushed", report.PriceBatches).
			Msg("Sync failed; already pushed batches are not rolled back")
		os.Exit(1)
	}

	fmt.Println("Sync completed successfully.")
}
