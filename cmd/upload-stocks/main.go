package main

import (
	"context"
	"flag"
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

	filePath := flag.String("file", "", "Path to a locally saved inventory .xls (optional; downloads when empty)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Configuration error")
	}

	log = log.With().Str("run_id", uuid.NewString()).Logger()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	client := ozonsync.NewClient(cfg.APIBaseURL, ozonsync.Credentials{
		ClientID:    cfg.ClientID,
		SellerToken: cfg.SellerToken,
	}, httpClient)
	fetcher := stocksource.NewFetcher(cfg.InventoryURL, httpClient)

	var records []stocksource.Record
	if *filePath != "" {
		records, err = stocksource.ParseFile(*filePath)
	} else {
		records, err = fetcher.Fetch(ctx)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load inventory")
	}

	report, err := ozonsync.NewSyncer(client, fetcher).UploadStocks(ctx, records)
	if err != nil {
		log.Error().Err(err).
			Int("stock_batches_pushed", report.StockBatches).
			Msg("Stock upload failed")
		os.Exit(1)
	}

	fmt.Printf("Pushed %d stock entries (%d in stock).\n", report.StocksPushed, report.InStock)
}
