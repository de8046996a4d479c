package ozonsync

import (
	"context"
	"fmt"

	"github.com/dvloznov/seller-sync/internal/logger"
	"github.com/dvloznov/seller-sync/internal/stocksource"
)

// Batch sizes accepted by the import endpoints. The price endpoint tolerates
// up to 1000 entries per request; 900 is used everywhere so the full run and
// the standalone upload cannot drift apart.
const (
	stockBatchSize = 100
	priceBatchSize = 900
)

// SyncReport summarizes one run. Counters are valid even when the run
// returns an error, so callers can report how far the push got before the
// abort.
type SyncReport struct {
	Offers  int // offer_ids in the directory snapshot
	Records int // parsed supplier records

	StocksPushed int // stock entries accepted by the API
	StockBatches int // stock batches pushed to completion
	InStock      int // stock entries with a non-zero level

	PricesPushed int // price entries accepted by the API
	PriceBatches int // price batches pushed to completion
}

// Syncer sequences a full synchronization: directory snapshot, inventory
// fetch, stock push, price push. Pushes are strictly sequential; the first
// failed batch aborts everything after it and is not retried.
type Syncer struct {
	api    SellerAPI
	source InventorySource
}

// NewSyncer creates a Syncer over the given API and inventory source.
func NewSyncer(api SellerAPI, source InventorySource) *Syncer {
	return &Syncer{api: api, source: source}
}

// Run performs the full synchronization. The offer directory is fetched
// once and the same snapshot feeds both the stock and the price pass.
func (s *Syncer) Run(ctx context.Context) (SyncReport, error) {
	log := logger.FromContext(ctx)
	var report SyncReport

	offerIDs, err := s.api.ListAllOfferIDs(ctx)
	if err != nil {
		return report, fmt.Errorf("Run: list offers: %w", err)
	}
	report.Offers = len(offerIDs)

	records, err := s.source.Fetch(ctx)
	if err != nil {
		return report, fmt.Errorf("Run: fetch inventory: %w", err)
	}
	report.Records = len(records)

	if err := s.pushStocks(ctx, records, offerIDs, &report); err != nil {
		return report, err
	}
	if err := s.pushPrices(ctx, records, offerIDs, &report); err != nil {
		return report, err
	}

	log.Info().
		Int("offers", report.Offers).
		Int("records", report.Records).
		Int("stocks_pushed", report.StocksPushed).
		Int("in_stock", report.InStock).
		Int("prices_pushed", report.PricesPushed).
		Msg("Synchronization completed")
	return report, nil
}

// UploadStocks pushes only stock levels for the given records, taking its
// own directory snapshot.
func (s *Syncer) UploadStocks(ctx context.Context, records []stocksource.Record) (SyncReport, error) {
	var report SyncReport

	offerIDs, err := s.api.ListAllOfferIDs(ctx)
	if err != nil {
		return report, fmt.Errorf("UploadStocks: list offers: %w", err)
	}
	report.Offers = len(offerIDs)
	report.Records = len(records)

	err = s.pushStocks(ctx, records, offerIDs, &report)
	return report, err
}

// UploadPrices pushes only prices for the given records, taking its own
// directory snapshot.
func (s *Syncer) UploadPrices(ctx context.Context, records []stocksource.Record) (SyncReport, error) {
	var report SyncReport

	offerIDs, err := s.api.ListAllOfferIDs(ctx)
	if err != nil {
		return report, fmt.Errorf("UploadPrices: list offers: %w", err)
	}
	report.Offers = len(offerIDs)
	report.Records = len(records)

	err = s.pushPrices(ctx, records, offerIDs, &report)
	return report, err
}

func (s *Syncer) pushStocks(ctx context.Context, records []stocksource.Record, offerIDs []string, report *SyncReport) error {
	log := logger.FromContext(ctx)

	stocks, err := CreateStocks(records, offerIDs)
	if err != nil {
		return fmt.Errorf("pushStocks: %w", err)
	}
	for _, st := range stocks {
		if st.Stock != 0 {
			report.InStock++
		}
	}

	batches, err := Chunk(stocks, stockBatchSize)
	if err != nil {
		return fmt.Errorf("pushStocks: %w", err)
	}

	for i, batch := range batches {
		if err := s.api.UpdateStocks(ctx, batch); err != nil {
			return fmt.Errorf("pushStocks: batch %d/%d: %w", i+1, len(batches), err)
		}
		report.StockBatches++
		report.StocksPushed += len(batch)
		log.Debug().
			Int("batch", i+1).
			Int("batches", len(batches)).
			Int("entries", len(batch)).
			Msg("Pushed stock batch")
	}

	log.Info().
		Int("entries", report.StocksPushed).
		Int("batches", report.StockBatches).
		Int("in_stock", report.InStock).
		Msg("Stock push completed")
	return nil
}

func (s *Syncer) pushPrices(ctx context.Context, records []stocksource.Record, offerIDs []string, report *SyncReport) error {
	log := logger.FromContext(ctx)

	prices := CreatePrices(records, offerIDs)

	batches, err := Chunk(prices, priceBatchSize)
	if err != nil {
		return fmt.Errorf("pushPrices: %w", err)
	}

	for i, batch := range batches {
		if err := s.api.UpdatePrices(ctx, batch); err != nil {
			return fmt.Errorf("pushPrices: batch %d/%d: %w", i+1, len(batches), err)
		}
		report.PriceBatches++
		report.PricesPushed += len(batch)
		log.Debug().
			Int("batch", i+1).
			Int("batches", len(batches)).
			Int("entries", len(batch)).
			Msg("Pushed price batch")
	}

	log.Info().
		Int("entries", report.PricesPushed).
		Int("batches", report.PriceBatches).
		Msg("Price push completed")
	return nil
}
