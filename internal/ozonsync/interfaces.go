package ozonsync

import (
	"context"

	"github.com/dvloznov/seller-sync/internal/stocksource"
)

// SellerAPI defines the marketplace operations the syncer needs.
// This interface enables mocking the remote API in tests.
type SellerAPI interface {
	// ListAllOfferIDs returns every offer_id registered under the seller
	// account, in directory order, without duplicates.
	ListAllOfferIDs(ctx context.Context) ([]string, error)

	// UpdateStocks pushes one batch of stock levels.
	UpdateStocks(ctx context.Context, stocks []StockUpdate) error

	// UpdatePrices pushes one batch of prices.
	UpdatePrices(ctx context.Context, prices []PriceUpdate) error
}

// InventorySource supplies the parsed supplier records for a run.
type InventorySource interface {
	Fetch(ctx context.Context) ([]stocksource.Record, error)
}
