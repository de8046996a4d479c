package ozonsync

import (
	"fmt"
	"strconv"

	"github.com/dvloznov/seller-sync/internal/stocksource"
)

// Quantity sentinels used by the supplier sheet. "more than 10" maps to a
// fixed large stock; "1" means minimal remaining stock and is reported as
// out of stock so the listing is not oversold.
const (
	quantityManySentinel    = ">10"
	quantityMinimalSentinel = "1"
	quantityManyStock       = 100
)

// mapQuantity converts a supplier quantity indicator to a stock level.
// The mapping is total: sentinels map to fixed values, anything else must
// parse as an integer.
func mapQuantity(quantity string) (int, error) {
	switch quantity {
	case quantityManySentinel:
		return quantityManyStock, nil
	case quantityMinimalSentinel:
		return 0, nil
	}
	stock, err := strconv.Atoi(quantity)
	if err != nil {
		return 0, fmt.Errorf("unparseable quantity %q", quantity)
	}
	return stock, nil
}

// CreateStocks joins supplier records against the offer directory and
// produces exactly one stock entry per offer_id: matched records carry the
// mapped quantity, offer_ids absent from the records are reported as out of
// stock. For duplicate record codes the first match wins. Records whose
// code is not in the directory are dropped. The offerIDs slice is not
// mutated; each call builds its own working set.
func CreateStocks(records []stocksource.Record, offerIDs []string) ([]StockUpdate, error) {
	remaining := make(map[string]bool, len(offerIDs))
	for _, id := range offerIDs {
		remaining[id] = true
	}

	stocks := make([]StockUpdate, 0, len(offerIDs))
	for _, rec := range records {
		if !remaining[rec.Code] {
			continue
		}
		stock, err := mapQuantity(rec.Quantity)
		if err != nil {
			return nil, fmt.Errorf("CreateStocks: code %q: %w", rec.Code, err)
		}
		stocks = append(stocks, StockUpdate{OfferID: rec.Code, Stock: stock})
		delete(remaining, rec.Code)
	}

	// Offers missing from the supplier sheet go out of stock.
	for _, id := range offerIDs {
		if remaining[id] {
			stocks = append(stocks, StockUpdate{OfferID: id, Stock: 0})
		}
	}
	return stocks, nil
}

// CreatePrices produces a price entry for every record whose code is in the
// offer directory. Unlike stocks, nothing is synthesized for offer_ids the
// supplier sheet does not mention. The offerIDs slice is not mutated.
func CreatePrices(records []stocksource.Record, offerIDs []string) []PriceUpdate {
	known := make(map[string]bool, len(offerIDs))
	for _, id := range offerIDs {
		known[id] = true
	}

	prices := make([]PriceUpdate, 0, len(records))
	for _, rec := range records {
		if !known[rec.Code] {
			continue
		}
		prices = append(prices, PriceUpdate{
			AutoActionEnabled: "UNKNOWN",
			CurrencyCode:      "RUB",
			OfferID:           rec.Code,
			OldPrice:          "0",
			Price:             NormalizePrice(rec.Price),
		})
	}
	return prices
}
