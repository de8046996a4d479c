package ozonsync

// Credentials authenticate requests against the Seller API. They are read
// once at startup and threaded explicitly; there is no ambient global.
type Credentials struct {
	ClientID    string
	SellerToken string
}

// StockUpdate is one entry of a stock import request.
type StockUpdate struct {
	OfferID string `json:"offer_id"`
	Stock   int    `json:"stock"`
}

// PriceUpdate is one entry of a price import request.
type PriceUpdate struct {
	AutoActionEnabled string `json:"auto_action_enabled"`
	CurrencyCode      string `json:"currency_code"`
	OfferID           string `json:"offer_id"`
	OldPrice          string `json:"old_price"`
	Price             string `json:"price"`
}

type productFilter struct {
	Visibility string `json:"visibility"`
}

type productListRequest struct {
	Filter productFilter `json:"filter"`
	LastID string        `json:"last_id"`
	Limit  int           `json:"limit"`
}

type productItem struct {
	OfferID string `json:"offer_id"`
}

type productListResult struct {
	Items  []productItem `json:"items"`
	Total  int           `json:"total"`
	LastID string        `json:"last_id"`
}

type productListResponse struct {
	Result productListResult `json:"result"`
}

type stockImportRequest struct {
	Stocks []StockUpdate `json:"stocks"`
}

type priceImportRequest struct {
	Prices []PriceUpdate `json:"prices"`
}
