// Package ozonsync synchronizes supplier stock and price data onto an Ozon
// seller account.
package ozonsync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/dvloznov/seller-sync/internal/logger"
)

const (
	productListPath  = "/v2/product/list"
	stockImportPath  = "/v1/product/import/stocks"
	priceImportPath  = "/v1/product/import/prices"
	productListLimit = 1000
)

// APIError reports a non-2xx response from the Seller API. The run aborts
// on the first one; nothing is retried.
type APIError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("seller api: POST %s: status %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

// Client is the concrete Seller API implementation over HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    string
	creds      Credentials
}

// NewClient creates a Seller API client for the given origin and
// credentials. A nil httpClient falls back to http.DefaultClient.
func NewClient(baseURL string, creds Credentials, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{httpClient: httpClient, baseURL: baseURL, creds: creds}
}

// ListAllOfferIDs pages through the product directory until the running
// item count reaches the server-reported total. A page that comes back
// empty before the total is reached means the server's total is
// inconsistent; that aborts the listing instead of looping forever.
func (c *Client) ListAllOfferIDs(ctx context.Context) ([]string, error) {
	log := logger.FromContext(ctx)

	var offerIDs []string
	seen := make(map[string]bool)
	lastID := ""

	for {
		result, err := c.productList(ctx, lastID)
		if err != nil {
			return nil, err
		}

		if len(result.Items) == 0 && len(offerIDs) < result.Total {
			return nil, fmt.Errorf("ListAllOfferIDs: empty page at %d of reported total %d",
				len(offerIDs), result.Total)
		}

		for _, item := range result.Items {
			if seen[item.OfferID] {
				continue
			}
			seen[item.OfferID] = true
			offerIDs = append(offerIDs, item.OfferID)
		}
		lastID = result.LastID

		if len(offerIDs) >= result.Total {
			break
		}
	}

	log.Info().Int("offer_count", len(offerIDs)).Msg("Retrieved offer directory")
	return offerIDs, nil
}

func (c *Client) productList(ctx context.Context, lastID string) (*productListResult, error) {
	req := productListRequest{
		Filter: productFilter{Visibility: "ALL"},
		LastID: lastID,
		Limit:  productListLimit,
	}

	var resp productListResponse
	if err := c.post(ctx, productListPath, req, &resp); err != nil {
		return nil, err
	}
	return &resp.Result, nil
}

// UpdateStocks pushes one batch of stock levels.
func (c *Client) UpdateStocks(ctx context.Context, stocks []StockUpdate) error {
	return c.post(ctx, stockImportPath, stockImportRequest{Stocks: stocks}, nil)
}

// UpdatePrices pushes one batch of prices.
func (c *Client) UpdatePrices(ctx context.Context, prices []PriceUpdate) error {
	return c.post(ctx, priceImportPath, priceImportRequest{Prices: prices}, nil)
}

// post sends an authenticated JSON POST and decodes the response into out
// when out is non-nil. Non-2xx statuses become *APIError.
func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("post %s: marshal: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("post %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Client-Id", c.creds.ClientID)
	req.Header.Set("Api-Key", c.creds.SellerToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post %s: %w", path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("post %s: read response: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			Endpoint:   path,
			StatusCode: resp.StatusCode,
			Body:       truncate(string(respBody), 256),
		}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("post %s: decode response: %w", path, err)
		}
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
