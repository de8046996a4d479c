package ozonsync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestListAllOfferIDs_Paginates(t *testing.T) {
	pages := [][]string{
		{"A", "B"},
		{"C"},
	}
	var calls int

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != productListPath {
			t.Errorf("path = %q, want %q", r.URL.Path, productListPath)
		}
		if r.Header.Get("Client-Id") != "client" || r.Header.Get("Api-Key") != "token" {
			t.Error("missing auth headers")
		}

		var req productListRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Filter.Visibility != "ALL" || req.Limit != productListLimit {
			t.Errorf("request = %+v", req)
		}
		wantLastID := ""
		if calls > 0 {
			wantLastID = fmt.Sprintf("cursor-%d", calls)
		}
		if req.LastID != wantLastID {
			t.Errorf("last_id = %q, want %q", req.LastID, wantLastID)
		}

		items := make([]productItem, 0, len(pages[calls]))
		for _, id := range pages[calls] {
			items = append(items, productItem{OfferID: id})
		}
		calls++
		json.NewEncoder(w).Encode(productListResponse{Result: productListResult{
			Items:  items,
			Total:  3,
			LastID: fmt.Sprintf("cursor-%d", calls),
		}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, Credentials{ClientID: "client", SellerToken: "token"}, srv.Client())
	ids, err := c.ListAllOfferIDs(context.Background())
	if err != nil {
		t.Fatalf("ListAllOfferIDs() error = %v", err)
	}
	if calls != 2 {
		t.Errorf("server called %d times, want 2", calls)
	}
	want := []string{"A", "B", "C"}
	if len(ids) != len(want) {
		t.Fatalf("got %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("got %v, want %v", ids, want)
		}
	}
}

func TestListAllOfferIDs_InconsistentTotal(t *testing.T) {
	// The server keeps reporting a total it never delivers; the client must
	// abort instead of looping forever.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(productListResponse{Result: productListResult{
			Items: nil,
			Total: 10,
		}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, Credentials{}, srv.Client())
	if _, err := c.ListAllOfferIDs(context.Background()); err == nil {
		t.Fatal("expected error for inconsistent server total")
	}
}

func TestListAllOfferIDs_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"code":16,"message":"unauthorized"}`, http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, Credentials{}, srv.Client())
	_, err := c.ListAllOfferIDs(context.Background())

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusForbidden {
		t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, http.StatusForbidden)
	}
	if apiErr.Endpoint != productListPath {
		t.Errorf("Endpoint = %q, want %q", apiErr.Endpoint, productListPath)
	}
}

func TestUpdateStocks_Payload(t *testing.T) {
	var got stockImportRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != stockImportPath {
			t.Errorf("path = %q, want %q", r.URL.Path, stockImportPath)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Write([]byte(`{"result":[]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, Credentials{}, srv.Client())
	stocks := []StockUpdate{{OfferID: "A", Stock: 100}, {OfferID: "B", Stock: 0}}
	if err := c.UpdateStocks(context.Background(), stocks); err != nil {
		t.Fatalf("UpdateStocks() error = %v", err)
	}
	if len(got.Stocks) != 2 || got.Stocks[0] != stocks[0] || got.Stocks[1] != stocks[1] {
		t.Errorf("server received %+v, want %+v", got.Stocks, stocks)
	}
}

func TestUpdatePrices_Payload(t *testing.T) {
	var got priceImportRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != priceImportPath {
			t.Errorf("path = %q, want %q", r.URL.Path, priceImportPath)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Write([]byte(`{"result":[]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, Credentials{}, srv.Client())
	prices := []PriceUpdate{{
		AutoActionEnabled: "UNKNOWN",
		CurrencyCode:      "RUB",
		OfferID:           "A",
		OldPrice:          "0",
		Price:             "5990",
	}}
	if err := c.UpdatePrices(context.Background(), prices); err != nil {
		t.Fatalf("UpdatePrices() error = %v", err)
	}
	if len(got.Prices) != 1 || got.Prices[0] != prices[0] {
		t.Errorf("server received %+v, want %+v", got.Prices, prices)
	}
}
