// Package config provides runtime configuration for the sync commands.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingEnv reports a required environment variable that was not set.
// Configuration errors are fatal before any network call is made.
var ErrMissingEnv = errors.New("missing required environment variable")

// Config holds credentials and endpoints for one sync run.
type Config struct {
	// SellerToken and ClientID authenticate against the Ozon Seller API.
	SellerToken string
	ClientID    string

	// APIBaseURL is the Seller API origin.
	APIBaseURL string
	// InventoryURL points at the zip archive with the stock spreadsheet.
	InventoryURL string

	HTTPTimeout time.Duration
}

const (
	defaultAPIBaseURL   = "https://api-seller.ozon.ru"
	defaultInventoryURL = "https://timeworld.ru/upload/files/ostatki.zip"
)

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func requireenv(key string) (string, error) {
	v := os.Getenv(key)
	if v == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingEnv, key)
	}
	return v, nil
}

// Load collects configuration from the environment, reading an optional
// .env file first. SELLER_TOKEN and CLIENT_ID are required.
func Load() (Config, error) {
	// A missing .env file is fine; real deployments set the environment.
	_ = godotenv.Load()

	token, err := requireenv("SELLER_TOKEN")
	if err != nil {
		return Config{}, err
	}
	clientID, err := requireenv("CLIENT_ID")
	if err != nil {
		return Config{}, err
	}

	return Config{
		SellerToken:  token,
		ClientID:     clientID,
		APIBaseURL:   getenv("OZON_API_URL", defaultAPIBaseURL),
		InventoryURL: getenv("INVENTORY_URL", defaultInventoryURL),
		HTTPTimeout:  time.Duration(atoienv("HTTP_TIMEOUT_SECONDS", 30)) * time.Second,
	}, nil
}
