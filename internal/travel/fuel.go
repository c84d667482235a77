package travel

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// DefaultDieselPrice (GBP per litre) is used when the price feed is
// unreachable. Wrong-but-close beats failing the whole cost estimate.
const DefaultDieselPrice = 1.55

// FuelClient fetches the current UK average diesel pump price.
type FuelClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewFuelClient creates a fuel price client.
func NewFuelClient() *FuelClient {
	return &FuelClient{
		baseURL: "https://api.fuelpricesapi.co.uk/v1/prices/uk",
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type fuelResponse struct {
	DieselPrice float64 `json:"diesel_price"` // GBP per litre
}

// DieselPrice returns the current price per litre, falling back to
// DefaultDieselPrice when the feed can't be reached or returns nonsense.
func (c *FuelClient) DieselPrice() float64 {
	var price float64
	operation := func() error {
		p, err := c.fetch()
		if err != nil {
			return err
		}
		price = p
		return nil
	}

	policy := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 2)
	if err := backoff.Retry(operation, policy); err != nil {
		zap.L().Warn("diesel price fetch failed, using default",
			zap.Float64("default", DefaultDieselPrice), zap.Error(err))
		return DefaultDieselPrice
	}
	return price
}

func (c *FuelClient) fetch() (float64, error) {
	resp, err := c.httpClient.Get(c.baseURL)
	if err != nil {
		return 0, fmt.Errorf("requesting fuel price: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("fuel API returned status %d", resp.StatusCode)
	}

	var result fuelResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("parsing fuel price: %w", err)
	}
	if result.DieselPrice <= 0 {
		return 0, backoff.Permanent(fmt.Errorf("fuel API returned price %.2f", result.DieselPrice))
	}
	return result.DieselPrice, nil
}
