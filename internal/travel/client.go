package travel

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Client resolves routes through the Google Distance Matrix API, with a
// cache in front so repeat postcode pairs cost nothing.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	cache      *Cache
}

// NewClient creates a route client with a fresh cache.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: "https://maps.googleapis.com/maps/api/distancematrix/json",
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		cache: NewCache(),
	}
}

// NewClientWithCache creates a client backed by an existing cache, typically
// one restored from the travel-cache snapshot on disk.
func NewClientWithCache(apiKey string, cache *Cache) *Client {
	client := NewClient(apiKey)
	if cache != nil {
		client.cache = cache
	}
	return client
}

// GetCache returns the client's cache for persistence.
func (c *Client) GetCache() *Cache {
	return c.cache
}

// matrixResponse mirrors the subset of the Distance Matrix response we use.
type matrixResponse struct {
	Status string `json:"status"`
	Rows   []struct {
		Elements []struct {
			Status   string `json:"status"`
			Distance struct {
				Value int `json:"value"` // metres
			} `json:"distance"`
			Duration struct {
				Value int `json:"value"` // seconds
			} `json:"duration"`
		} `json:"elements"`
	} `json:"rows"`
}

// Route resolves the drive from one postcode to another, serving from cache
// when possible. Transient HTTP failures are retried with exponential
// backoff before giving up.
func (c *Client) Route(from, to string) (*Route, error) {
	if from == "" || to == "" {
		return nil, fmt.Errorf("travel: both postcodes are required")
	}

	if cached := c.cache.Get(from, to); cached != nil {
		return cached, nil
	}

	var route *Route
	operation := func() error {
		r, err := c.fetch(from, to)
		if err != nil {
			return err
		}
		route = r
		return nil
	}

	policy := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}

	c.cache.Set(from, to, route)
	return route, nil
}

// fetch performs one Distance Matrix request.
func (c *Client) fetch(from, to string) (*Route, error) {
	params := url.Values{}
	params.Add("origins", from)
	params.Add("destinations", to)
	params.Add("mode", "driving")
	params.Add("region", "uk")
	params.Add("key", c.apiKey)

	reqURL := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())

	resp, err := c.httpClient.Get(reqURL)
	if err != nil {
		return nil, fmt.Errorf("requesting route: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("route API returned status %d", resp.StatusCode)
	}

	var result matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("parsing route response: %w", err)
	}

	if result.Status != "OK" || len(result.Rows) == 0 || len(result.Rows[0].Elements) == 0 {
		return nil, backoff.Permanent(fmt.Errorf("route API status %q", result.Status))
	}
	elem := result.Rows[0].Elements[0]
	if elem.Status != "OK" {
		return nil, backoff.Permanent(fmt.Errorf("no route between %s and %s: %s", from, to, elem.Status))
	}

	return &Route{
		DistanceKM: float64(elem.Distance.Value) / 1000,
		Duration:   time.Duration(elem.Duration.Value) * time.Second,
	}, nil
}
