package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"smartpantry/internal/config"
	"smartpantry/internal/port"
)

// searchResponse is the wire shape shared by the storefront search APIs we
// talk to.
type searchResponse struct {
	Products []struct {
		Name            string  `json:"name"`
		DiscountedPrice float64 `json:"discounted_price"`
		ListPrice       float64 `json:"mrp"`
		Quantity        string  `json:"quantity"`
		DeliveryTime    string  `json:"delivery_time"`
	} `json:"products"`
}

// storeClient is a rate-limited HTTP client for one storefront search API.
// The limiter keeps request rates polite; these are public endpoints that
// ban aggressive callers.
type storeClient struct {
	name    string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewStoreClient creates a client for one storefront. baseURL is the search
// endpoint; the query is appended as ?q=.
func NewStoreClient(name, baseURL string, cfg config.PricingConfig) port.StoreClient {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	rps := cfg.RequestsPerSec
	if rps <= 0 {
		rps = 2
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	return &storeClient{
		name:    name,
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func (c *storeClient) Name() string { return c.name }

func (c *storeClient) Search(ctx context.Context, query string) ([]port.StoreProduct, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("pricing.%s: %w", c.name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"?q="+url.QueryEscape(query), nil)
	if err != nil {
		return nil, fmt.Errorf("pricing.%s: %w", c.name, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "smartpantry/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pricing.%s: %w", c.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pricing.%s: unexpected status %d", c.name, resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("pricing.%s: decoding response: %w", c.name, err)
	}

	products := make([]port.StoreProduct, 0, len(body.Products))
	for _, p := range body.Products {
		products = append(products, port.StoreProduct{
			Store:        c.name,
			Name:         p.Name,
			Price:        p.DiscountedPrice,
			ListPrice:    p.ListPrice,
			Quantity:     p.Quantity,
			DeliveryTime: p.DeliveryTime,
		})
	}
	return products, nil
}
