// Package nutritionapi resolves food names into nutrient amounts using an
// external ingredient database. Resolution is two calls: a name search for
// the ingredient id, then an information fetch scaled to the requested
// amount.
package nutritionapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"smartpantry/internal/config"
	"smartpantry/internal/domain"
	"smartpantry/internal/port"
)

type searchResponse struct {
	Results []struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"results"`
}

type informationResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Nutrition struct {
		Nutrients []struct {
			Name   string  `json:"name"`
			Amount float64 `json:"amount"`
		} `json:"nutrients"`
	} `json:"nutrition"`
}

// Client talks to the ingredient API. It implements port.NutritionLookup.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient creates an API client from configuration.
func NewClient(cfg config.NutritionAPIConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// Lookup resolves item into nutrients for the given quantity and unit.
// Returns domain.ErrFoodNotFound when the database has no matching
// ingredient.
func (c *Client) Lookup(ctx context.Context, item string, quantity float64, unit string) (*port.FoodNutrients, error) {
	id, err := c.searchID(ctx, item)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("amount", strconv.FormatFloat(quantity, 'f', -1, 64))
	q.Set("unit", unit)
	q.Set("apiKey", c.apiKey)

	endpoint := fmt.Sprintf("%s/food/ingredients/%d/information?%s", c.baseURL, id, q.Encode())
	raw, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var info informationResponse
	if err := json.Unmarshal(raw, &info); err != nil {
		return nil, fmt.Errorf("nutritionapi.Lookup decode: %w", err)
	}

	amounts := map[string]float64{}
	for _, n := range info.Nutrition.Nutrients {
		amounts[n.Name] = n.Amount
	}

	return &port.FoodNutrients{
		SourceID: info.ID,
		Name:     info.Name,
		Calories: amounts["Calories"],
		Protein:  amounts["Protein"],
		Fat:      amounts["Fat"],
		Carbs:    amounts["Carbohydrates"],
		Fiber:    amounts["Fiber"],
		Sugar:    amounts["Sugar"],
		Raw:      raw,
	}, nil
}

func (c *Client) searchID(ctx context.Context, item string) (int64, error) {
	q := url.Values{}
	q.Set("query", item)
	q.Set("apiKey", c.apiKey)

	raw, err := c.get(ctx, c.baseURL+"/food/ingredients/search?"+q.Encode())
	if err != nil {
		return 0, err
	}

	var search searchResponse
	if err := json.Unmarshal(raw, &search); err != nil {
		return 0, fmt.Errorf("nutritionapi.searchID decode: %w", err)
	}
	if len(search.Results) == 0 {
		return 0, domain.ErrFoodNotFound
	}
	return search.Results[0].ID, nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("nutritionapi: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nutritionapi: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrFoodNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nutritionapi: unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
