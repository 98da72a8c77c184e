// Package riskapi scores grocery items for health risks using an external
// analysis service.
package riskapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"smartpantry/internal/config"
	"smartpantry/internal/port"
)

// Client talks to the risk analysis API. It implements port.RiskScorer.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient creates an API client from configuration.
func NewClient(cfg config.RiskAPIConfig) *Client {
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

type scoreRequest struct {
	Items []string `json:"items"`
}

type scoreResponse struct {
	Results []port.RiskScore `json:"results"`
}

// Score submits item names to the analysis service and returns one score
// per recognized item. Unrecognized items are omitted from the response.
func (c *Client) Score(ctx context.Context, items []string) ([]port.RiskScore, error) {
	body, err := json.Marshal(scoreRequest{Items: items})
	if err != nil {
		return nil, fmt.Errorf("riskapi.Score: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/score", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("riskapi.Score: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("riskapi.Score: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("riskapi.Score: unexpected status %d", resp.StatusCode)
	}

	var decoded scoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("riskapi.Score decode: %w", err)
	}
	return decoded.Results, nil
}
