// Package polymarket implements the Polymarket venue collector on top of the
// CLOB REST API.
package polymarket

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client is the REST client for the Polymarket CLOB API endpoints the
// collector needs: market listing and per-market orderbooks.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new CLOB REST client.
//
// baseURL is the API root, e.g. "https://clob.polymarket.com".
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// GetMarkets returns up to limit markets from the CLOB market listing.
func (c *Client) GetMarkets(ctx context.Context, limit int) ([]APIMarket, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	path := "/markets"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	body, err := c.doGet(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("polymarket: get markets: %w", err)
	}

	var resp struct {
		Markets []APIMarket `json:"markets"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("polymarket: decode markets: %w", err)
	}

	markets := resp.Markets
	if limit > 0 && len(markets) > limit {
		markets = markets[:limit]
	}
	return markets, nil
}

// GetOrderbook returns the current orderbook for the given market condition
// ID. The provided context should carry the caller's per-book timeout.
func (c *Client) GetOrderbook(ctx context.Context, conditionID string) (APIOrderbook, error) {
	path := fmt.Sprintf("/orderbooks/%s", url.PathEscape(conditionID))

	body, err := c.doGet(ctx, path)
	if err != nil {
		return APIOrderbook{}, fmt.Errorf("polymarket: get orderbook %s: %w", conditionID, err)
	}

	var ob APIOrderbook
	if err := json.Unmarshal(body, &ob); err != nil {
		return APIOrderbook{}, fmt.Errorf("polymarket: decode orderbook: %w", err)
	}
	return ob, nil
}

// doGet builds, sends, and reads an HTTP GET request against the CLOB API.
func (c *Client) doGet(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, truncate(body, 256))
	}
	return body, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
