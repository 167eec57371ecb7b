package leaderboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

// Client talks to a leaderboard service from the game. A zero base URL
// disables it; the game plays fine offline.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient reads LEADERBOARD_URL. Returns nil when unset.
func NewClient() *Client {
	base := os.Getenv("LEADERBOARD_URL")
	if base == "" {
		return nil
	}
	return &Client{
		baseURL: base,
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

// Submit uploads a finished run.
func (c *Client) Submit(ctx context.Context, e Entry) error {
	if c == nil {
		return nil
	}
	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("leaderboard: encode entry: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/scores", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("leaderboard: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("leaderboard: submit: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("leaderboard: submit: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// Top fetches the current top runs.
func (c *Client) Top(ctx context.Context, limit int) ([]Entry, error) {
	if c == nil {
		return nil, nil
	}
	url := fmt.Sprintf("%s/api/leaderboard?limit=%d", c.baseURL, limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: fetch top: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("leaderboard: fetch top: unexpected status %d", resp.StatusCode)
	}

	var entries []Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("leaderboard: decode response: %w", err)
	}
	return entries, nil
}
