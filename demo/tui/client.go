package tui

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gebo/types"
)

// APIClient is a thin HTTP client for the Gebo API
type APIClient struct {
	baseURL string
	client  *http.Client
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// ListVideos fetches the first page of videos matching query
func (c *APIClient) ListVideos(query string) (*types.VideoPage, error) {
	params := url.Values{}
	params.Set("limit", "50")
	if query != "" {
		params.Set("q", query)
	}

	var page types.VideoPage
	if err := c.getJSON("/api/videos?"+params.Encode(), &page); err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	return &page, nil
}

// Pricing fetches the pricing insight for a video
func (c *APIClient) Pricing(videoID string) (*types.PricingInsight, error) {
	var insight types.PricingInsight
	if err := c.getJSON("/api/analytics/"+url.PathEscape(videoID)+"/pricing", &insight); err != nil {
		return nil, fmt.Errorf("failed to get pricing: %w", err)
	}
	return &insight, nil
}

func (c *APIClient) getJSON(path string, out interface{}) error {
	resp, err := c.client.Get(c.baseURL + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
