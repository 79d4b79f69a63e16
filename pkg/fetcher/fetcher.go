// Package fetcher is a thin client for the external crawl API that renders a
// page to markdown and lists its outbound links.
package fetcher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/vualidon/FoodRecallReportAgent/pkg/config"
	"github.com/vualidon/FoodRecallReportAgent/pkg/retry"
)

// Page is the rendered content of a single URL
type Page struct {
	Markdown string
	Links    []string
}

// Client calls the crawl API
type Client struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// New creates a crawl API client
func New(cfg config.CrawlerConfig) *Client {
	return &Client{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		client:   &http.Client{Timeout: cfg.Timeout},
	}
}

type scrapeRequest struct {
	URL     string   `json:"url"`
	Formats []string `json:"formats"`
}

type scrapeResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Data    struct {
		Markdown string   `json:"markdown"`
		Links    []string `json:"links"`
	} `json:"data"`
}

// Fetch renders the page at url and returns its markdown text and, when the
// "links" format is requested, its outbound links. Rate-limited responses
// come back as *retry.RateLimitError with the service's wait hint attached.
func (c *Client) Fetch(ctx context.Context, pageURL string, formats []string) (*Page, error) {
	body, err := json.Marshal(scrapeRequest{URL: pageURL, Formats: formats})
	if err != nil {
		return nil, fmt.Errorf("marshal scrape request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/v1/scrape", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("scrape %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read scrape response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, &retry.RateLimitError{
			RetryAfter: retryAfterHint(resp, respBody),
			Err:        fmt.Errorf("scrape %s: status code 429", pageURL),
		}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("scrape %s: unexpected status code %d", pageURL, resp.StatusCode)
	}

	var sr scrapeResponse
	if err := json.Unmarshal(respBody, &sr); err != nil {
		return nil, fmt.Errorf("decode scrape response: %w", err)
	}
	if !sr.Success {
		return nil, fmt.Errorf("scrape %s failed: %s", pageURL, sr.Error)
	}

	return &Page{Markdown: sr.Data.Markdown, Links: sr.Data.Links}, nil
}

// retryAfterHint pulls the wait hint from the Retry-After header or the
// error message body, whichever the service filled in.
func retryAfterHint(resp *http.Response, body []byte) time.Duration {
	if h := resp.Header.Get("Retry-After"); h != "" {
		if secs, err := strconv.Atoi(h); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return retry.ParseRetryAfter(string(body))
}
