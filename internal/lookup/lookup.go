// Package lookup wraps the external knowledge search collaborator used to
// enrich catalog records with product details.
package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// NoDataFound is the sentinel detail value used whenever the collaborator
// cannot be reached or answers with a non-success response.
const NoDataFound = "No data found."

// snippetDelimiter joins the returned snippets into the Details field.
const snippetDelimiter = " | "

// maxSnippets bounds how many result snippets feed one record.
const maxSnippets = 3

// Client represents a knowledge search API client
type Client struct {
	BaseURL    string
	APIKey     string
	httpClient *http.Client
}

// NewClient creates a new lookup client from the environment
// (SEARCH_API_URL, SEARCH_API_KEY).
func NewClient() *Client {
	return &Client{
		BaseURL: os.Getenv("SEARCH_API_URL"),
		APIKey:  os.Getenv("SEARCH_API_KEY"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NewClientWithBaseURL creates a client against an explicit endpoint, used by
// tests and non-env wiring.
func NewClientWithBaseURL(baseURL, apiKey string) *Client {
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Search queries the collaborator and returns up to the first three result
// snippets joined with " | ", in the order the collaborator returned them.
// On any transport failure or non-success response it returns NoDataFound.
func (c *Client) Search(ctx context.Context, query string) string {
	details, err := c.search(ctx, query)
	if err != nil {
		slog.Warn("Knowledge lookup failed", "query", query, "err", err)
		return NoDataFound
	}
	return details
}

func (c *Client) search(ctx context.Context, query string) (string, error) {
	if c.BaseURL == "" {
		return "", fmt.Errorf("SEARCH_API_URL not set")
	}

	searchURL := fmt.Sprintf("%s/search?q=%s&limit=%d", c.BaseURL, url.QueryEscape(query), maxSnippets)

	req, err := http.NewRequestWithContext(ctx, "GET", searchURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create search request: %w", err)
	}
	if c.APIKey != "" {
		req.Header.Set("X-API-KEY", c.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call search API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("search API returned status %d", resp.StatusCode)
	}

	var searchResp struct {
		Results []struct {
			Snippet string `json:"snippet"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return "", fmt.Errorf("failed to decode search response: %w", err)
	}

	snippets := make([]string, 0, maxSnippets)
	for _, result := range searchResp.Results {
		snippets = append(snippets, result.Snippet)
		if len(snippets) == maxSnippets {
			break
		}
	}

	slog.Debug("Knowledge lookup succeeded", "query", query, "snippets", len(snippets))
	return strings.Join(snippets, snippetDelimiter), nil
}
