// Package search provides the web search gateway backed by the
// DuckDuckGo Instant Answer API. Searches degrade to empty results on
// any failure; the gateway never returns an error to its caller.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/quocvuong92/askweb/internal/constants"
	"github.com/quocvuong92/askweb/internal/logging"
)

const DuckDuckGoAPIURL = "https://api.duckduckgo.com"

// instantAnswerResponse represents the DuckDuckGo Instant Answer response.
// Only the abstract fields are used; the API returns many more.
type instantAnswerResponse struct {
	Abstract    string `json:"Abstract"`
	Heading     string `json:"Heading"`
	AbstractURL string `json:"AbstractURL"`
}

// Result represents a single search result
type Result struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// Client is the DuckDuckGo Instant Answer API client
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a new DuckDuckGo search client
func NewClient() *Client {
	return NewClientWithEndpoint(DuckDuckGoAPIURL)
}

// NewClientWithEndpoint creates a client against a specific endpoint.
// This is useful for testing or when routing through a proxy.
func NewClientWithEndpoint(endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: constants.SearchTimeout,
		},
	}
}

// Search performs an instant-answer lookup and returns up to limit
// results. The instant-answer provider yields at most one result per
// query. Failures of any kind log at debug level and return an empty
// slice; absence of search results is never fatal to the caller.
func (c *Client) Search(ctx context.Context, query string, limit int) []Result {
	answer, err := c.doSearch(ctx, query)
	if err != nil {
		logging.Debug("search failed", logging.Fields{
			"query": query,
			"error": err.Error(),
		})
		return []Result{}
	}

	results := answer.toResults()
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	logging.Debug("search completed", logging.Fields{
		"query":   query,
		"results": len(results),
	})
	return results
}

// doSearch performs a single instant-answer request
func (c *Client) doSearch(ctx context.Context, query string) (*instantAnswerResponse, error) {
	reqURL, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("no_html", "1")
	params.Set("skip_disambig", "1")
	reqURL.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("DuckDuckGo API error: status code %d", resp.StatusCode)
	}

	var answer instantAnswerResponse
	if err := json.Unmarshal(body, &answer); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &answer, nil
}

// toResults converts an instant answer to the unified result list.
// A response without an abstract yields no results.
func (r *instantAnswerResponse) toResults() []Result {
	if r.Abstract == "" {
		return []Result{}
	}
	return []Result{
		{
			Title:       r.Heading,
			URL:         r.AbstractURL,
			Description: r.Abstract,
		},
	}
}
