package grounding

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultSerpAPIBaseURL = "https://serpapi.com"

// SerpAPIClient implements Searcher against the SerpAPI Google engine.
type SerpAPIClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewSerpAPI creates a SerpAPI search client.
func NewSerpAPI(apiKey string) *SerpAPIClient {
	return &SerpAPIClient{
		apiKey:  apiKey,
		baseURL: defaultSerpAPIBaseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// NewSerpAPIWithBaseURL creates a client against a specific endpoint.
// Used by tests to point at a local stub.
func NewSerpAPIWithBaseURL(apiKey, baseURL string) *SerpAPIClient {
	c := NewSerpAPI(apiKey)
	c.baseURL = baseURL
	return c
}

type serpAPIResponse struct {
	OrganicResults []struct {
		Title string `json:"title"`
		Link  string `json:"link"`
	} `json:"organic_results"`
}

// Search returns up to count organic results that carry both a link and a
// title. Results missing either field are skipped.
func (c *SerpAPIClient) Search(ctx context.Context, query string, count int) ([]Result, error) {
	params := url.Values{}
	params.Set("engine", "google")
	params.Set("q", query)
	params.Set("num", fmt.Sprintf("%d", count))
	params.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search.json?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search failed with status %d", resp.StatusCode)
	}

	var parsed serpAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}

	results := make([]Result, 0, count)
	for _, r := range parsed.OrganicResults {
		if r.Link == "" || r.Title == "" {
			continue
		}
		results = append(results, Result{Title: r.Title, Link: r.Link})
		if len(results) == count {
			break
		}
	}

	return results, nil
}
