package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

// SearchStatus classifies the outcome of a web search attempt
type SearchStatus string

const (
	SearchStatusOK           SearchStatus = "ok"
	SearchStatusUnconfigured SearchStatus = "unconfigured"
	SearchStatusFailed       SearchStatus = "failed"
)

// WebSearchResult is a single organic search hit
type WebSearchResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// SearchOutcome reports both results and how the attempt ended, so
// callers can distinguish a missing API key from a provider failure
type SearchOutcome struct {
	Status  SearchStatus
	Results []WebSearchResult
	Err     error
}

// WebSearcher performs web searches for query augmentation
type WebSearcher interface {
	Search(ctx context.Context, query string, limit int) SearchOutcome
}

// SerpAPIClient implements WebSearcher against the SerpAPI Google endpoint
type SerpAPIClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
}

// NewSerpAPIClient creates a new SerpAPI client. An empty API key is
// allowed; searches then report SearchStatusUnconfigured.
func NewSerpAPIClient(apiKey string, logger *log.Logger) *SerpAPIClient {
	return &SerpAPIClient{
		apiKey:  apiKey,
		baseURL: "https://serpapi.com/search",
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: logger,
	}
}

type serpAPIResponse struct {
	OrganicResults []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"organic_results"`
}

// Search runs a Google search and returns up to limit organic results
func (c *SerpAPIClient) Search(ctx context.Context, query string, limit int) SearchOutcome {
	if c.apiKey == "" {
		return SearchOutcome{Status: SearchStatusUnconfigured, Results: nil}
	}

	params := url.Values{}
	params.Set("engine", "google")
	params.Set("q", query)
	params.Set("num", fmt.Sprintf("%d", limit))
	params.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return SearchOutcome{Status: SearchStatusFailed, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return SearchOutcome{Status: SearchStatusFailed, Err: fmt.Errorf("search request failed: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return SearchOutcome{
			Status: SearchStatusFailed,
			Err:    fmt.Errorf("search returned status %d: %s", resp.StatusCode, string(body)),
		}
	}

	var parsed serpAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return SearchOutcome{Status: SearchStatusFailed, Err: fmt.Errorf("failed to decode search response: %w", err)}
	}

	results := make([]WebSearchResult, 0, limit)
	for _, r := range parsed.OrganicResults {
		if len(results) >= limit {
			break
		}
		results = append(results, WebSearchResult{
			Title:   r.Title,
			Link:    r.Link,
			Snippet: r.Snippet,
		})
	}

	return SearchOutcome{Status: SearchStatusOK, Results: results}
}
