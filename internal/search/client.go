// Package search talks to the Metaphor similar-pages API.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/williampepple1/similar-pages/internal/config"
	"github.com/williampepple1/similar-pages/internal/proxy"
	"github.com/williampepple1/similar-pages/pkg/models"
	"github.com/williampepple1/similar-pages/pkg/utils"
)

// ErrMissingAPIKey is returned when the client has no key to send
var ErrMissingAPIKey = errors.New("search: missing api key")

// Options are the parameters of a similar-pages query. Only these keys are ever sent.
type Options struct {
	ExcludeSourceDomain bool
	NumResults          int
	// StartPublishedDate filters by publication date (YYYY-MM-DD); empty means no filter.
	StartPublishedDate string
}

// Searcher finds pages similar to a URL
type Searcher interface {
	FindSimilar(ctx context.Context, url string, opts Options) ([]models.Record, error)
}

// Client is a Searcher backed by the Metaphor HTTP API
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a client for the configured API, routed through the proxy manager
func NewClient(cfg *config.SearchConfig, apiKey string, proxies *proxy.Manager, logger *zap.Logger) (*Client, error) {
	transport, proxyUsed, err := proxies.Transport()
	if err != nil {
		return nil, fmt.Errorf("search: proxy: %w", err)
	}
	logger = utils.OrNop(logger)
	if proxyUsed != "" {
		logger.Debug("search client using proxy", zap.String("proxy", proxyUsed))
	}

	return &Client{
		BaseURL: strings.TrimRight(cfg.BaseURL, "/"),
		APIKey:  apiKey,
		HTTPClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		logger: logger,
	}, nil
}

type findSimilarRequest struct {
	URL                 string `json:"url"`
	ExcludeSourceDomain bool   `json:"excludeSourceDomain"`
	NumResults          int    `json:"numResults"`
	StartPublishedDate  string `json:"startPublishedDate,omitempty"`
}

type findSimilarResponse struct {
	Results []struct {
		ID            string   `json:"id"`
		Title         *string  `json:"title"`
		URL           string   `json:"url"`
		Score         *float64 `json:"score"`
		PublishedDate *string  `json:"publishedDate"`
		Author        *string  `json:"author"`
	} `json:"results"`
}

// FindSimilar returns the pages the service considers similar to url, in service order
func (c *Client) FindSimilar(ctx context.Context, url string, opts Options) ([]models.Record, error) {
	if c.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	body, err := json.Marshal(findSimilarRequest{
		URL:                 url,
		ExcludeSourceDomain: opts.ExcludeSourceDomain,
		NumResults:          opts.NumResults,
		StartPublishedDate:  opts.StartPublishedDate,
	})
	if err != nil {
		return nil, fmt.Errorf("search: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/findSimilar", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("search: build request: %w", err)
	}
	req.Header.Set("x-api-key", c.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("search: request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("search: read response: %w", err)
	}
	c.logger.Debug("findSimilar response",
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("search: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var parsed findSimilarResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("search: parse response: %w", err)
	}

	records := make([]models.Record, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		rec := models.Record{URL: r.URL, Score: r.Score}
		if r.Title != nil {
			rec.Title = *r.Title
		}
		records = append(records, rec)
	}
	return records, nil
}

func (c *Client) client() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}
