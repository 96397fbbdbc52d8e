package scraper

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"

	"github.com/PuerkitoBio/goquery"
	"github.com/williampepple1/similar-pages/internal/config"
	"github.com/williampepple1/similar-pages/internal/proxy"
)

// HTTPScraper fetches pages with a plain HTTP GET
type HTTPScraper struct {
	Config *config.AppConfig
	Proxy  *proxy.Manager
}

// NewHTTPScraper creates a new HTTP scraper
func NewHTTPScraper(config *config.AppConfig, proxies *proxy.Manager) *HTTPScraper {
	return &HTTPScraper{
		Config: config,
		Proxy:  proxies,
	}
}

// Fetch downloads url and parses it. A single attempt is made.
func (s *HTTPScraper) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	transport, _, err := s.Proxy.Transport()
	if err != nil {
		return nil, fmt.Errorf("error applying proxy: %w", err)
	}

	client := &http.Client{
		Transport: transport,
		Timeout:   s.Config.Titles.Timeout,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	// Set a random user agent
	if len(config.DefaultUserAgents) > 0 {
		req.Header.Set("User-Agent", config.DefaultUserAgents[rand.Intn(len(config.DefaultUserAgents))])
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("received non-200 status code: %d", resp.StatusCode)
	}

	return goquery.NewDocumentFromReader(resp.Body)
}
