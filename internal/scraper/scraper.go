package scraper

import (
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/williampepple1/similar-pages/internal/config"
	"github.com/williampepple1/similar-pages/internal/extraction"
	"github.com/williampepple1/similar-pages/internal/proxy"
)

// Scraper fetches and parses a result page
type Scraper interface {
	Fetch(ctx context.Context, url string) (*goquery.Document, error)
}

// New creates a new scraper based on the configuration
func New(config *config.AppConfig, proxies *proxy.Manager) Scraper {
	if config.Browser.Enabled {
		return NewBrowserScraper(config)
	}
	return NewHTTPScraper(config, proxies)
}

// TitleResolver fills in titles the search service left empty
type TitleResolver struct {
	Scraper   Scraper
	Extractor *extraction.Extractor
}

// NewTitleResolver creates a resolver using the configured scraper and selectors
func NewTitleResolver(config *config.AppConfig, proxies *proxy.Manager) *TitleResolver {
	return &TitleResolver{
		Scraper:   New(config, proxies),
		Extractor: extraction.NewExtractor(&config.Titles),
	}
}

// ResolveTitle fetches url and extracts its title
func (r *TitleResolver) ResolveTitle(ctx context.Context, url string) (string, error) {
	doc, err := r.Scraper.Fetch(ctx, url)
	if err != nil {
		return "", err
	}
	title := r.Extractor.Title(doc)
	if title == "" {
		return "", fmt.Errorf("no title found at %s", url)
	}
	return title, nil
}
