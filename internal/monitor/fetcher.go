package monitor

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/williampepple1/similar-pages/internal/clock"
	"github.com/williampepple1/similar-pages/internal/search"
	"github.com/williampepple1/similar-pages/pkg/models"
	"github.com/williampepple1/similar-pages/pkg/utils"
)

// LogStore is the persistence the monitor needs
type LogStore interface {
	Load() models.Log
	Read() (models.Log, error)
	Save(log models.Log) error
}

// TitleResolver looks up a page title for results that arrive without one
type TitleResolver interface {
	ResolveTitle(ctx context.Context, url string) (string, error)
}

// Fetcher asks the search service for similar pages unless the seed was searched recently
type Fetcher struct {
	Store               LogStore
	Searcher            search.Searcher
	Titles              TitleResolver // optional
	Clock               clock.Clock
	RecencyDays         int
	ExcludeSourceDomain bool
	Out                 io.Writer
	logger              *zap.Logger
}

// NewFetcher creates a fetcher with the default seven-day recency window
func NewFetcher(store LogStore, searcher search.Searcher, out io.Writer, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		Store:               store,
		Searcher:            searcher,
		Clock:               clock.SystemUTC{},
		RecencyDays:         7,
		ExcludeSourceDomain: true,
		Out:                 out,
		logger:              utils.OrNop(logger),
	}
}

// FindSimilar returns Skipped when url was searched within the recency window,
// otherwise Fetched with the service's results. A failed search is reported and
// yields Fetched with no results. startPublishedDate may be empty.
func (f *Fetcher) FindSimilar(ctx context.Context, url string, numResults int, startPublishedDate string) models.Outcome {
	if SearchedRecently(f.Store.Load(), url, f.RecencyDays, f.Clock.NowUTC()) {
		return models.Skipped{
			Reason: fmt.Sprintf("Skipped: Already searched %s within the last %d days.", url, f.RecencyDays),
		}
	}

	opts := search.Options{
		ExcludeSourceDomain: f.ExcludeSourceDomain,
		NumResults:          numResults,
		StartPublishedDate:  startPublishedDate,
	}

	fmt.Fprintf(f.Out, "Searching for similar pages...: %s\n", url)
	results, err := f.Searcher.FindSimilar(ctx, url, opts)
	if err != nil {
		fmt.Fprintf(f.Out, "An error occurred: %v\n", err)
		f.logger.Warn("similar-pages search failed", zap.String("url", url), zap.Error(err))
		return models.Fetched{Results: []models.Record{}}
	}
	if results == nil {
		results = []models.Record{}
	}

	f.resolveTitles(ctx, results)
	return models.Fetched{Results: results}
}

func (f *Fetcher) resolveTitles(ctx context.Context, results []models.Record) {
	if f.Titles == nil {
		return
	}
	for i := range results {
		if results[i].Title != "" {
			continue
		}
		title, err := f.Titles.ResolveTitle(ctx, results[i].URL)
		if err != nil {
			f.logger.Debug("title lookup failed", zap.String("url", results[i].URL), zap.Error(err))
			continue
		}
		results[i].Title = title
	}
}
