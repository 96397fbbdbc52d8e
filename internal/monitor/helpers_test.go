package monitor

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/williampepple1/similar-pages/internal/clock"
	logio "github.com/williampepple1/similar-pages/internal/io"
	"github.com/williampepple1/similar-pages/internal/search"
	"github.com/williampepple1/similar-pages/pkg/models"
)

var testNow = time.Date(2024, 3, 15, 12, 30, 45, 0, time.UTC)

type fakeSearcher struct {
	results map[string][]models.Record
	err     error
	calls   []string
	opts    []search.Options
}

func (s *fakeSearcher) FindSimilar(_ context.Context, url string, opts search.Options) ([]models.Record, error) {
	s.calls = append(s.calls, url)
	s.opts = append(s.opts, opts)
	if s.err != nil {
		return nil, s.err
	}
	return s.results[url], nil
}

func score(v float64) *float64 { return &v }

func newStore(t *testing.T) *logio.LogStore {
	t.Helper()
	return logio.NewLogStore(filepath.Join(t.TempDir(), "similar_pages_log.json"), nil)
}

func newTestFetcher(store LogStore, s search.Searcher, out *bytes.Buffer) *Fetcher {
	f := NewFetcher(store, s, out, nil)
	f.Clock = clock.Fixed(testNow)
	return f
}

func stampDaysAgo(days int) string {
	return testNow.AddDate(0, 0, -days).Format(models.StampLayout)
}
