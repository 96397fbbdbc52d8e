package monitor

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/williampepple1/similar-pages/internal/clock"
	"github.com/williampepple1/similar-pages/internal/config"
	"github.com/williampepple1/similar-pages/internal/search"
	"github.com/williampepple1/similar-pages/pkg/models"
	"github.com/williampepple1/similar-pages/pkg/utils"
)

// Summary describes what a run did
type Summary struct {
	RunID    string
	Searched int
	Skipped  int
	Report   *Report
}

// Runner searches every seed in order, logs the results and reports new pages
type Runner struct {
	Fetcher             *Fetcher
	Recorder            *Recorder
	Reporter            *Reporter
	Clock               clock.Clock
	NumResults          int
	PublishedWithinDays int
	LogPath             string
	Out                 io.Writer
	logger              *zap.Logger
}

// NewRunner wires the fetcher, recorder and reporter from the configuration
func NewRunner(cfg *config.AppConfig, store LogStore, searcher search.Searcher, out io.Writer, logger *zap.Logger) *Runner {
	logger = utils.OrNop(logger)

	fetcher := NewFetcher(store, searcher, out, logger)
	fetcher.RecencyDays = cfg.Search.RecencyDays
	fetcher.ExcludeSourceDomain = cfg.Search.ExcludeSourceDomainOrDefault()

	return &Runner{
		Fetcher:             fetcher,
		Recorder:            NewRecorder(store, logger),
		Reporter:            NewReporter(store, out, logger),
		Clock:               clock.SystemUTC{},
		NumResults:          cfg.Search.NumResults,
		PublishedWithinDays: cfg.Search.PublishedWithinDaysOrDefault(),
		LogPath:             cfg.IO.LogFile,
		Out:                 out,
		logger:              logger,
	}
}

// SetClock points every component at c
func (r *Runner) SetClock(c clock.Clock) {
	r.Clock = c
	r.Fetcher.Clock = c
	r.Recorder.Clock = c
}

// Run processes seeds sequentially and finishes with the novelty report.
// Per-seed failures are printed and never stop the run.
func (r *Runner) Run(ctx context.Context, seeds []string) Summary {
	summary := Summary{RunID: uuid.NewString()}
	logger := r.logger.With(zap.String("run_id", summary.RunID))
	startPublished := DaysAgo(r.Clock.NowUTC(), r.PublishedWithinDays)
	logger.Info("run started", zap.Int("seeds", len(seeds)), zap.String("start_published_date", startPublished))

	for _, seed := range seeds {
		if ctx.Err() != nil {
			logger.Warn("run interrupted", zap.Error(ctx.Err()))
			break
		}

		switch outcome := r.Fetcher.FindSimilar(ctx, seed, r.NumResults, startPublished).(type) {
		case models.Skipped:
			fmt.Fprintln(r.Out, outcome.Reason)
			summary.Skipped++
		case models.Fetched:
			summary.Searched++
			r.record(logger, seed, outcome.Results)
		}
	}

	report, err := r.Reporter.Report()
	if err == nil {
		summary.Report = report
	}
	logger.Info("run finished", zap.Int("searched", summary.Searched), zap.Int("skipped", summary.Skipped))
	return summary
}

func (r *Runner) record(logger *zap.Logger, seed string, results []models.Record) {
	if _, err := r.Recorder.Append(seed, results); err != nil {
		fmt.Fprintf(r.Out, "Failed to log results for %s: %v\n", seed, err)
		logger.Warn("log write failed", zap.String("url", seed), zap.Error(err))
		return
	}

	fmt.Fprintf(r.Out, "Found %d similar pages for %s\n", len(results), seed)
	fmt.Fprintf(r.Out, "Results for %s:\n", seed)
	for _, page := range results {
		fmt.Fprintf(r.Out, "Title: %s, URL: %s, Score: %s\n", page.Title, page.URL, page.ScoreText())
	}
	fmt.Fprintf(r.Out, "Results logged in %s\n", r.LogPath)
}
