package monitor

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"go.uber.org/zap"

	logio "github.com/williampepple1/similar-pages/internal/io"
	"github.com/williampepple1/similar-pages/pkg/models"
	"github.com/williampepple1/similar-pages/pkg/utils"
)

// Finding is a page seen for the first time
type Finding struct {
	Title string
	URL   string
}

func (f Finding) String() string {
	return fmt.Sprintf("%s at %s", f.Title, f.URL)
}

// Report groups new pages by the seed URL whose latest search found them
type Report struct {
	Seeds    []string
	Findings map[string][]Finding
}

// Empty reports whether no new pages were found
func (r *Report) Empty() bool {
	return r == nil || len(r.Seeds) == 0
}

// Reporter finds pages that appear in the log exactly once
type Reporter struct {
	Store  LogStore
	Out    io.Writer
	logger *zap.Logger
}

// NewReporter creates a reporter printing to out
func NewReporter(store LogStore, out io.Writer, logger *zap.Logger) *Reporter {
	return &Reporter{
		Store:  store,
		Out:    out,
		logger: utils.OrNop(logger),
	}
}

// Report reads the log and prints the pages new in each seed's latest search.
//
// A result URL counts as new when its literal text occurs exactly once in
// the serialized log. This is a substring count, so a URL that is contained
// in some other logged string is never reported.
func (r *Reporter) Report() (*Report, error) {
	log, err := r.Store.Read()
	if err != nil {
		fmt.Fprintf(r.Out, "Failed to load the log: %v\n", err)
		r.logger.Warn("novelty report aborted", zap.Error(err))
		return nil, err
	}
	raw, err := logio.Raw(log)
	if err != nil {
		fmt.Fprintf(r.Out, "Failed to load the log: %v\n", err)
		r.logger.Warn("novelty report aborted", zap.Error(err))
		return nil, err
	}
	fmt.Fprintln(r.Out, "Log loaded successfully.")

	report := Find(log, raw)
	r.print(report)
	r.logger.Debug("novelty report done", zap.Int("seeds_with_new_pages", len(report.Seeds)))
	return report, nil
}

// Find returns the new pages of log, using raw as the serialized log to count in
func Find(log models.Log, raw string) *Report {
	seeds := make([]string, 0, len(log))
	for seed := range log {
		seeds = append(seeds, seed)
	}
	sort.Strings(seeds)

	report := &Report{Findings: map[string][]Finding{}}
	for _, seed := range seeds {
		entries := log[seed]
		latest := entries[entries.Latest()]

		for _, page := range latest {
			if strings.Count(raw, page.URL) != 1 {
				continue
			}
			report.Findings[seed] = append(report.Findings[seed], Finding{
				Title: titleFor(latest, page.URL),
				URL:   page.URL,
			})
		}
		if len(report.Findings[seed]) > 0 {
			report.Seeds = append(report.Seeds, seed)
		}
	}
	return report
}

func titleFor(records []models.Record, url string) string {
	for _, page := range records {
		if page.URL == url {
			return page.Title
		}
	}
	return ""
}

func (r *Reporter) print(report *Report) {
	if report.Empty() {
		return
	}
	fmt.Fprintln(r.Out, strings.Repeat("#", 80))
	fmt.Fprintln(r.Out, "New pages found:")
	for _, seed := range report.Seeds {
		fmt.Fprintf(r.Out, "  - URL searched: %s\n", seed)
		for _, f := range report.Findings[seed] {
			fmt.Fprintf(r.Out, "    - %s\n", f)
		}
	}
}
