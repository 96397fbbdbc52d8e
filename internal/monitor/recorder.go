package monitor

import (
	"go.uber.org/zap"

	"github.com/williampepple1/similar-pages/internal/clock"
	"github.com/williampepple1/similar-pages/pkg/models"
	"github.com/williampepple1/similar-pages/pkg/utils"
)

// Recorder appends search results to the log
type Recorder struct {
	Store  LogStore
	Clock  clock.Clock
	logger *zap.Logger
}

// NewRecorder creates a recorder stamping entries with the system clock
func NewRecorder(store LogStore, logger *zap.Logger) *Recorder {
	return &Recorder{
		Store:  store,
		Clock:  clock.SystemUTC{},
		logger: utils.OrNop(logger),
	}
}

// Append stores results under url with the current UTC datestamp and saves the
// whole log. It returns the datestamp used.
func (r *Recorder) Append(url string, results []models.Record) (string, error) {
	log := r.Store.Load()
	stamp := r.Clock.NowUTC().Format(models.StampLayout)
	AddEntry(log, url, stamp, results)

	if err := r.Store.Save(log); err != nil {
		return "", err
	}
	r.logger.Debug("search logged", zap.String("url", url), zap.String("stamp", stamp), zap.Int("results", len(results)))
	return stamp, nil
}

// AddEntry sets log[url][stamp] to a plain copy of results, creating log[url] if needed
func AddEntry(log models.Log, url, stamp string, results []models.Record) {
	entries, ok := log[url]
	if !ok {
		entries = models.Entries{}
		log[url] = entries
	}

	records := make([]models.Record, 0, len(results))
	for _, page := range results {
		records = append(records, models.Record{Title: page.Title, URL: page.URL, Score: page.Score})
	}
	entries[stamp] = records
}
