package models

import "strconv"

// StampLayout is the layout of the per-search keys in the log (UTC, second resolution)
const StampLayout = "2006-01-02-15-04-05"

// Record is a single similar page returned by the search service
type Record struct {
	Title string   `json:"title"`
	URL   string   `json:"url"`
	Score *float64 `json:"score"`
}

// ScoreText renders the score, or N/A when the service did not send one
func (r Record) ScoreText() string {
	if r.Score == nil {
		return "N/A"
	}
	return strconv.FormatFloat(*r.Score, 'f', -1, 64)
}

// Entries maps a search datestamp to the records found by that search
type Entries map[string][]Record

// Latest returns the most recent datestamp, or "" when there are no entries.
// Datestamps are fixed width, so the lexicographic max is also the newest.
func (e Entries) Latest() string {
	latest := ""
	for stamp := range e {
		if stamp > latest {
			latest = stamp
		}
	}
	return latest
}

// Log is the persisted search history keyed by seed URL
type Log map[string]Entries

// Outcome is the result of asking for similar pages: either Fetched or Skipped
type Outcome interface {
	outcome()
}

// Fetched carries the records returned by a search. Results is empty when
// the search failed.
type Fetched struct {
	Results []Record
}

// Skipped means the search was not run because the seed was searched recently
type Skipped struct {
	Reason string
}

func (Fetched) outcome() {}
func (Skipped) outcome() {}
