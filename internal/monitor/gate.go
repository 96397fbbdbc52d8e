// Package monitor runs similar-page searches for seed URLs, records them in
// the search log and reports pages not seen before.
package monitor

import (
	"time"

	"github.com/williampepple1/similar-pages/pkg/models"
)

const dateLayout = "2006-01-02"

// SearchedRecently reports whether url's latest logged search falls on or
// after the date windowDays before now (UTC). Only the date part of the
// datestamp is compared.
func SearchedRecently(log models.Log, url string, windowDays int, now time.Time) bool {
	latest := log[url].Latest()
	if latest == "" {
		return false
	}
	if len(latest) > len(dateLayout) {
		latest = latest[:len(dateLayout)]
	}
	cutoff := now.UTC().AddDate(0, 0, -windowDays).Format(dateLayout)
	return latest >= cutoff
}

// DaysAgo formats the UTC date days before now, or "" when days is not positive
func DaysAgo(now time.Time, days int) string {
	if days <= 0 {
		return ""
	}
	return now.UTC().AddDate(0, 0, -days).Format(dateLayout)
}
