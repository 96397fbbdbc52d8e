package monitor

import (
	"bytes"
	"context"
	"errors"
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/williampepple1/similar-pages/internal/clock"
	"github.com/williampepple1/similar-pages/internal/config"
	"github.com/williampepple1/similar-pages/pkg/models"
)

func newTestRunner(t *testing.T, store LogStore, s *fakeSearcher, out *bytes.Buffer) *Runner {
	t.Helper()
	r := NewRunner(config.Default(), store, s, out, nil)
	r.SetClock(clock.Fixed(testNow))
	return r
}

func TestRunner_emptyLogOneSeed(t *testing.T) {
	const seed = "https://seed.example/"
	store := newStore(t)
	s := &fakeSearcher{results: map[string][]models.Record{seed: {
		{Title: "One", URL: "https://one.example/", Score: score(0.91)},
		{Title: "Two", URL: "https://two.example/", Score: score(0.5)},
		{Title: "Three", URL: "https://three.example/"},
	}}}
	var out bytes.Buffer

	summary := newTestRunner(t, store, s, &out).Run(context.Background(), []string{seed})

	log, err := store.Read()
	if err != nil {
		t.Fatal(err)
	}
	entries := log[seed]
	if len(entries) != 1 {
		t.Fatalf("log has %d entries for seed, want 1", len(entries))
	}
	stamp := testNow.Format(models.StampLayout)
	if got := entries[stamp]; len(got) != 3 || got[2].Score != nil {
		t.Errorf("entry %s = %+v", stamp, got)
	}

	if summary.Searched != 1 || summary.Skipped != 0 || summary.RunID == "" {
		t.Errorf("summary = %+v", summary)
	}
	want := []string{"https://one.example/", "https://two.example/", "https://three.example/"}
	if got := urlsFor(summary.Report, seed); !reflect.DeepEqual(got, want) {
		t.Errorf("new pages = %v, want %v", got, want)
	}

	text := out.String()
	for _, line := range []string{
		"Searching for similar pages...: https://seed.example/\n",
		"Found 3 similar pages for https://seed.example/\n",
		"Results for https://seed.example/:\n",
		"Title: One, URL: https://one.example/, Score: 0.91\n",
		"Title: Three, URL: https://three.example/, Score: N/A\n",
		"Results logged in similar_pages_log.json\n",
		"    - Two at https://two.example/\n",
	} {
		if !strings.Contains(text, line) {
			t.Errorf("output missing %q:\n%s", line, text)
		}
	}

	if len(s.opts) != 1 || s.opts[0].StartPublishedDate != "2024-02-14" || s.opts[0].NumResults != 10 {
		t.Errorf("search options = %+v", s.opts)
	}
}

func TestRunner_recentSeedIsSkipped(t *testing.T) {
	const seed = "https://seed.example/"
	store := newStore(t)
	if err := store.Save(models.Log{seed: {
		stampDaysAgo(2): {{Title: "Existing", URL: "https://existing.example/"}},
	}}); err != nil {
		t.Fatal(err)
	}
	before, err := os.ReadFile(store.Path)
	if err != nil {
		t.Fatal(err)
	}

	s := &fakeSearcher{}
	var out bytes.Buffer
	summary := newTestRunner(t, store, s, &out).Run(context.Background(), []string{seed})

	if len(s.calls) != 0 {
		t.Errorf("searcher called for a recent seed: %v", s.calls)
	}
	after, _ := os.ReadFile(store.Path)
	if !bytes.Equal(before, after) {
		t.Error("log changed although the seed was skipped")
	}
	if summary.Skipped != 1 || summary.Searched != 0 {
		t.Errorf("summary = %+v", summary)
	}
	if !strings.Contains(out.String(), "Skipped: Already searched https://seed.example/ within the last 7 days.\n") {
		t.Errorf("missing skip message:\n%s", out.String())
	}
	if got := urlsFor(summary.Report, seed); !reflect.DeepEqual(got, []string{"https://existing.example/"}) {
		t.Errorf("new pages = %v", got)
	}
}

func TestRunner_sharedResultIsNotNew(t *testing.T) {
	const a, b = "https://seed-a.example/", "https://seed-b.example/"
	store := newStore(t)
	s := &fakeSearcher{results: map[string][]models.Record{
		a: {{Title: "Shared", URL: "https://shared.example/"}, {Title: "Only A", URL: "https://only-a.example/"}},
		b: {{Title: "Shared", URL: "https://shared.example/"}},
	}}
	var out bytes.Buffer
	summary := newTestRunner(t, store, s, &out).Run(context.Background(), []string{a, b})

	if got := urlsFor(summary.Report, a); !reflect.DeepEqual(got, []string{"https://only-a.example/"}) {
		t.Errorf("new pages for a = %v", got)
	}
	if got := urlsFor(summary.Report, b); len(got) != 0 {
		t.Errorf("new pages for b = %v, want none", got)
	}
}

func TestRunner_searchFailureStillLogsEmptyEntry(t *testing.T) {
	const seed = "https://seed.example/"
	store := newStore(t)
	s := &fakeSearcher{err: errors.New("timeout")}
	var out bytes.Buffer
	newTestRunner(t, store, s, &out).Run(context.Background(), []string{seed, "https://other.example/"})

	if len(s.calls) != 2 {
		t.Errorf("searcher calls = %v, want both seeds", s.calls)
	}
	log := store.Load()
	if got := log[seed][testNow.Format(models.StampLayout)]; got == nil || len(got) != 0 {
		t.Errorf("entry = %#v, want empty list", got)
	}
	if !strings.Contains(out.String(), "Found 0 similar pages for https://seed.example/") {
		t.Errorf("output:\n%s", out.String())
	}
}

type failingStore struct {
	LogStore
}

func (failingStore) Save(models.Log) error { return errors.New("disk full") }

func TestRunner_writeFailureContinues(t *testing.T) {
	s := &fakeSearcher{results: map[string][]models.Record{
		"https://a.example/": {{Title: "A", URL: "https://ra.example/"}},
		"https://b.example/": {{Title: "B", URL: "https://rb.example/"}},
	}}
	var out bytes.Buffer
	summary := newTestRunner(t, failingStore{newStore(t)}, s, &out).Run(context.Background(), []string{"https://a.example/", "https://b.example/"})

	if len(s.calls) != 2 || summary.Searched != 2 {
		t.Errorf("calls = %v, summary = %+v", s.calls, summary)
	}
	if strings.Count(out.String(), "Failed to log results for") != 2 {
		t.Errorf("output:\n%s", out.String())
	}
	if summary.Report != nil {
		t.Error("report should be aborted when the log file does not exist")
	}
}

func TestRunner_cancelledContext(t *testing.T) {
	s := &fakeSearcher{}
	var out bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	newTestRunner(t, newStore(t), s, &out).Run(ctx, []string{"https://a.example/"})
	if len(s.calls) != 0 {
		t.Errorf("searcher called after cancellation: %v", s.calls)
	}
}
