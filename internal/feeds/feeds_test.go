package feeds

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// ════════════════════════════════════════════════════════════════════
// Test Helpers
// ════════════════════════════════════════════════════════════════════

func rssItem(title, link string, published time.Time) string {
	return fmt.Sprintf("<item><title>%s</title><link>%s</link><pubDate>%s</pubDate></item>",
		title, link, published.Format(time.RFC1123Z))
}

func rssDoc(title string, items ...string) string {
	doc := `<?xml version="1.0" encoding="UTF-8"?><rss version="2.0"><channel><title>` + title + `</title>`
	for _, item := range items {
		doc += item
	}
	return doc + `</channel></rss>`
}

func rssServer(t *testing.T, doc string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, doc)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// deadServer returns a URL nothing is listening on.
func deadServer(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	return url
}

// ════════════════════════════════════════════════════════════════════
// FetchSource
// ════════════════════════════════════════════════════════════════════

func TestFetchSourceSuccess(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	srv := rssServer(t, rssDoc("Goal Times",
		rssItem("Derby preview", "https://example.com/a", now),
		rssItem("Transfer latest", "https://example.com/b", now.Add(-time.Hour)),
	))

	f := NewFetcher(0)
	res := f.FetchSource(context.Background(), srv.URL)

	if res.Failed() {
		t.Fatalf("unexpected failure: %v", res.Err)
	}
	if res.Title != "Goal Times" {
		t.Errorf("Title: got %q, want %q", res.Title, "Goal Times")
	}
	if len(res.Items) != 2 {
		t.Fatalf("Items: got %d, want 2", len(res.Items))
	}
	if res.URL != srv.URL {
		t.Errorf("URL: got %q, want %q", res.URL, srv.URL)
	}
}

func TestFetchSourceHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	f := NewFetcher(0)
	res := f.FetchSource(context.Background(), srv.URL)

	if !res.Failed() {
		t.Fatal("expected failure for HTTP 500")
	}
	if len(res.Items) != 0 {
		t.Errorf("failed source must yield zero items, got %d", len(res.Items))
	}
}

func TestFetchSourceMalformedFeed(t *testing.T) {
	srv := rssServer(t, "this is not a feed")

	f := NewFetcher(0)
	res := f.FetchSource(context.Background(), srv.URL)

	if !res.Failed() {
		t.Fatal("expected failure for malformed feed")
	}
}

func TestFetchSourceTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		fmt.Fprint(w, rssDoc("Slow Feed"))
	}))
	defer srv.Close()

	f := NewFetcher(30 * time.Millisecond)
	start := time.Now()
	res := f.FetchSource(context.Background(), srv.URL)

	if !res.Failed() {
		t.Fatal("expected timeout failure")
	}
	if elapsed := time.Since(start); elapsed > 250*time.Millisecond {
		t.Errorf("timeout did not bound the call: took %v", elapsed)
	}
}

// ════════════════════════════════════════════════════════════════════
// FetchAll
// ════════════════════════════════════════════════════════════════════

func TestFetchAllIsolatesFailures(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	good := rssServer(t, rssDoc("Feed A", rssItem("a1", "https://example.com/a1", now)))
	bad := deadServer(t)
	alsoGood := rssServer(t, rssDoc("Feed C", rssItem("c1", "https://example.com/c1", now)))

	f := NewFetcher(2 * time.Second)
	results := f.FetchAll(context.Background(), []string{good.URL, bad, alsoGood.URL})

	if len(results) != 3 {
		t.Fatalf("got %d results, want one per source", len(results))
	}
	if results[0].Failed() || results[2].Failed() {
		t.Errorf("healthy sources must not fail: %v / %v", results[0].Err, results[2].Err)
	}
	if !results[1].Failed() {
		t.Error("dead source must be marked failed")
	}
	if results[0].Title != "Feed A" || results[2].Title != "Feed C" {
		t.Errorf("results must keep input order: got %q, %q", results[0].Title, results[2].Title)
	}
}

func TestFetchAllEmpty(t *testing.T) {
	f := NewFetcher(0)
	results := f.FetchAll(context.Background(), nil)
	if len(results) != 0 {
		t.Fatalf("got %d results, want 0", len(results))
	}
}

// Two sources, source A returns 2 items (dates D1 > D2), source B fails
// entirely: the aggregated output is exactly A's items, newest first, both
// attributed to A.
func TestFetchAllThenAggregateScenario(t *testing.T) {
	d1 := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)
	d2 := d1.Add(-3 * time.Hour)
	a := rssServer(t, rssDoc("Source A",
		rssItem("older", "https://example.com/old", d2),
		rssItem("newer", "https://example.com/new", d1),
	))
	b := deadServer(t)

	f := NewFetcher(2 * time.Second)
	results := f.FetchAll(context.Background(), []string{a.URL, b})
	items := Aggregate(results)

	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if !items[0].ISODate.Equal(d1) || !items[1].ISODate.Equal(d2) {
		t.Errorf("wrong order: got [%v, %v], want [%v, %v]",
			items[0].ISODate, items[1].ISODate, d1, d2)
	}
	for _, item := range items {
		if item.Source != "Source A" {
			t.Errorf("Source: got %q, want %q", item.Source, "Source A")
		}
	}
}
