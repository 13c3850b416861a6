// Package feeds implements the feed ingestion pipeline: concurrent fetching
// of RSS/Atom sources with per-source failure isolation, normalization into
// a single time-ordered article list, and selection of upcoming fixtures.
package feeds

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"
)

// DefaultTimeout bounds a single source fetch so one slow endpoint cannot
// stall a whole batch.
const DefaultTimeout = 10 * time.Second

// Registry is the process-wide read-only list of feed endpoints. It is built
// once at startup from configuration and passed in wherever it is needed;
// nothing mutates it afterwards.
type Registry struct {
	News     []string
	Fixtures string
}

// NewRegistry creates a registry from the configured endpoint lists.
func NewRegistry(news []string, fixtures string) Registry {
	return Registry{News: news, Fixtures: fixtures}
}

// FeedResult is the outcome of fetching one source: either the parsed items
// plus the feed title, or a recorded error with zero items.
type FeedResult struct {
	URL   string
	Title string
	Items []*gofeed.Item
	Err   error
}

// Failed reports whether the source yielded no usable feed.
func (r FeedResult) Failed() bool { return r.Err != nil }

// Fetcher fetches and parses feed sources.
type Fetcher struct {
	timeout time.Duration
	client  *http.Client
}

// NewFetcher creates a fetcher with the given per-source timeout.
// A non-positive timeout falls back to DefaultTimeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Fetcher{
		timeout: timeout,
		client:  &http.Client{Timeout: timeout},
	}
}

// FetchSource fetches and parses a single source. Any failure — network
// error, malformed feed, timeout — is logged and recorded on the result;
// it never propagates to the caller as an error.
func (f *Fetcher) FetchSource(ctx context.Context, url string) FeedResult {
	fctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	// gofeed parsers initialize internals lazily, so each fetch gets its own.
	parser := gofeed.NewParser()
	parser.Client = f.client

	feed, err := parser.ParseURLWithContext(url, fctx)
	if err != nil {
		log.Printf("feeds: failed to fetch or parse %s: %v", url, err)
		return FeedResult{URL: url, Err: err}
	}

	return FeedResult{URL: url, Title: feed.Title, Items: feed.Items}
}

// FetchAll fetches every source concurrently and waits for all of them to
// finish or fail before returning. This fan-out is fail-soft: a failed
// source yields an empty FeedResult and never cancels its siblings. The
// prediction orchestrator uses the opposite policy; the two must not be
// unified on one primitive.
func (f *Fetcher) FetchAll(ctx context.Context, urls []string) []FeedResult {
	results := make([]FeedResult, len(urls))

	var wg sync.WaitGroup
	for i, url := range urls {
		wg.Add(1)
		go func(i int, url string) {
			defer wg.Done()
			results[i] = f.FetchSource(ctx, url)
		}(i, url)
	}
	wg.Wait()

	return results
}
