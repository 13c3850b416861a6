package feeds

import (
	"time"

	"github.com/mmcdole/gofeed"
)

// UpcomingWindow is how far ahead of now a scheduled match may be to count
// as upcoming.
const UpcomingWindow = 24 * time.Hour

// Fixture is a scheduled match whose kickoff falls inside the upcoming
// window.
type Fixture struct {
	Title string    `json:"title"`
	Date  time.Time `json:"date"`
	Link  string    `json:"link"`
}

// SelectUpcoming returns the fixtures whose date lies strictly between now
// and now+24h — both boundaries excluded. An item whose date failed to parse
// is discarded: a broken date disqualifies a fixture from being upcoming,
// unlike in Aggregate where it merely sorts the article last. A failed
// fixtures fetch reaches this as zero items and yields an empty, non-nil
// list.
func SelectUpcoming(items []*gofeed.Item, now time.Time) []Fixture {
	end := now.Add(UpcomingWindow)

	fixtures := make([]Fixture, 0)
	for _, item := range items {
		if item == nil || item.PublishedParsed == nil {
			continue
		}
		d := *item.PublishedParsed
		if d.After(now) && d.Before(end) {
			fixtures = append(fixtures, Fixture{
				Title: item.Title,
				Date:  d,
				Link:  item.Link,
			})
		}
	}

	return fixtures
}
