package feeds

import (
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
)

// NewsItem is one normalized article in the aggregated output. Identity is
// informally the link; the same link appearing under two sources is retained
// twice, that is expected with overlapping outlets.
type NewsItem struct {
	Title    string    `json:"title"`
	Link     string    `json:"link"`
	PubDate  string    `json:"pubDate,omitempty"` // raw publish string as the feed shipped it
	ISODate  time.Time `json:"isoDate"`
	Creator  string    `json:"creator,omitempty"`
	Snippet  string    `json:"snippet,omitempty"`
	Source   string    `json:"source"`
	ImageURL string    `json:"imageUrl,omitempty"`
}

// Aggregate normalizes every item of every successful FeedResult and merges
// them into one list sorted by publish date, newest first. Items whose
// publish date did not parse keep the zero time and therefore sort to the
// end; they are never dropped. Failed sources contribute nothing. No
// deduplication, pagination, or truncation.
func Aggregate(results []FeedResult) []NewsItem {
	items := make([]NewsItem, 0)

	for _, res := range results {
		if res.Failed() {
			continue
		}
		source := res.Title
		if source == "" {
			// Untitled feed: fall back to the endpoint URL so every item
			// still carries a non-empty source.
			source = res.URL
		}
		for _, item := range res.Items {
			if item == nil {
				continue
			}
			items = append(items, newsItemFrom(item, source))
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].ISODate.After(items[j].ISODate)
	})

	return items
}

// newsItemFrom maps one parsed feed item to the output shape.
func newsItemFrom(item *gofeed.Item, source string) NewsItem {
	n := NewsItem{
		Title:    item.Title,
		Link:     item.Link,
		PubDate:  item.Published,
		Creator:  creator(item),
		Snippet:  snippet(item),
		Source:   source,
		ImageURL: ResolveImage(item),
	}
	if item.PublishedParsed != nil {
		n.ISODate = *item.PublishedParsed
	}
	return n
}

// creator prefers dc:creator over the plain author element, matching how
// most of the configured feeds attribute articles.
func creator(item *gofeed.Item) string {
	if dc := item.DublinCoreExt; dc != nil && len(dc.Creator) > 0 {
		return dc.Creator[0]
	}
	if item.Author != nil {
		return item.Author.Name
	}
	return ""
}

// snippet strips HTML tags from the item description using goquery.
func snippet(item *gofeed.Item) string {
	if item.Description == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<body>" + item.Description + "</body>"))
	if err != nil {
		return item.Description
	}
	return strings.TrimSpace(doc.Text())
}
