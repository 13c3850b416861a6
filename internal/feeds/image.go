package feeds

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
)

// ResolveImage derives a best-effort image URL for one parsed item.
// Fixed priority chain, first match wins:
//  1. an enclosure URL,
//  2. a media:content URL,
//  3. the first <img> src found in the raw content body.
//
// An empty field and an absent field are treated identically at every step.
// Returns "" when no image can be derived.
func ResolveImage(item *gofeed.Item) string {
	for _, enc := range item.Enclosures {
		if enc != nil && enc.URL != "" {
			return enc.URL
		}
	}

	if media, ok := item.Extensions["media"]; ok {
		for _, content := range media["content"] {
			if url := content.Attrs["url"]; url != "" {
				return url
			}
		}
	}

	if item.Content != "" {
		if src := firstImageSrc(item.Content); src != "" {
			return src
		}
	}

	return ""
}

// firstImageSrc scans an HTML fragment for the first <img> src attribute.
// This is a best-effort fallback over whatever markup the feed shipped, not
// a sanitizer: broken HTML that goquery cannot make sense of simply yields
// no image.
func firstImageSrc(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	src, _ := doc.Find("img[src]").First().Attr("src")
	return src
}
