package markup

import (
	"bytes"
	"strings"

	"github.com/mmcdole/gofeed"
)

// feed dialects reported by SniffFeedType
const (
	FeedRSS  = "rss"
	FeedAtom = "atom"
	FeedJSON = "json"
)

// SniffFeedType detects the feed dialect of a body, empty string if it isn't a feed
func SniffFeedType(b []byte) string {
	switch gofeed.DetectFeedType(bytes.NewReader(b)) {
	case gofeed.FeedTypeRSS:
		return FeedRSS
	case gofeed.FeedTypeAtom:
		return FeedAtom
	case gofeed.FeedTypeJSON:
		return FeedJSON
	default:
		return ""
	}
}

// LooksLikeFeedBody is a cheap textual check for rss/atom markers, used when a body
// can't be fully detected (e.g. garbage before the root element)
func LooksLikeFeedBody(b []byte) bool {
	if SniffFeedType(b) != "" {
		return true
	}
	head := strings.ToLower(string(b[:min(len(b), 2048)]))
	return strings.Contains(head, "<rss") || strings.Contains(head, "<feed") || strings.Contains(head, "<channel>")
}

// extractJSONFeed maps json feed items into records with the same normalization rules as xml feeds
func extractJSONFeed(b []byte) []Record {
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(b))
	if err != nil || feed == nil {
		return []Record{}
	}

	res := make([]Record, 0, len(feed.Items))
	for _, it := range feed.Items {
		if it == nil {
			continue
		}
		title := cleanText(it.Title)
		if title == "" {
			continue
		}

		rec := Record{Title: ptr(title), Link: ptr(strings.TrimSpace(it.Link))}

		descHTML := it.Description
		if descHTML == "" {
			descHTML = it.Content
		}
		rec.Description = ptr(StripDescription(descHTML))

		switch {
		case it.Published != "":
			rec.PubDate = ptr(it.Published)
		case it.Updated != "":
			rec.PubDate = ptr(it.Updated)
		}
		if it.Author != nil && it.Author.Name != "" {
			rec.Author = ptr(cleanText(it.Author.Name))
		}

		switch {
		case it.Image != nil && it.Image.URL != "":
			rec.ImageURL = ptr(it.Image.URL)
		default:
			if m := imgSrcRe.FindStringSubmatch(it.Content + it.Description); len(m) > 1 {
				rec.ImageURL = ptr(m[1])
			}
		}
		res = append(res, rec)
	}
	return res
}
