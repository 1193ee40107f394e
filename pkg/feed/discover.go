package feed

import (
	"context"
	"strings"

	"github.com/umputun/infodash/pkg/domain"
	"github.com/umputun/infodash/pkg/markup"
)

// DiscoverFeeds lists feeds offered by the page at rawURL. If the url itself serves a feed,
// the result is that single feed. Otherwise every <link rel="alternate"> with rss or atom
// mime type is returned with resolved href, title defaulting to the href.
func (s *Service) DiscoverFeeds(ctx context.Context, rawURL string) []domain.DiscoveredFeed {
	u := NormalizeURL(rawURL)
	res := []domain.DiscoveredFeed{}
	if u == "" {
		return res
	}

	resp := s.client.Get(ctx, u)
	if !resp.Success || resp.Body == "" {
		return res
	}

	body := []byte(resp.Body)
	if markup.LooksLikeFeedBody(body) {
		typ := markup.SniffFeedType(body)
		if typ == "" {
			typ = markup.FeedRSS
		}
		return append(res, domain.DiscoveredFeed{URL: u, Title: "Direct RSS Feed", Type: typ})
	}

	doc, err := markup.Parse(body)
	if err != nil {
		return res
	}
	seen := map[string]bool{}
	for _, alt := range doc.Alternates() {
		typ := strings.ToLower(alt.Type)
		if typ != "application/rss+xml" && typ != "application/atom+xml" {
			continue
		}
		feedURL := ResolveURL(u, alt.Href)
		if seen[feedURL] {
			continue
		}
		seen[feedURL] = true
		title := alt.Title
		if title == "" {
			title = feedURL
		}
		res = append(res, domain.DiscoveredFeed{URL: feedURL, Title: title, Type: typ})
	}
	return res
}
