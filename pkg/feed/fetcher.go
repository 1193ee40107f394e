package feed

import (
	"context"
	"regexp"
	"strings"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/infodash/pkg/domain"
	"github.com/umputun/infodash/pkg/httpclient"
	"github.com/umputun/infodash/pkg/markup"
	"github.com/umputun/infodash/pkg/metrics"
	"github.com/umputun/infodash/pkg/sanitize"
)

//go:generate moq -out mocks/getter.go -pkg mocks -skip-ensure -fmt goimports . Getter
//go:generate moq -out mocks/image_finder.go -pkg mocks -skip-ensure -fmt goimports . ImageFinder

// Getter performs GET requests
type Getter interface {
	Get(ctx context.Context, url string) httpclient.Response
}

// ImageFinder resolves a representative image for an article link
type ImageFinder interface {
	Resolve(ctx context.Context, link string) string
}

// DefaultMaxDiscovered caps items taken from a discovered (not directly requested) feed
const DefaultMaxDiscovered = 20

// DefaultFallbackPaths are conventional feed locations tried on the origin as the last stage
var DefaultFallbackPaths = []string{
	"/rss", "/feed", "/feeds", "/rss.xml", "/feed.xml", "/feeds.xml", "/index.rss", "/feeds/rss.xml",
	"/services/xml/rss/nyt/HomePage.xml",
}

// discovery stages, also used as metric labels
const (
	stageDirect   = "direct"
	stageLink     = "link"
	stageHrefScan = "href_scan"
	stageFallback = "fallback"
	stageNone     = "none"
)

var hrefRe = regexp.MustCompile(`(?i)href\s*=\s*["']([^"']+)["']`)

// Service fetches feeds by url, finding the actual feed endpoint when the url points to a web page
type Service struct {
	client        Getter
	images        ImageFinder
	maxDiscovered int
	fallbackPaths []string
}

// Params for NewService. Images is optional, nil disables image backfill.
type Params struct {
	Client        Getter
	Images        ImageFinder
	MaxDiscovered int
	FallbackPaths []string
}

// NewService makes a feed service
func NewService(p Params) *Service {
	if p.MaxDiscovered <= 0 {
		p.MaxDiscovered = DefaultMaxDiscovered
	}
	if len(p.FallbackPaths) == 0 {
		p.FallbackPaths = DefaultFallbackPaths
	}
	return &Service{client: p.Client, images: p.Images, maxDiscovered: p.MaxDiscovered, fallbackPaths: p.FallbackPaths}
}

// FetchFeed returns items of the feed at rawURL. The url may point to a feed or to a page
// advertising one. Discovery stops at the first stage yielding items:
//   - direct fetch of the url
//   - <link> to a feed in the page, with one more hop if that link leads to another index page
//   - any quoted href containing "rss" or "feed" in the raw page text
//   - conventional feed paths on the origin
//
// Items from discovered feeds are capped, a direct feed is not. Source of every item is the
// host of rawURL, not of the resolved feed. Failure of all stages gives an empty list.
func (s *Service) FetchFeed(ctx context.Context, rawURL string) []domain.FeedItem {
	u := NormalizeURL(rawURL)
	if u == "" {
		return []domain.FeedItem{}
	}

	items, stage := s.discover(ctx, u)
	metrics.DiscoveryStage.WithLabelValues(stage).Inc()
	if stage != stageDirect && len(items) > s.maxDiscovered {
		items = items[:s.maxDiscovered]
	}
	if stage != stageDirect && stage != stageNone {
		lgr.Printf("[DEBUG] feed for %s discovered via %s, %d items", u, stage, len(items))
	}

	source := SourceName(u)
	for i := range items {
		items[i].Source = source
		items[i].Title = sanitize.String(items[i].Title)
		items[i].Description = sanitize.String(items[i].Description)
		items[i].Author = sanitize.String(items[i].Author)
	}

	if s.images != nil && len(items) > 0 {
		items = BackfillImages(ctx, s.images, items)
	}
	return items
}

func (s *Service) discover(ctx context.Context, u string) ([]domain.FeedItem, string) {
	tried := map[string]bool{u: true}

	resp := s.client.Get(ctx, u)
	var page string
	if resp.Success {
		if items := markup.ExtractFeedItems([]byte(resp.Body), ""); len(items) > 0 {
			return items, stageDirect
		}
		page = resp.Body
	} else {
		lgr.Printf("[DEBUG] direct fetch of %s failed, status %d %s", u, resp.StatusCode, resp.Error)
	}

	if page != "" {
		if items := s.fromFeedLink(ctx, u, page, 1, tried); len(items) > 0 {
			return items, stageLink
		}
		if items := s.fromHrefScan(ctx, u, page, tried); len(items) > 0 {
			return items, stageHrefScan
		}
	}

	if items := s.fromFallbackPaths(ctx, u, tried); len(items) > 0 {
		return items, stageFallback
	}
	return []domain.FeedItem{}, stageNone
}

// fromFeedLink follows the feed <link> of a page. If the target is an html page with
// its own feed link, up to hops more levels are followed.
func (s *Service) fromFeedLink(ctx context.Context, base, page string, hops int, tried map[string]bool) []domain.FeedItem {
	doc, err := markup.Parse([]byte(page))
	if err != nil {
		return nil
	}
	href := feedLinkHref(doc)
	if href == "" {
		return nil
	}
	target := ResolveURL(base, href)
	if tried[target] {
		return nil
	}
	tried[target] = true

	resp := s.client.Get(ctx, target)
	if !resp.Success {
		return nil
	}
	if items := markup.ExtractFeedItems([]byte(resp.Body), ""); len(items) > 0 {
		return items
	}
	if hops > 0 && !markup.LooksLikeFeedBody([]byte(resp.Body)) {
		return s.fromFeedLink(ctx, target, resp.Body, hops-1, tried)
	}
	return nil
}

// feedLinkHref picks <link rel="alternate"> with rss or atom type, or any <link> with href mentioning rss or feed
func feedLinkHref(doc *markup.Document) string {
	for _, alt := range doc.Alternates() {
		lt := strings.ToLower(alt.Type)
		if strings.Contains(lt, "rss") || strings.Contains(lt, "atom") {
			return alt.Href
		}
	}
	return doc.AttrFold("link", "href", "rss", "feed")
}

// fromHrefScan tries every quoted href value containing rss or feed, in page order
func (s *Service) fromHrefScan(ctx context.Context, base, page string, tried map[string]bool) []domain.FeedItem {
	for _, m := range hrefRe.FindAllStringSubmatch(page, -1) {
		lv := strings.ToLower(m[1])
		if !strings.Contains(lv, "rss") && !strings.Contains(lv, "feed") {
			continue
		}
		target := ResolveURL(base, m[1])
		if tried[target] {
			continue
		}
		tried[target] = true
		if items := s.fetchItems(ctx, target); len(items) > 0 {
			return items
		}
	}
	return nil
}

// fromFallbackPaths tries conventional feed paths on the origin of u
func (s *Service) fromFallbackPaths(ctx context.Context, u string, tried map[string]bool) []domain.FeedItem {
	origin := Origin(u)
	if origin == "" {
		return nil
	}
	for _, p := range s.fallbackPaths {
		target := origin + p
		if tried[target] {
			continue
		}
		tried[target] = true
		if items := s.fetchItems(ctx, target); len(items) > 0 {
			return items
		}
	}
	return nil
}

func (s *Service) fetchItems(ctx context.Context, u string) []domain.FeedItem {
	if ctx.Err() != nil {
		return nil
	}
	resp := s.client.Get(ctx, u)
	if !resp.Success {
		return nil
	}
	return markup.ExtractFeedItems([]byte(resp.Body), "")
}
