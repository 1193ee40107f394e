package feed

import (
	"context"
	"net/url"
	"strings"

	"github.com/go-pkgz/lgr"
	"github.com/markusmobius/go-trafilatura"

	"github.com/umputun/infodash/pkg/domain"
	"github.com/umputun/infodash/pkg/markup"
)

// ImageResolver finds a representative image for an article page
type ImageResolver struct {
	client       Getter
	useExtractor bool
}

// NewImageResolver makes a resolver. With useExtractor set, pages without image meta tags
// are run through trafilatura metadata extraction as the last resort.
func NewImageResolver(client Getter, useExtractor bool) *ImageResolver {
	return &ImageResolver{client: client, useExtractor: useExtractor}
}

// Resolve fetches the article and returns an absolute image url, empty if nothing found.
// Priority is og:image, twitter:image, link rel=image_src, then the first img with src.
func (r *ImageResolver) Resolve(ctx context.Context, link string) string {
	if link == "" {
		return ""
	}
	resp := r.client.Get(ctx, link)
	if !resp.Success || resp.Body == "" {
		return ""
	}

	doc, err := markup.Parse([]byte(resp.Body))
	if err != nil {
		return ""
	}

	candidates := []func() string{
		func() string { return doc.Meta("og:image") },
		func() string { return doc.Meta("twitter:image") },
		func() string { return doc.LinkHref("image_src") },
		func() string { return doc.Attr("img", "src") },
	}
	for _, c := range candidates {
		if img := c(); img != "" {
			return ResolveURL(link, img)
		}
	}

	if r.useExtractor {
		if img := r.extractedImage(resp.Body, link); img != "" {
			return ResolveURL(link, img)
		}
	}
	return ""
}

// extractedImage runs trafilatura over the page and returns the image from extracted metadata
func (r *ImageResolver) extractedImage(body, link string) string {
	pu, err := url.Parse(link)
	if err != nil {
		return ""
	}
	opts := trafilatura.Options{
		EnableFallback:  false,
		ExcludeComments: true,
		IncludeImages:   true,
		OriginalURL:     pu,
	}
	res, err := trafilatura.Extract(strings.NewReader(body), opts)
	if err != nil || res == nil {
		lgr.Printf("[DEBUG] no metadata image for %s: %v", link, err)
		return ""
	}
	return strings.TrimSpace(res.Metadata.Image)
}

// BackfillImages resolves images for items with a link and no image, one item after another.
// It returns a new slice, the input is left as is.
func BackfillImages(ctx context.Context, finder ImageFinder, items []domain.FeedItem) []domain.FeedItem {
	res := make([]domain.FeedItem, len(items))
	copy(res, items)
	for i := range res {
		if res[i].ImageURL != "" || res[i].Link == "" {
			continue
		}
		if ctx.Err() != nil {
			break
		}
		res[i].ImageURL = finder.Resolve(ctx, res[i].Link)
	}
	return res
}
