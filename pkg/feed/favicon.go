package feed

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/infodash/pkg/domain"
	"github.com/umputun/infodash/pkg/httpclient"
)

//go:generate moq -out mocks/icon_getter.go -pkg mocks -skip-ensure -fmt goimports . IconGetter

// IconGetter fetches favicon payloads
type IconGetter interface {
	GetBytes(ctx context.Context, url string) []byte
	GetAsync(ctx context.Context, url string, cb func(httpclient.Response))
}

// Favicons fetches site icons from a favicon service and keeps them in memory by host.
// Failed fetches are not cached and get retried on the next request.
type Favicons struct {
	client   IconGetter
	endpoint string // template with %s for the host

	mu      sync.Mutex
	cache   map[string]domain.Favicon
	pending map[string]bool
}

// NewFavicons makes a favicon cache, endpoint is a template with %s for the host
func NewFavicons(client IconGetter, endpoint string) *Favicons {
	return &Favicons{
		client:   client,
		endpoint: endpoint,
		cache:    map[string]domain.Favicon{},
		pending:  map[string]bool{},
	}
}

// FaviconHost reduces a url or a bare host to the host used as the cache key
func FaviconHost(u string) string {
	return strings.ToLower(SourceName(NormalizeURL(u)))
}

// Icon returns the icon of the host, fetched on a cache miss. The host may be given as a url.
func (f *Favicons) Icon(ctx context.Context, host string) (domain.Favicon, bool) {
	host = FaviconHost(host)
	if host == "" {
		return domain.Favicon{}, false
	}
	if icon, ok := f.cached(host); ok {
		return icon, true
	}

	data := f.client.GetBytes(ctx, f.iconURL(host))
	if len(data) == 0 {
		lgr.Printf("[DEBUG] no favicon for %s", host)
		return domain.Favicon{}, false
	}
	icon := domain.Favicon{Data: data, ContentType: http.DetectContentType(data)}
	f.store(host, icon)
	return icon, true
}

// Prefetch requests icons of hosts not cached or in flight yet. It doesn't block.
func (f *Favicons) Prefetch(ctx context.Context, hosts []string) {
	for _, h := range hosts {
		host := FaviconHost(h)
		if host == "" {
			continue
		}
		f.mu.Lock()
		_, cached := f.cache[host]
		if cached || f.pending[host] {
			f.mu.Unlock()
			continue
		}
		f.pending[host] = true
		f.mu.Unlock()

		f.client.GetAsync(ctx, f.iconURL(host), func(resp httpclient.Response) {
			f.mu.Lock()
			delete(f.pending, host)
			f.mu.Unlock()
			if !resp.Success || resp.Body == "" {
				lgr.Printf("[DEBUG] favicon prefetch for %s failed, status %d %s", host, resp.StatusCode, resp.Error)
				return
			}
			data := []byte(resp.Body)
			ct := resp.Headers["Content-Type"]
			if !strings.HasPrefix(ct, "image/") {
				ct = http.DetectContentType(data)
			}
			f.store(host, domain.Favicon{Data: data, ContentType: ct})
		})
	}
}

func (f *Favicons) iconURL(host string) string {
	return fmt.Sprintf(f.endpoint, url.QueryEscape(host))
}

func (f *Favicons) cached(host string) (domain.Favicon, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	icon, ok := f.cache[host]
	return icon, ok
}

func (f *Favicons) store(host string, icon domain.Favicon) {
	f.mu.Lock()
	f.cache[host] = icon
	f.mu.Unlock()
}
