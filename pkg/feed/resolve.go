package feed

import (
	"net/url"
	"strings"
)

// ResolveURL makes href absolute against base. Absolute urls pass through, "//host/p" inherits
// the scheme, "/p" inherits scheme and host, anything else resolves against the base directory.
func ResolveURL(base, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	if hu, err := url.Parse(href); err == nil && hu.IsAbs() {
		return href
	}

	bu, err := url.Parse(base)
	if err != nil || bu.Scheme == "" || bu.Host == "" {
		return href
	}
	ru, err := bu.Parse(href)
	if err != nil {
		return href
	}
	return ru.String()
}

// Origin returns scheme://host of the url, empty if it can't be parsed
func Origin(u string) string {
	pu, err := url.Parse(u)
	if err != nil || pu.Scheme == "" || pu.Host == "" {
		return ""
	}
	return pu.Scheme + "://" + pu.Host
}

// SourceName is the host part of a url, the text between "://" and the next "/".
// Urls without a scheme separator give an empty name.
func SourceName(u string) string {
	_, rest, ok := strings.Cut(u, "://")
	if !ok {
		return ""
	}
	host, _, _ := strings.Cut(rest, "/")
	return host
}

// NormalizeURL trims the url and prepends https:// if no scheme given
func NormalizeURL(u string) string {
	u = strings.TrimSpace(u)
	if u == "" || strings.Contains(u, "://") {
		return u
	}
	return "https://" + strings.TrimPrefix(u, "//")
}

// LooksLikeFeedURL guesses from the url alone whether it points to a feed rather than a page
func LooksLikeFeedURL(u string) bool {
	lu := strings.ToLower(u)
	for _, marker := range []string{".rss", ".xml", "/feed", "/rss", "/atom"} {
		if strings.Contains(lu, marker) {
			return true
		}
	}
	return false
}
