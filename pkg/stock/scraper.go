// Package stock scrapes quotes from a quote page mixing html with embedded json.
// The page has no stable schema, so extraction narrows the search to the requested symbol first
// and widens it layer by layer. Any failure ends in the unavailable sentinel quote.
package stock

import (
	"context"
	"fmt"
	"html"
	"net/url"
	"regexp"
	"strings"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/infodash/pkg/domain"
	"github.com/umputun/infodash/pkg/httpclient"
	"github.com/umputun/infodash/pkg/sanitize"
)

// DefaultQuoteURL is the quote page template, %s is replaced by the escaped symbol
const DefaultQuoteURL = "https://finance.yahoo.com/quote/%s"

// Getter performs GET requests
type Getter interface {
	Get(ctx context.Context, url string) httpclient.Response
}

// provider keeps every page-specific marker and pattern in one place
type provider struct {
	scopeLimit      int
	rootMarker      string
	quoteDataMarker string
	price           *regexp.Regexp
	change          *regexp.Regexp
	percent         *regexp.Regexp
	shortName       *regexp.Regexp
	longName        *regexp.Regexp
	ogTitle         *regexp.Regexp
	title           *regexp.Regexp
}

var yahoo = provider{
	scopeLimit:      12000,
	rootMarker:      "root.App.main",
	quoteDataMarker: `"quoteData"`,
	price:           regexp.MustCompile(`"regularMarketPrice":\{"raw":([0-9.]+)`),
	change:          regexp.MustCompile(`"regularMarketChange":\{"raw":(-?[0-9.]+)`),
	percent:         regexp.MustCompile(`"regularMarketChangePercent":\{"raw":(-?[0-9.]+)`),
	shortName:       regexp.MustCompile(`"shortName":"([^"]+)"`),
	longName:        regexp.MustCompile(`"longName":"([^"]+)"`),
	ogTitle:         regexp.MustCompile(`(?i)<meta[^>]+property=["']og:title["'][^>]+content=["']([^"']+)["']`),
	title:           regexp.MustCompile(`(?i)<title>([^<]+)</title>`),
}

// Scraper fetches and parses quote pages
type Scraper struct {
	client   Getter
	quoteURL string
	prov     provider
}

// Params for NewScraper, empty QuoteURL means DefaultQuoteURL
type Params struct {
	Client   Getter
	QuoteURL string
}

// NewScraper makes a Scraper
func NewScraper(p Params) *Scraper {
	res := &Scraper{client: p.Client, quoteURL: p.QuoteURL, prov: yahoo}
	if res.quoteURL == "" {
		res.quoteURL = DefaultQuoteURL
	}
	return res
}

// fields are raw captured values before formatting
type fields struct {
	price   string
	change  string
	percent string
	name    string
}

// FetchQuote returns the quote for symbol. It never fails, a quote without price is replaced
// by domain.UnavailableQuote.
func (s *Scraper) FetchQuote(ctx context.Context, symbol string) domain.StockQuote {
	symbol = NormalizeSymbol(symbol)
	if symbol == "" {
		return domain.UnavailableQuote(symbol)
	}

	resp := s.client.Get(ctx, fmt.Sprintf(s.quoteURL, url.PathEscape(symbol)))
	if !resp.Success {
		lgr.Printf("[DEBUG] quote page for %s not available, status %d, %s", symbol, resp.StatusCode, resp.Error)
		return domain.UnavailableQuote(symbol)
	}

	q := s.parse(resp.Body, symbol)
	if q.Price == "N/A" {
		lgr.Printf("[DEBUG] no price found for %s", symbol)
	}
	return q
}

// parse runs the extraction layers over a quote page body
func (s *Scraper) parse(body, symbol string) domain.StockQuote {
	scope, quotedKey := s.prov.symbolScope(body, symbol)
	f := s.prov.extract(scope)

	if f.name == "" && !quotedKey {
		f.name = s.prov.quoteDataName(body, symbol)
	}
	if f.name == "" {
		f.name = s.prov.metadataName(body)
	}
	if f.price == "" {
		if anchor := strings.Index(body, quote(symbol)); anchor >= 0 {
			s.prov.nearest(body, anchor, &f)
		} else {
			s.prov.firstMatch(body, &f)
		}
	}
	return toQuote(symbol, f)
}

// symbolScope narrows the body to the part describing symbol. It tries the "symbol":"SYM" marker,
// then the quoted symbol as an object key, then the root data object. quotedKey reports the second case.
// The full body is returned when nothing matched.
func (p provider) symbolScope(body, symbol string) (scope string, quotedKey bool) {
	if pos := strings.Index(body, `"symbol":`+quote(symbol)); pos >= 0 {
		return body[pos:min(len(body), pos+p.scopeLimit)], false
	}

	if pos := strings.Index(body, quote(symbol)); pos >= 0 {
		colon := strings.IndexByte(body[pos+len(quote(symbol)):], ':')
		if colon < 0 {
			return body, true
		}
		if obj, ok := p.objectAt(body, pos+len(quote(symbol))+colon); ok {
			return obj, true
		}
		return body, true
	}

	if pos := strings.Index(body, p.rootMarker); pos >= 0 {
		if obj, ok := p.objectAt(body, pos); ok {
			return obj, false
		}
	}
	return body, false
}

// objectAt finds the first '{' at or after from and returns the brace-balanced object starting there,
// bounded by scopeLimit. An unbalanced object runs to the end of the body, also bounded.
func (p provider) objectAt(body string, from int) (string, bool) {
	start := strings.IndexByte(body[from:], '{')
	if start < 0 {
		return "", false
	}
	start += from

	end := len(body)
	depth := 0
loop:
	for i := start; i < len(body); i++ {
		switch body[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				end = i + 1
				break loop
			}
		}
	}
	return body[start:min(end, start+p.scopeLimit)], true
}

// extract applies the four field patterns to scope, first match wins
func (p provider) extract(scope string) fields {
	return fields{
		price:   firstGroup(p.price, scope),
		change:  firstGroup(p.change, scope),
		percent: firstGroup(p.percent, scope),
		name:    p.nameIn(scope),
	}
}

func (p provider) nameIn(scope string) string {
	if name := firstGroup(p.shortName, scope); name != "" {
		return name
	}
	return firstGroup(p.longName, scope)
}

// quoteDataName looks for the symbol object under the quoteData marker and takes the name from it
func (p provider) quoteDataName(body, symbol string) string {
	qd := strings.Index(body, p.quoteDataMarker)
	if qd < 0 {
		return ""
	}
	key := strings.Index(body[qd:], quote(symbol))
	if key < 0 {
		return ""
	}
	key += qd + len(quote(symbol))
	colon := strings.IndexByte(body[key:], ':')
	if colon < 0 {
		return ""
	}
	obj, ok := p.objectAt(body, key+colon)
	if !ok {
		return ""
	}
	return p.nameIn(obj)
}

// metadataName takes the company name from og:title or <title>, dropping "(SYM)" and
// the title's " - Site" suffix
func (p provider) metadataName(body string) string {
	if og := firstGroup(p.ogTitle, body); og != "" {
		og, _, _ = strings.Cut(og, " (")
		return html.UnescapeString(og)
	}
	if t := firstGroup(p.title, body); t != "" {
		t, _, _ = strings.Cut(t, " (")
		t, _, _ = strings.Cut(t, " - ")
		return html.UnescapeString(t)
	}
	return ""
}

// nearest replaces price, change and percent with the page-wide matches closest to anchor.
// A missing name is filled the same way from shortName, then longName.
func (p provider) nearest(body string, anchor int, f *fields) {
	if v := closestGroup(p.price, body, anchor); v != "" {
		f.price = v
	}
	if v := closestGroup(p.change, body, anchor); v != "" {
		f.change = v
	}
	if v := closestGroup(p.percent, body, anchor); v != "" {
		f.percent = v
	}
	if f.name != "" {
		return
	}
	if v := closestGroup(p.shortName, body, anchor); v != "" {
		f.name = v
		return
	}
	f.name = closestGroup(p.longName, body, anchor)
}

// firstMatch is the last resort without any symbol anchor
func (p provider) firstMatch(body string, f *fields) {
	if v := firstGroup(p.price, body); v != "" {
		f.price = v
	}
	if v := firstGroup(p.change, body); v != "" {
		f.change = v
	}
	if v := firstGroup(p.percent, body); v != "" {
		f.percent = v
	}
}

func toQuote(symbol string, f fields) domain.StockQuote {
	if f.price == "" {
		return domain.UnavailableQuote(symbol)
	}
	res := domain.StockQuote{
		Symbol: symbol,
		Price:  "$" + f.price,
		Change: f.change,
		IsUp:   !strings.HasPrefix(f.change, "-"),
		Name:   sanitize.String(f.name),
	}
	if f.percent != "" {
		res.ChangePercent = f.percent + "%"
	}
	return res
}

// NormalizeSymbol trims and upper-cases a ticker symbol
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

func quote(s string) string { return `"` + s + `"` }

func firstGroup(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

// closestGroup returns the capture of the match starting nearest to anchor, earlier match wins a tie
func closestGroup(re *regexp.Regexp, s string, anchor int) string {
	best, bestDist := "", -1
	for _, m := range re.FindAllStringSubmatchIndex(s, -1) {
		dist := m[0] - anchor
		if dist < 0 {
			dist = -dist
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = s[m[2]:m[3]], dist
		}
	}
	return best
}
