// Package markup parses HTML pages into a queryable document and extracts
// normalized records from RSS and Atom feeds.
package markup

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Document is a parsed HTML page. Queries are CSS selectors, e.g. `link[rel="alternate"]`,
// `meta[property="og:image"]`, `img` or `[href*="rss"]`.
type Document struct {
	doc *goquery.Document
}

// Parse builds a document from html bytes. The parser is lenient and recovers from
// malformed markup, it fails only if the input can't be read.
func Parse(b []byte) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &Document{doc: doc}, nil
}

// Text returns trimmed concatenated text of the first match
func (d *Document) Text(selector string) string {
	return strings.TrimSpace(d.doc.Find(selector).First().Text())
}

// Texts returns trimmed text of every match
func (d *Document) Texts(selector string) []string {
	res := []string{}
	d.doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		res = append(res, strings.TrimSpace(s.Text()))
	})
	return res
}

// Attr returns the attribute of the first match having it, empty if none
func (d *Document) Attr(selector, attr string) string {
	var res string
	d.doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if v, ok := s.Attr(attr); ok && strings.TrimSpace(v) != "" {
			res = strings.TrimSpace(v)
			return false
		}
		return true
	})
	return res
}

// AttrFold returns the attribute of the first match whose value contains any of
// substrs, compared case-insensitively
func (d *Document) AttrFold(selector, attr string, substrs ...string) string {
	var res string
	d.doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		v, ok := s.Attr(attr)
		if !ok {
			return true
		}
		lv := strings.ToLower(v)
		for _, sub := range substrs {
			if strings.Contains(lv, strings.ToLower(sub)) {
				res = strings.TrimSpace(v)
				return false
			}
		}
		return true
	})
	return res
}

// Meta returns content of the first <meta> with property or name equal to key.
// Exact match is tried first, then a case-insensitive scan.
func (d *Document) Meta(key string) string {
	for _, sel := range []string{fmt.Sprintf("meta[property=%q]", key), fmt.Sprintf("meta[name=%q]", key)} {
		if v := d.Attr(sel, "content"); v != "" {
			return v
		}
	}

	var res string
	d.doc.Find("meta").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		prop, _ := s.Attr("property")
		name, _ := s.Attr("name")
		if !strings.EqualFold(prop, key) && !strings.EqualFold(name, key) {
			return true
		}
		if v, ok := s.Attr("content"); ok && strings.TrimSpace(v) != "" {
			res = strings.TrimSpace(v)
			return false
		}
		return true
	})
	return res
}

// LinkHref returns href of the first <link> with the given rel, case-insensitive
func (d *Document) LinkHref(rel string) string {
	if v := d.Attr(fmt.Sprintf("link[rel=%q]", rel), "href"); v != "" {
		return v
	}
	var res string
	d.doc.Find("link").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		r, _ := s.Attr("rel")
		if !strings.EqualFold(strings.TrimSpace(r), rel) {
			return true
		}
		if v, ok := s.Attr("href"); ok && strings.TrimSpace(v) != "" {
			res = strings.TrimSpace(v)
			return false
		}
		return true
	})
	return res
}

// AlternateLink describes a <link rel="alternate"> element
type AlternateLink struct {
	Href  string
	Title string
	Type  string
}

// Alternates returns all <link rel="alternate"> elements with a non-empty href in document order
func (d *Document) Alternates() []AlternateLink {
	res := []AlternateLink{}
	d.doc.Find("link").Each(func(_ int, s *goquery.Selection) {
		rel, _ := s.Attr("rel")
		if !strings.EqualFold(strings.TrimSpace(rel), "alternate") {
			return
		}
		href, _ := s.Attr("href")
		if strings.TrimSpace(href) == "" {
			return
		}
		title, _ := s.Attr("title")
		typ, _ := s.Attr("type")
		res = append(res, AlternateLink{Href: strings.TrimSpace(href), Title: strings.TrimSpace(title), Type: strings.TrimSpace(typ)})
	})
	return res
}
