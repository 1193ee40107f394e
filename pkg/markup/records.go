package markup

import (
	"bytes"
	"encoding/xml"
	"errors"
	"html"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html/charset"

	"github.com/umputun/infodash/pkg/domain"
	"github.com/umputun/infodash/pkg/sanitize"
)

// MaxDescriptionLen is the description limit in characters, longer text gets "..." appended
const MaxDescriptionLen = 200

const (
	nsAtom    = "http://www.w3.org/2005/Atom"
	nsMedia   = "http://search.yahoo.com/mrss/"
	nsContent = "http://purl.org/rss/1.0/modules/content/"
)

var (
	imgSrcRe = regexp.MustCompile(`(?i)<img[^>]+src\s*=\s*["']([^"']+)["']`)
	tagRe    = regexp.MustCompile(`<[^>]*>`)

	xmlEncodingRe = regexp.MustCompile(`^\s*<\?xml[^>]*encoding\s*=\s*["']([^"']+)["']`)

	entityReplacer = strings.NewReplacer(
		"&amp;", "&", "&lt;", "<", "&gt;", ">", "&quot;", `"`, "&nbsp;", " ", "&#39;", "'",
	)

	plainText = bluemonday.StrictPolicy()
)

// Record is a single feed entry as extracted from the source, nil fields were not present
type Record struct {
	Title       *string
	Link        *string
	Description *string
	PubDate     *string
	ImageURL    *string
	Author      *string
}

// Item validates the record and converts it to a FeedItem. Records without a title are rejected.
func (r Record) Item(source string) (domain.FeedItem, bool) {
	title := deref(r.Title)
	if title == "" {
		return domain.FeedItem{}, false
	}
	return domain.FeedItem{
		Title:       title,
		Link:        deref(r.Link),
		Description: deref(r.Description),
		PubDate:     deref(r.PubDate),
		Source:      source,
		ImageURL:    deref(r.ImageURL),
		Author:      deref(r.Author),
	}, true
}

// ExtractFeedItems extracts records from an RSS or Atom body and converts them to feed items
func ExtractFeedItems(b []byte, source string) []domain.FeedItem {
	records := ExtractFeedRecords(b)
	res := make([]domain.FeedItem, 0, len(records))
	for _, r := range records {
		if item, ok := r.Item(source); ok {
			res = append(res, item)
		}
	}
	return res
}

// ExtractFeedRecords normalizes RSS 2.0/1.0 items or, if the document has none, Atom entries.
// JSON feeds are handled too. Malformed input yields an empty list, never an error.
// Records with empty title are not returned.
func ExtractFeedRecords(b []byte) []Record {
	if SniffFeedType(b) == FeedJSON {
		return extractJSONFeed(b)
	}

	root := parseXMLTree(b)
	if root == nil {
		return []Record{}
	}

	entries := root.findAll(func(n *xnode) bool { return n.name.Local == "item" })
	if len(entries) == 0 {
		entries = root.findAll(func(n *xnode) bool {
			return n.name.Local == "entry" && (n.name.Space == nsAtom || n.name.Space == "" || n.name.Space == "atom")
		})
	}

	res := make([]Record, 0, len(entries))
	for _, e := range entries {
		if rec, ok := recordFromNode(e); ok {
			res = append(res, rec)
		}
	}
	return res
}

// recordFromNode maps immediate children of an item/entry node to record fields
func recordFromNode(n *xnode) (Record, bool) {
	var rec Record
	var descHTML, altLink string

	for _, c := range n.children {
		text := c.text()
		switch local := c.name.Local; {
		case local == "title":
			rec.Title = ptr(cleanText(plainContent(c)))
		case local == "link":
			if href := c.attr("href"); href != "" {
				rel := c.attr("rel")
				if altLink == "" && (rel == "" || rel == "alternate") {
					altLink = href
				}
				if rec.Link == nil {
					rec.Link = ptr(href)
				}
				continue
			}
			if t := strings.TrimSpace(text); t != "" {
				rec.Link = ptr(t)
			}
		case local == "description" || local == "summary":
			rec.Description = ptr(c.inner())
			descHTML = c.inner()
		case local == "encoded" && inNS(c, nsContent, "content"),
			local == "content" && inNS(c, nsAtom, "") && c.attr("src") == "": // full html body
			descHTML = c.inner()
			if deref(rec.Description) == "" {
				rec.Description = ptr(descHTML)
			}
		case local == "pubDate" || local == "published" || local == "updated" || local == "date":
			rec.PubDate = ptr(strings.TrimSpace(text))
		case local == "creator" || local == "author":
			author := plainContent(c)
			if name := c.child("name"); name != nil { // atom author element
				author = name.text()
			}
			rec.Author = ptr(cleanText(author))
		case local == "enclosure":
			if strings.Contains(c.attr("type"), "image") && c.attr("url") != "" {
				rec.ImageURL = ptr(c.attr("url"))
			}
		case (local == "thumbnail" || local == "content") && inNS(c, nsMedia, "media"):
			if u := c.attr("url"); u != "" {
				rec.ImageURL = ptr(u)
			}
		case local == "image":
			if href := c.attr("href"); href != "" {
				rec.ImageURL = ptr(href)
			} else if t := strings.TrimSpace(text); strings.HasPrefix(t, "http") {
				rec.ImageURL = ptr(t)
			}
		}
	}

	if altLink != "" {
		rec.Link = ptr(altLink)
	}

	if deref(rec.ImageURL) == "" && descHTML != "" {
		if m := imgSrcRe.FindStringSubmatch(descHTML); len(m) > 1 {
			rec.ImageURL = ptr(m[1])
		}
	}

	if rec.Description != nil {
		rec.Description = ptr(StripDescription(*rec.Description))
	}

	if deref(rec.Title) == "" {
		return Record{}, false
	}
	return rec, true
}

// StripDescription removes tags, decodes the common named entities, trims and truncates to
// MaxDescriptionLen characters with "..." appended. The result is valid UTF-8.
func StripDescription(s string) string {
	s = tagRe.ReplaceAllString(s, "")
	s = entityReplacer.Replace(s)
	s = strings.TrimSpace(sanitize.String(s))
	if utf8.RuneCountInString(s) > MaxDescriptionLen {
		s = string([]rune(s)[:MaxDescriptionLen]) + "..."
	}
	return s
}

// cleanText collapses whitespace and decodes entities left over from double escaping.
// Decoded text is kept as is, "Use <video> tags" stays intact.
func cleanText(s string) string {
	s = html.UnescapeString(s)
	return sanitize.String(strings.Join(strings.Fields(s), " "))
}

// plainContent returns the text of a title or author node. Nodes with child elements,
// like atom type="xhtml" titles, are reduced to plain text with the strict policy.
func plainContent(n *xnode) string {
	if len(n.children) == 0 {
		return n.text()
	}
	return html.UnescapeString(plainText.Sanitize(n.inner()))
}

// xnode is a minimal element tree built from a lenient xml decode.
// Only capture nodes keep their descendant text and markup, other nodes have empty buffers.
type xnode struct {
	name     xml.Name
	attrs    []xml.Attr
	children []*xnode
	capture  bool
	textBuf  strings.Builder // descendant character data
	innerBuf strings.Builder // descendant markup, re-serialized
}

// captures reports whether an element opened under parent keeps its content.
// These are the fields of item/entry nodes and the name of an atom author.
func captures(parent *xnode, local string) bool {
	switch parent.name.Local {
	case "item", "entry":
		return true
	}
	return parent.capture && local == "name"
}

func (n *xnode) text() string  { return n.textBuf.String() }
func (n *xnode) inner() string { return n.innerBuf.String() }

func (n *xnode) attr(name string) string {
	for _, a := range n.attrs {
		if a.Name.Local == name {
			return strings.TrimSpace(a.Value)
		}
	}
	return ""
}

func (n *xnode) child(local string) *xnode {
	for _, c := range n.children {
		if c.name.Local == local {
			return c
		}
	}
	return nil
}

// findAll walks the tree depth-first and returns matching nodes in document order
func (n *xnode) findAll(match func(*xnode) bool) []*xnode {
	var res []*xnode
	var walk func(*xnode)
	walk = func(x *xnode) {
		for _, c := range x.children {
			if match(c) {
				res = append(res, c)
			}
			walk(c)
		}
	}
	walk(n)
	return res
}

// parseXMLTree decodes b leniently, unknown entities are resolved with the html entity table
// and non-utf8 charsets are converted. Returns whatever was built before a fatal syntax error.
func parseXMLTree(b []byte) *xnode {
	if m := xmlEncodingRe.FindSubmatch(b); m == nil || strings.EqualFold(string(m[1]), "utf-8") {
		b = []byte(sanitize.UTF8(b)) // decoder rejects invalid utf-8
	}
	dec := xml.NewDecoder(bytes.NewReader(b))
	dec.Strict = false
	dec.Entity = xml.HTMLEntity
	dec.CharsetReader = charset.NewReaderLabel

	root := &xnode{}
	stack := []*xnode{root}
	var caps []*xnode // open nodes collecting text and inner markup
	seen := false

	for {
		tok, err := dec.Token()
		if err != nil {
			if !errors.Is(err, io.EOF) && !seen {
				return nil
			}
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			seen = true
			parent := stack[len(stack)-1]
			el := &xnode{name: t.Name, attrs: t.Attr, capture: captures(parent, t.Name.Local)}
			if len(caps) > 0 {
				tag := startTag(t)
				for _, c := range caps {
					c.innerBuf.WriteString(tag)
				}
			}
			parent.children = append(parent.children, el)
			stack = append(stack, el)
			if el.capture {
				caps = append(caps, el)
			}
		case xml.EndElement:
			if len(stack) > 1 {
				closed := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if len(caps) > 0 && caps[len(caps)-1] == closed {
					caps = caps[:len(caps)-1]
				}
			}
			for _, c := range caps {
				c.innerBuf.WriteString("</" + t.Name.Local + ">")
			}
		case xml.CharData:
			for _, c := range caps {
				c.textBuf.Write(t)
				c.innerBuf.Write(t)
			}
		}
	}

	if !seen {
		return nil
	}
	return root
}

func startTag(t xml.StartElement) string {
	var sb strings.Builder
	sb.WriteString("<" + t.Name.Local)
	for _, a := range t.Attr {
		sb.WriteString(" " + a.Name.Local + `="` + strings.ReplaceAll(a.Value, `"`, "&quot;") + `"`)
	}
	sb.WriteString(">")
	return sb.String()
}

// inNS reports whether the node belongs to namespace uri, or to the bare prefix when it wasn't declared
func inNS(n *xnode, uri, prefix string) bool {
	return n.name.Space == uri || n.name.Space == prefix
}

func ptr(s string) *string { return &s }

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
