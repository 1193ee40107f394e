package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<!DOCTYPE html>
<html><head>
	<title> Example Page </title>
	<link rel="alternate" type="application/rss+xml" title="Main RSS" href="/feed.xml">
	<link rel="Alternate" type="application/atom+xml" href="https://example.com/atom">
	<link rel="stylesheet" href="/style.css">
	<link rel="Image_Src" href="/src.png">
	<meta property="og:image" content="https://example.com/og.png">
	<meta NAME="Twitter:Image" content="https://example.com/tw.png">
</head>
<body>
	<p class="a">first</p>
	<p class="a"> second </p>
	<img alt="no src"><img src="/img1.png"><img src="/img2.png">
	<a href="/News/RSS-Index">feeds</a>
	<div><span>unclosed
</body></html>`

func TestDocument(t *testing.T) {
	d, err := Parse([]byte(page))
	require.NoError(t, err)

	t.Run("text", func(t *testing.T) {
		assert.Equal(t, "Example Page", d.Text("title"))
		assert.Equal(t, "first", d.Text("p.a"))
		assert.Equal(t, "", d.Text("h1"))
	})

	t.Run("texts", func(t *testing.T) {
		assert.Equal(t, []string{"first", "second"}, d.Texts("p.a"))
		assert.Empty(t, d.Texts("h1"))
	})

	t.Run("attr", func(t *testing.T) {
		assert.Equal(t, "/feed.xml", d.Attr(`link[rel="alternate"]`, "href"))
		assert.Equal(t, "/img1.png", d.Attr("img", "src"), "first img with src")
		assert.Equal(t, "", d.Attr("video", "src"))
	})

	t.Run("attr fold", func(t *testing.T) {
		assert.Equal(t, "/News/RSS-Index", d.AttrFold("a", "href", "rss", "feed"))
		assert.Equal(t, "", d.AttrFold("a", "href", "atom"))
	})

	t.Run("meta", func(t *testing.T) {
		assert.Equal(t, "https://example.com/og.png", d.Meta("og:image"))
		assert.Equal(t, "https://example.com/tw.png", d.Meta("twitter:image"), "case-insensitive fallback")
		assert.Equal(t, "", d.Meta("description"))
	})

	t.Run("link href", func(t *testing.T) {
		assert.Equal(t, "/src.png", d.LinkHref("image_src"))
		assert.Equal(t, "/style.css", d.LinkHref("stylesheet"))
		assert.Equal(t, "", d.LinkHref("icon"))
	})

	t.Run("alternates", func(t *testing.T) {
		alts := d.Alternates()
		require.Len(t, alts, 2)
		assert.Equal(t, AlternateLink{Href: "/feed.xml", Title: "Main RSS", Type: "application/rss+xml"}, alts[0])
		assert.Equal(t, "https://example.com/atom", alts[1].Href)
		assert.Equal(t, "application/atom+xml", alts[1].Type)
	})
}

func TestParse_Lenient(t *testing.T) {
	for _, in := range []string{"", "plain text", "<div><p>unclosed", "<<<>>>", "\xff\xfe garbage"} {
		d, err := Parse([]byte(in))
		require.NoError(t, err, in)
		require.NotNil(t, d)
		assert.Equal(t, "", d.Attr("img", "src"))
	}
}
