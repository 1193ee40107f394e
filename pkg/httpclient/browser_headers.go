package httpclient

import (
	"math/rand"
	"net/http"
)

// acceptLanguages contains common browser Accept-Language values
var acceptLanguages = []string{
	"en-US,en;q=0.9",
	"en-GB,en;q=0.9",
	"en-US,en;q=0.9,es;q=0.8",
	"en-US,en;q=0.9,fr;q=0.8",
	"en-US,en;q=0.9,de;q=0.8",
	"en-US,en;q=0.9,ja;q=0.8",
	"en-US,en;q=0.9,ru;q=0.8",
	"de-DE,de;q=0.9,en;q=0.8",
}

// acceptAny covers pages, feeds and json payloads, the client doesn't know in advance what it fetches
const acceptAny = "text/html,application/xhtml+xml,application/rss+xml,application/atom+xml," +
	"application/xml;q=0.9,text/xml;q=0.8,application/json;q=0.8,*/*;q=0.5"

// addBrowserHeaders adds browser-like headers with some randomization.
// Accept-Encoding is left to the transport, setting it here disables transparent gzip decoding.
func addBrowserHeaders(req *http.Request) {
	req.Header.Set("Accept", acceptAny)
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	// randomized language
	req.Header.Set("Accept-Language", acceptLanguages[rand.Intn(len(acceptLanguages))]) //nolint:gosec // non-cryptographic randomness is fine for header variation

	// dnt - 30% chance of being set
	if rand.Float32() < 0.3 { //nolint:gosec // non-cryptographic randomness is fine
		req.Header.Set("DNT", "1")
	}

	req.Header.Set("Sec-Fetch-Dest", "document")
	req.Header.Set("Sec-Fetch-Mode", "navigate")
	req.Header.Set("Sec-Fetch-Site", "none")
	req.Header.Set("Connection", "keep-alive")
}
