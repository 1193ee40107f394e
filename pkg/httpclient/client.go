// Package httpclient performs GET requests for all fetchers. Failures are reported
// in the Response value rather than returned as errors, callers decide how to degrade.
package httpclient

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/infodash/pkg/metrics"
)

// DefaultUserAgent is sent when no user agent is configured, some providers reject blank agents
const DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36"

const (
	defaultTimeout  = 30 * time.Second
	defaultMaxBody  = 10 * 1024 * 1024
	maxRedirects    = 10
	transportErrMsg = "transport error"
)

// Response is the result of a single GET request
type Response struct {
	StatusCode int
	Body       string
	Headers    map[string]string
	Success    bool   // transport completed and status in [200,300)
	Error      string // transport failure message, empty otherwise
}

// Config defines client parameters, zero values are replaced by defaults
type Config struct {
	Timeout   time.Duration
	UserAgent string
	MaxBody   int64
}

// Client is a GET-only http client with browser-like headers
type Client struct {
	client    *http.Client
	userAgent string
	maxBody   int64
}

// New makes a client with the given config
func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.MaxBody <= 0 {
		cfg.MaxBody = defaultMaxBody
	}

	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: 10 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &Client{
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
			CheckRedirect: func(_ *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return nil
			},
		},
		userAgent: cfg.UserAgent,
		maxBody:   cfg.MaxBody,
	}
}

// Get fetches the url and returns the body as text. It never returns an error,
// check Response.Success and Response.Error instead.
func (c *Client) Get(ctx context.Context, u string) Response {
	status, body, headers, err := c.do(ctx, u)
	if err != nil {
		lgr.Printf("[DEBUG] get %s failed: %v", u, err)
		return Response{StatusCode: status, Headers: headers, Error: err.Error()}
	}
	return Response{
		StatusCode: status,
		Body:       string(body),
		Headers:    headers,
		Success:    status >= 200 && status < 300,
	}
}

// GetBytes fetches binary payloads (images, favicons) with no charset assumptions.
// Returns nil on any failure including non-2xx status.
func (c *Client) GetBytes(ctx context.Context, u string) []byte {
	status, body, _, err := c.do(ctx, u)
	if err != nil || status < 200 || status >= 300 {
		return nil
	}
	return body
}

// GetAsync runs Get in a separate goroutine and passes the result to cb. It doesn't block the caller.
func (c *Client) GetAsync(ctx context.Context, u string, cb func(Response)) {
	go func() {
		cb(c.Get(ctx, u))
	}()
}

func (c *Client) do(ctx context.Context, u string) (status int, body []byte, headers map[string]string, err error) {
	host := hostLabel(u)
	st := time.Now()
	defer func() { metrics.FetchDuration.WithLabelValues(host).Observe(time.Since(st).Seconds()) }()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		metrics.FetchRequests.WithLabelValues(host, "transport_error").Inc()
		return 0, nil, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	addBrowserHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		metrics.FetchRequests.WithLabelValues(host, "transport_error").Inc()
		return 0, nil, nil, fmt.Errorf("%s: %w", transportErrMsg, err)
	}
	defer resp.Body.Close()

	headers = captureHeaders(resp.Header)
	body, err = io.ReadAll(io.LimitReader(resp.Body, c.maxBody))
	if err != nil {
		metrics.FetchRequests.WithLabelValues(host, "transport_error").Inc()
		return resp.StatusCode, nil, headers, fmt.Errorf("read body: %w", err)
	}

	outcome := "ok"
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		outcome = "http_error"
	}
	metrics.FetchRequests.WithLabelValues(host, outcome).Inc()
	return resp.StatusCode, body, headers, nil
}

// captureHeaders flattens response headers, keys and values trimmed, the last value wins on duplicates
func captureHeaders(h http.Header) map[string]string {
	res := make(map[string]string, len(h))
	for k, vv := range h {
		if len(vv) == 0 {
			continue
		}
		res[strings.TrimSpace(k)] = strings.TrimSpace(vv[len(vv)-1])
	}
	return res
}

func hostLabel(u string) string {
	pu, err := url.Parse(u)
	if err != nil || pu.Host == "" {
		return "invalid"
	}
	return pu.Hostname()
}
