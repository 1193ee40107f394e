package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/infodash/pkg/feed/mocks"
	"github.com/umputun/infodash/pkg/httpclient"
)

var pngIcon = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestFavicons_Icon(t *testing.T) {
	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Query().Get("domain") != "example.com" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(pngIcon)
	}))
	defer ts.Close()

	f := NewFavicons(httpclient.New(httpclient.Config{}), ts.URL+"/s2/favicons?domain=%s&sz=32")

	icon, ok := f.Icon(context.Background(), "https://Example.com/some/article")
	require.True(t, ok)
	assert.Equal(t, pngIcon, icon.Data)
	assert.Equal(t, "image/png", icon.ContentType)

	// bare host hits the cache
	icon, ok = f.Icon(context.Background(), "example.com")
	require.True(t, ok)
	assert.Equal(t, pngIcon, icon.Data)
	assert.Equal(t, int32(1), hits.Load())

	_, ok = f.Icon(context.Background(), "unknown.example.org")
	assert.False(t, ok)
	_, ok = f.Icon(context.Background(), "unknown.example.org")
	assert.False(t, ok)
	assert.Equal(t, int32(3), hits.Load(), "misses are not cached")

	_, ok = f.Icon(context.Background(), "")
	assert.False(t, ok)
	assert.Equal(t, int32(3), hits.Load())
}

func TestFavicons_Prefetch(t *testing.T) {
	var release []func()
	getter := &mocks.IconGetterMock{
		GetAsyncFunc: func(_ context.Context, url string, cb func(httpclient.Response)) {
			resp := httpclient.Response{StatusCode: 200, Success: true, Body: string(pngIcon),
				Headers: map[string]string{"Content-Type": "image/x-icon"}}
			if url == "https://icons.example.com/?d=broken.example.com" {
				resp = httpclient.Response{StatusCode: 404}
			}
			release = append(release, func() { cb(resp) })
		},
		GetBytesFunc: func(context.Context, string) []byte { return nil },
	}
	f := NewFavicons(getter, "https://icons.example.com/?d=%s")

	f.Prefetch(context.Background(), []string{"a.example.com", "https://a.example.com/x", "broken.example.com", ""})
	require.Len(t, getter.GetAsyncCalls(), 2, "duplicate and empty hosts skipped")
	assert.Equal(t, "https://icons.example.com/?d=a.example.com", getter.GetAsyncCalls()[0].URL)

	// in-flight hosts are not requested again
	f.Prefetch(context.Background(), []string{"a.example.com"})
	require.Len(t, getter.GetAsyncCalls(), 2)

	for _, r := range release {
		r()
	}

	icon, ok := f.Icon(context.Background(), "a.example.com")
	require.True(t, ok)
	assert.Equal(t, "image/x-icon", icon.ContentType)
	assert.Equal(t, pngIcon, icon.Data)
	assert.Empty(t, getter.GetBytesCalls(), "served from cache")

	_, ok = f.Icon(context.Background(), "broken.example.com")
	assert.False(t, ok)
	require.Len(t, getter.GetBytesCalls(), 1)

	// failed prefetch is retried
	f.Prefetch(context.Background(), []string{"broken.example.com", "a.example.com"})
	assert.Len(t, getter.GetAsyncCalls(), 3)
}

func TestFavicons_PrefetchWithClient(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(pngIcon)
	}))
	defer ts.Close()

	getter := httpclient.New(httpclient.Config{})
	f := NewFavicons(getter, ts.URL+"/icon?host=%s")
	f.Prefetch(context.Background(), []string{"news.example.com"})

	require.Eventually(t, func() bool {
		_, ok := f.cached("news.example.com")
		return ok
	}, 5*time.Second, 10*time.Millisecond)
	icon, ok := f.Icon(context.Background(), "news.example.com")
	require.True(t, ok)
	assert.Equal(t, "image/png", icon.ContentType)
}

func TestFaviconHost(t *testing.T) {
	assert.Equal(t, "example.com", FaviconHost("https://Example.com/a/b"))
	assert.Equal(t, "example.com", FaviconHost("example.com"))
	assert.Equal(t, "example.com", FaviconHost(" example.com/feed "))
	assert.Equal(t, "", FaviconHost(""))
}
