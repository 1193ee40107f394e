package server

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/infodash/pkg/dashboard"
	"github.com/umputun/infodash/pkg/domain"
	"github.com/umputun/infodash/server/mocks"
)

func testConfig(listen string) *mocks.ConfigProviderMock {
	return &mocks.ConfigProviderMock{
		GetServerConfigFunc: func() (string, time.Duration) {
			return listen, 30 * time.Second
		},
	}
}

func testFavicons() *mocks.FaviconProviderMock {
	return &mocks.FaviconProviderMock{
		IconFunc:     func(context.Context, string) (domain.Favicon, bool) { return domain.Favicon{}, false },
		PrefetchFunc: func(context.Context, []string) {},
	}
}

func testDashboard() *mocks.DashboardMock {
	snap := dashboard.Snapshot{
		CycleID: "cycle-1",
		Feeds: []domain.FeedItem{
			{Title: "first", Link: "https://a.example.com/1", Source: "a.example.com"},
			{Title: "second", Link: "https://b.example.com/2", Source: "b.example.com"},
		},
		Stocks:  []domain.StockQuote{{Symbol: "AAPL", Price: "$190.50", Change: "1.25", ChangePercent: "0.66%", IsUp: true}},
		Weather: []domain.WeatherSnapshot{{Location: "London", City: "London", Temperature: "15°C"}},
	}
	return &mocks.DashboardMock{
		LatestFunc: func() dashboard.Snapshot { return snap },
		FeedsByCategoryFunc: func(category string) []domain.FeedItem {
			if category == "" {
				return snap.Feeds
			}
			if category == "tech" {
				return snap.Feeds[:1]
			}
			return []domain.FeedItem{}
		},
		StartRefreshFunc: func(context.Context) (string, <-chan dashboard.Snapshot) {
			next := snap
			next.CycleID = "cycle-2"
			ch := make(chan dashboard.Snapshot, 1)
			ch <- next
			return next.CycleID, ch
		},
	}
}

func TestServer_New(t *testing.T) {
	srv := New(testConfig(":8080"), &mocks.DashboardMock{}, &mocks.StateStoreMock{},
		&mocks.DiscovererMock{}, testFavicons(), "1.0.0", false)
	assert.NotNil(t, srv)
	assert.Equal(t, "1.0.0", srv.version)
	assert.False(t, srv.debug)
	assert.NotNil(t, srv.router)
}

func TestServer_Run(t *testing.T) {
	// find free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())

	srv := New(testConfig(fmt.Sprintf("127.0.0.1:%d", port)), testDashboard(), &mocks.StateStoreMock{},
		&mocks.DiscovererMock{}, testFavicons(), "1.0.0", false)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	// wait for server to start
	require.Eventually(t, func() bool {
		resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/ping", port))
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/ping", port))
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "pong", string(body))
	assert.Equal(t, "infodash", resp.Header.Get("App-Name"))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServer_RunSlowRefresh(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())

	cfg := &mocks.ConfigProviderMock{
		GetServerConfigFunc: func() (string, time.Duration) {
			return fmt.Sprintf("127.0.0.1:%d", port), time.Second
		},
	}
	dash := testDashboard()
	dash.StartRefreshFunc = func(context.Context) (string, <-chan dashboard.Snapshot) {
		ch := make(chan dashboard.Snapshot, 1)
		go func() {
			time.Sleep(1500 * time.Millisecond) // longer than the write timeout
			ch <- dashboard.Snapshot{CycleID: "slow-cycle"}
		}()
		return "slow-cycle", ch
	}
	srv := New(cfg, dash, &mocks.StateStoreMock{}, &mocks.DiscovererMock{}, testFavicons(), "1.0.0", false)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	base := fmt.Sprintf("http://127.0.0.1:%d", port)
	require.Eventually(t, func() bool {
		resp, err := http.Get(base + "/ping")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	resp, err := http.Post(base+"/api/v1/refresh", "application/json", http.NoBody)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.JSONEq(t, `{"cycle_id":"slow-cycle","status":"running"}`, string(body))
	assert.Len(t, dash.StartRefreshCalls(), 1)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServer_Routes(t *testing.T) {
	state := &mocks.StateStoreMock{
		StatesFunc: func(context.Context, []string) (map[string]domain.ArticleState, error) {
			return map[string]domain.ArticleState{}, nil
		},
	}
	disc := &mocks.DiscovererMock{
		DiscoverFeedsFunc: func(context.Context, string) []domain.DiscoveredFeed { return nil },
	}
	srv := New(testConfig(":8080"), testDashboard(), state, disc, testFavicons(), "1.0.0", true)
	ts := httptest.NewServer(srv.router)
	defer ts.Close()

	tests := []struct {
		method, path string
		code         int
	}{
		{http.MethodGet, "/api/v1/status", http.StatusOK},
		{http.MethodGet, "/api/v1/feeds", http.StatusOK},
		{http.MethodGet, "/api/v1/stocks", http.StatusOK},
		{http.MethodGet, "/api/v1/weather", http.StatusOK},
		{http.MethodPost, "/api/v1/refresh", http.StatusOK},
		{http.MethodGet, "/api/v1/discover?url=example.com", http.StatusOK},
		{http.MethodGet, "/api/v1/favicon?host=example.com", http.StatusNotFound},
		{http.MethodGet, "/api/v1/unknown", http.StatusNotFound},
		{http.MethodGet, "/metrics", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req, err := http.NewRequest(tt.method, ts.URL+tt.path, http.NoBody)
			require.NoError(t, err)
			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.code, resp.StatusCode)
		})
	}
}

func TestServer_Metrics(t *testing.T) {
	srv := New(testConfig(":8080"), testDashboard(), &mocks.StateStoreMock{},
		&mocks.DiscovererMock{}, testFavicons(), "1.0.0", false)
	req := httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody)
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}
