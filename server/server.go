package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/umputun/infodash/pkg/dashboard"
	"github.com/umputun/infodash/pkg/domain"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/dashboard.go -pkg mocks -skip-ensure -fmt goimports . Dashboard
//go:generate moq -out mocks/state.go -pkg mocks -skip-ensure -fmt goimports . StateStore
//go:generate moq -out mocks/discoverer.go -pkg mocks -skip-ensure -fmt goimports . Discoverer
//go:generate moq -out mocks/favicons.go -pkg mocks -skip-ensure -fmt goimports . FaviconProvider

// Server represents HTTP server instance
type Server struct {
	config     ConfigProvider
	dashboard  Dashboard
	state      StateStore
	discoverer Discoverer
	favicons   FaviconProvider
	version    string
	debug      bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Dashboard provides the latest aggregated data and on-demand refresh
type Dashboard interface {
	Latest() dashboard.Snapshot
	FeedsByCategory(category string) []domain.FeedItem
	StartRefresh(ctx context.Context) (string, <-chan dashboard.Snapshot)
}

// StateStore keeps read and saved flags of articles
type StateStore interface {
	MarkRead(ctx context.Context, link string) error
	MarkUnread(ctx context.Context, link string) error
	Save(ctx context.Context, link string) error
	Unsave(ctx context.Context, link string) error
	States(ctx context.Context, links []string) (map[string]domain.ArticleState, error)
	SavedLinks(ctx context.Context) ([]string, error)
}

// Discoverer lists feeds advertised by a page
type Discoverer interface {
	DiscoverFeeds(ctx context.Context, rawURL string) []domain.DiscoveredFeed
}

// FaviconProvider serves site icons by host
type FaviconProvider interface {
	Icon(ctx context.Context, host string) (domain.Favicon, bool)
	Prefetch(ctx context.Context, hosts []string)
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
}

// New initializes a new server instance
func New(cfg ConfigProvider, dash Dashboard, state StateStore, disc Discoverer, icons FaviconProvider,
	version string, debug bool) *Server {
	s := &Server{
		config:     cfg,
		dashboard:  dash,
		state:      state,
		discoverer: disc,
		favicons:   icons,
		version:    version,
		debug:      debug,
		router:     routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	log.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: timeout,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		s.lock.Lock()
		defer s.lock.Unlock()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("infodash", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(64 * 1024))
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("GET /feeds", s.feedsHandler)
		r.HandleFunc("GET /stocks", s.stocksHandler)
		r.HandleFunc("GET /weather", s.weatherHandler)
		r.HandleFunc("POST /refresh", s.refreshHandler)
		r.HandleFunc("GET /discover", s.discoverHandler)
		r.HandleFunc("GET /favicon", s.faviconHandler)

		r.HandleFunc("POST /articles/read", s.markReadHandler)
		r.HandleFunc("DELETE /articles/read", s.markUnreadHandler)
		r.HandleFunc("POST /articles/saved", s.saveHandler)
		r.HandleFunc("DELETE /articles/saved", s.unsaveHandler)
	})

	s.router.Handle("GET /metrics", promhttp.Handler())
}
