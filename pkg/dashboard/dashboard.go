// Package dashboard owns the feed, stock and weather services and keeps the latest results in memory.
// Results are replaced on every refresh cycle and never persisted.
package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/infodash/pkg/domain"
	"github.com/umputun/infodash/pkg/feed"
	"github.com/umputun/infodash/pkg/metrics"
)

//go:generate moq -out mocks/feed_fetcher.go -pkg mocks -skip-ensure -fmt goimports . FeedFetcher
//go:generate moq -out mocks/quote_fetcher.go -pkg mocks -skip-ensure -fmt goimports . QuoteFetcher
//go:generate moq -out mocks/weather_fetcher.go -pkg mocks -skip-ensure -fmt goimports . WeatherFetcher

// FeedFetcher aggregates feeds
type FeedFetcher interface {
	FetchAllFeeds(ctx context.Context, urls []string, onComplete func([]domain.FeedItem))
}

// QuoteFetcher aggregates stock quotes
type QuoteFetcher interface {
	FetchAllQuotes(ctx context.Context, symbols []string, onComplete func([]domain.StockQuote))
}

// WeatherFetcher aggregates weather snapshots
type WeatherFetcher interface {
	FetchAllLocations(ctx context.Context, locations []string, onComplete func([]domain.WeatherSnapshot))
}

// Params for New. Sources with Enabled unset are skipped.
type Params struct {
	Feeds     FeedFetcher
	Quotes    QuoteFetcher
	Weather   WeatherFetcher
	Sources   []domain.FeedSource
	Symbols   []string
	Locations []string
	Interval  time.Duration
}

// Snapshot is the latest data of every section with the time each one was refreshed
type Snapshot struct {
	CycleID        string                   `json:"cycle_id"`
	Feeds          []domain.FeedItem        `json:"feeds"`
	Stocks         []domain.StockQuote      `json:"stocks"`
	Weather        []domain.WeatherSnapshot `json:"weather"`
	FeedsUpdated   time.Time                `json:"feeds_updated"`
	StocksUpdated  time.Time                `json:"stocks_updated"`
	WeatherUpdated time.Time                `json:"weather_updated"`
}

// Dashboard refreshes all sections and serves the latest results
type Dashboard struct {
	feeds     FeedFetcher
	quotes    QuoteFetcher
	weather   WeatherFetcher
	sources   []domain.FeedSource
	symbols   []string
	locations []string
	interval  time.Duration

	mu     sync.RWMutex
	latest Snapshot

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

// New makes a Dashboard, the refresh interval defaults to 15 minutes
func New(p Params) *Dashboard {
	if p.Interval == 0 {
		p.Interval = 15 * time.Minute
	}
	return &Dashboard{
		feeds:     p.Feeds,
		quotes:    p.Quotes,
		weather:   p.Weather,
		sources:   p.Sources,
		symbols:   p.Symbols,
		locations: p.Locations,
		interval:  p.Interval,
		latest: Snapshot{
			Feeds:   []domain.FeedItem{},
			Stocks:  []domain.StockQuote{},
			Weather: []domain.WeatherSnapshot{},
		},
	}
}

// FeedURLs returns urls of enabled sources
func (d *Dashboard) FeedURLs() []string {
	res := []string{}
	for _, s := range d.sources {
		if s.Enabled {
			res = append(res, s.URL)
		}
	}
	return res
}

// RefreshFeeds fetches all enabled feeds and stores the result. cb, if not nil, gets the same items.
// It returns immediately.
func (d *Dashboard) RefreshFeeds(ctx context.Context, cb func([]domain.FeedItem)) {
	d.feeds.FetchAllFeeds(ctx, d.FeedURLs(), func(items []domain.FeedItem) {
		d.mu.Lock()
		d.latest.Feeds = items
		d.latest.FeedsUpdated = time.Now()
		d.mu.Unlock()
		metrics.RefreshCycles.WithLabelValues("feeds").Inc()
		if cb != nil {
			cb(items)
		}
	})
}

// RefreshStocks fetches quotes for all symbols and stores the result
func (d *Dashboard) RefreshStocks(ctx context.Context, cb func([]domain.StockQuote)) {
	d.quotes.FetchAllQuotes(ctx, d.symbols, func(quotes []domain.StockQuote) {
		d.mu.Lock()
		d.latest.Stocks = quotes
		d.latest.StocksUpdated = time.Now()
		d.mu.Unlock()
		metrics.RefreshCycles.WithLabelValues("stocks").Inc()
		if cb != nil {
			cb(quotes)
		}
	})
}

// RefreshWeather fetches weather for all locations and stores the result
func (d *Dashboard) RefreshWeather(ctx context.Context, cb func([]domain.WeatherSnapshot)) {
	d.weather.FetchAllLocations(ctx, d.locations, func(res []domain.WeatherSnapshot) {
		d.mu.Lock()
		d.latest.Weather = res
		d.latest.WeatherUpdated = time.Now()
		d.mu.Unlock()
		metrics.RefreshCycles.WithLabelValues("weather").Inc()
		if cb != nil {
			cb(res)
		}
	})
}

// Refresh runs all three refreshes and blocks until each one completed
func (d *Dashboard) Refresh(ctx context.Context) Snapshot {
	return d.refresh(ctx, uuid.NewString())
}

// StartRefresh runs a full refresh in the background and returns its cycle id right away.
// The channel receives the snapshot once all sections are done.
func (d *Dashboard) StartRefresh(ctx context.Context) (cycleID string, done <-chan Snapshot) {
	cycleID = uuid.NewString()
	ch := make(chan Snapshot, 1)
	go func() { ch <- d.refresh(ctx, cycleID) }()
	return cycleID, ch
}

func (d *Dashboard) refresh(ctx context.Context, cycleID string) Snapshot {
	st := time.Now()
	lgr.Printf("[INFO] refresh %s started", cycleID)

	var g errgroup.Group
	g.Go(func() error {
		done := make(chan struct{})
		d.RefreshFeeds(ctx, func(items []domain.FeedItem) {
			lgr.Printf("[DEBUG] refresh %s, %d feed items", cycleID, len(items))
			close(done)
		})
		<-done
		return nil
	})
	g.Go(func() error {
		done := make(chan struct{})
		d.RefreshStocks(ctx, func(quotes []domain.StockQuote) {
			lgr.Printf("[DEBUG] refresh %s, %d quotes", cycleID, len(quotes))
			close(done)
		})
		<-done
		return nil
	})
	g.Go(func() error {
		done := make(chan struct{})
		d.RefreshWeather(ctx, func(res []domain.WeatherSnapshot) {
			lgr.Printf("[DEBUG] refresh %s, %d weather locations", cycleID, len(res))
			close(done)
		})
		<-done
		return nil
	})
	_ = g.Wait() // tasks never fail

	d.mu.Lock()
	d.latest.CycleID = cycleID
	d.mu.Unlock()
	lgr.Printf("[INFO] refresh %s completed in %v", cycleID, time.Since(st).Round(time.Millisecond))
	return d.Latest()
}

// Latest returns a copy of the current snapshot
func (d *Dashboard) Latest() Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	res := d.latest
	res.Feeds = append([]domain.FeedItem{}, d.latest.Feeds...)
	res.Stocks = append([]domain.StockQuote{}, d.latest.Stocks...)
	res.Weather = append([]domain.WeatherSnapshot{}, d.latest.Weather...)
	return res
}

// FeedsByCategory returns the latest items whose source belongs to an enabled feed of category.
// Items are matched by source host, an empty category returns all items.
func (d *Dashboard) FeedsByCategory(category string) []domain.FeedItem {
	items := d.Latest().Feeds
	if category == "" {
		return items
	}

	hosts := map[string]bool{}
	for _, s := range d.sources {
		if s.Enabled && s.Category == category {
			hosts[feed.SourceName(feed.NormalizeURL(s.URL))] = true
		}
	}
	res := []domain.FeedItem{}
	for _, it := range items {
		if hosts[it.Source] {
			res = append(res, it)
		}
	}
	return res
}

// Run refreshes immediately and then on every interval tick until ctx is done
func (d *Dashboard) Run(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	d.Refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.Refresh(ctx)
		}
	}
}

// Start runs the refresh loop in background
func (d *Dashboard) Start(ctx context.Context) {
	ctx, d.cancel = context.WithCancel(ctx)
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.Run(ctx)
	}()
	lgr.Printf("[INFO] dashboard started with refresh interval %v", d.interval)
}

// Stop cancels the refresh loop and waits for it to finish
func (d *Dashboard) Stop() {
	lgr.Printf("[INFO] stopping dashboard...")
	if d.cancel != nil {
		d.cancel()
	}
	d.wg.Wait()
	lgr.Printf("[INFO] dashboard stopped")
}
