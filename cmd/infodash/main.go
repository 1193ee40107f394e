package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/infodash/pkg/config"
	"github.com/umputun/infodash/pkg/dashboard"
	"github.com/umputun/infodash/pkg/feed"
	"github.com/umputun/infodash/pkg/httpclient"
	"github.com/umputun/infodash/pkg/state"
	"github.com/umputun/infodash/pkg/stock"
	"github.com/umputun/infodash/pkg/weather"
	"github.com/umputun/infodash/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" description:"config file, built-in defaults if not set"`
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`

	// one-shot commands, serve mode if none set
	Once     bool     `long:"once" description:"refresh once and print the dashboard"`
	Feed     []string `long:"feed" description:"fetch feed by url, page urls are discovered"`
	Discover []string `long:"discover" description:"list feeds advertised by page url"`
	Stock    []string `long:"stock" description:"fetch quote for symbol"`
	Weather  []string `long:"weather" description:"fetch weather for location, auto for ip geolocation"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	if opts.NoColor {
		color.NoColor = true
	}
	setupLog(opts.Debug)

	log.Printf("[INFO] starting infodash version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts, os.Stdout)
	cancel()

	if err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}

	log.Print("[INFO] shutdown complete")
}

// services are fetchers built from config and shared by all modes
type services struct {
	feeds    *feed.Service
	quotes   *stock.Scraper
	weather  *weather.Service
	favicons *feed.Favicons
}

func newServices(cfg *config.Config) services {
	client := httpclient.New(httpclient.Config{
		Timeout:   cfg.HTTP.Timeout,
		UserAgent: cfg.HTTP.UserAgent,
		MaxBody:   cfg.HTTP.MaxBody,
	})

	var images feed.ImageFinder
	if !cfg.Discovery.SkipImages {
		images = feed.NewImageResolver(client, cfg.Discovery.UseExtractor)
	}

	return services{
		feeds: feed.NewService(feed.Params{
			Client:        client,
			Images:        images,
			MaxDiscovered: cfg.Discovery.MaxItems,
			FallbackPaths: cfg.Discovery.FallbackPaths,
		}),
		quotes:   stock.NewScraper(stock.Params{Client: client, QuoteURL: cfg.Stocks.QuoteURL}),
		weather:  weather.NewService(weather.Params{Client: client, BaseURL: cfg.Weather.BaseURL, Unit: cfg.TempUnit()}),
		favicons: feed.NewFavicons(client, cfg.Discovery.FaviconURL),
	}
}

func newDashboard(cfg *config.Config, svc services) *dashboard.Dashboard {
	return dashboard.New(dashboard.Params{
		Feeds:     svc.feeds,
		Quotes:    svc.quotes,
		Weather:   svc.weather,
		Sources:   cfg.FeedSources(),
		Symbols:   cfg.Stocks.Symbols,
		Locations: cfg.Weather.Locations,
		Interval:  cfg.Refresh.Interval,
	})
}

func loadConfig(opts Opts) (*config.Config, error) {
	if opts.Config == "" {
		log.Printf("[INFO] no config file, using defaults")
		return config.Default(), nil
	}
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// run executes one-shot commands if any requested, otherwise serves the api until ctx is done
func run(ctx context.Context, opts Opts, out io.Writer) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	svc := newServices(cfg)

	if oneShot, err := runCommands(ctx, opts, cfg, svc, out); oneShot || err != nil {
		return err
	}
	return serve(ctx, opts, cfg, svc)
}

// runCommands handles the one-shot flags, reports whether any was set
func runCommands(ctx context.Context, opts Opts, cfg *config.Config, svc services, out io.Writer) (bool, error) {
	oneShot := false
	for _, u := range opts.Feed {
		oneShot = true
		if err := printItems(out, u, svc.feeds.FetchFeed(ctx, u)); err != nil {
			return true, err
		}
	}
	for _, u := range opts.Discover {
		oneShot = true
		if err := printDiscovered(out, u, svc.feeds.DiscoverFeeds(ctx, u)); err != nil {
			return true, err
		}
	}
	if len(opts.Stock) > 0 {
		oneShot = true
		if err := printQuotes(out, svc.quotes.CollectQuotes(ctx, opts.Stock)); err != nil {
			return true, err
		}
	}
	if len(opts.Weather) > 0 {
		oneShot = true
		if err := printWeather(out, svc.weather.CollectLocations(ctx, opts.Weather)); err != nil {
			return true, err
		}
	}
	if opts.Once {
		oneShot = true
		snap := newDashboard(cfg, svc).Refresh(ctx)
		if err := printDashboard(out, snap); err != nil {
			return true, err
		}
	}
	return oneShot, nil
}

func serve(ctx context.Context, opts Opts, cfg *config.Config, svc services) error {
	store, err := state.New(ctx, state.Config{
		DSN:             cfg.State.DSN,
		MaxOpenConns:    cfg.State.MaxOpenConns,
		MaxIdleConns:    cfg.State.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.State.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to open state store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("[WARN] failed to close state store: %v", err)
		}
	}()

	dash := newDashboard(cfg, svc)
	dash.Start(ctx)
	defer dash.Stop()

	srv := server.New(cfg, dash, store, svc.feeds, svc.favicons, revision, opts.Debug)
	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Out(io.Discard), lgr.Err(io.Discard)}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
