package config

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/umputun/infodash/pkg/domain"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"required,default=:8080,description=HTTP server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	State struct {
		DSN             string `yaml:"dsn" json:"dsn" jsonschema:"required,description=Read and saved flags database connection string"`
		MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=4,description=Maximum number of open connections"`
		MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=2,description=Maximum number of idle connections"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
	} `yaml:"state" json:"state" jsonschema:"description=Article state storage"`

	HTTP HTTPConfig `yaml:"http" json:"http" jsonschema:"description=Outbound HTTP client settings"`

	Refresh struct {
		Interval time.Duration `yaml:"interval" json:"interval" jsonschema:"default=15m,description=Dashboard refresh interval"`
	} `yaml:"refresh" json:"refresh" jsonschema:"description=Refresh schedule"`

	Categories []CategoryConfig `yaml:"categories" json:"categories" jsonschema:"description=Feed categories"`
	Feeds      []FeedConfig     `yaml:"feeds" json:"feeds" jsonschema:"description=Configured feeds"`
	Discovery  DiscoveryConfig  `yaml:"discovery" json:"discovery" jsonschema:"description=Feed discovery and image backfill"`
	Stocks     StocksConfig     `yaml:"stocks" json:"stocks" jsonschema:"description=Stock quotes"`
	Weather    WeatherConfig    `yaml:"weather" json:"weather" jsonschema:"description=Weather locations"`
}

// HTTPConfig holds outbound client settings shared by all fetchers
type HTTPConfig struct {
	Timeout   time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Per-request timeout"`
	UserAgent string        `yaml:"user_agent" json:"user_agent" jsonschema:"description=User agent for outbound requests"`
	MaxBody   int64         `yaml:"max_body" json:"max_body" jsonschema:"default=10485760,description=Maximum response body size in bytes"`
}

// CategoryConfig is a feed category entry
type CategoryConfig struct {
	ID    string `yaml:"id" json:"id" jsonschema:"required,description=Category identifier"`
	Name  string `yaml:"name" json:"name" jsonschema:"description=Display name"`
	Icon  string `yaml:"icon" json:"icon" jsonschema:"default=folder-symbolic,description=Icon name"`
	Order *int   `yaml:"order" json:"order,omitempty" jsonschema:"description=Sort order with list position if omitted"`
}

// FeedConfig is a configured feed entry
type FeedConfig struct {
	URL      string `yaml:"url" json:"url" jsonschema:"required,description=Feed or site URL"`
	Name     string `yaml:"name" json:"name" jsonschema:"description=Display name"`
	Category string `yaml:"category" json:"category" jsonschema:"default=uncategorized,description=Category id"`
	Enabled  *bool  `yaml:"enabled" json:"enabled,omitempty" jsonschema:"default=true,description=Fetch this feed"`
}

// DiscoveryConfig tunes feed discovery and image backfill
type DiscoveryConfig struct {
	MaxItems      int      `yaml:"max_items" json:"max_items" jsonschema:"default=20,description=Item cap for feeds found by discovery"`
	FallbackPaths []string `yaml:"fallback_paths" json:"fallback_paths" jsonschema:"description=Conventional feed paths tried on the site origin"`
	SkipImages    bool     `yaml:"skip_images" json:"skip_images" jsonschema:"default=false,description=Do not fetch article pages for items without image"`
	UseExtractor  bool     `yaml:"use_extractor" json:"use_extractor" jsonschema:"default=false,description=Use content extraction as the last image source"`
	FaviconURL    string   `yaml:"favicon_url" json:"favicon_url" jsonschema:"description=Favicon service template with %s for the host"`
}

// StocksConfig lists quoted symbols
type StocksConfig struct {
	Symbols  []string `yaml:"symbols" json:"symbols" jsonschema:"description=Ticker symbols"`
	QuoteURL string   `yaml:"quote_url" json:"quote_url" jsonschema:"description=Quote page template with %s for the symbol"`
}

// WeatherConfig lists weather locations
type WeatherConfig struct {
	Locations []string `yaml:"locations" json:"locations" jsonschema:"description=Location queries with auto for ip geolocation"`
	Unit      string   `yaml:"unit" json:"unit" jsonschema:"enum=celsius,enum=fahrenheit,default=fahrenheit,description=Temperature unit"`
	BaseURL   string   `yaml:"base_url" json:"base_url" jsonschema:"description=Weather provider base URL"`
}

// default values used when the config omits them
var (
	defaultFeeds = []FeedConfig{
		{URL: "https://feeds.arstechnica.com/arstechnica/index", Name: "Ars Technica", Category: "tech"},
		{URL: "https://www.reddit.com/r/linux.rss", Name: "r/linux", Category: "tech"},
		{URL: "https://news.ycombinator.com/rss", Name: "Hacker News", Category: "tech"},
	}
	defaultStocks     = []string{"AAPL", "GOOGL", "MSFT", "AMZN"}
	defaultCategories = []CategoryConfig{
		{ID: "saved", Name: "Saved for Later", Icon: "starred-symbolic", Order: intPtr(1)},
		{ID: "tech", Name: "Technology", Icon: "computer-symbolic", Order: intPtr(2)},
		{ID: "science", Name: "Science", Icon: "applications-science-symbolic", Order: intPtr(3)},
		{ID: "news", Name: "News", Icon: "newspaper-symbolic", Order: intPtr(4)},
		{ID: "gaming", Name: "Gaming", Icon: "applications-games-symbolic", Order: intPtr(5)},
		{ID: "uncategorized", Name: "Uncategorized", Icon: "folder-symbolic", Order: intPtr(99)},
	}
)

// SavedCategory is always present in the category list
const SavedCategory = "saved"

// UncategorizedCategory is assigned to feeds without category
const UncategorizedCategory = "uncategorized"

// DefaultFaviconURL is the google s2 favicon service
const DefaultFaviconURL = "https://www.google.com/s2/favicons?domain=%s&sz=32"

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return prepare(&cfg)
}

// Default returns the configuration used when no config file is given
func Default() *Config {
	cfg, err := prepare(&Config{})
	if err != nil {
		// defaults are static and always valid
		panic(fmt.Sprintf("invalid default config: %v", err))
	}
	return cfg
}

func prepare(cfg *Config) (*Config, error) {
	setDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	if err := Verify(cfg); err != nil {
		return nil, fmt.Errorf("verify config: %w", err)
	}
	return cfg, nil
}

func setDefaults(cfg *Config) {
	// server
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}

	// state
	if cfg.State.DSN == "" {
		cfg.State.DSN = "file:infodash.db?cache=shared&mode=rwc&_txlock=immediate&_pragma=busy_timeout(5000)"
	}
	if cfg.State.MaxOpenConns == 0 {
		cfg.State.MaxOpenConns = 4
	}
	if cfg.State.MaxIdleConns == 0 {
		cfg.State.MaxIdleConns = 2
	}
	if cfg.State.ConnMaxLifetime == 0 {
		cfg.State.ConnMaxLifetime = 3600
	}

	// outbound http, empty user agent is filled by the client
	if cfg.HTTP.Timeout == 0 {
		cfg.HTTP.Timeout = 30 * time.Second
	}
	if cfg.HTTP.MaxBody == 0 {
		cfg.HTTP.MaxBody = 10 << 20
	}

	if cfg.Refresh.Interval == 0 {
		cfg.Refresh.Interval = 15 * time.Minute
	}

	if cfg.Discovery.MaxItems == 0 {
		cfg.Discovery.MaxItems = 20
	}
	if cfg.Discovery.FaviconURL == "" {
		cfg.Discovery.FaviconURL = DefaultFaviconURL
	}

	// categories, the saved category always exists
	if len(cfg.Categories) == 0 {
		cfg.Categories = append([]CategoryConfig{}, defaultCategories...)
	}
	hasSaved := false
	for i := range cfg.Categories {
		c := &cfg.Categories[i]
		c.ID = strings.TrimSpace(c.ID)
		if c.Name == "" {
			c.Name = c.ID
		}
		if c.Icon == "" {
			c.Icon = "folder-symbolic"
		}
		if c.Order == nil {
			c.Order = intPtr(i)
		}
		if c.ID == SavedCategory {
			hasSaved = true
		}
	}
	if !hasSaved {
		cfg.Categories = append(cfg.Categories, defaultCategories[0])
	}

	// feeds
	if len(cfg.Feeds) == 0 {
		cfg.Feeds = append([]FeedConfig{}, defaultFeeds...)
	}
	for i := range cfg.Feeds {
		f := &cfg.Feeds[i]
		f.URL = strings.TrimSpace(f.URL)
		if f.Category == "" {
			f.Category = UncategorizedCategory
		}
		if f.Enabled == nil {
			f.Enabled = boolPtr(true)
		}
	}

	// stocks, normalized and deduplicated
	symbols := make([]string, 0, len(cfg.Stocks.Symbols))
	seen := map[string]bool{}
	for _, s := range cfg.Stocks.Symbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		symbols = append(symbols, s)
	}
	if len(symbols) == 0 {
		symbols = append(symbols, defaultStocks...)
	}
	cfg.Stocks.Symbols = symbols

	// weather, empty list means ip geolocation
	locations := make([]string, 0, len(cfg.Weather.Locations))
	for _, l := range cfg.Weather.Locations {
		if l = strings.TrimSpace(l); l != "" {
			locations = append(locations, l)
		}
	}
	if len(locations) == 0 {
		locations = []string{"auto"}
	}
	cfg.Weather.Locations = locations
	if cfg.Weather.Unit == "" {
		cfg.Weather.Unit = "fahrenheit"
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}
	if cfg.HTTP.Timeout < time.Second {
		return fmt.Errorf("http timeout must be at least 1 second")
	}
	if cfg.HTTP.MaxBody < 0 {
		return fmt.Errorf("http max_body must be non-negative")
	}
	if cfg.Refresh.Interval < 10*time.Second {
		return fmt.Errorf("refresh interval must be at least 10 seconds")
	}
	if cfg.Discovery.MaxItems < 1 {
		return fmt.Errorf("discovery max_items must be at least 1")
	}
	if _, err := domain.ParseTempUnit(cfg.Weather.Unit); err != nil {
		return fmt.Errorf("weather unit: %w", err)
	}
	if cfg.Stocks.QuoteURL != "" && strings.Count(cfg.Stocks.QuoteURL, "%s") != 1 {
		return fmt.Errorf("stocks quote_url must contain exactly one %%s")
	}
	if strings.Count(cfg.Discovery.FaviconURL, "%s") != 1 {
		return fmt.Errorf("discovery favicon_url must contain exactly one %%s")
	}

	ids := map[string]bool{}
	for i, c := range cfg.Categories {
		if c.ID == "" {
			return fmt.Errorf("category %d has empty id", i)
		}
		if ids[c.ID] {
			return fmt.Errorf("duplicate category %q", c.ID)
		}
		ids[c.ID] = true
	}

	for i, f := range cfg.Feeds {
		if f.URL == "" {
			return fmt.Errorf("feed %d has empty url", i)
		}
	}
	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetFullConfig returns the full configuration
func (c *Config) GetFullConfig() *Config {
	return c
}

// FeedSources returns configured feeds as domain values, disabled ones included
func (c *Config) FeedSources() []domain.FeedSource {
	res := make([]domain.FeedSource, 0, len(c.Feeds))
	for _, f := range c.Feeds {
		res = append(res, domain.FeedSource{URL: f.URL, Name: f.Name, Category: f.Category, Enabled: f.Enabled == nil || *f.Enabled})
	}
	return res
}

// FeedURLs returns urls of enabled feeds, limited to category unless it is empty.
// Feeds with a category that is not configured are reported as uncategorized.
func (c *Config) FeedURLs(category string) []string {
	known := map[string]bool{}
	for _, cat := range c.Categories {
		known[cat.ID] = true
	}
	res := []string{}
	for _, f := range c.FeedSources() {
		if !f.Enabled {
			continue
		}
		cat := f.Category
		if !known[cat] {
			cat = UncategorizedCategory
		}
		if category != "" && cat != category {
			continue
		}
		res = append(res, f.URL)
	}
	return res
}

// CategoryList returns categories ordered by Order, then by id
func (c *Config) CategoryList() []domain.Category {
	res := make([]domain.Category, 0, len(c.Categories))
	for _, cat := range c.Categories {
		order := 0
		if cat.Order != nil {
			order = *cat.Order
		}
		res = append(res, domain.Category{ID: cat.ID, Name: cat.Name, Icon: cat.Icon, Order: order})
	}
	sort.SliceStable(res, func(i, j int) bool {
		if res[i].Order != res[j].Order {
			return res[i].Order < res[j].Order
		}
		return res[i].ID < res[j].ID
	})
	return res
}

// TempUnit returns the parsed weather unit, validated by Load
func (c *Config) TempUnit() domain.TempUnit {
	u, err := domain.ParseTempUnit(c.Weather.Unit)
	if err != nil {
		return domain.Fahrenheit
	}
	return u
}

func intPtr(v int) *int { return &v }

func boolPtr(v bool) *bool { return &v }
