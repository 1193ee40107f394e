package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/infodash/pkg/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "infodash.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))
	return configPath
}

func TestLoad(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		configContent := `
server:
  listen: ":9090"
  timeout: 45s

http:
  timeout: 10s
  user_agent: test-agent

refresh:
  interval: 5m

categories:
  - id: dev
    name: Development
    order: 3
  - id: news
    name: News

feeds:
  - url: https://example.com/feed1.xml
    name: Feed1
    category: dev
  - url: " https://example.com/feed2.xml "
    enabled: false

stocks:
  symbols: [" nvda", "AAPL", "nvda", ""]
  quote_url: https://quotes.example.com/q/%s

weather:
  locations: ["London", " ", "10001"]
  unit: celsius
  base_url: https://weather.example.com

discovery:
  skip_images: true
  use_extractor: true
  favicon_url: https://icons.example.com/%s.ico
`
		cfg, err := Load(writeConfig(t, configContent))
		require.NoError(t, err)
		require.NotNil(t, cfg)

		listen, timeout := cfg.GetServerConfig()
		assert.Equal(t, ":9090", listen)
		assert.Equal(t, 45*time.Second, timeout)
		assert.Equal(t, 10*time.Second, cfg.HTTP.Timeout)
		assert.Equal(t, "test-agent", cfg.HTTP.UserAgent)
		assert.Equal(t, 5*time.Minute, cfg.Refresh.Interval)

		require.Len(t, cfg.Feeds, 2)
		assert.Equal(t, "https://example.com/feed1.xml", cfg.Feeds[0].URL)
		assert.Equal(t, "dev", cfg.Feeds[0].Category)
		assert.Equal(t, "https://example.com/feed2.xml", cfg.Feeds[1].URL, "url trimmed")
		assert.Equal(t, UncategorizedCategory, cfg.Feeds[1].Category)
		assert.False(t, *cfg.Feeds[1].Enabled)

		assert.Equal(t, []string{"NVDA", "AAPL"}, cfg.Stocks.Symbols)
		assert.Equal(t, "https://quotes.example.com/q/%s", cfg.Stocks.QuoteURL)
		assert.Equal(t, []string{"London", "10001"}, cfg.Weather.Locations)
		assert.Equal(t, domain.Celsius, cfg.TempUnit())
		assert.True(t, cfg.Discovery.SkipImages)
		assert.True(t, cfg.Discovery.UseExtractor)
		assert.Equal(t, "https://icons.example.com/%s.ico", cfg.Discovery.FaviconURL)

		cats := cfg.CategoryList()
		require.Len(t, cats, 3, "saved category added")
		assert.Equal(t, "news", cats[0].ID, "position used as order")
		assert.Equal(t, "saved", cats[1].ID)
		assert.Equal(t, "dev", cats[2].ID)
		assert.Equal(t, "folder-symbolic", cats[0].Icon)
	})

	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "server:\n  listen: \":8081\"\n"))
		require.NoError(t, err)

		assert.Equal(t, ":8081", cfg.Server.Listen)
		assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
		assert.Equal(t, 30*time.Second, cfg.HTTP.Timeout)
		assert.Equal(t, int64(10<<20), cfg.HTTP.MaxBody)
		assert.Equal(t, 15*time.Minute, cfg.Refresh.Interval)
		assert.Equal(t, 20, cfg.Discovery.MaxItems)
		assert.False(t, cfg.Discovery.SkipImages)
		assert.Equal(t, DefaultFaviconURL, cfg.Discovery.FaviconURL)
		assert.Contains(t, cfg.State.DSN, "infodash.db")
		assert.Equal(t, 4, cfg.State.MaxOpenConns)

		require.Len(t, cfg.Feeds, 3)
		assert.Equal(t, "Ars Technica", cfg.Feeds[0].Name)
		assert.Equal(t, "https://news.ycombinator.com/rss", cfg.Feeds[2].URL)
		assert.Equal(t, []string{"AAPL", "GOOGL", "MSFT", "AMZN"}, cfg.Stocks.Symbols)
		assert.Equal(t, []string{"auto"}, cfg.Weather.Locations)
		assert.Equal(t, domain.Fahrenheit, cfg.TempUnit())

		ids := []string{}
		for _, c := range cfg.CategoryList() {
			ids = append(ids, c.ID)
		}
		assert.Equal(t, []string{"saved", "tech", "science", "news", "gaming", "uncategorized"}, ids)
	})

	t.Run("environment expansion", func(t *testing.T) {
		t.Setenv("INFODASH_TEST_LISTEN", ":7070")
		cfg, err := Load(writeConfig(t, "server:\n  listen: \"${INFODASH_TEST_LISTEN}\"\n"))
		require.NoError(t, err)
		assert.Equal(t, ":7070", cfg.Server.Listen)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load("/nonexistent/infodash.yml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read config file")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "feeds: [unclosed"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse config")
	})
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{"short server timeout", "server:\n  timeout: 100ms\n", "server timeout must be at least 1 second"},
		{"short http timeout", "http:\n  timeout: 10ms\n", "http timeout must be at least 1 second"},
		{"short refresh", "refresh:\n  interval: 1s\n", "refresh interval must be at least 10 seconds"},
		{"bad unit", "weather:\n  unit: kelvin\n", "unknown temperature unit"},
		{"bad quote url", "stocks:\n  quote_url: https://q.example.com/\n", "exactly one %s"},
		{"bad favicon url", "discovery:\n  favicon_url: https://icons.example.com/\n", "favicon_url must contain"},
		{"empty category id", "categories:\n  - name: x\n", "category 0 has empty id"},
		{"duplicate category", "categories:\n  - id: a\n  - id: a\n", `duplicate category "a"`},
		{"empty feed url", "feeds:\n  - name: x\n", "feed 0 has empty url"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, ":8080", cfg.Server.Listen)
	assert.Len(t, cfg.Feeds, 3)
	assert.Same(t, cfg, cfg.GetFullConfig())
}

func TestConfig_FeedURLs(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
categories:
  - id: tech
  - id: news
feeds:
  - url: https://a.example.com/rss
    category: tech
  - url: https://b.example.com/rss
    category: news
  - url: https://c.example.com/rss
    category: tech
    enabled: false
  - url: https://d.example.com/rss
    category: unknown
  - url: https://e.example.com/rss
`))
	require.NoError(t, err)

	assert.Equal(t, []string{"https://a.example.com/rss", "https://b.example.com/rss", "https://d.example.com/rss",
		"https://e.example.com/rss"}, cfg.FeedURLs(""))
	assert.Equal(t, []string{"https://a.example.com/rss"}, cfg.FeedURLs("tech"))
	assert.Equal(t, []string{"https://d.example.com/rss", "https://e.example.com/rss"}, cfg.FeedURLs(UncategorizedCategory))
	assert.Empty(t, cfg.FeedURLs("gaming"))

	sources := cfg.FeedSources()
	require.Len(t, sources, 5)
	assert.Equal(t, domain.FeedSource{URL: "https://c.example.com/rss", Category: "tech", Enabled: false}, sources[2])
}
