package domain

// FeedSource represents a configured feed entry
type FeedSource struct {
	URL      string
	Name     string
	Category string
	Enabled  bool
}

// Category groups feed sources for display
type Category struct {
	ID    string
	Name  string
	Icon  string
	Order int
}

// DiscoveredFeed is a candidate feed advertised by an HTML page
type DiscoveredFeed struct {
	URL   string `json:"url"`
	Title string `json:"title"`
	Type  string `json:"type"`
}

// Favicon is a site icon payload
type Favicon struct {
	Data        []byte
	ContentType string
}
