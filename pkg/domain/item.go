package domain

// FeedItem represents a single normalized article extracted from a feed.
// Description is plain text, at most 200 characters plus "..." suffix.
// PubDate is kept as the raw string from the source, no parsing is attempted.
// Link is the identity key for read and saved state.
type FeedItem struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description"`
	PubDate     string `json:"pub_date"`
	Source      string `json:"source"`
	ImageURL    string `json:"image_url,omitempty"`
	Author      string `json:"author,omitempty"`
}

// ArticleState carries per-article flags kept by the state store
type ArticleState struct {
	Read  bool `json:"read"`
	Saved bool `json:"saved"`
}
