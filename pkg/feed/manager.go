package feed

import (
	"context"

	"github.com/umputun/infodash/pkg/aggregate"
	"github.com/umputun/infodash/pkg/domain"
	"github.com/umputun/infodash/pkg/metrics"
)

// FetchAllFeeds fetches every feed url concurrently and calls onComplete once with all items
// merged. Items are ordered by the raw PubDate string descending, which is lexicographic and
// only chronological for sortable date formats. An empty urls list completes synchronously.
func (s *Service) FetchAllFeeds(ctx context.Context, urls []string, onComplete func([]domain.FeedItem)) {
	aggregate.FetchAll(ctx, urls, s.fetchTask, onComplete, feedOptions()...)
}

// CollectFeeds is the blocking form of FetchAllFeeds
func (s *Service) CollectFeeds(ctx context.Context, urls []string) []domain.FeedItem {
	return aggregate.Collect(ctx, urls, s.fetchTask, feedOptions()...)
}

func (s *Service) fetchTask(ctx context.Context, u string) ([]domain.FeedItem, error) {
	items := s.FetchFeed(ctx, u)
	result := "ok"
	if len(items) == 0 {
		result = "empty"
	}
	metrics.SourceResults.WithLabelValues("feed", result).Inc()
	return items, nil
}

func feedOptions() []aggregate.Option[domain.FeedItem] {
	return []aggregate.Option[domain.FeedItem]{
		aggregate.WithName[domain.FeedItem]("feeds"),
		aggregate.WithSort(func(a, b domain.FeedItem) bool { return a.PubDate > b.PubDate }),
	}
}
