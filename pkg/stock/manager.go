package stock

import (
	"context"

	"github.com/umputun/infodash/pkg/aggregate"
	"github.com/umputun/infodash/pkg/domain"
	"github.com/umputun/infodash/pkg/metrics"
)

// FetchAllQuotes scrapes every symbol concurrently and calls onComplete once with all quotes,
// in completion order. Every symbol yields exactly one quote, unavailable ones included.
func (s *Scraper) FetchAllQuotes(ctx context.Context, symbols []string, onComplete func([]domain.StockQuote)) {
	aggregate.FetchAll(ctx, symbols, s.quoteTask, onComplete, aggregate.WithName[domain.StockQuote]("stocks"))
}

// CollectQuotes is the blocking form of FetchAllQuotes
func (s *Scraper) CollectQuotes(ctx context.Context, symbols []string) []domain.StockQuote {
	return aggregate.Collect(ctx, symbols, s.quoteTask, aggregate.WithName[domain.StockQuote]("stocks"))
}

func (s *Scraper) quoteTask(ctx context.Context, symbol string) ([]domain.StockQuote, error) {
	q := s.FetchQuote(ctx, symbol)
	result := "ok"
	if q.Price == "N/A" {
		result = "unavailable"
	}
	metrics.SourceResults.WithLabelValues("stock", result).Inc()
	return []domain.StockQuote{q}, nil
}
