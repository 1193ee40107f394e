package weather

import (
	"context"

	"github.com/umputun/infodash/pkg/aggregate"
	"github.com/umputun/infodash/pkg/domain"
	"github.com/umputun/infodash/pkg/metrics"
)

// FetchAllLocations fetches every location concurrently and calls onComplete once with all
// snapshots, in completion order
func (s *Service) FetchAllLocations(ctx context.Context, locations []string, onComplete func([]domain.WeatherSnapshot)) {
	aggregate.FetchAll(ctx, locations, s.locationTask, onComplete, aggregate.WithName[domain.WeatherSnapshot]("weather"))
}

// CollectLocations is the blocking form of FetchAllLocations
func (s *Service) CollectLocations(ctx context.Context, locations []string) []domain.WeatherSnapshot {
	return aggregate.Collect(ctx, locations, s.locationTask, aggregate.WithName[domain.WeatherSnapshot]("weather"))
}

func (s *Service) locationTask(ctx context.Context, location string) ([]domain.WeatherSnapshot, error) {
	w := s.FetchWeather(ctx, location)
	result := "ok"
	if w.Temperature == "" {
		result = "unavailable"
	}
	metrics.SourceResults.WithLabelValues("weather", result).Inc()
	return []domain.WeatherSnapshot{w}, nil
}
