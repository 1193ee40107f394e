// Package metrics declares prometheus collectors shared by fetchers and the server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FetchRequests counts outbound GET requests by host and outcome (ok, http_error, transport_error)
	FetchRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "infodash_fetch_requests_total",
			Help: "Total number of outbound fetch requests",
		},
		[]string{"host", "outcome"},
	)

	FetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "infodash_fetch_duration_seconds",
			Help:    "Outbound fetch duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"host"},
	)

	// SourceResults counts per-source task results, kind is feed, stock or weather
	SourceResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "infodash_source_results_total",
			Help: "Total number of per-source fetch tasks by result",
		},
		[]string{"kind", "result"},
	)

	// DiscoveryStage counts which autodiscovery stage produced a feed
	DiscoveryStage = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "infodash_feed_discovery_stage_total",
			Help: "Feed autodiscovery outcomes by stage",
		},
		[]string{"stage"},
	)

	RefreshCycles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "infodash_refresh_cycles_total",
			Help: "Dashboard refresh cycles by section",
		},
		[]string{"section"},
	)
)
