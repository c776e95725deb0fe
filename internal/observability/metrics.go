// Package observability holds the Prometheus collectors exported on /metrics.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SimilarityComparisons = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wardrobe_similarity_comparisons_total",
			Help: "Total number of wishlist/closet item pairs scored",
		},
	)

	SimilarityResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "wardrobe_similarity_results",
			Help:    "Number of similar items returned per lookup",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
		},
	)

	SimilarityDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "wardrobe_similarity_duration_seconds",
			Help: "Time spent ranking closet items for a wishlist entry",
		},
	)

	SimilarityCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wardrobe_similarity_cache_lookups_total",
			Help: "Similar-item cache lookups by result",
		},
		[]string{"result"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wardrobe_http_requests_total",
			Help: "HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "wardrobe_http_request_duration_seconds",
			Help: "HTTP request latency by method and route",
		},
		[]string{"method", "route"},
	)
)
