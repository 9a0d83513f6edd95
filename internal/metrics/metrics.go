package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ListingsFetched = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storesync_listings_fetched_total",
		Help: "Listing summaries returned by the store search",
	})

	SearchPageFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storesync_search_page_failures_total",
		Help: "Store search pages that failed and were skipped",
	})

	ListingsEnriched = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storesync_listings_enriched_total",
		Help: "Listings passed through enrichment, by outcome",
	}, []string{"outcome"})

	ProductsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storesync_products_published_total",
		Help: "Catalog publish attempts, by stage and status",
	}, []string{"stage", "status"})

	TokenRefreshes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storesync_token_refreshes_total",
		Help: "Application token refreshes, by reason and status",
	}, []string{"reason", "status"})

	RunDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "storesync_run_duration_seconds",
		Help:    "Duration of a full sync run",
		Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600, 1800},
	})
)

var HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "storesync_http_request_duration_seconds",
	Help:    "Ops API request latency",
	Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
}, []string{"method", "path", "status"})
