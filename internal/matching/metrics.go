package matching

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	discoveryRequestsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matching_discovery_requests_total",
			Help: "Total number of discovery requests served",
		},
	)

	discoveryPageSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "matching_discovery_page_size",
			Help:    "Number of candidates returned per discovery page",
			Buckets: prometheus.LinearBuckets(0, 5, 11),
		},
	)

	likesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matching_likes_total",
			Help: "Total number of recorded likes",
		},
		[]string{"outcome"},
	)

	matchesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matching_matches_total",
			Help: "Total number of mutual matches created",
		},
	)

	compatibilityScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "matching_compatibility_scores",
			Help:    "Distribution of computed compatibility scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)
)

func RecordDiscovery(returned int) {
	discoveryRequestsTotal.Inc()
	discoveryPageSize.Observe(float64(returned))
}

func RecordLike(mutual bool) {
	outcome := "liked"
	if mutual {
		outcome = "mutual"
	}
	likesTotal.WithLabelValues(outcome).Inc()
}

func RecordMatch() {
	matchesTotal.Inc()
}

func RecordCompatibilityScore(score int) {
	compatibilityScores.Observe(float64(score))
}
