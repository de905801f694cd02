package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	digestBuildsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "prodify",
		Subsystem: "digest",
		Name:      "builds_total",
		Help:      "Number of context digests assembled.",
	})
	digestBuildDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "prodify",
		Subsystem: "digest",
		Name:      "build_duration_seconds",
		Help:      "Wall time spent fanning out category reads and formatting the digest.",
		Buckets:   prometheus.DefBuckets,
	})
	digestCategoryFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "prodify",
		Subsystem: "digest",
		Name:      "category_read_failures_total",
		Help:      "Category reads that failed and were rendered as unavailable.",
	}, []string{"category"})

	relayRequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "prodify",
		Subsystem: "relay",
		Name:      "requests_total",
		Help:      "Outbound generateContent calls attempted.",
	})
	relayFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "prodify",
		Subsystem: "relay",
		Name:      "failures_total",
		Help:      "Relay calls that failed in transport or decoding.",
	})
	relayFallbacksTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "prodify",
		Subsystem: "relay",
		Name:      "fallback_replies_total",
		Help:      "Responses without a usable candidate, answered with the fixed fallback.",
	})
)

func init() {
	prometheus.MustRegister(
		digestBuildsTotal,
		digestBuildDuration,
		digestCategoryFailures,
		relayRequestsTotal,
		relayFailuresTotal,
		relayFallbacksTotal,
	)
}

// RecordDigestBuild counts one assembled digest and its duration.
func RecordDigestBuild(elapsed time.Duration) {
	digestBuildsTotal.Inc()
	digestBuildDuration.Observe(elapsed.Seconds())
}

// RecordCategoryFailure counts a category read that fell back to a placeholder.
func RecordCategoryFailure(category string) {
	digestCategoryFailures.WithLabelValues(category).Inc()
}

// RecordRelayRequest counts an outbound LLM call.
func RecordRelayRequest() {
	relayRequestsTotal.Inc()
}

// RecordRelayFailure counts a relay transport/decode failure.
func RecordRelayFailure() {
	relayFailuresTotal.Inc()
}

// RecordRelayFallback counts a reply substituted with the fixed fallback text.
func RecordRelayFallback() {
	relayFallbacksTotal.Inc()
}
