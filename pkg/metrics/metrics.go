// Package metrics holds prometheus collectors of the pipeline. Collectors are usable
// before registration, MustRegister exposes them on a registry.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// CollectedItems counts new posts stored by the collector, by source handle
	CollectedItems = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "postdigest_collected_items_total",
		Help: "New posts stored by the collector",
	}, []string{"source"})

	// CollectErrors counts failed source collections
	CollectErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "postdigest_collect_errors_total",
		Help: "Failed source collections",
	})

	// OracleChunks counts analysis chunks by outcome: ok, parse-error, transport-error
	OracleChunks = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "postdigest_oracle_chunks_total",
		Help: "Relevance analysis chunks by outcome",
	}, []string{"outcome"})

	// AnalyzedItems counts stored analyses by relevance
	AnalyzedItems = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "postdigest_analyzed_items_total",
		Help: "Stored analyses by relevance",
	}, []string{"relevant"})

	// DigestBuildSeconds tracks digest build duration
	DigestBuildSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "postdigest_digest_build_seconds",
		Help:    "Digest build duration",
		Buckets: prometheus.DefBuckets,
	})

	// DigestBuilds counts digest builds by status: created, existing, empty, error
	DigestBuilds = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "postdigest_digest_builds_total",
		Help: "Digest builds by status",
	}, []string{"status"})

	// Enrichments counts enrichment attempts by kind (translation, screenshot) and outcome (done, skipped, failed)
	Enrichments = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "postdigest_enrichments_total",
		Help: "Enrichment attempts by kind and outcome",
	}, []string{"kind", "outcome"})

	// DeliveredDigests counts digest emails by outcome
	DeliveredDigests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "postdigest_delivered_digests_total",
		Help: "Digest deliveries by outcome",
	}, []string{"outcome"})
)

// MustRegister registers all collectors
func MustRegister(registerer prometheus.Registerer) {
	registerer.MustRegister(
		CollectedItems,
		CollectErrors,
		OracleChunks,
		AnalyzedItems,
		DigestBuildSeconds,
		DigestBuilds,
		Enrichments,
		DeliveredDigests,
	)
}

// Handler returns the http handler exposing metrics of the gatherer
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// ObserveDigestBuild records duration and status of one digest build
func ObserveDigestBuild(status string, start time.Time) {
	DigestBuildSeconds.Observe(time.Since(start).Seconds())
	DigestBuilds.WithLabelValues(status).Inc()
}

// IncEnrichment counts one enrichment attempt
func IncEnrichment(kind, outcome string) {
	Enrichments.WithLabelValues(kind, outcome).Inc()
}

// IncOracleChunk counts one analyzed chunk
func IncOracleChunk(outcome string) {
	OracleChunks.WithLabelValues(outcome).Inc()
}

// IncAnalyzed counts stored analyses
func IncAnalyzed(relevant bool, n int) {
	label := "false"
	if relevant {
		label = "true"
	}
	AnalyzedItems.WithLabelValues(label).Add(float64(n))
}
