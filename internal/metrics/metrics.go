// Package metrics exposes Prometheus instrumentation for the quality check
// service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pipeline metrics
var (
	// ChecksCompleted counts quality checks by verdict.
	ChecksCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vqc",
			Name:      "checks_completed_total",
			Help:      "Total number of quality checks completed",
		},
		[]string{"verdict"},
	)

	// CheckDuration tracks the end-to-end duration of quality checks.
	CheckDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "vqc",
			Name:      "check_duration_seconds",
			Help:      "Time taken to run a full quality check",
			Buckets:   []float64{5, 15, 30, 60, 120, 300, 600},
		},
	)

	// DownloadDuration tracks the time taken to download source videos.
	DownloadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "vqc",
			Name:      "download_duration_seconds",
			Help:      "Time taken to download source videos",
			Buckets:   []float64{1, 5, 10, 30, 60, 120, 300},
		},
	)

	// FramesAnalyzed counts keyframes run through text extraction.
	FramesAnalyzed = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "vqc",
			Name:      "frames_analyzed_total",
			Help:      "Total number of keyframes analyzed for text",
		},
	)

	// DefectsFound counts content defects by kind.
	DefectsFound = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vqc",
			Name:      "defects_found_total",
			Help:      "Total number of content defects found",
		},
		[]string{"kind"},
	)

	// ActiveChecks tracks the number of checks currently in flight.
	ActiveChecks = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "vqc",
			Name:      "active_checks",
			Help:      "Number of quality checks currently running",
		},
	)
)

// API metrics
var (
	// HTTPRequestsTotal counts HTTP requests by method, path, and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vqc",
			Subsystem: "api",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration tracks HTTP request duration.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "vqc",
			Subsystem: "api",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// RecordVerdict records a completed check by its overall verdict.
func RecordVerdict(status string) {
	ChecksCompleted.WithLabelValues(status).Inc()
}

// RecordDefects records found defects by kind.
func RecordDefects(kind string, count int) {
	if count > 0 {
		DefectsFound.WithLabelValues(kind).Add(float64(count))
	}
}
