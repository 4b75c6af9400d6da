// Package metrics exposes Prometheus collectors for the HTTP API and the
// customer synchronisation engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Sync Metrics
var (
	SyncRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSyncRunsTotal,
			Help: HelpTextSyncRunsTotal,
		},
		[]string{LabelMode, LabelOutcome},
	)

	SyncDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameSyncDuration,
			Help:    HelpTextSyncDuration,
			Buckets: SyncDurationBuckets,
		},
		[]string{LabelMode},
	)

	SyncInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameSyncInProgress,
			Help: HelpTextSyncInProgress,
		},
	)

	SyncPagesFetched = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSyncPagesFetched,
			Help: HelpTextSyncPagesFetched,
		},
	)

	SyncCustomersUpserted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSyncCustomersUpserted,
			Help: HelpTextSyncCustomersUpserted,
		},
	)

	SyncWatermark = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameSyncWatermark,
			Help: HelpTextSyncWatermark,
		},
	)
)

// Source Metrics
var (
	SourceRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSourceRequestsTotal,
			Help: HelpTextSourceRequestsTotal,
		},
		[]string{LabelStatus},
	)

	SourceRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameSourceRequestDuration,
			Help:    HelpTextSourceRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
	)
)
