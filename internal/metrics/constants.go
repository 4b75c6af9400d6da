package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "eggwms_http_requests_total"
	MetricNameHTTPRequestDuration  = "eggwms_http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "eggwms_http_requests_in_flight"
)

// Sync metric names
const (
	MetricNameSyncRunsTotal         = "eggwms_sync_runs_total"
	MetricNameSyncDuration          = "eggwms_sync_duration_seconds"
	MetricNameSyncInProgress        = "eggwms_sync_in_progress"
	MetricNameSyncPagesFetched      = "eggwms_sync_pages_fetched_total"
	MetricNameSyncCustomersUpserted = "eggwms_sync_customers_upserted_total"
	MetricNameSyncWatermark         = "eggwms_sync_watermark_timestamp_seconds"
	MetricNameSourceRequestsTotal   = "eggwms_source_requests_total"
	MetricNameSourceRequestDuration = "eggwms_source_request_duration_seconds"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Sync metric help text
const (
	HelpTextSyncRunsTotal         = "Total number of customer sync runs by mode and outcome"
	HelpTextSyncDuration          = "Customer sync duration in seconds"
	HelpTextSyncInProgress        = "1 while a customer sync session is running"
	HelpTextSyncPagesFetched      = "Total number of customer pages fetched from the source"
	HelpTextSyncCustomersUpserted = "Total number of customers written to the local store"
	HelpTextSyncWatermark         = "Unix time of the customer sync watermark"
	HelpTextSourceRequestsTotal   = "Total number of requests sent to the e-commerce source by status"
	HelpTextSourceRequestDuration = "E-commerce source request latency in seconds"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelMode    = "mode"
	LabelOutcome = "outcome"
)

// Sync outcomes
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeSkipped = "skipped"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// SyncDurationBuckets covers a sync from under a second to ten minutes.
var SyncDurationBuckets = []float64{.5, 1, 2.5, 5, 10, 30, 60, 120, 300, 600}
