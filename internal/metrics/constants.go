package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Points metric names
const (
	MetricNamePointsComputations = "stardust_points_computations_total"
	MetricNamePointsWasted       = "stardust_points_wasted"
	MetricNameOverridesApplied   = "stardust_overrides_applied_total"
	MetricNameWeeksProcessed     = "stardust_weeks_processed_total"
	MetricNameTiersAdjusted      = "stardust_tiers_adjusted_total"
)

// StatBot API metric names
const (
	MetricNameStatbotRequestDuration = "statbot_request_duration_seconds"
	MetricNameStatbotRequestErrors   = "statbot_request_errors_total"
)

// Mod-log sync metric names
const (
	MetricNameModLogMessagesSynced = "modlog_messages_synced_total"
	MetricNameModLogSyncRuns       = "modlog_sync_runs_total"
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

// Points metric help text
const (
	HelpTextPointsComputations = "Total number of weekly points computations"
	HelpTextPointsWasted       = "Wasted points per computation (raw minus applied)"
	HelpTextOverridesApplied   = "Total number of manual point overrides applied"
	HelpTextWeeksProcessed     = "Total number of full weekly processing runs"
	HelpTextTiersAdjusted      = "Total number of policy-driven tier adjustments"
)

// StatBot API metric help text
const (
	HelpTextStatbotRequestDuration = "StatBot API request latency in seconds"
	HelpTextStatbotRequestErrors   = "Total number of failed StatBot API requests"
)

// Mod-log sync metric help text
const (
	HelpTextModLogMessagesSynced = "Total number of mod-log messages parsed and stored"
	HelpTextModLogSyncRuns       = "Total number of mod-log catch-up runs"
)

// ============================================================================
// Labels
// ============================================================================

const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelDirection = "direction"
	LabelKind      = "kind"
)

// Tier adjustment directions
const (
	DirectionPromoted = "promoted"
	DirectionDemoted  = "demoted"
)

// Mod-log message kinds
const (
	KindModAction      = "mod_action"
	KindModmailClosure = "modmail_closure"
)

// ============================================================================
// Buckets
// ============================================================================

// HTTPLatencyBuckets covers typical request latencies from 1ms to 10s
var HTTPLatencyBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

// PointsWastedBuckets covers the expected waste range of one computation
var PointsWastedBuckets = []float64{0, 10, 25, 50, 100, 200, 400, 800}
