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

// Points Metrics
var (
	PointsComputationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePointsComputations,
			Help: HelpTextPointsComputations,
		},
	)

	PointsWasted = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNamePointsWasted,
			Help:    HelpTextPointsWasted,
			Buckets: PointsWastedBuckets,
		},
	)

	OverridesApplied = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameOverridesApplied,
			Help: HelpTextOverridesApplied,
		},
	)

	WeeksProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameWeeksProcessed,
			Help: HelpTextWeeksProcessed,
		},
	)

	TiersAdjusted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameTiersAdjusted,
			Help: HelpTextTiersAdjusted,
		},
		[]string{LabelDirection},
	)
)

// StatBot API Metrics
var (
	StatbotRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameStatbotRequestDuration,
			Help:    HelpTextStatbotRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
	)

	StatbotRequestErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameStatbotRequestErrors,
			Help: HelpTextStatbotRequestErrors,
		},
	)
)

// Mod-log Sync Metrics
var (
	ModLogMessagesSynced = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameModLogMessagesSynced,
			Help: HelpTextModLogMessagesSynced,
		},
		[]string{LabelKind},
	)

	ModLogSyncRuns = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameModLogSyncRuns,
			Help: HelpTextModLogSyncRuns,
		},
	)
)
