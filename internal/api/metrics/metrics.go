// Package metrics defines and registers all custom Prometheus metrics for the
// legal aid practice API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation through promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "legalaid"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthFailuresTotal counts requests rejected by the auth or role middleware.
// Label:
//   - reason: "missing_token", "invalid_token" or "forbidden_role"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of requests rejected during authentication or authorization.",
	},
	[]string{"reason"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", "on_hold" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Resource metrics ──────────────────────────────────────────────────────────

// ClientOperationsTotal counts successful client account mutations.
// Label:
//   - operation: "add", "edit", "delete" or "hold"
var ClientOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "client_operations_total",
		Help:      "Total number of client account mutations, by operation.",
	},
	[]string{"operation"},
)

// EventOperationsTotal counts successful calendar event mutations.
// Label:
//   - operation: "create", "update" or "delete"
var EventOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "event_operations_total",
		Help:      "Total number of calendar event mutations, by operation.",
	},
	[]string{"operation"},
)

// FeedbackSubmittedTotal counts stored case feedback records.
// Labels:
//   - case_type: "contract" or "constitutional"
//   - happy: "true" or "false"
var FeedbackSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "feedback_submitted_total",
		Help:      "Total number of case feedback records submitted.",
	},
	[]string{"case_type", "happy"},
)

// ── Cache metrics ─────────────────────────────────────────────────────────────

// StatsCacheTotal counts feedback stats cache lookups.
// Label:
//   - result: "hit", "miss" or "error"
var StatsCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stats_cache_total",
		Help:      "Total number of feedback stats cache lookups, labelled by result.",
	},
	[]string{"result"},
)

// ── Cleanup queue metrics ─────────────────────────────────────────────────────

// CleanupQueueDepth tracks pending reference-cleanup jobs per worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var CleanupQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "cleanup_queue_depth",
		Help:      "Current number of reference-cleanup jobs pending in each worker channel.",
	},
	[]string{"worker_id"},
)

// CleanupJobsTotal counts reference-cleanup jobs.
// Label:
//   - result: "done", "failed" or "dropped"
var CleanupJobsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cleanup_jobs_total",
		Help:      "Total number of client reference-cleanup jobs, by result.",
	},
	[]string{"result"},
)

// CleanupDuration measures how long pulling a deleted client from events takes.
var CleanupDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "cleanup_duration_seconds",
		Help:      "Duration of a client reference-cleanup job.",
		Buckets:   prometheus.DefBuckets,
	},
)
