// Package metrics defines the custom Prometheus metrics of the trade signal
// platform. HTTP request metrics come from echoprometheus; everything here is
// domain specific.
//
// All metrics register with the default registry on package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "primstrade"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts register/login/refresh calls.
// Labels:
//   - operation: "register", "login" or "refresh"
//   - result: "success", "failure" or "conflict"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication operations by outcome.",
	},
	[]string{"operation", "result"},
)

// ── Signal metrics ────────────────────────────────────────────────────────────

// SignalsCreatedTotal counts newly created trade signals.
var SignalsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signals_created_total",
		Help:      "Total number of trade signals created.",
	},
)

// SignalStatusChangesTotal counts admin status transitions.
// Label:
//   - status: the status applied ("approved" or "rejected")
var SignalStatusChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signal_status_changes_total",
		Help:      "Total number of signal status transitions, by target status.",
	},
	[]string{"status"},
)

// ── Cache metrics ─────────────────────────────────────────────────────────────

// CacheRequestsTotal counts cache lookups.
// Labels:
//   - driver: "memory" or "redis"
//   - result: "hit", "miss" or "error"
var CacheRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_requests_total",
		Help:      "Total number of cache lookups, labelled by driver and result.",
	},
	[]string{"driver", "result"},
)

// CacheEntries is the number of entries held by the in-process cache,
// expired ones included, sampled after each sweep.
var CacheEntries = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "cache_entries",
		Help:      "Entries held by the in-process cache after the last sweep.",
	},
	[]string{"driver"},
)

// CacheInvalidationsTotal counts keys removed from the cache.
var CacheInvalidationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_invalidations_total",
		Help:      "Total number of cache keys invalidated.",
	},
	[]string{"driver"},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditQueueDepth tracks entries waiting in each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of status changes pending in each audit worker channel.",
	},
	[]string{"worker_id"},
)

// AuditRecordsTotal counts audit entries by outcome.
// Label:
//   - result: "recorded", "failed" or "dropped" (queue full or closed)
var AuditRecordsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_records_total",
		Help:      "Total number of status change audit entries, by outcome.",
	},
	[]string{"result"},
)

// AuditRecordDuration measures how long one audit write takes.
var AuditRecordDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "audit_record_duration_seconds",
		Help:      "Duration of a status change audit write.",
		Buckets:   prometheus.DefBuckets,
	},
)

// ── Gateway metrics ───────────────────────────────────────────────────────────

// UpstreamErrorsTotal counts proxy failures per upstream service.
var UpstreamErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gateway_upstream_errors_total",
		Help:      "Total number of requests the gateway failed to proxy, by upstream.",
	},
	[]string{"upstream"},
)

// ImageUploadsTotal counts image uploads by result ("success", "rejected", "failed").
var ImageUploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "image_uploads_total",
		Help:      "Total number of image uploads, by result.",
	},
	[]string{"result"},
)
