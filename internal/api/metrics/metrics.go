// Package metrics defines and registers all custom Prometheus metrics for
// the Siteflow dashboard gateway. It is the single source of truth for
// metric names, labels, and help strings; registration happens through
// promauto at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "siteflow_gateway"

// ── Session metrics ───────────────────────────────────────────────────────────

// SignInsTotal counts authentication attempts.
// Label:
//   - outcome: "success", "invalid_credentials", "network", "error"
var SignInsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sign_ins_total",
		Help:      "Total number of sign-in attempts, by outcome.",
	},
	[]string{"outcome"},
)

// SessionsActive tracks the number of sessions currently held in memory.
var SessionsActive = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sessions_active",
		Help:      "Current number of live sessions in the registry.",
	},
)

// ── Cache metrics ─────────────────────────────────────────────────────────────

// CacheReadsTotal counts read outcomes against the resource cache.
// Labels:
//   - resource: resource name (e.g. "project")
//   - result: "hit" (fresh), "miss" (fetched), "stale" (refetch failed,
//     stale value served), "error" (no value at all)
var CacheReadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_reads_total",
		Help:      "Total number of cache-mediated reads, by resource and result.",
	},
	[]string{"resource", "result"},
)

// CacheDiscardsTotal counts fetch responses dropped by the issue-order
// guard. A non-zero rate is normal under concurrent refetching.
var CacheDiscardsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_discards_total",
		Help:      "Total number of out-of-order fetch responses discarded.",
	},
	[]string{"resource"},
)

// CacheEntries tracks the number of entries currently cached.
var CacheEntries = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "cache_entries",
		Help:      "Current number of entries in the resource cache.",
	},
)

// ── Upstream metrics ──────────────────────────────────────────────────────────

// UpstreamRequestsTotal counts calls to the backend RPC API.
// Labels:
//   - operation: "<resource>.<op>" (e.g. "project.create")
//   - outcome: "ok", "network", "server", "payload"
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of upstream RPC calls, by operation and outcome.",
	},
	[]string{"operation", "outcome"},
)

// UpstreamRequestDuration measures upstream round-trip latency.
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of upstream RPC calls from send to decoded response.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// ── Mutation / activity metrics ───────────────────────────────────────────────

// MutationsTotal counts successful mutations routed through the gateway.
// Labels:
//   - resource: resource name
//   - verb: "created", "updated", "destroyed", "actioned"
var MutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mutations_total",
		Help:      "Total number of successful resource mutations, by resource and verb.",
	},
	[]string{"resource", "verb"},
)

// ActivityEventsTotal counts activity trail writes.
// Label:
//   - result: "stored" or "error"
var ActivityEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_events_total",
		Help:      "Total number of activity events processed, by result.",
	},
	[]string{"result"},
)

// ActivityQueueDepth tracks events waiting in each dispatcher worker channel.
var ActivityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of activity events pending per dispatcher worker.",
	},
	[]string{"worker_id"},
)
