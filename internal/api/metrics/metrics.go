// Package metrics defines and registers all custom Prometheus metrics for
// the storefront session service. It is the single source of truth for
// metric names, labels, and help strings. Registration happens at import
// time via promauto against the default registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts routed through the Session Store.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ActiveSessions tracks the number of live storefront session bundles.
var ActiveSessions = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_sessions",
		Help:      "Current number of storefront sessions held in memory.",
	},
)

// GuardDenialsTotal counts requests the auth guard turned away.
// Label:
//   - reason: "anonymous" (no user) or "role" (user lacks a required role)
var GuardDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_denials_total",
		Help:      "Total number of requests denied by the auth guard, by reason.",
	},
	[]string{"reason"},
)

// ── Cart metrics ──────────────────────────────────────────────────────────────

// CartMutationsTotal counts cart store mutations.
// Label:
//   - op: "add", "remove", "update_quantity", "clear"
var CartMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_mutations_total",
		Help:      "Total number of cart mutations, by operation.",
	},
	[]string{"op"},
)

// CheckoutsTotal counts checkout attempts.
// Label:
//   - result: "success" or "failure"
var CheckoutsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkouts_total",
		Help:      "Total number of checkout attempts, by result.",
	},
	[]string{"result"},
)

// ── Backend metrics ───────────────────────────────────────────────────────────

// BackendRequestDuration measures round-trips to the commerce backend.
// Labels:
//   - operation: logical gateway operation (e.g. "login", "sales.create")
//   - outcome: "ok", "backend_error" (non-2xx) or "transport_error"
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of HTTP calls to the commerce backend.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation", "outcome"},
)

// ── Mirror metrics ────────────────────────────────────────────────────────────

// MirrorOpsTotal counts user-snapshot mirror operations.
// Labels:
//   - op: "write" or "delete"
//   - result: "ok", "error" or "dropped" (queue full)
var MirrorOpsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mirror_ops_total",
		Help:      "Total number of user mirror operations, by op and result.",
	},
	[]string{"op", "result"},
)
