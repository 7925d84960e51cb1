// Package metrics defines and registers the custom Prometheus metrics of the
// connector API. It is the single source of truth for metric names, labels and
// help strings. Metrics are registered with the default registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "connector"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthFailuresTotal counts requests rejected by the auth gate.
// Label:
//   - reason: "missing", "invalid" or "expired"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of requests rejected by token verification.",
	},
	[]string{"reason"},
)

// TokensIssuedTotal counts tokens handed out.
// Label:
//   - flow: "register" or "login"
var TokensIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of identity tokens issued.",
	},
	[]string{"flow"},
)

// ── Feed metrics ──────────────────────────────────────────────────────────────

// LikesTotal counts like/unlike outcomes.
// Label:
//   - result: "added", "already_liked", "removed" or "not_liked"
var LikesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "likes_total",
		Help:      "Total number of like and unlike requests, by outcome.",
	},
	[]string{"result"},
)

// CommentsTotal counts comment edits.
// Label:
//   - op: "add" or "remove"
var CommentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "comments_total",
		Help:      "Total number of comment additions and removals.",
	},
	[]string{"op"},
)

// ── Account metrics ───────────────────────────────────────────────────────────

// AccountsDeletedTotal counts completed account deletions.
var AccountsDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "accounts_deleted_total",
		Help:      "Total number of accounts deleted.",
	},
)

// PurgesTotal counts authored-content purges run by the dispatcher.
// Label:
//   - outcome: "ok", "error" or "dropped"
var PurgesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "purges_total",
		Help:      "Total number of authored-content purges, by outcome.",
	},
	[]string{"outcome"},
)

// PurgeQueueDepth tracks pending purge jobs per worker channel.
// Label:
//   - worker_id: numeric worker index
var PurgeQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "purge_queue_depth",
		Help:      "Current number of purge jobs pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// PurgeDuration measures one purge from dequeue to completion.
var PurgeDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "purge_duration_seconds",
		Help:      "Duration of an authored-content purge.",
		Buckets:   prometheus.DefBuckets,
	},
)
