// Package metrics defines and registers all custom Prometheus metrics for the
// diary backend. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry at import time
// via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "diary"

// EntriesCreatedTotal counts diary entries accepted by the API.
var EntriesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "entries_created_total",
		Help:      "Total number of diary entries created.",
	},
)

// EntriesProcessedTotal counts worker-side processing outcomes.
// Label:
//   - outcome: "completed", "failed" (terminal failure marker recorded),
//     "dropped" (entry no longer exists), or "error" (completion write failed)
var EntriesProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "entries_processed_total",
		Help:      "Total number of dispatched entries handled by the worker, by outcome.",
	},
	[]string{"outcome"},
)

// ProcessingDuration measures how long a single entry takes from dequeue to
// persisted completion.
var ProcessingDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "processing_duration_seconds",
		Help:      "Duration of entry processing from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"outcome"},
)

// JobsEnqueuedTotal counts entry ids durably handed to the work queue.
var JobsEnqueuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "jobs_enqueued_total",
		Help:      "Total number of entry ids pushed onto the work queue.",
	},
)

// DispatchErrorsTotal counts failed enqueue attempts after a successful insert.
var DispatchErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "dispatch_errors_total",
		Help:      "Total number of enqueue failures leaving entries in the created state.",
	},
)

// AuthFailuresTotal counts rejected bearer tokens.
// Label:
//   - reason: "malformed", "signature", "expired", "revoked"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of rejected authentication tokens, by reason.",
	},
	[]string{"reason"},
)

// RevocationsTotal counts tokens added to the revocation ledger.
var RevocationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "revocations_total",
		Help:      "Total number of tokens revoked via logout.",
	},
)
