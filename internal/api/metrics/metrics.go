// Package metrics defines and registers the custom Prometheus metrics of the
// employee roster API. It is the single source of truth for metric names,
// labels and help strings.
//
// Metrics are registered with the default registry on package init through
// promauto; HTTP request metrics come from echoprometheus.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/roster-hq/employee-roster/internal/core/domain"
)

const namespace = "roster"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// UsersRegisteredTotal counts accounts created through /register.
// Label:
//   - role: "admin" or "employee"
var UsersRegisteredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of registered accounts, by role.",
	},
	[]string{"role"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AccessDeniedTotal counts requests rejected by the access guard or limiter.
// Label:
//   - reason: "missing_token", "invalid_token", "forbidden" or "rate_limited"
var AccessDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_denied_total",
		Help:      "Total number of requests denied before reaching a handler, by reason.",
	},
	[]string{"reason"},
)

// ── Listing metrics ───────────────────────────────────────────────────────────

// ListPageSize observes the number of users returned per listing page.
var ListPageSize = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "list_page_size",
		Help:      "Number of users returned by a single listing request.",
		Buckets:   []float64{0, 1, 5, 10, 25, 50, 100},
	},
)

// ── Audit event metrics ───────────────────────────────────────────────────────

// UserEventsProcessedTotal counts audit events persisted successfully.
// Label:
//   - type: "registered", "updated" or "deleted"
var UserEventsProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "user_events_processed_total",
		Help:      "Total number of user audit events persisted.",
	},
	[]string{"type"},
)

// UserEventsErrorsTotal counts audit events that failed to persist.
var UserEventsErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "user_events_errors_total",
		Help:      "Total number of user audit events that failed processing.",
	},
)

// EventsQueueDepth tracks the number of events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var EventsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "events_queue_depth",
		Help:      "Current number of events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// EventProcessingDuration measures how long one audit event takes to persist.
var EventProcessingDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "event_processing_duration_seconds",
		Help:      "Duration of audit event processing from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
)

// Dispatcher reports audit queue activity to the collectors above.
type Dispatcher struct{}

func (Dispatcher) Enqueued(worker int) {
	EventsQueueDepth.WithLabelValues(strconv.Itoa(worker)).Inc()
}

func (Dispatcher) Dequeued(worker int) {
	EventsQueueDepth.WithLabelValues(strconv.Itoa(worker)).Dec()
}

func (Dispatcher) Dropped(domain.UserEventType) {
	UserEventsErrorsTotal.Inc()
}

func (Dispatcher) Processed(eventType domain.UserEventType, took time.Duration, err error) {
	EventProcessingDuration.Observe(took.Seconds())
	if err != nil {
		UserEventsErrorsTotal.Inc()
		return
	}
	UserEventsProcessedTotal.WithLabelValues(string(eventType)).Inc()
}
