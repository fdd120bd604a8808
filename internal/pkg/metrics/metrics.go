// Package metrics registers the prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// LedgerCorrectionsTotal counts corrective writes of a seller's boost ledger.
	LedgerCorrectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "treido",
		Subsystem: "boosts",
		Name:      "ledger_corrections_total",
		Help:      "Boost ledger corrections by reason (reset, clamp, reallocate).",
	}, []string{"reason"})

	// CompensationFailuresTotal counts credit restores that failed after a boost write failed.
	CompensationFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "treido",
		Subsystem: "boosts",
		Name:      "compensation_failures_total",
		Help:      "Boost credit restores that failed, leaving the ledger one credit short.",
	})

	// BoostsAppliedTotal counts boosts applied to listings by funding source.
	BoostsAppliedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "treido",
		Subsystem: "boosts",
		Name:      "applied_total",
		Help:      "Listing boosts applied by source (credit, paid).",
	}, []string{"source"})

	// BoostsExpiredTotal counts listings whose boost was cleared by the expiry sweep.
	BoostsExpiredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "treido",
		Subsystem: "boosts",
		Name:      "expired_total",
		Help:      "Listings un-boosted by the expiry sweep.",
	})

	// CheckoutSessionsTotal counts paid boost checkout attempts by result.
	CheckoutSessionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "treido",
		Subsystem: "boosts",
		Name:      "checkout_sessions_total",
		Help:      "Boost checkout session attempts by result code.",
	}, []string{"result"})

	// OrderSupportActionsTotal counts buyer order-support actions by action and result code.
	OrderSupportActionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "treido",
		Subsystem: "orders",
		Name:      "support_actions_total",
		Help:      "Order support actions (cancel, return, issue) by result code.",
	}, []string{"action", "result"})

	// WebhookRequestsTotal counts Stripe webhook requests by event type and status.
	WebhookRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "treido",
		Subsystem: "stripe",
		Name:      "webhook_requests_total",
		Help:      "Stripe webhook requests by event type and HTTP status.",
	}, []string{"event_type", "status"})

	// JobsTotal counts background jobs finished by type and final status.
	JobsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "treido",
		Subsystem: "jobqueue",
		Name:      "jobs_total",
		Help:      "Background jobs by type and status (completed, retrying, failed).",
	}, []string{"type", "status"})

	// CacheInvalidationErrorsTotal counts failed tag invalidations.
	CacheInvalidationErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "treido",
		Subsystem: "cache",
		Name:      "invalidation_errors_total",
		Help:      "Cache tag invalidations that failed.",
	})
)

// Result returns the label value for an action outcome.
func Result(code string) string {
	if code == "" {
		return "ok"
	}
	return code
}
