// Package metrics exposes the service's Prometheus instrumentation behind a
// small collector interface so services stay testable without a registry.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector records the payment-path events worth counting.
type Collector interface {
	PaymentCalculated(buyerType string)
	PaymentApproved(method string, amount int64)
	PaymentFailed(method, reason string)
	RefundQuoted(feePercentage int)
	RefundProcessed()
	ReconcileAttempt(attempt int)
	ReconcileOutcome(outcome string)
	UpstreamCall(endpoint string, duration time.Duration, failed bool)
}

// PromCollector is the production Collector backed by promauto.
type PromCollector struct {
	calculations     *prometheus.CounterVec
	approvals        *prometheus.CounterVec
	approvedAmount   *prometheus.CounterVec
	failures         *prometheus.CounterVec
	refundQuotes     *prometheus.CounterVec
	refundsProcessed prometheus.Counter
	reconAttempts    prometheus.Counter
	reconOutcomes    *prometheus.CounterVec
	upstreamLatency  *prometheus.HistogramVec
	upstreamFailures *prometheus.CounterVec
}

// NewPromCollector registers the metric set on the given registerer.
func NewPromCollector(reg prometheus.Registerer) *PromCollector {
	factory := promauto.With(reg)
	return &PromCollector{
		calculations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "raillo_payment_calculations_total",
			Help: "Payment calculations requested, by buyer type.",
		}, []string{"buyer_type"}),
		approvals: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "raillo_payment_approvals_total",
			Help: "Payments approved, by payment method.",
		}, []string{"method"}),
		approvedAmount: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "raillo_payment_approved_amount_won_total",
			Help: "Total approved amount in won, by payment method.",
		}, []string{"method"}),
		failures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "raillo_payment_failures_total",
			Help: "Payment attempts that failed, by method and reason.",
		}, []string{"method", "reason"}),
		refundQuotes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "raillo_refund_quotes_total",
			Help: "Refund quotes issued, by fee tier.",
		}, []string{"fee_percentage"}),
		refundsProcessed: factory.NewCounter(prometheus.CounterOpts{
			Name: "raillo_refunds_processed_total",
			Help: "Refunds confirmed and processed.",
		}),
		reconAttempts: factory.NewCounter(prometheus.CounterOpts{
			Name: "raillo_reconcile_attempts_total",
			Help: "Payment reconciliation lookup attempts.",
		}),
		reconOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "raillo_reconcile_outcomes_total",
			Help: "Payment reconciliation terminal outcomes.",
		}, []string{"outcome"}),
		upstreamLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "raillo_upstream_request_duration_seconds",
			Help:    "Latency of payment backend calls.",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
		upstreamFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "raillo_upstream_failures_total",
			Help: "Payment backend calls that returned an error.",
		}, []string{"endpoint"}),
	}
}

func (c *PromCollector) PaymentCalculated(buyerType string) {
	c.calculations.WithLabelValues(buyerType).Inc()
}

func (c *PromCollector) PaymentApproved(method string, amount int64) {
	c.approvals.WithLabelValues(method).Inc()
	c.approvedAmount.WithLabelValues(method).Add(float64(amount))
}

func (c *PromCollector) PaymentFailed(method, reason string) {
	c.failures.WithLabelValues(method, reason).Inc()
}

func (c *PromCollector) RefundQuoted(feePercentage int) {
	c.refundQuotes.WithLabelValues(feeLabel(feePercentage)).Inc()
}

func (c *PromCollector) RefundProcessed() {
	c.refundsProcessed.Inc()
}

func (c *PromCollector) ReconcileAttempt(int) {
	c.reconAttempts.Inc()
}

func (c *PromCollector) ReconcileOutcome(outcome string) {
	c.reconOutcomes.WithLabelValues(outcome).Inc()
}

func (c *PromCollector) UpstreamCall(endpoint string, duration time.Duration, failed bool) {
	c.upstreamLatency.WithLabelValues(endpoint).Observe(duration.Seconds())
	if failed {
		c.upstreamFailures.WithLabelValues(endpoint).Inc()
	}
}

func feeLabel(pct int) string {
	switch pct {
	case 0:
		return "0"
	case 30:
		return "30"
	case 40:
		return "40"
	case 70:
		return "70"
	default:
		return "other"
	}
}

// Noop discards every event. Tests and tools use it.
type Noop struct{}

func (Noop) PaymentCalculated(string)                 {}
func (Noop) PaymentApproved(string, int64)            {}
func (Noop) PaymentFailed(string, string)             {}
func (Noop) RefundQuoted(int)                         {}
func (Noop) RefundProcessed()                         {}
func (Noop) ReconcileAttempt(int)                     {}
func (Noop) ReconcileOutcome(string)                  {}
func (Noop) UpstreamCall(string, time.Duration, bool) {}
