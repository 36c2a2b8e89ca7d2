package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the payment engine collectors
type Metrics struct {
	PaymentsRecorded    *prometheus.CounterVec
	AmountRecorded      *prometheus.CounterVec
	OverpaymentWarnings *prometheus.CounterVec
	PlanRejections      *prometheus.CounterVec
	RecomputeFailures   prometheus.Counter
	StaleSnapshots      prometheus.Counter
}

// New creates the collectors and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		PaymentsRecorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tourdesk",
			Subsystem: "payments",
			Name:      "recorded_total",
			Help:      "Payment entries recorded, by category and source.",
		}, []string{"category", "source"}),
		AmountRecorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tourdesk",
			Subsystem: "payments",
			Name:      "amount_total",
			Help:      "Currency amount recorded, by category.",
		}, []string{"category"}),
		OverpaymentWarnings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tourdesk",
			Subsystem: "payments",
			Name:      "overpayment_warnings_total",
			Help:      "Payments accepted above the pending amount of their category.",
		}, []string{"category"}),
		PlanRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tourdesk",
			Subsystem: "installments",
			Name:      "plan_rejections_total",
			Help:      "Plan commits rejected, by broken invariant.",
		}, []string{"invariant"}),
		RecomputeFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tourdesk",
			Subsystem: "payments",
			Name:      "recompute_failures_total",
			Help:      "Breakdown recomputations that failed to read the store.",
		}),
		StaleSnapshots: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tourdesk",
			Subsystem: "payments",
			Name:      "stale_snapshots_total",
			Help:      "Reads answered with the last-known cached snapshot.",
		}),
	}

	if reg != nil {
		reg.MustRegister(
			m.PaymentsRecorded,
			m.AmountRecorded,
			m.OverpaymentWarnings,
			m.PlanRejections,
			m.RecomputeFailures,
			m.StaleSnapshots,
		)
	}
	return m
}

// ObservePayment counts one recorded payment
func (m *Metrics) ObservePayment(category, source string, amount float64) {
	if m == nil {
		return
	}
	m.PaymentsRecorded.WithLabelValues(category, source).Inc()
	m.AmountRecorded.WithLabelValues(category).Add(amount)
}

func (m *Metrics) ObserveOverpayment(category string) {
	if m == nil {
		return
	}
	m.OverpaymentWarnings.WithLabelValues(category).Inc()
}

func (m *Metrics) ObservePlanRejection(invariant string) {
	if m == nil {
		return
	}
	m.PlanRejections.WithLabelValues(invariant).Inc()
}

func (m *Metrics) ObserveRecomputeFailure() {
	if m == nil {
		return
	}
	m.RecomputeFailures.Inc()
}

func (m *Metrics) ObserveStaleSnapshot() {
	if m == nil {
		return
	}
	m.StaleSnapshots.Inc()
}
