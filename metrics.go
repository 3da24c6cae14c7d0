package mazewalk

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the engine's Prometheus collectors. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	sessions    prometheus.Counter
	moves       *prometheus.CounterVec
	solves      prometheus.Counter
	navigations prometheus.Counter
	canceled    prometheus.Counter
	solveTime   prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// leaves them unregistered, which is convenient in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		sessions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mazewalk",
			Name:      "sessions_total",
			Help:      "Mazes generated, including regenerations on resize.",
		}),
		moves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mazewalk",
			Name:      "moves_total",
			Help:      "Move requests by outcome.",
		}, []string{"result"}),
		solves: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mazewalk",
			Name:      "solves_total",
			Help:      "Mazes solved.",
		}),
		navigations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mazewalk",
			Name:      "navigations_total",
			Help:      "Navigator calls issued after a win.",
		}),
		canceled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mazewalk",
			Name:      "navigations_canceled_total",
			Help:      "Pending navigations dropped by teardown.",
		}),
		solveTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "mazewalk",
			Name:      "solve_duration_seconds",
			Help:      "Time from maze generation to the winning move.",
			Buckets:   []float64{5, 10, 20, 30, 60, 120, 300},
		}),
	}
	if reg != nil {
		reg.MustRegister(m.sessions, m.moves, m.solves, m.navigations, m.canceled, m.solveTime)
	}
	return m
}

func (m *Metrics) sessionCreated() {
	if m == nil {
		return
	}
	m.sessions.Inc()
}

func (m *Metrics) moveRequested(r Reject) {
	if m == nil {
		return
	}
	result := "accepted"
	if r != RejectNone {
		result = r.String()
	}
	m.moves.WithLabelValues(result).Inc()
}

func (m *Metrics) solved(d time.Duration) {
	if m == nil {
		return
	}
	m.solves.Inc()
	m.solveTime.Observe(d.Seconds())
}

func (m *Metrics) navigated() {
	if m == nil {
		return
	}
	m.navigations.Inc()
}

func (m *Metrics) navigationCanceled() {
	if m == nil {
		return
	}
	m.canceled.Inc()
}
