// Package telemetry holds the Prometheus metrics and OpenTelemetry tracing
// used by the dialog runtime.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts focus-trap transitions and interceptions.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Activations prometheus.Counter
	Redirects   prometheus.Counter
	TabWraps    *prometheus.CounterVec
	Dismissals  *prometheus.CounterVec
	ActiveTraps prometheus.Gauge
}

// NewMetrics registers the focus-trap metrics with reg.
// Passing nil registers with the default registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		Activations: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "focustrap",
			Subsystem: "trap",
			Name:      "activations_total",
			Help:      "Total number of focus trap activations",
		}),
		Redirects: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "focustrap",
			Subsystem: "focus",
			Name:      "redirects_total",
			Help:      "Focus moves outside the dialog pulled back inside",
		}),
		TabWraps: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "focustrap",
			Subsystem: "tab",
			Name:      "wraps_total",
			Help:      "Tab navigation that wrapped around the focusable set",
		}, []string{"direction"}),
		Dismissals: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "focustrap",
			Subsystem: "dialog",
			Name:      "dismissals_total",
			Help:      "Close requests by dismissal gesture",
		}, []string{"reason"}),
		ActiveTraps: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "focustrap",
			Subsystem: "trap",
			Name:      "active",
			Help:      "Number of currently active focus traps",
		}),
	}
}

// TrapActivated records an Inactive to Active transition.
func (m *Metrics) TrapActivated() {
	if m == nil {
		return
	}
	m.Activations.Inc()
	m.ActiveTraps.Inc()
}

// TrapDeactivated records an Active to Inactive transition.
func (m *Metrics) TrapDeactivated() {
	if m == nil {
		return
	}
	m.ActiveTraps.Dec()
}

// FocusRedirected records an intercepted focus escape.
func (m *Metrics) FocusRedirected() {
	if m == nil {
		return
	}
	m.Redirects.Inc()
}

// TabWrapped records a wrap; direction is "forward" or "backward".
func (m *Metrics) TabWrapped(direction string) {
	if m == nil {
		return
	}
	m.TabWraps.WithLabelValues(direction).Inc()
}

// Dismissed records a close request; reason is "escape" or "backdrop".
func (m *Metrics) Dismissed(reason string) {
	if m == nil {
		return
	}
	m.Dismissals.WithLabelValues(reason).Inc()
}
