package telemetry

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_TrapLifecycle(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.TrapActivated()
	m.TrapActivated()
	m.TrapDeactivated()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Activations))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ActiveTraps))
}

func TestMetrics_Labels(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.TabWrapped("forward")
	m.TabWrapped("forward")
	m.TabWrapped("backward")
	m.Dismissed("escape")
	m.FocusRedirected()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.TabWraps.WithLabelValues("forward")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TabWraps.WithLabelValues("backward")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Dismissals.WithLabelValues("escape")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Dismissals.WithLabelValues("backdrop")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Redirects))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.TrapActivated()
		m.TrapDeactivated()
		m.FocusRedirected()
		m.TabWrapped("forward")
		m.Dismissed("backdrop")
	})
}

func TestMetrics_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewMetrics(reg)

	assert.Panics(t, func() { NewMetrics(reg) })
}
