// Package metrics exports engine activity as Prometheus metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/specialistvlad/speechtimer/internal/engine"
	"github.com/specialistvlad/speechtimer/internal/signal"
)

const namespace = "speechtimer"

// Metrics is an engine.Observer that keeps its collectors in its own registry
// so several timers, or tests, never collide.
type Metrics struct {
	reg *prometheus.Registry

	transitions   *prometheus.CounterVec
	elapsed       prometheus.Gauge
	running       prometheus.Gauge
	presetChanges prometheus.Counter
	rejected      prometheus.Counter
	cues          prometheus.Counter
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	m := &Metrics{
		reg: reg,
		transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "signal_transitions_total",
			Help:      "Signal changes, by the signal entered.",
		}, []string{"signal"}),
		elapsed: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "elapsed_seconds",
			Help:      "Elapsed time of the current speech.",
		}),
		running: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "running",
			Help:      "1 while the timer runs, 0 otherwise.",
		}),
		presetChanges: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "preset_changes_total",
			Help:      "Presets accepted by the engine.",
		}),
		rejected: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_errors_total",
			Help:      "Presets rejected by validation.",
		}),
		cues: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cues_total",
			Help:      "Audio cues requested while unmuted.",
		}),
	}
	// Export every band from the first scrape, not only after it is entered.
	for _, sig := range signal.All() {
		m.transitions.WithLabelValues(sig.String())
	}
	return m
}

// Observe implements engine.Observer.
func (m *Metrics) Observe(ev engine.Event) {
	m.elapsed.Set(ev.State.Elapsed.Seconds())
	if ev.State.Running {
		m.running.Set(1)
	} else {
		m.running.Set(0)
	}

	switch ev.Kind {
	case engine.EventTransition:
		if ev.Transition == nil {
			return
		}
		m.transitions.WithLabelValues(ev.Transition.To.String()).Inc()
		if !ev.Muted && ev.Transition.Tones > 0 {
			m.cues.Inc()
		}
	case engine.EventPresetChanged:
		m.presetChanges.Inc()
	case engine.EventPresetRejected:
		m.rejected.Inc()
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}
