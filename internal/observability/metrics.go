// Package observability exposes Prometheus metrics for a running simulation.
package observability

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles the simulation metrics. A nil *Collector is valid and
// records nothing, so callers never need to guard it.
type Collector struct {
	gatherer prometheus.Gatherer

	Steps            prometheus.Counter
	Substeps         prometheus.Counter
	SimulatedSeconds prometheus.Counter
	Desyncs          prometheus.Counter
	Bodies           *prometheus.GaugeVec
	UpdateDuration   prometheus.Histogram
}

// NewCollector registers the simulation metrics against reg, defaulting to
// the global registry when nil. Registering twice on the same registry
// reuses the existing collectors.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	steps, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orbsim_steps_total",
		Help: "Number of completed Update or SimulateSeconds calls.",
	}), "orbsim_steps_total")
	if err != nil {
		return nil, err
	}
	substeps, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orbsim_substeps_total",
		Help: "Number of substeps applied across all bodies.",
	}), "orbsim_substeps_total")
	if err != nil {
		return nil, err
	}
	simulated, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orbsim_simulated_seconds_total",
		Help: "Simulated time advanced, in seconds.",
	}), "orbsim_simulated_seconds_total")
	if err != nil {
		return nil, err
	}
	desyncs, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orbsim_desync_total",
		Help: "Number of detected clock desynchronisations.",
	}), "orbsim_desync_total")
	if err != nil {
		return nil, err
	}
	bodies, err := register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "orbsim_bodies",
		Help: "Bodies in the simulation, labeled by role.",
	}, []string{"role"}), "orbsim_bodies")
	if err != nil {
		return nil, err
	}
	duration, err := register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "orbsim_update_duration_seconds",
		Help:    "Wall-clock time spent per simulation update.",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	}), "orbsim_update_duration_seconds")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:         gatherer,
		Steps:            steps,
		Substeps:         substeps,
		SimulatedSeconds: simulated,
		Desyncs:          desyncs,
		Bodies:           bodies,
		UpdateDuration:   duration,
	}, nil
}

// ObserveUpdate records one finished update of simulated length dt split
// into substeps, which took wall to compute.
func (c *Collector) ObserveUpdate(substeps int, dt, wall time.Duration) {
	if c == nil {
		return
	}
	c.Steps.Inc()
	c.Substeps.Add(float64(substeps))
	c.SimulatedSeconds.Add(dt.Seconds())
	c.UpdateDuration.Observe(wall.Seconds())
}

// SetBodies updates the body gauges. A body that both attracts and is
// attracted counts under both roles.
func (c *Collector) SetBodies(total, gravitators, gravitatees int) {
	if c == nil {
		return
	}
	c.Bodies.WithLabelValues("all").Set(float64(total))
	c.Bodies.WithLabelValues("gravitator").Set(float64(gravitators))
	c.Bodies.WithLabelValues("gravitatee").Set(float64(gravitatees))
}

func (c *Collector) IncDesync() {
	if c == nil {
		return
	}
	c.Desyncs.Inc()
}

// Handler exposes a ready-to-use /metrics handler.
func (c *Collector) Handler() http.Handler {
	gatherer := prometheus.DefaultGatherer
	if c != nil && c.gatherer != nil {
		gatherer = c.gatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T, name string) (T, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
			var zero T
			return zero, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		var zero T
		return zero, err
	}
	return c, nil
}
