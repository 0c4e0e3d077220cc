// Package telemetry exposes arbitration counters over Prometheus.
package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danielpatrickdp/deskpet/internal/arbiter"
	"github.com/danielpatrickdp/deskpet/internal/statedef"
)

// #region collector

// Collector implements arbiter.Observer on top of Prometheus counters.
type Collector struct {
	registry *prometheus.Registry

	updatesTotal      *prometheus.CounterVec
	transitionsTotal  prometheus.Counter
	unknownRejects    prometheus.Counter
	interactionEvicts prometheus.Counter
}

// NewCollector builds a collector with its own registry so tests never fight
// over the global one.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	c := &Collector{
		registry: reg,
		updatesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "deskpet_updates_total",
			Help: "Candidate updates applied, by category.",
		}, []string{"category"}),
		transitionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "deskpet_transitions_total",
			Help: "Resolved state transitions emitted.",
		}),
		unknownRejects: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "deskpet_unknown_state_rejects_total",
			Help: "Updates ignored because the state id was unregistered.",
		}),
		interactionEvicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "deskpet_interaction_evictions_total",
			Help: "Interaction candidates evicted on TTL expiry.",
		}),
	}
	reg.MustRegister(
		c.updatesTotal,
		c.transitionsTotal,
		c.unknownRejects,
		c.interactionEvicts,
		collectors.NewGoCollector(),
	)
	return c
}

// Handler returns the /metrics HTTP handler.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// #endregion collector

// #region observer

// UpdateApplied implements arbiter.Observer.
func (c *Collector) UpdateApplied(cat statedef.Category) {
	c.updatesTotal.WithLabelValues(string(cat)).Inc()
}

// TransitionEmitted implements arbiter.Observer.
func (c *Collector) TransitionEmitted(arbiter.Event) {
	c.transitionsTotal.Inc()
}

// UnknownStateRejected implements arbiter.Observer.
func (c *Collector) UnknownStateRejected(statedef.ID) {
	c.unknownRejects.Inc()
}

// InteractionEvicted implements arbiter.Observer.
func (c *Collector) InteractionEvicted(statedef.ID) {
	c.interactionEvicts.Inc()
}

// #endregion observer
