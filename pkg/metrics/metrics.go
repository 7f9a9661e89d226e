// Package metrics exposes the AI runtime core's instrumentation surface
// (spec.md §4.11 "Integration interfaces ... metrics") as Prometheus
// collectors. Unlike the teacher's prometheus client (which queried a
// running Prometheus server for chaos-test success criteria), this core
// has nothing to query against — it is a library embedded in a game
// process — so only the exposition side of client_golang is used: a
// private registry of gauges/counters the host can scrape or inspect.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry bundles the counters and gauges the scheduler, agent pool, and
// trace components update every frame.
type Registry struct {
	reg *prometheus.Registry

	ScheduledAgents  prometheus.Counter
	MaintenanceTicks prometheus.Counter
	FullTicks        prometheus.Counter
	Frame            prometheus.Gauge

	PoolInUse   prometheus.Gauge
	PoolPeak    prometheus.Gauge
	PoolCreated prometheus.Counter

	TierGauge *prometheus.GaugeVec

	TracePushes prometheus.Counter
}

// New builds a Registry with all collectors registered.
func New() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		reg: reg,
		ScheduledAgents: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "aicore",
			Name:      "scheduled_agents_total",
			Help:      "Total number of agent scheduling decisions made.",
		}),
		MaintenanceTicks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "aicore",
			Name:      "maintenance_ticks_total",
			Help:      "Total number of cheap maintenance ticks dispatched.",
		}),
		FullTicks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "aicore",
			Name:      "full_ticks_total",
			Help:      "Total number of full behavior-tree ticks dispatched.",
		}),
		Frame: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "aicore",
			Name:      "frame",
			Help:      "Current scheduler frame counter.",
		}),
		PoolInUse: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "aicore",
			Name:      "pool_in_use",
			Help:      "Agent pool slabs currently in use.",
		}),
		PoolPeak: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "aicore",
			Name:      "pool_peak",
			Help:      "Peak agent pool slabs created.",
		}),
		PoolCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "aicore",
			Name:      "pool_created_total",
			Help:      "Total agent pool slabs ever allocated.",
		}),
		TierGauge: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "aicore",
			Name:      "intensity_tier_agents",
			Help:      "Number of agents currently at each intensity tier.",
		}, []string{"tier"}),
		TracePushes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "aicore",
			Name:      "trace_pushes_total",
			Help:      "Total number of trace ring entries pushed.",
		}),
	}

	reg.MustRegister(r.ScheduledAgents, r.MaintenanceTicks, r.FullTicks, r.Frame,
		r.PoolInUse, r.PoolPeak, r.PoolCreated, r.TierGauge, r.TracePushes)

	return r
}

// Registerer exposes the underlying registry for a host's scrape endpoint.
func (r *Registry) Registerer() *prometheus.Registry { return r.reg }
