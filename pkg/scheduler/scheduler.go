// Package scheduler implements the frame-bucketed, LOD-gated tick loop
// that distributes full behavior-tree ticks across many agents (spec.md
// §4.6).
package scheduler

import "github.com/jihwankim/roguelike-ai-core/pkg/metrics"

// Agent is the minimal surface the scheduler needs from a host's agent
// record: a squared distance helper and the two actions it can invoke.
type Agent interface {
	// DistSqToPlayer returns the squared distance from the agent to the
	// player, used for LOD gating.
	DistSqToPlayer() float32
	// TickFull runs the agent's full behavior-tree tick.
	TickFull(dt float32)
	// TickMaintenance runs the cheap reserved no-op path: it may mutate
	// small per-agent timers but must not tick the behavior tree.
	TickMaintenance(dt float32)
}

// Scheduler distributes agent ticks across B frame buckets and gates
// distant agents to a maintenance-only path (spec.md §4.6).
type Scheduler struct {
	buckets   int
	lodRadius float32
	frame     uint64
	metrics   *metrics.Registry
}

// New creates a Scheduler with buckets frame buckets (B) and lodRadius
// in world units. buckets < 1 is treated as 1 (every agent ticks every
// frame, LOD gating aside).
func New(buckets int, lodRadius float32) *Scheduler {
	if buckets < 1 {
		buckets = 1
	}
	return &Scheduler{buckets: buckets, lodRadius: lodRadius}
}

// Frame returns the current frame counter.
func (s *Scheduler) Frame() uint64 { return s.frame }

// Buckets returns B, the configured bucket count.
func (s *Scheduler) Buckets() int { return s.buckets }

// SetBuckets updates B at runtime (spec.md §6 "set_buckets(n)"). n < 1
// is treated as 1, matching New.
func (s *Scheduler) SetBuckets(n int) {
	if n < 1 {
		n = 1
	}
	s.buckets = n
}

// SetLODRadius updates the LOD radius at runtime (spec.md §6
// "set_lod_radius(r)"). S10 requires the new radius to take effect on
// the Scheduler's next Tick.
func (s *Scheduler) SetLODRadius(r float32) {
	s.lodRadius = r
}

// SetMetrics attaches a metrics registry the Scheduler increments every
// Tick. Passing nil disables instrumentation again.
func (s *Scheduler) SetMetrics(m *metrics.Registry) {
	s.metrics = m
}

// Tick runs one scheduler pass over agents in the given fixed order
// (spec.md §4.6): each agent beyond lodRadius runs maintenance only;
// among the rest, only agents whose index falls in the current bucket
// run a full tick, the others run maintenance. The frame counter always
// advances, even for an empty list.
func (s *Scheduler) Tick(agents []Agent, dt float32) {
	bucket := int(s.frame % uint64(s.buckets))
	lodRadiusSq := s.lodRadius * s.lodRadius
	for i, a := range agents {
		if a.DistSqToPlayer() > lodRadiusSq {
			a.TickMaintenance(dt)
			if s.metrics != nil {
				s.metrics.MaintenanceTicks.Inc()
			}
			continue
		}
		if s.buckets > 1 && i%s.buckets != bucket {
			a.TickMaintenance(dt)
			if s.metrics != nil {
				s.metrics.MaintenanceTicks.Inc()
			}
			continue
		}
		a.TickFull(dt)
		if s.metrics != nil {
			s.metrics.FullTicks.Inc()
		}
	}
	if s.metrics != nil {
		s.metrics.ScheduledAgents.Add(float64(len(agents)))
		s.metrics.Frame.Set(float64(s.frame + 1))
	}
	s.frame++
}
