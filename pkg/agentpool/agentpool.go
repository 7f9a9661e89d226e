// Package agentpool implements the fixed-slab free-list allocator that
// hands out per-agent state, including each agent's blackboard (spec.md
// §4.7).
package agentpool

import (
	"github.com/jihwankim/roguelike-ai-core/pkg/blackboard"
	"github.com/jihwankim/roguelike-ai-core/pkg/metrics"
)

// AgentState is one slab's payload: everything a live agent needs beyond
// its behavior tree, which the host attaches separately (spec.md §4.10).
type AgentState struct {
	BB     *blackboard.Blackboard
	Pos    blackboard.Vec2
	Facing blackboard.Vec2
}

func newAgentState(bbCapacity int) *AgentState {
	return &AgentState{BB: blackboard.New(bbCapacity)}
}

// reset zeroes a slab's payload for reuse, replacing its blackboard
// rather than attempting to scrub map entries in place.
func (a *AgentState) reset(bbCapacity int) {
	a.BB = blackboard.New(bbCapacity)
	a.Pos = blackboard.Vec2{}
	a.Facing = blackboard.Vec2{}
}

type slot struct {
	state  *AgentState
	inUse  bool
}

// Pool is a non-thread-safe fixed-slab allocator: acquiring pops from a
// free list or grows by one slot, releasing pushes the slot's index back
// onto the free list without returning memory to the runtime (spec.md
// §4.7). There is no global state — every caller owns its own Pool, per
// DESIGN NOTES §9's guidance against static mutable allocators.
type Pool struct {
	bbCapacity   int
	slots        []slot
	freeList     []int
	inUse        int
	peakCreated  int
	totalCreated int
	metrics      *metrics.Registry
}

// New creates an empty Pool whose slabs carry a blackboard of the given
// capacity.
func New(bbCapacity int) *Pool {
	return &Pool{bbCapacity: bbCapacity}
}

// SetMetrics attaches a metrics registry the Pool updates on every
// Acquire/Release. Passing nil disables instrumentation again.
func (p *Pool) SetMetrics(m *metrics.Registry) {
	p.metrics = m
}

// Acquire pops a slab from the free list, else grows the pool by one
// slab, and returns a zeroed AgentState along with its handle. The
// handle is required by Release.
func (p *Pool) Acquire() (*AgentState, int) {
	if n := len(p.freeList); n > 0 {
		idx := p.freeList[n-1]
		p.freeList = p.freeList[:n-1]
		p.slots[idx].state.reset(p.bbCapacity)
		p.slots[idx].inUse = true
		p.inUse++
		p.reportMetrics()
		return p.slots[idx].state, idx
	}
	idx := len(p.slots)
	p.slots = append(p.slots, slot{state: newAgentState(p.bbCapacity), inUse: true})
	p.totalCreated++
	if p.totalCreated > p.peakCreated {
		p.peakCreated = p.totalCreated
	}
	p.inUse++
	if p.metrics != nil {
		p.metrics.PoolCreated.Inc()
	}
	p.reportMetrics()
	return p.slots[idx].state, idx
}

// Release returns handle's slab to the free list. Releasing an already
// free or out-of-range handle is a no-op.
func (p *Pool) Release(handle int) {
	if handle < 0 || handle >= len(p.slots) || !p.slots[handle].inUse {
		return
	}
	p.slots[handle].inUse = false
	p.freeList = append(p.freeList, handle)
	if p.inUse > 0 {
		p.inUse--
	}
	p.reportMetrics()
}

// reportMetrics pushes the current in-use/peak gauges to the attached
// registry, if any.
func (p *Pool) reportMetrics() {
	if p.metrics == nil {
		return
	}
	p.metrics.PoolInUse.Set(float64(p.inUse))
	p.metrics.PoolPeak.Set(float64(p.peakCreated))
}

// InUse returns the number of currently checked-out slabs.
func (p *Pool) InUse() int { return p.inUse }

// Free returns the number of slabs available for reuse on the free list.
func (p *Pool) Free() int { return len(p.freeList) }

// Peak returns the highest total-created count ever reached.
func (p *Pool) Peak() int { return p.peakCreated }

// TotalCreated returns how many slabs have been allocated over the
// pool's lifetime, including ones since released.
func (p *Pool) TotalCreated() int { return p.totalCreated }

// SlabBlackboardCapacity returns the blackboard capacity each slab is
// built with — the Go analogue of the C source's fixed slab byte size.
func (p *Pool) SlabBlackboardCapacity() int { return p.bbCapacity }

// ResetForTests drops every slab and zeroes all counters. Intended
// solely for test isolation, mirroring the C source's
// rogue_ai_agent_pool_reset_for_tests.
func (p *Pool) ResetForTests() {
	p.slots = nil
	p.freeList = nil
	p.inUse = 0
	p.peakCreated = 0
	p.totalCreated = 0
}
