// Package behaviortree implements the polymorphic behavior-tree node graph,
// root tick loop, active-path stamping, and serialization (spec.md §3,
// §4.3's membership rule, §4.4's ordering guarantees).
package behaviortree

import (
	"github.com/jihwankim/roguelike-ai-core/pkg/blackboard"
)

// Status is a node's tick result.
type Status int

const (
	StatusInvalid Status = iota
	StatusSuccess
	StatusFailure
	StatusRunning
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "Success"
	case StatusFailure:
		return "Failure"
	case StatusRunning:
		return "Running"
	default:
		return "Invalid"
	}
}

// Vec2 is a plain 2D float32 vector; an alias of blackboard.Vec2 so node
// code and blackboard storage share one representation.
type Vec2 = blackboard.Vec2

// World is the set of host-supplied functions the core consumes (spec.md
// §6): tile blocking for line-of-sight, and projectile spawning for ranged
// actions. A host passes its own implementation; it must be synchronous
// and total — no blocking I/O.
type World interface {
	IsTileBlocking(tx, ty int) bool
	SpawnProjectile(origin, dirUnit Vec2, speed float32, lifeMs int, damage float32)
}

// TickContext carries everything a node needs to evaluate one tick: the
// owning agent's blackboard, the frame delta, the tree's current tick
// index (for active-path stamping), and the host World.
type TickContext struct {
	BB        *blackboard.Blackboard
	Dt        float32
	TickIndex uint64
	World     World
}

// Node is the uniform interface every tree element implements: composites,
// decorators, conditions, and actions. Per DESIGN NOTES §9 this replaces a
// C vtable+void* pattern with a small interface plus per-variant state
// carried in the concrete type.
type Node interface {
	Name() string
	Children() []Node
	Tick(tc *TickContext) Status
	LastStatus() Status
	LastTick() uint64
}

// Base is embedded by every concrete node. It owns the debug name and the
// last_status/last_tick stamping required for active-path serialization:
// last_tick only advances on Success/Running, per spec.md §3's membership
// rule, while last_status always reflects the most recent return value.
type Base struct {
	name       string
	lastStatus Status
	lastTick   uint64
}

// NewBase constructs a Base with the given debug name.
func NewBase(name string) Base {
	return Base{name: name, lastStatus: StatusInvalid}
}

func (b *Base) Name() string        { return b.name }
func (b *Base) LastStatus() Status  { return b.lastStatus }
func (b *Base) LastTick() uint64    { return b.lastTick }

// Stamp records s as the node's result for this tick, advancing lastTick
// only when s is Success or Running. It returns s unchanged so callers can
// write `return n.Stamp(tc, status)`.
func (b *Base) Stamp(tc *TickContext, s Status) Status {
	b.lastStatus = s
	if s == StatusSuccess || s == StatusRunning {
		b.lastTick = tc.TickIndex
	}
	return s
}

// OnActivePath reports whether this node belongs to the active path for
// the given current tick index (spec.md §3 invariant ii).
func (b *Base) OnActivePath(currentTick uint64) bool {
	return b.lastTick == currentTick && (b.lastStatus == StatusSuccess || b.lastStatus == StatusRunning)
}

// Leaf is embedded by conditions/actions that never have children.
type Leaf struct{ Base }

func (l *Leaf) Children() []Node { return nil }
