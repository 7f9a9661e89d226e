// Package bridge implements the glue between an external enemy entity
// and the AI runtime core: spawn, per-tick sync, death, and modifier
// application (spec.md §4.10). It is grounded on
// `src/core/integration/enemy_ai_bridge.h`'s richer surface (modifier
// flags, resync-on-change, kill credit) and the teacher's
// composition-of-components `Orchestrator` style.
package bridge

import (
	"github.com/google/uuid"

	"github.com/jihwankim/roguelike-ai-core/pkg/agentpool"
	"github.com/jihwankim/roguelike-ai-core/pkg/behaviortree"
	"github.com/jihwankim/roguelike-ai-core/pkg/blackboard"
	"github.com/jihwankim/roguelike-ai-core/pkg/intensity"
	"github.com/jihwankim/roguelike-ai-core/pkg/logging"
	"github.com/jihwankim/roguelike-ai-core/pkg/metrics"
	"github.com/jihwankim/roguelike-ai-core/pkg/node"
)

// Blackboard key conventions the bridge syncs on every tick. Node trees
// built by a host's enemy config are expected to read/write through
// these same keys.
const (
	KeyAgentPos  = "agent_pos"
	KeyPlayerPos = "player_pos"
	KeyFacing    = "facing"
)

// SpawnFlags selects an enemy's initial intensity preset (spec.md §4.10
// "Spawn: select initial intensity from boss/elite/tier flags").
type SpawnFlags struct {
	Boss  bool
	Elite bool
	Tier  intensity.Tier // used when neither Boss nor Elite is set
}

func (f SpawnFlags) initialTier() intensity.Tier {
	switch {
	case f.Boss:
		return intensity.Frenzied
	case f.Elite:
		return intensity.Aggressive
	default:
		return f.Tier
	}
}

// TreeBuilder constructs a fresh behavior tree for a newly spawned
// enemy. A host supplies its own (config-driven) builder; DefaultTree
// below is the fallback spec.md §4.10 names: "initial trees may be a
// single MoveTo leaf targeting the player".
type TreeBuilder func() behaviortree.Node

// DefaultTree builds the minimal spawn-time tree: a single MoveTo leaf
// that steers the agent toward the player's position at speed.
func DefaultTree(speed float32) behaviortree.Node {
	return node.NewMoveTo("MoveToPlayer", KeyPlayerPos, KeyAgentPos, "reached_player", speed)
}

// Enemy is one live enemy instance: its pool-backed agent state, its
// behavior tree, its intensity state machine, and a stable instance id
// independent of the deterministic tick stream (used for host-side
// correlation, logging, and kill-credit bookkeeping).
type Enemy struct {
	InstanceID string
	handle     int
	state      *agentpool.AgentState
	tree       *behaviortree.Tree
	intensity  *intensity.State
	modifiers  map[string]bool
}

// Bridge owns the agent pool and wires spawn/tick/death for any number
// of live enemies.
type Bridge struct {
	pool    *agentpool.Pool
	log     *logging.Logger
	metrics *metrics.Registry
}

// New creates a Bridge backed by pool, logging lifecycle events through
// log (nil uses a no-op logger).
func New(pool *agentpool.Pool, log *logging.Logger) *Bridge {
	if log == nil {
		log = logging.Nop()
	}
	return &Bridge{pool: pool, log: log}
}

// SetMetrics attaches a metrics registry the Bridge updates whenever an
// enemy's intensity tier changes (spawn, modifier application, death).
// Passing nil disables instrumentation again.
func (b *Bridge) SetMetrics(m *metrics.Registry) {
	b.metrics = m
}

// bumpTier adjusts the live-agent count recorded against tier's gauge
// label by delta.
func (b *Bridge) bumpTier(tier intensity.Tier, delta float64) {
	if b.metrics == nil {
		return
	}
	b.metrics.TierGauge.WithLabelValues(tier.String()).Add(delta)
}

// Spawn acquires agent state from the pool, builds the enemy's tree via
// build (DefaultTree if nil), and selects its initial intensity tier
// from flags (spec.md §4.10 "Spawn").
func (b *Bridge) Spawn(flags SpawnFlags, build TreeBuilder) *Enemy {
	state, handle := b.pool.Acquire()
	if build == nil {
		build = func() behaviortree.Node { return DefaultTree(1.0) }
	}
	e := &Enemy{
		InstanceID: uuid.NewString(),
		handle:     handle,
		state:      state,
		tree:       behaviortree.New(build()),
		intensity:  intensity.New(),
		modifiers:  make(map[string]bool),
	}
	e.intensity.Force(flags.initialTier())
	b.bumpTier(e.intensity.Tier, 1)
	b.log.Debug("enemy spawned", "instance_id", e.InstanceID, "tier", e.intensity.Tier.String())
	return e
}

// Tick syncs world state into the enemy's blackboard, ticks its tree,
// and writes the agent's position back out (spec.md §4.10 "Per tick").
func (b *Bridge) Tick(e *Enemy, world behaviortree.World, playerPos blackboard.Vec2, dt float32) behaviortree.Status {
	bb := e.state.BB
	bb.SetVec2(KeyAgentPos, e.state.Pos)
	bb.SetVec2(KeyPlayerPos, playerPos)
	bb.SetVec2(KeyFacing, e.state.Facing)

	bb.Tick(dt)
	status := e.tree.Tick(bb, world, dt)

	if pos, ok := bb.GetVec2(KeyAgentPos); ok {
		e.state.Pos = pos
	}
	return status
}

// OnDeath destroys the enemy's tree and releases its pool slab (spec.md
// §4.10 "Death: destroy the tree and release the agent state; clear
// flags").
func (b *Bridge) OnDeath(e *Enemy) {
	b.bumpTier(e.intensity.Tier, -1)
	e.tree = nil
	for k := range e.modifiers {
		delete(e.modifiers, k)
	}
	b.pool.Release(e.handle)
	b.log.Debug("enemy died", "instance_id", e.InstanceID)
}

// ApplyModifier applies a known modifier id, forcing the enemy's
// intensity tier and recording the id on the enemy (spec.md §4.10
// "Modifier application"). It does not touch the blackboard; the enemy's
// state is synced again only by its next Tick. Unknown modifier ids are a
// no-op.
func (b *Bridge) ApplyModifier(e *Enemy, modifierID string) {
	tier, ok := modifierTier[modifierID]
	if !ok {
		return
	}
	old := e.intensity.Tier
	e.modifiers[modifierID] = true
	e.intensity.Force(tier)
	if tier != old {
		b.bumpTier(old, -1)
		b.bumpTier(tier, 1)
	}
	b.log.Debug("modifier applied", "instance_id", e.InstanceID, "modifier", modifierID, "tier", tier.String())
}

// Intensity returns the enemy's intensity state machine.
func (e *Enemy) Intensity() *intensity.State { return e.intensity }

// Tree returns the enemy's behavior tree.
func (e *Enemy) Tree() *behaviortree.Tree { return e.tree }

// State returns the enemy's pooled agent state.
func (e *Enemy) State() *agentpool.AgentState { return e.state }

// HasModifier reports whether modifierID was applied and not yet
// cleared by death.
func (e *Enemy) HasModifier(modifierID string) bool { return e.modifiers[modifierID] }
