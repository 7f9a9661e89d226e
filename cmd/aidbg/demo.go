package main

import (
	"github.com/jihwankim/roguelike-ai-core/pkg/behaviortree"
	"github.com/jihwankim/roguelike-ai-core/pkg/blackboard"
	"github.com/jihwankim/roguelike-ai-core/pkg/config"
	"github.com/jihwankim/roguelike-ai-core/pkg/node"
	"github.com/jihwankim/roguelike-ai-core/pkg/perception"
	"github.com/jihwankim/roguelike-ai-core/pkg/scheduler"
)

// demoWorld is a stand-in World for CLI demos: it never blocks a tile
// and records spawned projectiles for inspection.
type demoWorld struct {
	spawned int
}

func (w *demoWorld) IsTileBlocking(tx, ty int) bool { return false }

func (w *demoWorld) SpawnProjectile(origin, dirUnit behaviortree.Vec2, speed float32, lifeMs int, damage float32) {
	w.spawned++
}

// buildDemoTree constructs a small representative tree exercising a
// Selector over a visibility condition guarding a melee attack, falling
// back to chasing the player — close enough to a real enemy config to
// be useful for `aidbg tree`/`aidbg trace`/`aidbg verify` without
// depending on a host's own config format.
func buildDemoTree() behaviortree.Node {
	return node.NewSelector("Root",
		node.NewSequence("EngageIfVisible",
			node.NewPlayerVisible("PlayerVisible", "player_pos", "agent_pos", "facing", 140, 10),
			node.NewCooldown("AttackCooldown", node.NewAttackMelee("AttackMelee", "in_range", "melee_cd", 0.8), "melee_cd", 0.8),
		),
		node.NewMoveTo("ChasePlayer", "player_pos", "agent_pos", "reached_player", 2.0),
	)
}

// buildDemoBlackboard seeds a blackboard with the keys buildDemoTree's
// nodes read, positioning the agent so the demo tree's visibility branch
// can be exercised. capacity comes from the loaded config's
// blackboard.capacity setting.
func buildDemoBlackboard(capacity int) *blackboard.Blackboard {
	bb := blackboard.New(capacity)
	bb.SetVec2("agent_pos", blackboard.Vec2{X: 0, Y: 0})
	bb.SetVec2("player_pos", blackboard.Vec2{X: 5, Y: 0})
	bb.SetVec2("facing", blackboard.Vec2{X: 1, Y: 0})
	bb.SetBool("in_range", true)
	return bb
}

// buildDemoScheduler constructs the frame-bucketed scheduler from the
// loaded config's scheduler.buckets/lod_radius_tiles settings.
func buildDemoScheduler(cfg *config.Config) *scheduler.Scheduler {
	return scheduler.New(cfg.Scheduler.Buckets, float32(cfg.Scheduler.LODRadiusTiles))
}

// buildDemoEventRing constructs the hearing event ring from the loaded
// config's perception.event_ring_capacity setting.
func buildDemoEventRing(cfg *config.Config) *perception.EventRing {
	return perception.NewEventRing(cfg.Perception.EventRingCapacity)
}

// demoScheduledAgent adapts the demo tree/blackboard pair to
// scheduler.Agent so `aidbg trace` can exercise the scheduler's LOD
// gating instead of ticking the tree unconditionally.
type demoScheduledAgent struct {
	tree  *behaviortree.Tree
	bb    *blackboard.Blackboard
	world behaviortree.World
}

func (a *demoScheduledAgent) DistSqToPlayer() float32 {
	agentPos, _ := a.bb.GetVec2("agent_pos")
	playerPos, _ := a.bb.GetVec2("player_pos")
	dx, dy := agentPos.X-playerPos.X, agentPos.Y-playerPos.Y
	return dx*dx + dy*dy
}

func (a *demoScheduledAgent) TickFull(dt float32) {
	a.bb.Tick(dt)
	a.tree.Tick(a.bb, a.world, dt)
}

func (a *demoScheduledAgent) TickMaintenance(dt float32) {}
