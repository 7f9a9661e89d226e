package bridge

import (
	"github.com/jihwankim/roguelike-ai-core/pkg/behaviortree"
	"github.com/jihwankim/roguelike-ai-core/pkg/blackboard"
)

// PlayerLocator supplies the current player position; the scheduler.Agent
// adapter below reads it once per tick rather than capturing a stale
// copy, since the player moves independently of any one enemy.
type PlayerLocator func() blackboard.Vec2

// scheduledEnemy adapts a Bridge-managed Enemy to the scheduler.Agent
// seam (spec.md §4.6) without pkg/scheduler needing to know about
// pkg/bridge at all — the dependency points one way, matching the
// module map's "leaves first" ordering.
type scheduledEnemy struct {
	bridge *Bridge
	enemy  *Enemy
	world  behaviortree.World
	player PlayerLocator
	dt     float32
}

// AsScheduledAgent wraps e so it satisfies scheduler.Agent: DistSqToPlayer
// reads the enemy's pooled position against player, TickFull drives the
// full sync-tick-writeback cycle (spec.md §4.10), and TickMaintenance is
// the reserved no-op spec.md §4.6 and the GLOSSARY describe — maintenance
// never ticks the behavior tree.
func (b *Bridge) AsScheduledAgent(e *Enemy, world behaviortree.World, player PlayerLocator) *scheduledEnemy {
	return &scheduledEnemy{bridge: b, enemy: e, world: world, player: player}
}

func (s *scheduledEnemy) DistSqToPlayer() float32 {
	p := s.player()
	pos := s.enemy.State().Pos
	dx, dy := pos.X-p.X, pos.Y-p.Y
	return dx*dx + dy*dy
}

func (s *scheduledEnemy) TickFull(dt float32) {
	s.bridge.Tick(s.enemy, s.world, s.player(), dt)
}

// TickMaintenance is the reserved no-op maintenance path (spec.md §4.6
// GLOSSARY: "currently a no-op placeholder"). It deliberately does not
// touch the enemy's tree or blackboard beyond what a future maintenance
// pass might need (e.g. decaying a standalone timer) — today there is
// nothing to do.
func (s *scheduledEnemy) TickMaintenance(dt float32) {}
