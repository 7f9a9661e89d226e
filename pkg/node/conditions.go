package node

import (
	"github.com/jihwankim/roguelike-ai-core/pkg/behaviortree"
	"github.com/jihwankim/roguelike-ai-core/pkg/perception"
)

// PlayerVisible succeeds iff the target at playerPosKey falls within
// fovDeg of facingKey's direction from agentPosKey, within maxDist, and
// has clear line of sight through tc.World (spec.md §4.3's PlayerVisible
// contract).
type PlayerVisible struct {
	behaviortree.Leaf
	playerPosKey, agentPosKey, facingKey string
	fovDeg, maxDist                      float32
}

// NewPlayerVisible builds a PlayerVisible condition.
func NewPlayerVisible(name, playerPosKey, agentPosKey, facingKey string, fovDeg, maxDist float32) *PlayerVisible {
	return &PlayerVisible{
		Leaf: behaviortree.Leaf{Base: behaviortree.NewBase(name)},
		playerPosKey: playerPosKey, agentPosKey: agentPosKey, facingKey: facingKey,
		fovDeg: fovDeg, maxDist: maxDist,
	}
}

func (p *PlayerVisible) Tick(tc *TickContext) Status {
	agentPos, ok1 := tc.BB.GetVec2(p.agentPosKey)
	facing, ok2 := tc.BB.GetVec2(p.facingKey)
	playerPos, ok3 := tc.BB.GetVec2(p.playerPosKey)
	if !ok1 || !ok2 || !ok3 {
		return p.Stamp(tc, StatusFailure)
	}
	visible := perception.FOVVisible(
		tc.World,
		perception.Vec2{X: agentPos.X, Y: agentPos.Y},
		perception.Vec2{X: facing.X, Y: facing.Y},
		perception.Vec2{X: playerPos.X, Y: playerPos.Y},
		p.fovDeg, p.maxDist,
	)
	if visible {
		return p.Stamp(tc, StatusSuccess)
	}
	return p.Stamp(tc, StatusFailure)
}

// TimerElapsed succeeds iff the Timer at key is at or above v (spec.md
// §4.3's TimerElapsed contract).
type TimerElapsed struct {
	behaviortree.Leaf
	key string
	v   float32
}

// NewTimerElapsed builds a TimerElapsed condition.
func NewTimerElapsed(name, key string, v float32) *TimerElapsed {
	return &TimerElapsed{Leaf: behaviortree.Leaf{Base: behaviortree.NewBase(name)}, key: key, v: v}
}

func (t *TimerElapsed) Tick(tc *TickContext) Status {
	val, _ := tc.BB.GetTimer(t.key)
	if val >= t.v {
		return t.Stamp(tc, StatusSuccess)
	}
	return t.Stamp(tc, StatusFailure)
}

// HealthBelow succeeds iff the Float at key is strictly below threshold
// (spec.md §4.3's HealthBelow contract).
type HealthBelow struct {
	behaviortree.Leaf
	key       string
	threshold float32
}

// NewHealthBelow builds a HealthBelow condition.
func NewHealthBelow(name, key string, threshold float32) *HealthBelow {
	return &HealthBelow{Leaf: behaviortree.Leaf{Base: behaviortree.NewBase(name)}, key: key, threshold: threshold}
}

func (h *HealthBelow) Tick(tc *TickContext) Status {
	v, ok := tc.BB.GetFloat(h.key)
	if ok && v < h.threshold {
		return h.Stamp(tc, StatusSuccess)
	}
	return h.Stamp(tc, StatusFailure)
}

// ShouldRetreat succeeds iff the Float health at hpKey is below hpT, or
// the Int death count at deathsKey is at or above deathsT (spec.md
// §4.3's ShouldRetreat contract).
type ShouldRetreat struct {
	behaviortree.Leaf
	hpKey, deathsKey string
	hpT              float32
	deathsT          int32
}

// NewShouldRetreat builds a ShouldRetreat condition.
func NewShouldRetreat(name, hpKey, deathsKey string, hpT float32, deathsT int32) *ShouldRetreat {
	return &ShouldRetreat{Leaf: behaviortree.Leaf{Base: behaviortree.NewBase(name)}, hpKey: hpKey, deathsKey: deathsKey, hpT: hpT, deathsT: deathsT}
}

func (s *ShouldRetreat) Tick(tc *TickContext) Status {
	hp, hpOk := tc.BB.GetFloat(s.hpKey)
	deaths, deathsOk := tc.BB.GetInt(s.deathsKey)
	if (hpOk && hp < s.hpT) || (deathsOk && deaths >= s.deathsT) {
		return s.Stamp(tc, StatusSuccess)
	}
	return s.Stamp(tc, StatusFailure)
}
