package node

import "github.com/jihwankim/roguelike-ai-core/pkg/behaviortree"

// FlankAttempt computes a point offset perpendicular to (player-agent),
// writing it to outFlankKey, and succeeds immediately — callers compose
// it with a MoveTo to actually approach the point (spec.md §4.3's
// FlankAttempt contract). It fails only when either position is missing.
type FlankAttempt struct {
	behaviortree.Leaf
	playerKey, agentKey, outFlankKey string
	offset                           float32
}

// NewFlankAttempt builds a FlankAttempt action.
func NewFlankAttempt(name, playerKey, agentKey, outFlankKey string, offset float32) *FlankAttempt {
	return &FlankAttempt{Leaf: behaviortree.Leaf{Base: behaviortree.NewBase(name)}, playerKey: playerKey, agentKey: agentKey, outFlankKey: outFlankKey, offset: offset}
}

func (f *FlankAttempt) Tick(tc *TickContext) Status {
	player, ok1 := tc.BB.GetVec2(f.playerKey)
	agent, ok2 := tc.BB.GetVec2(f.agentKey)
	if !ok1 || !ok2 {
		return f.Stamp(tc, StatusFailure)
	}
	axis := normalize(sub(player, agent))
	side := perp(axis)
	tc.BB.SetVec2(f.outFlankKey, add(player, scale(side, f.offset)))
	return f.Stamp(tc, StatusSuccess)
}

// Regroup moves the agent toward pointKey, succeeding when distance² <
// 0.04 (spec.md §4.3's Regroup contract).
type Regroup struct {
	behaviortree.Leaf
	pointKey, agentKey string
	speed              float32
}

const regroupArriveThresholdSq = 0.04

// NewRegroup builds a Regroup action.
func NewRegroup(name, pointKey, agentKey string, speed float32) *Regroup {
	return &Regroup{Leaf: behaviortree.Leaf{Base: behaviortree.NewBase(name)}, pointKey: pointKey, agentKey: agentKey, speed: speed}
}

func (r *Regroup) Tick(tc *TickContext) Status {
	pos, ok1 := tc.BB.GetVec2(r.agentKey)
	point, ok2 := tc.BB.GetVec2(r.pointKey)
	if !ok1 || !ok2 {
		return r.Stamp(tc, StatusFailure)
	}
	if distSq(pos, point) < regroupArriveThresholdSq {
		return r.Stamp(tc, StatusSuccess)
	}
	dir := normalize(sub(point, pos))
	tc.BB.SetVec2(r.agentKey, add(pos, scale(dir, r.speed*tc.Dt)))
	return r.Stamp(tc, StatusRunning)
}

// CoverSeek computes, on its first tick, a cover point on the far side
// of obstacleKey from playerKey at radius, then steps the agent toward
// it. On arrival it verifies the obstacle actually occludes the
// player-cover line (the obstacle center must fall within 1.05*radius
// of that segment); on success it sets inCoverFlagKey and succeeds, else
// it fails (spec.md §4.3's CoverSeek contract).
type CoverSeek struct {
	behaviortree.Leaf
	playerKey, agentKey, obstacleKey, outCoverKey, inCoverFlagKey string
	radius, speed                                                 float32
	computed                                                      bool
	coverPoint                                                    Vec2
}

// NewCoverSeek builds a CoverSeek action.
func NewCoverSeek(name, playerKey, agentKey, obstacleKey, outCoverKey, inCoverFlagKey string, radius, speed float32) *CoverSeek {
	return &CoverSeek{
		Leaf: behaviortree.Leaf{Base: behaviortree.NewBase(name)},
		playerKey: playerKey, agentKey: agentKey, obstacleKey: obstacleKey,
		outCoverKey: outCoverKey, inCoverFlagKey: inCoverFlagKey,
		radius: radius, speed: speed,
	}
}

func (c *CoverSeek) Tick(tc *TickContext) Status {
	player, ok1 := tc.BB.GetVec2(c.playerKey)
	obstacle, ok2 := tc.BB.GetVec2(c.obstacleKey)
	pos, ok3 := tc.BB.GetVec2(c.agentKey)
	if !ok1 || !ok2 || !ok3 {
		return c.Stamp(tc, StatusFailure)
	}
	if !c.computed {
		away := normalize(sub(obstacle, player))
		c.coverPoint = add(obstacle, scale(away, c.radius))
		tc.BB.SetVec2(c.outCoverKey, c.coverPoint)
		c.computed = true
	}
	if distSq(pos, c.coverPoint) >= arriveThresholdSq {
		dir := normalize(sub(c.coverPoint, pos))
		tc.BB.SetVec2(c.agentKey, add(pos, scale(dir, c.speed*tc.Dt)))
		return c.Stamp(tc, StatusRunning)
	}
	if pointToSegmentDist(obstacle, player, c.coverPoint) > 1.05*c.radius {
		return c.Stamp(tc, StatusFailure)
	}
	tc.BB.SetBool(c.inCoverFlagKey, true)
	return c.Stamp(tc, StatusSuccess)
}

func pointToSegmentDist(p, a, b Vec2) float32 {
	ab := sub(b, a)
	l2 := lengthSq(ab)
	if l2 < 1e-6 {
		return dist(p, a)
	}
	t := dot(sub(p, a), ab) / l2
	t = clampf(t, 0, 1)
	proj := add(a, scale(ab, t))
	return dist(p, proj)
}

// SquadSetIds assigns the agent's squad id (Int at squadIdKey) and
// member index (Int at memberIndexKey) once, succeeding every tick
// without overwriting an already-assigned value (spec.md §4.3's
// SquadSetIds contract).
type SquadSetIds struct {
	behaviortree.Leaf
	squadIdKey, memberIndexKey string
	squadID, memberIndex       int32
}

// NewSquadSetIds builds a SquadSetIds action.
func NewSquadSetIds(name, squadIdKey, memberIndexKey string, squadID, memberIndex int32) *SquadSetIds {
	return &SquadSetIds{Leaf: behaviortree.Leaf{Base: behaviortree.NewBase(name)}, squadIdKey: squadIdKey, memberIndexKey: memberIndexKey, squadID: squadID, memberIndex: memberIndex}
}

func (s *SquadSetIds) Tick(tc *TickContext) Status {
	if _, ok := tc.BB.GetInt(s.squadIdKey); !ok {
		tc.BB.SetInt(s.squadIdKey, s.squadID)
	}
	if _, ok := tc.BB.GetInt(s.memberIndexKey); !ok {
		tc.BB.SetInt(s.memberIndexKey, s.memberIndex)
	}
	return s.Stamp(tc, StatusSuccess)
}

// RoleAssign writes a role id (Int at roleKey) as memberIndex % 3, the
// unweighted fallback of spec.md §4.3's "role (weighted or index % 3)".
type RoleAssign struct {
	behaviortree.Leaf
	memberIndexKey, roleKey string
}

// NewRoleAssign builds a RoleAssign action.
func NewRoleAssign(name, memberIndexKey, roleKey string) *RoleAssign {
	return &RoleAssign{Leaf: behaviortree.Leaf{Base: behaviortree.NewBase(name)}, memberIndexKey: memberIndexKey, roleKey: roleKey}
}

func (r *RoleAssign) Tick(tc *TickContext) Status {
	idx, ok := tc.BB.GetInt(r.memberIndexKey)
	if !ok {
		return r.Stamp(tc, StatusFailure)
	}
	tc.BB.SetInt(r.roleKey, idx%3)
	return r.Stamp(tc, StatusSuccess)
}

// SurroundAssignSlot writes a point on a circle of radius around
// targetKey, at angle (memberIndex/memberTotal)*2π, to destKey (spec.md
// §4.3's SurroundAssignSlot contract).
type SurroundAssignSlot struct {
	behaviortree.Leaf
	targetKey, memberIndexKey, destKey string
	memberTotal                        int32
	radius                             float32
}

// NewSurroundAssignSlot builds a SurroundAssignSlot action.
func NewSurroundAssignSlot(name, targetKey, memberIndexKey, destKey string, memberTotal int32, radius float32) *SurroundAssignSlot {
	return &SurroundAssignSlot{
		Leaf: behaviortree.Leaf{Base: behaviortree.NewBase(name)},
		targetKey: targetKey, memberIndexKey: memberIndexKey, destKey: destKey,
		memberTotal: memberTotal, radius: radius,
	}
}

func (s *SurroundAssignSlot) Tick(tc *TickContext) Status {
	target, ok1 := tc.BB.GetVec2(s.targetKey)
	idx, ok2 := tc.BB.GetInt(s.memberIndexKey)
	if !ok1 || !ok2 || s.memberTotal <= 0 {
		return s.Stamp(tc, StatusFailure)
	}
	frac := float32(idx) / float32(s.memberTotal)
	angle := frac * twoPi
	offset := Vec2{X: cos32(angle) * s.radius, Y: sin32(angle) * s.radius}
	tc.BB.SetVec2(s.destKey, add(target, offset))
	return s.Stamp(tc, StatusSuccess)
}

// FocusBroadcastIfLeader sets outFlagKey, writes targetKey's position
// into outPosKey, and resets the Timer at outTTLKey to 0 whenever the
// Float threat at threatKey is at or above threshold; Failure otherwise
// (spec.md §4.3's FocusBroadcastIfLeader contract).
type FocusBroadcastIfLeader struct {
	behaviortree.Leaf
	threatKey, targetKey, outFlagKey, outPosKey, outTTLKey string
	threshold                                              float32
}

// NewFocusBroadcastIfLeader builds a FocusBroadcastIfLeader action.
func NewFocusBroadcastIfLeader(name, threatKey, targetKey, outFlagKey, outPosKey, outTTLKey string, threshold float32) *FocusBroadcastIfLeader {
	return &FocusBroadcastIfLeader{
		Leaf: behaviortree.Leaf{Base: behaviortree.NewBase(name)},
		threatKey: threatKey, targetKey: targetKey,
		outFlagKey: outFlagKey, outPosKey: outPosKey, outTTLKey: outTTLKey,
		threshold: threshold,
	}
}

func (f *FocusBroadcastIfLeader) Tick(tc *TickContext) Status {
	threat, ok := tc.BB.GetFloat(f.threatKey)
	if !ok || threat < f.threshold {
		return f.Stamp(tc, StatusFailure)
	}
	tc.BB.SetBool(f.outFlagKey, true)
	if target, ok := tc.BB.GetVec2(f.targetKey); ok {
		tc.BB.SetVec2(f.outPosKey, target)
	}
	tc.BB.SetTimer(f.outTTLKey, 0)
	return f.Stamp(tc, StatusSuccess)
}

// FocusDecay advances the Timer at ttlKey; once it exceeds maxTTL it
// clears flagKey and fails, otherwise it succeeds (spec.md §4.3's
// FocusDecay contract).
type FocusDecay struct {
	behaviortree.Leaf
	flagKey, ttlKey string
	maxTTL          float32
}

// NewFocusDecay builds a FocusDecay action.
func NewFocusDecay(name, flagKey, ttlKey string, maxTTL float32) *FocusDecay {
	return &FocusDecay{Leaf: behaviortree.Leaf{Base: behaviortree.NewBase(name)}, flagKey: flagKey, ttlKey: ttlKey, maxTTL: maxTTL}
}

func (f *FocusDecay) Tick(tc *TickContext) Status {
	v, _ := tc.BB.GetTimer(f.ttlKey)
	v += tc.Dt
	tc.BB.SetTimer(f.ttlKey, v)
	if v > f.maxTTL {
		tc.BB.SetBool(f.flagKey, false)
		return f.Stamp(tc, StatusFailure)
	}
	return f.Stamp(tc, StatusSuccess)
}
