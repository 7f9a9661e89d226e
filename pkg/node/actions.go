package node

import "github.com/jihwankim/roguelike-ai-core/pkg/behaviortree"

// arriveThresholdSq is the fixed "close enough" squared distance used by
// MoveTo and Regroup (spec.md §4.3: "distance² < 0.05").
const arriveThresholdSq = 0.05

// MoveTo steps the agent's position (Vec2 at agentKey) toward targetKey
// by speed*dt each tick. Succeeds and sets reachedKey true once
// distance² < 0.05; otherwise Running (spec.md §4.3's MoveTo contract).
type MoveTo struct {
	behaviortree.Leaf
	targetKey, agentKey, reachedKey string
	speed                           float32
}

// NewMoveTo builds a MoveTo action.
func NewMoveTo(name, targetKey, agentKey, reachedKey string, speed float32) *MoveTo {
	return &MoveTo{Leaf: behaviortree.Leaf{Base: behaviortree.NewBase(name)}, targetKey: targetKey, agentKey: agentKey, reachedKey: reachedKey, speed: speed}
}

func (m *MoveTo) Tick(tc *TickContext) Status {
	pos, ok1 := tc.BB.GetVec2(m.agentKey)
	target, ok2 := tc.BB.GetVec2(m.targetKey)
	if !ok1 || !ok2 {
		return m.Stamp(tc, StatusFailure)
	}
	if distSq(pos, target) < arriveThresholdSq {
		tc.BB.SetBool(m.reachedKey, true)
		return m.Stamp(tc, StatusSuccess)
	}
	dir := normalize(sub(target, pos))
	tc.BB.SetVec2(m.agentKey, add(pos, scale(dir, m.speed*tc.Dt)))
	return m.Stamp(tc, StatusRunning)
}

// FleeFrom steps the agent's position directly away from threatKey by
// speed*dt every tick and never succeeds (spec.md §4.3's FleeFrom
// contract).
type FleeFrom struct {
	behaviortree.Leaf
	threatKey, agentKey string
	speed               float32
}

// NewFleeFrom builds a FleeFrom action.
func NewFleeFrom(name, threatKey, agentKey string, speed float32) *FleeFrom {
	return &FleeFrom{Leaf: behaviortree.Leaf{Base: behaviortree.NewBase(name)}, threatKey: threatKey, agentKey: agentKey, speed: speed}
}

func (f *FleeFrom) Tick(tc *TickContext) Status {
	pos, ok1 := tc.BB.GetVec2(f.agentKey)
	threat, ok2 := tc.BB.GetVec2(f.threatKey)
	if ok1 && ok2 {
		dir := normalize(sub(pos, threat))
		tc.BB.SetVec2(f.agentKey, add(pos, scale(dir, f.speed*tc.Dt)))
	}
	return f.Stamp(tc, StatusRunning)
}

// AttackMelee succeeds and resets the Timer at cdTimerKey to 0 whenever
// inRangeFlagKey is true; Failure otherwise. Any cooldown gating happens
// upstream (e.g. via Cooldown, which counts the timer up from 0 and
// gates until it reaches its threshold) — this node does not check the
// timer itself, matching the preserved Open Question decision that a
// gated attempt leaves the cooldown untouched (spec.md §4.3's AttackMelee
// contract; the reset-to-0 value matches original_source's
// advanced_nodes.c, which zeroes the timer on a successful attack rather
// than arming it to the cooldown duration).
type AttackMelee struct {
	behaviortree.Leaf
	inRangeFlagKey, cdTimerKey string
	cd                         float32
}

// NewAttackMelee builds an AttackMelee action.
func NewAttackMelee(name, inRangeFlagKey, cdTimerKey string, cd float32) *AttackMelee {
	return &AttackMelee{Leaf: behaviortree.Leaf{Base: behaviortree.NewBase(name)}, inRangeFlagKey: inRangeFlagKey, cdTimerKey: cdTimerKey, cd: cd}
}

func (a *AttackMelee) Tick(tc *TickContext) Status {
	inRange, _ := tc.BB.GetBool(a.inRangeFlagKey)
	if !inRange {
		return a.Stamp(tc, StatusFailure)
	}
	tc.BB.SetTimer(a.cdTimerKey, 0)
	return a.Stamp(tc, StatusSuccess)
}

// AttackRanged has the same contract as AttackMelee, gated by
// clearFlagKey (line-of-sight/firing-lane clear) instead of a melee
// range flag (spec.md §4.3: "Same contract").
type AttackRanged struct {
	behaviortree.Leaf
	clearFlagKey, cdTimerKey string
	cd                       float32
}

// NewAttackRanged builds an AttackRanged action.
func NewAttackRanged(name, clearFlagKey, cdTimerKey string, cd float32) *AttackRanged {
	return &AttackRanged{Leaf: behaviortree.Leaf{Base: behaviortree.NewBase(name)}, clearFlagKey: clearFlagKey, cdTimerKey: cdTimerKey, cd: cd}
}

func (a *AttackRanged) Tick(tc *TickContext) Status {
	clear, _ := tc.BB.GetBool(a.clearFlagKey)
	if !clear {
		return a.Stamp(tc, StatusFailure)
	}
	tc.BB.SetTimer(a.cdTimerKey, 0)
	return a.Stamp(tc, StatusSuccess)
}

// Strafe moves the agent perpendicular to the target vector, the sign of
// the perpendicular chosen by leftFlagKey, advancing an elapsed Timer at
// elapsedKey; once elapsed reaches duration it flips leftFlagKey and
// succeeds (spec.md §4.3's Strafe contract).
type Strafe struct {
	behaviortree.Leaf
	targetKey, agentKey, leftFlagKey, elapsedKey string
	speed, duration                              float32
}

// NewStrafe builds a Strafe action.
func NewStrafe(name, targetKey, agentKey, leftFlagKey, elapsedKey string, speed, duration float32) *Strafe {
	return &Strafe{
		Leaf: behaviortree.Leaf{Base: behaviortree.NewBase(name)},
		targetKey: targetKey, agentKey: agentKey, leftFlagKey: leftFlagKey, elapsedKey: elapsedKey,
		speed: speed, duration: duration,
	}
}

func (s *Strafe) Tick(tc *TickContext) Status {
	pos, ok1 := tc.BB.GetVec2(s.agentKey)
	target, ok2 := tc.BB.GetVec2(s.targetKey)
	if !ok1 || !ok2 {
		return s.Stamp(tc, StatusFailure)
	}
	left, _ := tc.BB.GetBool(s.leftFlagKey)
	tangent := perp(normalize(sub(target, pos)))
	if !left {
		tangent = scale(tangent, -1)
	}
	tc.BB.SetVec2(s.agentKey, add(pos, scale(tangent, s.speed*tc.Dt)))

	elapsed, _ := tc.BB.GetTimer(s.elapsedKey)
	elapsed += tc.Dt
	if elapsed >= s.duration {
		tc.BB.SetTimer(s.elapsedKey, 0)
		tc.BB.SetBool(s.leftFlagKey, !left)
		return s.Stamp(tc, StatusSuccess)
	}
	tc.BB.SetTimer(s.elapsedKey, elapsed)
	return s.Stamp(tc, StatusRunning)
}

// RangedFireProjectile spawns a projectile from agentKey toward
// targetKey through World when gateFlagKey is true, resetting the Timer
// at cdTimerKey to cd; Failure when the gate is closed (spec.md §4.3's
// RangedFireProjectile contract).
type RangedFireProjectile struct {
	behaviortree.Leaf
	agentKey, targetKey, gateFlagKey, cdTimerKey string
	cd, projSpeed                                float32
	projLifeMs                                   int
	projDamage                                   float32
}

// NewRangedFireProjectile builds a RangedFireProjectile action.
func NewRangedFireProjectile(name, agentKey, targetKey, gateFlagKey, cdTimerKey string, cd, projSpeed float32, projLifeMs int, projDamage float32) *RangedFireProjectile {
	return &RangedFireProjectile{
		Leaf: behaviortree.Leaf{Base: behaviortree.NewBase(name)},
		agentKey: agentKey, targetKey: targetKey, gateFlagKey: gateFlagKey, cdTimerKey: cdTimerKey,
		cd: cd, projSpeed: projSpeed, projLifeMs: projLifeMs, projDamage: projDamage,
	}
}

func (r *RangedFireProjectile) Tick(tc *TickContext) Status {
	gate, _ := tc.BB.GetBool(r.gateFlagKey)
	if !gate {
		return r.Stamp(tc, StatusFailure)
	}
	pos, ok1 := tc.BB.GetVec2(r.agentKey)
	target, ok2 := tc.BB.GetVec2(r.targetKey)
	if !ok1 || !ok2 {
		return r.Stamp(tc, StatusFailure)
	}
	tc.World.SpawnProjectile(pos, normalize(sub(target, pos)), r.projSpeed, r.projLifeMs, r.projDamage)
	tc.BB.SetTimer(r.cdTimerKey, r.cd)
	return r.Stamp(tc, StatusSuccess)
}

// ReactParry clears activeFlagKey and fails when incomingFlagKey is
// false; otherwise it sets activeFlagKey, advances the Timer at
// timerKey, and succeeds while that timer stays at or below window,
// failing once it exceeds window (spec.md §4.3's ReactParry contract).
type ReactParry struct {
	behaviortree.Leaf
	incomingFlagKey, activeFlagKey, timerKey string
	window                                   float32
}

// NewReactParry builds a ReactParry action.
func NewReactParry(name, incomingFlagKey, activeFlagKey, timerKey string, window float32) *ReactParry {
	return &ReactParry{Leaf: behaviortree.Leaf{Base: behaviortree.NewBase(name)}, incomingFlagKey: incomingFlagKey, activeFlagKey: activeFlagKey, timerKey: timerKey, window: window}
}

func (p *ReactParry) Tick(tc *TickContext) Status {
	incoming, _ := tc.BB.GetBool(p.incomingFlagKey)
	if !incoming {
		tc.BB.SetBool(p.activeFlagKey, false)
		return p.Stamp(tc, StatusFailure)
	}
	tc.BB.SetBool(p.activeFlagKey, true)
	v, _ := tc.BB.GetTimer(p.timerKey)
	v += tc.Dt
	tc.BB.SetTimer(p.timerKey, v)
	if v <= p.window {
		return p.Stamp(tc, StatusSuccess)
	}
	return p.Stamp(tc, StatusFailure)
}

// ReactDodge fails when incomingFlagKey is false; otherwise it writes a
// unit vector pointing away from threatKey into outVecKey, advances the
// Timer at timerKey, and succeeds until that timer exceeds duration
// (spec.md §4.3's ReactDodge contract).
type ReactDodge struct {
	behaviortree.Leaf
	incomingFlagKey, agentKey, threatKey, outVecKey, timerKey string
	duration                                                  float32
}

// NewReactDodge builds a ReactDodge action.
func NewReactDodge(name, incomingFlagKey, agentKey, threatKey, outVecKey, timerKey string, duration float32) *ReactDodge {
	return &ReactDodge{
		Leaf: behaviortree.Leaf{Base: behaviortree.NewBase(name)},
		incomingFlagKey: incomingFlagKey, agentKey: agentKey, threatKey: threatKey,
		outVecKey: outVecKey, timerKey: timerKey, duration: duration,
	}
}

func (d *ReactDodge) Tick(tc *TickContext) Status {
	incoming, _ := tc.BB.GetBool(d.incomingFlagKey)
	if !incoming {
		return d.Stamp(tc, StatusFailure)
	}
	pos, ok1 := tc.BB.GetVec2(d.agentKey)
	threat, ok2 := tc.BB.GetVec2(d.threatKey)
	if ok1 && ok2 {
		tc.BB.SetVec2(d.outVecKey, normalize(sub(pos, threat)))
	}
	v, _ := tc.BB.GetTimer(d.timerKey)
	v += tc.Dt
	tc.BB.SetTimer(d.timerKey, v)
	if v > d.duration {
		return d.Stamp(tc, StatusFailure)
	}
	return d.Stamp(tc, StatusSuccess)
}

// OpportunisticAttack succeeds iff recoveryFlagKey is true and the agent
// is within maxDist of targetKey, resetting the Timer at cdTimerKey to 0
// on success (spec.md §4.3's OpportunisticAttack contract).
type OpportunisticAttack struct {
	behaviortree.Leaf
	recoveryFlagKey, agentKey, targetKey, cdTimerKey string
	maxDist                                          float32
}

// NewOpportunisticAttack builds an OpportunisticAttack action.
func NewOpportunisticAttack(name, recoveryFlagKey, agentKey, targetKey, cdTimerKey string, maxDist float32) *OpportunisticAttack {
	return &OpportunisticAttack{
		Leaf: behaviortree.Leaf{Base: behaviortree.NewBase(name)},
		recoveryFlagKey: recoveryFlagKey, agentKey: agentKey, targetKey: targetKey, cdTimerKey: cdTimerKey,
		maxDist: maxDist,
	}
}

func (o *OpportunisticAttack) Tick(tc *TickContext) Status {
	recovery, _ := tc.BB.GetBool(o.recoveryFlagKey)
	pos, ok1 := tc.BB.GetVec2(o.agentKey)
	target, ok2 := tc.BB.GetVec2(o.targetKey)
	if !recovery || !ok1 || !ok2 || dist(pos, target) > o.maxDist {
		return o.Stamp(tc, StatusFailure)
	}
	tc.BB.SetTimer(o.cdTimerKey, 0)
	return o.Stamp(tc, StatusSuccess)
}

// KiteBand keeps the agent within [minRange, maxRange] of targetKey:
// stepping away when closer than min, toward when farther than max, and
// holding position (Success) within the band (spec.md §4.3's KiteBand
// contract).
type KiteBand struct {
	behaviortree.Leaf
	agentKey, targetKey string
	minRange, maxRange  float32
	speed               float32
}

// NewKiteBand builds a KiteBand action.
func NewKiteBand(name, agentKey, targetKey string, minRange, maxRange, speed float32) *KiteBand {
	return &KiteBand{Leaf: behaviortree.Leaf{Base: behaviortree.NewBase(name)}, agentKey: agentKey, targetKey: targetKey, minRange: minRange, maxRange: maxRange, speed: speed}
}

func (k *KiteBand) Tick(tc *TickContext) Status {
	pos, ok1 := tc.BB.GetVec2(k.agentKey)
	target, ok2 := tc.BB.GetVec2(k.targetKey)
	if !ok1 || !ok2 {
		return k.Stamp(tc, StatusFailure)
	}
	d := dist(pos, target)
	switch {
	case d < k.minRange:
		dir := normalize(sub(pos, target))
		tc.BB.SetVec2(k.agentKey, add(pos, scale(dir, k.speed*tc.Dt)))
		return k.Stamp(tc, StatusRunning)
	case d > k.maxRange:
		dir := normalize(sub(target, pos))
		tc.BB.SetVec2(k.agentKey, add(pos, scale(dir, k.speed*tc.Dt)))
		return k.Stamp(tc, StatusRunning)
	default:
		return k.Stamp(tc, StatusSuccess)
	}
}

// FinisherExecute succeeds iff the target's health (Float at
// targetHpKey) is below threshold and the agent is within maxDist of
// targetKey, resetting the Timer at cdTimerKey to cd on success
// (spec.md §4.3's FinisherExecute contract).
type FinisherExecute struct {
	behaviortree.Leaf
	targetHpKey, agentKey, targetKey, cdTimerKey string
	threshold, maxDist, cd                       float32
}

// NewFinisherExecute builds a FinisherExecute action.
func NewFinisherExecute(name, targetHpKey, agentKey, targetKey, cdTimerKey string, threshold, maxDist, cd float32) *FinisherExecute {
	return &FinisherExecute{
		Leaf: behaviortree.Leaf{Base: behaviortree.NewBase(name)},
		targetHpKey: targetHpKey, agentKey: agentKey, targetKey: targetKey, cdTimerKey: cdTimerKey,
		threshold: threshold, maxDist: maxDist, cd: cd,
	}
}

func (f *FinisherExecute) Tick(tc *TickContext) Status {
	hp, ok1 := tc.BB.GetFloat(f.targetHpKey)
	pos, ok2 := tc.BB.GetVec2(f.agentKey)
	target, ok3 := tc.BB.GetVec2(f.targetKey)
	if !ok1 || !ok2 || !ok3 || hp >= f.threshold || dist(pos, target) > f.maxDist {
		return f.Stamp(tc, StatusFailure)
	}
	tc.BB.SetTimer(f.cdTimerKey, f.cd)
	return f.Stamp(tc, StatusSuccess)
}
