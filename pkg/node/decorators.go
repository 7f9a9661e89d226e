package node

import "github.com/jihwankim/roguelike-ai-core/pkg/behaviortree"

// Cooldown gates child behind a blackboard Timer at key counting UP from
// 0: while timer(key) < s the timer advances by dt and Cooldown fails
// without ticking child; once timer(key) >= s it ticks child, resetting
// the timer to 0 on Success and otherwise leaving it to keep advancing
// (spec.md §4.3's Cooldown(key,t,s) contract).
type Cooldown struct {
	behaviortree.Base
	child Node
	key   string
	s     float32
}

// NewCooldown builds a Cooldown decorator around child.
func NewCooldown(name string, child Node, key string, s float32) *Cooldown {
	return &Cooldown{Base: behaviortree.NewBase(name), child: child, key: key, s: s}
}

func (c *Cooldown) Children() []Node { return []Node{c.child} }

func (c *Cooldown) Tick(tc *TickContext) Status {
	v, _ := tc.BB.GetTimer(c.key)
	if v < c.s {
		tc.BB.SetTimer(c.key, v+tc.Dt)
		return c.Stamp(tc, StatusFailure)
	}
	st := c.child.Tick(tc)
	if st == StatusSuccess {
		tc.BB.SetTimer(c.key, 0)
	} else {
		tc.BB.SetTimer(c.key, v+tc.Dt)
	}
	return c.Stamp(tc, st)
}

// Retry wraps child with an attempt counter (a blackboard Int at
// attemptsKey, private per instance): each Failure increments the
// counter, returning Running while attempts <= n-1 and Failure once
// attempts == n; any non-Failure result resets the counter to 0
// (spec.md §4.3's Retry(child,n) contract).
type Retry struct {
	behaviortree.Base
	child       Node
	attemptsKey string
	n           int32
}

// NewRetry builds a Retry decorator around child. attemptsKey names a
// private Int slot used to track the attempt counter across ticks; it
// should be unique per agent/node instance.
func NewRetry(name string, child Node, attemptsKey string, n int) *Retry {
	return &Retry{Base: behaviortree.NewBase(name), child: child, attemptsKey: attemptsKey, n: int32(n)}
}

func (r *Retry) Children() []Node { return []Node{r.child} }

func (r *Retry) Tick(tc *TickContext) Status {
	st := r.child.Tick(tc)
	if st != StatusFailure {
		tc.BB.SetInt(r.attemptsKey, 0)
		return r.Stamp(tc, st)
	}
	attempts, _ := tc.BB.GetInt(r.attemptsKey)
	attempts++
	tc.BB.SetInt(r.attemptsKey, attempts)
	if attempts >= r.n {
		tc.BB.SetInt(r.attemptsKey, 0)
		return r.Stamp(tc, StatusFailure)
	}
	return r.Stamp(tc, StatusRunning)
}

// StuckDetect accumulates elapsed time (a Timer at timerKey) since the
// agent's position (Vec2 at posKey) last moved at least minMove between
// frames; once the accumulator exceeds window it returns Failure without
// ticking child and resets the accumulator, otherwise it ticks child
// (spec.md §4.3's StuckDetect contract).
type StuckDetect struct {
	behaviortree.Base
	child             Node
	posKey, timerKey  string
	lastPosKey        string
	window, minMove   float32
}

// NewStuckDetect builds a StuckDetect decorator. lastPosKey names a
// private Vec2 slot remembering the previous frame's position; it
// should be unique per agent/node instance.
func NewStuckDetect(name string, child Node, posKey, timerKey, lastPosKey string, window, minMove float32) *StuckDetect {
	return &StuckDetect{
		Base: behaviortree.NewBase(name), child: child,
		posKey: posKey, timerKey: timerKey, lastPosKey: lastPosKey,
		window: window, minMove: minMove,
	}
}

func (s *StuckDetect) Children() []Node { return []Node{s.child} }

func (s *StuckDetect) Tick(tc *TickContext) Status {
	pos, _ := tc.BB.GetVec2(s.posKey)
	last, hadLast := tc.BB.GetVec2(s.lastPosKey)
	tc.BB.SetVec2(s.lastPosKey, pos)

	elapsed, _ := tc.BB.GetTimer(s.timerKey)
	if hadLast && dist(pos, last) >= s.minMove {
		elapsed = 0
	} else {
		elapsed += tc.Dt
	}

	if elapsed > s.window {
		tc.BB.SetTimer(s.timerKey, 0)
		return s.Stamp(tc, StatusFailure)
	}
	tc.BB.SetTimer(s.timerKey, elapsed)
	return s.Stamp(tc, s.child.Tick(tc))
}

// ReactionDelay advances a Timer at timerKey each tick and reports
// Running until it reaches threshold, at which point it ticks child
// (spec.md §4.3's ReactionDelay contract).
type ReactionDelay struct {
	behaviortree.Base
	child     Node
	timerKey  string
	threshold float32
}

// NewReactionDelay builds a ReactionDelay decorator.
func NewReactionDelay(name string, child Node, timerKey string, threshold float32) *ReactionDelay {
	return &ReactionDelay{Base: behaviortree.NewBase(name), child: child, timerKey: timerKey, threshold: threshold}
}

func (r *ReactionDelay) Children() []Node { return []Node{r.child} }

func (r *ReactionDelay) Tick(tc *TickContext) Status {
	v, _ := tc.BB.GetTimer(r.timerKey)
	v += tc.Dt
	tc.BB.SetTimer(r.timerKey, v)
	if v < r.threshold {
		return r.Stamp(tc, StatusRunning)
	}
	return r.Stamp(tc, r.child.Tick(tc))
}

// AggressionGate only ticks child when the Float blackboard value at key
// is at or above threshold; otherwise it fails without ticking child
// (spec.md §4.3's AggressionGate contract).
type AggressionGate struct {
	behaviortree.Base
	child     Node
	key       string
	threshold float32
}

// NewAggressionGate builds an AggressionGate decorator.
func NewAggressionGate(name string, child Node, key string, threshold float32) *AggressionGate {
	return &AggressionGate{Base: behaviortree.NewBase(name), child: child, key: key, threshold: threshold}
}

func (g *AggressionGate) Children() []Node { return []Node{g.child} }

func (g *AggressionGate) Tick(tc *TickContext) Status {
	v, ok := tc.BB.GetFloat(g.key)
	if !ok || v < g.threshold {
		return g.Stamp(tc, StatusFailure)
	}
	return g.Stamp(tc, g.child.Tick(tc))
}

// StaggerByIndex advances a Timer at timerKey each tick and reports
// Running until it reaches index*baseDt (the agent's slot index read
// from indexKey), at which point it ticks child and resets the timer to
// 0 on Success (spec.md §4.3's StaggerByIndex contract).
type StaggerByIndex struct {
	behaviortree.Base
	child    Node
	indexKey string
	timerKey string
	baseDt   float32
}

// NewStaggerByIndex builds a StaggerByIndex decorator.
func NewStaggerByIndex(name string, child Node, indexKey, timerKey string, baseDt float32) *StaggerByIndex {
	return &StaggerByIndex{Base: behaviortree.NewBase(name), child: child, indexKey: indexKey, timerKey: timerKey, baseDt: baseDt}
}

func (s *StaggerByIndex) Children() []Node { return []Node{s.child} }

func (s *StaggerByIndex) Tick(tc *TickContext) Status {
	v, _ := tc.BB.GetTimer(s.timerKey)
	v += tc.Dt
	tc.BB.SetTimer(s.timerKey, v)

	idx, _ := tc.BB.GetInt(s.indexKey)
	threshold := float32(idx) * s.baseDt
	if v < threshold {
		return s.Stamp(tc, StatusRunning)
	}
	st := s.child.Tick(tc)
	if st == StatusSuccess {
		tc.BB.SetTimer(s.timerKey, 0)
	}
	return s.Stamp(tc, st)
}
