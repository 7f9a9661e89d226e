package node_test

import (
	"testing"

	"github.com/jihwankim/roguelike-ai-core/pkg/behaviortree"
	"github.com/jihwankim/roguelike-ai-core/pkg/blackboard"
	"github.com/jihwankim/roguelike-ai-core/pkg/node"
)

type nopWorld struct{ spawned int }

func (w *nopWorld) IsTileBlocking(tx, ty int) bool { return false }
func (w *nopWorld) SpawnProjectile(origin, dir behaviortree.Vec2, speed float32, lifeMs int, damage float32) {
	w.spawned++
}

type leaf struct {
	behaviortree.Leaf
	result behaviortree.Status
	ticked int
}

func newLeaf(name string, result behaviortree.Status) *leaf {
	return &leaf{Leaf: behaviortree.Leaf{Base: behaviortree.NewBase(name)}, result: result}
}

func (l *leaf) Tick(tc *behaviortree.TickContext) behaviortree.Status {
	l.ticked++
	return l.Stamp(tc, l.result)
}

func tick(t *testing.T, n behaviortree.Node, bb *blackboard.Blackboard) behaviortree.Status {
	t.Helper()
	tree := behaviortree.New(n)
	return tree.Tick(bb, &nopWorld{}, 0.016)
}

// S1: Selector ticks children in order and short-circuits on the first
// Success, never reaching later siblings.
func TestSelectorShortCircuitsOnSuccess(t *testing.T) {
	bb := blackboard.New(8)
	a := newLeaf("a", behaviortree.StatusFailure)
	b := newLeaf("b", behaviortree.StatusSuccess)
	c := newLeaf("c", behaviortree.StatusSuccess)
	sel := node.NewSelector("sel", a, b, c)

	st := tick(t, sel, bb)

	if st != behaviortree.StatusSuccess {
		t.Fatalf("want Success, got %v", st)
	}
	if a.ticked != 1 || b.ticked != 1 {
		t.Fatal("a and b should each tick exactly once")
	}
	if c.ticked != 0 {
		t.Fatal("c must not tick once b succeeds")
	}
}

// S2: Sequence ticks children in order and short-circuits on the first
// Failure.
func TestSequenceShortCircuitsOnFailure(t *testing.T) {
	bb := blackboard.New(8)
	a := newLeaf("a", behaviortree.StatusSuccess)
	b := newLeaf("b", behaviortree.StatusFailure)
	c := newLeaf("c", behaviortree.StatusSuccess)
	seq := node.NewSequence("seq", a, b, c)

	st := tick(t, seq, bb)

	if st != behaviortree.StatusFailure {
		t.Fatalf("want Failure, got %v", st)
	}
	if c.ticked != 0 {
		t.Fatal("c must not tick once b fails")
	}
}

// S3: UtilitySelector picks the argmax child, ties broken toward the
// first index, and a negative score can still win outright.
func TestUtilitySelectorArgmaxAndTieBreak(t *testing.T) {
	bb := blackboard.New(8)
	a := newLeaf("a", behaviortree.StatusSuccess)
	b := newLeaf("b", behaviortree.StatusSuccess)

	u := node.NewUtilitySelector("u", []behaviortree.Node{a, b},
		[]node.ScoreFunc{
			func(tc *behaviortree.TickContext) float32 { return 1.0 },
			func(tc *behaviortree.TickContext) float32 { return 1.0 },
		})
	tick(t, u, bb)
	if a.ticked != 1 || b.ticked != 0 {
		t.Fatal("tie must break toward the first child")
	}

	a2 := newLeaf("a2", behaviortree.StatusSuccess)
	b2 := newLeaf("b2", behaviortree.StatusSuccess)
	u2 := node.NewUtilitySelector("u2", []behaviortree.Node{a2, b2},
		[]node.ScoreFunc{
			func(tc *behaviortree.TickContext) float32 { return -5.0 },
			func(tc *behaviortree.TickContext) float32 { return -10.0 },
		})
	tick(t, u2, bb)
	if a2.ticked != 1 || b2.ticked != 0 {
		t.Fatal("higher (less negative) score must win even though both are negative")
	}
}

// S4: Cooldown boundary — ticking the timer up to s gates the child;
// once reached, a Success resets the timer to 0.
func TestCooldownGatesUntilTimerReachesThreshold(t *testing.T) {
	bb := blackboard.New(8)
	child := newLeaf("child", behaviortree.StatusSuccess)
	cd := node.NewCooldown("cd", child, "atk_cd", 0.05)

	tree := behaviortree.New(cd)
	w := &nopWorld{}

	st := tree.Tick(bb, w, 0.016) // timer 0 -> 0.016, still < 0.05
	if st != behaviortree.StatusFailure || child.ticked != 0 {
		t.Fatalf("want gated Failure without ticking child, got %v ticked=%d", st, child.ticked)
	}

	st = tree.Tick(bb, w, 0.016) // timer 0.032, still < 0.05
	if st != behaviortree.StatusFailure || child.ticked != 0 {
		t.Fatalf("still gated, got %v ticked=%d", st, child.ticked)
	}

	st = tree.Tick(bb, w, 0.05) // timer 0.032 still < 0.05, advances to 0.082
	if st != behaviortree.StatusFailure || child.ticked != 0 {
		t.Fatalf("still gated at 0.032, got %v ticked=%d", st, child.ticked)
	}

	st = tree.Tick(bb, w, 0.016) // timer 0.082 >= 0.05, ticks child
	if st != behaviortree.StatusSuccess || child.ticked != 1 {
		t.Fatalf("want Success and one tick, got %v ticked=%d", st, child.ticked)
	}
	v, _ := bb.GetTimer("atk_cd")
	if v != 0 {
		t.Fatalf("cooldown timer must reset to 0 on Success, got %v", v)
	}
}

// S5: Retry tracks attempts across ticks, going Running while attempts
// remain and Failure once the budget is exhausted; a non-Failure result
// resets the counter.
func TestRetryRunsThenFailsAtBudget(t *testing.T) {
	bb := blackboard.New(8)
	child := newLeaf("child", behaviortree.StatusFailure)
	retry := node.NewRetry("retry", child, "attempts", 3)
	tree := behaviortree.New(retry)
	w := &nopWorld{}

	if st := tree.Tick(bb, w, 0.016); st != behaviortree.StatusRunning {
		t.Fatalf("attempt 1: want Running, got %v", st)
	}
	if st := tree.Tick(bb, w, 0.016); st != behaviortree.StatusRunning {
		t.Fatalf("attempt 2: want Running, got %v", st)
	}
	if st := tree.Tick(bb, w, 0.016); st != behaviortree.StatusFailure {
		t.Fatalf("attempt 3 (== n): want Failure, got %v", st)
	}
	v, _ := bb.GetInt("attempts")
	if v != 0 {
		t.Fatalf("attempts counter must reset after exhausting the budget, got %d", v)
	}
}

// MoveTo drives position toward the target across ticks, setting
// the reached flag and succeeding only once within the fixed arrival
// threshold.
func TestMoveToArrivesAndSetsFlag(t *testing.T) {
	bb := blackboard.New(8)
	bb.SetVec2("agent", blackboard.Vec2{X: 0, Y: 0})
	bb.SetVec2("target", blackboard.Vec2{X: 0.1, Y: 0})
	mv := node.NewMoveTo("move", "target", "agent", "reached", 5.0)

	st := tick(t, mv, bb)

	if st != behaviortree.StatusSuccess {
		t.Fatalf("already within the arrival threshold, want Success, got %v", st)
	}
	if reached, ok := bb.GetBool("reached"); !ok || !reached {
		t.Fatal("reached flag must be set true on arrival")
	}
}

func TestMoveToRunsUntilArrival(t *testing.T) {
	bb := blackboard.New(8)
	bb.SetVec2("agent", blackboard.Vec2{X: 0, Y: 0})
	bb.SetVec2("target", blackboard.Vec2{X: 10, Y: 0})
	mv := node.NewMoveTo("move", "target", "agent", "reached", 5.0)

	st := tick(t, mv, bb)
	if st != behaviortree.StatusRunning {
		t.Fatalf("want Running while far from target, got %v", st)
	}
	pos, _ := bb.GetVec2("agent")
	if pos.X <= 0 {
		t.Fatal("position should have advanced toward the target")
	}
}

func TestFleeFromNeverSucceeds(t *testing.T) {
	bb := blackboard.New(8)
	bb.SetVec2("agent", blackboard.Vec2{X: 0, Y: 0})
	bb.SetVec2("threat", blackboard.Vec2{X: -5, Y: 0})
	flee := node.NewFleeFrom("flee", "threat", "agent", 5.0)

	for i := 0; i < 5; i++ {
		if st := tick(t, flee, bb); st != behaviortree.StatusRunning {
			t.Fatalf("flee must always report Running, got %v on iteration %d", st, i)
		}
	}
}

func TestAttackMeleeRequiresInRangeFlag(t *testing.T) {
	bb := blackboard.New(8)
	atk := node.NewAttackMelee("melee", "in_range", "melee_cd", 1.0)

	if st := tick(t, atk, bb); st != behaviortree.StatusFailure {
		t.Fatalf("want Failure when in_range flag is unset, got %v", st)
	}

	bb.SetBool("in_range", true)
	if st := tick(t, atk, bb); st != behaviortree.StatusSuccess {
		t.Fatalf("want Success when in_range flag is true, got %v", st)
	}
	v, _ := bb.GetTimer("melee_cd")
	if v != 0 {
		t.Fatalf("cooldown timer should reset to 0, got %v", v)
	}
}

func TestRangedFireProjectileSpawnsAndArmsCooldown(t *testing.T) {
	bb := blackboard.New(8)
	bb.SetVec2("agent", blackboard.Vec2{X: 0, Y: 0})
	bb.SetVec2("target", blackboard.Vec2{X: 5, Y: 0})
	bb.SetBool("gate", true)
	w := &nopWorld{}
	tree := behaviortree.New(node.NewRangedFireProjectile("ranged", "agent", "target", "gate", "ranged_cd", 2.0, 20.0, 1000, 5.0))

	st := tree.Tick(bb, w, 0.016)

	if st != behaviortree.StatusSuccess || w.spawned != 1 {
		t.Fatalf("want Success and one spawned projectile, got status=%v spawned=%d", st, w.spawned)
	}
	if v, _ := bb.GetTimer("ranged_cd"); v != 2.0 {
		t.Fatalf("want cooldown armed to 2.0, got %v", v)
	}
}

func TestFinisherExecuteSucceedsBelowThresholdAndInRange(t *testing.T) {
	bb := blackboard.New(8)
	bb.SetFloat("target_hp", 2.0)
	bb.SetVec2("agent", blackboard.Vec2{X: 0, Y: 0})
	bb.SetVec2("target", blackboard.Vec2{X: 1, Y: 0})
	fin := node.NewFinisherExecute("finish", "target_hp", "agent", "target", "finish_cd", 5.0, 2.0, 3.0)

	if st := tick(t, fin, bb); st != behaviortree.StatusSuccess {
		t.Fatalf("want Success, got %v", st)
	}
	if v, _ := bb.GetTimer("finish_cd"); v != 3.0 {
		t.Fatalf("want cooldown armed to 3.0, got %v", v)
	}
}

func TestKiteBandHoldsPositionInBand(t *testing.T) {
	bb := blackboard.New(8)
	bb.SetVec2("agent", blackboard.Vec2{X: 5, Y: 0})
	bb.SetVec2("target", blackboard.Vec2{X: 0, Y: 0})
	kite := node.NewKiteBand("kite", "agent", "target", 3, 8, 5.0)

	if st := tick(t, kite, bb); st != behaviortree.StatusSuccess {
		t.Fatalf("distance 5 within [3,8] band, want Success, got %v", st)
	}
}
