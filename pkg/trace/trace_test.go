package trace_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/jihwankim/roguelike-ai-core/pkg/behaviortree"
	"github.com/jihwankim/roguelike-ai-core/pkg/blackboard"
	"github.com/jihwankim/roguelike-ai-core/pkg/metrics"
	"github.com/jihwankim/roguelike-ai-core/pkg/node"
	"github.com/jihwankim/roguelike-ai-core/pkg/trace"
)

func TestRingOverwritesOldestOnOverflow(t *testing.T) {
	r := trace.NewRing(2)
	r.Push(1, 0xA)
	r.Push(2, 0xB)
	r.Push(3, 0xC)

	entries := r.Entries()
	if len(entries) != 2 {
		t.Fatalf("want 2 live entries, got %d", len(entries))
	}
	if entries[0].Tick != 2 || entries[1].Tick != 3 {
		t.Fatalf("want oldest dropped, got %+v", entries)
	}
}

func TestRingPushIncrementsAttachedMetrics(t *testing.T) {
	r := trace.NewRing(4)
	reg := metrics.New()
	r.SetMetrics(reg)

	r.Push(1, 0xA)
	r.Push(2, 0xB)

	if v := testutil.ToFloat64(reg.TracePushes); v != 2 {
		t.Fatalf("want TracePushes=2, got %v", v)
	}
}

func TestPathHash32IsStableForIdenticalInput(t *testing.T) {
	a := trace.PathHash32("Root>ChasePlayer")
	b := trace.PathHash32("Root>ChasePlayer")
	if a != b {
		t.Fatal("identical path strings must hash identically")
	}
	c := trace.PathHash32("Root>AttackMelee")
	if a == c {
		t.Fatal("different path strings should (overwhelmingly likely) hash differently")
	}
}

func TestAggregateHash64ChainsEntries(t *testing.T) {
	r := trace.NewRing(4)
	r.Push(1, 0x1111)
	r.Push(2, 0x2222)
	h1 := r.AggregateHash64()

	r2 := trace.NewRing(4)
	r2.Push(1, 0x1111)
	r2.Push(2, 0x2222)
	h2 := r2.AggregateHash64()

	if h1 != h2 {
		t.Fatal("identical entry sequences must produce identical aggregate hashes")
	}

	r2.Push(3, 0x3333)
	if r2.AggregateHash64() == h1 {
		t.Fatal("appending an entry must change the aggregate hash")
	}
}

type nopWorld struct{}

func (nopWorld) IsTileBlocking(tx, ty int) bool { return false }
func (nopWorld) SpawnProjectile(origin, dir behaviortree.Vec2, speed float32, lifeMs int, damage float32) {
}

func sameTreeFactory() (*behaviortree.Tree, *blackboard.Blackboard, behaviortree.World) {
	root := node.NewSelector("Root",
		node.NewMoveTo("Chase", "player_pos", "agent_pos", "reached", 1.5),
	)
	bb := blackboard.New(8)
	bb.SetVec2("agent_pos", blackboard.Vec2{X: 0, Y: 0})
	bb.SetVec2("player_pos", blackboard.Vec2{X: 5, Y: 5})
	return behaviortree.New(root), bb, nopWorld{}
}

func TestVerifyDeterministicMatchesForIdenticalFactories(t *testing.T) {
	ok, mismatch := trace.VerifyDeterministic(sameTreeFactory, 40, 0.016)
	if !ok {
		t.Fatalf("expected deterministic match, diverged at tick %d", mismatch)
	}
}

// cooldownTreeFactory builds a Selector guarding MoveTo behind a Cooldown
// whose timer starts at startTimer seconds: two instances built with
// different starting timers produce an immediately differing active
// path (empty while gated vs "Root>Gate>Chase" once past the gate),
// exercising the same scenario S7 describes for divergent seeds.
func cooldownTreeFactory(startTimer float32) (*behaviortree.Tree, *blackboard.Blackboard, behaviortree.World) {
	root := node.NewSelector("Root",
		node.NewCooldown("Gate", node.NewMoveTo("Chase", "player_pos", "agent_pos", "reached", 1.5), "gate_timer", 0.2),
	)
	bb := blackboard.New(8)
	bb.SetVec2("agent_pos", blackboard.Vec2{X: 0, Y: 0})
	bb.SetVec2("player_pos", blackboard.Vec2{X: 5, Y: 5})
	bb.SetTimer("gate_timer", startTimer)
	return behaviortree.New(root), bb, nopWorld{}
}

func TestVerifyDeterministicDetectsDivergence(t *testing.T) {
	treeA, bbA, worldA := cooldownTreeFactory(0.0)
	treeB, bbB, worldB := cooldownTreeFactory(0.3)

	treeA.Tick(bbA, worldA, 0.016)
	treeB.Tick(bbB, worldB, 0.016)

	pathA := treeA.ActivePathString()
	pathB := treeB.ActivePathString()
	if pathA == pathB {
		t.Fatalf("expected gated vs ungated trees to diverge on tick 1, both produced %q", pathA)
	}
	if trace.PathHash32(pathA) == trace.PathHash32(pathB) {
		t.Fatal("differing active paths must hash differently")
	}

	calls := 0
	divergentFactory := func() (*behaviortree.Tree, *blackboard.Blackboard, behaviortree.World) {
		calls++
		if calls == 1 {
			return cooldownTreeFactory(0.0)
		}
		return cooldownTreeFactory(0.3)
	}
	ok, mismatch := trace.VerifyDeterministic(divergentFactory, 40, 0.016)
	if ok || mismatch != 0 {
		t.Fatalf("want VerifyDeterministic to report divergence at tick 0, got ok=%v mismatch=%d", ok, mismatch)
	}
}
