package behaviortree_test

import (
	"testing"

	"github.com/jihwankim/roguelike-ai-core/pkg/behaviortree"
	"github.com/jihwankim/roguelike-ai-core/pkg/blackboard"
)

// fakeNode is a minimal Node used to exercise Tree invariants without
// depending on the node package (which depends on behaviortree).
type fakeNode struct {
	behaviortree.Base
	children []behaviortree.Node
	result   behaviortree.Status
}

func (f *fakeNode) Children() []behaviortree.Node { return f.children }
func (f *fakeNode) Tick(tc *behaviortree.TickContext) behaviortree.Status {
	for _, c := range f.children {
		c.Tick(tc)
	}
	return f.Base.Stamp(tc, f.result)
}

func newFake(name string, result behaviortree.Status, children ...behaviortree.Node) *fakeNode {
	return &fakeNode{Base: behaviortree.NewBase(name), result: result, children: children}
}

type nopWorld struct{}

func (nopWorld) IsTileBlocking(tx, ty int) bool { return false }
func (nopWorld) SpawnProjectile(origin, dir behaviortree.Vec2, speed float32, lifeMs int, damage float32) {
}

func TestTickCountMonotonic(t *testing.T) {
	tree := behaviortree.New(newFake("root", behaviortree.StatusSuccess))
	bb := blackboard.New(4)
	for i := uint64(1); i <= 5; i++ {
		tree.Tick(bb, nopWorld{}, 0.016)
		if tree.TickCount() != i {
			t.Fatalf("tick %d: want tick_count %d, got %d", i, i, tree.TickCount())
		}
	}
}

func TestActivePathMembership(t *testing.T) {
	child := newFake("child", behaviortree.StatusRunning)
	root := newFake("root", behaviortree.StatusRunning, child)
	tree := behaviortree.New(root)
	bb := blackboard.New(4)

	tree.Tick(bb, nopWorld{}, 0.016)

	if root.LastTick() != tree.TickCount() || root.LastStatus() != behaviortree.StatusRunning {
		t.Fatal("root should be on the active path")
	}
	if child.LastTick() != tree.TickCount() || child.LastStatus() != behaviortree.StatusRunning {
		t.Fatal("child should be on the active path")
	}

	path := tree.ActivePathString()
	if path != "root>child" {
		t.Fatalf("want %q, got %q", "root>child", path)
	}
}

func TestFailureNodeNotOnActivePath(t *testing.T) {
	root := newFake("root", behaviortree.StatusFailure)
	tree := behaviortree.New(root)
	bb := blackboard.New(4)

	tree.Tick(bb, nopWorld{}, 0.016)

	if path := tree.ActivePathString(); path != "" {
		t.Fatalf("want empty active path on Failure, got %q", path)
	}
}

func TestNilRootReturnsInvalid(t *testing.T) {
	tree := behaviortree.New(nil)
	bb := blackboard.New(4)
	if got := tree.Tick(bb, nopWorld{}, 0.016); got != behaviortree.StatusInvalid {
		t.Fatalf("want Invalid, got %v", got)
	}
	if tree.TickCount() != 0 {
		t.Fatal("tick count must not advance for a nil root")
	}
}

func TestSerializeActivePathTruncatesOnSegmentBoundary(t *testing.T) {
	child := newFake("childlongname", behaviortree.StatusRunning)
	root := newFake("root", behaviortree.StatusRunning, child)
	tree := behaviortree.New(root)
	bb := blackboard.New(4)
	tree.Tick(bb, nopWorld{}, 0.016)

	buf := make([]byte, 5) // fits "root>" boundary exactly then some
	n := tree.SerializeActivePath(buf)
	got := string(buf[:n])
	if got != "root" {
		t.Fatalf("want truncation at last full segment %q, got %q", "root", got)
	}
}
