package behaviortree

import (
	"strings"

	"github.com/jihwankim/roguelike-ai-core/pkg/blackboard"
)

// Tree owns a root node and a monotonic tick counter (spec.md §3 invariant
// iii). Destroying a subtree destroys all descendants exactly once: since
// nodes are plain Go values reachable only through the tree, releasing the
// Tree (and dropping the reference) is sufficient — there is no manual
// destructor table to drive, matching DESIGN NOTES §9's "no weak linkage"
// guidance; any per-node resource that does need explicit release (e.g. a
// Ptr-variant handle on the blackboard) is released by the node itself in
// its own cleanup path, not by the tree.
type Tree struct {
	root      Node
	tickCount uint64
}

// New wraps root in a Tree. A nil root is invalid; callers must not tick a
// Tree with a nil root (spec.md §7 InvalidArgument).
func New(root Node) *Tree {
	return &Tree{root: root}
}

// Root returns the tree's root node.
func (t *Tree) Root() Node { return t.root }

// TickCount returns the number of ticks this tree has executed.
func (t *Tree) TickCount() uint64 { return t.tickCount }

// Tick advances the tree's tick counter and evaluates the root once.
// Returns StatusInvalid without advancing the counter if the root is nil.
func (t *Tree) Tick(bb *blackboard.Blackboard, world World, dt float32) Status {
	if t.root == nil {
		return StatusInvalid
	}
	t.tickCount++
	tc := &TickContext{BB: bb, Dt: dt, TickIndex: t.tickCount, World: world}
	return t.root.Tick(tc)
}

// ActivePathString returns the pre-order active path as "name1>name2>...",
// empty if no node qualifies (spec.md §4.3).
func (t *Tree) ActivePathString() string {
	var sb strings.Builder
	first := true
	var walk func(n Node)
	walk = func(n Node) {
		if n == nil {
			return
		}
		if n.LastTick() == t.tickCount && (n.LastStatus() == StatusSuccess || n.LastStatus() == StatusRunning) {
			if !first {
				sb.WriteByte('>')
			}
			sb.WriteString(n.Name())
			first = false
		}
		for _, c := range n.Children() {
			walk(c)
		}
	}
	walk(t.root)
	return sb.String()
}

// SerializeActivePath writes the active path into buf, truncating at the
// last complete "name" segment that fits rather than splitting a name
// across the boundary (spec.md §4.3's documented truncation choice). It
// returns the number of bytes written.
func (t *Tree) SerializeActivePath(buf []byte) int {
	if len(buf) == 0 {
		return 0
	}
	s := t.ActivePathString()
	if len(s) <= len(buf) {
		return copy(buf, s)
	}
	cut := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '>' && i <= len(buf) {
			cut = i
		}
	}
	return copy(buf, s[:cut])
}
