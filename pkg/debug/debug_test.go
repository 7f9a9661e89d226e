package debug_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/jihwankim/roguelike-ai-core/pkg/behaviortree"
	"github.com/jihwankim/roguelike-ai-core/pkg/blackboard"
	"github.com/jihwankim/roguelike-ai-core/pkg/debug"
	"github.com/jihwankim/roguelike-ai-core/pkg/trace"
)

type fakeNode struct {
	behaviortree.Base
	children []behaviortree.Node
}

func (f *fakeNode) Children() []behaviortree.Node { return f.children }
func (f *fakeNode) Tick(tc *behaviortree.TickContext) behaviortree.Status {
	return f.Base.Stamp(tc, behaviortree.StatusSuccess)
}

func newFake(name string, children ...behaviortree.Node) *fakeNode {
	return &fakeNode{Base: behaviortree.NewBase(name), children: children}
}

func TestVisualizeTreeIndentsByDepth(t *testing.T) {
	root := newFake("root", newFake("a"), newFake("b", newFake("c")))
	var buf bytes.Buffer
	debug.VisualizeTree(&buf, root)
	want := "- root\n  - a\n  - b\n    - c\n"
	if buf.String() != want {
		t.Fatalf("want %q, got %q", want, buf.String())
	}
}

func TestDumpBlackboardFormatsPerType(t *testing.T) {
	bb := blackboard.New(8)
	bb.SetInt("hp", 10)
	bb.SetFloat("speed", 1.5)
	bb.SetBool("alert", true)
	bb.SetVec2("pos", blackboard.Vec2{X: 1, Y: 2})
	bb.SetTimer("cd", 0.5)

	var buf bytes.Buffer
	debug.DumpBlackboard(&buf, bb)
	out := buf.String()

	for _, want := range []string{
		"hp=10\n", "speed=1.500\n", "alert=true\n", "pos=(1.00,2.00)\n", "cd=timer(0.50)\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("dump missing %q, got:\n%s", want, out)
		}
	}
}

func TestExportTraceJSONLengthMatchesCount(t *testing.T) {
	ring := trace.NewRing(4)
	ring.Push(1, 0xAAAA)
	ring.Push(2, 0xBBBB)
	ring.Push(3, 0xCCCC)

	var buf bytes.Buffer
	if err := debug.ExportTraceJSON(&buf, ring); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var decoded []map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("exported JSON did not parse: %v", err)
	}
	if len(decoded) != ring.Len() {
		t.Fatalf("want %d entries, got %d", ring.Len(), len(decoded))
	}
}

func TestExportSessionIDsAreNonEmptyAndDistinct(t *testing.T) {
	a := debug.NewExportSession()
	b := debug.NewExportSession()
	if a.ID == "" || b.ID == "" {
		t.Fatal("session ids must be non-empty")
	}
	if a.ID == b.ID {
		t.Fatal("session ids must be distinct across sessions")
	}
}

func TestFacingAndLOSSegments(t *testing.T) {
	facing := debug.FacingSegment(blackboard.Vec2{X: 0, Y: 0}, blackboard.Vec2{X: 1, Y: 0}, 2)
	if facing.To.X != 2 || facing.To.Y != 0 {
		t.Fatalf("want facing segment to (2,0), got %+v", facing.To)
	}
	los := debug.LOSSegment(blackboard.Vec2{X: 0, Y: 0}, blackboard.Vec2{X: 5, Y: 5})
	if los.To.X != 5 || los.To.Y != 5 {
		t.Fatalf("want LOS segment to (5,5), got %+v", los.To)
	}
}
