// Package debug implements the introspection surface spec.md §4.9
// describes: pre-order tree visualization, blackboard dumps, trace JSON
// export, and perception overlay segment primitives. Grounded on
// `pkg/reporting/formatter.go`'s Writer-based text rendering (replacing
// the original_source fixed-buffer-with-truncation pattern per DESIGN
// NOTES §9) and `src/ai/core/ai_debug.c`'s choice of what to print.
package debug

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/jihwankim/roguelike-ai-core/pkg/behaviortree"
	"github.com/jihwankim/roguelike-ai-core/pkg/blackboard"
	"github.com/jihwankim/roguelike-ai-core/pkg/perception"
	"github.com/jihwankim/roguelike-ai-core/pkg/trace"
)

// VisualizeTree writes root's subtree to w, pre-order, 2-space
// indentation per depth, one "- name" line per node (spec.md §4.9).
func VisualizeTree(w io.Writer, root behaviortree.Node) {
	var walk func(n behaviortree.Node, depth int)
	walk = func(n behaviortree.Node, depth int) {
		if n == nil {
			return
		}
		fmt.Fprintf(w, "%s- %s\n", strings.Repeat("  ", depth), n.Name())
		for _, c := range n.Children() {
			walk(c, depth+1)
		}
	}
	walk(root, 0)
}

// DumpBlackboard writes one "key=value" line per entry to w, using
// spec.md §4.9's type-specific formatting: plain ints, "%.3f" floats,
// "true"/"false" bools, "(%.2f,%.2f)" vec2s, and "timer(%.2f)" timers.
// Entries whose value is currently None (TTL-expired) are skipped.
func DumpBlackboard(w io.Writer, bb *blackboard.Blackboard) {
	for _, key := range bb.Keys() {
		switch bb.Variant(key) {
		case blackboard.VariantInt:
			v, _ := bb.GetInt(key)
			fmt.Fprintf(w, "%s=%d\n", key, v)
		case blackboard.VariantFloat:
			v, _ := bb.GetFloat(key)
			fmt.Fprintf(w, "%s=%.3f\n", key, v)
		case blackboard.VariantBool:
			v, _ := bb.GetBool(key)
			fmt.Fprintf(w, "%s=%t\n", key, v)
		case blackboard.VariantVec2:
			v, _ := bb.GetVec2(key)
			fmt.Fprintf(w, "%s=(%.2f,%.2f)\n", key, v.X, v.Y)
		case blackboard.VariantTimer:
			v, _ := bb.GetTimer(key)
			fmt.Fprintf(w, "%s=timer(%.2f)\n", key, v)
		case blackboard.VariantPtr:
			fmt.Fprintf(w, "%s=ptr\n", key)
		}
	}
}

// traceEntryJSON mirrors spec.md §4.9's export shape:
// [{"tick":N,"hash":H},...].
type traceEntryJSON struct {
	Tick uint64 `json:"tick"`
	Hash uint32 `json:"hash"`
}

// ExportTraceJSON writes ring's live entries, chronologically, as a JSON
// array to w (spec.md §4.9).
func ExportTraceJSON(w io.Writer, ring *trace.Ring) error {
	entries := ring.Entries()
	out := make([]traceEntryJSON, len(entries))
	for i, e := range entries {
		out[i] = traceEntryJSON{Tick: e.Tick, Hash: e.Hash}
	}
	enc := json.NewEncoder(w)
	return enc.Encode(out)
}

// ExportSession identifies one debug export run with a stable id
// independent of the deterministic tick/hash stream itself — useful for
// a host correlating several exported artifacts (tree dump, trace JSON,
// blackboard dump) from the same debugging session.
type ExportSession struct {
	ID string
}

// NewExportSession mints a fresh session id.
func NewExportSession() ExportSession {
	return ExportSession{ID: uuid.NewString()}
}

// Segment is a 2D line segment for overlay rendering.
type Segment struct {
	From, To blackboard.Vec2
}

// FacingSegment returns a segment from agentPos extending length units
// along facing, for a host to render as a facing indicator.
func FacingSegment(agentPos, facing blackboard.Vec2, length float32) Segment {
	return Segment{
		From: agentPos,
		To:   blackboard.Vec2{X: agentPos.X + facing.X*length, Y: agentPos.Y + facing.Y*length},
	}
}

// LOSSegment returns the segment from agentPos to playerPos, for a host
// to render as the agent's current LOS probe (spec.md §4.9 "Perception
// overlay primitives: produce a facing segment and an LOS segment to
// player").
func LOSSegment(agentPos, playerPos blackboard.Vec2) Segment {
	return Segment{From: agentPos, To: playerPos}
}

// PerceptionAgentOverlay bundles both overlay primitives for one agent,
// built from a perception.Agent and the current player position.
func PerceptionAgentOverlay(a *perception.Agent, playerPos blackboard.Vec2, facingLength float32) (facing, los Segment) {
	agentPos := blackboard.Vec2{X: a.Pos.X, Y: a.Pos.Y}
	agentFacing := blackboard.Vec2{X: a.Facing.X, Y: a.Facing.Y}
	return FacingSegment(agentPos, agentFacing, facingLength), LOSSegment(agentPos, playerPos)
}
