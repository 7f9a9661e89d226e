package perception_test

import (
	"testing"

	"github.com/jihwankim/roguelike-ai-core/pkg/perception"
)

type blockWorld struct{ bx, by int }

func (w blockWorld) IsTileBlocking(tx, ty int) bool { return tx == w.bx && ty == w.by }

// S6: agent at (0,0) facing (1,0), target at (5,0), fov=140, max_dist=10.
func TestFOVVisibleWithNonBlockingObstacle(t *testing.T) {
	w := blockWorld{bx: 5, by: 5}
	visible := perception.FOVVisible(w, perception.Vec2{X: 0, Y: 0}, perception.Vec2{X: 1, Y: 0}, perception.Vec2{X: 5, Y: 0}, 140, 10)
	if !visible {
		t.Fatal("want visible=true when the blocker is off the line of sight")
	}
}

func TestFOVNotVisibleWhenBlockerOnSegment(t *testing.T) {
	w := blockWorld{bx: 3, by: 0}
	visible := perception.FOVVisible(w, perception.Vec2{X: 0, Y: 0}, perception.Vec2{X: 1, Y: 0}, perception.Vec2{X: 5, Y: 0}, 140, 10)
	if visible {
		t.Fatal("want visible=false when a blocker sits on the line of sight")
	}
}

func TestFOVRejectsBeyondMaxDist(t *testing.T) {
	w := blockWorld{bx: -99, by: -99}
	visible := perception.FOVVisible(w, perception.Vec2{X: 0, Y: 0}, perception.Vec2{X: 1, Y: 0}, perception.Vec2{X: 20, Y: 0}, 140, 10)
	if visible {
		t.Fatal("want visible=false beyond max_dist")
	}
}

func TestFOVRejectsOutsideCone(t *testing.T) {
	w := blockWorld{bx: -99, by: -99}
	// directly behind the agent's facing
	visible := perception.FOVVisible(w, perception.Vec2{X: 0, Y: 0}, perception.Vec2{X: 1, Y: 0}, perception.Vec2{X: -5, Y: 0}, 140, 10)
	if visible {
		t.Fatal("want visible=false outside the facing cone")
	}
}

func TestEventRingOverwritesOldestWhenFull(t *testing.T) {
	r := perception.NewEventRing(2)
	r.Emit(perception.Event{Kind: perception.EventFootstep, X: 1})
	r.Emit(perception.Event{Kind: perception.EventFootstep, X: 2})
	r.Emit(perception.Event{Kind: perception.EventFootstep, X: 3})

	events := r.Events()
	if len(events) != 2 {
		t.Fatalf("want 2 live events, got %d", len(events))
	}
	if events[0].X != 2 || events[1].X != 3 {
		t.Fatalf("want oldest (X=1) dropped, got %v", events)
	}
}

func TestUpdateThreatGainsWhileVisibleDecaysOtherwise(t *testing.T) {
	a := perception.NewAgent(perception.Vec2{}, perception.Vec2{X: 1, Y: 0})
	tun := perception.Tunables{GainPerSec: 1.0, DecayPerSec: 0.5, LastSeenTTLSec: 2.0}

	a.UpdateThreat(true, perception.Vec2{X: 5, Y: 0}, 1.0, tun)
	if a.Threat != 1.0 || !a.HasLastSeen {
		t.Fatalf("want threat=1.0 and last-seen set, got threat=%v hasLastSeen=%v", a.Threat, a.HasLastSeen)
	}

	a.UpdateThreat(false, perception.Vec2{}, 1.0, tun)
	if a.Threat != 0.5 {
		t.Fatalf("want threat decayed to 0.5, got %v", a.Threat)
	}
}

func TestUpdateThreatFloorsAtZero(t *testing.T) {
	a := perception.NewAgent(perception.Vec2{}, perception.Vec2{X: 1, Y: 0})
	tun := perception.Tunables{DecayPerSec: 10.0, LastSeenTTLSec: 1.0}
	a.Threat = 0.1

	a.UpdateThreat(false, perception.Vec2{}, 1.0, tun)

	if a.Threat != 0 {
		t.Fatalf("want threat floored at 0, got %v", a.Threat)
	}
}

func TestBroadcastAlertRaisesBaselineAndSetsAlerted(t *testing.T) {
	source := perception.NewAgent(perception.Vec2{X: 0, Y: 0}, perception.Vec2{X: 1, Y: 0})
	source.Threat = 3.0
	source.LastSeenPos = perception.Vec2{X: 9, Y: 9}
	source.HasLastSeen = true

	near := perception.NewAgent(perception.Vec2{X: 1, Y: 0}, perception.Vec2{X: 1, Y: 0})
	far := perception.NewAgent(perception.Vec2{X: 100, Y: 0}, perception.Vec2{X: 1, Y: 0})

	tun := perception.Tunables{GroupBaseline: 1.5, LastSeenTTLSec: 2.0}
	perception.BroadcastAlert(source, []*perception.Agent{source, near, far}, 10, tun)

	if !source.Alerted {
		t.Fatal("source must be marked alerted")
	}
	if near.Threat != 1.5 || !near.HasLastSeen || near.LastSeenPos != source.LastSeenPos {
		t.Fatalf("near agent should receive baseline threat and last-seen, got %+v", near)
	}
	if far.Threat != 0 || far.HasLastSeen {
		t.Fatalf("far agent outside radius must be untouched, got %+v", far)
	}
}
