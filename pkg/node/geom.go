// Package node implements the behavior-tree node library: composites,
// decorators, conditions, actions, and tactical nodes (spec.md §4.3).
package node

import (
	"math"

	"github.com/jihwankim/roguelike-ai-core/pkg/behaviortree"
)

// Vec2 aliases the tree's 2D vector type.
type Vec2 = behaviortree.Vec2

func sub(a, b Vec2) Vec2       { return Vec2{X: a.X - b.X, Y: a.Y - b.Y} }
func add(a, b Vec2) Vec2       { return Vec2{X: a.X + b.X, Y: a.Y + b.Y} }
func scale(a Vec2, s float32) Vec2 { return Vec2{X: a.X * s, Y: a.Y * s} }
func dot(a, b Vec2) float32    { return a.X*b.X + a.Y*b.Y }
func lengthSq(a Vec2) float32  { return a.X*a.X + a.Y*a.Y }
func length(a Vec2) float32    { return float32(math.Sqrt(float64(lengthSq(a)))) }
func distSq(a, b Vec2) float32 { return lengthSq(sub(a, b)) }
func dist(a, b Vec2) float32   { return length(sub(a, b)) }

// normalize returns a's unit vector, falling back to (1,0) on a
// near-degenerate input (original_source's advanced_nodes.c: "if(len<0.0001f){
// vx=1; vy=0; }") so an agent exactly atop its target/threat steps off
// in a fixed direction instead of freezing.
func normalize(a Vec2) Vec2 {
	l := length(a)
	if l < 0.0001 {
		return Vec2{X: 1, Y: 0}
	}
	return Vec2{X: a.X / l, Y: a.Y / l}
}

// perp returns the 2D left-hand perpendicular of a unit vector.
func perp(a Vec2) Vec2 {
	return Vec2{X: -a.Y, Y: a.X}
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

const twoPi = 2 * math.Pi

func cos32(rad float32) float32 { return float32(math.Cos(float64(rad))) }
func sin32(rad float32) float32 { return float32(math.Sin(float64(rad))) }
