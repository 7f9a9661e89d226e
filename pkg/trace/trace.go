// Package trace implements the tick trace ring buffer, active-path
// hashing, and the dual-instance determinism verifier (spec.md §4.8).
package trace

import (
	"hash/fnv"

	"github.com/jihwankim/roguelike-ai-core/pkg/behaviortree"
	"github.com/jihwankim/roguelike-ai-core/pkg/blackboard"
	"github.com/jihwankim/roguelike-ai-core/pkg/metrics"
)

// PathHash32 returns the 32-bit FNV-1a hash of path, as spec.md §4.8
// requires for the active-path hash.
func PathHash32(path string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(path))
	return h.Sum32()
}

// Entry is one ring slot: a tick index paired with its active-path hash.
type Entry struct {
	Tick uint64
	Hash uint32
}

// Ring is a fixed-capacity, overwrite-oldest trace buffer (spec.md
// §4.8: "push is O(1), ring-overwriting oldest").
type Ring struct {
	buf     []Entry
	cap     int
	start   int
	count   int
	metrics *metrics.Registry
}

// NewRing creates a Ring holding at most capacity entries.
func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		capacity = 64
	}
	return &Ring{buf: make([]Entry, capacity), cap: capacity}
}

// SetMetrics attaches a metrics registry the Ring increments on every
// Push. Passing nil disables instrumentation again.
func (r *Ring) SetMetrics(m *metrics.Registry) {
	r.metrics = m
}

// Push records one (tick, hash) pair, overwriting the oldest entry once
// the ring is full.
func (r *Ring) Push(tick uint64, hash uint32) {
	idx := (r.start + r.count) % r.cap
	r.buf[idx] = Entry{Tick: tick, Hash: hash}
	if r.count < r.cap {
		r.count++
	} else {
		r.start = (r.start + 1) % r.cap
	}
	if r.metrics != nil {
		r.metrics.TracePushes.Inc()
	}
}

// Len returns the number of live entries.
func (r *Ring) Len() int { return r.count }

// Entries returns the live entries in chronological order.
func (r *Ring) Entries() []Entry {
	out := make([]Entry, r.count)
	for i := 0; i < r.count; i++ {
		out[i] = r.buf[(r.start+i)%r.cap]
	}
	return out
}

// Clear empties the ring without changing its capacity.
func (r *Ring) Clear() {
	r.start, r.count = 0, 0
}

// AggregateHash64 chains the ring's live entries' 32-bit hashes into one
// 64-bit FNV-1a summary (spec.md §4.8's "aggregate 64-bit FNV-1a chains
// per-tick hashes for summary comparison").
func (r *Ring) AggregateHash64() uint64 {
	h := fnv.New64a()
	for _, e := range r.Entries() {
		var b [4]byte
		b[0] = byte(e.Hash)
		b[1] = byte(e.Hash >> 8)
		b[2] = byte(e.Hash >> 16)
		b[3] = byte(e.Hash >> 24)
		_, _ = h.Write(b[:])
	}
	return h.Sum64()
}

// TreeFactory builds one fresh, independent tree instance for the
// determinism verifier. Each call must construct an equivalent tree
// (same node graph and tunables) so divergence can only come from
// seed-driven RNG behavior.
type TreeFactory func() (*behaviortree.Tree, *blackboard.Blackboard, behaviortree.World)

// VerifyDeterministic builds two trees via factory, ticks each steps
// times at the fixed dt, and requires their per-tick active-path hashes
// to match exactly (spec.md §4.8). It returns true and -1 when every
// tick matched, or false and the first mismatching (0-based) tick index.
func VerifyDeterministic(factory TreeFactory, steps int, dt float32) (ok bool, mismatchTick int) {
	treeA, bbA, worldA := factory()
	treeB, bbB, worldB := factory()

	for i := 0; i < steps; i++ {
		treeA.Tick(bbA, worldA, dt)
		treeB.Tick(bbB, worldB, dt)
		hashA := PathHash32(treeA.ActivePathString())
		hashB := PathHash32(treeB.ActivePathString())
		if hashA != hashB {
			return false, i
		}
	}
	return true, -1
}
