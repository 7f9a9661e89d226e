package agentpool_test

import "testing"
import "github.com/jihwankim/roguelike-ai-core/pkg/agentpool"
import "github.com/jihwankim/roguelike-ai-core/pkg/metrics"
import "github.com/prometheus/client_golang/prometheus/testutil"

func TestAcquireGrowsPoolAndTracksCounters(t *testing.T) {
	p := agentpool.New(8)

	s1, h1 := p.Acquire()
	if s1 == nil || s1.BB == nil {
		t.Fatal("acquire should return a zeroed state with a blackboard")
	}
	if p.InUse() != 1 || p.TotalCreated() != 1 || p.Peak() != 1 {
		t.Fatalf("want inUse=1 total=1 peak=1, got inUse=%d total=%d peak=%d", p.InUse(), p.TotalCreated(), p.Peak())
	}

	_, h2 := p.Acquire()
	if p.InUse() != 2 || p.TotalCreated() != 2 {
		t.Fatalf("want inUse=2 total=2, got inUse=%d total=%d", p.InUse(), p.TotalCreated())
	}

	p.Release(h1)
	if p.InUse() != 1 || p.Free() != 1 {
		t.Fatalf("want inUse=1 free=1 after release, got inUse=%d free=%d", p.InUse(), p.Free())
	}

	p.Release(h2)
	if p.InUse() != 0 || p.Free() != 2 {
		t.Fatalf("want inUse=0 free=2, got inUse=%d free=%d", p.InUse(), p.Free())
	}
}

func TestAcquireReusesReleasedSlabAndZeroesIt(t *testing.T) {
	p := agentpool.New(8)
	s1, h1 := p.Acquire()
	s1.BB.SetInt("dirty", 42)
	p.Release(h1)

	s2, h2 := p.Acquire()
	if h2 != h1 {
		t.Fatalf("want the released slab reused, got new handle %d vs %d", h2, h1)
	}
	if p.TotalCreated() != 1 {
		t.Fatalf("reuse must not grow total_created, got %d", p.TotalCreated())
	}
	if v, ok := s2.BB.GetInt("dirty"); ok {
		t.Fatalf("reused slab must be zeroed, found dirty=%d", v)
	}
}

func TestReleaseUnknownHandleIsNoOp(t *testing.T) {
	p := agentpool.New(8)
	p.Release(99)
	if p.InUse() != 0 || p.Free() != 0 {
		t.Fatal("releasing an unacquired handle must not change counters")
	}
}

func TestResetForTestsClearsEverything(t *testing.T) {
	p := agentpool.New(8)
	p.Acquire()
	p.Acquire()
	p.ResetForTests()
	if p.InUse() != 0 || p.Free() != 0 || p.TotalCreated() != 0 || p.Peak() != 0 {
		t.Fatal("reset_for_tests must zero every counter")
	}
}

func TestAttachedMetricsTrackOccupancy(t *testing.T) {
	p := agentpool.New(8)
	reg := metrics.New()
	p.SetMetrics(reg)

	_, h1 := p.Acquire()
	p.Acquire()
	if v := testutil.ToFloat64(reg.PoolInUse); v != 2 {
		t.Fatalf("want PoolInUse=2, got %v", v)
	}
	if v := testutil.ToFloat64(reg.PoolPeak); v != 2 {
		t.Fatalf("want PoolPeak=2, got %v", v)
	}
	if v := testutil.ToFloat64(reg.PoolCreated); v != 2 {
		t.Fatalf("want PoolCreated=2, got %v", v)
	}

	p.Release(h1)
	if v := testutil.ToFloat64(reg.PoolInUse); v != 1 {
		t.Fatalf("want PoolInUse=1 after release, got %v", v)
	}
	if v := testutil.ToFloat64(reg.PoolPeak); v != 2 {
		t.Fatalf("peak must not drop after release, got %v", v)
	}
}
