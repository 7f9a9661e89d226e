package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jihwankim/roguelike-ai-core/pkg/behaviortree"
	"github.com/jihwankim/roguelike-ai-core/pkg/debug"
	"github.com/jihwankim/roguelike-ai-core/pkg/metrics"
	"github.com/jihwankim/roguelike-ai-core/pkg/scheduler"
	"github.com/jihwankim/roguelike-ai-core/pkg/trace"
)

var traceCmd = &cobra.Command{
	Use:   "trace",
	Args:  cobra.NoArgs,
	Short: "Tick the demo tree and export its trace as JSON",
	Long:  `Runs the demo behavior tree through the config-sized scheduler for a fixed number of frames at a fixed dt (the tree gets a full tick only on frames the scheduler's bucket and LOD gating allow), pushing each frame's current active-path hash into a trace ring, then exports the ring as JSON.`,
	RunE:  runTrace,
}

var (
	traceTicks int
	traceCap   int
	traceDt    float32
)

func init() {
	traceCmd.Flags().IntVar(&traceTicks, "ticks", 40, "number of scheduler frames to run")
	traceCmd.Flags().IntVar(&traceCap, "capacity", 64, "trace ring capacity")
	traceCmd.Flags().Float32Var(&traceDt, "dt", 0.016, "fixed tick delta in seconds")
}

func runTrace(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	tree := behaviortree.New(buildDemoTree())
	bb := buildDemoBlackboard(cfg.Blackboard.Capacity)
	world := &demoWorld{}
	ring := trace.NewRing(traceCap)
	reg := metrics.New()
	ring.SetMetrics(reg)

	sched := buildDemoScheduler(cfg)
	sched.SetMetrics(reg)
	agent := &demoScheduledAgent{tree: tree, bb: bb, world: world}

	for i := 0; i < traceTicks; i++ {
		sched.Tick([]scheduler.Agent{agent}, traceDt)
		hash := trace.PathHash32(tree.ActivePathString())
		ring.Push(tree.TickCount(), hash)
	}

	if verbose {
		fmt.Fprintf(cmd.OutOrStdout(), "ran %d ticks (buckets=%d, lod_radius=%.1f), aggregate hash %x, projectiles spawned %d, full ticks %.0f, maintenance ticks %.0f\n",
			traceTicks, cfg.Scheduler.Buckets, cfg.Scheduler.LODRadiusTiles, ring.AggregateHash64(), world.spawned,
			counterValue(reg.FullTicks), counterValue(reg.MaintenanceTicks))
	}
	return debug.ExportTraceJSON(os.Stdout, ring)
}
