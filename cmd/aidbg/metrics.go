package main

import (
	"fmt"
	"os"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/client_golang/prometheus/expfmt"
	"github.com/spf13/cobra"

	"github.com/jihwankim/roguelike-ai-core/pkg/agentpool"
	"github.com/jihwankim/roguelike-ai-core/pkg/behaviortree"
	"github.com/jihwankim/roguelike-ai-core/pkg/blackboard"
	"github.com/jihwankim/roguelike-ai-core/pkg/bridge"
	"github.com/jihwankim/roguelike-ai-core/pkg/metrics"
	"github.com/jihwankim/roguelike-ai-core/pkg/perception"
	"github.com/jihwankim/roguelike-ai-core/pkg/scheduler"
)

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Args:  cobra.NoArgs,
	Short: "Run a short demo simulation and dump its Prometheus metrics",
	Long:  `Spawns a handful of demo enemies through the bridge, ticks the scheduler a fixed number of frames, and writes the resulting registry in Prometheus text exposition format.`,
	RunE:  runMetrics,
}

var (
	metricsEnemies int
	metricsTicks   int
)

func init() {
	metricsCmd.Flags().IntVar(&metricsEnemies, "enemies", 4, "number of demo enemies to spawn")
	metricsCmd.Flags().IntVar(&metricsTicks, "ticks", 20, "number of scheduler frames to run")
}

func runMetrics(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	reg := metrics.New()
	pool := agentpool.New(cfg.Blackboard.Capacity)
	pool.SetMetrics(reg)
	b := bridge.New(pool, nil)
	b.SetMetrics(reg)
	sched := buildDemoScheduler(cfg)
	sched.SetMetrics(reg)

	world := &demoWorld{}
	player := blackboard.Vec2{X: 5, Y: 0}
	agents := make([]scheduler.Agent, 0, metricsEnemies)
	for i := 0; i < metricsEnemies; i++ {
		e := b.Spawn(bridge.SpawnFlags{}, func() behaviortree.Node {
			return bridge.DefaultTree(2.0)
		})
		e.State().Pos = blackboard.Vec2{X: float32(i), Y: 0}
		agents = append(agents, b.AsScheduledAgent(e, world, func() blackboard.Vec2 { return player }))
	}

	for i := 0; i < metricsTicks; i++ {
		sched.Tick(agents, 0.016)
	}

	ring := buildDemoEventRing(cfg)
	for i := 0; i < metricsEnemies; i++ {
		ring.Emit(perception.Event{Kind: perception.EventFootstep, X: float32(i), Y: 0, Loudness: 3})
	}
	listener := perception.NewAgent(perception.Vec2{X: 0, Y: 0}, perception.Vec2{X: 1, Y: 0})
	listener.ProcessHearing(ring.Events(), perception.Tunables{HearingThreat: 0.5, LastSeenTTLSec: 2})
	if verbose {
		fmt.Fprintf(cmd.OutOrStdout(), "perception ring holds %d/%d footstep events, listener threat now %.2f\n",
			ring.Len(), cfg.Perception.EventRingCapacity, listener.Threat)
	}

	families, err := reg.Registerer().Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	enc := expfmt.NewEncoder(os.Stdout, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encode metrics: %w", err)
		}
	}
	return nil
}

// counterValue reads a prometheus.Counter's current value without
// pulling in a test-only helper package.
func counterValue(c interface{ Write(*dto.Metric) error }) float64 {
	var m dto.Metric
	_ = c.Write(&m)
	return m.GetCounter().GetValue()
}
