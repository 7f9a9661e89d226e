package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jihwankim/roguelike-ai-core/pkg/behaviortree"
	"github.com/jihwankim/roguelike-ai-core/pkg/blackboard"
	"github.com/jihwankim/roguelike-ai-core/pkg/trace"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Args:  cobra.NoArgs,
	Short: "Run the dual-instance determinism verifier against the demo tree",
	Long:  `Builds two independent instances of the demo tree via the same factory, ticks both for N steps at a fixed dt, and reports whether their per-tick active-path hashes stay bit-identical.`,
	RunE:  runVerify,
}

var (
	verifySteps int
	verifyDt    float32
)

func init() {
	verifyCmd.Flags().IntVar(&verifySteps, "steps", 40, "number of ticks to compare")
	verifyCmd.Flags().Float32Var(&verifyDt, "dt", 0.016, "fixed tick delta in seconds")
}

func demoFactory(capacity int) func() (*behaviortree.Tree, *blackboard.Blackboard, behaviortree.World) {
	return func() (*behaviortree.Tree, *blackboard.Blackboard, behaviortree.World) {
		return behaviortree.New(buildDemoTree()), buildDemoBlackboard(capacity), &demoWorld{}
	}
}

func runVerify(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ok, mismatchTick := trace.VerifyDeterministic(demoFactory(cfg.Blackboard.Capacity), verifySteps, verifyDt)
	if ok {
		fmt.Printf("deterministic across %d ticks\n", verifySteps)
		return nil
	}
	fmt.Printf("diverged at tick %d\n", mismatchTick)
	return fmt.Errorf("determinism check failed")
}
