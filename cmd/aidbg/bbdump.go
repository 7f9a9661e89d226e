package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jihwankim/roguelike-ai-core/pkg/debug"
)

var bbdumpCmd = &cobra.Command{
	Use:   "bbdump",
	Args:  cobra.NoArgs,
	Short: "Dump the demo blackboard",
	Long:  `Prints one "key=value" line per entry of the demo blackboard, using the type-specific formatting the AI runtime core's debug surface defines.`,
	RunE:  runBBDump,
}

var bbdumpTicks int

func init() {
	bbdumpCmd.Flags().IntVar(&bbdumpTicks, "ticks", 0, "advance the blackboard this many 16ms ticks before dumping (exercises TTL/timer decay)")
}

func runBBDump(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	bb := buildDemoBlackboard(cfg.Blackboard.Capacity)
	for i := 0; i < bbdumpTicks; i++ {
		bb.Tick(0.016)
	}
	if verbose {
		fmt.Fprintf(cmd.OutOrStdout(), "dumping blackboard after %d tick(s)\n", bbdumpTicks)
	}
	debug.DumpBlackboard(os.Stdout, bb)
	return nil
}
