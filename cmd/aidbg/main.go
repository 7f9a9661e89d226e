// Command aidbg is an operator CLI over the AI runtime core's §4.9 debug
// surface: tree visualization, blackboard dumps, trace export, the
// determinism verifier, and a metrics dump. Modeled directly on the
// teacher's cmd/chaos-runner (rootCmd + init() subcommand wiring,
// persistent --config/--verbose flags, a loadConfig helper in
// utils.go). Every subcommand loads its tuning from --config (falling
// back to config.Default()), feeding scheduler bucket/LOD, blackboard
// capacity, and perception ring sizing into the demo construction.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
	version = "dev"
)

var rootCmd = &cobra.Command{
	Use:     "aidbg",
	Short:   "Debug and introspection CLI for the roguelike AI runtime core",
	Long:    `aidbg exposes the AI runtime core's debug surface: behavior tree visualization, blackboard dumps, trace export, and the dual-instance determinism verifier.`,
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (built-in defaults when unset or missing)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(bbdumpCmd)
	rootCmd.AddCommand(traceCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(metricsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
