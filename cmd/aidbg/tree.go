package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jihwankim/roguelike-ai-core/pkg/debug"
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Args:  cobra.NoArgs,
	Short: "Visualize the demo behavior tree",
	Long:  `Renders the demo enemy behavior tree's node graph, pre-order, with 2-space indentation per depth.`,
	RunE:  runTree,
}

func runTree(cmd *cobra.Command, args []string) error {
	root := buildDemoTree()
	debug.VisualizeTree(os.Stdout, root)
	if verbose {
		fmt.Fprintln(cmd.OutOrStdout(), "(demo tree: Selector[Sequence[PlayerVisible, Cooldown[AttackMelee]], MoveTo])")
	}
	return nil
}
