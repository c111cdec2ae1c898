package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prateek/v8lens/graph"
	"github.com/prateek/v8lens/tui"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <snapshot.json>",
	Short: "Launch the interactive dominator-tree inspector",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := loadGraph(args[0])
		if err != nil {
			return err
		}
		if len(g.Roots()) == 0 {
			return fmt.Errorf("snapshot has no GC roots to dominate from")
		}

		d, err := graph.Dominators(g, g.Roots())
		if err != nil {
			return err
		}
		tree := graph.BuildDominatorTree(d)
		retained, err := graph.RetainedSizes(tree, g)
		if err != nil {
			return err
		}
		paths := graph.BuildRootPathIndex(g, g.Roots())

		return tui.Run(g, tree, retained, paths)
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
