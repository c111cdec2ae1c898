package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prateek/v8lens/graph"
	"github.com/prateek/v8lens/report"
)

var (
	domTop    int
	domFormat string
)

var dominatorsCmd = &cobra.Command{
	Use:   "dominators <snapshot.json>",
	Short: "Print the dominator tree, ranked by retained size",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := loadGraph(args[0])
		if err != nil {
			return err
		}
		if len(g.Roots()) == 0 {
			return fmt.Errorf("snapshot has no GC roots to dominate from")
		}

		d, err := graph.Dominators(g, g.Roots(), progressFunc())
		if err != nil {
			return err
		}
		tree := graph.BuildDominatorTree(d)
		retained, err := graph.RetainedSizes(tree, g, progressFunc())
		if err != nil {
			return err
		}

		top := domTop
		if top <= 0 {
			top = cfg.Analysis.TopN
		}
		out, err := reporterFor(domFormat).DominatorTree(g, tree, retained, top)
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

func reporterFor(format string) report.Reporter {
	if format == "json" {
		return report.JSONReporter{}
	}
	return report.TextReporter{}
}

func init() {
	dominatorsCmd.Flags().IntVar(&domTop, "top", 0, "limit output to the N largest retained-size nodes (defaults to config's top_n)")
	dominatorsCmd.Flags().StringVar(&domFormat, "format", "text", "output format: text or json")
	rootCmd.AddCommand(dominatorsCmd)
}
