package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prateek/v8lens/analyze"
	"github.com/prateek/v8lens/graph"
)

var (
	dupTop         int
	dupFormat      string
	dupHiddenClass bool
)

var duplicatesCmd = &cobra.Command{
	Use:   "duplicates <snapshot.json>",
	Short: "Find duplicate strings and structurally-identical objects",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := loadGraph(args[0])
		if err != nil {
			return err
		}

		strs, err := analyze.FindDuplicateStrings(g)
		if err != nil {
			return err
		}

		includeHidden := dupHiddenClass
		if !cmd.Flags().Changed("hidden-classes") {
			includeHidden = cfg.Analysis.IncludeHiddenClasses
		}
		objs, err := analyze.FindDuplicateObjects(g, analyze.ObjectDuplicateConfig{IncludeHiddenClasses: includeHidden})
		if err != nil {
			return err
		}

		groups := append(strs, objs...)
		analyze.SortGroups(groups)

		if len(g.Roots()) > 0 {
			d, derr := graph.Dominators(g, g.Roots())
			if derr == nil {
				tree := graph.BuildDominatorTree(d)
				if retained, rerr := graph.RetainedSizes(tree, g); rerr == nil {
					groups = analyze.AnnotateRetainedSizes(groups, retained)
				}
			}
		}

		top := dupTop
		if top <= 0 {
			top = cfg.Analysis.TopN
		}
		out, err := reporterFor(dupFormat).Duplicates(groups, top)
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

func init() {
	duplicatesCmd.Flags().IntVar(&dupTop, "top", 0, "limit output to the N largest duplicate groups (defaults to config's top_n)")
	duplicatesCmd.Flags().StringVar(&dupFormat, "format", "text", "output format: text or json")
	duplicatesCmd.Flags().BoolVar(&dupHiddenClass, "hidden-classes", false, "include Hidden-typed edges in the object structural hash")
	rootCmd.AddCommand(duplicatesCmd)
}
