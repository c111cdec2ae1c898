package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prateek/v8lens/analyze"
)

var (
	hcTop    int
	hcFormat string
)

var hiddenClassesCmd = &cobra.Command{
	Use:   "hidden-classes <snapshot.json>",
	Short: "Bucket hidden-class (shape) nodes by name and size",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := loadGraph(args[0])
		if err != nil {
			return err
		}
		groups, err := analyze.FindHiddenClasses(g, analyze.DefaultHiddenClassConfig())
		if err != nil {
			return err
		}

		top := hcTop
		if top <= 0 {
			top = cfg.Analysis.TopN
		}
		out, err := reporterFor(hcFormat).HiddenClasses(groups, top)
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

func init() {
	hiddenClassesCmd.Flags().IntVar(&hcTop, "top", 0, "limit output to the N largest shape buckets (defaults to config's top_n)")
	hiddenClassesCmd.Flags().StringVar(&hcFormat, "format", "text", "output format: text or json")
	rootCmd.AddCommand(hiddenClassesCmd)
}
