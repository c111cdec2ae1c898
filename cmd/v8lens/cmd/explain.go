package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prateek/v8lens/graph"
	"github.com/prateek/v8lens/v8err"
)

var (
	explainNode     uint32
	explainMaxPaths int
)

var explainCmd = &cobra.Command{
	Use:   "explain <snapshot.json> --node <id>",
	Short: "Show every retention path from a GC root to a node",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := loadGraph(args[0])
		if err != nil {
			return err
		}
		node := graph.NodeId(explainNode)
		if int(node) >= g.NodeCount() {
			return fmt.Errorf("node %d out of range [0,%d)", node, g.NodeCount())
		}

		idx := graph.BuildRootPathIndex(g, g.Roots())
		if !idx.Reachable(node) {
			return fmt.Errorf("node %d is not reachable from any GC root", node)
		}

		maxPaths := explainMaxPaths
		if maxPaths <= 0 {
			maxPaths = cfg.Analysis.MaxPaths
		}
		paths, err := idx.PathsTo(node, maxPaths)
		truncated := v8err.IsBudgetExceeded(err)
		if err != nil && !truncated {
			return err
		}

		rendered := make([]string, len(paths))
		for i, p := range paths {
			rendered[i] = renderPath(g, p)
		}
		out, encErr := json.MarshalIndent(map[string]any{
			"node":      uint32(node),
			"truncated": truncated,
			"paths":     rendered,
		}, "", "  ")
		if encErr != nil {
			return encErr
		}
		fmt.Println(string(out))
		return nil
	},
}

func renderPath(g *graph.CompactGraph, p graph.Path) string {
	s := ""
	for _, e := range p.Edges {
		name, _ := g.NodeName(e.From)
		s += fmt.Sprintf("%s --[%s:%s]--> ", name, e.Type, g.EdgeNameOrIndexString(graph.Edge{Type: e.Type, NameOrIndex: e.NameOrIndex, To: e.To}))
	}
	if len(p.Edges) > 0 {
		last := p.Edges[len(p.Edges)-1]
		name, _ := g.NodeName(last.To)
		s += name
	}
	return s
}

func init() {
	explainCmd.Flags().Uint32Var(&explainNode, "node", 0, "node id to explain retention paths for")
	explainCmd.MarkFlagRequired("node")
	explainCmd.Flags().IntVar(&explainMaxPaths, "max-paths", 0, "cap on enumerated retention paths (defaults to config's max_paths)")
	rootCmd.AddCommand(explainCmd)
}
