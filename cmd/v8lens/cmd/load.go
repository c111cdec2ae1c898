package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/prateek/v8lens/graph"
	"github.com/prateek/v8lens/snapshot"
)

func loadGraph(path string) (*graph.CompactGraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	snap, err := snapshot.Load(f)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}
	src, err := snapshot.Project(snap)
	if err != nil {
		return nil, fmt.Errorf("projecting snapshot: %w", err)
	}
	g, err := graph.Build(*src)
	if err != nil {
		return nil, fmt.Errorf("building graph: %w", err)
	}
	return g, nil
}

var loadCmd = &cobra.Command{
	Use:   "load <snapshot.json>",
	Short: "Validate a heap snapshot and print a summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := loadGraph(args[0])
		if err != nil {
			return err
		}
		log.WithFields(logFieldsSummary(g)).Info("snapshot loaded")
		fmt.Printf("nodes: %d\nedges: %d\nroots: %d\n", g.NodeCount(), g.EdgeCount(), len(g.Roots()))
		return nil
	},
}

func logFieldsSummary(g *graph.CompactGraph) map[string]any {
	return map[string]any{
		"nodes": g.NodeCount(),
		"edges": g.EdgeCount(),
		"roots": len(g.Roots()),
	}
}

func init() {
	rootCmd.AddCommand(loadCmd)
}
