package report

import (
	"fmt"
	"strings"

	"github.com/prateek/v8lens/analyze"
	"github.com/prateek/v8lens/graph"
)

// TextReporter renders plain, human-readable tables — the default
// output format for interactive CLI use.
type TextReporter struct{}

func (TextReporter) DominatorTree(g *graph.CompactGraph, t *graph.DominatorTree, retained map[graph.NodeId]uint64, top int) (string, error) {
	rows, err := sortedDominatorRows(g, t, retained, top)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%-8s %-6s %-30s %12s %12s\n", "node", "depth", "name", "self", "retained")
	for _, r := range rows {
		indent := strings.Repeat("  ", min(r.Depth, 10))
		fmt.Fprintf(&b, "%-8d %-6d %-30s %12d %12d\n", r.Node, r.Depth, indent+truncate(r.Name, 28), r.SelfSize, r.RetainedSize)
	}
	return b.String(), nil
}

func (TextReporter) Duplicates(groups []analyze.DuplicateGroup, top int) (string, error) {
	if top > 0 && len(groups) > top {
		groups = groups[:top]
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%-8s %-20s %6s %10s %12s %s\n", "hash", "type", "count", "size_ea", "wasted", "sample")
	for _, g := range groups {
		fmt.Fprintf(&b, "%08x %-20s %6d %10d %12d %s\n", g.Hash, g.ObjectType, g.Count, g.SizePerObject, g.TotalWasted, truncate(g.SampleValue, 40))
	}
	return b.String(), nil
}

func (TextReporter) HiddenClasses(groups []analyze.HiddenClassGroup, top int) (string, error) {
	if top > 0 && len(groups) > top {
		groups = groups[:top]
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%-40s %8s %14s\n", "name", "count", "total_size")
	for _, g := range groups {
		fmt.Fprintf(&b, "%-40s %8d %14d\n", truncate(g.Name, 38), g.Count, g.TotalSize)
	}
	return b.String(), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
