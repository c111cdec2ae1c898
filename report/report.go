// Package report renders analysis results for human or machine
// consumption. It formats only: every value it prints comes from the
// core's public interfaces (graph, analyze), and it carries no
// analysis logic or correctness invariants of its own.
package report

import (
	"sort"

	"github.com/prateek/v8lens/analyze"
	"github.com/prateek/v8lens/graph"
)

// Reporter renders a dominator tree, duplicate groups, and
// hidden-class groups. TextReporter and JSONReporter are the two
// concrete implementations the "dominators"/"duplicates"/
// "hidden-classes" CLI commands select between via --format.
type Reporter interface {
	DominatorTree(g *graph.CompactGraph, t *graph.DominatorTree, retained map[graph.NodeId]uint64, top int) (string, error)
	Duplicates(groups []analyze.DuplicateGroup, top int) (string, error)
	HiddenClasses(groups []analyze.HiddenClassGroup, top int) (string, error)
}

// domRow is the flattened, sorted shape both reporters build before
// rendering: one row per node, ready to print in retained-size order
// regardless of output format.
type domRow struct {
	Node         graph.NodeId
	Name         string
	Type         string
	SelfSize     uint64
	RetainedSize uint64
	Depth        int
}

func sortedDominatorRows(g *graph.CompactGraph, t *graph.DominatorTree, retained map[graph.NodeId]uint64, top int) ([]domRow, error) {
	nodes := make([]graph.NodeId, 0, len(t.Idom)+1)
	for v := range t.Idom {
		nodes = append(nodes, v)
	}
	nodes = append(nodes, t.Root) // the root is never a key in Idom
	rows := make([]domRow, 0, len(nodes))
	for _, v := range nodes {
		if int(v) >= g.NodeCount() {
			continue // synthetic union root never carries real node fields
		}
		name, err := g.NodeName(v)
		if err != nil {
			return nil, err
		}
		typ, err := g.NodeType(v)
		if err != nil {
			return nil, err
		}
		self, err := g.NodeSelfSize(v)
		if err != nil {
			return nil, err
		}
		depth, err := t.Depth(v)
		if err != nil {
			return nil, err
		}
		rows = append(rows, domRow{
			Node:         v,
			Name:         name,
			Type:         typ.String(),
			SelfSize:     self,
			RetainedSize: retained[v],
			Depth:        depth,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].RetainedSize != rows[j].RetainedSize {
			return rows[i].RetainedSize > rows[j].RetainedSize
		}
		return rows[i].Node < rows[j].Node
	})
	if top > 0 && len(rows) > top {
		rows = rows[:top]
	}
	return rows, nil
}
