package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/prateek/v8lens/analyze"
	"github.com/prateek/v8lens/graph"
)

func buildSmallGraph(t *testing.T) *graph.CompactGraph {
	t.Helper()
	src := graph.NodeSource{
		Type:            []graph.NodeType{graph.NodeObject, graph.NodeObject, graph.NodeString},
		NameIdx:         []uint32{0, 1, 2},
		StableID:        []uint64{1, 2, 3},
		SelfSize:        []uint64{16, 8, 4},
		EdgeCount:       []uint32{1, 1, 0},
		EdgeType:        []graph.EdgeType{graph.EdgeProperty, graph.EdgeProperty},
		EdgeNameOrIndex: []uint32{0, 0},
		EdgeTo:          []graph.NodeId{1, 2},
		Strings:         graph.NewStringTable([]string{"root", "child", "leaf"}),
		Roots:           []graph.NodeId{0},
	}
	g, err := graph.Build(src)
	require.NoError(t, err)
	return g
}

func buildTree(t *testing.T, g *graph.CompactGraph) (*graph.DominatorTree, map[graph.NodeId]uint64) {
	t.Helper()
	d, err := graph.Dominators(g, g.Roots())
	require.NoError(t, err)
	tree := graph.BuildDominatorTree(d)
	retained, err := graph.RetainedSizes(tree, g)
	require.NoError(t, err)
	return tree, retained
}

func TestTextReporterDominatorTree(t *testing.T) {
	g := buildSmallGraph(t)
	tree, retained := buildTree(t, g)

	out, err := TextReporter{}.DominatorTree(g, tree, retained, 0)
	require.NoError(t, err)
	require.Contains(t, out, "root")
	require.Contains(t, out, "child")
	require.Contains(t, out, "leaf")
}

func TestJSONReporterDominatorTree(t *testing.T) {
	g := buildSmallGraph(t)
	tree, retained := buildTree(t, g)

	out, err := JSONReporter{}.DominatorTree(g, tree, retained, 0)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(strings.TrimSpace(out), "["))
	require.Contains(t, out, "\"retained_size\"")
}

func TestTextReporterDuplicatesAndHiddenClasses(t *testing.T) {
	groups := []analyze.DuplicateGroup{
		{Hash: 0xdeadbeef, ObjectType: "string", Count: 3, SizePerObject: 16, TotalWasted: 32, SampleValue: "\"hi\""},
	}
	out, err := TextReporter{}.Duplicates(groups, 0)
	require.NoError(t, err)
	require.Contains(t, out, "deadbeef")

	hc := []analyze.HiddenClassGroup{{Name: "Point", Count: 10, TotalSize: 320}}
	out, err = TextReporter{}.HiddenClasses(hc, 0)
	require.NoError(t, err)
	require.Contains(t, out, "Point")
}

func TestJSONReporterTopLimitsRows(t *testing.T) {
	hc := []analyze.HiddenClassGroup{
		{Name: "A", Count: 1, TotalSize: 1},
		{Name: "B", Count: 1, TotalSize: 1},
		{Name: "C", Count: 1, TotalSize: 1},
	}
	out, err := JSONReporter{}.HiddenClasses(hc, 2)
	require.NoError(t, err)
	require.NotContains(t, out, "\"C\"")
}
