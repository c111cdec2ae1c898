package graph

import "testing"

type testEdge struct {
	From NodeId
	To   NodeId
	Type EdgeType
}

// buildTestGraph assembles a CompactGraph from a simple adjacency
// list, for hand-written small graphs in tests. selfSizes[i] is
// node i's self size; if nil, all sizes default to 0. Every node gets
// type NodeObject and a shared empty name.
func buildTestGraph(t *testing.T, n int, edges []testEdge, selfSizes []uint64, roots []NodeId) *CompactGraph {
	t.Helper()

	byNode := make([][]testEdge, n)
	for _, e := range edges {
		byNode[e.From] = append(byNode[e.From], e)
	}

	types := make([]NodeType, n)
	nameIdx := make([]uint32, n)
	stableID := make([]uint64, n)
	sizes := make([]uint64, n)
	edgeCount := make([]uint32, n)
	for i := 0; i < n; i++ {
		types[i] = NodeObject
		stableID[i] = uint64(i)
		if selfSizes != nil {
			sizes[i] = selfSizes[i]
		}
		edgeCount[i] = uint32(len(byNode[i]))
	}

	var edgeType []EdgeType
	var edgeNameOrIndex []uint32
	var edgeTo []NodeId
	for i := 0; i < n; i++ {
		for j, e := range byNode[i] {
			edgeType = append(edgeType, e.Type)
			edgeNameOrIndex = append(edgeNameOrIndex, uint32(j))
			edgeTo = append(edgeTo, e.To)
		}
	}

	src := NodeSource{
		Type:            types,
		NameIdx:         nameIdx,
		StableID:        stableID,
		SelfSize:        sizes,
		EdgeCount:       edgeCount,
		EdgeType:        edgeType,
		EdgeNameOrIndex: edgeNameOrIndex,
		EdgeTo:          edgeTo,
		Strings:         NewStringTable([]string{""}),
		Roots:           roots,
	}

	g, err := Build(src)
	if err != nil {
		t.Fatalf("buildTestGraph: %v", err)
	}
	return g
}
