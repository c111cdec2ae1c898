package graph

import "testing"

func TestBuildBasicAccessors(t *testing.T) {
	g := buildTestGraph(t, 3, []testEdge{{0, 1, EdgeProperty}, {0, 2, EdgeElement}}, []uint64{1, 2, 3}, []NodeId{0})

	if g.NodeCount() != 3 {
		t.Fatalf("NodeCount = %d, want 3", g.NodeCount())
	}
	if g.EdgeCount() != 2 {
		t.Fatalf("EdgeCount = %d, want 2", g.EdgeCount())
	}

	edges, err := g.OutEdges(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(edges) != 2 {
		t.Fatalf("OutEdges(0) = %v, want 2 edges", edges)
	}

	in, err := g.InEdges(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(in) != 1 || in[0] != 0 {
		t.Fatalf("InEdges(1) = %v, want [0]", in)
	}

	if _, err := g.NodeType(NodeId(99)); err == nil {
		t.Fatal("expected query error for out-of-range node")
	}
}

func TestBuildRejectsEdgeCountMismatch(t *testing.T) {
	src := NodeSource{
		Type:            []NodeType{NodeObject},
		NameIdx:         []uint32{0},
		StableID:        []uint64{0},
		SelfSize:        []uint64{0},
		EdgeCount:       []uint32{1},
		EdgeType:        nil,
		EdgeNameOrIndex: nil,
		EdgeTo:          nil,
		Strings:         NewStringTable([]string{""}),
	}
	if _, err := Build(src); err == nil {
		t.Fatal("expected load error for edge_count/edge array mismatch")
	}
}

func TestBuildRejectsUnknownNodeType(t *testing.T) {
	src := NodeSource{
		Type:      []NodeType{NodeType(200)},
		NameIdx:   []uint32{0},
		StableID:  []uint64{0},
		SelfSize:  []uint64{0},
		EdgeCount: []uint32{0},
		Strings:   NewStringTable([]string{""}),
	}
	if _, err := Build(src); err == nil {
		t.Fatal("expected load error for unknown node type tag")
	}
}

func TestBuildRejectsOutOfRangeToNode(t *testing.T) {
	src := NodeSource{
		Type:            []NodeType{NodeObject},
		NameIdx:         []uint32{0},
		StableID:        []uint64{0},
		SelfSize:        []uint64{0},
		EdgeCount:       []uint32{1},
		EdgeType:        []EdgeType{EdgeProperty},
		EdgeNameOrIndex: []uint32{0},
		EdgeTo:          []NodeId{5},
		Strings:         NewStringTable([]string{""}),
	}
	if _, err := Build(src); err == nil {
		t.Fatal("expected load error for out-of-range to_node")
	}
}
