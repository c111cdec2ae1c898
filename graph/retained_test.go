package graph

import "testing"

func TestRetainedSizesDiamond(t *testing.T) {
	g := buildTestGraph(t, 4, []testEdge{
		{0, 1, EdgeProperty}, {0, 2, EdgeProperty}, {1, 3, EdgeProperty}, {2, 3, EdgeProperty},
	}, []uint64{10, 20, 30, 40}, []NodeId{0})

	res, err := Dominators(g, []NodeId{0})
	if err != nil {
		t.Fatal(err)
	}
	tree := BuildDominatorTree(res)
	retained, err := RetainedSizes(tree, g)
	if err != nil {
		t.Fatal(err)
	}

	want := map[NodeId]uint64{0: 100, 1: 20, 2: 30, 3: 40}
	for n, sz := range want {
		if retained[n] != sz {
			t.Errorf("retained[%d] = %d, want %d", n, retained[n], sz)
		}
	}
}

func TestRetainedSizesChain(t *testing.T) {
	g := buildTestGraph(t, 4, []testEdge{
		{0, 1, EdgeProperty}, {1, 2, EdgeProperty}, {2, 3, EdgeProperty},
	}, []uint64{10, 10, 10, 10}, []NodeId{0})

	res, err := Dominators(g, []NodeId{0})
	if err != nil {
		t.Fatal(err)
	}
	tree := BuildDominatorTree(res)
	retained, err := RetainedSizes(tree, g)
	if err != nil {
		t.Fatal(err)
	}

	want := map[NodeId]uint64{0: 40, 1: 30, 2: 20, 3: 10}
	for n, sz := range want {
		if retained[n] != sz {
			t.Errorf("retained[%d] = %d, want %d", n, retained[n], sz)
		}
	}
}

func TestDominatorTreeDepthAndPath(t *testing.T) {
	g := buildTestGraph(t, 4, []testEdge{
		{0, 1, EdgeProperty}, {1, 2, EdgeProperty}, {2, 3, EdgeProperty},
	}, nil, []NodeId{0})
	res, err := Dominators(g, []NodeId{0})
	if err != nil {
		t.Fatal(err)
	}
	tree := BuildDominatorTree(res)

	depth, err := tree.Depth(3)
	if err != nil {
		t.Fatal(err)
	}
	if depth != 3 {
		t.Fatalf("depth(3) = %d, want 3", depth)
	}

	path, err := tree.PathToRoot(3)
	if err != nil {
		t.Fatal(err)
	}
	want := []NodeId{3, 2, 1, 0}
	if len(path) != len(want) {
		t.Fatalf("path = %v, want %v", path, want)
	}
	for i := range want {
		if path[i] != want[i] {
			t.Fatalf("path = %v, want %v", path, want)
		}
	}

	dominates, err := tree.Dominates(1, 3)
	if err != nil {
		t.Fatal(err)
	}
	if !dominates {
		t.Fatal("expected 1 to dominate 3")
	}
}
