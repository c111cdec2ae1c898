package graph

import (
	"reflect"
	"testing"
)

// Scenario A — Diamond: 0->1, 0->2, 1->3, 2->3.
func TestDominatorsDiamond(t *testing.T) {
	g := buildTestGraph(t, 4, []testEdge{
		{0, 1, EdgeProperty}, {0, 2, EdgeProperty}, {1, 3, EdgeProperty}, {2, 3, EdgeProperty},
	}, []uint64{10, 20, 30, 40}, []NodeId{0})

	res, err := Dominators(g, []NodeId{0})
	if err != nil {
		t.Fatal(err)
	}
	want := map[NodeId]NodeId{1: 0, 2: 0, 3: 0}
	if !reflect.DeepEqual(res.Idom, want) {
		t.Fatalf("idom = %v, want %v", res.Idom, want)
	}
	if res.Root != 0 {
		t.Fatalf("root = %v, want 0", res.Root)
	}
}

// Scenario B — Chain: 0->1->2->3.
func TestDominatorsChain(t *testing.T) {
	g := buildTestGraph(t, 4, []testEdge{
		{0, 1, EdgeProperty}, {1, 2, EdgeProperty}, {2, 3, EdgeProperty},
	}, []uint64{10, 10, 10, 10}, []NodeId{0})

	res, err := Dominators(g, []NodeId{0})
	if err != nil {
		t.Fatal(err)
	}
	want := map[NodeId]NodeId{1: 0, 2: 1, 3: 2}
	if !reflect.DeepEqual(res.Idom, want) {
		t.Fatalf("idom = %v, want %v", res.Idom, want)
	}
}

// Scenario C — Shared leaf through two roots: roots {0,1}, both point to 2.
func TestDominatorsSharedLeafUnionRoot(t *testing.T) {
	g := buildTestGraph(t, 3, []testEdge{
		{0, 2, EdgeProperty}, {1, 2, EdgeProperty},
	}, nil, []NodeId{0, 1})

	res, err := Dominators(g, []NodeId{0, 1})
	if err != nil {
		t.Fatal(err)
	}
	if res.Root != NodeId(g.NodeCount()) {
		t.Fatalf("root = %v, want synthetic union root %v", res.Root, g.NodeCount())
	}
	if res.Idom[2] != res.Root {
		t.Fatalf("idom[2] = %v, want union root %v", res.Idom[2], res.Root)
	}
	if res.Idom[0] != res.Root || res.Idom[1] != res.Root {
		t.Fatalf("idom[0]/idom[1] should be the union root, got %v", res.Idom)
	}

	single, err := Dominators(g, []NodeId{0})
	if err != nil {
		t.Fatal(err)
	}
	if single.Idom[2] != 0 {
		t.Fatalf("single-root idom[2] = %v, want 0", single.Idom[2])
	}
	if _, ok := single.Idom[1]; ok {
		t.Fatalf("node 1 should not be reachable from root 0 alone")
	}
}

// Scenario F — Weak edge exclusion: a cycle closed only by a Weak
// edge must not affect idom.
func TestDominatorsWeakEdgeExcluded(t *testing.T) {
	// 0 -> 1 -> 2, plus a Weak edge 2 -> 1 that would otherwise make
	// 1 and 2 mutually reachable and muddy the dominance relation.
	g := buildTestGraph(t, 3, []testEdge{
		{0, 1, EdgeProperty}, {1, 2, EdgeProperty}, {2, 1, EdgeWeak},
	}, nil, []NodeId{0})

	res, err := Dominators(g, []NodeId{0})
	if err != nil {
		t.Fatal(err)
	}
	want := map[NodeId]NodeId{1: 0, 2: 1}
	if !reflect.DeepEqual(res.Idom, want) {
		t.Fatalf("idom = %v, want %v (weak edge must not participate)", res.Idom, want)
	}
}

// Invariant 1: idom is defined for every reachable node, and the root
// never appears as a key in the map (its self-idom is implicit).
func TestDominatorsInvariantRootSelfIdom(t *testing.T) {
	g := buildTestGraph(t, 2, []testEdge{{0, 1, EdgeProperty}}, nil, []NodeId{0})
	res, err := Dominators(g, []NodeId{0})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := res.Idom[0]; ok {
		t.Fatalf("root must not appear as a key in idom, got %v", res.Idom)
	}
	if _, ok := res.Idom[1]; !ok {
		t.Fatalf("reachable node 1 must have idom defined")
	}
}

func TestDominatorsNoRoots(t *testing.T) {
	g := buildTestGraph(t, 1, nil, nil, nil)
	if _, err := Dominators(g, nil); err == nil {
		t.Fatal("expected error for empty roots")
	}
}
