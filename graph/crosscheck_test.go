package graph

import (
	"math/rand"
	"reflect"
	"testing"

	"gonum.org/v1/gonum/graph/flow"
	"gonum.org/v1/gonum/graph/simple"
)

// gonumDominators computes the same single-root idom relation via
// gonum's own independent Lengauer-Tarjan port (graph/flow), built
// over the same Weak-excluded successor set the production adaptor
// uses. This is a second, unrelated implementation of the same
// algorithm (it's also a real production dependency in this corpus,
// see tazjin-nixery's container-layer grouping) rather than a second
// copy of this package's own code, which is what makes it a
// meaningful cross-check.
func gonumDominators(t *testing.T, g *CompactGraph, root NodeId) map[NodeId]NodeId {
	t.Helper()
	dg := simple.NewDirectedGraph()
	for i := 0; i < g.NodeCount(); i++ {
		dg.AddNode(simple.Node(int64(i)))
	}
	for i := 0; i < g.NodeCount(); i++ {
		edges, err := g.OutEdges(NodeId(i))
		if err != nil {
			t.Fatal(err)
		}
		for _, e := range edges {
			if e.Type == EdgeWeak || int(e.To) == i {
				continue
			}
			if dg.HasEdgeFromTo(int64(i), int64(e.To)) {
				continue
			}
			dg.SetEdge(simple.Edge{F: simple.Node(int64(i)), T: simple.Node(int64(e.To))})
		}
	}

	tree := flow.Dominators(simple.Node(int64(root)), dg)
	result := make(map[NodeId]NodeId)
	for i := 0; i < g.NodeCount(); i++ {
		d := tree.DominatorOf(simple.Node(int64(i)))
		if d == nil {
			continue
		}
		if i == int(root) {
			continue
		}
		result[NodeId(i)] = NodeId(d.ID())
	}
	return result
}

func TestCrosscheckAgainstGonumFixedGraphs(t *testing.T) {
	cases := []struct {
		name  string
		n     int
		edges []testEdge
		root  NodeId
	}{
		{
			name: "diamond",
			n:    4,
			edges: []testEdge{
				{0, 1, EdgeProperty}, {0, 2, EdgeProperty}, {1, 3, EdgeProperty}, {2, 3, EdgeProperty},
			},
			root: 0,
		},
		{
			name: "chain",
			n:    5,
			edges: []testEdge{
				{0, 1, EdgeProperty}, {1, 2, EdgeProperty}, {2, 3, EdgeProperty}, {3, 4, EdgeProperty},
			},
			root: 0,
		},
		{
			name: "weak cycle",
			n:    3,
			edges: []testEdge{
				{0, 1, EdgeProperty}, {1, 2, EdgeProperty}, {2, 1, EdgeWeak}, {2, 0, EdgeWeak},
			},
			root: 0,
		},
		{
			name: "merge and branch",
			n:    6,
			edges: []testEdge{
				{0, 1, EdgeProperty}, {0, 2, EdgeProperty}, {1, 3, EdgeProperty}, {2, 3, EdgeProperty},
				{3, 4, EdgeProperty}, {3, 5, EdgeProperty}, {4, 5, EdgeProperty},
			},
			root: 0,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g := buildTestGraph(t, c.n, c.edges, nil, []NodeId{c.root})

			lt, err := Dominators(g, []NodeId{c.root})
			if err != nil {
				t.Fatal(err)
			}
			chk, err := ChkDominators(g, []NodeId{c.root})
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(lt.Idom, chk.Idom) {
				t.Fatalf("LT and CHK disagree:\n  LT:  %v\n  CHK: %v", lt.Idom, chk.Idom)
			}

			want := gonumDominators(t, g, c.root)
			if !reflect.DeepEqual(lt.Idom, want) {
				t.Fatalf("LT and gonum disagree:\n  LT:    %v\n  gonum: %v", lt.Idom, want)
			}
		})
	}
}

// TestCrosscheckAgainstGonumRandomGraphs fuzzes small random directed
// graphs (spec.md §8: "must produce identical idom maps... on graphs
// up to 10^4 nodes") and checks all three solvers agree node-for-node.
func TestCrosscheckAgainstGonumRandomGraphs(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for trial := 0; trial < 20; trial++ {
		n := 5 + rng.Intn(60)
		var edges []testEdge
		for i := 1; i < n; i++ {
			// Guarantee every node is reachable from 0 by wiring it
			// under a random earlier node as a tree edge, then add extra random
			// forward/cross edges including a few Weak ones.
			parent := rng.Intn(i)
			edges = append(edges, testEdge{From: NodeId(parent), To: NodeId(i), Type: EdgeProperty})
		}
		extra := rng.Intn(n * 2)
		for k := 0; k < extra; k++ {
			from := NodeId(rng.Intn(n))
			to := NodeId(rng.Intn(n))
			if from == to {
				continue
			}
			typ := EdgeProperty
			if rng.Intn(3) == 0 {
				typ = EdgeWeak
			}
			edges = append(edges, testEdge{From: from, To: to, Type: typ})
		}

		g := buildTestGraph(t, n, edges, nil, []NodeId{0})

		lt, err := Dominators(g, []NodeId{0})
		if err != nil {
			t.Fatalf("trial %d: %v", trial, err)
		}
		chk, err := ChkDominators(g, []NodeId{0})
		if err != nil {
			t.Fatalf("trial %d: %v", trial, err)
		}
		if !reflect.DeepEqual(lt.Idom, chk.Idom) {
			t.Fatalf("trial %d: LT and CHK disagree:\n  LT:  %v\n  CHK: %v", trial, lt.Idom, chk.Idom)
		}
		want := gonumDominators(t, g, 0)
		if !reflect.DeepEqual(lt.Idom, want) {
			t.Fatalf("trial %d: LT and gonum disagree:\n  LT:    %v\n  gonum: %v", trial, lt.Idom, want)
		}
	}
}
