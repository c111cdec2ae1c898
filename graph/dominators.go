// ABOUTME: Iterative, stack-encoded Lengauer-Tarjan dominator computation
// ABOUTME: Runs against the abstract DomOps adaptor, never CompactGraph directly

package graph

import (
	"github.com/prateek/v8lens"
	"github.com/prateek/v8lens/v8err"
)

// noNode is the sentinel "no ancestor / no predecessor / unreached"
// NodeId value. It is never a valid node index since DomOps.N() is
// always far smaller than 2^32-1 in practice.
const noNode = NodeId(^uint32(0))

// DomResult is the output of computing dominators: a possibly
// synthetic Root and an immediate-dominator map that omits the
// trivial self-entry at Root (spec.md §3: "idom[root] = root").
type DomResult struct {
	Root NodeId
	Idom map[NodeId]NodeId
}

// Dominators computes the dominator relation over g reachable from
// roots, using the iterative Lengauer-Tarjan algorithm (spec.md §4.2,
// 1979 original with path compression, O((V+E)*alpha(V))). Edges of
// type Weak never contribute to dominance, even though they do
// contribute to plain reachability (graph/paths.go).
//
// With a single root, Root is that root and idom[root] is implicit
// (omitted from Idom). With multiple roots, Dominators introduces a
// synthetic union root, reported as Root == NodeId(g.NodeCount()),
// that is the dominator of anything reachable only by combining more
// than one given root (spec.md §8 Scenario C).
//
// progress, if given, is called at each pass boundary (spec.md §6's
// injected progress callback); it is never required and a nil or
// omitted callback is always valid.
func Dominators(g *CompactGraph, roots []NodeId, progress ...v8lens.ProgressFunc) (*DomResult, error) {
	if len(roots) == 0 {
		return nil, v8err.Load("dominators: no roots given")
	}
	for _, r := range roots {
		if int(r) >= g.NodeCount() {
			return nil, v8err.Query(r, "root node id out of range")
		}
	}
	report := firstProgress(progress)

	ops, union := newCompactDomOps(g, roots)
	report("dominators_dfs", 0, g.NodeCount())
	idomArr := lengauerTarjan(ops, union)
	report("dominators_done", g.NodeCount(), g.NodeCount())

	single := len(roots) == 1
	n := g.NodeCount()
	result := make(map[NodeId]NodeId, n)
	for v := 0; v < n; v++ {
		d := idomArr[v]
		if d == noNode {
			continue
		}
		if single && d == union {
			continue
		}
		result[NodeId(v)] = d
	}

	root := union
	if single {
		root = roots[0]
	}
	return &DomResult{Root: root, Idom: result}, nil
}

// lengauerTarjan returns an idom array sized ops.N(): idom[root] ==
// root, idom[v] == noNode for any v not reachable from root.
func lengauerTarjan(ops DomOps, root NodeId) []NodeId {
	n := ops.N()

	dfnum := make([]int32, n)
	parent := make([]NodeId, n)
	vertex := make([]NodeId, 0, n)
	for i := range dfnum {
		dfnum[i] = -1
		parent[i] = noNode
	}

	semi := make([]NodeId, n)
	ancestor := make([]NodeId, n)
	best := make([]NodeId, n)
	samedom := make([]NodeId, n)
	idom := make([]NodeId, n)
	bucket := make([][]NodeId, n)
	for v := 0; v < n; v++ {
		semi[v] = NodeId(v)
		best[v] = NodeId(v)
		ancestor[v] = noNode
		samedom[v] = noNode
		idom[v] = noNode
	}

	dfsAssignNumbers(ops, root, dfnum, parent, &vertex)

	eval := func(v NodeId) NodeId {
		if ancestor[v] == noNode {
			return best[v]
		}
		compress(v, ancestor, best, semi, dfnum)
		return best[v]
	}

	for i := len(vertex) - 1; i >= 1; i-- {
		w := vertex[i]
		p := parent[w]

		for _, v := range ops.Predecessors(w) {
			if int(v) >= n || dfnum[v] == -1 {
				continue
			}
			u := eval(v)
			if dfnum[semi[u]] < dfnum[semi[w]] {
				semi[w] = semi[u]
			}
		}
		bucket[semi[w]] = append(bucket[semi[w]], w)
		ancestor[w] = p

		for _, v := range bucket[p] {
			u := eval(v)
			if semi[u] == semi[v] {
				idom[v] = p
			} else {
				samedom[v] = u
			}
		}
		bucket[p] = nil
	}

	for i := 1; i < len(vertex); i++ {
		w := vertex[i]
		if samedom[w] != noNode {
			idom[w] = idom[samedom[w]]
		}
	}
	idom[root] = root
	return idom
}

// dfsAssignNumbers performs an iterative preorder DFS from root,
// assigning each reached node a DFS number (its index in *vertex) and
// recording its spanning-tree parent. Explicit stack rather than
// recursion: spec.md §9 requires this to bound stack depth on
// snapshots whose reference chains run hundreds of thousands deep.
func dfsAssignNumbers(ops DomOps, root NodeId, dfnum []int32, parent []NodeId, vertex *[]NodeId) {
	type frame struct {
		v   NodeId
		idx int
	}

	dfnum[root] = 0
	*vertex = append(*vertex, root)
	stack := []frame{{v: root}}

	for len(stack) > 0 {
		i := len(stack) - 1
		v := stack[i].v
		succs := ops.Successors(v)
		idx := stack[i].idx
		if idx >= len(succs) {
			stack = stack[:i]
			continue
		}
		w := succs[idx]
		stack[i].idx = idx + 1
		if dfnum[w] == -1 {
			dfnum[w] = int32(len(*vertex))
			*vertex = append(*vertex, w)
			parent[w] = v
			stack = append(stack, frame{v: w})
		}
	}
}

// compress path-compresses v's ancestor chain up to (but not
// including) the root of its currently-compressed segment, updating
// best[v] and every intermediate node along the way so that
// subsequent eval calls are near O(1). Grounded on the classic
// recursive compress (as in bramp-gonum's control_flow.go and
// original_source's lengauer_tarjan.rs) but rewritten iteratively:
// the recursion there always bottoms out and unwinds along a single
// ancestor chain, which is exactly what the explicit stack below
// replays in two passes instead of the call stack.
func compress(v NodeId, ancestor, best, semi []NodeId, dfnum []int32) {
	var chain []NodeId
	x := v
	for ancestor[ancestor[x]] != noNode {
		chain = append(chain, x)
		x = ancestor[x]
	}
	for i := len(chain) - 1; i >= 0; i-- {
		c := chain[i]
		anc := ancestor[c]
		if dfnum[semi[best[anc]]] < dfnum[semi[best[c]]] {
			best[c] = best[anc]
		}
		ancestor[c] = ancestor[anc]
	}
}
