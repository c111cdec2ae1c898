// ABOUTME: Root-path index: BFS parent-edge map plus bounded multi-path enumeration
// ABOUTME: Unlike dominators, Weak edges participate here (plain reachability, not ownership)

package graph

import "github.com/prateek/v8lens/v8err"

// explorationCap bounds total enumeration work independent of
// maxPaths, guarding against a node with enormous fan-in producing a
// combinatorial blowup of partial paths before any of them complete
// (spec.md §4.4's "combinatorial guard").
const explorationCap = 1 << 20

// EdgeRef is one edge along a retention path: the edge descriptor
// plus the NodeIds it connects.
type EdgeRef struct {
	Type        EdgeType
	NameOrIndex uint32
	From        NodeId
	To          NodeId
}

// Path is a sequence of edges from a root to some target node.
type Path struct {
	Edges []EdgeRef
}

// RootPathIndex answers paths_to queries against a fixed set of GC
// roots. Construction is a single multi-source BFS over outbound
// edges (including Weak edges: this index answers "how is this
// object reached", which Weak references do participate in, unlike
// dominance).
type RootPathIndex struct {
	g      *CompactGraph
	dist   []int32
	parent map[NodeId]EdgeRef   // BFS-tree parent edge: one per reached non-root node
	rich   map[NodeId][]EdgeRef // every in-edge from a strictly-closer node, for multi-path enumeration
}

// BuildRootPathIndex runs the BFS and the richer-mode edge collection
// described in spec.md §4.4.
func BuildRootPathIndex(g *CompactGraph, roots []NodeId) *RootPathIndex {
	n := g.NodeCount()
	dist := make([]int32, n)
	for i := range dist {
		dist[i] = -1
	}
	parent := make(map[NodeId]EdgeRef, n)

	queue := make([]NodeId, 0, len(roots))
	for _, r := range roots {
		if int(r) < n && dist[r] == -1 {
			dist[r] = 0
			queue = append(queue, r)
		}
	}
	for qi := 0; qi < len(queue); qi++ {
		u := queue[qi]
		start, end := g.OutEdgeRange(u)
		for i := start; i < end; i++ {
			e := g.EdgeAt(i)
			if dist[e.To] == -1 {
				dist[e.To] = dist[u] + 1
				parent[e.To] = EdgeRef{Type: e.Type, NameOrIndex: e.NameOrIndex, From: u, To: e.To}
				queue = append(queue, e.To)
			}
		}
	}

	// Richer mode: for every reached node v, collect every in-edge
	// whose source u already has a strictly smaller BFS distance.
	// This forms a DAG over the reached subgraph (edges always point
	// from a smaller to a larger distance layer), which is exactly
	// what bounds the enumeration below to always terminate.
	rich := make(map[NodeId][]EdgeRef, n)
	for v := 0; v < n; v++ {
		if dist[v] == -1 {
			continue
		}
		nv := NodeId(v)
		sources, _ := g.InEdges(nv)
		for k, u := range sources {
			// InEdges lists u once per edge u->nv, adjacently; all of
			// u's edges to nv are collected on its first occurrence.
			if k > 0 && sources[k-1] == u {
				continue
			}
			if dist[u] == -1 || dist[u] >= dist[v] {
				continue
			}
			start, end := g.OutEdgeRange(u)
			for i := start; i < end; i++ {
				e := g.EdgeAt(i)
				if e.To == nv {
					rich[nv] = append(rich[nv], EdgeRef{Type: e.Type, NameOrIndex: e.NameOrIndex, From: u, To: nv})
				}
			}
		}
	}

	return &RootPathIndex{g: g, dist: dist, parent: parent, rich: rich}
}

// Reachable reports whether n was reached from any root.
func (idx *RootPathIndex) Reachable(n NodeId) bool {
	return int(n) < len(idx.dist) && idx.dist[n] != -1
}

// CanonicalPath returns the single BFS-tree path to n: the chain of
// first-discovered parent edges from a root down to n, per spec.md
// §4.4's "one segment per node" index. Walked iteratively since a
// snapshot's retention chains can run far deeper than a safe
// recursion depth.
func (idx *RootPathIndex) CanonicalPath(n NodeId) (Path, error) {
	if !idx.Reachable(n) {
		return Path{}, v8err.Query(n, "node not reachable from any root")
	}
	var edges []EdgeRef
	cur := n
	for {
		e, ok := idx.parent[cur]
		if !ok {
			break
		}
		edges = append([]EdgeRef{e}, edges...)
		cur = e.From
	}
	return Path{Edges: edges}, nil
}

// PathsTo enumerates up to maxPaths distinct retention paths to n
// using the richer multi-parent edges, per spec.md §4.4. Paths that
// are strict contiguous subsequences of other returned paths are
// removed before returning. If enumeration stops early because
// maxPaths (or the internal exploration cap) was hit, the returned
// error is a BudgetExceeded marker and the paths are a valid, if
// incomplete, result.
func (idx *RootPathIndex) PathsTo(n NodeId, maxPaths int) ([]Path, error) {
	if !idx.Reachable(n) {
		return nil, v8err.Query(n, "node not reachable from any root")
	}
	if maxPaths <= 0 {
		maxPaths = 1
	}

	type item struct {
		node NodeId
		tail []EdgeRef // edges from node to n, in forward order
	}

	var completed [][]EdgeRef
	stack := []item{{node: n}}
	explored := 0
	truncated := false

	for len(stack) > 0 {
		if len(completed) >= maxPaths {
			truncated = truncated || len(stack) > 0
			break
		}
		if explored >= explorationCap {
			truncated = true
			break
		}
		explored++

		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		ins := idx.rich[it.node]
		if len(ins) == 0 {
			completed = append(completed, it.tail)
			continue
		}
		for _, e := range ins {
			newTail := make([]EdgeRef, 0, len(it.tail)+1)
			newTail = append(newTail, e)
			newTail = append(newTail, it.tail...)
			stack = append(stack, item{node: e.From, tail: newTail})
		}
	}

	paths := make([]Path, 0, len(completed))
	for _, edges := range completed {
		paths = append(paths, Path{Edges: edges})
	}
	paths = pruneSubsequencePaths(paths)

	if truncated {
		return paths, v8err.BudgetExceeded("paths_to hit max_paths before exhausting all retention paths")
	}
	return paths, nil
}

// pruneSubsequencePaths removes any path that is a strict contiguous
// subsequence of another returned path (spec.md §4.4
// "post-processing").
func pruneSubsequencePaths(paths []Path) []Path {
	keep := make([]bool, len(paths))
	for i := range keep {
		keep[i] = true
	}
	for i := range paths {
		for j := range paths {
			if i == j {
				continue
			}
			if isContiguousSubsequence(paths[i].Edges, paths[j].Edges) {
				keep[i] = false
				break
			}
		}
	}
	out := make([]Path, 0, len(paths))
	for i, p := range paths {
		if keep[i] {
			out = append(out, p)
		}
	}
	return out
}

func isContiguousSubsequence(a, b []EdgeRef) bool {
	if len(a) >= len(b) {
		return false
	}
	for start := 0; start+len(a) <= len(b); start++ {
		match := true
		for i := range a {
			if a[i] != b[start+i] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
