// ABOUTME: Iterative Cooper-Harvey-Kennedy dominator solver, a cross-check for Lengauer-Tarjan
// ABOUTME: Fixed-point relaxation over reverse postorder; not the production path at scale

package graph

import (
	"github.com/prateek/v8lens"
	"github.com/prateek/v8lens/v8err"
)

// ChkDominators computes the same dominator relation as Dominators
// but via the iterative Cooper-Harvey-Kennedy data-flow algorithm
// (spec.md §4.7): initialize idom unknown for every non-root
// reachable node, then repeatedly relax each node's idom to the
// intersection of its predecessors' idoms until a fixed point,
// bounded by a safety iteration cap.
//
// This must produce an idom map identical to Dominators on any graph;
// it exists purely as a cross-check (graph/crosscheck_test.go) and is
// not the path used for production-scale analysis — CHK's
// predecessor-intersection relaxation can take multiple passes to
// converge, where Lengauer-Tarjan is single-pass.
func ChkDominators(g *CompactGraph, roots []NodeId, progress ...v8lens.ProgressFunc) (*DomResult, error) {
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
	report("chk_relax", 0, g.NodeCount())
	idomArr := chkSolve(ops, union)
	report("chk_done", g.NodeCount(), g.NodeCount())

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

func chkSolve(ops DomOps, root NodeId) []NodeId {
	n := ops.N()

	// Iterative postorder DFS (stack-encoded, same discipline as
	// dominators.go) to obtain a postorder numbering and its reverse.
	po := make([]int32, n)
	visited := make([]bool, n)
	for i := range po {
		po[i] = -1
	}

	type frame struct {
		v   NodeId
		idx int
	}
	var rpo []NodeId
	var poCounter int32
	visited[root] = true
	stack := []frame{{v: root}}
	for len(stack) > 0 {
		i := len(stack) - 1
		v := stack[i].v
		succs := ops.Successors(v)
		idx := stack[i].idx
		advanced := false
		for idx < len(succs) {
			w := succs[idx]
			idx++
			if !visited[w] {
				visited[w] = true
				stack[i].idx = idx
				stack = append(stack, frame{v: w})
				advanced = true
				break
			}
		}
		if advanced {
			continue
		}
		stack[i].idx = idx
		stack = stack[:i]
		po[v] = poCounter
		poCounter++
		rpo = append(rpo, v)
	}
	// rpo was built in postorder; reverse it in place for processing.
	for l, r := 0, len(rpo)-1; l < r; l, r = l+1, r-1 {
		rpo[l], rpo[r] = rpo[r], rpo[l]
	}

	idom := make([]NodeId, n)
	for i := range idom {
		idom[i] = noNode
	}
	idom[root] = root

	intersect := func(a, b NodeId) NodeId {
		for a != b {
			for po[a] < po[b] {
				a = idom[a]
			}
			for po[b] < po[a] {
				b = idom[b]
			}
		}
		return a
	}

	maxIter := n + 2
	for iter := 0; iter < maxIter; iter++ {
		changed := false
		for _, b := range rpo {
			if b == root {
				continue
			}
			var newIdom NodeId = noNode
			for _, p := range ops.Predecessors(b) {
				if int(p) >= n || idom[p] == noNode {
					continue
				}
				if newIdom == noNode {
					newIdom = p
					continue
				}
				newIdom = intersect(newIdom, p)
			}
			if newIdom != noNode && idom[b] != newIdom {
				idom[b] = newIdom
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	return idom
}
