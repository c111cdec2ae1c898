// ABOUTME: Dominator tree construction (idom inversion) and tree queries
// ABOUTME: Stack-encoded depth/path/ancestry queries, no recursion on tree depth

package graph

import "github.com/prateek/v8lens/v8err"

// DominatorTree is the inverted form of a DomResult: Children[v] lists
// every node whose immediate dominator is v, so a caller can walk the
// tree top-down without re-deriving it from Idom each time.
type DominatorTree struct {
	Root     NodeId
	Idom     map[NodeId]NodeId
	Children map[NodeId][]NodeId
}

// BuildDominatorTree inverts a DomResult's Idom map into a child
// adjacency, matching the teacher's domtree.go pattern of
// materializing the tree once rather than re-walking Idom per query.
func BuildDominatorTree(d *DomResult) *DominatorTree {
	children := make(map[NodeId][]NodeId)
	for v, p := range d.Idom {
		children[p] = append(children[p], v)
	}
	return &DominatorTree{Root: d.Root, Idom: d.Idom, Children: children}
}

// Depth returns the number of edges from the tree's root to n,
// following Idom links iteratively (never recursive: a pathological
// snapshot can produce a dominator chain as deep as the node count).
func (t *DominatorTree) Depth(n NodeId) (int, error) {
	depth := 0
	cur := n
	for cur != t.Root {
		p, ok := t.Idom[cur]
		if !ok {
			return 0, v8err.Query(n, "node not reachable in dominator tree")
		}
		cur = p
		depth++
		if depth > len(t.Idom)+1 {
			v8err.PanicInvariant("dominator chain from node %d did not reach root %d within %d steps", n, t.Root, len(t.Idom)+1)
		}
	}
	return depth, nil
}

// PathToRoot returns the chain of immediate dominators from n up to
// and including the tree root, iteratively.
func (t *DominatorTree) PathToRoot(n NodeId) ([]NodeId, error) {
	path := []NodeId{n}
	cur := n
	for cur != t.Root {
		p, ok := t.Idom[cur]
		if !ok {
			return nil, v8err.Query(n, "node not reachable in dominator tree")
		}
		path = append(path, p)
		cur = p
		if len(path) > len(t.Idom)+2 {
			v8err.PanicInvariant("dominator chain from node %d did not reach root %d within bound", n, t.Root)
		}
	}
	return path, nil
}

// Dominates reports whether a is an ancestor of (or equal to) b in
// the dominator tree, i.e. every path from the root to b passes
// through a.
func (t *DominatorTree) Dominates(a, b NodeId) (bool, error) {
	if a == b {
		return true, nil
	}
	cur := b
	for cur != t.Root {
		p, ok := t.Idom[cur]
		if !ok {
			return false, v8err.Query(b, "node not reachable in dominator tree")
		}
		if p == a {
			return true, nil
		}
		cur = p
	}
	return false, nil
}
