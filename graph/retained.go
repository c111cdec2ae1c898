// ABOUTME: Stack-encoded post-order retained-size computation over a dominator tree
// ABOUTME: retained_size[n] = self_size[n] + sum(retained_size[c] for c in children[n])

package graph

import "github.com/prateek/v8lens"

// RetainedSizes computes the retained size of every node in t: the
// total bytes that would be freed if n were removed from the graph,
// which is exactly n's self size plus the retained size of every node
// it immediately dominates (spec.md §4.3).
//
// The traversal is stack-encoded rather than recursive: it visits the
// tree in preorder via an explicit stack, then folds sizes in the
// reverse of that visitation order. Reversed preorder is a valid
// children-before-parent order for any tree (every descendant of a
// node is necessarily discovered, hence appended, after that node),
// which is all a bottom-up sum needs — avoiding true post-order
// bookkeeping while still bounding stack depth at O(1) native Go
// stack frames regardless of tree depth.
//
// progress, if given, is reported once per fold pass boundary.
func RetainedSizes(t *DominatorTree, g *CompactGraph, progress ...v8lens.ProgressFunc) (map[NodeId]uint64, error) {
	report := firstProgress(progress)
	order := make([]NodeId, 0, len(t.Idom)+1)
	stack := []NodeId{t.Root}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		order = append(order, v)
		stack = append(stack, t.Children[v]...)
	}
	report("retained_size_preorder", len(order), len(order))

	retained := make(map[NodeId]uint64, len(order))
	nodeCount := g.NodeCount()
	for i := len(order) - 1; i >= 0; i-- {
		v := order[i]

		var self uint64
		if int(v) < nodeCount {
			s, err := g.NodeSelfSize(v)
			if err != nil {
				return nil, err
			}
			self = s
		}

		total := self
		for _, c := range t.Children[v] {
			total += retained[c]
		}
		retained[v] = total
	}
	report("retained_size_done", len(order), len(order))
	return retained, nil
}
