// ABOUTME: Columnar compact heap graph with O(1) out-edge and amortized O(1) in-edge access
// ABOUTME: Built once from parsed snapshot fields and treated as immutable thereafter

package graph

import (
	"fmt"

	"github.com/prateek/v8lens/v8err"
)

// CompactGraph is a columnar, cache-friendly projection of a parsed
// heap snapshot. It is built once by Build and never mutated
// afterwards; every read method is safe to call concurrently from any
// number of goroutines since there is no internal state that changes
// post-construction (spec.md §5 "Shared-resource policy").
type CompactGraph struct {
	// Node columns, one entry per NodeId.
	nodeType       []NodeType
	nodeNameIdx    []uint32
	nodeStableID   []uint64
	nodeSelfSize   []uint64
	nodeEdgeCount  []uint32
	nodeDetached   []bool
	hasDetachedCol bool

	// outEdgeOffset has len(node)+1 entries; out-edges for node i are
	// edge columns[outEdgeOffset[i]:outEdgeOffset[i+1]].
	outEdgeOffset []uint32

	// Edge columns, concatenated in node order.
	edgeType        []EdgeType
	edgeNameOrIndex []uint32
	edgeTo          []NodeId

	// inEdges[n] lists the NodeIds of every node with an edge whose
	// target is n. Materialized once at construction (spec.md §4.1).
	inEdges [][]NodeId

	strings *StringTable
	roots   []NodeId
}

// NodeSource is the raw columnar input Build consumes: parallel slices
// already split out of a parsed snapshot's flat node/edge tuples, with
// to_node already divided down to NodeId (see snapshot.Project for the
// division step over the snapshot's node_field_count-scaled offsets).
type NodeSource struct {
	Type         []NodeType
	NameIdx      []uint32
	StableID     []uint64
	SelfSize     []uint64
	EdgeCount    []uint32
	Detachedness []bool // optional; nil if the snapshot has no detachedness column

	EdgeType        []EdgeType
	EdgeNameOrIndex []uint32
	EdgeTo          []NodeId

	Strings *StringTable
	Roots   []NodeId
}

// Build constructs a CompactGraph from columnar source arrays in a
// single pass, per spec.md §4.1's construction algorithm: prefix-sum
// edge_count into out_edge_offset, then walk edges once, deriving the
// source NodeId from a cursor carried alongside a second walk over the
// node columns (rather than binary-searching out_edge_offset per
// edge).
func Build(src NodeSource) (*CompactGraph, error) {
	n := len(src.Type)
	if len(src.NameIdx) != n || len(src.StableID) != n || len(src.SelfSize) != n || len(src.EdgeCount) != n {
		return nil, v8err.Load("node column length mismatch")
	}
	for i, t := range src.Type {
		if !t.Valid() {
			return nil, v8err.Load(fmt.Sprintf("node %d: unknown node type tag %d", i, uint8(t)))
		}
	}

	outEdgeOffset := make([]uint32, n+1)
	var total uint64
	for i, c := range src.EdgeCount {
		outEdgeOffset[i] = uint32(total)
		total += uint64(c)
	}
	outEdgeOffset[n] = uint32(total)

	if total != uint64(len(src.EdgeTo)) {
		return nil, v8err.Load(fmt.Sprintf("sum(edge_count)=%d does not match edge array length %d", total, len(src.EdgeTo)))
	}
	if len(src.EdgeType) != len(src.EdgeTo) || len(src.EdgeNameOrIndex) != len(src.EdgeTo) {
		return nil, v8err.Load("edge column length mismatch")
	}
	for i, et := range src.EdgeType {
		if !et.Valid() {
			return nil, v8err.Load(fmt.Sprintf("edge %d: unknown edge type tag %d", i, uint8(et)))
		}
	}

	// Second walk: the source NodeId for each edge is recovered
	// directly from outEdgeOffset by iterating node-by-node, rather
	// than binary-searching outEdgeOffset per edge.
	inEdges := make([][]NodeId, n)
	for nodeID := 0; nodeID < n; nodeID++ {
		start, end := outEdgeOffset[nodeID], outEdgeOffset[nodeID+1]
		for e := start; e < end; e++ {
			target := src.EdgeTo[e]
			if int(target) >= n {
				return nil, v8err.Load(fmt.Sprintf("edge %d: to_node %d out of range [0,%d)", e, target, n))
			}
			inEdges[target] = append(inEdges[target], NodeId(nodeID))
		}
	}

	for _, r := range src.Roots {
		if int(r) >= n {
			return nil, v8err.Load(fmt.Sprintf("root node id %d out of range [0,%d)", r, n))
		}
	}

	g := &CompactGraph{
		nodeType:        src.Type,
		nodeNameIdx:     src.NameIdx,
		nodeStableID:    src.StableID,
		nodeSelfSize:    src.SelfSize,
		nodeEdgeCount:   src.EdgeCount,
		nodeDetached:    src.Detachedness,
		hasDetachedCol:  src.Detachedness != nil,
		outEdgeOffset:   outEdgeOffset,
		edgeType:        src.EdgeType,
		edgeNameOrIndex: src.EdgeNameOrIndex,
		edgeTo:          src.EdgeTo,
		inEdges:         inEdges,
		strings:         src.Strings,
		roots:           append([]NodeId(nil), src.Roots...),
	}
	return g, nil
}

// NodeCount returns the number of nodes in the graph.
func (g *CompactGraph) NodeCount() int { return len(g.nodeType) }

// EdgeCount returns the number of edges in the graph.
func (g *CompactGraph) EdgeCount() int { return len(g.edgeTo) }

func (g *CompactGraph) valid(n NodeId) bool { return int(n) < len(g.nodeType) }

// NodeType returns the type tag of node n.
func (g *CompactGraph) NodeType(n NodeId) (NodeType, error) {
	if !g.valid(n) {
		return 0, v8err.Query(n, "node id out of range")
	}
	return g.nodeType[n], nil
}

// NodeName returns the interned name string of node n.
func (g *CompactGraph) NodeName(n NodeId) (string, error) {
	if !g.valid(n) {
		return "", v8err.Query(n, "node id out of range")
	}
	s, ok := g.strings.At(g.nodeNameIdx[n])
	if !ok {
		return "", v8err.Query(n, "node name index out of range in string table")
	}
	return s, nil
}

// NodeSelfSize returns the self (shallow) size in bytes of node n.
func (g *CompactGraph) NodeSelfSize(n NodeId) (uint64, error) {
	if !g.valid(n) {
		return 0, v8err.Query(n, "node id out of range")
	}
	return g.nodeSelfSize[n], nil
}

// NodeStableID returns the V8-assigned identity of node n, preserved
// only for display purposes.
func (g *CompactGraph) NodeStableID(n NodeId) (uint64, error) {
	if !g.valid(n) {
		return 0, v8err.Query(n, "node id out of range")
	}
	return g.nodeStableID[n], nil
}

// NodeDetached reports the DOM-detachedness flag of node n, if the
// snapshot carried that optional column.
func (g *CompactGraph) NodeDetached(n NodeId) (detached bool, present bool, err error) {
	if !g.valid(n) {
		return false, false, v8err.Query(n, "node id out of range")
	}
	if !g.hasDetachedCol {
		return false, false, nil
	}
	return g.nodeDetached[n], true, nil
}

// OutEdges returns the contiguous out-edge slice for node n: O(1) to
// obtain, O(k) to iterate.
func (g *CompactGraph) OutEdges(n NodeId) ([]Edge, error) {
	if !g.valid(n) {
		return nil, v8err.Query(n, "node id out of range")
	}
	start, end := g.outEdgeOffset[n], g.outEdgeOffset[n+1]
	edges := make([]Edge, 0, end-start)
	for i := start; i < end; i++ {
		edges = append(edges, Edge{
			Type:        g.edgeType[i],
			NameOrIndex: g.edgeNameOrIndex[i],
			To:          g.edgeTo[i],
		})
	}
	return edges, nil
}

// OutEdgeRange returns the [start,end) offsets into the edge columns
// for node n's out-edges, for callers (the dominator adaptor, the
// root-path index) that want to avoid allocating an []Edge slice
// per call.
func (g *CompactGraph) OutEdgeRange(n NodeId) (start, end uint32) {
	return g.outEdgeOffset[n], g.outEdgeOffset[n+1]
}

// EdgeAt returns the edge at a raw column index, as returned by
// OutEdgeRange.
func (g *CompactGraph) EdgeAt(i uint32) Edge {
	return Edge{Type: g.edgeType[i], NameOrIndex: g.edgeNameOrIndex[i], To: g.edgeTo[i]}
}

// InEdges returns the NodeIds of every node with an out-edge targeting
// n.
func (g *CompactGraph) InEdges(n NodeId) ([]NodeId, error) {
	if !g.valid(n) {
		return nil, v8err.Query(n, "node id out of range")
	}
	return g.inEdges[n], nil
}

// FindEdge performs a linear scan of n's out-edges for the first one
// matching typ and name, per spec.md §4.1.
func (g *CompactGraph) FindEdge(n NodeId, typ EdgeType, name uint32) (NodeId, bool, error) {
	if !g.valid(n) {
		return 0, false, v8err.Query(n, "node id out of range")
	}
	start, end := g.outEdgeOffset[n], g.outEdgeOffset[n+1]
	for i := start; i < end; i++ {
		if g.edgeType[i] == typ && g.edgeNameOrIndex[i] == name {
			return g.edgeTo[i], true, nil
		}
	}
	return 0, false, nil
}

// Roots returns the designated GC root NodeIds.
func (g *CompactGraph) Roots() []NodeId {
	return g.roots
}

// Strings returns the shared string table.
func (g *CompactGraph) Strings() *StringTable {
	return g.strings
}

// EdgeNameOrIndexString resolves an edge's NameOrIndex to a display
// string: for EdgeElement it is the ordinal formatted as a number,
// otherwise it is looked up in the string table.
func (g *CompactGraph) EdgeNameOrIndexString(e Edge) string {
	if e.Type == EdgeElement {
		return fmt.Sprintf("%d", e.NameOrIndex)
	}
	if s, ok := g.strings.At(e.NameOrIndex); ok {
		return s
	}
	return ""
}
