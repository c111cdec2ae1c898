// ABOUTME: Projects a parsed Snapshot's flat node/edge tuples into graph.NodeSource
// ABOUTME: Converts to_node flat-array offsets into dense NodeId ordinals

package snapshot

import (
	"fmt"

	"github.com/prateek/v8lens/graph"
	"github.com/prateek/v8lens/v8err"
)

// Project converts a parsed Snapshot into the columnar graph.NodeSource
// graph.Build consumes, implementing spec.md §4.1's construction
// algorithm: it walks the flat node tuples once, remaps each node's
// type ordinal through the snapshot's own node_types name table (a
// snapshot is never assumed to lay its type ordinals out in the same
// order this package uses internally), divides every edge's to_node
// flat-array offset down to a dense NodeId by node_field_count, and
// designates every Hidden/Synthetic-typed node (the "(GC roots)" node
// and the synthetic groups hanging off it) as a GC root.
func Project(snap *Snapshot) (*graph.NodeSource, error) {
	nfc := snap.NodeFieldCount
	efc := snap.EdgeFieldCount
	if nfc < 5 {
		return nil, v8err.Load("snapshot: node_field_count must be at least 5")
	}
	if efc < 3 {
		return nil, v8err.Load("snapshot: edge_field_count must be at least 3")
	}
	if len(snap.Nodes)%nfc != 0 {
		return nil, v8err.Load(fmt.Sprintf("snapshot: nodes array length %d is not a multiple of node_field_count %d", len(snap.Nodes), nfc))
	}
	if len(snap.Edges)%efc != 0 {
		return nil, v8err.Load(fmt.Sprintf("snapshot: edges array length %d is not a multiple of edge_field_count %d", len(snap.Edges), efc))
	}

	nodeTypeByOrdinal, err := remapTypeTable(snap.NodeTypes, graph.NodeTypeByName, "node_types")
	if err != nil {
		return nil, err
	}
	edgeTypeByOrdinal, err := remapTypeTable(snap.EdgeTypes, graph.EdgeTypeByName, "edge_types")
	if err != nil {
		return nil, err
	}

	n := len(snap.Nodes) / nfc
	detachedCol := fieldIndex(snap.NodeFields, "detachedness")
	hasDetached := detachedCol >= 0 && detachedCol < nfc

	types := make([]graph.NodeType, n)
	nameIdx := make([]uint32, n)
	stableID := make([]uint64, n)
	selfSize := make([]uint64, n)
	edgeCount := make([]uint32, n)
	var detached []bool
	if hasDetached {
		detached = make([]bool, n)
	}
	var roots []graph.NodeId

	for i := 0; i < n; i++ {
		base := i * nfc
		ordinal := snap.Nodes[base+0]
		if int(ordinal) >= len(nodeTypeByOrdinal) {
			return nil, v8err.Load(fmt.Sprintf("snapshot: node %d has out-of-range type ordinal %d", i, ordinal))
		}
		t := nodeTypeByOrdinal[ordinal]
		types[i] = t
		nameIdx[i] = snap.Nodes[base+1]
		stableID[i] = uint64(snap.Nodes[base+2])
		selfSize[i] = uint64(snap.Nodes[base+3])
		edgeCount[i] = snap.Nodes[base+4]
		if hasDetached {
			detached[i] = snap.Nodes[base+detachedCol] != 0
		}
		// GC-root nodes are the "(GC roots)" hidden node and the
		// synthetic group nodes hanging off it (native contexts,
		// handle scopes, and the like); both type tags are the
		// snapshot's own convention for entry points into the graph.
		if t == graph.NodeHidden || t == graph.NodeSynthetic {
			roots = append(roots, graph.NodeId(i))
		}
	}

	m := len(snap.Edges) / efc
	edgeType := make([]graph.EdgeType, m)
	edgeNameOrIndex := make([]uint32, m)
	edgeTo := make([]graph.NodeId, m)
	for j := 0; j < m; j++ {
		base := j * efc
		ordinal := snap.Edges[base+0]
		if int(ordinal) >= len(edgeTypeByOrdinal) {
			return nil, v8err.Load(fmt.Sprintf("snapshot: edge %d has out-of-range type ordinal %d", j, ordinal))
		}
		edgeType[j] = edgeTypeByOrdinal[ordinal]
		edgeNameOrIndex[j] = snap.Edges[base+1]
		toOffset := snap.Edges[base+2]
		if int(toOffset)%nfc != 0 {
			return nil, v8err.Load(fmt.Sprintf("snapshot: edge %d's to_node offset %d is not node-field-aligned", j, toOffset))
		}
		edgeTo[j] = graph.NodeId(toOffset / uint32(nfc))
	}

	return &graph.NodeSource{
		Type:            types,
		NameIdx:         nameIdx,
		StableID:        stableID,
		SelfSize:        selfSize,
		EdgeCount:       edgeCount,
		Detachedness:    detached,
		EdgeType:        edgeType,
		EdgeNameOrIndex: edgeNameOrIndex,
		EdgeTo:          edgeTo,
		Strings:         graph.NewStringTable(snap.Strings),
		Roots:           roots,
	}, nil
}

// fieldIndex returns the position of name within fields, or -1 if
// fields doesn't carry that column. Snapshot generations vary in
// where they place optional trailing node fields, so columns beyond
// the validated {type,name,id,self_size,edge_count} prefix are always
// resolved by name rather than assumed position.
func fieldIndex(fields []string, name string) int {
	for i, f := range fields {
		if f == name {
			return i
		}
	}
	return -1
}

func remapTypeTable[T any](names []string, byName func(string) (T, bool), field string) ([]T, error) {
	out := make([]T, len(names))
	for i, name := range names {
		t, ok := byName(name)
		if !ok {
			return nil, v8err.Load(fmt.Sprintf("snapshot: %s[%d] names unknown type %q", field, i, name))
		}
		out[i] = t
	}
	return out, nil
}
