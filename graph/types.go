// ABOUTME: Core data types for the compact heap object graph
// ABOUTME: Defines NodeId, node/edge type enums, and the columnar edge record

package graph

import "fmt"

// NodeId is a dense 32-bit ordinal assigned by position in the parsed
// snapshot's node array.
type NodeId uint32

// NodeType tags the kind of heap object a node represents. Values are
// this package's own canonical ordinals; a snapshot's node_types
// names are mapped onto them by NodeTypeByName, whatever order the
// snapshot lists them in. An unrecognized tag is a load error, not
// silently coerced to a default.
type NodeType uint8

const (
	NodeHidden NodeType = iota
	NodeArray
	NodeString
	NodeObject
	NodeCode
	NodeClosure
	NodeRegExp
	NodeNumber
	NodeNative
	NodeSynthetic
	NodeConcatString
	NodeSlicedString
	NodeSymbol
	NodeBigInt
	NodeObjectShape
	nodeTypeCount
)

var nodeTypeNames = [...]string{
	"hidden", "array", "string", "object", "code", "closure", "regexp",
	"number", "native", "synthetic", "concatenated string", "sliced string",
	"symbol", "bigint", "object shape",
}

func (t NodeType) String() string {
	if int(t) < len(nodeTypeNames) {
		return nodeTypeNames[t]
	}
	return fmt.Sprintf("NodeType(%d)", uint8(t))
}

// Valid reports whether t is one of the known node type ordinals.
func (t NodeType) Valid() bool {
	return t < nodeTypeCount
}

// NodeTypeByName resolves a snapshot's own node_types name to our
// canonical ordinal, so a loader never has to assume a snapshot's
// node_types array is laid out in the same order this package uses
// internally.
func NodeTypeByName(name string) (NodeType, bool) {
	for i, n := range nodeTypeNames {
		if n == name {
			return NodeType(i), true
		}
	}
	return 0, false
}

// EdgeType tags the kind of reference an edge represents.
type EdgeType uint8

const (
	EdgeContext EdgeType = iota
	EdgeElement
	EdgeProperty
	EdgeInternal
	EdgeHidden
	EdgeShortcut
	EdgeWeak
	edgeTypeCount
)

var edgeTypeNames = [...]string{
	"context", "element", "property", "internal", "hidden", "shortcut", "weak",
}

func (t EdgeType) String() string {
	if int(t) < len(edgeTypeNames) {
		return edgeTypeNames[t]
	}
	return fmt.Sprintf("EdgeType(%d)", uint8(t))
}

// Valid reports whether t is one of the known edge type ordinals.
func (t EdgeType) Valid() bool {
	return t < edgeTypeCount
}

// EdgeTypeByName resolves a snapshot's own edge_types name to our
// canonical ordinal; see NodeTypeByName.
func EdgeTypeByName(name string) (EdgeType, bool) {
	for i, n := range edgeTypeNames {
		if n == name {
			return EdgeType(i), true
		}
	}
	return 0, false
}

// Edge is a single outgoing reference from a node, as returned by
// CompactGraph.OutEdges. NameOrIndex is an element ordinal for
// EdgeElement edges, otherwise an index into the string table.
type Edge struct {
	Type        EdgeType
	NameOrIndex uint32
	To          NodeId
}
