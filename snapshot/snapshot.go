// ABOUTME: Parses V8 devtools heap-snapshot JSON into the flat Snapshot contract
// ABOUTME: Bulk nodes/edges arrays are token-streamed, not reflection-decoded

package snapshot

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	gojson "github.com/goccy/go-json"

	"github.com/prateek/v8lens/v8err"
)

// Snapshot is the inbound contract spec.md §6 names: the raw
// structure fields of a parsed V8 heap snapshot, before projection
// into a graph.CompactGraph.
type Snapshot struct {
	NodeFieldCount int
	EdgeFieldCount int
	NodeFields     []string
	NodeTypes      []string
	EdgeTypes      []string
	Nodes          []uint32
	Edges          []uint32
	Strings        []string
}

type metaEnvelope struct {
	Meta struct {
		NodeFields []string          `json:"node_fields"`
		NodeTypes  []json.RawMessage `json:"node_types"`
		EdgeFields []string          `json:"edge_fields"`
		EdgeTypes  []json.RawMessage `json:"edge_types"`
	} `json:"meta"`
	NodeCount int `json:"node_count"`
	EdgeCount int `json:"edge_count"`
}

// requiredNodeFields and requiredEdgeFields are the field-schema
// prefixes spec.md §6 mandates; anything else in those positions is
// a load error.
var (
	requiredNodeFields = []string{"type", "name", "id", "self_size", "edge_count"}
	requiredEdgeFields = []string{"type", "name_or_index", "to_node"}
)

// Load parses a devtools heap-snapshot JSON document from r: a
// top-level object carrying a "snapshot" metadata object, flat
// "nodes"/"edges" integer arrays, and a "strings" array.
//
// The top-level object is walked key by key with the standard
// library's encoding/json.Decoder, which also decodes the "strings"
// array; the "snapshot" metadata object and its type-name tables are
// decoded with goccy/go-json. The "nodes" and "edges" arrays are
// walked directly with Decoder.Token and accumulated into pre-sized
// []uint32 slices instead: those arrays run into the tens of
// millions of bare integers, a shape neither goccy/go-json nor any
// other JSON library in active use here accelerates beyond what
// Decoder.Token already gives, since their speed advantage is in
// reflection-based struct decoding, which this path never touches.
func Load(r io.Reader) (*Snapshot, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	if err := expectDelim(dec, '{'); err != nil {
		return nil, v8err.WrapLoad("snapshot: expected a top-level JSON object", err)
	}

	var snap Snapshot
	var meta *metaEnvelope
	sawNodes, sawEdges, sawStrings := false, false, false

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, v8err.WrapLoad("snapshot: reading a top-level key", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, v8err.Load("snapshot: expected a string key at the top level")
		}

		switch key {
		case "snapshot":
			var raw json.RawMessage
			if err := dec.Decode(&raw); err != nil {
				return nil, v8err.WrapLoad("snapshot: decoding the \"snapshot\" metadata object", err)
			}
			m := &metaEnvelope{}
			if err := gojson.Unmarshal(raw, m); err != nil {
				return nil, v8err.WrapLoad("snapshot: decoding the \"snapshot\" metadata object", err)
			}
			meta = m
		case "nodes":
			sizeHint := 0
			if meta != nil && len(meta.Meta.NodeFields) > 0 {
				sizeHint = meta.NodeCount * len(meta.Meta.NodeFields)
			}
			vals, err := decodeUint32Array(dec, sizeHint)
			if err != nil {
				return nil, v8err.WrapLoad("snapshot: decoding the \"nodes\" array", err)
			}
			snap.Nodes = vals
			sawNodes = true
		case "edges":
			sizeHint := 0
			if meta != nil && len(meta.Meta.EdgeFields) > 0 {
				sizeHint = meta.EdgeCount * len(meta.Meta.EdgeFields)
			}
			vals, err := decodeUint32Array(dec, sizeHint)
			if err != nil {
				return nil, v8err.WrapLoad("snapshot: decoding the \"edges\" array", err)
			}
			snap.Edges = vals
			sawEdges = true
		case "strings":
			if err := dec.Decode(&snap.Strings); err != nil {
				return nil, v8err.WrapLoad("snapshot: decoding the \"strings\" array", err)
			}
			sawStrings = true
		default:
			var discard json.RawMessage
			if err := dec.Decode(&discard); err != nil {
				return nil, v8err.WrapLoad(fmt.Sprintf("snapshot: skipping unrecognized field %q", key), err)
			}
		}
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, v8err.WrapLoad("snapshot: expected the top-level object to close", err)
	}

	if meta == nil {
		return nil, v8err.Load("snapshot: missing \"snapshot\" metadata object")
	}
	if !sawNodes || !sawEdges || !sawStrings {
		return nil, v8err.Load("snapshot: missing one of the required \"nodes\"/\"edges\"/\"strings\" arrays")
	}
	if err := validateFieldSchema(meta); err != nil {
		return nil, err
	}

	nodeTypeNames, err := decodeTypeNames(meta.Meta.NodeTypes, "node_types")
	if err != nil {
		return nil, err
	}
	edgeTypeNames, err := decodeTypeNames(meta.Meta.EdgeTypes, "edge_types")
	if err != nil {
		return nil, err
	}

	snap.NodeFieldCount = len(meta.Meta.NodeFields)
	snap.EdgeFieldCount = len(meta.Meta.EdgeFields)
	snap.NodeFields = meta.Meta.NodeFields
	snap.NodeTypes = nodeTypeNames
	snap.EdgeTypes = edgeTypeNames
	return &snap, nil
}

func validateFieldSchema(meta *metaEnvelope) error {
	if len(meta.Meta.NodeFields) < len(requiredNodeFields) {
		return v8err.Load("snapshot: node_fields is shorter than the required {type,name,id,self_size,edge_count} prefix")
	}
	for i, want := range requiredNodeFields {
		if meta.Meta.NodeFields[i] != want {
			return v8err.Load(fmt.Sprintf("snapshot: node_fields[%d] = %q, want %q", i, meta.Meta.NodeFields[i], want))
		}
	}
	if len(meta.Meta.EdgeFields) < len(requiredEdgeFields) {
		return v8err.Load("snapshot: edge_fields is shorter than the required {type,name_or_index,to_node} prefix")
	}
	for i, want := range requiredEdgeFields {
		if meta.Meta.EdgeFields[i] != want {
			return v8err.Load(fmt.Sprintf("snapshot: edge_fields[%d] = %q, want %q", i, meta.Meta.EdgeFields[i], want))
		}
	}
	return nil
}

// decodeTypeNames extracts the ordinal->name array that is always
// element 0 of a meta "*_types" array (the remaining elements
// describe the scalar type of the other field columns and are not
// needed here).
func decodeTypeNames(types []json.RawMessage, field string) ([]string, error) {
	if len(types) == 0 {
		return nil, v8err.Load(fmt.Sprintf("snapshot: meta.%s is empty", field))
	}
	var names []string
	if err := gojson.Unmarshal(types[0], &names); err != nil {
		return nil, v8err.WrapLoad(fmt.Sprintf("snapshot: meta.%s[0] is not an array of type names", field), err)
	}
	return names, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	d, ok := tok.(json.Delim)
	if !ok || d != want {
		return fmt.Errorf("expected delimiter %q, got %v", want, tok)
	}
	return nil
}

func decodeUint32Array(dec *json.Decoder, sizeHint int) ([]uint32, error) {
	if err := expectDelim(dec, '['); err != nil {
		return nil, err
	}
	out := make([]uint32, 0, sizeHint)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		num, ok := tok.(json.Number)
		if !ok {
			return nil, fmt.Errorf("expected a number, got %v", tok)
		}
		v, err := strconv.ParseUint(string(num), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("value %q out of range for a u32 field: %w", num, err)
		}
		out = append(out, uint32(v))
	}
	if err := expectDelim(dec, ']'); err != nil {
		return nil, err
	}
	return out, nil
}
