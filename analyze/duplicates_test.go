package analyze

import (
	"strings"
	"testing"

	"github.com/prateek/v8lens/graph"
)

func buildStringGraph(t *testing.T) *graph.CompactGraph {
	t.Helper()
	src := graph.NodeSource{
		Type:      []graph.NodeType{graph.NodeString, graph.NodeString, graph.NodeString},
		NameIdx:   []uint32{0, 0, 1},
		StableID:  []uint64{1, 2, 3},
		SelfSize:  []uint64{48, 48, 10},
		EdgeCount: []uint32{0, 0, 0},
		Strings:   graph.NewStringTable([]string{"dup", "other"}),
	}
	g, err := graph.Build(src)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

// Scenario D — String duplicates.
func TestFindDuplicateStrings(t *testing.T) {
	g := buildStringGraph(t)

	groups, err := FindDuplicateStrings(g)
	if err != nil {
		t.Fatal(err)
	}
	if len(groups) != 1 {
		t.Fatalf("expected exactly one duplicate group, got %d: %+v", len(groups), groups)
	}
	got := groups[0]
	if got.Count != 2 {
		t.Errorf("count = %d, want 2", got.Count)
	}
	if got.TotalWasted != 48 {
		t.Errorf("total_wasted = %d, want 48", got.TotalWasted)
	}
	if got.ObjectType != "String" {
		t.Errorf("object_type = %q, want String", got.ObjectType)
	}
	if !strings.Contains(got.SampleValue, "dup") {
		t.Errorf("sample_value = %q, want it to contain dup", got.SampleValue)
	}
}

// buildObjectGraph builds two duplicate Object nodes (0, 1), each
// with one property edge to a shared leaf (2), which has no outbound
// edges and so never collides with anything itself.
func buildObjectGraph(t *testing.T) *graph.CompactGraph {
	t.Helper()
	src := graph.NodeSource{
		Type:            []graph.NodeType{graph.NodeObject, graph.NodeObject, graph.NodeObject},
		NameIdx:         []uint32{0, 0, 0},
		StableID:        []uint64{1, 2, 3},
		SelfSize:        []uint64{16, 16, 8},
		EdgeCount:       []uint32{1, 1, 0},
		EdgeType:        []graph.EdgeType{graph.EdgeProperty, graph.EdgeProperty},
		EdgeNameOrIndex: []uint32{0, 0},
		EdgeTo:          []graph.NodeId{2, 2},
		Strings:         graph.NewStringTable([]string{""}),
	}
	g, err := graph.Build(src)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestFindDuplicateObjects(t *testing.T) {
	g := buildObjectGraph(t)

	groups, err := FindDuplicateObjects(g, ObjectDuplicateConfig{})
	if err != nil {
		t.Fatal(err)
	}
	if len(groups) != 1 {
		t.Fatalf("expected exactly one duplicate group, got %d: %+v", len(groups), groups)
	}
	got := groups[0]
	if got.Count != 2 {
		t.Errorf("count = %d, want 2", got.Count)
	}
	if got.Representative != 0 {
		t.Errorf("representative = %d, want 0 (lowest NodeId)", got.Representative)
	}
}

// TestFindDuplicateObjectsHiddenClassPolicy: two nodes identical
// except for a Hidden edge must dedupe only when IncludeHiddenClasses
// is false. The edge target (2) carries its own name so it never
// collides with the edgeless node 1.
func TestFindDuplicateObjectsHiddenClassPolicy(t *testing.T) {
	src := graph.NodeSource{
		Type:            []graph.NodeType{graph.NodeObject, graph.NodeObject, graph.NodeObject},
		NameIdx:         []uint32{0, 0, 1},
		StableID:        []uint64{1, 2, 3},
		SelfSize:        []uint64{16, 16, 8},
		EdgeCount:       []uint32{1, 0, 0},
		EdgeType:        []graph.EdgeType{graph.EdgeHidden},
		EdgeNameOrIndex: []uint32{0},
		EdgeTo:          []graph.NodeId{2},
		Strings:         graph.NewStringTable([]string{"", "leaf"}),
	}
	g, err := graph.Build(src)
	if err != nil {
		t.Fatal(err)
	}

	excluded, err := FindDuplicateObjects(g, ObjectDuplicateConfig{IncludeHiddenClasses: false})
	if err != nil {
		t.Fatal(err)
	}
	if len(excluded) != 1 || excluded[0].Count != 2 {
		t.Fatalf("expected nodes 0 and 1 to dedupe when hidden edges are excluded, got %+v", excluded)
	}

	included, err := FindDuplicateObjects(g, ObjectDuplicateConfig{IncludeHiddenClasses: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(included) != 0 {
		t.Fatalf("expected no duplicate group when hidden edges distinguish node 0 from node 1, got %+v", included)
	}
}

func TestAnnotateRetainedSizes(t *testing.T) {
	groups := []DuplicateGroup{{Representative: 5}}
	retained := map[graph.NodeId]uint64{5: 123}
	annotated := AnnotateRetainedSizes(groups, retained)
	if !annotated[0].HasRetainedSize || annotated[0].RetainedSize != 123 {
		t.Fatalf("unexpected annotation: %+v", annotated[0])
	}
}
