// ABOUTME: Hidden-class (shape) proliferation analyzer: bucket by node name, sum self-size
// ABOUTME: Tag node type is configurable since different snapshot generations vary it

package analyze

import (
	"sort"

	"github.com/prateek/v8lens/graph"
)

// HiddenClassGroup summarizes one shape bucket (spec.md §4.6).
type HiddenClassGroup struct {
	Name      string
	Count     int
	TotalSize uint64
}

// HiddenClassConfig selects which node type tags a "hidden class"
// entry in a given snapshot. Defaults to ObjectShape, the closer
// analogue to a V8 Map/shape object; some older snapshot generations
// tag shape entries as Code instead (see
// original_source/src/analysis/hidden_classes.rs), so it's
// overridable rather than hard-coded.
type HiddenClassConfig struct {
	NodeType graph.NodeType
}

// DefaultHiddenClassConfig returns the ObjectShape-tagged default.
func DefaultHiddenClassConfig() HiddenClassConfig {
	return HiddenClassConfig{NodeType: graph.NodeObjectShape}
}

// FindHiddenClasses buckets every node of cfg.NodeType by its name,
// emitting one group per bucket, sorted by total memory descending
// (spec.md §4.6).
func FindHiddenClasses(g *graph.CompactGraph, cfg HiddenClassConfig) ([]HiddenClassGroup, error) {
	type bucket struct {
		count int
		total uint64
	}
	buckets := make(map[string]*bucket)

	for i := 0; i < g.NodeCount(); i++ {
		n := graph.NodeId(i)
		t, err := g.NodeType(n)
		if err != nil {
			return nil, err
		}
		if t != cfg.NodeType {
			continue
		}
		name, err := g.NodeName(n)
		if err != nil {
			return nil, err
		}
		size, err := g.NodeSelfSize(n)
		if err != nil {
			return nil, err
		}
		b, ok := buckets[name]
		if !ok {
			b = &bucket{}
			buckets[name] = b
		}
		b.count++
		b.total += size
	}

	groups := make([]HiddenClassGroup, 0, len(buckets))
	for name, b := range buckets {
		groups = append(groups, HiddenClassGroup{Name: name, Count: b.count, TotalSize: b.total})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].TotalSize != groups[j].TotalSize {
			return groups[i].TotalSize > groups[j].TotalSize
		}
		return groups[i].Name < groups[j].Name
	})
	return groups, nil
}
