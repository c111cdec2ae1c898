// ABOUTME: Duplicate string/object detection via content and structural hashing
// ABOUTME: Object hashing is deliberately identity-sensitive; see the doc comment below

package analyze

import (
	"encoding/binary"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"

	"github.com/prateek/v8lens/graph"
	"github.com/prateek/v8lens/v8err"
)

// DuplicateGroup is one bucket of structurally- or content-identical
// nodes (spec.md §4.5).
type DuplicateGroup struct {
	Hash            uint64
	ObjectType      string
	Count           int
	SizePerObject   uint64
	TotalWasted     uint64
	Representative  graph.NodeId
	NodeIDs         []graph.NodeId
	SampleValue     string
	RetainedSize    uint64
	HasRetainedSize bool
}

// ObjectDuplicateConfig selects policy for the object structural hash.
type ObjectDuplicateConfig struct {
	// IncludeHiddenClasses, when true, mixes Hidden-typed edges into
	// the structural hash; when false (the default) they're skipped,
	// since two otherwise-identical objects that merely differ in an
	// engine-internal hidden slot are still meaningful duplicates for
	// memory-reporting purposes.
	IncludeHiddenClasses bool
}

// FindDuplicateStrings groups every String node by the hash of its
// literal content, emitting a group for every bucket with two or
// more members (spec.md §4.5).
func FindDuplicateStrings(g *graph.CompactGraph) ([]DuplicateGroup, error) {
	buckets := make(map[uint64][]graph.NodeId)
	for i := 0; i < g.NodeCount(); i++ {
		n := graph.NodeId(i)
		t, err := g.NodeType(n)
		if err != nil {
			return nil, err
		}
		if t != graph.NodeString {
			continue
		}
		name, err := g.NodeName(n)
		if err != nil {
			return nil, err
		}
		h := xxhash.Sum64String(name)
		buckets[h] = append(buckets[h], n)
	}

	groups := make([]DuplicateGroup, 0, len(buckets))
	for h, ids := range buckets {
		if len(ids) < 2 {
			continue
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		rep := ids[0]
		size, err := g.NodeSelfSize(rep)
		if err != nil {
			return nil, err
		}
		name, err := g.NodeName(rep)
		if err != nil {
			return nil, err
		}
		groups = append(groups, DuplicateGroup{
			Hash:           h,
			ObjectType:     "String",
			Count:          len(ids),
			SizePerObject:  size,
			TotalWasted:    uint64(len(ids)-1) * size,
			Representative: rep,
			NodeIDs:        ids,
			SampleValue:    sampleString(name),
		})
	}
	SortGroups(groups)
	return groups, nil
}

// FindDuplicateObjects groups every Object node by a structural hash
// of its name and outbound edges (spec.md §4.5).
//
// The hash is deliberately identity-sensitive: it mixes each edge's
// target NodeId directly, so two objects that point at the *same*
// target deduplicate, but two objects pointing at distinct-but
// structurally-equivalent subtrees do not. Recursive structural
// equivalence is open-ended and expensive to compute at this scale;
// this is a conservative, documented limitation, not an oversight.
func FindDuplicateObjects(g *graph.CompactGraph, cfg ObjectDuplicateConfig) ([]DuplicateGroup, error) {
	buckets := make(map[uint64][]graph.NodeId)
	for i := 0; i < g.NodeCount(); i++ {
		n := graph.NodeId(i)
		t, err := g.NodeType(n)
		if err != nil {
			return nil, err
		}
		if t != graph.NodeObject {
			continue
		}
		h, err := hashObject(g, n, cfg.IncludeHiddenClasses)
		if err != nil {
			return nil, err
		}
		buckets[h] = append(buckets[h], n)
	}

	groups := make([]DuplicateGroup, 0, len(buckets))
	for h, ids := range buckets {
		if len(ids) < 2 {
			continue
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		rep := ids[0]
		size, err := g.NodeSelfSize(rep)
		if err != nil {
			return nil, err
		}
		sample, err := sampleObject(g, rep)
		if err != nil {
			return nil, err
		}
		groups = append(groups, DuplicateGroup{
			Hash:           h,
			ObjectType:     "Object",
			Count:          len(ids),
			SizePerObject:  size,
			TotalWasted:    uint64(len(ids)-1) * size,
			Representative: rep,
			NodeIDs:        ids,
			SampleValue:    sample,
		})
	}
	SortGroups(groups)
	return groups, nil
}

// AnnotateRetainedSizes sets RetainedSize on every group from a
// precomputed retained-size map (spec.md §4.5 "optional enrichment"),
// returning a new slice.
func AnnotateRetainedSizes(groups []DuplicateGroup, retained map[graph.NodeId]uint64) []DuplicateGroup {
	out := make([]DuplicateGroup, len(groups))
	for i, grp := range groups {
		if sz, ok := retained[grp.Representative]; ok {
			grp.RetainedSize = sz
			grp.HasRetainedSize = true
		}
		out[i] = grp
	}
	return out
}

func hashObject(g *graph.CompactGraph, n graph.NodeId, includeHidden bool) (uint64, error) {
	name, err := g.NodeName(n)
	if err != nil {
		return 0, err
	}
	edges, err := g.OutEdges(n)
	if err != nil {
		return 0, err
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i].NameOrIndex < edges[j].NameOrIndex })

	h := xxhash.New()
	h.Write([]byte(name))
	var buf [16]byte
	for _, e := range edges {
		if e.Type == graph.EdgeHidden && !includeHidden {
			continue
		}
		binary.LittleEndian.PutUint32(buf[0:4], uint32(e.Type))
		binary.LittleEndian.PutUint32(buf[4:8], e.NameOrIndex)
		binary.LittleEndian.PutUint64(buf[8:16], uint64(e.To))
		h.Write(buf[:])
	}
	return h.Sum64(), nil
}

// sampleString escapes and truncates a string's literal content at
// 100 code points, appending an ellipsis if truncated (spec.md
// §4.5's sample-value generation).
func sampleString(s string) string {
	escaped := strconv.Quote(s)
	escaped = escaped[1 : len(escaped)-1] // strconv.Quote wraps in " "
	if utf8.RuneCountInString(escaped) <= 100 {
		return escaped
	}
	runes := []rune(escaped)
	return string(runes[:100]) + "…"
}

// sampleObject lists the first five outbound named edges as
// "name: target_name" pairs.
func sampleObject(g *graph.CompactGraph, n graph.NodeId) (string, error) {
	edges, err := g.OutEdges(n)
	if err != nil {
		return "", err
	}
	var parts []string
	for _, e := range edges {
		if len(parts) >= 5 {
			break
		}
		if e.Type == graph.EdgeElement {
			continue // not a named edge
		}
		edgeName := g.EdgeNameOrIndexString(e)
		targetName, err := g.NodeName(e.To)
		if err != nil {
			if v8err.IsQuery(err) {
				continue
			}
			return "", err
		}
		parts = append(parts, edgeName+": "+targetName)
	}
	return strings.Join(parts, ", "), nil
}

// SortGroups orders groups by total_wasted descending (ties broken by
// hash, then representative NodeId), the ordering spec.md §5 guarantees
// for duplicate-group output. FindDuplicateStrings/FindDuplicateObjects
// each apply it to their own results; callers that merge multiple
// result slices together must re-apply it to the concatenation rather
// than assume the merge preserves the guarantee.
func SortGroups(groups []DuplicateGroup) {
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].TotalWasted != groups[j].TotalWasted {
			return groups[i].TotalWasted > groups[j].TotalWasted
		}
		if groups[i].Hash != groups[j].Hash {
			return groups[i].Hash < groups[j].Hash
		}
		return groups[i].Representative < groups[j].Representative
	})
}
