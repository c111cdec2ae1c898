package report

import (
	"encoding/json"

	"github.com/prateek/v8lens/analyze"
	"github.com/prateek/v8lens/graph"
)

// JSONReporter renders machine-readable JSON, for piping into other
// tooling or the web UI a future CLI mode might serve.
type JSONReporter struct{}

type jsonDomRow struct {
	Node         uint32 `json:"node"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	SelfSize     uint64 `json:"self_size"`
	RetainedSize uint64 `json:"retained_size"`
	Depth        int    `json:"depth"`
}

func (JSONReporter) DominatorTree(g *graph.CompactGraph, t *graph.DominatorTree, retained map[graph.NodeId]uint64, top int) (string, error) {
	rows, err := sortedDominatorRows(g, t, retained, top)
	if err != nil {
		return "", err
	}
	out := make([]jsonDomRow, len(rows))
	for i, r := range rows {
		out[i] = jsonDomRow{
			Node:         uint32(r.Node),
			Name:         r.Name,
			Type:         r.Type,
			SelfSize:     r.SelfSize,
			RetainedSize: r.RetainedSize,
			Depth:        r.Depth,
		}
	}
	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (JSONReporter) Duplicates(groups []analyze.DuplicateGroup, top int) (string, error) {
	if top > 0 && len(groups) > top {
		groups = groups[:top]
	}
	b, err := json.MarshalIndent(groups, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (JSONReporter) HiddenClasses(groups []analyze.HiddenClassGroup, top int) (string, error) {
	if top > 0 && len(groups) > top {
		groups = groups[:top]
	}
	b, err := json.MarshalIndent(groups, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}
