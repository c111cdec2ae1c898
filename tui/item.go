package tui

import (
	"fmt"

	"github.com/prateek/v8lens/graph"
)

// nodeItem adapts a dominator-tree child into bubbles/list's Item
// interface: Title/Description/FilterValue.
type nodeItem struct {
	id           graph.NodeId
	name         string
	typ          string
	selfSize     uint64
	retainedSize uint64
	children     int
}

func (i nodeItem) Title() string {
	return fmt.Sprintf("%s  (%s)", i.name, i.typ)
}

func (i nodeItem) Description() string {
	return fmt.Sprintf("self=%d retained=%d children=%d  #%d", i.selfSize, i.retainedSize, i.children, i.id)
}

func (i nodeItem) FilterValue() string {
	return i.name
}
