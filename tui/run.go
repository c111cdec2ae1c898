package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/prateek/v8lens/graph"
)

// Run launches the interactive inspector over g, blocking until the
// user quits.
func Run(g *graph.CompactGraph, t *graph.DominatorTree, retained map[graph.NodeId]uint64, paths *graph.RootPathIndex) error {
	p := tea.NewProgram(New(g, t, retained, paths), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
