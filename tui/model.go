// Package tui implements the interactive inspector shell: a
// collapsible dominator-tree list with an inspector pane for the
// selected node's fields, edges, and retention paths. Like the
// report package, this is a pure consumer of the core's public
// interfaces (graph, analyze) and carries no analysis logic.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/prateek/v8lens/graph"
)

var (
	titleStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	inspectorStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	breadcrumbStyle = lipgloss.NewStyle().Faint(true)
)

// Model is the bubbletea Elm-architecture model for the inspector:
// list.Model owns the dominator-children list and its own filtering
// and keyboard navigation; viewport.Model scrolls the inspector pane;
// path holds the ascend stack of NodeIds the user has descended
// through.
type Model struct {
	g        *graph.CompactGraph
	tree     *graph.DominatorTree
	retained map[graph.NodeId]uint64
	paths    *graph.RootPathIndex

	list      list.Model
	inspector viewport.Model
	path      []graph.NodeId // ascend stack; path[len(path)-1] is the current node
	showPaths bool

	width, height int
}

// New builds a Model rooted at t.Root.
func New(g *graph.CompactGraph, t *graph.DominatorTree, retained map[graph.NodeId]uint64, paths *graph.RootPathIndex) Model {
	delegate := list.NewDefaultDelegate()
	l := list.New(nil, delegate, 0, 0)
	l.Title = "dominator tree"
	l.SetShowHelp(true)

	m := Model{
		g:         g,
		tree:      t,
		retained:  retained,
		paths:     paths,
		list:      l,
		inspector: viewport.New(0, 0),
		path:      []graph.NodeId{t.Root},
	}
	m.reload()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m *Model) current() graph.NodeId {
	return m.path[len(m.path)-1]
}

// reload rebuilds the list items for the current node's dominator
// children and refreshes the inspector pane.
func (m *Model) reload() {
	children := m.tree.Children[m.current()]
	items := make([]list.Item, 0, len(children))
	for _, c := range children {
		items = append(items, m.buildItem(c))
	}
	m.list.SetItems(items)
	m.refreshInspector()
}

func (m *Model) buildItem(id graph.NodeId) nodeItem {
	name, _ := m.g.NodeName(id)
	typ, _ := m.g.NodeType(id)
	self, _ := m.g.NodeSelfSize(id)
	return nodeItem{
		id:           id,
		name:         name,
		typ:          typ.String(),
		selfSize:     self,
		retainedSize: m.retained[id],
		children:     len(m.tree.Children[id]),
	}
}

func (m *Model) refreshInspector() {
	n := m.current()
	var b strings.Builder
	name, _ := m.g.NodeName(n)
	typ, _ := m.g.NodeType(n)
	self, _ := m.g.NodeSelfSize(n)
	fmt.Fprintf(&b, "node #%d: %s (%s)\n", n, name, typ)
	fmt.Fprintf(&b, "self size:     %d\n", self)
	fmt.Fprintf(&b, "retained size: %d\n", m.retained[n])

	if int(n) < m.g.NodeCount() {
		out, err := m.g.OutEdges(n)
		if err == nil {
			fmt.Fprintf(&b, "\nout-edges (%d):\n", len(out))
			for i, e := range out {
				if i >= 20 {
					fmt.Fprintf(&b, "  ... and %d more\n", len(out)-20)
					break
				}
				toName, _ := m.g.NodeName(e.To)
				fmt.Fprintf(&b, "  [%s:%s] -> #%d %s\n", e.Type, m.g.EdgeNameOrIndexString(e), e.To, toName)
			}
		}

		in, err := m.g.InEdges(n)
		if err == nil {
			fmt.Fprintf(&b, "\nin-edges (%d):\n", len(in))
			for i, from := range in {
				if i >= 20 {
					fmt.Fprintf(&b, "  ... and %d more\n", len(in)-20)
					break
				}
				fromName, _ := m.g.NodeName(from)
				fmt.Fprintf(&b, "  #%d %s\n", from, fromName)
			}
		}
	}

	if m.showPaths && m.paths != nil {
		fmt.Fprintln(&b, "\nretention paths:")
		if !m.paths.Reachable(n) {
			fmt.Fprintln(&b, "  (not reachable from any root)")
		} else {
			ps, err := m.paths.PathsTo(n, 10)
			for _, p := range ps {
				fmt.Fprintln(&b, "  "+renderPath(m.g, p))
			}
			if err != nil {
				fmt.Fprintln(&b, "  (truncated: more paths exist)")
			}
		}
	}

	m.inspector.SetContent(b.String())
}

func renderPath(g *graph.CompactGraph, p graph.Path) string {
	var b strings.Builder
	for _, e := range p.Edges {
		name, _ := g.NodeName(e.From)
		fmt.Fprintf(&b, "%s --[%s]--> ", name, g.EdgeNameOrIndexString(graph.Edge{Type: e.Type, NameOrIndex: e.NameOrIndex, To: e.To}))
	}
	if len(p.Edges) > 0 {
		last := p.Edges[len(p.Edges)-1]
		name, _ := g.NodeName(last.To)
		b.WriteString(name)
	}
	return b.String()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		listWidth := m.width / 2
		m.list.SetSize(listWidth, m.height-2)
		m.inspector.Width = m.width - listWidth - 4
		m.inspector.Height = m.height - 2
		m.refreshInspector()
		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break // let the embedded filter input consume keys first
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "enter", "l":
			if sel, ok := m.list.SelectedItem().(nodeItem); ok {
				m.path = append(m.path, sel.id)
				m.reload()
			}
			return m, nil
		case "h", "backspace":
			if len(m.path) > 1 {
				m.path = m.path[:len(m.path)-1]
				m.reload()
			}
			return m, nil
		case "p":
			m.showPaths = !m.showPaths
			m.refreshInspector()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	m.refreshInspector()
	return m, cmd
}

func (m Model) View() string {
	crumbs := make([]string, len(m.path))
	for i, id := range m.path {
		name, _ := m.g.NodeName(id)
		crumbs[i] = name
	}
	header := titleStyle.Render("v8lens inspect") + "  " + breadcrumbStyle.Render(strings.Join(crumbs, " / "))

	left := m.list.View()
	right := inspectorStyle.Render(m.inspector.View())
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	footer := breadcrumbStyle.Render("enter/l: descend  h/backspace: ascend  /: filter  p: toggle paths  q: quit")
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
