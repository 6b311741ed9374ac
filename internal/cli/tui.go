package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/modgraph/pkg/errors"
	"github.com/matzehuels/modgraph/pkg/graph"
	"github.com/matzehuels/modgraph/pkg/search"
	"github.com/matzehuels/modgraph/pkg/viewer"
)

const (
	// nudgeStep is how far H/J/K/L move the node under the cursor.
	nudgeStep = 20.0

	// maxResults caps the search result list.
	maxResults = 10

	// statusTTL is how long a status line stays up.
	statusTTL = 3 * time.Second
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	listErrorStyle    = lipgloss.NewStyle().Foreground(colorRed)
	paneStyle         = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
	paneActiveStyle   = paneStyle.BorderForeground(colorCyan)
)

type focus int

const (
	focusSearch focus = iota
	focusNodes
)

// clearStatusMsg expires the status line with the given id.
type clearStatusMsg struct{ id int }

// =============================================================================
// ExplorerModel - Interactive graph exploration
// =============================================================================

// ExplorerModel is the bubbletea model behind the view command. It owns the
// engine; every key press maps to at most one engine operation.
type ExplorerModel struct {
	engine *viewer.Engine
	state  viewer.State

	input   textinput.Model
	results []graph.Node
	focus   focus

	resultCursor int
	nodeCursor   int

	status    string
	statusErr bool
	statusID  int

	height int
}

// NewExplorerModel creates an explorer over e with the search box focused.
func NewExplorerModel(e *viewer.Engine) ExplorerModel {
	in := textinput.New()
	in.Placeholder = "search modules"
	in.Prompt = "/ "
	in.Focus()

	return ExplorerModel{
		engine: e,
		state:  e.Snapshot(),
		input:  in,
		focus:  focusSearch,
		height: 20,
	}
}

func (m ExplorerModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m ExplorerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-12, 5)
		return m, nil

	case clearStatusMsg:
		if msg.id == m.statusID {
			m.status = ""
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "tab":
			return m.toggleFocus(), nil
		}
		if m.focus == focusSearch {
			return m.updateSearch(msg)
		}
		return m.updateNodes(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m ExplorerModel) toggleFocus() ExplorerModel {
	if m.focus == focusSearch {
		m.focus = focusNodes
		m.input.Blur()
	} else {
		m.focus = focusSearch
		m.input.Focus()
	}
	return m
}

func (m ExplorerModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.toggleFocus(), nil
	case "up":
		if m.resultCursor > 0 {
			m.resultCursor--
		}
		return m, nil
	case "down":
		if m.resultCursor < len(m.results)-1 {
			m.resultCursor++
		}
		return m, nil
	case "enter":
		if len(m.results) == 0 {
			return m, nil
		}
		n := m.results[m.resultCursor]
		var cmd tea.Cmd
		m, cmd = m.apply(fmt.Sprintf("revealed %s", n.DisplayLabel()), func(e *viewer.Engine) error {
			return e.RevealNode(n.ID)
		})
		m.moveCursorTo(n.ID)
		return m.toggleFocus(), cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.results = search.FindN(m.engine.Graph().Nodes, m.input.Value(), maxResults)
	m.resultCursor = min(m.resultCursor, max(len(m.results)-1, 0))
	return m, cmd
}

func (m ExplorerModel) updateNodes(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	id := m.cursorID()

	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "/":
		m = m.toggleFocus()
		return m, nil
	case "up", "k":
		if m.nodeCursor > 0 {
			m.nodeCursor--
		}
		return m, nil
	case "down", "j":
		if m.nodeCursor < len(m.state.Nodes)-1 {
			m.nodeCursor++
		}
		return m, nil
	}

	if id == "" {
		return m, nil
	}

	switch msg.String() {
	case "u":
		return m.apply("expanded importers", func(e *viewer.Engine) error { return e.ExpandUpstream(id) })
	case "d", "enter":
		return m.apply("expanded imports", func(e *viewer.Engine) error { return e.ExpandDownstream(id) })
	case " ":
		return m.apply("", func(e *viewer.Engine) error {
			if e.SelectedNodeID() == id {
				id = ""
			}
			e.SetSelectedNode(id)
			return nil
		})
	case "H":
		return m.nudge(id, -nudgeStep, 0)
	case "L":
		return m.nudge(id, nudgeStep, 0)
	case "K":
		return m.nudge(id, 0, -nudgeStep)
	case "J":
		return m.nudge(id, 0, nudgeStep)
	}
	return m, nil
}

func (m ExplorerModel) nudge(id string, dx, dy float64) (tea.Model, tea.Cmd) {
	n, _ := m.state.Node(id)
	return m.apply("", func(e *viewer.Engine) error {
		return e.RepositionNode(id, n.Position.Add(dx, dy))
	})
}

// apply runs one engine operation and refreshes the snapshot. Errors and
// non-empty notes become a transient status line.
func (m ExplorerModel) apply(note string, op func(*viewer.Engine) error) (ExplorerModel, tea.Cmd) {
	before := len(m.state.Nodes)
	err := op(m.engine)
	m.state = m.engine.Snapshot()

	switch {
	case err != nil:
		return m.setStatus(errors.UserMessage(err), true)
	case note != "":
		if added := len(m.state.Nodes) - before; added > 0 {
			note = fmt.Sprintf("%s (+%d)", note, added)
		} else {
			note += " (nothing new)"
		}
		return m.setStatus(note, false)
	}
	return m, nil
}

func (m ExplorerModel) setStatus(s string, isErr bool) (ExplorerModel, tea.Cmd) {
	m.statusID++
	m.status, m.statusErr = s, isErr
	id := m.statusID
	return m, tea.Tick(statusTTL, func(time.Time) tea.Msg { return clearStatusMsg{id} })
}

func (m *ExplorerModel) moveCursorTo(id string) {
	for i, n := range m.state.Nodes {
		if n.ID == id {
			m.nodeCursor = i
			return
		}
	}
}

func (m ExplorerModel) cursorID() string {
	if m.nodeCursor < 0 || m.nodeCursor >= len(m.state.Nodes) {
		return ""
	}
	return m.state.Nodes[m.nodeCursor].ID
}

// =============================================================================
// Rendering
// =============================================================================

func (m ExplorerModel) View() string {
	var b strings.Builder

	title := m.state.Title
	if title == "" {
		title = appName
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d of %d modules visible", len(m.state.Nodes), m.engine.Index().NodeCount())))
	b.WriteString("\n\n")

	searchPane, nodesPane := paneStyle, paneStyle
	if m.focus == focusSearch {
		searchPane = paneActiveStyle
	} else {
		nodesPane = paneActiveStyle
	}
	b.WriteString(searchPane.Render(m.viewSearch()))
	b.WriteString("\n")
	b.WriteString(nodesPane.Render(m.viewNodes()))
	b.WriteString("\n")

	if m.status != "" {
		style := StyleSuccess
		if m.statusErr {
			style = listErrorStyle
		}
		b.WriteString(style.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(m.help()))
	return b.String()
}

func (m ExplorerModel) viewSearch() string {
	var b strings.Builder
	b.WriteString(m.input.View())
	for i, n := range m.results {
		b.WriteString("\n")
		line := n.SearchText()
		if n.IsExternal() {
			line += listDimStyle.Render(" (external)")
		}
		if m.engine.IsVisible(n.ID) {
			line += listDimStyle.Render(" ·")
		}
		if i == m.resultCursor && m.focus == focusSearch {
			b.WriteString(listSelectedStyle.Render("▸ " + line))
		} else {
			b.WriteString(listNormalStyle.Render("  " + line))
		}
	}
	return b.String()
}

func (m ExplorerModel) viewNodes() string {
	if len(m.state.Nodes) == 0 {
		return listDimStyle.Render("nothing revealed yet")
	}

	var b strings.Builder
	offset := 0
	if m.nodeCursor >= m.height {
		offset = m.nodeCursor - m.height + 1
	}
	end := min(offset+m.height, len(m.state.Nodes))

	for i := offset; i < end; i++ {
		n := m.state.Nodes[i]
		marker := "  "
		if i == m.nodeCursor {
			marker = "▸ "
		}
		dot := "○"
		if m.state.IsSelected(n.ID) {
			dot = "●"
		}
		label := n.Label
		if n.Kind == graph.KindExternal {
			label += " (external)"
		}
		pos := listDimStyle.Render(fmt.Sprintf("  (%g, %g)", n.Position.X, n.Position.Y))

		line := marker + dot + " " + label
		if i == m.nodeCursor && m.focus == focusNodes {
			b.WriteString(listSelectedStyle.Render(line) + pos)
		} else {
			b.WriteString(listNormalStyle.Render(line) + pos)
		}
		b.WriteString("\n")
	}

	if id := m.cursorID(); id != "" {
		in, out := m.neighbors(id)
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render("imported by ") + StyleNumber.Render(fmt.Sprint(len(in))) + listDimStyle.Render(" ") + strings.Join(in, ", "))
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render("imports     ") + StyleNumber.Render(fmt.Sprint(len(out))) + listDimStyle.Render(" ") + strings.Join(out, ", "))
	}
	return b.String()
}

// neighbors returns the labels of the visible importers and imports of id.
func (m ExplorerModel) neighbors(id string) (in, out []string) {
	for _, e := range m.state.Edges {
		switch id {
		case e.TargetID:
			if n, ok := m.state.Node(e.SourceID); ok {
				in = append(in, n.Label)
			}
		case e.SourceID:
			if n, ok := m.state.Node(e.TargetID); ok {
				out = append(out, n.Label)
			}
		}
	}
	return in, out
}

func (m ExplorerModel) help() string {
	if m.focus == focusSearch {
		return "type to search  ↑/↓ choose  ⏎ reveal  tab/esc nodes  ctrl+c quit"
	}
	return "↑/↓ move  u importers  d imports  space select  H/J/K/L nudge  / search  q quit"
}
