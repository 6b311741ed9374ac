package viewer

import (
	"github.com/matzehuels/modgraph/pkg/graph"
)

// Layout defaults.
const (
	// DefaultSpacingX is the horizontal distance between an expanded node and
	// the neighbors an expansion places next to it.
	DefaultSpacingX = 300.0

	// DefaultSpacingY is the vertical distance between neighbors placed by one
	// expansion.
	DefaultSpacingY = 100.0
)

// DefaultPosition is where a node revealed through search is placed.
var DefaultPosition = Position{X: 20, Y: 20}

// Position is a point in the renderer's coordinate space.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p shifted by dx, dy.
func (p Position) Add(dx, dy float64) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// VisibleNode is a node of the complete graph that has been revealed.
type VisibleNode struct {
	ID       string     `json:"id"`
	Kind     graph.Kind `json:"kind"`
	Label    string     `json:"label"`
	Position Position   `json:"position"`
}

// VisibleEdge is an edge of the complete graph whose endpoints are both visible.
type VisibleEdge struct {
	ID       string `json:"id"`
	SourceID string `json:"source_id"`
	TargetID string `json:"target_id"`
}

// State is a snapshot of the visible subgraph.
// Slices are owned by the snapshot; later engine calls never modify them.
type State struct {
	Title          string        `json:"title"`
	Nodes          []VisibleNode `json:"nodes"`
	Edges          []VisibleEdge `json:"edges"`
	SelectedNodeID string        `json:"selected_node_id,omitempty"`
}

// Node returns the visible node with the given id.
func (s State) Node(id string) (VisibleNode, bool) {
	for _, n := range s.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return VisibleNode{}, false
}

// IsSelected reports whether id is the selected node.
func (s State) IsSelected(id string) bool {
	return id != "" && s.SelectedNodeID == id
}

func newVisibleNode(n graph.Node, p Position) VisibleNode {
	return VisibleNode{
		ID:       n.ID,
		Kind:     n.Kind,
		Label:    n.DisplayLabel(),
		Position: p,
	}
}

func newVisibleEdge(e graph.Edge) VisibleEdge {
	return VisibleEdge{ID: e.ID, SourceID: e.SourceID, TargetID: e.TargetID}
}
