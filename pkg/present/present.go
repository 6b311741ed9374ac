package present

import (
	"github.com/matzehuels/modgraph/pkg/graph"
	"github.com/matzehuels/modgraph/pkg/viewer"
)

// Widget and edge type names understood by the browser renderer.
const (
	TypeInternalModule = "internalModule"
	TypeExternalModule = "externalModule"
	TypeSmoothStep     = "smoothstep"
	MarkerArrowClosed  = "arrowclosed"
)

// Side is the side of a node a connector is attached to.
type Side string

// Connector sides.
const (
	Left   Side = "left"
	Right  Side = "right"
	Top    Side = "top"
	Bottom Side = "bottom"
)

// =============================================================================
// Widgets
// =============================================================================

// Renderable is the drawing capability of a node kind.
type Renderable interface {
	// Type is the widget name the renderer dispatches on.
	Type() string
	// Expandable reports whether the widget offers expand actions.
	Expandable() bool
	// Connectors returns where incoming and outgoing edges attach.
	Connectors() (target, source Side)
}

type internalModule struct{}

func (internalModule) Type() string                      { return TypeInternalModule }
func (internalModule) Expandable() bool                  { return true }
func (internalModule) Connectors() (target, source Side) { return Left, Right }

type externalModule struct{}

func (externalModule) Type() string                      { return TypeExternalModule }
func (externalModule) Expandable() bool                  { return false }
func (externalModule) Connectors() (target, source Side) { return Left, Right }

// WidgetFor returns the widget for a node kind. Unknown kinds render as
// internal modules.
func WidgetFor(k graph.Kind) Renderable {
	if k == graph.KindExternal {
		return externalModule{}
	}
	return internalModule{}
}

// =============================================================================
// Records
// =============================================================================

// NodeData is the payload a widget draws.
type NodeData struct {
	Label      string `json:"label"`
	Kind       string `json:"kind"`
	Expandable bool   `json:"expandable"`
}

// RenderableNode is a visible node ready for drawing.
type RenderableNode struct {
	ID             string          `json:"id"`
	Type           string          `json:"type"`
	Position       viewer.Position `json:"position"`
	Data           NodeData        `json:"data"`
	SourcePosition Side            `json:"sourcePosition"`
	TargetPosition Side            `json:"targetPosition"`
	Selected       bool            `json:"selected"`
}

// RenderableEdge is a visible edge ready for drawing.
type RenderableEdge struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Source    string `json:"source"`
	Target    string `json:"target"`
	MarkerEnd string `json:"markerEnd"`
}

// Scene is everything a renderer needs for one frame.
type Scene struct {
	Title          string           `json:"title"`
	Nodes          []RenderableNode `json:"nodes"`
	Edges          []RenderableEdge `json:"edges"`
	SelectedNodeID string           `json:"selectedNodeId,omitempty"`
}

// Node converts a visible node.
func Node(n viewer.VisibleNode, selected bool) RenderableNode {
	w := WidgetFor(n.Kind)
	target, source := w.Connectors()
	return RenderableNode{
		ID:       n.ID,
		Type:     w.Type(),
		Position: n.Position,
		Data: NodeData{
			Label:      n.Label,
			Kind:       string(n.Kind),
			Expandable: w.Expandable(),
		},
		SourcePosition: source,
		TargetPosition: target,
		Selected:       selected,
	}
}

// Edge converts a visible edge.
func Edge(e viewer.VisibleEdge) RenderableEdge {
	return RenderableEdge{
		ID:        e.ID,
		Type:      TypeSmoothStep,
		Source:    e.SourceID,
		Target:    e.TargetID,
		MarkerEnd: MarkerArrowClosed,
	}
}

// FromState converts a whole snapshot, preserving node and edge order.
// Slices are never nil so they encode as JSON arrays.
func FromState(s viewer.State) Scene {
	scene := Scene{
		Title:          s.Title,
		Nodes:          make([]RenderableNode, 0, len(s.Nodes)),
		Edges:          make([]RenderableEdge, 0, len(s.Edges)),
		SelectedNodeID: s.SelectedNodeID,
	}
	for _, n := range s.Nodes {
		scene.Nodes = append(scene.Nodes, Node(n, s.IsSelected(n.ID)))
	}
	for _, e := range s.Edges {
		scene.Edges = append(scene.Edges, Edge(e))
	}
	return scene
}
