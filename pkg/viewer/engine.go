package viewer

import (
	"github.com/matzehuels/modgraph/pkg/errors"
	"github.com/matzehuels/modgraph/pkg/graph"
	"github.com/matzehuels/modgraph/pkg/index"
	"github.com/matzehuels/modgraph/pkg/observability"
)

// Operation names reported to [observability.EngineHooks].
const (
	OpReveal           = "reveal"
	OpExpandUpstream   = "expand-upstream"
	OpExpandDownstream = "expand-downstream"
	OpReposition       = "reposition"
	OpSelect           = "select"
)

// Option configures an Engine.
type Option func(*options)

type options struct {
	spacingX    float64
	spacingY    float64
	defaultPos  Position
	keepVisible bool
}

// WithSpacing overrides the horizontal and vertical distances used to place
// nodes added by an expansion.
func WithSpacing(x, y float64) Option {
	return func(o *options) {
		o.spacingX = x
		o.spacingY = y
	}
}

// WithDefaultPosition overrides where [Engine.RevealNode] places nodes.
func WithDefaultPosition(p Position) Option {
	return func(o *options) { o.defaultPos = p }
}

// WithKeepVisibleOnLoad makes [Engine.Load] reconcile the visible subgraph
// against the new document instead of clearing it. Used when the same
// project is reloaded after a rescan so the user's layout survives.
func WithKeepVisibleOnLoad() Option {
	return func(o *options) { o.keepVisible = true }
}

// Engine holds the complete graph and the visible subgraph.
// The zero value is not usable; use New.
type Engine struct {
	opts options
	ix   *index.Index

	nodes   []VisibleNode
	nodeAt  map[string]int // node ID -> position in nodes
	edges   []VisibleEdge
	edgeSet index.Set

	selected string

	observers []observer
	nextObsID int
}

type observer struct {
	id int
	fn func(State)
}

// New creates an engine with an empty complete graph.
// Until [Engine.Load] is called every reveal or expansion fails with
// [errors.ErrCodeNotFound].
func New(opts ...Option) *Engine {
	o := options{
		spacingX:   DefaultSpacingX,
		spacingY:   DefaultSpacingY,
		defaultPos: DefaultPosition,
	}
	for _, opt := range opts {
		opt(&o)
	}
	e := &Engine{opts: o, ix: index.Build(graph.Graph{})}
	e.resetVisible()
	return e
}

// =============================================================================
// Loading
// =============================================================================

// Load replaces the complete graph. The previous document is discarded
// wholesale and adjacency lists are rebuilt once here, not per operation.
//
// By default the visible subgraph and the selection are cleared. With
// [WithKeepVisibleOnLoad], visible nodes whose ids still exist are kept at
// their positions (labels refresh), surviving visible edges are kept when both
// endpoints survived, every other edge between surviving nodes is added, and
// everything else is dropped.
func (e *Engine) Load(g graph.Graph) {
	prevNodes, prevEdges := e.nodes, e.edges
	e.ix = index.Build(g)
	e.resetVisible()

	if e.opts.keepVisible {
		e.reconcile(prevNodes, prevEdges)
	} else {
		e.selected = ""
	}

	observability.Engine().OnLoad(g.Title, len(g.Nodes), len(g.Edges), len(e.nodes))
	e.notify()
}

func (e *Engine) resetVisible() {
	e.nodes = nil
	e.nodeAt = make(map[string]int)
	e.edges = nil
	e.edgeSet = index.NewSet()
}

func (e *Engine) reconcile(prevNodes []VisibleNode, prevEdges []VisibleEdge) {
	kept := make([]string, 0, len(prevNodes))
	for _, vn := range prevNodes {
		n, ok := e.ix.Node(vn.ID)
		if !ok {
			continue
		}
		e.appendNode(n, vn.Position)
		kept = append(kept, n.ID)
	}
	for _, ve := range prevEdges {
		edge, ok := e.ix.Edge(ve.ID)
		if !ok || !e.IsVisible(edge.SourceID) || !e.IsVisible(edge.TargetID) {
			continue
		}
		e.appendEdge(edge)
	}
	e.closeEdges(kept...)

	if e.selected != "" && !e.ix.HasNode(e.selected) {
		e.selected = ""
	}
}

// =============================================================================
// Mutations
// =============================================================================

// RevealNode makes the node with the given id visible at the default
// position, together with every edge connecting it to nodes that are
// already visible. Revealing a visible node is a no-op.
//
// Returns [errors.ErrCodeNotFound] when the id is not in the complete graph.
func (e *Engine) RevealNode(id string) error {
	n, ok := e.ix.Node(id)
	if !ok {
		err := errors.NotFound("node %q is not in the graph", id)
		observability.Engine().OnOperation(OpReveal, id, 0, 0, err)
		return err
	}
	if e.IsVisible(id) {
		observability.Engine().OnOperation(OpReveal, id, 0, 0, nil)
		return nil
	}

	e.appendNode(n, e.opts.defaultPos)
	added := e.closeEdges(id)

	observability.Engine().OnOperation(OpReveal, id, 1, added, nil)
	e.notify()
	return nil
}

// RepositionNode moves a visible node. Nothing else changes; the call is O(1)
// so renderers may invoke it on every pointer-move tick of a drag.
//
// Returns [errors.ErrCodeNotFound] when the node is not visible.
func (e *Engine) RepositionNode(id string, p Position) error {
	i, ok := e.nodeAt[id]
	if !ok {
		err := errors.NotFound("node %q is not visible", id)
		observability.Engine().OnOperation(OpReposition, id, 0, 0, err)
		return err
	}
	if e.nodes[i].Position == p {
		return nil
	}

	e.nodes[i].Position = p

	observability.Engine().OnOperation(OpReposition, id, 0, 0, nil)
	e.notify()
	return nil
}

// SetSelectedNode sets the selected node; an empty id clears the selection.
// The id is not checked against the visible set. Toggling (selecting the
// selected node again to clear it) is the caller's decision.
func (e *Engine) SetSelectedNode(id string) {
	if e.selected == id {
		return
	}
	e.selected = id
	observability.Engine().OnOperation(OpSelect, id, 0, 0, nil)
	e.notify()
}

// =============================================================================
// Queries
// =============================================================================

// Graph returns the complete graph.
func (e *Engine) Graph() graph.Graph { return e.ix.Graph() }

// Index returns the lookup index of the complete graph.
func (e *Engine) Index() *index.Index { return e.ix }

// IsVisible reports whether the node with the given id is visible.
func (e *Engine) IsVisible(id string) bool {
	_, ok := e.nodeAt[id]
	return ok
}

// Node returns the visible node with the given id.
func (e *Engine) Node(id string) (VisibleNode, bool) {
	i, ok := e.nodeAt[id]
	if !ok {
		return VisibleNode{}, false
	}
	return e.nodes[i], true
}

// SelectedNodeID returns the selected id, or "" when nothing is selected.
func (e *Engine) SelectedNodeID() string { return e.selected }

// Snapshot returns a copy of the visible subgraph.
func (e *Engine) Snapshot() State {
	nodes := make([]VisibleNode, len(e.nodes))
	copy(nodes, e.nodes)
	edges := make([]VisibleEdge, len(e.edges))
	copy(edges, e.edges)
	return State{
		Title:          e.ix.Graph().Title,
		Nodes:          nodes,
		Edges:          edges,
		SelectedNodeID: e.selected,
	}
}

// Subscribe registers fn to be called with a fresh snapshot after every call
// that changes state. Calls that change nothing do not notify. fn runs
// synchronously inside the mutating call and must not call back into the
// engine's mutating methods. The returned function unregisters fn.
func (e *Engine) Subscribe(fn func(State)) (cancel func()) {
	id := e.nextObsID
	e.nextObsID++
	e.observers = append(e.observers, observer{id: id, fn: fn})
	return func() {
		for i, o := range e.observers {
			if o.id == id {
				e.observers = append(e.observers[:i:i], e.observers[i+1:]...)
				return
			}
		}
	}
}

// =============================================================================
// Internal Helpers
// =============================================================================

func (e *Engine) appendNode(n graph.Node, p Position) {
	e.nodeAt[n.ID] = len(e.nodes)
	e.nodes = append(e.nodes, newVisibleNode(n, p))
}

func (e *Engine) appendEdge(edge graph.Edge) {
	e.edgeSet.Add(edge.ID)
	e.edges = append(e.edges, newVisibleEdge(edge))
}

// closeEdges adds, in document order, every edge touching one of ids that is
// not visible yet and whose endpoints are both visible. Edges between visible
// nodes outside ids are left alone. Returns the number of edges added.
func (e *Engine) closeEdges(ids ...string) int {
	added := 0
	for _, i := range e.ix.Incident(ids...) {
		edge := e.ix.EdgeAt(i)
		if e.edgeSet.Has(edge.ID) {
			continue
		}
		if !e.IsVisible(edge.SourceID) || !e.IsVisible(edge.TargetID) {
			continue
		}
		e.appendEdge(edge)
		added++
	}
	return added
}

func (e *Engine) notify() {
	if len(e.observers) == 0 {
		return
	}
	s := e.Snapshot()
	for _, o := range e.observers {
		o.fn(s)
	}
}
