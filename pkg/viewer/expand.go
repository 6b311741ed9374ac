package viewer

import (
	"cmp"
	"slices"

	"github.com/matzehuels/modgraph/pkg/errors"
	"github.com/matzehuels/modgraph/pkg/graph"
	"github.com/matzehuels/modgraph/pkg/index"
	"github.com/matzehuels/modgraph/pkg/observability"
)

// direction selects which side of a node an expansion reveals.
type direction int

const (
	upstream   direction = iota // modules importing the node, placed to its left
	downstream                  // modules the node imports, placed to its right
)

func (d direction) op() string {
	if d == upstream {
		return OpExpandUpstream
	}
	return OpExpandDownstream
}

// ExpandUpstream reveals every module that imports the visible node id.
//
// New nodes are sorted by display label (ties by id) and stacked in a column
// [DefaultSpacingX] to the left of id, starting at id's current y and moving
// down by [DefaultSpacingY] per node. Then every hidden edge between two
// visible nodes that touches id or one of the new nodes is added, in document
// order. Nodes that were already visible keep their positions.
//
// Returns [errors.ErrCodeNotFound] when id is not visible.
func (e *Engine) ExpandUpstream(id string) error {
	return e.expand(id, upstream)
}

// ExpandDownstream reveals every module the visible node id imports, placed
// in a column to its right. Otherwise it behaves like [Engine.ExpandUpstream].
func (e *Engine) ExpandDownstream(id string) error {
	return e.expand(id, downstream)
}

func (e *Engine) expand(id string, dir direction) error {
	anchor, ok := e.Node(id)
	if !ok {
		err := errors.NotFound("node %q is not visible", id)
		observability.Engine().OnOperation(dir.op(), id, 0, 0, err)
		return err
	}

	fresh := e.hiddenNeighbors(id, dir)
	slices.SortFunc(fresh, byLabel)

	dx := e.opts.spacingX
	if dir == upstream {
		dx = -dx
	}

	affected := make([]string, 0, len(fresh)+1)
	affected = append(affected, id)
	for i, n := range fresh {
		e.appendNode(n, anchor.Position.Add(dx, float64(i)*e.opts.spacingY))
		affected = append(affected, n.ID)
	}
	added := e.closeEdges(affected...)

	observability.Engine().OnOperation(dir.op(), id, len(fresh), added, nil)
	if len(fresh) > 0 || added > 0 {
		e.notify()
	}
	return nil
}

// hiddenNeighbors returns the distinct, not yet visible neighbors of id on
// one side. Endpoints missing from the document are skipped: a dangling edge
// is the producer's contract violation and must not invent a node.
func (e *Engine) hiddenNeighbors(id string, dir direction) []graph.Node {
	adj := e.ix.Incoming(id)
	if dir == downstream {
		adj = e.ix.Outgoing(id)
	}

	seen := index.NewSet()
	var out []graph.Node
	for _, i := range adj {
		edge := e.ix.EdgeAt(i)
		nid := edge.SourceID
		if dir == downstream {
			nid = edge.TargetID
		}
		if e.IsVisible(nid) || !seen.Add(nid) {
			continue
		}
		if n, ok := e.ix.Node(nid); ok {
			out = append(out, n)
		}
	}
	return out
}

func byLabel(a, b graph.Node) int {
	if c := cmp.Compare(a.DisplayLabel(), b.DisplayLabel()); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}
