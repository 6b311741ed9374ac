// Package index provides lookup structures over a complete dependency graph.
//
// An [Index] is built once per loaded document and answers the questions the
// viewer engine asks on every user action without rescanning the edge list:
// which node has this id, which edges point at a node, which edges leave it.
// [Set] is the id set used to track what is currently visible.
//
// Both structures are not safe for concurrent mutation. An Index is never
// mutated after [Build] returns, so concurrent reads are fine.
package index

import (
	"slices"

	"github.com/matzehuels/modgraph/pkg/graph"
)

// Index holds by-id maps and adjacency lists for one [graph.Graph].
// Adjacency lists hold positions into the graph's edge slice, in document order.
type Index struct {
	g        graph.Graph
	nodes    map[string]int   // node ID -> position in g.Nodes
	edges    map[string]int   // edge ID -> position in g.Edges
	incoming map[string][]int // node ID -> edges whose target is the node
	outgoing map[string][]int // node ID -> edges whose source is the node
}

// Build indexes g in O(N + E).
// When ids repeat, the first occurrence wins in the by-id maps; every edge
// still appears in the adjacency lists.
func Build(g graph.Graph) *Index {
	ix := &Index{
		g:        g,
		nodes:    make(map[string]int, len(g.Nodes)),
		edges:    make(map[string]int, len(g.Edges)),
		incoming: make(map[string][]int),
		outgoing: make(map[string][]int),
	}
	for i, n := range g.Nodes {
		if _, dup := ix.nodes[n.ID]; !dup {
			ix.nodes[n.ID] = i
		}
	}
	for i, e := range g.Edges {
		if _, dup := ix.edges[e.ID]; !dup {
			ix.edges[e.ID] = i
		}
		ix.outgoing[e.SourceID] = append(ix.outgoing[e.SourceID], i)
		ix.incoming[e.TargetID] = append(ix.incoming[e.TargetID], i)
	}
	return ix
}

// Graph returns the indexed graph.
func (ix *Index) Graph() graph.Graph { return ix.g }

// Node returns the node with the given id.
func (ix *Index) Node(id string) (graph.Node, bool) {
	i, ok := ix.nodes[id]
	if !ok {
		return graph.Node{}, false
	}
	return ix.g.Nodes[i], true
}

// HasNode reports whether a node with the given id exists.
func (ix *Index) HasNode(id string) bool {
	_, ok := ix.nodes[id]
	return ok
}

// Edge returns the edge with the given id.
func (ix *Index) Edge(id string) (graph.Edge, bool) {
	i, ok := ix.edges[id]
	if !ok {
		return graph.Edge{}, false
	}
	return ix.g.Edges[i], true
}

// HasEdge reports whether an edge with the given id exists.
func (ix *Index) HasEdge(id string) bool {
	_, ok := ix.edges[id]
	return ok
}

// EdgeAt returns the edge at position i of the document's edge list.
func (ix *Index) EdgeAt(i int) graph.Edge { return ix.g.Edges[i] }

// Incoming returns the positions of edges targeting id (its upstream side).
// The returned slice must not be modified.
func (ix *Index) Incoming(id string) []int { return ix.incoming[id] }

// Outgoing returns the positions of edges leaving id (its downstream side).
// The returned slice must not be modified.
func (ix *Index) Outgoing(id string) []int { return ix.outgoing[id] }

// Incident returns the positions of all edges touching any of ids, sorted in
// document order without duplicates. Self-loops and edges between two of the
// given ids appear once.
func (ix *Index) Incident(ids ...string) []int {
	var out []int
	for _, id := range ids {
		out = append(out, ix.incoming[id]...)
		out = append(out, ix.outgoing[id]...)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// NodeCount returns the number of distinct node ids.
func (ix *Index) NodeCount() int { return len(ix.nodes) }

// EdgeCount returns the number of distinct edge ids.
func (ix *Index) EdgeCount() int { return len(ix.edges) }
