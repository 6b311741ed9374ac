// Package viewer implements the visibility-state engine of the module graph viewer.
//
// An [Engine] owns two graphs:
//
//   - the complete graph: the loaded [graph.Graph], immutable until the next
//     [Engine.Load];
//   - the visible subgraph: the nodes and edges the user has revealed so far,
//     with their positions.
//
// The user grows the visible subgraph one action at a time: [Engine.RevealNode]
// adds a node found through search, [Engine.ExpandUpstream] adds the modules
// that import a visible node, [Engine.ExpandDownstream] adds what it imports.
// [Engine.RepositionNode] records drags and [Engine.SetSelectedNode] tracks the
// single selected node.
//
// # Invariants
//
// After every operation:
//
//   - every visible node and edge exists in the complete graph;
//   - an edge is visible only if both of its endpoints are visible;
//   - no id appears twice among visible nodes or among visible edges;
//   - revealing an already visible node changes nothing;
//   - a visible node keeps its position until it is repositioned or a load
//     discards it.
//
// Operations either apply fully or return an error and change nothing. The
// only error is [errors.ErrCodeNotFound].
//
// # Observing Changes
//
// Renderers call [Engine.Snapshot] or register with [Engine.Subscribe]; every
// call that changes state notifies subscribers with a fresh [State]. Use
// [github.com/matzehuels/modgraph/pkg/present] to turn a State into records a
// UI can draw.
//
// # Concurrency
//
// An Engine is a single-writer object and is not safe for concurrent use.
// Owners that serve several goroutines (such as the HTTP server) serialize
// every call, including reloads, through one lock.
package viewer
