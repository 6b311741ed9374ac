// Package pkg provides the libraries behind modgraph, an incremental explorer
// for module dependency graphs.
//
// # Overview
//
// A project's complete module graph is usually too large to look at. modgraph
// keeps the complete graph in memory and shows only a visible subgraph that
// the user grows one step at a time: reveal a module found by search, then
// expand the modules that import it (upstream) or that it imports
// (downstream). Every revealed node keeps the position it was given until the
// user moves it.
//
// # Architecture
//
// The data flow:
//
//	TypeScript sources
//	         ↓
//	    [scan] package (walk, parse imports, resolve, build document)
//	         ↓
//	    graph.json ([graph] package)
//	         ↓
//	    [viewer] package (complete graph + visible subgraph)
//	         ↓
//	    [present] / [render/nodelink] / [server] (scene, DOT/SVG, HTTP + WebSocket)
//
// # Main Packages
//
// [graph] - The graph document: nodes, edges, JSON encoding and validation.
//
// [index] - Id lookup and incoming/outgoing adjacency over a document.
//
// [viewer] - The exploration engine. Load, RevealNode, ExpandUpstream,
// ExpandDownstream, RepositionNode and SetSelectedNode are its only
// mutations; Snapshot and Subscribe expose the visible subgraph.
//
// [search] - Case-insensitive substring search over paths and package names.
//
// [present] - Adapts engine snapshots to renderer records (widget type,
// connector sides, edge style).
//
// [render/nodelink] - Graphviz diagrams of a snapshot with pinned positions.
//
// [scan] - Generates graph documents from a source tree using tree-sitter.
//
// [server] - One shared session over HTTP with live WebSocket updates and
// optional reload of the document on change.
//
// ## Infrastructure
//
// [cache] - Import cache backends (file, redis, null) keyed by file content.
//
// [errors] - Coded errors shared by all packages.
//
// [observability] - Hook interfaces for engine, scan and cache events.
//
// [buildinfo] - Version information injected at build time.
//
// # Quick Start
//
//	g, _ := graph.ReadGraphFile("graph.json")
//	e := viewer.New()
//	e.Load(g)
//
//	hits := search.Find(g.Nodes, "button")
//	_ = e.RevealNode(hits[0].ID)
//	_ = e.ExpandUpstream(hits[0].ID)
//
//	dot := nodelink.ToDOT(e.Snapshot(), nodelink.Options{})
//
// [graph]: https://pkg.go.dev/github.com/matzehuels/modgraph/pkg/graph
// [index]: https://pkg.go.dev/github.com/matzehuels/modgraph/pkg/index
// [viewer]: https://pkg.go.dev/github.com/matzehuels/modgraph/pkg/viewer
// [search]: https://pkg.go.dev/github.com/matzehuels/modgraph/pkg/search
// [present]: https://pkg.go.dev/github.com/matzehuels/modgraph/pkg/present
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/modgraph/pkg/render/nodelink
// [scan]: https://pkg.go.dev/github.com/matzehuels/modgraph/pkg/scan
// [server]: https://pkg.go.dev/github.com/matzehuels/modgraph/pkg/server
// [cache]: https://pkg.go.dev/github.com/matzehuels/modgraph/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/modgraph/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/modgraph/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/modgraph/pkg/buildinfo
package pkg
