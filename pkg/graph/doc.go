// Package graph provides the Graph Document model for module dependency graphs.
//
// This package defines the canonical wire format consumed by the viewer: a
// complete graph of source modules and the import relations between them.
// Documents are produced by [github.com/matzehuels/modgraph/pkg/scan] or by
// any external tool that writes the same JSON shape.
//
// # Core Types
//
//   - [Graph]: the complete graph (title, ordered nodes, ordered edges)
//   - [Node]: a source module ([KindInternal]) or an imported package ([KindExternal])
//   - [Edge]: a directed "source imports target" relation
//
// # Serialization
//
// Documents use a flat node-link JSON format:
//
//	{
//	  "title": "my-app",
//	  "nodes": [{"id": "n1", "node_type": "INTERNAL", "label": "App.tsx",
//	             "path_absolute": "/repo/src/App.tsx", "path_relative": "src/App.tsx"}],
//	  "edges": [{"id": "e1", "source_id": "n1", "target_id": "n2"}]
//	}
//
// Common operations:
//
//	g, _ := graph.ReadGraphFile("graph.json")   // File → Graph
//	graph.WriteGraphFile(g, "graph.json")       // Graph → File
//	data, _ := graph.MarshalGraph(g)            // Graph → []byte
//	parsed, _ := graph.UnmarshalGraph(data)     // []byte → Graph
//
// # Validation
//
// Decoding does not check that edge endpoints reference existing nodes. That
// is the producer's contract; the viewer engine relies on it without checking.
// Loaders that want a report call [Validate].
//
// # Concurrency
//
// Graph values are treated as immutable once loaded. All functions are safe
// for concurrent reads.
package graph
