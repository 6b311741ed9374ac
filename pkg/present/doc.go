// Package present adapts viewer state into records a graph UI can draw.
//
// The viewer engine knows nothing about widgets, connectors or arrow heads.
// This package maps every [viewer.VisibleNode] to a [RenderableNode] and every
// [viewer.VisibleEdge] to a [RenderableEdge]. The JSON encoding of these
// records is the contract browser renderers consume, so tag names follow the
// conventions of node-based editor libraries: `type`, `position`, `data`,
// `sourcePosition`, `targetPosition`, `markerEnd`.
//
// # Widgets
//
// The widget used for a node is chosen once from its kind through
// [WidgetFor]. Internal modules get an expandable widget, external packages a
// plain label:
//
//	w := present.WidgetFor(graph.KindInternal)
//	w.Type()       // "internalModule"
//	w.Expandable() // true
//
// All functions are pure and deterministic: the same [viewer.State] always
// produces the same [Scene].
package present
