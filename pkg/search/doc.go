// Package search implements the free-text node lookup used to pick the first
// node to reveal.
//
// Matching is a case-insensitive substring test against [graph.Node.SearchText]:
// the relative path of internal modules and the label of external packages.
// Results keep document order.
package search
