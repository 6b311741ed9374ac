package graph

import (
	stderrors "errors"

	"github.com/matzehuels/modgraph/pkg/errors"
)

// Validate reports contract violations in a document: empty or duplicate ids,
// unknown node kinds and edges whose endpoints are not nodes of the graph.
// All problems are returned joined; nil means the document is well formed.
//
// The viewer never calls Validate itself. Loaders decide whether a report is
// fatal (the CLI logs it as a warning and loads anyway).
func Validate(g Graph) error {
	var errs []error

	nodes := make(map[string]struct{}, len(g.Nodes))
	for i, n := range g.Nodes {
		if n.ID == "" {
			errs = append(errs, errors.New(errors.ErrCodeInvalidFormat, "node %d has an empty id", i))
			continue
		}
		if _, dup := nodes[n.ID]; dup {
			errs = append(errs, errors.New(errors.ErrCodeInvalidFormat, "duplicate node id %q", n.ID))
		}
		nodes[n.ID] = struct{}{}
		if n.Kind != "" && !n.Kind.Valid() {
			errs = append(errs, errors.New(errors.ErrCodeInvalidFormat, "node %q has unknown kind %q", n.ID, n.Kind))
		}
	}

	edges := make(map[string]struct{}, len(g.Edges))
	for i, e := range g.Edges {
		if e.ID == "" {
			errs = append(errs, errors.New(errors.ErrCodeInvalidFormat, "edge %d has an empty id", i))
		} else if _, dup := edges[e.ID]; dup {
			errs = append(errs, errors.New(errors.ErrCodeInvalidFormat, "duplicate edge id %q", e.ID))
		}
		edges[e.ID] = struct{}{}
		if _, ok := nodes[e.SourceID]; !ok {
			errs = append(errs, errors.New(errors.ErrCodeInvalidFormat, "edge %q: unknown source %q", e.ID, e.SourceID))
		}
		if _, ok := nodes[e.TargetID]; !ok {
			errs = append(errs, errors.New(errors.ErrCodeInvalidFormat, "edge %q: unknown target %q", e.ID, e.TargetID))
		}
	}

	return stderrors.Join(errs...)
}
