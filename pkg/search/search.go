package search

import (
	"strings"

	"github.com/matzehuels/modgraph/pkg/graph"
)

// Find returns every node whose search text contains query, ignoring case.
// An empty or all-whitespace query matches nothing.
func Find(nodes []graph.Node, query string) []graph.Node {
	return FindN(nodes, query, 0)
}

// FindN is like Find but stops after limit matches. A limit <= 0 means no limit.
func FindN(nodes []graph.Node, query string, limit int) []graph.Node {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var out []graph.Node
	for _, n := range nodes {
		if !strings.Contains(strings.ToLower(n.SearchText()), q) {
			continue
		}
		out = append(out, n)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
