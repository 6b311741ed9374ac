package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/modgraph/pkg/graph"
	"github.com/matzehuels/modgraph/pkg/search"
)

// searchCommand creates the search command, which lists the nodes whose path
// (or package name, for external nodes) contains a query.
func (c *CLI) searchCommand() *cobra.Command {
	var limit int
	var idsOnly bool

	cmd := &cobra.Command{
		Use:   "search <graph.json> <query>",
		Short: "Find modules by path",
		Long: `Find modules whose relative path contains the query, ignoring case.
External packages match on their name. The printed ids can be passed to
render --reveal and --upstream.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := c.readGraph(args[0])
			if err != nil {
				return err
			}
			matches := search.FindN(g.Nodes, args[1], limit)
			if len(matches) == 0 {
				printInfo("No modules match %q", args[1])
				return nil
			}
			writeMatches(cmd.OutOrStdout(), matches, args[1], idsOnly)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of results (0 = all)")
	cmd.Flags().BoolVar(&idsOnly, "ids", false, "print node ids only")

	return cmd
}

func writeMatches(w io.Writer, nodes []graph.Node, query string, idsOnly bool) {
	for _, n := range nodes {
		if idsOnly {
			fmt.Fprintln(w, n.ID)
			continue
		}
		kind := ""
		if n.IsExternal() {
			kind = StyleDim.Render(" (external)")
		}
		fmt.Fprintf(w, "%s%s  %s\n", highlightMatch(n.SearchText(), query), kind, StyleDim.Render(n.ID))
	}
}

// highlightMatch renders the first case-insensitive occurrence of query in s
// with StyleHighlight.
func highlightMatch(s, query string) string {
	q := strings.ToLower(strings.TrimSpace(query))
	lower := strings.ToLower(s)
	i := strings.Index(lower, q)
	if q == "" || i < 0 || len(lower) != len(s) {
		return StyleValue.Render(s)
	}
	j := i + len(q)
	return StyleValue.Render(s[:i]) + StyleHighlight.Render(s[i:j]) + StyleValue.Render(s[j:])
}
