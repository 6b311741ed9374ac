package cli

import (
	"context"
	stderrors "errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/matzehuels/modgraph/pkg/errors"
)

// viewCommand creates the view command, the interactive terminal explorer.
func (c *CLI) viewCommand() *cobra.Command {
	var reveal []string

	cmd := &cobra.Command{
		Use:   "view <graph.json>",
		Short: "Explore a graph document in the terminal",
		Long: `Explore a graph document interactively. Nothing is shown at first: search for
a module, reveal it, then expand its importers (u) and imports (d) step by step.

Keys:
  /        search           tab   switch between search and nodes
  enter    reveal result    space toggle selection
  u / d    expand up/down   H J K L  nudge the node
  q        quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runView(cmd.Context(), args[0], reveal)
		},
	}

	cmd.Flags().StringSliceVar(&reveal, "reveal", nil, "node(s) to reveal at startup")

	return cmd
}

func (c *CLI) runView(ctx context.Context, path string, reveal []string) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return errors.New(errors.ErrCodeUnsupported, "view needs an interactive terminal; use render or serve instead")
	}

	e, err := c.loadEngine(path)
	if err != nil {
		return err
	}
	for _, ref := range reveal {
		id, err := resolveNode(e, ref)
		if err != nil {
			return err
		}
		if err := e.RevealNode(id); err != nil {
			return err
		}
	}

	m := NewExplorerModel(e)
	if len(reveal) > 0 {
		m = m.toggleFocus()
	}

	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if stderrors.Is(err, tea.ErrProgramKilled) {
		return ctx.Err()
	}
	return err
}
