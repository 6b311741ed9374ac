package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/modgraph/pkg/errors"
	"github.com/matzehuels/modgraph/pkg/render/nodelink"
	"github.com/matzehuels/modgraph/pkg/viewer"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
	formatPDF = "pdf"
	formatPNG = "png"

	defaultPNGScale = 2.0
)

// validFormats lists the supported output formats.
var validFormats = []string{formatDOT, formatSVG, formatPDF, formatPNG}

// renderOpts holds the command-line flags for the render command.
// Node references are ids or relative paths (package names for externals).
type renderOpts struct {
	reveal     []string // nodes revealed first, in order
	upstream   []string // nodes whose importers are revealed
	downstream []string // nodes whose imports are revealed
	selected   string   // node to highlight
	format     string   // dot, svg, pdf or png
	output     string   // output path; empty writes dot/svg to stdout
	detailed   bool     // add kind and id to node labels
	scale      float64  // PNG scale factor
}

// renderCommand creates the render command, which replays a sequence of
// explorer operations on a document and renders the resulting view.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{format: formatSVG, scale: defaultPNGScale}

	cmd := &cobra.Command{
		Use:   "render <graph.json>",
		Short: "Render a revealed part of a graph document",
		Long: `Reveal nodes of a graph document the way the explorer would and render
the result with Graphviz, keeping the explorer's node positions.

Operations run in flag order: every --reveal, then every --upstream, then
every --downstream. Nodes may be named by id or relative path.`,
		Example: `  modgraph render graph.json --reveal src/app.ts --upstream src/app.ts -o app.svg
  modgraph render graph.json --reveal src/db.ts --downstream src/db.ts -f dot`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(opts.format); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.reveal, "reveal", nil, "node(s) to reveal")
	cmd.Flags().StringSliceVar(&opts.upstream, "upstream", nil, "node(s) whose importers to reveal")
	cmd.Flags().StringSliceVar(&opts.downstream, "downstream", nil, "node(s) whose imports to reveal")
	cmd.Flags().StringVar(&opts.selected, "select", "", "node to highlight")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: "+strings.Join(validFormats, ", "))
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout for dot and svg)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show node kind and id")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")

	return cmd
}

// validateFormat checks that format is one of validFormats.
func validateFormat(format string) error {
	if !slices.Contains(validFormats, format) {
		return errors.New(errors.ErrCodeInvalidInput, "invalid format %q (must be one of %s)", format, strings.Join(validFormats, ", "))
	}
	return nil
}

func (c *CLI) runRender(ctx context.Context, stdout io.Writer, path string, opts renderOpts) error {
	e, err := c.loadEngine(path)
	if err != nil {
		return err
	}
	if err := replay(e, opts); err != nil {
		return err
	}

	state := e.Snapshot()
	if len(state.Nodes) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "nothing to render: pass --reveal")
	}
	c.Logger.Debug("rendering", "nodes", len(state.Nodes), "edges", len(state.Edges), "format", opts.format)

	data, err := renderState(ctx, state, opts)
	if err != nil {
		return err
	}

	if opts.output == "" {
		if opts.format == formatPDF || opts.format == formatPNG {
			return errors.New(errors.ErrCodeInvalidInput, "%s output needs --output", opts.format)
		}
		_, err := stdout.Write(data)
		return err
	}

	if dir := filepath.Dir(opts.output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	printSuccess("Rendered %d nodes, %d edges", len(state.Nodes), len(state.Edges))
	printFile(opts.output)
	return nil
}

// replay applies the render flags to e in order.
func replay(e *viewer.Engine, opts renderOpts) error {
	steps := []struct {
		refs []string
		op   func(*viewer.Engine, string) error
	}{
		{opts.reveal, (*viewer.Engine).RevealNode},
		{opts.upstream, (*viewer.Engine).ExpandUpstream},
		{opts.downstream, (*viewer.Engine).ExpandDownstream},
	}
	for _, step := range steps {
		for _, ref := range step.refs {
			id, err := resolveNode(e, ref)
			if err != nil {
				return err
			}
			if err := step.op(e, id); err != nil {
				return err
			}
		}
	}

	if opts.selected != "" {
		id, err := resolveNode(e, opts.selected)
		if err != nil {
			return err
		}
		e.SetSelectedNode(id)
	}
	return nil
}

func renderState(ctx context.Context, state viewer.State, opts renderOpts) ([]byte, error) {
	dot := nodelink.ToDOT(state, nodelink.Options{Detailed: opts.detailed})
	switch opts.format {
	case formatDOT:
		return []byte(dot), nil
	case formatPDF:
		return nodelink.RenderPDF(ctx, dot)
	case formatPNG:
		return nodelink.RenderPNG(ctx, dot, opts.scale)
	default:
		return nodelink.RenderSVG(ctx, dot)
	}
}
