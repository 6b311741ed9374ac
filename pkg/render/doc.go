// Package render holds output-format helpers shared by the diagram renderers.
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg):
//
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0) // 2x scale
//
// The [nodelink] subpackage draws the visible subgraph of the viewer as a
// Graphviz diagram with nodes pinned at their on-screen positions.
//
// [nodelink]: github.com/matzehuels/modgraph/pkg/render/nodelink
package render
