// Package nodelink renders the visible subgraph as a node-link diagram.
//
// # Usage
//
// Convert a viewer snapshot to DOT, then render to SVG:
//
//	dot := nodelink.ToDOT(engine.Snapshot(), nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)
//
// # Layout
//
// No layout is computed here. Every node carries a pinned `pos` attribute
// taken from its viewer position, and [RenderSVG] uses the neato engine,
// which honors pinned positions. The diagram therefore matches what the user
// arranged in the viewer, including manual drags.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
