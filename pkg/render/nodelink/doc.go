// Package nodelink renders dependency edges as node-link diagrams with
// Graphviz, in process.
//
// It is the fallback renderer when the d2 binary is not installed, and the
// renderer used by the HTTP API, which cannot rely on external tools.
//
//	dot := nodelink.ToDOT(res.Edges, nodelink.Options{Root: "app"})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// The generated DOT uses top-to-bottom layout (rankdir=TB) with rounded
// box nodes. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
