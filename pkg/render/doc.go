// Package render holds the format conversion shared by depgraph's renderers.
//
// # Overview
//
// Dependency edges leave the analysis core as plain text ([d2]) and are
// turned into images either by the external d2 binary or in process by
// Graphviz ([nodelink]). Both produce SVG; [ToPDF] and [ToPNG] convert that
// SVG further using the external rsvg-convert tool (from librsvg).
//
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	png, err := render.ToPNG(svg, 2.0) // 2x scale
//
// [d2]: github.com/matzehuels/depgraph/pkg/render/d2
// [nodelink]: github.com/matzehuels/depgraph/pkg/render/nodelink
package render
