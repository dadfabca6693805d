// Package render converts rendered diagrams between output formats.
//
// Diagrams are produced as SVG (see [supportgraph]). [ToPDF] and [ToPNG]
// convert SVG using the external rsvg-convert tool from librsvg:
//
//	svg, err := supportgraph.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0) // 2x scale
//
// [Convert] dispatches on a format name and is what the CLI and the HTTP API
// call.
//
// [supportgraph]: github.com/matzehuels/shelfplan/pkg/render/supportgraph
package render
