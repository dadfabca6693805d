// Package supportgraph renders what rests on what in a planogram.
//
// Resting relations are never stored; they are recomputed by the placement
// engine. This package turns one such snapshot into a Graphviz diagram: one
// cluster per unit holding its surfaces, one node per item, and an edge from
// every item to the surface or item it rests on. Items resting on nothing
// within tolerance are drawn dashed.
//
//	supports, _ := p.Supports(placement.Options{})
//	dot := supportgraph.ToDOT(p, supports, supportgraph.Options{})
//	svg, err := supportgraph.RenderSVG(ctx, dot)
//
// The DOT source can also be saved and processed with external Graphviz tools.
package supportgraph
