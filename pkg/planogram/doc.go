// Package planogram is the editable shelf document: units with their
// surfaces, the items placed on them and display settings.
//
// A [Planogram] owns the configuration the placement engine reads. Every
// geometry query builds a fresh [topology.Topology] and [placement.Engine]
// from the document, so edits to units or surfaces are picked up by the next
// drop or move without any cache invalidation.
//
// Mutating methods are not safe for concurrent use. The editor package
// serializes access per planogram.
//
// Coordinates follow the placement engine: item X is global, Bottom is
// measured up from the shelf floor, and the Y accepted by [Planogram.Drop] and
// [Planogram.MoveItem] is top-down.
package planogram
