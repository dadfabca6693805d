// Package placement is the gravity and collision engine for planogram items.
//
// # Overview
//
// Given a candidate drop position and an item footprint, [Engine.Place]
// decides where the item actually lands:
//
//  1. The owning bin is resolved from the global X ([topology.Topology.BinAt]).
//  2. [Engine.FindBestSupport] looks for the closest support plane within
//     [Options.VerticalTolerance] of the item's bottom: a surface of that bin
//     or the top of another item sharing enough width with it.
//  3. [Engine.ResolveHorizontal] pushes the item sideways off the first item
//     it overlaps in the same vertical band.
//  4. The final bin is re-derived from the resolved X.
//
// # Coordinates
//
// Callers speak top-down: Y is the distance from the top of the shelf to the
// item's top edge. Support math runs bottom-up, in distance above the bin
// floor. [FloorY] and [TopDownY] are the only two places the conversion
// happens.
//
// # Statelessness
//
// An [Engine] is a value holding a topology, a snapshot of the placed items and
// the tolerances. It owns no mutable state; every method is a pure function of
// those inputs. Callers commit a [Result] to their item store themselves and
// build a fresh Engine from the new snapshot for the next call.
//
// "Resting on" is never stored. [Engine.SupportOf] recomputes it for an
// existing item whenever a caller needs it.
//
// # Known Limitation
//
// Collision resolution is single-pass: only the first overlapping item is
// resolved, and an overlap that cannot be resolved in bounds is left in place.
package placement
