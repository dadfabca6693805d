// Package topology describes the shelving units of a planogram and the
// horizontal support surfaces inside each one.
//
// # Overview
//
// A [Topology] is an ordered, non-empty sequence of [Bin] values (shelving
// units) concatenated left-to-right with no gap. Every bin has its own width
// and its own set of [Surface] values. A bin's absolute X origin is the sum of
// the widths of the bins before it; [Topology] precomputes these prefix sums
// once so lookups are O(log n).
//
// # Coordinates
//
// X is global: 0 is the left edge of the first bin and [Topology.TotalWidth]
// the right edge of the last one. Surface heights are measured upward from the
// bin floor. All bins share the same overall height ([Topology.Height]).
//
// # Support Planes
//
// A [Solid] surface (a shelf board) supports items on its exposed top, so its
// support plane is Height + Thickness. A [Rail] (a hook rail) supports hanging
// items at the rail band itself, so its support plane is its Height.
//
// # Bin Lookup
//
// [Topology.BinAt] maps a global X onto the bin whose half-open interval
// [start, start+width) contains it. Coordinates right of the layout resolve to
// the last bin and coordinates left of it to the first; the returned local X is
// extrapolated, not clamped.
//
// A Topology is immutable after [New] and safe for concurrent readers.
package topology
