package topology

import (
	"fmt"
	"sort"

	"github.com/matzehuels/shelfplan/pkg/errors"
)

// SurfaceKind distinguishes shelf boards from hook rails.
type SurfaceKind string

const (
	// Solid is a flat shelf board. Items rest on its top face.
	Solid SurfaceKind = "solid"
	// Rail is a hook rail. Items hang from the rail band.
	Rail SurfaceKind = "rail"
)

// Valid reports whether k is a known surface kind.
func (k SurfaceKind) Valid() bool {
	return k == Solid || k == Rail
}

// ParseKind converts a user supplied kind name. The aliases used by older
// planogram files ("flat", "hook") are accepted.
func ParseKind(s string) (SurfaceKind, error) {
	switch s {
	case "solid", "flat", "":
		return Solid, nil
	case "rail", "hook":
		return Rail, nil
	}
	return "", errors.New(errors.ErrCodeInvalidSurface, "unknown surface kind %q (must be solid or rail)", s)
}

// Surface is a horizontal support inside a bin.
type Surface struct {
	Height    float64     // distance from the bin floor
	Kind      SurfaceKind // Solid or Rail
	Thickness float64     // board thickness, ignored for rails
}

// TopY returns the support plane: the height at which an item resting on
// this surface has its bottom edge.
func (s Surface) TopY() float64 {
	if s.Kind == Rail {
		return s.Height
	}
	return s.Height + s.Thickness
}

// Bin is one shelving unit.
type Bin struct {
	Width    float64
	Surfaces []Surface
}

// Topology is the immutable bin sequence of a planogram.
type Topology struct {
	height float64
	bins   []Bin
	starts []float64 // starts[i] is the global X origin of bin i; len(bins)+1 entries
}

// New validates bins and builds a Topology with precomputed prefix sums.
//
// Returns an INVALID_TOPOLOGY error for an empty sequence and INVALID_INPUT for
// non-positive bin widths, negative heights or negative thicknesses. Surfaces
// are copied so later mutation of the argument does not leak in.
func New(height float64, bins []Bin) (*Topology, error) {
	if len(bins) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidTopology, "topology needs at least one bin")
	}
	if err := errors.ValidateDimension("bin height", height); err != nil {
		return nil, err
	}

	t := &Topology{
		height: height,
		bins:   make([]Bin, len(bins)),
		starts: make([]float64, len(bins)+1),
	}
	for i, b := range bins {
		if err := errors.ValidatePositive(fmt.Sprintf("bin %d width", i), b.Width); err != nil {
			return nil, err
		}
		surfaces := make([]Surface, len(b.Surfaces))
		for j, s := range b.Surfaces {
			if err := errors.ValidateDimension(fmt.Sprintf("bin %d surface %d height", i, j), s.Height); err != nil {
				return nil, err
			}
			if err := errors.ValidateDimension(fmt.Sprintf("bin %d surface %d thickness", i, j), s.Thickness); err != nil {
				return nil, err
			}
			if s.Kind == "" {
				s.Kind = Solid
			}
			if !s.Kind.Valid() {
				return nil, errors.New(errors.ErrCodeInvalidSurface, "bin %d surface %d: unknown kind %q", i, j, s.Kind)
			}
			surfaces[j] = s
		}
		t.bins[i] = Bin{Width: b.Width, Surfaces: surfaces}
		t.starts[i+1] = t.starts[i] + b.Width
	}
	return t, nil
}

// Height returns the full configured height shared by all bins.
func (t *Topology) Height() float64 { return t.height }

// Len returns the number of bins.
func (t *Topology) Len() int { return len(t.bins) }

// TotalWidth returns the sum of all bin widths.
func (t *Topology) TotalWidth() float64 { return t.starts[len(t.bins)] }

// WidthOf returns the width of bin i.
func (t *Topology) WidthOf(i int) (float64, error) {
	if err := errors.ValidateIndex("bin index", i, len(t.bins)); err != nil {
		return 0, err
	}
	return t.bins[i].Width, nil
}

// Origin returns the global X of the left edge of bin i.
func (t *Topology) Origin(i int) (float64, error) {
	if err := errors.ValidateIndex("bin index", i, len(t.bins)); err != nil {
		return 0, err
	}
	return t.starts[i], nil
}

// SurfacesOf returns the surfaces of bin i. The returned slice must not be modified.
func (t *Topology) SurfacesOf(i int) ([]Surface, error) {
	if err := errors.ValidateIndex("bin index", i, len(t.bins)); err != nil {
		return nil, err
	}
	return t.bins[i].Surfaces, nil
}

// BinAt maps a global X onto a bin index and the X local to that bin.
//
// Bin i owns the half-open interval [Origin(i), Origin(i)+Width(i)). X at or
// beyond TotalWidth resolves to the last bin and X below zero to the first; in
// both cases localX is extrapolated and lies outside [0, width).
func (t *Topology) BinAt(x float64) (int, float64) {
	n := len(t.bins)
	// First bin whose end lies strictly right of x.
	i := sort.Search(n, func(i int) bool { return t.starts[i+1] > x })
	if i == n {
		i = n - 1
	}
	return i, x - t.starts[i]
}

// Bins returns a copy of the bin sequence.
func (t *Topology) Bins() []Bin {
	out := make([]Bin, len(t.bins))
	for i, b := range t.bins {
		out[i] = Bin{Width: b.Width, Surfaces: append([]Surface(nil), b.Surfaces...)}
	}
	return out
}
