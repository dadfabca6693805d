package placement

import (
	"math"

	"github.com/matzehuels/shelfplan/pkg/core/items"
	"github.com/matzehuels/shelfplan/pkg/errors"
)

// SupportKind tells whether an item rests on a surface or on another item.
type SupportKind string

const (
	SupportSurface SupportKind = "surface"
	SupportItem    SupportKind = "item"
)

// Support is the plane an item rests on.
type Support struct {
	TopY         float64     `json:"top_y"`
	Bin          int         `json:"bin"` // unit of the surface or of the supporting item
	Kind         SupportKind `json:"kind"`
	SurfaceIndex int         `json:"surface_index"`      // valid for SupportSurface
	ItemUID      string      `json:"item_uid,omitempty"` // valid for SupportItem
	Distance     float64     `json:"distance"`           // |bottom - TopY| at lookup time
}

// FindBestSupport returns the support plane closest to bottom within the
// vertical tolerance, or ok=false when there is none.
//
// Candidates are the surfaces of bin and the tops of every placed item except
// exclude whose horizontal overlap with [x, x+width) exceeds the stack overlap
// ratio of the narrower width. Surfaces are examined before items and a later
// candidate only wins with a strictly smaller distance.
func (e Engine) FindBestSupport(bin int, bottom, x, width float64, exclude string) (Support, bool, error) {
	surfaces, err := e.topo.SurfacesOf(bin)
	if err != nil {
		return Support{}, false, err
	}
	if err := errors.ValidateDimension("item width", width); err != nil {
		return Support{}, false, err
	}
	if err := errors.ValidateCoordinate("item bottom", bottom); err != nil {
		return Support{}, false, err
	}
	if err := errors.ValidateCoordinate("item x", x); err != nil {
		return Support{}, false, err
	}

	var (
		best  Support
		found bool
	)
	consider := func(c Support) {
		if c.Distance >= e.opts.VerticalTolerance {
			return
		}
		if !found || c.Distance < best.Distance {
			best, found = c, true
		}
	}

	for i, s := range surfaces {
		top := s.TopY()
		consider(Support{
			TopY:         top,
			Bin:          bin,
			Kind:         SupportSurface,
			SurfaceIndex: i,
			Distance:     math.Abs(bottom - top),
		})
	}

	for _, other := range e.items {
		if exclude != "" && other.UID == exclude {
			continue
		}
		if !e.stacks(x, width, other) {
			continue
		}
		top := other.Top()
		consider(Support{
			TopY:         top,
			Bin:          other.Bin,
			Kind:         SupportItem,
			SurfaceIndex: -1,
			ItemUID:      other.UID,
			Distance:     math.Abs(bottom - top),
		})
	}

	return best, found, nil
}

// stacks reports whether a footprint [x, x+width) shares enough width with
// other for one to rest on the other.
func (e Engine) stacks(x, width float64, other items.Item) bool {
	overlap := math.Min(x+width, other.Right()) - math.Max(x, other.Left())
	if overlap <= 0 {
		return false
	}
	return overlap > e.opts.StackOverlapRatio*math.Min(width, other.Width)
}

// SupportOf recomputes what the placed item uid currently rests on.
func (e Engine) SupportOf(uid string) (Support, bool, error) {
	it, ok := e.item(uid)
	if !ok {
		return Support{}, false, errors.New(errors.ErrCodeItemNotFound, "item %q not found", uid)
	}
	return e.FindBestSupport(it.Bin, it.Bottom, it.X, it.Width, it.UID)
}

// Supports recomputes the support of every placed item. Items resting on
// nothing within tolerance are absent from the map.
func (e Engine) Supports() (map[string]Support, error) {
	out := make(map[string]Support, len(e.items))
	for _, it := range e.items {
		s, ok, err := e.FindBestSupport(it.Bin, it.Bottom, it.X, it.Width, it.UID)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "item %s", it.UID)
		}
		if ok {
			out[it.UID] = s
		}
	}
	return out, nil
}
