package placement

import (
	"github.com/matzehuels/shelfplan/pkg/core/items"
	"github.com/matzehuels/shelfplan/pkg/core/topology"
	"github.com/matzehuels/shelfplan/pkg/errors"
)

// Engine computes placements against one topology and one item snapshot.
type Engine struct {
	topo  *topology.Topology
	items []items.Item
	opts  Options
}

// New builds an engine. placed is copied; later changes to the caller's slice
// are not observed. Zero-valued options are replaced by defaults.
func New(topo *topology.Topology, placed []items.Item, opts Options) (Engine, error) {
	if topo == nil || topo.Len() == 0 {
		return Engine{}, errors.New(errors.ErrCodeInvalidTopology, "engine needs a topology with at least one bin")
	}
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return Engine{}, err
	}
	return Engine{
		topo:  topo,
		items: append([]items.Item(nil), placed...),
		opts:  opts,
	}, nil
}

// Options returns the effective options.
func (e Engine) Options() Options { return e.opts }

// Topology returns the topology the engine places against.
func (e Engine) Topology() *topology.Topology { return e.topo }

// Request is a drop or move. X is the global X of the item's left edge and Y
// is top-down (shelf top to the item's top edge).
type Request struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	ExcludeUID string  `json:"exclude_uid,omitempty"` // the item being moved
}

// Result is where an item lands.
type Result struct {
	Bin    int     `json:"bin"`
	X      float64 `json:"x"`       // global
	LocalX float64 `json:"local_x"` // relative to the origin of Bin
	Y      float64 `json:"y"`       // top-down
	Bottom float64 `json:"bottom"`  // floor-relative

	// Support is the plane the item snapped to; nil when it floats.
	Support   *Support   `json:"support,omitempty"`
	Collision Resolution `json:"collision"`
}

// Floating reports whether no support was found within tolerance.
func (r Result) Floating() bool { return r.Support == nil }

// Place applies gravity and horizontal collision resolution to a request.
func (e Engine) Place(req Request) (Result, error) {
	if err := validateRequest(req); err != nil {
		return Result{}, err
	}
	h := e.topo.Height()

	x := req.X
	if !e.opts.DisableClamp {
		x = e.clampX(x, req.Width)
	}

	bin, _ := e.topo.BinAt(x)
	bottom := FloorY(h, req.Y, req.Height)
	y := req.Y

	var support *Support
	s, ok, err := e.FindBestSupport(bin, bottom, x, req.Width, req.ExcludeUID)
	if err != nil {
		return Result{}, err
	}
	if ok {
		support = &s
		bottom = s.TopY
		y = TopDownY(h, bottom, req.Height)
	}

	res, err := e.Resolve(x, bottom, req.Width, req.Height, req.ExcludeUID)
	if err != nil {
		return Result{}, err
	}

	finalBin, local := e.topo.BinAt(res.X)
	return Result{
		Bin:       finalBin,
		X:         res.X,
		LocalX:    local,
		Y:         y,
		Bottom:    bottom,
		Support:   support,
		Collision: res,
	}, nil
}

// clampX pulls x inside [0, TotalWidth-width] when the item fits at all.
func (e Engine) clampX(x, width float64) float64 {
	total := e.topo.TotalWidth()
	if width > total {
		return x
	}
	switch {
	case x < 0:
		return 0
	case x+width > total:
		return total - width
	}
	return x
}

func (e Engine) item(uid string) (items.Item, bool) {
	for _, it := range e.items {
		if it.UID == uid {
			return it, true
		}
	}
	return items.Item{}, false
}

func validateRequest(req Request) error {
	if err := errors.ValidateCoordinate("y", req.Y); err != nil {
		return err
	}
	return validateRect(req.X, 0, req.Width, req.Height)
}
