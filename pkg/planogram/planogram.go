package planogram

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/shelfplan/pkg/core/items"
	"github.com/matzehuels/shelfplan/pkg/core/topology"
	"github.com/matzehuels/shelfplan/pkg/errors"
)

// Defaults for new planograms.
const (
	DefaultHeight    = 200.0
	DefaultUnitWidth = 120.0
	DefaultUnitCount = 2

	BaseThickness  = 5.0  // solid base board
	ShelfThickness = 3.0  // every other solid board
	SurfaceSpacing = 40.0 // gap used when adding a surface
	TopClearance   = 10.0 // highest allowed added surface is Height - TopClearance
)

// DefaultSurfaceHeights are the surfaces a new unit starts with.
var DefaultSurfaceHeights = []float64{0, 40, 80, 120, 160}

var now = func() time.Time { return time.Now().UTC() }

// Surface is a shelf board or hook rail inside a unit. The surface at
// height 0 is the base; each unit has exactly one.
type Surface struct {
	ID        string               `json:"id" toml:"id"`
	Height    float64              `json:"height" toml:"height"`
	Kind      topology.SurfaceKind `json:"kind" toml:"kind"`
	// Thickness applies to solid surfaces only. Zero means the default:
	// BaseThickness for the base and ShelfThickness otherwise, so a solid
	// board always has a thickness and a zero-thickness board cannot be
	// expressed. Use a rail for a support plane at Height itself.
	Thickness float64              `json:"thickness,omitempty" toml:"thickness,omitempty"`
}

// IsBase reports whether s is the unit's base surface.
func (s Surface) IsBase() bool { return s.Height == 0 }

// Unit is one shelving bay. A zero Width means the planogram default.
type Unit struct {
	ID       string    `json:"id" toml:"id"`
	Width    float64   `json:"width,omitempty" toml:"width,omitempty"`
	Surfaces []Surface `json:"surfaces" toml:"surface"`
}

// Planogram is a complete shelf layout.
type Planogram struct {
	ID               string    `json:"id" toml:"id"`
	Name             string    `json:"name" toml:"name"`
	Height           float64   `json:"height" toml:"height"`
	DefaultUnitWidth float64   `json:"default_unit_width" toml:"default_unit_width"`
	ShowGrid         bool      `json:"show_grid" toml:"show_grid"`
	ShowMeasurements bool      `json:"show_measurements" toml:"show_measurements"`
	UpdatedAt        time.Time `json:"updated_at" toml:"updated_at"`

	Units []Unit       `json:"units" toml:"unit"`
	Items []items.Item `json:"items" toml:"item"`
}

// New returns a planogram with the default units and surfaces.
func New(name string) *Planogram {
	p := &Planogram{
		ID:               uuid.NewString(),
		Name:             name,
		Height:           DefaultHeight,
		DefaultUnitWidth: DefaultUnitWidth,
		ShowGrid:         true,
		ShowMeasurements: true,
	}
	for range DefaultUnitCount {
		p.AddUnit()
	}
	return p
}

// UnitWidth returns the effective width of u.
func (p *Planogram) UnitWidth(u Unit) float64 {
	if u.Width > 0 {
		return u.Width
	}
	return p.DefaultUnitWidth
}

// TotalWidth returns the summed width of all units.
func (p *Planogram) TotalWidth() float64 {
	var w float64
	for _, u := range p.Units {
		w += p.UnitWidth(u)
	}
	return w
}

// Topology builds the engine view of the units. Solid surfaces without an
// explicit thickness get BaseThickness (base) or ShelfThickness.
func (p *Planogram) Topology() (*topology.Topology, error) {
	bins := make([]topology.Bin, len(p.Units))
	for i, u := range p.Units {
		surfaces := make([]topology.Surface, len(u.Surfaces))
		for j, s := range u.Surfaces {
			ts := topology.Surface{Height: s.Height, Kind: s.Kind, Thickness: s.Thickness}
			if ts.Kind == "" {
				ts.Kind = topology.Solid
			}
			if ts.Kind == topology.Solid && ts.Thickness == 0 {
				ts.Thickness = ShelfThickness
				if s.IsBase() {
					ts.Thickness = BaseThickness
				}
			}
			surfaces[j] = ts
		}
		bins[i] = topology.Bin{Width: p.UnitWidth(u), Surfaces: surfaces}
	}
	return topology.New(p.Height, bins)
}

// Normalize fills defaults left out of a hand-written document, canonicalizes
// surface kinds, derives every item's unit from its X and then validates the
// result.
func (p *Planogram) Normalize() error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Height == 0 {
		p.Height = DefaultHeight
	}
	if p.DefaultUnitWidth == 0 {
		p.DefaultUnitWidth = DefaultUnitWidth
	}
	for i := range p.Units {
		u := &p.Units[i]
		if u.ID == "" {
			u.ID = nextID("unit-", p.unitIDs())
		}
		for j := range u.Surfaces {
			s := &u.Surfaces[j]
			kind, err := topology.ParseKind(string(s.Kind))
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidSurface, err, "unit %s", u.ID)
			}
			s.Kind = kind
			if s.ID == "" {
				s.ID = nextID("surface-", surfaceIDs(u.Surfaces))
			}
		}
		sortSurfaces(u.Surfaces)
	}
	for i := range p.Items {
		if p.Items[i].UID == "" {
			p.Items[i].UID = items.NewUID()
		}
	}
	if topo, err := p.Topology(); err == nil {
		for i := range p.Items {
			p.Items[i].Bin, _ = topo.BinAt(p.Items[i].X)
		}
	}
	return p.Validate()
}

// Validate checks identifiers, dimensions, the base surface of every unit and
// that every item is stored in the unit its X falls in.
func (p *Planogram) Validate() error {
	if err := errors.ValidateID("planogram", p.ID); err != nil {
		return err
	}
	if err := errors.ValidatePositive("planogram height", p.Height); err != nil {
		return err
	}
	if err := errors.ValidatePositive("default unit width", p.DefaultUnitWidth); err != nil {
		return err
	}
	if len(p.Units) == 0 {
		return errors.New(errors.ErrCodeInvalidTopology, "planogram %s has no units", p.ID)
	}

	seen := make(map[string]bool, len(p.Units))
	for _, u := range p.Units {
		if err := errors.ValidateID("unit", u.ID); err != nil {
			return err
		}
		if seen[u.ID] {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate unit id %q", u.ID)
		}
		seen[u.ID] = true
		if err := p.validateUnit(u); err != nil {
			return err
		}
	}

	if _, err := items.NewStore(p.Items...); err != nil {
		return err
	}
	for _, it := range p.Items {
		if err := errors.ValidateIndex(fmt.Sprintf("item %s unit", it.UID), it.Bin, len(p.Units)); err != nil {
			return err
		}
		if err := errors.ValidateCoordinate(fmt.Sprintf("item %s x", it.UID), it.X); err != nil {
			return err
		}
	}

	topo, err := p.Topology()
	if err != nil {
		return err
	}
	for _, it := range p.Items {
		if bin, _ := topo.BinAt(it.X); bin != it.Bin {
			return errors.New(errors.ErrCodeInvalidInput, "item %s at x=%v lies in unit %s but is stored in unit %s",
				it.UID, it.X, p.Units[bin].ID, p.Units[it.Bin].ID)
		}
	}
	return nil
}

func (p *Planogram) validateUnit(u Unit) error {
	if err := errors.ValidateDimension("unit "+u.ID+" width", u.Width); err != nil {
		return err
	}
	bases := 0
	ids := make(map[string]bool, len(u.Surfaces))
	for _, s := range u.Surfaces {
		if err := errors.ValidateID("surface", s.ID); err != nil {
			return err
		}
		if ids[s.ID] {
			return errors.New(errors.ErrCodeInvalidInput, "unit %s: duplicate surface id %q", u.ID, s.ID)
		}
		ids[s.ID] = true
		if err := errors.ValidateDimension("surface "+s.ID+" height", s.Height); err != nil {
			return err
		}
		if s.Height > p.Height {
			return errors.New(errors.ErrCodeInvalidSurface, "unit %s: surface %s at %v is above the planogram height %v", u.ID, s.ID, s.Height, p.Height)
		}
		if s.Kind != "" && !s.Kind.Valid() {
			return errors.New(errors.ErrCodeInvalidSurface, "unit %s: surface %s has unknown kind %q", u.ID, s.ID, s.Kind)
		}
		if s.IsBase() {
			bases++
		}
	}
	switch {
	case bases == 0:
		return errors.New(errors.ErrCodeInvalidSurface, "unit %s has no base surface at height 0", u.ID)
	case bases > 1:
		return errors.New(errors.ErrCodeInvalidSurface, "unit %s has %d surfaces at height 0", u.ID, bases)
	}
	return nil
}

// Clone returns a deep copy.
func (p *Planogram) Clone() *Planogram {
	c := *p
	c.Units = make([]Unit, len(p.Units))
	for i, u := range p.Units {
		u.Surfaces = slices.Clone(u.Surfaces)
		c.Units[i] = u
	}
	c.Items = slices.Clone(p.Items)
	return &c
}

// Touch records a modification.
func (p *Planogram) Touch() { p.UpdatedAt = now() }

func (p *Planogram) unitIndex(id string) (int, error) {
	for i, u := range p.Units {
		if u.ID == id {
			return i, nil
		}
	}
	return -1, errors.New(errors.ErrCodeUnitNotFound, "unit %q not found", id)
}

func (p *Planogram) unitIDs() []string {
	ids := make([]string, len(p.Units))
	for i, u := range p.Units {
		ids[i] = u.ID
	}
	return ids
}

func surfaceIDs(surfaces []Surface) []string {
	ids := make([]string, len(surfaces))
	for i, s := range surfaces {
		ids[i] = s.ID
	}
	return ids
}

// nextID returns prefix followed by one more than the highest numeric suffix
// already taken.
func nextID(prefix string, taken []string) string {
	n := 0
	for _, id := range taken {
		suffix, ok := strings.CutPrefix(id, prefix)
		if !ok {
			continue
		}
		if v, err := strconv.Atoi(suffix); err == nil && v >= n {
			n = v + 1
		}
	}
	return prefix + strconv.Itoa(n)
}

func sortSurfaces(s []Surface) {
	slices.SortStableFunc(s, func(a, b Surface) int { return cmp.Compare(a.Height, b.Height) })
}
