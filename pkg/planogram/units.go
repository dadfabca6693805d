package planogram

import (
	"slices"

	"github.com/matzehuels/shelfplan/pkg/core/items"
	"github.com/matzehuels/shelfplan/pkg/core/topology"
	"github.com/matzehuels/shelfplan/pkg/errors"
)

// AddUnit appends a unit with the default surfaces and returns it.
func (p *Planogram) AddUnit() Unit {
	u := Unit{
		ID:       nextID("unit-", p.unitIDs()),
		Surfaces: defaultSurfaces(p.Height),
	}
	p.Units = append(p.Units, u)
	p.Touch()
	return u
}

func defaultSurfaces(height float64) []Surface {
	var out []Surface
	for i, h := range DefaultSurfaceHeights {
		if i > 0 && h >= height {
			break
		}
		thickness := ShelfThickness
		if h == 0 {
			thickness = BaseThickness
		}
		out = append(out, Surface{
			ID:        nextID("surface-", surfaceIDs(out)),
			Height:    h,
			Kind:      topology.Solid,
			Thickness: thickness,
		})
	}
	return out
}

// RemoveUnit deletes a unit together with the items placed in it. Items in
// later units move left by the removed width. The last unit cannot be removed.
func (p *Planogram) RemoveUnit(id string) ([]items.Item, error) {
	i, err := p.unitIndex(id)
	if err != nil {
		return nil, err
	}
	if len(p.Units) == 1 {
		return nil, errors.New(errors.ErrCodePolicyViolation, "cannot remove %s: a planogram needs at least one unit", id)
	}

	store, err := items.NewStore(p.Items...)
	if err != nil {
		return nil, err
	}
	removed := store.RemoveBin(i, p.UnitWidth(p.Units[i]))
	p.Items = store.All()
	p.Units = slices.Delete(p.Units, i, i+1)
	p.Touch()
	return removed, nil
}

// SetUnitWidth resizes a unit. Items in later units move with their unit;
// items inside the resized unit keep their position. Shrinking a unit past
// the left edge of one of its items is a POLICY_VIOLATION: the item would
// end up inside the next unit.
func (p *Planogram) SetUnitWidth(id string, width float64) error {
	if err := errors.ValidatePositive("unit width", width); err != nil {
		return err
	}
	i, err := p.unitIndex(id)
	if err != nil {
		return err
	}
	if i < len(p.Units)-1 {
		end := p.unitOrigin(i) + width
		for _, it := range p.Items {
			if it.Bin == i && it.X >= end {
				return errors.New(errors.ErrCodePolicyViolation,
					"cannot shrink %s to %v: item %s starts at x=%v; move or remove it first", id, width, it.UID, it.X)
			}
		}
	}

	store, err := items.NewStore(p.Items...)
	if err != nil {
		return err
	}
	delta := width - p.UnitWidth(p.Units[i])
	p.Units[i].Width = width
	store.ShiftFrom(i+1, delta)
	p.Items = store.All()
	p.Touch()
	return nil
}

func (p *Planogram) unitOrigin(i int) float64 {
	var x float64
	for _, u := range p.Units[:i] {
		x += p.UnitWidth(u)
	}
	return x
}

// AddSurface adds a surface SurfaceSpacing above the highest one, capped at
// TopClearance below the planogram height.
func (p *Planogram) AddSurface(unitID string, kind topology.SurfaceKind) (Surface, error) {
	if kind == "" {
		kind = topology.Solid
	}
	if !kind.Valid() {
		return Surface{}, errors.New(errors.ErrCodeInvalidSurface, "unknown surface kind %q", kind)
	}
	i, err := p.unitIndex(unitID)
	if err != nil {
		return Surface{}, err
	}
	u := &p.Units[i]

	var highest float64
	for _, s := range u.Surfaces {
		highest = max(highest, s.Height)
	}
	h := min(highest+SurfaceSpacing, p.Height-TopClearance)
	if h <= highest {
		return Surface{}, errors.New(errors.ErrCodePolicyViolation, "unit %s has no room above %v for another surface", unitID, highest)
	}

	s := Surface{
		ID:     nextID("surface-", surfaceIDs(u.Surfaces)),
		Height: h,
		Kind:   kind,
	}
	if kind == topology.Solid {
		s.Thickness = ShelfThickness
	}
	u.Surfaces = append(u.Surfaces, s)
	sortSurfaces(u.Surfaces)
	p.Touch()
	return s, nil
}

// RemoveSurface deletes a surface. The base surface cannot be removed.
func (p *Planogram) RemoveSurface(unitID, surfaceID string) error {
	i, j, err := p.surfaceIndex(unitID, surfaceID)
	if err != nil {
		return err
	}
	u := &p.Units[i]
	if u.Surfaces[j].IsBase() {
		return errors.New(errors.ErrCodePolicyViolation, "cannot remove the base surface of unit %s", unitID)
	}
	u.Surfaces = slices.Delete(u.Surfaces, j, j+1)
	p.Touch()
	return nil
}

// MoveSurface changes the height of a surface. The base surface stays at 0
// and no other surface may move there; height must not exceed the planogram.
func (p *Planogram) MoveSurface(unitID, surfaceID string, height float64) (Surface, error) {
	if err := errors.ValidateDimension("surface height", height); err != nil {
		return Surface{}, err
	}
	i, j, err := p.surfaceIndex(unitID, surfaceID)
	if err != nil {
		return Surface{}, err
	}
	u := &p.Units[i]
	switch {
	case u.Surfaces[j].IsBase():
		return Surface{}, errors.New(errors.ErrCodePolicyViolation, "the base surface of unit %s cannot move", unitID)
	case height == 0:
		return Surface{}, errors.New(errors.ErrCodePolicyViolation, "only the base surface may sit at height 0")
	case height > p.Height:
		return Surface{}, errors.New(errors.ErrCodeInvalidSurface, "surface height %v exceeds planogram height %v", height, p.Height)
	}

	u.Surfaces[j].Height = height
	s := u.Surfaces[j]
	sortSurfaces(u.Surfaces)
	p.Touch()
	return s, nil
}

// Surface returns a surface by unit and surface ID.
func (p *Planogram) Surface(unitID, surfaceID string) (Surface, error) {
	i, j, err := p.surfaceIndex(unitID, surfaceID)
	if err != nil {
		return Surface{}, err
	}
	return p.Units[i].Surfaces[j], nil
}

// Unit returns a unit by ID.
func (p *Planogram) Unit(id string) (Unit, error) {
	i, err := p.unitIndex(id)
	if err != nil {
		return Unit{}, err
	}
	return p.Units[i], nil
}

func (p *Planogram) surfaceIndex(unitID, surfaceID string) (int, int, error) {
	i, err := p.unitIndex(unitID)
	if err != nil {
		return -1, -1, err
	}
	for j, s := range p.Units[i].Surfaces {
		if s.ID == surfaceID {
			return i, j, nil
		}
	}
	return -1, -1, errors.New(errors.ErrCodeSurfaceNotFound, "surface %q not found in unit %s", surfaceID, unitID)
}
