package placement

import (
	"github.com/matzehuels/shelfplan/pkg/core/items"
	"github.com/matzehuels/shelfplan/pkg/errors"
)

// Direction is the side an item was pushed to during collision resolution.
type Direction string

const (
	PushNone  Direction = ""
	PushLeft  Direction = "left"
	PushRight Direction = "right"
)

// Resolution describes the outcome of horizontal collision resolution.
type Resolution struct {
	X         float64   `json:"x"`
	With      string    `json:"with,omitempty"`      // uid of the colliding item, if any
	Direction Direction `json:"direction,omitempty"` // side the item was pushed to
	// Unresolved is set when a collision was found but neither push kept the
	// item inside the layout; X is then the proposed X and the overlap stays.
	Unresolved bool `json:"unresolved,omitempty"`
}

// ResolveHorizontal returns an X at which the rectangle no longer overlaps the
// first item it collides with in the same vertical band.
//
// bottom is floor-relative. Only the first colliding item (in store order) is
// considered; the result is not iterated to a collision-free fixed point.
func (e Engine) ResolveHorizontal(x, bottom, width, height float64, exclude string) (float64, error) {
	r, err := e.Resolve(x, bottom, width, height, exclude)
	return r.X, err
}

// Resolve is ResolveHorizontal with details about which item was hit and how
// the collision was handled.
func (e Engine) Resolve(x, bottom, width, height float64, exclude string) (Resolution, error) {
	if err := validateRect(x, bottom, width, height); err != nil {
		return Resolution{}, err
	}

	hit, ok := e.firstCollision(x, bottom, width, height, exclude)
	if !ok {
		return Resolution{X: x}, nil
	}

	pushLeft := (x + width) - hit.Left()
	pushRight := hit.Right() - x

	leftX := hit.Left() - width
	rightX := hit.Right()

	first, second := PushRight, PushLeft
	firstX, secondX := rightX, leftX
	if pushLeft < pushRight {
		first, second = PushLeft, PushRight
		firstX, secondX = leftX, rightX
	}

	switch {
	case e.inBounds(firstX, width):
		return Resolution{X: firstX, With: hit.UID, Direction: first}, nil
	case e.inBounds(secondX, width):
		return Resolution{X: secondX, With: hit.UID, Direction: second}, nil
	}
	return Resolution{X: x, With: hit.UID, Unresolved: true}, nil
}

// firstCollision returns the first placed item (other than exclude) whose
// rectangle overlaps the proposed one beyond the band tolerance.
func (e Engine) firstCollision(x, bottom, width, height float64, exclude string) (items.Item, bool) {
	tol := e.opts.BandTolerance
	top := bottom + height
	right := x + width

	for _, other := range e.items {
		if exclude != "" && other.UID == exclude {
			continue
		}
		sameBand := bottom+tol < other.Top() && top > other.Bottom+tol
		if !sameBand {
			continue
		}
		overlapsX := x+tol < other.Right() && right > other.Left()+tol
		if overlapsX {
			return other, true
		}
	}
	return items.Item{}, false
}

func (e Engine) inBounds(x, width float64) bool {
	return x >= 0 && x+width <= e.topo.TotalWidth()
}

func validateRect(x, bottom, width, height float64) error {
	if err := errors.ValidateDimension("item width", width); err != nil {
		return err
	}
	if err := errors.ValidateDimension("item height", height); err != nil {
		return err
	}
	if err := errors.ValidateCoordinate("item x", x); err != nil {
		return err
	}
	return errors.ValidateCoordinate("item bottom", bottom)
}
