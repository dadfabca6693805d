package planogram

import (
	"github.com/matzehuels/shelfplan/pkg/catalog"
	"github.com/matzehuels/shelfplan/pkg/core/items"
	"github.com/matzehuels/shelfplan/pkg/core/placement"
	"github.com/matzehuels/shelfplan/pkg/errors"
)

// Footprint is what gets dropped: a rectangle and what it stands for.
type Footprint struct {
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	ProductID string  `json:"product_id,omitempty"`
	Label     string  `json:"label,omitempty"`
}

// ProductFootprint returns the footprint of a catalog product.
func ProductFootprint(pr catalog.Product) Footprint {
	return Footprint{Width: pr.Width, Height: pr.Height, ProductID: pr.ID, Label: pr.Name}
}

func footprintOf(it items.Item) Footprint {
	return Footprint{Width: it.Width, Height: it.Height, ProductID: it.ProductID, Label: it.Label}
}

// Engine returns a placement engine over the current units and items.
func (p *Planogram) Engine(opts placement.Options) (placement.Engine, error) {
	topo, err := p.Topology()
	if err != nil {
		return placement.Engine{}, err
	}
	return placement.New(topo, p.Items, opts)
}

// Preview computes where fp would land at (x, y) without changing anything.
// exclude names an item to ignore, normally the one being dragged.
func (p *Planogram) Preview(fp Footprint, x, y float64, exclude string, opts placement.Options) (placement.Result, error) {
	e, err := p.Engine(opts)
	if err != nil {
		return placement.Result{}, err
	}
	return e.Place(placement.Request{
		X:          x,
		Y:          y,
		Width:      fp.Width,
		Height:     fp.Height,
		ExcludeUID: exclude,
	})
}

// Drop places a new item and commits it under a fresh UID.
func (p *Planogram) Drop(fp Footprint, x, y float64, opts placement.Options) (items.Item, placement.Result, error) {
	res, err := p.Preview(fp, x, y, "", opts)
	if err != nil {
		return items.Item{}, placement.Result{}, err
	}
	store, err := items.NewStore(p.Items...)
	if err != nil {
		return items.Item{}, placement.Result{}, err
	}
	it, err := store.Add(items.Item{
		Bin:       res.Bin,
		X:         res.X,
		Bottom:    res.Bottom,
		Width:     fp.Width,
		Height:    fp.Height,
		ProductID: fp.ProductID,
		Label:     fp.Label,
	})
	if err != nil {
		return items.Item{}, placement.Result{}, err
	}
	p.Items = store.All()
	p.Touch()
	return it, res, nil
}

// MoveItem places an existing item at (x, y), ignoring its old position.
func (p *Planogram) MoveItem(uid string, x, y float64, opts placement.Options) (items.Item, placement.Result, error) {
	it, ok := p.Item(uid)
	if !ok {
		return items.Item{}, placement.Result{}, errors.New(errors.ErrCodeItemNotFound, "item %q not found", uid)
	}
	res, err := p.Preview(footprintOf(it), x, y, uid, opts)
	if err != nil {
		return items.Item{}, placement.Result{}, err
	}
	store, err := items.NewStore(p.Items...)
	if err != nil {
		return items.Item{}, placement.Result{}, err
	}
	moved, err := store.Move(uid, res.Bin, res.X, res.Bottom)
	if err != nil {
		return items.Item{}, placement.Result{}, err
	}
	p.Items = store.All()
	p.Touch()
	return moved, res, nil
}

// RemoveItem deletes an item.
func (p *Planogram) RemoveItem(uid string) error {
	store, err := items.NewStore(p.Items...)
	if err != nil {
		return err
	}
	if err := store.Remove(uid); err != nil {
		return err
	}
	p.Items = store.All()
	p.Touch()
	return nil
}

// Item returns the item with the given UID.
func (p *Planogram) Item(uid string) (items.Item, bool) {
	for _, it := range p.Items {
		if it.UID == uid {
			return it, true
		}
	}
	return items.Item{}, false
}

// ItemY returns the top-down Y of it.
func (p *Planogram) ItemY(it items.Item) float64 {
	return placement.TopDownY(p.Height, it.Bottom, it.Height)
}

// Supports recomputes what every item rests on.
func (p *Planogram) Supports(opts placement.Options) (map[string]placement.Support, error) {
	e, err := p.Engine(opts)
	if err != nil {
		return nil, err
	}
	return e.Supports()
}
