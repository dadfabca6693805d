// Package editor applies edits to stored planograms.
//
// A [Runner] is shared by the CLI, the interactive editor and the HTTP API.
// Every mutation loads the planogram from the repository, applies the edit to
// a copy, validates and saves it. Mutations of the same planogram are
// serialized; different planograms proceed in parallel.
package editor

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/shelfplan/pkg/catalog"
	"github.com/matzehuels/shelfplan/pkg/core/items"
	"github.com/matzehuels/shelfplan/pkg/core/placement"
	"github.com/matzehuels/shelfplan/pkg/core/topology"
	"github.com/matzehuels/shelfplan/pkg/errors"
	"github.com/matzehuels/shelfplan/pkg/observability"
	"github.com/matzehuels/shelfplan/pkg/planogram"
	"github.com/matzehuels/shelfplan/pkg/storage"
)

// Runner executes planogram edits against a repository.
type Runner struct {
	Repo    *storage.Repository
	Catalog *catalog.Catalog
	Options placement.Options
	Logger  *log.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewRunner creates a runner.
// A nil repo uses an in-memory backend, a nil catalog the built-in one and a
// nil logger log.Default().
func NewRunner(repo *storage.Repository, cat *catalog.Catalog, opts placement.Options, logger *log.Logger) *Runner {
	if repo == nil {
		repo = storage.NewRepository(storage.NewMemoryBackend(), nil)
	}
	if cat == nil {
		cat = catalog.Builtin()
	}
	if logger == nil {
		logger = log.Default()
	}
	opts.SetDefaults()
	return &Runner{
		Repo:    repo,
		Catalog: cat,
		Options: opts,
		Logger:  logger,
		locks:   make(map[string]*sync.Mutex),
	}
}

// DropRequest describes something to drop. When ProductID is set and Width
// and Height are zero the footprint comes from the catalog.
type DropRequest struct {
	ProductID string  `json:"product_id,omitempty"`
	Label     string  `json:"label,omitempty"`
	Width     float64 `json:"width,omitempty"`
	Height    float64 `json:"height,omitempty"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
}

// PlaceResult is the outcome of a committed drop or move.
type PlaceResult struct {
	Item      items.Item           `json:"item"`
	Placement placement.Result     `json:"placement"`
	Planogram *planogram.Planogram `json:"planogram"`
}

// Create stores a new planogram with the default layout.
func (r *Runner) Create(ctx context.Context, name string) (*planogram.Planogram, error) {
	p := planogram.New(name)
	if err := r.Repo.Save(ctx, p); err != nil {
		return nil, err
	}
	r.Logger.Info("created planogram", "id", p.ID, "name", name)
	return p, nil
}

// Import stores a planogram read from a file, replacing any with the same ID.
func (r *Runner) Import(ctx context.Context, p *planogram.Planogram) (*planogram.Planogram, error) {
	if err := p.Normalize(); err != nil {
		return nil, err
	}
	unlock := r.lock(p.ID)
	defer unlock()

	if err := r.Repo.Save(ctx, p); err != nil {
		return nil, err
	}
	r.Logger.Info("imported planogram", "id", p.ID, "units", len(p.Units), "items", len(p.Items))
	return p, nil
}

// Get loads a planogram.
func (r *Runner) Get(ctx context.Context, id string) (*planogram.Planogram, error) {
	return r.Repo.Load(ctx, id)
}

// List returns summaries of every stored planogram.
func (r *Runner) List(ctx context.Context) ([]storage.Summary, error) {
	return r.Repo.List(ctx)
}

// Delete removes a planogram.
func (r *Runner) Delete(ctx context.Context, id string) error {
	unlock := r.lock(id)
	defer unlock()

	if err := r.Repo.Delete(ctx, id); err != nil {
		return err
	}
	r.Logger.Info("deleted planogram", "id", id)
	return nil
}

// Drop places a new item and saves the planogram.
func (r *Runner) Drop(ctx context.Context, id string, req DropRequest) (*PlaceResult, error) {
	fp, err := r.Footprint(req)
	if err != nil {
		return nil, err
	}
	var out PlaceResult
	p, err := r.place(ctx, id, "drop", func(p *planogram.Planogram) (placement.Result, error) {
		it, res, err := p.Drop(fp, req.X, req.Y, r.Options)
		out.Item, out.Placement = it, res
		return res, err
	})
	if err != nil {
		return nil, err
	}
	out.Planogram = p
	r.Logger.Info("dropped item", "planogram", id, "uid", out.Item.UID, "bin", out.Item.Bin, "x", out.Item.X, "bottom", out.Item.Bottom)
	return &out, nil
}

// Move repositions an item and saves the planogram.
func (r *Runner) Move(ctx context.Context, id, uid string, x, y float64) (*PlaceResult, error) {
	var out PlaceResult
	p, err := r.place(ctx, id, "move", func(p *planogram.Planogram) (placement.Result, error) {
		it, res, err := p.MoveItem(uid, x, y, r.Options)
		out.Item, out.Placement = it, res
		return res, err
	})
	if err != nil {
		return nil, err
	}
	out.Planogram = p
	r.Logger.Info("moved item", "planogram", id, "uid", uid, "bin", out.Item.Bin, "x", out.Item.X, "bottom", out.Item.Bottom)
	return &out, nil
}

// Preview computes a placement without saving. exclude names an item to
// ignore, normally the one being dragged.
func (r *Runner) Preview(ctx context.Context, id string, req DropRequest, exclude string) (placement.Result, error) {
	fp, err := r.Footprint(req)
	if err != nil {
		return placement.Result{}, err
	}
	p, err := r.Repo.Load(ctx, id)
	if err != nil {
		return placement.Result{}, err
	}

	start := time.Now()
	res, err := p.Preview(fp, req.X, req.Y, exclude, r.Options)
	observability.Placement().OnPlace(ctx, "preview", id, res.Floating(), res.Collision.Unresolved, time.Since(start), err)
	return res, err
}

// Supports recomputes the resting relation of every item.
func (r *Runner) Supports(ctx context.Context, id string) (*planogram.Planogram, map[string]placement.Support, error) {
	p, err := r.Repo.Load(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	s, err := p.Supports(r.Options)
	if err != nil {
		return nil, nil, err
	}
	return p, s, nil
}

// RemoveItem deletes an item.
func (r *Runner) RemoveItem(ctx context.Context, id, uid string) (*planogram.Planogram, error) {
	return r.edit(ctx, id, "item.remove", func(p *planogram.Planogram) error {
		return p.RemoveItem(uid)
	})
}

// AddUnit appends a unit with the default surfaces.
func (r *Runner) AddUnit(ctx context.Context, id string) (*planogram.Planogram, error) {
	return r.edit(ctx, id, "unit.add", func(p *planogram.Planogram) error {
		p.AddUnit()
		return nil
	})
}

// RemoveUnit deletes a unit and the items in it.
func (r *Runner) RemoveUnit(ctx context.Context, id, unitID string) (*planogram.Planogram, error) {
	var removed []items.Item
	p, err := r.edit(ctx, id, "unit.remove", func(p *planogram.Planogram) error {
		var err error
		removed, err = p.RemoveUnit(unitID)
		return err
	})
	if err == nil && len(removed) > 0 {
		r.Logger.Warn("removed items with their unit", "planogram", id, "unit", unitID, "items", len(removed))
	}
	return p, err
}

// SetUnitWidth resizes a unit.
func (r *Runner) SetUnitWidth(ctx context.Context, id, unitID string, width float64) (*planogram.Planogram, error) {
	return r.edit(ctx, id, "unit.width", func(p *planogram.Planogram) error {
		return p.SetUnitWidth(unitID, width)
	})
}

// AddSurface adds a surface of the named kind ("solid", "rail" or an alias).
func (r *Runner) AddSurface(ctx context.Context, id, unitID, kind string) (*planogram.Planogram, error) {
	k, err := topology.ParseKind(kind)
	if err != nil {
		return nil, err
	}
	return r.edit(ctx, id, "surface.add", func(p *planogram.Planogram) error {
		_, err := p.AddSurface(unitID, k)
		return err
	})
}

// RemoveSurface deletes a surface.
func (r *Runner) RemoveSurface(ctx context.Context, id, unitID, surfaceID string) (*planogram.Planogram, error) {
	return r.edit(ctx, id, "surface.remove", func(p *planogram.Planogram) error {
		return p.RemoveSurface(unitID, surfaceID)
	})
}

// MoveSurface changes the height of a surface.
func (r *Runner) MoveSurface(ctx context.Context, id, unitID, surfaceID string, height float64) (*planogram.Planogram, error) {
	return r.edit(ctx, id, "surface.move", func(p *planogram.Planogram) error {
		_, err := p.MoveSurface(unitID, surfaceID, height)
		return err
	})
}

// Footprint resolves the rectangle a request drops.
func (r *Runner) Footprint(req DropRequest) (planogram.Footprint, error) {
	if req.ProductID != "" && req.Width == 0 && req.Height == 0 {
		pr, err := r.Catalog.Find(req.ProductID)
		if err != nil {
			return planogram.Footprint{}, err
		}
		fp := planogram.ProductFootprint(pr)
		if req.Label != "" {
			fp.Label = req.Label
		}
		return fp, nil
	}
	if err := errors.ValidateDimension("width", req.Width); err != nil {
		return planogram.Footprint{}, err
	}
	if err := errors.ValidateDimension("height", req.Height); err != nil {
		return planogram.Footprint{}, err
	}
	return planogram.Footprint{Width: req.Width, Height: req.Height, ProductID: req.ProductID, Label: req.Label}, nil
}

// place runs a placing mutation and reports it to the placement hooks.
func (r *Runner) place(ctx context.Context, id, op string, fn func(p *planogram.Planogram) (placement.Result, error)) (*planogram.Planogram, error) {
	var res placement.Result
	start := time.Now()
	p, err := r.mutate(ctx, id, func(p *planogram.Planogram) error {
		var err error
		res, err = fn(p)
		return err
	})
	observability.Placement().OnPlace(ctx, op, id, res.Floating(), res.Collision.Unresolved, time.Since(start), err)
	if err == nil && res.Collision.Unresolved {
		r.Logger.Warn("item overlaps a neighbour, no room to push it aside", "planogram", id, "with", res.Collision.With)
	}
	return p, err
}

// edit runs a structural mutation and reports it to the placement hooks.
func (r *Runner) edit(ctx context.Context, id, op string, fn func(p *planogram.Planogram) error) (*planogram.Planogram, error) {
	start := time.Now()
	p, err := r.mutate(ctx, id, fn)
	observability.Placement().OnEdit(ctx, op, id, time.Since(start), err)
	if err != nil {
		r.Logger.Debug("edit failed", "op", op, "planogram", id, "err", err)
		return nil, err
	}
	r.Logger.Info("edited planogram", "op", op, "planogram", id)
	return p, nil
}

// mutate loads id, applies fn to a copy, and saves the copy when fn succeeds.
func (r *Runner) mutate(ctx context.Context, id string, fn func(p *planogram.Planogram) error) (*planogram.Planogram, error) {
	unlock := r.lock(id)
	defer unlock()

	stored, err := r.Repo.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	p := stored.Clone()
	if err := fn(p); err != nil {
		return nil, err
	}
	if err := r.Repo.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *Runner) lock(id string) func() {
	r.mu.Lock()
	if r.locks == nil {
		r.locks = make(map[string]*sync.Mutex)
	}
	m, ok := r.locks[id]
	if !ok {
		m = &sync.Mutex{}
		r.locks[id] = m
	}
	r.mu.Unlock()

	m.Lock()
	return m.Unlock
}
