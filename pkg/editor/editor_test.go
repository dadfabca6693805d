package editor

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/shelfplan/pkg/core/placement"
	"github.com/matzehuels/shelfplan/pkg/core/topology"
	"github.com/matzehuels/shelfplan/pkg/errors"
	"github.com/matzehuels/shelfplan/pkg/observability"
)

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	return NewRunner(nil, nil, placement.Options{}, log.New(io.Discard))
}

func TestCreateGetListDelete(t *testing.T) {
	ctx := context.Background()
	r := newTestRunner(t)

	p, err := r.Create(ctx, "aisle 1")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	got, err := r.Get(ctx, p.ID)
	if err != nil || got.Name != "aisle 1" {
		t.Fatalf("Get = %+v, %v", got, err)
	}

	list, err := r.List(ctx)
	if err != nil || len(list) != 1 || list[0].ID != p.ID {
		t.Errorf("List = %+v, %v", list, err)
	}

	if err := r.Delete(ctx, p.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := r.Get(ctx, p.ID); !errors.Is(err, errors.ErrCodePlanogramNotFound) {
		t.Errorf("Get after delete error = %v", err)
	}
}

func TestDropAndMove(t *testing.T) {
	ctx := context.Background()
	r := newTestRunner(t)
	p, _ := r.Create(ctx, "aisle 2")

	// Catalog product p5 is 40x30; Y 165 puts its bottom at 5.
	dropped, err := r.Drop(ctx, p.ID, DropRequest{ProductID: "p5", X: 10, Y: 165})
	if err != nil {
		t.Fatalf("Drop error: %v", err)
	}
	if dropped.Item.Width != 40 || dropped.Item.Height != 30 || dropped.Item.Bottom != 5 {
		t.Errorf("dropped = %+v", dropped.Item)
	}

	moved, err := r.Move(ctx, p.ID, dropped.Item.UID, 150, 165)
	if err != nil {
		t.Fatalf("Move error: %v", err)
	}
	if moved.Item.Bin != 1 || moved.Item.X != 150 {
		t.Errorf("moved = %+v", moved.Item)
	}

	stored, _ := r.Get(ctx, p.ID)
	if len(stored.Items) != 1 || stored.Items[0].X != 150 {
		t.Errorf("stored items = %+v", stored.Items)
	}

	stored, err = r.RemoveItem(ctx, p.ID, dropped.Item.UID)
	if err != nil || len(stored.Items) != 0 {
		t.Errorf("RemoveItem = %v items, %v", len(stored.Items), err)
	}
}

func TestDropValidation(t *testing.T) {
	ctx := context.Background()
	r := newTestRunner(t)
	p, _ := r.Create(ctx, "aisle 3")

	if _, err := r.Drop(ctx, p.ID, DropRequest{ProductID: "zz"}); !errors.Is(err, errors.ErrCodeProductNotFound) {
		t.Errorf("unknown product error = %v", err)
	}
	if _, err := r.Drop(ctx, p.ID, DropRequest{Width: -1, Height: 5}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("negative width error = %v", err)
	}
	if _, err := r.Drop(ctx, "missing", DropRequest{Width: 1, Height: 1}); !errors.Is(err, errors.ErrCodePlanogramNotFound) {
		t.Errorf("missing planogram error = %v", err)
	}
}

func TestPreviewDoesNotSave(t *testing.T) {
	ctx := context.Background()
	r := newTestRunner(t)
	p, _ := r.Create(ctx, "aisle 4")

	res, err := r.Preview(ctx, p.ID, DropRequest{Width: 20, Height: 10, X: 10, Y: 140}, "")
	if err != nil {
		t.Fatalf("Preview error: %v", err)
	}
	if res.Bottom != 43 {
		t.Errorf("preview bottom = %v, want 43", res.Bottom)
	}
	stored, _ := r.Get(ctx, p.ID)
	if len(stored.Items) != 0 {
		t.Error("Preview saved an item")
	}
}

func TestStructuralEdits(t *testing.T) {
	ctx := context.Background()
	r := newTestRunner(t)
	p, _ := r.Create(ctx, "aisle 5")

	p, err := r.AddUnit(ctx, p.ID)
	if err != nil || len(p.Units) != 3 {
		t.Fatalf("AddUnit = %d units, %v", len(p.Units), err)
	}
	p, err = r.SetUnitWidth(ctx, p.ID, "unit-2", 60)
	if err != nil || p.TotalWidth() != 300 {
		t.Fatalf("SetUnitWidth = %v, %v", p.TotalWidth(), err)
	}
	if _, err := r.RemoveSurface(ctx, p.ID, "unit-2", "surface-4"); err != nil {
		t.Fatal(err)
	}
	p, err = r.AddSurface(ctx, p.ID, "unit-2", "hook")
	if err != nil {
		t.Fatalf("AddSurface error: %v", err)
	}
	last := p.Units[2].Surfaces[len(p.Units[2].Surfaces)-1]
	if last.Kind != topology.Rail || last.Height != 160 {
		t.Errorf("added surface = %+v", last)
	}
	p, err = r.MoveSurface(ctx, p.ID, "unit-2", last.ID, 150)
	if err != nil {
		t.Fatalf("MoveSurface error: %v", err)
	}
	p, err = r.RemoveUnit(ctx, p.ID, "unit-0")
	if err != nil || len(p.Units) != 2 {
		t.Errorf("RemoveUnit = %d units, %v", len(p.Units), err)
	}

	if _, err := r.AddSurface(ctx, p.ID, "unit-1", "shelfish"); !errors.Is(err, errors.ErrCodeInvalidSurface) {
		t.Errorf("bad kind error = %v", err)
	}
}

func TestFailedEditIsNotSaved(t *testing.T) {
	ctx := context.Background()
	r := newTestRunner(t)
	p, _ := r.Create(ctx, "aisle 6")

	if _, err := r.RemoveSurface(ctx, p.ID, "unit-0", "surface-0"); !errors.Is(err, errors.ErrCodePolicyViolation) {
		t.Fatalf("removing base error = %v", err)
	}
	stored, _ := r.Get(ctx, p.ID)
	if len(stored.Units[0].Surfaces) != 5 {
		t.Errorf("surfaces = %d, want 5", len(stored.Units[0].Surfaces))
	}
}

func TestConcurrentDropsAreSerialized(t *testing.T) {
	ctx := context.Background()
	r := newTestRunner(t)
	p, _ := r.Create(ctx, "busy")

	const n = 20
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := DropRequest{Width: 10, Height: 10, X: float64(i * 12), Y: 185}
			if _, err := r.Drop(ctx, p.ID, req); err != nil {
				t.Errorf("Drop %d error: %v", i, err)
			}
		}()
	}
	wg.Wait()

	stored, _ := r.Get(ctx, p.ID)
	if len(stored.Items) != n {
		t.Errorf("items = %d, want %d", len(stored.Items), n)
	}
}

type countingHooks struct {
	observability.NoopPlacementHooks
	places, edits atomic.Int32
}

func (h *countingHooks) OnPlace(context.Context, string, string, bool, bool, time.Duration, error) {
	h.places.Add(1)
}

func (h *countingHooks) OnEdit(context.Context, string, string, time.Duration, error) {
	h.edits.Add(1)
}

func TestHooks(t *testing.T) {
	hooks := &countingHooks{}
	observability.SetPlacementHooks(hooks)
	t.Cleanup(observability.Reset)

	ctx := context.Background()
	r := newTestRunner(t)
	p, _ := r.Create(ctx, "observed")

	_, _ = r.Drop(ctx, p.ID, DropRequest{Width: 10, Height: 10, X: 0, Y: 185})
	_, _ = r.Preview(ctx, p.ID, DropRequest{Width: 10, Height: 10}, "")
	_, _ = r.AddUnit(ctx, p.ID)

	if hooks.places.Load() != 2 || hooks.edits.Load() != 1 {
		t.Errorf("places = %d, edits = %d", hooks.places.Load(), hooks.edits.Load())
	}
}
