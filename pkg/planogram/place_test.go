package planogram

import (
	"testing"

	"github.com/matzehuels/shelfplan/pkg/catalog"
	"github.com/matzehuels/shelfplan/pkg/core/items"
	"github.com/matzehuels/shelfplan/pkg/core/placement"
	"github.com/matzehuels/shelfplan/pkg/errors"
)

// mustDrop drops a 20x10 item with its bottom at the given floor height.
func mustDrop(t *testing.T, p *Planogram, x, bottom float64) items.Item {
	t.Helper()
	it, _, err := p.Drop(Footprint{Width: 20, Height: 10}, x, placement.TopDownY(p.Height, bottom, 10), placement.Options{})
	if err != nil {
		t.Fatalf("Drop() error: %v", err)
	}
	return it
}

func TestDrop(t *testing.T) {
	p := New("demo")

	it, res, err := p.Drop(Footprint{Width: 20, Height: 10, ProductID: "p7"}, 10, 140, placement.Options{})
	if err != nil {
		t.Fatalf("Drop() error: %v", err)
	}
	if it.UID == "" || it.ProductID != "p7" {
		t.Errorf("item = %+v", it)
	}
	if it.Bin != 0 || it.X != 10 || it.Bottom != 43 {
		t.Errorf("item at bin %d x %v bottom %v, want bin 0 x 10 bottom 43", it.Bin, it.X, it.Bottom)
	}
	if res.Y != 147 || p.ItemY(it) != 147 {
		t.Errorf("Y = %v / %v, want 147", res.Y, p.ItemY(it))
	}
	if len(p.Items) != 1 {
		t.Errorf("items = %d, want 1", len(p.Items))
	}

	second := mustDrop(t, p, 130, 8)
	if second.Bin != 1 || second.Bottom != BaseThickness {
		t.Errorf("second item at bin %d bottom %v, want bin 1 on the base", second.Bin, second.Bottom)
	}
}

func TestDropProduct(t *testing.T) {
	p := New("demo")
	pr, err := catalog.Builtin().Find("p5")
	if err != nil {
		t.Fatal(err)
	}

	it, _, err := p.Drop(ProductFootprint(pr), 0, 0, placement.Options{})
	if err != nil {
		t.Fatalf("Drop() error: %v", err)
	}
	if it.Width != 40 || it.Height != 30 || it.Label != pr.Name {
		t.Errorf("item = %+v", it)
	}
}

func TestDropCollision(t *testing.T) {
	p := New("demo")
	mustDrop(t, p, 10, 5)

	b := mustDrop(t, p, 20, 5)
	if b.X != 30 {
		t.Errorf("second item X = %v, want 30", b.X)
	}
}

func TestMoveItem(t *testing.T) {
	p := New("demo")
	a := mustDrop(t, p, 10, 5)

	moved, _, err := p.MoveItem(a.UID, 15, placement.TopDownY(p.Height, 5, 10), placement.Options{})
	if err != nil {
		t.Fatalf("MoveItem() error: %v", err)
	}
	if moved.X != 15 || moved.UID != a.UID {
		t.Errorf("moved = %+v, want same uid at x 15", moved)
	}
	if len(p.Items) != 1 {
		t.Errorf("items = %d, want 1", len(p.Items))
	}

	// Up to the 40 board.
	moved, _, err = p.MoveItem(a.UID, 15, placement.TopDownY(p.Height, 47, 10), placement.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if moved.Bottom != 43 {
		t.Errorf("bottom = %v, want 43", moved.Bottom)
	}

	if _, _, err := p.MoveItem("nope", 0, 0, placement.Options{}); !errors.Is(err, errors.ErrCodeItemNotFound) {
		t.Errorf("unknown item error = %v, want ITEM_NOT_FOUND", err)
	}
}

func TestPreviewDoesNotCommit(t *testing.T) {
	p := New("demo")
	before := p.UpdatedAt

	if _, err := p.Preview(Footprint{Width: 20, Height: 10}, 10, 100, "", placement.Options{}); err != nil {
		t.Fatal(err)
	}
	if len(p.Items) != 0 || !p.UpdatedAt.Equal(before) {
		t.Error("Preview() modified the planogram")
	}
}

func TestRemoveItem(t *testing.T) {
	p := New("demo")
	a := mustDrop(t, p, 10, 5)
	mustDrop(t, p, 60, 5)

	if err := p.RemoveItem(a.UID); err != nil {
		t.Fatalf("RemoveItem() error: %v", err)
	}
	if _, ok := p.Item(a.UID); ok || len(p.Items) != 1 {
		t.Errorf("item still present, items = %d", len(p.Items))
	}
	if err := p.RemoveItem(a.UID); !errors.Is(err, errors.ErrCodeItemNotFound) {
		t.Errorf("second removal error = %v, want ITEM_NOT_FOUND", err)
	}
}

func TestSupports(t *testing.T) {
	p := New("demo")
	a := mustDrop(t, p, 10, 5)
	b := mustDrop(t, p, 15, 18)

	got, err := p.Supports(placement.Options{})
	if err != nil {
		t.Fatalf("Supports() error: %v", err)
	}
	if s := got[a.UID]; s.Kind != placement.SupportSurface || s.SurfaceIndex != 0 {
		t.Errorf("a support = %+v, want base", s)
	}
	if s := got[b.UID]; s.Kind != placement.SupportItem || s.ItemUID != a.UID {
		t.Errorf("b support = %+v, want item a", s)
	}
}
