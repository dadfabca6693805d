package placement

import (
	"testing"

	"github.com/matzehuels/shelfplan/pkg/core/items"
	"github.com/matzehuels/shelfplan/pkg/core/topology"
	"github.com/matzehuels/shelfplan/pkg/errors"
)

// shelfTopology gives every bin a zero-thickness floor and a board whose top is at 40.
func shelfTopology(t *testing.T, widths ...float64) *topology.Topology {
	t.Helper()
	bins := make([]topology.Bin, len(widths))
	for i, w := range widths {
		bins[i] = topology.Bin{Width: w, Surfaces: []topology.Surface{
			{Height: 0, Kind: topology.Solid},
			{Height: 37, Kind: topology.Solid, Thickness: 3},
		}}
	}
	topo, err := topology.New(200, bins)
	if err != nil {
		t.Fatalf("topology.New() error: %v", err)
	}
	return topo
}

func floorTopology(t *testing.T, floorThickness float64, widths ...float64) *topology.Topology {
	t.Helper()
	bins := make([]topology.Bin, len(widths))
	for i, w := range widths {
		bins[i] = topology.Bin{Width: w, Surfaces: []topology.Surface{
			{Height: 0, Kind: topology.Solid, Thickness: floorThickness},
		}}
	}
	topo, err := topology.New(200, bins)
	if err != nil {
		t.Fatalf("topology.New() error: %v", err)
	}
	return topo
}

func newEngine(t *testing.T, topo *topology.Topology, placed ...items.Item) Engine {
	t.Helper()
	e, err := New(topo, placed, Options{})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return e
}

func TestFindBestSupportSurfaces(t *testing.T) {
	e := newEngine(t, shelfTopology(t, 120))

	tests := []struct {
		name    string
		bottom  float64
		wantOK  bool
		wantTop float64
		wantIdx int
	}{
		{"just above the board", 45, true, 40, 1},
		{"just below the board", 38, true, 40, 1},
		{"near the floor", 5, true, 0, 0},
		{"closer to floor than board", 19, true, 0, 0},
		{"closer to board than floor", 21, true, 40, 1},
		{"too far above", 75, false, 0, 0},
		{"exactly at tolerance", 70, false, 0, 0},
		{"just inside tolerance", 69.9, true, 40, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ok, err := e.FindBestSupport(0, tt.bottom, 10, 20, "")
			if err != nil {
				t.Fatalf("FindBestSupport() error: %v", err)
			}
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v (support %+v)", ok, tt.wantOK, s)
			}
			if !ok {
				return
			}
			if s.Kind != SupportSurface || s.TopY != tt.wantTop || s.SurfaceIndex != tt.wantIdx {
				t.Errorf("support = %+v, want surface %d at %v", s, tt.wantIdx, tt.wantTop)
			}
		})
	}
}

func TestFindBestSupportRail(t *testing.T) {
	topo, err := topology.New(200, []topology.Bin{{Width: 100, Surfaces: []topology.Surface{
		{Height: 0, Thickness: 5},
		{Height: 60, Kind: topology.Rail, Thickness: 3},
	}}})
	if err != nil {
		t.Fatal(err)
	}
	e := newEngine(t, topo)

	s, ok, err := e.FindBestSupport(0, 70, 0, 10, "")
	if err != nil || !ok {
		t.Fatalf("FindBestSupport() = %+v, %v, %v", s, ok, err)
	}
	if s.TopY != 60 {
		t.Errorf("rail top = %v, want 60", s.TopY)
	}
}

func TestFindBestSupportStacking(t *testing.T) {
	base := items.Item{UID: "a", X: 0, Bottom: 0, Width: 20, Height: 30}
	e := newEngine(t, floorTopology(t, 0, 120), base)

	tests := []struct {
		name   string
		x      float64
		wantOK bool
	}{
		{"half overlap", 10, true},
		{"40 percent overlap", 12, true},
		{"25 percent overlap", 15, false},
		{"exactly 30 percent", 14, false},
		{"disjoint", 40, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ok, err := e.FindBestSupport(0, 35, tt.x, 20, "")
			if err != nil {
				t.Fatalf("FindBestSupport() error: %v", err)
			}
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v (support %+v)", ok, tt.wantOK, s)
			}
			if ok && (s.Kind != SupportItem || s.ItemUID != "a" || s.TopY != 30) {
				t.Errorf("support = %+v, want top of a at 30", s)
			}
		})
	}
}

func TestFindBestSupportAcrossUnits(t *testing.T) {
	// A wide crate in bin 0 overhangs into bin 1 and carries a box dropped there.
	crate := items.Item{UID: "crate", Bin: 0, X: 100, Bottom: 0, Width: 40, Height: 30}
	e := newEngine(t, floorTopology(t, 0, 120, 120), crate)

	s, ok, err := e.FindBestSupport(1, 32, 125, 10, "")
	if err != nil {
		t.Fatalf("FindBestSupport() error: %v", err)
	}
	if !ok || s.Kind != SupportItem || s.ItemUID != "crate" {
		t.Fatalf("support = %+v, %v, want the crate", s, ok)
	}
	if s.Bin != 0 {
		t.Errorf("support bin = %d, want 0 (the crate's unit)", s.Bin)
	}
}

func TestFindBestSupportPrefersClosest(t *testing.T) {
	// Board top 40, item top 48: bottom 50 is 2 from the item and 10 from the board.
	stacked := items.Item{UID: "box", X: 0, Bottom: 40, Width: 30, Height: 8}
	e := newEngine(t, shelfTopology(t, 120), stacked)

	s, ok, err := e.FindBestSupport(0, 50, 0, 30, "")
	if err != nil || !ok {
		t.Fatalf("FindBestSupport() = %+v, %v, %v", s, ok, err)
	}
	if s.Kind != SupportItem || s.TopY != 48 {
		t.Errorf("support = %+v, want item top 48", s)
	}
}

func TestFindBestSupportTieGoesToSurface(t *testing.T) {
	// Item top and board top both at 40.
	beside := items.Item{UID: "tall", X: 0, Bottom: 0, Width: 30, Height: 40}
	e := newEngine(t, shelfTopology(t, 120), beside)

	s, ok, err := e.FindBestSupport(0, 45, 0, 30, "")
	if err != nil || !ok {
		t.Fatalf("FindBestSupport() = %+v, %v, %v", s, ok, err)
	}
	if s.Kind != SupportSurface {
		t.Errorf("support kind = %v, want surface on a tie", s.Kind)
	}
}

func TestFindBestSupportExclude(t *testing.T) {
	self := items.Item{UID: "self", X: 0, Bottom: 0, Width: 20, Height: 30}
	e := newEngine(t, floorTopology(t, 5, 120), self)

	s, ok, _ := e.FindBestSupport(0, 32, 0, 20, "")
	if !ok || s.Kind != SupportItem {
		t.Fatalf("without exclude support = %+v, %v, want the item itself", s, ok)
	}

	s, ok, _ = e.FindBestSupport(0, 32, 0, 20, "self")
	if !ok || s.Kind != SupportSurface || s.TopY != 5 {
		t.Errorf("with exclude support = %+v, %v, want floor top 5", s, ok)
	}
}

func TestFindBestSupportNoSurfaces(t *testing.T) {
	topo, err := topology.New(200, []topology.Bin{{Width: 50}})
	if err != nil {
		t.Fatal(err)
	}
	e := newEngine(t, topo)

	if _, ok, err := e.FindBestSupport(0, 0, 0, 10, ""); ok || err != nil {
		t.Errorf("FindBestSupport() ok=%v err=%v, want nothing", ok, err)
	}
}

func TestFindBestSupportErrors(t *testing.T) {
	e := newEngine(t, shelfTopology(t, 120))

	if _, _, err := e.FindBestSupport(3, 0, 0, 10, ""); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("bad bin error = %v, want INVALID_INPUT", err)
	}
	if _, _, err := e.FindBestSupport(0, 0, 0, -1, ""); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("negative width error = %v, want INVALID_INPUT", err)
	}
}

func TestSupports(t *testing.T) {
	floor := items.Item{UID: "a", X: 0, Bottom: 0, Width: 20, Height: 30}
	top := items.Item{UID: "b", X: 5, Bottom: 30, Width: 20, Height: 10}
	adrift := items.Item{UID: "c", X: 80, Bottom: 120, Width: 10, Height: 10}
	e := newEngine(t, floorTopology(t, 0, 120), floor, top, adrift)

	got, err := e.Supports()
	if err != nil {
		t.Fatalf("Supports() error: %v", err)
	}
	if s := got["a"]; s.Kind != SupportSurface || s.TopY != 0 {
		t.Errorf("a support = %+v, want floor", s)
	}
	if s := got["b"]; s.Kind != SupportItem || s.ItemUID != "a" {
		t.Errorf("b support = %+v, want item a", s)
	}
	if _, ok := got["c"]; ok {
		t.Errorf("c should float, got %+v", got["c"])
	}

	if _, _, err := e.SupportOf("missing"); !errors.Is(err, errors.ErrCodeItemNotFound) {
		t.Errorf("SupportOf(missing) error = %v, want ITEM_NOT_FOUND", err)
	}
}
