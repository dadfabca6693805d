package planogram

import (
	"testing"
	"time"

	"github.com/matzehuels/shelfplan/pkg/core/items"
	"github.com/matzehuels/shelfplan/pkg/core/topology"
	"github.com/matzehuels/shelfplan/pkg/errors"
)

func TestNewDefaults(t *testing.T) {
	p := New("demo")

	if p.Height != DefaultHeight || p.DefaultUnitWidth != DefaultUnitWidth {
		t.Errorf("dimensions = %v x %v", p.DefaultUnitWidth, p.Height)
	}
	if len(p.Units) != DefaultUnitCount {
		t.Fatalf("units = %d, want %d", len(p.Units), DefaultUnitCount)
	}
	if p.Units[0].ID != "unit-0" || p.Units[1].ID != "unit-1" {
		t.Errorf("unit ids = %s, %s", p.Units[0].ID, p.Units[1].ID)
	}
	for _, u := range p.Units {
		if len(u.Surfaces) != len(DefaultSurfaceHeights) {
			t.Fatalf("unit %s has %d surfaces", u.ID, len(u.Surfaces))
		}
		for i, s := range u.Surfaces {
			if s.Height != DefaultSurfaceHeights[i] {
				t.Errorf("unit %s surface %d at %v, want %v", u.ID, i, s.Height, DefaultSurfaceHeights[i])
			}
		}
		if !u.Surfaces[0].IsBase() || u.Surfaces[0].Thickness != BaseThickness {
			t.Errorf("unit %s base = %+v", u.ID, u.Surfaces[0])
		}
	}
	if !p.ShowGrid || !p.ShowMeasurements {
		t.Error("display flags should default to on")
	}
	if err := p.Validate(); err != nil {
		t.Errorf("Validate() error: %v", err)
	}
	if p.TotalWidth() != 240 {
		t.Errorf("TotalWidth() = %v, want 240", p.TotalWidth())
	}
}

func TestTopology(t *testing.T) {
	p := New("demo")
	p.Units[1].Width = 90
	p.Units[1].Surfaces[0].Thickness = 0 // falls back to BaseThickness
	p.Units[1].Surfaces[1].Thickness = 0 // falls back to ShelfThickness
	p.Units[1].Surfaces = append(p.Units[1].Surfaces, Surface{ID: "rail", Height: 180, Kind: topology.Rail})

	topo, err := p.Topology()
	if err != nil {
		t.Fatalf("Topology() error: %v", err)
	}
	if topo.TotalWidth() != 210 {
		t.Errorf("TotalWidth() = %v, want 210", topo.TotalWidth())
	}
	surfaces, _ := topo.SurfacesOf(1)
	if got := surfaces[0].TopY(); got != BaseThickness {
		t.Errorf("base top = %v, want %v", got, BaseThickness)
	}
	if got := surfaces[1].TopY(); got != 40+ShelfThickness {
		t.Errorf("shelf top = %v, want %v", got, 40+ShelfThickness)
	}
	if got := surfaces[len(surfaces)-1].TopY(); got != 180 {
		t.Errorf("rail top = %v, want 180", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Planogram)
		code   errors.Code
	}{
		{"no units", func(p *Planogram) { p.Units = nil }, errors.ErrCodeInvalidTopology},
		{"zero height", func(p *Planogram) { p.Height = 0 }, errors.ErrCodeInvalidInput},
		{"bad id", func(p *Planogram) { p.ID = "../etc" }, errors.ErrCodeInvalidInput},
		{"duplicate unit", func(p *Planogram) { p.Units[1].ID = p.Units[0].ID }, errors.ErrCodeInvalidInput},
		{"missing base", func(p *Planogram) { p.Units[0].Surfaces = p.Units[0].Surfaces[1:] }, errors.ErrCodeInvalidSurface},
		{"two bases", func(p *Planogram) { p.Units[0].Surfaces[1].Height = 0 }, errors.ErrCodeInvalidSurface},
		{"surface above top", func(p *Planogram) { p.Units[0].Surfaces[4].Height = 250 }, errors.ErrCodeInvalidSurface},
		{"bad kind", func(p *Planogram) { p.Units[0].Surfaces[2].Kind = "magnet" }, errors.ErrCodeInvalidSurface},
		{"item in missing unit", func(p *Planogram) {
			p.Items = []items.Item{{UID: "x", Bin: 5, Width: 10, Height: 10}}
		}, errors.ErrCodeInvalidInput},
		{"item in wrong unit", func(p *Planogram) {
			p.Items = []items.Item{{UID: "x", Bin: 0, X: 130, Width: 10, Height: 10}}
		}, errors.ErrCodeInvalidInput},
		{"duplicate item", func(p *Planogram) {
			p.Items = []items.Item{{UID: "x", Width: 10, Height: 10}, {UID: "x", Width: 5, Height: 5}}
		}, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New("demo")
			tt.mutate(p)
			if err := p.Validate(); !errors.Is(err, tt.code) {
				t.Errorf("Validate() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	p := &Planogram{
		Units: []Unit{{Surfaces: []Surface{
			{Height: 120, Kind: "hook"},
			{Height: 0, Kind: "flat"},
		}}},
		Items: []items.Item{{Width: 10, Height: 10}},
	}
	if err := p.Normalize(); err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	if p.ID == "" || p.Height != DefaultHeight || p.DefaultUnitWidth != DefaultUnitWidth {
		t.Errorf("defaults not applied: %+v", p)
	}
	u := p.Units[0]
	if u.ID != "unit-0" {
		t.Errorf("unit id = %q", u.ID)
	}
	if u.Surfaces[0].Kind != topology.Solid || u.Surfaces[1].Kind != topology.Rail {
		t.Errorf("surfaces = %+v, want base first and the hook as a rail", u.Surfaces)
	}
	if u.Surfaces[0].ID == "" || u.Surfaces[0].ID == u.Surfaces[1].ID {
		t.Errorf("surface ids = %q, %q", u.Surfaces[0].ID, u.Surfaces[1].ID)
	}
	if p.Items[0].UID == "" {
		t.Error("item uid not assigned")
	}

	bad := &Planogram{Units: []Unit{{Surfaces: []Surface{{Height: 0, Kind: "shelfish"}}}}}
	if err := bad.Normalize(); !errors.Is(err, errors.ErrCodeInvalidSurface) {
		t.Errorf("unknown kind error = %v, want INVALID_SURFACE", err)
	}
}

func TestNormalizeDerivesItemUnit(t *testing.T) {
	p := New("demo")
	p.Items = []items.Item{
		{UID: "left", X: 10, Width: 10, Height: 10},
		{UID: "right", Bin: 0, X: 150, Width: 10, Height: 10},
	}
	if err := p.Normalize(); err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	if p.Items[0].Bin != 0 || p.Items[1].Bin != 1 {
		t.Errorf("item units = %d, %d, want 0, 1", p.Items[0].Bin, p.Items[1].Bin)
	}
}

func TestClone(t *testing.T) {
	p := New("demo")
	p.Items = []items.Item{{UID: "a", Width: 10, Height: 10}}

	c := p.Clone()
	c.Units[0].Surfaces[1].Height = 77
	c.Items[0].X = 50

	if p.Units[0].Surfaces[1].Height == 77 || p.Items[0].X == 50 {
		t.Error("Clone() shares state with the original")
	}
}

func TestTouch(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	orig := now
	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = orig })

	p := New("demo")
	p.AddUnit()
	if !p.UpdatedAt.Equal(fixed) {
		t.Errorf("UpdatedAt = %v, want %v", p.UpdatedAt, fixed)
	}
}

func TestNextID(t *testing.T) {
	tests := []struct {
		taken []string
		want  string
	}{
		{nil, "unit-0"},
		{[]string{"unit-0", "unit-1"}, "unit-2"},
		{[]string{"unit-4", "custom", "unit-1"}, "unit-5"},
		{[]string{"unit-x"}, "unit-0"},
	}
	for _, tt := range tests {
		if got := nextID("unit-", tt.taken); got != tt.want {
			t.Errorf("nextID(%v) = %q, want %q", tt.taken, got, tt.want)
		}
	}
}
