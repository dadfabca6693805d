package topology

import (
	"testing"

	"github.com/matzehuels/shelfplan/pkg/errors"
)

func threeBins(t *testing.T) *Topology {
	t.Helper()
	topo, err := New(200, []Bin{
		{Width: 120, Surfaces: []Surface{{Height: 0, Kind: Solid, Thickness: 5}}},
		{Width: 80},
		{Width: 100, Surfaces: []Surface{{Height: 0, Thickness: 5}, {Height: 60, Kind: Rail}}},
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return topo
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name   string
		height float64
		bins   []Bin
		code   errors.Code
	}{
		{"no bins", 200, nil, errors.ErrCodeInvalidTopology},
		{"zero width", 200, []Bin{{Width: 0}}, errors.ErrCodeInvalidInput},
		{"negative width", 200, []Bin{{Width: -10}}, errors.ErrCodeInvalidInput},
		{"negative height", -1, []Bin{{Width: 10}}, errors.ErrCodeInvalidInput},
		{"negative surface", 200, []Bin{{Width: 10, Surfaces: []Surface{{Height: -5}}}}, errors.ErrCodeInvalidInput},
		{"negative thickness", 200, []Bin{{Width: 10, Surfaces: []Surface{{Height: 5, Thickness: -1}}}}, errors.ErrCodeInvalidInput},
		{"bad kind", 200, []Bin{{Width: 10, Surfaces: []Surface{{Height: 5, Kind: "shelf"}}}}, errors.ErrCodeInvalidSurface},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.height, tt.bins)
			if err == nil {
				t.Fatal("New() error = nil, want error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("New() code = %v, want %v", errors.GetCode(err), tt.code)
			}
		})
	}
}

func TestNewDefaultsKindToSolid(t *testing.T) {
	topo := threeBins(t)
	surfaces, err := topo.SurfacesOf(2)
	if err != nil {
		t.Fatalf("SurfacesOf() error: %v", err)
	}
	if surfaces[0].Kind != Solid {
		t.Errorf("Kind = %q, want %q", surfaces[0].Kind, Solid)
	}
}

func TestNewCopiesSurfaces(t *testing.T) {
	bins := []Bin{{Width: 50, Surfaces: []Surface{{Height: 40, Kind: Solid, Thickness: 3}}}}
	topo, err := New(100, bins)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	bins[0].Surfaces[0].Height = 90

	surfaces, _ := topo.SurfacesOf(0)
	if surfaces[0].Height != 40 {
		t.Errorf("surface height = %v after caller mutation, want 40", surfaces[0].Height)
	}
}

func TestTotalWidthAndOrigin(t *testing.T) {
	topo := threeBins(t)

	if got := topo.TotalWidth(); got != 300 {
		t.Errorf("TotalWidth() = %v, want 300", got)
	}
	if got := topo.Len(); got != 3 {
		t.Errorf("Len() = %v, want 3", got)
	}

	wantOrigins := []float64{0, 120, 200}
	for i, want := range wantOrigins {
		got, err := topo.Origin(i)
		if err != nil {
			t.Fatalf("Origin(%d) error: %v", i, err)
		}
		if got != want {
			t.Errorf("Origin(%d) = %v, want %v", i, got, want)
		}
	}
}

func TestWidthOf(t *testing.T) {
	topo := threeBins(t)

	w, err := topo.WidthOf(1)
	if err != nil {
		t.Fatalf("WidthOf(1) error: %v", err)
	}
	if w != 80 {
		t.Errorf("WidthOf(1) = %v, want 80", w)
	}

	for _, i := range []int{-1, 3} {
		if _, err := topo.WidthOf(i); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("WidthOf(%d) error = %v, want INVALID_INPUT", i, err)
		}
	}
}

func TestSurfacesOfOutOfRange(t *testing.T) {
	topo := threeBins(t)
	if _, err := topo.SurfacesOf(7); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("SurfacesOf(7) error = %v, want INVALID_INPUT", err)
	}
}

func TestBinAt(t *testing.T) {
	topo := threeBins(t)

	tests := []struct {
		name      string
		x         float64
		wantBin   int
		wantLocal float64
	}{
		{"origin", 0, 0, 0},
		{"inside first", 60, 0, 60},
		{"boundary belongs right", 120, 1, 0},
		{"just before boundary", 119.5, 0, 119.5},
		{"inside second", 150, 1, 30},
		{"inside last", 250, 2, 50},
		{"layout end extrapolates", 300, 2, 100},
		{"beyond end extrapolates", 340, 2, 140},
		{"left of layout", -10, 0, -10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bin, local := topo.BinAt(tt.x)
			if bin != tt.wantBin || local != tt.wantLocal {
				t.Errorf("BinAt(%v) = (%d, %v), want (%d, %v)", tt.x, bin, local, tt.wantBin, tt.wantLocal)
			}
		})
	}
}

func TestSurfaceTopY(t *testing.T) {
	tests := []struct {
		name    string
		surface Surface
		want    float64
	}{
		{"solid adds thickness", Surface{Height: 40, Kind: Solid, Thickness: 3}, 43},
		{"base", Surface{Height: 0, Kind: Solid, Thickness: 5}, 5},
		{"rail ignores thickness", Surface{Height: 60, Kind: Rail, Thickness: 3}, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.surface.TopY(); got != tt.want {
				t.Errorf("TopY() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    SurfaceKind
		wantErr bool
	}{
		{"solid", Solid, false},
		{"flat", Solid, false},
		{"", Solid, false},
		{"rail", Rail, false},
		{"hook", Rail, false},
		{"pegboard", "", true},
	}

	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseKind(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseKind(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBinsReturnsCopy(t *testing.T) {
	topo := threeBins(t)
	bins := topo.Bins()
	bins[2].Surfaces[1].Height = 10

	surfaces, _ := topo.SurfacesOf(2)
	if surfaces[1].Height != 60 {
		t.Errorf("Bins() leaked internal state: height = %v, want 60", surfaces[1].Height)
	}
}
