package cli

import (
	"strings"
	"testing"

	"github.com/matzehuels/shelfplan/pkg/core/items"
	"github.com/matzehuels/shelfplan/pkg/core/placement"
	"github.com/matzehuels/shelfplan/pkg/planogram"
)

func TestRenderElevation(t *testing.T) {
	p := planogram.New("front")
	p.Items = []items.Item{
		{UID: "resting", Bin: 0, X: 8, Bottom: 5, Width: 16, Height: 10, Label: "Soap"},
		{UID: "adrift", Bin: 1, X: 200, Bottom: 100, Width: 8, Height: 8},
	}
	supports := map[string]placement.Support{"resting": {Kind: placement.SupportSurface}}

	out := renderElevation(p, supports, 4)
	lines := strings.Split(out, "\n")

	// 200cm at 8cm per row, then a blank line and one legend line per item.
	if got := len(lines); got != 25+1+2 {
		t.Fatalf("lines = %d, want 28:\n%s", got, out)
	}
	grid := strings.Join(lines[:25], "\n")
	for _, want := range []string{"=", "┊", "A", "B"} {
		if !strings.Contains(grid, want) {
			t.Errorf("grid missing %q:\n%s", want, grid)
		}
	}
	if !strings.Contains(lines[26], "A  resting  Soap") {
		t.Errorf("legend line = %q", lines[26])
	}
	if strings.Contains(lines[26], "floating") || !strings.Contains(lines[27], "floating") {
		t.Errorf("floating flags wrong: %q / %q", lines[26], lines[27])
	}
}

func TestElevationRows(t *testing.T) {
	e := newElevation(100, 200, 4)
	tests := []struct {
		y    float64
		want int
	}{
		{200, 0},
		{199, 0},
		{0, 24},
		{-5, 24},
		{300, 0},
		{100, 12},
	}
	for _, tt := range tests {
		if got := e.row(tt.y); got != tt.want {
			t.Errorf("row(%v) = %d, want %d", tt.y, got, tt.want)
		}
	}
}
