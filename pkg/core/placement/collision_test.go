package placement

import (
	"testing"

	"github.com/matzehuels/shelfplan/pkg/core/items"
	"github.com/matzehuels/shelfplan/pkg/errors"
)

func box(uid string, x, bottom, width, height float64) items.Item {
	return items.Item{UID: uid, X: x, Bottom: bottom, Width: width, Height: height}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		width   float64 // layout width, one bin
		placed  []items.Item
		x       float64
		bottom  float64
		exclude string
		want    Resolution
	}{
		{
			name:   "no collision",
			width:  120,
			placed: []items.Item{box("a", 0, 0, 20, 10)},
			x:      30,
			want:   Resolution{X: 30},
		},
		{
			name:   "push right",
			width:  40,
			placed: []items.Item{box("a", 0, 0, 20, 10)},
			x:      10,
			want:   Resolution{X: 20, With: "a", Direction: PushRight},
		},
		{
			name:   "push left is shorter",
			width:  120,
			placed: []items.Item{box("a", 50, 0, 20, 10)},
			x:      35,
			want:   Resolution{X: 30, With: "a", Direction: PushLeft},
		},
		{
			name:   "tie goes right",
			width:  120,
			placed: []items.Item{box("a", 50, 0, 20, 10)},
			x:      50,
			want:   Resolution{X: 70, With: "a", Direction: PushRight},
		},
		{
			name:   "right out of bounds falls back left",
			width:  40,
			placed: []items.Item{box("a", 20, 0, 20, 10)},
			x:      20,
			want:   Resolution{X: 0, With: "a", Direction: PushLeft},
		},
		{
			name:   "no room either side",
			width:  30,
			placed: []items.Item{box("a", 0, 0, 20, 10)},
			x:      5,
			want:   Resolution{X: 5, With: "a", Unresolved: true},
		},
		{
			name:   "stacked directly above",
			width:  120,
			placed: []items.Item{box("a", 0, 0, 20, 10)},
			x:      5,
			bottom: 10,
			want:   Resolution{X: 5},
		},
		{
			name:   "vertical overlap beyond tolerance",
			width:  120,
			placed: []items.Item{box("a", 0, 0, 20, 10)},
			x:      5,
			bottom: 9,
			want:   Resolution{X: 20, With: "a", Direction: PushRight},
		},
		{
			name:   "edges touching within tolerance",
			width:  120,
			placed: []items.Item{box("a", 0, 0, 20, 10)},
			x:      19.6,
			want:   Resolution{X: 19.6},
		},
		{
			name:    "excluded item is ignored",
			width:   40,
			placed:  []items.Item{box("a", 0, 0, 20, 10)},
			x:       10,
			exclude: "a",
			want:    Resolution{X: 10},
		},
		{
			name:   "only the first collision is resolved",
			width:  120,
			placed: []items.Item{box("a", 0, 0, 20, 10), box("c", 15, 0, 20, 10)},
			x:      10,
			want:   Resolution{X: 20, With: "a", Direction: PushRight},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEngine(t, floorTopology(t, 0, tt.width), tt.placed...)
			got, err := e.Resolve(tt.x, tt.bottom, 20, 10, tt.exclude)
			if err != nil {
				t.Fatalf("Resolve() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Resolve() = %+v, want %+v", got, tt.want)
			}

			x, err := e.ResolveHorizontal(tt.x, tt.bottom, 20, 10, tt.exclude)
			if err != nil || x != tt.want.X {
				t.Errorf("ResolveHorizontal() = %v, %v, want %v", x, err, tt.want.X)
			}
		})
	}
}

func TestResolveInvalidInput(t *testing.T) {
	e := newEngine(t, floorTopology(t, 0, 120))

	if _, err := e.Resolve(0, 0, -5, 10, ""); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("negative width error = %v, want INVALID_INPUT", err)
	}
	if _, err := e.Resolve(0, 0, 5, -10, ""); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("negative height error = %v, want INVALID_INPUT", err)
	}
}
