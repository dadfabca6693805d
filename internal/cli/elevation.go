package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/matzehuels/shelfplan/pkg/core/placement"
	"github.com/matzehuels/shelfplan/pkg/core/topology"
	"github.com/matzehuels/shelfplan/pkg/planogram"
	"github.com/matzehuels/shelfplan/pkg/render/supportgraph"
)

// defaultCellSize is the width in cm of one character in the elevation view.
// Rows are twice as tall to roughly match terminal glyphs.
const defaultCellSize = 4.0

const itemGlyphs = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// elevation is a character grid of a planogram seen from the front.
type elevation struct {
	cell   float64
	height float64
	grid   [][]rune
}

func newElevation(width, height, cell float64) *elevation {
	cols := max(int(math.Ceil(width/cell)), 1)
	rows := max(int(math.Ceil(height/(2*cell))), 1)
	grid := make([][]rune, rows)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", cols))
	}
	return &elevation{cell: cell, height: height, grid: grid}
}

// row maps a floor-relative height to a grid row; row 0 is the top.
func (e *elevation) row(y float64) int {
	r := int((e.height - y) / (2 * e.cell))
	return min(max(r, 0), len(e.grid)-1)
}

func (e *elevation) col(x float64) int {
	c := int(x / e.cell)
	return min(max(c, 0), len(e.grid[0])-1)
}

func (e *elevation) fill(x0, x1 float64, r0, r1 int, ch rune) {
	c0, c1 := e.col(x0), e.col(math.Max(x0, x1-1e-9))
	for r := r0; r <= r1; r++ {
		for c := c0; c <= c1; c++ {
			e.grid[r][c] = ch
		}
	}
}

func (e *elevation) String() string {
	lines := make([]string, len(e.grid))
	for i, row := range e.grid {
		lines[i] = "│" + string(row) + "│"
	}
	return strings.Join(lines, "\n")
}

// renderElevation draws units, surfaces and items as text, followed by a
// legend mapping glyphs to items. Floating items are flagged in the legend.
func renderElevation(p *planogram.Planogram, supports map[string]placement.Support, cell float64) string {
	if cell <= 0 {
		cell = defaultCellSize
	}
	e := newElevation(p.TotalWidth(), p.Height, cell)

	var origin float64
	for i, u := range p.Units {
		w := p.UnitWidth(u)
		for _, s := range u.Surfaces {
			ch := '='
			if s.Kind == topology.Rail {
				ch = '-'
			}
			r := e.row(s.Height)
			e.fill(origin, origin+w, r, r, ch)
		}
		if i > 0 {
			c := e.col(origin)
			for r := range e.grid {
				if e.grid[r][c] == ' ' {
					e.grid[r][c] = '┊'
				}
			}
		}
		origin += w
	}

	var legend []string
	for i, it := range p.Items {
		glyph := '#'
		if i < len(itemGlyphs) {
			glyph = rune(itemGlyphs[i])
		}
		top := e.row(it.Top() - 1e-9)
		bottom := max(top, e.row(it.Bottom+1e-9))
		e.fill(it.X, it.Right(), top, bottom, glyph)

		line := fmt.Sprintf("%c  %s  %s", glyph, it.UID, supportgraph.ItemLabel(it))
		if _, ok := supports[it.UID]; !ok {
			line += "  " + StyleWarning.Render("(floating)")
		}
		legend = append(legend, line)
	}

	out := e.String()
	if len(legend) > 0 {
		out += "\n\n" + strings.Join(legend, "\n")
	}
	return out
}
