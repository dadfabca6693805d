package supportgraph

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/shelfplan/pkg/core/items"
	"github.com/matzehuels/shelfplan/pkg/core/placement"
	"github.com/matzehuels/shelfplan/pkg/core/topology"
	"github.com/matzehuels/shelfplan/pkg/planogram"
)

// Options configures diagram generation.
type Options struct {
	// Detailed adds positions and footprints to item labels.
	Detailed bool
}

// ToDOT converts a planogram and its support snapshot to Graphviz DOT.
func ToDOT(p *planogram.Planogram, supports map[string]placement.Support, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=BT;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.3;\n")

	for i, u := range p.Units {
		fmt.Fprintf(&buf, "\n  subgraph \"cluster_%d\" {\n", i)
		fmt.Fprintf(&buf, "    label=%q;\n", fmt.Sprintf("%s (%gcm)", u.ID, p.UnitWidth(u)))
		buf.WriteString("    style=\"rounded,dashed\";\n")
		for _, s := range u.Surfaces {
			fmt.Fprintf(&buf, "    %q [label=%q, shape=rect, style=filled, fillcolor=%s];\n",
				surfaceNode(u.ID, s.ID), fmt.Sprintf("%s @ %g", s.ID, s.Height), surfaceColor(s))
		}
		for _, it := range p.Items {
			if it.Bin != i {
				continue
			}
			fmt.Fprintf(&buf, "    %q [%s];\n", itemNode(it.UID), strings.Join(itemAttrs(it, supports, opts), ", "))
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("\n")
	for _, it := range p.Items {
		s, ok := supports[it.UID]
		if !ok {
			continue
		}
		switch s.Kind {
		case placement.SupportSurface:
			if s.Bin < 0 || s.Bin >= len(p.Units) {
				continue
			}
			u := p.Units[s.Bin]
			if s.SurfaceIndex < 0 || s.SurfaceIndex >= len(u.Surfaces) {
				continue
			}
			fmt.Fprintf(&buf, "  %q -> %q;\n", itemNode(it.UID), surfaceNode(u.ID, u.Surfaces[s.SurfaceIndex].ID))
		case placement.SupportItem:
			fmt.Fprintf(&buf, "  %q -> %q;\n", itemNode(it.UID), itemNode(s.ItemUID))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func surfaceNode(unitID, surfaceID string) string { return unitID + "/" + surfaceID }
func itemNode(uid string) string                  { return "item/" + uid }

func surfaceColor(s planogram.Surface) string {
	if s.Kind == topology.Rail {
		return "lightsteelblue"
	}
	return "burlywood"
}

// ItemLabel returns the display name of an item.
func ItemLabel(it items.Item) string {
	switch {
	case it.Label != "":
		return it.Label
	case it.ProductID != "":
		return it.ProductID
	case len(it.UID) > 8:
		return it.UID[:8]
	}
	return it.UID
}

func itemAttrs(it items.Item, supports map[string]placement.Support, opts Options) []string {
	label := ItemLabel(it)
	if opts.Detailed {
		label += fmt.Sprintf("\nx=%g bottom=%g\n%gx%g", it.X, it.Bottom, it.Width, it.Height)
	}
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if _, ok := supports[it.UID]; !ok {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=mistyrose", "color=red")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz <svg> tag (pt units, odd origin)
// with one that scales cleanly when embedded.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
