package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/shelfplan/pkg/core/placement"
	"github.com/matzehuels/shelfplan/pkg/core/topology"
	"github.com/matzehuels/shelfplan/pkg/planogram"
	"github.com/matzehuels/shelfplan/pkg/render/supportgraph"
	"github.com/matzehuels/shelfplan/pkg/storage"
)

// stdout and stderr are where status output goes; tests replace them.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleHeader  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleBorder  = lipgloss.NewStyle().Foreground(colorDim)
	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	printLine(styleIconSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	printLine(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(fmt.Sprintf(format, args...)))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	printLine(styleIconInfo.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	printLine("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a file output line.
func printFile(path string) {
	printLine("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	printLine(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// printStats prints planogram counts on a single line.
func printStats(units, items int) {
	parts := []string{fmt.Sprintf("%d units", units), fmt.Sprintf("%d items", items)}
	printLine("  " + StyleDim.Render(strings.Join(parts, " · ")))
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	printLine(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// printNewline prints an empty line.
func printNewline() {
	fmt.Fprintln(stdout)
}

// printLine prints s followed by a newline.
func printLine(s string) {
	fmt.Fprintln(stdout, s)
}

// =============================================================================
// Planogram Output
// =============================================================================

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

// printSummaries prints the planogram listing.
func printSummaries(list []storage.Summary) {
	t := newTable("ID", "Name", "Units", "Items", "Size (cm)", "Updated")
	for _, s := range list {
		t.Row(s.ID, s.Name, fmt.Sprint(s.Units), fmt.Sprint(s.Items),
			fmt.Sprintf("%g × %g", s.Width, s.Height), formatRelativeTime(s.UpdatedAt))
	}
	printLine(t.Render())
}

// printPlanogram prints the header and the unit/surface table.
func printPlanogram(p *planogram.Planogram) {
	printLine(StyleTitle.Render(p.Name) + " " + StyleDim.Render(p.ID))
	printDetail("%g × %gcm · updated %s", p.TotalWidth(), p.Height, formatRelativeTime(p.UpdatedAt))

	t := newTable("Unit", "Width", "Surfaces")
	for _, u := range p.Units {
		surfaces := make([]string, len(u.Surfaces))
		for i, s := range u.Surfaces {
			surfaces[i] = fmt.Sprintf("%s@%g", s.ID, s.Height)
			if s.Kind == topology.Rail {
				surfaces[i] += " (rail)"
			}
		}
		t.Row(u.ID, fmt.Sprintf("%gcm", p.UnitWidth(u)), strings.Join(surfaces, ", "))
	}
	printLine(t.Render())
}

// printItems prints every item with what it rests on.
func printItems(p *planogram.Planogram, supports map[string]placement.Support) {
	t := newTable("UID", "Item", "Unit", "X", "Bottom", "W × H", "Rests on")
	for _, it := range p.Items {
		var s *placement.Support
		if sup, ok := supports[it.UID]; ok {
			s = &sup
		}
		unit := ""
		if it.Bin >= 0 && it.Bin < len(p.Units) {
			unit = p.Units[it.Bin].ID
		}
		rest := describeSupport(s)
		if s != nil && s.Kind == placement.SupportSurface && s.Bin < len(p.Units) && s.SurfaceIndex < len(p.Units[s.Bin].Surfaces) {
			rest = p.Units[s.Bin].Surfaces[s.SurfaceIndex].ID
		}
		t.Row(it.UID, supportgraph.ItemLabel(it), unit, fmt.Sprintf("%g", it.X), fmt.Sprintf("%g", it.Bottom),
			fmt.Sprintf("%g × %g", it.Width, it.Height), rest)
	}
	printLine(t.Render())
}

// printPlacement prints where an item landed.
func printPlacement(res placement.Result) {
	printKeyValue("Unit", fmt.Sprintf("%d", res.Bin))
	printKeyValue("Position", fmt.Sprintf("x=%g (local %g) y=%g", res.X, res.LocalX, res.Y))
	printKeyValue("Bottom", fmt.Sprintf("%gcm above the floor", res.Bottom))
	printKeyValue("Rests on", describeSupport(res.Support))
	switch {
	case res.Collision.Unresolved:
		printWarning("Overlaps %s; no room on either side", res.Collision.With)
	case res.Collision.With != "":
		printDetail("Pushed %s of %s", res.Collision.Direction, res.Collision.With)
	}
	if res.Floating() {
		printWarning("Nothing within reach below; the item floats")
	}
}

// =============================================================================
// Helpers
// =============================================================================

func formatRelativeTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	diff := time.Since(t)
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	}
	return t.Format("Jan 2, 2006")
}
