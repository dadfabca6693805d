package cli

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/shelfplan/pkg/core/items"
	"github.com/matzehuels/shelfplan/pkg/core/placement"
	"github.com/matzehuels/shelfplan/pkg/editor"
	"github.com/matzehuels/shelfplan/pkg/planogram"
	"github.com/matzehuels/shelfplan/pkg/render/supportgraph"
)

// nudgeSteps are the step sizes in cm cycled with + and -.
var nudgeSteps = []float64{1, 5, 10, 40}

const defaultStep = 1 // index into nudgeSteps

// Editor styles
var (
	editSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	editDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	editErrorStyle    = lipgloss.NewStyle().Foreground(colorRed)
)

// editCommand creates the "edit" command.
func (c *CLI) editCommand() *cobra.Command {
	var cellSize float64

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Move items interactively with the keyboard",
		Long: `Move items interactively with the keyboard.

Every nudge is placed like a drop: the item falls onto the nearest support and
is pushed out of overlaps, then the planogram is saved.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withRunner(cmd.Context(), func(r *editor.Runner) error {
				// Log lines would tear the alternate screen.
				r.Logger = log.New(io.Discard)
				m := newEditModel(cmd.Context(), r, args[0])
				m.cell = cellSize
				_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
				return err
			})
		},
	}

	cmd.Flags().Float64Var(&cellSize, "cell", defaultCellSize, "centimeters per character in the elevation view")
	return cmd
}

// =============================================================================
// editModel - interactive placement editor
// =============================================================================

type loadedMsg struct {
	p        *planogram.Planogram
	supports map[string]placement.Support
	err      error
}

type movedMsg struct {
	res *editor.PlaceResult
	err error
}

type removedMsg struct {
	p   *planogram.Planogram
	uid string
	err error
}

// editModel is the bubbletea model of the edit command.
type editModel struct {
	ctx    context.Context
	runner *editor.Runner
	id     string

	p        *planogram.Planogram
	supports map[string]placement.Support
	selected string // uid of the selected item
	step     int    // index into nudgeSteps
	cell     float64

	last   *placement.Result
	status string
	err    error
	busy   bool
}

func newEditModel(ctx context.Context, r *editor.Runner, id string) editModel {
	return editModel{ctx: ctx, runner: r, id: id, step: defaultStep, cell: defaultCellSize}
}

func (m editModel) Init() tea.Cmd {
	return m.load
}

func (m editModel) load() tea.Msg {
	p, supports, err := m.runner.Supports(m.ctx, m.id)
	return loadedMsg{p: p, supports: supports, err: err}
}

func (m editModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		m.busy = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.p, m.supports, m.err = msg.p, msg.supports, nil
		m.keepSelection()

	case movedMsg:
		m.busy = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.p, m.err = msg.res.Planogram, nil
		m.supports, _ = m.p.Supports(m.runner.Options)
		m.last = &msg.res.Placement
		m.status = placementStatus(msg.res.Placement)

	case removedMsg:
		m.busy = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.p, m.err, m.last = msg.p, nil, nil
		m.supports, _ = m.p.Supports(m.runner.Options)
		m.status = "removed " + msg.uid
		m.keepSelection()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m editModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "r":
		m.busy = true
		return m, m.load
	}
	if m.p == nil || m.busy {
		return m, nil
	}

	step := nudgeSteps[m.step]
	switch msg.String() {
	case "tab", "n":
		m.cycle(1)
	case "shift+tab", "p":
		m.cycle(-1)
	case "+", "=":
		m.step = min(m.step+1, len(nudgeSteps)-1)
	case "-", "_":
		m.step = max(m.step-1, 0)
	case "left", "h":
		return m.nudge(-step, 0)
	case "right", "l":
		return m.nudge(step, 0)
	case "up", "k":
		return m.nudge(0, -step)
	case "down", "j":
		return m.nudge(0, step)
	case "x", "delete":
		return m.remove()
	}
	return m, nil
}

// nudge moves the selected item by dx to the right and dy down (top-down).
func (m editModel) nudge(dx, dy float64) (tea.Model, tea.Cmd) {
	i := m.index()
	if i < 0 {
		return m, nil
	}
	it := m.p.Items[i]
	x, y := it.X+dx, m.p.ItemY(it)+dy
	m.busy = true
	ctx, r, id := m.ctx, m.runner, m.p.ID
	return m, func() tea.Msg {
		res, err := r.Move(ctx, id, it.UID, x, y)
		return movedMsg{res: res, err: err}
	}
}

func (m editModel) remove() (tea.Model, tea.Cmd) {
	i := m.index()
	if i < 0 {
		return m, nil
	}
	uid := m.p.Items[i].UID
	m.busy = true
	ctx, r, id := m.ctx, m.runner, m.p.ID
	return m, func() tea.Msg {
		p, err := r.RemoveItem(ctx, id, uid)
		return removedMsg{p: p, uid: uid, err: err}
	}
}

// index returns the position of the selected item, or -1.
func (m editModel) index() int {
	if m.p == nil {
		return -1
	}
	return slices.IndexFunc(m.p.Items, func(it items.Item) bool { return it.UID == m.selected })
}

func (m *editModel) cycle(delta int) {
	n := len(m.p.Items)
	if n == 0 {
		return
	}
	i := (max(m.index(), 0) + delta + n) % n
	m.selected = m.p.Items[i].UID
}

// keepSelection selects the first item when the selection is gone.
func (m *editModel) keepSelection() {
	if m.index() >= 0 {
		return
	}
	m.selected = ""
	if len(m.p.Items) > 0 {
		m.selected = m.p.Items[0].UID
	}
}

func (m editModel) View() string {
	var b strings.Builder

	if m.p == nil {
		if m.err != nil {
			return editErrorStyle.Render("error: "+m.err.Error()) + "\n" + editDimStyle.Render("r reload  q quit") + "\n"
		}
		return editDimStyle.Render("loading "+m.id+"...") + "\n"
	}

	b.WriteString(StyleTitle.Render(m.p.Name))
	b.WriteString(" ")
	b.WriteString(editDimStyle.Render(fmt.Sprintf("%d items · step %gcm", len(m.p.Items), nudgeSteps[m.step])))
	b.WriteString("\n")
	b.WriteString(editDimStyle.Render("←↓↑→/hjkl move  tab/n next  p prev  +/- step  x remove  r reload  q quit"))
	b.WriteString("\n\n")
	b.WriteString(renderElevation(m.p, m.supports, m.cell))
	b.WriteString("\n\n")

	if i := m.index(); i >= 0 {
		it := m.p.Items[i]
		var s *placement.Support
		if sup, ok := m.supports[it.UID]; ok {
			s = &sup
		}
		b.WriteString(editSelectedStyle.Render(fmt.Sprintf("▸ %s %s", supportgraph.ItemLabel(it), it.UID)))
		b.WriteString(editDimStyle.Render(fmt.Sprintf("  x=%g y=%g bottom=%g  rests on %s", it.X, m.p.ItemY(it), it.Bottom, describeSupport(s))))
		b.WriteString("\n")
	} else {
		b.WriteString(editDimStyle.Render("no items; add some with shelfplan item add"))
		b.WriteString("\n")
	}

	switch {
	case m.err != nil:
		b.WriteString(editErrorStyle.Render(m.err.Error()))
	case m.status != "":
		b.WriteString(editDimStyle.Render(m.status))
	}
	b.WriteString("\n")
	return b.String()
}

func placementStatus(res placement.Result) string {
	parts := []string{fmt.Sprintf("landed on unit %d at x=%g bottom=%g", res.Bin, res.X, res.Bottom)}
	switch {
	case res.Collision.Unresolved:
		parts = append(parts, "overlaps "+res.Collision.With)
	case res.Collision.With != "":
		parts = append(parts, fmt.Sprintf("pushed %s of %s", res.Collision.Direction, res.Collision.With))
	}
	if res.Floating() {
		parts = append(parts, "floating")
	}
	return strings.Join(parts, " · ")
}
