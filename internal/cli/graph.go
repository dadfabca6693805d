package cli

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/shelfplan/pkg/editor"
	"github.com/matzehuels/shelfplan/pkg/errors"
	"github.com/matzehuels/shelfplan/pkg/render"
	"github.com/matzehuels/shelfplan/pkg/render/supportgraph"
)

// graphCommand creates the "graph" command.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		output   string
		format   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "graph <id>",
		Short: "Draw what rests on what as a Graphviz graph",
		Long: `Draw what rests on what as a Graphviz graph.

Each unit is a cluster holding its surfaces; every item points at the surface
or item it rests on. Floating items are dashed. PDF and PNG output need
rsvg-convert from librsvg.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := render.ParseFormat(format)
			if err != nil {
				return err
			}
			return c.withRunner(cmd.Context(), func(r *editor.Runner) error {
				p, supports, err := r.Supports(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				prog := newProgress(loggerFromContext(cmd.Context()))
				data := []byte(supportgraph.ToDOT(p, supports, supportgraph.Options{Detailed: detailed}))

				if f != render.FormatDOT {
					spinner := newSpinnerWithContext(cmd.Context(), "Rendering "+strings.ToUpper(f)+"...")
					spinner.Start()
					data, err = renderGraph(cmd.Context(), string(data), f)
					spinner.Stop()
					if err != nil {
						return err
					}
				}

				if output == "" {
					_, err := stdout.Write(data)
					return err
				}
				if err := os.WriteFile(output, data, 0o644); err != nil {
					return err
				}
				prog.done("Rendered support graph")
				printFile(output)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file; stdout when empty")
	cmd.Flags().StringVarP(&format, "format", "f", "dot", "output format: "+strings.Join(render.Formats, ", "))
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include positions and sizes in item labels")
	return cmd
}

func renderGraph(ctx context.Context, dot, format string) ([]byte, error) {
	svg, err := supportgraph.RenderSVG(ctx, dot)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render support graph: %v", err)
	}
	return render.Convert(ctx, svg, format)
}
