package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/shelfplan/pkg/editor"
	"github.com/matzehuels/shelfplan/pkg/planogram"
)

// =============================================================================
// Planogram documents
// =============================================================================

// initCommand creates the "init" command.
func (c *CLI) initCommand() *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "init <name>",
		Short: "Create a planogram with the default layout",
		Long: `Create a planogram with two units of 120cm, each with a base and four
shelves 40cm apart. With --from, the layout is read from a TOML or JSON file
and stored under a new ID.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withRunner(cmd.Context(), func(r *editor.Runner) error {
				var (
					p   *planogram.Planogram
					err error
				)
				if from != "" {
					if p, err = planogram.ReadFile(from); err != nil {
						return err
					}
					p.ID = planogram.New("").ID
					p.Name = args[0]
					p, err = r.Import(cmd.Context(), p)
				} else {
					p, err = r.Create(cmd.Context(), args[0])
				}
				if err != nil {
					return err
				}
				printSuccess("Created planogram %s", StyleHighlight.Render(p.Name))
				printKeyValue("ID", p.ID)
				printNextStep("Add a product", "shelfplan item add "+p.ID+" --product p1 --x 10 --y 150")
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "start from a planogram file")
	return cmd
}

// listCommand creates the "list" command.
func (c *CLI) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored planograms",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withRunner(cmd.Context(), func(r *editor.Runner) error {
				list, err := r.List(cmd.Context())
				if err != nil {
					return err
				}
				if len(list) == 0 {
					printInfo("No planograms yet")
					printNextStep("Create one", "shelfplan init <name>")
					return nil
				}
				printSummaries(list)
				return nil
			})
		},
	}
}

// showCommand creates the "show" command.
func (c *CLI) showCommand() *cobra.Command {
	var cellSize float64

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a planogram's units, items and what they rest on",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withRunner(cmd.Context(), func(r *editor.Runner) error {
				p, supports, err := r.Supports(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				printPlanogram(p)
				printNewline()
				printLine(renderElevation(p, supports, cellSize))
				if len(p.Items) > 0 {
					printNewline()
					printItems(p, supports)
				}
				return nil
			})
		},
	}

	cmd.Flags().Float64Var(&cellSize, "cell", defaultCellSize, "centimeters per character in the elevation view")
	return cmd
}

// removeCommand creates the "rm" command.
func (c *CLI) removeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a planogram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withRunner(cmd.Context(), func(r *editor.Runner) error {
				if err := r.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				printSuccess("Deleted planogram %s", args[0])
				return nil
			})
		},
	}
}

// importCommand creates the "import" command.
func (c *CLI) importCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Store a planogram file, replacing any planogram with the same ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := planogram.ReadFile(args[0])
			if err != nil {
				return err
			}
			return c.withRunner(cmd.Context(), func(r *editor.Runner) error {
				p, err := r.Import(cmd.Context(), p)
				if err != nil {
					return err
				}
				printSuccess("Imported %s", StyleHighlight.Render(p.Name))
				printStats(len(p.Units), len(p.Items))
				printKeyValue("ID", p.ID)
				return nil
			})
		},
	}
}

// exportCommand creates the "export" command.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		output string
		format string
	)

	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Write a planogram as TOML or JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withRunner(cmd.Context(), func(r *editor.Runner) error {
				p, err := r.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if output == "" {
					return planogram.Write(stdout, p, planogram.Format(format))
				}
				if err := planogram.WriteFile(output, p); err != nil {
					return err
				}
				printSuccess("Exported %s", p.Name)
				printFile(output)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.toml or .json); stdout when empty")
	cmd.Flags().StringVarP(&format, "format", "f", string(planogram.FormatTOML), "stdout format: toml or json")
	return cmd
}
