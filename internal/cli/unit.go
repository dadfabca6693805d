package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/shelfplan/pkg/editor"
	"github.com/matzehuels/shelfplan/pkg/errors"
	"github.com/matzehuels/shelfplan/pkg/planogram"
)

// unitCommand creates the "unit" command group.
func (c *CLI) unitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unit",
		Short: "Add, remove and resize shelving units",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <id>",
		Short: "Append a unit with the default shelves",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withRunner(cmd.Context(), func(r *editor.Runner) error {
				p, err := r.AddUnit(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				printSuccess("Added %s", p.Units[len(p.Units)-1].ID)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <id> <unit>",
		Short: "Remove a unit and the items on it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withRunner(cmd.Context(), func(r *editor.Runner) error {
				if _, err := r.RemoveUnit(cmd.Context(), args[0], args[1]); err != nil {
					return err
				}
				printSuccess("Removed %s", args[1])
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "width <id> <unit> <cm>",
		Short: "Set the width of a unit; 0 restores the default",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := parseNumber("width", args[2])
			if err != nil {
				return err
			}
			return c.withRunner(cmd.Context(), func(r *editor.Runner) error {
				if _, err := r.SetUnitWidth(cmd.Context(), args[0], args[1], w); err != nil {
					return err
				}
				printSuccess("Set %s width to %gcm", args[1], w)
				return nil
			})
		},
	})

	return cmd
}

// surfaceCommand creates the "surface" command group.
func (c *CLI) surfaceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "surface",
		Short: "Add, remove and move shelves and rails",
	}

	var kind string
	add := &cobra.Command{
		Use:   "add <id> <unit>",
		Short: "Add a shelf or rail above the highest surface",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withRunner(cmd.Context(), func(r *editor.Runner) error {
				before, err := r.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				p, err := r.AddSurface(cmd.Context(), args[0], args[1], kind)
				if err != nil {
					return err
				}
				u, err := p.Unit(args[1])
				if err != nil {
					return err
				}
				old, _ := before.Unit(args[1])
				for _, s := range u.Surfaces {
					if !hasSurface(old.Surfaces, s.ID) {
						printSuccess("Added %s %s at %gcm", s.Kind, s.ID, s.Height)
					}
				}
				return nil
			})
		},
	}
	add.Flags().StringVarP(&kind, "kind", "k", "solid", "surface kind: solid (flat) or rail (hook)")
	cmd.AddCommand(add)

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <id> <unit> <surface>",
		Short: "Remove a surface; the base cannot be removed",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withRunner(cmd.Context(), func(r *editor.Runner) error {
				if _, err := r.RemoveSurface(cmd.Context(), args[0], args[1], args[2]); err != nil {
					return err
				}
				printSuccess("Removed %s from %s", args[2], args[1])
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "move <id> <unit> <surface> <height>",
		Short: "Move a surface to a new height in cm above the floor",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := parseNumber("height", args[3])
			if err != nil {
				return err
			}
			return c.withRunner(cmd.Context(), func(r *editor.Runner) error {
				if _, err := r.MoveSurface(cmd.Context(), args[0], args[1], args[2], h); err != nil {
					return err
				}
				printSuccess("Moved %s to %gcm", args[2], h)
				return nil
			})
		},
	})

	return cmd
}

func hasSurface(surfaces []planogram.Surface, id string) bool {
	for _, s := range surfaces {
		if s.ID == id {
			return true
		}
	}
	return false
}

func parseNumber(name, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "%s %q is not a number", name, s)
	}
	return v, nil
}
