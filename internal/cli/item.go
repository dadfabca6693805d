package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/shelfplan/pkg/core/placement"
	"github.com/matzehuels/shelfplan/pkg/editor"
)

// dropFlags are the flags describing what to drop and where.
type dropFlags struct {
	req editor.DropRequest
}

func (f *dropFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.req.ProductID, "product", "p", "", "catalog product ID")
	cmd.Flags().StringVar(&f.req.Label, "label", "", "item label")
	cmd.Flags().Float64Var(&f.req.Width, "width", 0, "item width in cm (overrides the product)")
	cmd.Flags().Float64Var(&f.req.Height, "height", 0, "item height in cm (overrides the product)")
	cmd.Flags().Float64Var(&f.req.X, "x", 0, "left edge, cm from the left end of the planogram")
	cmd.Flags().Float64Var(&f.req.Y, "y", 0, "top edge, cm below the top of the planogram")
}

// placeCommand creates the "place" command.
func (c *CLI) placeCommand() *cobra.Command {
	var (
		flags   dropFlags
		exclude string
	)

	cmd := &cobra.Command{
		Use:   "place <id>",
		Short: "Preview where an item would land without saving",
		Long: `Preview where an item would land without saving it.

Coordinates are in centimeters: x from the left end of the planogram, y from
its top down to the top edge of the item. The item falls onto the closest
shelf or item top within the vertical tolerance and is pushed sideways out of
any item it would overlap.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withRunner(cmd.Context(), func(r *editor.Runner) error {
				res, err := r.Preview(cmd.Context(), args[0], flags.req, exclude)
				if err != nil {
					return err
				}
				printPlacement(res)
				return nil
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&exclude, "exclude", "", "item UID to ignore, as when dragging it")
	return cmd
}

// itemCommand creates the "item" command group.
func (c *CLI) itemCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Add, move and remove items",
	}

	cmd.AddCommand(c.itemAddCommand())
	cmd.AddCommand(c.itemMoveCommand())
	cmd.AddCommand(c.itemRemoveCommand())

	return cmd
}

func (c *CLI) itemAddCommand() *cobra.Command {
	var flags dropFlags

	cmd := &cobra.Command{
		Use:   "add <id>",
		Short: "Drop an item and save it where it lands",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withRunner(cmd.Context(), func(r *editor.Runner) error {
				res, err := r.Drop(cmd.Context(), args[0], flags.req)
				if err != nil {
					return err
				}
				printSuccess("Added item %s", StyleHighlight.Render(res.Item.UID))
				printPlacement(res.Placement)
				return nil
			})
		},
	}

	flags.register(cmd)
	return cmd
}

func (c *CLI) itemMoveCommand() *cobra.Command {
	var x, y float64

	cmd := &cobra.Command{
		Use:   "move <id> <uid>",
		Short: "Move an item and save it where it lands",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withRunner(cmd.Context(), func(r *editor.Runner) error {
				res, err := r.Move(cmd.Context(), args[0], args[1], x, y)
				if err != nil {
					return err
				}
				printSuccess("Moved item %s", StyleHighlight.Render(res.Item.UID))
				printPlacement(res.Placement)
				return nil
			})
		},
	}

	cmd.Flags().Float64Var(&x, "x", 0, "left edge, cm from the left end of the planogram")
	cmd.Flags().Float64Var(&y, "y", 0, "top edge, cm below the top of the planogram")
	return cmd
}

func (c *CLI) itemRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id> <uid>",
		Short: "Remove an item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withRunner(cmd.Context(), func(r *editor.Runner) error {
				if _, err := r.RemoveItem(cmd.Context(), args[0], args[1]); err != nil {
					return err
				}
				printSuccess("Removed item %s", args[1])
				return nil
			})
		},
	}
}

// describeSupport returns a short description of what an item rests on.
func describeSupport(s *placement.Support) string {
	switch {
	case s == nil:
		return "nothing (floating)"
	case s.Kind == placement.SupportItem:
		return "item " + s.ItemUID
	}
	return "surface"
}
