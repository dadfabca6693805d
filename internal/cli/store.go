package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/shelfplan/pkg/editor"
	"github.com/matzehuels/shelfplan/pkg/storage"
)

// storeCommand creates the store management command.
func (c *CLI) storeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage the planogram store",
	}

	cmd.AddCommand(c.storePathCommand())
	cmd.AddCommand(c.storeInfoCommand())
	cmd.AddCommand(c.storeClearCommand())

	return cmd
}

// storePathCommand creates the "store path" subcommand.
func (c *CLI) storePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where planograms are stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			printLine(cfg.Storage.Describe())
			return nil
		},
	}
}

// storeInfoCommand creates the "store info" subcommand.
func (c *CLI) storeInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the configured backend and what it holds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withRunner(cmd.Context(), func(r *editor.Runner) error {
				list, err := r.List(cmd.Context())
				if err != nil {
					return err
				}
				cfg, _ := c.config()
				printKeyValue("Backend", r.Repo.Backend().Name())
				printKeyValue("Location", cfg.Storage.Describe())
				if cfg.Storage.Namespace != "" {
					printKeyValue("Namespace", cfg.Storage.Namespace)
				}
				items := 0
				for _, s := range list {
					items += s.Items
				}
				printKeyValue("Planograms", StyleNumber.Render(strconv.Itoa(len(list))))
				printKeyValue("Items", StyleNumber.Render(strconv.Itoa(items)))
				return nil
			})
		},
	}
}

// storeClearCommand creates the "store clear" subcommand.
func (c *CLI) storeClearCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every stored planogram",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withRunner(cmd.Context(), func(r *editor.Runner) error {
				list, err := r.List(cmd.Context())
				if err != nil {
					return err
				}
				if len(list) == 0 {
					printInfo("Store is empty")
					return nil
				}
				if !yes {
					printWarning("This deletes %d planograms; rerun with --yes", len(list))
					return nil
				}

				if fb, ok := r.Repo.Backend().(*storage.FileBackend); ok && c.cfg.Storage.Namespace == "" {
					if err := fb.Clear(); err != nil {
						return err
					}
				} else {
					for _, s := range list {
						if err := r.Delete(cmd.Context(), s.ID); err != nil {
							return err
						}
					}
				}
				printSuccess("Deleted %d planograms", len(list))
				printDetail("Location: %s", c.cfg.Storage.Describe())
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}
