package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/shelfplan/pkg/catalog"
)

// catalogCommand creates the "catalog" command group.
func (c *CLI) catalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse the product catalog",
	}

	var category string
	list := &cobra.Command{
		Use:   "list",
		Short: "List products, optionally of one category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := c.catalog()
			if err != nil {
				return err
			}
			printProducts(cat.Search("", category))
			printNewline()
			printDetail("Categories: %v", cat.Categories())
			return nil
		},
	}
	list.Flags().StringVarP(&category, "category", "c", "", "only this category")
	cmd.AddCommand(list)

	cmd.AddCommand(&cobra.Command{
		Use:   "search <query>",
		Short: "Find products by ID or name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := c.catalog()
			if err != nil {
				return err
			}
			found := cat.Search(args[0], "")
			if len(found) == 0 {
				printInfo("No products match %q", args[0])
				return nil
			}
			printProducts(found)
			return nil
		},
	})

	return cmd
}

func printProducts(products []catalog.Product) {
	rows := make([][]string, len(products))
	for i, p := range products {
		rows[i] = []string{
			p.ID,
			p.Name,
			p.Category,
			fmt.Sprintf("%g × %g", p.Width, p.Height),
			string(p.DisplayType),
			p.Color,
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Name", "Category", "W × H (cm)", "Display", "Color").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 5 && row >= 0 && row < len(products):
				return lipgloss.NewStyle().Foreground(lipgloss.Color(products[row].Color))
			case col == 0:
				return lipgloss.NewStyle().Foreground(colorCyan)
			}
			return lipgloss.NewStyle()
		})
	printLine(t.Render())
}
