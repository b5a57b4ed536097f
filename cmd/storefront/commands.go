package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"goflare.io/storefront/catalog"
	"goflare.io/storefront/models"
	"goflare.io/storefront/models/enum"
	"goflare.io/storefront/units"
)

func newCartCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "cart", Short: "Show or change the cart"}

	var unitFlag string
	unitOf := func(cmd *cobra.Command) (enum.Unit, error) {
		if unitFlag == "" {
			return a.session.Unit(cmd.Context()), nil
		}
		return enum.ParseUnit(unitFlag)
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the priced cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printCart(cmd, a)
		},
	}

	add := &cobra.Command{
		Use:   "add <product-id> <quantity>",
		Short: "Add a quantity of a product",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			unit, err := unitOf(cmd)
			if err != nil {
				return err
			}
			q, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid quantity %q: %w", args[1], err)
			}
			if err := a.session.AddItem(cmd.Context(), args[0], unit, q); err != nil {
				return err
			}
			return printCart(cmd, a)
		},
	}

	set := &cobra.Command{
		Use:   "set <product-id> <quantity>",
		Short: "Replace the quantity of a cart line; zero removes it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			unit, err := unitOf(cmd)
			if err != nil {
				return err
			}
			q, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid quantity %q: %w", args[1], err)
			}
			if err := a.session.SetItemQuantity(cmd.Context(), args[0], unit, q); err != nil {
				return err
			}
			return printCart(cmd, a)
		},
	}

	remove := &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a cart line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			unit, err := unitOf(cmd)
			if err != nil {
				return err
			}
			if err := a.session.RemoveItem(cmd.Context(), args[0], unit); err != nil {
				return err
			}
			return printCart(cmd, a)
		},
	}

	switchUnit := &cobra.Command{
		Use:   "switch <product-id> <from> <to>",
		Short: "Re-express a cart line in the other unit",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := enum.ParseUnit(args[1])
			if err != nil {
				return err
			}
			to, err := enum.ParseUnit(args[2])
			if err != nil {
				return err
			}
			if err := a.session.SwitchItemUnit(cmd.Context(), args[0], from, to); err != nil {
				return err
			}
			return printCart(cmd, a)
		},
	}

	clearCart := &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.session.Clear(cmd.Context())
		},
	}

	for _, c := range []*cobra.Command{add, set, remove} {
		c.Flags().StringVar(&unitFlag, "unit", "", "unit of the line (m2 or kg); defaults to the preferred unit")
	}

	cmd.AddCommand(show, add, set, remove, switchUnit, clearCart)
	return cmd
}

func newUnitCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "unit", Short: "Show or change the preferred unit"}

	cmd.AddCommand(
		&cobra.Command{
			Use:  "show",
			Args: cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				unit := a.session.Unit(cmd.Context())
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", unit, units.Label(unit))
				return err
			},
		},
		&cobra.Command{
			Use:  "set <m2|kg>",
			Args: cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				unit, err := enum.ParseUnit(args[0])
				if err != nil {
					return err
				}
				return a.session.SetUnit(cmd.Context(), unit)
			},
		},
		&cobra.Command{
			Use:   "toggle",
			Short: "Switch to the other unit",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.session.SetUnit(cmd.Context(), units.Other(a.session.Unit(cmd.Context())))
			},
		},
	)
	return cmd
}

func newSearchCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "search", Short: "Show or change the catalog search term"}

	cmd.AddCommand(
		&cobra.Command{
			Use:  "show",
			Args: cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "%q\n", a.session.SearchTerm(cmd.Context()))
				return err
			},
		},
		&cobra.Command{
			Use:  "set [term...]",
			Args: cobra.ArbitraryArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.session.SetSearchTerm(cmd.Context(), strings.Join(args, " "))
			},
		},
	)
	return cmd
}

func newCatalogCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "catalog", Short: "Browse the product catalog"}

	var q catalog.Query
	var sort string
	list := &cobra.Command{
		Use:  "list",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q.Sort = enum.SortOrder(sort)
			products, err := a.session.Products(cmd.Context(), q)
			if err != nil {
				return err
			}
			unit := a.session.Unit(cmd.Context())
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "ID\tNAME\tCATEGORY\tPRICE/%s\n", units.Label(unit))
			for _, p := range products {
				fmt.Fprintf(w, "%s\t%s\t%s\t%.2f %s\n", p.ID, p.Name, p.Category,
					units.PricePerUnit(p, unit), strings.ToUpper(string(p.Currency)))
			}
			return w.Flush()
		},
	}
	list.Flags().StringVar(&q.Category, "category", models.CategoryAll, "category id")
	list.Flags().StringVar(&q.Search, "search", "", "search term; defaults to the stored one")
	list.Flags().StringVar(&sort, "sort", string(enum.SortOrderName), "name, price-asc or price-desc")

	show := &cobra.Command{
		Use:  "show <product-id>",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.session.Product(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "%s\t%s\n", p.Name, p.Composition)
			fmt.Fprintf(w, "UNIT\tPRICE\tMIN\tAVAILABLE\n")
			for _, u := range []enum.Unit{enum.UnitArea, enum.UnitWeight} {
				fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.2f\n", units.Label(u),
					units.PricePerUnit(p, u), units.MinByUnit(p, u), units.AvailableByUnit(p, u))
			}
			return w.Flush()
		},
	}

	categories := &cobra.Command{
		Use:  "categories",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := a.session.Categories(cmd.Context())
			if err != nil {
				return err
			}
			for _, c := range list {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", c.ID, c.Label)
			}
			return nil
		},
	}

	cmd.AddCommand(list, show, categories)
	return cmd
}

func newWatchCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print the cart and preferences whenever another process changes them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			changes := make(chan string, 16)
			notify := func(what string) func() {
				return func() {
					select {
					case changes <- what:
					default:
					}
				}
			}

			defer a.session.SubscribeCart(notify("cart"))()
			defer a.session.SubscribeUnit(notify("unit"))()
			defer a.session.SubscribeSearch(notify("search"))()

			if err := printCart(cmd, a); err != nil {
				return err
			}
			for {
				select {
				case <-ctx.Done():
					return nil
				case what := <-changes:
					out := cmd.OutOrStdout()
					switch what {
					case "cart":
						if err := printCart(cmd, a); err != nil {
							return err
						}
					case "unit":
						fmt.Fprintf(out, "unit: %s\n", a.session.Unit(ctx))
					case "search":
						fmt.Fprintf(out, "search: %q\n", a.session.SearchTerm(ctx))
					}
				}
			}
		},
	}
}

func printCart(cmd *cobra.Command, a *app) error {
	summary, err := a.session.Summary(cmd.Context())
	if err != nil {
		return err
	}
	return writeSummary(cmd.OutOrStdout(), a.session.ItemCount(cmd.Context()), summary)
}

func writeSummary(out io.Writer, count int, summary *models.CartSummary) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "PRODUCT\tQTY\tUNIT PRICE\tTOTAL\n")
	for _, line := range summary.Lines {
		fmt.Fprintf(w, "%s\t%.2f %s\t%.2f\t%.2f\n", line.Product.Name, line.Item.Quantity,
			units.Label(line.Item.Unit), line.UnitPrice, line.Total)
	}
	fmt.Fprintf(w, "%d item(s)\t\t\t%.2f %s\n", count, summary.Total, strings.ToUpper(string(summary.Currency)))
	return w.Flush()
}
