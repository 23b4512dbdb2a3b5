package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/same7samy00/ysk-sales/internal/app"
	"github.com/same7samy00/ysk-sales/internal/model"
)

// NewProductCommand creates the product command group.
func NewProductCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Manage the product catalog",
	}
	cmd.AddCommand(newProductAddCommand(rootOpts))
	cmd.AddCommand(newProductListCommand(rootOpts))
	cmd.AddCommand(newProductDeleteCommand(rootOpts))
	return cmd
}

func newProductAddCommand(rootOpts *RootOptions) *cobra.Command {
	var p model.Product
	var unitID int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add or update a product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd, rootOpts)
			if err != nil {
				return err
			}
			defer rt.Close()

			for _, u := range rt.App.Units {
				if u.ID == unitID {
					p.Unit = u
					break
				}
			}

			saved, err := rt.App.PutProduct(commandContext(cmd), p)
			if err != nil {
				if app.IsValidation(err) {
					return failValidation(rt.Out, err)
				}
				return WrapExitError(ExitCommandError, "failed to save product", err)
			}
			return rt.Out.Successf("saved product %q (barcode %s)", saved.Name, saved.Barcode)
		},
	}

	cmd.Flags().StringVar(&p.ID, "id", "", "product id (empty for new)")
	cmd.Flags().StringVar(&p.Name, "name", "", "product name (required)")
	cmd.Flags().Float64Var(&p.Price, "price", 0, "sale price")
	cmd.Flags().Float64Var(&p.PurchasePrice, "purchase-price", 0, "purchase price")
	cmd.Flags().IntVar(&p.Quantity, "quantity", 0, "on-hand stock")
	cmd.Flags().IntVar(&unitID, "unit", 1, "unit id")
	cmd.Flags().StringVar(&p.Supplier, "supplier", "", "supplier")
	cmd.Flags().StringVar(&p.ProductionDate, "production-date", "", "production date")
	cmd.Flags().StringVar(&p.ExpiryDate, "expiry-date", "", "expiry date")
	cmd.Flags().StringVar(&p.Barcode, "barcode", "", "barcode (auto-generated when empty)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newProductListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List catalog products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd, rootOpts)
			if err != nil {
				return err
			}
			defer rt.Close()

			products := make([]model.Product, len(rt.App.Products))
			copy(products, rt.App.Products)
			sortByName(products, func(p model.Product) string { return p.Name })

			if rt.Out.Format == "json" {
				return rt.Out.Success(products)
			}
			for _, p := range products {
				alert := ""
				if rt.App.Settings.EnableStockAlerts && p.Quantity == 0 {
					alert = "  [out of stock]"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %.2f  x%d  %s%s\n",
					p.ID, p.Name, p.Price, p.Quantity, p.Barcode, alert)
			}
			return nil
		},
	}
}

func newProductDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <product-id>",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd, rootOpts)
			if err != nil {
				return err
			}
			defer rt.Close()

			if err := rt.App.DeleteProduct(commandContext(cmd), args[0]); err != nil {
				if app.IsValidation(err) {
					return failValidation(rt.Out, err)
				}
				return WrapExitError(ExitCommandError, "failed to delete product", err)
			}
			return rt.Out.Successf("deleted product %s", args[0])
		},
	}
}

// sortByName orders rows with locale-aware collation so Arabic names sort
// the way the shop expects, not by code point.
func sortByName[T any](rows []T, name func(T) string) {
	c := collate.New(language.Arabic)
	sort.SliceStable(rows, func(i, j int) bool {
		return c.CompareString(name(rows[i]), name(rows[j])) < 0
	})
}
