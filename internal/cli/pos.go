package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/same7samy00/ysk-sales/internal/app"
	"github.com/same7samy00/ysk-sales/internal/checkout"
	"github.com/same7samy00/ysk-sales/internal/model"
	"github.com/same7samy00/ysk-sales/internal/receipt"
)

// NewPosCommand creates the pos command group.
func NewPosCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pos",
		Short: "Point of sale",
	}
	cmd.AddCommand(newPosSellCommand(rootOpts))
	return cmd
}

func newPosSellCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		items      []string
		customerID string
		payment    string
		paid       float64
		discount   string
		tax        string
		printText  bool
	)

	cmd := &cobra.Command{
		Use:   "sell",
		Short: "Finalize a sale",
		Long: `Finalize a sale from cart lines given as --item <product-or-barcode>=<qty>.

A line asking for more than on-hand stock is clamped to the available
quantity with a warning. The sale updates stock, customer debt, and the
invoice log as one committed batch.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd, rootOpts)
			if err != nil {
				return err
			}
			defer rt.Close()
			ctx := commandContext(cmd)

			paymentType, err := parsePayment(payment)
			if err != nil {
				return WrapExitError(ExitCommandError, "bad --payment", err)
			}

			cart := &checkout.Cart{}
			if discount != "" {
				amt, err := parseAmount(discount)
				if err != nil {
					return WrapExitError(ExitCommandError, "bad --discount", err)
				}
				cart.Discount = amt
			}
			if tax != "" {
				amt, err := parseAmount(tax)
				if err != nil {
					return WrapExitError(ExitCommandError, "bad --tax", err)
				}
				cart.Tax = amt
			}
			if customerID != "" {
				found := false
				for i := range rt.App.Customers {
					if rt.App.Customers[i].ID == customerID {
						cart.Customer = rt.App.Customers[i].Snapshot()
						found = true
						break
					}
				}
				if !found {
					return NewExitError(ExitCommandError, fmt.Sprintf("customer %q not found", customerID))
				}
			}

			for _, spec := range items {
				ref, qty, err := parseItem(spec)
				if err != nil {
					return WrapExitError(ExitCommandError, "bad --item", err)
				}
				product, ok := findProduct(rt.App, ref)
				if !ok {
					return NewExitError(ExitCommandError, fmt.Sprintf("product %q not found", ref))
				}
				res, err := cart.Add(product, qty)
				if err != nil {
					if app.IsValidation(err) {
						return failValidation(rt.Out, err)
					}
					return err
				}
				if res.Clamped {
					fmt.Fprintf(cmd.ErrOrStderr(),
						"warning: requested quantity for %q exceeds stock, clamped to %d\n",
						product.Name, res.Quantity)
				}
			}

			fin := &checkout.Finalizer{App: rt.App}
			inv, err := fin.Finalize(ctx, cart, paymentType, paid)
			if err != nil {
				if app.IsValidation(err) {
					return failValidation(rt.Out, err)
				}
				return WrapExitError(ExitCommandError, "failed to finalize sale", err)
			}

			if printText {
				fmt.Fprint(cmd.OutOrStdout(), receipt.Render(inv, rt.App.Settings))
				return nil
			}
			if rt.Out.Format == "json" {
				return rt.Out.Success(inv)
			}
			return rt.Out.Successf("invoice %s created, total %.2f", inv.ID, inv.Total)
		},
	}

	cmd.Flags().StringArrayVar(&items, "item", nil, "cart line <product-or-barcode>=<qty> (repeatable, required)")
	cmd.Flags().StringVar(&customerID, "customer", "", "customer id (empty for a cash-counter sale)")
	cmd.Flags().StringVar(&payment, "payment", "cash", "payment type: cash|credit|partial")
	cmd.Flags().Float64Var(&paid, "paid", 0, "amount paid (partial/credit sales)")
	cmd.Flags().StringVar(&discount, "discount", "", "discount, e.g. 10% or 5")
	cmd.Flags().StringVar(&tax, "tax", "", "tax, e.g. 14% or 2")
	cmd.Flags().BoolVar(&printText, "print", false, "print the receipt text")
	_ = cmd.MarkFlagRequired("item")
	return cmd
}

func parsePayment(s string) (model.PaymentType, error) {
	switch strings.ToLower(s) {
	case "cash":
		return model.PaymentCash, nil
	case "credit":
		return model.PaymentCredit, nil
	case "partial":
		return model.PaymentPartial, nil
	}
	return "", fmt.Errorf("unknown payment type %q", s)
}

// parseAmount reads "10%" as a percentage and a bare number as fixed.
func parseAmount(s string) (model.Amount, error) {
	kind := model.AmountFixed
	if strings.HasSuffix(s, "%") {
		kind = model.AmountPercentage
		s = strings.TrimSuffix(s, "%")
	}
	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return model.Amount{}, fmt.Errorf("bad amount %q", s)
	}
	if value < 0 {
		return model.Amount{}, fmt.Errorf("amount must not be negative")
	}
	return model.Amount{Type: kind, Value: value}, nil
}

func parseItem(spec string) (ref string, qty int, err error) {
	ref, qtyStr, found := strings.Cut(spec, "=")
	if !found || ref == "" {
		return "", 0, fmt.Errorf("expected <product>=<qty>, got %q", spec)
	}
	qty, err = strconv.Atoi(qtyStr)
	if err != nil || qty < 1 {
		return "", 0, fmt.Errorf("bad quantity in %q", spec)
	}
	return ref, qty, nil
}

// findProduct resolves a cart item reference by product id first, then by
// barcode, matching how a scanned payload arrives as a bare string.
func findProduct(a *app.App, ref string) (model.Product, bool) {
	for _, p := range a.Products {
		if p.ID == ref {
			return p, true
		}
	}
	return a.FindByBarcode(ref)
}
