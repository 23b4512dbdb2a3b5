package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/same7samy00/ysk-sales/internal/receipt"
)

// NewInvoiceCommand creates the invoice command group.
func NewInvoiceCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invoice",
		Short: "Browse the invoice log",
	}
	cmd.AddCommand(newInvoiceListCommand(rootOpts))
	cmd.AddCommand(newInvoiceShowCommand(rootOpts))
	return cmd
}

func newInvoiceListCommand(rootOpts *RootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List invoices, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd, rootOpts)
			if err != nil {
				return err
			}
			defer rt.Close()

			invoices := rt.App.Invoices
			if limit > 0 && limit < len(invoices) {
				invoices = invoices[:limit]
			}
			if rt.Out.Format == "json" {
				return rt.Out.Success(invoices)
			}
			for _, inv := range invoices {
				customer := "-"
				if inv.Customer != nil {
					customer = inv.Customer.Name
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s %s  %s  %.2f  %s\n",
					inv.ID, inv.Date, inv.Time, customer, inv.Total, inv.PaymentType)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "show at most this many invoices (0 for all)")
	return cmd
}

func newInvoiceShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <invoice-id>",
		Short: "Render one invoice as receipt text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd, rootOpts)
			if err != nil {
				return err
			}
			defer rt.Close()

			for _, inv := range rt.App.Invoices {
				if inv.ID == args[0] {
					fmt.Fprint(cmd.OutOrStdout(), receipt.Render(inv, rt.App.Settings))
					return nil
				}
			}
			return NewExitError(ExitFailure, fmt.Sprintf("invoice %q not found", args[0]))
		},
	}
}
