package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/same7samy00/ysk-sales/internal/app"
	"github.com/same7samy00/ysk-sales/internal/model"
)

// NewCustomerCommand creates the customer command group.
func NewCustomerCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customer",
		Short: "Manage the customer roster",
	}
	cmd.AddCommand(newCustomerAddCommand(rootOpts))
	cmd.AddCommand(newCustomerListCommand(rootOpts))
	cmd.AddCommand(newCustomerDeleteCommand(rootOpts))
	cmd.AddCommand(newCustomerSettleCommand(rootOpts))
	return cmd
}

func newCustomerAddCommand(rootOpts *RootOptions) *cobra.Command {
	var c model.Customer

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add or update a customer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd, rootOpts)
			if err != nil {
				return err
			}
			defer rt.Close()

			saved, err := rt.App.PutCustomer(commandContext(cmd), c)
			if err != nil {
				if app.IsValidation(err) {
					return failValidation(rt.Out, err)
				}
				return WrapExitError(ExitCommandError, "failed to save customer", err)
			}
			return rt.Out.Successf("saved customer %q (%s)", saved.Name, saved.ID)
		},
	}

	cmd.Flags().StringVar(&c.ID, "id", "", "customer id (empty for new)")
	cmd.Flags().StringVar(&c.Name, "name", "", "customer name (required)")
	cmd.Flags().StringVar(&c.Phone, "phone", "", "phone")
	cmd.Flags().StringVar(&c.Address, "address", "", "address")
	cmd.Flags().StringVar(&c.Notes, "notes", "", "notes")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newCustomerListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List customers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd, rootOpts)
			if err != nil {
				return err
			}
			defer rt.Close()

			customers := make([]model.Customer, len(rt.App.Customers))
			copy(customers, rt.App.Customers)
			sortByName(customers, func(c model.Customer) string { return c.Name })

			if rt.Out.Format == "json" {
				return rt.Out.Success(customers)
			}
			for _, c := range customers {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  debt=%.2f  invoices=%d  last=%s\n",
					c.ID, c.Name, c.Debt, c.InvoiceCount, c.LastTransaction)
			}
			return nil
		},
	}
}

func newCustomerDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <customer-id>",
		Short: "Delete a customer (rejected while debt is outstanding)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd, rootOpts)
			if err != nil {
				return err
			}
			defer rt.Close()

			if err := rt.App.DeleteCustomer(commandContext(cmd), args[0]); err != nil {
				if app.IsValidation(err) {
					return failValidation(rt.Out, err)
				}
				return WrapExitError(ExitCommandError, "failed to delete customer", err)
			}
			return rt.Out.Successf("deleted customer %s", args[0])
		},
	}
}

func newCustomerSettleCommand(rootOpts *RootOptions) *cobra.Command {
	var amount float64

	cmd := &cobra.Command{
		Use:   "settle <customer-id>",
		Short: "Settle part or all of a customer's debt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd, rootOpts)
			if err != nil {
				return err
			}
			defer rt.Close()

			if err := rt.App.SettleDebt(commandContext(cmd), args[0], amount); err != nil {
				if app.IsValidation(err) {
					return failValidation(rt.Out, err)
				}
				return WrapExitError(ExitCommandError, "failed to settle debt", err)
			}
			return rt.Out.Successf("settled %.2f for customer %s", amount, args[0])
		},
	}

	cmd.Flags().Float64Var(&amount, "amount", 0, "amount to settle (required)")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}
