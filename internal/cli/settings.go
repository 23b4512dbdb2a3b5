package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewSettingsCommand creates the settings command group.
func NewSettingsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change system settings",
	}
	cmd.AddCommand(newSettingsShowCommand(rootOpts))
	cmd.AddCommand(newSettingsSetCommand(rootOpts))
	return cmd
}

func newSettingsShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd, rootOpts)
			if err != nil {
				return err
			}
			defer rt.Close()

			s := rt.App.Settings
			if rt.Out.Format == "json" {
				return rt.Out.Success(s)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "system name:      %s\n", s.SystemName)
			fmt.Fprintf(out, "company:          %s\n", s.CompanyName)
			fmt.Fprintf(out, "address:          %s\n", s.CompanyAddress)
			fmt.Fprintf(out, "phone:            %s\n", s.CompanyPhone)
			fmt.Fprintf(out, "invoice editing:  %t\n", s.AllowInvoiceEditing)
			fmt.Fprintf(out, "stock alerts:     %t\n", s.EnableStockAlerts)
			fmt.Fprintf(out, "paper size:       %s\n", s.PaperSize)
			fmt.Fprintf(out, "scanner:          %t\n", s.ScannerConfigured())
			return nil
		},
	}
}

func newSettingsSetCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		systemName, companyName, companyAddress, companyPhone string
		thankYou, barcodeText, paperSize                      string
		scannerKey, scannerDomain, scannerProject             string
		allowEditing, stockAlerts                             bool
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change settings (only given flags are applied)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd, rootOpts)
			if err != nil {
				return err
			}
			defer rt.Close()

			s := rt.App.Settings
			set := func(flag string, apply func()) {
				if cmd.Flags().Changed(flag) {
					apply()
				}
			}
			set("system-name", func() { s.SystemName = systemName })
			set("company-name", func() { s.CompanyName = companyName })
			set("company-address", func() { s.CompanyAddress = companyAddress })
			set("company-phone", func() { s.CompanyPhone = companyPhone })
			set("thank-you", func() { s.ThankYouMessage = thankYou })
			set("barcode-text", func() { s.BarcodeText = barcodeText })
			set("paper-size", func() { s.PaperSize = paperSize })
			set("scanner-key", func() { s.ScannerAPIKey = scannerKey })
			set("scanner-domain", func() { s.ScannerAuthDomain = scannerDomain })
			set("scanner-project", func() { s.ScannerProjectID = scannerProject })
			set("allow-invoice-editing", func() { s.AllowInvoiceEditing = allowEditing })
			set("stock-alerts", func() { s.EnableStockAlerts = stockAlerts })

			if err := rt.App.SaveSettings(commandContext(cmd), s); err != nil {
				return WrapExitError(ExitCommandError, "failed to save settings", err)
			}
			return rt.Out.Success("settings saved")
		},
	}

	cmd.Flags().StringVar(&systemName, "system-name", "", "system display name")
	cmd.Flags().StringVar(&companyName, "company-name", "", "company name")
	cmd.Flags().StringVar(&companyAddress, "company-address", "", "company address")
	cmd.Flags().StringVar(&companyPhone, "company-phone", "", "company phone")
	cmd.Flags().StringVar(&thankYou, "thank-you", "", "receipt footer message")
	cmd.Flags().StringVar(&barcodeText, "barcode-text", "", "receipt barcode caption")
	cmd.Flags().StringVar(&paperSize, "paper-size", "", "receipt paper size (58mm|80mm)")
	cmd.Flags().StringVar(&scannerKey, "scanner-key", "", "scanner session api key")
	cmd.Flags().StringVar(&scannerDomain, "scanner-domain", "", "scanner session auth domain")
	cmd.Flags().StringVar(&scannerProject, "scanner-project", "", "scanner session project id")
	cmd.Flags().BoolVar(&allowEditing, "allow-invoice-editing", false, "allow editing saved invoices")
	cmd.Flags().BoolVar(&stockAlerts, "stock-alerts", true, "enable out-of-stock alerts")
	return cmd
}
