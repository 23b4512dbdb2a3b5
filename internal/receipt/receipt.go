// Package receipt renders a completed invoice plus current settings into
// plain text sized for thermal receipt printers. It is the hand-off point
// to the external print collaborator; no data flows back.
package receipt

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/same7samy00/ysk-sales/internal/model"
)

// Column widths per paper size.
const (
	width58mm = 32
	width80mm = 48
)

// Render produces the receipt text for inv using the company fields and
// paper size from settings. Output is deterministic for a given invoice
// and settings pair.
func Render(inv model.Invoice, settings model.SystemSettings) string {
	width := width58mm
	if settings.PaperSize == "80mm" {
		width = width80mm
	}
	rule := strings.Repeat("-", width)

	var b strings.Builder
	writeCentered(&b, width, settings.CompanyName)
	if settings.CompanyAddress != "" {
		writeCentered(&b, width, settings.CompanyAddress)
	}
	if settings.CompanyPhone != "" {
		writeCentered(&b, width, settings.CompanyPhone)
	}
	b.WriteString(rule + "\n")

	fmt.Fprintf(&b, "Invoice: %s\n", inv.ID)
	fmt.Fprintf(&b, "Date: %s %s\n", inv.Date, inv.Time)
	if inv.Customer != nil {
		fmt.Fprintf(&b, "Customer: %s\n", inv.Customer.Name)
	} else {
		b.WriteString("Customer: -\n")
	}
	b.WriteString(rule + "\n")

	for _, item := range inv.Items {
		b.WriteString(item.Product.Name + "\n")
		fmt.Fprintf(&b, "  %d %s x %.2f = %.2f\n",
			item.Quantity, item.Unit.Name, item.Price, item.Price*float64(item.Quantity))
	}
	b.WriteString(rule + "\n")

	fmt.Fprintf(&b, "Subtotal: %.2f\n", inv.Subtotal)
	if inv.Discount.Value > 0 {
		fmt.Fprintf(&b, "Discount: %s\n", amountDisplay(inv.Discount))
	}
	if inv.Tax.Value > 0 {
		fmt.Fprintf(&b, "Tax: %s\n", amountDisplay(inv.Tax))
	}
	fmt.Fprintf(&b, "Total: %.2f\n", inv.Total)
	fmt.Fprintf(&b, "Payment: %s\n", inv.PaymentType)
	fmt.Fprintf(&b, "Paid: %.2f\n", inv.AmountPaid)

	if settings.ThankYouMessage != "" {
		b.WriteString(rule + "\n")
		writeCentered(&b, width, settings.ThankYouMessage)
	}
	if settings.BarcodeText != "" {
		writeCentered(&b, width, settings.BarcodeText)
	}
	return b.String()
}

// amountDisplay follows the printed-invoice convention: percentages show
// as "N%", fixed amounts as a two-decimal figure.
func amountDisplay(a model.Amount) string {
	if a.Type == model.AmountPercentage {
		return fmt.Sprintf("%g%%", a.Value)
	}
	return fmt.Sprintf("%.2f", a.Value)
}

func writeCentered(b *strings.Builder, width int, text string) {
	pad := (width - utf8.RuneCountInString(text)) / 2
	if pad > 0 {
		b.WriteString(strings.Repeat(" ", pad))
	}
	b.WriteString(text + "\n")
}
