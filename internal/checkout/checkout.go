package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/same7samy00/ysk-sales/internal/app"
	"github.com/same7samy00/ysk-sales/internal/model"
)

func errOutOfStock(name string) error {
	return &app.ValidationError{
		Code:    app.ErrCodeOutOfStock,
		Message: fmt.Sprintf("product %q is out of stock", name),
	}
}

func errLineNotFound(productID string) error {
	return &app.ValidationError{
		Code:    app.ErrCodeNotFound,
		Message: fmt.Sprintf("no cart line for product %q", productID),
	}
}

// Finalizer turns an in-progress cart into a persisted invoice plus its
// consequential stock and debt updates.
type Finalizer struct {
	App *app.App

	// Now supplies invoice timestamps; defaults to time.Now. Tests
	// inject a deterministic clock.
	Now func() time.Time
}

// Finalize completes the sale:
//
//  1. an empty cart is rejected outright
//  2. an Invoice is built from snapshots with a time-derived id
//  3. on-hand stock is decremented per line (to zero at most; stock
//     limits were already enforced at add-to-cart time)
//  4. for Credit or Partial sales with a customer attached, the unpaid
//     remainder accrues to the customer's debt
//  5. the invoice is prepended to the log (most-recent-first)
//
// Steps 3-5 are staged and committed as one batch through the active
// backend, so an interrupted commit never applies part of a sale.
func (f *Finalizer) Finalize(ctx context.Context, cart *Cart, payment model.PaymentType, amountPaid float64) (model.Invoice, error) {
	if cart.Empty() {
		return model.Invoice{}, &app.ValidationError{
			Code:    app.ErrCodeEmptyCart,
			Message: "cannot create an empty invoice",
		}
	}

	now := time.Now()
	if f.Now != nil {
		now = f.Now()
	}

	inv := model.Invoice{
		ID:          fmt.Sprintf("INV-%d", now.UnixMilli()),
		Date:        now.Format("2006-01-02"),
		Time:        now.Format("15:04:05"),
		Customer:    nil,
		Items:       make([]model.InvoiceItem, len(cart.Lines)),
		Subtotal:    cart.Subtotal(),
		Discount:    normalizeAmount(cart.Discount),
		Tax:         normalizeAmount(cart.Tax),
		Total:       cart.Total(),
		PaymentType: payment,
	}
	if cart.Customer != nil {
		inv.Customer = cart.Customer.Snapshot()
	}
	for i, l := range cart.Lines {
		inv.Items[i] = model.InvoiceItem{
			Product:  l.Product,
			Quantity: l.Quantity,
			Unit:     l.Unit,
			Price:    l.Price,
		}
	}
	if payment == model.PaymentCash {
		inv.AmountPaid = inv.Total
	} else {
		// Caller-supplied for Partial; for Credit it defaults to 0,
		// meaning fully financed.
		inv.AmountPaid = amountPaid
	}

	products := decrementStock(f.App.Products, cart.Lines)
	customers := customerEffects(f.App.Customers, inv)
	invoices := append([]model.Invoice{inv}, f.App.Invoices...)

	if err := f.App.CommitSale(ctx, products, customers, invoices); err != nil {
		return model.Invoice{}, err
	}
	return inv, nil
}

// normalizeAmount gives an unset adjustment a concrete kind. A cart
// built without --discount/--tax carries the zero value; the stored
// invoice must still satisfy the document schema, so the empty kind
// becomes a fixed zero.
func normalizeAmount(a model.Amount) model.Amount {
	if a.Type == "" {
		a.Type = model.AmountFixed
	}
	return a
}

// decrementStock reduces on-hand quantity for every catalog product
// referenced by a cart line. Quantity may reach exactly zero, never below.
func decrementStock(catalog []model.Product, lines []Line) []model.Product {
	products := make([]model.Product, len(catalog))
	copy(products, catalog)
	for _, l := range lines {
		for i := range products {
			if products[i].ID != l.Product.ID {
				continue
			}
			products[i].Quantity -= l.Quantity
			if products[i].Quantity < 0 {
				products[i].Quantity = 0
			}
			break
		}
	}
	return products
}

// customerEffects returns the updated roster, or nil when the sale has no
// customer-side effects. Debt, invoice count, and last-transaction date
// change only for Credit and Partial sales with a customer attached.
func customerEffects(roster []model.Customer, inv model.Invoice) []model.Customer {
	if inv.Customer == nil {
		return nil
	}
	if inv.PaymentType != model.PaymentCredit && inv.PaymentType != model.PaymentPartial {
		return nil
	}
	customers := make([]model.Customer, len(roster))
	copy(customers, roster)
	for i := range customers {
		if customers[i].ID != inv.Customer.ID {
			continue
		}
		customers[i].Debt += inv.Total - inv.AmountPaid
		customers[i].InvoiceCount++
		customers[i].LastTransaction = inv.Date
		break
	}
	return customers
}
