// Package checkout implements the point-of-sale finalize-sale flow: the
// one place three documents (catalog stock, customer debt, invoice log)
// change together as a single logical unit.
package checkout

import (
	"github.com/same7samy00/ysk-sales/internal/model"
)

// Line is one in-progress cart entry. Product and Unit are snapshots of
// the catalog entry at add time.
type Line struct {
	Product  model.Product
	Quantity int
	Unit     model.Unit
	Price    float64
}

// Cart is an in-progress sale. Stock limits are enforced here, at
// add-to-cart time: a requested quantity above on-hand stock is clamped to
// available stock with Clamped reported to the caller, never silently
// dropped and never oversold.
type Cart struct {
	Lines    []Line
	Customer *model.Customer
	Discount model.Amount
	Tax      model.Amount
}

// AddResult reports what Add actually granted.
type AddResult struct {
	// Quantity is the line quantity after the add.
	Quantity int

	// Clamped is true when the request exceeded on-hand stock and was
	// reduced to it. Callers surface a user-visible warning.
	Clamped bool
}

// Add puts qty of p into the cart, merging with an existing line for the
// same product. A product with no stock at all is rejected.
func (c *Cart) Add(p model.Product, qty int) (AddResult, error) {
	if p.Quantity <= 0 {
		return AddResult{}, errOutOfStock(p.Name)
	}
	if qty < 1 {
		qty = 1
	}
	for i := range c.Lines {
		if c.Lines[i].Product.ID != p.ID {
			continue
		}
		want := c.Lines[i].Quantity + qty
		granted, clamped := clamp(want, p.Quantity)
		c.Lines[i].Quantity = granted
		return AddResult{Quantity: granted, Clamped: clamped}, nil
	}
	granted, clamped := clamp(qty, p.Quantity)
	c.Lines = append(c.Lines, Line{Product: p, Quantity: granted, Unit: p.Unit, Price: p.Price})
	return AddResult{Quantity: granted, Clamped: clamped}, nil
}

// SetQuantity replaces a line's quantity, clamped to on-hand stock.
func (c *Cart) SetQuantity(productID string, qty int) (AddResult, error) {
	if qty < 1 {
		qty = 1
	}
	for i := range c.Lines {
		if c.Lines[i].Product.ID != productID {
			continue
		}
		granted, clamped := clamp(qty, c.Lines[i].Product.Quantity)
		c.Lines[i].Quantity = granted
		return AddResult{Quantity: granted, Clamped: clamped}, nil
	}
	return AddResult{}, errLineNotFound(productID)
}

// Remove drops the line for productID, if present.
func (c *Cart) Remove(productID string) {
	lines := c.Lines[:0]
	for _, l := range c.Lines {
		if l.Product.ID != productID {
			lines = append(lines, l)
		}
	}
	c.Lines = lines
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool { return len(c.Lines) == 0 }

// Subtotal is the sum of price times quantity over all lines.
func (c *Cart) Subtotal() float64 {
	var sum float64
	for _, l := range c.Lines {
		sum += l.Price * float64(l.Quantity)
	}
	return sum
}

// Total applies the discount to the subtotal, then the tax to the
// post-discount amount.
func (c *Cart) Total() float64 {
	subtotal := c.Subtotal()
	taxable := subtotal - c.Discount.ApplyTo(subtotal)
	return taxable + c.Tax.ApplyTo(taxable)
}

func clamp(want, available int) (granted int, clamped bool) {
	if want > available {
		return available, true
	}
	return want, false
}
