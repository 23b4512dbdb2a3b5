package app

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/same7samy00/ysk-sales/internal/model"
)

// PutProduct adds or updates a catalog product. Barcode uniqueness is
// enforced here, at the mutation boundary: a barcode carried by a
// different product is rejected with a distinct error, never silently
// overwritten. An empty ID means a new product; an empty barcode is
// auto-generated.
func (a *App) PutProduct(ctx context.Context, p model.Product) (model.Product, error) {
	if p.ID == "" {
		p.ID = newID()
	}
	if p.Barcode == "" {
		p.Barcode = fmt.Sprintf("%d", time.Now().UnixMilli())
	}

	barcode := norm.NFC.String(p.Barcode)
	for _, other := range a.Products {
		if other.ID != p.ID && norm.NFC.String(other.Barcode) == barcode {
			return model.Product{}, validationErr(ErrCodeDuplicateBarcode,
				"barcode %q already belongs to product %q", p.Barcode, other.Name)
		}
	}

	products := make([]model.Product, len(a.Products))
	copy(products, a.Products)
	updated := false
	for i, other := range products {
		if other.ID == p.ID {
			products[i] = p
			updated = true
			break
		}
	}
	if !updated {
		products = append(products, p)
	}
	if err := a.SaveProducts(ctx, products); err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// DeleteProduct removes a product from the catalog.
func (a *App) DeleteProduct(ctx context.Context, id string) error {
	products := make([]model.Product, 0, len(a.Products))
	found := false
	for _, p := range a.Products {
		if p.ID == id {
			found = true
			continue
		}
		products = append(products, p)
	}
	if !found {
		return validationErr(ErrCodeNotFound, "product %q not found", id)
	}
	return a.SaveProducts(ctx, products)
}

// FindByBarcode returns the catalog product matching a scanned barcode.
// Comparison is NFC-normalized so data keyed in on a different platform
// still matches scanner payloads.
func (a *App) FindByBarcode(barcode string) (model.Product, bool) {
	want := norm.NFC.String(barcode)
	for _, p := range a.Products {
		if norm.NFC.String(p.Barcode) == want {
			return p, true
		}
	}
	return model.Product{}, false
}
