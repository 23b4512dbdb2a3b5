package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/same7samy00/ysk-sales/internal/model"
)

func TestPutProduct_AssignsIDAndBarcode(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)

	p, err := a.PutProduct(ctx, model.Product{Name: "rice", Price: 30})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.NotEmpty(t, p.Barcode)
	require.Len(t, a.Products, 1)
}

func TestPutProduct_RejectsDuplicateBarcode(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)

	_, err := a.PutProduct(ctx, model.Product{Name: "rice", Barcode: "200"})
	require.NoError(t, err)

	_, err = a.PutProduct(ctx, model.Product{Name: "flour", Barcode: "200"})
	require.Error(t, err)
	assert.Equal(t, ErrCodeDuplicateBarcode, ValidationCodeOf(err))
	assert.Len(t, a.Products, 1, "rejected put must not touch the catalog")
}

func TestPutProduct_UpdateKeepsOwnBarcode(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)

	p, err := a.PutProduct(ctx, model.Product{Name: "rice", Barcode: "200"})
	require.NoError(t, err)

	p.Price = 35
	updated, err := a.PutProduct(ctx, p)
	require.NoError(t, err, "re-saving with its own barcode is not a duplicate")
	assert.Equal(t, 35.0, updated.Price)
	require.Len(t, a.Products, 1)
	assert.Equal(t, 35.0, a.Products[0].Price)
}

func TestPutProduct_BarcodeComparisonIsNormalized(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)

	// U+00E9 (precomposed) vs "e"+U+0301 (combining accent): same barcode
	// after normalization.
	_, err := a.PutProduct(ctx, model.Product{Name: "one", Barcode: "café"})
	require.NoError(t, err)

	_, err = a.PutProduct(ctx, model.Product{Name: "two", Barcode: "café"})
	require.Error(t, err)
	assert.Equal(t, ErrCodeDuplicateBarcode, ValidationCodeOf(err))
}

func TestDeleteProduct(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)

	p, err := a.PutProduct(ctx, model.Product{Name: "rice", Barcode: "200"})
	require.NoError(t, err)

	require.NoError(t, a.DeleteProduct(ctx, p.ID))
	assert.Empty(t, a.Products)

	err = a.DeleteProduct(ctx, "missing")
	assert.Equal(t, ErrCodeNotFound, ValidationCodeOf(err))
}

func TestFindByBarcode(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)

	p, err := a.PutProduct(ctx, model.Product{Name: "rice", Barcode: "café"})
	require.NoError(t, err)

	got, ok := a.FindByBarcode("café")
	require.True(t, ok)
	assert.Equal(t, p.ID, got.ID)

	_, ok = a.FindByBarcode("nope")
	assert.False(t, ok)
}
