package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/same7samy00/ysk-sales/internal/model"
)

func TestPutCustomer(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)

	c, err := a.PutCustomer(ctx, model.Customer{Name: "Mona", Phone: "0100"})
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	require.Len(t, a.Customers, 1)

	c.Phone = "0111"
	_, err = a.PutCustomer(ctx, c)
	require.NoError(t, err)
	require.Len(t, a.Customers, 1)
	assert.Equal(t, "0111", a.Customers[0].Phone)
}

func TestPutCustomer_RejectsNegativeDebt(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)

	_, err := a.PutCustomer(ctx, model.Customer{Name: "Mona", Debt: -5})
	require.Error(t, err)
	assert.Equal(t, ErrCodeInvalidAmount, ValidationCodeOf(err))
	assert.Empty(t, a.Customers)
}

func TestDeleteCustomer_DebtGuard(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)

	c, err := a.PutCustomer(ctx, model.Customer{Name: "Mona", Debt: 40})
	require.NoError(t, err)

	err = a.DeleteCustomer(ctx, c.ID)
	require.Error(t, err)
	assert.Equal(t, ErrCodeCustomerHasDebt, ValidationCodeOf(err))
	require.Len(t, a.Customers, 1)

	require.NoError(t, a.SettleDebt(ctx, c.ID, 40))
	require.NoError(t, a.DeleteCustomer(ctx, c.ID))
	assert.Empty(t, a.Customers)
}

func TestSettleDebt_Bounds(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)

	c, err := a.PutCustomer(ctx, model.Customer{Name: "Mona", Debt: 40})
	require.NoError(t, err)

	for _, amount := range []float64{0, -1, 40.01} {
		err = a.SettleDebt(ctx, c.ID, amount)
		require.Error(t, err)
		assert.Equal(t, ErrCodeInvalidAmount, ValidationCodeOf(err))
	}

	require.NoError(t, a.SettleDebt(ctx, c.ID, 15))
	assert.Equal(t, 25.0, a.Customers[0].Debt)

	err = a.SettleDebt(ctx, "missing", 5)
	assert.Equal(t, ErrCodeNotFound, ValidationCodeOf(err))
}
