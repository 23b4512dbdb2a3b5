package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/same7samy00/ysk-sales/internal/model"
)

func TestParseAmount(t *testing.T) {
	amt, err := parseAmount("10%")
	require.NoError(t, err)
	assert.Equal(t, model.Amount{Type: model.AmountPercentage, Value: 10}, amt)

	amt, err = parseAmount("2.5")
	require.NoError(t, err)
	assert.Equal(t, model.Amount{Type: model.AmountFixed, Value: 2.5}, amt)

	_, err = parseAmount("abc")
	assert.Error(t, err)

	_, err = parseAmount("-5")
	assert.Error(t, err)

	_, err = parseAmount("-5%")
	assert.Error(t, err)
}

func TestParseItem(t *testing.T) {
	ref, qty, err := parseItem("p1=3")
	require.NoError(t, err)
	assert.Equal(t, "p1", ref)
	assert.Equal(t, 3, qty)

	// Barcodes pass through untouched.
	ref, qty, err = parseItem("6221031954007=1")
	require.NoError(t, err)
	assert.Equal(t, "6221031954007", ref)
	assert.Equal(t, 1, qty)

	for _, bad := range []string{"p1", "=3", "p1=", "p1=zero", "p1=0", "p1=-1"} {
		_, _, err = parseItem(bad)
		assert.Error(t, err, "spec %q should be rejected", bad)
	}
}

func TestParsePayment(t *testing.T) {
	for in, want := range map[string]model.PaymentType{
		"cash":    model.PaymentCash,
		"CREDIT":  model.PaymentCredit,
		"Partial": model.PaymentPartial,
	} {
		got, err := parsePayment(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := parsePayment("cheque")
	assert.Error(t, err)
}
