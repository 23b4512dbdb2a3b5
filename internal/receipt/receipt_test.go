package receipt

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"

	"github.com/same7samy00/ysk-sales/internal/model"
)

func golden(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestRender_CashSale58mm(t *testing.T) {
	inv := model.Invoice{
		ID:   "INV-1710513000000",
		Date: "2024-03-15",
		Time: "14:30:00",
		Items: []model.InvoiceItem{
			{
				Product:  model.Product{ID: "p1", Name: "rice"},
				Quantity: 2,
				Unit:     model.Unit{ID: 1, Name: "piece"},
				Price:    10,
			},
			{
				Product:  model.Product{ID: "p2", Name: "flour"},
				Quantity: 1,
				Unit:     model.Unit{ID: 1, Name: "piece"},
				Price:    5,
			},
		},
		Subtotal:    25,
		Discount:    model.Amount{Type: model.AmountPercentage, Value: 10},
		Tax:         model.Amount{Type: model.AmountPercentage, Value: 10},
		Total:       24.75,
		PaymentType: model.PaymentCash,
		AmountPaid:  24.75,
	}
	settings := model.SystemSettings{
		CompanyName:     "Corner Market",
		CompanyAddress:  "12 Main St",
		CompanyPhone:    "0100000000",
		ThankYouMessage: "Thank you!",
	}

	golden(t).Assert(t, "cash_58mm", []byte(Render(inv, settings)))
}

func TestRender_CreditSale80mm(t *testing.T) {
	inv := model.Invoice{
		ID:       "INV-1710513060000",
		Date:     "2024-03-15",
		Time:     "14:31:00",
		Customer: &model.Customer{ID: "c1", Name: "Mona"},
		Items: []model.InvoiceItem{
			{
				Product:  model.Product{ID: "p3", Name: "sugar"},
				Quantity: 3,
				Unit:     model.Unit{ID: 2, Name: "pack"},
				Price:    7.5,
			},
		},
		Subtotal:    22.5,
		Discount:    model.Amount{Type: model.AmountFixed, Value: 2.5},
		Tax:         model.Amount{Type: model.AmountFixed, Value: 0},
		Total:       20,
		PaymentType: model.PaymentCredit,
		AmountPaid:  0,
	}
	settings := model.SystemSettings{
		CompanyName: "Corner Market",
		PaperSize:   "80mm",
		BarcodeText: "SCAN ME",
	}

	golden(t).Assert(t, "credit_80mm", []byte(Render(inv, settings)))
}

func TestAmountDisplay(t *testing.T) {
	assert.Equal(t, "10%", amountDisplay(model.Amount{Type: model.AmountPercentage, Value: 10}))
	assert.Equal(t, "2.5%", amountDisplay(model.Amount{Type: model.AmountPercentage, Value: 2.5}))
	assert.Equal(t, "2.50", amountDisplay(model.Amount{Type: model.AmountFixed, Value: 2.5}))
}

func TestRender_SuppressesZeroAdjustments(t *testing.T) {
	inv := model.Invoice{
		ID:          "INV-1",
		Date:        "2024-03-15",
		Time:        "09:00:00",
		Subtotal:    10,
		Total:       10,
		PaymentType: model.PaymentCash,
		AmountPaid:  10,
	}
	out := Render(inv, model.SystemSettings{CompanyName: "Shop"})
	assert.NotContains(t, out, "Discount:")
	assert.NotContains(t, out, "Tax:")
}
