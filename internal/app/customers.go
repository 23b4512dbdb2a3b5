package app

import (
	"context"

	"github.com/same7samy00/ysk-sales/internal/model"
)

// PutCustomer adds or updates a roster customer. Direct edits may not
// drive debt negative. An empty ID means a new customer.
func (a *App) PutCustomer(ctx context.Context, c model.Customer) (model.Customer, error) {
	if c.Debt < 0 {
		return model.Customer{}, validationErr(ErrCodeInvalidAmount, "debt must not be negative")
	}
	if c.ID == "" {
		c.ID = newID()
	}

	customers := make([]model.Customer, len(a.Customers))
	copy(customers, a.Customers)
	updated := false
	for i, other := range customers {
		if other.ID == c.ID {
			customers[i] = c
			updated = true
			break
		}
	}
	if !updated {
		customers = append(customers, c)
	}
	if err := a.SaveCustomers(ctx, customers); err != nil {
		return model.Customer{}, err
	}
	return c, nil
}

// DeleteCustomer removes a customer. A customer carrying debt cannot be
// deleted.
func (a *App) DeleteCustomer(ctx context.Context, id string) error {
	customers := make([]model.Customer, 0, len(a.Customers))
	found := false
	for _, c := range a.Customers {
		if c.ID == id {
			if c.Debt > 0 {
				return validationErr(ErrCodeCustomerHasDebt,
					"customer %q still owes %.2f", c.Name, c.Debt)
			}
			found = true
			continue
		}
		customers = append(customers, c)
	}
	if !found {
		return validationErr(ErrCodeNotFound, "customer %q not found", id)
	}
	return a.SaveCustomers(ctx, customers)
}

// SettleDebt reduces a customer's debt by amount. The amount must be
// positive and no larger than the outstanding debt.
func (a *App) SettleDebt(ctx context.Context, id string, amount float64) error {
	customers := make([]model.Customer, len(a.Customers))
	copy(customers, a.Customers)
	for i, c := range customers {
		if c.ID != id {
			continue
		}
		if amount <= 0 || amount > c.Debt {
			return validationErr(ErrCodeInvalidAmount,
				"settlement must be between 0 and %.2f", c.Debt)
		}
		customers[i].Debt = c.Debt - amount
		return a.SaveCustomers(ctx, customers)
	}
	return validationErr(ErrCodeNotFound, "customer %q not found", id)
}
