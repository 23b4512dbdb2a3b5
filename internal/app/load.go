package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/same7samy00/ysk-sales/internal/docstore"
	"github.com/same7samy00/ysk-sales/internal/model"
)

// Load reads all six documents through the active backend. Absent
// documents are seeded with their defaults and the default is persisted
// immediately, so absence-then-seed happens exactly once. All six loads
// run concurrently and Load returns only when every one has resolved.
//
// A document that exists but fails parsing or schema validation surfaces
// as docstore.ErrCorrupt; it is never reseeded.
func (a *App) Load(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		products, err := loadDoc(ctx, a.store, docstore.KeyProducts, []model.Product{})
		if err != nil {
			return err
		}
		a.Products = products
		return nil
	})
	g.Go(func() error {
		customers, err := loadDoc(ctx, a.store, docstore.KeyCustomers, []model.Customer{})
		if err != nil {
			return err
		}
		a.Customers = customers
		return nil
	})
	g.Go(func() error {
		invoices, err := loadDoc(ctx, a.store, docstore.KeyInvoices, []model.Invoice{})
		if err != nil {
			return err
		}
		a.Invoices = invoices
		return nil
	})
	g.Go(func() error {
		units, err := loadDoc(ctx, a.store, docstore.KeyUnits, model.DefaultUnits())
		if err != nil {
			return err
		}
		a.Units = units
		return nil
	})
	g.Go(func() error {
		users, err := loadDoc(ctx, a.store, docstore.KeyUsers, model.DefaultUsers())
		if err != nil {
			return err
		}
		a.Users = backfillPermissions(users)
		return nil
	})
	g.Go(func() error {
		settings, err := loadDoc(ctx, a.store, docstore.KeySettings, model.DefaultSettings())
		if err != nil {
			return err
		}
		a.Settings = settings
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("load documents: %w", err)
	}

	a.initScanner(a.Settings)
	return nil
}

// loadDoc reads and decodes one document, seeding and persisting def when
// the key is absent.
func loadDoc[T any](ctx context.Context, store docstore.Store, key string, def T) (T, error) {
	raw, err := store.Read(ctx, key)
	if errors.Is(err, docstore.ErrNotFound) {
		data, merr := marshalDoc(def)
		if merr != nil {
			return def, fmt.Errorf("marshal default %q: %w", key, merr)
		}
		if werr := store.Write(ctx, key, data); werr != nil {
			return def, fmt.Errorf("seed %q: %w", key, werr)
		}
		return def, nil
	}
	if err != nil {
		return def, err
	}

	if verr := docstore.ValidateDocument(key, raw); verr != nil {
		return def, verr
	}
	var v T
	if uerr := json.Unmarshal(raw, &v); uerr != nil {
		return def, fmt.Errorf("decode %q: %v: %w", key, uerr, docstore.ErrCorrupt)
	}
	return v, nil
}

// backfillPermissions fills permission maps missing from legacy user
// records: full access for records still carrying the old manager role
// marker, an empty map otherwise. An empty loaded directory falls back to
// the seed admin so the roster is never empty.
func backfillPermissions(users []model.User) []model.User {
	if len(users) == 0 {
		return model.DefaultUsers()
	}
	out := make([]model.User, len(users))
	for i, u := range users {
		if u.Permissions == nil {
			if u.Role == model.LegacyManagerRole {
				u.Permissions = model.FullPermissions()
			} else {
				u.Permissions = map[model.Page]bool{}
			}
		}
		out[i] = u
	}
	return out
}
