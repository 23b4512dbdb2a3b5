// Package app holds the application core: the storage-mode negotiator, the
// document loader/defaulter, the single save pipeline every mutation goes
// through, and the validation guards at the mutation boundary.
//
// The app owns the in-memory copy of all six documents. Every mutation
// updates memory first, then persists the whole document through whichever
// backend is currently active. Callers never branch on storage mode; the
// active docstore.Store is selected once per mode transition.
package app

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/same7samy00/ysk-sales/internal/docstore"
	"github.com/same7samy00/ysk-sales/internal/model"
	"github.com/same7samy00/ysk-sales/internal/scanner"
)

// NotifyKind classifies user-visible notifications.
type NotifyKind string

const (
	NotifySuccess NotifyKind = "success"
	NotifyError   NotifyKind = "error"
)

// Notifier receives transient, dismissible user notifications. Failures
// surfaced here are never fatal.
type Notifier interface {
	Notify(kind NotifyKind, message string)
}

// NopNotifier discards notifications.
type NopNotifier struct{}

func (NopNotifier) Notify(NotifyKind, string) {}

// App is the application core. Not safe for concurrent mutation: the
// design is single-user with one logical thread of control, and callers
// complete one save before issuing the next for the same document.
type App struct {
	kv       *docstore.KVStore // always open; bootstrap + embedded backend
	store    docstore.Store    // active backend, selected by Negotiate
	mode     Mode
	picker   DirectoryPicker
	notifier Notifier
	scanner  *scanner.Service
	dirName  string // display name of the chosen data directory

	Products  []model.Product
	Customers []model.Customer
	Invoices  []model.Invoice
	Units     []model.Unit
	Users     []model.User
	Settings  model.SystemSettings

	// CurrentUser is the authenticated user, nil before login.
	CurrentUser *model.User
}

// Option configures an App.
type Option func(*App)

// WithPicker injects the directory-picker capability. Without one the
// negotiator goes straight to the embedded backend.
func WithPicker(p DirectoryPicker) Option {
	return func(a *App) { a.picker = p }
}

// WithNotifier injects the notification sink.
func WithNotifier(n Notifier) Option {
	return func(a *App) { a.notifier = n }
}

// WithScanner injects the scan-event service.
func WithScanner(s *scanner.Service) Option {
	return func(a *App) { a.scanner = s }
}

// New creates an App over the embedded store. The embedded store stays
// open for the life of the App regardless of active mode: it holds the
// remembered directory pointer and the bootstrap flags.
func New(kv *docstore.KVStore, opts ...Option) *App {
	a := &App{
		kv:       kv,
		store:    kv,
		mode:     ModeUndetermined,
		notifier: NopNotifier{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Mode returns the current storage mode.
func (a *App) Mode() Mode { return a.mode }

// SetPicker replaces the directory-picker capability, e.g. when an
// explicit "change storage folder" action supplies its own prompt.
func (a *App) SetPicker(p DirectoryPicker) { a.picker = p }

// DirectoryName returns the display name of the active data directory, or
// "" when the embedded backend is active.
func (a *App) DirectoryName() string { return a.dirName }

func (a *App) notify(kind NotifyKind, message string) {
	if a.notifier != nil {
		a.notifier.Notify(kind, message)
	}
}

// marshalDoc renders a document the way both backends store it:
// pretty-printed JSON, identical bytes regardless of backend, so the
// round-trip contract holds across mode switches.
func marshalDoc(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// persist writes one whole document through the active backend.
func (a *App) persist(ctx context.Context, key string, v any) error {
	data, err := marshalDoc(v)
	if err != nil {
		return fmt.Errorf("marshal %q: %w", key, err)
	}
	return a.store.Write(ctx, key, data)
}

// The typed savers below are the save pipeline: update the in-memory copy
// first so callers observe the change immediately, then persist through
// the currently active backend. There is no rollback on persist failure;
// in-memory divergence is the accepted gap of this single-user design.

// SaveProducts replaces the product catalog.
func (a *App) SaveProducts(ctx context.Context, products []model.Product) error {
	a.Products = products
	return a.persist(ctx, docstore.KeyProducts, products)
}

// SaveCustomers replaces the customer roster.
func (a *App) SaveCustomers(ctx context.Context, customers []model.Customer) error {
	a.Customers = customers
	return a.persist(ctx, docstore.KeyCustomers, customers)
}

// SaveInvoices replaces the invoice log.
func (a *App) SaveInvoices(ctx context.Context, invoices []model.Invoice) error {
	a.Invoices = invoices
	return a.persist(ctx, docstore.KeyInvoices, invoices)
}

// SaveUnits replaces the unit catalog.
func (a *App) SaveUnits(ctx context.Context, units []model.Unit) error {
	a.Units = units
	return a.persist(ctx, docstore.KeyUnits, units)
}

// SaveUsers replaces the user directory.
func (a *App) SaveUsers(ctx context.Context, users []model.User) error {
	a.Users = users
	return a.persist(ctx, docstore.KeyUsers, users)
}

// SaveSettings replaces the settings document and (re)initializes the
// scanner integration; re-initialization while already active is a no-op.
func (a *App) SaveSettings(ctx context.Context, settings model.SystemSettings) error {
	a.Settings = settings
	if err := a.persist(ctx, docstore.KeySettings, settings); err != nil {
		return err
	}
	a.initScanner(settings)
	return nil
}

func (a *App) initScanner(settings model.SystemSettings) {
	if a.scanner == nil {
		return
	}
	if err := a.scanner.Init(settings); err != nil {
		a.notify(NotifyError, fmt.Sprintf("scanner initialization failed: %v", err))
	}
}

// CommitSale applies a finalized sale: the new catalog, the updated roster
// (nil when no customer effects), and the invoice log with the new invoice
// prepended, committed as one batch through the active backend. Memory is
// updated only after the batch commits.
func (a *App) CommitSale(ctx context.Context, products []model.Product, customers []model.Customer, invoices []model.Invoice) error {
	batch := docstore.NewBatch()

	stage := func(key string, v any) error {
		data, err := marshalDoc(v)
		if err != nil {
			return fmt.Errorf("marshal %q: %w", key, err)
		}
		batch.Put(key, data)
		return nil
	}
	if err := stage(docstore.KeyProducts, products); err != nil {
		return err
	}
	if customers != nil {
		if err := stage(docstore.KeyCustomers, customers); err != nil {
			return err
		}
	}
	if err := stage(docstore.KeyInvoices, invoices); err != nil {
		return err
	}

	if err := a.store.Apply(ctx, batch); err != nil {
		return fmt.Errorf("commit sale: %w", err)
	}

	a.Products = products
	if customers != nil {
		a.Customers = customers
	}
	a.Invoices = invoices
	return nil
}

// ResetAllData replaces every document with its seed default, clears the
// remembered directory pointer and bootstrap flags, and leaves the app in
// first-run state. Content is replaced, never deleted.
func (a *App) ResetAllData(ctx context.Context) error {
	if err := a.SaveProducts(ctx, []model.Product{}); err != nil {
		return err
	}
	if err := a.SaveCustomers(ctx, []model.Customer{}); err != nil {
		return err
	}
	if err := a.SaveInvoices(ctx, []model.Invoice{}); err != nil {
		return err
	}
	if err := a.SaveUnits(ctx, model.DefaultUnits()); err != nil {
		return err
	}
	if err := a.SaveUsers(ctx, model.DefaultUsers()); err != nil {
		return err
	}
	if err := a.SaveSettings(ctx, model.DefaultSettings()); err != nil {
		return err
	}

	if err := a.kv.Delete(ctx, docstore.KeyDirectoryHandle); err != nil {
		return err
	}
	if err := a.kv.Delete(ctx, docstore.KeyActivated); err != nil {
		return err
	}
	if err := a.kv.Delete(ctx, docstore.KeyRememberedUser); err != nil {
		return err
	}
	a.CurrentUser = nil
	return nil
}

// newID returns a time-ordered unique identifier for new entities.
func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}
