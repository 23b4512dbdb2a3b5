package docstore

import (
	"context"
	"errors"
)

// Document keys. Each key names one whole-value document.
const (
	KeyProducts  = "products"
	KeyCustomers = "customers"
	KeyInvoices  = "invoices"
	KeyUnits     = "units"
	KeyUsers     = "users"
	KeySettings  = "settings"
)

// Reserved keys held in the embedded store outside the document set.
// The directory pointer always lives in the embedded store regardless of
// the active backend; that resolves the bootstrap chicken-and-egg of
// remembering where the directory backend's data lives.
const (
	KeyDirectoryHandle = "directoryHandle"
	KeyActivated       = "isActivated"
	KeyFSNotice        = "fsSupportNotified"
	KeyRememberedUser  = "rememberedUser"
)

// DocumentKeys returns the six document keys in load order.
func DocumentKeys() []string {
	return []string{KeyProducts, KeyCustomers, KeyInvoices, KeyUnits, KeyUsers, KeySettings}
}

var (
	// ErrNotFound reports that a key has no stored value. Not an error
	// condition for loaders - it triggers default seeding.
	ErrNotFound = errors.New("docstore: key not found")

	// ErrCorrupt reports that a stored document exists but cannot be
	// parsed or fails schema validation. Loaders must surface this
	// instead of silently reseeding over user data.
	ErrCorrupt = errors.New("docstore: document corrupt")
)

// Store is the uniform read/write contract both backends implement.
// Values are whole JSON documents; there are no partial writes.
type Store interface {
	// Read returns the stored value for key, or ErrNotFound.
	Read(ctx context.Context, key string) ([]byte, error)

	// Write creates or replaces the value for key.
	Write(ctx context.Context, key string, value []byte) error

	// Apply commits every staged write in batch as one ordered unit.
	Apply(ctx context.Context, batch *Batch) error

	// Close releases backend resources.
	Close() error
}

// Batch stages ordered document writes for a single commit.
type Batch struct {
	ops []batchOp
}

type batchOp struct {
	Key   string `json:"key"`
	Value []byte `json:"value"`
}

// NewBatch returns an empty batch.
func NewBatch() *Batch {
	return &Batch{}
}

// Put stages a write. Staging the same key twice keeps the later value.
func (b *Batch) Put(key string, value []byte) {
	for i := range b.ops {
		if b.ops[i].Key == key {
			b.ops[i].Value = value
			return
		}
	}
	b.ops = append(b.ops, batchOp{Key: key, Value: value})
}

// Len returns the number of staged writes.
func (b *Batch) Len() int { return len(b.ops) }

// Keys returns the staged keys in commit order.
func (b *Batch) Keys() []string {
	keys := make([]string, len(b.ops))
	for i, op := range b.ops {
		keys[i] = op.Key
	}
	return keys
}
