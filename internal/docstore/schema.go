package docstore

import (
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cuejson "cuelang.org/go/encoding/json"
)

// documentSchemaSrc declares the shape of each stored document. Structs
// stay open ("...") so documents written by older versions with extra
// fields still validate; only the load-bearing fields are constrained.
const documentSchemaSrc = `
#Unit: {
	id:   int
	name: string
	...
}

#Product: {
	id:       string
	name:     string
	price:    number
	quantity: int & >=0
	barcode:  string
	unit:     #Unit
	...
}

#Customer: {
	id:           string
	name:         string
	debt:         number
	invoiceCount: int
	...
}

#Amount: {
	type:  "percentage" | "fixed"
	value: number
	...
}

#Invoice: {
	id:       string
	customer: null | #Customer
	items: [...{
		product:  #Product
		quantity: int
		price:    number
		...
	}]
	subtotal: number
	discount: #Amount
	tax:      #Amount
	total:    number
	...
}

#User: {
	id:     string
	name:   string
	status: string
	permissions?: {[string]: bool}
	...
}

#Settings: {
	companyName:         string
	companyAddress:      string
	companyPhone:        string
	allowInvoiceEditing: bool
	enableStockAlerts:   bool
	...
}

products: [...#Product]
customers: [...#Customer]
invoices: [...#Invoice]
units: [...#Unit]
users: [...#User]
settings: #Settings
`

var (
	schemaOnce sync.Once
	schemaVal  cue.Value
)

func documentSchema() cue.Value {
	schemaOnce.Do(func() {
		schemaVal = cuecontext.New().CompileString(documentSchemaSrc)
	})
	return schemaVal
}

// ValidateDocument checks raw JSON against the schema for key. A failure
// wraps ErrCorrupt so loaders can tell corruption from absence instead of
// silently reseeding over recoverable data. Keys outside the document set
// (reserved bookkeeping keys) are not schema-checked.
func ValidateDocument(key string, data []byte) error {
	sch := documentSchema().LookupPath(cue.ParsePath(key))
	if !sch.Exists() {
		return nil
	}
	if err := cuejson.Validate(data, sch); err != nil {
		return fmt.Errorf("document %q fails schema: %v: %w", key, err, ErrCorrupt)
	}
	return nil
}
