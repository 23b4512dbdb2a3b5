package model

// Page identifies an application page for permission checks.
// Values match the numeric page identifiers used in stored permission maps,
// so integer map keys round-trip through JSON unchanged.
type Page int

const (
	PageDashboard Page = iota
	PageProducts
	PagePos
	PageCustomers
	PageInvoices
	PageSettings
)

// Unit is a unit of measure. Products and invoice items embed a Unit by
// value (id + name snapshot), never a live reference.
type Unit struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Product is a catalog entry. Quantity is on-hand stock and never goes
// negative; barcode uniqueness is enforced at mutation time, not here.
type Product struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	PurchasePrice  float64 `json:"purchasePrice"`
	Unit           Unit    `json:"unit"`
	Quantity       int     `json:"quantity"`
	Supplier       string  `json:"supplier"`
	ProductionDate string  `json:"productionDate"`
	ExpiryDate     string  `json:"expiryDate"`
	Barcode        string  `json:"barcode"`
}

// Customer is a roster entry. Debt accrues through credit sales and is
// reduced by settlements; it must not go negative by direct edit.
type Customer struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Phone           string  `json:"phone"`
	Address         string  `json:"address"`
	Notes           string  `json:"notes"`
	Debt            float64 `json:"debt"`
	InvoiceCount    int     `json:"invoiceCount"`
	LastTransaction string  `json:"lastTransaction"`
}

// Snapshot returns a copied-by-value embedding of the customer, immune to
// later edits of the roster entry.
func (c Customer) Snapshot() *Customer {
	copy := c
	return &copy
}

// PaymentType classifies how an invoice was settled. The stored values are
// the Arabic labels used by existing data files.
type PaymentType string

const (
	PaymentCash    PaymentType = "نقدي"
	PaymentCredit  PaymentType = "آجل"
	PaymentPartial PaymentType = "جزئي"
)

// AmountKind distinguishes percentage from fixed adjustments.
type AmountKind string

const (
	AmountPercentage AmountKind = "percentage"
	AmountFixed      AmountKind = "fixed"
)

// Amount is a discount or tax adjustment.
type Amount struct {
	Type  AmountKind `json:"type"`
	Value float64    `json:"value"`
}

// ApplyTo returns base adjusted by the amount: percentage of base, or the
// fixed value regardless of base.
func (a Amount) ApplyTo(base float64) float64 {
	if a.Type == AmountPercentage {
		return base * (a.Value / 100)
	}
	return a.Value
}

// InvoiceItem is one sold line. Product and Unit are snapshots taken at
// sale time; later catalog edits never alter historical invoices.
type InvoiceItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
	Unit     Unit    `json:"unit"`
	Price    float64 `json:"price"`
}

// Invoice is an append-only sale record. Customer is an owned snapshot, or
// nil for a cash sale. Invoices are immutable once created.
type Invoice struct {
	ID          string        `json:"id"`
	Date        string        `json:"date"`
	Time        string        `json:"time"`
	Customer    *Customer     `json:"customer"`
	Items       []InvoiceItem `json:"items"`
	Subtotal    float64       `json:"subtotal"`
	Discount    Amount        `json:"discount"`
	Tax         Amount        `json:"tax"`
	Total       float64       `json:"total"`
	PaymentType PaymentType   `json:"paymentType"`
	AmountPaid  float64       `json:"amountPaid"`
}

// User status values as stored.
const (
	StatusActive   = "نشط"
	StatusInactive = "غير نشط"
)

// LegacyManagerRole is the role marker old user records carried before
// per-page permission maps existed. Loading back-fills full permissions
// for users that still carry it.
const LegacyManagerRole = "مدير النظام"

// User is a login account. Password is stored in plaintext; this mirrors
// the existing data format and is a recorded weakness, not an endorsement.
type User struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Password    string        `json:"password,omitempty"`
	Status      string        `json:"status"`
	Role        string        `json:"role,omitempty"`
	Permissions map[Page]bool `json:"permissions,omitempty"`
}

// Active reports whether the user may log in.
func (u User) Active() bool { return u.Status == StatusActive }

// SystemSettings is the singleton settings document.
type SystemSettings struct {
	SystemName           string `json:"systemName,omitempty"`
	CompanyName          string `json:"companyName"`
	CompanyAddress       string `json:"companyAddress"`
	CompanyPhone         string `json:"companyPhone"`
	CustomInvoiceBarcode string `json:"customInvoiceBarcode"`
	AllowInvoiceEditing  bool   `json:"allowInvoiceEditing"`
	EnableStockAlerts    bool   `json:"enableStockAlerts"`
	ThankYouMessage      string `json:"thankYouMessage,omitempty"`
	BarcodeText          string `json:"barcodeText,omitempty"`
	PaperSize            string `json:"paperSize,omitempty"`

	// Remote scanner session settings. Empty means no scanner configured.
	ScannerAPIKey     string `json:"scannerApiKey,omitempty"`
	ScannerAuthDomain string `json:"scannerAuthDomain,omitempty"`
	ScannerProjectID  string `json:"scannerProjectId,omitempty"`
}

// ScannerConfigured reports whether the settings carry enough information
// to open a scanner session.
func (s SystemSettings) ScannerConfigured() bool {
	return s.ScannerAPIKey != "" && s.ScannerProjectID != ""
}
