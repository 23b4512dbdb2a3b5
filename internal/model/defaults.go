package model

// AdminUserID is the bootstrap admin account. It has implicit full
// permissions regardless of its stored permission map and can never be
// locked out of the settings page.
const AdminUserID = "u1"

// DefaultSettings returns the seed settings document for first run.
func DefaultSettings() SystemSettings {
	return SystemSettings{
		SystemName:           "نظامي",
		CompanyName:          "شركة ABC للتجارة",
		CompanyAddress:       "123 شارع التجارة، القاهرة",
		CompanyPhone:         "01234567890",
		CustomInvoiceBarcode: "",
		AllowInvoiceEditing:  false,
		EnableStockAlerts:    true,
	}
}

// DefaultUnits returns the three seed units installed on first run.
func DefaultUnits() []Unit {
	return []Unit{
		{ID: 1, Name: "قطعة"},
		{ID: 2, Name: "عبوة"},
		{ID: 3, Name: "كرتونة"},
	}
}

// FullPermissions grants every page.
func FullPermissions() map[Page]bool {
	return map[Page]bool{
		PageDashboard: true,
		PageProducts:  true,
		PagePos:       true,
		PageCustomers: true,
		PageInvoices:  true,
		PageSettings:  true,
	}
}

// DefaultUsers returns the seed user directory: a single admin account.
func DefaultUsers() []User {
	return []User{{
		ID:          AdminUserID,
		Name:        "admin",
		Password:    "admin",
		Status:      StatusActive,
		Permissions: FullPermissions(),
	}}
}
