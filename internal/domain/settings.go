package domain

// SettingsID is the fixed primary key of the singleton settings row.
const SettingsID = "default"

// Settings holds shop-wide configuration edited from the frontend.
// Message templates use [CustomerName]-style placeholders.
type Settings struct {
	ID                      string `json:"id"`
	ShopName                string `json:"shopName"`
	LogoURL                 string `json:"logoUrl,omitempty"`
	CheckoutTemplate        string `json:"checkoutTemplate"`
	CheckinTemplate         string `json:"checkinTemplate"`
	BalanceReminderTemplate string `json:"balanceReminderTemplate"`
	WhatsAppCountryCode     string `json:"whatsAppCountryCode"`
	InvoiceCustomText       string `json:"invoiceCustomText"`
}
