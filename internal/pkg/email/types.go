// internal/pkg/email/types.go
package email

// Email represents an email message
type Email struct {
	To          []string `json:"to"`
	Subject     string   `json:"subject"`
	HTMLContent string   `json:"html_content"`
}

// ReceiptItem is a single order line rendered in the receipt
type ReceiptItem struct {
	Name     string
	Quantity int
	Price    string
}

// PurchaseReceiptData carries the finalized order snapshot handed over
// by the settlement workflow.
type PurchaseReceiptData struct {
	SiteName string
	SiteURL  string

	UserName  string
	UserEmail string

	OrderID       uint
	OrderDate     string
	PaymentMethod string

	Items []ReceiptItem

	ItemsPrice    string
	ShippingPrice string
	TaxPrice      string
	TotalPrice    string

	ShippingName    string
	ShippingStreet  string
	ShippingCity    string
	ShippingPostal  string
	ShippingCountry string
}
